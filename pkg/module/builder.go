// Package module implements the per-module scratch state a design builder
// populates while constructing a hardware module (C3 in spec.md §2/§4.3):
// argument/result lists, name scopes, registers, memories and output-port
// sinks.
package module

import (
	"strings"

	"github.com/linxisa/pycircuit-go/pkg/bitvec"
	"github.com/linxisa/pycircuit-go/pkg/hw"
)

// Port is one entry of a module's ordered argument list.
type Port struct {
	Name string
	Type bitvec.BitVec
}

// Output is one entry of a module's ordered result list.
type Output struct {
	Name string
	Sig  hw.Signal
}

// Builder is the per-module construction context a design builder function
// receives. It owns exactly one hw.Graph for its lifetime (spec.md §3:
// "signals ... are created during module construction and owned by that
// module").
type Builder struct {
	Symbol string

	graph    *hw.Graph
	args     []Port
	results  []Output
	resultSet map[string]struct{}
	scope    []string
	attrs    map[string]string
	finalized bool
}

// New constructs an empty Builder for a module that will be emitted under
// the given symbol name.
func New(symbol string) *Builder {
	return &Builder{
		Symbol:    symbol,
		graph:     hw.NewGraph(),
		resultSet: make(map[string]struct{}),
		attrs:     make(map[string]string),
	}
}

// Graph returns the owning signal graph, for use by pkg/jit and pkg/design.
func (b *Builder) Graph() *hw.Graph { return b.graph }

// Args returns the ordered argument (port) list built so far.
func (b *Builder) Args() []Port { return b.args }

// Results returns the ordered output (result) list built so far.
func (b *Builder) Results() []Output { return b.results }

// SetAttr sets a module-level attribute (e.g. source_base_name, param_json).
func (b *Builder) SetAttr(key, value string) { b.attrs[key] = value }

// Attrs returns the module-level attribute map.
func (b *Builder) Attrs() map[string]string { return b.attrs }

// qualify prefixes name with the current scope path, dot-joined, purely for
// IR naming (spec.md §4.3's scope is "cosmetic for IR naming").
func (b *Builder) qualify(name string) string {
	if len(b.scope) == 0 {
		return name
	}

	return strings.Join(b.scope, ".") + "." + name
}

// EnterScope pushes a name component onto the scope stack.
func (b *Builder) EnterScope(name string) { b.scope = append(b.scope, name) }

// LeaveScope pops the most recently pushed scope component. It is an error
// (panics, since this indicates a programming error in a scope helper, not
// a user-data error) to call LeaveScope with no scope open.
func (b *Builder) LeaveScope() {
	if len(b.scope) == 0 {
		panic("module: LeaveScope called with no open scope")
	}

	b.scope = b.scope[:len(b.scope)-1]
}

// Scope runs fn with name pushed onto the scope stack, guaranteeing the
// scope is popped even if fn panics — the Go realization of Python's
// `with scope(name):` (spec.md §9).
func (b *Builder) Scope(name string, fn func()) {
	b.EnterScope(name)
	defer b.LeaveScope()
	fn()
}

// Input declares an input port and appends it to the argument list.
func (b *Builder) Input(name string, width uint32, signed bool) (hw.Signal, error) {
	sig, err := b.graph.InputPort(name, width, signed)
	if err != nil {
		return hw.Signal{}, err
	}

	b.args = append(b.args, Port{Name: name, Type: sig.Type})

	return sig, nil
}

// Clock declares a 1-bit clock port and appends it to the argument list.
func (b *Builder) Clock(name string) hw.Signal {
	sig := b.graph.Clock(name)
	b.args = append(b.args, Port{Name: name, Type: sig.Type})

	return sig
}

// Reset declares a 1-bit reset port and appends it to the argument list.
func (b *Builder) Reset(name string) hw.Signal {
	sig := b.graph.Reset(name)
	b.args = append(b.args, Port{Name: name, Type: sig.Type})

	return sig
}

// Output appends (name, sig) to the result list. Duplicate names fail.
func (b *Builder) Output(name string, sig hw.Signal) error {
	if _, exists := b.resultSet[name]; exists {
		return &hw.TypeError{Detail: "duplicate output name: " + name}
	}

	b.resultSet[name] = struct{}{}
	b.results = append(b.results, Output{Name: name, Sig: sig})

	return nil
}

// HasOutputs reports whether any output has been declared yet.
func (b *Builder) HasOutputs() bool { return len(b.results) > 0 }

// Register declares a register, name-qualified by the current scope.
func (b *Builder) Register(name string, clock, reset hw.Signal, width uint32, init int64, enable *hw.Signal) (*hw.Register, error) {
	return b.graph.NewRegister(b.qualify(name), clock, reset, width, init, enable)
}

// ByteMem declares a byte-addressable memory, name-qualified by the current
// scope.
func (b *Builder) ByteMem(clk, rst, raddr, wvalid, waddr, wdata, wstrb hw.Signal, depth uint64, name string) (hw.Signal, error) {
	mem, err := b.graph.NewByteMemory(clk, rst, raddr, wvalid, waddr, wdata, wstrb, depth, b.qualify(name))
	if err != nil {
		return hw.Signal{}, err
	}

	return mem.ReadData, nil
}

// Instantiate declares a submodule call in b's graph, name-qualified by the
// current scope like Register/ByteMem, and returns the child's declared
// outputs as new signals owned by b (spec.md §4.4 "Recursion").
func (b *Builder) Instantiate(symbol, baseName string, argNames []string, args []hw.Signal, resultNames []string, resultTypes []bitvec.BitVec) *hw.Instance {
	return b.graph.NewInstance(symbol, b.qualify(baseName), argNames, args, resultNames, resultTypes)
}

// Finalize freezes every register's pending-writes list into its next-state
// fold (spec.md §4.3). A module with zero outputs and no stateful elements
// is not itself an error (useful for dead/parametric specializations).
func (b *Builder) Finalize() error {
	if b.finalized {
		return nil
	}

	for _, reg := range b.graph.Registers() {
		if err := reg.Finalize(); err != nil {
			return err
		}
	}

	b.finalized = true

	return nil
}
