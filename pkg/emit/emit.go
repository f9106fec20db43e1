// Package emit renders a compiled design unit as MLIR-compatible textual IR
// (spec.md §6). The shape is illustrative, not a registered MLIR dialect:
// one pseudo-op per interned graph node, plus register/memory declarations
// carrying the state elements the node list alone can't express.
package emit

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/linxisa/pycircuit-go/pkg/design"
	"github.com/linxisa/pycircuit-go/pkg/hw"
)

// Design writes every module in d to w, in insertion order, wrapped in a
// single top-level module attributes {...} { ... } block (spec.md §6).
func Design(w io.Writer, d *design.Design) error {
	fmt.Fprintf(w, "module attributes {pycircuit.top = %q} {\n", d.Top())

	for _, cm := range d.Modules() {
		if err := Module(w, cm); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "}")

	return nil
}

// Module writes a single compiled module's function body.
func Module(w io.Writer, cm *design.CompiledModule) error {
	args := make([]string, len(cm.Args))
	for i, a := range cm.Args {
		args[i] = fmt.Sprintf("%%arg%d: %s {pycircuit.name = %q}", i, a.Type.String(), a.Name)
	}

	results := make([]string, len(cm.Results))
	for i, r := range cm.Results {
		results[i] = r.Sig.Type.String()
	}

	fmt.Fprintf(w, "  func @%s(%s) -> (%s) attributes {%s} {\n",
		cm.Symbol, strings.Join(args, ", "), strings.Join(results, ", "), formatAttrs(cm.Attrs))

	p := &printer{w: w, g: cm.Graph, argIndex: make(map[hw.NodeID]int)}

	for i, a := range cm.Args {
		p.argIndex[argNodeID(cm.Graph, a.Name)] = i
	}

	p.emitNodes()
	p.emitRegisters()
	p.emitMemories()
	p.emitInstances()
	p.emitReturn(cm.Results)

	fmt.Fprintln(w, "  }")

	return nil
}

func formatAttrs(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s = %q", k, attrs[k])
	}

	return strings.Join(parts, ", ")
}

// argNodeID finds the input-port/clock/reset node backing a declared
// argument by name, so the printer can render %arg<N> instead of %<N> at
// its use sites. Input ports are never CSE'd across distinct names (see
// hw.Attrs.PortName), so this lookup is unambiguous.
func argNodeID(g *hw.Graph, name string) hw.NodeID {
	for id := hw.NodeID(1); int(id) <= g.Size(); id++ {
		n := g.Node(id)
		if (n.Op == hw.OpInputPort || n.Op == hw.OpClock || n.Op == hw.OpReset) && n.Attrs.PortName == name {
			return id
		}
	}

	return 0
}
