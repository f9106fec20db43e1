package design

import (
	"reflect"

	"github.com/linxisa/pycircuit-go/pkg/bitvec"
	"github.com/linxisa/pycircuit-go/pkg/hw"
	"github.com/linxisa/pycircuit-go/pkg/jit"
	"github.com/linxisa/pycircuit-go/pkg/module"
)

// cacheKey identifies one specialization: the builder function's identity
// (Go has no func equality, so reflect.ValueOf(fn).Pointer() stands in for
// Python's id(fn)), the canonical params+ports signature, and an optional
// caller-supplied name override.
type cacheKey struct {
	fn   uintptr
	sig  string
	name string
}

// Context is the Go analogue of design.py's DesignContext: it specializes
// Components into CompiledModules, memoizing by (function identity,
// canonical params, canonical ports, optional name) exactly as spec.md
// §4.6/§4.7 requires, and owns the Design unit those modules accumulate
// into.
type Context struct {
	Design *Design

	cache       map[cacheKey]*CompiledModule
	usedSymbols map[string]cacheKey
}

// NewContext returns a fresh specialization context over an empty design
// unit.
func NewContext() *Context {
	return &Context{
		Design:      NewDesign(),
		cache:       make(map[cacheKey]*CompiledModule),
		usedSymbols: make(map[string]cacheKey),
	}
}

// portsToCanon converts a port-shape map into a canonicalizable value.
func portsToCanon(ports map[string]bitvec.BitVec) map[string]any {
	out := make(map[string]any, len(ports))
	for name, t := range ports {
		out[name] = map[string]any{"width": int64(t.Width), "signed": t.Signed}
	}

	return out
}

// snapshot captures the mutable bookkeeping state Specialize must be able
// to roll back if a strict (JIT) compile attempt fails partway through
// (spec.md §4.5's "transactional" recovery around the elaboration
// fallback).
type snapshot struct {
	order       []string
	modules     map[string]*CompiledModule
	cache       map[cacheKey]*CompiledModule
	usedSymbols map[string]cacheKey
}

func (c *Context) snapshot() snapshot {
	s := snapshot{
		order:       append([]string(nil), c.Design.order...),
		modules:     make(map[string]*CompiledModule, len(c.Design.modules)),
		cache:       make(map[cacheKey]*CompiledModule, len(c.cache)),
		usedSymbols: make(map[string]cacheKey, len(c.usedSymbols)),
	}

	for k, v := range c.Design.modules {
		s.modules[k] = v
	}

	for k, v := range c.cache {
		s.cache[k] = v
	}

	for k, v := range c.usedSymbols {
		s.usedSymbols[k] = v
	}

	return s
}

func (c *Context) restore(s snapshot) {
	c.Design.order = s.order
	c.Design.modules = s.modules
	c.cache = s.cache
	c.usedSymbols = s.usedSymbols
}

// Specialize binds params against comp's ParamSpec list, derives a
// deterministic symbol, and returns the CompiledModule for that
// (function, params, ports, name) tuple — reusing a prior compilation
// rather than re-running the builder when the key repeats (spec.md §4.6's
// "specialization cache"). ports may be nil when the component's port
// shapes are already fully determined by params.
func (c *Context) Specialize(comp Component, params map[string]any, ports map[string]bitvec.BitVec, name string) (*CompiledModule, error) {
	bound, err := comp.Bind(params)
	if err != nil {
		return nil, err
	}

	paramsJSON, err := CanonicalJSON(bound)
	if err != nil {
		return nil, err
	}

	portsJSON, err := CanonicalJSON(portsToCanon(ports))
	if err != nil {
		return nil, &DesignError{Kind: UnsupportedPortSpec, Detail: err.Error()}
	}

	sig, err := CombinedCacheSignature(paramsJSON, portsJSON)
	if err != nil {
		return nil, &DesignError{Kind: UnsupportedPortSpec, Detail: err.Error()}
	}

	fnPtr := reflect.ValueOf(comp.Fn).Pointer()
	key := cacheKey{fn: fnPtr, sig: sig, name: name}

	if cm, ok := c.cache[key]; ok {
		return cm, nil
	}

	symbol := name
	if symbol == "" {
		symbol = comp.BaseName + "__p" + Hash8(sig)
	}

	if prevKey, exists := c.usedSymbols[symbol]; exists && prevKey != key {
		return nil, &DesignError{Kind: DuplicateSymbol, Detail: "symbol " + symbol + " already produced by a different specialization"}
	}

	cm, err := c.compile(comp, bound, symbol, paramsJSON)
	if err != nil {
		return nil, err
	}

	c.cache[key] = cm
	c.usedSymbols[symbol] = key
	c.Design.register(cm)

	return cm, nil
}

// compile runs comp.Fn in strict mode first; on a *jit.JitError it rolls
// back any shared bookkeeping the failed attempt might have perturbed and
// retries once in elaboration mode, matching spec.md §4.5's fallback
// contract and Testable Property 6. Either attempt may itself recurse into
// Specialize via instantiateChild while lowering a submodule call
// (spec.md §4.4 "Recursion"), which is exactly the case snapshot/restore
// exists to make safe: a strict attempt that specializes two children and
// then fails on its third statement must not leave those two children's
// symbols/cache entries behind for the elaboration retry to collide with.
func (c *Context) compile(comp Component, bound map[string]any, symbol, paramsJSON string) (*CompiledModule, error) {
	snap := c.snapshot()

	b := module.New(symbol)
	b.SetAttr("source_base_name", comp.BaseName)
	b.SetAttr("param_json", paramsJSON)

	if err := jit.Compile(comp.Fn, b, bound, c.instantiateChild); err != nil {
		if !jit.IsJitError(err) {
			return nil, err
		}

		c.restore(snap)

		b = module.New(symbol)
		b.SetAttr("source_base_name", comp.BaseName)
		b.SetAttr("param_json", paramsJSON)

		if err := jit.Elaborate(comp.Fn, b, bound, c.instantiateChild); err != nil {
			return nil, err
		}
	}

	if err := b.Finalize(); err != nil {
		return nil, err
	}

	return newCompiledModule(b), nil
}

// instantiateChild is the jit.InstantiateFunc pkg/jit's Context.Instance
// calls back into: it re-enters Specialize for comp (so a submodule call
// shares the same specialization cache and Design registry as a top-level
// one), binds args to the resulting child module's declared ports by name,
// and wires the child into b's graph as a submodule-instance op.
func (c *Context) instantiateChild(b *module.Builder, comp Component, params map[string]any, args map[string]hw.Signal, name string) (map[string]hw.Signal, error) {
	ports := make(map[string]bitvec.BitVec, len(args))
	for argName, sig := range args {
		ports[argName] = sig.Type
	}

	cm, err := c.Specialize(comp, params, ports, name)
	if err != nil {
		return nil, err
	}

	argNames := make([]string, len(cm.Args))
	argSigs := make([]hw.Signal, len(cm.Args))

	for i, p := range cm.Args {
		sig, ok := args[p.Name]
		if !ok {
			return nil, &DesignError{Kind: MissingArgument, Detail: "instance of " + cm.Symbol + " is missing argument " + p.Name}
		}

		if !sig.Type.Equal(p.Type) {
			return nil, &DesignError{Kind: ArgumentMismatch, Detail: "instance of " + cm.Symbol + ": argument " + p.Name + " has type " + sig.Type.String() + ", want " + p.Type.String()}
		}

		argNames[i] = p.Name
		argSigs[i] = sig
	}

	resultNames := make([]string, len(cm.Results))
	resultTypes := make([]bitvec.BitVec, len(cm.Results))

	for i, r := range cm.Results {
		resultNames[i] = r.Name
		resultTypes[i] = r.Sig.Type
	}

	inst := b.Instantiate(cm.Symbol, comp.BaseName, argNames, argSigs, resultNames, resultTypes)

	out := make(map[string]hw.Signal, len(inst.Outputs))
	for i, nm := range resultNames {
		out[nm] = inst.Outputs[i]
	}

	return out, nil
}
