package jit

import (
	"github.com/linxisa/pycircuit-go/pkg/hw"
	"github.com/linxisa/pycircuit-go/pkg/module"
)

// InstantiateFunc re-enters the specialization pipeline for a submodule
// call (spec.md §4.4 "Recursion"): it specializes comp against params and
// the shapes of args exactly like a top-level Specialize call, caching by
// (comp.Fn, params, arg shapes) so repeated calls with the same signature
// reuse one compiled child, then wires that child into b's graph as a
// submodule-instance op and returns its declared outputs bound as new
// signals in b. pkg/design.Context is the only implementation; it is
// threaded in here (rather than pkg/jit importing pkg/design directly) to
// avoid an import cycle, since pkg/design already imports pkg/jit.
type InstantiateFunc func(b *module.Builder, comp Component, params map[string]any, args map[string]hw.Signal, name string) (map[string]hw.Signal, error)

// Instance instantiates comp as a submodule of m, binding args to its
// declared input ports by name and returning its declared outputs as new
// signals in m (spec.md §6's "component(fn)" sugar). name overrides the
// generated symbol exactly like design.Context.Specialize's own name
// parameter; pass "" to let the cache derive one.
func (c *Context) Instance(m *module.Builder, comp Component, params map[string]any, args map[string]hw.Signal, name string) (map[string]hw.Signal, error) {
	if c.instantiate == nil {
		return nil, &JitError{
			Construct: "submodule-instance",
			Detail:    "this Context was not built via jit.Compile/jit.Elaborate, so it has no instantiator wired in",
			Location:  loc(),
		}
	}

	return c.instantiate(m, comp, params, args, name)
}
