// Package pycircuit is the public façade tying together signal
// construction (pkg/hw), module building (pkg/module), control-flow
// lowering (pkg/jit), specialization (pkg/design) and IR emission
// (pkg/emit) into the small surface a design author actually calls,
// mirroring the entry points the original frontend exposes at its package
// root (spec.md §1/§5).
package pycircuit

import (
	"io"

	"github.com/linxisa/pycircuit-go/pkg/bitvec"
	"github.com/linxisa/pycircuit-go/pkg/design"
	"github.com/linxisa/pycircuit-go/pkg/emit"
	"github.com/linxisa/pycircuit-go/pkg/jit"
)

// Component re-exports design.Component so callers need only import this
// package for the common case.
type Component = design.Component

// ParamSpec re-exports design.ParamSpec.
type ParamSpec = design.ParamSpec

// Design re-exports design.Design, the compiled design unit CompileDesign
// returns.
type Design = design.Design

// Request is one entry of a CompileDesign call: specialize Comp against
// Params/Ports, binding the result to Name (used verbatim as the symbol if
// non-empty, otherwise derived from Comp.BaseName and the canonical
// parameter signature).
type Request struct {
	Comp   Component
	Params map[string]any
	Ports  map[string]bitvec.BitVec
	Name   string
	// Top marks this request's resulting module as the design's top
	// symbol (spec.md §4.7). At most one Request in a CompileDesign call
	// should set this.
	Top bool
}

// CompileDesign specializes every request against a single shared
// design.Context (so requests may reuse each other's cache hits when they
// specialize the same component with the same params/ports), and returns
// the resulting design unit.
func CompileDesign(reqs ...Request) (*design.Design, error) {
	ctx := design.NewContext()

	for _, r := range reqs {
		cm, err := ctx.Specialize(r.Comp, r.Params, r.Ports, r.Name)
		if err != nil {
			return nil, err
		}

		if r.Top {
			if err := ctx.Design.RegisterTop(cm.Symbol); err != nil {
				return nil, err
			}
		}
	}

	return ctx.Design, nil
}

// EmitIR writes d's textual IR to w (spec.md §6).
func EmitIR(w io.Writer, d *design.Design) error {
	return emit.Design(w, d)
}

// BuilderFunc re-exports jit.BuilderFunc, the shape every component's Fn
// implements.
type BuilderFunc = jit.BuilderFunc
