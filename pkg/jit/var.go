package jit

import "github.com/linxisa/pycircuit-go/pkg/hw"

// Var is a named, reassignable value handle threaded through conditional
// regions — the Go realization of spec.md §9's "explicit m.var(name, init)
// handles" that capture assignments a Python AST rewrite would otherwise
// detect automatically.
type Var struct {
	name string
	cur  hw.Signal
}

// NewVar declares a variable with an initial value.
func NewVar(name string, init hw.Signal) *Var {
	return &Var{name: name, cur: init}
}

// Get returns the variable's current value.
func (v *Var) Get() hw.Signal { return v.cur }

// Set assigns the variable's value directly (outside any conditional
// region, or as straight-line code within one). Assignments made while a
// Chain branch is open are tracked by that branch via RegionScope.SetVar,
// not this method — see chain.go.
func (v *Var) Set(val hw.Signal) { v.cur = val }
