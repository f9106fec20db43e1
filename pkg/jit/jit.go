package jit

import (
	"errors"

	"github.com/linxisa/pycircuit-go/pkg/module"
)

// BuilderFunc is the shape every design builder implements: given a
// lowering Context (for If/RepeatSignal) and a fresh module Builder, it
// populates the module and returns an error on failure.
type BuilderFunc func(ctx *Context, m *module.Builder) error

// Compile runs fn in strict (JIT) mode. On success m is fully populated and
// err is nil. On failure, if err wraps a *JitError the caller (pkg/design)
// is expected to discard m, roll back any shared state it touched, and
// retry via Elaborate on a fresh module — exactly spec.md §4.4's
// "Execution model" and §7's JitError recovery policy. instantiate wires
// Context.Instance to the caller's specialization pipeline; it may be nil
// for a builder that never calls Instance.
func Compile(fn BuilderFunc, m *module.Builder, params map[string]any, instantiate InstantiateFunc) error {
	ctx := NewContext(ModeStrict, params)
	ctx.instantiate = instantiate

	return fn(ctx, m)
}

// Elaborate runs fn in elaboration-fallback mode (spec.md §4.5): the same
// builder DSL, without the strict guards, so the constructs spec.md §4.4
// rules 4/6 forbid manifest later and more generically as a
// *BuilderError rather than a precisely located *JitError. Any other error
// raised from user code is wrapped in a *BuilderError per spec.md §7.
func Elaborate(fn BuilderFunc, m *module.Builder, params map[string]any, instantiate InstantiateFunc) error {
	ctx := NewContext(ModeElaborate, params)
	ctx.instantiate = instantiate

	err := fn(ctx, m)
	if err == nil {
		return nil
	}

	var be *BuilderError
	if errors.As(err, &be) {
		return err
	}

	return &BuilderError{Detail: "builder raised an error during elaboration", Err: err}
}

// IsJitError reports whether err is (or wraps) a *JitError.
func IsJitError(err error) bool {
	var je *JitError
	return errors.As(err, &je)
}
