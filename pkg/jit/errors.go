// Package jit implements the control-flow lowerer (C4) and its elaboration
// fallback (C5) from spec.md §4.4/§4.5.
//
// Go has no macro facility or AST access to a closure's source, so C4 cannot
// be "rewrite the builder's host if/elif/else before running it" the way
// the original Python frontend does. Per spec.md §9's own guidance for "a
// target without metaprogramming", this package instead offers an explicit
// region-scoped builder DSL (If/ElseIf/Else/End, Var) that a builder author
// writes directly in place of a host `if`. The same DSL runs in two modes —
// strict (jit.Compile) and elaboration (jit.Elaborate) — so the
// architecture of "attempt a strict lowering, fall back to plain execution
// on failure, with state rolled back in between" is preserved even though
// there is no source rewrite to attempt.
package jit

import (
	"fmt"
)

// JitError is raised by strict-mode lowering when a builder uses a
// construct spec.md §4.4 calls out as inexpressible in the graph: a
// dynamic-bound loop, an early exit from an open conditional region, or a
// submodule instantiation that couldn't be wired. Rule 7's "variable read
// outside its region when not every branch assigned it" has no lowering
// path to guard: every jit.Var always carries a baseline value from
// NewVar, so a read is never actually unassigned — it falls back to that
// baseline, which is the identity-merge behavior Chain.End already
// implements. JitError is always caught by the caller (pkg/design) and
// triggers the elaboration fallback; spec.md §7 notes it "never surfaced
// if fallback succeeds".
type JitError struct {
	Construct string
	Detail    string
	Location  string
}

func (e *JitError) Error() string {
	return fmt.Sprintf("jit: %s: %s (at %s)", e.Construct, e.Detail, e.Location)
}

// BuilderError wraps any error raised from user code during elaboration
// (spec.md §7); it is the terminal error surfaced to the caller of
// compile_design/Specialize once both strict lowering and the elaboration
// fallback have failed.
type BuilderError struct {
	Detail string
	Err    error
}

func (e *BuilderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("builder error: %s: %v", e.Detail, e.Err)
	}

	return fmt.Sprintf("builder error: %s", e.Detail)
}

func (e *BuilderError) Unwrap() error { return e.Err }

// ParamErrorKind classifies a ParamError.
type ParamErrorKind uint8

const (
	// UnknownParam: a caller passed a parameter name the component's
	// ParamSpec list doesn't declare.
	UnknownParam ParamErrorKind = iota
	// MissingParam: a required parameter (no default in ParamSpec) was
	// not supplied.
	MissingParam
)

func (k ParamErrorKind) String() string {
	switch k {
	case UnknownParam:
		return "unknown-param"
	case MissingParam:
		return "missing-param"
	default:
		return "param-error"
	}
}

// ParamError reports a failure in Component.Bind (spec.md §4.6).
type ParamError struct {
	Kind   ParamErrorKind
	Detail string
}

func (e *ParamError) Error() string {
	return "jit: " + e.Kind.String() + ": " + e.Detail
}
