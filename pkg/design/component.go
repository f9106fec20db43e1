package design

import "github.com/linxisa/pycircuit-go/pkg/jit"

// ParamSpec and Component are declared in pkg/jit (rather than here) so a
// builder running under jit.Context can instantiate one as a submodule
// without pkg/jit importing pkg/design — see jit.Context.Instance and
// Context.instantiateChild in cache.go. This package re-exports them under
// their historical names for callers that only deal with top-level
// specialization.
type ParamSpec = jit.ParamSpec

type Component = jit.Component
