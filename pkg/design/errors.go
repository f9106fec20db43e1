package design

// ErrorKind classifies a DesignError, mirroring the exception taxonomy
// design.py raises out of DesignContext.specialize/register_top.
type ErrorKind uint8

const (
	// BadParamType: a parameter value isn't one of the canonicalizable
	// kinds (spec.md §3/§4.6).
	BadParamType ErrorKind = iota
	// UnsupportedPortSpec: an explicit port-spec value couldn't be
	// canonicalized for the cache signature.
	UnsupportedPortSpec
	// DuplicateSymbol: two distinct specializations predicted the same
	// symbol name (spec.md §4.7's "_unique_sym" collision case, but for
	// a genuinely different cache key rather than a repeat hit).
	DuplicateSymbol
	// UnknownTop: RegisterTop named a symbol the design doesn't contain.
	UnknownTop
	// MissingArgument: a submodule instantiation (spec.md §4.4
	// "Recursion") omitted a signal for one of the child's declared
	// input ports.
	MissingArgument
	// ArgumentMismatch: a submodule instantiation bound a signal whose
	// width or signedness doesn't match the child's declared port type.
	ArgumentMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case BadParamType:
		return "bad-param-type"
	case UnsupportedPortSpec:
		return "unsupported-port-spec"
	case DuplicateSymbol:
		return "duplicate-symbol"
	case UnknownTop:
		return "unknown-top"
	case MissingArgument:
		return "missing-argument"
	case ArgumentMismatch:
		return "argument-mismatch"
	default:
		return "design-error"
	}
}

// DesignError reports a failure in parameter binding, canonicalization, or
// symbol-table bookkeeping — the Go analogue of design.py's ValueError/
// TypeError/KeyError raises in DesignContext.
type DesignError struct {
	Kind   ErrorKind
	Detail string
}

func (e *DesignError) Error() string {
	return "design: " + e.Kind.String() + ": " + e.Detail
}
