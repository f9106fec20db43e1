package jit

// ParamSpec declares one parameter a Component accepts. Go cannot reflect
// over a function's default argument values the way Python's
// inspect.signature does for the @module decorator (spec.md §9's open
// question on parameter binding); components instead declare their
// parameters explicitly.
type ParamSpec struct {
	Name string
	// HasDefault and Default together stand in for Python's "parameter
	// with a default value"; a ParamSpec with HasDefault == false is
	// required on every Specialize call.
	HasDefault bool
	Default    any
}

// Component is the Go realization of a @module-decorated builder function:
// a BuilderFunc plus the metadata needed to bind parameters and derive a
// human-readable base name for generated symbols (spec.md §4.6, §9). It
// lives in pkg/jit rather than pkg/design so a builder can instantiate one
// as a submodule (Context.Instance) without pkg/jit importing pkg/design;
// pkg/design re-exports it as design.Component for specialization-cache
// callers.
type Component struct {
	// Fn is the builder body itself.
	Fn BuilderFunc
	// BaseName seeds generated symbol names (e.g. "adder" -> "adder__p3f9a1c2d").
	BaseName string
	// Params declares the accepted parameter names, in the order they
	// should appear in diagnostics (canonicalization itself is order-
	// independent: params are matched, bound, and encoded by name).
	Params []ParamSpec
}

// Bind resolves a caller-supplied params map against c.Params: fills in
// defaults, rejects unknown names, and requires every parameter without a
// default to be present.
func (c Component) Bind(params map[string]any) (map[string]any, error) {
	declared := make(map[string]ParamSpec, len(c.Params))
	for _, p := range c.Params {
		declared[p.Name] = p
	}

	for name := range params {
		if _, ok := declared[name]; !ok {
			return nil, &ParamError{Kind: UnknownParam, Detail: "component " + c.BaseName + " has no parameter named " + name}
		}
	}

	bound := make(map[string]any, len(c.Params))

	for _, p := range c.Params {
		if v, ok := params[p.Name]; ok {
			bound[p.Name] = v
			continue
		}

		if !p.HasDefault {
			return nil, &ParamError{Kind: MissingParam, Detail: "component " + c.BaseName + " requires parameter " + p.Name}
		}

		bound[p.Name] = p.Default
	}

	return bound, nil
}
