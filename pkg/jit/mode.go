package jit

// Mode selects whether a Context enforces the strict (JIT) lowering rules
// of spec.md §4.4 or runs as the elaboration fallback of §4.5.
type Mode uint8

const (
	// ModeStrict rejects a signal-dependent loop bound (RepeatSignal) and an
	// early exit from an open region (RegionScope.Abort) eagerly, failing
	// fast with a precisely located JitError.
	ModeStrict Mode = iota
	// ModeElaborate runs the same builder DSL without the eager guards;
	// violations of the same rules surface later, as a generic
	// BuilderError, exactly as spec.md §4.5/E4 describe.
	ModeElaborate
)

// Context carries the per-compilation-attempt lowering state: which mode is
// active, the bound parameters for this specialization (the Go stand-in for
// Python's **kwargs binding into the builder's local scope, since a
// BuilderFunc has no per-call parameter list of its own), and a count of
// open conditional regions (reported by InRegion).
type Context struct {
	Mode   Mode
	Params map[string]any
	depth  int

	instantiate InstantiateFunc
}

// NewContext constructs a fresh lowering context in the given mode, carrying
// the given bound parameters (may be nil for a parameterless builder). The
// returned Context has no submodule instantiator wired in; use Compile or
// Elaborate (which set one up via pkg/design) to build a builder that calls
// Context.Instance.
func NewContext(mode Mode, params map[string]any) *Context {
	return &Context{Mode: mode, Params: params}
}

func (c *Context) pushRegion() { c.depth++ }
func (c *Context) popRegion()  { c.depth-- }

// InRegion reports whether a conditional region is currently open.
func (c *Context) InRegion() bool { return c.depth > 0 }
