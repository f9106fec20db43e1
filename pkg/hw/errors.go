package hw

import "fmt"

// WidthError reports an operand-width or slice-bound violation detected at
// node construction time (spec.md §7).
type WidthError struct {
	Op        string
	Detail    string
	Widths    []uint32
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("width error in %s: %s (widths=%v)", e.Op, e.Detail, e.Widths)
}

func widthError(op, detail string, widths ...uint32) error {
	return &WidthError{Op: op, Detail: detail, Widths: widths}
}

// TypeError reports a non-signal value used where a signal was required, or
// vice versa (spec.md §7).
type TypeError struct {
	Detail string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: %s", e.Detail)
}

// ErrCrossModuleReference's message is the Detail of the TypeError panic
// raised when a signal belonging to one module's graph is used within
// another module's graph.
// spec.md §3: "a reference from module A to a node in module B is a
// failure."
var ErrCrossModuleReference = fmt.Errorf("hw: signal referenced outside its owning module graph")
