package jit

import "github.com/linxisa/pycircuit-go/pkg/hw"

// maxDynamicUnroll bounds how many iterations RepeatSignal's elaboration
// path will attempt before giving up and reporting the dynamic bound as a
// BuilderError. spec.md §4.4 rule 4 makes a signal-conditioned loop bound
// *always* illegal; this ceiling only exists so the elaboration fallback
// terminates instead of looping forever while it discovers that.
const maxDynamicUnroll = 1 << 20

// Repeat fully unrolls body for i in [0, n), where n is a host-language
// constant — always legal per spec.md §4.4 rule 4 ("loops whose bounds are
// host-language constants are fully unrolled").
func Repeat(n int, body func(i int) error) error {
	for i := 0; i < n; i++ {
		if err := body(i); err != nil {
			return err
		}
	}

	return nil
}

// RepeatSignal represents a loop whose iteration count depends on a signal
// value — spec.md §4.4 rule 4: "loops whose condition involves a signal are
// a compilation error (the graph has no notion of dynamic iteration)." This
// is unconditionally illegal; the only difference between the two modes is
// how that illegality is reported (spec.md E4).
func (c *Context) RepeatSignal(bound hw.Signal, body func(i int) error) error {
	if c.Mode == ModeStrict {
		return &JitError{
			Construct: "dynamic-loop-bound",
			Detail:    "loop bound depends on a signal; the graph has no notion of dynamic iteration",
			Location:  loc(),
		}
	}

	// Elaboration mode: there is no lowering for this at all, but we still
	// have to *discover* that by trying, since the fallback runs the
	// original builder as ordinary code. Cap the attempt so a malformed
	// bound can't hang the compiler.
	for i := 0; i < maxDynamicUnroll; i++ {
		if err := body(i); err != nil {
			return &BuilderError{Detail: "dynamic iteration bound encountered while elaborating a signal-conditioned loop", Err: err}
		}
	}

	return &BuilderError{Detail: "dynamic iteration bound encountered while elaborating a signal-conditioned loop: exceeded unroll ceiling"}
}
