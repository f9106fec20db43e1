package jit

import (
	"errors"
	"testing"

	"github.com/linxisa/pycircuit-go/pkg/module"
)

func Test_Repeat_RunsExactlyN(t *testing.T) {
	count := 0

	if err := Repeat(5, func(i int) error {
		count++
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count != 5 {
		t.Fatalf("got %d iterations, want 5", count)
	}
}

func Test_Repeat_PropagatesBodyError(t *testing.T) {
	sentinel := errors.New("boom")

	err := Repeat(3, func(i int) error {
		if i == 1 {
			return sentinel
		}

		return nil
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected the body's error to propagate, got %v", err)
	}
}

func Test_RepeatSignal_StrictModeIsAlwaysAJitError(t *testing.T) {
	m := module.New("top")
	bound, _ := m.Input("bound", 8, false)

	ctx := NewContext(ModeStrict, nil)

	err := ctx.RepeatSignal(bound, func(i int) error { return nil })
	if err == nil {
		t.Fatalf("expected an error for a signal-conditioned loop bound")
	}

	var je *JitError
	if !errors.As(err, &je) {
		t.Fatalf("expected a *JitError in strict mode, got %T", err)
	}
}

func Test_RepeatSignal_ElaborationModeIsABuilderError(t *testing.T) {
	m := module.New("top")
	bound, _ := m.Input("bound", 8, false)

	ctx := NewContext(ModeElaborate, nil)

	calls := 0

	err := ctx.RepeatSignal(bound, func(i int) error {
		calls++
		if calls > 10 {
			return errors.New("stop early for the test")
		}

		return nil
	})

	if err == nil {
		t.Fatalf("expected an error for a signal-conditioned loop bound")
	}

	var be *BuilderError
	if !errors.As(err, &be) {
		t.Fatalf("expected a *BuilderError in elaboration mode, got %T", err)
	}
}
