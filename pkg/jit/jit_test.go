package jit

import (
	"errors"
	"testing"

	"github.com/linxisa/pycircuit-go/pkg/module"
)

func Test_Compile_PopulatesModuleOnSuccess(t *testing.T) {
	m := module.New("adder")

	fn := func(ctx *Context, m *module.Builder) error {
		clk := m.Clock("clk")
		_ = clk

		a, err := m.Input("a", 8, false)
		if err != nil {
			return err
		}

		return m.Output("a_out", a)
	}

	if err := Compile(fn, m, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !m.HasOutputs() {
		t.Fatalf("expected the module to have at least one output")
	}
}

func Test_Compile_ReturnsRawJitError(t *testing.T) {
	m := module.New("bad")

	fn := func(ctx *Context, m *module.Builder) error {
		return &JitError{Construct: "test", Detail: "synthetic", Location: "nowhere"}
	}

	err := Compile(fn, m, nil, nil)

	var je *JitError
	if !errors.As(err, &je) {
		t.Fatalf("expected Compile to pass a *JitError through unwrapped, got %T", err)
	}
}

func Test_Elaborate_WrapsArbitraryErrors(t *testing.T) {
	m := module.New("bad")
	sentinel := errors.New("user code blew up")

	fn := func(ctx *Context, m *module.Builder) error {
		return sentinel
	}

	err := Elaborate(fn, m, nil, nil)

	var be *BuilderError
	if !errors.As(err, &be) {
		t.Fatalf("expected a *BuilderError, got %T", err)
	}

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected the BuilderError to wrap the original error")
	}
}

func Test_Elaborate_PassesThroughExistingBuilderError(t *testing.T) {
	m := module.New("bad")
	original := &BuilderError{Detail: "already wrapped"}

	fn := func(ctx *Context, m *module.Builder) error {
		return original
	}

	err := Elaborate(fn, m, nil, nil)

	if err != original {
		t.Fatalf("expected Elaborate to pass an existing *BuilderError through unchanged")
	}
}

func Test_ParamUint32_ReadsBoundParam(t *testing.T) {
	ctx := NewContext(ModeStrict, map[string]any{"width": int64(16)})

	w, err := ctx.ParamUint32("width")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w != 16 {
		t.Fatalf("got %d, want 16", w)
	}
}

func Test_ParamUint32_MissingParamFails(t *testing.T) {
	ctx := NewContext(ModeStrict, map[string]any{})

	if _, err := ctx.ParamUint32("missing"); err == nil {
		t.Fatalf("expected an error for a missing parameter")
	}
}
