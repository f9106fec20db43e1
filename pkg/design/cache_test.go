package design

import (
	"testing"

	"github.com/linxisa/pycircuit-go/pkg/jit"
	"github.com/linxisa/pycircuit-go/pkg/module"
)

func widthBuilder(ctx *jit.Context, m *module.Builder) error {
	width, err := ctx.ParamUint32("width")
	if err != nil {
		return err
	}

	clk := m.Clock("clk")
	rst := m.Reset("rst")

	reg, err := m.Register("r", clk, rst, width, 0, nil)
	if err != nil {
		return err
	}

	return m.Output("r", reg.Q)
}

func widthComponent() Component {
	return Component{
		Fn:       widthBuilder,
		BaseName: "widthtest",
		Params:   []ParamSpec{{Name: "width"}},
	}
}

func Test_Specialize_ExactRepeatHitsCache(t *testing.T) {
	ctx := NewContext()
	comp := widthComponent()

	cm1, err := ctx.Specialize(comp, map[string]any{"width": int64(8)}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cm2, err := ctx.Specialize(comp, map[string]any{"width": int64(8)}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cm1 != cm2 {
		t.Fatalf("expected an identical (function, params) specialization to hit the cache")
	}
}

func Test_Specialize_DistinctParamsProduceDistinctSymbols(t *testing.T) {
	ctx := NewContext()
	comp := widthComponent()

	cm8, err := ctx.Specialize(comp, map[string]any{"width": int64(8)}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cm16, err := ctx.Specialize(comp, map[string]any{"width": int64(16)}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cm8.Symbol == cm16.Symbol {
		t.Fatalf("expected different params to produce different symbols, both got %q", cm8.Symbol)
	}

	if len(ctx.Design.Modules()) != 2 {
		t.Fatalf("expected 2 distinct modules in the design, got %d", len(ctx.Design.Modules()))
	}
}

func Test_Specialize_UnknownParamFails(t *testing.T) {
	ctx := NewContext()
	comp := widthComponent()

	if _, err := ctx.Specialize(comp, map[string]any{"bogus": int64(1)}, nil, ""); err == nil {
		t.Fatalf("expected an error for an unknown parameter")
	}
}

func Test_Specialize_MissingRequiredParamFails(t *testing.T) {
	ctx := NewContext()
	comp := widthComponent()

	if _, err := ctx.Specialize(comp, map[string]any{}, nil, ""); err == nil {
		t.Fatalf("expected an error for a missing required parameter")
	}
}

func Test_Specialize_ExplicitNameOverridesSymbol(t *testing.T) {
	ctx := NewContext()
	comp := widthComponent()

	cm, err := ctx.Specialize(comp, map[string]any{"width": int64(8)}, nil, "my_width_8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cm.Symbol != "my_width_8" {
		t.Fatalf("got %q, want %q", cm.Symbol, "my_width_8")
	}
}

func Test_Specialize_ConflictingNameReuseFails(t *testing.T) {
	ctx := NewContext()
	comp := widthComponent()

	if _, err := ctx.Specialize(comp, map[string]any{"width": int64(8)}, nil, "shared"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ctx.Specialize(comp, map[string]any{"width": int64(16)}, nil, "shared"); err == nil {
		t.Fatalf("expected an error when two distinct specializations predict the same symbol")
	}
}

func Test_RegisterTop_RequiresExistingSymbol(t *testing.T) {
	d := NewDesign()

	if err := d.RegisterTop("nope"); err == nil {
		t.Fatalf("expected an error registering a nonexistent symbol as top")
	}
}

func Test_RegisterTop_Succeeds(t *testing.T) {
	ctx := NewContext()
	comp := widthComponent()

	cm, err := ctx.Specialize(comp, map[string]any{"width": int64(8)}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ctx.Design.RegisterTop(cm.Symbol); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ctx.Design.Top() != cm.Symbol {
		t.Fatalf("got %q, want %q", ctx.Design.Top(), cm.Symbol)
	}
}
