package emit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/linxisa/pycircuit-go/pkg/design"
	"github.com/linxisa/pycircuit-go/pkg/jit"
	"github.com/linxisa/pycircuit-go/pkg/module"
)

func adderBuilder(ctx *jit.Context, m *module.Builder) error {
	a, err := m.Input("a", 8, false)
	if err != nil {
		return err
	}

	b, err := m.Input("b", 8, false)
	if err != nil {
		return err
	}

	sum, err := a.Add(b)
	if err != nil {
		return err
	}

	return m.Output("sum", sum)
}

func Test_Module_EmitsFunctionShapeWithPortsAndReturn(t *testing.T) {
	dctx := design.NewContext()

	comp := design.Component{Fn: adderBuilder, BaseName: "adder"}

	cm, err := dctx.Specialize(comp, nil, nil, "adder_test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer

	if err := Module(&buf, cm); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()

	if !strings.Contains(out, "func @adder_test(") {
		t.Fatalf("expected the output to declare the function symbol, got:\n%s", out)
	}

	if !strings.Contains(out, "return") {
		t.Fatalf("expected a return statement, got:\n%s", out)
	}

	if !strings.Contains(out, "hw.add(") {
		t.Fatalf("expected an add pseudo-op, got:\n%s", out)
	}
}

func Test_Design_WrapsModulesInTopLevelBlock(t *testing.T) {
	dctx := design.NewContext()
	comp := design.Component{Fn: adderBuilder, BaseName: "adder"}

	cm, err := dctx.Specialize(comp, nil, nil, "adder_top")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := dctx.Design.RegisterTop(cm.Symbol); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer

	if err := Design(&buf, dctx.Design); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()

	if !strings.Contains(out, "module attributes") {
		t.Fatalf("expected a top-level module attributes block, got:\n%s", out)
	}

	if !strings.Contains(out, "adder_top") {
		t.Fatalf("expected the top symbol to appear, got:\n%s", out)
	}
}
