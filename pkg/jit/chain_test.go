package jit

import (
	"testing"

	"github.com/linxisa/pycircuit-go/pkg/hw"
	"github.com/linxisa/pycircuit-go/pkg/module"
)

func Test_Chain_MergesThenElseIntoNestedSelect(t *testing.T) {
	m := module.New("top")
	g := m.Graph()

	up, _ := m.Input("up", 1, false)
	down, _ := m.Input("down", 1, false)

	base, _ := g.Const(0, 8, false)
	one, _ := g.Const(1, 8, false)

	v := NewVar("v", base)
	ctx := NewContext(ModeStrict, nil)

	chain := ctx.If(m, up, func(rs *RegionScope) error {
		sum, err := rs.Var(v).Add(one)
		if err != nil {
			return err
		}

		rs.SetVar(v, sum)

		return nil
	})

	chain = chain.ElseIf(down, func(rs *RegionScope) error {
		diff, err := rs.Var(v).Sub(one)
		if err != nil {
			return err
		}

		rs.SetVar(v, diff)

		return nil
	})

	if err := chain.End(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ctx.InRegion() {
		t.Fatalf("expected the region to be closed after End()")
	}

	n := g.Node(v.Get().ID())
	if n.Op != hw.OpSelect {
		t.Fatalf("expected the merged var to be a select node, got %s", n.Op)
	}
}

func Test_Chain_ElseBranchCoversRemainingCases(t *testing.T) {
	m := module.New("top")
	g := m.Graph()

	cond, _ := m.Input("cond", 1, false)

	zero, _ := g.Const(0, 8, false)
	one, _ := g.Const(1, 8, false)

	v := NewVar("v", zero)
	ctx := NewContext(ModeStrict, nil)

	chain := ctx.If(m, cond, func(rs *RegionScope) error {
		rs.SetVar(v, one)
		return nil
	})

	chain = chain.Else(func(rs *RegionScope) error {
		rs.SetVar(v, zero)
		return nil
	})

	if err := chain.End(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := g.Node(v.Get().ID())
	if n.Op != hw.OpSelect {
		t.Fatalf("expected a select node, got %s", n.Op)
	}
}

func Test_Chain_UnassignedVarsKeepBaseline(t *testing.T) {
	m := module.New("top")
	g := m.Graph()

	cond, _ := m.Input("cond", 1, false)
	base, _ := g.Const(7, 8, false)

	v := NewVar("v", base)
	ctx := NewContext(ModeStrict, nil)

	chain := ctx.If(m, cond, func(rs *RegionScope) error {
		// Never touches v.
		return nil
	})

	if err := chain.End(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v.Get().ID() != base.ID() {
		t.Fatalf("expected an untouched var to keep its baseline value unchanged")
	}
}
