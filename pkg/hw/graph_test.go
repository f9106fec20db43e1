package hw

import "testing"

func Test_Intern_DedupesIdenticalConstants(t *testing.T) {
	g := NewGraph()

	a, err := g.Const(5, 8, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := g.Const(5, 8, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.ID() != b.ID() {
		t.Fatalf("expected structurally identical constants to share a node id, got %d and %d", a.ID(), b.ID())
	}
}

func Test_Intern_DistinctInputPortsNeverMerge(t *testing.T) {
	g := NewGraph()

	a, err := g.InputPort("x", 8, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := g.InputPort("y", 8, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.ID() == b.ID() {
		t.Fatalf("expected distinctly-named ports to never be deduplicated")
	}
}

func Test_Intern_CommonSubexpressionElimination(t *testing.T) {
	g := NewGraph()

	x, _ := g.InputPort("x", 8, false)
	y, _ := g.InputPort("y", 8, false)

	sum1, err := x.Add(y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum2, err := x.Add(y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sum1.ID() != sum2.ID() {
		t.Fatalf("expected two structurally identical add nodes to share one interned id")
	}

	if g.Size() != 3 {
		t.Fatalf("expected exactly 3 interned nodes (x, y, add), got %d", g.Size())
	}
}

func Test_CrossGraphReference_Panics(t *testing.T) {
	g1 := NewGraph()
	g2 := NewGraph()

	a, _ := g1.InputPort("a", 8, false)
	b, _ := g2.InputPort("b", 8, false)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a panic for a cross-graph operand")
		}
	}()

	_, _ = a.Add(b)
}
