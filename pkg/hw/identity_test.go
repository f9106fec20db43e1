package hw

import "testing"

func Test_Identity_SelfAndOr(t *testing.T) {
	g := NewGraph()
	x, _ := g.InputPort("x", 8, false)

	andX, err := x.And(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if andX.ID() != x.ID() {
		t.Errorf("expected x & x == x")
	}

	orX, err := x.Or(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if orX.ID() != x.ID() {
		t.Errorf("expected x | x == x")
	}
}

func Test_Identity_SelfXorIsZero(t *testing.T) {
	g := NewGraph()
	x, _ := g.InputPort("x", 8, false)

	xorX, err := x.Xor(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, ok := constValue(xorX)
	if !ok || v.Sign() != 0 {
		t.Fatalf("expected x ^ x == 0")
	}
}

func Test_Identity_AddSubZero(t *testing.T) {
	g := NewGraph()
	x, _ := g.InputPort("x", 8, false)
	zero, _ := g.Const(0, 8, false)

	sum, err := x.Add(zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sum.ID() != x.ID() {
		t.Errorf("expected x + 0 == x")
	}

	diff, err := x.Sub(zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff.ID() != x.ID() {
		t.Errorf("expected x - 0 == x")
	}
}

func Test_Identity_MulZeroAndOne(t *testing.T) {
	g := NewGraph()
	x, _ := g.InputPort("x", 8, false)
	zero, _ := g.Const(0, 8, false)
	one, _ := g.Const(1, 8, false)

	mz, err := x.Mul(zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, ok := constValue(mz); !ok || v.Sign() != 0 {
		t.Errorf("expected x * 0 == 0")
	}

	mo, err := x.Mul(one)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mo.ID() != x.ID() {
		t.Errorf("expected x * 1 == x")
	}
}

func Test_Identity_SelectConstantCondition(t *testing.T) {
	g := NewGraph()
	a, _ := g.InputPort("a", 8, false)
	b, _ := g.InputPort("b", 8, false)

	one := g.MustConst(1, 1, false)
	zero := g.MustConst(0, 1, false)

	selOne, err := Select(one, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if selOne.ID() != a.ID() {
		t.Errorf("expected select(1, a, b) == a")
	}

	selZero, err := Select(zero, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if selZero.ID() != b.ID() {
		t.Errorf("expected select(0, a, b) == b")
	}
}

func Test_Identity_SelectSameBranches(t *testing.T) {
	g := NewGraph()
	cond, _ := g.InputPort("cond", 1, false)
	x, _ := g.InputPort("x", 8, false)

	sel, err := Select(cond, x, x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sel.ID() != x.ID() {
		t.Errorf("expected select(c, x, x) == x")
	}
}

func Test_Identity_SliceOfConcatReduces(t *testing.T) {
	g := NewGraph()
	hi, _ := g.InputPort("hi", 4, false)
	lo, _ := g.InputPort("lo", 4, false)

	cat, err := Cat(g, hi, lo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loSlice, err := cat.Slice(0, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loSlice.ID() != lo.ID() {
		t.Errorf("expected slice(cat(hi, lo), 0, 4) == lo")
	}

	hiSlice, err := cat.Slice(4, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hiSlice.ID() != hi.ID() {
		t.Errorf("expected slice(cat(hi, lo), 4, 8) == hi")
	}
}

func Test_Identity_CatOfAdjacentSlicesReduces(t *testing.T) {
	g := NewGraph()
	s, _ := g.InputPort("s", 8, false)

	hiPart, err := s.Slice(4, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loPart, err := s.Slice(0, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cat, err := Cat(g, hiPart, loPart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cat.ID() != s.ID() {
		t.Errorf("expected cat(slice(s, 4, 8), slice(s, 0, 4)) == s")
	}
}

func Test_Identity_CatOfNonAdjacentSlicesDoesNotReduce(t *testing.T) {
	g := NewGraph()
	s, _ := g.InputPort("s", 8, false)

	hiPart, err := s.Slice(4, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loPart, err := s.Slice(0, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cat, err := Cat(g, hiPart, loPart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cat.node().Op != OpConcat {
		t.Errorf("expected cat(slice(s, 4, 8), slice(s, 0, 3)) to stay a concat, got %s", cat.node().Op)
	}
}

func Test_Identity_ZextOfZextCollapses(t *testing.T) {
	g := NewGraph()
	x, _ := g.InputPort("x", 4, false)

	z1, err := x.Zext(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	z2, err := z1.Zext(16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	direct, err := x.Zext(16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if z2.ID() != direct.ID() {
		t.Errorf("expected zext(16, zext(8, x)) == zext(16, x) via CSE")
	}
}
