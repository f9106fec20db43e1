package hw

import (
	"math/big"

	"github.com/linxisa/pycircuit-go/pkg/bitvec"
)

// Signal is a handle to an interned Node within a particular Graph. It is
// the public value type builders manipulate; spec.md calls it a wire. Go has
// no operator overloading, so every combinator below is an explicit method
// (spec.md §9, "Operator overloading on signals → explicit constructor
// methods").
type Signal struct {
	g    *Graph
	id   NodeID
	Type bitvec.BitVec
}

// Graph returns the owning graph, used by module.Builder to validate
// same-module usage.
func (s Signal) Graph() *Graph { return s.g }

// ID returns the underlying interned node id.
func (s Signal) ID() NodeID { return s.id }

// IsValid reports whether this Signal wraps an actual node (the zero
// Signal is invalid).
func (s Signal) IsValid() bool { return s.g != nil }

func (g *Graph) wrap(id NodeID, t bitvec.BitVec) Signal {
	return Signal{g: g, id: id, Type: t}
}

func (s Signal) node() Node { return s.g.Node(s.id) }

// sameGraph panics with a TypeError-wrapped ErrCrossModuleReference if a and
// b do not share a graph. This is the enforcement point for spec.md §3's
// "a reference from module A to a node in module B is a failure."
func sameGraph(a, b Signal) {
	if a.g != b.g {
		panic(&TypeError{Detail: ErrCrossModuleReference.Error()})
	}
}

func constValue(s Signal) (*big.Int, bool) {
	n := s.node()
	if n.Op != OpConst {
		return nil, false
	}

	return n.Attrs.ConstValue, true
}

// Const creates or dedupes a constant of the given width. Negative values
// are only accepted when signed is true. Out-of-range values fail with a
// WidthError (spec.md §4.1).
func (g *Graph) Const(value int64, width uint32, signed bool) (Signal, error) {
	t, err := bitvec.New(width, signed)
	if err != nil {
		return Signal{}, err
	}

	if !t.InRange(value) {
		return Signal{}, widthError("const", "value out of range for type", width)
	}

	raw := big.NewInt(value)
	raw = wrapUnsigned(raw, width)
	id := g.intern(Node{Op: OpConst, Type: t, Attrs: Attrs{ConstValue: raw}})

	return g.wrap(id, t), nil
}

// MustConst is Const, panicking on error; convenient for literals known to
// be valid at the call site.
func (g *Graph) MustConst(value int64, width uint32, signed bool) Signal {
	s, err := g.Const(value, width, signed)
	if err != nil {
		panic(err)
	}

	return s
}

// InputPort declares (or, if already declared in this graph with the same
// name/width/signedness, dedupes) an input port signal.
func (g *Graph) InputPort(name string, width uint32, signed bool) (Signal, error) {
	t, err := bitvec.New(width, signed)
	if err != nil {
		return Signal{}, err
	}

	id := g.intern(Node{Op: OpInputPort, Type: t, Attrs: Attrs{PortName: name}})

	return g.wrap(id, t), nil
}

// Clock declares a 1-bit clock port signal named name.
func (g *Graph) Clock(name string) Signal {
	id := g.intern(Node{Op: OpClock, Type: bitvec.Bool(), Attrs: Attrs{PortName: name}})
	return g.wrap(id, bitvec.Bool())
}

// Reset declares a 1-bit active-high reset port signal named name.
func (g *Graph) Reset(name string) Signal {
	id := g.intern(Node{Op: OpReset, Type: bitvec.Bool(), Attrs: Attrs{PortName: name}})
	return g.wrap(id, bitvec.Bool())
}

func requireEqualWidth(op string, a, b Signal) error {
	if a.Type.Width != b.Type.Width {
		return widthError(op, "operand widths must match", a.Type.Width, b.Type.Width)
	}

	return nil
}

func binaryBitwiseOrArith(g *Graph, op Opcode, name string, a, b Signal) (Signal, error) {
	sameGraph(a, b)

	if err := requireEqualWidth(name, a, b); err != nil {
		return Signal{}, err
	}

	t := a.Type

	if av, aok := constValue(a); aok {
		if bv, bok := constValue(b); bok && op.IsPure() {
			if folded, ok := foldBinaryArith(op, av, bv, t.Width); ok {
				return g.Const64Raw(folded, t), nil
			}
		}
	}

	if s, ok := identitySimplifyBinary(g, op, a, b); ok {
		return s, nil
	}

	id := g.intern(Node{Op: op, Type: t, Operands: []NodeID{a.id, b.id}})

	return g.wrap(id, t), nil
}

// Const64Raw wraps an already-width-masked raw value as a constant Signal of
// type t, interning it like any other constant.
func (g *Graph) Const64Raw(raw *big.Int, t bitvec.BitVec) Signal {
	id := g.intern(Node{Op: OpConst, Type: t, Attrs: Attrs{ConstValue: new(big.Int).Set(raw)}})
	return g.wrap(id, t)
}

// And computes the bitwise AND of two equal-width signals.
func (s Signal) And(o Signal) (Signal, error) { return binaryBitwiseOrArith(s.g, OpAnd, "and", s, o) }

// Or computes the bitwise OR of two equal-width signals.
func (s Signal) Or(o Signal) (Signal, error) { return binaryBitwiseOrArith(s.g, OpOr, "or", s, o) }

// Xor computes the bitwise XOR of two equal-width signals.
func (s Signal) Xor(o Signal) (Signal, error) { return binaryBitwiseOrArith(s.g, OpXor, "xor", s, o) }

// Add computes the sum of two equal-width signals, wrapping mod 2^width.
func (s Signal) Add(o Signal) (Signal, error) { return binaryBitwiseOrArith(s.g, OpAdd, "add", s, o) }

// Sub computes the difference of two equal-width signals, wrapping mod
// 2^width.
func (s Signal) Sub(o Signal) (Signal, error) { return binaryBitwiseOrArith(s.g, OpSub, "sub", s, o) }

// Mul computes the product of two equal-width signals, wrapping mod
// 2^width.
func (s Signal) Mul(o Signal) (Signal, error) { return binaryBitwiseOrArith(s.g, OpMul, "mul", s, o) }

// Udiv computes unsigned integer division.
func (s Signal) Udiv(o Signal) (Signal, error) {
	return binaryBitwiseOrArith(s.g, OpUdiv, "udiv", s, o)
}

// Urem computes the unsigned remainder.
func (s Signal) Urem(o Signal) (Signal, error) {
	return binaryBitwiseOrArith(s.g, OpUrem, "urem", s, o)
}

// Sdiv computes signed integer division (two's complement interpretation).
func (s Signal) Sdiv(o Signal) (Signal, error) {
	return binaryBitwiseOrArith(s.g, OpSdiv, "sdiv", s, o)
}

// Srem computes the signed remainder (two's complement interpretation).
func (s Signal) Srem(o Signal) (Signal, error) {
	return binaryBitwiseOrArith(s.g, OpSrem, "srem", s, o)
}

// Not computes the bitwise complement.
func (s Signal) Not() Signal {
	if v, ok := constValue(s); ok {
		folded := wrapUnsigned(new(big.Int).Not(v), s.Type.Width)
		return s.g.Const64Raw(folded, s.Type)
	}

	// ~~x -> x
	if n := s.node(); n.Op == OpNot {
		return s.g.wrap(n.Operands[0], s.Type)
	}

	id := s.g.intern(Node{Op: OpNot, Type: s.Type, Operands: []NodeID{s.id}})

	return s.g.wrap(id, s.Type)
}

func cmp(variant CmpVariant, a, b Signal) (Signal, error) {
	sameGraph(a, b)

	if err := requireEqualWidth("cmp:"+variant.String(), a, b); err != nil {
		return Signal{}, err
	}

	t := bitvec.Bool()

	if av, aok := constValue(a); aok {
		if bv, bok := constValue(b); bok {
			return a.g.Const64Raw(foldCompare(variant, av, bv, a.Type.Width), t), nil
		}
	}

	id := a.g.intern(Node{
		Op: OpCmp, Type: t, Operands: []NodeID{a.id, b.id},
		Attrs: Attrs{Cmp: variant},
	})

	return a.g.wrap(id, t), nil
}

// Eq, Ne, Ult, Ule, Ugt, Uge, Slt, Sle, Sgt, Sge implement the comparison
// variants of spec.md §6. Each produces a 1-bit result.
func (s Signal) Eq(o Signal) (Signal, error)  { return cmp(CmpEq, s, o) }
func (s Signal) Ne(o Signal) (Signal, error)  { return cmp(CmpNe, s, o) }
func (s Signal) Ult(o Signal) (Signal, error) { return cmp(CmpUlt, s, o) }
func (s Signal) Ule(o Signal) (Signal, error) { return cmp(CmpUle, s, o) }
func (s Signal) Ugt(o Signal) (Signal, error) { return cmp(CmpUgt, s, o) }
func (s Signal) Uge(o Signal) (Signal, error) { return cmp(CmpUge, s, o) }
func (s Signal) Slt(o Signal) (Signal, error) { return cmp(CmpSlt, s, o) }
func (s Signal) Sle(o Signal) (Signal, error) { return cmp(CmpSle, s, o) }
func (s Signal) Sgt(o Signal) (Signal, error) { return cmp(CmpSgt, s, o) }
func (s Signal) Sge(o Signal) (Signal, error) { return cmp(CmpSge, s, o) }

// Slice extracts bits [lo, hi) from s, per spec.md §3/§4.1. Requires
// 0 <= lo < hi <= s.Type.Width.
func (s Signal) Slice(lo, hi uint32) (Signal, error) {
	if !(lo < hi && hi <= s.Type.Width) {
		return Signal{}, widthError("slice", "require 0 <= lo < hi <= operand width", lo, hi, s.Type.Width)
	}

	t := bitvec.Unsigned(hi - lo)

	// slice(cat(hi_part, lo_part), ...) identity: a slice exactly matching
	// one side of a concat reduces to that side (spec.md §4.1 and §8
	// round-trip law).
	if n := s.node(); n.Op == OpConcat {
		loPart := s.g.wrap(n.Operands[1], s.g.Node(n.Operands[1]).Type)
		hiPart := s.g.wrap(n.Operands[0], s.g.Node(n.Operands[0]).Type)

		if lo == 0 && hi == loPart.Type.Width {
			return loPart, nil
		}

		if lo == loPart.Type.Width && hi == loPart.Type.Width+hiPart.Type.Width {
			return hiPart, nil
		}
	}

	if v, ok := constValue(s); ok {
		shifted := new(big.Int).Rsh(v, uint(lo))
		folded := wrapUnsigned(shifted, hi-lo)

		return s.g.Const64Raw(folded, t), nil
	}

	id := s.g.intern(Node{Op: OpSlice, Type: t, Operands: []NodeID{s.id}, Attrs: Attrs{SliceLo: lo, SliceHi: hi}})

	return s.g.wrap(id, t), nil
}

// BitAt extracts a single bit as a 1-bit signal (s[i] in spec.md §6).
func (s Signal) BitAt(i uint32) (Signal, error) {
	if i >= s.Type.Width {
		return Signal{}, widthError("bit_at", "index out of range", i, s.Type.Width)
	}

	t := bitvec.Bool()

	if v, ok := constValue(s); ok {
		folded := wrapUnsigned(new(big.Int).Rsh(v, uint(i)), 1)
		return s.g.Const64Raw(folded, t), nil
	}

	id := s.g.intern(Node{Op: OpBitAt, Type: t, Operands: []NodeID{s.id}, Attrs: Attrs{BitIndex: i}})

	return s.g.wrap(id, t), nil
}

// adjacentSliceCat detects acc == slice(s, mid, hi) and next == slice(s, lo,
// mid) for some shared source s, and returns the single slice(s, lo, hi)
// that covers both, per spec.md §4.1's mandatory simplification list.
func adjacentSliceCat(g *Graph, acc, next Signal, t bitvec.BitVec) (Signal, bool) {
	accNode := acc.node()
	nextNode := next.node()

	if accNode.Op != OpSlice || nextNode.Op != OpSlice {
		return Signal{}, false
	}

	if accNode.Operands[0] != nextNode.Operands[0] {
		return Signal{}, false
	}

	if accNode.Attrs.SliceLo != nextNode.Attrs.SliceHi {
		return Signal{}, false
	}

	src := g.wrap(accNode.Operands[0], g.Node(accNode.Operands[0]).Type)

	// Slices covering all of an unsigned source recombine into the source.
	if nextNode.Attrs.SliceLo == 0 && accNode.Attrs.SliceHi == src.Type.Width && src.Type.Equal(t) {
		return src, true
	}

	merged, err := src.Slice(nextNode.Attrs.SliceLo, accNode.Attrs.SliceHi)
	if err != nil || merged.Type.Width != t.Width {
		return Signal{}, false
	}

	return merged, true
}

// Cat concatenates signals high-to-low: Cat(hi, ..., lo) places the first
// argument in the most-significant position (spec.md §6).
func Cat(g *Graph, parts ...Signal) (Signal, error) {
	if len(parts) == 0 {
		return Signal{}, &TypeError{Detail: "cat requires at least one operand"}
	}

	acc := parts[0]

	for _, next := range parts[1:] {
		sameGraph(acc, next)

		w := acc.Type.Width + next.Type.Width
		t := bitvec.Unsigned(w)

		accV, accOK := constValue(acc)
		nextV, nextOK := constValue(next)

		if accOK && nextOK {
			folded := new(big.Int).Lsh(accV, uint(next.Type.Width))
			folded.Or(folded, nextV)
			acc = g.Const64Raw(folded, t)

			continue
		}

		// cat(slice(s, mid, hi), slice(s, lo, mid)) identity: two adjacent
		// slices of the same signal, high part first, reduce to the single
		// slice they cover (spec.md §4.1's mandatory simplification list).
		if merged, ok := adjacentSliceCat(g, acc, next, t); ok {
			acc = merged
			continue
		}

		id := g.intern(Node{Op: OpConcat, Type: t, Operands: []NodeID{acc.id, next.id}})
		acc = g.wrap(id, t)
	}

	return acc, nil
}

// Zext zero-extends s to width w (w must be >= s.Type.Width).
func (s Signal) Zext(w uint32) (Signal, error) {
	if w < s.Type.Width {
		return Signal{}, widthError("zext", "target width must be >= operand width", w, s.Type.Width)
	}

	if w == s.Type.Width {
		return s, nil
	}

	t := bitvec.Unsigned(w)

	// zext(w2, zext(w1, x)) == zext(w2, x): collapse nested zext (spec.md §8).
	if n := s.node(); n.Op == OpZext {
		inner := s.g.wrap(n.Operands[0], s.g.Node(n.Operands[0]).Type)
		return inner.Zext(w)
	}

	if v, ok := constValue(s); ok {
		return s.g.Const64Raw(new(big.Int).Set(v), t), nil
	}

	id := s.g.intern(Node{Op: OpZext, Type: t, Operands: []NodeID{s.id}, Attrs: Attrs{ExtWidth: w}})

	return s.g.wrap(id, t), nil
}

// Sext sign-extends s (interpreted two's-complement) to width w.
func (s Signal) Sext(w uint32) (Signal, error) {
	if w < s.Type.Width {
		return Signal{}, widthError("sext", "target width must be >= operand width", w, s.Type.Width)
	}

	if w == s.Type.Width {
		return s, nil
	}

	t := bitvec.BitVec{Width: w, Signed: true}

	if v, ok := constValue(s); ok {
		sv := asSigned(v, s.Type.Width)
		return s.g.Const64Raw(wrapUnsigned(sv, w), t), nil
	}

	id := s.g.intern(Node{Op: OpSext, Type: t, Operands: []NodeID{s.id}, Attrs: Attrs{ExtWidth: w}})

	return s.g.wrap(id, t), nil
}

func shiftConst(op Opcode, name string, s Signal, amount uint32) Signal {
	if v, ok := constValue(s); ok {
		folded := foldShiftConst(op, v, amount, s.Type.Width)
		return s.g.Const64Raw(folded, s.Type)
	}

	if amount == 0 {
		return s
	}

	id := s.g.intern(Node{Op: op, Type: s.Type, Operands: []NodeID{s.id}, Attrs: Attrs{ShiftAmount: amount}})

	return s.g.wrap(id, s.Type)
}

// ShlConst shifts s left by a host-constant amount.
func (s Signal) ShlConst(amount uint32) Signal { return shiftConst(OpShlConst, "shl_const", s, amount) }

// LshrConst shifts s right logically by a host-constant amount.
func (s Signal) LshrConst(amount uint32) Signal {
	return shiftConst(OpLshrConst, "lshr_const", s, amount)
}

// AshrConst shifts s right arithmetically (sign-filling) by a host-constant
// amount.
func (s Signal) AshrConst(amount uint32) Signal {
	return shiftConst(OpAshrConst, "ashr_const", s, amount)
}

func shiftSignal(op Opcode, name string, s, amount Signal) (Signal, error) {
	sameGraph(s, amount)

	id := s.g.intern(Node{Op: op, Type: s.Type, Operands: []NodeID{s.id, amount.id}})

	return s.g.wrap(id, s.Type), nil
}

// ShlSignal shifts s left by a variable, signal-valued amount.
func (s Signal) ShlSignal(amount Signal) (Signal, error) {
	return shiftSignal(OpShlSignal, "shl", s, amount)
}

// LshrSignal shifts s right logically by a variable, signal-valued amount.
func (s Signal) LshrSignal(amount Signal) (Signal, error) {
	return shiftSignal(OpLshrSignal, "lshr", s, amount)
}

// AshrSignal shifts s right arithmetically by a variable, signal-valued
// amount.
func (s Signal) AshrSignal(amount Signal) (Signal, error) {
	return shiftSignal(OpAshrSignal, "ashr", s, amount)
}

// Select implements the 1-bit-conditioned mux node of spec.md §4.1: a
// host-language `cond ? then_ : else_` shaped expression is recognised by
// pkg/jit and lowered to this node.
func Select(cond, thenSig, elseSig Signal) (Signal, error) {
	sameGraph(cond, thenSig)
	sameGraph(cond, elseSig)

	if cond.Type.Width != 1 {
		return Signal{}, widthError("select", "condition width must be 1", cond.Type.Width)
	}

	if thenSig.Type.Width != elseSig.Type.Width {
		return Signal{}, widthError("select", "branch widths must match", thenSig.Type.Width, elseSig.Type.Width)
	}

	// select(1, a, b) -> a ; select(0, a, b) -> b
	if cv, ok := constValue(cond); ok {
		if cv.Sign() == 0 {
			return elseSig, nil
		}

		return thenSig, nil
	}

	// select(c, x, x) -> x
	if thenSig.id == elseSig.id {
		return thenSig, nil
	}

	t := thenSig.Type
	id := cond.g.intern(Node{Op: OpSelect, Type: t, Operands: []NodeID{cond.id, thenSig.id, elseSig.id}})

	return cond.g.wrap(id, t), nil
}
