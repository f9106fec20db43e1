package hw

import "math/big"

// identitySimplifyBinary applies the mandatory identity simplifications of
// spec.md §4.1 that apply to a binary bitwise/arithmetic node, before it
// would otherwise be interned. Returns ok=false if no simplification
// applies (the caller then interns the node normally).
func identitySimplifyBinary(g *Graph, op Opcode, a, b Signal) (Signal, bool) {
	switch op {
	case OpAnd, OpOr:
		// x & x -> x ; x | x -> x
		if a.id == b.id {
			return a, true
		}
	case OpXor:
		// x ^ x -> 0
		if a.id == b.id {
			return g.MustConst(0, a.Type.Width, a.Type.Signed), true
		}
	case OpAdd:
		if isConstZero(b) {
			return a, true
		}

		if isConstZero(a) {
			return b, true
		}
	case OpSub:
		if isConstZero(b) {
			return a, true
		}
	case OpMul:
		if isConstZero(a) || isConstZero(b) {
			return g.MustConst(0, a.Type.Width, a.Type.Signed), true
		}

		if isConstOne(b) {
			return a, true
		}

		if isConstOne(a) {
			return b, true
		}
	}

	return Signal{}, false
}

func isConstZero(s Signal) bool {
	v, ok := constValue(s)
	return ok && v.Sign() == 0
}

func isConstOne(s Signal) bool {
	v, ok := constValue(s)
	return ok && v.Cmp(big.NewInt(1)) == 0
}
