package hw

import "math/big"

// Constant folding helpers. A constant's stored value is always normalised
// to its unsigned raw bit pattern in [0, 2^width) — interpretation as a
// signed quantity happens only transiently, inside signed operations, per
// spec.md §4.1: "unsigned arithmetic wraps mod 2^width; signed comparisons
// use two's-complement interpretation".

func maskWidth(width uint32) *big.Int {
	one := big.NewInt(1)
	m := new(big.Int).Lsh(one, uint(width))
	return m.Sub(m, one)
}

// wrapUnsigned normalises v into the raw unsigned representative of width
// bits (v mod 2^width, always non-negative).
func wrapUnsigned(v *big.Int, width uint32) *big.Int {
	m := maskWidth(width)
	r := new(big.Int).And(v, m)

	if r.Sign() < 0 {
		// big.Int.And with a negative operand can still surface a negative
		// result in edge cases; normalise via Mod for safety.
		mod := new(big.Int).Add(m, big.NewInt(1))
		r.Mod(v, mod)
	}

	return r
}

// asSigned reinterprets a width-bit raw unsigned value using two's
// complement: if its top bit is set, subtract 2^width.
func asSigned(raw *big.Int, width uint32) *big.Int {
	top := new(big.Int).Lsh(big.NewInt(1), uint(width-1))

	if raw.Cmp(top) >= 0 {
		full := new(big.Int).Lsh(big.NewInt(1), uint(width))
		return new(big.Int).Sub(raw, full)
	}

	return new(big.Int).Set(raw)
}

func foldBinaryArith(op Opcode, a, b *big.Int, width uint32) (*big.Int, bool) {
	switch op {
	case OpAdd:
		return wrapUnsigned(new(big.Int).Add(a, b), width), true
	case OpSub:
		return wrapUnsigned(new(big.Int).Sub(a, b), width), true
	case OpMul:
		return wrapUnsigned(new(big.Int).Mul(a, b), width), true
	case OpUdiv:
		if b.Sign() == 0 {
			return nil, false
		}

		return wrapUnsigned(new(big.Int).Div(a, b), width), true
	case OpUrem:
		if b.Sign() == 0 {
			return nil, false
		}

		return wrapUnsigned(new(big.Int).Mod(a, b), width), true
	case OpSdiv:
		if b.Sign() == 0 {
			return nil, false
		}

		sa, sb := asSigned(a, width), asSigned(b, width)
		q := new(big.Int).Quo(sa, sb)

		return wrapUnsigned(q, width), true
	case OpSrem:
		if b.Sign() == 0 {
			return nil, false
		}

		sa, sb := asSigned(a, width), asSigned(b, width)
		r := new(big.Int).Rem(sa, sb)

		return wrapUnsigned(r, width), true
	case OpAnd:
		return wrapUnsigned(new(big.Int).And(a, b), width), true
	case OpOr:
		return wrapUnsigned(new(big.Int).Or(a, b), width), true
	case OpXor:
		return wrapUnsigned(new(big.Int).Xor(a, b), width), true
	default:
		return nil, false
	}
}

// foldCompare evaluates a comparison between two width-bit raw values,
// returning a 1-bit raw result (0 or 1).
func foldCompare(variant CmpVariant, a, b *big.Int, width uint32) *big.Int {
	var cmp int

	switch variant {
	case CmpEq, CmpNe:
		cmp = a.Cmp(b)
	case CmpUlt, CmpUle, CmpUgt, CmpUge:
		cmp = a.Cmp(b)
	default: // signed variants
		cmp = asSigned(a, width).Cmp(asSigned(b, width))
	}

	var result bool

	switch variant {
	case CmpEq:
		result = cmp == 0
	case CmpNe:
		result = cmp != 0
	case CmpUlt, CmpSlt:
		result = cmp < 0
	case CmpUle, CmpSle:
		result = cmp <= 0
	case CmpUgt, CmpSgt:
		result = cmp > 0
	case CmpUge, CmpSge:
		result = cmp >= 0
	}

	if result {
		return big.NewInt(1)
	}

	return big.NewInt(0)
}

// foldShiftConst evaluates a constant-amount shift. Shifts by >= width
// produce 0 for logical shifts and sign-fill (all-0s or all-1s) for
// arithmetic right shift, per spec.md §4.1.
func foldShiftConst(op Opcode, v *big.Int, amount, width uint32) *big.Int {
	switch op {
	case OpShlConst:
		if amount >= width {
			return big.NewInt(0)
		}

		return wrapUnsigned(new(big.Int).Lsh(v, uint(amount)), width)
	case OpLshrConst:
		if amount >= width {
			return big.NewInt(0)
		}

		return new(big.Int).Rsh(v, uint(amount))
	case OpAshrConst:
		sv := asSigned(v, width)

		if amount >= width {
			if sv.Sign() < 0 {
				return wrapUnsigned(big.NewInt(-1), width)
			}

			return big.NewInt(0)
		}

		return wrapUnsigned(new(big.Int).Rsh(sv, uint(amount)), width)
	default:
		panic("foldShiftConst: not a constant-shift opcode")
	}
}
