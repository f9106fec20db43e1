package hw

import "github.com/bits-and-blooms/bitset"

// Opcode identifies the operation a Node performs. The set is closed per
// spec.md §3.
type Opcode uint8

// Opcode values. Comparison variants are kept as a single Cmp opcode with an
// attribute distinguishing the variant, mirroring how the teacher keeps one
// IfZero/Equation shape and varies it by attribute rather than by type
// (pkg/hir/term.go).
const (
	OpConst Opcode = iota
	OpInputPort
	OpClock
	OpReset
	OpRegisterQ
	OpMemoryRead
	OpNot
	OpAnd
	OpOr
	OpXor
	OpAdd
	OpSub
	OpMul
	OpUdiv
	OpUrem
	OpSdiv
	OpSrem
	OpShlConst
	OpLshrConst
	OpAshrConst
	OpShlSignal
	OpLshrSignal
	OpAshrSignal
	OpCmp
	OpSlice
	OpConcat
	OpZext
	OpSext
	OpSelect
	OpBitAt
	OpInstance
	opcodeCount
)

var opcodeNames = map[Opcode]string{
	OpConst:      "const",
	OpInputPort:  "input_port",
	OpClock:      "clock",
	OpReset:      "reset",
	OpRegisterQ:  "register_q",
	OpMemoryRead: "memory_read",
	OpNot:        "not",
	OpAnd:        "and",
	OpOr:         "or",
	OpXor:        "xor",
	OpAdd:        "add",
	OpSub:        "sub",
	OpMul:        "mul",
	OpUdiv:       "udiv",
	OpUrem:       "urem",
	OpSdiv:       "sdiv",
	OpSrem:       "srem",
	OpShlConst:   "shl_const",
	OpLshrConst:  "lshr_const",
	OpAshrConst:  "ashr_const",
	OpShlSignal:  "shl",
	OpLshrSignal: "lshr",
	OpAshrSignal: "ashr",
	OpCmp:        "cmp",
	OpSlice:      "slice",
	OpConcat:     "concat",
	OpZext:       "zext",
	OpSext:       "sext",
	OpSelect:     "select",
	OpBitAt:      "bit_at",
	OpInstance:   "instance",
}

func (o Opcode) String() string {
	if n, ok := opcodeNames[o]; ok {
		return n
	}

	return "unknown"
}

// CmpVariant enumerates the comparison attribute carried by OpCmp nodes.
type CmpVariant uint8

// Comparison variants, per spec.md §3.
const (
	CmpEq CmpVariant = iota
	CmpNe
	CmpUlt
	CmpUle
	CmpUgt
	CmpUge
	CmpSlt
	CmpSle
	CmpSgt
	CmpSge
)

var cmpNames = [...]string{"eq", "ne", "ult", "ule", "ugt", "uge", "slt", "sle", "sgt", "sge"}

func (c CmpVariant) String() string {
	if int(c) < len(cmpNames) {
		return cmpNames[c]
	}

	return "unknown"
}

// pureOpcodes classifies which opcodes are referentially transparent (their
// result depends only on their operands, never on cycle state) and are
// therefore eligible for constant folding. register_q and memory_read are
// excluded: their value depends on which cycle they're read at, so even with
// constant operands they must not fold. Modelled on the teacher's use of a
// bit.Set to classify opcode/bus membership in
// pkg/asm/compiler/compiler.go:determineUsedBuses.
var pureOpcodes = func() *bitset.BitSet {
	b := bitset.New(uint(opcodeCount))
	for op := Opcode(0); op < opcodeCount; op++ {
		if op != OpRegisterQ && op != OpMemoryRead && op != OpInputPort && op != OpClock && op != OpReset && op != OpInstance {
			b.Set(uint(op))
		}
	}

	return b
}()

// IsPure reports whether a node of this opcode can be constant-folded when
// all its operands are constants.
func (o Opcode) IsPure() bool {
	return pureOpcodes.Test(uint(o))
}
