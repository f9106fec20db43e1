package hw

import (
	"math/big"

	"github.com/linxisa/pycircuit-go/pkg/bitvec"
)

// NodeID is an opaque handle identifying an interned Node within the owning
// Graph. It is meaningless outside that Graph (spec.md §3: nodes must not
// leak across modules). Index 0 is never a valid id, so the zero value
// reliably means "no node".
type NodeID uint32

// Attrs carries the opcode-specific attributes of a Node. Only the fields
// relevant to a given opcode are populated; every other field is left at its
// zero value so structural equality (attrsEqual) is well defined without an
// opcode-specific comparator.
type Attrs struct {
	// OpConst
	ConstValue *big.Int
	// OpInputPort / OpClock / OpReset: the port's declared name. Distinct
	// names must never be deduplicated even if width/signedness coincide.
	PortName string
	// OpRegisterQ
	RegisterID uint32
	// OpMemoryRead
	MemoryID uint32
	// OpSlice
	SliceLo, SliceHi uint32
	// OpShlConst / OpLshrConst / OpAshrConst
	ShiftAmount uint32
	// OpZext / OpSext
	ExtWidth uint32
	// OpCmp
	Cmp CmpVariant
	// OpBitAt
	BitIndex uint32
	// OpInstance: which submodule call (InstanceID, index into the
	// graph's instance registry) and which of that call's declared
	// outputs (OutputIndex) this node exposes. InstanceID is unique per
	// call, not per symbol, so two textually identical instantiations
	// are never folded into one (spec.md §4.4 "Recursion": each call is
	// a distinct submodule instance).
	InstanceID, OutputIndex uint32
}

func attrsEqual(a, b Attrs) bool {
	if a.PortName != b.PortName || a.RegisterID != b.RegisterID || a.MemoryID != b.MemoryID ||
		a.SliceLo != b.SliceLo || a.SliceHi != b.SliceHi || a.ShiftAmount != b.ShiftAmount ||
		a.ExtWidth != b.ExtWidth || a.Cmp != b.Cmp || a.BitIndex != b.BitIndex ||
		a.InstanceID != b.InstanceID || a.OutputIndex != b.OutputIndex {
		return false
	}

	switch {
	case a.ConstValue == nil && b.ConstValue == nil:
		return true
	case a.ConstValue == nil || b.ConstValue == nil:
		return false
	default:
		return a.ConstValue.Cmp(b.ConstValue) == 0
	}
}

// Node is an immutable SSA node in the signal graph (spec.md §3).
type Node struct {
	Op       Opcode
	Operands []NodeID
	Attrs    Attrs
	Type     bitvec.BitVec
}

func operandsEqual(a, b []NodeID) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// structurallyEqual implements the CSE invariant of spec.md §4.1/§4.2: two
// nodes are the same iff their opcode, ordered operand identities and
// attributes all match. Type is derived from these and therefore not
// compared separately.
func structurallyEqual(a, b Node) bool {
	return a.Op == b.Op && operandsEqual(a.Operands, b.Operands) && attrsEqual(a.Attrs, b.Attrs)
}
