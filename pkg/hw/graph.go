package hw

import (
	"hash/fnv"
	"sync/atomic"
)

var graphTagCounter uint64

// Graph is the per-module owner of the interned SSA node table (C1) and its
// structural-hashing CSE index (C2). Nodes never cross Graph boundaries: a
// Signal remembers the Graph that produced it, and every operation checks
// that its operands share one Graph (see sameGraph in signal.go).
type Graph struct {
	tag       uint64
	nodes     []Node
	buckets   map[uint64][]NodeID
	registers []*Register
	memories  []*Memory
	instances []*Instance
}

// NewGraph constructs an empty graph with a fresh, globally unique tag.
func NewGraph() *Graph {
	return &Graph{
		tag:     atomic.AddUint64(&graphTagCounter, 1),
		nodes:   make([]Node, 0, 64),
		buckets: make(map[uint64][]NodeID, 64),
	}
}

// Tag returns this graph's unique identity, used to detect cross-module
// signal leakage.
func (g *Graph) Tag() uint64 { return g.tag }

// Node looks up a previously interned node by id. Panics on an out-of-range
// id, which can only happen given a programming error (an id from a
// different graph).
func (g *Graph) Node(id NodeID) Node {
	return g.nodes[id-1]
}

// hashNode computes a deterministic 64-bit hash over a node's structural
// identity (opcode, operands, attributes), following the bucketed
// hash-consing approach of the teacher's pkg/util/collection/hash.Map —
// collisions are resolved by bucket scan-and-compare rather than assumed
// away, since a 64-bit hash of an open-ended attribute set is not provably
// collision-free.
func hashNode(n Node) uint64 {
	h := fnv.New64a()

	write64 := func(v uint64) {
		var b [8]byte
		for i := 0; i < 8; i++ {
			b[i] = byte(v >> (8 * i))
		}

		_, _ = h.Write(b[:])
	}

	write64(uint64(n.Op))

	for _, op := range n.Operands {
		write64(uint64(op))
	}

	write64(uint64(n.Attrs.RegisterID))
	write64(uint64(n.Attrs.MemoryID))
	write64(uint64(n.Attrs.SliceLo))
	write64(uint64(n.Attrs.SliceHi))
	write64(uint64(n.Attrs.ShiftAmount))
	write64(uint64(n.Attrs.ExtWidth))
	write64(uint64(n.Attrs.Cmp))
	write64(uint64(n.Attrs.BitIndex))
	write64(uint64(n.Attrs.InstanceID))
	write64(uint64(n.Attrs.OutputIndex))
	_, _ = h.Write([]byte(n.Attrs.PortName))

	if n.Attrs.ConstValue != nil {
		_, _ = h.Write(n.Attrs.ConstValue.Bytes())

		if n.Attrs.ConstValue.Sign() < 0 {
			_, _ = h.Write([]byte{0xff})
		}
	}

	return h.Sum64()
}

// intern returns the existing node matching n structurally, or allocates and
// registers a new one. This is the CSE table's sole entry point (C2).
func (g *Graph) intern(n Node) NodeID {
	hash := hashNode(n)

	for _, candidate := range g.buckets[hash] {
		if structurallyEqual(g.nodes[candidate-1], n) {
			return candidate
		}
	}

	g.nodes = append(g.nodes, n)
	id := NodeID(len(g.nodes))
	g.buckets[hash] = append(g.buckets[hash], id)

	return id
}

// Size returns the number of distinct interned nodes.
func (g *Graph) Size() int { return len(g.nodes) }

// Registers returns all registers declared in this graph, in declaration
// order.
func (g *Graph) Registers() []*Register { return g.registers }

// Memories returns all memories declared in this graph, in declaration
// order.
func (g *Graph) Memories() []*Memory { return g.memories }

// Instances returns all submodule calls declared in this graph, in
// declaration order.
func (g *Graph) Instances() []*Instance { return g.instances }
