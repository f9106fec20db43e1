package hw

import (
	"math/big"

	"github.com/linxisa/pycircuit-go/pkg/bitvec"
)

// PendingWrite is one (condition, data) entry of a register's write chain
// (spec.md §3). Later entries override earlier ones on the same cycle.
type PendingWrite struct {
	Cond Signal
	Data Signal
}

// Register is a stateful element (spec.md §3). Its Q signal is exposed
// immediately on creation; its next-state fold is computed once, at
// Finalize.
type Register struct {
	id         uint32
	g          *Graph
	Name       string
	Type       bitvec.BitVec
	Clock      Signal
	Reset      Signal
	InitValue  *big.Int
	Enable     *Signal
	Q          Signal
	writes     []PendingWrite
	frozen     bool
	NextState  Signal
}

// NewRegister declares a register in g, with the given clock, active-high
// synchronous reset, width, reset (init) value and optional default enable.
// Returns its Q signal's owning handle.
func (g *Graph) NewRegister(name string, clock, reset Signal, width uint32, init int64, enable *Signal) (*Register, error) {
	t, err := bitvec.New(width, false)
	if err != nil {
		return nil, err
	}

	if !t.InRange(init) {
		return nil, widthError("register", "init value out of range", width)
	}

	id := uint32(len(g.registers))
	qID := g.intern(Node{Op: OpRegisterQ, Type: t, Attrs: Attrs{RegisterID: id}})
	q := g.wrap(qID, t)

	reg := &Register{
		id:        id,
		g:         g,
		Name:      name,
		Type:      t,
		Clock:     clock,
		Reset:     reset,
		InitValue: wrapUnsigned(big.NewInt(init), width),
		Enable:    enable,
		Q:         q,
	}

	g.registers = append(g.registers, reg)

	return reg, nil
}

// ID returns this register's index within its owning graph's registry.
func (r *Register) ID() uint32 { return r.id }

// Set appends an unconditional write (sugar for Set(data, Const(1))), or,
// with an explicit when condition, a conditional write. Calls are ordered:
// a later Set overrides an earlier one on the same cycle wherever both
// conditions hold ("last-write-wins", spec.md §3).
func (r *Register) Set(data Signal, when ...Signal) error {
	if r.frozen {
		return &TypeError{Detail: "register " + r.Name + " is already finalized"}
	}

	sameGraph(r.Q, data)

	if data.Type.Width != r.Type.Width {
		return widthError("register.set", "data width must match register width", data.Type.Width, r.Type.Width)
	}

	cond := r.g.MustConst(1, 1, false)

	if len(when) > 0 {
		cond = when[0]
		sameGraph(r.Q, cond)

		if cond.Type.Width != 1 {
			return widthError("register.set", "when condition width must be 1", cond.Type.Width)
		}
	}

	if r.Enable != nil {
		combined, err := r.Enable.And(cond)
		if err != nil {
			return err
		}

		cond = combined
	}

	r.writes = append(r.writes, PendingWrite{Cond: cond, Data: data})

	return nil
}

// Finalize freezes the register's pending-writes list and computes its
// next-state signal as the right-fold described in spec.md §3: starting
// from Q (hold), each pending write's condition/data pair replaces the
// accumulator via a select, in order, so the last Set() call has highest
// priority (spec.md §8 Testable Property 3).
func (r *Register) Finalize() error {
	if r.frozen {
		return nil
	}

	acc := r.Q

	for _, w := range r.writes {
		next, err := Select(w.Cond, w.Data, acc)
		if err != nil {
			return err
		}

		acc = next
	}

	r.NextState = acc
	r.frozen = true

	return nil
}
