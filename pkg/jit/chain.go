package jit

import (
	"fmt"
	"runtime"

	"github.com/linxisa/pycircuit-go/pkg/hw"
	"github.com/linxisa/pycircuit-go/pkg/module"
)

// branchRecord holds, for one Then/ElseIf/Else branch, which vars it
// assigned and what value it assigned them.
type branchRecord struct {
	assigned map[*Var]hw.Signal
}

// Chain lowers a signal-conditioned if/elif/else construct into a mux tree,
// per spec.md §4.4 rule 3. Construct one with (*Context).If.
type Chain struct {
	ctx      *Context
	b        *module.Builder
	g        *hw.Graph

	conds    []hw.Signal    // Then/ElseIf conditions, in lexical order
	branches []branchRecord // one per Then/ElseIf, in the same order
	elseRec  *branchRecord  // nil if no Else() was given

	known    []*Var
	baseline map[*Var]hw.Signal

	hasElse bool
	err     error
}

// If opens a conditional region and runs fn as its first (if) branch under
// cond. The returned Chain must be closed with a matching End() (Chain.End
// balances the region exactly once, the Go realization of spec.md §9's
// "guaranteed pairing"); ElseIf/Else may be chained before it.
func (c *Context) If(b *module.Builder, cond hw.Signal, fn func(rs *RegionScope) error) *Chain {
	c.pushRegion()

	chain := &Chain{
		ctx:      c,
		b:        b,
		g:        b.Graph(),
		baseline: make(map[*Var]hw.Signal),
	}

	return chain.Then(cond, fn)
}

func loc() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}

	return fmt.Sprintf("%s:%d", file, line)
}

func (c *Chain) resetKnownToBaseline() {
	for _, v := range c.known {
		v.cur = c.baseline[v]
	}
}

func (c *Chain) register(v *Var) {
	for _, k := range c.known {
		if k == v {
			return
		}
	}

	c.baseline[v] = v.cur
	c.known = append(c.known, v)
}

// RegionScope is the per-branch context a Then/ElseIf/Else callback
// receives: the enclosing module builder, this branch's path condition (for
// AND-combining register write-enables per spec.md §4.4 rule 3), and
// var accessors that participate in the chain's merge.
type RegionScope struct {
	B        *module.Builder
	PathCond hw.Signal
	chain    *Chain
	rec      *branchRecord
}

// Var reads v's current value (branch-local, reset to the chain's baseline
// at branch entry per the identity-merge rule).
func (rs *RegionScope) Var(v *Var) hw.Signal { return v.cur }

// SetVar assigns v within this branch; its value is merged against the
// other branches (and the pre-chain baseline) when the chain closes.
func (rs *RegionScope) SetVar(v *Var, val hw.Signal) {
	rs.chain.register(v)
	v.cur = val
	rs.rec.assigned[v] = val
}

// SetReg writes a register from within this branch, AND-combining when with
// the branch's path condition (spec.md §4.4 rule 3, last bullet). Omitting
// when is sugar for an unconditional-within-this-branch write.
func (rs *RegionScope) SetReg(reg *hw.Register, data hw.Signal, when ...hw.Signal) error {
	w := rs.PathCond

	if len(when) > 0 {
		combined, err := rs.PathCond.And(when[0])
		if err != nil {
			return err
		}

		w = combined
	}

	return reg.Set(data, w)
}

// Abort represents an early exit (return/break/continue) attempted from
// within an open conditional region — spec.md §4.4 rule 6: "they have no
// straight-line lowering". In strict mode this is reported precisely as a
// JitError (triggering the elaboration fallback); in elaboration mode the
// same condition surfaces as a terminal BuilderError, matching spec.md
// E4's "re-raises a BuilderError describing the illegal ..." shape.
func (rs *RegionScope) Abort(detail string) error {
	if rs.chain.ctx.Mode == ModeStrict {
		return &JitError{Construct: "early-exit-in-region", Detail: detail, Location: loc()}
	}

	return &BuilderError{Detail: detail}
}

func (c *Chain) runBranch(cond *hw.Signal, fn func(rs *RegionScope) error, pathCond hw.Signal) {
	if c.err != nil {
		return
	}

	c.resetKnownToBaseline()

	rec := branchRecord{assigned: make(map[*Var]hw.Signal)}
	rs := &RegionScope{B: c.b, PathCond: pathCond, chain: c, rec: &rec}

	if err := fn(rs); err != nil {
		c.err = err
		return
	}

	if cond != nil {
		c.conds = append(c.conds, *cond)
		c.branches = append(c.branches, rec)
	} else {
		c.hasElse = true
		c.elseRec = &rec
	}
}

// pathConditionStep takes the running accumulator NOT(cond_0) AND ... AND
// NOT(cond_{k-1}) and returns this branch's path condition (accumulator AND
// cond) alongside the next accumulator (accumulator AND NOT cond).
func pathConditionStep(g *hw.Graph, notPrevSoFar hw.Signal, cond hw.Signal) (pathCond, nextNotPrev hw.Signal, err error) {
	pathCond, err = notPrevSoFar.And(cond)
	if err != nil {
		return hw.Signal{}, hw.Signal{}, err
	}

	nextNotPrev, err = notPrevSoFar.And(cond.Not())
	if err != nil {
		return hw.Signal{}, hw.Signal{}, err
	}

	return pathCond, nextNotPrev, nil
}

// Then runs fn as the chain's first (if) branch.
func (c *Chain) Then(cond hw.Signal, fn func(rs *RegionScope) error) *Chain {
	if c.err != nil {
		return c
	}

	notPrev := c.g.MustConst(1, 1, false)
	pathCond, _, err := pathConditionStep(c.g, notPrev, cond)

	if err != nil {
		c.err = err
		return c
	}

	c.runBranch(&cond, fn, pathCond)

	return c
}

// ElseIf runs fn as a subsequent branch, guarded by cond and by the
// negation of every preceding branch's condition.
func (c *Chain) ElseIf(cond hw.Signal, fn func(rs *RegionScope) error) *Chain {
	if c.err != nil {
		return c
	}

	notPrev := c.g.MustConst(1, 1, false)

	for _, prev := range c.conds {
		var nerr error

		notPrev, nerr = notPrev.And(prev.Not())
		if nerr != nil {
			c.err = nerr
			return c
		}
	}

	pathCond, _, err := pathConditionStep(c.g, notPrev, cond)
	if err != nil {
		c.err = err
		return c
	}

	c.runBranch(&cond, fn, pathCond)

	return c
}

// Else runs fn as the chain's final, unconditioned branch.
func (c *Chain) Else(fn func(rs *RegionScope) error) *Chain {
	if c.err != nil {
		return c
	}

	notPrev := c.g.MustConst(1, 1, false)

	for _, prev := range c.conds {
		var nerr error

		notPrev, nerr = notPrev.And(prev.Not())
		if nerr != nil {
			c.err = nerr
			return c
		}
	}

	c.runBranch(nil, fn, notPrev)

	return c
}

// End closes the region, merging every touched Var into a nested select
// tree keyed on the chain's conditions in lexical order (spec.md §4.4 rule
// 3), and leaves each Var's current value set to its merged result.
func (c *Chain) End() error {
	c.ctx.popRegion()

	if c.err != nil {
		return c.err
	}

	for _, v := range c.known {
		merged := c.baseline[v]

		if c.hasElse {
			if val, ok := c.elseRec.assigned[v]; ok {
				merged = val
			}
		}

		for i := len(c.conds) - 1; i >= 0; i-- {
			thenVal := c.baseline[v]
			if val, ok := c.branches[i].assigned[v]; ok {
				thenVal = val
			}

			next, err := hw.Select(c.conds[i], thenVal, merged)
			if err != nil {
				return err
			}

			merged = next
		}

		v.cur = merged
	}

	return nil
}
