package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/linxisa/pycircuit-go/pkg/hw"
	"github.com/linxisa/pycircuit-go/pkg/module"
)

// printer holds the per-module state needed to render a graph's interned
// nodes as a flat, topologically-ordered (interning order is always
// topological, since a node can only reference operands that already
// existed when it was built) sequence of pseudo-ops.
type printer struct {
	w        io.Writer
	g        *hw.Graph
	argIndex map[hw.NodeID]int
}

func (p *printer) valName(id hw.NodeID) string {
	if idx, ok := p.argIndex[id]; ok {
		return fmt.Sprintf("%%arg%d", idx)
	}

	return fmt.Sprintf("%%%d", id)
}

func (p *printer) operandList(n hw.Node) string {
	refs := make([]string, len(n.Operands))
	for i, o := range n.Operands {
		refs[i] = p.valName(o)
	}

	return strings.Join(refs, ", ")
}

// nodeAttrs renders the opcode-specific attribute dictionary for n, omitting
// fields that don't apply to its opcode.
func nodeAttrs(n hw.Node) string {
	var parts []string

	switch n.Op {
	case hw.OpConst:
		parts = append(parts, fmt.Sprintf("value = %s", n.Attrs.ConstValue.String()))
	case hw.OpInputPort, hw.OpClock, hw.OpReset:
		parts = append(parts, fmt.Sprintf("name = %q", n.Attrs.PortName))
	case hw.OpRegisterQ:
		parts = append(parts, fmt.Sprintf("register = %d", n.Attrs.RegisterID))
	case hw.OpMemoryRead:
		parts = append(parts, fmt.Sprintf("memory = %d", n.Attrs.MemoryID))
	case hw.OpSlice:
		parts = append(parts, fmt.Sprintf("lo = %d, hi = %d", n.Attrs.SliceLo, n.Attrs.SliceHi))
	case hw.OpShlConst, hw.OpLshrConst, hw.OpAshrConst:
		parts = append(parts, fmt.Sprintf("amount = %d", n.Attrs.ShiftAmount))
	case hw.OpZext, hw.OpSext:
		parts = append(parts, fmt.Sprintf("width = %d", n.Attrs.ExtWidth))
	case hw.OpCmp:
		parts = append(parts, fmt.Sprintf("variant = %q", n.Attrs.Cmp.String()))
	case hw.OpBitAt:
		parts = append(parts, fmt.Sprintf("bit = %d", n.Attrs.BitIndex))
	}

	if len(parts) == 0 {
		return ""
	}

	return " {" + strings.Join(parts, ", ") + "}"
}

// emitNodes prints one line per interned node other than the bare
// input/clock/reset ports, which are already bound to %arg<N> and need no
// restatement.
func (p *printer) emitNodes() {
	for id := hw.NodeID(1); int(id) <= p.g.Size(); id++ {
		n := p.g.Node(id)

		if _, isArg := p.argIndex[id]; isArg {
			continue
		}

		// register_q/memory_read/instance nodes are declared by
		// emitRegisters/emitMemories/emitInstances instead, alongside the
		// rest of their state/call wiring.
		if n.Op == hw.OpRegisterQ || n.Op == hw.OpMemoryRead || n.Op == hw.OpInstance {
			continue
		}

		fmt.Fprintf(p.w, "    %s = hw.%s(%s)%s : %s\n",
			p.valName(id), n.Op.String(), p.operandList(n), nodeAttrs(n), n.Type.String())
	}
}

// emitRegisters prints one hw.reg declaration per register in the graph,
// binding its Q value's SSA name to the register's index and carrying its
// clock/reset/init/next-state wiring (spec.md §3's register semantics,
// which a flat node list alone can't express since Q is observed before
// NextState is computed).
func (p *printer) emitRegisters() {
	for _, r := range p.g.Registers() {
		fmt.Fprintf(p.w, "    hw.reg %s {name = %q, clock = %s, reset = %s, init = %s, next = %s} : %s\n",
			p.valName(r.Q.ID()), r.Name, p.valName(r.Clock.ID()), p.valName(r.Reset.ID()),
			r.InitValue.String(), p.valName(r.NextState.ID()), r.Type.String())
	}
}

// emitMemories prints one hw.mem declaration per byte memory.
func (p *printer) emitMemories() {
	for _, m := range p.g.Memories() {
		fmt.Fprintf(p.w, "    hw.mem %s {name = %q, depth = %d, clock = %s, reset = %s, raddr = %s, wvalid = %s, waddr = %s, wdata = %s, wstrobe = %s} : %s\n",
			p.valName(m.ReadData.ID()), m.Name, m.DepthBytes, p.valName(m.Clock.ID()), p.valName(m.Reset.ID()),
			p.valName(m.ReadAddr.ID()), p.valName(m.WriteValid.ID()), p.valName(m.WriteAddr.ID()),
			p.valName(m.WriteData.ID()), p.valName(m.WriteStrobe.ID()), m.DataType.String())
	}
}

// emitInstances prints one hw.instance declaration per submodule call,
// binding all of its declared outputs' SSA names on the line's left-hand
// side (mirroring emitRegisters/emitMemories's multi-field declarations,
// since a single call can produce more than one named result).
func (p *printer) emitInstances() {
	for _, inst := range p.g.Instances() {
		outs := make([]string, len(inst.Outputs))
		for i, o := range inst.Outputs {
			outs[i] = p.valName(o.ID())
		}

		args := make([]string, len(inst.Args))
		for i, a := range inst.Args {
			args[i] = p.valName(a.ID())
		}

		fmt.Fprintf(p.w, "    %s = hw.instance @%s(%s) {base = %q}\n",
			strings.Join(outs, ", "), inst.Symbol, strings.Join(args, ", "), inst.BaseName)
	}
}

func (p *printer) emitReturn(results []module.Output) {
	refs := make([]string, len(results))
	for i, r := range results {
		refs[i] = p.valName(r.Sig.ID())
	}

	fmt.Fprintf(p.w, "    return %s\n", strings.Join(refs, ", "))
}
