package hw

import "github.com/linxisa/pycircuit-go/pkg/bitvec"

// Instance is one submodule call (spec.md §4.4 "Recursion", C7): a
// reference to another, independently-compiled module's symbol, with that
// module's declared input ports bound to signals in this graph and its
// declared outputs exposed as new signals here. Unlike a combinational
// operator, an Instance is not interned by operand equality alone — two
// calls with identical arguments still get distinct InstanceIDs (node.go's
// Attrs.InstanceID), since the child module may carry its own state and a
// builder calling it twice means two physical instances, not one value
// computed twice (spec.md E1: "top contains exactly 3 submodule-call
// ops").
type Instance struct {
	id          uint32
	Symbol      string
	BaseName    string
	ArgNames    []string
	Args        []Signal
	ResultNames []string
	Outputs     []Signal
}

// ID returns this instance's index within its owning graph's registry.
func (inst *Instance) ID() uint32 { return inst.id }

// NewInstance declares a submodule call in g. symbol names the already-
// compiled child module; argNames/args bind its declared input ports, in
// the child's own port order; resultNames/resultTypes list its declared
// outputs, in the child's own result order. Each output becomes its own
// OpInstance node carrying the full argument list as operands, so it only
// depends (in the CSE sense) on the values actually fed into this call.
func (g *Graph) NewInstance(symbol, baseName string, argNames []string, args []Signal, resultNames []string, resultTypes []bitvec.BitVec) *Instance {
	for _, a := range args {
		if a.g != g {
			panic(&TypeError{Detail: ErrCrossModuleReference.Error()})
		}
	}

	id := uint32(len(g.instances))

	operands := make([]NodeID, len(args))
	for i, a := range args {
		operands[i] = a.id
	}

	outputs := make([]Signal, len(resultTypes))

	for i, t := range resultTypes {
		nid := g.intern(Node{
			Op:       OpInstance,
			Type:     t,
			Operands: operands,
			Attrs:    Attrs{InstanceID: id, OutputIndex: uint32(i)},
		})
		outputs[i] = g.wrap(nid, t)
	}

	inst := &Instance{
		id:          id,
		Symbol:      symbol,
		BaseName:    baseName,
		ArgNames:    append([]string(nil), argNames...),
		Args:        append([]Signal(nil), args...),
		ResultNames: append([]string(nil), resultNames...),
		Outputs:     outputs,
	}

	g.instances = append(g.instances, inst)

	return inst
}
