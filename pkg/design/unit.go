package design

import (
	"github.com/linxisa/pycircuit-go/pkg/hw"
	"github.com/linxisa/pycircuit-go/pkg/module"
)

// CompiledModule is one finalized, specialized module ready for emission
// (spec.md §4.7): its symbol, ordered ports/results, and the signal graph
// that backs them.
type CompiledModule struct {
	Symbol  string
	Args    []module.Port
	Results []module.Output
	Attrs   map[string]string
	Graph   *hw.Graph
}

func newCompiledModule(b *module.Builder) *CompiledModule {
	return &CompiledModule{
		Symbol:  b.Symbol,
		Args:    b.Args(),
		Results: b.Results(),
		Attrs:   b.Attrs(),
		Graph:   b.Graph(),
	}
}

// Design is an insertion-ordered collection of compiled modules, with one
// designated top symbol (spec.md §4.7's "design unit"). Insertion order is
// the order emission walks the unit in.
type Design struct {
	order   []string
	modules map[string]*CompiledModule
	top     string
}

// NewDesign returns an empty design unit.
func NewDesign() *Design {
	return &Design{modules: make(map[string]*CompiledModule)}
}

// Modules returns the compiled modules in insertion order.
func (d *Design) Modules() []*CompiledModule {
	out := make([]*CompiledModule, len(d.order))
	for i, sym := range d.order {
		out[i] = d.modules[sym]
	}

	return out
}

// Lookup returns the compiled module registered under sym, if any.
func (d *Design) Lookup(sym string) (*CompiledModule, bool) {
	m, ok := d.modules[sym]
	return m, ok
}

// Top returns the designated top symbol, or "" if none has been set.
func (d *Design) Top() string { return d.top }

// RegisterTop designates sym as the design's top module. sym must already
// be present in the unit (i.e. produced by a prior Specialize call).
func (d *Design) RegisterTop(sym string) error {
	if _, ok := d.modules[sym]; !ok {
		return &DesignError{Kind: UnknownTop, Detail: "no module named " + sym + " in this design"}
	}

	d.top = sym

	return nil
}

func (d *Design) register(cm *CompiledModule) {
	if _, exists := d.modules[cm.Symbol]; !exists {
		d.order = append(d.order, cm.Symbol)
	}

	d.modules[cm.Symbol] = cm
}
