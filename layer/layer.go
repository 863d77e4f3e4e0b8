// Package layer defines the layer interface of sequential networks
package layer

import G "gorgonia.org/gorgonia"

// Layer is one stage of a sequential network. A layer owns its learnable
// values and can be laid onto several graphs, all of them sharing the values.
type Layer interface {

	// Lay wires the layer on top of x in graph g and returns the output node
	// and the learnable nodes it created, in the order of Learnables.
	// Training tells whether the graph is used for fitting.
	Lay(g *G.ExprGraph, x *G.Node, training bool) (out *G.Node, learnables G.Nodes, err error)

	// Learnables returns the learnable values, nil until the layer was laid.
	Learnables() []*Param

	// Kind names the layer type in summaries.
	Kind() string

	// Name is the unique name within the network.
	Name() string

	// SetName is called by the network when the layer is added.
	SetName(name string)
}

// Params sums the number of learnable scalars of a layer.
func Params(l Layer) (n int) {
	for _, p := range l.Learnables() {
		n += p.Len()
	}
	return
}

// Named implements the naming methods of Layer for embedding.
type Named struct {
	name string
}

// Name is the unique name within the network.
func (n *Named) Name() string {
	return n.name
}

// SetName is called by the network when the layer is added.
func (n *Named) SetName(name string) {
	n.name = name
}
