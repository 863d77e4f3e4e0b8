// Package dense implements a fully connected layer
package dense

import "fmt"

import G "gorgonia.org/gorgonia"

import "github.com/plushed/classifier/layer"

// Dense computes act(x*W + b) for rows x.
type Dense struct {
	layer.Named
	units int
	act   layer.Activation

	weights, bias *layer.Param
}

// MustNew creates a new Dense layer with units outputs
func MustNew(units int, act layer.Activation) *Dense {
	o, err := New(units, act)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new Dense layer with units outputs
func New(units int, act layer.Activation) (o *Dense, err error) {
	if units <= 0 {
		return nil, fmt.Errorf("New Dense: Units %d must be positive", units)
	}
	o = new(Dense)
	o.units = units
	o.act = act
	return
}

// Lay wires the layer onto g.
func (d *Dense) Lay(g *G.ExprGraph, x *G.Node, training bool) (*G.Node, G.Nodes, error) {
	s := x.Shape()
	if len(s) != 2 {
		return nil, nil, fmt.Errorf("%s: want rows, got shape %v", d.Name(), s)
	}
	in := s[1]
	if d.weights == nil {
		d.weights = layer.NewParam(d.Name()+"/kernel", G.GlorotU(1.0), in, d.units)
		d.bias = layer.NewParam(d.Name()+"/bias", G.Zeroes(), 1, d.units)
	} else if d.weights.Shape()[0] != in {
		return nil, nil, fmt.Errorf("%s: built for %d inputs, got %d", d.Name(), d.weights.Shape()[0], in)
	}
	w := d.weights.Node(g)
	b := d.bias.Node(g)

	y, err := G.Mul(x, w)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", d.Name(), err)
	}
	if y, err = G.BroadcastAdd(y, b, nil, []byte{0}); err != nil {
		return nil, nil, fmt.Errorf("%s: bias: %w", d.Name(), err)
	}
	if y, err = d.act.Apply(y); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", d.Name(), err)
	}
	return y, G.Nodes{w, b}, nil
}

// Learnables returns the weights and the bias.
func (d *Dense) Learnables() []*layer.Param {
	if d.weights == nil {
		return nil
	}
	return []*layer.Param{d.weights, d.bias}
}

// Kind names the layer type.
func (d *Dense) Kind() string {
	return "Dense"
}

// Units is the number of outputs.
func (d *Dense) Units() int {
	return d.units
}

// Activation is the activation applied after the bias.
func (d *Dense) Activation() layer.Activation {
	return d.act
}

// Weights is the in by units matrix, nil until laid.
func (d *Dense) Weights() *layer.Param {
	return d.weights
}

// Bias is the 1 by units row, nil until laid.
func (d *Dense) Bias() *layer.Param {
	return d.bias
}
