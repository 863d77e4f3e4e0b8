// Package flatten implements the layer turning feature maps into vectors
package flatten

import "fmt"

import G "gorgonia.org/gorgonia"
import "gorgonia.org/tensor"

import "github.com/plushed/classifier/layer"

// Flatten reshapes NCHW feature maps into rows in height, width, channel
// order, the order of NHWC tensors.
type Flatten struct {
	layer.Named
}

// New creates a new Flatten layer
func New() *Flatten {
	return new(Flatten)
}

// Lay wires the flattening onto g.
func (f *Flatten) Lay(g *G.ExprGraph, x *G.Node, training bool) (*G.Node, G.Nodes, error) {
	s := x.Shape()
	switch len(s) {
	case 2:
		return x, nil, nil
	case 4:
	default:
		return nil, nil, fmt.Errorf("%s: cannot flatten shape %v", f.Name(), s)
	}
	nhwc, err := G.Transpose(x, 0, 2, 3, 1)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	y, err := G.Reshape(nhwc, tensor.Shape{s[0], s[1] * s[2] * s[3]})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	return y, nil, nil
}

// Learnables is always empty.
func (f *Flatten) Learnables() []*layer.Param {
	return nil
}

// Kind names the layer type.
func (f *Flatten) Kind() string {
	return "Flatten"
}
