// Package maxpool2d implements a 2D max pooling layer
package maxpool2d

import "fmt"

import G "gorgonia.org/gorgonia"
import "gorgonia.org/tensor"

import "github.com/plushed/classifier/layer"

// MaxPool2D takes the maximum of size by size windows moved by stride, no padding.
type MaxPool2D struct {
	layer.Named
	size, stride int
}

// New creates a new MaxPool2D layer with window size and stride
func New(size, stride int) (o *MaxPool2D, err error) {
	if size <= 0 || stride <= 0 {
		return nil, fmt.Errorf("New MaxPool2D: Size %d and Stride %d must be positive", size, stride)
	}
	return &MaxPool2D{size: size, stride: stride}, nil
}

// MustNew creates a new MaxPool2D layer with window size and stride
func MustNew(size, stride int) (o *MaxPool2D) {
	o, err := New(size, stride)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// Lay wires the pooling onto g.
func (p *MaxPool2D) Lay(g *G.ExprGraph, x *G.Node, training bool) (*G.Node, G.Nodes, error) {
	s := x.Shape()
	if len(s) != 4 {
		return nil, nil, fmt.Errorf("%s: want NCHW input, got shape %v", p.Name(), s)
	}
	if s[2] < p.size || s[3] < p.size {
		return nil, nil, fmt.Errorf("%s: input %dx%d is smaller than the %d window", p.Name(), s[2], s[3], p.size)
	}
	y, err := G.MaxPool2D(x, tensor.Shape{p.size, p.size}, []int{0, 0}, []int{p.stride, p.stride})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", p.Name(), err)
	}
	return y, nil, nil
}

// Learnables is always empty.
func (p *MaxPool2D) Learnables() []*layer.Param {
	return nil
}

// Kind names the layer type.
func (p *MaxPool2D) Kind() string {
	return "MaxPooling2D"
}

// Size is the window side.
func (p *MaxPool2D) Size() int {
	return p.size
}

// Stride is the window step.
func (p *MaxPool2D) Stride() int {
	return p.stride
}
