// Package dropout implements a dropout layer, active only in training graphs
package dropout

import "fmt"

import G "gorgonia.org/gorgonia"

import "github.com/plushed/classifier/layer"

// Dropout zeroes a share of its inputs while training and scales the rest.
type Dropout struct {
	layer.Named
	rate float64
}

// New creates a new Dropout layer dropping rate of the inputs
func New(rate float64) (*Dropout, error) {
	if rate < 0 || rate >= 1 {
		return nil, fmt.Errorf("New Dropout: Rate %g is outside [0,1)", rate)
	}
	return &Dropout{rate: rate}, nil
}

// MustNew creates a new Dropout layer dropping rate of the inputs
func MustNew(rate float64) *Dropout {
	o, err := New(rate)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// Lay wires the dropout onto g. It is the identity outside training.
func (d *Dropout) Lay(g *G.ExprGraph, x *G.Node, training bool) (*G.Node, G.Nodes, error) {
	if !training || d.rate == 0 {
		return x, nil, nil
	}
	y, err := G.Dropout(x, d.rate)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", d.Name(), err)
	}
	return y, nil, nil
}

// Learnables is always empty.
func (d *Dropout) Learnables() []*layer.Param {
	return nil
}

// Kind names the layer type.
func (d *Dropout) Kind() string {
	return "Dropout"
}

// Rate is the dropped share.
func (d *Dropout) Rate() float64 {
	return d.rate
}
