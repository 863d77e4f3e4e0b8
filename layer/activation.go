package layer

import "fmt"

import G "gorgonia.org/gorgonia"

// Activation is the elementwise function closing a weighted layer.
type Activation byte

const (
	Linear Activation = iota
	ReLU
	Sigmoid
)

// String names the activation.
func (a Activation) String() string {
	switch a {
	case Linear:
		return "linear"
	case ReLU:
		return "relu"
	case Sigmoid:
		return "sigmoid"
	}
	return fmt.Sprintf("activation(%d)", byte(a))
}

// Apply wires the activation on top of x.
func (a Activation) Apply(x *G.Node) (*G.Node, error) {
	switch a {
	case Linear:
		return x, nil
	case ReLU:
		return G.Rectify(x)
	case Sigmoid:
		return G.Sigmoid(x)
	}
	return nil, fmt.Errorf("unknown %s", a)
}
