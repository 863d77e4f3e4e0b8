package layer

import G "gorgonia.org/gorgonia"
import "gorgonia.org/tensor"

// Param is a learnable float32 value shared by every graph a layer is laid onto.
type Param struct {
	Name  string
	Value *tensor.Dense
}

// NewParam allocates a parameter of the given shape filled by init.
func NewParam(name string, init G.InitWFn, shape ...int) *Param {
	backing := init(tensor.Float32, shape...)
	return &Param{
		Name:  name,
		Value: tensor.New(tensor.WithShape(shape...), tensor.WithBacking(backing)),
	}
}

// Node creates a graph node in g bound to the parameter value.
func (p *Param) Node(g *G.ExprGraph) *G.Node {
	shape := p.Value.Shape().Clone()
	return G.NewTensor(g, tensor.Float32, shape.Dims(), G.WithShape(shape...), G.WithName(p.Name), G.WithValue(p.Value))
}

// Shape returns the parameter shape.
func (p *Param) Shape() tensor.Shape {
	return p.Value.Shape()
}

// Len reports the number of scalars.
func (p *Param) Len() int {
	return p.Value.Shape().TotalSize()
}

// Float32s exposes the backing slice.
func (p *Param) Float32s() []float32 {
	return p.Value.Data().([]float32)
}
