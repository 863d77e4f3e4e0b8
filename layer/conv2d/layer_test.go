package conv2d

import "testing"

import G "gorgonia.org/gorgonia"
import "gorgonia.org/tensor"

import "github.com/plushed/classifier/layer"

func TestNew(t *testing.T) {
	if _, err := New(0, 3, layer.ReLU); err == nil {
		t.Errorf("zero filters accepted")
	}
	if _, err := New(4, 2, layer.ReLU); err == nil {
		t.Errorf("even kernel accepted")
	}
}

func TestLay(t *testing.T) {
	c := MustNew(4, 3, layer.ReLU)
	c.SetName("conv2d_1")
	if c.Learnables() != nil {
		t.Errorf("learnables before lay")
	}
	g := G.NewGraph()
	x := G.NewTensor(g, tensor.Float32, 4, G.WithShape(2, 3, 8, 6), G.WithName("x"))
	y, nodes, err := c.Lay(g, x, true)
	if err != nil {
		t.Fatal(err)
	}
	if !y.Shape().Eq(tensor.Shape{2, 4, 8, 6}) {
		t.Errorf("output shape %v", y.Shape())
	}
	if len(nodes) != 2 || layer.Params(c) != 4*3*3*3+4 {
		t.Errorf("got %d nodes and %d params", len(nodes), layer.Params(c))
	}
	if !c.Kernel().Shape().Eq(tensor.Shape{4, 3, 3, 3}) {
		t.Errorf("kernel shape %v", c.Kernel().Shape())
	}

	// a second graph reuses the same parameters
	g2 := G.NewGraph()
	x2 := G.NewTensor(g2, tensor.Float32, 4, G.WithShape(1, 3, 8, 6), G.WithName("x"))
	if _, _, err := c.Lay(g2, x2, false); err != nil {
		t.Fatal(err)
	}
	x3 := G.NewTensor(g2, tensor.Float32, 4, G.WithShape(1, 5, 8, 6), G.WithName("x3"))
	if _, _, err := c.Lay(g2, x3, false); err == nil {
		t.Errorf("channel mismatch accepted")
	}
}
