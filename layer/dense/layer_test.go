package dense

import "testing"

import G "gorgonia.org/gorgonia"
import "gorgonia.org/tensor"

import "github.com/plushed/classifier/layer"

func TestLay(t *testing.T) {
	d := MustNew(3, layer.Sigmoid)
	d.SetName("dense_1")
	g := G.NewGraph()
	x := G.NewMatrix(g, tensor.Float32, G.WithShape(2, 5), G.WithName("x"))
	y, nodes, err := d.Lay(g, x, true)
	if err != nil {
		t.Fatal(err)
	}
	if !y.Shape().Eq(tensor.Shape{2, 3}) {
		t.Errorf("output shape %v", y.Shape())
	}
	if len(nodes) != 2 || layer.Params(d) != 5*3+3 {
		t.Errorf("got %d nodes and %d params", len(nodes), layer.Params(d))
	}
	if d.Weights().Name != "dense_1/kernel" {
		t.Errorf("weights named %q", d.Weights().Name)
	}
	x4 := G.NewTensor(g, tensor.Float32, 4, G.WithShape(2, 1, 1, 5), G.WithName("x4"))
	if _, _, err := d.Lay(g, x4, true); err == nil {
		t.Errorf("4D input accepted")
	}
	if _, err := New(0, layer.ReLU); err == nil {
		t.Errorf("zero units accepted")
	}
}
