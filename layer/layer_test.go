package layer

import "testing"

import G "gorgonia.org/gorgonia"
import "gorgonia.org/tensor"

func TestParamNode(t *testing.T) {
	p := NewParam("w", G.Zeroes(), 2, 3)
	if p.Len() != 6 || !p.Shape().Eq(tensor.Shape{2, 3}) {
		t.Fatalf("param shape %v len %d", p.Shape(), p.Len())
	}
	g := G.NewGraph()
	n := p.Node(g)
	if !n.Shape().Eq(tensor.Shape{2, 3}) || n.Name() != "w" {
		t.Errorf("node %s shape %v", n.Name(), n.Shape())
	}
	for _, v := range p.Float32s() {
		if v != 0 {
			t.Fatalf("zero init produced %v", v)
		}
	}
}

func TestActivationString(t *testing.T) {
	for a, want := range map[Activation]string{Linear: "linear", ReLU: "relu", Sigmoid: "sigmoid"} {
		if a.String() != want {
			t.Errorf("%d: %q, want %q", a, a.String(), want)
		}
	}
	x := G.NewMatrix(G.NewGraph(), tensor.Float32, G.WithShape(1, 1))
	if _, err := Activation(9).Apply(x); err == nil {
		t.Errorf("unknown activation applied")
	}
}
