package dropout

import "testing"

import G "gorgonia.org/gorgonia"
import "gorgonia.org/tensor"

func TestLay(t *testing.T) {
	d := MustNew(0.2)
	g := G.NewGraph()
	x := G.NewMatrix(g, tensor.Float32, G.WithShape(2, 5), G.WithName("x"))
	y, _, err := d.Lay(g, x, false)
	if err != nil {
		t.Fatal(err)
	}
	if y != x {
		t.Errorf("inference dropout is not the identity")
	}
	y, _, err = d.Lay(g, x, true)
	if err != nil {
		t.Fatal(err)
	}
	if y == x || !y.Shape().Eq(x.Shape()) {
		t.Errorf("training dropout: node %v shape %v", y, y.Shape())
	}
	if z, _, _ := MustNew(0).Lay(g, x, true); z != x {
		t.Errorf("zero rate is not the identity")
	}
	for _, r := range []float64{-0.1, 1} {
		if _, err := New(r); err == nil {
			t.Errorf("rate %v accepted", r)
		}
	}
}
