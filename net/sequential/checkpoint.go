package sequential

import "compress/zlib"
import "encoding/json"
import "fmt"
import "io"
import "os"

import G "gorgonia.org/gorgonia"

type weights struct {
	Name  string    `json:"name"`
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data"`
}

// WriteZlibWeightsToFile writes model weights to a zlib compressed json file
func (n *Network) WriteZlibWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = n.WriteZlibWeights(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteZlibWeights writes model weights to a writer
func (n *Network) WriteZlibWeights(w io.Writer) error {
	n.Sync()
	var all []weights
	for _, l := range n.layers {
		for _, p := range l.Learnables() {
			all = append(all, weights{Name: p.Name, Shape: p.Shape().Clone(), Data: p.Float32s()})
		}
	}
	zw := zlib.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(all); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// ReadZlibWeightsFromFile reads model weights from a zlib compressed json file
func (n *Network) ReadZlibWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return n.ReadZlibWeights(file)
}

// ReadZlibWeights reads model weights from a reader into a compiled network.
// Every parameter must be present with the same shape.
func (n *Network) ReadZlibWeights(r io.Reader) error {
	if n.train == nil {
		return fmt.Errorf("read weights: network is not compiled")
	}
	zr, err := zlib.NewReader(r)
	if err != nil {
		return fmt.Errorf("read weights: %w", err)
	}
	defer zr.Close()
	var all []weights
	if err := json.NewDecoder(zr).Decode(&all); err != nil {
		return fmt.Errorf("read weights: %w", err)
	}
	byName := make(map[string]weights, len(all))
	for _, w := range all {
		byName[w.Name] = w
	}
	for i, p := range n.train.params {
		w, ok := byName[p.Name]
		if !ok {
			return fmt.Errorf("read weights: %s missing", p.Name)
		}
		if len(w.Data) != p.Len() || !p.Shape().Eq(w.Shape) {
			return fmt.Errorf("read weights: %s has shape %v, want %v", p.Name, w.Shape, p.Shape())
		}
		copy(p.Float32s(), w.Data)
		if err := G.Let(n.train.learnables[i], p.Value); err != nil {
			return fmt.Errorf("read weights: %s: %w", p.Name, err)
		}
	}
	n.dirty = false
	return nil
}
