// Package sequential implements a sequential network type trained by gradient descent
package sequential

import "fmt"
import "strings"

import G "gorgonia.org/gorgonia"
import "gorgonia.org/tensor"

import "github.com/plushed/classifier/layer"
import "github.com/plushed/classifier/learning"

// Network is a stack of layers on top of a NHWC float32 input. Compile lays
// the stack onto two graphs sharing the layer parameters: a training graph
// with dropout active and an inference graph without.
type Network struct {
	height, width, channels int
	layers                  []layer.Layer
	names                   map[string]int

	batch  int
	eps    float32
	solver G.Solver
	train  *graph
	infer  *graph

	// training values not yet copied into the layer parameters
	dirty bool
}

type graph struct {
	g          *G.ExprGraph
	input      *G.Node
	labels     *G.Node
	output     *G.Node
	cost       *G.Node
	learnables G.Nodes
	params     []*layer.Param
	shapes     []tensor.Shape
	vm         G.VM

	outputVal G.Value
	costVal   G.Value
}

// New creates an empty network taking height by width images of channels.
func New(height, width, channels int) *Network {
	return &Network{
		height:   height,
		width:    width,
		channels: channels,
		names:    make(map[string]int),
	}
}

// Add appends a layer to the end of network, naming it after its kind.
func (n *Network) Add(l layer.Layer) {
	kind := strings.ToLower(l.Kind())
	n.names[kind]++
	l.SetName(fmt.Sprintf("%s_%d", kind, n.names[kind]))
	n.layers = append(n.layers, l)
}

// Layers returns the layers in order.
func (n *Network) Layers() []layer.Layer {
	return n.layers
}

// Input returns the input height, width and channels.
func (n *Network) Input() (height, width, channels int) {
	return n.height, n.width, n.channels
}

// Batch is the batch size the network was compiled for, 0 before Compile.
func (n *Network) Batch() int {
	return n.batch
}

// Outputs is the width of the network output, 0 before Compile.
func (n *Network) Outputs() int {
	if n.infer == nil {
		return 0
	}
	return n.infer.output.Shape()[1]
}

// Compile builds the training and the inference graphs for the given batch
// size, with the binary cross-entropy cost and the Adam solver of h.
func (n *Network) Compile(batch int, h *learning.HyperParameters) (err error) {
	if batch <= 0 {
		return fmt.Errorf("compile: batch size must be > 0 (got %d)", batch)
	}
	if len(n.layers) == 0 {
		return fmt.Errorf("compile: network has no layers")
	}
	n.batch = batch
	n.eps = float32(h.Epsilon)
	if n.train, err = n.lay(true); err != nil {
		return fmt.Errorf("compile training graph: %w", err)
	}
	if n.infer, err = n.lay(false); err != nil {
		return fmt.Errorf("compile inference graph: %w", err)
	}
	n.solver = h.Solver()
	n.dirty = false
	return nil
}

func (n *Network) lay(training bool) (gr *graph, err error) {
	gr = &graph{g: G.NewGraph()}
	gr.input = G.NewTensor(gr.g, tensor.Float32, 4,
		G.WithShape(n.batch, n.height, n.width, n.channels), G.WithName("input"))

	// layers work on NCHW feature maps
	x, err := G.Transpose(gr.input, 0, 3, 1, 2)
	if err != nil {
		return nil, err
	}
	for _, l := range n.layers {
		var learnables G.Nodes
		if x, learnables, err = l.Lay(gr.g, x, training); err != nil {
			return nil, err
		}
		gr.learnables = append(gr.learnables, learnables...)
		gr.shapes = append(gr.shapes, x.Shape().Clone())
		gr.params = append(gr.params, l.Learnables()...)
	}
	if x.Shape().Dims() != 2 {
		return nil, fmt.Errorf("network output must be rows, got shape %v", x.Shape())
	}
	gr.output = x
	gr.labels = G.NewMatrix(gr.g, tensor.Float32, G.WithShape(x.Shape()...), G.WithName("labels"))
	if gr.cost, err = learning.BinaryCrossEntropy(gr.output, gr.labels, n.eps); err != nil {
		return nil, err
	}
	G.Read(gr.output, &gr.outputVal)
	G.Read(gr.cost, &gr.costVal)

	if training {
		if _, err = G.Grad(gr.cost, gr.learnables...); err != nil {
			return nil, fmt.Errorf("gradients: %w", err)
		}
		gr.vm = G.NewTapeMachine(gr.g, G.BindDualValues(gr.learnables...))
	} else {
		gr.vm = G.NewTapeMachine(gr.g)
	}
	return gr, nil
}

func (n *Network) bind(gr *graph, images, labels []float32) error {
	if n.batch == 0 {
		return fmt.Errorf("network is not compiled")
	}
	if want := n.batch * n.height * n.width * n.channels; len(images) != want {
		return fmt.Errorf("images: want %d values, got %d", want, len(images))
	}
	in := tensor.New(tensor.WithShape(n.batch, n.height, n.width, n.channels), tensor.WithBacking(images))
	if err := G.Let(gr.input, in); err != nil {
		return err
	}
	if labels == nil {
		labels = make([]float32, gr.labels.Shape().TotalSize())
	}
	if want := gr.labels.Shape().TotalSize(); len(labels) != want {
		return fmt.Errorf("labels: want %d values, got %d", want, len(labels))
	}
	lab := tensor.New(tensor.WithShape(gr.labels.Shape()...), tensor.WithBacking(labels))
	return G.Let(gr.labels, lab)
}

func (n *Network) run(gr *graph) (loss float64, predicted []float32, err error) {
	defer gr.vm.Reset()
	if err = gr.vm.RunAll(); err != nil {
		return 0, nil, err
	}
	loss = float64(scalar(gr.costVal))
	predicted = append([]float32(nil), gr.outputVal.Data().([]float32)...)
	return loss, predicted, nil
}

// TrainBatch does one optimization step on a batch and returns the batch loss
// and binary accuracy measured before the step.
func (n *Network) TrainBatch(images, labels []float32) (loss, acc float64, err error) {
	if err = n.bind(n.train, images, labels); err != nil {
		return 0, 0, fmt.Errorf("train batch: %w", err)
	}
	if err = n.train.vm.RunAll(); err != nil {
		n.train.vm.Reset()
		return 0, 0, fmt.Errorf("train batch: %w", err)
	}
	loss = float64(scalar(n.train.costVal))
	acc = learning.BinaryAccuracy(n.train.outputVal.Data().([]float32), labels)
	err = n.solver.Step(G.NodesToValueGrads(n.train.learnables))
	n.train.vm.Reset()
	if err != nil {
		return 0, 0, fmt.Errorf("solver step: %w", err)
	}
	n.dirty = true
	return loss, acc, nil
}

// EvaluateBatch returns loss and binary accuracy on a batch without dropout
// and without changing the weights.
func (n *Network) EvaluateBatch(images, labels []float32) (loss, acc float64, err error) {
	if err = n.prepare(); err != nil {
		return 0, 0, fmt.Errorf("evaluate batch: %w", err)
	}
	if err = n.bind(n.infer, images, labels); err != nil {
		return 0, 0, fmt.Errorf("evaluate batch: %w", err)
	}
	loss, predicted, err := n.run(n.infer)
	if err != nil {
		return 0, 0, fmt.Errorf("evaluate batch: %w", err)
	}
	return loss, learning.BinaryAccuracy(predicted, labels), nil
}

// Predict returns the batch by outputs probabilities for a full batch of
// NHWC images.
func (n *Network) Predict(images []float32) ([]float32, error) {
	if err := n.prepare(); err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	if err := n.bind(n.infer, images, nil); err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	_, predicted, err := n.run(n.infer)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	return predicted, nil
}

// prepare brings the inference graph up to date with the trained weights.
func (n *Network) prepare() error {
	if n.infer == nil {
		return fmt.Errorf("network is not compiled")
	}
	n.Sync()
	for i, node := range n.infer.learnables {
		if err := G.Let(node, n.infer.params[i].Value); err != nil {
			return fmt.Errorf("%s: %w", n.infer.params[i].Name, err)
		}
	}
	return nil
}

// Sync copies the weights of the training graph into the layer parameters.
// Export and inference call it; it is a no-op when nothing was trained.
func (n *Network) Sync() {
	if !n.dirty || n.train == nil {
		return
	}
	for i, node := range n.train.learnables {
		dst := n.train.params[i].Float32s()
		src := node.Value().Data().([]float32)
		if &dst[0] != &src[0] {
			copy(dst, src)
		}
	}
	n.dirty = false
}

func scalar(v G.Value) float32 {
	switch x := v.Data().(type) {
	case float32:
		return x
	case []float32:
		if len(x) > 0 {
			return x[0]
		}
	}
	return 0
}
