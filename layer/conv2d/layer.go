// Package conv2d implements a 2D convolution layer with bias and activation
package conv2d

import "fmt"

import G "gorgonia.org/gorgonia"
import "gorgonia.org/tensor"

import "github.com/plushed/classifier/layer"

// Conv2D convolves NCHW input with square kernels, stride 1 and same padding.
type Conv2D struct {
	layer.Named
	filters, size int
	act           layer.Activation

	kernel, bias *layer.Param
}

// MustNew creates a new Conv2D layer with filters kernels of size by size
func MustNew(filters, size int, act layer.Activation) *Conv2D {
	o, err := New(filters, size, act)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new Conv2D layer with filters kernels of size by size
func New(filters, size int, act layer.Activation) (o *Conv2D, err error) {
	if filters <= 0 {
		return nil, fmt.Errorf("New Conv2D: Filters %d must be positive", filters)
	}
	if size <= 0 || size%2 == 0 {
		return nil, fmt.Errorf("New Conv2D: Size %d must be positive and odd for same padding", size)
	}
	o = new(Conv2D)
	o.filters = filters
	o.size = size
	o.act = act
	return
}

// Lay wires the convolution onto g.
func (c *Conv2D) Lay(g *G.ExprGraph, x *G.Node, training bool) (*G.Node, G.Nodes, error) {
	s := x.Shape()
	if len(s) != 4 {
		return nil, nil, fmt.Errorf("%s: want NCHW input, got shape %v", c.Name(), s)
	}
	in := s[1]
	if c.kernel == nil {
		c.kernel = layer.NewParam(c.Name()+"/kernel", G.GlorotU(1.0), c.filters, in, c.size, c.size)
		c.bias = layer.NewParam(c.Name()+"/bias", G.Zeroes(), 1, c.filters, 1, 1)
	} else if c.kernel.Shape()[1] != in {
		return nil, nil, fmt.Errorf("%s: built for %d input channels, got %d", c.Name(), c.kernel.Shape()[1], in)
	}
	w := c.kernel.Node(g)
	b := c.bias.Node(g)

	pad := c.size / 2
	y, err := G.Conv2d(x, w, tensor.Shape{c.size, c.size}, []int{pad, pad}, []int{1, 1}, []int{1, 1})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", c.Name(), err)
	}
	if y, err = G.BroadcastAdd(y, b, nil, []byte{0, 2, 3}); err != nil {
		return nil, nil, fmt.Errorf("%s: bias: %w", c.Name(), err)
	}
	if y, err = c.act.Apply(y); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", c.Name(), err)
	}
	return y, G.Nodes{w, b}, nil
}

// Learnables returns the kernel and the bias.
func (c *Conv2D) Learnables() []*layer.Param {
	if c.kernel == nil {
		return nil
	}
	return []*layer.Param{c.kernel, c.bias}
}

// Kind names the layer type.
func (c *Conv2D) Kind() string {
	return "Conv2D"
}

// Filters is the number of output channels.
func (c *Conv2D) Filters() int {
	return c.filters
}

// Size is the kernel side.
func (c *Conv2D) Size() int {
	return c.size
}

// Activation is the activation applied after the bias.
func (c *Conv2D) Activation() layer.Activation {
	return c.act
}

// Kernel is the OIHW kernel, nil until laid.
func (c *Conv2D) Kernel() *layer.Param {
	return c.kernel
}

// Bias is the per filter bias, nil until laid.
func (c *Conv2D) Bias() *layer.Param {
	return c.bias
}
