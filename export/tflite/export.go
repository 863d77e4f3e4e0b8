package tflite

import "encoding/binary"
import "fmt"
import "math"
import "os"

import "github.com/plushed/classifier/layer"
import "github.com/plushed/classifier/layer/conv2d"
import "github.com/plushed/classifier/layer/dense"
import "github.com/plushed/classifier/layer/dropout"
import "github.com/plushed/classifier/layer/flatten"
import "github.com/plushed/classifier/layer/maxpool2d"
import "github.com/plushed/classifier/net/sequential"

// Export writes net as a TensorFlow Lite model to path, replacing any
// existing file. The model takes a single NHWC float32 image.
func Export(net *sequential.Network, path, description string) error {
	data, err := Marshal(net, description)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Marshal converts the trained weights of a compiled net into a TensorFlow
// Lite flatbuffer. Dropout layers are left out.
func Marshal(net *sequential.Network, description string) ([]byte, error) {
	if net.Batch() == 0 {
		return nil, fmt.Errorf("export: network is not compiled")
	}
	net.Sync()

	m := newModel(description)
	h, w, c := net.Input()
	cur := m.tensor("input", TypeFloat32, nil, 1, h, w, c)
	m.inputs = []int32{cur}
	rows := -1

	for _, l := range net.Layers() {
		switch v := l.(type) {
		case *conv2d.Conv2D:
			act, logistic, err := fused(v.Activation())
			if err != nil {
				return nil, fmt.Errorf("export %s: %w", v.Name(), err)
			}
			k := v.Kernel()
			s := k.Shape()
			kernel := m.tensor(v.Name()+"/kernel", TypeFloat32, floats(ohwi(k.Float32s(), s[0], s[1], s[2], s[3])), s[0], s[2], s[3], s[1])
			bias := m.tensor(v.Name()+"/bias", TypeFloat32, floats(v.Bias().Float32s()), v.Filters())
			c = v.Filters()
			out := m.tensor(v.Name(), TypeFloat32, nil, 1, h, w, c)
			m.operator(OpConv2D, []int32{cur, kernel, bias}, []int32{out}, OptionsConv2D, conv2dOptions(PaddingSame, act, 1))
			cur = m.logistic(v.Name(), out, logistic, 1, h, w, c)

		case *maxpool2d.MaxPool2D:
			h = (h-v.Size())/v.Stride() + 1
			w = (w-v.Size())/v.Stride() + 1
			out := m.tensor(v.Name(), TypeFloat32, nil, 1, h, w, c)
			m.operator(OpMaxPool2D, []int32{cur}, []int32{out}, OptionsPool2D, pool2dOptions(PaddingValid, int32(v.Stride()), int32(v.Size())))
			cur = out

		case *dropout.Dropout:
			// identity at inference

		case *flatten.Flatten:
			rows = h * w * c
			shape := []int32{1, int32(rows)}
			shapeTensor := m.tensor(v.Name()+"/shape", TypeInt32, int32bytes(shape), 2)
			out := m.tensor(v.Name(), TypeFloat32, nil, 1, rows)
			m.operator(OpReshape, []int32{cur, shapeTensor}, []int32{out}, OptionsReshape, reshapeOptions(shape))
			cur = out

		case *dense.Dense:
			if rows < 0 {
				return nil, fmt.Errorf("export %s: dense layer on feature maps", v.Name())
			}
			act, logistic, err := fused(v.Activation())
			if err != nil {
				return nil, fmt.Errorf("export %s: %w", v.Name(), err)
			}
			weights := m.tensor(v.Name()+"/kernel", TypeFloat32, floats(transpose(v.Weights().Float32s(), rows, v.Units())), v.Units(), rows)
			bias := m.tensor(v.Name()+"/bias", TypeFloat32, floats(v.Bias().Float32s()), v.Units())
			rows = v.Units()
			out := m.tensor(v.Name(), TypeFloat32, nil, 1, rows)
			m.operator(OpFullyConnected, []int32{cur, weights, bias}, []int32{out}, OptionsFullyConnected, fullyConnectedOptions(act))
			cur = m.logistic(v.Name(), out, logistic, 1, rows)

		default:
			return nil, fmt.Errorf("export %s: unsupported layer %s", l.Name(), l.Kind())
		}
	}
	m.outputs = []int32{cur}
	return m.bytes(), nil
}

// logistic appends a sigmoid after in when needed and returns the tensor
// holding the layer result.
func (m *model) logistic(name string, in int32, needed bool, shape ...int) int32 {
	if !needed {
		return in
	}
	out := m.tensor(name+"/sigmoid", TypeFloat32, nil, shape...)
	m.operator(OpLogistic, []int32{in}, []int32{out}, OptionsNone, nil)
	return out
}

// fused maps an activation to a fused activation, with a separate logistic
// operator for the sigmoid.
func fused(a layer.Activation) (act int8, logistic bool, err error) {
	switch a {
	case layer.Linear:
		return ActivationNone, false, nil
	case layer.ReLU:
		return ActivationReLU, false, nil
	case layer.Sigmoid:
		return ActivationNone, true, nil
	}
	return 0, false, fmt.Errorf("unsupported activation %s", a)
}

// ohwi reorders an OIHW kernel to OHWI.
func ohwi(src []float32, o, i, kh, kw int) []float32 {
	dst := make([]float32, len(src))
	for a := 0; a < o; a++ {
		for b := 0; b < i; b++ {
			for y := 0; y < kh; y++ {
				for x := 0; x < kw; x++ {
					dst[((a*kh+y)*kw+x)*i+b] = src[((a*i+b)*kh+y)*kw+x]
				}
			}
		}
	}
	return dst
}

// transpose turns a rows by cols matrix into cols by rows.
func transpose(src []float32, rows, cols int) []float32 {
	dst := make([]float32, len(src))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			dst[c*rows+r] = src[r*cols+c]
		}
	}
	return dst
}

func floats(v []float32) []byte {
	o := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(o[4*i:], math.Float32bits(f))
	}
	return o
}

func int32bytes(v []int32) []byte {
	o := make([]byte, 4*len(v))
	for i, n := range v {
		binary.LittleEndian.PutUint32(o[4*i:], uint32(n))
	}
	return o
}
