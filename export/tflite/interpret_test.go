package tflite

import "encoding/binary"
import "math"
import "math/rand"
import "testing"

import flatbuffers "github.com/google/flatbuffers/go"

func (t table) i8(n int, def int8) int8 {
	o := t.slot(n)
	if o == 0 {
		return def
	}
	return t.GetInt8(o + t.Pos)
}

func (t table) i32(n int, def int32) int32 {
	o := t.slot(n)
	if o == 0 {
		return def
	}
	return t.GetInt32(o + t.Pos)
}

func (t table) ints(n int) []int {
	o := make([]int, t.len(n))
	for i := range o {
		o[i] = int(t.int32At(n, i))
	}
	return o
}

func (t table) bytes(n int) []byte {
	o := t.slot(n)
	if o == 0 {
		return nil
	}
	start := t.Vector(o)
	return t.Bytes[start : start+flatbuffers.UOffsetT(t.VectorLen(o))]
}

func (t table) options() table {
	o := t.slot(operatorOptions)
	return table{flatbuffers.Table{Bytes: t.Bytes, Pos: t.Indirect(o + t.Pos)}}
}

type value struct {
	shape []int
	data  []float32
}

func activate(v []float32, act int8) {
	if act == ActivationReLU {
		for i := range v {
			if v[i] < 0 {
				v[i] = 0
			}
		}
	}
}

// interpret evaluates a model on one input with the reference semantics of
// the operators it uses.
func interpret(t *testing.T, buf []byte, input []float32) []float32 {
	t.Helper()
	m := root(buf)
	sg := m.at(modelSubgraphs, 0)
	vals := make([]value, sg.len(subgraphTensors))
	for i := range vals {
		tt := sg.at(subgraphTensors, i)
		vals[i].shape = tt.ints(tensorShape)
		b := tt.uint32(tensorBuffer)
		if b == 0 || tt.i8(tensorType, TypeFloat32) != TypeFloat32 {
			continue
		}
		raw := m.at(modelBuffers, int(b)).bytes(bufferData)
		vals[i].data = make([]float32, len(raw)/4)
		for j := range vals[i].data {
			vals[i].data[j] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*j:]))
		}
	}
	vals[sg.int32At(subgraphInputs, 0)].data = input

	for i := 0; i < sg.len(subgraphOperators); i++ {
		op := sg.at(subgraphOperators, i)
		code := m.at(modelOperatorCodes, int(op.uint32(operatorOpcodeIndex))).i32(opcodeBuiltin, 0)
		in := op.ints(operatorInputs)
		out := op.ints(operatorOutputs)[0]
		x := vals[in[0]]
		shape := vals[out].shape
		var y []float32

		switch code {
		case OpConv2D:
			opts := op.options()
			if opts.i8(conv2dPadding, PaddingSame) != PaddingSame || opts.i32(conv2dStrideW, 0) != 1 {
				t.Fatalf("operator %d: unexpected convolution options", i)
			}
			w, b := vals[in[1]], vals[in[2]]
			o, kh, kw, c := w.shape[0], w.shape[1], w.shape[2], w.shape[3]
			h, wd := x.shape[1], x.shape[2]
			y = make([]float32, h*wd*o)
			for yy := 0; yy < h; yy++ {
				for xx := 0; xx < wd; xx++ {
					for f := 0; f < o; f++ {
						s := b.data[f]
						for ky := 0; ky < kh; ky++ {
							iy := yy + ky - (kh-1)/2
							if iy < 0 || iy >= h {
								continue
							}
							for kx := 0; kx < kw; kx++ {
								ix := xx + kx - (kw-1)/2
								if ix < 0 || ix >= wd {
									continue
								}
								for ch := 0; ch < c; ch++ {
									s += x.data[(iy*wd+ix)*c+ch] * w.data[((f*kh+ky)*kw+kx)*c+ch]
								}
							}
						}
						y[(yy*wd+xx)*o+f] = s
					}
				}
			}
			activate(y, opts.i8(conv2dActivation, ActivationNone))

		case OpMaxPool2D:
			opts := op.options()
			size, stride := int(opts.i32(pool2dFilterW, 0)), int(opts.i32(pool2dStrideW, 0))
			oh, ow, c := shape[1], shape[2], shape[3]
			wd := x.shape[2]
			y = make([]float32, oh*ow*c)
			for yy := 0; yy < oh; yy++ {
				for xx := 0; xx < ow; xx++ {
					for ch := 0; ch < c; ch++ {
						best := float32(math.Inf(-1))
						for ky := 0; ky < size; ky++ {
							for kx := 0; kx < size; kx++ {
								v := x.data[((yy*stride+ky)*wd+xx*stride+kx)*c+ch]
								if v > best {
									best = v
								}
							}
						}
						y[(yy*ow+xx)*c+ch] = best
					}
				}
			}

		case OpReshape:
			y = x.data

		case OpFullyConnected:
			w, b := vals[in[1]], vals[in[2]]
			units, n := w.shape[0], w.shape[1]
			y = make([]float32, units)
			for u := 0; u < units; u++ {
				s := b.data[u]
				for j := 0; j < n; j++ {
					s += w.data[u*n+j] * x.data[j]
				}
				y[u] = s
			}
			activate(y, op.options().i8(fullyConnectedActivation, ActivationNone))

		case OpLogistic:
			y = make([]float32, len(x.data))
			for j, v := range x.data {
				y[j] = float32(1 / (1 + math.Exp(-float64(v))))
			}

		default:
			t.Fatalf("operator %d: unsupported builtin %d", i, code)
		}
		vals[out].data = y
	}
	return vals[sg.int32At(subgraphOutputs, 0)].data
}

func TestExportedGraphMatchesPredict(t *testing.T) {
	net := tiny(t)
	rng := rand.New(rand.NewSource(3))
	input := make([]float32, 8*8*3)
	for i := range input {
		input[i] = rng.Float32()
	}
	// a few steps so that biases are not zero
	for i := 0; i < 3; i++ {
		if _, _, err := net.TrainBatch(input, []float32{1, 0}); err != nil {
			t.Fatal(err)
		}
	}
	want, err := net.Predict(input)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := Marshal(net, "")
	if err != nil {
		t.Fatal(err)
	}
	got := interpret(t, buf, input)
	if len(got) != len(want) {
		t.Fatalf("exported model gives %d outputs, network %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-5 {
			t.Errorf("output %d: exported %v, network %v", i, got[i], want[i])
		}
	}
}
