package tflite

import flatbuffers "github.com/google/flatbuffers/go"

type tensorDef struct {
	name   string
	shape  []int32
	typ    int8
	buffer uint32
}

type operatorDef struct {
	opcode      uint32
	inputs      []int32
	outputs     []int32
	optionsType byte
	options     func(b *flatbuffers.Builder) flatbuffers.UOffsetT
}

// model collects a single subgraph before it is serialized.
type model struct {
	description string
	buffers     [][]byte
	tensors     []tensorDef
	operators   []operatorDef
	opcodes     []int32
	inputs      []int32
	outputs     []int32
}

func newModel(description string) *model {
	// buffer 0 is the empty buffer of tensors without data
	return &model{description: description, buffers: [][]byte{nil}}
}

// tensor adds a tensor, with constant data when data is not nil.
func (m *model) tensor(name string, typ int8, data []byte, shape ...int) int32 {
	t := tensorDef{name: name, typ: typ}
	for _, d := range shape {
		t.shape = append(t.shape, int32(d))
	}
	if data != nil {
		t.buffer = uint32(len(m.buffers))
		m.buffers = append(m.buffers, data)
	}
	m.tensors = append(m.tensors, t)
	return int32(len(m.tensors) - 1)
}

func (m *model) opcode(code int32) uint32 {
	for i, c := range m.opcodes {
		if c == code {
			return uint32(i)
		}
	}
	m.opcodes = append(m.opcodes, code)
	return uint32(len(m.opcodes) - 1)
}

func (m *model) operator(code int32, inputs, outputs []int32, optionsType byte, options func(b *flatbuffers.Builder) flatbuffers.UOffsetT) {
	m.operators = append(m.operators, operatorDef{
		opcode:      m.opcode(code),
		inputs:      inputs,
		outputs:     outputs,
		optionsType: optionsType,
		options:     options,
	})
}

// bytes serializes the model. Child objects are written before their parents.
func (m *model) bytes() []byte {
	b := flatbuffers.NewBuilder(1024)

	buffers := make([]flatbuffers.UOffsetT, len(m.buffers))
	for i := len(m.buffers) - 1; i >= 0; i-- {
		var data flatbuffers.UOffsetT
		if m.buffers[i] != nil {
			data = alignedBytes(b, m.buffers[i])
		}
		b.StartObject(1)
		if data != 0 {
			b.PrependUOffsetTSlot(bufferData, data, 0)
		}
		buffers[i] = b.EndObject()
	}

	tensors := make([]flatbuffers.UOffsetT, len(m.tensors))
	for i, t := range m.tensors {
		name := b.CreateString(t.name)
		shape := int32s(b, t.shape)
		b.StartObject(4)
		b.PrependUOffsetTSlot(tensorShape, shape, 0)
		b.PrependInt8Slot(tensorType, t.typ, 0)
		b.PrependUint32Slot(tensorBuffer, t.buffer, 0)
		b.PrependUOffsetTSlot(tensorName, name, 0)
		tensors[i] = b.EndObject()
	}

	operators := make([]flatbuffers.UOffsetT, len(m.operators))
	for i, op := range m.operators {
		inputs := int32s(b, op.inputs)
		outputs := int32s(b, op.outputs)
		var options flatbuffers.UOffsetT
		if op.options != nil {
			options = op.options(b)
		}
		b.StartObject(5)
		b.PrependUint32Slot(operatorOpcodeIndex, op.opcode, 0)
		b.PrependUOffsetTSlot(operatorInputs, inputs, 0)
		b.PrependUOffsetTSlot(operatorOutputs, outputs, 0)
		if options != 0 {
			b.PrependByteSlot(operatorOptionsType, op.optionsType, 0)
			b.PrependUOffsetTSlot(operatorOptions, options, 0)
		}
		operators[i] = b.EndObject()
	}

	tensorVec := offsets(b, tensors)
	inputs := int32s(b, m.inputs)
	outputs := int32s(b, m.outputs)
	operatorVec := offsets(b, operators)
	name := b.CreateString("main")
	b.StartObject(5)
	b.PrependUOffsetTSlot(subgraphTensors, tensorVec, 0)
	b.PrependUOffsetTSlot(subgraphInputs, inputs, 0)
	b.PrependUOffsetTSlot(subgraphOutputs, outputs, 0)
	b.PrependUOffsetTSlot(subgraphOperators, operatorVec, 0)
	b.PrependUOffsetTSlot(subgraphName, name, 0)
	subgraph := b.EndObject()

	opcodes := make([]flatbuffers.UOffsetT, len(m.opcodes))
	for i, code := range m.opcodes {
		b.StartObject(4)
		b.PrependInt8Slot(opcodeDeprecatedBuiltin, int8(code), 0)
		b.PrependInt32Slot(opcodeVersion, 1, 1)
		b.PrependInt32Slot(opcodeBuiltin, code, 0)
		opcodes[i] = b.EndObject()
	}

	opcodeVec := offsets(b, opcodes)
	subgraphVec := offsets(b, []flatbuffers.UOffsetT{subgraph})
	description := b.CreateString(m.description)
	bufferVec := offsets(b, buffers)
	b.StartObject(5)
	b.PrependUint32Slot(modelVersion, SchemaVersion, 0)
	b.PrependUOffsetTSlot(modelOperatorCodes, opcodeVec, 0)
	b.PrependUOffsetTSlot(modelSubgraphs, subgraphVec, 0)
	b.PrependUOffsetTSlot(modelDescription, description, 0)
	b.PrependUOffsetTSlot(modelBuffers, bufferVec, 0)
	root := b.EndObject()

	b.FinishWithFileIdentifier(root, []byte(Identifier))
	return b.FinishedBytes()
}

func int32s(b *flatbuffers.Builder, v []int32) flatbuffers.UOffsetT {
	b.StartVector(4, len(v), 4)
	for i := len(v) - 1; i >= 0; i-- {
		b.PrependInt32(v[i])
	}
	return b.EndVector(len(v))
}

func offsets(b *flatbuffers.Builder, v []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	b.StartVector(4, len(v), 4)
	for i := len(v) - 1; i >= 0; i-- {
		b.PrependUOffsetT(v[i])
	}
	return b.EndVector(len(v))
}

func alignedBytes(b *flatbuffers.Builder, v []byte) flatbuffers.UOffsetT {
	// StartVector reserves room for the whole vector
	b.StartVector(1, len(v), bufferAlign)
	for i := len(v) - 1; i >= 0; i-- {
		b.PlaceByte(v[i])
	}
	return b.EndVector(len(v))
}

func conv2dOptions(padding, activation int8, stride int32) func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	return func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		b.StartObject(6)
		b.PrependInt8Slot(conv2dPadding, padding, 0)
		b.PrependInt32Slot(conv2dStrideW, stride, 0)
		b.PrependInt32Slot(conv2dStrideH, stride, 0)
		b.PrependInt8Slot(conv2dActivation, activation, 0)
		b.PrependInt32Slot(conv2dDilationW, 1, 1)
		b.PrependInt32Slot(conv2dDilationH, 1, 1)
		return b.EndObject()
	}
}

func pool2dOptions(padding int8, stride, filter int32) func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	return func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		b.StartObject(6)
		b.PrependInt8Slot(pool2dPadding, padding, 0)
		b.PrependInt32Slot(pool2dStrideW, stride, 0)
		b.PrependInt32Slot(pool2dStrideH, stride, 0)
		b.PrependInt32Slot(pool2dFilterW, filter, 0)
		b.PrependInt32Slot(pool2dFilterH, filter, 0)
		b.PrependInt8Slot(pool2dActivation, ActivationNone, 0)
		return b.EndObject()
	}
}

func fullyConnectedOptions(activation int8) func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	return func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		b.StartObject(4)
		b.PrependInt8Slot(fullyConnectedActivation, activation, 0)
		return b.EndObject()
	}
}

func reshapeOptions(shape []int32) func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	return func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		newShape := int32s(b, shape)
		b.StartObject(1)
		b.PrependUOffsetTSlot(reshapeNewShape, newShape, 0)
		return b.EndObject()
	}
}
