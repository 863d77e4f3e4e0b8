// Package tflite writes sequential networks as TensorFlow Lite flatbuffers
package tflite

// Identifier is the file identifier of TensorFlow Lite models.
const Identifier = "TFL3"

// SchemaVersion is the model schema version written.
const SchemaVersion = 3

// Tensor types.
const (
	TypeFloat32 int8 = 0
	TypeInt32   int8 = 2
)

// Builtin operators.
const (
	OpConv2D         int32 = 3
	OpFullyConnected int32 = 9
	OpLogistic       int32 = 14
	OpMaxPool2D      int32 = 17
	OpReshape        int32 = 22
)

// Builtin option union members.
const (
	OptionsNone           byte = 0
	OptionsConv2D         byte = 1
	OptionsPool2D         byte = 5
	OptionsFullyConnected byte = 8
	OptionsReshape        byte = 17
)

// Padding kinds.
const (
	PaddingSame  int8 = 0
	PaddingValid int8 = 1
)

// Fused activations.
const (
	ActivationNone int8 = 0
	ActivationReLU int8 = 1
)

// field slots of the tables written
const (
	modelVersion       = 0
	modelOperatorCodes = 1
	modelSubgraphs     = 2
	modelDescription   = 3
	modelBuffers       = 4

	subgraphTensors   = 0
	subgraphInputs    = 1
	subgraphOutputs   = 2
	subgraphOperators = 3
	subgraphName      = 4

	tensorShape  = 0
	tensorType   = 1
	tensorBuffer = 2
	tensorName   = 3

	operatorOpcodeIndex = 0
	operatorInputs      = 1
	operatorOutputs     = 2
	operatorOptionsType = 3
	operatorOptions     = 4

	opcodeDeprecatedBuiltin = 0
	opcodeVersion           = 2
	opcodeBuiltin           = 3

	bufferData = 0

	conv2dPadding    = 0
	conv2dStrideW    = 1
	conv2dStrideH    = 2
	conv2dActivation = 3
	conv2dDilationW  = 4
	conv2dDilationH  = 5

	pool2dPadding    = 0
	pool2dStrideW    = 1
	pool2dStrideH    = 2
	pool2dFilterW    = 3
	pool2dFilterH    = 4
	pool2dActivation = 5

	fullyConnectedActivation = 0

	reshapeNewShape = 0
)

// bufferAlign is the alignment of constant tensor data.
const bufferAlign = 16
