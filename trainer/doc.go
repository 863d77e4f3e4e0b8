// Package trainer provides high-level training orchestration for sequential networks.
// It runs a fixed number of epochs over endless batch generators, averaging loss and
// binary accuracy over each epoch and over a validation pass, and records the history.
package trainer
