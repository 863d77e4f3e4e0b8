package trainer

import "fmt"

import "github.com/plushed/classifier/datasets/imagegen"

// Network is what the trainer needs from a compiled network.
type Network interface {
	TrainBatch(images, labels []float32) (loss, acc float64, err error)
	EvaluateBatch(images, labels []float32) (loss, acc float64, err error)
}

// Batcher yields batches endlessly.
type Batcher interface {
	Next() (imagegen.Batch, error)
}

// NewEvaluateFunc returns a function averaging loss and accuracy of net over
// the next steps batches of val.
func NewEvaluateFunc(net Network, val Batcher, steps int) func() (loss, acc float64, err error) {
	return func() (loss, acc float64, err error) {
		if steps <= 0 {
			return 0, 0, fmt.Errorf("evaluate: no validation steps")
		}
		for i := 0; i < steps; i++ {
			b, err := val.Next()
			if err != nil {
				return 0, 0, fmt.Errorf("evaluate: %w", err)
			}
			l, a, err := net.EvaluateBatch(b.Images, b.Labels)
			if err != nil {
				return 0, 0, fmt.Errorf("evaluate: %w", err)
			}
			loss += l
			acc += a
		}
		return loss / float64(steps), acc / float64(steps), nil
	}
}
