package trainer

import "fmt"
import "time"

import "github.com/plushed/classifier/datasets/corpus"
import "github.com/plushed/classifier/learning"

// StepsPerEpoch is the number of full batches in total samples. The
// remaining total mod batch samples are not visited in an epoch.
func StepsPerEpoch(total, batch int) int {
	if batch <= 0 || total <= 0 {
		return 0
	}
	return total / batch
}

// Fit trains net for h.Epochs epochs. Every epoch does StepsPerEpoch of the
// training split optimization steps on batches of train, then evaluates
// StepsPerEpoch of the validation split batches of val. The returned history
// has one entry per epoch in each series. Any error stops the training.
func Fit(net Network, c corpus.Corpus, train, val Batcher, h *learning.HyperParameters) (History, error) {
	var history History
	steps := StepsPerEpoch(c.Train.Total, h.BatchSize)
	valSteps := StepsPerEpoch(c.Validation.Total, h.BatchSize)
	if steps == 0 {
		return history, fmt.Errorf("fit: %d training samples do not fill a batch of %d", c.Train.Total, h.BatchSize)
	}
	if valSteps == 0 {
		return history, fmt.Errorf("fit: %d validation samples do not fill a batch of %d", c.Validation.Total, h.BatchSize)
	}
	if h.Epochs <= 0 {
		return history, fmt.Errorf("fit: epochs must be > 0 (got %d)", h.Epochs)
	}
	evaluate := NewEvaluateFunc(net, val, valSteps)
	log := h.Logger()

	for epoch := 1; epoch <= h.Epochs; epoch++ {
		start := time.Now()
		var loss, acc float64
		for step := 0; step < steps; step++ {
			b, err := train.Next()
			if err != nil {
				return history, fmt.Errorf("fit: epoch %d step %d: %w", epoch, step+1, err)
			}
			l, a, err := net.TrainBatch(b.Images, b.Labels)
			if err != nil {
				return history, fmt.Errorf("fit: epoch %d step %d: %w", epoch, step+1, err)
			}
			loss += l
			acc += a
		}
		loss /= float64(steps)
		acc /= float64(steps)

		valLoss, valAcc, err := evaluate()
		if err != nil {
			return history, fmt.Errorf("fit: epoch %d: %w", epoch, err)
		}
		history.Append(acc, valAcc, loss, valLoss)
		log.Printf("epoch=%d/%d steps=%d loss=%.4f accuracy=%.4f val_loss=%.4f val_accuracy=%.4f elapsed=%s",
			epoch, h.Epochs, steps, loss, acc, valLoss, valAcc, time.Since(start).Round(time.Millisecond))
	}
	return history, nil
}
