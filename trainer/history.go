package trainer

// History holds one value per completed epoch in each series.
type History struct {
	Accuracy    []float64
	ValAccuracy []float64
	Loss        []float64
	ValLoss     []float64
}

// Append records the metrics of one epoch.
func (h *History) Append(acc, valAcc, loss, valLoss float64) {
	h.Accuracy = append(h.Accuracy, acc)
	h.ValAccuracy = append(h.ValAccuracy, valAcc)
	h.Loss = append(h.Loss, loss)
	h.ValLoss = append(h.ValLoss, valLoss)
}

// Len is the number of recorded epochs.
func (h History) Len() int {
	return len(h.Loss)
}

// Epochs returns 1..Len as floats, the x axis of plots.
func (h History) Epochs() []float64 {
	o := make([]float64, h.Len())
	for i := range o {
		o[i] = float64(i + 1)
	}
	return o
}
