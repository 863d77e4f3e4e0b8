package learning

import "fmt"

import G "gorgonia.org/gorgonia"

// BinaryCrossEntropy builds the mean binary cross-entropy of probabilities p
// against targets y. Both must be float32 nodes of equal shape. p is mapped
// linearly into [eps, 1-eps] before the logarithms, so saturated outputs stay
// finite and the loss is never below zero.
func BinaryCrossEntropy(p, y *G.Node, eps float32) (*G.Node, error) {
	if !p.Shape().Eq(y.Shape()) {
		return nil, fmt.Errorf("binary cross-entropy: prediction shape %v, target shape %v", p.Shape(), y.Shape())
	}
	one := G.NewConstant(float32(1), G.WithName("one"))
	guard := G.NewConstant(eps, G.WithName("eps"))
	squeeze := G.NewConstant(1-2*eps, G.WithName("squeeze"))

	var err error
	var pc, logP, logQ, q, notY, pos, neg, sum, mean *G.Node
	if pc, err = G.Mul(squeeze, p); err != nil {
		return nil, err
	}
	if pc, err = G.Add(pc, guard); err != nil {
		return nil, err
	}
	if logP, err = G.Log(pc); err != nil {
		return nil, err
	}
	if q, err = G.Sub(one, pc); err != nil {
		return nil, err
	}
	if logQ, err = G.Log(q); err != nil {
		return nil, err
	}
	if notY, err = G.Sub(one, y); err != nil {
		return nil, err
	}
	if pos, err = G.HadamardProd(y, logP); err != nil {
		return nil, err
	}
	if neg, err = G.HadamardProd(notY, logQ); err != nil {
		return nil, err
	}
	if sum, err = G.Add(pos, neg); err != nil {
		return nil, err
	}
	if mean, err = G.Mean(sum); err != nil {
		return nil, err
	}
	return G.Neg(mean)
}

// BinaryAccuracy reports the share of outputs whose thresholded prediction
// (above 0.5) agrees with the thresholded label.
func BinaryAccuracy(predicted, labels []float32) float64 {
	if len(predicted) == 0 || len(predicted) != len(labels) {
		return 0
	}
	var hit int
	for i := range predicted {
		if (predicted[i] > 0.5) == (labels[i] > 0.5) {
			hit++
		}
	}
	return float64(hit) / float64(len(predicted))
}
