package trainer

import "bytes"
import "errors"
import "math"
import "strings"
import "testing"

import "github.com/plushed/classifier/datasets/corpus"
import "github.com/plushed/classifier/datasets/imagegen"
import "github.com/plushed/classifier/learning"

type fakeNet struct {
	trained, evaluated int
	fail               error
}

func (f *fakeNet) TrainBatch(images, labels []float32) (float64, float64, error) {
	f.trained++
	return 1 / float64(f.trained), 0.5, f.fail
}

func (f *fakeNet) EvaluateBatch(images, labels []float32) (float64, float64, error) {
	f.evaluated++
	return 0.25, 0.75, nil
}

type fakeBatcher struct {
	calls int
	fail  error
}

func (f *fakeBatcher) Next() (imagegen.Batch, error) {
	f.calls++
	return imagegen.Batch{Size: 5}, f.fail
}

func hyper(epochs, batch int) *learning.HyperParameters {
	h := learning.Defaults()
	h.Epochs = epochs
	h.BatchSize = batch
	h.SetOutput(new(bytes.Buffer))
	return &h
}

func corpusOf(train, val int) corpus.Corpus {
	return corpus.Corpus{
		Train:      corpus.Counts{A: train / 2, B: train - train/2, Total: train},
		Validation: corpus.Counts{A: val / 2, B: val - val/2, Total: val},
	}
}

func TestStepsPerEpoch(t *testing.T) {
	for _, c := range []struct{ total, batch, want int }{
		{47, 5, 9},
		{20, 5, 4},
		{8, 5, 1},
		{4, 5, 0},
		{0, 5, 0},
		{10, 0, 0},
	} {
		if got := StepsPerEpoch(c.total, c.batch); got != c.want {
			t.Errorf("StepsPerEpoch(%d, %d) = %d, want %d", c.total, c.batch, got, c.want)
		}
	}
}

func TestFit(t *testing.T) {
	net := &fakeNet{}
	train, val := &fakeBatcher{}, &fakeBatcher{}
	h := hyper(2, 5)
	var log bytes.Buffer
	h.SetOutput(&log)
	history, err := Fit(net, corpusOf(20, 8), train, val, h)
	if err != nil {
		t.Fatal(err)
	}
	if train.calls != 8 || net.trained != 8 {
		t.Errorf("training batches %d, steps %d, want 8", train.calls, net.trained)
	}
	if val.calls != 2 || net.evaluated != 2 {
		t.Errorf("validation batches %d, steps %d, want 2", val.calls, net.evaluated)
	}
	if history.Len() != 2 || len(history.Accuracy) != 2 || len(history.ValAccuracy) != 2 || len(history.ValLoss) != 2 {
		t.Fatalf("history %+v", history)
	}
	// mean of 1, 1/2, 1/3, 1/4
	if got, want := history.Loss[0], (1+0.5+1.0/3+0.25)/4; math.Abs(got-want) > 1e-12 {
		t.Errorf("epoch 1 loss %v, want %v", got, want)
	}
	if history.ValAccuracy[1] != 0.75 || history.Accuracy[1] != 0.5 {
		t.Errorf("epoch 2 accuracy %v val %v", history.Accuracy[1], history.ValAccuracy[1])
	}
	if n := strings.Count(log.String(), "epoch="); n != 2 {
		t.Errorf("%d epoch log lines, want 2", n)
	}
	if e := history.Epochs(); len(e) != 2 || e[1] != 2 {
		t.Errorf("epochs axis %v", e)
	}
}

func TestFitZeroSteps(t *testing.T) {
	if _, err := Fit(&fakeNet{}, corpusOf(4, 8), &fakeBatcher{}, &fakeBatcher{}, hyper(1, 5)); err == nil {
		t.Errorf("training split smaller than a batch accepted")
	}
	if _, err := Fit(&fakeNet{}, corpusOf(20, 3), &fakeBatcher{}, &fakeBatcher{}, hyper(1, 5)); err == nil {
		t.Errorf("validation split smaller than a batch accepted")
	}
}

func TestFitStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Fit(&fakeNet{}, corpusOf(20, 8), &fakeBatcher{fail: boom}, &fakeBatcher{}, hyper(1, 5))
	if !errors.Is(err, boom) {
		t.Errorf("generator error lost: %v", err)
	}
	net := &fakeNet{fail: boom}
	history, err := Fit(net, corpusOf(20, 8), &fakeBatcher{}, &fakeBatcher{}, hyper(3, 5))
	if !errors.Is(err, boom) || history.Len() != 0 || net.trained != 1 {
		t.Errorf("err %v, history %d, trained %d", err, history.Len(), net.trained)
	}
}
