// Package learning holds the optimizer settings, the loss and the metric used to fit networks
package learning

import "fmt"
import "io"
import "log"
import "os"

import G "gorgonia.org/gorgonia"

// SetLogger makes the training log go to stderr and, when filename is not
// empty, also appends it to that file until Close.
func (h *HyperParameters) SetLogger(filename string) error {
	if err := h.Close(); err != nil {
		return err
	}
	if filename == "" {
		h.l = log.New(os.Stderr, "", log.LstdFlags)
		return nil
	}
	outfile, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open training log: %w", err)
	}
	h.file = outfile
	h.l = log.New(io.MultiWriter(os.Stderr, outfile), "", log.LstdFlags)
	return nil
}

// Close closes the log file opened by SetLogger. Logging continues on stderr.
func (h *HyperParameters) Close() error {
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	h.l = log.New(os.Stderr, "", log.LstdFlags)
	return err
}

// Logger returns the training logger, stderr unless SetLogger chose otherwise.
func (h *HyperParameters) Logger() *log.Logger {
	if h.l == nil {
		h.l = log.New(os.Stderr, "", log.LstdFlags)
	}
	return h.l
}

// SetOutput redirects the training log to w.
func (h *HyperParameters) SetOutput(w io.Writer) {
	h.l = log.New(w, "", 0)
}

type HyperParameters struct {
	Threads int // number of image decoding goroutines

	BatchSize int // samples per optimization step
	Epochs    int // full passes of the training generator

	LearnRate float64 // Adam step size
	Beta1     float64 // Adam first moment decay
	Beta2     float64 // Adam second moment decay
	Epsilon   float64 // Adam denominator fuzz, also the log guard of the loss

	l    *log.Logger
	file *os.File
}

// Defaults returns the Adam settings the classifier was designed with.
func Defaults() HyperParameters {
	return HyperParameters{
		Threads:   1,
		BatchSize: 5,
		Epochs:    18,
		LearnRate: 0.001,
		Beta1:     0.9,
		Beta2:     0.999,
		Epsilon:   1e-7,
	}
}

// Solver creates the Adam optimizer configured by h.
func (h *HyperParameters) Solver() G.Solver {
	return G.NewAdamSolver(
		G.WithLearnRate(h.LearnRate),
		G.WithBeta1(h.Beta1),
		G.WithBeta2(h.Beta2),
		G.WithEps(h.Epsilon),
	)
}
