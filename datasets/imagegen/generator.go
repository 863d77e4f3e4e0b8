// Package imagegen streams batches of decoded, resized and optionally augmented images
package imagegen

import crypto_rand "crypto/rand"
import "encoding/binary"
import "fmt"
import "math/rand"
import "path/filepath"

import "golang.org/x/image/draw"

import "github.com/plushed/classifier/config"
import "github.com/plushed/classifier/datasets/corpus"
import "github.com/plushed/classifier/parallel"

// Channels is the number of color channels of every sample.
const Channels = 3

// Options configures one generator.
type Options struct {
	Pattern       string
	Width, Height int
	BatchSize     int
	Shuffle       bool
	Augment       *Augmentation // nil disables augmentation
	Interpolation draw.Interpolator
	Threads       int
	Seed          int64 // zero seeds from the operating system
}

// Batch is a group of samples. Images are NHWC float32 in [0,1], Labels are
// one-hot rows.
type Batch struct {
	Images  []float32
	Labels  []float32
	Classes []int
	Size    int
	Height  int
	Width   int
}

// Generator yields an endless sequence of full batches. Each pass over the
// samples yields StepsPerPass batches; the n mod BatchSize samples left at
// the end of a pass are skipped.
type Generator struct {
	files   []string
	labels  []int
	classes corpus.Classes
	opts    Options
	rng     *rand.Rand
	order   []int
	pos     int
}

// New enumerates dir/<class>/<pattern> for both classes.
func New(dir string, classes corpus.Classes, opts Options) (*Generator, error) {
	if opts.BatchSize <= 0 {
		return nil, fmt.Errorf("imagegen: batch size must be > 0 (got %d)", opts.BatchSize)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("imagegen: bad target size %dx%d", opts.Width, opts.Height)
	}
	if opts.Pattern == "" {
		opts.Pattern = "*"
	}
	if opts.Interpolation == nil {
		opts.Interpolation = draw.NearestNeighbor
	}
	if opts.Threads <= 0 {
		opts.Threads = 1
	}
	g := &Generator{
		classes: classes,
		opts:    opts,
		rng:     rand.New(rand.NewSource(seed(opts.Seed))),
	}
	for i, class := range classes {
		files, err := corpus.List(filepath.Join(dir, class), opts.Pattern)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			g.files = append(g.files, f)
			g.labels = append(g.labels, i)
		}
	}
	return g, nil
}

// Factory builds the augmenting, shuffling training generator and the plain
// validation generator of a corpus. Both share the corpus class mapping.
func Factory(c corpus.Corpus, cfg *config.Config) (train, val *Generator, err error) {
	interp, err := Interpolator(cfg.Interpolation)
	if err != nil {
		return nil, nil, err
	}
	base := Options{
		Pattern:       cfg.Pattern,
		Width:         cfg.Width,
		Height:        cfg.Height,
		BatchSize:     cfg.BatchSize,
		Interpolation: interp,
		Threads:       cfg.Threads,
		Seed:          cfg.Seed,
	}
	trainOpts := base
	trainOpts.Shuffle = true
	trainOpts.Augment = &Augmentation{
		FlipHorizontal: cfg.FlipHorizontal,
		RotationRange:  cfg.RotationRange,
		ZoomRange:      cfg.ZoomRange,
	}
	if train, err = New(c.TrainDir, c.Classes, trainOpts); err != nil {
		return nil, nil, err
	}
	if val, err = New(c.ValidationDir, c.Classes, base); err != nil {
		return nil, nil, err
	}
	return train, val, nil
}

func seed(s int64) int64 {
	if s != 0 {
		return s
	}
	var b [8]byte
	if _, err := crypto_rand.Read(b[:]); err != nil {
		return rand.Int63()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// Len returns the number of samples.
func (g *Generator) Len() int {
	return len(g.files)
}

// StepsPerPass returns the number of full batches in one pass.
func (g *Generator) StepsPerPass() int {
	return len(g.files) / g.opts.BatchSize
}

// Classes returns the class mapping used for the labels.
func (g *Generator) Classes() corpus.Classes {
	return g.classes
}

// Files returns the sample paths and their label indexes in enumeration order.
func (g *Generator) Files() ([]string, []int) {
	return g.files, g.labels
}

// Reset makes the next batch the first of a fresh pass.
func (g *Generator) Reset() {
	g.order = nil
	g.pos = 0
}

func (g *Generator) pass() {
	if g.order == nil {
		g.order = make([]int, len(g.files))
	}
	for i := range g.order {
		g.order[i] = i
	}
	if g.opts.Shuffle {
		g.rng.Shuffle(len(g.order), func(i, j int) { g.order[i], g.order[j] = g.order[j], g.order[i] })
	}
	g.pos = 0
}

// Next loads the next batch.
func (g *Generator) Next() (Batch, error) {
	bs := g.opts.BatchSize
	if g.StepsPerPass() == 0 {
		return Batch{}, fmt.Errorf("imagegen: %d samples cannot fill a batch of %d", len(g.files), bs)
	}
	if g.order == nil || g.pos+bs > len(g.order) {
		g.pass()
	}
	picked := g.order[g.pos : g.pos+bs]
	g.pos += bs

	transforms := make([]Transform, bs)
	for i := range transforms {
		transforms[i] = g.opts.Augment.Draw(g.rng)
	}

	k := g.classes.Len()
	stride := g.opts.Height * g.opts.Width * Channels
	b := Batch{
		Images:  make([]float32, bs*stride),
		Labels:  make([]float32, bs*k),
		Classes: make([]int, bs),
		Size:    bs,
		Height:  g.opts.Height,
		Width:   g.opts.Width,
	}
	for i, n := range picked {
		b.Classes[i] = g.labels[n]
		g.classes.OneHot(g.labels[n], b.Labels[i*k:(i+1)*k])
	}
	err := parallel.ForEach(bs, g.opts.Threads, func(i int) error {
		img, err := Load(g.files[picked[i]], g.opts.Width, g.opts.Height, g.opts.Interpolation)
		if err != nil {
			return err
		}
		Rescale(Warp(img, transforms[i]), b.Images[i*stride:(i+1)*stride])
		return nil
	})
	if err != nil {
		return Batch{}, err
	}
	return b, nil
}
