// Package config holds the knobs of a classifier training run.
package config

import "errors"
import "fmt"
import "io"
import "os"
import "path/filepath"

import "gopkg.in/yaml.v3"

import "github.com/plushed/classifier/learning"
import "github.com/plushed/classifier/parallel"

// Config captures everything a training run needs. The zero value is not
// usable, start from Default or Load.
type Config struct {
	Root          string   `yaml:"root"`
	TrainDir      string   `yaml:"train_dir"`
	ValidationDir string   `yaml:"validation_dir"`
	Classes       []string `yaml:"classes"`
	Pattern       string   `yaml:"pattern"`

	BatchSize int `yaml:"batch_size"`
	Epochs    int `yaml:"epochs"`
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`

	Filters []int     `yaml:"filters"`
	Dropout []float64 `yaml:"dropout"`
	Hidden  int       `yaml:"hidden"`

	FlipHorizontal bool    `yaml:"flip_horizontal"`
	RotationRange  float64 `yaml:"rotation_range"`
	ZoomRange      float64 `yaml:"zoom_range"`
	Interpolation  string  `yaml:"interpolation"`

	LearnRate float64 `yaml:"learn_rate"`
	Beta1     float64 `yaml:"beta1"`
	Beta2     float64 `yaml:"beta2"`
	Epsilon   float64 `yaml:"epsilon"`

	Seed    int64 `yaml:"seed"`
	Threads int   `yaml:"threads"`

	Output string `yaml:"output"`
	Plot   string `yaml:"plot"`
	Log    string `yaml:"log"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Root      string
	Epochs    int
	BatchSize int
	Seed      int64
	Output    string
	Plot      string
	Log       string
}

// Default returns the stock android/other classifier configuration.
func Default() *Config {
	h := learning.Defaults()
	return &Config{
		Root:           "images",
		TrainDir:       "train",
		ValidationDir:  "validation",
		Classes:        []string{"android", "other"},
		Pattern:        "*.jpg",
		BatchSize:      h.BatchSize,
		Epochs:         h.Epochs,
		Width:          224,
		Height:         224,
		Filters:        []int{16, 32, 64},
		Dropout:        []float64{0.2, 0, 0.2},
		Hidden:         512,
		FlipHorizontal: true,
		RotationRange:  45,
		ZoomRange:      0.5,
		Interpolation:  "nearest",
		LearnRate:      h.LearnRate,
		Beta1:          h.Beta1,
		Beta2:          h.Beta2,
		Epsilon:        h.Epsilon,
		Threads:        parallel.Threads(),
		Output:         "plushed_model.tflite",
		Plot:           "history.png",
	}
}

// Load reads a YAML config on top of the defaults and validates it.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Root != "" {
		c.Root = o.Root
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Plot != "" {
		c.Plot = o.Plot
	}
	if o.Log != "" {
		c.Log = o.Log
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Root == "" || c.TrainDir == "" || c.ValidationDir == "" {
		return errors.New("root, train_dir and validation_dir must be set")
	}
	if len(c.Classes) != 2 {
		return fmt.Errorf("exactly two classes are required (got %d)", len(c.Classes))
	}
	if c.Classes[0] == "" || c.Classes[1] == "" || c.Classes[0] == c.Classes[1] {
		return fmt.Errorf("classes must be two distinct names (got %q)", c.Classes)
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil || c.Pattern == "" {
		return fmt.Errorf("bad file pattern %q", c.Pattern)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive (got %dx%d)", c.Width, c.Height)
	}
	if len(c.Filters) == 0 {
		return errors.New("at least one convolution stage is required")
	}
	if len(c.Dropout) != len(c.Filters) {
		return fmt.Errorf("dropout has %d entries for %d convolution stages", len(c.Dropout), len(c.Filters))
	}
	side := c.Width
	if c.Height < side {
		side = c.Height
	}
	for i, f := range c.Filters {
		if f <= 0 {
			return fmt.Errorf("filters[%d] must be > 0 (got %d)", i, f)
		}
		if c.Dropout[i] < 0 || c.Dropout[i] >= 1 {
			return fmt.Errorf("dropout[%d] must be in [0,1) (got %g)", i, c.Dropout[i])
		}
		side /= 2
	}
	if side < 1 {
		return fmt.Errorf("image size %dx%d is too small for %d pooling stages", c.Width, c.Height, len(c.Filters))
	}
	if c.Hidden <= 0 {
		return fmt.Errorf("hidden must be > 0 (got %d)", c.Hidden)
	}
	if c.RotationRange < 0 || c.RotationRange > 180 {
		return fmt.Errorf("rotation_range must be in [0,180] (got %g)", c.RotationRange)
	}
	if c.ZoomRange < 0 || c.ZoomRange >= 1 {
		return fmt.Errorf("zoom_range must be in [0,1) (got %g)", c.ZoomRange)
	}
	switch c.Interpolation {
	case "nearest", "bilinear", "catmullrom":
	default:
		return fmt.Errorf("unknown interpolation %q", c.Interpolation)
	}
	if c.LearnRate <= 0 {
		return fmt.Errorf("learn_rate must be > 0 (got %g)", c.LearnRate)
	}
	if c.Threads <= 0 {
		c.Threads = parallel.Threads()
	}
	if c.Output == "" {
		return errors.New("output must be set")
	}
	return nil
}

// TrainPath is the directory holding the training split.
func (c *Config) TrainPath() string {
	return filepath.Join(c.Root, c.TrainDir)
}

// ValidationPath is the directory holding the validation split.
func (c *Config) ValidationPath() string {
	return filepath.Join(c.Root, c.ValidationDir)
}

// HyperParameters extracts the optimizer and loop settings.
func (c *Config) HyperParameters() learning.HyperParameters {
	return learning.HyperParameters{
		Threads:   c.Threads,
		BatchSize: c.BatchSize,
		Epochs:    c.Epochs,
		LearnRate: c.LearnRate,
		Beta1:     c.Beta1,
		Beta2:     c.Beta2,
		Epsilon:   c.Epsilon,
	}
}
