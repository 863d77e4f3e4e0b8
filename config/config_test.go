package config

import "os"
import "path/filepath"
import "strings"
import "testing"

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.BatchSize != 5 || cfg.Epochs != 18 || cfg.Width != 224 || cfg.Height != 224 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Output != "plushed_model.tflite" {
		t.Errorf("output = %q", cfg.Output)
	}
	if cfg.TrainPath() != filepath.Join("images", "train") {
		t.Errorf("train path = %q", cfg.TrainPath())
	}
	if cfg.ValidationPath() != filepath.Join("images", "validation") {
		t.Errorf("validation path = %q", cfg.ValidationPath())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	data := "root: corpus\nepochs: 2\nbatch_size: 4\nwidth: 32\nheight: 32\nhidden: 8\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != "corpus" || cfg.Epochs != 2 || cfg.BatchSize != 4 || cfg.Hidden != 8 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Pattern != "*.jpg" || len(cfg.Filters) != 3 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	if err := os.WriteFile(path, []byte("epochz: 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Epochs != 18 {
		t.Errorf("epochs = %d", cfg.Epochs)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"one class":         func(c *Config) { c.Classes = []string{"android"} },
		"same classes":      func(c *Config) { c.Classes = []string{"a", "a"} },
		"zero batch":        func(c *Config) { c.BatchSize = 0 },
		"zero epochs":       func(c *Config) { c.Epochs = 0 },
		"dropout mismatch":  func(c *Config) { c.Dropout = []float64{0.1} },
		"dropout range":     func(c *Config) { c.Dropout = []float64{1, 0, 0} },
		"too small":         func(c *Config) { c.Width, c.Height = 4, 4 },
		"zoom range":        func(c *Config) { c.ZoomRange = 1 },
		"bad interpolation": func(c *Config) { c.Interpolation = "lanczos" },
		"bad pattern":       func(c *Config) { c.Pattern = "[" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{Epochs: 3, Seed: 7, Output: "m.tflite"})
	if cfg.Epochs != 3 || cfg.Seed != 7 || cfg.Output != "m.tflite" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.BatchSize != 5 || cfg.Root != "images" {
		t.Errorf("zero overrides changed values: %+v", cfg)
	}
	h := cfg.HyperParameters()
	if h.Epochs != 3 || h.BatchSize != 5 {
		t.Errorf("hyperparameters %+v", h)
	}
}
