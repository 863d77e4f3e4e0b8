package main

import "flag"
import "fmt"
import "io"
import "os"

import "github.com/google/uuid"

import "github.com/plushed/classifier/config"
import "github.com/plushed/classifier/datasets/corpus"
import "github.com/plushed/classifier/datasets/imagegen"
import "github.com/plushed/classifier/export/tflite"
import "github.com/plushed/classifier/model"
import "github.com/plushed/classifier/parallel"
import "github.com/plushed/classifier/report"
import "github.com/plushed/classifier/trainer"

func main() {
	configPath := flag.String("config", "", "YAML config file, defaults are used when empty")
	root := flag.String("root", "", "image root holding the train and validation directories")
	epochs := flag.Int("epochs", 0, "number of epochs")
	batch := flag.Int("batch", 0, "batch size")
	seed := flag.Int64("seed", 0, "augmentation and shuffle seed, 0 for a random one")
	dstmodel := flag.String("dstmodel", "", "tflite model destination")
	plot := flag.String("plot", "", "accuracy and loss chart destination")
	logfile := flag.String("log", "", "training log file, appended to")
	checkpoint := flag.String("checkpoint", "", "zlib weights file written after training")
	resume := flag.Bool("resume", false, "load the checkpoint weights before training")
	pgo := flag.Bool("pgo", false, "write a CPU profile to default.pgo")
	flag.Parse()

	if *pgo {
		defer profile()()
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			panic(err.Error())
		}
	}
	cfg.ApplyOverrides(config.Overrides{
		Root:      *root,
		Epochs:    *epochs,
		BatchSize: *batch,
		Seed:      *seed,
		Output:    *dstmodel,
		Plot:      *plot,
		Log:       *logfile,
	})
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
	if _, err := run(cfg, os.Stdout, *checkpoint, *resume); err != nil {
		panic(err.Error())
	}
}

// run trains a classifier on cfg and writes the chart and the model.
func run(cfg *config.Config, stdout io.Writer, checkpoint string, resume bool) (trainer.History, error) {
	var history trainer.History
	if resume && checkpoint == "" {
		return history, fmt.Errorf("resume: no checkpoint file given")
	}
	id := uuid.New().String()
	fmt.Fprintln(stdout, "run", id)
	fmt.Fprintln(stdout, parallel.Describe())

	h := cfg.HyperParameters()
	if err := h.SetLogger(cfg.Log); err != nil {
		return history, err
	}
	defer h.Close()

	c, err := corpus.Inspect(cfg)
	if err != nil {
		return history, err
	}
	c.Print(stdout)

	train, val, err := imagegen.Factory(c, cfg)
	if err != nil {
		return history, err
	}

	net, err := model.Build(cfg, &h, stdout)
	if err != nil {
		return history, err
	}
	if resume {
		if err := net.ReadZlibWeightsFromFile(checkpoint); err != nil {
			return history, fmt.Errorf("resume: %w", err)
		}
		h.Logger().Printf("resumed weights=%s", checkpoint)
	}

	if history, err = trainer.Fit(net, c, train, val, &h); err != nil {
		return history, err
	}
	if checkpoint != "" {
		if err := net.WriteZlibWeightsToFile(checkpoint); err != nil {
			return history, fmt.Errorf("checkpoint: %w", err)
		}
	}

	if err := report.Plot(history, cfg.Plot, "run "+id[:8]); err != nil {
		return history, err
	}
	h.Logger().Printf("plot=%s", cfg.Plot)

	if err := tflite.Export(net, cfg.Output, "android/other classifier, run "+id); err != nil {
		return history, err
	}
	h.Logger().Printf("model=%s", cfg.Output)
	return history, nil
}
