// Package model assembles the android/other convolutional classifier
package model

import "fmt"
import "io"

import "github.com/plushed/classifier/config"
import "github.com/plushed/classifier/datasets/imagegen"
import "github.com/plushed/classifier/layer"
import "github.com/plushed/classifier/layer/conv2d"
import "github.com/plushed/classifier/layer/dense"
import "github.com/plushed/classifier/layer/dropout"
import "github.com/plushed/classifier/layer/flatten"
import "github.com/plushed/classifier/layer/maxpool2d"
import "github.com/plushed/classifier/learning"
import "github.com/plushed/classifier/net/sequential"

// KernelSize is the side of every convolution kernel.
const KernelSize = 3

// Build creates the network for cfg and compiles it for cfg.BatchSize. Each
// entry of cfg.Filters adds a 3x3 ReLU convolution and a 2x2 max pooling,
// followed by dropout when the matching cfg.Dropout rate is not zero. The
// stages end in a flatten, a ReLU dense layer of cfg.Hidden units and a
// sigmoid dense layer with one unit per class. When summary is not nil the
// layer table is printed to it.
func Build(cfg *config.Config, h *learning.HyperParameters, summary io.Writer) (*sequential.Network, error) {
	if len(cfg.Filters) != len(cfg.Dropout) {
		return nil, fmt.Errorf("build: %d filter stages but %d dropout rates", len(cfg.Filters), len(cfg.Dropout))
	}
	net := sequential.New(cfg.Height, cfg.Width, imagegen.Channels)
	for i, filters := range cfg.Filters {
		conv, err := conv2d.New(filters, KernelSize, layer.ReLU)
		if err != nil {
			return nil, fmt.Errorf("build: stage %d: %w", i+1, err)
		}
		net.Add(conv)
		net.Add(maxpool2d.MustNew(2, 2))
		if cfg.Dropout[i] > 0 {
			drop, err := dropout.New(cfg.Dropout[i])
			if err != nil {
				return nil, fmt.Errorf("build: stage %d: %w", i+1, err)
			}
			net.Add(drop)
		}
	}
	net.Add(flatten.New())
	hidden, err := dense.New(cfg.Hidden, layer.ReLU)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	net.Add(hidden)
	net.Add(dense.MustNew(len(cfg.Classes), layer.Sigmoid))

	if err := net.Compile(cfg.BatchSize, h); err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	if summary != nil {
		if err := net.Summary(summary); err != nil {
			return nil, err
		}
	}
	return net, nil
}
