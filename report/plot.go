// Package report draws the training history
package report

import "fmt"
import "os"

import "gonum.org/v1/plot"
import "gonum.org/v1/plot/plotter"
import "gonum.org/v1/plot/plotutil"
import "gonum.org/v1/plot/vg"
import "gonum.org/v1/plot/vg/draw"
import "gonum.org/v1/plot/vg/vgimg"

import "github.com/plushed/classifier/trainer"

// Width and Height are the size of the chart in points.
var Width, Height = vg.Points(800), vg.Points(400)

// Plot writes a PNG with training and validation accuracy on the left and
// training and validation loss on the right. An existing file is replaced.
func Plot(h trainer.History, path, title string) error {
	if h.Len() == 0 {
		return fmt.Errorf("plot: empty history")
	}
	acc, err := panel(title+" accuracy", "accuracy", h, h.Accuracy, h.ValAccuracy)
	if err != nil {
		return err
	}
	acc.Legend.Left = false
	acc.Legend.Top = false

	loss, err := panel(title+" loss", "loss", h, h.Loss, h.ValLoss)
	if err != nil {
		return err
	}
	loss.Legend.Left = false
	loss.Legend.Top = true

	img := vgimg.New(Width, Height)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 1, Cols: 2}
	canvases := plot.Align([][]*plot.Plot{{acc, loss}}, tiles, dc)
	acc.Draw(canvases[0][0])
	loss.Draw(canvases[0][1])

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("plot: %w", err)
	}
	return f.Close()
}

func panel(title, y string, h trainer.History, train, val []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = y
	epochs := h.Epochs()
	if err := plotutil.AddLines(p,
		"training "+y, points(epochs, train),
		"validation "+y, points(epochs, val),
	); err != nil {
		return nil, fmt.Errorf("plot %s: %w", y, err)
	}
	return p, nil
}

func points(x, y []float64) plotter.XYs {
	xy := make(plotter.XYs, len(y))
	for i := range y {
		xy[i].X = x[i]
		xy[i].Y = y[i]
	}
	return xy
}
