package sequential

import "fmt"
import "io"
import "strings"
import "text/tabwriter"

import "github.com/dustin/go-humanize"

import "github.com/plushed/classifier/layer"

// Summary prints a table of the layers with their NHWC output shapes and
// parameter counts, followed by the totals. The network must be compiled.
func (n *Network) Summary(w io.Writer) error {
	if n.infer == nil {
		return fmt.Errorf("summary: network is not compiled")
	}
	shapes := n.outputShapes()
	rule := strings.Repeat("_", 65)
	fmt.Fprintln(w, "Model: \"sequential\"")
	fmt.Fprintln(w, rule)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Layer (type)\tOutput Shape\tParam #\t")
	fmt.Fprintln(tw, strings.Repeat("=", 28)+"\t"+strings.Repeat("=", 22)+"\t"+strings.Repeat("=", 9)+"\t")
	var total int
	for i, l := range n.layers {
		params := layer.Params(l)
		total += params
		fmt.Fprintf(tw, "%s (%s)\t%s\t%s\t\n", l.Name(), l.Kind(), shapes[i], humanize.Comma(int64(params)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total params: %s\n", humanize.Comma(int64(total)))
	fmt.Fprintf(w, "Trainable params: %s\n", humanize.Comma(int64(total)))
	fmt.Fprintln(w, "Non-trainable params: 0")
	fmt.Fprintln(w, rule)
	return nil
}

// Params is the number of learnable scalars of the network.
func (n *Network) Params() (total int) {
	for _, l := range n.layers {
		total += layer.Params(l)
	}
	return
}

// outputShapes formats the shapes recorded while laying the inference graph
// in NHWC order, with the batch dimension shown as None.
func (n *Network) outputShapes() []string {
	shapes := make([]string, 0, len(n.infer.shapes))
	for _, s := range n.infer.shapes {
		switch len(s) {
		case 4:
			shapes = append(shapes, fmt.Sprintf("(None, %d, %d, %d)", s[2], s[3], s[1]))
		case 2:
			shapes = append(shapes, fmt.Sprintf("(None, %d)", s[1]))
		default:
			shapes = append(shapes, fmt.Sprint(s))
		}
	}
	return shapes
}
