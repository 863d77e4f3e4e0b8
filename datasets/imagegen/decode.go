package imagegen

import "fmt"
import "image"
import "os"

import _ "image/jpeg"
import _ "image/png"
import _ "golang.org/x/image/bmp"
import _ "golang.org/x/image/webp"

import "golang.org/x/image/draw"

// Interpolator maps the configured resize kernel name to its x/image kernel.
func Interpolator(name string) (draw.Interpolator, error) {
	switch name {
	case "", "nearest":
		return draw.NearestNeighbor, nil
	case "bilinear":
		return draw.BiLinear, nil
	case "catmullrom":
		return draw.CatmullRom, nil
	}
	return nil, fmt.Errorf("imagegen: unknown interpolation %q", name)
}

// Load decodes the image file at path and resizes it to w by h.
func Load(path string, w, h int, interp draw.Interpolator) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	interp.Scale(dst, dst.Rect, src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// Warp applies t to img. Areas that map outside the source repeat the
// nearest edge pixel.
func Warp(img *image.RGBA, t Transform) *image.RGBA {
	if t.IsIdentity() {
		return img
	}
	b := img.Bounds()
	// zoom below 2 keeps every sampled point within w+h of the image
	src := extend(img, b.Dx()+b.Dy())
	dst := image.NewRGBA(b)
	draw.BiLinear.Transform(dst, t.Matrix(b.Dx(), b.Dy()), src, src.Bounds(), draw.Src, nil)
	return dst
}

// extend surrounds img by a border of m pixels copied from the nearest edge.
// The result keeps the coordinates of img.
func extend(img *image.RGBA, m int) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b.Inset(-m))
	for y := out.Rect.Min.Y; y < out.Rect.Max.Y; y++ {
		sy := clamp(y, b.Min.Y, b.Max.Y-1)
		for x := out.Rect.Min.X; x < out.Rect.Max.X; x++ {
			sx := clamp(x, b.Min.X, b.Max.X-1)
			i, j := out.PixOffset(x, y), img.PixOffset(sx, sy)
			copy(out.Pix[i:i+4], img.Pix[j:j+4])
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rescale writes the RGB channels of img, scaled to [0,1], into dst in
// row-major HWC order.
func Rescale(img *image.RGBA, dst []float32) {
	b := img.Bounds()
	var n int
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			dst[n+0] = float32(row[4*x+0]) / 255
			dst[n+1] = float32(row[4*x+1]) / 255
			dst[n+2] = float32(row[4*x+2]) / 255
			n += 3
		}
	}
}
