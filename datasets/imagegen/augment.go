package imagegen

import "math"
import "math/rand"

import "golang.org/x/image/math/f64"

// Augmentation holds the ranges of the random transforms applied to training samples.
type Augmentation struct {
	FlipHorizontal bool    // mirror half of the samples
	RotationRange  float64 // rotate by up to this many degrees either way
	ZoomRange      float64 // scale each axis by a factor in [1-ZoomRange, 1+ZoomRange]
}

// Transform is one drawn augmentation.
type Transform struct {
	Flip         bool
	Theta        float64 // radians
	ZoomX, ZoomY float64
}

// Identity is the transform that leaves the image as is.
var Identity = Transform{ZoomX: 1, ZoomY: 1}

// Draw picks a random transform within the ranges of a.
func (a *Augmentation) Draw(rng *rand.Rand) Transform {
	t := Identity
	if a == nil {
		return t
	}
	if a.RotationRange > 0 {
		deg := (rng.Float64()*2 - 1) * a.RotationRange
		t.Theta = deg * math.Pi / 180
	}
	if a.ZoomRange > 0 {
		t.ZoomX = 1 - a.ZoomRange + rng.Float64()*2*a.ZoomRange
		t.ZoomY = 1 - a.ZoomRange + rng.Float64()*2*a.ZoomRange
	}
	if a.FlipHorizontal {
		t.Flip = rng.Intn(2) == 1
	}
	return t
}

// IsIdentity reports whether t changes nothing.
func (t Transform) IsIdentity() bool {
	return t == Identity
}

// Matrix returns the source to destination affine map of t for a w by h
// image. The destination pixel at p samples the source at
// c + R*Z*(flip(p) - c), where c is the image centre, so zoom factors above
// one shrink the content.
func (t Transform) Matrix(w, h int) f64.Aff3 {
	cx, cy := float64(w)/2, float64(h)/2
	sin, cos := math.Sincos(t.Theta)

	// A = R * Z
	a00, a01 := cos*t.ZoomX, -sin*t.ZoomY
	a10, a11 := sin*t.ZoomX, cos*t.ZoomY

	// flip(p) = F*p + f
	var f00, fx = 1.0, 0.0
	if t.Flip {
		f00, fx = -1, float64(w)
	}

	// destination to source: L*p + o
	l00, l01 := a00*f00, a01
	l10, l11 := a10*f00, a11
	ox := a00*(fx-cx) + a01*(-cy) + cx
	oy := a10*(fx-cx) + a11*(-cy) + cy

	det := l00*l11 - l01*l10
	i00, i01 := l11/det, -l01/det
	i10, i11 := -l10/det, l00/det
	return f64.Aff3{
		i00, i01, -(i00*ox + i01*oy),
		i10, i11, -(i10*ox + i11*oy),
	}
}
