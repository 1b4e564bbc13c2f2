// Package texture holds the single-channel images exported to the render
// stage. Pixel data is stored in the voxel grid's native order: x outer, y
// inner.
package texture

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
)

// Filter selects how a texture is sampled when scaled.
type Filter uint8

const (
	// FilterNearest keeps hard voxel edges.
	FilterNearest Filter = iota
	// FilterLinear interpolates between neighbouring texels.
	FilterLinear
)

func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Texture is an immutable-by-convention W×H grid of float32 texels.
type Texture struct {
	W, H   int
	Pix    []float32
	Filter Filter
}

// New allocates a zeroed texture.
func New(w, h int, filter Filter) *Texture {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Texture{W: w, H: h, Pix: make([]float32, w*h), Filter: filter}
}

// Index returns the offset of texel (x, y) in Pix.
func (t *Texture) Index(x, y int) int { return x*t.H + y }

// At returns the texel at (x, y).
func (t *Texture) At(x, y int) float32 { return t.Pix[t.Index(x, y)] }

// Max returns the largest texel value, or 0 for an empty texture.
func (t *Texture) Max() float32 {
	var m float32
	for _, v := range t.Pix {
		if v > m {
			m = v
		}
	}
	return m
}

// Sample reads the texture at continuous texel coordinates honoring the
// texture's filter. Coordinates are clamped to the edge.
func (t *Texture) Sample(u, v float64) float32 {
	if t.W == 0 || t.H == 0 {
		return 0
	}
	if t.Filter == FilterNearest {
		x := clampInt(int(math.Floor(u)), 0, t.W-1)
		y := clampInt(int(math.Floor(v)), 0, t.H-1)
		return t.At(x, y)
	}
	u -= 0.5
	v -= 0.5
	x0 := int(math.Floor(u))
	y0 := int(math.Floor(v))
	fx := float32(u - float64(x0))
	fy := float32(v - float64(y0))
	a := t.clampedAt(x0, y0)
	b := t.clampedAt(x0+1, y0)
	c := t.clampedAt(x0, y0+1)
	d := t.clampedAt(x0+1, y0+1)
	top := a + (b-a)*fx
	bottom := c + (d-c)*fx
	return top + (bottom-top)*fy
}

func (t *Texture) clampedAt(x, y int) float32 {
	return t.At(clampInt(x, 0, t.W-1), clampInt(y, 0, t.H-1))
}

// Gray converts the texture to an 8-bit image, scaling values so that scale
// maps to white. Image pixel (x, y) corresponds to texel (x, y).
func (t *Texture) Gray(scale float32) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, t.W, t.H))
	if scale <= 0 {
		scale = 1
	}
	for x := 0; x < t.W; x++ {
		for y := 0; y < t.H; y++ {
			v := t.At(x, y) / scale
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}
	return img
}

// WritePNG encodes the texture as a grayscale PNG normalised to its maximum.
func (t *Texture) WritePNG(w io.Writer) error {
	return png.Encode(w, t.Gray(t.Max()))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
