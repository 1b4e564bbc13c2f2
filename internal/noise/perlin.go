package noise

import (
	"github.com/aquilax/go-perlin"

	"living-terrain/internal/vec"
)

// Perlin is a seeded gradient-noise Field. It is used to author level
// images, not by the live automaton, which must stay seedless.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin builds a Perlin field. alpha controls smoothing, beta the
// frequency step between the n octaves.
func NewPerlin(alpha, beta float64, n int32, seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(alpha, beta, n, seed)}
}

// At returns the noise value mapped from [-1, 1] to [0, 1]. Octave sums
// that overshoot are clamped.
func (f *Perlin) At(p vec.Vec3) float64 {
	return unit(f.p.Noise3D(p.X, p.Y, p.Z))
}

// At2 samples the XY plane only.
func (f *Perlin) At2(x, y float64) float64 {
	return unit(f.p.Noise2D(x, y))
}

func unit(v float64) float64 {
	v = (v + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
