// Package automaton implements the growth/shrink rule that keeps the
// terrain alive.
package automaton

import (
	"living-terrain/internal/noise"
	"living-terrain/internal/vec"
	"living-terrain/internal/voxel"
)

// Regime is the global behaviour selected from the fill ratio.
type Regime uint8

const (
	Steady Regime = iota
	Grow
	Shrink
)

func (r Regime) String() string {
	switch r {
	case Grow:
		return "grow"
	case Shrink:
		return "shrink"
	default:
		return "steady"
	}
}

// Fill thresholds, about 10% and 30% of the grid.
const (
	GrowBelow   = 1638
	ShrinkAbove = 4915
)

// NoiseThreshold is the noise value above which a voxel is treated as if it
// were alive when choosing the rule branch.
const NoiseThreshold = 4.3

// Classify picks the regime for a grid holding total solid voxels.
func Classify(total int) Regime {
	switch {
	case total < GrowBelow:
		return Grow
	case total > ShrinkAbove:
		return Shrink
	default:
		return Steady
	}
}

// Next returns the new state of a voxel with current state c, noise sample n
// and 3×3 count s (centre included).
func Next(r Regime, c bool, n float64, s int) bool {
	hot := n > NoiseThreshold
	switch r {
	case Grow:
		if c || hot {
			return s >= 5
		}
		return s == 3 || s == 4 || s == 1
	case Shrink:
		if c && hot {
			return s >= 7 || s == 1
		}
		return s == 4 || s == 5
	default:
		if c || hot {
			return s >= 7
		}
		return s == 4 || s == 5
	}
}

// Params tunes one Stepper.
type Params struct {
	// ProtectRadius is the world-unit radius around the player that is
	// never modified.
	ProtectRadius float64
	// TimeScale maps accumulated dilation time onto the noise phase axis.
	TimeScale float64
}

// DefaultParams returns the standard tuning.
func DefaultParams() Params {
	return Params{ProtectRadius: 300, TimeScale: 0.05}
}

// Stats summarises one Step.
type Stats struct {
	Regime   Regime
	Before   int
	After    int
	Births   int
	Deaths   int
	Skipped  int
	Rejected int
}

// TimeFunc returns the accumulated simulated time of a voxel.
type TimeFunc func(x, y int) float64

// Stepper applies the rule over a whole grid.
type Stepper struct {
	Noise  noise.Field
	Params Params
}

// New returns a Stepper sampling the terrain fractal field.
func New(params Params) *Stepper {
	return &Stepper{Noise: noise.NewTerrainField(), Params: params}
}

// SamplePoint is where voxel (x, y) reads the noise field at phase t.
func (s *Stepper) SamplePoint(x, y int, t float64) vec.Vec3 {
	return vec.Vec3{
		X: float64(x) / voxel.N,
		Y: float64(y) / voxel.N,
		Z: t * s.Params.TimeScale,
	}
}

// Step computes the next generation of cur without modifying it. Voxels
// within the protection radius of player keep their state. timeAt may be nil,
// in which case the phase axis stays at zero.
func (s *Stepper) Step(cur *voxel.Grid, player vec.Vec2, timeAt TimeFunc) (*voxel.Grid, Stats) {
	stats := Stats{Before: cur.Total()}
	stats.Regime = Classify(stats.Before)
	next := cur.Clone()
	r2 := s.Params.ProtectRadius * s.Params.ProtectRadius

	for x := 0; x < voxel.N; x++ {
		for y := 0; y < voxel.N; y++ {
			if player.Dist2(voxel.ToWorld(x, y)) < r2 {
				stats.Skipped++
				continue
			}
			t := 0.0
			if timeAt != nil {
				t = timeAt(x, y)
			}
			n := s.Noise.At(s.SamplePoint(x, y, t))
			c := cur.Get(x, y)
			v := Next(stats.Regime, c, n, cur.NeighborCount(x, y, 1))
			if v == c {
				continue
			}
			next.Set(x, y, v)
			switch {
			case next.Get(x, y) != v:
				stats.Rejected++
			case v:
				stats.Births++
			default:
				stats.Deaths++
			}
		}
	}
	stats.After = next.Total()
	return next, stats
}
