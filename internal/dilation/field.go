// Package dilation tracks how much simulated time each voxel has lived
// through. Time runs slowly close to the player and at full rate far away.
package dilation

import (
	"living-terrain/internal/texture"
	"living-terrain/internal/vec"
	"living-terrain/internal/voxel"
)

// Field holds one accumulator per voxel, indexed x*voxel.N + y. Values only
// ever grow.
type Field struct {
	acc []float64
}

// New returns a zeroed field.
func New() *Field {
	return &Field{acc: make([]float64, voxel.N*voxel.N)}
}

// Rate returns the accumulation rate for a voxel at squared distance d2
// from the player: zero inside the stable zone, a band running faster than
// real time, then real time.
func Rate(d2 float64) float64 {
	f1 := clamp01(d2/160 - 160)
	f2 := 4/(1+f1) - 1
	return min(f1*3, f2)
}

// Update advances every accumulator by dt seconds scaled by its rate.
func (f *Field) Update(player vec.Vec2, dt float64) {
	if dt <= 0 {
		return
	}
	for x := 0; x < voxel.N; x++ {
		base := x * voxel.N
		for y := 0; y < voxel.N; y++ {
			d2 := player.Dist2(voxel.ToWorld(x, y))
			f.acc[base+y] += dt * Rate(d2)
		}
	}
}

// Value returns the accumulated time of voxel (x, y).
func (f *Field) Value(x, y int) float64 {
	return f.acc[x*voxel.N+y]
}

// Max returns the largest accumulator.
func (f *Field) Max() float64 {
	m := 0.0
	for _, v := range f.acc {
		if v > m {
			m = v
		}
	}
	return m
}

// Texture exports the accumulators as a linear-filtered texture.
func (f *Field) Texture() *texture.Texture {
	t := texture.New(voxel.N, voxel.N, texture.FilterLinear)
	for i, v := range f.acc {
		t.Pix[i] = float32(v)
	}
	return t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
