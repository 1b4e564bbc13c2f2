// Package levelgen authors level images from seeded Perlin noise: a rolling
// surface, caves below it, a lethal strip along the bottom, a spawn on the
// left and finishes spread over the rest of the surface.
package levelgen

import (
	"living-terrain/internal/core"
	"living-terrain/internal/level"
	"living-terrain/internal/noise"
	"living-terrain/internal/voxel"
)

// Params tunes Generate.
type Params struct {
	Seed         int64
	Octaves      int32
	Alpha, Beta  float64
	Frequency    float64
	Surface      int
	Amplitude    int
	CaveScale    float64
	CaveCut      float64
	KillzoneRows int
	Finishes     int
}

// DefaultParams returns a playable layout for seed.
func DefaultParams(seed int64) Params {
	return Params{
		Seed:         seed,
		Octaves:      3,
		Alpha:        2,
		Beta:         2,
		Frequency:    0.03,
		Surface:      80,
		Amplitude:    18,
		CaveScale:    0.08,
		CaveCut:      0.62,
		KillzoneRows: 4,
		Finishes:     3,
	}
}

// Generate builds a level. The same Params always yield the same level.
func Generate(p Params) *level.Level {
	field := noise.NewPerlin(p.Alpha, p.Beta, p.Octaves, p.Seed)
	rng := core.NewRNG(p.Seed)
	lvl := &level.Level{
		Name:     "generated",
		Terrain:  voxel.New(),
		Killzone: voxel.New(),
	}

	surface := make([]int, voxel.N)
	for x := range surface {
		h := p.Surface + int((field.At2(float64(x)*p.Frequency, 0)-0.5)*2*float64(p.Amplitude))
		surface[x] = clamp(h, 8, voxel.N-p.KillzoneRows-2)
	}

	floor := voxel.N - p.KillzoneRows
	for x := 0; x < voxel.N; x++ {
		for y := surface[x]; y < floor; y++ {
			// Keep a crust of a few voxels over any cave.
			if y > surface[x]+3 && field.At2(float64(x)*p.CaveScale, float64(y)*p.CaveScale+100) > p.CaveCut {
				continue
			}
			lvl.Terrain.Set(x, y, true)
		}
		for y := floor; y < voxel.N; y++ {
			lvl.Killzone.Set(x, y, true)
		}
	}

	spawnX := 8
	lvl.Spawn = voxel.ToWorld(spawnX, surface[spawnX]-2)
	lvl.HasSpawn = true

	if p.Finishes > 0 {
		span := (voxel.N - 32) / p.Finishes
		for i := 0; i < p.Finishes; i++ {
			x := 24 + i*span + rng.IntN(max(span/2, 1))
			x = clamp(x, 0, voxel.N-1)
			y := surface[x] - 2
			lvl.Terrain.Protect(x, y)
			lvl.Finishes = append(lvl.Finishes, level.Finish{
				Coord: voxel.Coord{X: x, Y: y},
				World: voxel.ToWorld(x, y),
			})
		}
	}
	return lvl
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
