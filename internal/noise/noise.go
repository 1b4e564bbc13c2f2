// Package noise provides the deterministic, seedless scalar fields that drive
// terrain evolution.
package noise

import "living-terrain/internal/vec"

// Field is a deterministic scalar function of a 3D point.
type Field interface {
	At(p vec.Vec3) float64
}

// FieldFunc adapts a plain function to Field.
type FieldFunc func(p vec.Vec3) float64

// At calls f(p).
func (f FieldFunc) At(p vec.Vec3) float64 { return f(p) }

// Constant is a Field returning the same value everywhere.
type Constant float64

// At returns c.
func (c Constant) At(vec.Vec3) float64 { return float64(c) }

const iterations = 4

// Per-iteration rotation of the base field.
const (
	baseRotX = 0.31
	baseRotY = 0.47
	baseRotZ = 0.23
)

// Sample evaluates the base field. Each iteration rotates p about X, Y and Z
// and accumulates dot(cos p, (cos p).yzx); the sum is averaged over the
// iteration count, so the result lies in [-3, 3].
func Sample(p vec.Vec3) float64 {
	sum := 0.0
	for i := 0; i < iterations; i++ {
		p = p.RotateX(baseRotX).RotateY(baseRotY).RotateZ(baseRotZ)
		c := p.Cos()
		sum += c.Dot(c.YZX())
	}
	return sum / iterations
}

// Params configures the fractal field.
type Params struct {
	Octaves     int
	Frequency   float64
	Lacunarity  float64
	Persistence float64
}

// TerrainParams are the settings the terrain automaton samples with.
var TerrainParams = Params{Octaves: 5, Frequency: 20, Lacunarity: 1.2, Persistence: 0.6}

// Octave feedback transform.
const (
	octaveRotX = 0.73
	octaveRotY = 1.09
	octaveRotZ = 0.57
	// reflectGain scales the running result into the reflection offset.
	reflectGain = 0.1
)

var (
	octaveShift   = vec.Vec3{X: 1, Y: 1, Z: 1}
	reflectNormal = vec.Vec3{X: 1, Y: 2, Z: 3}.Normalized()
)

// Fractal sums params.Octaves octaves of Sample. Every octave adds
// 1 - sample*amplitude and then moves the sample point: a fixed rotation, a
// unit translation and a reflection across a plane whose offset follows the
// running result and the octave index.
func Fractal(p vec.Vec3, params Params) float64 {
	freq := params.Frequency
	amp := 1.0
	acc := 0.0
	for o := 0; o < params.Octaves; o++ {
		s := Sample(p.Scale(freq))
		acc += 1 - s*amp

		p = p.RotateX(octaveRotX).RotateY(octaveRotY).RotateZ(octaveRotZ)
		p = p.Add(octaveShift)
		p = p.Reflect(reflectNormal, acc*reflectGain+float64(o))

		freq *= params.Lacunarity
		amp *= params.Persistence
	}
	return acc
}

// FractalField is the Field form of Fractal.
type FractalField struct {
	Params Params
}

// NewTerrainField returns the fractal field used by the automaton.
func NewTerrainField() FractalField { return FractalField{Params: TerrainParams} }

// At evaluates the fractal noise at p.
func (f FractalField) At(p vec.Vec3) float64 { return Fractal(p, f.Params) }
