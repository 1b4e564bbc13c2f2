package level

import (
	"image/color"
	"math"
)

// Class is the meaning assigned to one level pixel.
type Class uint8

const (
	ClassEmpty Class = iota
	ClassTerrain
	ClassKillzone
	ClassFinish
	ClassSpawn
)

func (c Class) String() string {
	switch c {
	case ClassEmpty:
		return "empty"
	case ClassTerrain:
		return "terrain"
	case ClassKillzone:
		return "killzone"
	case ClassFinish:
		return "finish"
	case ClassSpawn:
		return "spawn"
	default:
		return "unknown"
	}
}

// Reference colours of the level palette.
var (
	ColorTerrain  = color.NRGBA{R: 0x1A, G: 0x1C, B: 0x2C, A: 0xFF}
	ColorKillzone = color.NRGBA{R: 0xB1, G: 0x3E, B: 0x53, A: 0xFF}
	ColorSpawn    = color.NRGBA{R: 0x56, G: 0x6C, B: 0x86, A: 0xFF}
	ColorFinish   = color.NRGBA{R: 0x73, G: 0xEF, B: 0xF7, A: 0xFF}
)

// Tolerance is the largest Euclidean distance, in normalised RGB, at which a
// pixel still matches a reference colour.
const Tolerance = 1e-4

// precedence lists the classes in the order they are tested; the first match
// wins.
var precedence = [...]struct {
	class Class
	ref   color.NRGBA
}{
	{ClassTerrain, ColorTerrain},
	{ClassKillzone, ColorKillzone},
	{ClassFinish, ColorFinish},
	{ClassSpawn, ColorSpawn},
}

// Classify maps a pixel colour to its level class. Fully transparent pixels
// are always empty.
func Classify(c color.Color) Class {
	p := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	if p.A == 0 {
		return ClassEmpty
	}
	r, g, b := norm16(p.R), norm16(p.G), norm16(p.B)
	for _, e := range precedence {
		if colorDistance(r, g, b, e.ref) <= Tolerance {
			return e.class
		}
	}
	return ClassEmpty
}

// ColorOf returns the reference colour for a class. Empty maps to white.
func ColorOf(c Class) color.NRGBA {
	for _, e := range precedence {
		if e.class == c {
			return e.ref
		}
	}
	return color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
}

func norm16(v uint16) float64 { return float64(v) / 0xFFFF }

func colorDistance(r, g, b float64, ref color.NRGBA) float64 {
	dr := r - float64(ref.R)/0xFF
	dg := g - float64(ref.G)/0xFF
	db := b - float64(ref.B)/0xFF
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
