// Package render turns session textures into RGBA pixels.
package render

import (
	"image"
	"image/color"
	"math"

	"living-terrain/internal/level"
	"living-terrain/internal/session"
	"living-terrain/internal/texture"
	"living-terrain/internal/vec"
	"living-terrain/internal/voxel"
)

// Colours used for layers that have no palette entry.
var (
	Sky    = color.RGBA{R: 0xF4, G: 0xF4, B: 0xF4, A: 0xFF}
	Player = color.RGBA{R: 0xFF, G: 0xCD, B: 0x75, A: 0xFF}
	Warp   = color.RGBA{R: 0x41, G: 0xA6, B: 0xF6, A: 0x00}
)

// solidThreshold separates set from clear texels of an occupancy texture.
const solidThreshold = 0.5

func put(buf []byte, i int, c color.RGBA) {
	buf[i+0] = c.R
	buf[i+1] = c.G
	buf[i+2] = c.B
	buf[i+3] = c.A
}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// fillTextureRGBA writes the occupancy texture t into buf, a row-major RGBA
// buffer of t.W×t.H pixels.
func fillTextureRGBA(buf []byte, t *texture.Texture, on, off color.Color) {
	cOn, cOff := rgba(on), rgba(off)
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			base := (y*t.W + x) * 4
			if t.At(x, y) > solidThreshold {
				put(buf, base, cOn)
				continue
			}
			put(buf, base, cOff)
		}
	}
}

// fillMaskRGBA writes t as a translucent tint, normalised by max. Zero texels
// are fully transparent.
func fillMaskRGBA(buf []byte, t *texture.Texture, max float32, tint color.RGBA) {
	const (
		maxAlpha      = 140.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			base := (y*t.W + x) * 4
			intensity := 0.0
			if max > 0 {
				intensity = math.Min(math.Max(float64(t.At(x, y)/max), 0), 1)
			}
			if intensity == 0 {
				put(buf, base, color.RGBA{})
				continue
			}
			glow := glowBase + glowRange*math.Sqrt(intensity)
			put(buf, base, color.RGBA{
				R: scaleComponent(tint.R, glow),
				G: scaleComponent(tint.G, glow),
				B: scaleComponent(tint.B, glow),
				A: uint8(math.Round(maxAlpha * math.Pow(intensity, intensityBias))),
			})
		}
	}
}

func scaleComponent(c uint8, f float64) uint8 {
	v := math.Round(float64(c) * f)
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Frame draws a snapshot at one pixel per voxel: sky, killzone, terrain,
// uncollected finishes and the player's voxel, in that order.
func Frame(snap session.Snapshot) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, voxel.N, voxel.N))
	fill := func(t *texture.Texture, c color.RGBA) {
		if t == nil {
			return
		}
		for x := 0; x < voxel.N; x++ {
			for y := 0; y < voxel.N; y++ {
				if t.At(x, y) > solidThreshold {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}
	for i := 0; i < len(img.Pix); i += 4 {
		put(img.Pix, i, Sky)
	}
	fill(snap.Killzone, rgba(level.ColorOf(level.ClassKillzone)))
	fill(snap.Height, rgba(level.ColorOf(level.ClassTerrain)))
	finish := rgba(level.ColorOf(level.ClassFinish))
	for _, f := range snap.Finishes {
		if !f.Collected {
			img.SetRGBA(f.Coord.X, f.Coord.Y, finish)
		}
	}
	if c := voxel.FromWorld(snap.Player); voxel.InRange(c.X, c.Y) {
		img.SetRGBA(c.X, c.Y, Player)
	}
	return img
}

// ScreenPos converts a world position to screen pixels for a view drawing
// one voxel as scale×scale pixels.
func ScreenPos(p vec.Vec2, scale float64) (float64, float64) {
	x := p.X/voxel.Size + voxel.N/2 + 0.5
	y := voxel.N/2 - 1 - p.Y/voxel.Size + 0.5
	return x * scale, y * scale
}
