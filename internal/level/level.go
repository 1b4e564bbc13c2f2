// Package level decodes level images into the initial terrain and killzone
// grids plus the spawn and finish points.
package level

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"

	"living-terrain/internal/vec"
	"living-terrain/internal/voxel"
)

// ErrBadDimensions is returned for images that are not voxel.N pixels square.
var ErrBadDimensions = errors.New("level: image must be 128x128")

// Finish is one finish pickup read from the level image.
type Finish struct {
	Coord voxel.Coord
	World vec.Vec2
}

// Level is the decoded content of one level image.
type Level struct {
	Name     string
	Terrain  *voxel.Grid
	Killzone *voxel.Grid
	Finishes []Finish
	Spawn    vec.Vec2
	HasSpawn bool
}

// Decode classifies every pixel of img. Pixels are scanned row by row, so
// when several spawn pixels exist the last one in that order wins. Finish
// coordinates are protected in the terrain grid.
func Decode(img image.Image) (*Level, error) {
	b := img.Bounds()
	if b.Dx() != voxel.N || b.Dy() != voxel.N {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadDimensions, b.Dx(), b.Dy())
	}
	lvl := &Level{
		Terrain:  voxel.New(),
		Killzone: voxel.New(),
	}
	for y := 0; y < voxel.N; y++ {
		for x := 0; x < voxel.N; x++ {
			switch Classify(img.At(b.Min.X+x, b.Min.Y+y)) {
			case ClassTerrain:
				lvl.Terrain.Set(x, y, true)
			case ClassKillzone:
				lvl.Killzone.Set(x, y, true)
			case ClassFinish:
				lvl.Finishes = append(lvl.Finishes, Finish{
					Coord: voxel.Coord{X: x, Y: y},
					World: voxel.ToWorld(x, y),
				})
			case ClassSpawn:
				lvl.Spawn = voxel.ToWorld(x, y)
				lvl.HasSpawn = true
			}
		}
	}
	for _, f := range lvl.Finishes {
		lvl.Terrain.Protect(f.Coord.X, f.Coord.Y)
	}
	return lvl, nil
}

// LoadReader decodes a level from an encoded image stream.
func LoadReader(r io.Reader) (*Level, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("level: decode image: %w", err)
	}
	return Decode(img)
}

// Load reads a level image from disk. The level is named after the path.
func Load(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	defer f.Close()
	lvl, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	lvl.Name = path
	return lvl, nil
}

// Encode renders a level back into a palette image. It is the inverse of
// Decode for levels with a single class per voxel.
func Encode(lvl *Level) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, voxel.N, voxel.N))
	for y := 0; y < voxel.N; y++ {
		for x := 0; x < voxel.N; x++ {
			class := ClassEmpty
			switch {
			case lvl.Terrain.Get(x, y):
				class = ClassTerrain
			case lvl.Killzone.Get(x, y):
				class = ClassKillzone
			}
			img.SetNRGBA(x, y, ColorOf(class))
		}
	}
	for _, f := range lvl.Finishes {
		img.SetNRGBA(f.Coord.X, f.Coord.Y, ColorFinish)
	}
	if lvl.HasSpawn {
		c := voxel.FromWorld(lvl.Spawn)
		if voxel.InRange(c.X, c.Y) {
			img.SetNRGBA(c.X, c.Y, ColorSpawn)
		}
	}
	return img
}
