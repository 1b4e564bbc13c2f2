package voxel

import (
	"math"

	"living-terrain/internal/vec"
)

// Size is the world-unit pitch of one voxel.
const Size = 20.0

// ToWorld returns the world position of voxel (x, y). Column 64 and row 63
// sit on the world origin; grid y grows downwards while world y grows up.
func ToWorld(x, y int) vec.Vec2 {
	return vec.Vec2{
		X: float64(x-64) * Size,
		Y: float64(-y+63) * Size,
	}
}

// FromWorld returns the voxel whose square contains p. The result may lie
// outside the grid.
func FromWorld(p vec.Vec2) Coord {
	return Coord{
		X: int(math.Floor(p.X/Size+0.5)) + 64,
		Y: 63 - int(math.Floor(p.Y/Size+0.5)),
	}
}
