// Package voxel stores the 128×128 terrain and killzone layers as packed
// column bitmasks.
package voxel

import (
	"fmt"
	"math/bits"

	"living-terrain/internal/texture"
)

// N is the side length of every grid.
const N = 128

const words = N / 64

// Coord addresses a single voxel.
type Coord struct {
	X, Y int
}

// column holds the N bits of one x column; bit y lives in word y/64.
type column [words]uint64

// Grid is a fixed-size boolean grid. The zero value is an empty grid with no
// protected coordinates. Grids are plain values; Clone gives an independent
// copy suitable for double buffering.
type Grid struct {
	cols      [N]column
	protected [N]column
}

// New returns an empty grid.
func New() *Grid { return &Grid{} }

// InRange reports whether (x, y) addresses a voxel.
func InRange(x, y int) bool { return x >= 0 && x < N && y >= 0 && y < N }

func mustInRange(op string, x, y int) {
	if !InRange(x, y) {
		panic(fmt.Sprintf("voxel: %s(%d, %d) out of range [0,%d)", op, x, y, N))
	}
}

func (c *column) bit(y int) bool { return c[y>>6]&(1<<(uint(y)&63)) != 0 }

func (c *column) put(y int, v bool) {
	mask := uint64(1) << (uint(y) & 63)
	if v {
		c[y>>6] |= mask
		return
	}
	c[y>>6] &^= mask
}

// Get reports whether (x, y) is set. It panics if the coordinate is outside
// the grid.
func (g *Grid) Get(x, y int) bool {
	mustInRange("Get", x, y)
	return g.cols[x].bit(y)
}

// GetChecked is like Get but treats everything outside the grid as empty.
func (g *Grid) GetChecked(x, y int) bool {
	if !InRange(x, y) {
		return false
	}
	return g.cols[x].bit(y)
}

// Set overwrites the voxel at (x, y). Protected coordinates are left
// untouched. It panics if the coordinate is outside the grid.
func (g *Grid) Set(x, y int, v bool) {
	mustInRange("Set", x, y)
	if g.protected[x].bit(y) {
		return
	}
	g.cols[x].put(y, v)
}

// Protect freezes (x, y); later calls to Set on it are ignored.
func (g *Grid) Protect(x, y int) {
	mustInRange("Protect", x, y)
	g.protected[x].put(y, true)
}

// Protected reports whether (x, y) is frozen.
func (g *Grid) Protected(x, y int) bool {
	if !InRange(x, y) {
		return false
	}
	return g.protected[x].bit(y)
}

// NeighborCount counts set voxels in the (2r+1)² window centred on (x, y),
// the centre included. Voxels outside the grid count as empty.
func (g *Grid) NeighborCount(x, y, r int) int {
	count := 0
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if g.GetChecked(x+dx, y+dy) {
				count++
			}
		}
	}
	return count
}

// Total returns the number of set voxels.
func (g *Grid) Total() int {
	total := 0
	for x := range g.cols {
		for _, w := range g.cols[x] {
			total += bits.OnesCount64(w)
		}
	}
	return total
}

// Clone returns an independent copy, protected set included.
func (g *Grid) Clone() *Grid {
	c := *g
	return &c
}

// Equal reports whether both grids have the same voxels set. The protected
// sets are not compared.
func (g *Grid) Equal(o *Grid) bool { return g.cols == o.cols }

// Solid lists the set coordinates, x outer and y inner.
func (g *Grid) Solid() []Coord {
	out := make([]Coord, 0, g.Total())
	for x := 0; x < N; x++ {
		col := g.cols[x]
		for w := 0; w < words; w++ {
			word := col[w]
			for word != 0 {
				b := bits.TrailingZeros64(word)
				out = append(out, Coord{X: x, Y: w*64 + b})
				word &= word - 1
			}
		}
	}
	return out
}

// HeightTexture maps set voxels to 1 and empty ones to 0.
func (g *Grid) HeightTexture() *texture.Texture {
	t := texture.New(N, N, texture.FilterNearest)
	for _, c := range g.Solid() {
		t.Pix[t.Index(c.X, c.Y)] = 1
	}
	return t
}
