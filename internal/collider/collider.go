// Package collider turns voxel grids into physics shapes.
package collider

import (
	"living-terrain/internal/vec"
	"living-terrain/internal/voxel"
)

// Shape is a compound of voxel.Size squares, one per solid voxel. A Shape is
// never empty and is not modified after Build.
type Shape struct {
	points []vec.Vec2
	grid   *voxel.Grid
}

// Build converts every solid voxel of g to a world-space square. It returns
// false when g is empty; an empty compound is not a valid collider and must
// not be attached.
func Build(g *voxel.Grid) (*Shape, bool) {
	solid := g.Solid()
	if len(solid) == 0 {
		return nil, false
	}
	points := make([]vec.Vec2, len(solid))
	for i, c := range solid {
		points[i] = voxel.ToWorld(c.X, c.Y)
	}
	return &Shape{points: points, grid: g.Clone()}, true
}

// Len returns the number of voxels in the shape.
func (s *Shape) Len() int { return len(s.points) }

// Points returns the world-space centre of every voxel, in grid order.
func (s *Shape) Points() []vec.Vec2 { return s.points }

// VoxelBox returns the square occupied by the voxel centred on p.
func VoxelBox(p vec.Vec2) vec.AABB {
	return vec.Box(p, voxel.Size/2, voxel.Size/2)
}

// Solid reports whether the shape covers voxel (x, y).
func (s *Shape) Solid(x, y int) bool { return s.grid.GetChecked(x, y) }

// Overlaps reports whether box intersects any voxel of the shape.
func (s *Shape) Overlaps(box vec.AABB) bool {
	_, ok := s.first(box)
	return ok
}

// Touching lists the voxels whose squares intersect box.
func (s *Shape) Touching(box vec.AABB) []voxel.Coord {
	var out []voxel.Coord
	s.each(box, func(c voxel.Coord) bool {
		out = append(out, c)
		return true
	})
	return out
}

func (s *Shape) first(box vec.AABB) (voxel.Coord, bool) {
	var hit voxel.Coord
	found := false
	s.each(box, func(c voxel.Coord) bool {
		hit, found = c, true
		return false
	})
	return hit, found
}

// each visits the solid voxels overlapping box until fn returns false.
func (s *Shape) each(box vec.AABB, fn func(voxel.Coord) bool) {
	lo := voxel.FromWorld(vec.Vec2{X: box.Min.X, Y: box.Max.Y})
	hi := voxel.FromWorld(vec.Vec2{X: box.Max.X, Y: box.Min.Y})
	for x := max(lo.X, 0); x <= min(hi.X, voxel.N-1); x++ {
		for y := max(lo.Y, 0); y <= min(hi.Y, voxel.N-1); y++ {
			if !s.grid.Get(x, y) {
				continue
			}
			if !VoxelBox(voxel.ToWorld(x, y)).Overlaps(box) {
				continue
			}
			if !fn(voxel.Coord{X: x, Y: y}) {
				return
			}
		}
	}
}

// Attachment is the collider slot of one physics body. Every Replace swaps
// the shape outright; an empty rebuild detaches it.
type Attachment struct {
	shape      *Shape
	generation uint64
}

// Replace installs shape, or detaches the current one when ok is false.
func (a *Attachment) Replace(shape *Shape, ok bool) {
	a.generation++
	if !ok {
		a.shape = nil
		return
	}
	a.shape = shape
}

// Rebuild builds a shape from g and installs it.
func (a *Attachment) Rebuild(g *voxel.Grid) {
	a.Replace(Build(g))
}

// Shape returns the attached shape, if any.
func (a *Attachment) Shape() (*Shape, bool) { return a.shape, a.shape != nil }

// Generation counts Replace calls so consumers can spot new shapes.
func (a *Attachment) Generation() uint64 { return a.generation }
