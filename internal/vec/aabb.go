package vec

// AABB is an axis-aligned box in world units.
type AABB struct {
	Min, Max Vec2
}

// Box returns the AABB centred on c with the given half extents.
func Box(c Vec2, halfW, halfH float64) AABB {
	return AABB{
		Min: Vec2{X: c.X - halfW, Y: c.Y - halfH},
		Max: Vec2{X: c.X + halfW, Y: c.Y + halfH},
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec2 {
	return Vec2{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Translate moves the box by d.
func (b AABB) Translate(d Vec2) AABB {
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Overlaps reports whether the interiors of b and o intersect. Boxes that
// merely touch do not overlap.
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y
}
