// Package physics is the small collision layer the terrain feeds: a body
// arena, voxel colliders, overlap queries and a kinematic box for the
// player.
package physics

import (
	"living-terrain/internal/collider"
	"living-terrain/internal/vec"
	"living-terrain/internal/voxel"
)

// Kind tells the overlap dispatcher what a body means to the game.
type Kind uint8

const (
	KindTerrain Kind = iota
	KindKillzone
	KindFinish
)

func (k Kind) String() string {
	switch k {
	case KindTerrain:
		return "terrain"
	case KindKillzone:
		return "killzone"
	case KindFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// BodyID indexes a body in its World. IDs are never reused within a World.
type BodyID int

// Body is either a voxel compound (terrain, killzone) or a box sensor.
type Body struct {
	ID     BodyID
	Kind   Kind
	Tag    int
	Solid  bool
	Sensor vec.AABB

	collider collider.Attachment
	isVoxel  bool
	alive    bool
}

// Collider returns the voxel shape attached to the body, if any.
func (b *Body) Collider() (*collider.Shape, bool) { return b.collider.Shape() }

// Generation counts collider rebuilds.
func (b *Body) Generation() uint64 { return b.collider.Generation() }

// Pair is one overlap found by World.Overlaps.
type Pair struct {
	Body BodyID
	Kind Kind
	Tag  int
}

// World is an arena of bodies.
type World struct {
	bodies []Body
}

// NewWorld returns an empty world.
func NewWorld() *World { return &World{} }

// AddVoxelBody registers a voxel compound body. Solid bodies block
// kinematic movement; others only report overlaps.
func (w *World) AddVoxelBody(kind Kind, solid bool, g *voxel.Grid) BodyID {
	id := BodyID(len(w.bodies))
	w.bodies = append(w.bodies, Body{ID: id, Kind: kind, Solid: solid, isVoxel: true, alive: true})
	w.bodies[id].collider.Rebuild(g)
	return id
}

// AddSensor registers a box sensor body carrying tag.
func (w *World) AddSensor(kind Kind, box vec.AABB, tag int) BodyID {
	id := BodyID(len(w.bodies))
	w.bodies = append(w.bodies, Body{ID: id, Kind: kind, Tag: tag, Sensor: box, alive: true})
	return id
}

// Body returns the body with the given ID, or nil if it was removed or never
// existed.
func (w *World) Body(id BodyID) *Body {
	if id < 0 || int(id) >= len(w.bodies) || !w.bodies[id].alive {
		return nil
	}
	return &w.bodies[id]
}

// Rebuild replaces the collider of a voxel body from g. An empty grid
// detaches the collider.
func (w *World) Rebuild(id BodyID, g *voxel.Grid) {
	if b := w.Body(id); b != nil && b.isVoxel {
		b.collider.Rebuild(g)
	}
}

// Remove destroys a body.
func (w *World) Remove(id BodyID) {
	if b := w.Body(id); b != nil {
		b.alive = false
		b.collider.Replace(nil, false)
	}
}

// Clear destroys every body.
func (w *World) Clear() {
	w.bodies = w.bodies[:0]
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	n := 0
	for i := range w.bodies {
		if w.bodies[i].alive {
			n++
		}
	}
	return n
}

// Overlaps lists every live body intersecting box, in ID order.
func (w *World) Overlaps(box vec.AABB) []Pair {
	var out []Pair
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.alive || !b.overlaps(box) {
			continue
		}
		out = append(out, Pair{Body: b.ID, Kind: b.Kind, Tag: b.Tag})
	}
	return out
}

// Blocked reports whether box intersects a solid body.
func (w *World) Blocked(box vec.AABB) bool {
	for i := range w.bodies {
		b := &w.bodies[i]
		if b.alive && b.Solid && b.overlaps(box) {
			return true
		}
	}
	return false
}

func (b *Body) overlaps(box vec.AABB) bool {
	if !b.isVoxel {
		return b.Sensor.Overlaps(box)
	}
	shape, ok := b.collider.Shape()
	return ok && shape.Overlaps(box)
}
