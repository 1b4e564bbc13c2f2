package physics

import (
	"math"

	"living-terrain/internal/vec"
)

// Gravity is the downward acceleration in world units per second squared.
const Gravity = 9.81 * 50

// maxStep bounds how far a box moves in one collision substep.
const maxStep = 4.0

// Kinematic is an axis-aligned box moved by velocity and gravity and stopped
// by solid bodies.
type Kinematic struct {
	Pos      vec.Vec2
	Vel      vec.Vec2
	Half     vec.Vec2
	OnGround bool
}

// NewPlayer returns the 20×20 player box at pos.
func NewPlayer(pos vec.Vec2) *Kinematic {
	return &Kinematic{Pos: pos, Half: vec.Vec2{X: 10, Y: 10}}
}

// Box returns the current bounds.
func (k *Kinematic) Box() vec.AABB { return vec.Box(k.Pos, k.Half.X, k.Half.Y) }

// Step integrates gravity and velocity over dt seconds, resolving each axis
// separately against blocked. Velocity on a blocked axis is zeroed.
func (k *Kinematic) Step(dt, gravity float64, blocked func(vec.AABB) bool) {
	if dt <= 0 {
		return
	}
	k.Vel.Y -= gravity * dt
	dx := k.Vel.X * dt
	dy := k.Vel.Y * dt
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)) / maxStep))
	if steps < 1 {
		steps = 1
	}
	sx, sy := dx/float64(steps), dy/float64(steps)
	k.OnGround = false
	for i := 0; i < steps; i++ {
		if sx != 0 {
			next := k.Pos.Add(vec.Vec2{X: sx})
			if blocked(vec.Box(next, k.Half.X, k.Half.Y)) {
				sx = 0
				k.Vel.X = 0
			} else {
				k.Pos = next
			}
		}
		if sy != 0 {
			next := k.Pos.Add(vec.Vec2{Y: sy})
			if blocked(vec.Box(next, k.Half.X, k.Half.Y)) {
				if sy < 0 {
					k.OnGround = true
				}
				sy = 0
				k.Vel.Y = 0
			} else {
				k.Pos = next
			}
		}
	}
}

// Unstick lifts the box in small increments until it no longer overlaps a
// solid body, giving up after limit world units.
func (k *Kinematic) Unstick(limit float64, blocked func(vec.AABB) bool) bool {
	for lifted := 0.0; lifted <= limit; lifted += maxStep {
		box := k.Box().Translate(vec.Vec2{Y: lifted})
		if !blocked(box) {
			k.Pos.Y += lifted
			return true
		}
	}
	return false
}
