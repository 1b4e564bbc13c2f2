package session

import (
	"living-terrain/internal/collider"
	"living-terrain/internal/texture"
	"living-terrain/internal/vec"
)

// Snapshot is the render-facing view of a session. Textures and shapes are
// replaced, never mutated, after each automaton tick, so a snapshot stays
// valid while the session moves on.
type Snapshot struct {
	ID       string
	Level    string
	State    State
	Reason   DeathReason
	Clock    float64
	Ticks    int
	Player   vec.Vec2
	Spawn    vec.Vec2
	Required int
	Finishes []FinishMarker

	Height   *texture.Texture
	Dilation *texture.Texture
	Killzone *texture.Texture

	Terrain       *collider.Shape
	KillzoneShape *collider.Shape
	Generation    uint64
}

// HasTerrain reports whether the terrain currently has a collider.
func (s Snapshot) HasTerrain() bool { return s.Terrain != nil }

// export regenerates the three textures from the current grids.
func (s *Session) export() {
	s.height = s.terrain.Grid.HeightTexture()
	s.timeTex = s.terrain.Time.Texture()
	s.killTex = s.killzone.Grid.HeightTexture()
	s.exported++
}

// Snapshot captures the current exported state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:         s.ID(),
		Level:      s.name,
		State:      s.state,
		Reason:     s.reason,
		Clock:      s.clock,
		Ticks:      s.terrain.Ticks,
		Player:     s.player,
		Spawn:      s.spawn.Position,
		Required:   s.required,
		Finishes:   append([]FinishMarker(nil), s.finishes...),
		Height:     s.height,
		Dilation:   s.timeTex,
		Killzone:   s.killTex,
		Generation: s.exported,
	}
	if b := s.world.Body(s.terrain.Body); b != nil {
		snap.Terrain, _ = b.Collider()
	}
	if b := s.world.Body(s.killzone.Body); b != nil {
		snap.KillzoneShape, _ = b.Collider()
	}
	return snap
}
