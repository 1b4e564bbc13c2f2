package physics

import (
	"testing"

	"living-terrain/internal/vec"
	"living-terrain/internal/voxel"
)

func floorGrid(row int) *voxel.Grid {
	g := voxel.New()
	for x := 0; x < voxel.N; x++ {
		g.Set(x, row, true)
	}
	return g
}

func TestOverlapsDispatchesByKind(t *testing.T) {
	w := NewWorld()
	kill := voxel.New()
	kill.Set(64, 63, true)
	terrain := w.AddVoxelBody(KindTerrain, true, floorGrid(100))
	killID := w.AddVoxelBody(KindKillzone, false, kill)
	finish := w.AddSensor(KindFinish, vec.Box(vec.Vec2{X: 200}, 10, 10), 7)

	got := w.Overlaps(vec.Box(vec.Vec2{}, 5, 5))
	if len(got) != 1 || got[0].Body != killID || got[0].Kind != KindKillzone {
		t.Fatalf("overlaps at origin = %v", got)
	}
	got = w.Overlaps(vec.Box(vec.Vec2{X: 195}, 10, 10))
	if len(got) != 1 || got[0].Body != finish || got[0].Tag != 7 {
		t.Fatalf("overlaps at finish = %v", got)
	}
	floorY := voxel.ToWorld(0, 100).Y
	got = w.Overlaps(vec.Box(vec.Vec2{Y: floorY}, 5, 5))
	if len(got) != 1 || got[0].Body != terrain {
		t.Fatalf("overlaps at floor = %v", got)
	}
}

func TestRemoveAndRebuild(t *testing.T) {
	w := NewWorld()
	id := w.AddVoxelBody(KindTerrain, true, floorGrid(10))
	sensor := w.AddSensor(KindFinish, vec.Box(vec.Vec2{}, 10, 10), 0)
	if w.Len() != 2 {
		t.Fatalf("Len = %d", w.Len())
	}

	w.Rebuild(id, voxel.New())
	if _, ok := w.Body(id).Collider(); ok {
		t.Fatal("empty rebuild must detach the collider")
	}
	if w.Blocked(vec.Box(voxel.ToWorld(5, 10), 5, 5)) {
		t.Fatal("detached collider still blocks")
	}

	w.Remove(sensor)
	if w.Body(sensor) != nil {
		t.Fatal("removed body still reachable")
	}
	if len(w.Overlaps(vec.Box(vec.Vec2{}, 10, 10))) != 0 {
		t.Fatal("removed sensor still overlaps")
	}
	if w.Body(BodyID(99)) != nil || w.Body(-1) != nil {
		t.Fatal("unknown IDs must return nil")
	}
	w.Clear()
	if w.Len() != 0 {
		t.Fatal("Clear left bodies behind")
	}
}

func TestKinematicLandsOnFloor(t *testing.T) {
	w := NewWorld()
	w.AddVoxelBody(KindTerrain, true, floorGrid(70))
	floorTop := voxel.ToWorld(0, 70).Y + voxel.Size/2

	p := NewPlayer(vec.Vec2{Y: floorTop + 100})
	for i := 0; i < 240; i++ {
		p.Step(1.0/60, Gravity, w.Blocked)
	}
	if !p.OnGround {
		t.Fatal("player never landed")
	}
	bottom := p.Box().Min.Y
	if bottom < floorTop || bottom > floorTop+maxStep {
		t.Fatalf("player rests at %v, floor top %v", bottom, floorTop)
	}
	if p.Vel.Y != 0 {
		t.Fatalf("vertical velocity %v after landing", p.Vel.Y)
	}
}

func TestKinematicWallStopsHorizontal(t *testing.T) {
	w := NewWorld()
	wall := voxel.New()
	for y := 0; y < voxel.N; y++ {
		wall.Set(70, y, true)
	}
	w.AddVoxelBody(KindTerrain, true, wall)
	wallLeft := voxel.ToWorld(70, 0).X - voxel.Size/2

	p := NewPlayer(vec.Vec2{})
	p.Vel.X = 300
	for i := 0; i < 120; i++ {
		p.Step(1.0/60, 0, w.Blocked)
	}
	if p.Box().Max.X > wallLeft {
		t.Fatalf("player passed the wall: %v > %v", p.Box().Max.X, wallLeft)
	}
	if p.Vel.X != 0 {
		t.Fatalf("horizontal velocity %v after hitting wall", p.Vel.X)
	}
}

func TestUnstick(t *testing.T) {
	w := NewWorld()
	g := voxel.New()
	g.Set(64, 63, true)
	w.AddVoxelBody(KindTerrain, true, g)
	p := NewPlayer(vec.Vec2{})
	if !p.Unstick(100, w.Blocked) {
		t.Fatal("Unstick failed")
	}
	if w.Blocked(p.Box()) {
		t.Fatal("player still inside terrain")
	}
	if p.Pos.Y < 20 {
		t.Fatalf("player lifted only to %v", p.Pos.Y)
	}
}

func TestSteer(t *testing.T) {
	k := NewPlayer(vec.Vec2{})
	k.Steer(Input{Right: true})
	if k.Vel.X != 50 {
		t.Fatalf("first right press vx = %v, want 50", k.Vel.X)
	}
	k.Steer(Input{Right: true})
	if k.Vel.X != 55 {
		t.Fatalf("second right press vx = %v, want 55", k.Vel.X)
	}
	k.Steer(Input{Left: true})
	if k.Vel.X != 5 {
		t.Fatalf("reversing vx = %v, want 5", k.Vel.X)
	}

	k.Vel.X = 400
	k.Steer(Input{Right: true})
	if k.Vel.X != maxRunSpeed {
		t.Fatalf("clamped vx = %v", k.Vel.X)
	}

	k.Steer(Input{Jump: true})
	if k.Vel.Y != jumpSpeed {
		t.Fatalf("jump vy = %v", k.Vel.Y)
	}
}
