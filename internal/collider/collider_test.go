package collider

import (
	"testing"

	"living-terrain/internal/vec"
	"living-terrain/internal/voxel"
)

func TestBuildEmpty(t *testing.T) {
	shape, ok := Build(voxel.New())
	if ok || shape != nil {
		t.Fatal("empty grid must yield no collider")
	}
}

func TestBuildSingleVoxel(t *testing.T) {
	g := voxel.New()
	g.Set(10, 20, true)
	shape, ok := Build(g)
	if !ok {
		t.Fatal("single voxel grid yielded no collider")
	}
	if shape.Len() != 1 {
		t.Fatalf("shape has %d voxels, want 1", shape.Len())
	}
	want := vec.Vec2{X: (10 - 64) * voxel.Size, Y: (-20 + 63) * voxel.Size}
	if got := shape.Points()[0]; got != want {
		t.Fatalf("shape point %v, want %v", got, want)
	}
}

func TestShapeIsSnapshot(t *testing.T) {
	g := voxel.New()
	g.Set(1, 1, true)
	shape, _ := Build(g)
	g.Set(2, 2, true)
	if shape.Solid(2, 2) {
		t.Fatal("shape follows later grid edits")
	}
	if shape.Len() != 1 {
		t.Fatalf("shape length changed to %d", shape.Len())
	}
}

func TestOverlaps(t *testing.T) {
	g := voxel.New()
	g.Set(64, 63, true) // square [-10,10]²
	shape, _ := Build(g)

	cases := []struct {
		name string
		box  vec.AABB
		want bool
	}{
		{"inside", vec.Box(vec.Vec2{}, 2, 2), true},
		{"partial", vec.Box(vec.Vec2{X: 15, Y: 0}, 10, 10), true},
		{"touching edge", vec.Box(vec.Vec2{X: 20, Y: 0}, 10, 10), false},
		{"above", vec.Box(vec.Vec2{X: 0, Y: 40}, 10, 10), false},
		{"outside grid", vec.Box(vec.Vec2{X: 5000, Y: 5000}, 10, 10), false},
		{"covering all", vec.Box(vec.Vec2{}, 3000, 3000), true},
	}
	for _, c := range cases {
		if got := shape.Overlaps(c.box); got != c.want {
			t.Fatalf("%s: Overlaps = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestTouching(t *testing.T) {
	g := voxel.New()
	for x := 60; x < 70; x++ {
		g.Set(x, 70, true)
	}
	shape, _ := Build(g)
	// A 20×20 box centred on voxel (64,70) overlaps only that voxel; the
	// neighbours share an edge.
	box := VoxelBox(voxel.ToWorld(64, 70))
	got := shape.Touching(box)
	if len(got) != 1 || got[0] != (voxel.Coord{X: 64, Y: 70}) {
		t.Fatalf("Touching = %v", got)
	}
	shifted := box.Translate(vec.Vec2{X: 5})
	if n := len(shape.Touching(shifted)); n != 2 {
		t.Fatalf("shifted box touches %d voxels, want 2", n)
	}
}

func TestAttachment(t *testing.T) {
	var a Attachment
	if _, ok := a.Shape(); ok {
		t.Fatal("new attachment must be empty")
	}
	g := voxel.New()
	g.Set(3, 3, true)
	a.Rebuild(g)
	first, ok := a.Shape()
	if !ok || first.Len() != 1 {
		t.Fatal("rebuild did not attach a shape")
	}
	g.Set(4, 4, true)
	a.Rebuild(g)
	second, _ := a.Shape()
	if second == first || second.Len() != 2 {
		t.Fatal("rebuild did not replace the shape")
	}
	a.Rebuild(voxel.New())
	if _, ok := a.Shape(); ok {
		t.Fatal("empty rebuild left a stale collider attached")
	}
	if a.Generation() != 3 {
		t.Fatalf("generation = %d, want 3", a.Generation())
	}
}
