package voxel

import (
	"testing"

	"living-terrain/internal/vec"
)

func fill(g *Grid) {
	for x := 0; x < N; x++ {
		for y := 0; y < N; y++ {
			g.Set(x, y, true)
		}
	}
}

func TestSetGet(t *testing.T) {
	g := New()
	for x := 0; x < N; x += 7 {
		for y := 0; y < N; y += 5 {
			g.Set(x, y, true)
			if !g.Get(x, y) {
				t.Fatalf("voxel (%d,%d) not set after Set", x, y)
			}
		}
	}
	g.Set(63, 64, true)
	g.Set(63, 64, false)
	if g.Get(63, 64) {
		t.Fatal("voxel (63,64) still set after clearing")
	}
}

func TestProtectedSetIsNoop(t *testing.T) {
	g := New()
	g.Protect(10, 20)
	before := g.Clone()
	g.Set(10, 20, true)
	if g.Get(10, 20) {
		t.Fatal("protected voxel was modified")
	}
	if !g.Equal(before) {
		t.Fatal("grid changed after Set on protected voxel")
	}

	g = New()
	g.Set(5, 5, true)
	g.Protect(5, 5)
	g.Set(5, 5, false)
	if !g.Get(5, 5) {
		t.Fatal("protected solid voxel was cleared")
	}
	if !g.Clone().Protected(5, 5) {
		t.Fatal("Clone dropped the protected set")
	}
}

func TestGetCheckedOutOfRange(t *testing.T) {
	g := New()
	fill(g)
	cases := []Coord{{-1, 0}, {0, -1}, {N, 0}, {0, N}, {-50, -50}, {N + 10, N + 10}, {-1, N}}
	for _, c := range cases {
		if g.GetChecked(c.X, c.Y) {
			t.Fatalf("GetChecked(%d,%d) returned true outside the grid", c.X, c.Y)
		}
	}
	if !g.GetChecked(N-1, N-1) {
		t.Fatal("GetChecked must see in-range voxels")
	}
}

func TestGetPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Get outside the grid must panic")
		}
	}()
	New().Get(N, 0)
}

func TestSetPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Set outside the grid must panic")
		}
	}()
	New().Set(0, -1, true)
}

func TestNeighborCount(t *testing.T) {
	empty := New()
	for x := 0; x < N; x++ {
		for y := 0; y < N; y++ {
			if n := empty.NeighborCount(x, y, 1); n != 0 {
				t.Fatalf("empty grid neighbor count at (%d,%d) = %d", x, y, n)
			}
		}
	}

	full := New()
	fill(full)
	for x := 1; x < N-1; x++ {
		for y := 1; y < N-1; y++ {
			if n := full.NeighborCount(x, y, 1); n != 9 {
				t.Fatalf("interior neighbor count at (%d,%d) = %d, want 9", x, y, n)
			}
		}
	}
	if n := full.NeighborCount(0, 0, 1); n != 4 {
		t.Fatalf("corner neighbor count = %d, want 4", n)
	}
	if n := full.NeighborCount(0, 64, 1); n != 6 {
		t.Fatalf("edge neighbor count = %d, want 6", n)
	}
	if n := full.NeighborCount(64, 64, 2); n != 25 {
		t.Fatalf("radius 2 neighbor count = %d, want 25", n)
	}
}

func TestTotalAndSolid(t *testing.T) {
	g := New()
	want := []Coord{{0, 0}, {0, 127}, {3, 63}, {3, 64}, {127, 1}}
	for _, c := range want {
		g.Set(c.X, c.Y, true)
	}
	if g.Total() != len(want) {
		t.Fatalf("Total() = %d, want %d", g.Total(), len(want))
	}
	got := g.Solid()
	if len(got) != len(want) {
		t.Fatalf("Solid() returned %d coords, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Solid()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	full := New()
	fill(full)
	if full.Total() != N*N {
		t.Fatalf("full Total() = %d", full.Total())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New()
	g.Set(1, 1, true)
	c := g.Clone()
	c.Set(2, 2, true)
	if g.Get(2, 2) {
		t.Fatal("mutating the clone changed the original")
	}
	if !c.Get(1, 1) {
		t.Fatal("clone lost existing voxel")
	}
}

func TestHeightTexture(t *testing.T) {
	g := New()
	g.Set(10, 20, true)
	tex := g.HeightTexture()
	if tex.W != N || tex.H != N {
		t.Fatalf("texture size %dx%d", tex.W, tex.H)
	}
	ones := 0
	for x := 0; x < N; x++ {
		for y := 0; y < N; y++ {
			v := tex.At(x, y)
			switch v {
			case 1:
				ones++
				if x != 10 || y != 20 {
					t.Fatalf("unexpected solid texel at (%d,%d)", x, y)
				}
			case 0:
			default:
				t.Fatalf("texel (%d,%d) = %v", x, y, v)
			}
		}
	}
	if ones != 1 {
		t.Fatalf("texture has %d solid texels, want 1", ones)
	}
	if tex.Pix[10*N+20] != 1 {
		t.Fatal("texture is not laid out x outer, y inner")
	}
}

func TestWorldMapping(t *testing.T) {
	if p := ToWorld(64, 63); p != (vec.Vec2{}) {
		t.Fatalf("ToWorld(64,63) = %v, want origin", p)
	}
	if p := ToWorld(10, 20); p != (vec.Vec2{X: -1080, Y: 860}) {
		t.Fatalf("ToWorld(10,20) = %v", p)
	}
	for _, c := range []Coord{{0, 0}, {10, 20}, {127, 127}, {64, 63}} {
		p := ToWorld(c.X, c.Y)
		for _, off := range []vec.Vec2{{}, {X: 9, Y: -9}, {X: -9.9, Y: 9.9}} {
			if got := FromWorld(p.Add(off)); got != c {
				t.Fatalf("FromWorld(%v) = %v, want %v", p.Add(off), got, c)
			}
		}
	}
}
