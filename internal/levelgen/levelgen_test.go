package levelgen

import (
	"bytes"
	"image/png"
	"testing"

	"living-terrain/internal/level"
	"living-terrain/internal/voxel"
)

func encode(t *testing.T, lvl *level.Level) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, level.Encode(lvl)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := encode(t, Generate(DefaultParams(7)))
	b := encode(t, Generate(DefaultParams(7)))
	if !bytes.Equal(a, b) {
		t.Fatalf("same seed produced different levels")
	}
	c := encode(t, Generate(DefaultParams(8)))
	if bytes.Equal(a, c) {
		t.Fatalf("different seeds produced the same level")
	}
}

func TestGenerateLayout(t *testing.T) {
	p := DefaultParams(3)
	lvl := Generate(p)

	if !lvl.HasSpawn {
		t.Fatalf("no spawn")
	}
	sc := voxel.FromWorld(lvl.Spawn)
	if lvl.Terrain.Get(sc.X, sc.Y) {
		t.Fatalf("spawn %v is inside terrain", sc)
	}
	if len(lvl.Finishes) != p.Finishes {
		t.Fatalf("finishes = %d, want %d", len(lvl.Finishes), p.Finishes)
	}
	for _, f := range lvl.Finishes {
		if lvl.Terrain.Get(f.Coord.X, f.Coord.Y) || !lvl.Terrain.Protected(f.Coord.X, f.Coord.Y) {
			t.Fatalf("finish %v must be empty and protected", f.Coord)
		}
	}
	for x := 0; x < voxel.N; x++ {
		for y := voxel.N - p.KillzoneRows; y < voxel.N; y++ {
			if !lvl.Killzone.Get(x, y) || lvl.Terrain.Get(x, y) {
				t.Fatalf("bottom strip at (%d,%d) is not pure killzone", x, y)
			}
		}
	}
	if lvl.Terrain.Total() == 0 {
		t.Fatalf("no terrain generated")
	}
}

func TestGeneratedLevelRoundTrips(t *testing.T) {
	lvl := Generate(DefaultParams(11))
	got, err := level.LoadReader(bytes.NewReader(encode(t, lvl)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Terrain.Equal(lvl.Terrain) || !got.Killzone.Equal(lvl.Killzone) {
		t.Fatalf("grids differ after round trip")
	}
	if len(got.Finishes) != len(lvl.Finishes) || got.Spawn != lvl.Spawn {
		t.Fatalf("markers differ: got %d finishes spawn %v, want %d spawn %v",
			len(got.Finishes), got.Spawn, len(lvl.Finishes), lvl.Spawn)
	}
}
