package level

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"living-terrain/internal/voxel"
)

func blankImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}

func TestDecodeSingleTerrainPixel(t *testing.T) {
	img := blankImage(voxel.N, voxel.N)
	img.SetNRGBA(10, 20, ColorTerrain)

	lvl, err := Decode(img)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !lvl.Terrain.Get(10, 20) {
		t.Fatal("terrain voxel (10,20) not set")
	}
	if lvl.Terrain.Total() != 1 {
		t.Fatalf("terrain total = %d, want 1", lvl.Terrain.Total())
	}
	if lvl.Killzone.Total() != 0 {
		t.Fatalf("killzone total = %d, want 0", lvl.Killzone.Total())
	}

	tex := lvl.Terrain.HeightTexture()
	for x := 0; x < voxel.N; x++ {
		for y := 0; y < voxel.N; y++ {
			want := float32(0)
			if x == 10 && y == 20 {
				want = 1
			}
			if got := tex.At(x, y); got != want {
				t.Fatalf("height texel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDecodeRejectsWrongSize(t *testing.T) {
	for _, size := range [][2]int{{127, 128}, {128, 64}, {256, 256}} {
		_, err := Decode(blankImage(size[0], size[1]))
		if !errors.Is(err, ErrBadDimensions) {
			t.Fatalf("Decode(%dx%d) error = %v, want ErrBadDimensions", size[0], size[1], err)
		}
	}
}

func TestDecodeClasses(t *testing.T) {
	img := blankImage(voxel.N, voxel.N)
	img.SetNRGBA(1, 1, ColorKillzone)
	img.SetNRGBA(2, 2, ColorFinish)
	img.SetNRGBA(3, 3, ColorFinish)
	img.SetNRGBA(50, 5, ColorSpawn)
	img.SetNRGBA(40, 60, ColorSpawn)

	lvl, err := Decode(img)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !lvl.Killzone.Get(1, 1) || lvl.Killzone.Total() != 1 {
		t.Fatal("killzone voxel not decoded")
	}
	if len(lvl.Finishes) != 2 {
		t.Fatalf("got %d finishes, want 2", len(lvl.Finishes))
	}
	if lvl.Finishes[0].Coord != (voxel.Coord{X: 2, Y: 2}) {
		t.Fatalf("first finish %v", lvl.Finishes[0].Coord)
	}
	if lvl.Finishes[1].World != voxel.ToWorld(3, 3) {
		t.Fatalf("finish world position %v", lvl.Finishes[1].World)
	}
	for _, f := range lvl.Finishes {
		if !lvl.Terrain.Protected(f.Coord.X, f.Coord.Y) {
			t.Fatalf("finish %v not protected", f.Coord)
		}
	}
	// Row-major scan: (40,60) is visited after (50,5).
	if !lvl.HasSpawn || lvl.Spawn != voxel.ToWorld(40, 60) {
		t.Fatalf("spawn = %v (has=%v), want last scanned", lvl.Spawn, lvl.HasSpawn)
	}
}

func TestDecodeNoSpawn(t *testing.T) {
	lvl, err := Decode(blankImage(voxel.N, voxel.N))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if lvl.HasSpawn {
		t.Fatal("blank level must not report a spawn")
	}
	if len(lvl.Finishes) != 0 {
		t.Fatal("blank level must not have finishes")
	}
}

func TestClassifyTolerance(t *testing.T) {
	if Classify(ColorTerrain) != ClassTerrain {
		t.Fatal("exact terrain colour not matched")
	}
	off := ColorTerrain
	off.B++
	if Classify(off) != ClassEmpty {
		t.Fatal("one step off the reference colour must not match")
	}
	if Classify(color.NRGBA{R: 0x1A, G: 0x1C, B: 0x2C, A: 0}) != ClassEmpty {
		t.Fatal("transparent pixel must be empty")
	}
	for _, c := range []Class{ClassTerrain, ClassKillzone, ClassFinish, ClassSpawn} {
		if got := Classify(ColorOf(c)); got != c {
			t.Fatalf("Classify(ColorOf(%v)) = %v", c, got)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	img := blankImage(voxel.N, voxel.N)
	for x := 0; x < voxel.N; x++ {
		img.SetNRGBA(x, 100, ColorTerrain)
		img.SetNRGBA(x, 127, ColorKillzone)
	}
	img.SetNRGBA(64, 90, ColorFinish)
	img.SetNRGBA(10, 99, ColorSpawn)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	lvl, err := LoadReader(&buf)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	again, err := Decode(Encode(lvl))
	if err != nil {
		t.Fatalf("Decode(Encode): %v", err)
	}
	if !again.Terrain.Equal(lvl.Terrain) || !again.Killzone.Equal(lvl.Killzone) {
		t.Fatal("grids differ after round trip")
	}
	if len(again.Finishes) != 1 || again.Finishes[0] != lvl.Finishes[0] {
		t.Fatalf("finishes differ: %v vs %v", again.Finishes, lvl.Finishes)
	}
	if again.Spawn != lvl.Spawn {
		t.Fatalf("spawn differs: %v vs %v", again.Spawn, lvl.Spawn)
	}
}
