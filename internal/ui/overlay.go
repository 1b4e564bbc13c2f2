//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"living-terrain/internal/render"
	"living-terrain/internal/session"
	"living-terrain/internal/voxel"
)

// Overlay draws optional debugging visuals over the play field: the time
// dilation field on 1 and the terrain collider on 2.
type Overlay struct {
	scale        int
	showDilation bool
	showCollider bool

	mask  *render.GridPainter
	pixel *ebiten.Image
}

// NewOverlay constructs an overlay for a view drawing voxels at scale.
func NewOverlay(scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{scale: scale, mask: render.NewGridPainter(voxel.N, voxel.N)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showDilation = !o.showDilation
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showCollider = !o.showCollider
	}
}

// Draw renders the enabled layers for snap.
func (o *Overlay) Draw(screen *ebiten.Image, snap session.Snapshot) {
	if o.showDilation && snap.Dilation != nil {
		o.mask.BlitMask(screen, snap.Dilation, render.Warp, o.scale)
	}
	if o.showCollider && snap.Terrain != nil {
		s := float64(o.scale)
		for _, p := range snap.Terrain.Points() {
			x, y := render.ScreenPos(p, s)
			o.drawPoint(screen, x, y, s/3, color.RGBA{R: 255, G: 60, B: 60, A: 200})
		}
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size/2, y-size/2)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
