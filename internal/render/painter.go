//go:build ebiten

package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"living-terrain/internal/texture"
)

// GridPainter uploads one 128×128 layer into an ebiten image and draws it
// scaled.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{w: w, h: h, img: ebiten.NewImage(w, h), buf: make([]byte, 4*w*h)}
}

func (gp *GridPainter) fits(t *texture.Texture) bool {
	return t != nil && t.W == gp.w && t.H == gp.h
}

func (gp *GridPainter) draw(dst *ebiten.Image, scale int) {
	gp.img.WritePixels(gp.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// BlitTexture draws an occupancy texture in two colours.
func (gp *GridPainter) BlitTexture(dst *ebiten.Image, t *texture.Texture, on, off color.Color, scale int) {
	if !gp.fits(t) {
		return
	}
	fillTextureRGBA(gp.buf, t, on, off)
	gp.draw(dst, scale)
}

// BlitMask draws t as a translucent tint normalised by its maximum.
func (gp *GridPainter) BlitMask(dst *ebiten.Image, t *texture.Texture, tint color.RGBA, scale int) {
	if !gp.fits(t) {
		return
	}
	fillMaskRGBA(gp.buf, t, t.Max(), tint)
	gp.draw(dst, scale)
}

// BlitImage draws a prepared RGBA image such as a Frame.
func (gp *GridPainter) BlitImage(dst *ebiten.Image, img *image.RGBA, scale int) {
	if img.Rect.Dx() != gp.w || img.Rect.Dy() != gp.h {
		return
	}
	copy(gp.buf, img.Pix)
	gp.draw(dst, scale)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
