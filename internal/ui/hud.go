//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"living-terrain/internal/core"
)

const (
	panelPadding   = 12
	headerBaseline = 14
	lineSpacing    = 18
	groupSpacing   = 10
)

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	headerColor     = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor        = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// HUD renders the status and tuning panel to the right of the play field.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int
	status     []string
	params     core.ParameterSnapshot
	showParams bool
}

// NewHUD constructs a HUD for the given panel width and tunables.
func NewHUD(width int, params core.ParameterSnapshot) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width, params: params}
}

// Update stores the status to draw and toggles the parameter list on P.
func (h *HUD) Update(st Status) {
	if h == nil {
		return
	}
	h.status = st.Lines()
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		h.showParams = !h.showParams
	}
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelBackground)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	for i, line := range h.status {
		col := labelColor
		if i == 0 {
			col = headerColor
		}
		text.Draw(h.panel, line, face, panelPadding, y, col)
		y += lineSpacing
	}
	if h.showParams {
		for _, g := range h.params.Groups {
			y += groupSpacing
			text.Draw(h.panel, g.Name, face, panelPadding, y, headerColor)
			y += lineSpacing
			for _, p := range g.Params {
				text.Draw(h.panel, p.Label+": "+p.Value, face, panelPadding, y, dimColor)
				y += lineSpacing
			}
		}
	} else {
		text.Draw(h.panel, "P: parameters", face, panelPadding, height-panelPadding, dimColor)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
