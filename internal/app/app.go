//go:build ebiten

package app

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"living-terrain/internal/config"
	"living-terrain/internal/game"
	"living-terrain/internal/physics"
	"living-terrain/internal/render"
	"living-terrain/internal/ui"
	"living-terrain/internal/vec"
	"living-terrain/internal/voxel"
)

const hudWidth = 220

// Game adapts a game.Director to the ebiten.Game interface.
type Game struct {
	director *game.Director
	cfg      config.Config
	player   *physics.Kinematic

	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	blank   *ebiten.Image

	scale  int
	paused bool
}

// New constructs a Game over a started director.
func New(d *game.Director, cfg config.Config, scale int) *Game {
	if scale <= 0 {
		scale = 1
	}
	g := &Game{
		director: d,
		cfg:      cfg,
		painter:  render.NewGridPainter(voxel.N, voxel.N),
		hud:      ui.NewHUD(hudWidth, cfg.Parameters()),
		overlay:  ui.NewOverlay(scale),
		blank:    ebiten.NewImage(voxel.N, voxel.N),
		scale:    scale,
	}
	g.blank.Fill(render.Sky)
	g.respawn()
	return g
}

func (g *Game) respawn() {
	pos := vec.Vec2{}
	if s := g.director.Session(); s != nil {
		pos = s.Spawn()
	}
	g.player = physics.NewPlayer(pos)
	half := g.cfg.Physics.PlayerSize / 2
	g.player.Half = vec.Vec2{X: half, Y: half}
}

func readInput() physics.Input {
	return physics.Input{
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
}

// Update handles per-frame logic and advances the level flow.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.director.RequestRestart()
	}
	if g.director.Phase() == game.PhaseFinished && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if err := g.director.Start(); err != nil {
			return err
		}
		g.respawn()
	}
	g.overlay.Update()
	if g.paused {
		return nil
	}

	dt := 1 / float64(ebiten.TPS())
	if s := g.director.Session(); s != nil {
		g.player.Steer(readInput())
		g.player.Step(dt, g.cfg.Physics.Gravity, s.Blocked)
	}
	rep, err := g.director.Update(dt, g.player.Box())
	if err != nil {
		return err
	}
	if rep.Spawned {
		g.respawn()
		g.player.Unstick(voxel.Size*4, g.director.Session().Blocked)
	}
	g.hud.Update(ui.StatusOf(g.director))
	return nil
}

// Draw renders the current session, then the overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	s := g.director.Session()
	if s == nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(g.scale), float64(g.scale))
		screen.DrawImage(g.blank, op)
	} else {
		snap := s.Snapshot()
		g.painter.BlitImage(screen, render.Frame(snap), g.scale)
		g.overlay.Draw(screen, snap)
	}
	g.hud.Draw(screen, voxel.N*g.scale, voxel.N*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return voxel.N*g.scale + hudWidth, voxel.N * g.scale
}
