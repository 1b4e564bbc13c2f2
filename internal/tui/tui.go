// Package tui is a terminal front end for the game, drawing two voxels per
// character cell with half blocks.
package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"living-terrain/internal/config"
	"living-terrain/internal/game"
	"living-terrain/internal/physics"
	"living-terrain/internal/render"
	"living-terrain/internal/ui"
	"living-terrain/internal/vec"
	"living-terrain/internal/voxel"
)

const upperHalf = '▀'

// View owns the terminal screen and the player for one run.
type View struct {
	screen   tcell.Screen
	director *game.Director
	cfg      config.Config
	player   *physics.Kinematic

	input  physics.Input
	paused bool
}

// New returns a view drawing to screen. The screen must already be
// initialised and the director started.
func New(screen tcell.Screen, d *game.Director, cfg config.Config) *View {
	v := &View{screen: screen, director: d, cfg: cfg}
	v.respawn()
	return v
}

func (v *View) respawn() {
	pos := vec.Vec2{}
	if s := v.director.Session(); s != nil {
		pos = s.Spawn()
	}
	v.player = physics.NewPlayer(pos)
	half := v.cfg.Physics.PlayerSize / 2
	v.player.Half = vec.Vec2{X: half, Y: half}
}

// Player returns the player body.
func (v *View) Player() *physics.Kinematic { return v.player }

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit. Terminals report no key releases, so steering lasts for
// the next Step only.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.input.Left = true
		case tcell.KeyRight:
			v.input.Right = true
		case tcell.KeyTab:
			v.paused = !v.paused
		case tcell.KeyEnter:
			if v.director.Phase() == game.PhaseFinished && v.director.Start() == nil {
				v.respawn()
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'a':
				v.input.Left = true
			case 'd':
				v.input.Right = true
			case ' ', 'w':
				v.input.Jump = true
			case 'r':
				v.director.RequestRestart()
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// Step advances the player and the director by dt seconds.
func (v *View) Step(dt float64) error {
	if v.paused {
		return nil
	}
	if s := v.director.Session(); s != nil {
		v.player.Steer(v.input)
		v.player.Step(dt, v.cfg.Physics.Gravity, s.Blocked)
	}
	v.input = physics.Input{}
	rep, err := v.director.Update(dt, v.player.Box())
	if err != nil {
		return err
	}
	if rep.Spawned {
		v.respawn()
		v.player.Unstick(voxel.Size*4, v.director.Session().Blocked)
	}
	return nil
}

// Draw renders the play field at the top left and the status to its right.
func (v *View) Draw() {
	v.screen.Clear()
	if s := v.director.Session(); s != nil {
		frame := render.Frame(s.Snapshot())
		w, h := v.screen.Size()
		for cy := 0; cy < voxel.N/2 && cy < h; cy++ {
			for x := 0; x < voxel.N && x < w; x++ {
				top := frame.RGBAAt(x, cy*2)
				bottom := frame.RGBAAt(x, cy*2+1)
				style := tcell.StyleDefault.
					Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
					Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
				v.screen.SetContent(x, cy, upperHalf, nil, style)
			}
		}
	}
	v.drawStatus(ui.StatusOf(v.director).Lines())
	v.screen.Show()
}

func (v *View) drawStatus(lines []string) {
	w, _ := v.screen.Size()
	x0 := voxel.N + 2
	if w < x0+10 {
		x0 = 0
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for row, line := range lines {
		for i, r := range []rune(line) {
			v.screen.SetContent(x0+i, row, r, nil, style)
		}
	}
}

// Run drives the view at tps frames per second until ctx is cancelled, the
// user quits or the director fails.
func (v *View) Run(ctx context.Context, tps int) error {
	if tps <= 0 {
		tps = 60
	}
	interval := time.Second / time.Duration(tps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if err := v.Step(interval.Seconds()); err != nil {
				return err
			}
			v.Draw()
		}
	}
}
