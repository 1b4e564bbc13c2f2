// Package game sequences levels: it builds a session per level attempt,
// restarts on death, advances after an intermission and tracks run time.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"living-terrain/internal/config"
	"living-terrain/internal/level"
	"living-terrain/internal/logging"
	"living-terrain/internal/session"
	"living-terrain/internal/vec"
)

// ErrNoLevels is returned when a director is started without levels.
var ErrNoLevels = errors.New("game: no levels configured")

// Phase is the level flow state.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseRestart
	PhaseLevel
	PhaseIntermission
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseRestart:
		return "restart"
	case PhaseLevel:
		return "level"
	case PhaseIntermission:
		return "intermission"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Loader produces the level at index i. Levels are decoded at entry time so
// every attempt starts from the pristine image.
type Loader func(i int) (*level.Level, error)

// FileLoader loads level PNGs from paths.
func FileLoader(paths []string) Loader {
	return func(i int) (*level.Level, error) {
		if i < 0 || i >= len(paths) {
			return nil, fmt.Errorf("game: level index %d out of range", i)
		}
		return level.Load(paths[i])
	}
}

// StaticLoader serves already decoded levels. Each call hands out the same
// Level; sessions copy its grids.
func StaticLoader(levels ...*level.Level) Loader {
	return func(i int) (*level.Level, error) {
		if i < 0 || i >= len(levels) {
			return nil, fmt.Errorf("game: level index %d out of range", i)
		}
		return levels[i], nil
	}
}

// Report describes one Director.Update.
type Report struct {
	Phase   Phase
	Level   int
	Events  session.Events
	Spawned bool
}

// Director owns the current session and the level flow around it.
type Director struct {
	count int
	load  Loader
	cfg   config.Config
	opts  []session.Option
	log   *slog.Logger

	phase   Phase
	current int
	sess    *session.Session

	levelTime time.Duration
	pause     time.Duration
	runTime   time.Duration
	attempts  int
	deaths    int
}

// NewDirector returns a director over count levels.
func NewDirector(count int, load Loader, cfg config.Config, log *slog.Logger, opts ...session.Option) *Director {
	log = logging.OrDiscard(log)
	return &Director{
		count: count,
		load:  load,
		cfg:   cfg,
		log:   log,
		opts:  append([]session.Option{session.WithLogger(log)}, opts...),
	}
}

// Start enters the first level and resets the run timer.
func (d *Director) Start() error {
	if d.count == 0 {
		return ErrNoLevels
	}
	d.runTime = 0
	d.deaths = 0
	return d.enter(0)
}

func (d *Director) enter(i int) error {
	if d.sess != nil {
		d.sess.Teardown()
		d.sess = nil
	}
	lvl, err := d.load(i)
	if err != nil {
		return fmt.Errorf("load level %d: %w", i, err)
	}
	d.current = i
	d.sess = session.New(lvl, d.cfg.Session, d.opts...)
	d.levelTime = 0
	d.attempts++
	d.phase = PhaseLevel
	d.log.Info("level entered", "index", i, "name", lvl.Name, "attempt", d.attempts)
	return nil
}

// Update advances the current phase by dt seconds. During a level the
// player box is forwarded to the session; a death restarts the level at once
// and completion starts the intermission. Spawned is set whenever a fresh
// session was built, so the caller can move the player to its spawn.
func (d *Director) Update(dt float64, player vec.AABB) (Report, error) {
	step := time.Duration(dt * float64(time.Second))
	if d.phase == PhaseLevel || d.phase == PhaseIntermission {
		d.runTime += step
	}
	rep := Report{Phase: d.phase, Level: d.current}

	switch d.phase {
	case PhaseLevel:
		d.levelTime += step
		rep.Events = d.sess.Update(dt, player)
		if d.sess.State() == session.Active && d.cfg.Game.TimeLimit > 0 && d.levelTime >= d.cfg.Game.TimeLimit {
			ev := d.sess.Expire()
			rep.Events.Died, rep.Events.Reason = ev.Died, ev.Reason
		}
		switch d.sess.State() {
		case session.PlayerDied, session.Restarted:
			if d.sess.State() == session.PlayerDied {
				d.deaths++
			}
			if err := d.restart(); err != nil {
				return rep, err
			}
			rep.Spawned = true
		case session.LevelComplete:
			d.sess.Teardown()
			d.phase = PhaseIntermission
			d.pause = d.cfg.Game.Intermission
			d.log.Info("intermission", "index", d.current, "level_time", d.levelTime)
		}

	case PhaseIntermission:
		d.pause -= step
		if d.pause > 0 {
			break
		}
		next := d.current + 1
		if next >= d.count {
			d.sess = nil
			d.phase = PhaseFinished
			d.log.Info("run finished", "run_time", d.runTime, "deaths", d.deaths)
			break
		}
		if err := d.enter(next); err != nil {
			return rep, err
		}
		rep.Spawned = true
	}
	rep.Phase = d.phase
	rep.Level = d.current
	return rep, nil
}

func (d *Director) restart() error {
	d.phase = PhaseRestart
	d.log.Info("level restart", "index", d.current, "reason", d.sess.Reason().String())
	return d.enter(d.current)
}

// RequestRestart abandons the current attempt. The level restarts on the
// next Update.
func (d *Director) RequestRestart() {
	if d.phase == PhaseLevel && d.sess != nil {
		d.sess.Restart()
	}
}

// Session returns the current session, or nil between levels.
func (d *Director) Session() *session.Session {
	if d.phase != PhaseLevel {
		return nil
	}
	return d.sess
}

// Phase returns the current flow state.
func (d *Director) Phase() Phase { return d.phase }

// Level returns the index of the current level.
func (d *Director) Level() int { return d.current }

// LevelTime is the time spent in the current attempt.
func (d *Director) LevelTime() time.Duration { return d.levelTime }

// RunTime is the time since Start, excluding the finished state.
func (d *Director) RunTime() time.Duration { return d.runTime }

// Deaths counts player deaths since Start.
func (d *Director) Deaths() int { return d.deaths }

// TimeLeft returns the remaining level time, or false when there is no
// limit.
func (d *Director) TimeLeft() (time.Duration, bool) {
	if d.cfg.Game.TimeLimit <= 0 {
		return 0, false
	}
	left := d.cfg.Game.TimeLimit - d.levelTime
	if left < 0 {
		left = 0
	}
	return left, true
}

// Levels returns the number of levels in the run.
func (d *Director) Levels() int { return d.count }
