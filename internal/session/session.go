// Package session runs one level instance: it owns the terrain, killzone,
// finish and spawn state, advances the living terrain and reports pickups,
// completion and deaths.
package session

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"living-terrain/internal/automaton"
	"living-terrain/internal/config"
	"living-terrain/internal/core"
	"living-terrain/internal/dilation"
	"living-terrain/internal/level"
	"living-terrain/internal/logging"
	"living-terrain/internal/noise"
	"living-terrain/internal/physics"
	"living-terrain/internal/texture"
	"living-terrain/internal/vec"
	"living-terrain/internal/voxel"
)

// State is the lifecycle position of a session.
type State uint8

const (
	Spawning State = iota
	Active
	LevelComplete
	PlayerDied
	Restarted
	TornDown
)

func (s State) String() string {
	switch s {
	case Spawning:
		return "spawning"
	case Active:
		return "active"
	case LevelComplete:
		return "level_complete"
	case PlayerDied:
		return "player_died"
	case Restarted:
		return "restarted"
	case TornDown:
		return "torn_down"
	default:
		return "unknown"
	}
}

// DeathReason says why the player died.
type DeathReason uint8

const (
	DeathNone DeathReason = iota
	DeathKillzone
	DeathOutOfBounds
	DeathTimerExpired
)

func (r DeathReason) String() string {
	switch r {
	case DeathKillzone:
		return "killzone"
	case DeathOutOfBounds:
		return "out_of_bounds"
	case DeathTimerExpired:
		return "timer_expired"
	default:
		return "none"
	}
}

// Recorder receives session activity, typically a metrics.Collector.
type Recorder interface {
	ObserveTick(d time.Duration, regime string, solid, births, deaths int)
	FinishCollected()
	PlayerDied(reason string)
	LevelCompleted()
}

type nopRecorder struct{}

func (nopRecorder) ObserveTick(time.Duration, string, int, int, int) {}
func (nopRecorder) FinishCollected()                                 {}
func (nopRecorder) PlayerDied(string)                                {}
func (nopRecorder) LevelCompleted()                                  {}

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = logging.OrDiscard(l) }
}

// WithRecorder sets the activity recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		if r != nil {
			s.rec = r
		}
	}
}

// WithNoise replaces the automaton's noise field.
func WithNoise(f noise.Field) Option {
	return func(s *Session) { s.terrain.stepper.Noise = f }
}

// TerrainBody is the living terrain: its grid, the dilation field, the tick
// timer and the physics body carrying its collider.
type TerrainBody struct {
	Body     physics.BodyID
	Grid     *voxel.Grid
	Time     *dilation.Field
	LastTick float64
	Ticks    int
	Stats    automaton.Stats

	timer   *core.FixedStep
	stepper *automaton.Stepper
}

// KillzoneBody is the static lethal layer.
type KillzoneBody struct {
	Body physics.BodyID
	Grid *voxel.Grid
}

// FinishMarker is one collectable finish.
type FinishMarker struct {
	Body      physics.BodyID
	Coord     voxel.Coord
	Position  vec.Vec2
	Collected bool
}

// SpawnMarker is where the player appears.
type SpawnMarker struct {
	Position vec.Vec2
}

// Events reports what happened during one Update.
type Events struct {
	Ticks     int
	Collected []int
	Completed bool
	Died      bool
	Reason    DeathReason
}

// Session is one level instance. It is not safe for concurrent use; all
// calls belong on the update loop.
type Session struct {
	id    uuid.UUID
	name  string
	cfg   config.Session
	state State

	world    *physics.World
	terrain  TerrainBody
	killzone KillzoneBody
	finishes []FinishMarker
	spawn    SpawnMarker
	required int

	clock  float64
	player vec.Vec2
	reason DeathReason

	height   *texture.Texture
	timeTex  *texture.Texture
	killTex  *texture.Texture
	exported uint64

	log *slog.Logger
	rec Recorder
}

// New spawns a session for lvl. The session copies the level's grids, so
// lvl can be discarded afterwards.
func New(lvl *level.Level, cfg config.Session, opts ...Option) *Session {
	s := &Session{
		id:    uuid.New(),
		name:  lvl.Name,
		cfg:   cfg,
		state: Spawning,
		world: physics.NewWorld(),
		log:   logging.Discard(),
		rec:   nopRecorder{},
	}
	s.terrain = TerrainBody{
		Grid:  lvl.Terrain.Clone(),
		Time:  dilation.New(),
		timer: core.NewFixedStep(cfg.TickInterval, cfg.MaxTicksPerFrame),
		stepper: automaton.New(automaton.Params{
			ProtectRadius: cfg.ProtectRadius,
			TimeScale:     cfg.NoiseTimeScale,
		}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("session", s.id.String(), "level", s.name)

	s.terrain.Body = s.world.AddVoxelBody(physics.KindTerrain, true, s.terrain.Grid)
	s.killzone = KillzoneBody{Grid: lvl.Killzone.Clone()}
	s.killzone.Body = s.world.AddVoxelBody(physics.KindKillzone, false, s.killzone.Grid)

	half := voxel.Size / 2
	s.finishes = make([]FinishMarker, len(lvl.Finishes))
	for i, f := range lvl.Finishes {
		s.finishes[i] = FinishMarker{
			Body:     s.world.AddSensor(physics.KindFinish, vec.Box(f.World, half, half), i),
			Coord:    f.Coord,
			Position: f.World,
		}
	}
	s.spawn = SpawnMarker{Position: lvl.Spawn}
	s.player = lvl.Spawn
	s.required = len(s.finishes)
	s.export()

	if !lvl.HasSpawn {
		s.log.Warn("level has no spawn pixel, using world origin")
	}
	if s.required == 0 {
		s.log.Warn("level has no finish markers and cannot be completed")
	}
	s.state = Active
	s.log.Info("session spawned",
		"terrain", s.terrain.Grid.Total(),
		"killzone", s.killzone.Grid.Total(),
		"finishes", s.required)
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id.String() }

// Name is the level name.
func (s *Session) Name() string { return s.name }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Reason returns the death reason once the state is PlayerDied.
func (s *Session) Reason() DeathReason { return s.reason }

// Spawn returns the spawn position.
func (s *Session) Spawn() vec.Vec2 { return s.spawn.Position }

// Required returns how many finishes are still needed.
func (s *Session) Required() int { return s.required }

// Clock returns the simulated seconds spent active.
func (s *Session) Clock() float64 { return s.clock }

// Stats returns the statistics of the latest automaton tick.
func (s *Session) Stats() automaton.Stats { return s.terrain.Stats }

// Ticks returns the number of automaton ticks run so far.
func (s *Session) Ticks() int { return s.terrain.Ticks }

// Terrain returns a copy of the current terrain grid.
func (s *Session) Terrain() *voxel.Grid { return s.terrain.Grid.Clone() }

// Blocked reports whether box intersects solid terrain. It is the query the
// player's physics uses.
func (s *Session) Blocked(box vec.AABB) bool { return s.world.Blocked(box) }

// Update advances the session by dt seconds with the player occupying
// player. It updates the dilation field, runs any automaton ticks that are
// due, then resolves finish and killzone overlaps and the bounds check.
func (s *Session) Update(dt float64, player vec.AABB) Events {
	var ev Events
	if s.state != Active {
		return ev
	}
	if dt < 0 {
		dt = 0
	}
	s.clock += dt
	s.player = player.Center()

	s.terrain.Time.Update(s.player, dt)
	ev.Ticks = s.terrain.timer.Advance(core.Seconds(dt))
	for i := 0; i < ev.Ticks; i++ {
		s.tick()
	}

	for _, pair := range s.world.Overlaps(player) {
		if s.state != Active {
			break
		}
		s.dispatch(pair, &ev)
	}
	if s.state == Active && s.outOfBounds(s.player) {
		s.die(DeathOutOfBounds, &ev)
	}
	return ev
}

// Tick runs one automaton pass immediately, independent of the timer.
func (s *Session) Tick() {
	if s.state == Active {
		s.tick()
	}
}

func (s *Session) tick() {
	start := time.Now()
	t := &s.terrain
	next, stats := t.stepper.Step(t.Grid, s.player, t.Time.Value)
	t.Grid = next
	t.Stats = stats
	t.Ticks++
	t.LastTick = s.clock
	s.world.Rebuild(t.Body, t.Grid)
	s.export()

	elapsed := time.Since(start)
	s.rec.ObserveTick(elapsed, stats.Regime.String(), stats.After, stats.Births, stats.Deaths)
	s.log.Debug("automaton tick",
		"regime", stats.Regime.String(),
		"before", stats.Before,
		"after", stats.After,
		"births", stats.Births,
		"deaths", stats.Deaths,
		"took", elapsed)
}

// dispatch applies the effect of one overlap pair.
func (s *Session) dispatch(p physics.Pair, ev *Events) {
	switch p.Kind {
	case physics.KindFinish:
		s.collect(p.Tag, ev)
	case physics.KindKillzone:
		s.die(DeathKillzone, ev)
	}
}

func (s *Session) collect(i int, ev *Events) {
	if i < 0 || i >= len(s.finishes) || s.finishes[i].Collected {
		return
	}
	f := &s.finishes[i]
	f.Collected = true
	s.world.Remove(f.Body)
	s.required--
	ev.Collected = append(ev.Collected, i)
	s.rec.FinishCollected()
	s.log.Info("finish collected", "index", i, "remaining", s.required)
	if s.required == 0 {
		s.state = LevelComplete
		ev.Completed = true
		s.rec.LevelCompleted()
		s.log.Info("level complete", "clock", s.clock)
	}
}

func (s *Session) die(reason DeathReason, ev *Events) {
	s.state = PlayerDied
	s.reason = reason
	ev.Died = true
	ev.Reason = reason
	s.rec.PlayerDied(reason.String())
	s.log.Info("player died", "reason", reason.String(), "position", s.player)
}

func (s *Session) outOfBounds(p vec.Vec2) bool {
	return math.Abs(p.X) > s.cfg.Bounds || math.Abs(p.Y) > s.cfg.Bounds
}

// Expire kills the player because the level timer ran out.
func (s *Session) Expire() Events {
	var ev Events
	if s.state == Active {
		s.die(DeathTimerExpired, &ev)
	}
	return ev
}

// Restart abandons the level at the player's request.
func (s *Session) Restart() {
	if s.state == Active {
		s.state = Restarted
		s.log.Info("level restarted")
	}
}

// Teardown destroys every body and releases the grids. The session cannot
// be used afterwards.
func (s *Session) Teardown() {
	if s.state == TornDown {
		return
	}
	s.world.Clear()
	s.terrain.Grid = voxel.New()
	s.killzone.Grid = voxel.New()
	s.finishes = nil
	s.height, s.timeTex, s.killTex = nil, nil, nil
	s.state = TornDown
	s.log.Debug("session torn down")
}
