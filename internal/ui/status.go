package ui

import (
	"fmt"
	"time"

	"living-terrain/internal/game"
)

// Status is the text shown beside the play field.
type Status struct {
	Level    int
	Levels   int
	Name     string
	Phase    game.Phase
	State    string
	Required int
	Total    int
	TimeLeft time.Duration
	HasLimit bool
	RunTime  time.Duration
	Deaths   int
	Ticks    int
	Regime   string
	Solid    int
}

// StatusOf reads the director's current state.
func StatusOf(d *game.Director) Status {
	st := Status{
		Level:   d.Level() + 1,
		Levels:  d.Levels(),
		Phase:   d.Phase(),
		RunTime: d.RunTime(),
		Deaths:  d.Deaths(),
	}
	st.TimeLeft, st.HasLimit = d.TimeLeft()
	if s := d.Session(); s != nil {
		snap := s.Snapshot()
		stats := s.Stats()
		st.Name = snap.Level
		st.State = snap.State.String()
		st.Required = snap.Required
		st.Total = len(snap.Finishes)
		st.Ticks = snap.Ticks
		st.Regime = stats.Regime.String()
		st.Solid = stats.After
		if snap.Ticks == 0 {
			st.Solid = s.Terrain().Total()
		}
	}
	return st
}

// Lines formats the status one item per line.
func (s Status) Lines() []string {
	lines := []string{fmt.Sprintf("Level %d/%d %s", s.Level, s.Levels, s.Name)}
	switch s.Phase {
	case game.PhaseIntermission:
		return append(lines, "Level complete!", "Run "+clock(s.RunTime))
	case game.PhaseFinished:
		return append(lines, "Run finished", "Run "+clock(s.RunTime), fmt.Sprintf("Deaths %d", s.Deaths))
	}
	lines = append(lines,
		fmt.Sprintf("Finishes %d/%d", s.Total-s.Required, s.Total),
		"Run "+clock(s.RunTime),
	)
	if s.HasLimit {
		lines = append(lines, "Left "+clock(s.TimeLeft))
	}
	lines = append(lines,
		fmt.Sprintf("Deaths %d", s.Deaths),
		fmt.Sprintf("Terrain %d (%s)", s.Solid, s.Regime),
		fmt.Sprintf("Ticks %d", s.Ticks),
	)
	return lines
}

func clock(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	m := int(d / time.Minute)
	sec := (d - time.Duration(m)*time.Minute).Seconds()
	return fmt.Sprintf("%d:%04.1f", m, sec)
}
