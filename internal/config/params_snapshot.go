package config

import (
	"strconv"
	"strings"
	"time"

	"living-terrain/internal/core"
)

// Parameters returns the configuration grouped for display.
func (c Config) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "Session",
			Params: []core.Parameter{
				durationParam("tick_interval", "Tick interval", c.Session.TickInterval),
				intParam("max_ticks_per_frame", "Max ticks per frame", c.Session.MaxTicksPerFrame),
				floatParam("protect_radius", "Protection radius", c.Session.ProtectRadius),
				floatParam("bounds", "Bounds", c.Session.Bounds),
				floatParam("noise_time_scale", "Noise time scale", c.Session.NoiseTimeScale),
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				floatParam("gravity", "Gravity", c.Physics.Gravity),
				floatParam("player_size", "Player size", c.Physics.PlayerSize),
			},
		},
		{
			Name: "Game",
			Params: []core.Parameter{
				durationParam("time_limit", "Time limit", c.Game.TimeLimit),
				durationParam("intermission", "Intermission", c.Game.Intermission),
				stringParam("levels", "Levels", strings.Join(c.Levels, ",")),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func durationParam(key, label string, value time.Duration) core.Parameter {
	return stringParam(key, label, value.String())
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
