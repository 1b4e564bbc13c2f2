package app

import (
	"flag"
	"fmt"
	"strings"

	"living-terrain/internal/config"
)

// Flags represents the command-line parameters shared by the runners.
type Flags struct {
	ConfigPath string
	Levels     string
	Set        string
	LogLevel   string
	Scale      int
	TPS        int
}

// NewFlags returns Flags populated with defaults.
func NewFlags() *Flags {
	return &Flags{Scale: 5, TPS: 60}
}

// Bind attaches the flags to the provided FlagSet.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", f.ConfigPath, "YAML config file (default $"+config.EnvPath+")")
	fs.StringVar(&f.Levels, "levels", f.Levels, "comma-separated level PNGs, overriding the config")
	fs.StringVar(&f.Set, "set", f.Set, "comma-separated key=value config overrides")
	fs.StringVar(&f.LogLevel, "log", f.LogLevel, "log level: debug, info, warn, error")
	fs.IntVar(&f.Scale, "scale", f.Scale, "pixel scale multiplier")
	fs.IntVar(&f.TPS, "tps", f.TPS, "ticks per second")
}

// Config loads the configuration and applies the flag overrides on top.
func (f *Flags) Config() (config.Config, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return cfg, err
	}
	overrides, err := ParseOverrides(f.Set)
	if err != nil {
		return cfg, err
	}
	cfg.Apply(overrides)
	if f.Levels != "" {
		cfg.Levels = splitList(f.Levels)
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ParseOverrides parses "a=1,b=2" into a map.
func ParseOverrides(s string) (map[string]string, error) {
	out := map[string]string{}
	for _, item := range splitList(s) {
		key, value, ok := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("override %q: want key=value", item)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
