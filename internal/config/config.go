// Package config holds the demo settings. Values come from Default, are
// overlaid by an optional YAML file and finally by command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"

	"missile-demo/internal/core"
	"missile-demo/internal/gesture"
	"missile-demo/internal/physics"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the demo configuration, loaded from YAML on top of Default.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Simulation SimulationConfig `yaml:"simulation"`
	Input      InputConfig      `yaml:"input"`
	Logging    LoggingConfig    `yaml:"logging"`
	Start      StartConfig      `yaml:"start"`
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// SimulationConfig fixes the tick rate, world extent and solver iterations.
type SimulationConfig struct {
	TPS                int     `yaml:"tps"`
	WorldSizeMeters    float64 `yaml:"world_size_meters"`
	VelocityIterations int     `yaml:"velocity_iterations"`
	PositionIterations int     `yaml:"position_iterations"`
}

// InputConfig tunes gesture recognition.
type InputConfig struct {
	DragDeadZone float64 `yaml:"drag_dead_zone"`
	LongTapTicks int     `yaml:"long_tap_ticks"`
	DebugTicks   int     `yaml:"debug_ticks"`
}

// LoggingConfig selects the zap logger setup.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"` // console or json
	Development bool   `yaml:"development"`
}

// StartConfig is the state the scene opens in.
type StartConfig struct {
	Entity   string `yaml:"entity"`
	DragMode string `yaml:"drag_mode"`
}

// Default returns the settings the demo ships with.
func Default() Config {
	return Config{
		Window: WindowConfig{Width: 960, Height: 640, Title: "Missile Demo"},
		Simulation: SimulationConfig{
			TPS:                core.TicksPerSecond,
			WorldSizeMeters:    100,
			VelocityIterations: physics.DefaultStep.VelocityIterations,
			PositionIterations: physics.DefaultStep.PositionIterations,
		},
		Input: InputConfig{
			DragDeadZone: gesture.DefaultConfig().DragDeadZone,
			LongTapTicks: gesture.DefaultConfig().LongTapTicks,
			DebugTicks:   gesture.DefaultConfig().DebugTicks,
		},
		Logging: LoggingConfig{Level: "info", Format: "console", Development: true},
		Start:   StartConfig{Entity: core.EntityMissile.String(), DragMode: core.DragSeek.String()},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Simulation.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps %d must be positive", c.Simulation.TPS))
	}
	if c.Simulation.WorldSizeMeters <= 0 {
		errs = append(errs, fmt.Errorf("world size %v must be positive", c.Simulation.WorldSizeMeters))
	}
	if c.Simulation.VelocityIterations <= 0 {
		errs = append(errs, fmt.Errorf("velocity iterations %d must be positive", c.Simulation.VelocityIterations))
	}
	if c.Input.DragDeadZone < 0 {
		errs = append(errs, fmt.Errorf("drag dead zone %v must not be negative", c.Input.DragDeadZone))
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging level: %w", err))
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		errs = append(errs, fmt.Errorf("logging format %q must be console or json", c.Logging.Format))
	}
	if _, err := c.Start.Kind(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Start.Mode(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Step is the physics step for one simulation tick. The step length stays
// one sixtieth of a second whatever the configured tps; tps only paces it.
func (c SimulationConfig) Step() physics.StepConfig {
	return physics.StepConfig{
		Dt:                 core.TickSeconds,
		VelocityIterations: c.VelocityIterations,
		PositionIterations: c.PositionIterations,
	}
}

// Gesture converts the input section into detector thresholds.
func (c InputConfig) Gesture() gesture.Config {
	return gesture.Config{DragDeadZone: c.DragDeadZone, LongTapTicks: c.LongTapTicks, DebugTicks: c.DebugTicks}
}

// Kind parses the starting entity kind.
func (s StartConfig) Kind() (core.EntityKind, error) { return core.ParseEntityKind(s.Entity) }

// Mode parses the starting drag mode.
func (s StartConfig) Mode() (core.DragMode, error) { return core.ParseDragMode(s.DragMode) }
