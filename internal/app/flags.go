package app

import (
	"flag"

	"missile-demo/internal/config"
)

// Flags represents the command-line parameters for the application. Flags
// that were set on the command line override the config file.
type Flags struct {
	ConfigPath string
	TPS        int
	Width      int
	Height     int
	LogLevel   string
}

// NewFlags returns Flags populated with the built-in defaults.
func NewFlags() *Flags {
	d := config.Default()
	return &Flags{
		TPS:      d.Simulation.TPS,
		Width:    d.Window.Width,
		Height:   d.Window.Height,
		LogLevel: d.Logging.Level,
	}
}

// Bind attaches the flags to the provided FlagSet.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", f.ConfigPath, "path to a YAML config file")
	fs.IntVar(&f.TPS, "tps", f.TPS, "ticks per second")
	fs.IntVar(&f.Width, "width", f.Width, "window width in pixels")
	fs.IntVar(&f.Height, "height", f.Height, "window height in pixels")
	fs.StringVar(&f.LogLevel, "log-level", f.LogLevel, "log level (debug, info, warn, error)")
}

// Resolve loads the config file, if any, applies the flags set on fs and
// validates the result. fs must have been parsed.
func (f *Flags) Resolve(fs *flag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if f.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(f.ConfigPath); err != nil {
			return cfg, err
		}
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "tps":
			cfg.Simulation.TPS = f.TPS
		case "width":
			cfg.Window.Width = f.Width
		case "height":
			cfg.Window.Height = f.Height
		case "log-level":
			cfg.Logging.Level = f.LogLevel
		}
	})
	return cfg, cfg.Validate()
}
