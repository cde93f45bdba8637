package app

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func parse(t *testing.T, args ...string) (*Flags, *flag.FlagSet) {
	t.Helper()
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	f := NewFlags()
	f.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return f, fs
}

func TestResolveDefaults(t *testing.T) {
	f, fs := parse(t)
	cfg, err := f.Resolve(fs)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Simulation.TPS != 60 || cfg.Window.Width != 960 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	content := "window:\n  width: 640\n  height: 480\nsimulation:\n  tps: 30\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, fs := parse(t, "-config", path, "-width", "1024", "-log-level", "debug")
	cfg, err := f.Resolve(fs)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Window.Width != 1024 {
		t.Fatalf("flag did not override width: %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 480 || cfg.Simulation.TPS != 30 {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Logging.Level)
	}
}

func TestResolveRejectsInvalid(t *testing.T) {
	f, fs := parse(t, "-tps", "0")
	if _, err := f.Resolve(fs); err == nil {
		t.Fatalf("expected validation error")
	}
}
