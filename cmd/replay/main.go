// Command replay runs the missile demo scene without a window, playing a
// YAML script of menu choices, gestures and ticks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"missile-demo/internal/app"
	"missile-demo/internal/core"
	_ "missile-demo/internal/entity"
	"missile-demo/internal/logger"
	"missile-demo/internal/notify"
	"missile-demo/internal/physics"
	"missile-demo/internal/replay"
	"missile-demo/internal/scene"
	"missile-demo/internal/viewport"

	"go.uber.org/zap"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	scriptPath := flag.String("script", "", "replay script (YAML)")
	realtime := flag.Bool("realtime", false, "pace ticks at the configured tps")
	flag.Parse()

	if err := run(flags, *scriptPath, *realtime); err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *app.Flags, scriptPath string, realtime bool) error {
	if scriptPath == "" {
		return fmt.Errorf("-script is required")
	}
	cfg, err := flags.Resolve(flag.CommandLine)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	script, err := replay.LoadScript(scriptPath)
	if err != nil {
		return err
	}
	kind, err := cfg.Start.Kind()
	if err != nil {
		return err
	}
	mode, err := cfg.Start.Mode()
	if err != nil {
		return err
	}

	bus := notify.NewBus(log.Named("bus"))
	s := scene.New(scene.Options{
		Viewport: viewport.New(cfg.Simulation.WorldSizeMeters, cfg.Window.Width, cfg.Window.Height),
		Bus:      bus,
		World:    physics.NewWorld(log.Named("physics")),
		Kind:     kind,
		DragMode: mode,
		Step:     cfg.Simulation.Step(),
		Logger:   log.Named("scene"),
	})
	s.Attach()
	defer s.Close()

	runner := replay.NewRunner(s, bus, cfg.Input.Gesture(), log.Named("replay"))
	if realtime {
		runner.Pace(core.NewFixedStep(cfg.Simulation.TPS))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("replaying", zap.String("script", scriptPath), zap.Int("steps", len(script.Steps)))
	return runner.Run(ctx, script, func(r replay.Report) {
		fmt.Println(r)
	})
}
