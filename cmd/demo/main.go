//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"missile-demo/internal/app"
	_ "missile-demo/internal/entity"
	"missile-demo/internal/logger"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Resolve(flag.CommandLine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	game, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("create game", zap.Error(err))
	}
	defer game.Close()

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Simulation.TPS)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Info("starting", zap.Int("tps", cfg.Simulation.TPS), zap.String("entity", cfg.Start.Entity), zap.String("drag", cfg.Start.DragMode))
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("run game", zap.Error(err))
		game.Close()
		log.Sync()
		os.Exit(1)
	}
}
