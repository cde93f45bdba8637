//go:build ebiten

package app

import (
	"fmt"

	"missile-demo/internal/config"
	"missile-demo/internal/gesture"
	"missile-demo/internal/notify"
	"missile-demo/internal/physics"
	"missile-demo/internal/render"
	"missile-demo/internal/scene"
	"missile-demo/internal/ui"
	"missile-demo/internal/viewport"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// Game adapts the scene to the ebiten.Game interface.
type Game struct {
	logger *zap.Logger
	vp     *viewport.Viewport
	bus    *notify.Bus
	scene  *scene.Scene

	sampler  gesture.Sampler
	detector *gesture.Detector
	menu     *ui.Menu
	debug    *ui.DebugLines

	background *render.Background
	overlay    *ui.Overlay
	hud        *ui.HUD

	paused   bool
	tickOnce bool
}

// New builds the scene and its input and drawing layers.
func New(cfg config.Config, logger *zap.Logger) (*Game, error) {
	kind, err := cfg.Start.Kind()
	if err != nil {
		return nil, fmt.Errorf("start entity: %w", err)
	}
	mode, err := cfg.Start.Mode()
	if err != nil {
		return nil, fmt.Errorf("start drag mode: %w", err)
	}

	g := &Game{logger: logger}
	g.vp = viewport.New(cfg.Simulation.WorldSizeMeters, cfg.Window.Width, cfg.Window.Height)
	g.bus = notify.NewBus(logger.Named("bus"))
	world := physics.NewWorld(logger.Named("physics"))

	g.detector = gesture.NewDetector(cfg.Input.Gesture(), nil)
	g.scene = scene.New(scene.Options{
		Viewport: g.vp,
		Bus:      g.bus,
		World:    world,
		Debug:    g.detector,
		Kind:     kind,
		DragMode: mode,
		Step:     cfg.Simulation.Step(),
		Logger:   logger.Named("scene"),
	})
	g.detector.SetHandler(g.scene)

	g.debug = ui.NewDebugLines(2 * cfg.Simulation.TPS)
	g.bus.Attach(g.debug, ui.DebugEvents...)
	g.menu = ui.NewMenu(ui.MenuLayout{Labels: scene.MenuLabels, Width: cfg.Window.Width, Height: cfg.Window.Height}, g.bus)

	g.background = render.NewBackground(g.vp)
	g.overlay = ui.NewOverlay(g.debug, world, g.detector, g.vp)
	g.hud = ui.NewHUD(g.menu)

	g.scene.Attach()
	return g, nil
}

// Close tears the scene down.
func (g *Game) Close() {
	g.scene.Close()
	g.bus.Detach(g.debug)
}

// Update handles per-frame input and advances the simulation by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}

	pointers := g.menu.Filter(g.sampler.Sample(), g.detector.Active())
	g.detector.Update(pointers)

	if !g.paused || g.tickOnce {
		g.scene.Update()
		g.tickOnce = false
	}
	g.overlay.Update()
	g.hud.Update(ui.StatusLines(g.scene.DragMode(), g.scene.EntityKind(), g.vp.Scale(), g.scene.Entity()))
	return nil
}

// Draw renders the current scene state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.background.Draw(screen)
	g.overlay.Draw(screen)
	g.hud.Draw(screen)
}

// Layout follows the window size so the viewport always fills it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w, h := g.vp.ScreenSize(); w != outsideWidth || h != outsideHeight {
		g.vp.Resize(outsideWidth, outsideHeight)
		g.menu.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
