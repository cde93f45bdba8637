package replay

import (
	"context"
	"fmt"

	"missile-demo/internal/core"
	"missile-demo/internal/gesture"
	"missile-demo/internal/notify"
	"missile-demo/internal/scene"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// scriptPointer is the pointer id used for scripted single-finger input.
const scriptPointer = 0

// Report is the entity state after a tick.
type Report struct {
	Tick     uint64
	Kind     core.EntityKind
	Command  core.Command
	Position cp.Vector
	Angle    float64
}

func (r Report) String() string {
	return fmt.Sprintf("tick=%d kind=%s cmd=%s pos=(%.2f, %.2f) angle=%.2f",
		r.Tick, r.Kind, r.Command, r.Position.X, r.Position.Y, r.Angle)
}

// Runner plays scripts against a scene. Gestures go through a gesture
// detector so they arrive exactly as live input would.
type Runner struct {
	scene    *scene.Scene
	bus      *notify.Bus
	detector *gesture.Detector
	logger   *zap.Logger
	// pace, when set, blocks before every tick.
	pace func()
}

// NewRunner wires a detector to the scene. The scene must be attached for
// ticks to advance it.
func NewRunner(s *scene.Scene, bus *notify.Bus, cfg gesture.Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		scene:    s,
		bus:      bus,
		detector: gesture.NewDetector(cfg, s),
		logger:   logger,
	}
}

// Pace makes every tick wait on fs, for real-time playback.
func (r *Runner) Pace(fs *core.FixedStep) {
	r.pace = fs.Wait
}

// Run plays the script and calls report with the entity state every
// ReportEvery ticks and once at the end.
func (r *Runner) Run(ctx context.Context, s Script, report func(Report)) error {
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch {
		case st.Menu != nil:
			r.logger.Debug("menu", zap.Int("step", i), zap.Int("choice", *st.Menu))
			if *st.Menu < 0 || *st.Menu >= len(scene.MenuLabels) {
				return fmt.Errorf("step %d: menu choice %d out of range", i, *st.Menu)
			}
			r.bus.Notify(notify.EventMenuChoice, *st.Menu)
		case st.Drag != nil:
			r.logger.Debug("drag", zap.Int("step", i), zap.Int("points", len(st.Drag.Points)))
			if err := r.drag(ctx, *st.Drag, s.ReportEvery, report); err != nil {
				return err
			}
		case st.Pinch != nil:
			r.logger.Debug("pinch", zap.Int("step", i))
			r.pinch(*st.Pinch)
		default:
			for n := 0; n < st.Ticks; n++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				r.tick(s.ReportEvery, report)
			}
		}
	}
	report(r.state())
	return nil
}

func (r *Runner) drag(ctx context.Context, d DragStep, every int, report func(Report)) error {
	for _, p := range d.Points {
		r.detector.Update([]gesture.Pointer{{ID: scriptPointer, Pos: p.screen()}})
	}
	for n := 0; n < d.Hold; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.tick(every, report)
	}
	r.detector.Update(nil)
	return nil
}

func (r *Runner) pinch(p PinchStep) {
	frames := p.Frames
	if frames <= 0 {
		frames = 1
	}
	for f := 0; f <= frames; f++ {
		t := float64(f) / float64(frames)
		r.detector.Update([]gesture.Pointer{
			{ID: scriptPointer, Pos: lerp(p.From[0], p.To[0], t)},
			{ID: scriptPointer + 1, Pos: lerp(p.From[1], p.To[1], t)},
		})
	}
	r.detector.Update(nil)
}

func (r *Runner) tick(every int, report func(Report)) {
	if r.pace != nil {
		r.pace()
	}
	r.scene.Update()
	if every > 0 && r.scene.Ticks()%uint64(every) == 0 {
		report(r.state())
	}
}

func (r *Runner) state() Report {
	e := r.scene.Entity()
	return Report{
		Tick:     r.scene.Ticks(),
		Kind:     e.Kind(),
		Command:  e.Command(),
		Position: e.Position(),
		Angle:    e.Angle(),
	}
}

func lerp(a, b Point, t float64) core.ScreenPoint {
	return core.ScreenPoint{X: a[0] + (b[0]-a[0])*t, Y: a[1] + (b[1]-a[1])*t}
}
