// Package scene wires the viewport, the physics world and the controllable
// entity together. It routes gestures to entity commands or camera moves,
// dispatches menu choices and steps the simulation once per frame.
package scene

import (
	"missile-demo/internal/core"
	"missile-demo/internal/notify"
	"missile-demo/internal/physics"
	"missile-demo/internal/viewport"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// DebugDrawer is asked to redraw its debug markers after input.
type DebugDrawer interface {
	DrawDebug()
}

// Spawner builds the entity for a kind. core.NewEntity is the default.
type Spawner func(kind core.EntityKind, host core.BodyHost, pos cp.Vector) core.Entity

// Options configures a Scene. Viewport and Bus are required.
type Options struct {
	Viewport *viewport.Viewport
	Bus      *notify.Bus
	// World defaults to an empty physics world.
	World *physics.World
	Debug DebugDrawer
	Spawn Spawner
	// Kind and DragMode are the starting selections.
	Kind     core.EntityKind
	DragMode core.DragMode
	// Step defaults to physics.DefaultStep.
	Step   physics.StepConfig
	Logger *zap.Logger
}

type pinchOrigin struct {
	center cp.Vector
	scale  float64
}

// Scene is the demo's single scene. It is driven from one goroutine.
type Scene struct {
	vp     *viewport.Viewport
	bus    *notify.Bus
	world  *physics.World
	debug  DebugDrawer
	spawn  Spawner
	step   physics.StepConfig
	logger *zap.Logger

	entity   core.Entity
	kind     core.EntityKind
	dragMode core.DragMode
	path     []cp.Vector
	// lastPoint is the screen end of the last debug path segment.
	lastPoint core.ScreenPoint
	pinch     pinchOrigin

	attached bool
	ticks    uint64
}

type nopDrawer struct{}

func (nopDrawer) DrawDebug() {}

// New builds the scene and its first entity at the origin.
func New(opts Options) *Scene {
	if opts.Viewport == nil || opts.Bus == nil {
		panic("scene: Viewport and Bus are required")
	}
	s := &Scene{
		vp:       opts.Viewport,
		bus:      opts.Bus,
		world:    opts.World,
		debug:    opts.Debug,
		spawn:    opts.Spawn,
		step:     opts.Step,
		logger:   opts.Logger,
		kind:     opts.Kind,
		dragMode: opts.DragMode,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.world == nil {
		s.world = physics.NewWorld(s.logger)
	}
	if s.debug == nil {
		s.debug = nopDrawer{}
	}
	if s.spawn == nil {
		s.spawn = core.NewEntity
	}
	if s.step.Dt <= 0 {
		s.step = physics.DefaultStep
	}
	s.createEntity()
	return s
}

func (s *Scene) createEntity() {
	if s.entity != nil {
		s.entity.Destroy()
	}
	s.entity = s.spawn(s.kind, s.world, cp.Vector{})
	s.logger.Info("entity created", zap.Stringer("kind", s.kind))
}

// Attach subscribes the scene to menu choices and starts updates. It is the
// counterpart of the host making the scene current.
func (s *Scene) Attach() {
	s.bus.Attach(s, notify.EventMenuChoice)
	s.attached = true
}

// Detach unsubscribes the scene and stops updates.
func (s *Scene) Detach() {
	s.bus.Detach(s)
	s.attached = false
}

// Close detaches the scene and destroys its entity.
func (s *Scene) Close() {
	s.Detach()
	if s.entity != nil {
		s.entity.Destroy()
		s.entity = nil
	}
}

// Attached reports whether the scene receives updates.
func (s *Scene) Attached() bool { return s.attached }

// Notify handles bus notifications. Only menu choices are subscribed to;
// anything else reaching the scene is a wiring bug.
func (s *Scene) Notify(t notify.EventType, payload any) {
	switch t {
	case notify.EventMenuChoice:
		s.HandleMenuChoice(payload.(int))
	default:
		panic("scene: unexpected notification " + t.String())
	}
}

// Update runs one simulation tick: the entity's controller first, then a
// fixed physics step.
func (s *Scene) Update() {
	if !s.attached {
		return
	}
	s.entity.Update()
	s.world.Step(s.step)
	s.ticks++
}

// Ticks returns the number of simulation ticks run so far.
func (s *Scene) Ticks() uint64 { return s.ticks }

// Entity returns the live entity.
func (s *Scene) Entity() core.Entity { return s.entity }

// EntityKind returns the kind of the live entity.
func (s *Scene) EntityKind() core.EntityKind { return s.kind }

// DragMode returns how drags are interpreted.
func (s *Scene) DragMode() core.DragMode { return s.dragMode }

// Path returns a copy of the last drawn path in world coordinates.
func (s *Scene) Path() []cp.Vector { return append([]cp.Vector(nil), s.path...) }

// Viewport returns the scene camera.
func (s *Scene) Viewport() *viewport.Viewport { return s.vp }

// World returns the physics world.
func (s *Scene) World() *physics.World { return s.world }

func (s *Scene) resetDrawCycle() {
	s.bus.Notify(notify.EventResetDrawCycle, nil)
}

// feedback restarts the debug draw cycle and asks for fresh touch markers.
// Every gesture step calls it.
func (s *Scene) feedback() {
	s.resetDrawCycle()
	s.debug.DrawDebug()
}
