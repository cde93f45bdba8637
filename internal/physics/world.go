// Package physics owns the rigid-body world the scene simulates.
package physics

import (
	"missile-demo/internal/core"

	"github.com/jakecoffman/cp"
	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"
)

// StepConfig fixes the timestep and solver iteration counts of a step.
type StepConfig struct {
	Dt                 float64
	VelocityIterations int
	PositionIterations int
}

// DefaultStep advances the world by one tick with 8 velocity and 1 position
// iteration.
var DefaultStep = StepConfig{
	Dt:                 core.TickSeconds,
	VelocityIterations: 8,
	PositionIterations: 1,
}

// Body is the registry component tying a cp body to its shapes and the
// local-space outline used by debug drawing.
type Body struct {
	Body    *cp.Body
	Shapes  []*cp.Shape
	Outline []cp.Vector
}

// Label names a body for logs and the debug overlay.
type Label struct {
	Name string
}

// World couples a Chipmunk space with an ECS registry of the bodies living
// in it. Gravity is zero: the demo is a top-down view.
type World struct {
	space    *cp.Space
	registry *ecs.World
	bodies   *ecs.Map2[Body, Label]
	filter   *ecs.Filter2[Body, Label]
	logger   *zap.Logger
	steps    uint64
}

// NewWorld creates an empty world. A nil logger disables logging.
func NewWorld(logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	// Bodies never sleep: the default sleep threshold is infinite, which keeps
	// the debug layer from blinking.
	space.Iterations = uint(DefaultStep.VelocityIterations)

	registry := ecs.NewWorld()
	return &World{
		space:    space,
		registry: registry,
		bodies:   ecs.NewMap2[Body, Label](registry),
		filter:   ecs.NewFilter2[Body, Label](registry),
		logger:   logger,
	}
}

// AddBody inserts body and its shapes into the space and registers them. The
// returned handle is used to remove the body again.
func (w *World) AddBody(label string, body *cp.Body, outline []cp.Vector, shapes ...*cp.Shape) ecs.Entity {
	w.space.AddBody(body)
	for _, s := range shapes {
		w.space.AddShape(s)
	}
	e := w.bodies.NewEntity(
		&Body{Body: body, Shapes: shapes, Outline: outline},
		&Label{Name: label},
	)
	w.logger.Debug("body added", zap.String("label", label), zap.Int("shapes", len(shapes)))
	return e
}

// RemoveBody takes the body behind handle out of the space and the registry.
// Removing an unknown or already removed handle is a no-op.
func (w *World) RemoveBody(handle ecs.Entity) {
	if !w.registry.Alive(handle) {
		return
	}
	b, l := w.bodies.Get(handle)
	for _, s := range b.Shapes {
		w.space.RemoveShape(s)
	}
	w.space.RemoveBody(b.Body)
	w.logger.Debug("body removed", zap.String("label", l.Name))
	w.registry.RemoveEntity(handle)
}

// Step advances the simulation. Chipmunk has a single iteration count, which
// takes the velocity iterations; it has no separate position pass.
func (w *World) Step(cfg StepConfig) {
	if cfg.VelocityIterations > 0 {
		w.space.Iterations = uint(cfg.VelocityIterations)
	}
	w.space.Step(cfg.Dt)
	w.steps++
}

// Steps returns the number of Step calls so far.
func (w *World) Steps() uint64 { return w.steps }

// EachBody calls fn for every registered body. fn must not add or remove
// bodies.
func (w *World) EachBody(fn func(label string, body *cp.Body, outline []cp.Vector)) {
	q := w.filter.Query()
	for q.Next() {
		b, l := q.Get()
		fn(l.Name, b.Body, b.Outline)
	}
}

// BodyCount returns the number of registered bodies.
func (w *World) BodyCount() int {
	n := 0
	w.EachBody(func(string, *cp.Body, []cp.Vector) { n++ })
	return n
}
