package core

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/mlange-42/ark/ecs"
)

// TicksPerSecond is the fixed simulation rate. One tick advances the physics
// world by TickSeconds regardless of how long the frame actually took.
const TicksPerSecond = 60

// TickSeconds is the fixed simulation timestep.
const TickSeconds = 1.0 / TicksPerSecond

// ScreenPoint is a position in screen pixels with y growing downwards.
type ScreenPoint struct {
	X, Y float64
}

// Sub returns p - q.
func (p ScreenPoint) Sub(q ScreenPoint) ScreenPoint { return ScreenPoint{X: p.X - q.X, Y: p.Y - q.Y} }

// Distance returns the euclidean distance between p and q in pixels.
func (p ScreenPoint) Distance(q ScreenPoint) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Midpoint returns the point halfway between p and q.
func (p ScreenPoint) Midpoint(q ScreenPoint) ScreenPoint {
	return ScreenPoint{X: (p.X + q.X) * 0.5, Y: (p.Y + q.Y) * 0.5}
}

// DragMode selects how single-pointer drags are turned into entity commands.
type DragMode int

const (
	// DragTrack turns the entity towards the drag point.
	DragTrack DragMode = iota
	// DragSeek sends the entity to the drag point.
	DragSeek
	// DragPath records a path and hands it over when the drag ends.
	DragPath
)

func (m DragMode) String() string {
	switch m {
	case DragTrack:
		return "track"
	case DragSeek:
		return "seek"
	case DragPath:
		return "path"
	}
	return fmt.Sprintf("DragMode(%d)", int(m))
}

// ParseDragMode maps a config string onto a DragMode.
func ParseDragMode(s string) (DragMode, error) {
	for m := DragTrack; m <= DragPath; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return DragTrack, fmt.Errorf("unknown drag mode %q", s)
}

// EntityKind selects the concrete Entity the scene instantiates.
type EntityKind int

const (
	EntityMissile EntityKind = iota
	EntityMovingEntity

	entityKindCount
)

// Next returns the following kind, wrapping to the first after the last.
func (k EntityKind) Next() EntityKind {
	return (k + 1) % entityKindCount
}

func (k EntityKind) String() string {
	switch k {
	case EntityMissile:
		return "missile"
	case EntityMovingEntity:
		return "moving-entity"
	}
	return fmt.Sprintf("EntityKind(%d)", int(k))
}

// ParseEntityKind maps a config string onto an EntityKind.
func ParseEntityKind(s string) (EntityKind, error) {
	for k := EntityKind(0); k < entityKindCount; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return EntityMissile, fmt.Errorf("unknown entity kind %q", s)
}

// Command is the behaviour an Entity is currently executing.
type Command int

const (
	CmdIdle Command = iota
	CmdTurnTowards
	CmdSeek
	CmdFollowPath
)

func (c Command) String() string {
	switch c {
	case CmdIdle:
		return "idle"
	case CmdTurnTowards:
		return "turn-towards"
	case CmdSeek:
		return "seek"
	case CmdFollowPath:
		return "follow-path"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Entity is the single user-controllable body of the scene.
type Entity interface {
	Kind() EntityKind
	// Update runs the entity's controller for one tick. It applies forces
	// to the body; the caller steps the physics world afterwards.
	Update()
	CommandIdle()
	CommandTurnTowards(target cp.Vector)
	CommandSeek(target cp.Vector)
	CommandFollowPath(path []cp.Vector)
	SetTargetPosition(target cp.Vector)
	Command() Command
	Position() cp.Vector
	Angle() float64
	// Destroy removes the entity's body from the physics world.
	Destroy()
}

// BodyHost owns the rigid bodies entities are built from.
type BodyHost interface {
	AddBody(label string, body *cp.Body, outline []cp.Vector, shapes ...*cp.Shape) ecs.Entity
	RemoveBody(handle ecs.Entity)
}

// Factory constructs an Entity at pos inside host.
type Factory func(host BodyHost, pos cp.Vector) Entity

var entities = map[EntityKind]Factory{}

// Register adds an entity factory for the provided kind.
func Register(kind EntityKind, f Factory) {
	if f == nil {
		return
	}
	entities[kind] = f
}

// Entities exposes the registry of entity factories.
func Entities() map[EntityKind]Factory {
	return entities
}

// NewEntity builds an entity of the given kind. Asking for a kind nobody
// registered is a programming error.
func NewEntity(kind EntityKind, host BodyHost, pos cp.Vector) Entity {
	f, ok := entities[kind]
	if !ok {
		panic(fmt.Sprintf("core: no factory registered for %v", kind))
	}
	return f(host, pos)
}
