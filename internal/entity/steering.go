package entity

import (
	"math"

	"missile-demo/internal/core"

	"github.com/jakecoffman/cp"
	"github.com/mlange-42/ark/ecs"
)

// Tuning holds the controller gains of an entity. Accelerations are per unit
// mass so the same numbers hold regardless of body size.
type Tuning struct {
	MaxSpeed        float64 // m/s
	MaxAccel        float64 // m/s²
	SpeedGain       float64 // 1/s, how hard velocity errors are corrected
	MaxAngularAccel float64 // rad/s²
	TurnGain        float64 // proportional term of the heading controller
	TurnDamping     float64 // derivative term of the heading controller
	BrakeGain       float64 // 1/s, used while idle or turning in place
	ArriveRadius    float64 // m, slow down inside this distance
	CornerRate      float64 // 1/s, speed is capped at this times the target distance; 0 disables
	WaypointRadius  float64 // m, a waypoint counts as reached inside this distance
	SettleSpeed     float64 // m/s, below this the end of a path counts as reached
}

// base carries the command state shared by every entity kind.
type base struct {
	kind   core.EntityKind
	host   core.BodyHost
	handle ecs.Entity
	body   *cp.Body
	tuning Tuning

	cmd      core.Command
	target   cp.Vector
	path     []cp.Vector
	waypoint int
}

func (b *base) Kind() core.EntityKind { return b.kind }
func (b *base) Command() core.Command { return b.cmd }
func (b *base) Position() cp.Vector { return b.body.Position() }
func (b *base) Angle() float64 { return b.body.Angle() }
func (b *base) Target() cp.Vector { return b.target }
func (b *base) Path() []cp.Vector { return b.path }
func (b *base) Waypoint() int { return b.waypoint }
func (b *base) Destroy() { b.host.RemoveBody(b.handle) }
func (b *base) SetTargetPosition(p cp.Vector) { b.target = p }

// SetTuning replaces the controller gains. It takes effect on the next Update.
func (b *base) SetTuning(t Tuning) { b.tuning = t }

func (b *base) CommandIdle() {
	b.cmd = core.CmdIdle
}

func (b *base) CommandTurnTowards(p cp.Vector) {
	b.cmd = core.CmdTurnTowards
	b.target = p
}

func (b *base) CommandSeek(p cp.Vector) {
	b.cmd = core.CmdSeek
	b.target = p
}

// CommandFollowPath copies path, so later edits by the caller do not leak
// into the entity. An empty path idles the entity.
func (b *base) CommandFollowPath(path []cp.Vector) {
	if len(path) == 0 {
		b.path = nil
		b.cmd = core.CmdIdle
		return
	}
	b.path = append(b.path[:0:0], path...)
	b.waypoint = 0
	b.target = b.path[0]
	b.cmd = core.CmdFollowPath
}

// pathTarget advances through reached waypoints and returns the current one.
// final reports whether it is the last waypoint of the path. When the last
// waypoint is reached and the body has settled the entity goes idle and ok
// is false.
func (b *base) pathTarget() (target cp.Vector, final, ok bool) {
	pos := b.body.Position()
	for b.waypoint < len(b.path)-1 && pos.Distance(b.path[b.waypoint]) <= b.tuning.WaypointRadius {
		b.waypoint++
	}
	target = b.path[b.waypoint]
	final = b.waypoint == len(b.path)-1
	if final && pos.Distance(target) <= b.tuning.WaypointRadius && b.body.Velocity().Length() <= b.tuning.SettleSpeed {
		b.cmd = core.CmdIdle
		return target, final, false
	}
	b.target = target
	return target, final, true
}

// turnTowards sets a torque steering the body's heading at point with a PD
// controller.
func (b *base) turnTowards(point cp.Vector) float64 {
	to := point.Sub(b.body.Position())
	if to.LengthSq() < 1e-12 {
		b.holdHeading()
		return 0
	}
	return b.turnToAngle(to.ToAngle())
}

// turnToAngle steers the heading to angle and returns the remaining error.
func (b *base) turnToAngle(angle float64) float64 {
	t := b.tuning
	err := normalizeAngle(angle - b.body.Angle())
	alpha := t.TurnGain*err - t.TurnDamping*b.body.AngularVelocity()
	alpha = clamp(alpha, -t.MaxAngularAccel, t.MaxAngularAccel)
	b.body.SetTorque(alpha * b.body.Moment())
	return err
}

func (b *base) holdHeading() {
	t := b.tuning
	alpha := clamp(-t.TurnDamping*b.body.AngularVelocity(), -t.MaxAngularAccel, t.MaxAngularAccel)
	b.body.SetTorque(alpha * b.body.Moment())
}

func (b *base) brake() {
	accel := b.body.Velocity().Mult(-b.tuning.BrakeGain).Clamp(b.tuning.MaxAccel)
	b.body.SetForce(accel.Mult(b.body.Mass()))
}

// desiredSpeed is the arrival profile: full speed far away, proportional to
// the distance inside the arrive radius.
func (b *base) desiredSpeed(dist float64) float64 {
	t := b.tuning
	if t.ArriveRadius > 0 && dist < t.ArriveRadius {
		return t.MaxSpeed * dist / t.ArriveRadius
	}
	return t.MaxSpeed
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func parameters(b *base) core.ParameterSnapshot {
	pos := b.body.Position()
	groups := []core.ParameterGroup{
		{
			Name: "Entity",
			Params: []core.Parameter{
				core.StringParam("kind", "Kind", b.kind.String()),
				core.StringParam("command", "Command", b.cmd.String()),
			},
		},
		{
			Name: "Kinematics",
			Params: []core.Parameter{
				core.FloatParam("x", "X (m)", pos.X),
				core.FloatParam("y", "Y (m)", pos.Y),
				core.FloatParam("speed", "Speed (m/s)", b.body.Velocity().Length()),
				core.FloatParam("heading", "Heading (deg)", normalizeAngle(b.body.Angle())*180/math.Pi),
			},
		},
	}
	if b.cmd == core.CmdFollowPath {
		groups = append(groups, core.ParameterGroup{
			Name: "Path",
			Params: []core.Parameter{
				core.IntParam("waypoint", "Waypoint", b.waypoint+1),
				core.IntParam("waypoints", "Waypoints", len(b.path)),
			},
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}
