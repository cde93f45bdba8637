package entity

import (
	"math"

	"missile-demo/internal/core"

	"github.com/jakecoffman/cp"
)

const (
	movingRadius   = 1.2
	movingMass     = 1.0
	movingSegments = 16
	// faceSpeed is the speed above which the body turns to face its velocity.
	faceSpeed = 0.5
)

// DefaultMovingTuning is a slower body that can push in any direction.
var DefaultMovingTuning = Tuning{
	MaxSpeed:        15,
	MaxAccel:        20,
	SpeedGain:       4,
	MaxAngularAccel: 15,
	TurnGain:        10,
	TurnDamping:     6,
	BrakeGain:       3,
	ArriveRadius:    6,
	WaypointRadius:  3,
	SettleSpeed:     1,
}

// MovingEntity steers with seek/arrive forces and faces where it is going.
type MovingEntity struct {
	base
}

// NewMovingEntity builds a round body at pos.
func NewMovingEntity(host core.BodyHost, pos cp.Vector) *MovingEntity {
	body := cp.NewBody(movingMass, cp.MomentForCircle(movingMass, 0, movingRadius, cp.Vector{}))
	body.SetPosition(pos)
	shape := cp.NewCircle(body, movingRadius, cp.Vector{})
	outline := make([]cp.Vector, 0, movingSegments+1)
	for i := 0; i < movingSegments; i++ {
		a := 2 * math.Pi * float64(i) / movingSegments
		outline = append(outline, cp.ForAngle(a).Mult(movingRadius))
	}
	handle := host.AddBody("moving-entity", body, outline, shape)
	return &MovingEntity{base: base{
		kind:   core.EntityMovingEntity,
		host:   host,
		handle: handle,
		body:   body,
		tuning: DefaultMovingTuning,
	}}
}

// Update applies this tick's steering force and torque.
func (e *MovingEntity) Update() {
	switch e.cmd {
	case core.CmdIdle:
		e.brake()
		e.holdHeading()
	case core.CmdTurnTowards:
		e.brake()
		e.turnTowards(e.target)
	case core.CmdSeek:
		e.steer(e.target, true)
	case core.CmdFollowPath:
		target, final, ok := e.pathTarget()
		if !ok {
			e.brake()
			e.holdHeading()
			return
		}
		e.steer(target, final)
	}
}

func (e *MovingEntity) steer(target cp.Vector, arrive bool) {
	t := e.tuning
	to := target.Sub(e.body.Position())
	dist := to.Length()

	var desired cp.Vector
	if dist > 1e-6 {
		speed := t.MaxSpeed
		if arrive {
			speed = e.desiredSpeed(dist)
		}
		desired = to.Mult(speed / dist)
	}
	vel := e.body.Velocity()
	accel := desired.Sub(vel).Mult(t.SpeedGain).Clamp(t.MaxAccel)
	e.body.SetForce(accel.Mult(e.body.Mass()))

	if vel.Length() > faceSpeed {
		e.turnToAngle(vel.ToAngle())
	} else {
		e.holdHeading()
	}
}

// Parameters reports the entity's telemetry.
func (e *MovingEntity) Parameters() core.ParameterSnapshot { return parameters(&e.base) }

func init() {
	core.Register(core.EntityMovingEntity, func(host core.BodyHost, pos cp.Vector) core.Entity {
		return NewMovingEntity(host, pos)
	})
}
