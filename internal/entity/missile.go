package entity

import (
	"math"

	"missile-demo/internal/core"

	"github.com/jakecoffman/cp"
)

const (
	missileLength = 3.0
	missileWidth  = 0.8
	missileMass   = 2.0
)

// thrustCutoff is the heading error beyond which the missile stops pushing
// and turns on the spot.
const thrustCutoff = math.Pi / 3

// DefaultMissileTuning is a fast, thrust-along-the-nose controller.
var DefaultMissileTuning = Tuning{
	MaxSpeed:        25,
	MaxAccel:        30,
	SpeedGain:       4,
	MaxAngularAccel: 20,
	TurnGain:        12,
	TurnDamping:     7,
	BrakeGain:       2,
	ArriveRadius:    5,
	CornerRate:      2,
	WaypointRadius:  3,
	SettleSpeed:     1,
}

// Missile can only push along its nose. It turns with torque and fins kill
// its sideways drift.
type Missile struct {
	base
}

// NewMissile builds a missile at pos pointing along +x.
func NewMissile(host core.BodyHost, pos cp.Vector) *Missile {
	body := cp.NewBody(missileMass, cp.MomentForBox(missileMass, missileLength, missileWidth))
	body.SetPosition(pos)
	shape := cp.NewBox(body, missileLength, missileWidth, 0)
	outline := []cp.Vector{
		{X: missileLength / 2, Y: 0},
		{X: missileLength * 0.3, Y: missileWidth / 2},
		{X: -missileLength / 2, Y: missileWidth / 2},
		{X: -missileLength / 2, Y: -missileWidth / 2},
		{X: missileLength * 0.3, Y: -missileWidth / 2},
	}
	handle := host.AddBody("missile", body, outline, shape)
	return &Missile{base: base{
		kind:   core.EntityMissile,
		host:   host,
		handle: handle,
		body:   body,
		tuning: DefaultMissileTuning,
	}}
}

// Update applies this tick's thrust and torque.
func (m *Missile) Update() {
	switch m.cmd {
	case core.CmdIdle:
		m.brake()
		m.holdHeading()
	case core.CmdTurnTowards:
		m.brake()
		m.turnTowards(m.target)
	case core.CmdSeek:
		m.fly(m.target, true)
	case core.CmdFollowPath:
		target, final, ok := m.pathTarget()
		if !ok {
			m.brake()
			m.holdHeading()
			return
		}
		m.fly(target, final)
	}
}

// fly turns toward target and thrusts in proportion to how well the nose is
// aligned with it. Near the target speed is capped at what the turn rate can
// follow.
func (m *Missile) fly(target cp.Vector, arrive bool) {
	t := m.tuning
	dist := m.body.Position().Distance(target)
	err := m.turnTowards(target)

	heading := cp.ForAngle(m.body.Angle())
	vel := m.body.Velocity()
	forward := vel.Dot(heading)
	lateral := vel.Sub(heading.Mult(forward))

	speed := t.MaxSpeed
	if arrive {
		speed = m.desiredSpeed(dist)
	}
	if t.CornerRate > 0 {
		speed = math.Min(speed, t.CornerRate*dist)
	}
	if math.Abs(err) > thrustCutoff {
		speed = 0
	} else {
		speed *= math.Cos(err)
	}

	thrust := clamp((speed-forward)*t.SpeedGain, -t.MaxAccel, t.MaxAccel)
	accel := heading.Mult(thrust).Sub(lateral.Mult(t.SpeedGain))
	m.body.SetForce(accel.Mult(m.body.Mass()))
}

// Parameters reports the missile's telemetry.
func (m *Missile) Parameters() core.ParameterSnapshot { return parameters(&m.base) }

func init() {
	core.Register(core.EntityMissile, func(host core.BodyHost, pos cp.Vector) core.Entity {
		return NewMissile(host, pos)
	})
}
