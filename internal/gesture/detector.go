// Package gesture turns per-frame pointer samples into tap, long tap, drag
// and pinch callbacks.
package gesture

import "missile-demo/internal/core"

// Pointer is one pressed mouse button or touch at its current position.
type Pointer struct {
	ID  int
	Pos core.ScreenPoint
}

// Pinch describes a two-pointer gesture: the pointer positions when the
// pinch began and their current positions.
type Pinch struct {
	Origin0, Origin1 core.ScreenPoint
	Point0, Point1   core.ScreenPoint
}

// Handler receives recognised gestures. Drag callbacks get two points: for
// DragBegin the press point and the point that crossed the dead zone, for
// DragContinue the previous and the current point, for DragEnd the press
// point and the last point.
type Handler interface {
	Tap(p core.ScreenPoint)
	LongTap(p core.ScreenPoint)
	PinchBegin(ev Pinch)
	PinchContinue(ev Pinch)
	PinchEnd(ev Pinch)
	DragBegin(p0, p1 core.ScreenPoint)
	DragContinue(p0, p1 core.ScreenPoint)
	DragEnd(p0, p1 core.ScreenPoint)
}

// Config tunes gesture recognition.
type Config struct {
	// DragDeadZone is how far in pixels a press must move to become a drag.
	DragDeadZone float64
	// LongTapTicks is how many updates a still press must last to be a long tap.
	LongTapTicks int
	// DebugTicks is how long DrawDebug keeps the pointer markers visible.
	DebugTicks int
}

// DefaultConfig returns the recognition thresholds used by the demo.
func DefaultConfig() Config {
	return Config{DragDeadZone: 4, LongTapTicks: 30, DebugTicks: 30}
}

type state int

const (
	stateIdle state = iota
	statePressed
	stateDragging
	statePinching
	// stateWaitRelease swallows leftover pointers after a pinch.
	stateWaitRelease
)

// Detector is a pointer state machine. Feed it with Update once per frame.
type Detector struct {
	cfg     Config
	handler Handler
	state   state

	primary int
	start   core.ScreenPoint
	last    core.ScreenPoint
	held    int

	pinchIDs [2]int
	origin   [2]core.ScreenPoint
	current  [2]core.ScreenPoint

	debugTicks int
	points     []core.ScreenPoint
}

// NewDetector creates a detector reporting to h.
func NewDetector(cfg Config, h Handler) *Detector {
	if cfg.DragDeadZone < 0 {
		cfg.DragDeadZone = 0
	}
	if cfg.LongTapTicks <= 0 {
		cfg.LongTapTicks = DefaultConfig().LongTapTicks
	}
	return &Detector{cfg: cfg, handler: h}
}

// SetHandler replaces the gesture receiver.
func (d *Detector) SetHandler(h Handler) { d.handler = h }

// PinchPoints returns the pointer positions captured when the current pinch
// began.
func (d *Detector) PinchPoints() (core.ScreenPoint, core.ScreenPoint) {
	return d.origin[0], d.origin[1]
}

// Active reports whether a gesture is in progress.
func (d *Detector) Active() bool { return d.state != stateIdle }

// DrawDebug keeps the pointer markers visible for the configured time.
func (d *Detector) DrawDebug() { d.debugTicks = d.cfg.DebugTicks }

// DebugPoints returns the pointer positions to mark, or nil when the debug
// markers are not showing.
func (d *Detector) DebugPoints() []core.ScreenPoint {
	if d.debugTicks <= 0 {
		return nil
	}
	return d.points
}

// Update advances the state machine with the pointers pressed this frame.
func (d *Detector) Update(pointers []Pointer) {
	d.points = d.points[:0]
	for _, p := range pointers {
		d.points = append(d.points, p.Pos)
	}
	if d.debugTicks > 0 {
		d.debugTicks--
	}

	switch d.state {
	case stateIdle:
		d.fromIdle(pointers)
	case statePressed:
		d.fromPressed(pointers)
	case stateDragging:
		d.fromDragging(pointers)
	case statePinching:
		d.fromPinching(pointers)
	case stateWaitRelease:
		if len(pointers) == 0 {
			d.state = stateIdle
		}
	}
}

func (d *Detector) fromIdle(pointers []Pointer) {
	switch {
	case len(pointers) >= 2:
		d.beginPinch(pointers)
	case len(pointers) == 1:
		d.press(pointers[0])
	}
}

func (d *Detector) fromPressed(pointers []Pointer) {
	if len(pointers) >= 2 {
		d.beginPinch(pointers)
		return
	}
	p, ok := find(pointers, d.primary)
	if !ok {
		if d.held >= d.cfg.LongTapTicks {
			d.handler.LongTap(d.last)
		} else {
			d.handler.Tap(d.last)
		}
		d.state = stateIdle
		d.fromIdle(pointers)
		return
	}
	d.held++
	d.last = p.Pos
	if d.start.Distance(p.Pos) > d.cfg.DragDeadZone {
		d.state = stateDragging
		d.handler.DragBegin(d.start, p.Pos)
	}
}

func (d *Detector) fromDragging(pointers []Pointer) {
	if len(pointers) >= 2 {
		d.handler.DragEnd(d.start, d.last)
		d.beginPinch(pointers)
		return
	}
	p, ok := find(pointers, d.primary)
	if !ok {
		d.handler.DragEnd(d.start, d.last)
		d.state = stateIdle
		d.fromIdle(pointers)
		return
	}
	if p.Pos != d.last {
		prev := d.last
		d.last = p.Pos
		d.handler.DragContinue(prev, p.Pos)
	}
}

func (d *Detector) fromPinching(pointers []Pointer) {
	p0, ok0 := find(pointers, d.pinchIDs[0])
	p1, ok1 := find(pointers, d.pinchIDs[1])
	if !ok0 || !ok1 {
		d.handler.PinchEnd(d.pinch())
		d.state = stateWaitRelease
		if len(pointers) == 0 {
			d.state = stateIdle
		}
		return
	}
	if p0.Pos == d.current[0] && p1.Pos == d.current[1] {
		return
	}
	d.current = [2]core.ScreenPoint{p0.Pos, p1.Pos}
	d.handler.PinchContinue(d.pinch())
}

func (d *Detector) press(p Pointer) {
	d.state = statePressed
	d.primary = p.ID
	d.start = p.Pos
	d.last = p.Pos
	d.held = 0
}

func (d *Detector) beginPinch(pointers []Pointer) {
	d.state = statePinching
	d.pinchIDs = [2]int{pointers[0].ID, pointers[1].ID}
	d.origin = [2]core.ScreenPoint{pointers[0].Pos, pointers[1].Pos}
	d.current = d.origin
	d.handler.PinchBegin(d.pinch())
}

func (d *Detector) pinch() Pinch {
	return Pinch{
		Origin0: d.origin[0],
		Origin1: d.origin[1],
		Point0:  d.current[0],
		Point1:  d.current[1],
	}
}

func find(pointers []Pointer, id int) (Pointer, bool) {
	for _, p := range pointers {
		if p.ID == id {
			return p, true
		}
	}
	return Pointer{}, false
}
