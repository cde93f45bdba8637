package ui

import (
	"math"

	"missile-demo/internal/notify"
)

// DebugLines keeps the debug path segments and the physics debug toggle in
// sync with scene notifications. A draw cycle lasts FadeTicks: lines fade out
// over it and are dropped at its end. Every reset restarts the cycle. A
// segment that does not continue the previous one starts a new path and
// replaces the stored lines.
type DebugLines struct {
	FadeTicks int

	lines      []notify.LinePixels
	showBodies bool
	age        int
}

// DebugEvents are the notifications DebugLines subscribes to.
var DebugEvents = []notify.EventType{
	notify.EventResetDrawCycle,
	notify.EventDebugLineAdd,
	notify.EventDebugToggleVisibility,
}

// NewDebugLines constructs an empty line store whose draw cycle lasts
// fadeTicks.
func NewDebugLines(fadeTicks int) *DebugLines {
	return &DebugLines{FadeTicks: fadeTicks}
}

// Notify applies one of the DebugEvents.
func (d *DebugLines) Notify(t notify.EventType, payload any) {
	switch t {
	case notify.EventResetDrawCycle:
		d.age = 0
	case notify.EventDebugLineAdd:
		line := payload.(notify.LinePixels)
		if n := len(d.lines); n > 0 && d.lines[n-1].End != line.Start {
			d.lines = d.lines[:0]
		}
		d.lines = append(d.lines, line)
		d.age = 0
	case notify.EventDebugToggleVisibility:
		d.showBodies = !d.showBodies
	}
}

// Tick ages the current draw cycle by one frame.
func (d *DebugLines) Tick() {
	if d.FadeTicks <= 0 {
		return
	}
	d.age++
	if d.age >= d.FadeTicks {
		d.lines = d.lines[:0]
	}
}

// Lines returns the stored segments in the order they were added.
func (d *DebugLines) Lines() []notify.LinePixels { return d.lines }

// ShowBodies reports whether physics bodies are drawn.
func (d *DebugLines) ShowBodies() bool { return d.showBodies }

// Alpha is the line opacity for the current frame.
func (d *DebugLines) Alpha() float64 {
	if d.FadeTicks <= 0 || d.age <= 0 {
		return 1
	}
	return math.Max(0, 1-float64(d.age)/float64(d.FadeTicks))
}
