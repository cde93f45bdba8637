package ui

import (
	"testing"

	"missile-demo/internal/core"
	"missile-demo/internal/notify"
)

func TestDebugLinesFollowNotifications(t *testing.T) {
	bus := notify.NewBus(nil)
	d := NewDebugLines(10)
	bus.Attach(d, DebugEvents...)

	line := notify.LinePixels{Start: core.ScreenPoint{X: 1, Y: 2}, End: core.ScreenPoint{X: 3, Y: 4}}
	next := notify.LinePixels{Start: line.End, End: core.ScreenPoint{X: 5, Y: 6}}
	bus.Notify(notify.EventDebugLineAdd, line)
	bus.Notify(notify.EventDebugLineAdd, next)
	if len(d.Lines()) != 2 || d.Lines()[0] != line || d.Lines()[1] != next {
		t.Fatalf("unexpected lines %v", d.Lines())
	}
	bus.Notify(notify.EventResetDrawCycle, nil)
	if len(d.Lines()) != 2 {
		t.Fatalf("reset dropped lines, %d left", len(d.Lines()))
	}

	fresh := notify.LinePixels{Start: core.ScreenPoint{X: 100, Y: 100}, End: core.ScreenPoint{X: 110, Y: 100}}
	bus.Notify(notify.EventDebugLineAdd, fresh)
	if len(d.Lines()) != 1 || d.Lines()[0] != fresh {
		t.Fatalf("a new path should replace the old one, got %v", d.Lines())
	}

	if d.ShowBodies() {
		t.Fatalf("bodies shown by default")
	}
	bus.Notify(notify.EventDebugToggleVisibility, nil)
	if !d.ShowBodies() {
		t.Fatalf("toggle did not show bodies")
	}
	bus.Notify(notify.EventDebugToggleVisibility, nil)
	if d.ShowBodies() {
		t.Fatalf("second toggle did not hide bodies")
	}
}

func TestDebugLinesFade(t *testing.T) {
	d := NewDebugLines(10)
	d.Notify(notify.EventDebugLineAdd, notify.LinePixels{})
	if d.Alpha() != 1 {
		t.Fatalf("expected full alpha, got %v", d.Alpha())
	}
	for i := 0; i < 5; i++ {
		d.Tick()
	}
	if a := d.Alpha(); a != 0.5 {
		t.Fatalf("expected 0.5, got %v", a)
	}
	d.Notify(notify.EventResetDrawCycle, nil)
	if d.Alpha() != 1 {
		t.Fatalf("reset did not restart the cycle")
	}
	for i := 0; i < 9; i++ {
		d.Tick()
	}
	if len(d.Lines()) != 1 {
		t.Fatalf("line dropped before the cycle ended")
	}
	d.Tick()
	if len(d.Lines()) != 0 {
		t.Fatalf("line kept after the cycle ended")
	}
}
