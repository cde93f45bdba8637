package ui

import (
	"testing"

	"missile-demo/internal/core"
	"missile-demo/internal/gesture"
	"missile-demo/internal/notify"
)

type choices struct{ got []int }

func (c *choices) Notify(_ notify.EventType, payload any) { c.got = append(c.got, payload.(int)) }

func testLayout() MenuLayout {
	return MenuLayout{Labels: []string{"a", "b", "c", "d"}, Width: 1000, Height: 600}
}

func center(l MenuLayout, i int) core.ScreenPoint {
	r := l.Buttons()[i]
	return core.ScreenPoint{X: float64(r.Min.X+r.Max.X) / 2, Y: float64(r.Min.Y+r.Max.Y) / 2}
}

func TestMenuLayoutIsCentredOnAnchor(t *testing.T) {
	l := testLayout()
	rects := l.Buttons()
	if len(rects) != 4 {
		t.Fatalf("expected 4 buttons, got %d", len(rects))
	}
	if cx := (rects[0].Min.X + rects[0].Max.X) / 2; cx != 100 {
		t.Fatalf("expected centre x 100, got %d", cx)
	}
	if cy := (rects[0].Min.Y + rects[3].Max.Y) / 2; cy != 300 {
		t.Fatalf("expected centre y 300, got %d", cy)
	}
	for i := 1; i < len(rects); i++ {
		if rects[i].Min.Y <= rects[i-1].Max.Y-1 {
			t.Fatalf("buttons %d and %d overlap", i-1, i)
		}
	}
}

func TestMenuHitTest(t *testing.T) {
	l := testLayout()
	for i := range l.Labels {
		if got, ok := l.HitTest(center(l, i)); !ok || got != i {
			t.Fatalf("button %d: got %d %v", i, got, ok)
		}
	}
	if _, ok := l.HitTest(core.ScreenPoint{X: 500, Y: 300}); ok {
		t.Fatalf("expected miss in the middle of the screen")
	}
	gap := l.Buttons()[0].Max.Y + buttonGap/2
	if _, ok := l.HitTest(core.ScreenPoint{X: 100, Y: float64(gap)}); ok {
		t.Fatalf("expected miss between buttons")
	}
}

func TestMenuFilterCapturesPress(t *testing.T) {
	bus := notify.NewBus(nil)
	rec := &choices{}
	bus.Attach(rec, notify.EventMenuChoice)
	m := NewMenu(testLayout(), bus)

	press := []gesture.Pointer{{ID: 1, Pos: center(m.Layout(), 2)}}
	if left := m.Filter(press, false); len(left) != 0 {
		t.Fatalf("menu press leaked to gestures")
	}
	if len(rec.got) != 1 || rec.got[0] != 2 {
		t.Fatalf("expected choice 2, got %v", rec.got)
	}
	if m.Pressed() != 2 {
		t.Fatalf("expected button 2 held, got %d", m.Pressed())
	}
	// Dragging off the button keeps the pointer captured and fires nothing.
	moved := []gesture.Pointer{{ID: 1, Pos: core.ScreenPoint{X: 500, Y: 300}}}
	if left := m.Filter(moved, false); len(left) != 0 || len(rec.got) != 1 {
		t.Fatalf("captured pointer escaped or fired again")
	}
	m.Filter(nil, false)
	if left := m.Filter(moved, false); len(left) != 1 {
		t.Fatalf("new press off the menu should pass through")
	}
}

func TestMenuFilterIgnoresPressesDuringGesture(t *testing.T) {
	bus := notify.NewBus(nil)
	rec := &choices{}
	bus.Attach(rec, notify.EventMenuChoice)
	m := NewMenu(testLayout(), bus)

	pointers := []gesture.Pointer{
		{ID: 1, Pos: core.ScreenPoint{X: 600, Y: 300}},
		{ID: 2, Pos: center(m.Layout(), 0)},
	}
	if left := m.Filter(pointers, true); len(left) != 2 {
		t.Fatalf("expected both pointers forwarded, got %d", len(left))
	}
	if len(rec.got) != 0 {
		t.Fatalf("menu fired during a gesture")
	}
}

func TestMenuFilterSteadyFrameDoesNotAllocate(t *testing.T) {
	m := NewMenu(testLayout(), notify.NewBus(nil))
	pointers := []gesture.Pointer{
		{ID: 1, Pos: core.ScreenPoint{X: 600, Y: 300}},
		{ID: 2, Pos: core.ScreenPoint{X: 700, Y: 200}},
	}
	allocs := testing.AllocsPerRun(100, func() {
		if left := m.Filter(pointers, false); len(left) != 2 {
			t.Fatalf("expected both pointers forwarded, got %d", len(left))
		}
	})
	if allocs != 0 {
		t.Fatalf("Filter allocated %v times per frame", allocs)
	}
}

func TestMenuFilterForgetsReleasedPointers(t *testing.T) {
	bus := notify.NewBus(nil)
	rec := &choices{}
	bus.Attach(rec, notify.EventMenuChoice)
	m := NewMenu(testLayout(), bus)

	press := []gesture.Pointer{{ID: 1, Pos: center(m.Layout(), 1)}}
	m.Filter(press, false)
	m.Filter(press, false)
	m.Filter(nil, false)
	m.Filter(press, false)
	if len(rec.got) != 2 || rec.got[1] != 1 {
		t.Fatalf("expected a second press after release, got %v", rec.got)
	}
}
