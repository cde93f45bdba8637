package ui

import (
	"image"

	"missile-demo/internal/core"
	"missile-demo/internal/gesture"
	"missile-demo/internal/notify"
)

const (
	buttonWidth  = 120
	buttonHeight = 28
	buttonGap    = 6
)

// MenuLayout places a vertical list of buttons centred at 10% of the screen
// width and half its height.
type MenuLayout struct {
	Labels []string
	Width  int
	Height int
}

// Buttons returns one rectangle per label, top to bottom.
func (l MenuLayout) Buttons() []image.Rectangle {
	n := len(l.Labels)
	if n == 0 {
		return nil
	}
	total := n*buttonHeight + (n-1)*buttonGap
	left := l.Width/10 - buttonWidth/2
	if left < 0 {
		left = 0
	}
	top := l.Height/2 - total/2
	rects := make([]image.Rectangle, n)
	for i := range rects {
		y := top + i*(buttonHeight+buttonGap)
		rects[i] = image.Rect(left, y, left+buttonWidth, y+buttonHeight)
	}
	return rects
}

// HitTest returns the index of the button under p.
func (l MenuLayout) HitTest(p core.ScreenPoint) (int, bool) {
	pt := image.Pt(int(p.X), int(p.Y))
	for i, r := range l.Buttons() {
		if pt.In(r) {
			return i, true
		}
	}
	return -1, false
}

// Menu publishes a menu choice when a pointer goes down on a button. The
// pointer then belongs to the menu until it is released, so the press never
// turns into a gesture.
type Menu struct {
	layout   MenuLayout
	bus      *notify.Bus
	seen     map[int]bool
	captured map[int]bool
	down     map[int]bool
	buf      []gesture.Pointer
	pressed  int
}

// NewMenu constructs a menu that publishes choices on bus.
func NewMenu(layout MenuLayout, bus *notify.Bus) *Menu {
	return &Menu{
		layout:   layout,
		bus:      bus,
		seen:     map[int]bool{},
		captured: map[int]bool{},
		down:     map[int]bool{},
		pressed:  -1,
	}
}

// Layout returns the current button layout.
func (m *Menu) Layout() MenuLayout { return m.layout }

// Resize relays the buttons out for a new screen size.
func (m *Menu) Resize(w, h int) {
	m.layout.Width = w
	m.layout.Height = h
}

// Pressed returns the button held down, or -1.
func (m *Menu) Pressed() int { return m.pressed }

// Filter handles presses on the menu and returns the pointers left for
// gesture recognition. The returned slice is reused by the next call.
// Presses only count while no gesture is running, so a second finger of a
// pinch cannot hit a button by accident.
func (m *Menu) Filter(pointers []gesture.Pointer, gestureActive bool) []gesture.Pointer {
	m.buf = m.buf[:0]
	m.pressed = -1
	clear(m.down)
	for _, p := range pointers {
		m.down[p.ID] = true
		if !m.seen[p.ID] && !gestureActive {
			if choice, ok := m.layout.HitTest(p.Pos); ok {
				m.captured[p.ID] = true
				m.bus.Notify(notify.EventMenuChoice, choice)
			}
		}
		if m.captured[p.ID] {
			if choice, ok := m.layout.HitTest(p.Pos); ok {
				m.pressed = choice
			}
			continue
		}
		m.buf = append(m.buf, p)
	}
	for id := range m.seen {
		if !m.down[id] {
			delete(m.seen, id)
			delete(m.captured, id)
		}
	}
	for id := range m.down {
		m.seen[id] = true
	}
	return m.buf
}
