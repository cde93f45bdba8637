// Package notify is the scene-scoped notification bus that decouples the
// scene from its debug layers and menu.
package notify

import (
	"fmt"
	"reflect"

	"missile-demo/internal/core"

	"go.uber.org/zap"
)

// EventType identifies a notification.
type EventType int

const (
	// EventResetDrawCycle restarts the fade cycle of the debug layers.
	EventResetDrawCycle EventType = iota
	// EventDebugToggleVisibility flips the physics debug layer on or off.
	EventDebugToggleVisibility
	// EventDebugLineAdd carries a LinePixels payload for the debug line layer.
	EventDebugLineAdd
	// EventMenuChoice carries the int index of the pressed menu button.
	EventMenuChoice

	eventTypeCount
)

func (t EventType) String() string {
	switch t {
	case EventResetDrawCycle:
		return "reset-draw-cycle"
	case EventDebugToggleVisibility:
		return "debug-toggle-visibility"
	case EventDebugLineAdd:
		return "debug-line-add"
	case EventMenuChoice:
		return "menu-choice"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// LinePixels is a line segment in screen coordinates.
type LinePixels struct {
	Start core.ScreenPoint
	End   core.ScreenPoint
}

// Subscriber receives notifications it attached for.
type Subscriber interface {
	Notify(t EventType, payload any)
}

// Bus delivers notifications synchronously, in attach order, on the caller's
// goroutine. It is not safe for concurrent use.
type Bus struct {
	subs   [eventTypeCount][]Subscriber
	logger *zap.Logger
}

// NewBus creates an empty bus. A nil logger disables logging.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{logger: logger}
}

// Attach subscribes s to the given event types. Attaching twice to the same
// type is a no-op. Subscribers are matched by ==, so s must be comparable;
// use a pointer for subscribers holding slices, maps or funcs.
func (b *Bus) Attach(s Subscriber, types ...EventType) {
	if s == nil || !reflect.TypeOf(s).Comparable() {
		panic(fmt.Sprintf("notify: subscriber %T is not comparable", s))
	}
	for _, t := range types {
		b.checkType(t)
		if indexOf(b.subs[t], s) >= 0 {
			continue
		}
		b.subs[t] = append(b.subs[t], s)
	}
}

// Detach removes s from every event type.
func (b *Bus) Detach(s Subscriber) {
	for t := range b.subs {
		if i := indexOf(b.subs[t], s); i >= 0 {
			b.subs[t] = append(b.subs[t][:i], b.subs[t][i+1:]...)
		}
	}
}

// Notify delivers payload to every subscriber of t. Subscribers attached or
// detached during delivery take effect on the next Notify.
func (b *Bus) Notify(t EventType, payload any) {
	b.checkType(t)
	subs := b.subs[t]
	if len(subs) == 0 {
		return
	}
	b.logger.Debug("notify", zap.Stringer("event", t), zap.Int("subscribers", len(subs)))
	snapshot := make([]Subscriber, len(subs))
	copy(snapshot, subs)
	for _, s := range snapshot {
		s.Notify(t, payload)
	}
}

// Subscribers returns the number of subscribers attached to t.
func (b *Bus) Subscribers(t EventType) int {
	b.checkType(t)
	return len(b.subs[t])
}

func (b *Bus) checkType(t EventType) {
	if t < 0 || t >= eventTypeCount {
		panic(fmt.Sprintf("notify: unknown event type %d", int(t)))
	}
}

func indexOf(subs []Subscriber, s Subscriber) int {
	for i, cur := range subs {
		if cur == s {
			return i
		}
	}
	return -1
}
