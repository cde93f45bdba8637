package scene

import (
	"math"

	"missile-demo/internal/core"
	"missile-demo/internal/gesture"
	"missile-demo/internal/notify"
)

// minPinchDistance keeps the pinch ratio finite when fingers coincide.
const minPinchDistance = 1.0

var _ gesture.Handler = (*Scene)(nil)

// Tap is not bound to an action.
func (s *Scene) Tap(core.ScreenPoint) {}

// LongTap is not bound to an action.
func (s *Scene) LongTap(core.ScreenPoint) {}

// PinchBegin stops the entity and snapshots the viewport the whole pinch is
// measured against.
func (s *Scene) PinchBegin(ev gesture.Pinch) {
	s.entity.CommandIdle()
	s.feedback()
	s.pinch = pinchOrigin{center: s.vp.CenterMeters(), scale: s.vp.Scale()}
	s.pinchViewport(ev)
}

// PinchContinue recomputes the viewport from the snapshot, never from the
// previous continue.
func (s *Scene) PinchContinue(ev gesture.Pinch) {
	s.feedback()
	s.pinchViewport(ev)
}

// PinchEnd leaves the viewport where the last continue put it.
func (s *Scene) PinchEnd(gesture.Pinch) {
	s.feedback()
}

// pinchViewport scales by the ratio of finger distances and pans by the
// midpoint movement. Both midpoints are converted through the snapshot so
// the result depends only on the snapshot and the live points.
func (s *Scene) pinchViewport(ev gesture.Pinch) {
	distOrg := math.Max(ev.Origin0.Distance(ev.Origin1), minPinchDistance)
	distNew := math.Max(ev.Point0.Distance(ev.Point1), minPinchDistance)

	ref := *s.vp
	ref.SetCenter(s.pinch.center)
	ref.SetScale(s.pinch.scale)
	centerOld := ref.Convert(ev.Origin0.Midpoint(ev.Origin1))
	centerNew := ref.Convert(ev.Point0.Midpoint(ev.Point1))

	s.vp.SetCenter(s.pinch.center.Sub(centerNew).Add(centerOld))
	s.vp.SetScale(distNew / distOrg * s.pinch.scale)
}

// DragBegin starts the command for the current drag mode.
func (s *Scene) DragBegin(p0, p1 core.ScreenPoint) {
	s.feedback()
	switch s.dragMode {
	case core.DragTrack:
		s.entity.CommandTurnTowards(s.vp.Convert(p0))
	case core.DragSeek:
		s.entity.CommandSeek(s.vp.Convert(p0))
	case core.DragPath:
		s.path = s.path[:0]
		s.path = append(s.path, s.vp.Convert(p0), s.vp.Convert(p1))
		// Hold still while the path is drawn.
		s.entity.CommandIdle()
		s.addDebugLine(p0, p1)
	default:
		panic("scene: unknown drag mode " + s.dragMode.String())
	}
}

// DragContinue retargets the entity or extends the path.
func (s *Scene) DragContinue(_, p1 core.ScreenPoint) {
	s.feedback()
	switch s.dragMode {
	case core.DragTrack, core.DragSeek:
		s.entity.SetTargetPosition(s.vp.Convert(p1))
	case core.DragPath:
		s.path = append(s.path, s.vp.Convert(p1))
		s.addDebugLine(s.lastPoint, p1)
	default:
		panic("scene: unknown drag mode " + s.dragMode.String())
	}
}

// DragEnd idles the entity, or hands it the finished path.
func (s *Scene) DragEnd(_, _ core.ScreenPoint) {
	s.feedback()
	switch s.dragMode {
	case core.DragTrack, core.DragSeek:
		s.entity.CommandIdle()
	case core.DragPath:
		s.entity.CommandFollowPath(s.path)
	default:
		panic("scene: unknown drag mode " + s.dragMode.String())
	}
}

func (s *Scene) addDebugLine(from, to core.ScreenPoint) {
	s.lastPoint = to
	s.bus.Notify(notify.EventDebugLineAdd, notify.LinePixels{Start: from, End: to})
}
