package scene

import (
	"math"
	"testing"

	"missile-demo/internal/core"
	_ "missile-demo/internal/entity"
	"missile-demo/internal/gesture"
	"missile-demo/internal/notify"
	"missile-demo/internal/physics"
	"missile-demo/internal/viewport"

	"github.com/jakecoffman/cp"
)

type call struct {
	name   string
	target cp.Vector
	path   []cp.Vector
}

type fakeEntity struct {
	kind      core.EntityKind
	calls     []call
	updates   int
	destroyed bool
}

func (e *fakeEntity) Kind() core.EntityKind { return e.kind }
func (e *fakeEntity) Update() { e.updates++ }
func (e *fakeEntity) CommandIdle() { e.calls = append(e.calls, call{name: "idle"}) }
func (e *fakeEntity) CommandTurnTowards(t cp.Vector) {
	e.calls = append(e.calls, call{name: "turn", target: t})
}
func (e *fakeEntity) CommandSeek(t cp.Vector) { e.calls = append(e.calls, call{name: "seek", target: t}) }
func (e *fakeEntity) CommandFollowPath(p []cp.Vector) {
	e.calls = append(e.calls, call{name: "path", path: append([]cp.Vector(nil), p...)})
}
func (e *fakeEntity) SetTargetPosition(t cp.Vector) {
	e.calls = append(e.calls, call{name: "target", target: t})
}
func (e *fakeEntity) Command() core.Command { return core.CmdIdle }
func (e *fakeEntity) Position() cp.Vector { return cp.Vector{} }
func (e *fakeEntity) Angle() float64 { return 0 }
func (e *fakeEntity) Destroy() { e.destroyed = true }

func (e *fakeEntity) last() call {
	if len(e.calls) == 0 {
		return call{}
	}
	return e.calls[len(e.calls)-1]
}

type countingDrawer struct{ n int }

func (d *countingDrawer) DrawDebug() { d.n++ }

type recorder struct {
	events   []notify.EventType
	payloads []any
}

func (r *recorder) Notify(t notify.EventType, payload any) {
	r.events = append(r.events, t)
	r.payloads = append(r.payloads, payload)
}

func (r *recorder) count(t notify.EventType) int {
	n := 0
	for _, e := range r.events {
		if e == t {
			n++
		}
	}
	return n
}

type fixture struct {
	scene   *Scene
	vp      *viewport.Viewport
	bus     *notify.Bus
	rec     *recorder
	drawer  *countingDrawer
	spawned []*fakeEntity
}

func newFixture(t *testing.T, mode core.DragMode) *fixture {
	t.Helper()
	f := &fixture{
		vp:     viewport.New(100, 800, 600),
		bus:    notify.NewBus(nil),
		rec:    &recorder{},
		drawer: &countingDrawer{},
	}
	f.bus.Attach(f.rec, notify.EventResetDrawCycle, notify.EventDebugToggleVisibility, notify.EventDebugLineAdd)
	f.scene = New(Options{
		Viewport: f.vp,
		Bus:      f.bus,
		Debug:    f.drawer,
		DragMode: mode,
		Spawn: func(kind core.EntityKind, _ core.BodyHost, _ cp.Vector) core.Entity {
			e := &fakeEntity{kind: kind}
			f.spawned = append(f.spawned, e)
			return e
		},
	})
	f.scene.Attach()
	return f
}

func (f *fixture) entity() *fakeEntity { return f.spawned[len(f.spawned)-1] }

func near(a, b cp.Vector) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func pt(x, y float64) core.ScreenPoint { return core.ScreenPoint{X: x, Y: y} }

func TestNewSpawnsAtOrigin(t *testing.T) {
	f := newFixture(t, core.DragSeek)
	if len(f.spawned) != 1 {
		t.Fatalf("expected one entity, got %d", len(f.spawned))
	}
	if f.scene.EntityKind() != core.EntityMissile || f.entity().kind != core.EntityMissile {
		t.Fatalf("expected a missile first")
	}
}

func TestCoincidentPinchKeepsScaleFinite(t *testing.T) {
	f := newFixture(t, core.DragSeek)
	p := pt(400, 300)
	ev := gesture.Pinch{Origin0: p, Origin1: p, Point0: p, Point1: p}
	f.scene.PinchBegin(ev)
	f.scene.PinchContinue(ev)
	s := f.vp.Scale()
	if math.IsNaN(s) || math.IsInf(s, 0) || s != 1 {
		t.Fatalf("expected scale 1, got %v", s)
	}
	c := f.vp.CenterMeters()
	if math.IsNaN(c.X) || math.IsNaN(c.Y) {
		t.Fatalf("center is not finite: %v", c)
	}
}

func TestPinchContinueIsRelativeToSnapshot(t *testing.T) {
	f := newFixture(t, core.DragSeek)
	f.vp.SetScale(1.2)
	o0, o1 := pt(350, 300), pt(450, 300)
	f.scene.PinchBegin(gesture.Pinch{Origin0: o0, Origin1: o1, Point0: o0, Point1: o1})
	if f.vp.Scale() != 1.2 {
		t.Fatalf("pinch begin changed scale to %v", f.vp.Scale())
	}

	f.scene.PinchContinue(gesture.Pinch{Origin0: o0, Origin1: o1, Point0: pt(300, 300), Point1: pt(500, 300)})
	if got := f.vp.Scale(); math.Abs(got-2.4) > 1e-9 {
		t.Fatalf("expected 2.4, got %v", got)
	}
	f.scene.PinchContinue(gesture.Pinch{Origin0: o0, Origin1: o1, Point0: pt(325, 300), Point1: pt(475, 300)})
	if got := f.vp.Scale(); math.Abs(got-1.8) > 1e-9 {
		t.Fatalf("expected 1.5 * snapshot = 1.8, got %v", got)
	}
	// Midpoint never moved, so neither did the center.
	if !near(f.vp.CenterMeters(), cp.Vector{}) {
		t.Fatalf("center drifted to %v", f.vp.CenterMeters())
	}
	f.scene.PinchEnd(gesture.Pinch{})
	if got := f.vp.Scale(); math.Abs(got-1.8) > 1e-9 {
		t.Fatalf("pinch end changed scale to %v", got)
	}
}

func TestPinchPansByMidpointMovement(t *testing.T) {
	f := newFixture(t, core.DragSeek)
	o0, o1 := pt(350, 300), pt(450, 300)
	f.scene.PinchBegin(gesture.Pinch{Origin0: o0, Origin1: o1, Point0: o0, Point1: o1})
	// Both fingers move 80 px right: 10 m at 8 px/m.
	f.scene.PinchContinue(gesture.Pinch{Origin0: o0, Origin1: o1, Point0: pt(430, 300), Point1: pt(530, 300)})
	if !near(f.vp.CenterMeters(), cp.Vector{X: -10}) {
		t.Fatalf("expected center (-10,0), got %v", f.vp.CenterMeters())
	}
	f.scene.PinchContinue(gesture.Pinch{Origin0: o0, Origin1: o1, Point0: pt(430, 300), Point1: pt(530, 300)})
	if !near(f.vp.CenterMeters(), cp.Vector{X: -10}) {
		t.Fatalf("repeated continue drifted to %v", f.vp.CenterMeters())
	}
}

func TestPinchBeginIdlesAndNotifies(t *testing.T) {
	f := newFixture(t, core.DragSeek)
	p0, p1 := pt(100, 100), pt(200, 100)
	f.scene.PinchBegin(gesture.Pinch{Origin0: p0, Origin1: p1, Point0: p0, Point1: p1})
	if f.entity().last().name != "idle" {
		t.Fatalf("expected idle, got %+v", f.entity().calls)
	}
	if f.rec.count(notify.EventResetDrawCycle) != 1 || f.drawer.n != 1 {
		t.Fatalf("expected one reset and one redraw, got %d and %d", f.rec.count(notify.EventResetDrawCycle), f.drawer.n)
	}
}

func TestNextTypeCycles(t *testing.T) {
	f := newFixture(t, core.DragSeek)
	f.scene.HandleMenuChoice(MenuNextType)
	if f.scene.EntityKind() != core.EntityMovingEntity {
		t.Fatalf("expected moving entity, got %v", f.scene.EntityKind())
	}
	f.scene.HandleMenuChoice(MenuNextType)
	if f.scene.EntityKind() != core.EntityMissile {
		t.Fatalf("expected wrap to missile, got %v", f.scene.EntityKind())
	}
	if len(f.spawned) != 3 {
		t.Fatalf("expected three spawns, got %d", len(f.spawned))
	}
	if !f.spawned[0].destroyed || !f.spawned[1].destroyed || f.spawned[2].destroyed {
		t.Fatalf("only the replaced entities should be destroyed")
	}
	if n := f.rec.count(notify.EventResetDrawCycle); n != 2 {
		t.Fatalf("expected a reset per swap, got %d", n)
	}
}

func TestPathDragBuildsOrderedPath(t *testing.T) {
	f := newFixture(t, core.DragPath)
	p0, p1, p2, p3 := pt(400, 300), pt(408, 300), pt(408, 308), pt(416, 308)
	f.scene.DragBegin(p0, p1)
	if f.entity().last().name != "idle" {
		t.Fatalf("path drag should idle the entity first")
	}
	f.scene.DragContinue(p1, p2)
	f.scene.DragContinue(p2, p3)
	f.scene.DragEnd(p0, p3)

	want := []cp.Vector{f.vp.Convert(p0), f.vp.Convert(p1), f.vp.Convert(p2), f.vp.Convert(p3)}
	got := f.entity().last()
	if got.name != "path" || len(got.path) != len(want) {
		t.Fatalf("expected follow path with %d points, got %+v", len(want), got)
	}
	for i := range want {
		if !near(got.path[i], want[i]) {
			t.Fatalf("point %d: expected %v, got %v", i, want[i], got.path[i])
		}
	}
	if !near(want[1], cp.Vector{X: 1}) || !near(want[2], cp.Vector{X: 1, Y: -1}) {
		t.Fatalf("unexpected conversion %v", want)
	}

	var lines []notify.LinePixels
	for i, e := range f.rec.events {
		if e == notify.EventDebugLineAdd {
			lines = append(lines, f.rec.payloads[i].(notify.LinePixels))
		}
	}
	wantLines := []notify.LinePixels{{Start: p0, End: p1}, {Start: p1, End: p2}, {Start: p2, End: p3}}
	if len(lines) != len(wantLines) {
		t.Fatalf("expected %d debug lines, got %d", len(wantLines), len(lines))
	}
	for i := range wantLines {
		if lines[i] != wantLines[i] {
			t.Fatalf("line %d: expected %+v, got %+v", i, wantLines[i], lines[i])
		}
	}
}

func TestNewPathReplacesOldOne(t *testing.T) {
	f := newFixture(t, core.DragPath)
	f.scene.DragBegin(pt(0, 0), pt(10, 0))
	f.scene.DragContinue(pt(10, 0), pt(20, 0))
	f.scene.DragEnd(pt(0, 0), pt(20, 0))
	f.scene.DragBegin(pt(400, 300), pt(410, 300))
	f.scene.DragEnd(pt(400, 300), pt(410, 300))
	if got := f.entity().last().path; len(got) != 2 || !near(got[0], cp.Vector{}) {
		t.Fatalf("expected the second path only, got %v", got)
	}
	if len(f.scene.Path()) != 2 {
		t.Fatalf("scene path has %d points", len(f.scene.Path()))
	}
}

func TestZoomPresets(t *testing.T) {
	tests := []struct {
		choice int
		scale  float64
	}{
		{MenuZoomIn, 0.5},
		{MenuNormalView, 1.0},
		{MenuZoomOut, 1.5},
	}
	for _, tc := range tests {
		f := newFixture(t, core.DragSeek)
		o0, o1 := pt(350, 300), pt(450, 300)
		f.scene.PinchBegin(gesture.Pinch{Origin0: o0, Origin1: o1, Point0: o0, Point1: o1})
		f.scene.PinchContinue(gesture.Pinch{Origin0: o0, Origin1: o1, Point0: pt(200, 250), Point1: pt(520, 250)})
		f.scene.PinchEnd(gesture.Pinch{})

		f.scene.HandleMenuChoice(tc.choice)
		if f.vp.Scale() != tc.scale {
			t.Fatalf("choice %d: expected scale %v, got %v", tc.choice, tc.scale, f.vp.Scale())
		}
		if f.vp.CenterMeters() != (cp.Vector{}) {
			t.Fatalf("choice %d: expected origin center, got %v", tc.choice, f.vp.CenterMeters())
		}
	}
}

func TestNextTypeInPathModeFollowsPath(t *testing.T) {
	f := newFixture(t, core.DragPath)
	f.scene.DragBegin(pt(400, 300), pt(440, 300))
	f.scene.DragContinue(pt(440, 300), pt(440, 260))
	f.scene.DragEnd(pt(400, 300), pt(440, 260))
	path := f.scene.Path()

	f.scene.HandleMenuChoice(MenuNextType)
	got := f.entity().calls
	if len(got) != 1 || got[0].name != "path" || len(got[0].path) != len(path) {
		t.Fatalf("expected the new entity to follow the path, got %+v", got)
	}
	for i := range path {
		if !near(got[0].path[i], path[i]) {
			t.Fatalf("point %d: expected %v, got %v", i, path[i], got[0].path[i])
		}
	}
}

func TestNextTypeInSeekOrTrackModeLeavesIdle(t *testing.T) {
	for _, mode := range []core.DragMode{core.DragSeek, core.DragTrack} {
		f := newFixture(t, mode)
		f.scene.DragBegin(pt(400, 300), pt(450, 300))
		f.scene.HandleMenuChoice(MenuNextType)
		if n := len(f.entity().calls); n != 0 {
			t.Fatalf("%v: new entity received %d commands", mode, n)
		}
	}
}

func TestSeekDrag(t *testing.T) {
	f := newFixture(t, core.DragSeek)
	f.scene.DragBegin(pt(480, 300), pt(485, 300))
	if c := f.entity().last(); c.name != "seek" || !near(c.target, cp.Vector{X: 10}) {
		t.Fatalf("expected seek to (10,0), got %+v", c)
	}
	f.scene.DragContinue(pt(485, 300), pt(480, 220))
	if c := f.entity().last(); c.name != "target" || !near(c.target, cp.Vector{X: 10, Y: 10}) {
		t.Fatalf("expected retarget to (10,10), got %+v", c)
	}
	f.scene.DragEnd(pt(480, 300), pt(480, 220))
	if f.entity().last().name != "idle" {
		t.Fatalf("expected idle after drag end")
	}
	if n := f.rec.count(notify.EventResetDrawCycle); n != 3 {
		t.Fatalf("expected 3 resets, got %d", n)
	}
	if f.drawer.n != 3 {
		t.Fatalf("expected 3 redraws, got %d", f.drawer.n)
	}
}

func TestTrackDrag(t *testing.T) {
	f := newFixture(t, core.DragTrack)
	f.scene.DragBegin(pt(400, 220), pt(400, 210))
	if c := f.entity().last(); c.name != "turn" || !near(c.target, cp.Vector{Y: 10}) {
		t.Fatalf("expected turn towards (0,10), got %+v", c)
	}
}

func TestModeChoices(t *testing.T) {
	f := newFixture(t, core.DragSeek)
	for choice, mode := range map[int]core.DragMode{MenuTrack: core.DragTrack, MenuSeek: core.DragSeek, MenuPath: core.DragPath} {
		f.scene.HandleMenuChoice(choice)
		if f.scene.DragMode() != mode {
			t.Fatalf("choice %d: expected %v, got %v", choice, mode, f.scene.DragMode())
		}
	}
	if n := f.rec.count(notify.EventResetDrawCycle); n != 0 {
		t.Fatalf("drag mode changes must not reset the draw cycle, got %d", n)
	}
}

func TestZoomChoicesResetDrawCycle(t *testing.T) {
	f := newFixture(t, core.DragSeek)
	for _, choice := range []int{MenuZoomIn, MenuNormalView, MenuZoomOut} {
		f.scene.HandleMenuChoice(choice)
	}
	if n := f.rec.count(notify.EventResetDrawCycle); n != 3 {
		t.Fatalf("expected 3 resets, got %d", n)
	}
}

func TestEveryGestureStepGivesFeedback(t *testing.T) {
	f := newFixture(t, core.DragPath)
	f.scene.DragBegin(pt(400, 300), pt(410, 300))
	f.scene.DragContinue(pt(410, 300), pt(420, 300))
	f.scene.DragContinue(pt(420, 300), pt(430, 300))
	f.scene.DragEnd(pt(400, 300), pt(430, 300))
	p := gesture.Pinch{Origin0: pt(300, 300), Origin1: pt(500, 300), Point0: pt(300, 300), Point1: pt(500, 300)}
	f.scene.PinchBegin(p)
	f.scene.PinchContinue(p)
	f.scene.PinchEnd(p)
	if n := f.rec.count(notify.EventResetDrawCycle); n != 7 {
		t.Fatalf("expected 7 resets, got %d", n)
	}
	if f.drawer.n != 7 {
		t.Fatalf("expected 7 redraws, got %d", f.drawer.n)
	}
}

func TestDebugChoiceTogglesOverlay(t *testing.T) {
	f := newFixture(t, core.DragSeek)
	f.scene.HandleMenuChoice(MenuDebug)
	if f.rec.count(notify.EventDebugToggleVisibility) != 1 || f.rec.count(notify.EventResetDrawCycle) != 1 {
		t.Fatalf("unexpected events %v", f.rec.events)
	}
}

func TestUnknownMenuChoicePanics(t *testing.T) {
	f := newFixture(t, core.DragSeek)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	f.scene.HandleMenuChoice(len(MenuLabels))
}

func TestMenuChoiceViaBus(t *testing.T) {
	f := newFixture(t, core.DragSeek)
	f.bus.Notify(notify.EventMenuChoice, MenuPath)
	if f.scene.DragMode() != core.DragPath {
		t.Fatalf("bus choice not handled")
	}
	f.scene.Detach()
	f.bus.Notify(notify.EventMenuChoice, MenuTrack)
	if f.scene.DragMode() != core.DragPath {
		t.Fatalf("detached scene still handles choices")
	}
}

func TestUpdateRunsOnlyWhileAttached(t *testing.T) {
	f := newFixture(t, core.DragSeek)
	f.scene.Update()
	f.scene.Update()
	if f.entity().updates != 2 || f.scene.World().Steps() != 2 {
		t.Fatalf("expected two ticks, got %d updates and %d steps", f.entity().updates, f.scene.World().Steps())
	}
	f.scene.Detach()
	f.scene.Update()
	if f.entity().updates != 2 || f.scene.Ticks() != 2 {
		t.Fatalf("detached scene kept updating")
	}
}

func TestCloseDestroysEntity(t *testing.T) {
	f := newFixture(t, core.DragSeek)
	e := f.entity()
	f.scene.Close()
	if !e.destroyed || f.scene.Attached() || f.scene.Entity() != nil {
		t.Fatalf("close left state behind")
	}
	if f.bus.Subscribers(notify.EventMenuChoice) != 0 {
		t.Fatalf("close left the scene subscribed")
	}
}

func TestSeekWithRealEntity(t *testing.T) {
	vp := viewport.New(100, 800, 600)
	s := New(Options{Viewport: vp, Bus: notify.NewBus(nil), Kind: core.EntityMovingEntity, DragMode: core.DragSeek})
	s.Attach()
	if s.World().BodyCount() != 1 {
		t.Fatalf("expected one body, got %d", s.World().BodyCount())
	}
	s.DragBegin(pt(560, 300), pt(565, 300))
	for i := 0; i < 60; i++ {
		s.Update()
	}
	if x := s.Entity().Position().X; x <= 0.5 {
		t.Fatalf("entity did not move towards the target, x = %v", x)
	}
	s.HandleMenuChoice(MenuNextType)
	if s.World().BodyCount() != 1 {
		t.Fatalf("swapping kinds leaked a body, count %d", s.World().BodyCount())
	}
	if s.Entity().Kind() != core.EntityMissile {
		t.Fatalf("expected missile after swap")
	}
	if s.World().Steps() != 60 || s.step != physics.DefaultStep {
		t.Fatalf("unexpected stepping: %d steps with %+v", s.World().Steps(), s.step)
	}
}
