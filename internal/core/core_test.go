package core

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
)

func TestEntityKindNextWraps(t *testing.T) {
	last := entityKindCount - 1
	if got := last.Next(); got != EntityMissile {
		t.Fatalf("Next() of last kind = %v, expected %v", got, EntityMissile)
	}
	if got := EntityMissile.Next(); got != EntityMovingEntity {
		t.Fatalf("Next() of missile = %v, expected %v", got, EntityMovingEntity)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for m := DragTrack; m <= DragPath; m++ {
		got, err := ParseDragMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseDragMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	for k := EntityKind(0); k < entityKindCount; k++ {
		got, err := ParseEntityKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseEntityKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseDragMode("orbit"); err == nil {
		t.Fatal("expected error for unknown drag mode")
	}
	if _, err := ParseEntityKind("tank"); err == nil {
		t.Fatal("expected error for unknown entity kind")
	}
}

func TestScreenPointGeometry(t *testing.T) {
	a := ScreenPoint{X: 0, Y: 0}
	b := ScreenPoint{X: 3, Y: 4}
	if d := a.Distance(b); d != 5 {
		t.Fatalf("Distance = %v, expected 5", d)
	}
	if m := a.Midpoint(b); m != (ScreenPoint{X: 1.5, Y: 2}) {
		t.Fatalf("Midpoint = %+v", m)
	}
}

func TestNewEntityUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unregistered kind")
		}
	}()
	NewEntity(EntityKind(99), nil, cp.Vector{})
}

func TestSnapshotLookup(t *testing.T) {
	s := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "a", Params: []Parameter{IntParam("n", "N", 3)}},
		{Name: "b", Params: []Parameter{FloatParam("speed", "Speed", 1.5)}},
	}}
	p, ok := s.Lookup("speed")
	if !ok || p.Value != "1.50" {
		t.Fatalf("Lookup(speed) = %+v, %v", p, ok)
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Fatal("Lookup(missing) should fail")
	}
}

func TestFixedStepPacing(t *testing.T) {
	fs := NewFixedStep(10)
	clock := time.Unix(0, 0)
	fs.now = func() time.Time { return clock }

	// The accumulator starts primed with one step.
	if !fs.ShouldStep() {
		t.Fatal("first call should step")
	}
	if fs.ShouldStep() {
		t.Fatal("no time elapsed, should not step")
	}
	clock = clock.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("half a tick elapsed, should not step")
	}
	clock = clock.Add(50 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("a full tick elapsed, should step")
	}
	if fs.Step() != 100*time.Millisecond {
		t.Fatalf("Step() = %v", fs.Step())
	}
}

func TestRNGIsDeterministic(t *testing.T) {
	a, b := NewRNG(7), NewRNG(7)
	for i := 0; i < 10; i++ {
		pa, pb := a.InRing(15, 40), b.InRing(15, 40)
		if pa != pb {
			t.Fatalf("draw %d differs: %v vs %v", i, pa, pb)
		}
		if d := pa.Length(); d < 15 || d >= 40+1e-9 {
			t.Fatalf("draw %d outside ring: %v", i, d)
		}
	}
}
