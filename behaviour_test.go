package troupe

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestBehaviourApplyRemove(t *testing.T) {
	s, _, _ := newTestScene()
	a := s.NewActor()
	b := s.NewActor()

	sb := NewScaleBehaviour(1, 2, GravityNone, 1, ease.Linear)
	sb.Apply(a, b)
	if !sb.IsApplied(a) || !sb.IsApplied(b) {
		t.Fatal("both actors should be driven")
	}
	if len(sb.Actors()) != 2 {
		t.Fatalf("Actors() has %d entries, want 2", len(sb.Actors()))
	}

	// Duplicates are skipped with a usage error, not added twice.
	sb.Apply(a)
	if len(sb.Actors()) != 2 {
		t.Errorf("Actors() has %d entries after duplicate apply, want 2", len(sb.Actors()))
	}

	sb.Remove(a)
	if sb.IsApplied(a) {
		t.Error("removed actor should not be driven")
	}
	if !sb.IsApplied(b) {
		t.Error("remaining actor should still be driven")
	}

	// Removing an actor that is not driven is skipped the same way.
	sb.Remove(a)
	sb.Apply(nil)
	sb.Remove(nil)
	if len(sb.Actors()) != 1 {
		t.Errorf("Actors() has %d entries, want 1", len(sb.Actors()))
	}
}

func TestScaleBehaviourUpdate(t *testing.T) {
	s, _, _ := newTestScene()
	a := s.NewActor()
	a.SetSize(100, 60)

	sb := NewScaleBehaviour(1, 2, GravityNone, 1, ease.Linear)
	sb.Apply(a)

	if finished := sb.Update(0.5); finished {
		t.Error("behaviour should not finish at the midpoint")
	}
	sx, sy := a.Scale()
	assertNear(t, "midpoint scale x", sx, 1.5)
	assertNear(t, "midpoint scale y", sy, 1.5)

	if finished := sb.Update(0.5); !finished {
		t.Error("behaviour should finish at its duration")
	}
	sx, _ = a.Scale()
	assertNear(t, "final scale", sx, 2)
}

func TestScaleBehaviourGravityAnchorsTheScaling(t *testing.T) {
	s, _, _ := newTestScene()
	a := s.NewActor()
	a.SetSize(100, 60)

	sb := NewScaleBehaviour(1, 2, GravityCenter, 1, ease.Linear)
	sb.Apply(a)
	sb.Update(0.25)

	if x, y := a.AnchorPoint(); x != 50 || y != 30 {
		t.Errorf("anchor = (%d, %d), want the center (50, 30)", x, y)
	}
}

func TestScaleBehaviourGravityNoneLeavesAnchor(t *testing.T) {
	s, _, _ := newTestScene()
	a := s.NewActor()
	a.SetSize(100, 60)
	a.SetAnchorPoint(7, 9)

	sb := NewScaleBehaviour(1, 2, GravityNone, 1, ease.Linear)
	sb.Apply(a)
	sb.Update(0.25)

	if x, y := a.AnchorPoint(); x != 7 || y != 9 {
		t.Errorf("anchor = (%d, %d), want the untouched (7, 9)", x, y)
	}
}

func TestScaleBehaviourSkipsDestroyedActors(t *testing.T) {
	s, _, _ := newTestScene()
	live := s.NewActor()
	dead := s.NewActor()

	sb := NewScaleBehaviour(1, 2, GravityNone, 1, ease.Linear)
	sb.Apply(live, dead)
	dead.Destroy()
	sb.Update(0.5)

	if sx, _ := live.Scale(); sx != 1.5 {
		t.Errorf("live scale = %v, want 1.5", sx)
	}
	if sx, _ := dead.Scale(); sx != 1 {
		t.Errorf("destroyed actor scale = %v, want untouched 1", sx)
	}
}

func TestScaleBehaviourReset(t *testing.T) {
	s, _, _ := newTestScene()
	a := s.NewActor()

	sb := NewScaleBehaviour(1, 2, GravityNone, 1, ease.Linear)
	sb.Apply(a)
	sb.Update(1)
	sb.Reset()

	if finished := sb.Update(0.5); finished {
		t.Error("a reset behaviour should run again")
	}
	if sx, _ := a.Scale(); sx != 1.5 {
		t.Errorf("scale after reset = %v, want 1.5", sx)
	}
}

func TestScaleBehaviourAccessors(t *testing.T) {
	sb := NewScaleBehaviour(0.5, 3, GravityNorthEast, 2, ease.Linear)
	start, end := sb.Bounds()
	if start != 0.5 || end != 3 {
		t.Errorf("Bounds = (%v, %v), want (0.5, 3)", start, end)
	}
	if sb.Gravity() != GravityNorthEast {
		t.Errorf("Gravity = %v, want GravityNorthEast", sb.Gravity())
	}
}
