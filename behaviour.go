package troupe

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Behaviour drives properties of one or more actors from an interpolated
// value. Implementations embed [BehaviourActors] for the driven set and
// advance their interpolation in Update.
//
// There is no global behaviour manager. Callers advance behaviours
// themselves, typically once per frame.
type Behaviour interface {
	// Apply adds actors to the driven set. Actors already in the set are
	// skipped with a usage error.
	Apply(actors ...*Actor)

	// Remove takes actors out of the driven set. Actors not in the set
	// are skipped with a usage error.
	Remove(actors ...*Actor)

	// IsApplied reports whether a is in the driven set.
	IsApplied(a *Actor) bool

	// Actors returns the driven set. The returned slice MUST NOT be
	// mutated by the caller.
	Actors() []*Actor

	// Update advances the behaviour by dt seconds and reports whether it
	// has finished.
	Update(dt float32) bool
}

// BehaviourActors holds the set of actors a behaviour drives. Embed it to
// get the set management half of the [Behaviour] interface.
type BehaviourActors struct {
	actors []*Actor
}

// Apply adds actors to the driven set.
func (b *BehaviourActors) Apply(actors ...*Actor) {
	for _, a := range actors {
		if a == nil {
			reportNilActor("Behaviour.Apply")
			continue
		}
		if b.IsApplied(a) {
			a.logger().Warn("actor is already driven by this behaviour",
				zap.Uint32("id", a.id),
				zap.String("name", a.name))
			continue
		}
		b.actors = append(b.actors, a)
	}
}

// Remove takes actors out of the driven set.
func (b *BehaviourActors) Remove(actors ...*Actor) {
	for _, a := range actors {
		if a == nil {
			reportNilActor("Behaviour.Remove")
			continue
		}
		if !b.IsApplied(a) {
			a.logger().Warn("actor is not driven by this behaviour",
				zap.Uint32("id", a.id),
				zap.String("name", a.name))
			continue
		}
		for i, applied := range b.actors {
			if applied == a {
				copy(b.actors[i:], b.actors[i+1:])
				b.actors[len(b.actors)-1] = nil
				b.actors = b.actors[:len(b.actors)-1]
				break
			}
		}
	}
}

// IsApplied reports whether a is in the driven set.
func (b *BehaviourActors) IsApplied(a *Actor) bool {
	for _, applied := range b.actors {
		if applied == a {
			return true
		}
	}
	return false
}

// Actors returns the driven set in application order. The returned slice
// MUST NOT be mutated by the caller.
func (b *BehaviourActors) Actors() []*Actor {
	return b.actors
}

// ScaleBehaviour interpolates the scale of its driven actors between two
// factors, anchoring the scaling at a gravity point.
type ScaleBehaviour struct {
	BehaviourActors

	scaleStart float64
	scaleEnd   float64
	gravity    Gravity
	tween      *gween.Tween
}

var _ Behaviour = (*ScaleBehaviour)(nil)

// NewScaleBehaviour creates a behaviour that scales its actors from
// scaleStart to scaleEnd over duration seconds, eased by fn. The scaling is
// anchored at the given gravity; GravityNone leaves the actors' anchor
// points alone.
func NewScaleBehaviour(scaleStart, scaleEnd float64, gravity Gravity, duration float32, fn ease.TweenFunc) *ScaleBehaviour {
	return &ScaleBehaviour{
		scaleStart: scaleStart,
		scaleEnd:   scaleEnd,
		gravity:    gravity,
		tween:      gween.New(float32(scaleStart), float32(scaleEnd), duration, fn),
	}
}

// Update advances the interpolation by dt seconds, pushes the resulting
// scale to every driven actor and reports whether the behaviour finished.
func (b *ScaleBehaviour) Update(dt float32) bool {
	val, finished := b.tween.Update(dt)
	b.applyFrame(float64(val))
	return finished
}

// applyFrame pushes one interpolated scale factor to the driven set.
// Destroyed actors are skipped.
func (b *ScaleBehaviour) applyFrame(scale float64) {
	for _, a := range b.actors {
		if a.IsDestroyed() {
			continue
		}
		// Don't touch the actor anchor point if gravity is none.
		if b.gravity != GravityNone {
			a.SetAnchorPointFromGravity(b.gravity)
		}
		a.SetScale(scale, scale)
	}
}

// Bounds returns the initial and final scale factors.
func (b *ScaleBehaviour) Bounds() (scaleStart, scaleEnd float64) {
	return b.scaleStart, b.scaleEnd
}

// Gravity returns the gravity the scaling is anchored at.
func (b *ScaleBehaviour) Gravity() Gravity {
	return b.gravity
}

// Reset rewinds the interpolation to its start.
func (b *ScaleBehaviour) Reset() {
	b.tween.Reset()
}
