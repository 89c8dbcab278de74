// Package ecs provides ECS adapters for troupe.
package ecs

import (
	"github.com/phanxgames/troupe"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DispatchedEvent is the payload published for every scene event after
// dispatch finishes. Handled reports whether any handler claimed it.
type DispatchedEvent struct {
	Event   troupe.Event
	Handled bool
}

// DispatchedEventType is the Donburi event type for troupe scene events.
// Subscribe to this in your ECS systems to observe pointer, key, crossing,
// and stage events alongside the scene's own handlers.
var DispatchedEventType = events.NewEventType[DispatchedEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Scene
// events are published to DispatchedEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) troupe.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) DispatchedEvent(ev *troupe.Event, handled bool) {
	DispatchedEventType.Publish(s.world, DispatchedEvent{Event: *ev, Handled: handled})
}
