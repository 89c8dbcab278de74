package troupe

// EventKind identifies the kind of an Event.
type EventKind uint8

const (
	EventNothing       EventKind = iota // empty event; never dispatched
	EventKeyPress                       // key pressed
	EventKeyRelease                     // key released
	EventMotion                         // pointer moved
	EventEnter                          // pointer entered an actor
	EventLeave                          // pointer left an actor
	EventButtonPress                    // pointer button pressed
	EventButtonRelease                  // pointer button released
	EventScroll                         // scroll wheel or gesture
	EventDelete                         // window close request
	EventDestroyNotify                  // window destroyed
	EventClientMessage                  // windowing-system message
)

func (k EventKind) String() string {
	switch k {
	case EventNothing:
		return "nothing"
	case EventKeyPress:
		return "key-press"
	case EventKeyRelease:
		return "key-release"
	case EventMotion:
		return "motion"
	case EventEnter:
		return "enter"
	case EventLeave:
		return "leave"
	case EventButtonPress:
		return "button-press"
	case EventButtonRelease:
		return "button-release"
	case EventScroll:
		return "scroll"
	case EventDelete:
		return "delete"
	case EventDestroyNotify:
		return "destroy-notify"
	case EventClientMessage:
		return "client-message"
	default:
		return "unknown"
	}
}

// Event is a single input or windowing occurrence routed through the tree.
// X and Y are window coordinates for pointer kinds.
type Event struct {
	Kind      EventKind
	Time      uint32 // milliseconds since the scene started
	X, Y      int
	Button    MouseButton
	Direction ScrollDirection
	Keycode   uint16
	Modifiers KeyModifiers
	Source    *Actor // dispatch target, set by the scene
	Synthetic bool   // injected or synthesized (enter/leave) event
}

// Position returns the event's window position as a Knot. Meaningful for
// pointer kinds; key and stage events report (0, 0).
func (ev *Event) Position() Knot {
	return Knot{X: ev.X, Y: ev.Y}
}

// Signal names one of an actor's event-handler lists.
type Signal uint8

const (
	SignalCapturedEvent Signal = iota // capture-phase delivery on the way down
	SignalEvent                       // generic bubble-phase delivery
	SignalButtonPress
	SignalButtonRelease
	SignalScroll
	SignalKeyPress
	SignalKeyRelease
	SignalMotion
	SignalEnter
	SignalLeave
	signalCount
)

// signalForKind maps an event kind to its kind-specific signal. Kinds with
// no specific signal (delete, destroy-notify, client-message) report ok
// false and only ever receive the generic SignalEvent delivery.
func signalForKind(k EventKind) (Signal, bool) {
	switch k {
	case EventButtonPress:
		return SignalButtonPress, true
	case EventButtonRelease:
		return SignalButtonRelease, true
	case EventScroll:
		return SignalScroll, true
	case EventKeyPress:
		return SignalKeyPress, true
	case EventKeyRelease:
		return SignalKeyRelease, true
	case EventMotion:
		return SignalMotion, true
	case EventEnter:
		return SignalEnter, true
	case EventLeave:
		return SignalLeave, true
	default:
		return 0, false
	}
}

// EventHandler handles an event delivered to an actor. Returning true stops
// any further propagation of the event.
type EventHandler func(a *Actor, ev *Event) bool

// Handler kinds, used by HandlerID.Remove to find the right list.
const (
	hkEvent uint8 = iota
	hkShow
	hkHide
	hkDestroy
	hkParentSet
	hkNotify
)

type eventHandlerEntry struct {
	id uint64
	fn EventHandler
}

type actorHandlerEntry struct {
	id uint64
	fn func(*Actor)
}

type parentSetEntry struct {
	id uint64
	fn func(a, oldParent *Actor)
}

type notifyEntry struct {
	id uint64
	fn func(a *Actor, property string)
}

// signalTable holds every handler registered on one actor, each list in
// registration order.
type signalTable struct {
	events    [signalCount][]eventHandlerEntry
	show      []actorHandlerEntry
	hide      []actorHandlerEntry
	destroy   []actorHandlerEntry
	parentSet []parentSetEntry
	notify    []notifyEntry
	nextID    uint64
}

// HandlerID allows removing a registered callback.
type HandlerID struct {
	actor  *Actor
	kind   uint8
	signal Signal
	id     uint64
}

// Remove unregisters this callback so it no longer fires.
func (h HandlerID) Remove() {
	if h.actor == nil {
		return
	}
	t := &h.actor.signals
	switch h.kind {
	case hkEvent:
		t.events[h.signal] = removeEventHandler(t.events[h.signal], h.id)
	case hkShow:
		t.show = removeActorHandler(t.show, h.id)
	case hkHide:
		t.hide = removeActorHandler(t.hide, h.id)
	case hkDestroy:
		t.destroy = removeActorHandler(t.destroy, h.id)
	case hkParentSet:
		for i := range t.parentSet {
			if t.parentSet[i].id == h.id {
				t.parentSet = append(t.parentSet[:i], t.parentSet[i+1:]...)
				break
			}
		}
	case hkNotify:
		for i := range t.notify {
			if t.notify[i].id == h.id {
				t.notify = append(t.notify[:i], t.notify[i+1:]...)
				break
			}
		}
	}
}

func removeEventHandler(s []eventHandlerEntry, id uint64) []eventHandlerEntry {
	for i := range s {
		if s[i].id == id {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

func removeActorHandler(s []actorHandlerEntry, id uint64) []actorHandlerEntry {
	for i := range s {
		if s[i].id == id {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// --- Registration ---

// Connect registers an event handler on the given signal. Handlers run in
// registration order; the first one returning true stops the emission.
func (a *Actor) Connect(sig Signal, fn EventHandler) HandlerID {
	a.signals.nextID++
	id := a.signals.nextID
	a.signals.events[sig] = append(a.signals.events[sig], eventHandlerEntry{id, fn})
	return HandlerID{actor: a, kind: hkEvent, signal: sig, id: id}
}

// OnShow registers a callback fired after the actor is shown.
func (a *Actor) OnShow(fn func(*Actor)) HandlerID {
	a.signals.nextID++
	id := a.signals.nextID
	a.signals.show = append(a.signals.show, actorHandlerEntry{id, fn})
	return HandlerID{actor: a, kind: hkShow, id: id}
}

// OnHide registers a callback fired after the actor is hidden.
func (a *Actor) OnHide(fn func(*Actor)) HandlerID {
	a.signals.nextID++
	id := a.signals.nextID
	a.signals.hide = append(a.signals.hide, actorHandlerEntry{id, fn})
	return HandlerID{actor: a, kind: hkHide, id: id}
}

// OnDestroy registers a callback fired once when the actor is destroyed.
func (a *Actor) OnDestroy(fn func(*Actor)) HandlerID {
	a.signals.nextID++
	id := a.signals.nextID
	a.signals.destroy = append(a.signals.destroy, actorHandlerEntry{id, fn})
	return HandlerID{actor: a, kind: hkDestroy, id: id}
}

// OnParentSet registers a callback fired when the actor's parent changes,
// with the previous parent (nil when the actor was just attached).
func (a *Actor) OnParentSet(fn func(a, oldParent *Actor)) HandlerID {
	a.signals.nextID++
	id := a.signals.nextID
	a.signals.parentSet = append(a.signals.parentSet, parentSetEntry{id, fn})
	return HandlerID{actor: a, kind: hkParentSet, id: id}
}

// OnNotify registers a callback fired when a named property changes
// ("x", "y", "width", "height", "depth", "visible", ...). Notifications
// batched by FreezeNotify fire once per property on the matching Thaw.
func (a *Actor) OnNotify(fn func(a *Actor, property string)) HandlerID {
	a.signals.nextID++
	id := a.signals.nextID
	a.signals.notify = append(a.signals.notify, notifyEntry{id, fn})
	return HandlerID{actor: a, kind: hkNotify, id: id}
}

// --- Emission ---

// emitEventSignal runs one handler list with the boolean accumulator:
// handlers run in registration order until one returns true.
func (a *Actor) emitEventSignal(sig Signal, ev *Event) bool {
	for _, e := range a.signals.events[sig] {
		if e.fn(a, ev) {
			return true
		}
	}
	return false
}

// EmitEvent delivers one event to this single actor. During the capture
// phase only the captured-event signal fires. During the bubble phase the
// generic event signal fires first, then, if unhandled, the kind-specific
// signal for kinds that have one. Returns true when a handler consumed the
// event.
func (a *Actor) EmitEvent(ev *Event, capturePhase bool) bool {
	if a == nil || ev == nil {
		return false
	}
	if capturePhase {
		return a.emitEventSignal(SignalCapturedEvent, ev)
	}
	if a.emitEventSignal(SignalEvent, ev) {
		return true
	}
	if sig, ok := signalForKind(ev.Kind); ok {
		return a.emitEventSignal(sig, ev)
	}
	return false
}

func (a *Actor) emitShow() {
	for _, e := range a.signals.show {
		e.fn(a)
	}
}

func (a *Actor) emitHide() {
	for _, e := range a.signals.hide {
		e.fn(a)
	}
}

func (a *Actor) emitDestroy() {
	for _, e := range a.signals.destroy {
		e.fn(a)
	}
}

func (a *Actor) emitParentSet(oldParent *Actor) {
	for _, e := range a.signals.parentSet {
		e.fn(a, oldParent)
	}
}

// --- Property notification ---

// FreezeNotify defers property notifications until the matching ThawNotify.
// Deferred notifications are deduplicated, so observers see one
// notification per changed property describing the final state.
func (a *Actor) FreezeNotify() {
	a.freezeCount++
}

// ThawNotify ends a FreezeNotify block, firing deferred notifications in
// the order their properties first changed.
func (a *Actor) ThawNotify() {
	if a.freezeCount == 0 {
		return
	}
	a.freezeCount--
	if a.freezeCount > 0 {
		return
	}
	queued := a.pendingNotify
	a.pendingNotify = nil
	for _, prop := range queued {
		a.fireNotify(prop)
	}
}

// notify records or fires a property-change notification.
func (a *Actor) notify(property string) {
	if a.freezeCount > 0 {
		for _, p := range a.pendingNotify {
			if p == property {
				return
			}
		}
		a.pendingNotify = append(a.pendingNotify, property)
		return
	}
	a.fireNotify(property)
}

func (a *Actor) fireNotify(property string) {
	for _, e := range a.signals.notify {
		e.fn(a, property)
	}
}
