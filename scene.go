package troupe

import (
	"time"

	"go.uber.org/zap"
)

// EventSink is the interface for optional downstream event consumers (for
// example the ecs subpackage's bridge). When set on a Scene, every dispatched
// event is forwarded after the actors have seen it.
type EventSink interface {
	// DispatchedEvent is called once per dispatched event. handled reports
	// whether an actor handler consumed the event.
	DispatchedEvent(ev *Event, handled bool)
}

// Scene is the top-level object that owns the actor tree, the id index used
// for picking, the redraw coalescing state and the input routing state.
//
// A Scene is not safe for concurrent use. Build the tree and feed it events
// from a single goroutine; for backends that is the game loop goroutine.
type Scene struct {
	backend Backend
	loop    EventLoop
	logger  *zap.Logger
	debug   bool

	stage  *Group
	index  map[uint32]*Actor // actors attached to the tree, keyed by id
	nextID uint32

	background Color

	// Picking
	pickMode PickMode
	picking  bool // true while painting in pick mode

	// Redraw coalescing
	redrawPending bool
	redrawHandle  DeferredHandle

	// Input routing
	keyFocus      *Actor
	pointerGrab   *Actor
	keyboardGrab  *Actor
	pointerWithin *Actor
	injectQueue   []Event
	sink          EventSink

	start time.Time
}

// stageDelegate paints like a group but opts out of derived sizing: the
// stage's size belongs to the windowing collaborator, so sizing requests are
// stored as given and queries return the stored box unchanged.
type stageDelegate struct {
	groupDelegate
}

func (d stageDelegate) RequestCoords(a *Actor, box ActorBox) ActorBox { return box }

func (d stageDelegate) QueryCoords(a *Actor) ActorBox { return a.box }

// NewScene creates a scene that paints through backend and schedules redraws
// on loop. The stage is created toplevel and reactive with a 640x480 default
// box; it stays unmapped until the backend reports the window on screen via
// [Scene.SetStageMapped].
//
// A nil loop disables deferred redraw scheduling; Paint still works when
// called directly, which is how headless tests drive a scene.
func NewScene(backend Backend, loop EventLoop) *Scene {
	if backend == nil {
		panic("troupe: NewScene requires a backend")
	}
	s := &Scene{
		backend:    backend,
		loop:       loop,
		logger:     globalLogger,
		index:      make(map[uint32]*Actor),
		background: ColorBlack,
		pickMode:   PickReactive,
		start:      time.Now(),
	}
	s.stage = newGroup(s)
	s.stage.Actor.delegate = stageDelegate{groupDelegate{g: s.stage}}
	s.stage.Actor.flags |= flagToplevel | flagReactive
	s.stage.Actor.box = BoxFromPixels(0, 0, DefaultStageWidth, DefaultStageHeight)
	return s
}

// Stage returns the scene's toplevel group. The stage always exists, is never
// part of the id index, and is what picking resolves to when no actor covers
// a position.
func (s *Scene) Stage() *Group { return s.stage }

// NewActor creates an actor with the default behaviour hooks, owned by this
// scene. It starts hidden and unparented, draws nothing of its own until a
// delegate is set, and pick-paints its box when reactive.
func (s *Scene) NewActor() *Actor { return newActor(s) }

// NewGroup creates an empty group owned by this scene. It starts hidden and
// unparented.
func (s *Scene) NewGroup() *Group { return newGroup(s) }

// Backend returns the rendering backend the scene paints through.
func (s *Scene) Backend() Backend { return s.backend }

// SetLogger routes this scene's diagnostics to l. Passing nil silences them.
func (s *Scene) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.logger = l
}

// SetBackground sets the color the scene clears to at the start of every
// paint pass. The default is opaque black.
func (s *Scene) SetBackground(c Color) {
	s.background = c
	if s.stage.Actor.IsVisible() {
		s.QueueRedraw()
	}
}

// Background returns the scene's clear color.
func (s *Scene) Background() Color { return s.background }

// SetPickMode selects which actors respond to hit testing: none, reactive
// actors only (the default), or every mapped actor.
func (s *Scene) SetPickMode(mode PickMode) { s.pickMode = mode }

// PickMode returns the scene's pick mode.
func (s *Scene) PickMode() PickMode { return s.pickMode }

// SetEventSink sets the optional downstream event consumer. Passing nil
// removes it.
func (s *Scene) SetEventSink(sink EventSink) { s.sink = sink }

// SetStageMapped sets or clears the stage's mapped flag. Showing and hiding
// the stage never touches this flag; backends call it when the toplevel
// window appears on or leaves the screen.
func (s *Scene) SetStageMapped(mapped bool) {
	if mapped {
		s.stage.Actor.flags |= flagMapped
		if s.stage.Actor.IsVisible() {
			s.QueueRedraw()
		}
	} else {
		s.stage.Actor.flags &^= flagMapped
	}
}

// ActorByID returns the actor with the given id: the stage itself, or any
// actor currently attached to the tree. Detached actors are not indexed and
// cannot be found this way.
func (s *Scene) ActorByID(id uint32) *Actor {
	if id == s.stage.Actor.id {
		return s.stage.Actor
	}
	return s.index[id]
}

// FindByName returns the first actor in the tree whose name matches,
// searching depth first in stacking order, or nil when no attached actor
// has that name.
func (s *Scene) FindByName(name string) *Actor {
	return findByName(s.stage.Actor, name)
}

func findByName(a *Actor, name string) *Actor {
	if a.name == name {
		return a
	}
	if a.container == nil {
		return nil
	}
	for _, child := range a.container.Children() {
		if found := findByName(child, name); found != nil {
			return found
		}
	}
	return nil
}

// --- Redraw ---

// QueueRedraw schedules a single deferred repaint on the event loop.
// Requests made while one is already pending are coalesced into it, so any
// number of tree changes per loop iteration costs one paint pass.
func (s *Scene) QueueRedraw() {
	if s.redrawPending || s.loop == nil {
		return
	}
	s.redrawPending = true
	s.redrawHandle = s.loop.ScheduleDeferred(PriorityRedraw, func() {
		s.redrawPending = false
		s.Paint()
	})
}

// Paint clears the backend to the background color and paints the stage and
// its mapped descendants. Nothing beyond the clear happens while the stage
// is unmapped.
func (s *Scene) Paint() {
	s.backend.Clear(s.background)
	if s.stage.Actor.IsMapped() {
		s.stage.Actor.Paint()
	}
}

// --- Picking ---

// pickColor encodes an actor id into a draw color using the backend's
// channel bit depths. The id is split across the significant bits of the
// red, green and blue channels so reading a pixel back recovers it exactly.
func (s *Scene) pickColor(id uint32) Color {
	r, g, b := s.backend.PickBits()
	return Color{
		R: uint8(((id >> (g + b)) & (0xff >> (8 - r))) << (8 - r)),
		G: uint8(((id >> b) & (0xff >> (8 - g))) << (8 - g)),
		B: uint8((id & (0xff >> (8 - b))) << (8 - b)),
		A: 0xff,
	}
}

// decodePickColor inverts pickColor.
func (s *Scene) decodePickColor(c Color) uint32 {
	r, g, b := s.backend.PickBits()
	return uint32(c.R>>(8-r))<<(g+b) | uint32(c.G>>(8-g))<<b | uint32(c.B>>(8-b))
}

// ActorAtPos determines which actor covers the window position (x, y) by
// repainting the tree in pick mode, with every pickable actor filled in a
// color encoding its id, and reading the pixel back. White means no actor
// covered the position and the stage is returned. Returns nil when the pick
// mode is PickNone or the backend cannot read pixels back.
func (s *Scene) ActorAtPos(x, y int) *Actor {
	if s.pickMode == PickNone {
		return nil
	}
	surface, hasSurface := s.backend.(PickSurface)
	if hasSurface {
		surface.BeginPick()
	}
	s.picking = true
	s.backend.Clear(ColorWhite)
	if s.stage.Actor.IsMapped() {
		s.stage.Actor.Paint()
	}
	s.picking = false

	c, ok := s.backend.ReadPixel(x, y)
	if hasSurface {
		surface.EndPick()
	} else if s.stage.Actor.IsVisible() {
		s.QueueRedraw()
	}
	if !ok {
		return nil
	}
	if c.R == 0xff && c.G == 0xff && c.B == 0xff {
		return s.stage.Actor
	}
	return s.ActorByID(s.decodePickColor(c))
}

// --- Event dispatch ---

// DispatchEvent runs the two-phase dispatch for ev against target: the
// capture phase walks from the stage down to the target firing
// captured-event handlers, then the bubble phase walks from the target back
// up firing the per-actor event handlers. Either phase stops as soon as a
// handler returns true. Reports whether the event was consumed.
func (s *Scene) DispatchEvent(target *Actor, ev *Event) bool {
	if target == nil {
		reportNilActor("DispatchEvent")
		return false
	}
	if ev == nil {
		return false
	}

	chain := make([]*Actor, 0, 8)
	for a := target; a != nil; a = a.parent {
		chain = append(chain, a)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].EmitEvent(ev, true) {
			return true
		}
	}
	for _, a := range chain {
		if a.EmitEvent(ev, false) {
			return true
		}
	}
	return false
}

// deliver dispatches ev and forwards the outcome to the event sink.
func (s *Scene) deliver(target *Actor, ev *Event) bool {
	handled := s.DispatchEvent(target, ev)
	if s.sink != nil {
		s.sink.DispatchedEvent(ev, handled)
	}
	return handled
}

// deliverDirect emits ev on the one grabbed actor: no capture walk, no
// propagation through the tree.
func (s *Scene) deliverDirect(target *Actor, ev *Event) bool {
	ev.Source = target
	handled := target.EmitEvent(ev, false)
	if s.sink != nil {
		s.sink.DispatchedEvent(ev, handled)
	}
	return handled
}

// dispatchPointer resolves the actor under the event position, synthesizes
// crossing events if that changed, and dispatches ev to it. While a pointer
// grab is active the event goes straight to the grab holder instead.
func (s *Scene) dispatchPointer(ev *Event) bool {
	if g := s.pointerGrab; g != nil && !g.IsDestroyed() {
		return s.deliverDirect(g, ev)
	}
	target := s.ActorAtPos(ev.X, ev.Y)
	if target == nil {
		target = s.stage.Actor
	}
	s.crossingTo(target, ev.X, ev.Y)
	ev.Source = target
	return s.deliver(target, ev)
}

// dispatchKey routes ev to the keyboard grab holder if one is set, then to
// the key focus actor, then to the stage.
func (s *Scene) dispatchKey(ev *Event) bool {
	if g := s.keyboardGrab; g != nil && !g.IsDestroyed() {
		return s.deliverDirect(g, ev)
	}
	target := s.keyFocus
	if target == nil || target.IsDestroyed() {
		target = s.stage.Actor
	}
	ev.Source = target
	return s.deliver(target, ev)
}

// crossingTo synthesizes a leave event on the actor the pointer was in and
// an enter event on the one it is in now. Crossing events are marked
// synthetic and carry the pointer position that triggered them.
func (s *Scene) crossingTo(target *Actor, x, y int) {
	prev := s.pointerWithin
	if prev == target {
		return
	}
	s.pointerWithin = target
	if prev != nil && !prev.IsDestroyed() {
		ev := &Event{Kind: EventLeave, Time: s.now(), X: x, Y: y, Source: prev, Synthetic: true}
		s.deliver(prev, ev)
	}
	if target != nil {
		ev := &Event{Kind: EventEnter, Time: s.now(), X: x, Y: y, Source: target, Synthetic: true}
		s.deliver(target, ev)
	}
}

func (s *Scene) pointerEvent(kind EventKind, x, y int, button MouseButton, dir ScrollDirection, mods KeyModifiers) bool {
	ev := &Event{
		Kind:      kind,
		Time:      s.now(),
		X:         x,
		Y:         y,
		Button:    button,
		Direction: dir,
		Modifiers: mods,
	}
	return s.dispatchPointer(ev)
}

// PointerMove feeds a pointer motion at window position (x, y) into the
// scene. The covered actor receives enter/leave events on crossings followed
// by the motion event itself.
func (s *Scene) PointerMove(x, y int, mods KeyModifiers) bool {
	return s.pointerEvent(EventMotion, x, y, 0, 0, mods)
}

// PointerPress feeds a button press at window position (x, y).
func (s *Scene) PointerPress(x, y int, button MouseButton, mods KeyModifiers) bool {
	return s.pointerEvent(EventButtonPress, x, y, button, 0, mods)
}

// PointerRelease feeds a button release at window position (x, y).
func (s *Scene) PointerRelease(x, y int, button MouseButton, mods KeyModifiers) bool {
	return s.pointerEvent(EventButtonRelease, x, y, button, 0, mods)
}

// PointerScroll feeds a scroll step at window position (x, y).
func (s *Scene) PointerScroll(x, y int, dir ScrollDirection, mods KeyModifiers) bool {
	return s.pointerEvent(EventScroll, x, y, 0, dir, mods)
}

// KeyPress feeds a key press to the key focus actor, or to the stage when no
// focus is set.
func (s *Scene) KeyPress(keycode uint16, mods KeyModifiers) bool {
	return s.dispatchKey(&Event{Kind: EventKeyPress, Time: s.now(), Keycode: keycode, Modifiers: mods})
}

// KeyRelease feeds a key release to the key focus actor, or to the stage
// when no focus is set.
func (s *Scene) KeyRelease(keycode uint16, mods KeyModifiers) bool {
	return s.dispatchKey(&Event{Kind: EventKeyRelease, Time: s.now(), Keycode: keycode, Modifiers: mods})
}

// StageEvent delivers a windowing-system event (delete, destroy-notify or
// client-message) to the stage.
func (s *Scene) StageEvent(kind EventKind) bool {
	ev := &Event{Kind: kind, Time: s.now(), Source: s.stage.Actor}
	return s.deliver(s.stage.Actor, ev)
}

// SetKeyFocus directs key events to a. Passing nil returns key events to the
// stage.
func (s *Scene) SetKeyFocus(a *Actor) { s.keyFocus = a }

// KeyFocus returns the actor key events are directed to, or nil when the
// stage holds the focus.
func (s *Scene) KeyFocus() *Actor { return s.keyFocus }

// --- Grabs ---

// GrabPointer routes every pointer event straight to a until the grab is
// released: no pick pass, no crossing synthesis, no capture phase and no
// propagation past a. Passing nil releases the grab, as does destroying the
// grab holder.
func (s *Scene) GrabPointer(a *Actor) { s.pointerGrab = a }

// UngrabPointer releases the pointer grab.
func (s *Scene) UngrabPointer() { s.pointerGrab = nil }

// PointerGrab returns the actor holding the pointer grab, or nil when
// pointer events are routed normally.
func (s *Scene) PointerGrab() *Actor { return s.pointerGrab }

// GrabKeyboard routes every key event straight to a, overriding the key
// focus until the grab is released. Passing nil releases the grab.
func (s *Scene) GrabKeyboard(a *Actor) { s.keyboardGrab = a }

// UngrabKeyboard releases the keyboard grab.
func (s *Scene) UngrabKeyboard() { s.keyboardGrab = nil }

// KeyboardGrab returns the actor holding the keyboard grab, or nil when key
// events follow the key focus.
func (s *Scene) KeyboardGrab() *Actor { return s.keyboardGrab }

// Pump dispatches every queued injected event in order and reports how many
// were delivered. Events injected by handlers during the pump are processed
// in the same call.
func (s *Scene) Pump() int {
	n := 0
	for len(s.injectQueue) > 0 {
		ev := s.injectQueue[0]
		s.injectQueue = s.injectQueue[1:]
		s.processInjected(&ev)
		n++
	}
	return n
}

func (s *Scene) processInjected(ev *Event) {
	switch ev.Kind {
	case EventKeyPress, EventKeyRelease:
		s.dispatchKey(ev)
	case EventMotion, EventButtonPress, EventButtonRelease, EventScroll:
		s.dispatchPointer(ev)
	default:
		ev.Source = s.stage.Actor
		s.deliver(s.stage.Actor, ev)
	}
}

// now returns the scene-relative event timestamp in milliseconds.
func (s *Scene) now() uint32 {
	return uint32(time.Since(s.start).Milliseconds())
}

// SetDebugMode enables or disables debug mode. When enabled, destroyed-actor
// access panics with a descriptive message and tree depth warnings are
// printed to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that actor
// operations on detached or scene-less paths can check it cheaply. Only
// valid with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
