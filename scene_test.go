package troupe

import "testing"

// newTestScene builds a headless scene on a 640x480 recorder backend with the
// stage shown, mapped and painted once, which is the state a windowed backend
// leaves a scene in after its first frame.
func newTestScene() (*Scene, *RecorderBackend, *ManualLoop) {
	backend := NewRecorderBackend(640, 480)
	loop := NewManualLoop()
	s := NewScene(backend, loop)
	s.SetStageMapped(true)
	s.Stage().Show()
	loop.Flush()
	return s, backend, loop
}

func assertStrings(t *testing.T, name string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s = %v, want %v", name, got, want)
		return
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

// fillDelegate paints the actor's box in a flat color, the smallest delegate
// that makes an actor show up in the recorder.
type fillDelegate struct {
	BaseDelegate
	color Color
}

func (d fillDelegate) Paint(a *Actor) {
	a.Scene().Backend().DrawFilledRect(BoxFromPixels(0, 0, a.Width(), a.Height()), d.color)
}

// addBox attaches a named, shown, reactive box to the stage.
func addBox(s *Scene, name string, x, y, w, h int) *Actor {
	a := s.NewActor()
	a.SetName(name)
	a.SetDelegate(fillDelegate{color: Color{200, 0, 0, 255}})
	a.SetPosition(x, y)
	a.SetSize(w, h)
	a.SetReactive(true)
	s.Stage().Add(a)
	a.Show()
	return a
}

// --- Construction ---

func TestNewSceneStageDefaults(t *testing.T) {
	s := NewScene(NewRecorderBackend(640, 480), nil)
	stage := s.Stage().Actor
	if !stage.IsToplevel() {
		t.Error("stage should be toplevel")
	}
	if !stage.IsReactive() {
		t.Error("stage should be reactive")
	}
	if stage.IsMapped() {
		t.Error("stage should start unmapped")
	}
	if w, h := stage.Size(); w != DefaultStageWidth || h != DefaultStageHeight {
		t.Errorf("stage size = (%d, %d), want (%d, %d)", w, h, DefaultStageWidth, DefaultStageHeight)
	}
	if s.Background() != ColorBlack {
		t.Errorf("Background = %v, want black", s.Background())
	}
	if s.PickMode() != PickReactive {
		t.Errorf("PickMode = %v, want PickReactive", s.PickMode())
	}
}

func TestNewSceneRequiresBackend(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewScene(nil, nil) should panic")
		}
	}()
	NewScene(nil, nil)
}

func TestStageSizingIsStoredVerbatim(t *testing.T) {
	s, _, _ := newTestScene()
	// Unlike a group, the stage ignores child extents in both directions.
	addBox(s, "big", 0, 0, 2000, 2000)
	s.Stage().SetSize(800, 600)
	if w, h := s.Stage().Size(); w != 800 || h != 600 {
		t.Errorf("stage size = (%d, %d), want (800, 600)", w, h)
	}
}

func TestSetDebugMode(t *testing.T) {
	s, _, _ := newTestScene()
	s.SetDebugMode(true)
	if !s.debug || !globalDebug {
		t.Error("debug mode should be on")
	}
	s.SetDebugMode(false)
	if s.debug || globalDebug {
		t.Error("debug mode should be off")
	}
}

// --- Lookup ---

func TestActorByID(t *testing.T) {
	s, _, _ := newTestScene()
	stage := s.Stage().Actor
	if s.ActorByID(stage.ID()) != stage {
		t.Error("the stage should be findable by id")
	}

	attached := addBox(s, "attached", 0, 0, 10, 10)
	if s.ActorByID(attached.ID()) != attached {
		t.Error("attached actor should be findable by id")
	}

	loose := s.NewActor()
	if s.ActorByID(loose.ID()) != nil {
		t.Error("unattached actor must not be findable by id")
	}

	attached.Unparent()
	if s.ActorByID(attached.ID()) != nil {
		t.Error("detached actor must leave the id index")
	}
}

func TestFindByName(t *testing.T) {
	s, _, _ := newTestScene()
	g := s.NewGroup()
	g.SetName("ui")
	s.Stage().Add(g.Actor)
	button := s.NewActor()
	button.SetName("button")
	g.Add(button)

	if got := s.FindByName("ui"); got != g.Actor {
		t.Errorf("FindByName(ui) = %v, want the group", got)
	}
	if got := s.FindByName("button"); got != button {
		t.Errorf("FindByName(button) = %v, want the nested actor", got)
	}
	if got := s.FindByName("missing"); got != nil {
		t.Errorf("FindByName(missing) = %v, want nil", got)
	}
}

func TestFindByNameStackingOrder(t *testing.T) {
	s, _, _ := newTestScene()
	first := addBox(s, "dup", 0, 0, 10, 10)
	addBox(s, "dup", 20, 0, 10, 10)
	if got := s.FindByName("dup"); got != first {
		t.Error("FindByName should return the first match in stacking order")
	}
}

// --- Redraw coalescing ---

func TestQueueRedrawCoalesces(t *testing.T) {
	s, _, loop := newTestScene()
	s.QueueRedraw()
	s.QueueRedraw()
	s.QueueRedraw()
	if loop.Pending() != 1 {
		t.Errorf("Pending = %d, want 1 coalesced redraw", loop.Pending())
	}
	if ran := loop.Flush(); ran != 1 {
		t.Errorf("Flush ran %d callbacks, want 1", ran)
	}
	// The pending flag resets once the deferred paint runs.
	s.QueueRedraw()
	if loop.Pending() != 1 {
		t.Errorf("Pending after flush = %d, want 1", loop.Pending())
	}
}

func TestTreeChangesQueueOneRedraw(t *testing.T) {
	s, _, loop := newTestScene()
	a := addBox(s, "box", 10, 10, 50, 50)
	loop.Flush()

	a.SetPosition(20, 20)
	a.SetSize(60, 60)
	a.SetOpacity(100)
	a.Hide()
	if loop.Pending() != 1 {
		t.Errorf("Pending = %d, want 1 for any number of changes", loop.Pending())
	}
}

// --- Painting ---

func TestPaintRequiresMappedStage(t *testing.T) {
	backend := NewRecorderBackend(640, 480)
	s := NewScene(backend, nil)
	s.Stage().Show()
	addBox(s, "box", 10, 10, 50, 50)

	s.Paint()
	if len(backend.Rects) != 0 {
		t.Errorf("unmapped stage painted %d fills", len(backend.Rects))
	}

	s.SetStageMapped(true)
	s.Paint()
	if len(backend.Rects) != 1 {
		t.Errorf("mapped stage painted %d fills, want 1", len(backend.Rects))
	}
}

func TestPaintSkipsHiddenChildren(t *testing.T) {
	s, backend, _ := newTestScene()
	a := addBox(s, "a", 0, 0, 10, 10)
	addBox(s, "b", 20, 0, 10, 10)
	a.Hide()

	s.Paint()
	if len(backend.Rects) != 1 {
		t.Errorf("painted %d fills, want 1 (hidden child skipped)", len(backend.Rects))
	}
}

func TestPaintLeavesMatrixStackBalanced(t *testing.T) {
	s, backend, _ := newTestScene()
	g := s.NewGroup()
	s.Stage().Add(g.Actor)
	g.Actor.Show()
	inner := s.NewActor()
	inner.SetDelegate(fillDelegate{color: ColorWhite})
	g.Add(inner)
	inner.Show()

	s.Paint()
	if got := len(backend.stack); got != 1 {
		t.Errorf("matrix stack depth after paint = %d, want 1", got)
	}
}

func TestPaintAppliesClip(t *testing.T) {
	s, backend, _ := newTestScene()
	a := addBox(s, "clipped", 10, 20, 30, 40)
	a.SetClip(0, 0, 10, 10)

	s.Paint()
	if len(backend.Rects) != 1 {
		t.Fatalf("painted %d fills, want 1", len(backend.Rects))
	}
	rec := backend.Rects[0]
	if !rec.HasClip {
		t.Fatal("fill should carry the active clip")
	}
	// The clip is reduced to window-space bounds: the actor sits at (10, 20),
	// so the clipped region hugs [10, 20)x[20, 30) give or take a pixel of
	// conservative widening.
	if !rec.Clip.Contains(15, 25) {
		t.Errorf("clip %+v should contain (15, 25)", rec.Clip)
	}
	if rec.Clip.Contains(35, 55) {
		t.Errorf("clip %+v should not reach (35, 55)", rec.Clip)
	}

	// Pixels inside the clip resolve to the fill, pixels outside it in the
	// same box fall through to the background.
	if c, _ := backend.ReadPixel(15, 25); c != (Color{200, 0, 0, 255}) {
		t.Errorf("ReadPixel inside clip = %v, want the fill color", c)
	}
	if c, _ := backend.ReadPixel(35, 55); c != s.Background() {
		t.Errorf("ReadPixel outside clip = %v, want the background", c)
	}
}

func TestSetBackground(t *testing.T) {
	s, backend, loop := newTestScene()
	bg := Color{10, 20, 30, 255}
	s.SetBackground(bg)
	if s.Background() != bg {
		t.Errorf("Background = %v, want %v", s.Background(), bg)
	}
	if loop.Pending() != 1 {
		t.Error("background change on a visible stage should queue a redraw")
	}
	loop.Flush()
	if c, _ := backend.ReadPixel(5, 5); c != bg {
		t.Errorf("cleared pixel = %v, want %v", c, bg)
	}
}

// --- Picking ---

func TestPickColorRoundTrip(t *testing.T) {
	s, backend, _ := newTestScene()
	tests := []struct {
		name    string
		r, g, b int
		ids     []uint32
	}{
		{"8 bits per channel", 8, 8, 8, []uint32{1, 2, 255, 256, 65536, 1<<24 - 1}},
		{"565 framebuffer", 5, 6, 5, []uint32{1, 2, 255, 256, 1<<16 - 1}},
		{"4 bits per channel", 4, 4, 4, []uint32{1, 2, 255, 1<<12 - 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend.SetPickBits(tt.r, tt.g, tt.b)
			for _, id := range tt.ids {
				c := s.pickColor(id)
				if got := s.decodePickColor(c); got != id {
					t.Errorf("decode(encode(%d)) = %d (color %v)", id, got, c)
				}
			}
		})
	}
}

func TestPickColorLayout(t *testing.T) {
	s, backend, _ := newTestScene()
	backend.SetPickBits(8, 8, 8)
	c := s.pickColor(0x030201)
	want := Color{R: 3, G: 2, B: 1, A: 255}
	if c != want {
		t.Errorf("pickColor = %v, want %v", c, want)
	}
}

func TestActorAtPos(t *testing.T) {
	s, _, loop := newTestScene()
	box := addBox(s, "box", 100, 100, 50, 50)
	loop.Flush()

	if got := s.ActorAtPos(120, 120); got != box {
		t.Errorf("ActorAtPos over the box = %v, want the box", got)
	}
	if got := s.ActorAtPos(10, 10); got != s.Stage().Actor {
		t.Errorf("ActorAtPos over empty space = %v, want the stage", got)
	}
	if got := s.ActorAtPos(-5, 10); got != nil {
		t.Errorf("ActorAtPos outside the viewport = %v, want nil", got)
	}
}

func TestActorAtPosHonorsStacking(t *testing.T) {
	s, _, loop := newTestScene()
	under := addBox(s, "under", 100, 100, 50, 50)
	over := addBox(s, "over", 120, 120, 50, 50)
	loop.Flush()

	if got := s.ActorAtPos(130, 130); got != over {
		t.Errorf("ActorAtPos in the overlap = %q, want the top actor", got.Name())
	}
	if got := s.ActorAtPos(105, 105); got != under {
		t.Errorf("ActorAtPos outside the overlap = %q, want the lower actor", got.Name())
	}
}

func TestActorAtPosRespectsPickMode(t *testing.T) {
	s, _, loop := newTestScene()
	quiet := addBox(s, "quiet", 100, 100, 50, 50)
	quiet.SetReactive(false)
	loop.Flush()

	if got := s.ActorAtPos(120, 120); got != s.Stage().Actor {
		t.Error("non-reactive actor should be transparent to picks")
	}
	s.SetPickMode(PickAll)
	if got := s.ActorAtPos(120, 120); got != quiet {
		t.Error("pick-all mode should hit non-reactive actors")
	}
	s.SetPickMode(PickNone)
	if got := s.ActorAtPos(120, 120); got != nil {
		t.Errorf("ActorAtPos with picking disabled = %v, want nil", got)
	}
}

func TestActorAtPosIgnoresHiddenActors(t *testing.T) {
	s, _, loop := newTestScene()
	box := addBox(s, "box", 100, 100, 50, 50)
	box.Hide()
	loop.Flush()

	if got := s.ActorAtPos(120, 120); got != s.Stage().Actor {
		t.Error("hidden actor should be transparent to picks")
	}
}

func TestPickPreservesVisibleFrame(t *testing.T) {
	s, backend, loop := newTestScene()
	addBox(s, "box", 100, 100, 50, 50)
	loop.Flush()

	before := len(backend.Rects)
	s.ActorAtPos(120, 120)
	if len(backend.Rects) != before {
		t.Errorf("pick pass altered the visible frame: %d fills, want %d", len(backend.Rects), before)
	}
	if c, _ := backend.ReadPixel(120, 120); c != (Color{200, 0, 0, 255}) {
		t.Errorf("visible pixel after pick = %v, want the fill color", c)
	}
}

// --- Event dispatch ---

func TestDispatchEventTwoPhases(t *testing.T) {
	s, _, _ := newTestScene()
	g := s.NewGroup()
	g.SetName("g")
	s.Stage().Add(g.Actor)
	leaf := s.NewActor()
	leaf.SetName("leaf")
	g.Add(leaf)

	var events []string
	record := func(name string, phase string) EventHandler {
		return func(*Actor, *Event) bool {
			events = append(events, name+"-"+phase)
			return false
		}
	}
	for _, a := range []*Actor{s.Stage().Actor, g.Actor, leaf} {
		name := a.Name()
		if name == "" {
			name = "stage"
		}
		a.Connect(SignalCapturedEvent, record(name, "capture"))
		a.Connect(SignalEvent, record(name, "bubble"))
	}

	handled := s.DispatchEvent(leaf, &Event{Kind: EventButtonPress})
	if handled {
		t.Error("no handler returned true; event should be unhandled")
	}
	assertStrings(t, "events", events, []string{
		"stage-capture", "g-capture", "leaf-capture",
		"leaf-bubble", "g-bubble", "stage-bubble",
	})
}

func TestDispatchEventCaptureShortCircuits(t *testing.T) {
	s, _, _ := newTestScene()
	g := s.NewGroup()
	s.Stage().Add(g.Actor)
	leaf := s.NewActor()
	g.Add(leaf)

	var events []string
	g.Actor.Connect(SignalCapturedEvent, func(*Actor, *Event) bool {
		events = append(events, "g-capture")
		return true
	})
	leaf.Connect(SignalCapturedEvent, func(*Actor, *Event) bool {
		events = append(events, "leaf-capture")
		return false
	})
	leaf.Connect(SignalEvent, func(*Actor, *Event) bool {
		events = append(events, "leaf-bubble")
		return false
	})

	if !s.DispatchEvent(leaf, &Event{Kind: EventButtonPress}) {
		t.Error("capture handler returned true; dispatch should report handled")
	}
	assertStrings(t, "events", events, []string{"g-capture"})
}

func TestDispatchEventBubbleStopsAtConsumer(t *testing.T) {
	s, _, _ := newTestScene()
	g := s.NewGroup()
	s.Stage().Add(g.Actor)
	leaf := s.NewActor()
	g.Add(leaf)

	var events []string
	leaf.Connect(SignalButtonPress, func(*Actor, *Event) bool {
		events = append(events, "leaf")
		return true
	})
	g.Actor.Connect(SignalButtonPress, func(*Actor, *Event) bool {
		events = append(events, "g")
		return false
	})

	if !s.DispatchEvent(leaf, &Event{Kind: EventButtonPress}) {
		t.Error("dispatch should report handled")
	}
	assertStrings(t, "events", events, []string{"leaf"})
}

func TestGenericSignalRunsBeforeSpecific(t *testing.T) {
	s, _, _ := newTestScene()
	leaf := s.NewActor()
	s.Stage().Add(leaf)

	var events []string
	leaf.Connect(SignalEvent, func(*Actor, *Event) bool {
		events = append(events, "generic")
		return false
	})
	leaf.Connect(SignalButtonPress, func(*Actor, *Event) bool {
		events = append(events, "press")
		return true
	})

	s.DispatchEvent(leaf, &Event{Kind: EventButtonPress})
	assertStrings(t, "events", events, []string{"generic", "press"})
}

func TestWindowingEventsHaveNoSpecificSignal(t *testing.T) {
	s, _, _ := newTestScene()
	var events []string
	stage := s.Stage().Actor
	stage.Connect(SignalEvent, func(_ *Actor, ev *Event) bool {
		events = append(events, "event:"+ev.Kind.String())
		return false
	})
	stage.Connect(SignalButtonPress, func(*Actor, *Event) bool {
		events = append(events, "press")
		return false
	})

	s.StageEvent(EventDelete)
	s.StageEvent(EventClientMessage)
	assertStrings(t, "events", events, []string{"event:delete", "event:client-message"})
}

// --- Pointer routing ---

func TestPointerPressRoutesToPickedActor(t *testing.T) {
	s, _, loop := newTestScene()
	box := addBox(s, "box", 100, 100, 50, 50)
	loop.Flush()

	var got *Actor
	box.Connect(SignalButtonPress, func(a *Actor, ev *Event) bool {
		got = ev.Source
		return true
	})
	if !s.PointerPress(120, 120, MouseButtonLeft, 0) {
		t.Error("press over the box should be handled")
	}
	if got != box {
		t.Errorf("event source = %v, want the box", got)
	}
}

func TestPointerFallsBackToStage(t *testing.T) {
	s, _, _ := newTestScene()
	var kinds []string
	s.Stage().Actor.Connect(SignalButtonPress, func(_ *Actor, ev *Event) bool {
		kinds = append(kinds, ev.Kind.String())
		return true
	})
	s.PointerPress(10, 10, MouseButtonLeft, 0)
	assertStrings(t, "kinds", kinds, []string{"button-press"})
}

func TestPointerCrossingSynthesizesEnterAndLeave(t *testing.T) {
	s, _, loop := newTestScene()
	a := addBox(s, "a", 100, 100, 50, 50)
	b := addBox(s, "b", 200, 100, 50, 50)
	loop.Flush()

	// Handlers consume their events so the crossing sequence is observed at
	// the target only, without the bubble to the stage repeating it.
	var events []string
	watch := func(target *Actor, label string) {
		target.Connect(SignalEnter, func(_ *Actor, ev *Event) bool {
			if !ev.Synthetic {
				t.Error("crossing events must be synthetic")
			}
			events = append(events, "enter-"+label)
			return true
		})
		target.Connect(SignalLeave, func(*Actor, *Event) bool {
			events = append(events, "leave-"+label)
			return true
		})
		target.Connect(SignalMotion, func(*Actor, *Event) bool {
			events = append(events, "motion-"+label)
			return true
		})
	}
	watch(a, "a")
	watch(b, "b")
	watch(s.Stage().Actor, "stage")

	s.PointerMove(120, 120, 0) // into a
	s.PointerMove(130, 130, 0) // still in a, no crossing
	s.PointerMove(220, 120, 0) // a -> b
	s.PointerMove(10, 10, 0)   // b -> empty stage

	assertStrings(t, "events", events, []string{
		"enter-a", "motion-a",
		"motion-a",
		"leave-a", "enter-b", "motion-b",
		"leave-b", "enter-stage", "motion-stage",
	})
}

// --- Key routing ---

func TestKeyFocusRouting(t *testing.T) {
	s, _, _ := newTestScene()
	box := addBox(s, "box", 0, 0, 10, 10)

	var targets []string
	handler := func(label string) EventHandler {
		return func(_ *Actor, ev *Event) bool {
			targets = append(targets, label)
			return true
		}
	}
	s.Stage().Actor.Connect(SignalKeyPress, handler("stage"))
	box.Connect(SignalKeyPress, handler("box"))

	s.KeyPress(32, 0) // no focus: stage
	s.SetKeyFocus(box)
	if s.KeyFocus() != box {
		t.Error("KeyFocus should return the focused actor")
	}
	s.KeyPress(32, 0) // focused: box
	box.Destroy()
	s.KeyPress(32, 0) // destroyed focus: stage again

	assertStrings(t, "targets", targets, []string{"stage", "box", "stage"})
}

func TestSetKeyFocusNilReturnsToStage(t *testing.T) {
	s, _, _ := newTestScene()
	box := addBox(s, "box", 0, 0, 10, 10)
	s.SetKeyFocus(box)
	s.SetKeyFocus(nil)
	if s.KeyFocus() != nil {
		t.Error("KeyFocus should be nil after reset")
	}

	var hits int
	s.Stage().Actor.Connect(SignalKeyPress, func(*Actor, *Event) bool {
		hits++
		return true
	})
	s.KeyRelease(32, 0)
	s.KeyPress(32, 0)
	if hits != 1 {
		t.Errorf("stage key-press fired %d times, want 1", hits)
	}
}

// --- Grabs ---

func TestGrabPointerBypassesPicking(t *testing.T) {
	s, _, _ := newTestScene()
	a := addBox(s, "a", 0, 0, 40, 40)
	b := addBox(s, "b", 100, 0, 40, 40)

	var targets []string
	handler := func(label string) EventHandler {
		return func(*Actor, *Event) bool {
			targets = append(targets, label)
			return true
		}
	}
	a.Connect(SignalButtonPress, handler("a"))
	b.Connect(SignalButtonPress, handler("b"))
	s.Stage().Actor.Connect(SignalCapturedEvent, func(*Actor, *Event) bool {
		targets = append(targets, "capture")
		return false
	})

	s.GrabPointer(b)
	if s.PointerGrab() != b {
		t.Error("PointerGrab should return the grab holder")
	}
	// Press over a: the grab holder gets it, with no capture phase and no
	// crossing synthesis.
	s.PointerPress(10, 10, MouseButtonLeft, 0)

	assertStrings(t, "targets", targets, []string{"b"})
}

func TestGrabPointerSuppressesCrossings(t *testing.T) {
	s, _, _ := newTestScene()
	a := addBox(s, "a", 0, 0, 40, 40)
	holder := addBox(s, "holder", 100, 0, 40, 40)

	var crossings int
	a.Connect(SignalEnter, func(*Actor, *Event) bool { crossings++; return false })
	a.Connect(SignalLeave, func(*Actor, *Event) bool { crossings++; return false })

	s.GrabPointer(holder)
	s.PointerMove(10, 10, 0)
	s.PointerMove(200, 200, 0)
	if crossings != 0 {
		t.Errorf("crossings during grab = %d, want 0", crossings)
	}

	s.UngrabPointer()
	s.PointerMove(10, 10, 0)
	if crossings != 1 {
		t.Errorf("crossings after ungrab = %d, want 1", crossings)
	}
}

func TestGrabPointerNilReleases(t *testing.T) {
	s, _, _ := newTestScene()
	a := addBox(s, "a", 0, 0, 40, 40)
	b := addBox(s, "b", 100, 0, 40, 40)

	var targets []string
	handler := func(label string) EventHandler {
		return func(*Actor, *Event) bool {
			targets = append(targets, label)
			return true
		}
	}
	a.Connect(SignalButtonPress, handler("a"))
	b.Connect(SignalButtonPress, handler("b"))

	s.GrabPointer(b)
	s.PointerPress(10, 10, MouseButtonLeft, 0)
	s.GrabPointer(nil)
	if s.PointerGrab() != nil {
		t.Error("PointerGrab should be nil after release")
	}
	s.PointerPress(10, 10, MouseButtonLeft, 0)

	assertStrings(t, "targets", targets, []string{"b", "a"})
}

func TestGrabKeyboardOverridesFocus(t *testing.T) {
	s, _, _ := newTestScene()
	focus := addBox(s, "focus", 0, 0, 10, 10)
	holder := addBox(s, "holder", 20, 0, 10, 10)

	var targets []string
	handler := func(label string) EventHandler {
		return func(*Actor, *Event) bool {
			targets = append(targets, label)
			return true
		}
	}
	focus.Connect(SignalKeyPress, handler("focus"))
	holder.Connect(SignalKeyPress, handler("holder"))

	s.SetKeyFocus(focus)
	s.GrabKeyboard(holder)
	if s.KeyboardGrab() != holder {
		t.Error("KeyboardGrab should return the grab holder")
	}
	s.KeyPress(32, 0)
	s.UngrabKeyboard()
	s.KeyPress(32, 0)

	assertStrings(t, "targets", targets, []string{"holder", "focus"})
}

func TestDestroyReleasesGrabs(t *testing.T) {
	s, _, _ := newTestScene()
	a := addBox(s, "a", 0, 0, 40, 40)
	holder := addBox(s, "holder", 100, 0, 40, 40)

	s.GrabPointer(holder)
	s.GrabKeyboard(holder)
	holder.Destroy()
	if s.PointerGrab() != nil {
		t.Error("destroying the holder should release the pointer grab")
	}
	if s.KeyboardGrab() != nil {
		t.Error("destroying the holder should release the keyboard grab")
	}

	var hits int
	a.Connect(SignalButtonPress, func(*Actor, *Event) bool { hits++; return true })
	s.PointerPress(10, 10, MouseButtonLeft, 0)
	if hits != 1 {
		t.Errorf("press after destroyed holder reached a %d times, want 1", hits)
	}
}

// --- Event sink ---

type recordingSink struct {
	kinds   []EventKind
	handled []bool
}

func (r *recordingSink) DispatchedEvent(ev *Event, handled bool) {
	r.kinds = append(r.kinds, ev.Kind)
	r.handled = append(r.handled, handled)
}

func TestEventSinkSeesEveryDispatch(t *testing.T) {
	s, _, _ := newTestScene()
	sink := &recordingSink{}
	s.SetEventSink(sink)
	s.Stage().Actor.Connect(SignalButtonPress, func(*Actor, *Event) bool { return true })

	s.PointerPress(10, 10, MouseButtonLeft, 0)

	wantKinds := []EventKind{EventEnter, EventButtonPress}
	if len(sink.kinds) != len(wantKinds) {
		t.Fatalf("sink saw %v, want %v", sink.kinds, wantKinds)
	}
	for i := range wantKinds {
		if sink.kinds[i] != wantKinds[i] {
			t.Errorf("sink.kinds[%d] = %v, want %v", i, sink.kinds[i], wantKinds[i])
		}
	}
	if sink.handled[0] || !sink.handled[1] {
		t.Errorf("sink.handled = %v, want [false true]", sink.handled)
	}

	s.SetEventSink(nil)
	s.PointerPress(10, 10, MouseButtonLeft, 0)
	if len(sink.kinds) != len(wantKinds) {
		t.Error("a removed sink must not receive events")
	}
}

func TestEventSinkSeesGrabDelivery(t *testing.T) {
	s, _, _ := newTestScene()
	sink := &recordingSink{}
	s.SetEventSink(sink)
	holder := addBox(s, "holder", 100, 0, 40, 40)
	holder.Connect(SignalButtonPress, func(*Actor, *Event) bool { return true })

	s.GrabPointer(holder)
	s.PointerPress(10, 10, MouseButtonLeft, 0)

	if len(sink.kinds) != 1 || sink.kinds[0] != EventButtonPress {
		t.Fatalf("sink saw %v, want [button-press]", sink.kinds)
	}
	if !sink.handled[0] {
		t.Error("sink.handled[0] = false, want true")
	}
}
