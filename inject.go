package troupe

// Synthetic event injection. Injected events are queued in order and
// dispatched by the next [Scene.Pump] call, going through exactly the same
// picking, crossing and capture-bubble machinery as real input. Tests, the
// scenario runner and headless tools drive scenes this way.

// InjectMotion queues a synthetic pointer motion at the given window
// coordinates.
func (s *Scene) InjectMotion(x, y int, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, Event{
		Kind:      EventMotion,
		Time:      s.now(),
		X:         x,
		Y:         y,
		Modifiers: mods,
		Synthetic: true,
	})
}

// InjectButtonPress queues a synthetic button press at the given window
// coordinates.
func (s *Scene) InjectButtonPress(x, y int, button MouseButton, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, Event{
		Kind:      EventButtonPress,
		Time:      s.now(),
		X:         x,
		Y:         y,
		Button:    button,
		Modifiers: mods,
		Synthetic: true,
	})
}

// InjectButtonRelease queues a synthetic button release at the given window
// coordinates.
func (s *Scene) InjectButtonRelease(x, y int, button MouseButton, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, Event{
		Kind:      EventButtonRelease,
		Time:      s.now(),
		X:         x,
		Y:         y,
		Button:    button,
		Modifiers: mods,
		Synthetic: true,
	})
}

// InjectScroll queues a synthetic scroll step at the given window
// coordinates.
func (s *Scene) InjectScroll(x, y int, dir ScrollDirection, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, Event{
		Kind:      EventScroll,
		Time:      s.now(),
		X:         x,
		Y:         y,
		Direction: dir,
		Modifiers: mods,
		Synthetic: true,
	})
}

// InjectKeyPress queues a synthetic key press for the key focus actor.
func (s *Scene) InjectKeyPress(keycode uint16, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, Event{
		Kind:      EventKeyPress,
		Time:      s.now(),
		Keycode:   keycode,
		Modifiers: mods,
		Synthetic: true,
	})
}

// InjectKeyRelease queues a synthetic key release for the key focus actor.
func (s *Scene) InjectKeyRelease(keycode uint16, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, Event{
		Kind:      EventKeyRelease,
		Time:      s.now(),
		Keycode:   keycode,
		Modifiers: mods,
		Synthetic: true,
	})
}

// InjectClick is a convenience that queues a left-button press followed by a
// release at the same window coordinates.
func (s *Scene) InjectClick(x, y int) {
	s.InjectButtonPress(x, y, MouseButtonLeft, 0)
	s.InjectButtonRelease(x, y, MouseButtonLeft, 0)
}

// InjectDrag queues a full left-button drag sequence: press at (fromX,
// fromY), linearly interpolated motions over steps-2 intermediate points,
// and release at (toX, toY). The total sequence queues `steps` events.
// Minimum steps is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY, steps int) {
	if steps < 2 {
		steps = 2
	}
	s.InjectButtonPress(fromX, fromY, MouseButtonLeft, 0)
	mid := steps - 2
	for i := 1; i <= mid; i++ {
		t := float64(i) / float64(mid+1)
		x := fromX + int(float64(toX-fromX)*t)
		y := fromY + int(float64(toY-fromY)*t)
		s.InjectMotion(x, y, 0)
	}
	s.InjectButtonRelease(toX, toY, MouseButtonLeft, 0)
}
