package troupe

// Backend is the immediate-mode rendering collaborator the scene graph
// paints through. It exposes a matrix stack, clip state, flat-color
// rectangle fills, and the pick-buffer facilities used for hit testing.
//
// PushMatrix/PopMatrix calls must be strictly paired and nested; the paint
// traversal mirrors the tree's pre-order walk and pops on every exit path.
type Backend interface {
	PushMatrix()
	PopMatrix()
	Translate(x, y, z float64)
	Scale(sx, sy float64)
	Rotate(axis RotateAxis, angle float64)

	Modelview() Matrix4
	Projection() Matrix4
	Viewport() Geometry

	SetClipRect(g Geometry)
	UnsetClip()

	Clear(c Color)
	SetDrawColor(c Color)
	DrawFilledRect(box ActorBox, c Color)

	// PickBits reports how many bits per channel survive into the pick
	// buffer; actor ids are packed into colors accordingly.
	PickBits() (r, g, b int)
	// ReadPixel reads back one pick-buffer pixel. ok is false when the
	// coordinate is outside the buffer.
	ReadPixel(x, y int) (c Color, ok bool)
}

// PickSurface is implemented by backends that keep pick passes off the
// visible frame. When the backend implements it, the scene brackets every
// hit-test paint with BeginPick and EndPick; ReadPixel calls between the
// two read the pick surface, and the visible frame survives untouched.
// Backends without it get their frame overwritten by pick passes and
// should queue a repaint after hit testing.
type PickSurface interface {
	BeginPick()
	EndPick()
}

// DeferredHandle identifies a callback scheduled on an EventLoop, for
// cancellation.
type DeferredHandle uint64

// Deferred-callback priorities. Lower values run first.
const (
	PriorityDefault = 0
	// PriorityRedraw schedules coalesced redraws ahead of default work so
	// one paint pass runs before other deferred callbacks observe the frame.
	PriorityRedraw = -10
)

// EventLoop is the windowing/event-loop collaborator. The scene graph only
// needs one-shot deferred callbacks from it, used to coalesce redraws.
type EventLoop interface {
	ScheduleDeferred(priority int, fn func()) DeferredHandle
	CancelDeferred(handle DeferredHandle)
}
