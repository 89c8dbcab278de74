package troupe

import "sort"

// RecordedRect is one rectangle fill captured by a RecorderBackend: the
// local-space box as submitted, the active color and clip, and the four
// window-space corners after projection (in box corner order: top-left,
// top-right, bottom-left, bottom-right).
type RecordedRect struct {
	Box     ActorBox
	Color   Color
	Quad    [4][2]float64
	Clip    Geometry
	HasClip bool
}

// RecorderBackend is a headless Backend that keeps a full matrix stack and
// records every rectangle fill instead of rasterizing. Tests and tools use
// it to assert on draw order, colors, and projected geometry, and its
// ReadPixel answers pick queries from the recorded fills.
type RecorderBackend struct {
	stack      []Matrix4
	projection Matrix4
	viewport   Geometry
	color      Color
	clip       Geometry
	hasClip    bool
	clearColor Color

	pickR, pickG, pickB int

	// Rects holds every fill since the last Clear, in draw order.
	Rects []RecordedRect

	savedRects []RecordedRect
	savedClear Color
	inPick     bool
}

var (
	_ Backend     = (*RecorderBackend)(nil)
	_ PickSurface = (*RecorderBackend)(nil)
	_ EventLoop   = (*ManualLoop)(nil)
)

// NewRecorderBackend returns a recorder with a width×height viewport and an
// orthographic projection mapping local units 1:1 onto window pixels with Y
// down, the way a flat stage maps its plane to the window.
func NewRecorderBackend(width, height int) *RecorderBackend {
	return &RecorderBackend{
		stack:      []Matrix4{Identity()},
		projection: Ortho(0, float64(width), float64(height), 0, -1, 1),
		viewport:   Geometry{0, 0, width, height},
		color:      ColorWhite,
		clearColor: ColorWhite,
		pickR:      8,
		pickG:      8,
		pickB:      8,
	}
}

// SetProjection replaces the active projection matrix.
func (b *RecorderBackend) SetProjection(m Matrix4) { b.projection = m }

// SetViewport replaces the active viewport rectangle.
func (b *RecorderBackend) SetViewport(g Geometry) { b.viewport = g }

// SetPickBits sets the per-channel bit depths reported to the pick encoder.
func (b *RecorderBackend) SetPickBits(r, g, bl int) {
	b.pickR, b.pickG, b.pickB = r, g, bl
}

func (b *RecorderBackend) PushMatrix() {
	b.stack = append(b.stack, b.current())
}

func (b *RecorderBackend) PopMatrix() {
	if len(b.stack) <= 1 {
		panic("troupe: matrix stack underflow")
	}
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *RecorderBackend) current() Matrix4 {
	return b.stack[len(b.stack)-1]
}

func (b *RecorderBackend) setCurrent(m Matrix4) {
	b.stack[len(b.stack)-1] = m
}

func (b *RecorderBackend) Translate(x, y, z float64) {
	b.setCurrent(b.current().Translate(x, y, z))
}

func (b *RecorderBackend) Scale(sx, sy float64) {
	b.setCurrent(b.current().Scale(sx, sy, 1))
}

func (b *RecorderBackend) Rotate(axis RotateAxis, angle float64) {
	b.setCurrent(b.current().Rotate(axis, angle))
}

func (b *RecorderBackend) Modelview() Matrix4  { return b.current() }
func (b *RecorderBackend) Projection() Matrix4 { return b.projection }
func (b *RecorderBackend) Viewport() Geometry  { return b.viewport }

// SetClipRect installs a clip rectangle given in the current modelview
// space. The recorder reduces it to its axis-aligned window-space bounds,
// which is exact for translation and scale and an approximation under
// rotation.
func (b *RecorderBackend) SetClipRect(g Geometry) {
	b.clip = ProjectRectBounds(b.current(), b.projection, b.viewport, g)
	b.hasClip = true
}

func (b *RecorderBackend) UnsetClip() {
	b.hasClip = false
}

// Clear wipes the recorded fills and sets the background color, starting a
// new frame.
func (b *RecorderBackend) Clear(c Color) {
	b.clearColor = c
	b.Rects = b.Rects[:0]
}

func (b *RecorderBackend) SetDrawColor(c Color) { b.color = c }

func (b *RecorderBackend) DrawFilledRect(box ActorBox, c Color) {
	b.color = c
	mv := b.current()
	w := box.Width().Float()
	h := box.Height().Float()
	ox := box.X1.Float()
	oy := box.Y1.Float()
	rec := RecordedRect{
		Box:     box,
		Color:   c,
		Clip:    b.clip,
		HasClip: b.hasClip,
	}
	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}
	for i, p := range corners {
		px, py, _ := ProjectPoint(mv, b.projection, b.viewport, ox+p[0], oy+p[1], 0)
		rec.Quad[i] = [2]float64{px, py}
	}
	b.Rects = append(b.Rects, rec)
}

// BeginPick diverts subsequent fills to a scratch pick frame, preserving
// the recorded visual frame for later assertions.
func (b *RecorderBackend) BeginPick() {
	if b.inPick {
		return
	}
	b.inPick = true
	b.savedRects = b.Rects
	b.savedClear = b.clearColor
	b.Rects = nil
}

// EndPick restores the visual frame recorded before BeginPick.
func (b *RecorderBackend) EndPick() {
	if !b.inPick {
		return
	}
	b.inPick = false
	b.Rects = b.savedRects
	b.clearColor = b.savedClear
	b.savedRects = nil
}

func (b *RecorderBackend) PickBits() (r, g, bl int) {
	return b.pickR, b.pickG, b.pickB
}

// ReadPixel reports the color of the topmost recorded fill covering (x, y),
// or the clear color if none does.
func (b *RecorderBackend) ReadPixel(x, y int) (Color, bool) {
	if !b.viewport.Contains(x, y) {
		return Color{}, false
	}
	px := float64(x) + 0.5
	py := float64(y) + 0.5
	for i := len(b.Rects) - 1; i >= 0; i-- {
		rec := b.Rects[i]
		if rec.HasClip && !rec.Clip.Contains(x, y) {
			continue
		}
		if quadContains(rec.Quad, px, py) {
			return rec.Color, true
		}
	}
	return b.clearColor, true
}

// quadContains tests a point against the projected quad. Quad corners are
// stored in box corner order, so the polygon outline is 0, 1, 3, 2.
func quadContains(quad [4][2]float64, x, y float64) bool {
	outline := [4][2]float64{quad[0], quad[1], quad[3], quad[2]}
	pos, neg := false, false
	for i := 0; i < 4; i++ {
		ax, ay := outline[i][0], outline[i][1]
		bx, by := outline[(i+1)%4][0], outline[(i+1)%4][1]
		cross := (bx-ax)*(y-ay) - (by-ay)*(x-ax)
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
	}
	return !(pos && neg)
}

type deferredCall struct {
	handle   DeferredHandle
	priority int
	fn       func()
}

// ManualLoop is an EventLoop that runs nothing until told to. Tests and
// headless tools schedule through it and call Flush to fire pending
// callbacks deterministically.
type ManualLoop struct {
	nextHandle DeferredHandle
	pending    []deferredCall
}

func NewManualLoop() *ManualLoop {
	return &ManualLoop{}
}

func (l *ManualLoop) ScheduleDeferred(priority int, fn func()) DeferredHandle {
	l.nextHandle++
	l.pending = append(l.pending, deferredCall{l.nextHandle, priority, fn})
	return l.nextHandle
}

func (l *ManualLoop) CancelDeferred(handle DeferredHandle) {
	for i, c := range l.pending {
		if c.handle == handle {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of callbacks waiting to run.
func (l *ManualLoop) Pending() int {
	return len(l.pending)
}

// Flush runs the callbacks pending at the time of the call, lowest priority
// value first, and returns how many ran. Callbacks scheduled during the
// flush stay pending for the next one.
func (l *ManualLoop) Flush() int {
	batch := l.pending
	l.pending = nil
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].priority < batch[j].priority
	})
	for _, c := range batch {
		c.fn()
	}
	return len(batch)
}
