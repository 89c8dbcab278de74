package troupe

import (
	"go.uber.org/zap"
)

// --- Flags ---

type actorFlag uint16

const (
	flagRealized actorFlag = 1 << iota
	flagMapped
	flagReactive
	flagToplevel
	flagInDestruction
	flagInReparent
	flagHasClip
	flagDestroyed
)

// --- Delegate ---

// Delegate is the per-actor behaviour hook set. Embed [BaseDelegate] and
// override the methods you need; every method receives the actor it is
// attached to.
type Delegate interface {
	// Paint draws the actor. The backend's modelview stack is already
	// positioned at the actor's local origin when this is called.
	Paint(a *Actor)

	// Pick draws a flat silhouette of the actor in the supplied color.
	// Implementations should consult [Actor.ShouldPickPaint] before
	// drawing themselves but must still recurse into children.
	Pick(a *Actor, color Color)

	// RequestCoords may adjust the requested box before it is stored.
	// The returned box becomes the actor's coordinates.
	RequestCoords(a *Actor, box ActorBox) ActorBox

	// QueryCoords reports the actor's coordinates. The returned box is
	// written back into the actor's stored coordinates.
	QueryCoords(a *Actor) ActorBox

	// Realize allocates backend resources. A non-nil error marks the
	// actor as unrealized again and aborts dependent operations.
	Realize(a *Actor) error

	// Unrealize releases backend resources.
	Unrealize(a *Actor)

	// ShowAll shows the actor and, for containers, its children.
	ShowAll(a *Actor)

	// HideAll hides the actor and, for containers, its children.
	HideAll(a *Actor)
}

// BaseDelegate provides the default behaviour for all delegate hooks.
type BaseDelegate struct{}

func (BaseDelegate) Paint(a *Actor) {}

func (BaseDelegate) Pick(a *Actor, color Color) {
	if !a.ShouldPickPaint() {
		return
	}
	b := a.scene.backend
	b.SetDrawColor(color)
	b.DrawFilledRect(BoxFromPixels(0, 0, a.Width(), a.Height()), color)
}

func (BaseDelegate) RequestCoords(a *Actor, box ActorBox) ActorBox { return box }

func (BaseDelegate) QueryCoords(a *Actor) ActorBox { return a.box }

func (BaseDelegate) Realize(a *Actor) error { return nil }

func (BaseDelegate) Unrealize(a *Actor) {}

func (BaseDelegate) ShowAll(a *Actor) { a.Show() }

func (BaseDelegate) HideAll(a *Actor) { a.Hide() }

// --- Actor ---

// Actor is the fundamental scene graph element: a rectangular box with its
// own transform, opacity, clip and lifecycle state. Actors are created
// through a [Scene] and painted in a tree rooted at the scene's stage.
type Actor struct {
	// Identity
	id    uint32
	name  string
	scene *Scene

	// Hierarchy
	parent    *Actor
	container Container // non-nil when this actor manages children

	// Behaviour hooks
	delegate Delegate

	// Untransformed coordinates, relative to the parent
	box ActorBox

	// Transform
	depth            int
	scaleX, scaleY   float64
	anchorX, anchorY Unit

	// Per-axis rotation angles (degrees) and pivots (pixels). Each axis
	// keeps only the two pivot coordinates that are meaningful for it.
	rxAngle, ryAngle, rzAngle float64
	rxY, rxZ                  int
	ryX, ryZ                  int
	rzX, rzY                  int

	// Appearance
	opacity uint8
	clip    Geometry

	flags actorFlag

	// Signal state (see event.go)
	signals       signalTable
	freezeCount   int
	pendingNotify []string
}

// actorDefaults sets the field values shared by all constructors.
func actorDefaults(a *Actor) {
	a.scaleX = 1
	a.scaleY = 1
	a.opacity = 0xff
	a.delegate = BaseDelegate{}
}

func newActor(s *Scene) *Actor {
	s.nextID++
	a := &Actor{id: s.nextID, scene: s}
	actorDefaults(a)
	return a
}

// logger returns the diagnostic logger for this actor's scene.
func (a *Actor) logger() *zap.Logger {
	if a == nil || a.scene == nil {
		return globalLogger
	}
	return a.scene.logger
}

// --- Identity ---

// ID returns the actor's unique id within its scene.
func (a *Actor) ID() uint32 {
	if a == nil {
		reportNilActor("ID")
		return 0
	}
	return a.id
}

// SetName applies a textual tag to the actor and notifies "name".
func (a *Actor) SetName(name string) {
	if a == nil {
		reportNilActor("SetName")
		return
	}
	a.name = name
	a.notify("name")
}

// Name returns the actor's textual tag, or "" if none was set.
func (a *Actor) Name() string {
	if a == nil {
		reportNilActor("Name")
		return ""
	}
	return a.name
}

// Scene returns the scene the actor belongs to.
func (a *Actor) Scene() *Scene {
	if a == nil {
		reportNilActor("Scene")
		return nil
	}
	return a.scene
}

// Parent returns the actor's parent, or nil if the actor is unparented.
func (a *Actor) Parent() *Actor {
	if a == nil {
		reportNilActor("Parent")
		return nil
	}
	return a.parent
}

// Container returns the actor's container interface, or nil if the actor
// does not manage children.
func (a *Actor) Container() Container {
	if a == nil {
		reportNilActor("Container")
		return nil
	}
	return a.container
}

// SetDelegate replaces the actor's behaviour hooks. A nil delegate resets
// the actor to the default behaviour.
func (a *Actor) SetDelegate(d Delegate) {
	if a == nil {
		reportNilActor("SetDelegate")
		return
	}
	if d == nil {
		d = BaseDelegate{}
	}
	a.delegate = d
}

// Delegate returns the actor's behaviour hooks.
func (a *Actor) Delegate() Delegate {
	if a == nil {
		reportNilActor("Delegate")
		return nil
	}
	return a.delegate
}

// --- Flag queries ---

// IsRealized returns true if the actor's backend resources are allocated.
func (a *Actor) IsRealized() bool {
	return a != nil && a.flags&flagRealized != 0
}

// IsMapped returns true if the actor contributes to rendering output.
func (a *Actor) IsMapped() bool {
	return a != nil && a.flags&flagMapped != 0
}

// IsVisible returns true if the actor is both realized and mapped.
func (a *Actor) IsVisible() bool {
	return a.IsRealized() && a.IsMapped()
}

// IsReactive returns true if the actor is marked as receiving events.
func (a *Actor) IsReactive() bool {
	return a != nil && a.flags&flagReactive != 0
}

// IsToplevel returns true for the scene's stage.
func (a *Actor) IsToplevel() bool {
	return a != nil && a.flags&flagToplevel != 0
}

// IsDestroyed returns true once the actor has been destroyed.
func (a *Actor) IsDestroyed() bool {
	return a != nil && a.flags&flagDestroyed != 0
}

// SetReactive marks the actor as reactive. Reactive actors receive events.
func (a *Actor) SetReactive(reactive bool) {
	if a == nil {
		reportNilActor("SetReactive")
		return
	}
	if reactive == a.IsReactive() {
		return
	}
	if reactive {
		a.flags |= flagReactive
	} else {
		a.flags &^= flagReactive
	}
}

// --- Lifecycle ---

// Show flags the actor to be displayed: it is realized if needed and, for
// non-toplevel actors, mapped. Emits "show" and notifies "visible" whenever
// the actor was not previously visible. No-op on a visible actor.
func (a *Actor) Show() {
	if a == nil {
		reportNilActor("Show")
		return
	}
	if globalDebug {
		debugCheckDestroyed(a, "Show")
	}
	if a.IsVisible() {
		return
	}
	if !a.IsRealized() {
		a.Realize()
	}
	// The mapped flag on the toplevel actor is controlled by the
	// windowing collaborator.
	if !a.IsToplevel() {
		a.flags |= flagMapped
	}
	if a.IsVisible() {
		a.QueueRedraw()
	}
	a.emitShow()
	a.notify("visible")
}

// ShowAll invokes the delegate's ShowAll hook. Containers show their
// children and then themselves.
func (a *Actor) ShowAll() {
	if a == nil {
		reportNilActor("ShowAll")
		return
	}
	a.delegate.ShowAll(a)
}

// Hide flags the actor to be hidden by clearing its mapped state. Emits
// "hide" and notifies "visible". No-op on an actor that is not visible.
func (a *Actor) Hide() {
	if a == nil {
		reportNilActor("Hide")
		return
	}
	if globalDebug {
		debugCheckDestroyed(a, "Hide")
	}
	if !a.IsVisible() {
		return
	}
	if !a.IsToplevel() {
		a.flags &^= flagMapped
	}
	a.QueueRedraw()
	a.emitHide()
	a.notify("visible")
}

// HideAll invokes the delegate's HideAll hook. Containers hide themselves
// and then their children.
func (a *Actor) HideAll() {
	if a == nil {
		reportNilActor("HideAll")
		return
	}
	a.delegate.HideAll(a)
}

// Realize allocates any backend resources the actor needs in order to be
// displayed. Idempotent. If the delegate's Realize hook fails, the realized
// flag is cleared again and the failure is reported to the diagnostic log.
func (a *Actor) Realize() {
	if a == nil {
		reportNilActor("Realize")
		return
	}
	if a.IsRealized() {
		return
	}
	a.flags |= flagRealized
	if err := a.delegate.Realize(a); err != nil {
		a.flags &^= flagRealized
		a.logger().Warn("actor realize failed",
			zap.Uint32("id", a.id),
			zap.String("name", a.name),
			zap.Error(err))
	}
}

// Unrealize releases the actor's backend resources. Idempotent.
func (a *Actor) Unrealize() {
	if a == nil {
		reportNilActor("Unrealize")
		return
	}
	if !a.IsRealized() {
		return
	}
	a.flags &^= flagRealized
	a.delegate.Unrealize(a)
}

// Destroy tears the actor down: it emits a one-shot "destroy" signal,
// detaches from any parent, destroys its children (if it is a container)
// and releases backend resources. Destroying the stage is refused.
func (a *Actor) Destroy() {
	if a == nil {
		reportNilActor("Destroy")
		return
	}
	if a.IsToplevel() {
		a.logger().Warn("cannot destroy the toplevel actor",
			zap.Uint32("id", a.id),
			zap.String("name", a.name))
		return
	}
	if a.flags&flagInDestruction != 0 {
		return
	}
	a.flags |= flagInDestruction

	a.emitDestroy()

	if a.parent != nil {
		if p := a.parent; p.container != nil {
			p.container.Remove(a)
		} else {
			a.parent = nil
			delete(a.scene.index, a.id)
		}
	}

	if a.container != nil {
		children := append([]*Actor(nil), a.container.Children()...)
		for _, child := range children {
			child.Destroy()
		}
	}

	// Release any scene routing state still pointing at this actor.
	if s := a.scene; s != nil {
		if s.keyFocus == a {
			s.keyFocus = nil
		}
		if s.pointerGrab == a {
			s.pointerGrab = nil
		}
		if s.keyboardGrab == a {
			s.keyboardGrab = nil
		}
		if s.pointerWithin == a {
			s.pointerWithin = nil
		}
	}

	a.Unrealize()
	a.flags |= flagDestroyed
	a.signals = signalTable{}
	a.pendingNotify = nil
}

// --- Coordinates ---

// RequestCoords is the sole authoritative mutator of the actor's
// coordinates. If the new box differs from the current one on none of
// x, y, width and height the call is a no-op; otherwise the delegate's
// RequestCoords hook stores the box, a redraw is queued if the actor is
// visible, and each changed property is notified in one batch.
func (a *Actor) RequestCoords(box ActorBox) {
	if a == nil {
		reportNilActor("RequestCoords")
		return
	}
	old := a.box
	xChange := box.X1 != old.X1
	yChange := box.Y1 != old.Y1
	widthChange := box.Width() != old.Width()
	heightChange := box.Height() != old.Height()
	if !xChange && !yChange && !widthChange && !heightChange {
		return
	}

	a.FreezeNotify()
	a.box = a.delegate.RequestCoords(a, box)
	if a.IsVisible() {
		a.QueueRedraw()
	}
	if xChange {
		a.notify("x")
	}
	if yChange {
		a.notify("y")
	}
	if widthChange {
		a.notify("width")
	}
	if heightChange {
		a.notify("height")
	}
	a.ThawNotify()
}

// QueryCoords returns the actor's coordinates relative to its parent. The
// delegate's QueryCoords hook may derive the box; the result is written
// back into the stored coordinates.
func (a *Actor) QueryCoords() ActorBox {
	if a == nil {
		reportNilActor("QueryCoords")
		return ActorBox{}
	}
	box := a.delegate.QueryCoords(a)
	a.box = box
	return box
}

// SetPosition moves the actor to (x, y) relative to its parent, keeping
// its size.
func (a *Actor) SetPosition(x, y int) {
	if a == nil {
		reportNilActor("SetPosition")
		return
	}
	box := a.QueryCoords()
	xu := UnitFromPixels(x)
	yu := UnitFromPixels(y)
	box.X2 += xu - box.X1
	box.Y2 += yu - box.Y1
	box.X1 = xu
	box.Y1 = yu
	a.RequestCoords(box)
}

// MoveBy moves the actor by (dx, dy) relative to its current position.
func (a *Actor) MoveBy(dx, dy int) {
	if a == nil {
		reportNilActor("MoveBy")
		return
	}
	box := a.QueryCoords()
	dxu := UnitFromPixels(dx)
	dyu := UnitFromPixels(dy)
	box.X1 += dxu
	box.Y1 += dyu
	box.X2 += dxu
	box.Y2 += dyu
	a.RequestCoords(box)
}

// SetSize sets the actor's size in pixels. A dimension that is zero or
// negative is left unchanged.
func (a *Actor) SetSize(width, height int) {
	if a == nil {
		reportNilActor("SetSize")
		return
	}
	box := a.QueryCoords()
	if width > 0 {
		box.X2 = box.X1 + UnitFromPixels(width)
	}
	if height > 0 {
		box.Y2 = box.Y1 + UnitFromPixels(height)
	}
	a.RequestCoords(box)
}

// Position returns the actor's position in pixels, ignoring any transforms.
func (a *Actor) Position() (x, y int) {
	if a == nil {
		reportNilActor("Position")
		return 0, 0
	}
	box := a.QueryCoords()
	return box.X1.Pixels(), box.Y1.Pixels()
}

// Size returns the actor's size in pixels, ignoring any transforms.
func (a *Actor) Size() (width, height int) {
	if a == nil {
		reportNilActor("Size")
		return 0, 0
	}
	box := a.QueryCoords()
	return box.Width().Pixels(), box.Height().Pixels()
}

// SetX moves the actor horizontally, keeping its vertical position.
func (a *Actor) SetX(x int) {
	if a == nil {
		reportNilActor("SetX")
		return
	}
	a.SetPosition(x, a.Y())
}

// SetY moves the actor vertically, keeping its horizontal position.
func (a *Actor) SetY(y int) {
	if a == nil {
		reportNilActor("SetY")
		return
	}
	a.SetPosition(a.X(), y)
}

// SetWidth sets the actor's width, keeping its height.
func (a *Actor) SetWidth(width int) {
	a.SetSize(width, -1)
}

// SetHeight sets the actor's height, keeping its width.
func (a *Actor) SetHeight(height int) {
	a.SetSize(-1, height)
}

// X returns the actor's x position in pixels relative to its parent.
func (a *Actor) X() int {
	if a == nil {
		reportNilActor("X")
		return 0
	}
	return a.QueryCoords().X1.Pixels()
}

// Y returns the actor's y position in pixels relative to its parent.
func (a *Actor) Y() int {
	if a == nil {
		reportNilActor("Y")
		return 0
	}
	return a.QueryCoords().Y1.Pixels()
}

// Width returns the actor's width in pixels.
func (a *Actor) Width() int {
	if a == nil {
		reportNilActor("Width")
		return 0
	}
	return a.QueryCoords().Width().Pixels()
}

// Height returns the actor's height in pixels.
func (a *Actor) Height() int {
	if a == nil {
		reportNilActor("Height")
		return 0
	}
	return a.QueryCoords().Height().Pixels()
}

// SetGeometry sets the actor's untransformed geometry in pixels relative
// to its parent.
func (a *Actor) SetGeometry(geom Geometry) {
	if a == nil {
		reportNilActor("SetGeometry")
		return
	}
	box := ActorBox{
		X1: UnitFromPixels(geom.X),
		Y1: UnitFromPixels(geom.Y),
		X2: UnitFromPixels(geom.X + geom.Width),
		Y2: UnitFromPixels(geom.Y + geom.Height),
	}
	a.RequestCoords(box)
}

// Geometry returns the actor's untransformed geometry in pixels relative
// to its parent.
func (a *Actor) Geometry() Geometry {
	if a == nil {
		reportNilActor("Geometry")
		return Geometry{}
	}
	box := a.QueryCoords()
	return Geometry{
		X:      box.X1.Pixels(),
		Y:      box.Y1.Pixels(),
		Width:  box.Width().Pixels(),
		Height: box.Height().Pixels(),
	}
}

// --- Depth ---

// SetDepth sets the actor's Z coordinate. The parent container is re-sorted
// by depth so stacking follows the new value.
func (a *Actor) SetDepth(depth int) {
	if a == nil {
		reportNilActor("SetDepth")
		return
	}
	if a.depth == depth {
		return
	}
	a.depth = depth
	if a.parent != nil && a.parent.container != nil {
		a.parent.container.SortDepthOrder()
	}
	if a.IsVisible() {
		a.QueueRedraw()
	}
	a.notify("depth")
}

// Depth returns the actor's Z coordinate.
func (a *Actor) Depth() int {
	if a == nil {
		reportNilActor("Depth")
		return 0
	}
	return a.depth
}

// --- Scale ---

// SetScale scales the actor by the given factors. Notifies "scale-x" and
// "scale-y" in one batch.
func (a *Actor) SetScale(scaleX, scaleY float64) {
	if a == nil {
		reportNilActor("SetScale")
		return
	}
	a.FreezeNotify()
	a.scaleX = scaleX
	a.notify("scale-x")
	a.scaleY = scaleY
	a.notify("scale-y")
	a.ThawNotify()
	if a.IsVisible() {
		a.QueueRedraw()
	}
}

// Scale returns the actor's scale factors.
func (a *Actor) Scale() (scaleX, scaleY float64) {
	if a == nil {
		reportNilActor("Scale")
		return 0, 0
	}
	return a.scaleX, a.scaleY
}

// --- Rotation ---

// SetRotation sets the rotation angle of the actor around the given axis.
// The pivot coordinates used depend on the axis: the X axis takes y and z,
// the Y axis takes x and z, and the Z axis takes x and y. Angles and pivots
// of the other axes are left untouched.
func (a *Actor) SetRotation(axis RotateAxis, angle float64, x, y, z int) {
	if a == nil {
		reportNilActor("SetRotation")
		return
	}
	switch axis {
	case XAxis:
		a.rxAngle = angle
		a.rxY = y
		a.rxZ = z
	case YAxis:
		a.ryAngle = angle
		a.ryX = x
		a.ryZ = z
	case ZAxis:
		a.rzAngle = angle
		a.rzX = x
		a.rzY = y
	}
	if a.IsVisible() {
		a.QueueRedraw()
	}
}

// Rotation returns the angle and pivot of rotation around the given axis.
// Pivot coordinates that do not apply to the axis are zero.
func (a *Actor) Rotation(axis RotateAxis) (angle float64, x, y, z int) {
	if a == nil {
		reportNilActor("Rotation")
		return 0, 0, 0, 0
	}
	switch axis {
	case XAxis:
		return a.rxAngle, 0, a.rxY, a.rxZ
	case YAxis:
		return a.ryAngle, a.ryX, 0, a.ryZ
	case ZAxis:
		return a.rzAngle, a.rzX, a.rzY, 0
	}
	return 0, 0, 0, 0
}

// --- Opacity ---

// SetOpacity sets the actor's own opacity, with zero being completely
// transparent and 255 fully opaque.
func (a *Actor) SetOpacity(opacity uint8) {
	if a == nil {
		reportNilActor("SetOpacity")
		return
	}
	a.opacity = opacity
	if a.IsVisible() {
		a.QueueRedraw()
	}
}

// Opacity returns the actor's effective opacity: its own opacity scaled by
// the effective opacity of its ancestors.
func (a *Actor) Opacity() uint8 {
	if a == nil {
		reportNilActor("Opacity")
		return 0
	}
	if a.parent != nil {
		if p := a.parent.Opacity(); p != 0xff {
			return uint8(uint32(p) * uint32(a.opacity) / 0xff)
		}
	}
	return a.opacity
}

// --- Clip ---

// SetClip sets a clip rectangle on the actor, in pixels relative to the
// actor's origin. Notifies "has-clip" and "clip".
func (a *Actor) SetClip(xoff, yoff, width, height int) {
	if a == nil {
		reportNilActor("SetClip")
		return
	}
	a.clip = Geometry{X: xoff, Y: yoff, Width: width, Height: height}
	a.flags |= flagHasClip
	a.notify("has-clip")
	a.notify("clip")
}

// RemoveClip removes the actor's clip rectangle. Notifies "has-clip".
func (a *Actor) RemoveClip() {
	if a == nil {
		reportNilActor("RemoveClip")
		return
	}
	a.flags &^= flagHasClip
	a.notify("has-clip")
}

// HasClip returns true if the actor has a clip rectangle set.
func (a *Actor) HasClip() bool {
	return a != nil && a.flags&flagHasClip != 0
}

// Clip returns the actor's clip rectangle. The second return value is
// false if no clip is set.
func (a *Actor) Clip() (Geometry, bool) {
	if a == nil {
		reportNilActor("Clip")
		return Geometry{}, false
	}
	if a.flags&flagHasClip == 0 {
		return Geometry{}, false
	}
	return a.clip, true
}

// --- Anchor point ---

// SetAnchorPoint sets the anchor point: a point in the actor's coordinate
// space to which the actor's position within its parent is relative. The
// default is (0, 0), the top-left corner.
func (a *Actor) SetAnchorPoint(x, y int) {
	if a == nil {
		reportNilActor("SetAnchorPoint")
		return
	}
	a.anchorX = UnitFromPixels(x)
	a.anchorY = UnitFromPixels(y)
}

// AnchorPoint returns the actor's anchor point in pixels.
func (a *Actor) AnchorPoint() (x, y int) {
	if a == nil {
		reportNilActor("AnchorPoint")
		return 0, 0
	}
	return a.anchorX.Pixels(), a.anchorY.Pixels()
}

// SetAnchorPointFromGravity positions the anchor point on the actor's
// current extent according to the given gravity. GravityNone and
// GravityNorthWest both reset the anchor to the top-left corner.
func (a *Actor) SetAnchorPointFromGravity(gravity Gravity) {
	if a == nil {
		reportNilActor("SetAnchorPointFromGravity")
		return
	}
	box := a.QueryCoords()
	w := box.Width()
	h := box.Height()

	var x, y Unit
	switch gravity {
	case GravityNorth:
		x = w / 2
	case GravitySouth:
		x = w / 2
		y = h
	case GravityEast:
		x = w
		y = h / 2
	case GravityNorthEast:
		x = w
	case GravitySouthEast:
		x = w
		y = h
	case GravitySouthWest:
		y = h
	case GravityWest:
		y = h / 2
	case GravityCenter:
		x = w / 2
		y = h / 2
	}

	a.anchorX = x
	a.anchorY = y
}

// MoveAnchorPoint sets the anchor point like [Actor.SetAnchorPoint] while
// keeping the actor's painted position fixed: the box is shifted by the
// anchor delta, so nothing moves on screen.
func (a *Actor) MoveAnchorPoint(x, y int) {
	if a == nil {
		reportNilActor("MoveAnchorPoint")
		return
	}
	oldX, oldY := a.anchorX, a.anchorY
	a.anchorX = UnitFromPixels(x)
	a.anchorY = UnitFromPixels(y)
	a.shiftForAnchorDelta(a.anchorX-oldX, a.anchorY-oldY)
}

// MoveAnchorPointFromGravity places the anchor point according to gravity
// like [Actor.SetAnchorPointFromGravity] while keeping the actor's painted
// position fixed.
func (a *Actor) MoveAnchorPointFromGravity(gravity Gravity) {
	if a == nil {
		reportNilActor("MoveAnchorPointFromGravity")
		return
	}
	oldX, oldY := a.anchorX, a.anchorY
	a.SetAnchorPointFromGravity(gravity)
	a.shiftForAnchorDelta(a.anchorX-oldX, a.anchorY-oldY)
}

// shiftForAnchorDelta moves the stored box by an anchor delta so the
// painted position survives the anchor change.
func (a *Actor) shiftForAnchorDelta(dx, dy Unit) {
	if dx == 0 && dy == 0 {
		return
	}
	box := a.QueryCoords()
	box.X1 += dx
	box.Y1 += dy
	box.X2 += dx
	box.Y2 += dy
	a.RequestCoords(box)
}

// --- Tree ---

// SetParent links the actor under parent and registers its id in the
// scene's index. Reports a usage error if the actor already has a parent,
// is its own parent, or is the toplevel. On success the actor is realized
// when the parent already is, and a redraw is queued when both are visible.
func (a *Actor) SetParent(parent *Actor) {
	if a == nil || parent == nil {
		reportNilActor("SetParent")
		return
	}
	if a == parent {
		a.logger().Warn("cannot set an actor as its own parent",
			zap.Uint32("id", a.id),
			zap.String("name", a.name))
		return
	}
	if a.parent != nil {
		a.logger().Warn("cannot set a parent on an actor which has a parent; unparent it first",
			zap.Uint32("id", a.id),
			zap.String("name", a.name))
		return
	}
	if a.IsToplevel() {
		a.logger().Warn("cannot set a parent on a toplevel actor",
			zap.Uint32("id", a.id),
			zap.String("name", a.name))
		return
	}

	a.scene.index[a.id] = a
	a.parent = parent
	a.emitParentSet(nil)
	if globalDebug {
		debugCheckTreeDepth(a)
	}

	if parent.IsRealized() {
		a.Realize()
	}
	if parent.IsVisible() && a.IsVisible() {
		a.QueueRedraw()
	}
}

// Unparent detaches the actor from its parent and retires its id from the
// scene's index. A realized actor is unrealized, unless the detach is part
// of a reparent, in which case it is only hidden. No-op without a parent.
func (a *Actor) Unparent() {
	if a == nil {
		reportNilActor("Unparent")
		return
	}
	if a.parent == nil {
		return
	}

	if a.IsRealized() {
		if a.flags&flagInReparent != 0 {
			a.Hide()
		} else {
			a.Unrealize()
		}
	}

	old := a.parent
	a.parent = nil
	a.emitParentSet(old)
	delete(a.scene.index, a.id)
}

// Reparent moves the actor under newParent, routing the detach and attach
// through the container operations of the old and new parents when they
// are containers. When both the old and the new parent are realized, the
// intervening unparent only hides the actor instead of unrealizing it.
// No-op when newParent is already the actor's parent.
func (a *Actor) Reparent(newParent *Actor) {
	if a == nil || newParent == nil {
		reportNilActor("Reparent")
		return
	}
	if a == newParent {
		a.logger().Warn("cannot set an actor as its own parent",
			zap.Uint32("id", a.id),
			zap.String("name", a.name))
		return
	}
	if a.IsToplevel() {
		a.logger().Warn("cannot set a parent on a toplevel actor",
			zap.Uint32("id", a.id),
			zap.String("name", a.name))
		return
	}
	if a.parent == newParent {
		return
	}

	old := a.parent
	if old != nil && old.IsRealized() && newParent.IsRealized() {
		a.flags |= flagInReparent
	}

	if old != nil {
		if old.container != nil {
			old.container.Remove(a)
		} else {
			a.parent = nil
			delete(a.scene.index, a.id)
		}
	}

	if newParent.container != nil {
		newParent.container.Add(a)
	} else {
		a.parent = newParent
		a.scene.index[a.id] = a
	}

	if a.flags&flagInReparent != 0 {
		a.flags &^= flagInReparent
		a.QueueRedraw()
	}
}

// Raise puts the actor above below in its parent's stacking order. A nil
// below raises the actor to the top. Reports a usage error if the actors
// do not share a parent.
func (a *Actor) Raise(below *Actor) {
	if a == nil {
		reportNilActor("Raise")
		return
	}
	parent := a.parent
	if parent == nil {
		a.logger().Warn("actor is not inside a container",
			zap.Uint32("id", a.id),
			zap.String("name", a.name))
		return
	}
	if below != nil && below.parent != parent {
		a.logger().Warn("actors are not in the same container",
			zap.Uint32("id", a.id),
			zap.Uint32("sibling", below.id))
		return
	}
	if parent.container == nil {
		a.logger().Warn("actor's parent is not a container",
			zap.Uint32("id", a.id),
			zap.String("name", a.name))
		return
	}
	parent.container.RaiseChild(a, below)
}

// Lower puts the actor below above in its parent's stacking order. A nil
// above lowers the actor to the bottom. Reports a usage error if the
// actors do not share a parent.
func (a *Actor) Lower(above *Actor) {
	if a == nil {
		reportNilActor("Lower")
		return
	}
	parent := a.parent
	if parent == nil {
		a.logger().Warn("actor is not inside a container",
			zap.Uint32("id", a.id),
			zap.String("name", a.name))
		return
	}
	if above != nil && above.parent != parent {
		a.logger().Warn("actors are not in the same container",
			zap.Uint32("id", a.id),
			zap.Uint32("sibling", above.id))
		return
	}
	if parent.container == nil {
		a.logger().Warn("actor's parent is not a container",
			zap.Uint32("id", a.id),
			zap.String("name", a.name))
		return
	}
	parent.container.LowerChild(a, above)
}

// RaiseTop raises the actor to the top of its parent's stacking order.
func (a *Actor) RaiseTop() {
	a.Raise(nil)
}

// LowerBottom lowers the actor to the bottom of its parent's stacking order.
func (a *Actor) LowerBottom() {
	a.Lower(nil)
}

// --- Painting ---

// Paint renders the actor. The actor is realized on demand; if realization
// fails the paint silently returns. The backend matrix stack is pushed, the
// actor's local transform applied, and the delegate's Paint hook invoked,
// or its Pick hook when the scene is in a pick pass.
func (a *Actor) Paint() {
	if a == nil {
		reportNilActor("Paint")
		return
	}
	if !a.IsRealized() {
		a.Realize()
		if !a.IsRealized() {
			return
		}
	}

	b := a.scene.backend
	b.PushMatrix()
	a.applyLocalTransform(b)
	if a.flags&flagHasClip != 0 {
		b.SetClipRect(a.clip)
	}

	if a.scene.picking {
		a.delegate.Pick(a, a.scene.pickColor(a.id))
	} else {
		a.delegate.Paint(a)
	}

	if a.flags&flagHasClip != 0 {
		b.UnsetClip()
	}
	b.PopMatrix()
}

// Pick renders a flat silhouette of the actor in the supplied color, used
// for mapping pointer positions back to actors. The default implementation
// draws the actor's box when [Actor.ShouldPickPaint] allows it.
func (a *Actor) Pick(color Color) {
	if a == nil {
		reportNilActor("Pick")
		return
	}
	a.delegate.Pick(a, color)
}

// ShouldPickPaint reports whether the actor should draw its silhouette
// during a pick pass: it must be mapped, and either the scene picks all
// actors or the actor is reactive.
func (a *Actor) ShouldPickPaint() bool {
	if a == nil {
		return false
	}
	if !a.IsMapped() {
		return false
	}
	return a.scene.pickMode == PickAll || a.IsReactive()
}

// QueueRedraw requests a repaint of the scene. Redraw requests are
// coalesced: the repaint happens once, in a deferred callback.
func (a *Actor) QueueRedraw() {
	if a == nil || a.scene == nil {
		return
	}
	a.scene.QueueRedraw()
}
