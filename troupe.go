package troupe

import "image/color"

// Color represents an RGBA color with 8-bit components. Not premultiplied.
// Pick-pass silhouette colors encode actor ids directly into these channels.
type Color struct {
	R, G, B, A uint8
}

// ColorWhite is fully opaque white, the default paint color.
var ColorWhite = Color{255, 255, 255, 255}

// ColorBlack is fully opaque black.
var ColorBlack = Color{0, 0, 0, 255}

// RGBA implements color.Color so a Color can be handed straight to image
// and backend APIs. Components are widened to 16 bit without premultiplying.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

var _ color.Color = Color{}

// RotateAxis selects which axis a rotation operates around.
type RotateAxis uint8

const (
	XAxis RotateAxis = iota // rotation around the X axis (horizontal)
	YAxis                   // rotation around the Y axis (vertical)
	ZAxis                   // rotation around the Z axis (in the screen plane)
)

// Gravity names a reference point on an actor's bounding box, used when
// placing the anchor point without spelling out coordinates.
type Gravity uint8

const (
	GravityNone      Gravity = iota // no gravity; coordinates are explicit
	GravityNorth                    // top edge, centered horizontally
	GravityNorthEast                // top-right corner
	GravityEast                     // right edge, centered vertically
	GravitySouthEast                // bottom-right corner
	GravitySouth                    // bottom edge, centered horizontally
	GravitySouthWest                // bottom-left corner
	GravityWest                     // left edge, centered vertically
	GravityNorthWest                // top-left corner
	GravityCenter                   // center of the box
)

// PickMode controls which actors respond during a pick (hit-test) pass.
type PickMode uint8

const (
	PickNone     PickMode = iota // picking disabled; ActorAtPos returns nothing
	PickReactive                 // only reactive actors are pickable (default)
	PickAll                      // every mapped actor is pickable
)

// MouseButton identifies a pointer button carried by button events.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) button
	MouseButtonRight                     // secondary (right) button
	MouseButtonMiddle                    // middle button
)

// ScrollDirection identifies the direction of a scroll event.
type ScrollDirection uint8

const (
	ScrollUp    ScrollDirection = iota // wheel away from the user
	ScrollDown                         // wheel toward the user
	ScrollLeft                         // horizontal scroll left
	ScrollRight                        // horizontal scroll right
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
