package troupe

// ActorBox is an actor's untransformed extent: two corners in Units,
// relative to the parent's local space. Copied by value everywhere; the
// type does not enforce X2 >= X1 or Y2 >= Y1.
type ActorBox struct {
	X1, Y1, X2, Y2 Unit
}

// BoxFromPixels builds an ActorBox from a pixel origin and size.
func BoxFromPixels(x, y, width, height int) ActorBox {
	return ActorBox{
		X1: UnitFromPixels(x),
		Y1: UnitFromPixels(y),
		X2: UnitFromPixels(x + width),
		Y2: UnitFromPixels(y + height),
	}
}

// Width returns X2 - X1.
func (b ActorBox) Width() Unit {
	return b.X2 - b.X1
}

// Height returns Y2 - Y1.
func (b ActorBox) Height() Unit {
	return b.Y2 - b.Y1
}

// Geometry is an integer pixel rectangle, used for clips, viewports, and
// pixel-space conveniences.
type Geometry struct {
	X, Y, Width, Height int
}

// Contains reports whether the pixel (x, y) lies inside the rectangle.
// Points on the left/top edge are inside, right/bottom edge outside.
func (g Geometry) Contains(x, y int) bool {
	return x >= g.X && x < g.X+g.Width &&
		y >= g.Y && y < g.Y+g.Height
}

// Vertex is a point in 3D space, in Units. Projected actor corners are
// reported as Vertices in window space.
type Vertex struct {
	X, Y, Z Unit
}

// Knot is a point on an integer pixel grid.
type Knot struct {
	X, Y int
}
