package troupe

import (
	"sort"

	"go.uber.org/zap"
)

// --- Container ---

// Container is implemented by actors that manage a list of children. The
// tree operations on [Actor] (reparent, raise, lower, destroy) route
// through it when the parent is container-capable.
type Container interface {
	// Add appends actors to the container, parenting them to it.
	Add(children ...*Actor)

	// Remove detaches actors from the container, unparenting them.
	Remove(children ...*Actor)

	// Children returns the child list in stacking order. The returned
	// slice MUST NOT be mutated by the caller.
	Children() []*Actor

	// RaiseChild moves child above sibling. A nil sibling raises the
	// child to the top.
	RaiseChild(child, sibling *Actor)

	// LowerChild moves child below sibling. A nil sibling lowers the
	// child to the bottom.
	LowerChild(child, sibling *Actor)

	// SortDepthOrder re-sorts the children by their depth values.
	SortDepthOrder()
}

// --- Group ---

// Group is an actor that holds and paints children. Children are painted in
// stacking order; the group's own size derives from the extent of its
// children, so sizing requests only move it.
type Group struct {
	*Actor
	children []*Actor
}

func newGroup(s *Scene) *Group {
	g := &Group{Actor: newActor(s)}
	g.Actor.delegate = groupDelegate{g: g}
	g.Actor.container = g
	return g
}

// Add appends the given actors to the group, setting the group as their
// parent and queueing a redraw. Actors that already have a parent are
// skipped with a usage error.
func (g *Group) Add(children ...*Actor) {
	for _, child := range children {
		if child == nil {
			reportNilActor("Group.Add")
			continue
		}
		if child.parent != nil {
			child.logger().Warn("actor already has a parent",
				zap.Uint32("id", child.id),
				zap.String("name", child.name),
				zap.Uint32("group", g.id))
			continue
		}
		g.children = append(g.children, child)
		child.SetParent(g.Actor)
		g.Actor.QueueRedraw()
	}
	if globalDebug {
		debugCheckChildCount(g)
	}
}

// Remove detaches the given actors from the group and unparents them.
// Actors whose parent is not this group are skipped with a usage error.
func (g *Group) Remove(children ...*Actor) {
	for _, child := range children {
		if child == nil {
			reportNilActor("Group.Remove")
			continue
		}
		if child.parent != g.Actor {
			child.logger().Warn("actor is not a child of this group",
				zap.Uint32("id", child.id),
				zap.String("name", child.name),
				zap.Uint32("group", g.id))
			continue
		}
		g.removeChild(child)
		child.Unparent()
		if g.Actor.IsVisible() {
			g.Actor.QueueRedraw()
		}
	}
}

// RemoveAll detaches every child from the group.
func (g *Group) RemoveAll() {
	children := append([]*Actor(nil), g.children...)
	g.Remove(children...)
}

// Children returns the group's child list in stacking order. The returned
// slice MUST NOT be mutated by the caller.
func (g *Group) Children() []*Actor {
	return g.children
}

// NumChildren returns the number of children.
func (g *Group) NumChildren() int {
	return len(g.children)
}

// ChildAt returns the child at the given stacking position, or nil if the
// index is out of range.
func (g *Group) ChildAt(index int) *Actor {
	if index < 0 || index >= len(g.children) {
		return nil
	}
	return g.children[index]
}

// RaiseChild moves child above sibling in the stacking order. A nil sibling
// raises the child to the top. When the landing position borders a sibling
// with a different depth, the child's depth is synced to the sibling's so
// depth sorting keeps the new order.
func (g *Group) RaiseChild(child, sibling *Actor) {
	if child == nil {
		reportNilActor("Group.RaiseChild")
		return
	}
	g.removeChild(child)

	if sibling == nil {
		if n := len(g.children); n > 0 {
			sibling = g.children[n-1]
		}
		g.children = append(g.children, child)
	} else {
		pos := g.childIndex(sibling) + 1
		g.insertChild(child, pos)
	}

	if sibling != nil && sibling.Depth() != child.Depth() {
		child.SetDepth(sibling.Depth())
	}

	if g.Actor.IsVisible() {
		g.Actor.QueueRedraw()
	}
}

// LowerChild moves child below sibling in the stacking order. A nil sibling
// lowers the child to the bottom. Depth syncing follows the same rule as
// [Group.RaiseChild].
func (g *Group) LowerChild(child, sibling *Actor) {
	if child == nil {
		reportNilActor("Group.LowerChild")
		return
	}
	g.removeChild(child)

	if sibling == nil {
		if len(g.children) > 0 {
			sibling = g.children[0]
		}
		g.insertChild(child, 0)
	} else {
		g.insertChild(child, g.childIndex(sibling))
	}

	if sibling != nil && sibling.Depth() != child.Depth() {
		child.SetDepth(sibling.Depth())
	}

	if g.Actor.IsVisible() {
		g.Actor.QueueRedraw()
	}
}

// SortDepthOrder stably re-sorts the children by depth, so that children
// with equal depth keep their relative order, and queues a redraw if the
// group is visible.
func (g *Group) SortDepthOrder() {
	sort.SliceStable(g.children, func(i, j int) bool {
		return g.children[i].depth < g.children[j].depth
	})
	if g.Actor.IsVisible() {
		g.Actor.QueueRedraw()
	}
}

// --- Slice helpers ---

func (g *Group) childIndex(child *Actor) int {
	for i, c := range g.children {
		if c == child {
			return i
		}
	}
	return -1
}

// removeChild removes child from g.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (g *Group) removeChild(child *Actor) {
	i := g.childIndex(child)
	if i < 0 {
		return
	}
	copy(g.children[i:], g.children[i+1:])
	g.children[len(g.children)-1] = nil
	g.children = g.children[:len(g.children)-1]
}

func (g *Group) insertChild(child *Actor, index int) {
	if index < 0 || index > len(g.children) {
		index = len(g.children)
	}
	g.children = append(g.children, nil)
	copy(g.children[index+1:], g.children[index:])
	g.children[index] = child
}

// --- Delegate ---

// groupDelegate wires a Group into the actor behaviour hooks.
type groupDelegate struct {
	BaseDelegate
	g *Group
}

// Paint paints every mapped child. Each child pushes and pops its own
// transform.
func (d groupDelegate) Paint(a *Actor) {
	for _, child := range d.g.children {
		if child.IsMapped() {
			child.Paint()
		}
	}
}

// Pick paints the group's own silhouette, then recurses into the children
// so they get picked as well.
func (d groupDelegate) Pick(a *Actor, color Color) {
	d.BaseDelegate.Pick(a, color)

	if a.IsVisible() {
		for _, child := range d.g.children {
			if child.IsMapped() {
				child.Paint()
			}
		}
	}
}

// QueryCoords grows the stored box until it spans the extents of all
// children, relative to the group's origin.
func (d groupDelegate) QueryCoords(a *Actor) ActorBox {
	box := a.box
	for _, child := range d.g.children {
		cbox := child.QueryCoords()
		if box.X2-box.X1 < cbox.X2 {
			box.X2 = cbox.X2 + box.X1
		}
		if box.Y2-box.Y1 < cbox.Y2 {
			box.Y2 = cbox.Y2 + box.Y1
		}
	}
	return box
}

// RequestCoords only honors the position of the requested box; the size is
// forced back to the extent derived from the children. Use scaling to
// resize a group.
func (d groupDelegate) RequestCoords(a *Actor, box ActorBox) ActorBox {
	cbox := d.QueryCoords(a)
	box.X2 = box.X1 + (cbox.X2 - cbox.X1)
	box.Y2 = box.Y1 + (cbox.Y2 - cbox.Y1)
	return box
}

// ShowAll shows every child, then the group itself.
func (d groupDelegate) ShowAll(a *Actor) {
	for _, child := range d.g.children {
		child.Show()
	}
	a.Show()
}

// HideAll hides the group, then every child.
func (d groupDelegate) HideAll(a *Actor) {
	a.Hide()
	for _, child := range d.g.children {
		child.Hide()
	}
}
