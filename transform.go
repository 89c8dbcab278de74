package troupe

// applyLocalTransform applies the actor's own transform to the backend's
// modelview stack, in this fixed order: box origin translation (parented
// actors only), scale, negated anchor translation, Z then Y then X rotation
// around their pivots, depth translation. The caller handles push/pop and
// any clip side effects.
func (a *Actor) applyLocalTransform(b Backend) {
	if a.parent != nil {
		b.Translate(float64(a.box.X1.Floor()), float64(a.box.Y1.Floor()), 0)
	}

	// Scale must precede the rotations: the pivot translations inside a
	// rotation have to be scaled along with the actor.
	if a.scaleX != 1 || a.scaleY != 1 {
		b.Scale(a.scaleX, a.scaleY)
	}

	if a.parent != nil && (a.anchorX != 0 || a.anchorY != 0) {
		b.Translate(float64((-a.anchorX).Floor()), float64((-a.anchorY).Floor()), 0)
	}

	if a.rzAngle != 0 {
		b.Translate(float64(a.rzX), float64(a.rzY), 0)
		b.Rotate(ZAxis, a.rzAngle)
		b.Translate(float64(-a.rzX), float64(-a.rzY), 0)
	}

	if a.ryAngle != 0 {
		b.Translate(float64(a.ryX), 0, float64(a.depth+a.ryZ))
		b.Rotate(YAxis, a.ryAngle)
		b.Translate(float64(-a.ryX), 0, float64(-(a.depth+a.ryZ)))
	}

	if a.rxAngle != 0 {
		b.Translate(0, float64(a.rxY), float64(a.depth+a.rxZ))
		b.Rotate(XAxis, a.rxAngle)
		b.Translate(0, float64(-a.rxY), float64(-(a.depth+a.rxZ)))
	}

	if a.depth != 0 {
		b.Translate(0, 0, float64(a.depth))
	}
}

// applyTransformRecursive applies the transforms of the actor's ancestors,
// root first, followed by the actor's own.
func (a *Actor) applyTransformRecursive(b Backend) {
	if a.parent != nil {
		a.parent.applyTransformRecursive(b)
	}
	a.applyLocalTransform(b)
}

// applyRelativeTransformRecursive applies the transforms between ancestor
// (exclusive) and the actor. A nil ancestor composes from the root.
func (a *Actor) applyRelativeTransformRecursive(b Backend, ancestor *Actor) {
	if a == nil || a == ancestor {
		return
	}
	a.parent.applyRelativeTransformRecursive(b, ancestor)
	a.applyLocalTransform(b)
}

// TransformationMatrix returns the model-view matrix composed from the
// transforms of the actor and all its ancestors, root first.
func (a *Actor) TransformationMatrix() Matrix4 {
	if a == nil {
		reportNilActor("TransformationMatrix")
		return Identity()
	}
	b := a.scene.backend
	b.PushMatrix()
	a.applyTransformRecursive(b)
	m := b.Modelview()
	b.PopMatrix()
	return m
}

// RelativeTransformationMatrix returns the model-view matrix composed from
// the transforms between ancestor (exclusive) and the actor. A nil ancestor
// composes from the root, which makes it equivalent to
// [Actor.TransformationMatrix].
func (a *Actor) RelativeTransformationMatrix(ancestor *Actor) Matrix4 {
	if a == nil {
		reportNilActor("RelativeTransformationMatrix")
		return Identity()
	}
	b := a.scene.backend
	b.PushMatrix()
	a.applyRelativeTransformRecursive(b, ancestor)
	m := b.Modelview()
	b.PopMatrix()
	return m
}

// ApplyTransformToPoint transforms a point in coordinates relative to the
// actor into window coordinates: the composed model-view matrix, the
// projection matrix, the perspective divide and the viewport remap are all
// applied.
func (a *Actor) ApplyTransformToPoint(point Vertex) Vertex {
	if a == nil {
		reportNilActor("ApplyTransformToPoint")
		return Vertex{}
	}
	b := a.scene.backend
	m := a.TransformationMatrix()
	wx, wy, wz := ProjectPoint(m, b.Projection(), b.Viewport(),
		point.X.Float(), point.Y.Float(), point.Z.Float())
	return Vertex{X: UnitFromFloat(wx), Y: UnitFromFloat(wy), Z: UnitFromFloat(wz)}
}

// ApplyRelativeTransformToPoint transforms a point in the actor's
// coordinate space into the coordinate space of ancestor, without
// projecting to the window. A nil ancestor gives root-relative coordinates.
func (a *Actor) ApplyRelativeTransformToPoint(ancestor *Actor, point Vertex) Vertex {
	if a == nil {
		reportNilActor("ApplyRelativeTransformToPoint")
		return Vertex{}
	}
	m := a.RelativeTransformationMatrix(ancestor)
	x, y, z, w := m.TransformPoint(point.X.Float(), point.Y.Float(), point.Z.Float(), 1)
	return Vertex{X: UnitFromFloat(x / w), Y: UnitFromFloat(y / w), Z: UnitFromFloat(z / w)}
}

// Vertices returns the window-space coordinates of the four corners of the
// actor's box. The vertices relate to the box as follows:
//
//	v[0] holds (0, 0)
//	v[1] holds (w, 0)
//	v[2] holds (0, h)
//	v[3] holds (w, h)
func (a *Actor) Vertices() [4]Vertex {
	if a == nil {
		reportNilActor("Vertices")
		return [4]Vertex{}
	}
	b := a.scene.backend
	m := a.TransformationMatrix()
	proj := b.Projection()
	vp := b.Viewport()

	w := a.box.Width().Float()
	h := a.box.Height().Float()
	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}

	var out [4]Vertex
	for i, c := range corners {
		wx, wy, wz := ProjectPoint(m, proj, vp, c[0], c[1], 0)
		out[i] = Vertex{X: UnitFromFloat(wx), Y: UnitFromFloat(wy), Z: UnitFromFloat(wz)}
	}
	return out
}

// RelativeVertices returns the four corners of the actor's box in the
// coordinate space of ancestor, in the same order as [Actor.Vertices].
// A nil ancestor gives root-relative corners.
func (a *Actor) RelativeVertices(ancestor *Actor) [4]Vertex {
	if a == nil {
		reportNilActor("RelativeVertices")
		return [4]Vertex{}
	}
	m := a.RelativeTransformationMatrix(ancestor)

	w := a.box.Width().Float()
	h := a.box.Height().Float()
	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}

	var out [4]Vertex
	for i, c := range corners {
		x, y, z, pw := m.TransformPoint(c[0], c[1], 0, 1)
		out[i] = Vertex{X: UnitFromFloat(x / pw), Y: UnitFromFloat(y / pw), Z: UnitFromFloat(z / pw)}
	}
	return out
}

// AbsolutePosition returns the actor's origin in window coordinates, with
// all ancestor transforms applied.
func (a *Actor) AbsolutePosition() (x, y int) {
	if a == nil {
		reportNilActor("AbsolutePosition")
		return 0, 0
	}
	v := a.ApplyTransformToPoint(Vertex{})
	return v.X.Pixels(), v.Y.Pixels()
}

// AbsoluteSize returns the size of the smallest axis-aligned window-space
// rectangle enclosing the actor. An actor rotated around the X or Y axis
// appears on screen as a general quadrilateral; the envelope covers it, and
// callers needing the true shape must use [Actor.Vertices].
func (a *Actor) AbsoluteSize() (width, height int) {
	if a == nil {
		reportNilActor("AbsoluteSize")
		return 0, 0
	}
	v := a.Vertices()
	xMin, xMax := v[0].X, v[0].X
	yMin, yMax := v[0].Y, v[0].Y
	for _, vert := range v[1:] {
		if vert.X < xMin {
			xMin = vert.X
		}
		if vert.X > xMax {
			xMax = vert.X
		}
		if vert.Y < yMin {
			yMin = vert.Y
		}
		if vert.Y > yMax {
			yMax = vert.Y
		}
	}
	return (xMax - xMin).Pixels(), (yMax - yMin).Pixels()
}
