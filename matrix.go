package troupe

import "math"

// Matrix4 is a 4x4 transformation matrix in column-major order (element
// (row, col) lives at index col*4+row), matching the convention of GL-style
// immediate-mode backends. Angles are in degrees throughout.
type Matrix4 [16]float64

// Identity returns the identity matrix.
func Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m × n, so that applying the result is equivalent to applying
// m first in a root-to-leaf composition (n post-multiplied onto m).
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	var out Matrix4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// Translation returns a matrix translating by (x, y, z).
func Translation(x, y, z float64) Matrix4 {
	out := Identity()
	out[12] = x
	out[13] = y
	out[14] = z
	return out
}

// Scaling returns a matrix scaling by (sx, sy, sz).
func Scaling(sx, sy, sz float64) Matrix4 {
	out := Identity()
	out[0] = sx
	out[5] = sy
	out[10] = sz
	return out
}

// RotationX returns a rotation of angle degrees around the X axis.
func RotationX(angle float64) Matrix4 {
	s, c := sincosDeg(angle)
	out := Identity()
	out[5] = c
	out[9] = -s
	out[6] = s
	out[10] = c
	return out
}

// RotationY returns a rotation of angle degrees around the Y axis.
func RotationY(angle float64) Matrix4 {
	s, c := sincosDeg(angle)
	out := Identity()
	out[0] = c
	out[8] = s
	out[2] = -s
	out[10] = c
	return out
}

// RotationZ returns a rotation of angle degrees around the Z axis.
func RotationZ(angle float64) Matrix4 {
	s, c := sincosDeg(angle)
	out := Identity()
	out[0] = c
	out[4] = -s
	out[1] = s
	out[5] = c
	return out
}

func sincosDeg(angle float64) (sin, cos float64) {
	return math.Sincos(angle * math.Pi / 180)
}

// Translate returns m with a translation applied after it.
func (m Matrix4) Translate(x, y, z float64) Matrix4 {
	return m.Mul(Translation(x, y, z))
}

// Scale returns m with a scale applied after it.
func (m Matrix4) Scale(sx, sy, sz float64) Matrix4 {
	return m.Mul(Scaling(sx, sy, sz))
}

// Rotate returns m with a rotation around the given axis applied after it.
func (m Matrix4) Rotate(axis RotateAxis, angle float64) Matrix4 {
	switch axis {
	case XAxis:
		return m.Mul(RotationX(angle))
	case YAxis:
		return m.Mul(RotationY(angle))
	default:
		return m.Mul(RotationZ(angle))
	}
}

// TransformPoint applies m to the homogeneous point (x, y, z, w).
func (m Matrix4) TransformPoint(x, y, z, w float64) (ox, oy, oz, ow float64) {
	ox = m[0]*x + m[4]*y + m[8]*z + m[12]*w
	oy = m[1]*x + m[5]*y + m[9]*z + m[13]*w
	oz = m[2]*x + m[6]*y + m[10]*z + m[14]*w
	ow = m[3]*x + m[7]*y + m[11]*z + m[15]*w
	return
}

// Ortho returns an orthographic projection mapping the box
// (left,right)×(bottom,top)×(near,far) onto the normalized device cube.
// Ortho(0, w, h, 0, -1, 1) gives a 1:1 pixel mapping with Y down.
func Ortho(left, right, bottom, top, near, far float64) Matrix4 {
	out := Identity()
	out[0] = 2 / (right - left)
	out[5] = 2 / (top - bottom)
	out[10] = -2 / (far - near)
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
	out[14] = -(far + near) / (far - near)
	return out
}

// Perspective returns a perspective projection with a vertical field of view
// of fovy degrees. Used by backends honoring a stage's perspective setup.
func Perspective(fovy, aspect, zNear, zFar float64) Matrix4 {
	f := 1 / math.Tan(fovy*math.Pi/360)
	var out Matrix4
	out[0] = f / aspect
	out[5] = f
	out[10] = (zFar + zNear) / (zNear - zFar)
	out[11] = -1
	out[14] = 2 * zFar * zNear / (zNear - zFar)
	return out
}

// ProjectPoint runs the full projection pipeline for one local-space point:
// model-view, projection, perspective divide, then the viewport remap with
// the Y axis flipped (normalized-device up maps to decreasing window Y).
// A degenerate W after projection is not guarded.
func ProjectPoint(modelview, projection Matrix4, viewport Geometry, x, y, z float64) (wx, wy, wz float64) {
	mx, my, mz, mw := modelview.TransformPoint(x, y, z, 1)
	px, py, pz, pw := projection.TransformPoint(mx, my, mz, mw)
	wx = ((px/pw+1)/2)*float64(viewport.Width) + float64(viewport.X)
	wy = float64(viewport.Height) - ((py/pw+1)/2)*float64(viewport.Height) + float64(viewport.Y)
	wz = ((pz/pw+1)/2)*float64(viewport.Width) + float64(viewport.X)
	return
}

// ProjectRectBounds projects the z=0 rectangle rect through the pipeline and
// returns its axis-aligned window-space bounds. Backends use it to turn a
// modelview-space clip into a scissor rectangle; the bounds are exact for
// translation and scale and conservative under rotation.
func ProjectRectBounds(modelview, projection Matrix4, viewport Geometry, rect Geometry) Geometry {
	corners := [4][2]float64{
		{float64(rect.X), float64(rect.Y)},
		{float64(rect.X + rect.Width), float64(rect.Y)},
		{float64(rect.X), float64(rect.Y + rect.Height)},
		{float64(rect.X + rect.Width), float64(rect.Y + rect.Height)},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		px, py, _ := ProjectPoint(modelview, projection, viewport, p[0], p[1], 0)
		minX = math.Min(minX, px)
		minY = math.Min(minY, py)
		maxX = math.Max(maxX, px)
		maxY = math.Max(maxY, py)
	}
	x := int(math.Floor(snapBound(minX)))
	y := int(math.Floor(snapBound(minY)))
	return Geometry{
		X:      x,
		Y:      y,
		Width:  int(math.Ceil(snapBound(maxX))) - x,
		Height: int(math.Ceil(snapBound(maxY))) - y,
	}
}

// snapBound collapses projection round-off onto the nearest pixel edge, so
// axis-aligned rectangles quantize to the same bounds on every platform.
func snapBound(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		return r
	}
	return v
}
