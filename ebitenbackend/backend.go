// Package ebitenbackend renders troupe scenes with Ebitengine.
//
// The Backend draws onto two offscreen images: a visible frame that
// accumulates regular paints, and a pick surface that receives the flat
// silhouettes used for hit testing. Implementing [troupe.PickSurface] this
// way keeps hit tests from ever clobbering the frame shown on screen.
//
// The Game adapter in this package owns the per-frame plumbing: it polls
// mouse, wheel, and keyboard state into scene events, pumps injected
// events, flushes the deferred queue, and blits the frame. Most programs
// only need [Run].
package ebitenbackend

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/troupe"
)

// whitePixel is a 1x1 white image used for drawing solid color fills.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// Backend implements troupe's rendering contract on offscreen Ebitengine
// images. It is not safe for concurrent use; drive it from the Ebitengine
// game loop.
type Backend struct {
	width  int
	height int

	frame *ebiten.Image
	pick  *ebiten.Image

	stack      []troupe.Matrix4
	base       troupe.Matrix4
	projection troupe.Matrix4
	viewport   troupe.Geometry
	persp      troupe.PerspectiveSection

	color   troupe.Color
	clip    troupe.Geometry
	hasClip bool

	// Memoized scissored view of the current surface; reset whenever the
	// clip or the surface changes.
	clipTarget *ebiten.Image
	clipEmpty  bool

	inPick     bool
	pickPixels []byte
	pickDirty  bool

	// Pending quad batch, all destined for batchTarget.
	batchVerts  []ebiten.Vertex
	batchInds   []uint32
	batchTarget *ebiten.Image
}

var (
	_ troupe.Backend     = (*Backend)(nil)
	_ troupe.PickSurface = (*Backend)(nil)
)

// New creates a backend with the given surface size in pixels and the
// stock stage perspective. Call SetupViewport to change the projection.
func New(width, height int) *Backend {
	b := &Backend{persp: troupe.DefaultStageConfig().Perspective}
	b.Resize(width, height)
	return b
}

// Resize reallocates the offscreen surfaces and rebuilds the viewport.
// The previous frame contents are discarded, along with any quads still
// pending for them.
func (b *Backend) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	b.dropPending()
	b.invalidateClipTarget()
	b.width = width
	b.height = height
	b.frame = ebiten.NewImage(width, height)
	b.pick = ebiten.NewImage(width, height)
	b.pickPixels = make([]byte, 4*width*height)
	b.pickDirty = true
	b.SetupViewport(b.persp)
}

// SetupViewport derives the projection and the base modelview from a
// perspective description. The base modelview shifts and scales eye space
// so that with the default aspect of 1, one stage unit lands on one window
// pixel at depth zero.
func (b *Backend) SetupViewport(persp troupe.PerspectiveSection) {
	b.persp = persp
	aspect := persp.Aspect
	if aspect == 0 {
		aspect = float64(b.width) / float64(b.height)
	}
	proj := troupe.Perspective(persp.Fovy, aspect, persp.ZNear, persp.ZFar)

	// The camera sits at the distance where a unit square spans a unit of
	// the projection plane.
	zCamera := 0.5 * proj[0]

	w := float64(b.width)
	h := float64(b.height)
	base := troupe.Identity().
		Translate(-0.5, -0.5, -zCamera).
		Scale(1/w, -1/h, 1/w).
		Translate(0, -h, 0)

	b.projection = proj
	b.base = base
	b.stack = append(b.stack[:0], base)
	b.viewport = troupe.Geometry{X: 0, Y: 0, Width: b.width, Height: b.height}
}

// --- Matrix stack ---

func (b *Backend) PushMatrix() {
	b.stack = append(b.stack, b.current())
}

func (b *Backend) PopMatrix() {
	if len(b.stack) <= 1 {
		panic("ebitenbackend: matrix stack underflow")
	}
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *Backend) current() troupe.Matrix4 {
	return b.stack[len(b.stack)-1]
}

func (b *Backend) setCurrent(m troupe.Matrix4) {
	b.stack[len(b.stack)-1] = m
}

func (b *Backend) Translate(x, y, z float64) {
	b.setCurrent(b.current().Translate(x, y, z))
}

func (b *Backend) Scale(sx, sy float64) {
	b.setCurrent(b.current().Scale(sx, sy, 1))
}

func (b *Backend) Rotate(axis troupe.RotateAxis, angle float64) {
	b.setCurrent(b.current().Rotate(axis, angle))
}

func (b *Backend) Modelview() troupe.Matrix4  { return b.current() }
func (b *Backend) Projection() troupe.Matrix4 { return b.projection }
func (b *Backend) Viewport() troupe.Geometry  { return b.viewport }

// --- Clipping ---

// SetClipRect installs a clip rectangle given in the current modelview
// space. Fills are scissored to its window-space bounds.
func (b *Backend) SetClipRect(g troupe.Geometry) {
	b.clip = troupe.ProjectRectBounds(b.current(), b.projection, b.viewport, g)
	b.hasClip = true
	b.invalidateClipTarget()
}

func (b *Backend) UnsetClip() {
	b.hasClip = false
	b.invalidateClipTarget()
}

// --- Drawing ---

// target returns the image fills go to: the pick surface during a hit
// test, the visible frame otherwise.
func (b *Backend) target() *ebiten.Image {
	if b.inPick {
		return b.pick
	}
	return b.frame
}

func (b *Backend) Clear(c troupe.Color) {
	b.Flush()
	b.target().Fill(color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (b *Backend) SetDrawColor(c troupe.Color) { b.color = c }

// DrawFilledRect projects the four corners of box through the current
// modelview and queues the resulting quad, two triangles over the shared
// white pixel, on the batch for the current draw target. Vertex colors are
// premultiplied; anti-aliasing stays off so pick silhouettes keep their
// exact encoded color.
func (b *Backend) DrawFilledRect(box troupe.ActorBox, c troupe.Color) {
	b.color = c
	target := b.target()
	if b.hasClip {
		target = b.clipSub(target)
		if target == nil {
			return
		}
	}

	mv := b.current()
	w := box.Width().Float()
	h := box.Height().Float()
	ox := box.X1.Float()
	oy := box.Y1.Float()

	// Premultiplied RGBA.
	ca := float32(c.A) / 255
	cr := float32(c.R) / 255 * ca
	cg := float32(c.G) / 255 * ca
	cb := float32(c.B) / 255 * ca

	// Corners in TL, TR, BL, BR order.
	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}
	var verts [4]ebiten.Vertex
	for i, p := range corners {
		px, py, _ := troupe.ProjectPoint(mv, b.projection, b.viewport, ox+p[0], oy+p[1], 0)
		verts[i] = ebiten.Vertex{
			DstX: float32(px),
			DstY: float32(py),
			// Map to center of white pixel.
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	b.appendQuad(target, verts)
}

// --- Picking ---

// BeginPick diverts subsequent fills to the pick surface.
func (b *Backend) BeginPick() {
	b.Flush()
	b.invalidateClipTarget()
	b.inPick = true
	b.pickDirty = true
}

// EndPick routes fills back to the visible frame.
func (b *Backend) EndPick() {
	b.Flush()
	b.invalidateClipTarget()
	b.inPick = false
}

func (b *Backend) PickBits() (r, g, bl int) {
	return 8, 8, 8
}

// ReadPixel reports the pick surface color at (x, y). The whole surface is
// read back once per pick pass and served from memory afterwards, since
// ReadPixels stalls the GPU pipeline.
func (b *Backend) ReadPixel(x, y int) (troupe.Color, bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return troupe.Color{}, false
	}
	b.Flush()
	if b.pickDirty {
		b.pick.ReadPixels(b.pickPixels)
		b.pickDirty = false
	}
	i := 4 * (y*b.width + x)
	return troupe.Color{
		R: b.pickPixels[i],
		G: b.pickPixels[i+1],
		B: b.pickPixels[i+2],
		A: b.pickPixels[i+3],
	}, true
}

// Frame returns the offscreen image regular paints accumulate on, with any
// pending quads flushed onto it first. The returned image MUST NOT be
// disposed; Resize replaces it.
func (b *Backend) Frame() *ebiten.Image {
	b.Flush()
	return b.frame
}

// Draw blits the accumulated frame onto screen, typically from an
// ebiten.Game Draw method.
func (b *Backend) Draw(screen *ebiten.Image) {
	b.Flush()
	screen.DrawImage(b.frame, nil)
}
