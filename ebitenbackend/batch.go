package ebitenbackend

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Quad batching. Every fill the backend draws is a flat-colored quad over
// the same white pixel, so consecutive fills aimed at the same image can
// share one draw call. Quads accumulate until the draw target changes or a
// consumer of the surface (Clear, ReadPixel, Frame, Draw) forces a flush.

// appendQuad adds one projected quad to the pending batch, flushing first
// when the draw target changed since the previous quad.
func (b *Backend) appendQuad(target *ebiten.Image, verts [4]ebiten.Vertex) {
	if b.batchTarget != nil && b.batchTarget != target {
		b.Flush()
	}
	b.batchTarget = target

	// Two triangles per quad: TL-TR-BL, TR-BR-BL.
	base := uint32(len(b.batchVerts))
	b.batchVerts = append(b.batchVerts, verts[:]...)
	b.batchInds = append(b.batchInds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// Flush submits every pending quad in a single draw call. Calling it with
// nothing pending is a no-op.
func (b *Backend) Flush() {
	if len(b.batchVerts) == 0 {
		b.batchTarget = nil
		return
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	b.batchTarget.DrawTriangles32(b.batchVerts, b.batchInds, whitePixel, &triOp)
	b.batchVerts = b.batchVerts[:0]
	b.batchInds = b.batchInds[:0]
	b.batchTarget = nil
}

// dropPending discards the pending batch without drawing it. Used when the
// surfaces it was built for are being replaced.
func (b *Backend) dropPending() {
	b.batchVerts = b.batchVerts[:0]
	b.batchInds = b.batchInds[:0]
	b.batchTarget = nil
}

// clipSub returns the scissored view of t for the active clip, memoized
// until the clip or the surface changes. Returns nil when the clip leaves
// nothing to draw to.
func (b *Backend) clipSub(t *ebiten.Image) *ebiten.Image {
	if b.clipTarget != nil {
		return b.clipTarget
	}
	if b.clipEmpty {
		return nil
	}
	bounds := image.Rect(b.clip.X, b.clip.Y, b.clip.X+b.clip.Width, b.clip.Y+b.clip.Height)
	bounds = bounds.Intersect(t.Bounds())
	if bounds.Empty() {
		b.clipEmpty = true
		return nil
	}
	b.clipTarget = t.SubImage(bounds).(*ebiten.Image)
	return b.clipTarget
}

func (b *Backend) invalidateClipTarget() {
	b.clipTarget = nil
	b.clipEmpty = false
}
