package ebitenbackend

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefreshInterval is how often the overlay text is reformatted, in
// seconds. Printing a fresh reading every frame makes the digits unreadable.
const fpsRefreshInterval = 0.5

// fpsOverlay renders the current frame and tick rates in the top-left
// corner of the screen.
type fpsOverlay struct {
	text  string
	since float64
}

// update accumulates dt and reformats the overlay text once per interval.
func (o *fpsOverlay) update(dt float64) {
	o.since += dt
	if o.text != "" && o.since < fpsRefreshInterval {
		return
	}
	o.since = 0
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.text == "" {
		return
	}
	ebitenutil.DebugPrint(screen, o.text)
}
