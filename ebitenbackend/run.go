package ebitenbackend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/troupe"
)

// Game drives a troupe scene from the Ebitengine game loop. Each tick it
// polls real input into scene events, pumps injected events, runs the
// optional UpdateFunc, and flushes deferred callbacks so queued redraws
// land on the backend frame before Draw blits it.
type Game struct {
	// UpdateFunc, when set, runs once per tick after input dispatch. The
	// dt argument is the fixed tick duration in seconds; pass it to
	// behaviour and tween updates.
	UpdateFunc func(dt float32)

	scene   *troupe.Scene
	backend *Backend
	loop    *troupe.ManualLoop

	title  string
	width  int
	height int

	showFPS bool
	fps     fpsOverlay

	lastX      int
	lastY      int
	moved      bool
	buttonDown [3]bool
	keyDown    [ebiten.KeyMax + 1]bool
}

var _ ebiten.Game = (*Game)(nil)

// NewGame builds a scene wired to a fresh backend and event loop, sized
// and configured from cfg. The stage is not mapped yet; Run maps it.
func NewGame(cfg troupe.StageConfig) *Game {
	backend := New(cfg.Stage.Width, cfg.Stage.Height)
	backend.SetupViewport(cfg.Perspective)
	loop := troupe.NewManualLoop()
	scene := troupe.NewScene(backend, loop)
	cfg.Apply(scene)
	return &Game{
		scene:   scene,
		backend: backend,
		loop:    loop,
		title:   cfg.Stage.Title,
		width:   cfg.Stage.Width,
		height:  cfg.Stage.Height,
		lastX:   -1,
		lastY:   -1,
	}
}

// Scene returns the scene the game drives.
func (g *Game) Scene() *troupe.Scene { return g.scene }

// Backend returns the rendering backend.
func (g *Game) Backend() *Backend { return g.backend }

// Loop returns the deferred-callback queue flushed every tick.
func (g *Game) Loop() *troupe.ManualLoop { return g.loop }

// SetShowFPS toggles a frame and tick rate overlay in the top-left corner
// of the window.
func (g *Game) SetShowFPS(show bool) { g.showFPS = show }

// ShowFPS reports whether the rate overlay is enabled.
func (g *Game) ShowFPS() bool { return g.showFPS }

// Run opens the window and drives the scene until the window closes or an
// update returns an error. The stage is mapped and painted on entry.
func (g *Game) Run() error {
	ebiten.SetWindowTitle(g.title)
	ebiten.SetWindowSize(g.width, g.height)
	g.scene.SetStageMapped(true)
	return ebiten.RunGame(g)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.pollInput()
	g.scene.Pump()
	if g.UpdateFunc != nil {
		g.UpdateFunc(1 / float32(ebiten.TPS()))
	}
	g.loop.Flush()
	if g.showFPS {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.backend.Draw(screen)
	if g.showFPS {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The scene keeps its logical size; the
// window scales it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() troupe.KeyModifiers {
	var mods troupe.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= troupe.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= troupe.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= troupe.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= troupe.ModMeta
	}
	return mods
}

// mouseButtons pairs each scene button with its ebiten source, in dispatch
// order.
var mouseButtons = [3]struct {
	scene  troupe.MouseButton
	ebiten ebiten.MouseButton
}{
	{troupe.MouseButtonLeft, ebiten.MouseButtonLeft},
	{troupe.MouseButtonRight, ebiten.MouseButtonRight},
	{troupe.MouseButtonMiddle, ebiten.MouseButtonMiddle},
}

// pollInput converts this tick's device state into scene events: motion
// when the cursor moved, press and release edges per button, wheel steps,
// and key edges.
func (g *Game) pollInput() {
	mods := readModifiers()

	x, y := ebiten.CursorPosition()
	if !g.moved || x != g.lastX || y != g.lastY {
		g.moved = true
		g.lastX = x
		g.lastY = y
		g.scene.PointerMove(x, y, mods)
	}

	for i, mb := range mouseButtons {
		down := ebiten.IsMouseButtonPressed(mb.ebiten)
		if down == g.buttonDown[i] {
			continue
		}
		g.buttonDown[i] = down
		if down {
			g.scene.PointerPress(x, y, mb.scene, mods)
		} else {
			g.scene.PointerRelease(x, y, mb.scene, mods)
		}
	}

	wheelX, wheelY := ebiten.Wheel()
	if wheelY > 0 {
		g.scene.PointerScroll(x, y, troupe.ScrollUp, mods)
	} else if wheelY < 0 {
		g.scene.PointerScroll(x, y, troupe.ScrollDown, mods)
	}
	if wheelX > 0 {
		g.scene.PointerScroll(x, y, troupe.ScrollRight, mods)
	} else if wheelX < 0 {
		g.scene.PointerScroll(x, y, troupe.ScrollLeft, mods)
	}

	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		down := ebiten.IsKeyPressed(k)
		if down == g.keyDown[k] {
			continue
		}
		g.keyDown[k] = down
		if down {
			g.scene.KeyPress(uint16(k), mods)
		} else {
			g.scene.KeyRelease(uint16(k), mods)
		}
	}
}
