// Package troupe is a retained-mode scene graph with a 2D surface and a
// 3D transform pipeline, built to render with [Ebitengine].
//
// Troupe provides the actor tree, show/hide and realize/map lifecycle,
// unit-based geometry, depth-sorted groups, color-coded hit testing,
// capture and bubble event dispatch, scripted input injection, and
// tween-driven behaviours that a windowing-style scene needs.
//
// # Quick start
//
// The simplest way to get started is the ebitenbackend adapter, which
// creates the window and game loop for you:
//
//	game := ebitenbackend.NewGame(*troupe.DefaultStageConfig())
//	scene := game.Scene()
//
//	box := scene.NewActor()
//	box.SetPosition(100, 50)
//	box.SetSize(80, 40)
//	box.Show()
//	scene.Stage().Add(box)
//
//	if err := game.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// For headless work (tests, tools, scripted scenarios) wire a
// [RecorderBackend] and a [ManualLoop] instead and drive frames yourself:
//
//	backend := troupe.NewRecorderBackend(640, 480)
//	loop := troupe.NewManualLoop()
//	scene := troupe.NewScene(backend, loop)
//	scene.SetStageMapped(true)
//	loop.Flush() // paint
//
// # Scene graph
//
// Every visual element is an [Actor]. Actors form a tree rooted at the
// stage, [Scene.Stage], a [Group] that owns the window-sized box. Children
// inherit their parent's transform and effective opacity, and paint in
// depth order within their group.
//
// An actor only reaches the screen when it is shown, realized, and mapped;
// [Actor.Show] walks those states for you and [Actor.IsVisible] reports
// the combined result. Geometry is tracked in [Unit] fixed-point
// coordinates; the pixel-flavored accessors round at the edges.
//
// # Events
//
// Input enters through the [Scene] pointer and key methods (real devices)
// or the Inject family (scripts and tests; drained by [Scene.Pump]).
// Dispatch walks the ancestry twice: a capture pass from the stage down to
// the target, then a bubble pass back up, stopping at the first handler
// that claims the event. Pointer targets come from the pick pass, which
// repaints actors as flat id colors and reads back the hit pixel.
//
// # Key features
//
// Troupe includes per-axis rotation and anchor-relative scaling, clip
// rectangles, gravity anchors, TOML stage configuration, structured
// logging (via [zap]), scale behaviours (via [gween]), scripted scenario
// playback for integration tests, and ECS integration (via [Donburi]
// adapter in troupe/ecs).
//
// [Ebitengine]: https://ebitengine.org
// [zap]: https://github.com/uber-go/zap
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package troupe
