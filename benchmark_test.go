package troupe

import (
	"testing"
)

// setupBenchScene creates a scene with n filled reactive actors laid out in
// a 100-wide grid of 40px cells on the stage. The initial redraw has been
// flushed, so steady-state iterations measure traversal and recording only.
func setupBenchScene(n int) (*Scene, *ManualLoop) {
	backend := NewRecorderBackend(1280, 720)
	loop := NewManualLoop()
	s := NewScene(backend, loop)
	s.SetStageMapped(true)
	s.Stage().Show()
	for i := 0; i < n; i++ {
		a := s.NewActor()
		a.SetDelegate(fillDelegate{color: Color{200, 0, 0, 255}})
		a.SetPosition(i%100*40, i/100*40)
		a.SetSize(32, 32)
		a.SetReactive(true)
		s.Stage().Add(a)
		a.Show()
	}
	loop.Flush()
	return s, loop
}

// setupGroupedScene creates rows groups of cols actors each, so paint and
// layout walk a two-level tree instead of one flat child list.
func setupGroupedScene(rows, cols int) *Scene {
	backend := NewRecorderBackend(1280, 720)
	loop := NewManualLoop()
	s := NewScene(backend, loop)
	s.SetStageMapped(true)
	s.Stage().Show()
	for r := 0; r < rows; r++ {
		g := s.NewGroup()
		s.Stage().Add(g.Actor)
		for c := 0; c < cols; c++ {
			a := s.NewActor()
			a.SetDelegate(fillDelegate{color: Color{0, 120, 240, 255}})
			a.SetPosition(c*40, r*40)
			a.SetSize(32, 32)
			g.Add(a)
		}
		g.ShowAll()
	}
	loop.Flush()
	return s
}

// setupDeepScene builds a chain of depth nested groups with a reactive leaf
// actor at the bottom, for benchmarks that stress long parent chains.
func setupDeepScene(depth int) (*Scene, *Actor) {
	backend := NewRecorderBackend(640, 480)
	loop := NewManualLoop()
	s := NewScene(backend, loop)
	s.SetStageMapped(true)
	s.Stage().Show()
	parent := s.Stage()
	for i := 0; i < depth; i++ {
		g := s.NewGroup()
		g.SetPosition(1, 1)
		g.SetScale(1.001, 1.001)
		parent.Add(g.Actor)
		g.Show()
		parent = g
	}
	leaf := s.NewActor()
	leaf.SetPosition(2, 2)
	leaf.SetSize(8, 8)
	leaf.SetReactive(true)
	parent.Add(leaf)
	leaf.Show()
	loop.Flush()
	return s, leaf
}

// --- Paint Benchmarks ---

func BenchmarkPaint_1000Actors_Static(b *testing.B) {
	s, _ := setupBenchScene(1000)

	s.Paint() // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Paint()
	}
}

func BenchmarkPaint_10000Actors_Static(b *testing.B) {
	s, _ := setupBenchScene(10000)

	s.Paint() // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Paint()
	}
}

func BenchmarkPaint_1000Actors_Moving(b *testing.B) {
	s, _ := setupBenchScene(1000)
	children := s.Stage().Children()

	s.Paint() // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		// Move every actor so every box changes before the paint.
		dx := 1
		if i%2 == 1 {
			dx = -1
		}
		for _, child := range children {
			child.MoveBy(dx, 0)
		}
		s.Paint()
	}
}

func BenchmarkPaint_GroupedTree_100x10(b *testing.B) {
	s := setupGroupedScene(100, 10)

	s.Paint() // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Paint()
	}
}

// --- Pick Benchmarks ---

func BenchmarkActorAtPos_1000Reactive(b *testing.B) {
	s, _ := setupBenchScene(1000)

	s.ActorAtPos(500, 50) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.ActorAtPos(500, 50)
	}
}

func BenchmarkActorAtPos_1000Reactive_Miss(b *testing.B) {
	s, _ := setupBenchScene(1000)

	// (36, 36) falls in the 8px gap between grid cells, so the pick pass
	// reads back white and resolves to the stage.
	s.ActorAtPos(36, 36) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.ActorAtPos(36, 36)
	}
}

// --- Event Dispatch Benchmarks ---

func BenchmarkDispatchEvent_Depth20(b *testing.B) {
	s, leaf := setupDeepScene(20)
	leaf.Connect(SignalButtonPress, func(a *Actor, ev *Event) bool { return true })
	ev := &Event{Kind: EventButtonPress, X: 5, Y: 5, Button: MouseButtonLeft}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.DispatchEvent(leaf, ev)
	}
}

func BenchmarkDispatchEvent_Depth20_Unhandled(b *testing.B) {
	s, leaf := setupDeepScene(20)
	ev := &Event{Kind: EventMotion, X: 5, Y: 5}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.DispatchEvent(leaf, ev)
	}
}

// --- Input Pump Benchmark ---

func BenchmarkPump_Motion_1000Actors(b *testing.B) {
	s, _ := setupBenchScene(1000)

	// The first motion synthesizes the enter crossing; steady state is one
	// pick pass plus a single motion dispatch per pump.
	s.InjectMotion(500, 50, 0)
	s.Pump()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.InjectMotion(500, 50, 0)
		s.Pump()
	}
}

// --- Layout Benchmarks ---

func BenchmarkRequestCoords_Toggle(b *testing.B) {
	s, _ := setupBenchScene(1)
	a := s.Stage().ChildAt(0)
	boxes := [2]ActorBox{
		BoxFromPixels(0, 0, 32, 32),
		BoxFromPixels(1, 0, 32, 32),
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a.RequestCoords(boxes[i%2])
	}
}

func BenchmarkQueryCoords_Group100Children(b *testing.B) {
	s := setupGroupedScene(1, 100)
	g := s.Stage().ChildAt(0)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g.QueryCoords()
	}
}

func BenchmarkShowHide_Toggle(b *testing.B) {
	s, _ := setupBenchScene(100)
	a := s.Stage().ChildAt(0)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a.Hide()
		a.Show()
	}
}

// --- Lookup Benchmarks ---

func BenchmarkFindByName_1000(b *testing.B) {
	s, _ := setupBenchScene(1000)
	// The last child is visited last by the depth-first walk, so this is
	// the worst case for a hit.
	s.Stage().ChildAt(999).SetName("needle")

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.FindByName("needle")
	}
}

func BenchmarkActorByID_1000(b *testing.B) {
	s, _ := setupBenchScene(1000)
	id := s.Stage().ChildAt(500).ID()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.ActorByID(id)
	}
}

// --- Transform Benchmarks ---

func BenchmarkTransformationMatrix_Depth10(b *testing.B) {
	_, leaf := setupDeepScene(10)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		benchMatrix = leaf.TransformationMatrix()
	}
}

func BenchmarkVertices_Depth10(b *testing.B) {
	_, leaf := setupDeepScene(10)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		benchVertices = leaf.Vertices()
	}
}

// --- Redraw Scheduling Benchmarks ---

func BenchmarkQueueRedraw_Coalesced(b *testing.B) {
	s, _ := setupBenchScene(100)
	s.QueueRedraw() // leave one pending so iterations hit the coalesced path

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.QueueRedraw()
	}
}

func BenchmarkRedrawCycle_100Actors(b *testing.B) {
	s, loop := setupBenchScene(100)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.QueueRedraw()
		loop.Flush()
	}
}

// =============================================================================
// Raw baselines with no tree and no dispatch. These measure the floor:
// matrix and unit arithmetic cost per operation.
// =============================================================================

var (
	benchMatrix   Matrix4
	benchVertices [4]Vertex
	benchX        float64
	benchY        float64
	benchPixels   int
)

func BenchmarkRaw_MatrixMul(b *testing.B) {
	m := Translation(10, 20, 0).Scale(2, 2, 1)
	n := RotationZ(30)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m = m.Mul(n)
	}
	benchMatrix = m
}

func BenchmarkRaw_ProjectPoint(b *testing.B) {
	modelview := Translation(100, 100, 0).Rotate(ZAxis, 30)
	projection := Ortho(0, 640, 480, 0, -1, 1)
	viewport := Geometry{Width: 640, Height: 480}

	b.ResetTimer()
	b.ReportAllocs()
	var x, y float64
	for i := 0; i < b.N; i++ {
		x, y, _ = ProjectPoint(modelview, projection, viewport, 10, 20, 0)
	}
	benchX, benchY = x, y
}

func BenchmarkRaw_UnitRoundTrip(b *testing.B) {
	b.ReportAllocs()
	total := 0
	for i := 0; i < b.N; i++ {
		total += UnitFromFloat(float64(i) * 0.25).Pixels()
	}
	benchPixels = total
}
