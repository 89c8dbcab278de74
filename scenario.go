package troupe

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

// ScenarioStep represents a single action or expectation in a scenario
// script. Which fields matter depends on the action.
type ScenarioStep struct {
	Action  string `toml:"action"`
	Actor   string `toml:"actor"` // actor name; empty or "stage" targets the stage
	X       int    `toml:"x"`
	Y       int    `toml:"y"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Keycode uint16 `toml:"keycode"`
	Frames  int    `toml:"frames"`
}

// scenarioScript is the top-level TOML structure for a scenario script.
type scenarioScript struct {
	Steps []ScenarioStep `toml:"step"`
}

// ScenarioRunner sequences scripted actions and expectations against a live
// scene, one frame at a time. Scripts are TOML files of [[step]] tables:
//
//	[[step]]
//	action = "show"
//	actor = "button"
//
//	[[step]]
//	action = "click"
//	x = 120
//	y = 80
//
//	[[step]]
//	action = "expect-pick"
//	x = 120
//	y = 80
//	actor = "button"
//
// Supported actions: show, hide, move, resize, click, key, wait,
// expect-pick, expect-box. Expectation misses are recorded, not fatal;
// check Failures when the runner is done.
type ScenarioRunner struct {
	steps     []ScenarioStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadScenario parses a TOML scenario script and returns a runner ready to
// be stepped against a scene.
func LoadScenario(tomlData []byte) (*ScenarioRunner, error) {
	var script scenarioScript
	if err := toml.Unmarshal(tomlData, &script); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse scenario: no steps")
	}
	return &ScenarioRunner{steps: script.Steps}, nil
}

// LoadScenarioFile reads and parses a scenario script from path.
func LoadScenarioFile(path string) (*ScenarioRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	return LoadScenario(data)
}

// Done reports whether every step in the script has been executed.
func (r *ScenarioRunner) Done() bool {
	return r.done
}

// Failures returns the expectation failures recorded so far. The returned
// slice MUST NOT be mutated by the caller.
func (r *ScenarioRunner) Failures() []string {
	return r.failures
}

// Step advances the runner by one frame. Queued injected events are pumped
// first and consume the frame; wait frames count down next; otherwise the
// next step executes. Call once per frame, or in a bounded loop for
// headless runs.
func (r *ScenarioRunner) Step(s *Scene) {
	if r.done {
		return
	}
	// Let pending injections dispatch before advancing.
	if s.Pump() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	i := r.cursor
	st := r.steps[i]
	r.cursor++

	switch st.Action {
	case "show":
		if a := r.lookup(s, st, i); a != nil {
			a.Show()
		}
	case "hide":
		if a := r.lookup(s, st, i); a != nil {
			a.Hide()
		}
	case "move":
		if a := r.lookup(s, st, i); a != nil {
			a.SetPosition(st.X, st.Y)
		}
	case "resize":
		if a := r.lookup(s, st, i); a != nil {
			a.SetSize(st.Width, st.Height)
		}
	case "click":
		s.InjectClick(st.X, st.Y)
	case "key":
		s.InjectKeyPress(st.Keycode, 0)
		s.InjectKeyRelease(st.Keycode, 0)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect-pick":
		r.expectPick(s, st, i)
	case "expect-box":
		r.expectBox(s, st, i)
	default:
		r.fail(s, fmt.Sprintf("step %d: unknown action %q", i, st.Action))
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

// lookup resolves a step's actor reference. The empty string and "stage"
// mean the stage; anything else is a name lookup in the tree. A miss is
// recorded as a failure and returns nil.
func (r *ScenarioRunner) lookup(s *Scene, st ScenarioStep, stepIndex int) *Actor {
	if st.Actor == "" || st.Actor == "stage" {
		return s.stage.Actor
	}
	a := s.FindByName(st.Actor)
	if a == nil {
		r.fail(s, fmt.Sprintf("step %d: no actor named %q in the tree", stepIndex, st.Actor))
	}
	return a
}

func (r *ScenarioRunner) expectPick(s *Scene, st ScenarioStep, stepIndex int) {
	var want *Actor
	if st.Actor == "" || st.Actor == "stage" {
		want = s.stage.Actor
	} else {
		want = s.FindByName(st.Actor)
	}
	got := s.ActorAtPos(st.X, st.Y)
	if got == want {
		return
	}
	gotName := "none"
	if got != nil {
		gotName = fmt.Sprintf("%q (id %d)", got.name, got.id)
	}
	r.fail(s, fmt.Sprintf("step %d: expect-pick at (%d,%d): got %s, want %q",
		stepIndex, st.X, st.Y, gotName, st.Actor))
}

func (r *ScenarioRunner) expectBox(s *Scene, st ScenarioStep, stepIndex int) {
	a := r.lookup(s, st, stepIndex)
	if a == nil {
		return
	}
	got := a.Geometry()
	want := Geometry{X: st.X, Y: st.Y, Width: st.Width, Height: st.Height}
	if got != want {
		r.fail(s, fmt.Sprintf("step %d: expect-box on %q: got %+v, want %+v",
			stepIndex, st.Actor, got, want))
	}
}

func (r *ScenarioRunner) fail(s *Scene, msg string) {
	r.failures = append(r.failures, msg)
	s.logger.Warn("scenario expectation failed", zap.String("failure", msg))
}
