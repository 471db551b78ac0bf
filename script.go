package flipbook

import (
	"encoding/json"
	"fmt"
)

// defaultSettleFrames bounds a "settle" step that gives no limit.
const defaultSettleFrames = 600

// ScriptStep is a single action in an input script.
type ScriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Delta    float64 `json:"delta,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Progress float64 `json:"progress,omitempty"`
}

// Script is the top-level JSON structure of an input script.
type Script struct {
	Steps []ScriptStep `json:"steps"`
}

var scriptActions = map[string]struct{}{
	"wheel": {}, "drag": {}, "set": {}, "nudge": {},
	"wait": {}, "settle": {}, "screenshot": {},
}

// scriptHost is what a ScriptRunner drives: the windowed Widget or the
// headless Simulator.
type scriptHost interface {
	InjectWheel(x, y, deltaY float64)
	InjectDrag(fromX, fromY, toX, toY float64, frames int)
	Pending() int
	Book() *Book
	Screenshot(label string)
}

// ScriptRunner sequences injected input, direct progress changes and
// screenshots across frames.
type ScriptRunner struct {
	steps      []ScriptStep
	cursor     int
	waitCount  int
	settling   bool
	settleLeft int
	done       bool
}

// ParseScript parses a JSON input script and returns a runner ready to be
// attached to a Widget or Simulator.
func ParseScript(data []byte) (*ScriptRunner, error) {
	var script Script
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return NewScriptRunner(script)
}

// NewScriptRunner validates the steps of script.
func NewScriptRunner(script Script) (*ScriptRunner, error) {
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range script.Steps {
		if _, ok := scriptActions[st.Action]; !ok {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Hosts call it before delivering
// the frame's input.
func (r *ScriptRunner) step(h scriptHost) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if h.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.settling {
		r.settleLeft--
		if !h.Book().Frame().Settled && r.settleLeft > 0 {
			return
		}
		r.settling = false
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		h.Screenshot(st.Label)
	case "wheel":
		h.InjectWheel(st.X, st.Y, st.Delta)
	case "drag":
		h.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "set":
		h.Book().JumpTo(st.Progress)
	case "nudge":
		h.Book().Nudge(st.Delta)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "settle":
		r.settling = true
		r.settleLeft = st.Frames
		if r.settleLeft <= 0 {
			r.settleLeft = defaultSettleFrames
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.settling && h.Pending() == 0 {
		r.done = true
	}
}
