package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Key    string  `json:"key,omitempty"`
	View   string  `json:"view,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"move": true, "click": true, "dblclick": true, "key": true,
	"view": true, "wait": true, "screenshot": true,
}

// ScriptRunner sequences injected input, view switches and screenshots
// across frames for automated visual checks. Attach with App.SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script such as
//
//	{"steps": [
//	  {"action": "view", "view": "personal-week"},
//	  {"action": "click", "x": 400, "y": 300},
//	  {"action": "key", "key": "Escape"},
//	  {"action": "wait", "frames": 10},
//	  {"action": "screenshot", "label": "week"}
//	]}
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "key" {
			if _, ok := ParseKey(st.Key); !ok {
				return nil, fmt.Errorf("parse script: step %d: unknown key %q", i, st.Key)
			}
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// ParseKey maps a key name to a Key. Names follow the DOM: "Delete",
// "Backspace", "Escape" and "Ctrl+D".
func ParseKey(name string) (Key, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "delete", "backspace":
		return KeyDelete, true
	case "escape", "esc":
		return KeyEscape, true
	case "ctrl+d", "debug":
		return KeyToggleDebug, true
	}
	return KeyNone, false
}

// SetScript attaches a runner. Its step is called from App.Update before
// input is processed.
func (a *App) SetScript(r *ScriptRunner) { a.runner = r }

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool { return r.done }

// step advances the runner by one frame.
func (r *ScriptRunner) step(a *App) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(a.injectQueue) > 0 || len(a.keyQueue) > 0 {
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

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "move":
		a.InjectMove(st.X, st.Y)
	case "click":
		a.InjectClick(st.X, st.Y)
	case "dblclick":
		a.InjectDoubleClick(st.X, st.Y)
	case "key":
		k, _ := ParseKey(st.Key)
		a.InjectKey(k)
	case "view":
		a.SwitchView(st.View)
	case "screenshot":
		a.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(a.injectQueue) == 0 && len(a.keyQueue) == 0 {
		r.done = true
	}
}
