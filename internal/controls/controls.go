// Package controls maps named keys to camera moves and the wave trigger.
package controls

import (
	"fmt"
	"sort"
	"strings"
)

// Action is what a key does.
type Action int

const (
	ActionNone Action = iota
	ActionPanLeft
	ActionPanRight
	ActionPanUp
	ActionPanDown
	ActionZoomIn
	ActionZoomOut
	ActionWave
)

var actionNames = map[Action]string{
	ActionNone:     "none",
	ActionPanLeft:  "pan-left",
	ActionPanRight: "pan-right",
	ActionPanUp:    "pan-up",
	ActionPanDown:  "pan-down",
	ActionZoomIn:   "zoom-in",
	ActionZoomOut:  "zoom-out",
	ActionWave:     "wave",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction returns the action named s (case-insensitive), e.g. "zoom-in".
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, n := range actionNames {
		if n == s {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", s)
}

// Bindings maps key names (KeyA, ArrowLeft, NumpadAdd, ...) to actions.
type Bindings map[string]Action

// DefaultBindings returns WASD/QE and the arrow and numpad keys for the camera, F for the wave.
func DefaultBindings() Bindings {
	return Bindings{
		"KeyA":           ActionPanLeft,
		"ArrowLeft":      ActionPanLeft,
		"KeyD":           ActionPanRight,
		"ArrowRight":     ActionPanRight,
		"KeyW":           ActionPanUp,
		"ArrowUp":        ActionPanUp,
		"KeyS":           ActionPanDown,
		"ArrowDown":      ActionPanDown,
		"KeyQ":           ActionZoomIn,
		"NumpadAdd":      ActionZoomIn,
		"KeyE":           ActionZoomOut,
		"NumpadSubtract": ActionZoomOut,
		"KeyF":           ActionWave,
	}
}

// Lookup returns the action bound to key, ActionNone for unbound keys.
func (b Bindings) Lookup(key string) Action {
	return b[key]
}

// Override applies key -> action name pairs on top of b. The action "none" unbinds the key.
// Nothing is changed if any pair is invalid.
func (b Bindings) Override(pairs map[string]string) error {
	parsed := make(map[string]Action, len(pairs))
	for key, name := range pairs {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("empty key name bound to %q", name)
		}
		a, err := ParseAction(name)
		if err != nil {
			return fmt.Errorf("key %s: %w", key, err)
		}
		parsed[key] = a
	}
	for key, a := range parsed {
		if a == ActionNone {
			delete(b, key)
			continue
		}
		b[key] = a
	}
	return nil
}

// Keys returns the bound key names in sorted order.
func (b Bindings) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Camera is a perspective camera that always looks at Target.
type Camera struct {
	Position [3]float32
	Target   [3]float32
	Fovy     float32
}

// DefaultCamera is above and in front of the field, looking at the centre.
func DefaultCamera() Camera {
	return Camera{Position: [3]float32{0, 100, 200}, Fovy: 60}
}

// Move applies a camera action with the given step and re-aims at the origin. It reports
// whether a is a camera action.
func (c *Camera) Move(a Action, step float32) bool {
	switch a {
	case ActionPanLeft:
		c.Position[0] -= step
	case ActionPanRight:
		c.Position[0] += step
	case ActionPanUp:
		c.Position[1] += step
	case ActionPanDown:
		c.Position[1] -= step
	case ActionZoomIn:
		c.Position[2] -= step
	case ActionZoomOut:
		c.Position[2] += step
	default:
		return false
	}
	c.Target = [3]float32{}
	return true
}
