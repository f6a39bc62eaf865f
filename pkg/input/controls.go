package input

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-drift/gauge/pkg/errors"
)

// Target receives sanitized control signals. *gauge.Widget satisfies it.
type Target interface {
	SetValue(int)
	SetAnimate(bool)
	SetHidden(bool)
}

// Event is one of ValueChanged, AnimateToggled or HiddenToggled.
type Event any

// ValueChanged carries the raw text of the value field.
type ValueChanged struct {
	Raw string
}

// AnimateToggled carries the state of the animate checkbox.
type AnimateToggled struct {
	Checked bool
}

// HiddenToggled carries the state of the hidden checkbox.
type HiddenToggled struct {
	Checked bool
}

// Controls routes control events to a target.
type Controls struct {
	Target Target
}

// NewControls returns controls bound to t.
func NewControls(t Target) *Controls {
	return &Controls{Target: t}
}

// OnValueInput sanitizes raw and forwards it as the new value.
func (c *Controls) OnValueInput(raw string) {
	c.Target.SetValue(SanitizeValue(raw))
}

// OnAnimateToggled forwards the animate checkbox state.
func (c *Controls) OnAnimateToggled(checked bool) {
	c.Target.SetAnimate(checked)
}

// OnHiddenToggled forwards the hidden checkbox state.
func (c *Controls) OnHiddenToggled(checked bool) {
	c.Target.SetHidden(checked)
}

// Dispatch routes ev to the matching handler. Unknown events are reported
// and returned as a parsing error; the target is not touched.
func (c *Controls) Dispatch(ev Event) error {
	switch e := ev.(type) {
	case ValueChanged:
		c.OnValueInput(e.Raw)
	case *ValueChanged:
		c.OnValueInput(e.Raw)
	case AnimateToggled:
		c.OnAnimateToggled(e.Checked)
	case *AnimateToggled:
		c.OnAnimateToggled(e.Checked)
	case HiddenToggled:
		c.OnHiddenToggled(e.Checked)
	case *HiddenToggled:
		c.OnHiddenToggled(e.Checked)
	default:
		err := &errors.GaugeError{
			Op:   "input.Dispatch",
			Kind: errors.KindParsing,
			Err: &errors.ParseError{
				Source:   "controls",
				DataType: "Event",
				Got:      ev,
			},
		}
		errors.Report(err)
		return err
	}
	return nil
}

// DecodeEvent builds an event from a loosely typed payload such as a decoded
// JSON object: {"type": "value", "raw": "42"}, {"type": "animate",
// "checked": true} or {"type": "hidden", "checked": false}. A numeric "raw"
// is clamped to [0, MaxValue] and truncated before it becomes text; NaN is 0.
func DecodeEvent(m map[string]any) (Event, error) {
	kind, _ := m["type"].(string)
	switch kind {
	case "value":
		switch raw := m["raw"].(type) {
		case string:
			return ValueChanged{Raw: raw}, nil
		case float64:
			return ValueChanged{Raw: strconv.Itoa(clampFloat(raw))}, nil
		case int:
			return ValueChanged{Raw: strconv.Itoa(min(max(raw, 0), MaxValue))}, nil
		}
	case "animate", "hidden":
		checked, ok := m["checked"].(bool)
		if !ok {
			break
		}
		if kind == "animate" {
			return AnimateToggled{Checked: checked}, nil
		}
		return HiddenToggled{Checked: checked}, nil
	}
	return nil, &errors.GaugeError{
		Op:   "input.DecodeEvent",
		Kind: errors.KindParsing,
		Err: &errors.ParseError{
			Source:   fmt.Sprintf("event %q", kind),
			DataType: "Event",
			Got:      m,
		},
	}
}

func clampFloat(f float64) int {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= MaxValue {
		return MaxValue
	}
	return int(f)
}
