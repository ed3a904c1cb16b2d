package ui

import (
	"image"
	"math"
	"strconv"

	"antflock/internal/core"
)

const (
	panelPadding   = 10
	headerBaseline = 12
	controlHeight  = 28
	buttonSize     = 20
	buttonGap      = 6
	labelBaseline  = 18
	controlsTop    = panelPadding + headerBaseline + 10
	defaultStep    = 0.05
)

type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// controlPanel holds the +/- controls of a sim that exposes
// core.ParameterControlsProvider. Coordinates are panel-local.
type controlPanel struct {
	controls    []controlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	width       int
}

func newControlPanel(sim core.Sim, width int) *controlPanel {
	c := &controlPanel{width: width}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			c.controls = append(c.controls, controlState{control: ctrl, value: "--"})
		}
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		c.intSetter = setter
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		c.floatSetter = setter
	}
	c.layout()
	return c
}

func (c *controlPanel) layout() {
	for i := range c.controls {
		top := controlsTop + i*controlHeight
		buttonY := top + (controlHeight-buttonSize)/2
		plus := image.Rect(c.width-panelPadding-buttonSize, buttonY, c.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		c.controls[i].top = top
		c.controls[i].minusRect = minus
		c.controls[i].plusRect = plus
	}
}

// bottom is the first panel row below the controls.
func (c *controlPanel) bottom() int {
	return controlsTop + len(c.controls)*controlHeight
}

func (c *controlPanel) has(key string) bool {
	for i := range c.controls {
		if c.controls[i].control.Key == key {
			return true
		}
	}
	return false
}

func (c *controlPanel) refresh(snapshot core.ParameterSnapshot) {
	for i := range c.controls {
		state := &c.controls[i]
		state.hasValue = false
		state.value = "--"
		param, ok := snapshot.Lookup(state.control.Key)
		if !ok {
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.value = strconv.Itoa(parsed)
			state.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			state.floatValue = parsed
			state.value = formatFloat(state.control, parsed)
			state.hasValue = true
		}
	}
}

// click applies the button under the panel-local point, if any.
func (c *controlPanel) click(x, y int) bool {
	for i := range c.controls {
		state := &c.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(x, y, state.minusRect) {
			return c.adjust(state, -1)
		}
		if pointInRect(x, y, state.plusRect) {
			return c.adjust(state, 1)
		}
	}
	return false
}

func (c *controlPanel) intTarget(state *controlState, direction int) int {
	step := int(math.Round(state.control.Step))
	if step <= 0 {
		step = 1
	}
	target := state.intValue + direction*step
	if state.control.HasMin {
		target = max(target, int(math.Round(state.control.Min)))
	}
	if state.control.HasMax {
		target = min(target, int(math.Round(state.control.Max)))
	}
	return target
}

func (c *controlPanel) floatTarget(state *controlState, direction int) float64 {
	step := state.control.Step
	if step <= 0 {
		step = defaultStep
	}
	target := state.floatValue + float64(direction)*step
	// Round to the displayed precision so repeated clicks do not drift.
	if rounded, err := strconv.ParseFloat(formatFloat(state.control, target), 64); err == nil {
		target = rounded
	}
	if state.control.HasMin {
		target = math.Max(target, state.control.Min)
	}
	if state.control.HasMax {
		target = math.Min(target, state.control.Max)
	}
	return target
}

// canAdjust reports whether a click in direction would change the value.
func (c *controlPanel) canAdjust(state *controlState, direction int) bool {
	if state == nil || direction == 0 || !state.hasValue {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		return c.intSetter != nil && c.intTarget(state, direction) != state.intValue
	case core.ParamTypeFloat:
		return c.floatSetter != nil && math.Abs(c.floatTarget(state, direction)-state.floatValue) >= 1e-9
	}
	return false
}

// adjust moves a control one step. The sim may still refuse the value, in
// which case the displayed value is left as it was.
func (c *controlPanel) adjust(state *controlState, direction int) bool {
	if !c.canAdjust(state, direction) {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		target := c.intTarget(state, direction)
		if !c.intSetter.SetIntParameter(state.control.Key, target) {
			return false
		}
		state.intValue = target
		state.floatValue = float64(target)
		state.value = strconv.Itoa(target)
	case core.ParamTypeFloat:
		target := c.floatTarget(state, direction)
		if !c.floatSetter.SetFloatParameter(state.control.Key, target) {
			return false
		}
		state.floatValue = target
		state.value = formatFloat(state.control, target)
	}
	return true
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = defaultStep
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}
