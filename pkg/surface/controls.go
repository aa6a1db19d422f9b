package surface

import "github.com/NERVsystems/mapmeasure/pkg/measure"

type controls struct {
	h            *Headless
	handlers     measure.ControlHandlers
	active       bool
	clearEnabled bool
}

func (c *controls) SetActive(active bool) {
	c.h.mu.Lock()
	defer c.h.mu.Unlock()
	c.active = active
}

func (c *controls) SetClearEnabled(enabled bool) {
	c.h.mu.Lock()
	defer c.h.mu.Unlock()
	c.clearEnabled = enabled
}

func (c *controls) Remove() {
	c.h.mu.Lock()
	defer c.h.mu.Unlock()
	if c.h.controls == c {
		c.h.controls = nil
	}
}

// MountControls implements measure.Surface.
func (h *Headless) MountControls(handlers measure.ControlHandlers) measure.Controls {
	h.mu.Lock()
	defer h.mu.Unlock()
	c := &controls{h: h, handlers: handlers}
	h.controls = c
	return c
}

// ControlState describes the mounted control pair.
type ControlState struct {
	Mounted      bool `json:"mounted"`
	Active       bool `json:"active"`
	ClearEnabled bool `json:"clear_enabled"`
}

// Controls returns the state of the control pair.
func (h *Headless) Controls() ControlState {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.controls == nil {
		return ControlState{}
	}
	return ControlState{
		Mounted:      true,
		Active:       h.controls.active,
		ClearEnabled: h.controls.clearEnabled,
	}
}

// PressToggle presses the toggle button. It reports false when no
// controls are mounted.
func (h *Headless) PressToggle() bool {
	h.mu.Lock()
	c := h.controls
	h.mu.Unlock()

	if c == nil || c.handlers.Toggle == nil {
		return false
	}
	c.handlers.Toggle()
	return true
}

// PressClear presses the clear button. A disabled button does nothing
// and reports false.
func (h *Headless) PressClear() bool {
	h.mu.Lock()
	c := h.controls
	enabled := c != nil && c.clearEnabled
	h.mu.Unlock()

	if !enabled || c.handlers.Clear == nil {
		return false
	}
	c.handlers.Clear()
	return true
}
