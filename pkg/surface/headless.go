// Package surface provides a headless map surface for the measurement
// tool. It keeps the visual state a browser map would show (markers, the
// connecting line, the info panel, the control pair and the pan flag) in
// memory so that agents, CLIs and tests can drive a measurement.
package surface

import (
	"log/slog"
	"sync"

	"github.com/NERVsystems/mapmeasure/pkg/geo"
	"github.com/NERVsystems/mapmeasure/pkg/measure"
)

// Headless is an in-memory measure.Surface. Its methods are safe for
// concurrent use, but click handlers run with the lock released so the
// controller can call back into the surface.
type Headless struct {
	mu     sync.Mutex
	logger *slog.Logger

	panEnabled bool
	click      *clickListener

	markers  []*marker
	line     *polyline
	panel    *panel
	controls *controls
}

var _ measure.Surface = (*Headless)(nil)

// NewHeadless returns an empty surface with panning enabled.
func NewHeadless(logger *slog.Logger) *Headless {
	if logger == nil {
		logger = slog.Default()
	}
	return &Headless{
		logger:     logger,
		panEnabled: true,
	}
}

type clickListener struct {
	fn func(geo.Location)
}

// OnClick arms fn. Only one listener is armed at a time; arming replaces
// the previous one.
func (h *Headless) OnClick(fn func(geo.Location)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	l := &clickListener{fn: fn}
	h.click = l
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.click == l {
			h.click = nil
		}
	}
}

// Click simulates a map click at p. It reports whether a listener
// intercepted the click; otherwise it passed through to the map.
func (h *Headless) Click(p geo.Location) bool {
	h.mu.Lock()
	l := h.click
	h.mu.Unlock()

	if l == nil {
		h.logger.Debug("click passed through", "location", p.String())
		return false
	}
	l.fn(p)
	return true
}

// SetPanEnabled implements measure.Surface.
func (h *Headless) SetPanEnabled(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panEnabled = enabled
}

// PanEnabled reports whether pan-by-drag is enabled.
func (h *Headless) PanEnabled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.panEnabled
}

// ClickArmed reports whether a click listener is armed.
func (h *Headless) ClickArmed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.click != nil
}
