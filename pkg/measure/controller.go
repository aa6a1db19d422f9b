package measure

import (
	"log/slog"

	"github.com/NERVsystems/mapmeasure/pkg/geo"
)

// State is the measurement mode of a Controller.
type State int

const (
	// Inactive lets clicks and drags reach the map.
	Inactive State = iota
	// Active turns every click into a measurement point and disables panning.
	Active
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Controller is the measurement mode state machine. It owns one Session
// and one Overlay for its whole lifetime and mounts the toggle/clear
// controls on the surface when created.
type Controller struct {
	surface Surface
	session *Session
	overlay *Overlay
	logger  *slog.Logger

	state       State
	disarm      func()
	unsubscribe func()
	controls    Controls
	closed      bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController wires a fresh session and overlay to surface and mounts
// the controls. The controller starts Inactive.
func NewController(surface Surface, opts ...Option) *Controller {
	c := &Controller{
		surface: surface,
		session: NewSession(),
		overlay: NewOverlay(surface),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.unsubscribe = c.session.Subscribe(c.overlay)
	c.controls = surface.MountControls(ControlHandlers{
		Toggle: c.Toggle,
		Clear:  c.Clear,
	})
	c.syncControls()

	return c
}

// Toggle flips between Inactive and Active. Leaving Active keeps the
// placed points so the measurement can be continued later.
func (c *Controller) Toggle() {
	if c.closed {
		return
	}
	if c.state == Active {
		c.deactivate()
	} else {
		c.activate()
	}
	c.syncControls()
}

// Clear empties the session and overlay, forces Inactive and restores
// panning. Clearing an empty, inactive controller changes nothing.
func (c *Controller) Clear() {
	if c.closed {
		return
	}
	c.deactivate()
	c.session.Clear()
	c.syncControls()
	c.logger.Debug("measurement cleared")
}

// Close clears the measurement and unmounts the controls. The controller
// ignores every call afterwards.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.Clear()
	c.unsubscribe()
	if c.controls != nil {
		c.controls.Remove()
		c.controls = nil
	}
	c.closed = true
}

func (c *Controller) activate() {
	if c.state == Active {
		return
	}
	c.surface.SetPanEnabled(false)
	c.disarm = c.surface.OnClick(c.handleClick)
	c.state = Active
	c.logger.Debug("measurement mode", "active", true, "points", c.session.PointCount())
}

func (c *Controller) deactivate() {
	if c.state == Inactive {
		c.surface.SetPanEnabled(true)
		return
	}
	if c.disarm != nil {
		c.disarm()
		c.disarm = nil
	}
	c.surface.SetPanEnabled(true)
	c.state = Inactive
	c.logger.Debug("measurement mode", "active", false, "points", c.session.PointCount())
}

func (c *Controller) handleClick(p geo.Location) {
	if c.state != Active {
		return
	}
	c.session.AddPoint(p)
	c.syncControls()
}

// syncControls keeps the clear button usable only while measuring or
// while points remain.
func (c *Controller) syncControls() {
	if c.controls == nil {
		return
	}
	c.controls.SetActive(c.state == Active)
	c.controls.SetClearEnabled(c.state == Active || c.session.PointCount() > 0)
}

// State returns the current mode.
func (c *Controller) State() State { return c.state }

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool { return c.closed }

// Session returns the controller's session. Callers must not mutate it
// directly; use the controller.
func (c *Controller) Session() *Session { return c.session }

// Overlay returns the controller's overlay.
func (c *Controller) Overlay() *Overlay { return c.overlay }

// Snapshot is a read-only copy of a controller's measurement.
type Snapshot struct {
	State  State            `json:"-"`
	Active bool             `json:"active"`
	Points []geo.Location   `json:"points"`
	Stats  Stats            `json:"stats"`
	Bounds *geo.BoundingBox `json:"bounds,omitempty"`
	Panel  string           `json:"panel"`
}

// Snapshot captures the current measurement.
func (c *Controller) Snapshot() Snapshot {
	stats := c.session.Stats()
	return Snapshot{
		State:  c.state,
		Active: c.state == Active,
		Points: c.session.Points(),
		Stats:  stats,
		Bounds: c.session.Bounds(),
		Panel:  FormatPanel(stats),
	}
}
