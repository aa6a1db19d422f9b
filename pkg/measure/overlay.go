package measure

import "github.com/NERVsystems/mapmeasure/pkg/geo"

// Overlay mirrors a Session onto a Surface: one marker per point, a line
// through all points once there are two, and the info panel. It holds no
// interaction logic.
type Overlay struct {
	surface Surface

	markers []Layer
	line    Polyline
	panel   Panel
}

var _ Listener = (*Overlay)(nil)

// NewOverlay returns an overlay drawing on surface. It draws nothing until
// it is subscribed to a session.
func NewOverlay(surface Surface) *Overlay {
	return &Overlay{surface: surface}
}

// PointAdded draws the new marker, extends the line and refreshes the panel.
func (o *Overlay) PointAdded(s *Session, p geo.Location) {
	o.markers = append(o.markers, o.surface.AddMarker(p))

	if s.PointCount() >= 2 {
		if o.line == nil {
			o.line = o.surface.AddPolyline(s.Points())
		} else {
			o.line.SetPoints(s.Points())
		}
	}

	o.refreshPanel(s)
}

// Cleared removes every artifact and hands panning back to the map.
func (o *Overlay) Cleared(*Session) {
	o.removeAll()
	o.surface.SetPanEnabled(true)
}

func (o *Overlay) refreshPanel(s *Session) {
	content := FormatPanel(s.Stats())
	if o.panel == nil {
		o.panel = o.surface.ShowPanel(content)
		return
	}
	o.panel.SetContent(content)
}

func (o *Overlay) removeAll() {
	for _, m := range o.markers {
		m.Remove()
	}
	o.markers = nil

	if o.line != nil {
		o.line.Remove()
		o.line = nil
	}
	if o.panel != nil {
		o.panel.Remove()
		o.panel = nil
	}
}

// MarkerCount returns the number of markers currently drawn.
func (o *Overlay) MarkerCount() int { return len(o.markers) }

// HasLine reports whether the connecting line is drawn.
func (o *Overlay) HasLine() bool { return o.line != nil }

// HasPanel reports whether the info panel is mounted.
func (o *Overlay) HasPanel() bool { return o.panel != nil }
