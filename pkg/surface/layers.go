package surface

import (
	"github.com/NERVsystems/mapmeasure/pkg/geo"
	"github.com/NERVsystems/mapmeasure/pkg/measure"
)

type marker struct {
	h  *Headless
	at geo.Location
}

func (m *marker) Remove() {
	m.h.mu.Lock()
	defer m.h.mu.Unlock()
	for i, cur := range m.h.markers {
		if cur == m {
			m.h.markers = append(m.h.markers[:i], m.h.markers[i+1:]...)
			return
		}
	}
}

// AddMarker implements measure.Surface.
func (h *Headless) AddMarker(p geo.Location) measure.Layer {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := &marker{h: h, at: p}
	h.markers = append(h.markers, m)
	return m
}

// Markers returns the marker positions in the order they were drawn.
func (h *Headless) Markers() []geo.Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]geo.Location, len(h.markers))
	for i, m := range h.markers {
		out[i] = m.at
	}
	return out
}

type polyline struct {
	h      *Headless
	points []geo.Location
}

func (l *polyline) SetPoints(points []geo.Location) {
	l.h.mu.Lock()
	defer l.h.mu.Unlock()
	l.points = append([]geo.Location(nil), points...)
}

func (l *polyline) Remove() {
	l.h.mu.Lock()
	defer l.h.mu.Unlock()
	if l.h.line == l {
		l.h.line = nil
	}
}

// AddPolyline implements measure.Surface. The surface shows at most one
// line; adding another replaces it.
func (h *Headless) AddPolyline(points []geo.Location) measure.Polyline {
	h.mu.Lock()
	defer h.mu.Unlock()
	l := &polyline{h: h, points: append([]geo.Location(nil), points...)}
	h.line = l
	return l
}

// Line returns the drawn line's vertices and whether a line is drawn.
func (h *Headless) Line() ([]geo.Location, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.line == nil {
		return nil, false
	}
	return append([]geo.Location(nil), h.line.points...), true
}

type panel struct {
	h       *Headless
	content string
}

func (p *panel) SetContent(content string) {
	p.h.mu.Lock()
	defer p.h.mu.Unlock()
	p.content = content
}

func (p *panel) Remove() {
	p.h.mu.Lock()
	defer p.h.mu.Unlock()
	if p.h.panel == p {
		p.h.panel = nil
	}
}

// ShowPanel implements measure.Surface.
func (h *Headless) ShowPanel(content string) measure.Panel {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := &panel{h: h, content: content}
	h.panel = p
	return p
}

// Panel returns the panel text and whether the panel is mounted.
func (h *Headless) Panel() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panel == nil {
		return "", false
	}
	return h.panel.content, true
}
