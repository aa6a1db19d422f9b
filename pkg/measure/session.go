package measure

import (
	"math"

	"github.com/NERVsystems/mapmeasure/pkg/geo"
)

// Stats are the derived values of a session at one instant.
type Stats struct {
	Points     int     `json:"points"`
	DistanceKm float64 `json:"distance_km"`
	AreaKm2    float64 `json:"area_km2"`
}

// DistanceMeters returns the distance in whole meters.
func (s Stats) DistanceMeters() int64 {
	return int64(math.Round(s.DistanceKm * 1000))
}

// AreaHectares returns the area in hectares.
func (s Stats) AreaHectares() float64 {
	return s.AreaKm2 * 100
}

// Listener observes session mutations. Callbacks run after the derived
// values have been recomputed.
type Listener interface {
	PointAdded(s *Session, p geo.Location)
	Cleared(s *Session)
}

// Session is the ordered list of placed points and the distance and area
// derived from it. Points are never reordered or deduplicated.
type Session struct {
	points     []geo.Location
	distanceKm float64
	areaKm2    float64

	listeners []*subscription
}

type subscription struct {
	l Listener
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// AddPoint appends p and recomputes distance and area over the whole
// sequence before notifying listeners.
func (s *Session) AddPoint(p geo.Location) {
	s.points = append(s.points, p)
	s.distanceKm = geo.PathLength(s.points)
	s.areaKm2 = geo.EnclosedArea(s.points)

	for _, sub := range s.snapshotListeners() {
		sub.l.PointAdded(s, p)
	}
}

// Clear drops every point and zeroes the derived values. Listeners are
// notified even when the session was already empty.
func (s *Session) Clear() {
	s.points = nil
	s.distanceKm = 0
	s.areaKm2 = 0

	for _, sub := range s.snapshotListeners() {
		sub.l.Cleared(s)
	}
}

// Subscribe registers l and returns a func removing it again.
func (s *Session) Subscribe(l Listener) (unsubscribe func()) {
	sub := &subscription{l: l}
	s.listeners = append(s.listeners, sub)
	return func() {
		for i, cur := range s.listeners {
			if cur == sub {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// snapshotListeners lets a callback unsubscribe without disturbing the
// current notification round.
func (s *Session) snapshotListeners() []*subscription {
	return append([]*subscription(nil), s.listeners...)
}

// PointCount returns the number of placed points.
func (s *Session) PointCount() int { return len(s.points) }

// Points returns a copy of the placed points in placement order.
func (s *Session) Points() []geo.Location {
	return append([]geo.Location(nil), s.points...)
}

// TotalDistanceKm returns the path length through all points.
func (s *Session) TotalDistanceKm() float64 { return s.distanceKm }

// AreaKm2 returns the approximate enclosed area, 0 below three points.
func (s *Session) AreaKm2() float64 { return s.areaKm2 }

// Bounds returns the bounding box of the placed points, nil when empty.
func (s *Session) Bounds() *geo.BoundingBox {
	return geo.BoundsOf(s.points)
}

// Stats returns the current derived values.
func (s *Session) Stats() Stats {
	return Stats{
		Points:     len(s.points),
		DistanceKm: s.distanceKm,
		AreaKm2:    s.areaKm2,
	}
}
