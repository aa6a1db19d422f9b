package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NERVsystems/mapmeasure/pkg/geo"
)

type recordingListener struct {
	added   []geo.Location
	cleared int
	seen    []Stats
}

func (r *recordingListener) PointAdded(s *Session, p geo.Location) {
	r.added = append(r.added, p)
	r.seen = append(r.seen, s.Stats())
}

func (r *recordingListener) Cleared(s *Session) {
	r.cleared++
	r.seen = append(r.seen, s.Stats())
}

var (
	pointA = geo.Location{Latitude: 37.7749, Longitude: -122.4194}
	pointB = geo.Location{Latitude: 37.8044, Longitude: -122.2712}
	pointC = geo.Location{Latitude: 37.8715, Longitude: -122.2730}
)

func TestSessionDerivedValues(t *testing.T) {
	s := NewSession()
	assert.Equal(t, 0, s.PointCount())
	assert.Zero(t, s.TotalDistanceKm())
	assert.Zero(t, s.AreaKm2())
	assert.Nil(t, s.Bounds())

	s.AddPoint(pointA)
	assert.Equal(t, 1, s.PointCount())
	assert.Zero(t, s.TotalDistanceKm())
	assert.Zero(t, s.AreaKm2())

	s.AddPoint(pointB)
	assert.InDelta(t, geo.Distance(pointA, pointB), s.TotalDistanceKm(), 1e-9)
	assert.Zero(t, s.AreaKm2())

	s.AddPoint(pointC)
	points := []geo.Location{pointA, pointB, pointC}
	assert.InDelta(t, geo.PathLength(points), s.TotalDistanceKm(), 1e-9)
	assert.InDelta(t, geo.EnclosedArea(points), s.AreaKm2(), 1e-9)
	assert.Greater(t, s.AreaKm2(), 0.0)
	assert.Equal(t, points, s.Points())

	bb := s.Bounds()
	require.NotNil(t, bb)
	assert.Equal(t, pointA.Latitude, bb.MinLat)
	assert.Equal(t, pointC.Latitude, bb.MaxLat)
}

func TestSessionKeepsDuplicates(t *testing.T) {
	s := NewSession()
	s.AddPoint(pointA)
	s.AddPoint(pointA)
	s.AddPoint(pointA)

	assert.Equal(t, 3, s.PointCount())
	assert.Zero(t, s.TotalDistanceKm())
	assert.Zero(t, s.AreaKm2())
}

func TestSessionPointsIsACopy(t *testing.T) {
	s := NewSession()
	s.AddPoint(pointA)

	pts := s.Points()
	pts[0] = pointB
	assert.Equal(t, pointA, s.Points()[0])
}

func TestSessionClear(t *testing.T) {
	s := NewSession()
	s.AddPoint(pointA)
	s.AddPoint(pointB)
	s.AddPoint(pointC)

	s.Clear()
	assert.Equal(t, Stats{}, s.Stats())
	assert.Empty(t, s.Points())

	// Clearing twice is harmless.
	s.Clear()
	assert.Equal(t, Stats{}, s.Stats())
}

func TestSessionNotifiesAfterRecompute(t *testing.T) {
	s := NewSession()
	rec := &recordingListener{}
	unsubscribe := s.Subscribe(rec)

	s.AddPoint(pointA)
	s.AddPoint(pointB)
	s.Clear()

	assert.Equal(t, []geo.Location{pointA, pointB}, rec.added)
	assert.Equal(t, 1, rec.cleared)
	require.Len(t, rec.seen, 3)
	assert.Equal(t, 1, rec.seen[0].Points)
	assert.Equal(t, 2, rec.seen[1].Points)
	assert.InDelta(t, geo.Distance(pointA, pointB), rec.seen[1].DistanceKm, 1e-9)
	assert.Equal(t, Stats{}, rec.seen[2])

	unsubscribe()
	s.AddPoint(pointC)
	assert.Len(t, rec.added, 2)
}

func TestStatsConversions(t *testing.T) {
	st := Stats{Points: 3, DistanceKm: 1.23456, AreaKm2: 0.5}
	assert.Equal(t, int64(1235), st.DistanceMeters())
	assert.InDelta(t, 50.0, st.AreaHectares(), 1e-12)
}

func TestFormatPanel(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  string
	}{
		{
			name:  "single point",
			stats: Stats{Points: 1},
			want:  "Points: 1",
		},
		{
			name:  "two points",
			stats: Stats{Points: 2, DistanceKm: 13.42963},
			want:  "Points: 2\nDistance: 13.43 km (13430 m)",
		},
		{
			name:  "three points",
			stats: Stats{Points: 3, DistanceKm: 20.5, AreaKm2: 12.3456},
			want:  "Points: 3\nDistance: 20.50 km (20500 m)\nArea: 12.35 km² (1234.56 ha)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPanel(tt.stats))
		})
	}
}
