package measure

import (
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/NERVsystems/mapmeasure/pkg/geo"
)

// GeoJSON renders the snapshot as a FeatureCollection: a Point per placed
// point, the path as a LineString once there are two points, and the
// implicitly closed ring as a Polygon once there are three. Coordinates
// are (lon, lat) as GeoJSON requires.
func (s Snapshot) GeoJSON() ([]byte, error) {
	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(s.Points)+2),
	}
	if bb := geo.BoundsOf(s.Points); bb != nil {
		fc.BBox = geom.NewBounds(geom.XY).Set(bb.MinLon, bb.MinLat, bb.MaxLon, bb.MaxLat)
	}

	for i, p := range s.Points {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       fmt.Sprintf("point-%d", i),
			Geometry: geom.NewPointFlat(geom.XY, []float64{p.Longitude, p.Latitude}).SetSRID(4326),
			Properties: map[string]interface{}{
				"kind":  "marker",
				"index": i,
			},
		})
	}

	if len(s.Points) >= 2 {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       "path",
			Geometry: geom.NewLineStringFlat(geom.XY, flatCoords(s.Points, false)).SetSRID(4326),
			Properties: map[string]interface{}{
				"kind":        "path",
				"distance_km": s.Stats.DistanceKm,
				"distance_m":  s.Stats.DistanceMeters(),
			},
		})
	}

	if len(s.Points) >= 3 {
		ring := flatCoords(s.Points, true)
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       "area",
			Geometry: geom.NewPolygonFlat(geom.XY, ring, []int{len(ring)}).SetSRID(4326),
			Properties: map[string]interface{}{
				"kind":     "area",
				"area_km2": s.Stats.AreaKm2,
				"area_ha":  s.Stats.AreaHectares(),
			},
		})
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode measurement as GeoJSON: %w", err)
	}
	return data, nil
}

// flatCoords lays points out as go-geom XY flat coordinates, optionally
// repeating the first point to close a ring.
func flatCoords(points []geo.Location, closed bool) []float64 {
	flat := make([]float64, 0, 2*len(points)+2)
	for _, p := range points {
		flat = append(flat, p.Longitude, p.Latitude)
	}
	if closed && len(points) > 0 {
		flat = append(flat, points[0].Longitude, points[0].Latitude)
	}
	return flat
}
