package geo

import "math"

// degToRad converts degrees to radians.
func degToRad(d float64) float64 {
	return d * math.Pi / 180.0
}

// Distance returns the great-circle distance between a and b in
// kilometers using the haversine formula on a sphere of radius
// EarthRadiusKm. It is symmetric and returns 0 for coincident points.
func Distance(a, b Location) float64 {
	lat1 := degToRad(a.Latitude)
	lat2 := degToRad(b.Latitude)
	dLat := lat2 - lat1
	dLon := degToRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	// Rounding can push h just outside [0,1] near antipodes and poles.
	h = math.Max(0, math.Min(1, h))

	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// PathLength returns the summed Distance over consecutive pairs of points
// in kilometers. Fewer than two points yield 0.
func PathLength(points []Location) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// areaScale converts degrees² to km². See EnclosedArea.
const areaScale = math.Pi / 180 * EarthRadiusKm * EarthRadiusKm

// EnclosedArea returns the approximate area in km² of the polygon formed
// by points in order, implicitly closed from the last point back to the
// first. Fewer than three points yield 0.
//
// The shoelace sum is taken over (longitude, latitude) as planar degree
// coordinates and scaled by (π/180)·R². This is a planar approximation:
// it is only reasonable for small extents and applies no correction for
// latitude or for rings crossing the antimeridian.
func EnclosedArea(points []Location) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}

	sum := 0.0
	j := n - 1
	for i := 0; i < n; i++ {
		sum += points[j].Longitude*points[i].Latitude - points[i].Longitude*points[j].Latitude
		j = i
	}

	return math.Abs(sum) / 2 * areaScale
}
