package geo

import "fmt"

// ValidateCoords reports whether lat/lon lie in [-90,90] and [-180,180].
// The measurement core accepts any value; callers translating user input
// into a Location use this first.
func ValidateCoords(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("invalid latitude %f: must be between -90 and 90", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("invalid longitude %f: must be between -180 and 180", lon)
	}
	return nil
}
