package measure

import (
	"fmt"
	"strings"
)

// FormatPanel renders the info panel text. Distance appears from two
// points on, area from three.
func FormatPanel(s Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Points: %d", s.Points)
	if s.Points >= 2 {
		fmt.Fprintf(&sb, "\nDistance: %.2f km (%d m)", s.DistanceKm, s.DistanceMeters())
	}
	if s.Points >= 3 {
		fmt.Fprintf(&sb, "\nArea: %.2f km² (%.2f ha)", s.AreaKm2, s.AreaHectares())
	}
	return sb.String()
}
