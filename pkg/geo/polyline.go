package geo

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrTruncatedPolyline is returned when an encoded path ends inside a value
// or after a latitude without its longitude.
var ErrTruncatedPolyline = errors.New("truncated polyline")

// polylinePrecision is the Polyline5 scale (five decimal places).
const polylinePrecision = 1e5

// EncodePolyline encodes points using Google's Polyline Algorithm Format
// with five decimal places of precision (Polyline5). Coordinates are
// rounded, so a round trip is exact only to 1e-5 degrees.
// See https://developers.google.com/maps/documentation/utilities/polylinealgorithm
func EncodePolyline(points []Location) string {
	if len(points) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(points) * 6)

	prevLat, prevLng := 0, 0
	for _, p := range points {
		lat := int(math.Round(p.Latitude * polylinePrecision))
		lng := int(math.Round(p.Longitude * polylinePrecision))
		writeSigned(&sb, lat-prevLat)
		writeSigned(&sb, lng-prevLng)
		prevLat, prevLng = lat, lng
	}
	return sb.String()
}

// DecodePolyline decodes a Polyline5 string. It fails on characters
// outside the encoding alphabet ('?' through '~'), on truncated input and
// on values that decode outside the valid coordinate range.
func DecodePolyline(encoded string) ([]Location, error) {
	points := make([]Location, 0, len(encoded)/4)

	idx, lat, lng := 0, 0, 0
	for idx < len(encoded) {
		dLat, err := readSigned(encoded, &idx)
		if err != nil {
			return nil, err
		}
		dLng, err := readSigned(encoded, &idx)
		if err != nil {
			return nil, err
		}
		lat += dLat
		lng += dLng
		p := Location{
			Latitude:  float64(lat) / polylinePrecision,
			Longitude: float64(lng) / polylinePrecision,
		}
		if err := ValidateCoords(p.Latitude, p.Longitude); err != nil {
			return nil, fmt.Errorf("point %d: %w", len(points), err)
		}
		points = append(points, p)
	}
	return points, nil
}

// writeSigned appends one zigzag-encoded value in 5-bit chunks.
func writeSigned(sb *strings.Builder, v int) {
	s := v << 1
	if v < 0 {
		s = ^s
	}
	for s >= 0x20 {
		sb.WriteByte(byte((0x20 | (s & 0x1f)) + 63))
		s >>= 5
	}
	sb.WriteByte(byte(s + 63))
}

// readSigned reads one value starting at *idx and advances it.
func readSigned(encoded string, idx *int) (int, error) {
	result, shift := 0, 0
	for *idx < len(encoded) {
		c := encoded[*idx]
		if c < 63 || c > 126 {
			return 0, fmt.Errorf("invalid polyline character %q at offset %d", c, *idx)
		}
		*idx++
		b := int(c) - 63
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			return (result >> 1) ^ (-(result & 1)), nil
		}
		// A valid coordinate delta never needs more than six chunks.
		if shift > 30 {
			return 0, fmt.Errorf("polyline value too long at offset %d", *idx)
		}
	}
	return 0, ErrTruncatedPolyline
}
