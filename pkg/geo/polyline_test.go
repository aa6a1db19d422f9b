package geo

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// TestDecodePolyline tests decoding using the Polyline5 format.
func TestDecodePolyline(t *testing.T) {
	testCases := []struct {
		name     string
		encoded  string
		expected []Location
	}{
		{
			name:     "Empty string",
			encoded:  "",
			expected: []Location{},
		},
		{
			name:    "Single point",
			encoded: "_p~iF~ps|U",
			expected: []Location{
				{Latitude: 38.5, Longitude: -120.2},
			},
		},
		{
			name:    "Multiple points",
			encoded: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
			expected: []Location{
				{Latitude: 38.5, Longitude: -120.2},
				{Latitude: 40.7, Longitude: -120.95},
				{Latitude: 43.252, Longitude: -126.453},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := DecodePolyline(tc.encoded)
			if err != nil {
				t.Fatalf("DecodePolyline(%q) error: %v", tc.encoded, err)
			}

			if len(result) != len(tc.expected) {
				t.Fatalf("Expected %d points, got %d", len(tc.expected), len(result))
			}
			for i, expected := range tc.expected {
				if !almostEqual(result[i].Latitude, expected.Latitude, 0.00001) ||
					!almostEqual(result[i].Longitude, expected.Longitude, 0.00001) {
					t.Errorf("Point %d: expected %v, got %v", i, expected, result[i])
				}
			}
		})
	}
}

func TestEncodePolyline(t *testing.T) {
	testCases := []struct {
		name     string
		points   []Location
		expected string
	}{
		{
			name:     "Empty slice",
			points:   []Location{},
			expected: "",
		},
		{
			name: "Multiple points",
			points: []Location{
				{Latitude: 38.5, Longitude: -120.2},
				{Latitude: 40.7, Longitude: -120.95},
				{Latitude: 43.252, Longitude: -126.453},
			},
			expected: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EncodePolyline(tc.points); got != tc.expected {
				t.Errorf("EncodePolyline() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestPolylineRoundTripKeepsPathLength(t *testing.T) {
	path := []Location{
		{Latitude: 37.77490, Longitude: -122.41940},
		{Latitude: 37.80440, Longitude: -122.27120},
		{Latitude: 37.87150, Longitude: -122.27300},
	}

	decoded, err := DecodePolyline(EncodePolyline(path))
	if err != nil {
		t.Fatalf("DecodePolyline error: %v", err)
	}
	if len(decoded) != len(path) {
		t.Fatalf("got %d points, want %d", len(decoded), len(path))
	}
	if got, want := PathLength(decoded), PathLength(path); !almostEqual(got, want, 1e-6) {
		t.Errorf("PathLength after round trip = %v, want %v", got, want)
	}
}

func TestDecodePolylineRejectsMalformedInput(t *testing.T) {
	testCases := []struct {
		name    string
		encoded string
	}{
		{name: "Characters below the alphabet", encoded: "!!!!!!!!"},
		{name: "Character above the alphabet", encoded: "_p~iF\x7f"},
		{name: "Latitude without longitude", encoded: "_p~iF"},
		{name: "Value cut mid-chunk", encoded: "_p~iF~ps|"},
		{name: "Unterminated long value", encoded: "~~~~~~~~~~"},
		{name: "Latitude out of range", encoded: EncodePolyline([]Location{{Latitude: 60}, {Latitude: 120}})},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			points, err := DecodePolyline(tc.encoded)
			if err == nil {
				t.Fatalf("DecodePolyline(%q) = %v, want error", tc.encoded, points)
			}
		})
	}

	if _, err := DecodePolyline("_p~iF"); !errors.Is(err, ErrTruncatedPolyline) {
		t.Errorf("truncated input error = %v, want ErrTruncatedPolyline", err)
	}
}
