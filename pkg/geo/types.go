// Package geo provides the geographic types and calculations behind the
// measurement tool: great-circle distance, path length and the
// approximate area enclosed by an ordered ring of points.
package geo

import (
	"fmt"
	"math"
)

const (
	// EarthRadiusKm is the mean Earth radius used for every calculation.
	EarthRadiusKm = 6371.0

	// EarthRadius is EarthRadiusKm in meters.
	EarthRadius = EarthRadiusKm * 1000
)

// Location is a geographic coordinate in decimal degrees. It is a value
// type; nothing in this module mutates a Location after creation.
//
// Example:
//
//	a := geo.Location{Latitude: 37.7749, Longitude: -122.4194}
//	b := geo.Location{Latitude: 34.0522, Longitude: -118.2437}
//	km := geo.Distance(a, b)
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String formats the location as "lat,lon" with six decimals.
func (l Location) String() string {
	return fmt.Sprintf("%.6f,%.6f", l.Latitude, l.Longitude)
}

// BoundingBox represents a geographic bounding box with southwest and northeast corners
type BoundingBox struct {
	MinLat float64 `json:"min_lat"` // Southern edge (minimum latitude)
	MinLon float64 `json:"min_lon"` // Western edge (minimum longitude)
	MaxLat float64 `json:"max_lat"` // Northern edge (maximum latitude)
	MaxLon float64 `json:"max_lon"` // Eastern edge (maximum longitude)
}

// NewBoundingBox creates a new empty bounding box
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{
		MinLat: 90.0, // inverted so the first point sets every edge
		MinLon: 180.0,
		MaxLat: -90.0,
		MaxLon: -180.0,
	}
}

// BoundsOf returns the bounding box of points, or nil when points is empty.
func BoundsOf(points []Location) *BoundingBox {
	if len(points) == 0 {
		return nil
	}
	bb := NewBoundingBox()
	for _, p := range points {
		bb.Extend(p)
	}
	return bb
}

// Extend grows the bounding box to include p.
func (bb *BoundingBox) Extend(p Location) {
	bb.MinLat = math.Min(bb.MinLat, p.Latitude)
	bb.MaxLat = math.Max(bb.MaxLat, p.Latitude)
	bb.MinLon = math.Min(bb.MinLon, p.Longitude)
	bb.MaxLon = math.Max(bb.MaxLon, p.Longitude)
}

// Center returns the midpoint of the box in degree space.
func (bb *BoundingBox) Center() Location {
	return Location{
		Latitude:  (bb.MinLat + bb.MaxLat) / 2,
		Longitude: (bb.MinLon + bb.MaxLon) / 2,
	}
}

// String returns "(minLat,minLon,maxLat,maxLon)".
func (bb *BoundingBox) String() string {
	return fmt.Sprintf("(%f,%f,%f,%f)", bb.MinLat, bb.MinLon, bb.MaxLat, bb.MaxLon)
}
