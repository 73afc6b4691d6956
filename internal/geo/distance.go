// Package geo provides great-circle distance helpers used to look up
// restaurants and pickup points around a customer.
package geo

import (
	"math"
	"sort"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
	EarthRadiusKm = 6371.0
	// DefaultRadiusKm applies when the caller does not supply a radius.
	DefaultRadiusKm = 5.0
)

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Valid reports whether the coordinate lies within latitude/longitude bounds.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Locatable is implemented by anything with an optional position.
type Locatable interface {
	Position() (Point, bool)
}

// Located annotates an item with its distance from the query origin.
type Located[T any] struct {
	Item       T
	DistanceKm float64
}

// Distance returns the Haversine distance in kilometres between two coordinates.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// Between is Distance for two points.
func Between(a, b Point) float64 {
	return Distance(a.Lat, a.Lng, b.Lat, b.Lng)
}

// Nearby keeps candidates within radiusKm of origin, closest first.
// Candidates without a position are skipped. A non-positive radius means DefaultRadiusKm.
func Nearby[T Locatable](origin Point, candidates []T, radiusKm float64) []Located[T] {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	result := make([]Located[T], 0, len(candidates))
	for _, c := range candidates {
		pos, ok := c.Position()
		if !ok {
			continue
		}
		d := Between(origin, pos)
		if d <= radiusKm {
			result = append(result, Located[T]{Item: c, DistanceKm: d})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})
	return result
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
