package spatial

import (
	"github.com/golang/geo/s2"
)

// Earth's mean radius.
const (
	EarthRadiusMeters = 6371000.0
	EarthRadiusKm     = 6371.0
)

// HaversineDistance calculates the great-circle distance between two points
// in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// CumulativeDistances returns the running along-track distance in meters for
// each point of a trace. The first entry is always 0.
func CumulativeDistances(lats, lons []float64) []float64 {
	if len(lats) != len(lons) || len(lats) == 0 {
		return nil
	}

	out := make([]float64, len(lats))
	for i := 1; i < len(lats); i++ {
		out[i] = out[i-1] + HaversineDistance(lats[i-1], lons[i-1], lats[i], lons[i])
	}
	return out
}
