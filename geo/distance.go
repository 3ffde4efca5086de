package geo

import (
	"math"

	"github.com/bitmark-inc/safecare-api/schema"
)

const (
	// EarthRadius is the mean earth radius in meters
	EarthRadius = 6371000.0

	// DefaultRouteSteps is the number of segments a route is split into
	DefaultRouteSteps = 8
)

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// DistanceMeters returns the great-circle distance between two points using
// the haversine formula
func DistanceMeters(p1, p2 schema.Location) float64 {
	phi1 := radians(p1.Latitude)
	phi2 := radians(p2.Latitude)
	dPhi := radians(p2.Latitude - p1.Latitude)
	dLambda := radians(p2.Longitude - p1.Longitude)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	return 2 * EarthRadius * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Interpolate splits the straight line between start and end into steps
// segments and returns the steps+1 points in order. The interpolation is
// linear in lat/lng space.
func Interpolate(start, end schema.Location, steps int) []schema.Location {
	if steps < 1 {
		steps = 1
	}

	points := make([]schema.Location, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		points = append(points, schema.Location{
			Latitude:  start.Latitude + (end.Latitude-start.Latitude)*t,
			Longitude: start.Longitude + (end.Longitude-start.Longitude)*t,
		})
	}

	// float error must never move the destination
	points[steps] = end

	return points
}
