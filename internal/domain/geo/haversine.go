// Package geo provides the great-circle math used by the radius resolver.
package geo

import "math"

// EarthRadiusMiles is the mean Earth radius in statute miles
const EarthRadiusMiles = 3959.0

// DistanceMiles computes the haversine great-circle distance between two
// points, in statute miles
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// WithinRadius reports whether a point lies within the radius of a center,
// boundary inclusive
func WithinRadius(centerLat, centerLon, lat, lon, radiusMiles float64) bool {
	return DistanceMiles(centerLat, centerLon, lat, lon) <= radiusMiles
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
