package providers

import "context"

// GeocodingProvider resolves a city/state pair to coordinates for the radius
// resolver. The ok return is false when the location is unknown; that is not
// an error.
type GeocodingProvider interface {
	Coordinates(ctx context.Context, city, state string) (lat, lon float64, ok bool, err error)
}
