// Package geocoding provides a static city-coordinate lookup backed by the
// reference tables. It covers the major metros the transaction feed actually
// references; anything else is an honest miss, not an error.
package geocoding

import (
	"context"

	"github.com/avaintel/staffing-rates/internal/domain/providers"
	"github.com/avaintel/staffing-rates/pkg/refdata"
)

// StaticProvider implements GeocodingProvider from the built-in coordinate
// table
type StaticProvider struct {
	tables *refdata.Tables
}

// NewStaticProvider creates a static geocoding provider
func NewStaticProvider(tables *refdata.Tables) providers.GeocodingProvider {
	return &StaticProvider{tables: tables}
}

// Coordinates resolves a city/state pair against the reference table
func (p *StaticProvider) Coordinates(_ context.Context, city, state string) (float64, float64, bool, error) {
	coords, ok := p.tables.CityCoordinates(city, state)
	if !ok {
		return 0, 0, false, nil
	}
	return coords.Latitude, coords.Longitude, true, nil
}
