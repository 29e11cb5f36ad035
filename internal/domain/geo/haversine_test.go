package geo

import (
	"math"
	"testing"
)

func TestDistanceMiles_SelfDistanceIsZero(t *testing.T) {
	if d := DistanceMiles(39.1031, -84.5120, 39.1031, -84.5120); d != 0 {
		t.Errorf("expected zero self-distance, got %f", d)
	}
}

func TestDistanceMiles_Symmetric(t *testing.T) {
	// Cincinnati <-> Columbus
	d1 := DistanceMiles(39.1031, -84.5120, 39.9612, -82.9988)
	d2 := DistanceMiles(39.9612, -82.9988, 39.1031, -84.5120)
	if d1 != d2 {
		t.Errorf("distance must be symmetric: %f vs %f", d1, d2)
	}
}

func TestDistanceMiles_KnownDistance(t *testing.T) {
	// NYC to LA is roughly 2,450 statute miles
	d := DistanceMiles(40.7128, -74.0060, 34.0522, -118.2437)
	if math.Abs(d-2450) > 25 {
		t.Errorf("NYC-LA distance out of expected range: %f", d)
	}
}

func TestWithinRadius_BoundaryInclusive(t *testing.T) {
	centerLat, centerLon := 39.1031, -84.5120
	lat, lon := 39.9612, -82.9988
	d := DistanceMiles(centerLat, centerLon, lat, lon)

	if !WithinRadius(centerLat, centerLon, lat, lon, d) {
		t.Error("a point at exactly the radius must be included")
	}
	if WithinRadius(centerLat, centerLon, lat, lon, d-0.01) {
		t.Error("a point just past the radius must be excluded")
	}
}
