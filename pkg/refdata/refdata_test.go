package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCityCoordinates(t *testing.T) {
	tables := Default()

	coords, ok := tables.CityCoordinates("Cincinnati", "OH")
	require.True(t, ok)
	assert.Equal(t, 39.1031, coords.Latitude)

	// State optional: first name match wins
	_, ok = tables.CityCoordinates("Boston", "")
	assert.True(t, ok)

	_, ok = tables.CityCoordinates("Nowhereville", "ZZ")
	assert.False(t, ok)

	_, ok = tables.CityCoordinates("", "")
	assert.False(t, ok)
}

func TestStateForMajorCity(t *testing.T) {
	tables := Default()

	state, ok := tables.StateForMajorCity("Chicago")
	require.True(t, ok)
	assert.Equal(t, "IL", state)

	_, ok = tables.StateForMajorCity("Dayton")
	assert.False(t, ok)
}

func TestIsCompactState(t *testing.T) {
	tables := Default()

	assert.True(t, tables.IsCompactState("tx"))
	assert.True(t, tables.IsCompactState(" OH "))
	assert.False(t, tables.IsCompactState("CA"))
	assert.False(t, tables.IsCompactState(""))
}

func TestTopForecastStatesExcludesRequested(t *testing.T) {
	tables := Default()

	states := tables.TopForecastStates("tx")
	assert.Equal(t, []string{"CA", "FL", "NY", "PA"}, states)

	states = tables.TopForecastStates("WY")
	assert.Len(t, states, 5)
}

func TestForecastVocabulary(t *testing.T) {
	tables := Default()

	alias, ok := tables.LocumAlias("Hospitalist")
	require.True(t, ok)
	assert.Equal(t, "MD/DO - Hospitalist", alias)

	assert.True(t, tables.HasKnownPrefix("RN - ICU"))
	assert.False(t, tables.HasKnownPrefix("ICU"))

	assert.True(t, tables.IsLocumSpecialty("PA"))
	assert.True(t, tables.IsLocumSpecialty("MD/DO - Cardiologist"))
	assert.False(t, tables.IsLocumSpecialty("ICU"))

	// Containment covers both the bare credential and prefixed forms
	assert.True(t, tables.IsSparseForecastSpecialty("CRNA"))
	assert.True(t, tables.IsSparseForecastSpecialty("Certified Nurse Anesthetist (CRNA)"))
	assert.False(t, tables.IsSparseForecastSpecialty("RN - ICU"))
}
