package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avaintel/staffing-rates/internal/application/services"
	"github.com/avaintel/staffing-rates/internal/domain/entities"
	"github.com/avaintel/staffing-rates/internal/domain/repositories"
	apperrors "github.com/avaintel/staffing-rates/pkg/errors"
)

func TestFindJobsNearby_GeocodesCityWhenNoCoordinates(t *testing.T) {
	repo := &MockAssignmentRepository{}
	geocoder := &MockGeocodingProvider{}
	service := services.NewRadiusSearchService(repo, geocoder, engineConfig())

	geocoder.On("Coordinates", mock.Anything, "Cincinnati", "OH").
		Return(39.1031, -84.5120, true, nil).Once()
	repo.On("JobsWithinRadius", mock.Anything, mock.MatchedBy(func(f repositories.RadiusFilter) bool {
		return f.Latitude == 39.1031 && f.Longitude == -84.5120 && f.RadiusMiles == 50.0
	})).Return([]*entities.NearbyJob{
		{JobPosting: entities.JobPosting{ClientName: "St. Elsewhere"}, DistanceMiles: 12.4},
		{JobPosting: entities.JobPosting{ClientName: "General Hospital"}, Latitude: 39.1031, Longitude: -84.5120, DistanceMiles: 0.3},
	}, nil).Once()

	jobs, err := service.FindJobsNearby(context.Background(), services.RadiusQuery{
		City:  "Cincinnati",
		State: "OH",
	})
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	// No coordinates on the row: the store's distance stands
	assert.Equal(t, 12.4, jobs[0].DistanceMiles)
	// Coordinates present: the distance is recomputed from the center
	assert.Equal(t, 0.0, jobs[1].DistanceMiles)
	geocoder.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestFindJobsNearby_ExplicitCoordinatesSkipGeocoding(t *testing.T) {
	repo := &MockAssignmentRepository{}
	geocoder := &MockGeocodingProvider{}
	service := services.NewRadiusSearchService(repo, geocoder, engineConfig())

	lat, lon := 40.7128, -74.0060
	repo.On("JobsWithinRadius", mock.Anything, mock.MatchedBy(func(f repositories.RadiusFilter) bool {
		return f.Latitude == lat && f.RadiusMiles == 25.0
	})).Return([]*entities.NearbyJob{}, nil).Once()

	_, err := service.FindJobsNearby(context.Background(), services.RadiusQuery{
		Latitude:    &lat,
		Longitude:   &lon,
		RadiusMiles: 25,
	})
	require.NoError(t, err)
	geocoder.AssertNotCalled(t, "Coordinates", mock.Anything, mock.Anything, mock.Anything)
}

func TestFindJobsNearby_UnknownCityIsNotFound(t *testing.T) {
	geocoder := &MockGeocodingProvider{}
	service := services.NewRadiusSearchService(&MockAssignmentRepository{}, geocoder, engineConfig())

	geocoder.On("Coordinates", mock.Anything, "Nowhereville", "ZZ").
		Return(0.0, 0.0, false, nil).Once()

	_, err := service.FindJobsNearby(context.Background(), services.RadiusQuery{
		City:  "Nowhereville",
		State: "ZZ",
	})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestFindJobsNearby_NeedsCityOrCoordinates(t *testing.T) {
	service := services.NewRadiusSearchService(&MockAssignmentRepository{}, &MockGeocodingProvider{}, engineConfig())

	_, err := service.FindJobsNearby(context.Background(), services.RadiusQuery{RadiusMiles: 50})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
