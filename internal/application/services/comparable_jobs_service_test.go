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

func TestFindComparableJobs_TargetExpandsToToleranceBand(t *testing.T) {
	repo := &MockAssignmentRepository{}
	service := services.NewComparableJobsService(repo, engineConfig())

	repo.On("ComparableJobs", mock.Anything, mock.MatchedBy(func(f repositories.JobFilter) bool {
		return f.MinRate == 90.0 && f.MaxRate == 110.0 && f.Limit == 20
	})).Return([]*entities.JobPosting{{ClientName: "St. Elsewhere", Rate: 95}}, nil).Once()

	jobs, err := service.FindComparableJobs(context.Background(), services.ComparableJobsQuery{
		Specialty:  "ICU",
		State:      "OH",
		TargetRate: 100,
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	repo.AssertExpectations(t)
}

func TestFindComparableJobs_ExplicitBandWinsOverTarget(t *testing.T) {
	repo := &MockAssignmentRepository{}
	service := services.NewComparableJobsService(repo, engineConfig())

	repo.On("ComparableJobs", mock.Anything, mock.MatchedBy(func(f repositories.JobFilter) bool {
		return f.MinRate == 85.0 && f.MaxRate == 120.0
	})).Return([]*entities.JobPosting{}, nil).Once()

	_, err := service.FindComparableJobs(context.Background(), services.ComparableJobsQuery{
		Specialty:  "ICU",
		TargetRate: 100,
		MinRate:    85,
		MaxRate:    120,
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestFindComparableJobs_NeedsTargetOrBand(t *testing.T) {
	service := services.NewComparableJobsService(&MockAssignmentRepository{}, engineConfig())

	_, err := service.FindComparableJobs(context.Background(), services.ComparableJobsQuery{
		Specialty: "ICU",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestFindComparableJobs_RejectsInvertedBand(t *testing.T) {
	service := services.NewComparableJobsService(&MockAssignmentRepository{}, engineConfig())

	_, err := service.FindComparableJobs(context.Background(), services.ComparableJobsQuery{
		Specialty: "ICU",
		MinRate:   120,
		MaxRate:   85,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
