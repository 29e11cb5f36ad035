package services

import (
	"context"

	"github.com/avaintel/staffing-rates/internal/domain/entities"
	"github.com/avaintel/staffing-rates/internal/domain/rates"
	"github.com/avaintel/staffing-rates/internal/domain/repositories"
	"github.com/avaintel/staffing-rates/internal/infrastructure/observability"
	"github.com/avaintel/staffing-rates/pkg/config"
	apperrors "github.com/avaintel/staffing-rates/pkg/errors"
)

// vendorWindowMonths is how far back vendor activity counts as current
const vendorWindowMonths = 6

// VendorQuery describes a vendor intelligence lookup at a facility
type VendorQuery struct {
	FacilityName string
	City         string
	State        string
	Specialty    string
}

// VendorService answers which staffing agencies are active where
type VendorService struct {
	repo   repositories.AssignmentRepository
	engine config.EngineConfig
}

// NewVendorService creates a new vendor service
func NewVendorService(repo repositories.AssignmentRepository, engine config.EngineConfig) *VendorService {
	return &VendorService{
		repo:   repo,
		engine: engine,
	}
}

// GetVendorActivity lists vendors active at a facility over the last six
// months, busiest first. The facility name matches partially, as users type
// it.
func (s *VendorService) GetVendorActivity(ctx context.Context, query VendorQuery) ([]*entities.VendorActivity, error) {
	ctx, span := observability.StartSpan(ctx, "VendorService.GetVendorActivity")
	defer span.End()

	if query.FacilityName == "" {
		return nil, apperrors.NewValidationError("facility name is required for vendor activity")
	}

	pattern := ""
	if query.Specialty != "" {
		pattern = rates.SpecialtyPattern(query.Specialty)
	}

	return s.repo.VendorActivity(ctx, repositories.VendorFilter{
		FacilityName:     query.FacilityName,
		City:             query.City,
		State:            query.State,
		SpecialtyPattern: pattern,
		WindowMonths:     vendorWindowMonths,
		Limit:            s.engine.DefaultResultCap,
	})
}

// GetVendorSummary aggregates one vendor's footprint across facilities; nil
// when the vendor has no recent activity
func (s *VendorService) GetVendorSummary(ctx context.Context, vendorName string) (*entities.VendorSummary, error) {
	ctx, span := observability.StartSpan(ctx, "VendorService.GetVendorSummary")
	defer span.End()

	if vendorName == "" {
		return nil, apperrors.NewValidationError("vendor name is required")
	}

	return s.repo.VendorSummary(ctx, vendorName)
}
