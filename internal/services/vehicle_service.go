// Package services – VehicleService
//
// Read-only resolution over the VCdb reference database. The resolver maps
// (make, model, year, submodel) tuples to canonical vehicle-configuration
// ids. Resolution misses are not errors — the engine grades them — so the
// only error paths here are malformed input and store failure.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sssolid/Crown-Nexus-sub007/internal/repo"
)

// VehicleService resolves vehicle configurations against the VCdb.
type VehicleService struct {
	// DB is the GORM handle for the VCdb reference database.
	DB *gorm.DB
}

// NewVehicleService constructs a VehicleService over the given VCdb handle.
func NewVehicleService(db *gorm.DB) *VehicleService {
	return &VehicleService{DB: db}
}

// ResolveVehicle returns the canonical configuration id for the tuple, or ""
// when nothing matches. Make and submodel are optional (empty matches any);
// model is required — an empty model is a guaranteed miss, not an error.
//
// Lookup order: exact (make, model, year, submodel) first; on miss, the
// relaxed match ignoring year, ordered by vehicle id then lowest catalogued
// year so multi-year spans resolve deterministically.
func (s *VehicleService) ResolveVehicle(ctx context.Context, makeName, modelName string, year int, submodel string) (string, error) {
	if year <= 0 {
		return "", ErrInvalidYear
	}
	modelName = strings.TrimSpace(modelName)
	if modelName == "" {
		return "", nil
	}
	makeName = strings.TrimSpace(makeName)
	submodel = strings.TrimSpace(submodel)

	v, err := repo.FindVehicleExact(ctx, s.DB, makeName, modelName, year, submodel)
	if err == nil {
		return v.VehicleID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	v, err = repo.FindVehicleAnyYear(ctx, s.DB, makeName, modelName, submodel)
	if err == nil {
		return v.VehicleID, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return "", err
}

// YearSpan returns the lowest and highest catalogued model year for
// make/model. Returns repo.ErrNotFound when the make/model is not catalogued
// at all, which the engine reports as an unresolved vehicle.
func (s *VehicleService) YearSpan(ctx context.Context, makeName, modelName string) (int, int, error) {
	modelName = strings.TrimSpace(modelName)
	if modelName == "" {
		return 0, 0, repo.ErrNotFound
	}
	return repo.VehicleYearSpan(ctx, s.DB, strings.TrimSpace(makeName), modelName)
}
