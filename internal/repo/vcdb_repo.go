// Package repo – VCdb queries.
//
// Read-only lookups over the pre-populated vehicle-configuration reference
// database. The VCdb is treated as an opaque key lookup: this service never
// writes to it, and its schema is owned by the vendor import pipeline.
//
// Matching is case-insensitive on make/model/submodel (the reference data is
// vendor-cased, application text is not). An empty make or submodel argument
// means "any"; resolution by model alone is a supported degraded path used
// when the parser could not identify the make and no mapping corrected it.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/sssolid/Crown-Nexus-sub007/internal/domain"
)

// vcdbScope composes the shared make/model/submodel predicates.
func vcdbScope(db *gorm.DB, makeName, modelName, submodel string) *gorm.DB {
	q := db.Where("lower(model_name) = lower(?)", modelName)
	if makeName != "" {
		q = q.Where("lower(make_name) = lower(?)", makeName)
	}
	if submodel != "" {
		q = q.Where("lower(submodel_name) = lower(?)", submodel)
	}
	return q
}

// FindVehicleExact returns the configuration matching make/model/year (and
// submodel when given) exactly. When several configurations share the tuple
// (e.g. submodel not given and multiple submodels catalogued), the lowest
// vehicle_id wins so results are reproducible. Returns ErrNotFound on miss.
func FindVehicleExact(ctx context.Context, db *gorm.DB, makeName, modelName string, year int, submodel string) (*domain.VCdbVehicle, error) {
	var v domain.VCdbVehicle
	err := vcdbScope(db.WithContext(ctx), makeName, modelName, submodel).
		Where("year = ?", year).
		Order("vehicle_id asc").
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FindVehicleAnyYear returns the first configuration for make/model ignoring
// the year, ordered by vehicle_id ascending with catalogued year as the
// tie-break. Used as the relaxed fallback when a requested year is not
// catalogued. Returns ErrNotFound on miss.
func FindVehicleAnyYear(ctx context.Context, db *gorm.DB, makeName, modelName, submodel string) (*domain.VCdbVehicle, error) {
	var v domain.VCdbVehicle
	err := vcdbScope(db.WithContext(ctx), makeName, modelName, submodel).
		Order("vehicle_id asc").
		Order("year asc").
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// VehicleYearSpan returns the lowest and highest catalogued model year for
// make/model. Returns ErrNotFound when the make/model is not catalogued at
// all, so callers can distinguish "unknown vehicle" from an empty span.
func VehicleYearSpan(ctx context.Context, db *gorm.DB, makeName, modelName string) (minYear, maxYear int, err error) {
	type span struct {
		MinYear *int
		MaxYear *int
	}
	var s span
	err = vcdbScope(db.WithContext(ctx).Model(&domain.VCdbVehicle{}), makeName, modelName, "").
		Select("min(year) as min_year, max(year) as max_year").
		Scan(&s).Error
	if err != nil {
		return 0, 0, err
	}
	if s.MinYear == nil || s.MaxYear == nil {
		return 0, 0, ErrNotFound
	}
	return *s.MinYear, *s.MaxYear, nil
}
