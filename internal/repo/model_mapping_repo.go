// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// ModelMapping pattern-translation table.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. In particular, pattern compilation and
// the pipe-format invariant are enforced by services.MappingService, not here.
//
// Error semantics:
//   - When a mapping is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - A unique-constraint violation on (pattern, priority) surfaces as
//     ErrDuplicate.
//   - On other DB errors, the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sssolid/Crown-Nexus-sub007/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates that an insert violated a unique constraint.
var ErrDuplicate = errors.New("duplicate")

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. glebarez/sqlite often returns plain-text errors for UNIQUE
// violations, so the message is inspected as a fallback.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}

// CreateModelMapping inserts a new mapping row. Returns ErrDuplicate when a
// row with the same (pattern, priority) already exists.
func CreateModelMapping(ctx context.Context, db *gorm.DB, m *domain.ModelMapping) error {
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetModelMapping fetches one mapping by id, or ErrNotFound.
func GetModelMapping(ctx context.Context, db *gorm.DB, id uint) (*domain.ModelMapping, error) {
	var m domain.ModelMapping
	if err := db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateModelMapping persists the mutable fields of an existing mapping row.
// Select is used so that a false Active value is written rather than skipped
// as a zero value. Returns ErrNotFound when the row does not exist.
func UpdateModelMapping(ctx context.Context, db *gorm.DB, m *domain.ModelMapping) error {
	res := db.WithContext(ctx).
		Model(&domain.ModelMapping{}).
		Where("id = ?", m.ID).
		Select("pattern", "mapping", "priority", "active").
		Updates(m)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return ErrDuplicate
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteModelMapping removes a mapping row by id. Returns ErrNotFound when
// no row was deleted.
func DeleteModelMapping(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.ModelMapping{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindModelMappingByPattern fetches the mapping occupying the (pattern,
// priority) slot, or ErrNotFound. Used by the upsert path to locate the row
// a conflicting insert collided with.
func FindModelMappingByPattern(ctx context.Context, db *gorm.DB, pattern string, priority int) (*domain.ModelMapping, error) {
	var m domain.ModelMapping
	err := db.WithContext(ctx).
		Where("pattern = ? AND priority = ?", pattern, priority).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListActiveModelMappings returns every active mapping in matching order:
// priority descending, then pattern ascending as the deterministic
// tie-break. This is the exact order the matching path must consult rows in.
func ListActiveModelMappings(ctx context.Context, db *gorm.DB) ([]domain.ModelMapping, error) {
	var out []domain.ModelMapping
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("priority desc").
		Order("pattern asc").
		Find(&out).Error
	return out, err
}

// CountModelMappings returns the total number of mapping rows (active and
// inactive), for pagination.
func CountModelMappings(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.ModelMapping{}).Count(&total).Error
	return total, err
}

// ListModelMappingsPage returns a page of mapping rows in matching order
// (priority descending, pattern ascending). Use CountModelMappings to obtain
// the total for pagination metadata.
func ListModelMappingsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ModelMapping, error) {
	var out []domain.ModelMapping
	err := db.WithContext(ctx).
		Order("priority desc").
		Order("pattern asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
