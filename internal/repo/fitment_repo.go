// Package repo – fitment persistence.
//
// Fitment rows are deduplicated by content (the composite unique index in
// domain.Fitment) and product↔fitment associations are insert-only with a
// unique pair constraint. Together these make SaveMappingResults idempotent:
// re-saving identical results finds the existing fitment row and the
// association insert becomes a no-op.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sssolid/Crown-Nexus-sub007/internal/domain"
)

// FindOrCreateFitment returns the persisted row matching f's content columns,
// inserting it if absent. The returned row carries the durable ID. A racing
// insert of the same content is resolved by re-reading after the unique
// violation.
func FindOrCreateFitment(ctx context.Context, db *gorm.DB, f *domain.Fitment) (*domain.Fitment, error) {
	existing, err := findFitmentByContent(ctx, db, f)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row := *f
	row.ID = uuid.NewString()
	row.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return findFitmentByContent(ctx, db, f)
		}
		return nil, err
	}
	return &row, nil
}

// findFitmentByContent looks up a fitment by its content columns.
func findFitmentByContent(ctx context.Context, db *gorm.DB, f *domain.Fitment) (*domain.Fitment, error) {
	var out domain.Fitment
	err := db.WithContext(ctx).
		Where("vcdb_vehicle_id = ? AND front_rear = ? AND left_right = ? AND upper_lower = ? AND inner_outer = ? AND position_ids = ?",
			f.VCdbVehicleID, f.FrontRear, f.LeftRight, f.UpperLower, f.InnerOuter, f.PositionIDs).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AssociateProductFitment inserts a (product, fitment) association. Returns
// (false, nil) when the pair already exists — a no-op, not an error — and
// (true, nil) when a new association row was created.
func AssociateProductFitment(ctx context.Context, db *gorm.DB, productID, fitmentID string) (bool, error) {
	rec := &domain.ProductFitment{
		ID:        uuid.NewString(),
		ProductID: productID,
		FitmentID: fitmentID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListProductFitments returns the fitments associated with a product,
// ordered by vehicle id, then year, then position columns for stable output.
func ListProductFitments(ctx context.Context, db *gorm.DB, productID string) ([]domain.Fitment, error) {
	var out []domain.Fitment
	err := db.WithContext(ctx).
		Model(&domain.Fitment{}).
		Joins("JOIN product_fitments pf ON pf.fitment_id = fitments.id").
		Where("pf.product_id = ?", productID).
		Order("fitments.vcdb_vehicle_id asc, fitments.year asc, fitments.front_rear asc, fitments.left_right asc").
		Find(&out).Error
	return out, err
}

// CountProductFitments returns the number of associations for a product.
func CountProductFitments(ctx context.Context, db *gorm.DB, productID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ProductFitment{}).
		Where("product_id = ?", productID).
		Count(&total).Error
	return total, err
}
