// Package repo – PCdb queries.
//
// Read-only lookups over the pre-populated parts reference database. A
// requested axis value of "na" places no constraint on that axis; any
// catalogued value matches.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/sssolid/Crown-Nexus-sub007/internal/domain"
)

// ListCompatiblePositions returns the catalogued position ids for the given
// part terminology whose axis values are compatible with pos. Ordered by
// position_id ascending for deterministic results. An empty slice (not an
// error) means no compatibility was found.
func ListCompatiblePositions(ctx context.Context, db *gorm.DB, partTerminologyID int, pos domain.VehiclePosition) ([]string, error) {
	q := db.WithContext(ctx).
		Model(&domain.PCdbPosition{}).
		Where("part_terminology_id = ?", partTerminologyID)

	// na on the requested side matches any catalogued value.
	if pos.FrontRear != domain.PosNA {
		q = q.Where("front_rear = ?", pos.FrontRear)
	}
	if pos.LeftRight != domain.PosNA {
		q = q.Where("left_right = ?", pos.LeftRight)
	}
	if pos.UpperLower != domain.PosNA {
		q = q.Where("upper_lower = ?", pos.UpperLower)
	}
	if pos.InnerOuter != domain.PosNA {
		q = q.Where("inner_outer = ?", pos.InnerOuter)
	}

	var ids []string
	err := q.Order("position_id asc").Pluck("position_id", &ids).Error
	return ids, err
}
