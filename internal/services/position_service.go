// Package services – PositionService
//
// Read-only resolution over the PCdb reference database: maps a part
// terminology id plus a requested vehicle position to the set of catalogued
// position ids compatible with it. An empty result is the expected "no
// compatibility" outcome and never an error.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/sssolid/Crown-Nexus-sub007/internal/domain"
	"github.com/sssolid/Crown-Nexus-sub007/internal/repo"
)

// PositionService resolves part mounting positions against the PCdb.
type PositionService struct {
	// DB is the GORM handle for the PCdb reference database.
	DB *gorm.DB
}

// NewPositionService constructs a PositionService over the given PCdb handle.
func NewPositionService(db *gorm.DB) *PositionService {
	return &PositionService{DB: db}
}

// ResolvePositions returns the catalogued position ids for partTerminologyID
// compatible with pos. A requested axis of na matches any catalogued value.
// Returns ErrInvalidPartTerminology for non-positive ids; otherwise errors
// only on store failure.
func (s *PositionService) ResolvePositions(ctx context.Context, partTerminologyID int, pos domain.VehiclePosition) ([]string, error) {
	if partTerminologyID <= 0 {
		return nil, ErrInvalidPartTerminology
	}
	return repo.ListCompatiblePositions(ctx, s.DB, partTerminologyID, normalizePosition(pos))
}

// normalizePosition maps empty axis values to na so value objects built by
// hand behave like parser output.
func normalizePosition(p domain.VehiclePosition) domain.VehiclePosition {
	if p.FrontRear == "" {
		p.FrontRear = domain.PosNA
	}
	if p.LeftRight == "" {
		p.LeftRight = domain.PosNA
	}
	if p.UpperLower == "" {
		p.UpperLower = domain.PosNA
	}
	if p.InnerOuter == "" {
		p.InnerOuter = domain.PosNA
	}
	return p
}
