// Package domain defines the persistence models and value objects for the
// fitment mapping engine: administrator-maintained model mappings, resolved
// fitments, and product↔fitment associations. These types are mapped with
// GORM and form the core data layer of the application.
package domain

import (
	"strings"
	"time"
)

// ModelMapping is an administrator-maintained pattern rule that translates a
// raw application-text fragment into a canonical Make|VehicleCode|Model
// triple. The engine consults mappings in priority order (highest first) to
// correct cases the deterministic parser cannot handle, e.g. vehicle codes
// ("WK") that map to a different canonical model name ("Grand Cherokee").
//
// Fields:
//   - ID: auto-increment primary key.
//   - Pattern: case-insensitive regular expression matched anywhere in the
//     raw application text. Unique per priority tier.
//   - Mapping: pipe-delimited "Make|VehicleCode|Model" payload.
//   - Priority: higher values are consulted first.
//   - Active: inactive rows are invisible to the matching path.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type ModelMapping struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	Pattern   string    `json:"pattern"    gorm:"type:varchar(255);not null;uniqueIndex:ux_mapping_pattern_priority,priority:1"`
	Mapping   string    `json:"mapping"    gorm:"type:varchar(255);not null"`
	Priority  int       `json:"priority"   gorm:"not null;default:0;index;uniqueIndex:ux_mapping_pattern_priority,priority:2"`
	// No column default: GORM skips zero-value fields when a default tag is
	// present, which would silently flip a created inactive row to active.
	Active    bool      `json:"active" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for ModelMapping.
func (ModelMapping) TableName() string { return "model_mappings" }

// SplitMapping splits the pipe-delimited payload into its Make, VehicleCode
// and Model segments. The boolean reports whether the payload had exactly
// three segments; malformed payloads yield ("", "", "", false).
func (m ModelMapping) SplitMapping() (makeName, vehicleCode, modelName string, ok bool) {
	parts := strings.Split(m.Mapping, "|")
	if len(parts) != 3 {
		return "", "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2]), true
}

// Fitment is a resolved (vehicle, position) pairing. Rows are deduplicated by
// content: the composite unique index across the vehicle and position columns
// guarantees that logically identical fitments share one row, which is what
// makes product association idempotent.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - VCdbVehicleID: canonical vehicle-configuration id from the VCdb.
//   - Year / MakeName / ModelName: denormalized vehicle attributes for display.
//   - FrontRear / LeftRight / UpperLower / InnerOuter: one column per
//     position axis ("front", "rear", "left", …, or "na").
//   - PositionIDs: sorted, comma-joined PCdb position ids compatible with the
//     part on this vehicle.
type Fitment struct {
	ID            string    `json:"id"              gorm:"type:char(36);primaryKey"`
	VCdbVehicleID string    `json:"vcdb_vehicle_id" gorm:"type:varchar(64);column:vcdb_vehicle_id;not null;uniqueIndex:ux_fitment_content,priority:1"`
	Year          int       `json:"year"            gorm:"not null"`
	MakeName      string    `json:"make"            gorm:"type:varchar(64);not null"`
	ModelName     string    `json:"model"           gorm:"type:varchar(128);not null"`
	FrontRear     string    `json:"front_rear"      gorm:"type:varchar(8);not null;default:'na';uniqueIndex:ux_fitment_content,priority:2"`
	LeftRight     string    `json:"left_right"      gorm:"type:varchar(8);not null;default:'na';uniqueIndex:ux_fitment_content,priority:3"`
	UpperLower    string    `json:"upper_lower"     gorm:"type:varchar(8);not null;default:'na';uniqueIndex:ux_fitment_content,priority:4"`
	InnerOuter    string    `json:"inner_outer"     gorm:"type:varchar(8);not null;default:'na';uniqueIndex:ux_fitment_content,priority:5"`
	PositionIDs   string    `json:"pcdb_position_ids" gorm:"type:varchar(512);not null;default:'';uniqueIndex:ux_fitment_content,priority:6"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName returns the database table name for Fitment.
func (Fitment) TableName() string { return "fitments" }

// Position reconstructs the VehiclePosition value from the flattened axis
// columns.
func (f Fitment) Position() VehiclePosition {
	return VehiclePosition{
		FrontRear:  f.FrontRear,
		LeftRight:  f.LeftRight,
		UpperLower: f.UpperLower,
		InnerOuter: f.InnerOuter,
	}
}

// PositionIDList returns the PCdb position ids as a slice. Empty when the
// fitment carries no part-position compatibility (WARNING-grade records).
func (f Fitment) PositionIDList() []string {
	if f.PositionIDs == "" {
		return nil
	}
	return strings.Split(f.PositionIDs, ",")
}

// ProductFitment associates a product with a fitment (many-to-many). Rows are
// insert-only; re-saving an existing (product, fitment) pair is a no-op,
// enforced by the unique index over the pair.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - ProductID: external product identifier.
//   - FitmentID: foreign key to the fitment row (cascade on delete).
//   - CreatedAt: insertion timestamp.
type ProductFitment struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	ProductID string    `json:"product_id" gorm:"type:varchar(64);not null;index;uniqueIndex:ux_product_fitment"`
	FitmentID string    `json:"fitment_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_product_fitment"`
	CreatedAt time.Time `json:"created_at"`

	// Fitment is the associated fitment row. Associations are cascade-deleted
	// if the underlying fitment is removed.
	Fitment Fitment `json:"-" gorm:"foreignKey:FitmentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ProductFitment.
func (ProductFitment) TableName() string { return "product_fitments" }
