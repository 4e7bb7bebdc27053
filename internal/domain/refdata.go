// Reference-database models. The VCdb (vehicle configurations) and PCdb
// (part terminology and positions) are pre-populated by vendor import
// pipelines outside this service; the engine only ever reads them.
package domain

// VCdbVehicle is one catalogued vehicle configuration in the VCdb: a
// (make, model, year, submodel) tuple with its canonical configuration id.
type VCdbVehicle struct {
	VehicleID    string `json:"vehicle_id" gorm:"type:varchar(64);primaryKey;column:vehicle_id"`
	MakeName     string `json:"make"       gorm:"type:varchar(64);not null;index:idx_vcdb_make_model,priority:1"`
	ModelName    string `json:"model"      gorm:"type:varchar(128);not null;index:idx_vcdb_make_model,priority:2"`
	SubmodelName string `json:"submodel"   gorm:"type:varchar(64);not null;default:''"`
	Year         int    `json:"year"       gorm:"not null;index"`
}

// TableName returns the database table name for VCdbVehicle.
func (VCdbVehicle) TableName() string { return "vcdb_vehicles" }

// PCdbPosition is one catalogued mounting position in the PCdb, valid for a
// given part terminology. Axis columns hold the catalogued value or "na"
// when the axis does not apply to the part.
type PCdbPosition struct {
	PositionID        string `json:"position_id"         gorm:"type:varchar(64);primaryKey;column:position_id"`
	PartTerminologyID int    `json:"part_terminology_id" gorm:"not null;index"`
	FrontRear         string `json:"front_rear"          gorm:"type:varchar(8);not null;default:'na'"`
	LeftRight         string `json:"left_right"          gorm:"type:varchar(8);not null;default:'na'"`
	UpperLower        string `json:"upper_lower"         gorm:"type:varchar(8);not null;default:'na'"`
	InnerOuter        string `json:"inner_outer"         gorm:"type:varchar(8);not null;default:'na'"`
}

// TableName returns the database table name for PCdbPosition.
func (PCdbPosition) TableName() string { return "pcdb_positions" }
