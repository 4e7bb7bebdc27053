// Value objects produced and consumed by the mapping engine: parsed
// application text, vehicle positions, and graded validation results.
// None of these are persisted directly; the Fitment model in models.go is
// the durable form.
package domain

import "fmt"

// Position axis values. Each of the four axes is independent; "na" means the
// axis is unspecified and matches any catalogued value during resolution.
const (
	PosFront = "front"
	PosRear  = "rear"
	PosLeft  = "left"
	PosRight = "right"
	PosUpper = "upper"
	PosLower = "lower"
	PosInner = "inner"
	PosOuter = "outer"
	PosNA    = "na"
)

// VehiclePosition is a value object describing where on the vehicle a part
// mounts, expressed as four independent axes. Multiple positions may be
// produced from one application text when the text expresses a disjunction
// ("Left or Right").
type VehiclePosition struct {
	FrontRear  string `json:"front_rear"`
	LeftRight  string `json:"left_right"`
	UpperLower string `json:"upper_lower"`
	InnerOuter string `json:"inner_outer"`
}

// AllNA reports whether every axis is unspecified.
func (p VehiclePosition) AllNA() bool {
	return p.FrontRear == PosNA && p.LeftRight == PosNA &&
		p.UpperLower == PosNA && p.InnerOuter == PosNA
}

// String renders the position compactly for log and error messages,
// e.g. "front/left/upper/na".
func (p VehiclePosition) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", p.FrontRear, p.LeftRight, p.UpperLower, p.InnerOuter)
}

// NAPosition returns the all-unspecified position, used when the application
// text carries no parenthesized position suffix.
func NAPosition() VehiclePosition {
	return VehiclePosition{FrontRear: PosNA, LeftRight: PosNA, UpperLower: PosNA, InnerOuter: PosNA}
}

// ParsedApplication is the immutable output of the application-text parser.
// Nil year pointers mean "no year range in the text" and trigger the
// all-catalogued-years fallback downstream; they are never silently zero.
type ParsedApplication struct {
	YearStart      *int     `json:"year_start,omitempty"`
	YearEnd        *int     `json:"year_end,omitempty"`
	Make           string   `json:"make,omitempty"`
	Model          string   `json:"model,omitempty"`
	Submodel       string   `json:"submodel,omitempty"`
	PositionTokens []string `json:"position_tokens,omitempty"`
}

// Empty reports whether the parser extracted nothing usable from the text.
func (p ParsedApplication) Empty() bool {
	return p.YearStart == nil && p.Make == "" && p.Model == "" && len(p.PositionTokens) == 0
}

// ValidationStatus is the terminal classification of one enumerated
// (year, position) candidate. There are no transitions between statuses
// within a resolution attempt.
type ValidationStatus string

const (
	// StatusValid marks a fully resolved fitment, eligible for automatic
	// persistence.
	StatusValid ValidationStatus = "VALID"
	// StatusWarning marks a fitment whose vehicle resolved but whose
	// part-position compatibility did not; usable with manual review.
	StatusWarning ValidationStatus = "WARNING"
	// StatusError marks an unusable candidate (vehicle unresolved or the
	// text unprocessable). Never persisted.
	StatusError ValidationStatus = "ERROR"
)

// ValidationResult is the graded outcome for one enumerated candidate.
// Fitment is present whenever the vehicle resolved (VALID, and WARNING for
// missing part-position compatibility); unresolved candidates carry nil.
// The Fitment value is owned exclusively by this result and never shared.
type ValidationResult struct {
	Status  ValidationStatus `json:"status"`
	Message string           `json:"message"`
	Fitment *Fitment         `json:"fitment,omitempty"`
}
