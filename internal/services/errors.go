// Package services implements the business logic of the fitment mapping
// engine: model-mapping administration and matching, vehicle and part
// position resolution, application processing, and fitment persistence.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

// Model-mapping errors.
var (
	// ErrMappingNotFound indicates that the requested model mapping does
	// not exist.
	ErrMappingNotFound = errors.New("model mapping not found")

	// ErrInvalidMappingFormat is returned when a mapping payload does not
	// split into exactly three pipe-delimited non-empty segments
	// ("Make|VehicleCode|Model").
	ErrInvalidMappingFormat = errors.New(`mapping must be "Make|VehicleCode|Model" with all three segments non-empty`)

	// ErrInvalidPattern is returned when a mapping pattern is not a valid
	// regular expression.
	ErrInvalidPattern = errors.New("mapping pattern is not a valid regular expression")

	// ErrDuplicateMapping is returned when a mapping with the same pattern
	// and priority already exists.
	ErrDuplicateMapping = errors.New("a mapping with this pattern and priority already exists")
)

// Resolution errors. Resolution misses are not errors — resolvers return
// empty results for those. These sentinels cover malformed input only.
var (
	// ErrInvalidYear is returned for non-positive model years.
	ErrInvalidYear = errors.New("model year must be positive")

	// ErrInvalidPartTerminology is returned for non-positive part
	// terminology ids.
	ErrInvalidPartTerminology = errors.New("part terminology id must be positive")
)

// Persistence errors.
var (
	// ErrEmptyProductID is returned when fitment results are saved without
	// a product identifier.
	ErrEmptyProductID = errors.New("product id is empty")
)
