// Package services – FitmentService
//
// The orchestrator of the fitment mapping engine. One free-text application
// description is parsed, corrected by the model-mapping table, expanded into
// discrete (year, position) candidates, resolved against the VCdb and PCdb,
// and graded: each candidate gets exactly one terminal ValidationStatus.
//
// Status policy lives with callers: VALID results are auto-persisted by
// SaveMappingResults, WARNING results are surfaced for manual confirmation,
// ERROR results are reported and never persisted.
//
// Batch processing fans out over independent texts with a bounded worker
// group; one text's failure (including a panic in a resolver) is isolated
// into an ERROR outcome for that text alone.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/sssolid/Crown-Nexus-sub007/internal/domain"
	"github.com/sssolid/Crown-Nexus-sub007/internal/parser"
	"github.com/sssolid/Crown-Nexus-sub007/internal/repo"
)

// validationResults counts graded outcomes by terminal status.
var validationResults = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "fitment_validation_results_total",
		Help: "Validation results produced by the mapping engine, by status.",
	},
	[]string{"status"},
)

func init() {
	prometheus.MustRegister(validationResults)
}

// MappingMatcher is the model-mapping lookup contract required by the engine.
type MappingMatcher interface {
	// FindMatching returns the highest-priority active mapping matching the
	// text, or nil when none match.
	FindMatching(ctx context.Context, text string) (*domain.ModelMapping, error)
}

// VehicleResolver is the VCdb lookup contract required by the engine.
type VehicleResolver interface {
	// ResolveVehicle maps a (make, model, year, submodel) tuple to a
	// configuration id, or "" on miss.
	ResolveVehicle(ctx context.Context, makeName, modelName string, year int, submodel string) (string, error)
	// YearSpan returns the catalogued year range for make/model.
	YearSpan(ctx context.Context, makeName, modelName string) (int, int, error)
}

// PositionResolver is the PCdb lookup contract required by the engine.
type PositionResolver interface {
	// ResolvePositions returns catalogued position ids compatible with pos.
	ResolvePositions(ctx context.Context, partTerminologyID int, pos domain.VehiclePosition) ([]string, error)
}

// FitmentService orchestrates parsing, mapping correction, resolution,
// grading, and persistence of fitments.
type FitmentService struct {
	// DB is the GORM handle for the application database (fitment rows and
	// product associations).
	DB *gorm.DB
	// Mappings supplies pattern-table corrections.
	Mappings MappingMatcher
	// Vehicles resolves vehicle configurations (VCdb).
	Vehicles VehicleResolver
	// Positions resolves part mounting positions (PCdb).
	Positions PositionResolver

	// BatchConcurrency bounds the batch worker group. Values below 1 are
	// treated as 1.
	BatchConcurrency int
}

// NewFitmentService constructs a FitmentService with the default batch
// concurrency.
func NewFitmentService(db *gorm.DB, m MappingMatcher, v VehicleResolver, p PositionResolver) *FitmentService {
	return &FitmentService{
		DB:               db,
		Mappings:         m,
		Vehicles:         v,
		Positions:        p,
		BatchConcurrency: 4,
	}
}

// ProcessApplication resolves one application text against the given part
// terminology and returns one graded result per enumerated (year, position)
// candidate, in year-ascending then position-generation order.
//
// Resolution misses surface as ERROR/WARNING results; the returned error is
// reserved for malformed input (non-positive part terminology id) and
// infrastructure failure in the underlying stores.
func (s *FitmentService) ProcessApplication(ctx context.Context, text string, partTerminologyID int) ([]domain.ValidationResult, error) {
	if partTerminologyID <= 0 {
		return nil, ErrInvalidPartTerminology
	}

	parsed := parser.Parse(text)

	mapping, err := s.Mappings.FindMatching(ctx, text)
	if err != nil {
		return nil, err
	}

	makeName, modelName, submodel := parsed.Make, parsed.Model, parsed.Submodel
	if mapping != nil {
		if mk, _, md, ok := mapping.SplitMapping(); ok {
			if mk != "" {
				makeName = mk
			}
			if md != "" {
				modelName = md
			}
		} else {
			log.Warn().
				Uint("mapping_id", mapping.ID).
				Str("mapping", mapping.Mapping).
				Msg("ignoring model mapping with malformed payload")
		}
	}

	if modelName == "" && makeName == "" {
		return s.graded(domain.ValidationResult{
			Status:  domain.StatusWarning,
			Message: fmt.Sprintf("no vehicle information could be extracted from %q", text),
		}), nil
	}

	yearStart, yearEnd, err := s.yearRange(ctx, parsed, makeName, modelName)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return s.graded(domain.ValidationResult{
				Status:  domain.StatusError,
				Message: fmt.Sprintf("no catalogued years for %s %s", orAny(makeName), modelName),
			}), nil
		}
		return nil, err
	}

	positions := parser.ExpandPositions(parsed.PositionTokens)

	var results []domain.ValidationResult
	for year := yearStart; year <= yearEnd; year++ {
		for _, pos := range positions {
			r, err := s.resolveCandidate(ctx, makeName, modelName, submodel, year, pos, partTerminologyID)
			if err != nil {
				return nil, err
			}
			results = append(results, s.graded(r)...)
		}
	}
	return results, nil
}

// yearRange picks the discrete year span to enumerate: the parsed range when
// the text had one, otherwise every catalogued year for the make/model.
func (s *FitmentService) yearRange(ctx context.Context, parsed domain.ParsedApplication, makeName, modelName string) (int, int, error) {
	if parsed.YearStart != nil && parsed.YearEnd != nil {
		return *parsed.YearStart, *parsed.YearEnd, nil
	}
	return s.Vehicles.YearSpan(ctx, makeName, modelName)
}

// resolveCandidate classifies one (year, position) candidate.
func (s *FitmentService) resolveCandidate(ctx context.Context, makeName, modelName, submodel string, year int, pos domain.VehiclePosition, partTerminologyID int) (domain.ValidationResult, error) {
	vehicleID, err := s.Vehicles.ResolveVehicle(ctx, makeName, modelName, year, submodel)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	if vehicleID == "" {
		return domain.ValidationResult{
			Status:  domain.StatusError,
			Message: fmt.Sprintf("no vehicle configuration for %d %s %s", year, orAny(makeName), modelName),
		}, nil
	}

	ids, err := s.Positions.ResolvePositions(ctx, partTerminologyID, pos)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	sort.Strings(ids)

	fitment := &domain.Fitment{
		VCdbVehicleID: vehicleID,
		Year:          year,
		MakeName:      makeName,
		ModelName:     modelName,
		FrontRear:     pos.FrontRear,
		LeftRight:     pos.LeftRight,
		UpperLower:    pos.UpperLower,
		InnerOuter:    pos.InnerOuter,
		PositionIDs:   strings.Join(ids, ","),
	}

	if len(ids) == 0 {
		return domain.ValidationResult{
			Status:  domain.StatusWarning,
			Message: fmt.Sprintf("vehicle %s resolved but no position of part %d matches %s", vehicleID, partTerminologyID, pos),
			Fitment: fitment,
		}, nil
	}
	return domain.ValidationResult{
		Status:  domain.StatusValid,
		Message: fmt.Sprintf("%d %s %s resolved to vehicle %s", year, orAny(makeName), modelName, vehicleID),
		Fitment: fitment,
	}, nil
}

// graded records the result in the status counter and wraps it in a slice
// for convenient appending.
func (s *FitmentService) graded(r domain.ValidationResult) []domain.ValidationResult {
	validationResults.WithLabelValues(string(r.Status)).Inc()
	return []domain.ValidationResult{r}
}

// BatchProcessApplications applies ProcessApplication independently to each
// text, fanning out over a worker group bounded by BatchConcurrency. The
// returned map has exactly one entry per distinct input text; infrastructure
// errors and panics in one item degrade to an ERROR result for that text
// only.
func (s *FitmentService) BatchProcessApplications(ctx context.Context, texts []string, partTerminologyID int) map[string][]domain.ValidationResult {
	limit := s.BatchConcurrency
	if limit < 1 {
		limit = 1
	}

	perText := make([][]domain.ValidationResult, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range texts {
		g.Go(func() error {
			perText[i] = s.processIsolated(gctx, texts[i], partTerminologyID)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures are graded per item

	out := make(map[string][]domain.ValidationResult, len(texts))
	for i, text := range texts {
		out[text] = perText[i]
	}
	return out
}

// processIsolated runs ProcessApplication and converts errors and panics
// into a single ERROR result so batch siblings are unaffected.
func (s *FitmentService) processIsolated(ctx context.Context, text string, partTerminologyID int) (results []domain.ValidationResult) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Str("text", text).
				Interface("panic", rec).
				Msg("panic while processing application text")
			results = s.graded(domain.ValidationResult{
				Status:  domain.StatusError,
				Message: fmt.Sprintf("processing %q failed: %v", text, rec),
			})
		}
	}()

	results, err := s.ProcessApplication(ctx, text, partTerminologyID)
	if err != nil {
		log.Error().
			Str("text", text).
			Err(err).
			Msg("application text failed during resolution")
		return s.graded(domain.ValidationResult{
			Status:  domain.StatusError,
			Message: fmt.Sprintf("processing %q failed: %v", text, err),
		})
	}
	return results
}

// SaveMappingResults persists the VALID results as product↔fitment
// associations inside one transaction. Fitment rows are deduplicated by
// content and the association insert is a no-op when the pair already
// exists, so re-saving identical results never creates duplicates.
//
// Returns (false, nil) when results contained nothing VALID — callers can
// distinguish "nothing to save" from a failed save, which returns an error.
func (s *FitmentService) SaveMappingResults(ctx context.Context, productID string, results []domain.ValidationResult) (bool, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return false, ErrEmptyProductID
	}

	var valid []*domain.Fitment
	for _, r := range results {
		if r.Status == domain.StatusValid && r.Fitment != nil {
			valid = append(valid, r.Fitment)
		}
	}
	if len(valid) == 0 {
		return false, nil
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, f := range valid {
			row, err := repo.FindOrCreateFitment(ctx, tx, f)
			if err != nil {
				return err
			}
			if _, err := repo.AssociateProductFitment(ctx, tx, productID, row.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListProductFitments returns the fitments persisted for a product.
func (s *FitmentService) ListProductFitments(ctx context.Context, productID string) ([]domain.Fitment, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrEmptyProductID
	}
	return repo.ListProductFitments(ctx, s.DB, productID)
}

// orAny substitutes a placeholder for an empty make in messages.
func orAny(makeName string) string {
	if makeName == "" {
		return "(any make)"
	}
	return makeName
}
