// Package services – MappingService
//
// This file implements the MappingService, the administrative and matching
// surface over the model-mapping pattern table. Mappings are a data-driven
// strategy table: each row carries a regular expression, a priority, and a
// "Make|VehicleCode|Model" payload, and the matching path consults active
// rows in (priority desc, pattern asc) order, returning the first match.
//
// Compiled patterns are held in a cache owned by the service instance (not a
// package-level singleton) and invalidated whenever a row changes. A stored
// pattern that fails to compile is skipped and logged, never fatal: rows
// predating pattern validation, or written by other surfaces, must not be
// able to break matching for everyone else.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/sssolid/Crown-Nexus-sub007/internal/domain"
	"github.com/sssolid/Crown-Nexus-sub007/internal/repo"
)

// ModelMappingRepo defines the repository contract required by MappingService.
type ModelMappingRepo interface {
	// Create inserts a new mapping row.
	Create(ctx context.Context, db *gorm.DB, m *domain.ModelMapping) error

	// Get fetches one mapping by id.
	Get(ctx context.Context, db *gorm.DB, id uint) (*domain.ModelMapping, error)

	// Update persists the mutable fields of an existing row.
	Update(ctx context.Context, db *gorm.DB, m *domain.ModelMapping) error

	// Delete removes a mapping row.
	Delete(ctx context.Context, db *gorm.DB, id uint) error

	// FindByPattern fetches the row occupying a (pattern, priority) slot.
	FindByPattern(ctx context.Context, db *gorm.DB, pattern string, priority int) (*domain.ModelMapping, error)

	// ListActive returns active rows in matching order.
	ListActive(ctx context.Context, db *gorm.DB) ([]domain.ModelMapping, error)

	// Count returns the total number of rows for pagination.
	Count(ctx context.Context, db *gorm.DB) (int64, error)

	// ListPage returns a page of rows in matching order.
	ListPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ModelMapping, error)
}

// MappingService manages the model-mapping table and performs
// priority-ordered pattern matching against application text.
type MappingService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the mapping repository used by this service.
	Repo ModelMappingRepo

	cache patternCache
}

// NewMappingService constructs a MappingService.
func NewMappingService(db *gorm.DB, r ModelMappingRepo) *MappingService {
	return &MappingService{DB: db, Repo: r}
}

// ValidateMappingFormat checks the pipe-format invariant: the payload must
// split into exactly three segments and all three must be non-empty.
// Returns ErrInvalidMappingFormat otherwise.
func ValidateMappingFormat(mapping string) error {
	parts := strings.Split(mapping, "|")
	if len(parts) != 3 {
		return ErrInvalidMappingFormat
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return ErrInvalidMappingFormat
		}
	}
	return nil
}

// validate runs the CRUD-time checks: pipe format and pattern compilation.
// Match-time tolerance for bad patterns still exists (rows written by other
// surfaces), but new rows are rejected up front.
func (s *MappingService) validate(pattern, mapping string) error {
	if strings.TrimSpace(pattern) == "" {
		return ErrInvalidPattern
	}
	if _, err := regexp.Compile("(?i)" + pattern); err != nil {
		return ErrInvalidPattern
	}
	return ValidateMappingFormat(mapping)
}

// Create validates and inserts a new mapping row, then invalidates the
// compiled-pattern cache.
func (s *MappingService) Create(ctx context.Context, pattern, mapping string, priority int, active bool) (*domain.ModelMapping, error) {
	pattern = strings.TrimSpace(pattern)
	mapping = strings.TrimSpace(mapping)
	if err := s.validate(pattern, mapping); err != nil {
		return nil, err
	}
	m := &domain.ModelMapping{
		Pattern:  pattern,
		Mapping:  mapping,
		Priority: priority,
		Active:   active,
	}
	if err := s.Repo.Create(ctx, s.DB, m); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateMapping
		}
		return nil, err
	}
	s.InvalidateCache()
	return m, nil
}

// Upsert validates the payload, then inserts a row for (pattern, priority)
// or updates the existing row occupying that slot.
func (s *MappingService) Upsert(ctx context.Context, pattern, mapping string, priority int, active bool) (*domain.ModelMapping, error) {
	m, err := s.Create(ctx, pattern, mapping, priority, active)
	if !errors.Is(err, ErrDuplicateMapping) {
		return m, err
	}
	existing, err := s.Repo.FindByPattern(ctx, s.DB, strings.TrimSpace(pattern), priority)
	if err != nil {
		return nil, err
	}
	existing.Mapping = strings.TrimSpace(mapping)
	existing.Active = active
	if err := s.Repo.Update(ctx, s.DB, existing); err != nil {
		return nil, err
	}
	s.InvalidateCache()
	return existing, nil
}

// Update validates and persists changes to an existing mapping row, then
// invalidates the compiled-pattern cache. Returns ErrMappingNotFound when the
// row does not exist.
func (s *MappingService) Update(ctx context.Context, id uint, pattern, mapping string, priority int, active bool) (*domain.ModelMapping, error) {
	pattern = strings.TrimSpace(pattern)
	mapping = strings.TrimSpace(mapping)
	if err := s.validate(pattern, mapping); err != nil {
		return nil, err
	}
	m := &domain.ModelMapping{
		ID:       id,
		Pattern:  pattern,
		Mapping:  mapping,
		Priority: priority,
		Active:   active,
	}
	if err := s.Repo.Update(ctx, s.DB, m); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrMappingNotFound
		case errors.Is(err, repo.ErrDuplicate):
			return nil, ErrDuplicateMapping
		}
		return nil, err
	}
	s.InvalidateCache()
	return s.Repo.Get(ctx, s.DB, id)
}

// Delete removes a mapping row and invalidates the compiled-pattern cache.
// Returns ErrMappingNotFound when the row does not exist.
func (s *MappingService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrMappingNotFound
		}
		return err
	}
	s.InvalidateCache()
	return nil
}

// Get fetches one mapping row by id, or ErrMappingNotFound.
func (s *MappingService) Get(ctx context.Context, id uint) (*domain.ModelMapping, error) {
	m, err := s.Repo.Get(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMappingNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListPage returns a page of mapping rows in matching order and the total
// count. It applies defaults for invalid page/pageSize.
func (s *MappingService) ListPage(ctx context.Context, page, pageSize int) ([]domain.ModelMapping, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.Count(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.ModelMapping{}, 0, nil
	}

	items, err := s.Repo.ListPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// FindMatching returns the highest-priority active mapping whose pattern
// matches anywhere in text (case-insensitive), or nil when no mapping
// matches. A nil result is not an error: callers use parser output verbatim.
// Rows whose stored pattern fails to compile are skipped.
func (s *MappingService) FindMatching(ctx context.Context, text string) (*domain.ModelMapping, error) {
	rows, err := s.Repo.ListActive(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		re, ok := s.cache.get(&rows[i])
		if !ok {
			continue
		}
		if re.MatchString(text) {
			return &rows[i], nil
		}
	}
	return nil, nil
}

// InvalidateCache drops all compiled patterns. It is called automatically by
// every administrative write and exposed for external invalidation (e.g.
// after bulk imports touch the table directly).
func (s *MappingService) InvalidateCache() {
	s.cache.invalidate()
}

// patternCache holds compiled regular expressions keyed by mapping id.
// Entries remember the pattern text they were compiled from, so a row whose
// pattern changed under the same id recompiles instead of matching stale.
type patternCache struct {
	mu      sync.RWMutex
	entries map[uint]*patternEntry
}

type patternEntry struct {
	pattern string
	re      *regexp.Regexp
	bad     bool
}

// get returns the compiled pattern for m, compiling and caching on first
// use. The boolean is false when the stored pattern does not compile; such
// rows are logged once per cache generation and skipped by matching.
func (c *patternCache) get(m *domain.ModelMapping) (*regexp.Regexp, bool) {
	c.mu.RLock()
	e, hit := c.entries[m.ID]
	c.mu.RUnlock()
	if hit && e.pattern == m.Pattern {
		return e.re, !e.bad
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, hit = c.entries[m.ID]; hit && e.pattern == m.Pattern {
		return e.re, !e.bad
	}
	if c.entries == nil {
		c.entries = make(map[uint]*patternEntry)
	}
	re, err := regexp.Compile("(?i)" + m.Pattern)
	if err != nil {
		log.Warn().
			Uint("mapping_id", m.ID).
			Str("pattern", m.Pattern).
			Err(err).
			Msg("skipping model mapping with invalid pattern")
		c.entries[m.ID] = &patternEntry{pattern: m.Pattern, bad: true}
		return nil, false
	}
	c.entries[m.ID] = &patternEntry{pattern: m.Pattern, re: re}
	return re, true
}

// invalidate drops every cached entry.
func (c *patternCache) invalidate() {
	c.mu.Lock()
	c.entries = nil
	c.mu.Unlock()
}
