// Model-mapping HTTP handlers.
//
// This file exposes the administrative surface for the pattern-translation
// table:
//   - POST   /mappings          (create)
//   - GET    /mappings          (list, paginated)
//   - PUT    /mappings/{id}     (update)
//   - DELETE /mappings/{id}     (delete)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sssolid/Crown-Nexus-sub007/internal/domain"
	"github.com/sssolid/Crown-Nexus-sub007/internal/services"
	"github.com/sssolid/Crown-Nexus-sub007/internal/utils"
)

// MappingService defines the model-mapping operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type MappingService interface {
	// Create validates and inserts a mapping row.
	Create(ctx context.Context, pattern, mapping string, priority int, active bool) (*domain.ModelMapping, error)
	// Update validates and persists changes to an existing row.
	Update(ctx context.Context, id uint, pattern, mapping string, priority int, active bool) (*domain.ModelMapping, error)
	// Delete removes a mapping row.
	Delete(ctx context.Context, id uint) error
	// ListPage returns a page of rows in matching order and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.ModelMapping, int64, error)
}

// CreateMappingRequest is the JSON payload for creating a model mapping.
type CreateMappingRequest struct {
	// Pattern is a case-insensitive regular expression matched against raw
	// application text.
	Pattern string `json:"pattern" binding:"required,min=1,max=255" example:"\\bWK\\b"`
	// Mapping is the pipe-delimited "Make|VehicleCode|Model" payload.
	Mapping string `json:"mapping" binding:"required,min=5,max=255" example:"Jeep|WK|Grand Cherokee"`
	// Priority orders matching; higher values are consulted first.
	Priority int `json:"priority" example:"10"`
	// Active controls visibility to the matching path.
	Active *bool `json:"active" example:"true"`
}

// UpdateMappingRequest is the JSON payload for updating a model mapping.
type UpdateMappingRequest CreateMappingRequest

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListMappingsResponse wraps a page of mappings and pagination information.
type ListMappingsResponse struct {
	Mappings   []domain.ModelMapping `json:"mappings"`
	Pagination Pagination            `json:"pagination"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// mappingID parses the :id path parameter.
func mappingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// CreateMapping godoc
// @ID          createMapping
// @Summary     Create a model mapping
// @Description Creates a pattern-translation rule. The mapping payload must be "Make|VehicleCode|Model" with all three segments non-empty.
// @Tags        Mappings
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateMappingRequest  true  "Create mapping payload"
//
// @Success     201  {object}  domain.ModelMapping
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid payload, pattern, or mapping format"
// @Failure     409  {object}  handlers.ErrorResponse  "Pattern/priority already in use"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /mappings [post]
func (h *Handlers) CreateMapping(c *gin.Context) {
	var req CreateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	m, err := h.mappingSvc.Create(c.Request.Context(), req.Pattern, req.Mapping, req.Priority, active)
	if err != nil {
		failMapping(c, err)
		return
	}
	ok(c, http.StatusCreated, m)
}

// ListMappings godoc
// @ID          listMappings
// @Summary     List model mappings (paginated)
// @Description Returns mappings in matching order: priority descending, then pattern ascending.
// @Tags        Mappings
// @Produce     json
//
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListMappingsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /mappings [get]
func (h *Handlers) ListMappings(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.mappingSvc.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListMappingsResponse{
		Mappings: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// UpdateMapping godoc
// @ID          updateMapping
// @Summary     Update a model mapping
// @Description Replaces the pattern, mapping payload, priority, and active flag of an existing rule.
// @Tags        Mappings
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                            true  "Mapping ID"
// @Param       body  body  handlers.UpdateMappingRequest  true  "Update mapping payload"
//
// @Success     200  {object}  domain.ModelMapping
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid payload, pattern, or mapping format"
// @Failure     404  {object}  handlers.ErrorResponse  "Mapping not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Pattern/priority already in use"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /mappings/{id} [put]
func (h *Handlers) UpdateMapping(c *gin.Context) {
	id, okID := mappingID(c)
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid mapping id")
		return
	}
	var req UpdateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	m, err := h.mappingSvc.Update(c.Request.Context(), id, req.Pattern, req.Mapping, req.Priority, active)
	if err != nil {
		failMapping(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// DeleteMapping godoc
// @ID          deleteMapping
// @Summary     Delete a model mapping
// @Tags        Mappings
// @Produce     json
//
// @Param       id  path  int  true  "Mapping ID"
//
// @Success     204  {string}  string                  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Mapping not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /mappings/{id} [delete]
func (h *Handlers) DeleteMapping(c *gin.Context) {
	id, okID := mappingID(c)
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid mapping id")
		return
	}
	if err := h.mappingSvc.Delete(c.Request.Context(), id); err != nil {
		failMapping(c, err)
		return
	}
	noContent(c)
}

// failMapping translates mapping service errors into HTTP responses.
func failMapping(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidMappingFormat), errors.Is(err, services.ErrInvalidPattern):
		fail(c, http.StatusBadRequest, ErrCodeInvalidMapping, err.Error())
	case errors.Is(err, services.ErrMappingNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, services.ErrDuplicateMapping):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
