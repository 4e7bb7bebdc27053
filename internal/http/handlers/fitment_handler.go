// Fitment HTTP handlers.
//
// This file exposes the application-processing and product-fitment surface:
//   - POST /applications/process      (grade one application text)
//   - POST /applications/batch       (grade many texts concurrently)
//   - POST /products/{id}/fitments   (process texts and persist VALID results)
//   - GET  /products/{id}/fitments   (list persisted fitments)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sssolid/Crown-Nexus-sub007/internal/domain"
	"github.com/sssolid/Crown-Nexus-sub007/internal/services"
)

// FitmentService defines the engine operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type FitmentService interface {
	// ProcessApplication grades one application text.
	ProcessApplication(ctx context.Context, text string, partTerminologyID int) ([]domain.ValidationResult, error)
	// BatchProcessApplications grades many texts, one outcome list per text.
	BatchProcessApplications(ctx context.Context, texts []string, partTerminologyID int) map[string][]domain.ValidationResult
	// SaveMappingResults persists the VALID results for a product.
	SaveMappingResults(ctx context.Context, productID string, results []domain.ValidationResult) (bool, error)
	// ListProductFitments returns the fitments persisted for a product.
	ListProductFitments(ctx context.Context, productID string) ([]domain.Fitment, error)
}

// Handlers groups HTTP endpoints for model mappings and fitments.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	mappingSvc MappingService
	fitmentSvc FitmentService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(mappingSvc MappingService, fitmentSvc FitmentService) *Handlers {
	return &Handlers{mappingSvc: mappingSvc, fitmentSvc: fitmentSvc}
}

//
// DTOs
//

// ProcessApplicationRequest is the JSON payload for grading one text.
type ProcessApplicationRequest struct {
	// Text is the free-text application description.
	Text string `json:"text" binding:"required,min=1,max=512" example:"2005-2010 WK Grand Cherokee (Left or Right Front Upper Ball Joint)"`
	// PartTerminologyID identifies the part in the PCdb.
	PartTerminologyID int `json:"part_terminology_id" binding:"required" example:"58869"`
}

// BatchProcessRequest is the JSON payload for grading many texts.
type BatchProcessRequest struct {
	// Texts are the application descriptions, processed independently.
	Texts []string `json:"texts" binding:"required,min=1,max=500"`
	// PartTerminologyID identifies the part in the PCdb.
	PartTerminologyID int `json:"part_terminology_id" binding:"required" example:"58869"`
}

// ProcessApplicationResponse wraps graded results for one text.
type ProcessApplicationResponse struct {
	Results []domain.ValidationResult `json:"results"`
}

// BatchProcessResponse wraps graded results keyed by input text.
type BatchProcessResponse struct {
	Results map[string][]domain.ValidationResult `json:"results"`
}

// SaveFitmentsRequest is the JSON payload for processing texts and
// persisting their VALID results against a product.
type SaveFitmentsRequest BatchProcessRequest

// SaveFitmentsResponse reports the persistence outcome alongside the full
// graded results, so callers can surface WARNING entries for review.
type SaveFitmentsResponse struct {
	// Saved is true when at least one VALID result was persisted.
	Saved   bool                                 `json:"saved"`
	Results map[string][]domain.ValidationResult `json:"results"`
}

// ListFitmentsResponse wraps the fitments persisted for a product.
type ListFitmentsResponse struct {
	ProductID string           `json:"product_id"`
	Fitments  []domain.Fitment `json:"fitments"`
}

//
// Handlers
//

// ProcessApplication godoc
// @ID          processApplication
// @Summary     Resolve one application text
// @Description Parses the text, applies model-mapping corrections, resolves vehicle and part positions, and returns one graded result per (year, position) candidate.
// @Tags        Applications
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ProcessApplicationRequest  true  "Application text payload"
//
// @Success     200  {object}  handlers.ProcessApplicationResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid payload or part terminology id"
// @Failure     500  {object}  handlers.ErrorResponse  "Reference store failure"
// @Router      /applications/process [post]
func (h *Handlers) ProcessApplication(c *gin.Context) {
	var req ProcessApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	results, err := h.fitmentSvc.ProcessApplication(c.Request.Context(), req.Text, req.PartTerminologyID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPartTerminology) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeProcessFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ProcessApplicationResponse{Results: results})
}

// BatchProcessApplications godoc
// @ID          batchProcessApplications
// @Summary     Resolve many application texts
// @Description Processes each text independently (bounded concurrency). Per-item failures degrade to ERROR results; the response always carries one outcome list per input text.
// @Tags        Applications
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.BatchProcessRequest  true  "Batch payload"
//
// @Success     200  {object}  handlers.BatchProcessResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid payload"
// @Router      /applications/batch [post]
func (h *Handlers) BatchProcessApplications(c *gin.Context) {
	var req BatchProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if req.PartTerminologyID <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, services.ErrInvalidPartTerminology.Error())
		return
	}

	results := h.fitmentSvc.BatchProcessApplications(c.Request.Context(), req.Texts, req.PartTerminologyID)
	ok(c, http.StatusOK, BatchProcessResponse{Results: results})
}

// SaveProductFitments godoc
// @ID          saveProductFitments
// @Summary     Process texts and persist VALID fitments for a product
// @Description Grades every text, persists VALID results as product-fitment associations (idempotent), and returns the full results for review. WARNING results are never auto-persisted.
// @Tags        Products
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                      true  "Product ID"
// @Param       body  body  handlers.SaveFitmentsRequest  true  "Fitment payload"
//
// @Success     200  {object}  handlers.SaveFitmentsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid payload or product id"
// @Failure     500  {object}  handlers.ErrorResponse  "Persistence failure"
// @Router      /products/{id}/fitments [post]
func (h *Handlers) SaveProductFitments(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))
	if productID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, services.ErrEmptyProductID.Error())
		return
	}
	var req SaveFitmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if req.PartTerminologyID <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, services.ErrInvalidPartTerminology.Error())
		return
	}

	ctx := c.Request.Context()
	results := h.fitmentSvc.BatchProcessApplications(ctx, req.Texts, req.PartTerminologyID)

	var flat []domain.ValidationResult
	for _, rs := range results {
		flat = append(flat, rs...)
	}
	saved, err := h.fitmentSvc.SaveMappingResults(ctx, productID, flat)
	if err != nil {
		if errors.Is(err, services.ErrEmptyProductID) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeSaveFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, SaveFitmentsResponse{Saved: saved, Results: results})
}

// ListProductFitments godoc
// @ID          listProductFitments
// @Summary     List persisted fitments for a product
// @Tags        Products
// @Produce     json
//
// @Param       id  path  string  true  "Product ID"
//
// @Success     200  {object}  handlers.ListFitmentsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid product id"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /products/{id}/fitments [get]
func (h *Handlers) ListProductFitments(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))
	if productID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, services.ErrEmptyProductID.Error())
		return
	}

	fitments, err := h.fitmentSvc.ListProductFitments(c.Request.Context(), productID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListFitmentsResponse{ProductID: productID, Fitments: fitments})
}
