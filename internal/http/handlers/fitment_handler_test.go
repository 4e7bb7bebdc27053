package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sssolid/Crown-Nexus-sub007/internal/domain"
	"github.com/sssolid/Crown-Nexus-sub007/internal/services"
)

// ---------- fake fitment service ----------

type fakeFitmentSvc struct {
	processText string
	processPart int
	processOut  []domain.ValidationResult
	processErr  error

	batchTexts []string
	batchPart  int
	batchOut   map[string][]domain.ValidationResult

	saveProductID string
	saveResults   []domain.ValidationResult
	saveOut       bool
	saveErr       error

	listProductID string
	listOut       []domain.Fitment
	listErr       error
}

func (f *fakeFitmentSvc) ProcessApplication(ctx context.Context, text string, partTerminologyID int) ([]domain.ValidationResult, error) {
	f.processText, f.processPart = text, partTerminologyID
	return f.processOut, f.processErr
}

func (f *fakeFitmentSvc) BatchProcessApplications(ctx context.Context, texts []string, partTerminologyID int) map[string][]domain.ValidationResult {
	f.batchTexts, f.batchPart = texts, partTerminologyID
	return f.batchOut
}

func (f *fakeFitmentSvc) SaveMappingResults(ctx context.Context, productID string, results []domain.ValidationResult) (bool, error) {
	f.saveProductID, f.saveResults = productID, results
	return f.saveOut, f.saveErr
}

func (f *fakeFitmentSvc) ListProductFitments(ctx context.Context, productID string) ([]domain.Fitment, error) {
	f.listProductID = productID
	return f.listOut, f.listErr
}

func newFitmentRouter(svc *fakeFitmentSvc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(nil, svc)
	r := gin.New()
	r.POST("/applications/process", h.ProcessApplication)
	r.POST("/applications/batch", h.BatchProcessApplications)
	r.POST("/products/:id/fitments", h.SaveProductFitments)
	r.GET("/products/:id/fitments", h.ListProductFitments)
	return r
}

// ---------- tests ----------

func TestProcessApplication_Handler(t *testing.T) {
	svc := &fakeFitmentSvc{
		processOut: []domain.ValidationResult{
			{Status: domain.StatusValid, Message: "resolved"},
		},
	}
	r := newFitmentRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/applications/process", ProcessApplicationRequest{
		Text:              "2007-2013 JK Wrangler (Front Lower Control Arm)",
		PartTerminologyID: 58869,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if svc.processPart != 58869 {
		t.Fatalf("part = %d", svc.processPart)
	}

	var resp ProcessApplicationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Status != domain.StatusValid {
		t.Fatalf("results = %+v", resp.Results)
	}
}

func TestProcessApplication_Handler_Errors(t *testing.T) {
	// Missing text fails binding.
	r := newFitmentRouter(&fakeFitmentSvc{})
	w := doJSON(t, r, http.MethodPost, "/applications/process", map[string]any{"part_terminology_id": 1})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing text: status = %d", w.Code)
	}

	// Service-level invalid part becomes 400, not 500.
	svc := &fakeFitmentSvc{processErr: services.ErrInvalidPartTerminology}
	r = newFitmentRouter(svc)
	w = doJSON(t, r, http.MethodPost, "/applications/process", ProcessApplicationRequest{Text: "x", PartTerminologyID: 1})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid part: status = %d", w.Code)
	}

	// Infrastructure failure is 500 with the domain error code.
	svc = &fakeFitmentSvc{processErr: errors.New("store down")}
	r = newFitmentRouter(svc)
	w = doJSON(t, r, http.MethodPost, "/applications/process", ProcessApplicationRequest{Text: "x", PartTerminologyID: 1})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("infra: status = %d", w.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &er)
	if er.Code != ErrCodeProcessFailed {
		t.Fatalf("code = %q", er.Code)
	}
}

func TestBatchProcessApplications_Handler(t *testing.T) {
	svc := &fakeFitmentSvc{
		batchOut: map[string][]domain.ValidationResult{
			"a": {{Status: domain.StatusValid}},
			"b": {{Status: domain.StatusError}},
		},
	}
	r := newFitmentRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/applications/batch", BatchProcessRequest{
		Texts:             []string{"a", "b"},
		PartTerminologyID: 58869,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if len(svc.batchTexts) != 2 {
		t.Fatalf("texts = %v", svc.batchTexts)
	}

	var resp BatchProcessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("results = %+v", resp.Results)
	}
}

func TestBatchProcessApplications_Handler_Validation(t *testing.T) {
	r := newFitmentRouter(&fakeFitmentSvc{})

	// Empty texts list fails binding (min=1).
	w := doJSON(t, r, http.MethodPost, "/applications/batch", map[string]any{
		"texts": []string{}, "part_terminology_id": 1,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty texts: status = %d", w.Code)
	}

	// Non-positive part id is rejected before fan-out.
	w = doJSON(t, r, http.MethodPost, "/applications/batch", map[string]any{
		"texts": []string{"a"}, "part_terminology_id": -1,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad part id: status = %d", w.Code)
	}
}

func TestSaveProductFitments_Handler(t *testing.T) {
	svc := &fakeFitmentSvc{
		batchOut: map[string][]domain.ValidationResult{
			"a": {{Status: domain.StatusValid, Fitment: &domain.Fitment{ID: "f1"}}},
			"b": {{Status: domain.StatusWarning}},
		},
		saveOut: true,
	}
	r := newFitmentRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/products/P-1/fitments", SaveFitmentsRequest{
		Texts:             []string{"a", "b"},
		PartTerminologyID: 58869,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if svc.saveProductID != "P-1" {
		t.Fatalf("productID = %q", svc.saveProductID)
	}
	if len(svc.saveResults) != 2 {
		t.Fatalf("flattened results = %d", len(svc.saveResults))
	}

	var resp SaveFitmentsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Saved || len(resp.Results) != 2 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestSaveProductFitments_Handler_SaveError(t *testing.T) {
	svc := &fakeFitmentSvc{
		batchOut: map[string][]domain.ValidationResult{"a": {{Status: domain.StatusValid}}},
		saveErr:  errors.New("tx failed"),
	}
	r := newFitmentRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/products/P-1/fitments", SaveFitmentsRequest{
		Texts: []string{"a"}, PartTerminologyID: 1,
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &er)
	if er.Code != ErrCodeSaveFailed {
		t.Fatalf("code = %q", er.Code)
	}
}

func TestListProductFitments_Handler(t *testing.T) {
	svc := &fakeFitmentSvc{
		listOut: []domain.Fitment{{ID: "f1", VCdbVehicleID: "w2007", Year: 2007}},
	}
	r := newFitmentRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/products/P-9/fitments", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.listProductID != "P-9" {
		t.Fatalf("productID = %q", svc.listProductID)
	}

	var resp ListFitmentsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ProductID != "P-9" || len(resp.Fitments) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestListProductFitments_Handler_Error(t *testing.T) {
	svc := &fakeFitmentSvc{listErr: errors.New("store down")}
	r := newFitmentRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/products/P-9/fitments", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &er)
	if er.Code != ErrCodeListFailed {
		t.Fatalf("code = %q", er.Code)
	}
}
