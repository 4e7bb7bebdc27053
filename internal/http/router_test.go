package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sssolid/Crown-Nexus-sub007/internal/config"
	"github.com/sssolid/Crown-Nexus-sub007/internal/domain"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T, name string, migrate ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", t.Name(), name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

// testDBs builds an app DB plus seeded reference DBs so requests can resolve
// real vehicles and positions end to end.
func testDBs(t *testing.T) (appDB, vcdb, pcdb *gorm.DB) {
	t.Helper()
	appDB = newTestDB(t, "app", &domain.ModelMapping{}, &domain.Fitment{}, &domain.ProductFitment{})
	vcdb = newTestDB(t, "vcdb", &domain.VCdbVehicle{})
	pcdb = newTestDB(t, "pcdb", &domain.PCdbPosition{})

	for y := 2007; y <= 2009; y++ {
		v := domain.VCdbVehicle{
			VehicleID: fmt.Sprintf("w%d", y),
			MakeName:  "Jeep",
			ModelName: "Wrangler",
			Year:      y,
		}
		if err := vcdb.Create(&v).Error; err != nil {
			t.Fatalf("seed vcdb: %v", err)
		}
	}
	positions := []domain.PCdbPosition{
		{PositionID: "22", PartTerminologyID: 58869, FrontRear: "front", LeftRight: "left", UpperLower: "lower", InnerOuter: "na"},
		{PositionID: "30", PartTerminologyID: 58869, FrontRear: "front", LeftRight: "right", UpperLower: "lower", InnerOuter: "na"},
	}
	for i := range positions {
		if err := pcdb.Create(&positions[i]).Error; err != nil {
			t.Fatalf("seed pcdb: %v", err)
		}
	}
	return appDB, vcdb, pcdb
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath:      "/api/v1",
		RateRPS:          100,
		RateBurst:        100,
		BatchConcurrency: 2,
		CORS:             config.CORSConfig{AllowedOrigins: nil}, // triggers AllowAllOrigins branch
		Security:         config.SecurityConfig{EnableHSTS: false, HSTSMaxAge: 0},
		OTEL:             config.OTELConfig{ServiceName: "test-svc"},
	}
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	appDB, vcdb, pcdb := testDBs(t)
	RegisterRoutes(r, appDB, vcdb, pcdb, testConfig())

	// /health works
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}

	// /metrics is wired
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || len(w.Body.Bytes()) == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute → 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"not_found"`) {
		t.Fatalf("expected not_found code in body, got %s", w.Body.String())
	}

	// NoMethod → 405 (DELETE /health)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE /health expected 405, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := testConfig()
	cfg.APIBasePath = "/api/v2"
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}
	appDB, vcdb, pcdb := testDBs(t)
	RegisterRoutes(r, appDB, vcdb, pcdb, cfg)

	// Any request runs through CORS middleware; header should reflect origin.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}
}

// End-to-end: a process request resolves seeded vehicles and positions.
func TestRegisterRoutes_ProcessApplication_EndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	appDB, vcdb, pcdb := testDBs(t)
	RegisterRoutes(r, appDB, vcdb, pcdb, testConfig())

	// Install a mapping via the API, then process a text that uses it.
	body := bytes.NewBufferString(`{"pattern":"JK Wrangler","mapping":"Jeep|JK|Wrangler","priority":10}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mappings", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /mappings = %d body=%s", w.Code, w.Body.String())
	}

	body = bytes.NewBufferString(`{"text":"2007-2009 JK Wrangler (Front Lower Control Arm)","part_terminology_id":58869}`)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/applications/process", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /applications/process = %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Results []domain.ValidationResult `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(resp.Results))
	}
	for i, res := range resp.Results {
		if res.Status != domain.StatusValid {
			t.Fatalf("result %d status = %q (%s)", i, res.Status, res.Message)
		}
		if res.Fitment == nil || res.Fitment.Year != 2007+i {
			t.Fatalf("result %d fitment = %+v", i, res.Fitment)
		}
		if res.Fitment.ModelName != "Wrangler" || res.Fitment.MakeName != "Jeep" {
			t.Fatalf("result %d mapping not applied: %+v", i, res.Fitment)
		}
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")) // 12 bytes
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// "/" and "" should mount at root
	root1 := groupWithPrefix(r, "/")
	root1.GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	root2 := groupWithPrefix(r, "")
	root2.GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })

	// non-root prefix
	api := groupWithPrefix(r, "/api")
	api.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK || rec.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, rec.Code, rec.Body.String())
		}
	}
}

// Smoke test that a request traverses the full middleware pipeline with HSTS
// enabled and a request id generated.
func TestPipeline_Smoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := testConfig()
	cfg.Security = config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: time.Hour} // only set on https
	appDB, vcdb, pcdb := testDBs(t)
	RegisterRoutes(r, appDB, vcdb, pcdb, cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/mappings", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/mappings = %d body=%s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
	// plain http request: HSTS must not be set
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Fatalf("unexpected HSTS header on plain http")
	}
}
