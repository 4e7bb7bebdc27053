// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, compression, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/sssolid/Crown-Nexus-sub007/internal/config"
	"github.com/sssolid/Crown-Nexus-sub007/internal/domain"
	"github.com/sssolid/Crown-Nexus-sub007/internal/http/handlers"
	"github.com/sssolid/Crown-Nexus-sub007/internal/http/middleware"
	"github.com/sssolid/Crown-Nexus-sub007/internal/repo"
	"github.com/sssolid/Crown-Nexus-sub007/internal/services"
)

// mappingRepoShim adapts the repository free functions to the
// services.ModelMappingRepo interface expected by the MappingService. This
// keeps services decoupled from the concrete repo package while reusing
// existing functions.
type mappingRepoShim struct{}

// Create proxies repo.CreateModelMapping.
func (mappingRepoShim) Create(ctx context.Context, db *gorm.DB, m *domain.ModelMapping) error {
	return repo.CreateModelMapping(ctx, db, m)
}

// Get proxies repo.GetModelMapping.
func (mappingRepoShim) Get(ctx context.Context, db *gorm.DB, id uint) (*domain.ModelMapping, error) {
	return repo.GetModelMapping(ctx, db, id)
}

// Update proxies repo.UpdateModelMapping.
func (mappingRepoShim) Update(ctx context.Context, db *gorm.DB, m *domain.ModelMapping) error {
	return repo.UpdateModelMapping(ctx, db, m)
}

// Delete proxies repo.DeleteModelMapping.
func (mappingRepoShim) Delete(ctx context.Context, db *gorm.DB, id uint) error {
	return repo.DeleteModelMapping(ctx, db, id)
}

// FindByPattern proxies repo.FindModelMappingByPattern.
func (mappingRepoShim) FindByPattern(ctx context.Context, db *gorm.DB, pattern string, priority int) (*domain.ModelMapping, error) {
	return repo.FindModelMappingByPattern(ctx, db, pattern, priority)
}

// ListActive proxies repo.ListActiveModelMappings.
func (mappingRepoShim) ListActive(ctx context.Context, db *gorm.DB) ([]domain.ModelMapping, error) {
	return repo.ListActiveModelMappings(ctx, db)
}

// Count proxies repo.CountModelMappings (pagination support).
func (mappingRepoShim) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountModelMappings(ctx, db)
}

// ListPage proxies repo.ListModelMappingsPage (pagination support).
func (mappingRepoShim) ListPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ModelMapping, error) {
	return repo.ListModelMappingsPage(ctx, db, offset, limit)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. appDB holds this service's own tables (mappings, fitments,
// associations); vcdb and pcdb are the read-only reference databases.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with sensitive-header scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per client/IP)
//  8. Compression, then CORS and security headers
func RegisterRoutes(r *gin.Engine, appDB, vcdb, pcdb *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB; batch payloads stay well under it)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per client
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientOrIP())
	r.Use(rl.Handler())

	// 8) Response compression (result lists compress well)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Client-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Client-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (docs package generated by `swag init`)
	if cfg.SwaggerEnabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repos/databases
	mappingSvc := services.NewMappingService(appDB, mappingRepoShim{})
	fitmentSvc := services.NewFitmentService(
		appDB,
		mappingSvc,
		services.NewVehicleService(vcdb),
		services.NewPositionService(pcdb),
	)
	fitmentSvc.BatchConcurrency = cfg.BatchConcurrency

	h := handlers.New(mappingSvc, fitmentSvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Model mappings (administrative surface)
		api.POST("/mappings", h.CreateMapping)
		api.GET("/mappings", h.ListMappings)
		api.PUT("/mappings/:id", h.UpdateMapping)
		api.DELETE("/mappings/:id", h.DeleteMapping)

		// Application processing
		api.POST("/applications/process", h.ProcessApplication)
		api.POST("/applications/batch", h.BatchProcessApplications)

		// Product fitments
		api.POST("/products/:id/fitments", h.SaveProductFitments)
		api.GET("/products/:id/fitments", h.ListProductFitments)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
