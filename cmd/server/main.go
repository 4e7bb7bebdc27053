// Command server runs the fitment mapping engine HTTP service: it loads
// configuration, opens the application and reference databases, wires the
// Gin router, and serves until interrupted.
//
// @title        Fitment Mapping Engine API
// @version      1.0
// @description  Resolves free-text automotive application descriptions into validated product fitments using the VCdb/PCdb reference databases and an administrator-maintained model-mapping table.
// @BasePath     /api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/sssolid/Crown-Nexus-sub007/docs"
	"github.com/sssolid/Crown-Nexus-sub007/internal/config"
	httpapi "github.com/sssolid/Crown-Nexus-sub007/internal/http"
	"github.com/sssolid/Crown-Nexus-sub007/internal/observability"
	"github.com/sssolid/Crown-Nexus-sub007/internal/repo"
	"github.com/sssolid/Crown-Nexus-sub007/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// Optional .env for local development; real deployments set env directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx := context.Background()
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	appDB, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open application database failed")
	}
	if err := repo.AutoMigrate(appDB); err != nil {
		log.Fatal().Err(err).Msg("migrate application database failed")
	}

	vcdb, err := repo.OpenSQLite(cfg.VCdbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.VCdbPath).Msg("open VCdb failed")
	}
	pcdb, err := repo.OpenSQLite(cfg.PCdbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.PCdbPath).Msg("open PCdb failed")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, appDB, vcdb, pcdb, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("fitment engine listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown failed")
	}
}
