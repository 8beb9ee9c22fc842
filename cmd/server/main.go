// @title carte API
// @version 1.0
// @description Menu photo translation: extraction, multi-page merge, wildcard picks and order export.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"carte/internal/cache/redis"
	"carte/internal/config"
	"carte/internal/handler"
	"carte/internal/imaging"
	"carte/internal/logger"
	"carte/internal/parser"
	"carte/internal/parser/providers"
	"carte/internal/port"
	"carte/internal/repository/postgres"
	"carte/internal/router"
	"carte/internal/service"
	s3storage "carte/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lg := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = lg.Sync() }()
	zap.ReplaceGlobals(lg)

	// Initialize model backends
	providers.Register()
	model, err := parser.NewModelChain(&cfg.Parser, lg)
	if err != nil {
		return fmt.Errorf("failed to initialize model backends: %w", err)
	}
	if !cfg.Parser.HasAPIKey() {
		lg.Warn("no model API key configured; extraction requests will fail")
	}

	var checkers []handler.Checker

	// Optional extraction cache
	var cache port.MenuCache
	if cfg.Cache.Enabled {
		client, err := redis.NewClient(&cfg.Cache, lg)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = client.Close() }()
		menuCache := redis.NewMenuCache(client, cfg.Cache.TTL, lg)
		cache = menuCache
		checkers = append(checkers, handler.Checker{Name: "redis", Ping: menuCache.Ping})
	}

	// Initialize services
	extractionSvc := service.NewExtractionService(model, cache, &cfg.Extraction, lg)
	wildcardSvc := service.NewWildcardService(model, &cfg.Extraction, lg)

	// Optional scan archive
	var scanSvc service.ScanService
	var scanH *handler.ScanHandler
	if cfg.Archive.Enabled {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		checkers = append(checkers, handler.Checker{Name: "postgres", Ping: db.PingContext})

		archive, err := s3storage.NewImageArchive(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}

		scanSvc = service.NewScanService(postgres.NewMenuScanRepo(db), archive, extractionSvc, &cfg.S3, lg)
		scanH = handler.NewScanHandler(scanSvc)
	}

	normalizer := imaging.NewNormalizer(imaging.CompressOptions{
		MaxPixels:    cfg.Imaging.MaxPixels,
		MaxEdge:      cfg.Imaging.MaxEdge,
		MaxBytes:     cfg.Imaging.MaxBytes,
		StartQuality: cfg.Imaging.StartQuality,
		MinQuality:   cfg.Imaging.MinQuality,
		QualityStep:  cfg.Imaging.QualityStep,
	}, cfg.Extraction.Concurrency, lg)

	// Initialize handlers
	handlers := router.Handlers{
		Health:   handler.NewHealthHandler(&cfg.Parser, cfg.Server.Environment, checkers...),
		Menu:     handler.NewMenuHandler(extractionSvc, scanSvc, normalizer, cfg.Imaging.MaxUploadMB, lg),
		Wildcard: handler.NewWildcardHandler(wildcardSvc),
		Order:    handler.NewOrderHandler(),
		Language: handler.NewLanguageHandler(),
		Scans:    scanH,
	}

	// Setup router
	r := router.Setup(cfg, handlers, lg)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
			zap.String("model", model.Name()),
			zap.Bool("cache", cfg.Cache.Enabled),
			zap.Bool("archive", cfg.Archive.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
