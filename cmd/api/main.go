package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salesdesk_backend/internal/adapters/storage"
	"salesdesk_backend/internal/auth"
	"salesdesk_backend/internal/contracts"
	"salesdesk_backend/internal/documents"
	apphttp "salesdesk_backend/internal/http"
	"salesdesk_backend/internal/http/router"
	"salesdesk_backend/internal/leads"
	"salesdesk_backend/internal/leads/persist"
	"salesdesk_backend/internal/leads/service"
	"salesdesk_backend/internal/leads/store"
	"salesdesk_backend/internal/maps"
	"salesdesk_backend/internal/packages"
	"salesdesk_backend/internal/scheduler"
	"salesdesk_backend/platform/config"
	"salesdesk_backend/platform/events"
	"salesdesk_backend/platform/logger"
	"salesdesk_backend/platform/validator"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log.Logger)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Lead record store, optionally rehydrated from the Redis snapshot
	leadStore := store.New()
	snapshotter, health := initSnapshotter(ctx, cfg, leadStore, log)

	followUpScheduler, closeScheduler := initFollowUpScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// Object storage for original document uploads (MinIO)
	var archiver documents.Archiver
	if cfg.IsMinIOEnabled() {
		minioArchiver, err := storage.NewMinIOArchiver(cfg)
		if err != nil {
			log.Error("failed to initialize storage archiver", "error", err)
			panic("failed to initialize storage archiver: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure document bucket", 5, 2*time.Second, func() error {
			return minioArchiver.EnsureBucketExists(ctx)
		}); err != nil {
			log.Error("failed to ensure document bucket exists", "error", err)
			panic("failed to ensure document bucket exists: " + err.Error())
		}
		archiver = minioArchiver
		log.Info("storage archiver initialized", "bucket", cfg.GetMinioBucketLeadDocuments())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; document archiving disabled")
	}

	// Document extraction backend
	var extractor documents.Extractor
	if cfg.IsOCREnabled() {
		geminiExtractor, err := documents.NewGeminiExtractor(ctx, cfg)
		if err != nil {
			log.Error("failed to initialize extraction backend", "error", err)
			panic("failed to initialize extraction backend: " + err.Error())
		}
		extractor = geminiExtractor
		log.Info("extraction backend initialized", "model", cfg.GetOCRModel())
	} else {
		log.Warn("GEMINI_API_KEY not configured; document extraction disabled")
	}

	// Package builder catalog
	catalog, err := packages.LoadCatalog(cfg.GetTariffCatalogPath())
	if err != nil {
		log.Error("failed to load tariff catalog", "error", err, "path", cfg.GetTariffCatalogPath())
		panic("failed to load tariff catalog: " + err.Error())
	}
	log.Info("tariff catalog loaded", "tariffs", len(catalog.Tariffs))

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	var snapshotSaver service.SnapshotSaver
	if snapshotter != nil {
		snapshotSaver = snapshotter
	}

	authModule := auth.NewModule(auth.NewService(cfg, log), val)
	leadsModule := leads.NewModule(leads.Dependencies{
		Store:     leadStore,
		Bus:       eventBus,
		Config:    cfg,
		Scheduler: followUpScheduler,
		Snapshot:  snapshotSaver,
		Logger:    log,
		Validator: val,
	})
	documentsModule := documents.NewModule(leadStore, extractor, archiver, eventBus, log)
	contractsModule := contracts.NewModule(leadStore, cfg, eventBus, log)
	packagesModule := packages.NewModule(catalog, leadStore, val, log)
	mapsModule := maps.NewModule(cfg, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   health,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			leadsModule,
			documentsModule,
			contractsModule,
			packagesModule,
			mapsModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: engine}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	eventBus.Wait()
}

// initSnapshotter connects the Redis snapshot store and rehydrates the
// lead store from the last saved state. Without Redis the API runs on
// process memory only.
func initSnapshotter(ctx context.Context, cfg *config.Config, leadStore *store.Store, log *logger.Logger) (*persist.Snapshotter, apphttp.HealthChecker) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; lead snapshots disabled")
		return nil, nil
	}

	snapshotter, err := persist.New(cfg, log)
	if err != nil {
		log.Error("failed to initialize snapshot store", "error", err)
		return nil, nil
	}

	if err := withRetry(ctx, log, "snapshot store connection", 5, 2*time.Second, func() error {
		return snapshotter.Ping(ctx)
	}); err != nil {
		log.Error("failed to connect to snapshot store", "error", err)
		panic("failed to connect to snapshot store: " + err.Error())
	}

	saved, err := snapshotter.Load(ctx)
	if err != nil {
		log.Error("failed to load lead snapshot", "error", err)
	} else if len(saved) > 0 {
		leadStore.Restore(saved)
		log.Info("lead store rehydrated from snapshot", "leads", len(saved))
	}

	return snapshotter, snapshotter
}

func initFollowUpScheduler(cfg config.SchedulerConfig, log *logger.Logger) (service.FollowUpScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; follow-up reminders disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize follow-up scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
