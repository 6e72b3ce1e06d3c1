package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salesdesk_backend/internal/leads/persist"
	"salesdesk_backend/internal/scheduler"
	"salesdesk_backend/platform/config"
	"salesdesk_backend/platform/events"
	"salesdesk_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting follow-up worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewInMemoryBus(log.Logger)

	var snapshotter *persist.Snapshotter
	if cfg.GetRedisURL() != "" {
		s, err := persist.New(cfg, log)
		if err != nil {
			log.Error("failed to initialize snapshot store", "error", err)
			panic("failed to initialize snapshot store: " + err.Error())
		}
		if err := withRetry(ctx, log, "snapshot store connection", 5, 2*time.Second, func() error {
			return s.Ping(ctx)
		}); err != nil {
			log.Error("failed to connect to snapshot store", "error", err)
			panic("failed to connect to snapshot store: " + err.Error())
		}
		snapshotter = s
	}

	worker, err := scheduler.NewWorker(cfg, snapshotter, eventBus, log)
	if err != nil {
		log.Error("failed to initialize follow-up worker", "error", err)
		panic("failed to initialize follow-up worker: " + err.Error())
	}

	worker.Run(ctx)
	eventBus.Wait()
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
