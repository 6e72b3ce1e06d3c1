package http

import (
	"context"

	"salesdesk_backend/internal/events"
	"salesdesk_backend/platform/config"
	"salesdesk_backend/platform/logger"
)

// RouterConfig is the slice of configuration the router itself needs.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker answers the readiness probe.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is assembled by the composition root and handed to the router.
type App struct {
	// Config scopes HTTP and JWT settings for route setup.
	Config RouterConfig
	// Logger is shared by the request middleware.
	Logger *logger.Logger
	// Health backs the readiness endpoint; nil when no snapshot store
	// is configured, in which case readiness always passes.
	Health HealthChecker
	// EventBus connects the modules' domain events.
	EventBus events.Bus
	// Modules are mounted in order at startup.
	Modules []Module
}
