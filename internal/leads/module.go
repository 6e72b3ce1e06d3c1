// Package leads wires the lead pipeline bounded context: record store,
// derived metrics, activation stages, and the HTTP surface.
package leads

import (
	"salesdesk_backend/internal/events"
	apphttp "salesdesk_backend/internal/http"
	"salesdesk_backend/internal/leads/handler"
	"salesdesk_backend/internal/leads/metrics"
	"salesdesk_backend/internal/leads/scoring"
	"salesdesk_backend/internal/leads/service"
	"salesdesk_backend/internal/leads/store"
	"salesdesk_backend/platform/config"
	"salesdesk_backend/platform/logger"
	"salesdesk_backend/platform/validator"
)

// Module is the leads bounded context.
type Module struct {
	store   *store.Store
	service *service.Service
	handler *handler.Handler
}

// Dependencies holds the external collaborators of the leads module.
// Scheduler and Snapshot may be nil when the backing services are not
// configured.
type Dependencies struct {
	Store     *store.Store
	Bus       events.Bus
	Config    config.SalesConfig
	Scheduler service.FollowUpScheduler
	Snapshot  service.SnapshotSaver
	Logger    *logger.Logger
	Validator *validator.Validator
}

// NewModule assembles the leads module from its dependencies.
func NewModule(deps Dependencies) *Module {
	calc := metrics.New(deps.Config)
	scorer := scoring.NewService()
	svc := service.New(deps.Store, deps.Bus, calc, scorer, deps.Scheduler, deps.Snapshot, deps.Logger)

	return &Module{
		store:   deps.Store,
		service: svc,
		handler: handler.New(svc, deps.Validator),
	}
}

// Name implements http.Module.
func (m *Module) Name() string { return "leads" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

// Store exposes the record store for sibling modules (document intake
// writes extraction results directly).
func (m *Module) Store() *store.Store { return m.store }

// Service exposes the orchestration layer for sibling modules.
func (m *Module) Service() *service.Service { return m.service }

var _ apphttp.Module = (*Module)(nil)
