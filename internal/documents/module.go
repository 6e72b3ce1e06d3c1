package documents

import (
	"salesdesk_backend/internal/events"
	apphttp "salesdesk_backend/internal/http"
	"salesdesk_backend/internal/leads/store"
	"salesdesk_backend/platform/logger"
)

// Module is the document intake bounded context.
type Module struct {
	service *Service
	handler *Handler
}

// NewModule assembles the intake module. Extractor and archiver are
// nil-able: without them every upload lands in review.
func NewModule(s *store.Store, extractor Extractor, archiver Archiver, bus events.Bus, log *logger.Logger) *Module {
	svc := NewService(s, extractor, archiver, bus, log)
	return &Module{
		service: svc,
		handler: NewHandler(svc),
	}
}

// Name implements http.Module.
func (m *Module) Name() string { return "documents" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

var _ apphttp.Module = (*Module)(nil)
