package maps

import (
	apphttp "salesdesk_backend/internal/http"
	"salesdesk_backend/platform/config"
	"salesdesk_backend/platform/logger"
)

// Module wires the place lookup HTTP routes.
type Module struct {
	handler *Handler
}

func NewModule(cfg config.MapsConfig, log *logger.Logger) *Module {
	svc := NewService(cfg, log)
	h := NewHandler(svc)
	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "maps"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/maps")
	group.GET("/place-lookup", m.handler.LookupPlace)
}

var _ apphttp.Module = (*Module)(nil)
