package packages

import (
	apphttp "salesdesk_backend/internal/http"
	"salesdesk_backend/internal/leads/store"
	"salesdesk_backend/platform/apperr"
	"salesdesk_backend/platform/httpkit"
	"salesdesk_backend/platform/logger"
	"salesdesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles package builder HTTP requests.
type Handler struct {
	svc *Service
	val *validator.Validator
}

func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Catalog handles GET /packages/catalog.
func (h *Handler) Catalog(c *gin.Context) {
	httpkit.OK(c, h.svc.Catalog(c.Request.Context()))
}

// Apply handles POST /leads/:id/package/apply.
func (h *Handler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(err.Error()))
		return
	}

	lead, err := h.svc.Apply(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// Module is the package builder bounded context.
type Module struct {
	handler *Handler
}

// NewModule assembles the packages module around a loaded catalog.
func NewModule(catalog *Catalog, s *store.Store, val *validator.Validator, log *logger.Logger) *Module {
	svc := NewService(catalog, s, log)
	return &Module{handler: NewHandler(svc, val)}
}

// Name implements http.Module.
func (m *Module) Name() string { return "packages" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/packages/catalog", m.handler.Catalog)
	ctx.Protected.POST("/leads/:id/package/apply", m.handler.Apply)
}

var _ apphttp.Module = (*Module)(nil)
