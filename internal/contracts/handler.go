package contracts

import (
	"salesdesk_backend/internal/events"
	apphttp "salesdesk_backend/internal/http"
	"salesdesk_backend/internal/leads/store"
	"salesdesk_backend/platform/config"
	"salesdesk_backend/platform/httpkit"
	"salesdesk_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Handler handles contract HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Preview handles GET /leads/:id/contract.
func (h *Handler) Preview(c *gin.Context) {
	payload, err := h.svc.Preview(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, payload)
}

// Send handles POST /leads/:id/contract/send.
func (h *Handler) Send(c *gin.Context) {
	payload, err := h.svc.SendContract(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, payload)
}

// Module is the contracts bounded context.
type Module struct {
	handler *Handler
}

// NewModule assembles the contracts module. The SMTP sender is only
// constructed when email delivery is enabled.
func NewModule(s *store.Store, cfg config.EmailConfig, bus events.Bus, log *logger.Logger) *Module {
	var sender Sender
	if cfg.GetEmailEnabled() {
		sender = NewSMTPSender(cfg)
	}
	svc := NewService(s, sender, bus, log, cfg.GetSigningBaseURL())
	return &Module{handler: NewHandler(svc)}
}

// Name implements http.Module.
func (m *Module) Name() string { return "contracts" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/leads/:id/contract")
	group.GET("", m.handler.Preview)
	group.POST("/send", m.handler.Send)
}

var _ apphttp.Module = (*Module)(nil)
