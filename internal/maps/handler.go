package maps

import (
	"net/http"

	"salesdesk_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the place search endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// LookupPlace handles GET /api/v1/maps/place-lookup?q=...
func (h *Handler) LookupPlace(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' is required (min 3 chars)", nil)
		return
	}

	results, err := h.svc.SearchPlaces(c.Request.Context(), req.Query)
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "place lookup service unavailable", nil)
		return
	}

	httpkit.OK(c, results)
}
