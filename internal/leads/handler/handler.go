// Package handler exposes the leads API over HTTP.
package handler

import (
	"net/http"

	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/internal/leads/service"
	"salesdesk_backend/internal/leads/transport"
	"salesdesk_backend/platform/apperr"
	"salesdesk_backend/platform/httpkit"
	"salesdesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles lead HTTP requests.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the lead routes on the given (authenticated) group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	leads := group.Group("/leads")
	leads.POST("", h.CreateLead)
	leads.GET("", h.ListLeads)
	leads.GET("/selection", h.SelectedLead)
	leads.DELETE("/selection", h.ClearSelection)
	leads.GET("/:id", h.GetLead)
	leads.POST("/:id/select", h.SelectLead)
	leads.PATCH("/:id/status", h.UpdateStatus)
	leads.PUT("/:id/contacts", h.UpdateContacts)
	leads.PUT("/:id/primary-contact", h.UpdatePrimaryContact)
	leads.PUT("/:id/opening-hours", h.UpdateOpeningHours)
	leads.PUT("/:id/bank-details", h.UpdateBankDetails)
	leads.PUT("/:id/legal-identity", h.UpdateLegalIdentity)
	leads.PUT("/:id/menu", h.UpdateMenu)
	leads.PUT("/:id/package", h.UpdatePackageConfiguration)
	leads.GET("/:id/stages", h.StageState)
	leads.POST("/:id/stages/:stage/complete", h.CompleteStage)
	leads.PUT("/:id/stages/:stage/status", h.SetStageStatus)
	leads.GET("/:id/stages/:stage/access", h.StageAccess)
	leads.PUT("/:id/current-stage/:stage", h.SetCurrentStage)
	leads.GET("/:id/insights", h.Insights)

	group.GET("/metrics/dashboard", h.Dashboard)
}

// CreateLead handles POST /leads.
func (h *Handler) CreateLead(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(err.Error()))
		return
	}

	lead, err := h.svc.CreateLead(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, lead)
}

// ListLeads handles GET /leads.
func (h *Handler) ListLeads(c *gin.Context) {
	httpkit.OK(c, gin.H{"leads": h.svc.ListLeads(c.Request.Context())})
}

// GetLead handles GET /leads/:id.
func (h *Handler) GetLead(c *gin.Context) {
	lead, err := h.svc.GetLead(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// UpdateStatus handles PATCH /leads/:id/status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	lead, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// UpdateContacts handles PUT /leads/:id/contacts.
func (h *Handler) UpdateContacts(c *gin.Context) {
	var req transport.UpdateContactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(err.Error()))
		return
	}

	lead, err := h.svc.UpdateContacts(c.Request.Context(), c.Param("id"), req.Contacts)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// UpdatePrimaryContact handles PUT /leads/:id/primary-contact.
func (h *Handler) UpdatePrimaryContact(c *gin.Context) {
	var req transport.UpdatePrimaryContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	lead, err := h.svc.UpdatePrimaryContact(c.Request.Context(), c.Param("id"), req.Name, req.UseOwnerAsContact)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// UpdateOpeningHours handles PUT /leads/:id/opening-hours.
func (h *Handler) UpdateOpeningHours(c *gin.Context) {
	var req transport.UpdateOpeningHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(err.Error()))
		return
	}

	lead, err := h.svc.UpdateOpeningHours(c.Request.Context(), c.Param("id"), req.OpeningHours)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// UpdateBankDetails handles PUT /leads/:id/bank-details.
func (h *Handler) UpdateBankDetails(c *gin.Context) {
	var req transport.UpdateBankDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(err.Error()))
		return
	}

	lead, err := h.svc.UpdateBankDetails(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// UpdateLegalIdentity handles PUT /leads/:id/legal-identity.
func (h *Handler) UpdateLegalIdentity(c *gin.Context) {
	var req transport.UpdateLegalIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	lead, err := h.svc.UpdateLegalIdentity(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// UpdateMenu handles PUT /leads/:id/menu.
func (h *Handler) UpdateMenu(c *gin.Context) {
	var req transport.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	lead, err := h.svc.UpdateMenu(c.Request.Context(), c.Param("id"), req.Menu)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// UpdatePackageConfiguration handles PUT /leads/:id/package.
func (h *Handler) UpdatePackageConfiguration(c *gin.Context) {
	var req domain.PackageConfiguration
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	lead, err := h.svc.UpdatePackageConfiguration(c.Request.Context(), c.Param("id"), &req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// StageState handles GET /leads/:id/stages.
func (h *Handler) StageState(c *gin.Context) {
	state, err := h.svc.StageState(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}

// CompleteStage handles POST /leads/:id/stages/:stage/complete.
func (h *Handler) CompleteStage(c *gin.Context) {
	state, err := h.svc.CompleteStage(c.Request.Context(), c.Param("id"), domain.Stage(c.Param("stage")))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}

// SetStageStatus handles PUT /leads/:id/stages/:stage/status.
func (h *Handler) SetStageStatus(c *gin.Context) {
	var req transport.UpdateStageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	state, err := h.svc.SetStageStatus(c.Request.Context(), c.Param("id"), domain.Stage(c.Param("stage")), req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}

// StageAccess handles GET /leads/:id/stages/:stage/access.
func (h *Handler) StageAccess(c *gin.Context) {
	accessible, err := h.svc.CanAccessStage(c.Request.Context(), c.Param("id"), domain.Stage(c.Param("stage")))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"accessible": accessible})
}

// SetCurrentStage handles PUT /leads/:id/current-stage/:stage.
func (h *Handler) SetCurrentStage(c *gin.Context) {
	state, err := h.svc.SetCurrentStage(c.Request.Context(), c.Param("id"), domain.Stage(c.Param("stage")))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}

// Insights handles GET /leads/:id/insights.
func (h *Handler) Insights(c *gin.Context) {
	insights, err := h.svc.Insights(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, insights)
}

// Dashboard handles GET /metrics/dashboard.
func (h *Handler) Dashboard(c *gin.Context) {
	httpkit.OK(c, h.svc.Dashboard(c.Request.Context()))
}

// SelectLead handles POST /leads/:id/select.
func (h *Handler) SelectLead(c *gin.Context) {
	if err := h.svc.SelectLead(c.Request.Context(), c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectedLead handles GET /leads/selection.
func (h *Handler) SelectedLead(c *gin.Context) {
	lead, ok := h.svc.SelectedLead(c.Request.Context())
	if !ok {
		httpkit.OK(c, gin.H{"selected": nil})
		return
	}
	httpkit.OK(c, gin.H{"selected": lead})
}

// ClearSelection handles DELETE /leads/selection.
func (h *Handler) ClearSelection(c *gin.Context) {
	h.svc.ClearSelection(c.Request.Context())
	c.Status(http.StatusNoContent)
}
