package documents

import (
	"fmt"
	"io"
	"net/http"

	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/platform/apperr"
	"salesdesk_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles document upload requests.
type Handler struct {
	svc *Service
}

// NewHandler creates a documents handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the document routes on the given group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/leads/:id/documents/:type", h.Upload)
	group.GET("/leads/:id/documents", h.Status)
	group.PUT("/leads/:id/documents/:type/status", h.SetStatus)
}

// Upload handles POST /leads/:id/documents/:type. The file travels as the
// "file" field of a multipart form. Intake outcomes are reported in the
// response body, never as transport errors: a failed extraction is still
// a 200 with success=false so the client can render the review banner.
func (h *Handler) Upload(c *gin.Context) {
	docType := domain.DocumentType(c.Param("type"))
	if !domain.IsValidDocumentType(docType) {
		httpkit.HandleError(c, apperr.Validation(fmt.Sprintf("unknown document type %q", c.Param("type"))))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("multipart field 'file' is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("uploaded file could not be opened"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		httpkit.HandleError(c, apperr.Internal("reading upload failed"))
		return
	}

	upload := Upload{
		Filename: fileHeader.Filename,
		MIMEType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
		Data:     data,
	}

	result := h.svc.ProcessDocument(c.Request.Context(), c.Param("id"), docType, upload)
	c.JSON(http.StatusOK, result)
}

// SetStatus handles PUT /leads/:id/documents/:type/status, the manual
// review override for slots the extraction flow left in "Needs Review".
func (h *Handler) SetStatus(c *gin.Context) {
	docType := domain.DocumentType(c.Param("type"))
	if !domain.IsValidDocumentType(docType) {
		httpkit.HandleError(c, apperr.Validation(fmt.Sprintf("unknown document type %q", c.Param("type"))))
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	err := h.svc.SetDocumentStatus(c.Request.Context(), c.Param("id"), docType, domain.DocumentStatus(req.Status))
	if httpkit.HandleError(c, err) {
		return
	}

	statuses, err := h.svc.DocumentStatuses(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, statuses)
}

// Status handles GET /leads/:id/documents and returns per-slot statuses.
func (h *Handler) Status(c *gin.Context) {
	statuses, err := h.svc.DocumentStatuses(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, statuses)
}
