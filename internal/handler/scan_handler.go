package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"carte/internal/service"
)

// ScanHandler serves archived menu scans.
type ScanHandler struct {
	scans service.ScanService
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scans service.ScanService) *ScanHandler {
	return &ScanHandler{scans: scans}
}

// List handles GET /api/v1/scans
// @Summary List archived scans
// @Tags scans
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.MenuScan,meta=PagMeta}
// @Router /scans [get]
func (h *ScanHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	scans, total, err := h.scans.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, scans, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/scans/:id
// @Summary Get an archived scan
// @Description Returns the stored menu with presigned links to the page images
// @Tags scans
// @Produce json
// @Param id path string true "Scan ID"
// @Success 200 {object} Response{data=service.ScanView}
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Scan not found"
// @Router /scans/{id} [get]
func (h *ScanHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	view, err := h.scans.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Translate handles POST /api/v1/scans/:id/translate
// @Summary Translate an archived scan again
// @Description Re-extracts the stored page images in another language and archives the result as a new scan
// @Tags scans
// @Accept json
// @Produce json
// @Param id path string true "Scan ID"
// @Param body body TranslateScanRequest true "Target language"
// @Success 201 {object} Response{data=MenuResponse}
// @Failure 404 {object} ErrorResponseBody "Scan not found"
// @Router /scans/{id}/translate [post]
func (h *ScanHandler) Translate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}
	var req TranslateScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "preferredLanguage is required")
		return
	}

	scan, parsed, err := h.scans.Retranslate(c.Request.Context(), id, req.PreferredLanguage)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, MenuResponse{Menu: parsed, ScanID: &scan.ID})
}
