package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"carte/internal/domain"
	"carte/internal/imaging"
	"carte/internal/menu"
	"carte/internal/middleware"
	"carte/internal/service"
)

// MenuHandler handles menu extraction endpoints.
type MenuHandler struct {
	extraction     service.ExtractionService
	scans          service.ScanService
	normalizer     *imaging.Normalizer
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewMenuHandler creates a new MenuHandler. scans is nil when archiving is disabled.
func NewMenuHandler(
	extraction service.ExtractionService,
	scans service.ScanService,
	normalizer *imaging.Normalizer,
	maxUploadMB int64,
	logger *zap.Logger,
) *MenuHandler {
	return &MenuHandler{
		extraction:     extraction,
		scans:          scans,
		normalizer:     normalizer,
		maxUploadBytes: maxUploadMB << 20,
		logger:         logger,
	}
}

// Parse handles POST /api/v1/menus/parse
// @Summary Extract a menu from one photo
// @Description Sends a base64 or data-URL image to the vision model and returns the translated menu
// @Tags menus
// @Accept json
// @Produce json
// @Param body body ParseMenuRequest true "Menu photo"
// @Success 200 {object} Response{data=MenuResponse}
// @Failure 400 {object} ErrorResponseBody "Invalid image"
// @Failure 502 {object} ErrorResponseBody "Model returned no menu"
// @Failure 503 {object} ErrorResponseBody "Model temporarily unavailable"
// @Router /menus/parse [post]
func (h *MenuHandler) Parse(c *gin.Context) {
	var req ParseMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "imageBase64 is required")
		return
	}

	page, err := imaging.ParseDataURL(req.ImageBase64)
	if err != nil {
		HandleError(c, err)
		return
	}

	lang := languageOrDefault(req.PreferredLanguage)
	pages := []domain.ImagePayload{page}
	parsed, err := h.extraction.Extract(c.Request.Context(), page, lang)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MenuResponse{Menu: parsed, ScanID: h.archive(c, pages, parsed, lang)})
}

// ParseBatch handles POST /api/v1/menus/parse-batch
// @Summary Extract one menu from several photos
// @Description Extracts every page in parallel and merges them into one menu; any failing page fails the request
// @Tags menus
// @Accept json
// @Produce json
// @Param body body ParseBatchRequest true "Menu pages"
// @Success 200 {object} Response{data=MenuResponse}
// @Failure 400 {object} ErrorResponseBody "No or invalid images"
// @Failure 502 {object} ErrorResponseBody "Model returned no menu"
// @Failure 503 {object} ErrorResponseBody "Model temporarily unavailable"
// @Router /menus/parse-batch [post]
func (h *MenuHandler) ParseBatch(c *gin.Context) {
	var req ParseBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Images) == 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "images array is required")
		return
	}

	pages := make([]domain.ImagePayload, 0, len(req.Images))
	for _, img := range req.Images {
		page, err := imaging.ParseDataURL(img)
		if err != nil {
			HandleError(c, err)
			return
		}
		pages = append(pages, page)
	}

	h.extractPages(c, pages, languageOrDefault(req.PreferredLanguage))
}

// Upload handles POST /api/v1/menus/upload
// @Summary Extract a menu from uploaded files
// @Description Compresses each uploaded photo, then extracts and merges the menu
// @Tags menus
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Menu photos (repeat the field for several pages)"
// @Param preferredLanguage formData string false "Target language" default(English)
// @Success 200 {object} Response{data=MenuResponse}
// @Failure 400 {object} ErrorResponseBody "Missing files"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Router /menus/upload [post]
func (h *MenuHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "files field is required")
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "files field is required")
		return
	}

	raw := make([][]byte, 0, len(headers))
	for _, fh := range headers {
		data, err := h.readUpload(fh)
		if err != nil {
			HandleError(c, err)
			return
		}
		raw = append(raw, data)
	}

	pages, err := h.normalizer.NormalizeAll(c.Request.Context(), raw)
	if err != nil {
		HandleError(c, err)
		return
	}
	h.extractPages(c, pages, languageOrDefault(c.PostForm("preferredLanguage")))
}

func (h *MenuHandler) readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return nil, domain.ErrFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

func (h *MenuHandler) extractPages(c *gin.Context, pages []domain.ImagePayload, lang string) {
	parsed, err := h.extraction.ExtractPages(c.Request.Context(), pages, lang)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MenuResponse{Menu: parsed, ScanID: h.archive(c, pages, parsed, lang)})
}

// archive stores the scan when archiving is enabled. Failures only cost the
// diner the scan id.
func (h *MenuHandler) archive(c *gin.Context, pages []domain.ImagePayload, parsed *domain.ParsedMenu, lang string) *uuid.UUID {
	if h.scans == nil {
		return nil
	}
	scan, err := h.scans.Archive(c.Request.Context(), pages, parsed, lang)
	if err != nil {
		h.logger.Warn("archiving menu scan failed",
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Error(err),
		)
		return nil
	}
	return &scan.ID
}

func languageOrDefault(lang string) string {
	if lang == "" {
		return menu.DefaultLanguage
	}
	return lang
}
