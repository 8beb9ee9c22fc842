package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carte/internal/menu"
)

// LanguageHandler serves the target language table.
type LanguageHandler struct{}

// NewLanguageHandler creates a new LanguageHandler.
func NewLanguageHandler() *LanguageHandler {
	return &LanguageHandler{}
}

// List handles GET /api/v1/languages
// @Summary List target languages
// @Tags languages
// @Produce json
// @Success 200 {object} Response{data=LanguagesResponse}
// @Router /languages [get]
func (h *LanguageHandler) List(c *gin.Context) {
	RespondOK(c, LanguagesResponse{Default: menu.DefaultLanguage, Languages: menu.Languages()})
}

// Resolve handles GET /api/v1/languages/resolve
// @Summary Resolve a language parameter
// @Description Accepts short codes (zh-cn), names (spanish) and BCP 47 tags (pt-BR)
// @Tags languages
// @Produce json
// @Param lang query string true "Language code, name or tag"
// @Success 200 {object} Response{data=ResolvedLanguage}
// @Failure 404 {object} ErrorResponseBody "Unknown language"
// @Router /languages/resolve [get]
func (h *LanguageHandler) Resolve(c *gin.Context) {
	name, ok := menu.ResolveLanguage(c.Query("lang"))
	if !ok {
		RespondError(c, http.StatusNotFound, "UNKNOWN_LANGUAGE", "unknown language")
		return
	}
	RespondOK(c, ResolvedLanguage{Language: name, DisplayName: menu.DisplayLanguage(name)})
}
