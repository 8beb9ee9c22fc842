package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carte/internal/domain"
	"carte/internal/service"
)

// WildcardHandler handles curated selection requests.
type WildcardHandler struct {
	wildcard service.WildcardService
}

// NewWildcardHandler creates a new WildcardHandler.
func NewWildcardHandler(wildcard service.WildcardService) *WildcardHandler {
	return &WildcardHandler{wildcard: wildcard}
}

// Recommend handles POST /api/v1/menus/wildcard
// @Summary Recommend dishes for a party
// @Description Picks dishes from the menu for the party size, appetite and adventurousness, complementing the current cart
// @Tags menus
// @Accept json
// @Produce json
// @Param body body WildcardRequestBody true "Menu and party"
// @Success 200 {object} Response{data=service.WildcardResult}
// @Failure 400 {object} ErrorResponseBody "Missing required fields"
// @Failure 502 {object} ErrorResponseBody "No valid menu items found in recommendations"
// @Router /menus/wildcard [post]
func (h *WildcardHandler) Recommend(c *gin.Context) {
	var req WildcardRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.wildcard.Recommend(c.Request.Context(), service.WildcardRequest{
		Menu:              req.Menu,
		PartySize:         req.PartySize,
		HungerLevel:       domain.HungerLevel(req.HungerLevel),
		Adventurous:       req.Adventurous,
		PreferredLanguage: req.PreferredLanguage,
		CurrentCart:       req.CurrentCart,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}
