package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carte/internal/config"
)

// Checker pings one dependency for the readiness probe.
type Checker struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	parser      *config.ParserConfig
	environment string
	checkers    []Checker
	now         func() time.Time
}

// NewHealthHandler creates a new HealthHandler. checkers lists the configured
// dependencies; an empty list means the service needs none.
func NewHealthHandler(parser *config.ParserConfig, environment string, checkers ...Checker) *HealthHandler {
	return &HealthHandler{parser: parser, environment: environment, checkers: checkers, now: time.Now}
}

// Liveness handles GET /healthz
// @Summary Liveness probe
// @Description Reports whether the server runs and has a model API key, without revealing it
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	key := h.parser.PrimaryConfig().APIKey
	c.JSON(http.StatusOK, HealthResponse{
		Status:       "ok",
		HasAPIKey:    key != "",
		APIKeyLength: len(key),
		Environment:  h.environment,
		Timestamp:    h.now().UTC().Format(time.RFC3339Nano),
	})
}

// Readiness handles GET /readyz
// @Summary Readiness probe
// @Description Pings every configured dependency
// @Tags health
// @Produce json
// @Success 200 {object} ReadinessResponse
// @Failure 503 {object} ReadinessResponse
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	resp := ReadinessResponse{Status: "ok", Checks: make(map[string]string, len(h.checkers))}
	status := http.StatusOK
	for _, chk := range h.checkers {
		if err := chk.Ping(ctx); err != nil {
			resp.Checks[chk.Name] = "unreachable"
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[chk.Name] = "ok"
	}
	c.JSON(status, resp)
}
