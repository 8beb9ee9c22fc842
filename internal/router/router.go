package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "carte/docs" // registers the OpenAPI document with swag
	"carte/internal/config"
	"carte/internal/handler"
	"carte/internal/middleware"
)

// Handlers groups the HTTP handlers served by the router. Scans is nil when
// archiving is disabled.
type Handlers struct {
	Health   *handler.HealthHandler
	Menu     *handler.MenuHandler
	Wildcard *handler.WildcardHandler
	Order    *handler.OrderHandler
	Language *handler.LanguageHandler
	Scans    *handler.ScanHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h Handlers, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyMB))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	menus := v1.Group("/menus")
	menus.POST("/parse", h.Menu.Parse)
	menus.POST("/parse-batch", h.Menu.ParseBatch)
	menus.POST("/upload", h.Menu.Upload)
	menus.POST("/wildcard", h.Wildcard.Recommend)

	orders := v1.Group("/orders")
	orders.POST("/summary", h.Order.Summary)
	orders.POST("/export", h.Order.Export)

	languages := v1.Group("/languages")
	languages.GET("", h.Language.List)
	languages.GET("/resolve", h.Language.Resolve)

	if h.Scans != nil {
		scans := v1.Group("/scans")
		scans.GET("", h.Scans.List)
		scans.GET("/:id", h.Scans.GetByID)
		scans.POST("/:id/translate", h.Scans.Translate)
	}

	return r
}
