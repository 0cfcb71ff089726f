package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-analyzer/internal/analyses"
	"ats-analyzer/internal/services/health"
	"ats-analyzer/internal/shared/config"
	"ats-analyzer/internal/shared/metrics"
	"ats-analyzer/internal/shared/server/middleware"
	"ats-analyzer/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, analysisHandler *analyses.Handler) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		metrics.HTTP(),
	)

	analysisHandler.RegisterPage(r)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	healthSvc := health.NewService(cfg.LLM)
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})
	analysisHandler.RegisterRoutes(api)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
