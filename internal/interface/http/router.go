package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/text-insights/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, limiter RateLimiter) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	if limiter == nil || !cfg.HTTP.RateLimit.Enabled {
		limiter = NoopRateLimiter()
	}

	router := gin.New()
	router.SetHTMLTemplate(loadTemplates())
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		bodyLimitMiddleware(cfg.HTTP.MaxBodyBytes),
		errorHandlingMiddleware(handler.logger),
	)

	limit := rateLimitMiddleware(limiter, handler.logger)

	router.GET("/healthz", handler.Health)
	router.GET("/", handler.Index)
	router.POST("/generate", limit, handler.GenerateForm)

	api := router.Group("/api/v1")
	{
		api.GET("/options", handler.Options)
		api.POST("/insights", limit, handler.Generate)
		api.POST("/insights/export", limit, handler.Export)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
