package middleware

import (
	"log/slog"
	"slices"

	"hotel-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     slices.Concat(cfg.AllowHeaders, []string{"traceparent", "tracestate", "X-Request-ID"}),
		ExposeHeaders:    slices.Concat(cfg.ExposeHeaders, []string{"X-Request-ID"}),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	logger.Info("CORS middleware initialized", slog.Any("allow_origins", cfg.AllowOrigins))
	return cors.New(corsCfg)
}
