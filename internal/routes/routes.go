// Package routes defines HTTP routes for the POS service.
package routes

import (
	"github.com/GunarsK-portfolio/pos-service/internal/config"
	"github.com/GunarsK-portfolio/pos-service/internal/handlers"
	"github.com/GunarsK-portfolio/pos-service/internal/metrics"
	"github.com/GunarsK-portfolio/pos-service/internal/middleware"
	"github.com/GunarsK-portfolio/pos-service/internal/models"
	"github.com/GunarsK-portfolio/pos-service/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Data   *handlers.DataHandler
	Health *handlers.HealthHandler
}

// Setup configures middleware and all HTTP routes for the application.
func Setup(router *gin.Engine, h Handlers, jwtService service.JWTService, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) {
	router.Use(
		middleware.RequestID(),
		middleware.Tracing(),
		middleware.Logger(logger, m),
		gin.Recovery(),
		middleware.OriginCheck(cfg.AllowedOrigins),
	)

	// Health check
	router.GET("/health", h.Health.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// Public routes
	router.POST("/login", h.Auth.Login)
	router.POST("/send-otp", h.Auth.SendOTP)
	router.POST("/verify-otp", h.Auth.VerifyOTP)
	router.GET("/get-data", h.Data.GetData)

	// Admin routes
	admin := router.Group("/")
	admin.Use(
		middleware.Authenticate(jwtService, logger),
		middleware.Authorize(models.RoleAdmin),
	)
	{
		admin.POST("/update-users", h.Data.UpdateUsers)
		admin.POST("/update-menu", h.Data.UpdateMenu)
		admin.GET("/export-menu", h.Data.ExportMenu)
	}
}
