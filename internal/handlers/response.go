package handlers

import (
	"github.com/GunarsK-portfolio/pos-service/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// logAndRespondError logs err server-side and sends only message to the client.
func logAndRespondError(c *gin.Context, logger *zap.Logger, status int, err error, message string) {
	_ = c.Error(err)
	logger.Error(message,
		zap.Error(err),
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", middleware.GetRequestID(c)),
	)
	respondError(c, status, message)
}
