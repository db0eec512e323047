// Package handlers contains the gin HTTP handlers. Handlers validate payloads,
// delegate to the services, and map the three client-error kinds onto status
// codes; everything else is a server fault.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/service"
)

var logger = zap.NewNop()

// InitializeLogger sets the logger for the handlers package.
func InitializeLogger(l *zap.Logger) {
	logger = l
}

func respondError(c *gin.Context, err error) {
	switch {
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": err.Error()})
	case service.IsAuthorization(err):
		c.JSON(http.StatusForbidden, gin.H{"status": "fail", "message": err.Error()})
	case service.IsInvariant(err):
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
	default:
		logger.Error("unhandled service error",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
	}
}

func respondBadPayload(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": message})
}
