package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/database"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck returns the health status of the API and its database
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if err := database.Ping(h.db); err != nil {
		logger.Warn("Health check failed", logger.Fields{"error": err.Error()})
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "ok",
	})
}
