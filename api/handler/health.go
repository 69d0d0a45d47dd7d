package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/models"
)

// Health returns a handler for GET /api/v1/health.
//
// Reports browser session state for the external process supervisor.
func Health(manager *browser.Manager, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:       "healthy",
			Uptime:       time.Since(startTime).Round(time.Second).String(),
			SessionStats: manager.Stats(),
			Version:      "0.1.0",
		})
	}
}
