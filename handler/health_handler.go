package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tempo/utils"
)

// HealthHandler is the liveness probe. It is the only unauthenticated
// endpoint besides /metrics.
func HealthHandler(c *gin.Context) {
	status := "ok"
	database := "connected"

	// The probe itself stays 200; a broken database shows up in the body.
	if err := utils.PingMongo(c.Request.Context()); err != nil {
		status = "degraded"
		database = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"database":  database,
		"timestamp": time.Now().UTC(),
	})
}
