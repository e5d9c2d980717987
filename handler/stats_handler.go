package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"tempo/usecase"
	"tempo/utils"
)

type StatsHandler struct {
	service *usecase.StatsService
}

func NewStatsHandler(service *usecase.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	stats, err := h.service.ComputeStats(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Error computing stats for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to load statistics")
		return
	}

	utils.Success(c, stats)
}
