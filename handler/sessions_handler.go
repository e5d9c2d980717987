package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tempo/middleware"
	"tempo/usecase"
	"tempo/utils"
)

type SessionHandler struct {
	service *usecase.FocusService
}

func NewSessionHandler(service *usecase.FocusService) *SessionHandler {
	return &SessionHandler{service: service}
}

// HandleAction drives the focus timer: {"action": "start", "duration": 1500}
// opens a session, {"action": "stop"} ends the open one early.
func (h *SessionHandler) HandleAction(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Action   string `json:"action" binding:"required"`
		Duration int    `json:"duration"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.service.HandleAction(c.Request.Context(), userID.(string), req.Action, req.Duration)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidAction), errors.Is(err, usecase.ErrInvalidDuration):
			utils.BadRequest(c, err.Error())
		case errors.Is(err, usecase.ErrNoActiveSession):
			utils.NotFound(c, err.Error())
		case errors.Is(err, usecase.ErrSessionRunning):
			utils.Conflict(c, err.Error())
		default:
			utils.InternalError(c, "Failed to process session action")
		}
		return
	}

	middleware.MutationsTotal.WithLabelValues("session", req.Action).Inc()
	utils.Created(c, session)
}
