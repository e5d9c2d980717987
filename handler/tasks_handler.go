package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tempo/middleware"
	"tempo/repository"
	"tempo/usecase"
	"tempo/utils"
)

type TaskHandler struct {
	service *usecase.TaskService
}

func NewTaskHandler(service *usecase.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required,notblank"`
		Description string `json:"description"`
		Importance  *int   `json:"importance"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), userID.(string), usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Importance:  req.Importance,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidTitle) || errors.Is(err, usecase.ErrInvalidDescription) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, "Failed to create task")
		return
	}

	middleware.MutationsTotal.WithLabelValues("task", "create").Inc()
	utils.Created(c, task)
}

func (h *TaskHandler) GetUserTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	tasks, err := h.service.GetUserTasks(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch tasks")
		return
	}

	utils.Success(c, tasks)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Importance  *int    `json:"importance"`
		Completed   *bool   `json:"completed"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task, err := h.service.UpdateTask(c.Request.Context(), userID.(string), taskID, usecase.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Importance:  req.Importance,
		Completed:   req.Completed,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			utils.NotFound(c, "Task not found")
		case errors.Is(err, usecase.ErrInvalidTitle),
			errors.Is(err, usecase.ErrInvalidDescription),
			errors.Is(err, usecase.ErrEmptyUpdate):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalError(c, "Failed to update task")
		}
		return
	}

	middleware.MutationsTotal.WithLabelValues("task", "update").Inc()
	utils.Success(c, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), userID.(string), taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.InternalError(c, "Failed to delete task")
		return
	}

	middleware.MutationsTotal.WithLabelValues("task", "delete").Inc()
	utils.NoContent(c)
}
