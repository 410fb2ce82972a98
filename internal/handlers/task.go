package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/dto"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/services"
	"github.com/yukikurage/taskboard-api/internal/utils"
)

// TaskHandler serves endpoints that address a task directly.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// GetTask returns a task with its comments.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	taskID, ok := requireID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// UpdateTask applies a partial update to a task's details.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	taskID, ok := requireID(c, "id")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title        *string          `json:"title"`
		Description  *string          `json:"description"`
		Priority     *domain.Priority `json:"priority"`
		DueDate      *time.Time       `json:"due_date"`
		ClearDueDate bool             `json:"clear_due_date"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(taskID, userID, services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// AssignTask sets or clears the assignee. A null assignee_id unassigns.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	taskID, ok := requireID(c, "id")
	if !ok {
		return
	}

	type AssignTaskRequest struct {
		AssigneeID *uint64 `json:"assignee_id"`
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.AssignTask(taskID, userID, req.AssigneeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

func (h *TaskHandler) SetPosition(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	taskID, ok := requireID(c, "id")
	if !ok {
		return
	}

	type SetPositionRequest struct {
		Position *int `json:"position" binding:"required"`
	}

	var req SetPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.SetPosition(taskID, userID, *req.Position)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

func (h *TaskHandler) ArchiveTask(c *gin.Context) {
	h.changeArchiveState(c, h.taskService.ArchiveTask)
}

func (h *TaskHandler) RestoreTask(c *gin.Context) {
	h.changeArchiveState(c, h.taskService.RestoreTask)
}

func (h *TaskHandler) changeArchiveState(c *gin.Context, apply func(taskID, actorID uint64) (*domain.BoardTask, error)) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	taskID, ok := requireID(c, "id")
	if !ok {
		return
	}

	task, err := apply(taskID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

func (h *TaskHandler) ListActivities(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	taskID, ok := requireID(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	logs, total, err := h.taskService.ListActivities(taskID, userID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityListResponse(logs, params, total))
}
