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

// BoardHandler serves board, column, board member and task placement endpoints.
type BoardHandler struct {
	boardService *services.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// GetBoard returns the board with its columns and tasks.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	boardID, ok := requireID(c, "id")
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(boardID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(board))
}

func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	boardID, ok := requireID(c, "id")
	if !ok {
		return
	}

	type UpdateBoardRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.UpdateBoard(boardID, userID, services.UpdateBoardInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(board))
}

func (h *BoardHandler) ArchiveBoard(c *gin.Context) {
	h.changeArchiveState(c, h.boardService.ArchiveBoard)
}

func (h *BoardHandler) RestoreBoard(c *gin.Context) {
	h.changeArchiveState(c, h.boardService.RestoreBoard)
}

func (h *BoardHandler) changeArchiveState(c *gin.Context, apply func(boardID, actorID uint64) (*domain.Board, error)) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	boardID, ok := requireID(c, "id")
	if !ok {
		return
	}

	board, err := apply(boardID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(board))
}

// AddColumn appends a column to the board.
func (h *BoardHandler) AddColumn(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	boardID, ok := requireID(c, "id")
	if !ok {
		return
	}

	type AddColumnRequest struct {
		Name  string `json:"name" binding:"required"`
		Order int    `json:"order"`
	}

	var req AddColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.boardService.AddColumn(boardID, userID, services.AddColumnInput{
		Name:  req.Name,
		Order: req.Order,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToColumnDTO(column))
}

// UpdateColumn changes a column's name, order or WIP limit.
// Sending "clear_wip_limit": true removes the limit.
func (h *BoardHandler) UpdateColumn(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	boardID, ok := requireID(c, "id")
	if !ok {
		return
	}
	columnID, ok := requireID(c, "columnId")
	if !ok {
		return
	}

	type UpdateColumnRequest struct {
		Name          *string `json:"name"`
		Order         *int    `json:"order"`
		WipLimit      *int    `json:"wip_limit"`
		ClearWipLimit bool    `json:"clear_wip_limit"`
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.boardService.UpdateColumn(boardID, columnID, userID, services.UpdateColumnInput{
		Name:          req.Name,
		Order:         req.Order,
		WipLimit:      req.WipLimit,
		ClearWipLimit: req.ClearWipLimit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnDTO(column))
}

func (h *BoardHandler) AddMember(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	boardID, ok := requireID(c, "id")
	if !ok {
		return
	}

	type AddMemberRequest struct {
		UserID uint64           `json:"user_id" binding:"required"`
		Role   domain.BoardRole `json:"role" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.AddMember(boardID, userID, req.UserID, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardDTO(board))
}

func (h *BoardHandler) RemoveMember(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	boardID, ok := requireID(c, "id")
	if !ok {
		return
	}
	memberID, ok := requireID(c, "userId")
	if !ok {
		return
	}

	if _, err := h.boardService.RemoveMember(boardID, userID, memberID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateTask creates a task in the given column of the board.
func (h *BoardHandler) CreateTask(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	boardID, ok := requireID(c, "id")
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		ColumnID    uint64          `json:"column_id" binding:"required"`
		Title       string          `json:"title" binding:"required"`
		Description string          `json:"description"`
		Priority    domain.Priority `json:"priority"`
		DueDate     *time.Time      `json:"due_date"`
		Position    int             `json:"position"`
		AssigneeID  *uint64         `json:"assignee_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.boardService.CreateTask(boardID, userID, services.CreateTaskInput{
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Position:    req.Position,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(task))
}

// MoveTask moves a task to another column, subject to the target's WIP limit.
func (h *BoardHandler) MoveTask(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	boardID, ok := requireID(c, "id")
	if !ok {
		return
	}
	taskID, ok := requireID(c, "taskId")
	if !ok {
		return
	}

	type MoveTaskRequest struct {
		ColumnID uint64 `json:"column_id" binding:"required"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.boardService.MoveTask(boardID, taskID, req.ColumnID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// GenerateTasks creates tasks in a column from free-form text using the AI service.
func (h *BoardHandler) GenerateTasks(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	boardID, ok := requireID(c, "id")
	if !ok {
		return
	}
	columnID, ok := requireID(c, "columnId")
	if !ok {
		return
	}

	type GenerateTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tasks, err := h.boardService.GenerateTasks(c.Request.Context(), boardID, userID, services.GenerateTasksInput{
		ColumnID: columnID,
		Text:     req.Text,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"count": len(tasks),
	})
}

func (h *BoardHandler) ListActivities(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	boardID, ok := requireID(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	logs, total, err := h.boardService.ListActivities(boardID, userID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityListResponse(logs, params, total))
}
