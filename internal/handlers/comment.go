package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/dto"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/services"
)

// CommentHandler serves the comment endpoints nested under a task.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	taskID, ok := requireID(c, "id")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.AddComment(taskID, userID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(comment))
}

// UpdateComment edits a comment. Only its author may do so.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	taskID, ok := requireID(c, "id")
	if !ok {
		return
	}
	commentID, ok := requireID(c, "commentId")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(taskID, commentID, userID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(comment))
}

// DeleteComment soft-deletes a comment.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	h.apply(c, h.commentService.DeleteComment)
}

func (h *CommentHandler) RestoreComment(c *gin.Context) {
	h.apply(c, h.commentService.RestoreComment)
}

func (h *CommentHandler) apply(c *gin.Context, fn func(taskID, commentID, actorID uint64) (*domain.Comment, error)) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	taskID, ok := requireID(c, "id")
	if !ok {
		return
	}
	commentID, ok := requireID(c, "commentId")
	if !ok {
		return
	}

	comment, err := fn(taskID, commentID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(comment))
}
