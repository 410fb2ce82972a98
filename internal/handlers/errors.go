package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/middleware"
	"github.com/yukikurage/taskboard-api/internal/services"
)

// respondServiceError maps service and domain errors to API responses.
// Non-members get 404 so the existence of a resource is not leaked.
func respondServiceError(c *gin.Context, err error) {
	if apierrors.RespondDomainError(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrProjectNotFound), errors.Is(err, services.ErrNotProjectMember):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrBoardNotFound), errors.Is(err, services.ErrNotBoardMember):
		apierrors.NotFound(c, "Board not found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrCommentNotFound):
		apierrors.NotFound(c, "Comment not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrInsufficientRole),
		errors.Is(err, services.ErrNotCommentAuthor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAssigneeNotBoardMember),
		errors.Is(err, services.ErrMemberNotInProject):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateColumnName):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrBoardArchived):
		apierrors.UnprocessableEntity(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks),
		errors.Is(err, services.ErrAITooManyTasks):
		apierrors.UnprocessableEntity(c, err.Error())
	case errors.Is(err, services.ErrAIRequestFailed):
		log.WithError(err).Warn("task suggestion request failed")
		apierrors.BadGateway(c, "Failed to generate tasks")
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		apierrors.InternalError(c, "Internal server error")
	}
}

// requireUser returns the authenticated user id or writes a 401.
func requireUser(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return userID, true
}

// requireID returns a path id parsed by middleware.RequireIDParams.
func requireID(c *gin.Context, name string) (uint64, bool) {
	id, ok := middleware.GetIDParam(c, name)
	if !ok {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
