package dto

import (
	"time"

	"github.com/yukikurage/taskboard-api/internal/domain"
)

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64     `json:"id"`
	TaskID    uint64     `json:"task_id"`
	UserID    uint64     `json:"user_id"`
	Content   string     `json:"content"`
	IsDeleted bool       `json:"is_deleted"`
	IsEdited  bool       `json:"is_edited"`
	EditedAt  *time.Time `json:"edited_at"`
	AuditDTO
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64          `json:"id"`
	ColumnID    uint64          `json:"column_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Position    int             `json:"position"`
	Priority    domain.Priority `json:"priority"`
	DueDate     *time.Time      `json:"due_date"`
	AssigneeID  *uint64         `json:"assignee_id"`
	IsArchived  bool            `json:"is_archived"`
	Comments    []CommentDTO    `json:"comments,omitempty"`
	AuditDTO
}

// Conversion functions

// ToTaskDTO converts a BoardTask to TaskDTO. Deleted comments are included
// and flagged.
func ToTaskDTO(task *domain.BoardTask) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		ColumnID:    task.ColumnID,
		Title:       task.Title,
		Description: task.Description,
		Position:    task.Position,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		AssigneeID:  task.AssigneeID,
		IsArchived:  task.IsArchived,
		AuditDTO:    toAuditDTO(task.AuditableEntity),
	}

	for _, c := range task.Comments() {
		dto.Comments = append(dto.Comments, ToCommentDTO(c))
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []*domain.BoardTask) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToCommentDTO converts a Comment to CommentDTO
func ToCommentDTO(comment *domain.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		IsDeleted: comment.IsDeleted,
		IsEdited:  comment.IsEdited,
		EditedAt:  comment.EditedAt,
		AuditDTO:  toAuditDTO(comment.AuditableEntity),
	}
}
