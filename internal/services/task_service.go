package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"github.com/yukikurage/taskboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

// TaskService handles task business logic
type TaskService struct {
	store    repository.Store
	recorder *ActivityRecorder
}

// NewTaskService creates a new TaskService
func NewTaskService(store repository.Store) *TaskService {
	return &TaskService{
		store:    store,
		recorder: NewActivityRecorder(),
	}
}

// UpdateTaskInput represents input for updating a task. Nil fields keep
// their current value.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Priority     *domain.Priority
	DueDate      *time.Time
	ClearDueDate bool
}

// GetTask returns a task with its comments
func (s *TaskService) GetTask(taskID, userID uint64) (*domain.BoardTask, error) {
	task, _, err := loadTaskForMember(s.store, taskID, userID)
	return task, err
}

// UpdateTask updates title, description, priority and due date
func (s *TaskService) UpdateTask(taskID, actorID uint64, input UpdateTaskInput) (*domain.BoardTask, error) {
	return s.mutate(taskID, actorID, func(task *domain.BoardTask, access boardAccess) error {
		if err := requireBoardWriter(access.role); err != nil {
			return err
		}

		details := domain.UpdateTaskDetails{
			Title:       task.Title,
			Description: task.Description,
			Priority:    task.Priority,
			DueDate:     task.DueDate,
		}
		if input.Title != nil {
			details.Title = *input.Title
		}
		if input.Description != nil {
			details.Description = *input.Description
		}
		if input.Priority != nil {
			details.Priority = *input.Priority
		}
		if input.ClearDueDate {
			details.DueDate = nil
		} else if input.DueDate != nil {
			details.DueDate = input.DueDate
		}
		return task.UpdateDetails(details, actorID)
	})
}

// AssignTask sets or clears the assignee. The assignee must belong to the board.
func (s *TaskService) AssignTask(taskID, actorID uint64, assigneeID *uint64) (*domain.BoardTask, error) {
	return s.mutate(taskID, actorID, func(task *domain.BoardTask, access boardAccess) error {
		if err := requireBoardWriter(access.role); err != nil {
			return err
		}
		if assigneeID != nil && !access.isMember(*assigneeID) {
			return ErrAssigneeNotBoardMember
		}
		return task.AssignToUser(assigneeID, actorID)
	})
}

// SetPosition changes the task's position within its column
func (s *TaskService) SetPosition(taskID, actorID uint64, position int) (*domain.BoardTask, error) {
	return s.mutate(taskID, actorID, func(task *domain.BoardTask, access boardAccess) error {
		if err := requireBoardWriter(access.role); err != nil {
			return err
		}
		return task.SetPosition(position, actorID)
	})
}

// ArchiveTask hides the task
func (s *TaskService) ArchiveTask(taskID, actorID uint64) (*domain.BoardTask, error) {
	return s.mutate(taskID, actorID, func(task *domain.BoardTask, access boardAccess) error {
		if err := requireBoardWriter(access.role); err != nil {
			return err
		}
		return task.Archive(actorID)
	})
}

// RestoreTask un-archives the task
func (s *TaskService) RestoreTask(taskID, actorID uint64) (*domain.BoardTask, error) {
	return s.mutate(taskID, actorID, func(task *domain.BoardTask, access boardAccess) error {
		if err := requireBoardWriter(access.role); err != nil {
			return err
		}
		return task.Restore(actorID)
	})
}

// ListActivities returns the task's audit trail, newest first
func (s *TaskService) ListActivities(taskID, userID uint64, params utils.PaginationParams) ([]domain.ActivityLog, int64, error) {
	if _, _, err := loadTaskForMember(s.store, taskID, userID); err != nil {
		return nil, 0, err
	}
	return listActivities(s.store, domain.Target{Kind: domain.TargetTask, ID: taskID}, params)
}

func (s *TaskService) mutate(taskID, actorID uint64, fn func(*domain.BoardTask, boardAccess) error) (*domain.BoardTask, error) {
	var task *domain.BoardTask
	err := s.store.Transaction(func(tx repository.Store) error {
		t, access, err := loadTaskForMember(tx, taskID, actorID)
		if err != nil {
			return err
		}
		if err := requireWritableBoard(tx, t.Column().BoardID); err != nil {
			return err
		}
		if err := fn(t, access); err != nil {
			return err
		}
		if err := tx.Tasks().Save(t); err != nil {
			return err
		}
		task = t
		return s.recorder.Record(tx, taskEvents(t), Scope{domain.TargetTask: t.ID})
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// boardAccess is the caller's standing on the board that owns a task.
type boardAccess struct {
	role    domain.BoardRole
	members []domain.BoardMember
}

func (a boardAccess) isMember(userID uint64) bool {
	for _, m := range a.members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func loadTaskForMember(store repository.Store, taskID, userID uint64) (*domain.BoardTask, boardAccess, error) {
	task, err := store.Tasks().FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, boardAccess{}, ErrTaskNotFound
		}
		return nil, boardAccess{}, fmt.Errorf("failed to find task: %w", err)
	}

	members, err := store.Boards().FindMembers(task.Column().BoardID)
	if err != nil {
		return nil, boardAccess{}, fmt.Errorf("failed to find board members: %w", err)
	}
	access := boardAccess{members: members}
	for _, m := range members {
		if m.UserID == userID {
			access.role = m.Role
			return task, access, nil
		}
	}
	return nil, boardAccess{}, ErrNotBoardMember
}
