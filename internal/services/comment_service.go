package services

import (
	"errors"

	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/repository"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("only the comment author can perform this action")
)

// CommentService handles comments on tasks.
type CommentService struct {
	store    repository.Store
	recorder *ActivityRecorder
}

// NewCommentService creates a new CommentService.
func NewCommentService(store repository.Store) *CommentService {
	return &CommentService{
		store:    store,
		recorder: NewActivityRecorder(),
	}
}

// AddComment adds a comment to a task. Any board member may comment.
func (s *CommentService) AddComment(taskID, actorID uint64, content string) (*domain.Comment, error) {
	var comment *domain.Comment
	err := s.withTask(taskID, actorID, func(task *domain.BoardTask, _ boardAccess) error {
		c, err := task.AddComment(content, actorID)
		if err != nil {
			return err
		}
		comment = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment edits a comment. Only its author may edit it.
func (s *CommentService) UpdateComment(taskID, commentID, actorID uint64, content string) (*domain.Comment, error) {
	return s.withComment(taskID, commentID, actorID, func(comment *domain.Comment, _ boardAccess) error {
		if comment.UserID != actorID {
			return ErrNotCommentAuthor
		}
		return comment.UpdateContent(content, actorID)
	})
}

// DeleteComment soft-deletes a comment. The author or a board Admin may delete it.
func (s *CommentService) DeleteComment(taskID, commentID, actorID uint64) (*domain.Comment, error) {
	return s.withComment(taskID, commentID, actorID, func(comment *domain.Comment, access boardAccess) error {
		if err := requireAuthorOrAdmin(comment, actorID, access); err != nil {
			return err
		}
		return comment.Delete(actorID)
	})
}

// RestoreComment undoes a soft delete. The author or a board Admin may restore it.
func (s *CommentService) RestoreComment(taskID, commentID, actorID uint64) (*domain.Comment, error) {
	return s.withComment(taskID, commentID, actorID, func(comment *domain.Comment, access boardAccess) error {
		if err := requireAuthorOrAdmin(comment, actorID, access); err != nil {
			return err
		}
		return comment.Restore(actorID)
	})
}

func (s *CommentService) withComment(taskID, commentID, actorID uint64, fn func(*domain.Comment, boardAccess) error) (*domain.Comment, error) {
	var comment *domain.Comment
	err := s.withTask(taskID, actorID, func(task *domain.BoardTask, access boardAccess) error {
		c, ok := task.Comment(commentID)
		if !ok {
			return ErrCommentNotFound
		}
		comment = c
		return fn(c, access)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) withTask(taskID, actorID uint64, fn func(*domain.BoardTask, boardAccess) error) error {
	return s.store.Transaction(func(tx repository.Store) error {
		task, access, err := loadTaskForMember(tx, taskID, actorID)
		if err != nil {
			return err
		}
		if err := requireWritableBoard(tx, task.Column().BoardID); err != nil {
			return err
		}
		if err := fn(task, access); err != nil {
			return err
		}
		if err := tx.Tasks().Save(task); err != nil {
			return err
		}
		return s.recorder.Record(tx, taskEvents(task), Scope{domain.TargetTask: task.ID})
	})
}

func requireAuthorOrAdmin(comment *domain.Comment, actorID uint64, access boardAccess) error {
	if comment.UserID == actorID || access.role == domain.BoardRoleAdmin {
		return nil
	}
	return ErrNotCommentAuthor
}
