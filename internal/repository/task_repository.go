package repository

import (
	"fmt"

	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByID finds a task by ID with comments and its column
func (r *GormTaskRepository) FindByID(id uint64) (*domain.BoardTask, error) {
	var task models.Task
	err := r.db.
		Preload("Column").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&task, id).Error
	if err != nil {
		return nil, err
	}

	t := taskToDomain(task)
	domain.RestoreColumn(columnValue(task.Column), []*domain.BoardTask{t})
	return t, nil
}

// Save persists a task and its comments
func (r *GormTaskRepository) Save(task *domain.BoardTask) error {
	return saveTask(r.db, task)
}

func saveTask(db *gorm.DB, task *domain.BoardTask) error {
	row := taskFromDomain(task)
	if task.ID == 0 {
		if err := db.Omit(clause.Associations).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		task.ID = row.ID
	} else if err := db.Omit(clause.Associations).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save task %d: %w", task.ID, err)
	}

	for _, comment := range task.Comments() {
		comment.TaskID = task.ID
		if err := saveComment(db, comment); err != nil {
			return err
		}
	}
	return nil
}

func saveComment(db *gorm.DB, comment *domain.Comment) error {
	row := commentFromDomain(comment)
	if comment.ID == 0 {
		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		comment.ID = row.ID
		return nil
	}
	if err := db.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save comment %d: %w", comment.ID, err)
	}
	return nil
}
