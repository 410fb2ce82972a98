package repository

import (
	"fmt"

	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create inserts a new project aggregate
func (r *GormProjectRepository) Create(project *domain.Project) error {
	row := projectFromDomain(project)
	if err := r.db.Omit(clause.Associations).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	project.ID = row.ID
	return r.saveChildren(project)
}

// FindByID finds a project by ID with members and boards
func (r *GormProjectRepository) FindByID(id uint64) (*domain.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Members").
		Preload("Boards", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return projectToDomain(project), nil
}

// Save persists the project aggregate
func (r *GormProjectRepository) Save(project *domain.Project) error {
	row := projectFromDomain(project)
	if err := r.db.Omit(clause.Associations).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return r.saveChildren(project)
}

// ListByMember lists projects the user belongs to, newest first
func (r *GormProjectRepository) ListByMember(userID uint64) ([]*domain.Project, error) {
	memberOf := r.db.Model(&models.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userID)

	var rows []models.Project
	if err := r.db.Preload("Members").
		Where("id IN (?)", memberOf).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	projects := make([]*domain.Project, len(rows))
	for i, row := range rows {
		projects[i] = projectToDomain(row)
	}
	return projects, nil
}

func (r *GormProjectRepository) saveChildren(project *domain.Project) error {
	if err := r.syncMembers(project); err != nil {
		return err
	}
	for _, board := range project.Boards() {
		if board.ID != 0 {
			continue
		}
		board.ProjectID = project.ID
		if err := insertBoard(r.db, board); err != nil {
			return err
		}
	}
	return nil
}

func (r *GormProjectRepository) syncMembers(project *domain.Project) error {
	members := project.Members()
	userIDs := make([]uint64, 0, len(members))
	for _, m := range members {
		row := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    m.UserID,
			Role:      string(m.Role),
			JoinedAt:  m.JoinedAt,
		}
		err := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role"}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to save project member %d: %w", m.UserID, err)
		}
		userIDs = append(userIDs, m.UserID)
	}

	query := r.db.Where("project_id = ?", project.ID)
	if len(userIDs) > 0 {
		query = query.Where("user_id NOT IN ?", userIDs)
	}
	if err := query.Delete(&models.ProjectMember{}).Error; err != nil {
		return fmt.Errorf("failed to remove project members: %w", err)
	}
	return nil
}
