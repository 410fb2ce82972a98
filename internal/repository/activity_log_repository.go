package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/taskboard-api/internal/database"
	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// ErrUnknownTarget is returned when an activity filter names no container.
var ErrUnknownTarget = errors.New("activity repository: unknown target kind")

// GormActivityLogRepository is a GORM implementation of ActivityLogRepository
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create appends an entry to the audit trail
func (r *GormActivityLogRepository) Create(log *domain.ActivityLog) error {
	row := activityLogFromDomain(log)
	if err := r.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create activity log: %w", err)
	}
	log.ID = row.ID
	return nil
}

// List retrieves one container's activity log, newest first
func (r *GormActivityLogRepository) List(filter ActivityFilter) ([]domain.ActivityLog, int64, error) {
	column, err := targetColumn(filter.Target.Kind)
	if err != nil {
		return nil, 0, err
	}

	scoped := func() *gorm.DB {
		return r.db.Model(&models.ActivityLog{}).Where(column+" = ?", filter.Target.ID)
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activity logs: %w", err)
	}

	var rows []models.ActivityLog
	if err := scoped().
		Order("occurred_at DESC, id DESC").
		Scopes(database.Paginate(filter.Pagination)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list activity logs: %w", err)
	}

	logs := make([]domain.ActivityLog, 0, len(rows))
	for _, row := range rows {
		log, err := activityLogToDomain(row)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode activity log %d: %w", row.ID, err)
		}
		logs = append(logs, log)
	}
	return logs, total, nil
}

func targetColumn(kind domain.TargetKind) (string, error) {
	switch kind {
	case domain.TargetTask:
		return "task_id", nil
	case domain.TargetProject:
		return "project_id", nil
	case domain.TargetBoard:
		return "board_id", nil
	}
	return "", ErrUnknownTarget
}
