package models

import (
	"time"

	"github.com/yukikurage/taskboard-api/internal/domain"
)

// ActivityLog is the persisted audit trail. Exactly one of TaskID, ProjectID
// and BoardID is set.
type ActivityLog struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	TaskID      *uint64        `gorm:"index" json:"task_id,omitempty"`
	ProjectID   *uint64        `gorm:"index" json:"project_id,omitempty"`
	BoardID     *uint64        `gorm:"index" json:"board_id,omitempty"`
	Type        string         `gorm:"type:varchar(50);not null" json:"type"`
	Description string         `gorm:"type:text;not null" json:"description"`
	UserID      uint64         `gorm:"not null" json:"user_id"`
	Timestamp   time.Time      `gorm:"column:occurred_at;not null;index" json:"timestamp"`
	OldValues   domain.Changes `gorm:"type:text;serializer:json" json:"old_values"`
	NewValues   domain.Changes `gorm:"type:text;serializer:json" json:"new_values"`
}
