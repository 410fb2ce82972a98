package models

import "time"

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	ColumnID    uint64     `gorm:"not null;index" json:"column_id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Position    int        `gorm:"not null" json:"position"`
	Priority    string     `gorm:"type:varchar(20);not null" json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  *uint64    `gorm:"index" json:"assignee_id"`
	IsArchived  bool       `gorm:"not null" json:"is_archived"`
	Audit

	// Relations
	Column   Column    `gorm:"foreignKey:ColumnID" json:"-"`
	Comments []Comment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

type Comment struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	TaskID    uint64     `gorm:"not null;index" json:"task_id"`
	UserID    uint64     `gorm:"not null" json:"user_id"`
	Content   string     `gorm:"type:varchar(300);not null" json:"content"`
	IsDeleted bool       `gorm:"not null" json:"is_deleted"`
	IsEdited  bool       `gorm:"not null" json:"is_edited"`
	EditedAt  *time.Time `json:"edited_at"`
	Audit
}
