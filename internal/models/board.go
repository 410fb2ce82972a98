package models

import "time"

type Board struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	ProjectID   uint64 `gorm:"not null;index" json:"project_id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsArchived  bool   `gorm:"not null" json:"is_archived"`
	Audit

	// Relations
	Columns []Column      `gorm:"foreignKey:BoardID" json:"columns,omitempty"`
	Members []BoardMember `gorm:"foreignKey:BoardID" json:"members,omitempty"`
}

type BoardMember struct {
	BoardID  uint64    `gorm:"primarykey" json:"board_id"`
	UserID   uint64    `gorm:"primarykey;index" json:"user_id"`
	Role     string    `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// Column maps Order to sort_order since ORDER is reserved in every dialect.
type Column struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	BoardID  uint64 `gorm:"not null;index" json:"board_id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Order    int    `gorm:"column:sort_order;not null" json:"order"`
	WipLimit *int   `json:"wip_limit"`
	Audit

	// Relations
	Tasks []Task `gorm:"foreignKey:ColumnID" json:"tasks,omitempty"`
}
