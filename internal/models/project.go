package models

import "time"

type Project struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"type:varchar(20);not null" json:"status"`
	Visibility  string `gorm:"type:varchar(20);not null" json:"visibility"`
	IsArchived  bool   `gorm:"not null" json:"is_archived"`
	OwnerID     uint64 `gorm:"not null;index" json:"owner_id"`
	Audit

	// Relations
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Boards  []Board         `gorm:"foreignKey:ProjectID" json:"boards,omitempty"`
}

type ProjectMember struct {
	ProjectID uint64    `gorm:"primarykey" json:"project_id"`
	UserID    uint64    `gorm:"primarykey;index" json:"user_id"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}
