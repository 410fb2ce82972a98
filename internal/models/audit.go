package models

import "time"

// Audit is embedded by every aggregate record.
type Audit struct {
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	CreatedBy      uint64     `gorm:"not null" json:"created_by"`
	LastModifiedAt *time.Time `json:"last_modified_at"`
	LastModifiedBy *uint64    `json:"last_modified_by"`
}
