package dto

import (
	"time"

	"github.com/yukikurage/taskboard-api/internal/domain"
)

// AuditDTO carries the creation and modification stamps of an entity
type AuditDTO struct {
	CreatedAt      time.Time  `json:"created_at"`
	CreatedBy      uint64     `json:"created_by"`
	LastModifiedAt *time.Time `json:"last_modified_at"`
	LastModifiedBy *uint64    `json:"last_modified_by"`
}

func toAuditDTO(a domain.AuditableEntity) AuditDTO {
	return AuditDTO{
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
		LastModifiedAt: a.LastModifiedAt,
		LastModifiedBy: a.LastModifiedBy,
	}
}
