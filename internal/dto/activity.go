package dto

import (
	"time"

	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/utils"
)

// ActivityDTO represents one audit trail entry in API responses
type ActivityDTO struct {
	ID          uint64              `json:"id"`
	TargetType  domain.TargetKind   `json:"target_type"`
	TargetID    uint64              `json:"target_id"`
	Type        domain.ActivityType `json:"type"`
	Description string              `json:"description"`
	UserID      uint64              `json:"user_id"`
	Timestamp   time.Time           `json:"timestamp"`
	OldValues   domain.Changes      `json:"old_values"`
	NewValues   domain.Changes      `json:"new_values"`
}

// ActivityListResponse represents a paginated activity feed
type ActivityListResponse struct {
	Activities []ActivityDTO            `json:"activities"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToActivityDTO converts an ActivityLog to ActivityDTO
func ToActivityDTO(log domain.ActivityLog) ActivityDTO {
	target := log.Target()
	a := log.Activity
	return ActivityDTO{
		ID:          log.ID,
		TargetType:  target.Kind,
		TargetID:    target.ID,
		Type:        a.Type(),
		Description: a.Description(),
		UserID:      a.UserID(),
		Timestamp:   a.Timestamp(),
		OldValues:   a.OldValues(),
		NewValues:   a.NewValues(),
	}
}

// ToActivityListResponse converts a page of activity logs
func ToActivityListResponse(logs []domain.ActivityLog, params utils.PaginationParams, total int64) ActivityListResponse {
	items := make([]ActivityDTO, len(logs))
	for i, l := range logs {
		items[i] = ToActivityDTO(l)
	}
	return ActivityListResponse{
		Activities: items,
		Pagination: params.Response(total),
	}
}
