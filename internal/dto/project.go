package dto

import (
	"time"

	"github.com/yukikurage/taskboard-api/internal/domain"
)

// ProjectMemberDTO represents a project membership in API responses
type ProjectMemberDTO struct {
	UserID   uint64             `json:"user_id"`
	Role     domain.ProjectRole `json:"role"`
	JoinedAt time.Time          `json:"joined_at"`
}

// BoardSummaryDTO represents a board listed under its project
type BoardSummaryDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsArchived  bool   `json:"is_archived"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
	Visibility  domain.Visibility    `json:"visibility"`
	IsArchived  bool                 `json:"is_archived"`
	OwnerID     uint64               `json:"owner_id"`
	Members     []ProjectMemberDTO   `json:"members"`
	Boards      []BoardSummaryDTO    `json:"boards,omitempty"`
	AuditDTO
}

// ProjectListItemDTO represents a project in list responses, with the caller's role
type ProjectListItemDTO struct {
	ID         uint64               `json:"id"`
	Name       string               `json:"name"`
	Status     domain.ProjectStatus `json:"status"`
	IsArchived bool                 `json:"is_archived"`
	YourRole   domain.ProjectRole   `json:"your_role"`
}

// ToProjectDTO converts a Project aggregate to ProjectDTO
func ToProjectDTO(project *domain.Project) ProjectDTO {
	members := project.Members()
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		Visibility:  project.Visibility,
		IsArchived:  project.IsArchived,
		OwnerID:     project.OwnerID,
		Members:     make([]ProjectMemberDTO, len(members)),
		AuditDTO:    toAuditDTO(project.AuditableEntity),
	}
	for i, m := range members {
		dto.Members[i] = ProjectMemberDTO{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
	}

	for _, b := range project.Boards() {
		dto.Boards = append(dto.Boards, BoardSummaryDTO{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			IsArchived:  b.IsArchived,
		})
	}

	return dto
}

// ToProjectListItemDTOs converts projects for a list response as seen by userID
func ToProjectListItemDTOs(projects []*domain.Project, userID uint64) []ProjectListItemDTO {
	items := make([]ProjectListItemDTO, len(projects))
	for i, p := range projects {
		role, _ := p.MemberRole(userID)
		items[i] = ProjectListItemDTO{
			ID:         p.ID,
			Name:       p.Name,
			Status:     p.Status,
			IsArchived: p.IsArchived,
			YourRole:   role,
		}
	}
	return items
}
