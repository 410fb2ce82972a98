package dto

import (
	"time"

	"github.com/yukikurage/taskboard-api/internal/domain"
)

// BoardMemberDTO represents a board membership in API responses
type BoardMemberDTO struct {
	UserID   uint64           `json:"user_id"`
	Role     domain.BoardRole `json:"role"`
	JoinedAt time.Time        `json:"joined_at"`
}

// ColumnDTO represents a column and its tasks in API responses
type ColumnDTO struct {
	ID       uint64    `json:"id"`
	BoardID  uint64    `json:"board_id"`
	Name     string    `json:"name"`
	Order    int       `json:"order"`
	WipLimit *int      `json:"wip_limit"`
	Tasks    []TaskDTO `json:"tasks"`
}

// BoardDTO represents a full board in API responses
type BoardDTO struct {
	ID          uint64           `json:"id"`
	ProjectID   uint64           `json:"project_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	IsArchived  bool             `json:"is_archived"`
	Columns     []ColumnDTO      `json:"columns"`
	Members     []BoardMemberDTO `json:"members"`
	AuditDTO
}

// ToBoardDTO converts a Board aggregate to BoardDTO
func ToBoardDTO(board *domain.Board) BoardDTO {
	columns := board.Columns()
	members := board.Members()
	dto := BoardDTO{
		ID:          board.ID,
		ProjectID:   board.ProjectID,
		Name:        board.Name,
		Description: board.Description,
		IsArchived:  board.IsArchived,
		Columns:     make([]ColumnDTO, len(columns)),
		Members:     make([]BoardMemberDTO, len(members)),
		AuditDTO:    toAuditDTO(board.AuditableEntity),
	}
	for i, c := range columns {
		dto.Columns[i] = ToColumnDTO(c)
	}
	for i, m := range members {
		dto.Members[i] = BoardMemberDTO{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
	}
	return dto
}

// ToColumnDTO converts a Column to ColumnDTO
func ToColumnDTO(column *domain.Column) ColumnDTO {
	tasks := column.Tasks()
	dto := ColumnDTO{
		ID:       column.ID,
		BoardID:  column.BoardID,
		Name:     column.Name,
		Order:    column.Order,
		WipLimit: column.WipLimit,
		Tasks:    make([]TaskDTO, len(tasks)),
	}
	for i, t := range tasks {
		dto.Tasks[i] = ToTaskDTO(t)
	}
	return dto
}
