package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/taskboard-api/internal/constants"
	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"github.com/yukikurage/taskboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrBoardNotFound          = errors.New("board not found")
	ErrNotBoardMember         = errors.New("user is not a member of the board")
	ErrDuplicateColumnName    = errors.New("a column with this name already exists on the board")
	ErrAssigneeNotBoardMember = errors.New("assignee is not a member of the board")
	ErrMemberNotInProject     = errors.New("user is not a member of the board's project")
	ErrBoardArchived          = errors.New("board or its project is archived")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
	ErrAITooManyTasks         = errors.New("AI generated too many tasks")
	ErrAIRequestFailed        = errors.New("AI request failed")
)

// BoardService provides business logic for boards, their columns and task placement.
type BoardService struct {
	store     repository.Store
	recorder  *ActivityRecorder
	suggester TaskSuggester
}

// NewBoardService creates a new BoardService. suggester may be nil, which
// disables task generation.
func NewBoardService(store repository.Store, suggester TaskSuggester) *BoardService {
	return &BoardService{
		store:     store,
		recorder:  NewActivityRecorder(),
		suggester: suggester,
	}
}

// UpdateBoardInput represents a board rename.
type UpdateBoardInput struct {
	Name        string
	Description string
}

// AddColumnInput represents a new column.
type AddColumnInput struct {
	Name  string
	Order int
}

// UpdateColumnInput represents a partial column update.
type UpdateColumnInput struct {
	Name          *string
	Order         *int
	WipLimit      *int
	ClearWipLimit bool
}

// CreateTaskInput represents parameters to create a task in a column.
type CreateTaskInput struct {
	ColumnID    uint64
	Title       string
	Description string
	Priority    domain.Priority
	DueDate     *time.Time
	Position    int
	AssigneeID  *uint64
}

// GenerateTasksInput represents input for AI task generation
type GenerateTasksInput struct {
	ColumnID uint64
	Text     string
}

// GetBoard returns the full board for a member.
func (s *BoardService) GetBoard(boardID, userID uint64) (*domain.Board, error) {
	board, _, err := loadBoardForMember(s.store, boardID, userID)
	return board, err
}

// UpdateBoard renames the board. Viewers cannot modify boards.
func (s *BoardService) UpdateBoard(boardID, actorID uint64, input UpdateBoardInput) (*domain.Board, error) {
	return s.mutate(boardID, actorID, func(tx repository.Store, board *domain.Board, role domain.BoardRole) error {
		if err := requireBoardEditor(tx, board.ID, role); err != nil {
			return err
		}
		return board.UpdateDetails(input.Name, input.Description, actorID)
	})
}

// ArchiveBoard archives the board.
func (s *BoardService) ArchiveBoard(boardID, actorID uint64) (*domain.Board, error) {
	return s.mutate(boardID, actorID, func(_ repository.Store, board *domain.Board, _ domain.BoardRole) error {
		return board.Archive(actorID)
	})
}

// RestoreBoard un-archives the board.
func (s *BoardService) RestoreBoard(boardID, actorID uint64) (*domain.Board, error) {
	return s.mutate(boardID, actorID, func(_ repository.Store, board *domain.Board, _ domain.BoardRole) error {
		return board.Restore(actorID)
	})
}

// AddColumn appends a column to the board.
func (s *BoardService) AddColumn(boardID, actorID uint64, input AddColumnInput) (*domain.Column, error) {
	var column *domain.Column
	_, err := s.mutate(boardID, actorID, func(tx repository.Store, board *domain.Board, role domain.BoardRole) error {
		if err := requireBoardEditor(tx, board.ID, role); err != nil {
			return err
		}
		c, err := board.AddColumn(input.Name, input.Order, actorID)
		if err != nil {
			return err
		}
		column = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return column, nil
}

// UpdateColumn renames, reorders or changes the WIP limit of a column.
func (s *BoardService) UpdateColumn(boardID, columnID, actorID uint64, input UpdateColumnInput) (*domain.Column, error) {
	var column *domain.Column
	_, err := s.mutate(boardID, actorID, func(tx repository.Store, board *domain.Board, role domain.BoardRole) error {
		if err := requireBoardEditor(tx, board.ID, role); err != nil {
			return err
		}
		c, err := board.Column(columnID)
		if err != nil {
			return err
		}
		if input.Name != nil {
			for _, other := range board.Columns() {
				if other.ID != c.ID && strings.EqualFold(other.Name, strings.TrimSpace(*input.Name)) {
					return ErrDuplicateColumnName
				}
			}
			if err := c.ChangeName(*input.Name); err != nil {
				return err
			}
		}
		if input.Order != nil {
			if err := c.ChangeOrder(*input.Order); err != nil {
				return err
			}
		}
		if input.ClearWipLimit {
			if err := c.SetWipLimit(nil); err != nil {
				return err
			}
		} else if input.WipLimit != nil {
			if err := c.SetWipLimit(input.WipLimit); err != nil {
				return err
			}
		}
		column = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return column, nil
}

// AddMember grants a member of the board's project a role on the board.
// Requires a board Admin.
func (s *BoardService) AddMember(boardID, actorID, userID uint64, role domain.BoardRole) (*domain.Board, error) {
	return s.mutate(boardID, actorID, func(tx repository.Store, board *domain.Board, actorRole domain.BoardRole) error {
		if actorRole != domain.BoardRoleAdmin {
			return ErrInsufficientRole
		}
		user, err := findUser(tx, userID)
		if err != nil {
			return err
		}
		project, err := tx.Projects().FindByID(board.ProjectID)
		if err != nil {
			return fmt.Errorf("failed to find project: %w", err)
		}
		if !project.IsMember(userID) {
			return ErrMemberNotInProject
		}
		return board.AddMember(&user, role, actorID)
	})
}

// RemoveMember revokes a board membership. Requires a board Admin.
func (s *BoardService) RemoveMember(boardID, actorID, userID uint64) (*domain.Board, error) {
	return s.mutate(boardID, actorID, func(_ repository.Store, board *domain.Board, actorRole domain.BoardRole) error {
		if actorRole != domain.BoardRoleAdmin {
			return ErrInsufficientRole
		}
		return board.RemoveMember(userID, actorID)
	})
}

// CreateTask creates a task in one of the board's columns.
func (s *BoardService) CreateTask(boardID, actorID uint64, input CreateTaskInput) (*domain.BoardTask, error) {
	var task *domain.BoardTask
	err := s.store.Transaction(func(tx repository.Store) error {
		board, role, err := loadBoardForMember(tx, boardID, actorID)
		if err != nil {
			return err
		}
		if err := requireBoardEditor(tx, board.ID, role); err != nil {
			return err
		}
		if input.AssigneeID != nil && !board.IsMember(*input.AssigneeID) {
			return ErrAssigneeNotBoardMember
		}

		t, err := domain.CreateBoardTask(domain.NewBoardTask{
			Title:       input.Title,
			Description: input.Description,
			Priority:    input.Priority,
			DueDate:     input.DueDate,
			Position:    input.Position,
			ColumnID:    input.ColumnID,
			AssigneeID:  input.AssigneeID,
			CreatedBy:   actorID,
		})
		if err != nil {
			return err
		}
		if err := board.AddTask(input.ColumnID, t); err != nil {
			return err
		}
		if err := tx.Boards().Save(board); err != nil {
			return err
		}
		task = t
		return s.recorder.Record(tx, boardEvents(board), Scope{
			domain.TargetBoard: board.ID,
			domain.TargetTask:  t.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// MoveTask moves a task to another column of the same board.
func (s *BoardService) MoveTask(boardID, taskID, toColumnID, actorID uint64) (*domain.BoardTask, error) {
	var task *domain.BoardTask
	_, err := s.mutate(boardID, actorID, func(tx repository.Store, board *domain.Board, role domain.BoardRole) error {
		if err := requireBoardEditor(tx, board.ID, role); err != nil {
			return err
		}
		if err := board.MoveTask(taskID, toColumnID, actorID); err != nil {
			return err
		}
		t, err := board.Task(taskID)
		if err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// GenerateTasks asks the suggester for tasks extracted from free text and
// creates them in the given column. Either every task is created or none.
func (s *BoardService) GenerateTasks(ctx context.Context, boardID, actorID uint64, input GenerateTasksInput) ([]*domain.BoardTask, error) {
	if s.suggester == nil {
		return nil, ErrAIServiceNotConfigured
	}

	board, role, err := loadBoardForMember(s.store, boardID, actorID)
	if err != nil {
		return nil, err
	}
	if err := requireBoardEditor(s.store, board.ID, role); err != nil {
		return nil, err
	}
	if _, err := board.Column(input.ColumnID); err != nil {
		return nil, err
	}

	suggestions, err := s.suggester.SuggestTasks(ctx, input.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAIRequestFailed, err)
	}
	if len(suggestions) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(suggestions) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("%w (max %d)", ErrAITooManyTasks, constants.MaxAIGeneratedTasks)
	}

	inputs := normalizeSuggestions(suggestions, input.ColumnID, actorID, time.Now().UTC())
	if len(inputs) == 0 {
		return nil, ErrAINoValidTasks
	}

	var created []*domain.BoardTask
	err = s.store.Transaction(func(tx repository.Store) error {
		board, role, err := loadBoardForMember(tx, boardID, actorID)
		if err != nil {
			return err
		}
		if err := requireBoardEditor(tx, board.ID, role); err != nil {
			return err
		}

		column, err := board.Column(input.ColumnID)
		if err != nil {
			return err
		}
		base := column.TaskCount()

		created = make([]*domain.BoardTask, 0, len(inputs))
		for _, in := range inputs {
			in.Position += base
			t, err := domain.CreateBoardTask(in)
			if err != nil {
				return err
			}
			if err := board.AddTask(input.ColumnID, t); err != nil {
				return err
			}
			created = append(created, t)
		}
		if err := tx.Boards().Save(board); err != nil {
			return err
		}

		// New tasks are drained one at a time so each creation is logged
		// against its own id.
		for _, t := range created {
			if err := s.recorder.Record(tx, taskEvents(t), Scope{domain.TargetTask: t.ID}); err != nil {
				return err
			}
		}
		return s.recorder.Record(tx, boardEvents(board), Scope{domain.TargetBoard: board.ID})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListActivities returns the board's audit trail, newest first.
func (s *BoardService) ListActivities(boardID, userID uint64, params utils.PaginationParams) ([]domain.ActivityLog, int64, error) {
	if _, _, err := loadBoardForMember(s.store, boardID, userID); err != nil {
		return nil, 0, err
	}
	return listActivities(s.store, domain.Target{Kind: domain.TargetBoard, ID: boardID}, params)
}

// mutate loads the board for a member, applies fn and persists the board
// with its activity log in one transaction.
func (s *BoardService) mutate(boardID, actorID uint64, fn func(repository.Store, *domain.Board, domain.BoardRole) error) (*domain.Board, error) {
	var board *domain.Board
	err := s.store.Transaction(func(tx repository.Store) error {
		b, role, err := loadBoardForMember(tx, boardID, actorID)
		if err != nil {
			return err
		}
		if err := fn(tx, b, role); err != nil {
			return err
		}
		if err := tx.Boards().Save(b); err != nil {
			return err
		}
		board = b
		return s.recorder.Record(tx, boardEvents(b), Scope{domain.TargetBoard: b.ID})
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// normalizeSuggestions drops untitled suggestions, truncates long titles,
// defaults unknown priorities and clears past due dates.
func normalizeSuggestions(suggestions []SuggestedTask, columnID, creatorID uint64, now time.Time) []domain.NewBoardTask {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	inputs := make([]domain.NewBoardTask, 0, len(suggestions))
	for i, suggestion := range suggestions {
		title := strings.TrimSpace(suggestion.Title)
		if title == "" {
			continue
		}
		if utf8.RuneCountInString(title) > domain.MaxTaskTitleLength {
			title = string([]rune(title)[:domain.MaxTaskTitleLength])
		}

		priority := domain.Priority(suggestion.Priority)
		if !priority.IsValid() {
			priority = domain.PriorityMedium
		}

		dueDate := suggestion.DueDate
		if dueDate != nil && dueDate.Before(cutoff) {
			dueDate = nil
		}

		inputs = append(inputs, domain.NewBoardTask{
			Title:       title,
			Description: strings.TrimSpace(suggestion.Description),
			Priority:    priority,
			DueDate:     dueDate,
			Position:    i,
			ColumnID:    columnID,
			CreatedBy:   creatorID,
		})
	}
	return inputs
}

func requireBoardWriter(role domain.BoardRole) error {
	if role == domain.BoardRoleViewer {
		return ErrInsufficientRole
	}
	return nil
}

// requireBoardEditor is requireBoardWriter plus a check that the board and
// its project are not archived. Archived containers are read-only.
func requireBoardEditor(store repository.Store, boardID uint64, role domain.BoardRole) error {
	if err := requireBoardWriter(role); err != nil {
		return err
	}
	return requireWritableBoard(store, boardID)
}

func requireWritableBoard(store repository.Store, boardID uint64) error {
	writable, err := store.Boards().IsWritable(boardID)
	if err != nil {
		return err
	}
	if !writable {
		return ErrBoardArchived
	}
	return nil
}

func loadBoardForMember(store repository.Store, boardID, userID uint64) (*domain.Board, domain.BoardRole, error) {
	board, err := store.Boards().FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrBoardNotFound
		}
		return nil, "", fmt.Errorf("failed to find board: %w", err)
	}

	role, ok := board.MemberRole(userID)
	if !ok {
		return nil, "", ErrNotBoardMember
	}
	return board, role, nil
}
