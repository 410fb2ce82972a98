package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"github.com/yukikurage/taskboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrNotProjectMember = errors.New("user is not a member of the project")
	ErrInsufficientRole = errors.New("user's role does not permit this action")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	store    repository.Store
	recorder *ActivityRecorder
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store repository.Store) *ProjectService {
	return &ProjectService{
		store:    store,
		recorder: NewActivityRecorder(),
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	OwnerID     uint64
}

// UpdateProjectInput represents a partial project update. Nil fields are left alone.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *domain.ProjectStatus
	Visibility  *domain.Visibility
	IsArchived  *bool
}

// CreateProject creates a new project owned by the caller.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*domain.Project, error) {
	project, err := domain.CreateProject(input.Name, input.Description, input.OwnerID)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(func(tx repository.Store) error {
		if err := tx.Projects().Create(project); err != nil {
			return err
		}
		return s.recorder.Record(tx, project.DrainEvents(), Scope{domain.TargetProject: project.ID})
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// GetProject returns a project the user belongs to.
func (s *ProjectService) GetProject(projectID, userID uint64) (*domain.Project, error) {
	project, _, err := loadProjectForMember(s.store, projectID, userID)
	return project, err
}

// ListProjects returns every project the user belongs to.
func (s *ProjectService) ListProjects(userID uint64) ([]*domain.Project, error) {
	projects, err := s.store.Projects().ListByMember(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProject applies a partial update. Requires an Owner or Admin.
func (s *ProjectService) UpdateProject(projectID, actorID uint64, input UpdateProjectInput) (*domain.Project, error) {
	return s.mutate(projectID, actorID, func(_ repository.Store, project *domain.Project, role domain.ProjectRole) error {
		if !role.CanManage() {
			return ErrInsufficientRole
		}
		isArchived := project.IsArchived
		if input.IsArchived != nil {
			isArchived = *input.IsArchived
		}
		return project.Update(domain.UpdateProject{
			Name:        input.Name,
			Description: input.Description,
			Status:      input.Status,
			Visibility:  input.Visibility,
			IsArchived:  isArchived,
		}, actorID)
	})
}

// ArchiveProject archives an active project.
func (s *ProjectService) ArchiveProject(projectID, actorID uint64) (*domain.Project, error) {
	return s.mutate(projectID, actorID, func(_ repository.Store, project *domain.Project, _ domain.ProjectRole) error {
		return project.Archive(actorID)
	})
}

// AddMember adds an existing user to the project.
func (s *ProjectService) AddMember(projectID, actorID, userID uint64, role domain.ProjectRole) (*domain.Project, error) {
	return s.mutate(projectID, actorID, func(tx repository.Store, project *domain.Project, _ domain.ProjectRole) error {
		if _, err := findUser(tx, userID); err != nil {
			return err
		}
		return project.AddMember(userID, role, actorID)
	})
}

// UpdateMember changes the role of a project member.
func (s *ProjectService) UpdateMember(projectID, actorID, userID uint64, role domain.ProjectRole) (*domain.Project, error) {
	return s.mutate(projectID, actorID, func(_ repository.Store, project *domain.Project, _ domain.ProjectRole) error {
		return project.UpdateMember(userID, role, actorID)
	})
}

// RemoveMember removes a member from the project and from every board of it.
func (s *ProjectService) RemoveMember(projectID, actorID, userID uint64) (*domain.Project, error) {
	return s.mutate(projectID, actorID, func(tx repository.Store, project *domain.Project, _ domain.ProjectRole) error {
		wasMember := project.IsMember(userID)
		if err := project.RemoveMember(userID, actorID); err != nil {
			return err
		}
		if !wasMember {
			return nil
		}
		return s.removeFromBoards(tx, project, userID, actorID)
	})
}

func (s *ProjectService) removeFromBoards(tx repository.Store, project *domain.Project, userID, actorID uint64) error {
	for _, b := range project.Boards() {
		board, err := tx.Boards().FindByID(b.ID)
		if err != nil {
			return fmt.Errorf("failed to find board %d: %w", b.ID, err)
		}
		if !board.IsMember(userID) {
			continue
		}
		if err := board.RemoveMember(userID, actorID); err != nil {
			return err
		}
		if err := tx.Boards().Save(board); err != nil {
			return err
		}
		if err := s.recorder.Record(tx, boardEvents(board), Scope{domain.TargetBoard: board.ID}); err != nil {
			return err
		}
	}
	return nil
}

// CreateBoardInput represents parameters to create a board in a project.
type CreateBoardInput struct {
	Name        string
	Description string
}

// CreateBoard creates a board with the default columns. Viewers cannot create boards.
func (s *ProjectService) CreateBoard(projectID, actorID uint64, input CreateBoardInput) (*domain.Board, error) {
	var board *domain.Board
	err := s.store.Transaction(func(tx repository.Store) error {
		project, role, err := loadProjectForMember(tx, projectID, actorID)
		if err != nil {
			return err
		}
		if role == domain.ProjectRoleViewer {
			return ErrInsufficientRole
		}

		b, err := project.CreateBoard(input.Name, input.Description, actorID)
		if err != nil {
			return err
		}
		if err := tx.Projects().Save(project); err != nil {
			return err
		}
		board = b
		return s.recorder.Record(tx, project.DrainEvents(), Scope{
			domain.TargetProject: project.ID,
			domain.TargetBoard:   b.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	return board, nil
}

// ListActivities returns the project's audit trail, newest first.
func (s *ProjectService) ListActivities(projectID, userID uint64, params utils.PaginationParams) ([]domain.ActivityLog, int64, error) {
	if _, _, err := loadProjectForMember(s.store, projectID, userID); err != nil {
		return nil, 0, err
	}
	return listActivities(s.store, domain.Target{Kind: domain.TargetProject, ID: projectID}, params)
}

// mutate loads the project for a member, applies fn and persists the result
// together with its activity log in one transaction.
func (s *ProjectService) mutate(projectID, actorID uint64, fn func(repository.Store, *domain.Project, domain.ProjectRole) error) (*domain.Project, error) {
	var project *domain.Project
	err := s.store.Transaction(func(tx repository.Store) error {
		p, role, err := loadProjectForMember(tx, projectID, actorID)
		if err != nil {
			return err
		}
		if err := fn(tx, p, role); err != nil {
			return err
		}
		if err := tx.Projects().Save(p); err != nil {
			return err
		}
		project = p
		return s.recorder.Record(tx, p.DrainEvents(), Scope{domain.TargetProject: p.ID})
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

func loadProjectForMember(store repository.Store, projectID, userID uint64) (*domain.Project, domain.ProjectRole, error) {
	project, err := store.Projects().FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrProjectNotFound
		}
		return nil, "", fmt.Errorf("failed to find project: %w", err)
	}

	role, ok := project.MemberRole(userID)
	if !ok {
		return nil, "", ErrNotProjectMember
	}
	return project, role, nil
}

func findUser(store repository.Store, userID uint64) (domain.User, error) {
	user, err := store.Users().FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return user.ToDomain(), nil
}

func listActivities(store repository.Store, target domain.Target, params utils.PaginationParams) ([]domain.ActivityLog, int64, error) {
	logs, total, err := store.Activities().List(repository.ActivityFilter{
		Target:     target,
		Pagination: params,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	return logs, total, nil
}
