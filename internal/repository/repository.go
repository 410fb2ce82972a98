package repository

import (
	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/utils"
)

// Aggregates returned by the Find methods below are fully loaded: every
// membership collection the domain consults for a role check is complete.
// Role-gated domain methods treat a missing membership as "not a member", so
// a partially loaded aggregate would reject legitimate callers.

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create inserts the project, its members and any boards created on it
	Create(project *domain.Project) error

	// FindByID returns the project with all members loaded. Boards are loaded
	// without their columns or members.
	FindByID(id uint64) (*domain.Project, error)

	// Save persists the project row, replaces its member set and inserts
	// boards that have not been persisted yet
	Save(project *domain.Project) error

	// ListByMember lists the projects a user belongs to
	ListByMember(userID uint64) ([]*domain.Project, error)
}

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	// FindByID returns the board with members, columns, tasks and comments loaded
	FindByID(id uint64) (*domain.Board, error)

	// FindMembers returns every member of the board
	FindMembers(boardID uint64) ([]domain.BoardMember, error)

	// IsWritable reports whether neither the board nor its project is archived
	IsWritable(boardID uint64) (bool, error)

	// Save persists the board and everything it owns. New columns, tasks and
	// comments receive their ids.
	Save(board *domain.Board) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// FindByID returns the task with its comments and its column attached.
	// The column carries no sibling tasks.
	FindByID(id uint64) (*domain.BoardTask, error)

	// Save persists the task and its comments
	Save(task *domain.BoardTask) error
}

// ActivityFilter selects the activity log of one container
type ActivityFilter struct {
	Target     domain.Target
	Pagination utils.PaginationParams
}

// ActivityLogRepository defines the interface for audit trail access
type ActivityLogRepository interface {
	// Create appends a log entry
	Create(log *domain.ActivityLog) error

	// List returns the newest entries first along with the total count
	List(filter ActivityFilter) ([]domain.ActivityLog, int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// Store groups the repositories that share one database handle.
type Store interface {
	Projects() ProjectRepository
	Boards() BoardRepository
	Tasks() TaskRepository
	Activities() ActivityLogRepository
	Users() UserRepository

	// Transaction runs fn against a store bound to a single transaction.
	// Returning an error rolls every write back.
	Transaction(fn func(tx Store) error) error
}
