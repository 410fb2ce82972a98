package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/database"
	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"github.com/yukikurage/taskboard-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type serviceTestEnv struct {
	db       *gorm.DB
	store    repository.Store
	projects *ProjectService
	boards   *BoardService
	tasks    *TaskService
	comments *CommentService
}

func setupServiceTestEnv(t *testing.T, suggester TaskSuggester) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.MigrateDatabase(db))

	store := repository.NewStore(db)
	return serviceTestEnv{
		db:       db,
		store:    store,
		projects: NewProjectService(store),
		boards:   NewBoardService(store, suggester),
		tasks:    NewTaskService(store),
		comments: NewCommentService(store),
	}
}

func (env serviceTestEnv) createUser(t *testing.T, username string) uint64 {
	t.Helper()
	user := &models.User{
		Account: models.Account{Username: username, PasswordHash: "hashed"},
		Profile: models.Profile{DisplayName: username},
	}
	require.NoError(t, env.db.Create(user).Error)
	return user.ID
}

// createBoard creates a project owned by ownerID with one board.
func (env serviceTestEnv) createBoard(t *testing.T, ownerID uint64) (*domain.Project, *domain.Board) {
	t.Helper()
	project, err := env.projects.CreateProject(CreateProjectInput{Name: "Apollo", OwnerID: ownerID})
	require.NoError(t, err)
	board, err := env.projects.CreateBoard(project.ID, ownerID, CreateBoardInput{Name: "Launch"})
	require.NoError(t, err)
	return project, board
}

// joinProject adds each user to the project as a Contributor.
func (env serviceTestEnv) joinProject(t *testing.T, projectID, ownerID uint64, userIDs ...uint64) {
	t.Helper()
	for _, id := range userIDs {
		_, err := env.projects.AddMember(projectID, ownerID, id, domain.ProjectRoleContributor)
		require.NoError(t, err)
	}
}

func (env serviceTestEnv) activityTypes(t *testing.T, target domain.Target) []domain.ActivityType {
	t.Helper()
	logs, _, err := env.store.Activities().List(repository.ActivityFilter{
		Target:     target,
		Pagination: utils.NewPaginationParams(1, 100),
	})
	require.NoError(t, err)
	types := make([]domain.ActivityType, len(logs))
	for i, l := range logs {
		types[i] = l.Activity.Type()
	}
	return types
}

type fakeSuggester struct {
	tasks []SuggestedTask
	err   error
	calls int
}

func (f *fakeSuggester) SuggestTasks(_ context.Context, _ string) ([]SuggestedTask, error) {
	f.calls++
	return f.tasks, f.err
}

func ptr[T any](v T) *T {
	return &v
}
