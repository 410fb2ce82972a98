package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/utils"
)

func TestProjectService_CreateProject(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	owner := env.createUser(t, "owner")

	project, err := env.projects.CreateProject(CreateProjectInput{Name: "  Apollo  ", Description: "moon", OwnerID: owner})
	require.NoError(t, err)
	assert.NotZero(t, project.ID)
	assert.Equal(t, "Apollo", project.Name)
	assert.Empty(t, project.Events())

	types := env.activityTypes(t, domain.Target{Kind: domain.TargetProject, ID: project.ID})
	assert.Equal(t, []domain.ActivityType{domain.ActivityProjectCreated}, types)
}

func TestProjectService_CreateProjectRejectsBlankName(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	owner := env.createUser(t, "owner")

	_, err := env.projects.CreateProject(CreateProjectInput{Name: "   ", OwnerID: owner})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestProjectService_GetProjectRequiresMembership(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	owner := env.createUser(t, "owner")
	stranger := env.createUser(t, "stranger")

	project, err := env.projects.CreateProject(CreateProjectInput{Name: "Apollo", OwnerID: owner})
	require.NoError(t, err)

	_, err = env.projects.GetProject(project.ID, stranger)
	require.ErrorIs(t, err, ErrNotProjectMember)

	_, err = env.projects.GetProject(project.ID+100, owner)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_UpdateProject(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	owner := env.createUser(t, "owner")
	viewer := env.createUser(t, "viewer")

	project, err := env.projects.CreateProject(CreateProjectInput{Name: "Apollo", OwnerID: owner})
	require.NoError(t, err)
	_, err = env.projects.AddMember(project.ID, owner, viewer, domain.ProjectRoleViewer)
	require.NoError(t, err)

	_, err = env.projects.UpdateProject(project.ID, viewer, UpdateProjectInput{Name: ptr("Hijacked")})
	require.ErrorIs(t, err, ErrInsufficientRole)

	status := domain.ProjectStatusOnHold
	updated, err := env.projects.UpdateProject(project.ID, owner, UpdateProjectInput{
		Name:   ptr("Artemis"),
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Artemis", updated.Name)
	assert.Equal(t, domain.ProjectStatusOnHold, updated.Status)
	assert.False(t, updated.IsArchived)

	reloaded, err := env.projects.GetProject(project.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Artemis", reloaded.Name)

	logs, total, err := env.projects.ListActivities(project.ID, owner, utils.NewPaginationParams(1, 1))
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActivityProjectUpdated, logs[0].Activity.Type())
	assert.True(t, logs[0].Activity.NewValues()[domain.FieldName].Equal(domain.StringValue("Artemis")))
}

func TestProjectService_ArchiveProject(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	owner := env.createUser(t, "owner")
	contributor := env.createUser(t, "contributor")

	project, err := env.projects.CreateProject(CreateProjectInput{Name: "Apollo", OwnerID: owner})
	require.NoError(t, err)
	_, err = env.projects.AddMember(project.ID, owner, contributor, domain.ProjectRoleContributor)
	require.NoError(t, err)

	_, err = env.projects.ArchiveProject(project.ID, contributor)
	require.ErrorIs(t, err, domain.ErrForbidden)

	archived, err := env.projects.ArchiveProject(project.ID, owner)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)
}

func TestProjectService_Members(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	owner := env.createUser(t, "owner")
	alice := env.createUser(t, "alice")

	project, err := env.projects.CreateProject(CreateProjectInput{Name: "Apollo", OwnerID: owner})
	require.NoError(t, err)

	_, err = env.projects.AddMember(project.ID, owner, 9999, domain.ProjectRoleViewer)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.projects.AddMember(project.ID, owner, alice, domain.ProjectRoleViewer)
	require.NoError(t, err)

	_, err = env.projects.AddMember(project.ID, owner, alice, domain.ProjectRoleViewer)
	require.ErrorIs(t, err, domain.ErrRuleViolation)

	updated, err := env.projects.UpdateMember(project.ID, owner, alice, domain.ProjectRoleAdmin)
	require.NoError(t, err)
	role, _ := updated.MemberRole(alice)
	assert.Equal(t, domain.ProjectRoleAdmin, role)

	_, err = env.projects.UpdateMember(project.ID, owner, owner, domain.ProjectRoleViewer)
	require.ErrorIs(t, err, domain.ErrRuleViolation)

	projects, err := env.projects.ListProjects(alice)
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	removed, err := env.projects.RemoveMember(project.ID, owner, alice)
	require.NoError(t, err)
	assert.False(t, removed.IsMember(alice))

	types := env.activityTypes(t, domain.Target{Kind: domain.TargetProject, ID: project.ID})
	assert.Equal(t, []domain.ActivityType{
		domain.ActivityProjectMemberRemoved,
		domain.ActivityProjectMemberUpdated,
		domain.ActivityProjectMemberAdded,
		domain.ActivityProjectCreated,
	}, types)
}

func TestProjectService_CreateBoard(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	owner := env.createUser(t, "owner")
	viewer := env.createUser(t, "viewer")

	project, board := env.createBoard(t, owner)
	assert.NotZero(t, board.ID)
	assert.Equal(t, project.ID, board.ProjectID)
	require.Len(t, board.Columns(), 3)
	for _, c := range board.Columns() {
		assert.NotZero(t, c.ID)
	}

	types := env.activityTypes(t, domain.Target{Kind: domain.TargetBoard, ID: board.ID})
	assert.Equal(t, []domain.ActivityType{domain.ActivityBoardCreated}, types)

	_, err := env.projects.AddMember(project.ID, owner, viewer, domain.ProjectRoleViewer)
	require.NoError(t, err)
	_, err = env.projects.CreateBoard(project.ID, viewer, CreateBoardInput{Name: "Nope"})
	require.ErrorIs(t, err, ErrInsufficientRole)
}

func TestProjectService_RemoveMemberLeavesBoards(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")
	project, board := env.createBoard(t, owner)
	second, err := env.projects.CreateBoard(project.ID, owner, CreateBoardInput{Name: "Follow-up"})
	require.NoError(t, err)
	env.joinProject(t, project.ID, owner, member)

	_, err = env.boards.AddMember(board.ID, owner, member, domain.BoardRoleMember)
	require.NoError(t, err)

	_, err = env.projects.RemoveMember(project.ID, owner, member)
	require.NoError(t, err)

	got, err := env.boards.GetBoard(board.ID, owner)
	require.NoError(t, err)
	assert.False(t, got.IsMember(member))

	_, err = env.boards.CreateTask(board.ID, member, CreateTaskInput{ColumnID: board.Columns()[0].ID, Title: "Sneak in"})
	require.ErrorIs(t, err, ErrNotBoardMember)

	types := env.activityTypes(t, domain.Target{Kind: domain.TargetBoard, ID: board.ID})
	require.NotEmpty(t, types)
	assert.Equal(t, domain.ActivityBoardMemberRemoved, types[0])

	// The user never joined the second board, so its feed is untouched.
	types = env.activityTypes(t, domain.Target{Kind: domain.TargetBoard, ID: second.ID})
	assert.Equal(t, []domain.ActivityType{domain.ActivityBoardCreated}, types)
}
