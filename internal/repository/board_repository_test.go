package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/models"
)

func createTestBoard(t *testing.T, store Store, ownerID uint64) *domain.Board {
	t.Helper()
	project, err := domain.CreateProject("Apollo", "", ownerID)
	require.NoError(t, err)
	require.NoError(t, store.Projects().Create(project))
	board, err := project.CreateBoard("Launch", "", ownerID)
	require.NoError(t, err)
	require.NoError(t, store.Projects().Save(project))
	return board
}

func TestBoardRepository_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner")
	store := NewStore(db)
	board := createTestBoard(t, store, owner.ID)

	found, err := store.Boards().FindByID(board.ID)
	require.NoError(t, err)

	columns := found.Columns()
	require.Len(t, columns, 3)
	for i, name := range domain.DefaultColumnNames {
		assert.Equal(t, name, columns[i].Name)
		assert.Equal(t, i+1, columns[i].Order)
		assert.Equal(t, board.ID, columns[i].BoardID)
	}
	role, ok := found.MemberRole(owner.ID)
	require.True(t, ok)
	assert.Equal(t, domain.BoardRoleAdmin, role)
}

func TestBoardRepository_IsWritable(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner")
	store := NewStore(db)
	board := createTestBoard(t, store, owner.ID)

	writable, err := store.Boards().IsWritable(board.ID)
	require.NoError(t, err)
	assert.True(t, writable)

	require.NoError(t, db.Model(&models.Board{}).Where("id = ?", board.ID).Update("is_archived", true).Error)
	writable, err = store.Boards().IsWritable(board.ID)
	require.NoError(t, err)
	assert.False(t, writable)

	require.NoError(t, db.Model(&models.Board{}).Where("id = ?", board.ID).Update("is_archived", false).Error)
	require.NoError(t, db.Model(&models.Project{}).Where("id = ?", board.ProjectID).Update("is_archived", true).Error)
	writable, err = store.Boards().IsWritable(board.ID)
	require.NoError(t, err)
	assert.False(t, writable)

	writable, err = store.Boards().IsWritable(board.ID + 100)
	require.NoError(t, err)
	assert.False(t, writable)
}

func TestBoardRepository_SavePersistsTasksAndMoves(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner")
	store := NewStore(db)
	board := createTestBoard(t, store, owner.ID)

	todo := board.Columns()[0]
	done := board.Columns()[2]
	require.NoError(t, done.SetWipLimit(ptr(2)))

	task, err := domain.CreateBoardTask(domain.NewBoardTask{Title: "Ship", ColumnID: todo.ID, CreatedBy: owner.ID})
	require.NoError(t, err)
	require.NoError(t, board.AddTask(todo.ID, task))
	_, err = board.AddColumn("Review", 4, owner.ID)
	require.NoError(t, err)
	require.NoError(t, store.Boards().Save(board))
	require.NotZero(t, task.ID)

	loaded, err := store.Boards().FindByID(board.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Columns(), 4)
	assert.Equal(t, "Review", loaded.Columns()[3].Name)

	loadedDone, err := loaded.Column(done.ID)
	require.NoError(t, err)
	require.NotNil(t, loadedDone.WipLimit)
	assert.Equal(t, 2, *loadedDone.WipLimit)

	require.NoError(t, loaded.MoveTask(task.ID, done.ID, owner.ID))
	require.NoError(t, store.Boards().Save(loaded))

	reloaded, err := store.Boards().FindByID(board.ID)
	require.NoError(t, err)
	reloadedDone, err := reloaded.Column(done.ID)
	require.NoError(t, err)
	assert.True(t, reloadedDone.HasTask(task.ID))
	reloadedTodo, err := reloaded.Column(todo.ID)
	require.NoError(t, err)
	assert.Zero(t, reloadedTodo.TaskCount())
}

func TestBoardRepository_MembersAreSynced(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner")
	alice := createTestUser(t, db, "alice")
	store := NewStore(db)
	board := createTestBoard(t, store, owner.ID)

	require.NoError(t, board.AddMember(&domain.User{ID: alice.ID}, domain.BoardRoleMember, owner.ID))
	require.NoError(t, store.Boards().Save(board))

	members, err := store.Boards().FindMembers(board.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	require.NoError(t, board.RemoveMember(alice.ID, owner.ID))
	require.NoError(t, store.Boards().Save(board))

	members, err = store.Boards().FindMembers(board.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, owner.ID, members[0].UserID)
}

func TestTaskRepository_FindAttachesColumn(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner")
	store := NewStore(db)
	board := createTestBoard(t, store, owner.ID)
	column := board.Columns()[1]

	task, err := domain.CreateBoardTask(domain.NewBoardTask{Title: "Ship", ColumnID: column.ID, CreatedBy: owner.ID})
	require.NoError(t, err)
	require.NoError(t, board.AddTask(column.ID, task))
	require.NoError(t, store.Boards().Save(board))

	found, err := store.Tasks().FindByID(task.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Column())
	assert.Equal(t, board.ID, found.Column().BoardID)

	comment, err := found.AddComment("first!", owner.ID)
	require.NoError(t, err)
	require.NoError(t, store.Tasks().Save(found))
	require.NotZero(t, comment.ID)

	require.NoError(t, comment.UpdateContent("second", owner.ID))
	require.NoError(t, store.Tasks().Save(found))

	again, err := store.Tasks().FindByID(task.ID)
	require.NoError(t, err)
	require.Len(t, again.Comments(), 1)
	assert.Equal(t, "second", again.Comments()[0].Content)
	assert.True(t, again.Comments()[0].IsEdited)
}

func TestStore_TransactionRollsBack(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner")
	store := NewStore(db)

	var createdID uint64
	err := store.Transaction(func(tx Store) error {
		project, err := domain.CreateProject("Doomed", "", owner.ID)
		require.NoError(t, err)
		require.NoError(t, tx.Projects().Create(project))
		createdID = project.ID
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = store.Projects().FindByID(createdID)
	require.Error(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
