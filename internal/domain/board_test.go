package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBoard restores a board with two columns (ids 1 and 2), an admin (1)
// and a plain member (2).
func newTestBoard(t *testing.T) *Board {
	t.Helper()
	todo := RestoreColumn(Column{AuditableEntity: AuditableEntity{ID: 1}, Name: "To Do", Order: 1, BoardID: 5}, nil)
	done := RestoreColumn(Column{AuditableEntity: AuditableEntity{ID: 2}, Name: "Done", Order: 2, BoardID: 5}, nil)
	return RestoreBoard(
		Board{AuditableEntity: AuditableEntity{ID: 5}, Name: "Roadmap", ProjectID: 10},
		[]*Column{todo, done},
		[]BoardMember{
			{BoardID: 5, UserID: 1, Role: BoardRoleAdmin},
			{BoardID: 5, UserID: 2, Role: BoardRoleMember},
		},
	)
}

func TestCreateBoard_SeedsDefaultColumns(t *testing.T) {
	pinClock(t)

	b, err := CreateBoard("Roadmap", "Q3", 10, 7)
	require.NoError(t, err)

	columns := b.Columns()
	require.Len(t, columns, 3)
	for i, want := range []string{"To Do", "In Progress", "Done"} {
		assert.Equal(t, want, columns[i].Name)
		assert.Equal(t, i+1, columns[i].Order)
		assert.Equal(t, uint64(7), columns[i].CreatedBy)
		assert.Equal(t, fixedNow, columns[i].CreatedAt)
	}

	role, ok := b.MemberRole(7)
	require.True(t, ok)
	assert.Equal(t, BoardRoleAdmin, role)

	events := b.Events()
	require.Len(t, events, 1)
	assert.IsType(t, BoardCreatedEvent{}, events[0])
}

func TestCreateBoard_Validation(t *testing.T) {
	_, err := CreateBoard("  ", "", 10, 1)
	de := requireDomainError(t, err, ErrInvalidArgument)
	assert.Equal(t, "name", de.Param)

	_, err = CreateBoard("Roadmap", "", 0, 1)
	de = requireDomainError(t, err, ErrNullArgument)
	assert.Equal(t, "projectId", de.Param)
}

func TestBoardUpdateDetails(t *testing.T) {
	b := newTestBoard(t)

	require.NoError(t, b.UpdateDetails("Roadmap", "", 1))
	assert.Empty(t, b.Events())

	require.NoError(t, b.UpdateDetails("Roadmap", "Now with dates", 1))
	events := b.Events()
	require.Len(t, events, 1)
	updated := events[0].(BoardUpdatedEvent)
	assert.Equal(t, []Field{FieldDescription}, updated.NewValues.Fields())

	requireDomainError(t, b.UpdateDetails("", "x", 1), ErrInvalidArgument)
	assert.Equal(t, "Roadmap", b.Name)
}

func TestBoardArchiveRestore(t *testing.T) {
	t.Run("member without admin role is forbidden", func(t *testing.T) {
		b := newTestBoard(t)
		requireDomainError(t, b.Archive(2), ErrForbidden)
		requireDomainError(t, b.Archive(99), ErrForbidden)
		assert.False(t, b.IsArchived)
	})

	t.Run("archive is idempotent", func(t *testing.T) {
		b := newTestBoard(t)
		require.NoError(t, b.Archive(1))
		require.NoError(t, b.Archive(1))

		assert.True(t, b.IsArchived)
		events := b.Events()
		require.Len(t, events, 1)
		assert.IsType(t, BoardArchivedEvent{}, events[0])
	})

	t.Run("restore", func(t *testing.T) {
		b := newTestBoard(t)
		require.NoError(t, b.Restore(1))
		assert.Empty(t, b.Events())

		require.NoError(t, b.Archive(1))
		require.NoError(t, b.Restore(1))
		assert.False(t, b.IsArchived)
		events := b.Events()
		require.Len(t, events, 2)
		assert.IsType(t, BoardRestoredEvent{}, events[1])

		requireDomainError(t, b.Restore(2), ErrForbidden)
	})
}

func TestBoardAddColumn(t *testing.T) {
	b := newTestBoard(t)

	_, err := b.AddColumn("to do", 3, 1)
	requireDomainError(t, err, ErrRuleViolation)

	_, err = b.AddColumn(" ", 3, 1)
	requireDomainError(t, err, ErrRuleViolation)

	_, err = b.AddColumn("Review", 0, 1)
	requireDomainError(t, err, ErrRuleViolation)
	assert.Empty(t, b.Events())

	c, err := b.AddColumn("Review", 3, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), c.BoardID)
	assert.Len(t, b.Columns(), 3)

	events := b.Events()
	require.Len(t, events, 1)
	added := events[0].(ColumnAddedEvent)
	assert.Equal(t, "Review", added.ColumnName)
}

func TestBoardMembers(t *testing.T) {
	b := newTestBoard(t)

	err := b.AddMember(nil, BoardRoleMember, 1)
	de := requireDomainError(t, err, ErrNullArgument)
	assert.Equal(t, "user", de.Param)

	requireDomainError(t, b.AddMember(&User{ID: 2}, BoardRoleViewer, 1), ErrRuleViolation)

	require.NoError(t, b.AddMember(&User{ID: 3}, BoardRoleViewer, 1))
	assert.True(t, b.IsMember(3))

	requireDomainError(t, b.RemoveMember(42, 1), ErrNotFound)

	require.NoError(t, b.RemoveMember(3, 1))
	assert.False(t, b.IsMember(3))

	events := b.Events()
	require.Len(t, events, 2)
	assert.IsType(t, BoardMemberAddedEvent{}, events[0])
	assert.IsType(t, BoardMemberRemovedEvent{}, events[1])
}

func TestBoardMoveTask(t *testing.T) {
	b := newTestBoard(t)
	todo, _ := b.Column(1)
	done, _ := b.Column(2)
	require.NoError(t, done.SetWipLimit(ptr(1)))

	first := RestoreTask(BoardTask{AuditableEntity: AuditableEntity{ID: 11}, Title: "a", ColumnID: 1, Priority: PriorityLow}, nil)
	second := RestoreTask(BoardTask{AuditableEntity: AuditableEntity{ID: 12}, Title: "b", ColumnID: 1, Priority: PriorityLow}, nil)
	require.NoError(t, b.AddTask(1, first))
	require.NoError(t, b.AddTask(1, second))

	require.NoError(t, b.MoveTask(11, 2, 1))
	assert.False(t, todo.HasTask(11))
	assert.True(t, done.HasTask(11))
	assert.Equal(t, uint64(2), first.ColumnID)
	assert.Same(t, done, first.Column())
	require.Len(t, first.Events(), 1)
	assert.IsType(t, TaskMovedEvent{}, first.Events()[0])

	err := b.MoveTask(12, 2, 1)
	requireDomainError(t, err, ErrRuleViolation)
	assert.True(t, todo.HasTask(12))
	assert.Equal(t, uint64(1), second.ColumnID)
	assert.Empty(t, second.Events())

	requireDomainError(t, b.MoveTask(99, 2, 1), ErrNotFound)
	requireDomainError(t, b.MoveTask(12, 9, 1), ErrNotFound)
}
