package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestProject returns a persisted-looking project with an owner (1), an
// admin (2) and a viewer (3), with no pending events.
func newTestProject(t *testing.T) *Project {
	t.Helper()
	p, err := CreateProject("Apollo", "moon shot", 1)
	require.NoError(t, err)
	p.ID = 10
	require.NoError(t, p.AddMember(2, ProjectRoleAdmin, 1))
	require.NoError(t, p.AddMember(3, ProjectRoleViewer, 1))
	p.ClearDomainEvents()
	return p
}

func TestCreateProject_SeedsOwnerMembership(t *testing.T) {
	pinClock(t)

	p, err := CreateProject("P", "d", 5)
	require.NoError(t, err)

	members := p.Members()
	require.Len(t, members, 1)
	assert.Equal(t, uint64(5), members[0].UserID)
	assert.Equal(t, ProjectRoleOwner, members[0].Role)
	assert.Equal(t, ProjectStatusActive, p.Status)
	assert.Equal(t, fixedNow, p.CreatedAt)
	assert.Equal(t, uint64(5), p.CreatedBy)

	events := p.Events()
	require.Len(t, events, 1)
	created, ok := events[0].(ProjectCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, uint64(5), created.OwnerID)
	assert.Equal(t, uint64(5), created.Actor())
}

func TestCreateProject_Validation(t *testing.T) {
	tests := []struct {
		name    string
		project string
		owner   uint64
		param   string
	}{
		{name: "blank name", project: "   ", owner: 1, param: "name"},
		{name: "zero owner", project: "P", owner: 0, param: "ownerId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateProject(tt.project, "", tt.owner)
			de := requireDomainError(t, err, ErrInvalidArgument)
			assert.Equal(t, tt.param, de.Param)
		})
	}
}

func TestProjectUpdate_NoChangeRaisesNothing(t *testing.T) {
	p := newTestProject(t)
	lastModified := p.LastModifiedAt

	err := p.Update(UpdateProject{
		Name:        ptr("Apollo"),
		Description: ptr("moon shot"),
		Status:      ptr(ProjectStatusActive),
	}, 1)
	require.NoError(t, err)
	assert.Empty(t, p.Events())
	assert.Same(t, lastModified, p.LastModifiedAt)
}

func TestProjectUpdate_SparseChangeSet(t *testing.T) {
	p := newTestProject(t)

	err := p.Update(UpdateProject{
		Name:        ptr("Artemis"),
		Description: ptr("moon shot"),
		Status:      ptr(ProjectStatusOnHold),
	}, 2)
	require.NoError(t, err)

	assert.Equal(t, "Artemis", p.Name)
	assert.Equal(t, ProjectStatusOnHold, p.Status)
	require.NotNil(t, p.LastModifiedBy)
	assert.Equal(t, uint64(2), *p.LastModifiedBy)

	events := p.Events()
	require.Len(t, events, 1)
	updated := events[0].(ProjectUpdatedEvent)
	assert.Equal(t, []Field{FieldName, FieldStatus}, updated.NewValues.Fields())
	assert.Equal(t, []Field{FieldName, FieldStatus}, updated.OldValues.Fields())
	assert.Equal(t, "Apollo", updated.OldValues[FieldName].Str())
	assert.Equal(t, "OnHold", updated.NewValues[FieldStatus].Str())
}

func TestProjectUpdate_RejectsBlankNameWithoutMutating(t *testing.T) {
	p := newTestProject(t)

	err := p.Update(UpdateProject{Name: ptr(" "), Status: ptr(ProjectStatusOnHold)}, 1)
	requireDomainError(t, err, ErrInvalidArgument)
	assert.Equal(t, ProjectStatusActive, p.Status)
	assert.Empty(t, p.Events())
}

func TestProjectUpdate_ArchivedFlag(t *testing.T) {
	t.Run("archives an active project", func(t *testing.T) {
		p := newTestProject(t)
		require.NoError(t, p.Update(UpdateProject{IsArchived: true}, 1))

		assert.True(t, p.IsArchived)
		events := p.Events()
		require.Len(t, events, 1)
		updated := events[0].(ProjectUpdatedEvent)
		assert.Equal(t, []Field{FieldIsArchived}, updated.NewValues.Fields())
	})

	t.Run("rejects archiving an inactive project", func(t *testing.T) {
		p := newTestProject(t)
		require.NoError(t, p.Update(UpdateProject{Status: ptr(ProjectStatusOnHold)}, 1))
		p.ClearDomainEvents()

		err := p.Update(UpdateProject{Name: ptr("Renamed"), IsArchived: true}, 1)
		requireDomainError(t, err, ErrRuleViolation)
		assert.False(t, p.IsArchived)
		assert.Equal(t, "Apollo", p.Name)
		assert.Empty(t, p.Events())
	})

	t.Run("rejects archiving while leaving active status", func(t *testing.T) {
		p := newTestProject(t)

		err := p.Update(UpdateProject{Status: ptr(ProjectStatusCompleted), IsArchived: true}, 1)
		requireDomainError(t, err, ErrRuleViolation)
		assert.False(t, p.IsArchived)
		assert.Equal(t, ProjectStatusActive, p.Status)
	})

	t.Run("rejects unarchiving", func(t *testing.T) {
		p := newTestProject(t)
		require.NoError(t, p.Archive(1))
		p.ClearDomainEvents()

		err := p.Update(UpdateProject{IsArchived: false}, 1)
		requireDomainError(t, err, ErrRuleViolation)
		assert.True(t, p.IsArchived)
		assert.Empty(t, p.Events())
	})

	t.Run("archived project still accepts other changes", func(t *testing.T) {
		p := newTestProject(t)
		require.NoError(t, p.Archive(1))
		p.ClearDomainEvents()

		require.NoError(t, p.Update(UpdateProject{Description: ptr("landed"), IsArchived: true}, 1))
		assert.Equal(t, "landed", p.Description)
		assert.True(t, p.IsArchived)
	})
}

func TestProjectArchive(t *testing.T) {
	t.Run("viewer is forbidden", func(t *testing.T) {
		p := newTestProject(t)
		requireDomainError(t, p.Archive(3), ErrForbidden)
		assert.False(t, p.IsArchived)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		p := newTestProject(t)
		requireDomainError(t, p.Archive(99), ErrForbidden)
	})

	t.Run("admin archives once", func(t *testing.T) {
		p := newTestProject(t)
		require.NoError(t, p.Archive(2))
		require.NoError(t, p.Archive(2))

		assert.True(t, p.IsArchived)
		events := p.Events()
		require.Len(t, events, 1)
		assert.IsType(t, ProjectArchivedEvent{}, events[0])
	})

	t.Run("inactive project is rejected", func(t *testing.T) {
		p := newTestProject(t)
		require.NoError(t, p.Update(UpdateProject{Status: ptr(ProjectStatusOnHold)}, 1))
		p.ClearDomainEvents()

		requireDomainError(t, p.Archive(1), ErrRuleViolation)
		assert.False(t, p.IsArchived)
		assert.Empty(t, p.Events())
	})
}

func TestProjectAddMember(t *testing.T) {
	p := newTestProject(t)

	requireDomainError(t, p.AddMember(4, ProjectRoleContributor, 3), ErrForbidden)
	requireDomainError(t, p.AddMember(2, ProjectRoleContributor, 1), ErrRuleViolation)
	requireDomainError(t, p.AddMember(4, ProjectRole("Intern"), 1), ErrInvalidArgument)
	assert.Empty(t, p.Events())

	require.NoError(t, p.AddMember(4, ProjectRoleContributor, 2))
	role, ok := p.MemberRole(4)
	require.True(t, ok)
	assert.Equal(t, ProjectRoleContributor, role)

	events := p.Events()
	require.Len(t, events, 1)
	added := events[0].(ProjectMemberAddedEvent)
	assert.Equal(t, uint64(4), added.UserID)
	assert.Equal(t, uint64(10), added.Target().ID)
}

func TestProjectRemoveMember(t *testing.T) {
	p := newTestProject(t)

	require.NoError(t, p.RemoveMember(42, 1))
	assert.Empty(t, p.Events())

	requireDomainError(t, p.RemoveMember(2, 3), ErrForbidden)

	require.NoError(t, p.RemoveMember(3, 2))
	assert.False(t, p.IsMember(3))
	events := p.Events()
	require.Len(t, events, 1)
	removed := events[0].(ProjectMemberRemovedEvent)
	assert.Equal(t, ProjectRoleViewer, removed.Role)
}

func TestProjectOwnerRoleGuards(t *testing.T) {
	p := newTestProject(t)

	requireDomainError(t, p.AddMember(4, ProjectRoleOwner, 2), ErrForbidden)
	requireDomainError(t, p.RemoveMember(1, 2), ErrForbidden)
	assert.True(t, p.IsMember(1))
	assert.False(t, p.IsMember(4))
	assert.Empty(t, p.Events())

	require.NoError(t, p.AddMember(4, ProjectRoleOwner, 1))
	require.NoError(t, p.RemoveMember(4, 1))
	assert.False(t, p.IsMember(4))
}

func TestProjectUpdateMember(t *testing.T) {
	t.Run("owner cannot change own role", func(t *testing.T) {
		p := newTestProject(t)
		requireDomainError(t, p.UpdateMember(1, ProjectRoleAdmin, 1), ErrRuleViolation)
		role, _ := p.MemberRole(1)
		assert.Equal(t, ProjectRoleOwner, role)
	})

	t.Run("viewer cannot update", func(t *testing.T) {
		p := newTestProject(t)
		requireDomainError(t, p.UpdateMember(2, ProjectRoleViewer, 3), ErrForbidden)
	})

	t.Run("unknown member and unchanged role are no-ops", func(t *testing.T) {
		p := newTestProject(t)
		require.NoError(t, p.UpdateMember(77, ProjectRoleAdmin, 1))
		require.NoError(t, p.UpdateMember(3, ProjectRoleViewer, 1))
		assert.Empty(t, p.Events())
	})

	t.Run("admin cannot grant the owner role", func(t *testing.T) {
		p := newTestProject(t)
		requireDomainError(t, p.UpdateMember(2, ProjectRoleOwner, 2), ErrForbidden)
		requireDomainError(t, p.UpdateMember(3, ProjectRoleOwner, 2), ErrForbidden)

		role, _ := p.MemberRole(2)
		assert.Equal(t, ProjectRoleAdmin, role)
		assert.Empty(t, p.Events())
	})

	t.Run("admin cannot demote the owner", func(t *testing.T) {
		p := newTestProject(t)
		requireDomainError(t, p.UpdateMember(1, ProjectRoleViewer, 2), ErrForbidden)

		role, _ := p.MemberRole(1)
		assert.Equal(t, ProjectRoleOwner, role)
		assert.Empty(t, p.Events())
	})

	t.Run("owner may hand out the owner role", func(t *testing.T) {
		p := newTestProject(t)
		require.NoError(t, p.UpdateMember(2, ProjectRoleOwner, 1))

		role, _ := p.MemberRole(2)
		assert.Equal(t, ProjectRoleOwner, role)
	})

	t.Run("admin promotes viewer", func(t *testing.T) {
		p := newTestProject(t)
		require.NoError(t, p.UpdateMember(3, ProjectRoleContributor, 2))

		events := p.Events()
		require.Len(t, events, 1)
		updated := events[0].(ProjectMemberUpdatedEvent)
		assert.Equal(t, ProjectRoleViewer, updated.OldRole)
		assert.Equal(t, ProjectRoleContributor, updated.NewRole)

		activity, err := updated.Activity()
		require.NoError(t, err)
		assert.Equal(t, []Field{FieldRole}, activity.NewValues().Fields())
	})
}

func TestProjectCreateBoard_RaisesSingleEventOnProject(t *testing.T) {
	p := newTestProject(t)

	b, err := p.CreateBoard("Sprint 1", "", 2)
	require.NoError(t, err)

	assert.Equal(t, uint64(10), b.ProjectID)
	assert.Len(t, p.Boards(), 1)
	assert.Empty(t, b.Events())

	events := p.Events()
	require.Len(t, events, 1)
	created := events[0].(BoardCreatedEvent)
	assert.Equal(t, "Sprint 1", created.Name)
	assert.Equal(t, TargetBoard, created.Target().Kind)
}

func TestDrainEvents_EmptiesBuffer(t *testing.T) {
	p, err := CreateProject("P", "", 1)
	require.NoError(t, err)

	drained := p.DrainEvents()
	require.Len(t, drained, 1)
	assert.Empty(t, p.Events())
	assert.Empty(t, p.DrainEvents())
}
