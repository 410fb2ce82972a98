package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testActivity(t *testing.T) *Activity {
	t.Helper()
	a, err := NewActivity(ActivityTaskMoved, "Task moved.", 3, fixedNow, Changes{FieldColumnID: IDValue(1)}, Changes{FieldColumnID: IDValue(2)})
	require.NoError(t, err)
	return a
}

func TestNewActivity(t *testing.T) {
	pinClock(t)

	_, err := NewActivity("Teleported", "x", 1, time.Time{}, nil, nil)
	de := requireDomainError(t, err, ErrInvalidArgument)
	assert.Equal(t, "type", de.Param)

	_, err = NewActivity(ActivityTaskUpdated, " ", 1, time.Time{}, nil, nil)
	requireDomainError(t, err, ErrInvalidArgument)

	_, err = NewActivity(ActivityTaskUpdated, "x", 0, time.Time{}, nil, nil)
	requireDomainError(t, err, ErrInvalidArgument)

	oldValues := Changes{FieldTitle: StringValue("a")}
	a, err := NewActivity(ActivityTaskUpdated, "Task updated.", 1, time.Time{}, oldValues, nil)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, a.Timestamp())

	oldValues[FieldTitle] = StringValue("mutated")
	assert.Equal(t, "a", a.OldValues()[FieldTitle].Str())
}

func TestCreateActivityLog(t *testing.T) {
	_, err := CreateActivityLogForTask(nil, 5)
	de := requireDomainError(t, err, ErrNullArgument)
	assert.Equal(t, "activity", de.Param)

	_, err = CreateActivityLogForBoard(testActivity(t), 0)
	de = requireDomainError(t, err, ErrInvalidArgument)
	assert.Equal(t, "boardId", de.Param)

	_, err = CreateActivityLogForProject(testActivity(t), 0)
	de = requireDomainError(t, err, ErrInvalidArgument)
	assert.Equal(t, "projectId", de.Param)

	log, err := CreateActivityLogForTask(testActivity(t), 5)
	require.NoError(t, err)
	require.NotNil(t, log.TaskID)
	assert.Nil(t, log.ProjectID)
	assert.Nil(t, log.BoardID)
	assert.Equal(t, Target{Kind: TargetTask, ID: 5}, log.Target())

	log, err = CreateActivityLog(testActivity(t), Target{Kind: TargetBoard, ID: 8})
	require.NoError(t, err)
	assert.Nil(t, log.TaskID)
	assert.Equal(t, uint64(8), *log.BoardID)

	_, err = CreateActivityLog(testActivity(t), Target{Kind: "column", ID: 8})
	requireDomainError(t, err, ErrInvalidArgument)
}

func TestChangesJSONKeepsKinds(t *testing.T) {
	due := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	in := Changes{
		FieldPosition:   IntValue(3),
		FieldDueDate:    TimeValue(due),
		FieldAssigneeID: NullValue(),
		FieldIsArchived: BoolValue(true),
		FieldTitle:      StringValue("7"),
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out Changes
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, len(in))
	for field, want := range in {
		assert.Truef(t, want.Equal(out[field]), "field %s: want %s, got %s", field, want, out[field])
		assert.Equal(t, want.Kind(), out[field].Kind())
	}
	assert.Equal(t, int64(3), out[FieldPosition].Int())
	assert.True(t, due.Equal(out[FieldDueDate].Time()))

	var bad Value
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"float","value":1.5}`), &bad))
}

func TestEventActivity(t *testing.T) {
	pinClock(t)
	task, err := CreateBoardTask(NewBoardTask{Title: "Ship it", ColumnID: 2, CreatedBy: 4})
	require.NoError(t, err)

	events := task.DrainEvents()
	require.Len(t, events, 1)
	assert.Empty(t, task.Events())

	e := events[0]
	assert.Equal(t, Target{Kind: TargetTask, ID: 0}, e.Target())
	assert.Equal(t, uint64(4), e.Actor())
	assert.NotEqual(t, uuid.Nil, e.EventID())

	a, err := e.Activity()
	require.NoError(t, err)
	assert.Equal(t, ActivityTaskCreated, a.Type())
	assert.Equal(t, uint64(4), a.UserID())
	assert.Equal(t, fixedNow, a.Timestamp())
	assert.Equal(t, "Ship it", a.NewValues()[FieldTitle].Str())
	assert.Empty(t, a.OldValues())
}
