package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	_, err := CreateComment(4, strings.Repeat("x", 301), 2)
	requireDomainError(t, err, ErrRuleViolation)
	assert.EqualError(t, err, "Comment content cannot be longer than 300 characters.")

	_, err = CreateComment(4, " ", 2)
	requireDomainError(t, err, ErrRuleViolation)

	_, err = CreateComment(0, "hi", 2)
	de := requireDomainError(t, err, ErrInvalidArgument)
	assert.Equal(t, "taskId", de.Param)

	c, err := CreateComment(4, strings.Repeat("x", 300), 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), c.UserID)
	assert.False(t, c.IsEdited)
}

func TestCommentUpdateContent(t *testing.T) {
	pinClock(t)
	c, err := CreateComment(4, "first", 2)
	require.NoError(t, err)

	require.NoError(t, c.UpdateContent("first", 2))
	assert.Empty(t, c.Events())
	assert.False(t, c.IsEdited)

	require.NoError(t, c.UpdateContent("second", 2))
	assert.True(t, c.IsEdited)
	require.NotNil(t, c.EditedAt)
	assert.Equal(t, fixedNow, *c.EditedAt)

	events := c.Events()
	require.Len(t, events, 1)
	updated := events[0].(CommentUpdatedEvent)
	assert.Equal(t, "first", updated.OldContent)
	assert.Equal(t, "second", updated.NewContent)
}

func TestCommentDeleteRestore(t *testing.T) {
	c, err := CreateComment(4, "hello", 2)
	require.NoError(t, err)

	require.NoError(t, c.Restore(2))
	assert.Empty(t, c.Events())

	require.NoError(t, c.Delete(2))
	require.NoError(t, c.Delete(2))
	assert.True(t, c.IsDeleted)
	require.Len(t, c.Events(), 1)
	assert.IsType(t, CommentDeletedEvent{}, c.Events()[0])

	err = c.UpdateContent("edited", 2)
	requireDomainError(t, err, ErrRuleViolation)
	assert.EqualError(t, err, "Cannot edit a deleted comment.")
	assert.Equal(t, "hello", c.Content)

	require.NoError(t, c.Restore(2))
	assert.False(t, c.IsDeleted)
	require.Len(t, c.Events(), 2)
	assert.IsType(t, CommentRestoredEvent{}, c.Events()[1])
}
