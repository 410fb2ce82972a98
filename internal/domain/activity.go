package domain

import (
	"strings"
	"time"
)

// ActivityType enumerates the business events recorded in the audit trail.
type ActivityType string

const (
	ActivityProjectCreated       ActivityType = "ProjectCreated"
	ActivityProjectUpdated       ActivityType = "ProjectUpdated"
	ActivityProjectArchived      ActivityType = "ProjectArchived"
	ActivityProjectMemberAdded   ActivityType = "ProjectMemberAdded"
	ActivityProjectMemberRemoved ActivityType = "ProjectMemberRemoved"
	ActivityProjectMemberUpdated ActivityType = "ProjectMemberUpdated"
	ActivityBoardCreated         ActivityType = "BoardCreated"
	ActivityBoardUpdated         ActivityType = "BoardUpdated"
	ActivityBoardArchived        ActivityType = "BoardArchived"
	ActivityBoardRestored        ActivityType = "BoardRestored"
	ActivityBoardMemberAdded     ActivityType = "BoardMemberAdded"
	ActivityBoardMemberRemoved   ActivityType = "BoardMemberRemoved"
	ActivityColumnAdded          ActivityType = "ColumnAdded"
	ActivityTaskCreated          ActivityType = "TaskCreated"
	ActivityTaskUpdated          ActivityType = "TaskUpdated"
	ActivityTaskMoved            ActivityType = "TaskMoved"
	ActivityTaskAssigned         ActivityType = "TaskAssigned"
	ActivityTaskCommented        ActivityType = "TaskCommented"
	ActivityCommentUpdated       ActivityType = "CommentUpdated"
	ActivityCommentDeleted       ActivityType = "CommentDeleted"
	ActivityCommentRestored      ActivityType = "CommentRestored"
)

// IsValid reports whether t belongs to the closed set of activity types.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityProjectCreated, ActivityProjectUpdated, ActivityProjectArchived,
		ActivityProjectMemberAdded, ActivityProjectMemberRemoved, ActivityProjectMemberUpdated,
		ActivityBoardCreated, ActivityBoardUpdated, ActivityBoardArchived, ActivityBoardRestored,
		ActivityBoardMemberAdded, ActivityBoardMemberRemoved, ActivityColumnAdded,
		ActivityTaskCreated, ActivityTaskUpdated, ActivityTaskMoved, ActivityTaskAssigned,
		ActivityTaskCommented, ActivityCommentUpdated, ActivityCommentDeleted, ActivityCommentRestored:
		return true
	}
	return false
}

// Activity is an immutable audit record of one business event.
type Activity struct {
	activityType ActivityType
	description  string
	userID       uint64
	timestamp    time.Time
	oldValues    Changes
	newValues    Changes
}

// NewActivity validates and builds an Activity. The value maps are copied.
func NewActivity(activityType ActivityType, description string, userID uint64, timestamp time.Time, oldValues, newValues Changes) (*Activity, error) {
	if !activityType.IsValid() {
		return nil, invalidArgument("type", "Activity type is not recognized.")
	}
	if strings.TrimSpace(description) == "" {
		return nil, invalidArgument("description", "Activity description cannot be empty.")
	}
	if userID == 0 {
		return nil, invalidArgument("userId", "Activity actor id must be a positive integer.")
	}
	if timestamp.IsZero() {
		timestamp = now()
	}
	return &Activity{
		activityType: activityType,
		description:  description,
		userID:       userID,
		timestamp:    timestamp.UTC(),
		oldValues:    oldValues.Clone(),
		newValues:    newValues.Clone(),
	}, nil
}

func (a Activity) Type() ActivityType { return a.activityType }
func (a Activity) Description() string { return a.description }
func (a Activity) UserID() uint64 { return a.userID }
func (a Activity) Timestamp() time.Time { return a.timestamp }

// OldValues returns a copy of the previous values of the changed fields.
func (a Activity) OldValues() Changes { return a.oldValues.Clone() }

// NewValues returns a copy of the new values of the changed fields.
func (a Activity) NewValues() Changes { return a.newValues.Clone() }
