package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TargetKind names the container an event's activity is logged against.
type TargetKind string

const (
	TargetTask    TargetKind = "task"
	TargetProject TargetKind = "project"
	TargetBoard   TargetKind = "board"
)

// Target identifies the container of an activity. ID is zero when the event
// was raised before the container was first persisted.
type Target struct {
	Kind TargetKind
	ID   uint64
}

// Event is a state change accumulated on an entity and drained by the
// application layer after a successful commit.
type Event interface {
	EventID() uuid.UUID
	OccurredAt() time.Time
	Actor() uint64
	Target() Target
	Activity() (*Activity, error)
}

// DomainEvent is the envelope embedded by every event.
type DomainEvent struct {
	ID       uuid.UUID
	Occurred time.Time
	ActorID  uint64
}

func newDomainEvent(actorID uint64) DomainEvent {
	return DomainEvent{ID: uuid.New(), Occurred: now(), ActorID: actorID}
}

func (e DomainEvent) EventID() uuid.UUID { return e.ID }
func (e DomainEvent) OccurredAt() time.Time { return e.Occurred }
func (e DomainEvent) Actor() uint64 { return e.ActorID }

func (e DomainEvent) activity(t ActivityType, description string, oldValues, newValues Changes) (*Activity, error) {
	return NewActivity(t, description, e.ActorID, e.Occurred, oldValues, newValues)
}

// ProjectCreatedEvent is raised by CreateProject.
type ProjectCreatedEvent struct {
	DomainEvent
	ProjectID uint64
	Name      string
	OwnerID   uint64
}

func (e ProjectCreatedEvent) Target() Target { return Target{Kind: TargetProject, ID: e.ProjectID} }

func (e ProjectCreatedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityProjectCreated, fmt.Sprintf("Project '%s' created.", e.Name), nil,
		Changes{FieldName: StringValue(e.Name), FieldOwnerID: IDValue(e.OwnerID)})
}

// ProjectUpdatedEvent carries the changed project fields.
type ProjectUpdatedEvent struct {
	DomainEvent
	ProjectID uint64
	OldValues Changes
	NewValues Changes
}

func (e ProjectUpdatedEvent) Target() Target { return Target{Kind: TargetProject, ID: e.ProjectID} }

func (e ProjectUpdatedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityProjectUpdated, "Project details updated.", e.OldValues, e.NewValues)
}

// ProjectArchivedEvent is raised when a project becomes archived.
type ProjectArchivedEvent struct {
	DomainEvent
	ProjectID uint64
}

func (e ProjectArchivedEvent) Target() Target { return Target{Kind: TargetProject, ID: e.ProjectID} }

func (e ProjectArchivedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityProjectArchived, "Project archived.",
		Changes{FieldIsArchived: BoolValue(false)}, Changes{FieldIsArchived: BoolValue(true)})
}

// ProjectMemberAddedEvent is raised when a user joins a project.
type ProjectMemberAddedEvent struct {
	DomainEvent
	ProjectID uint64
	UserID    uint64
	Role      ProjectRole
}

func (e ProjectMemberAddedEvent) Target() Target { return Target{Kind: TargetProject, ID: e.ProjectID} }

func (e ProjectMemberAddedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityProjectMemberAdded, fmt.Sprintf("User %d added to project as %s.", e.UserID, e.Role), nil,
		Changes{FieldUserID: IDValue(e.UserID), FieldRole: StringValue(string(e.Role))})
}

// ProjectMemberRemovedEvent is raised when a user leaves a project.
type ProjectMemberRemovedEvent struct {
	DomainEvent
	ProjectID uint64
	UserID    uint64
	Role      ProjectRole
}

func (e ProjectMemberRemovedEvent) Target() Target { return Target{Kind: TargetProject, ID: e.ProjectID} }

func (e ProjectMemberRemovedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityProjectMemberRemoved, fmt.Sprintf("User %d removed from project.", e.UserID),
		Changes{FieldUserID: IDValue(e.UserID), FieldRole: StringValue(string(e.Role))}, nil)
}

// ProjectMemberUpdatedEvent is raised when a member's role changes.
type ProjectMemberUpdatedEvent struct {
	DomainEvent
	ProjectID uint64
	UserID    uint64
	OldRole   ProjectRole
	NewRole   ProjectRole
}

func (e ProjectMemberUpdatedEvent) Target() Target { return Target{Kind: TargetProject, ID: e.ProjectID} }

func (e ProjectMemberUpdatedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityProjectMemberUpdated,
		fmt.Sprintf("User %d role changed from %s to %s.", e.UserID, e.OldRole, e.NewRole),
		Changes{FieldRole: StringValue(string(e.OldRole))}, Changes{FieldRole: StringValue(string(e.NewRole))})
}

// BoardCreatedEvent is raised by CreateBoard and re-raised by Project.CreateBoard.
type BoardCreatedEvent struct {
	DomainEvent
	BoardID   uint64
	ProjectID uint64
	Name      string
}

func (e BoardCreatedEvent) Target() Target { return Target{Kind: TargetBoard, ID: e.BoardID} }

func (e BoardCreatedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityBoardCreated, fmt.Sprintf("Board '%s' created.", e.Name), nil,
		Changes{FieldName: StringValue(e.Name)})
}

// BoardUpdatedEvent carries the changed board fields.
type BoardUpdatedEvent struct {
	DomainEvent
	BoardID   uint64
	OldValues Changes
	NewValues Changes
}

func (e BoardUpdatedEvent) Target() Target { return Target{Kind: TargetBoard, ID: e.BoardID} }

func (e BoardUpdatedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityBoardUpdated, "Board details updated.", e.OldValues, e.NewValues)
}

// BoardArchivedEvent is raised when a board becomes archived.
type BoardArchivedEvent struct {
	DomainEvent
	BoardID uint64
}

func (e BoardArchivedEvent) Target() Target { return Target{Kind: TargetBoard, ID: e.BoardID} }

func (e BoardArchivedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityBoardArchived, "Board archived.",
		Changes{FieldIsArchived: BoolValue(false)}, Changes{FieldIsArchived: BoolValue(true)})
}

// BoardRestoredEvent is raised when an archived board is restored.
type BoardRestoredEvent struct {
	DomainEvent
	BoardID uint64
}

func (e BoardRestoredEvent) Target() Target { return Target{Kind: TargetBoard, ID: e.BoardID} }

func (e BoardRestoredEvent) Activity() (*Activity, error) {
	return e.activity(ActivityBoardRestored, "Board restored.",
		Changes{FieldIsArchived: BoolValue(true)}, Changes{FieldIsArchived: BoolValue(false)})
}

// ColumnAddedEvent is raised when a column is appended to a board.
type ColumnAddedEvent struct {
	DomainEvent
	BoardID    uint64
	ColumnName string
	Order      int
}

func (e ColumnAddedEvent) Target() Target { return Target{Kind: TargetBoard, ID: e.BoardID} }

func (e ColumnAddedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityColumnAdded, fmt.Sprintf("Column '%s' added.", e.ColumnName), nil,
		Changes{FieldName: StringValue(e.ColumnName), FieldOrder: IntValue(int64(e.Order))})
}

// BoardMemberAddedEvent is raised when a user joins a board.
type BoardMemberAddedEvent struct {
	DomainEvent
	BoardID uint64
	UserID  uint64
	Role    BoardRole
}

func (e BoardMemberAddedEvent) Target() Target { return Target{Kind: TargetBoard, ID: e.BoardID} }

func (e BoardMemberAddedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityBoardMemberAdded, fmt.Sprintf("User %d added to board as %s.", e.UserID, e.Role), nil,
		Changes{FieldUserID: IDValue(e.UserID), FieldRole: StringValue(string(e.Role))})
}

// BoardMemberRemovedEvent is raised when a user leaves a board.
type BoardMemberRemovedEvent struct {
	DomainEvent
	BoardID uint64
	UserID  uint64
}

func (e BoardMemberRemovedEvent) Target() Target { return Target{Kind: TargetBoard, ID: e.BoardID} }

func (e BoardMemberRemovedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityBoardMemberRemoved, fmt.Sprintf("User %d removed from board.", e.UserID),
		Changes{FieldUserID: IDValue(e.UserID)}, nil)
}

// TaskCreatedEvent is raised by CreateBoardTask.
type TaskCreatedEvent struct {
	DomainEvent
	TaskID   uint64
	ColumnID uint64
	Title    string
}

func (e TaskCreatedEvent) Target() Target { return Target{Kind: TargetTask, ID: e.TaskID} }

func (e TaskCreatedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityTaskCreated, fmt.Sprintf("Task '%s' created.", e.Title), nil,
		Changes{FieldTitle: StringValue(e.Title), FieldColumnID: IDValue(e.ColumnID)})
}

// TaskUpdatedEvent carries the changed task fields. Position and archive
// transitions reuse it with a single-field change set.
type TaskUpdatedEvent struct {
	DomainEvent
	TaskID    uint64
	OldValues Changes
	NewValues Changes
}

func (e TaskUpdatedEvent) Target() Target { return Target{Kind: TargetTask, ID: e.TaskID} }

func (e TaskUpdatedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityTaskUpdated, "Task updated.", e.OldValues, e.NewValues)
}

// TaskMovedEvent is raised when a task changes column.
type TaskMovedEvent struct {
	DomainEvent
	TaskID           uint64
	OriginalColumnID uint64
	NewColumnID      uint64
}

func (e TaskMovedEvent) Target() Target { return Target{Kind: TargetTask, ID: e.TaskID} }

func (e TaskMovedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityTaskMoved,
		fmt.Sprintf("Task moved from column %d to column %d.", e.OriginalColumnID, e.NewColumnID),
		Changes{FieldColumnID: IDValue(e.OriginalColumnID)}, Changes{FieldColumnID: IDValue(e.NewColumnID)})
}

// TaskAssignedEvent is raised when a task's assignee changes. Either side may
// be nil.
type TaskAssignedEvent struct {
	DomainEvent
	TaskID        uint64
	OldAssigneeID *uint64
	NewAssigneeID *uint64
}

func (e TaskAssignedEvent) Target() Target { return Target{Kind: TargetTask, ID: e.TaskID} }

func (e TaskAssignedEvent) Activity() (*Activity, error) {
	description := "Task unassigned."
	if e.NewAssigneeID != nil {
		description = fmt.Sprintf("Task assigned to user %d.", *e.NewAssigneeID)
	}
	return e.activity(ActivityTaskAssigned, description,
		Changes{FieldAssigneeID: OptionalIDValue(e.OldAssigneeID)},
		Changes{FieldAssigneeID: OptionalIDValue(e.NewAssigneeID)})
}

// TaskCommentedEvent is raised when a comment is added to a task.
type TaskCommentedEvent struct {
	DomainEvent
	TaskID  uint64
	BoardID uint64
	Content string
}

func (e TaskCommentedEvent) Target() Target { return Target{Kind: TargetTask, ID: e.TaskID} }

func (e TaskCommentedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityTaskCommented, "Comment added.", nil,
		Changes{FieldContent: StringValue(e.Content), FieldBoardID: IDValue(e.BoardID)})
}

// CommentUpdatedEvent is raised when comment content is edited.
type CommentUpdatedEvent struct {
	DomainEvent
	CommentID  uint64
	TaskID     uint64
	OldContent string
	NewContent string
}

func (e CommentUpdatedEvent) Target() Target { return Target{Kind: TargetTask, ID: e.TaskID} }

func (e CommentUpdatedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityCommentUpdated, "Comment edited.",
		Changes{FieldContent: StringValue(e.OldContent)}, Changes{FieldContent: StringValue(e.NewContent)})
}

// CommentDeletedEvent is raised when a comment is soft-deleted.
type CommentDeletedEvent struct {
	DomainEvent
	CommentID uint64
	TaskID    uint64
}

func (e CommentDeletedEvent) Target() Target { return Target{Kind: TargetTask, ID: e.TaskID} }

func (e CommentDeletedEvent) Activity() (*Activity, error) {
	return e.activity(ActivityCommentDeleted, "Comment deleted.",
		Changes{FieldIsDeleted: BoolValue(false)}, Changes{FieldIsDeleted: BoolValue(true)})
}

// CommentRestoredEvent is raised when a soft-deleted comment is restored.
type CommentRestoredEvent struct {
	DomainEvent
	CommentID uint64
	TaskID    uint64
}

func (e CommentRestoredEvent) Target() Target { return Target{Kind: TargetTask, ID: e.TaskID} }

func (e CommentRestoredEvent) Activity() (*Activity, error) {
	return e.activity(ActivityCommentRestored, "Comment restored.",
		Changes{FieldIsDeleted: BoolValue(true)}, Changes{FieldIsDeleted: BoolValue(false)})
}
