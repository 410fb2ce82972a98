package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTaskTitleLength is the longest accepted task title, in characters.
const MaxTaskTitleLength = 200

// Priority ranks a task's urgency.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// BoardTask is a card living in a column.
type BoardTask struct {
	AuditableEntity
	Title       string
	Description string
	Position    int
	Priority    Priority
	DueDate     *time.Time
	ColumnID    uint64
	AssigneeID  *uint64
	IsArchived  bool

	comments   []*Comment
	activities []Activity
	column     *Column
}

// NewBoardTask holds the arguments of CreateBoardTask. An empty Priority
// defaults to Medium.
type NewBoardTask struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     *time.Time
	Position    int
	ColumnID    uint64
	AssigneeID  *uint64
	CreatedBy   uint64
}

// CreateBoardTask validates input and builds a task in the given column.
func CreateBoardTask(input NewBoardTask) (*BoardTask, error) {
	title, err := validateTaskTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if err := requireID("columnId", input.ColumnID); err != nil {
		return nil, err
	}
	if input.Position < 0 {
		return nil, ruleViolation("Task position cannot be negative.")
	}
	if err := validateDueDate(input.DueDate); err != nil {
		return nil, err
	}
	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, invalidArgument("priority", "Task priority is not recognized.")
	}
	if input.AssigneeID != nil {
		if err := requireID("assigneeId", *input.AssigneeID); err != nil {
			return nil, err
		}
	}
	if err := requireID("creatorUserId", input.CreatedBy); err != nil {
		return nil, err
	}

	t := &BoardTask{
		Title:       title,
		Description: input.Description,
		Position:    input.Position,
		Priority:    priority,
		DueDate:     cloneTime(input.DueDate),
		ColumnID:    input.ColumnID,
		AssigneeID:  cloneID(input.AssigneeID),
	}
	t.stampCreated(input.CreatedBy)
	t.raise(TaskCreatedEvent{
		DomainEvent: newDomainEvent(input.CreatedBy),
		TaskID:      t.ID,
		ColumnID:    t.ColumnID,
		Title:       t.Title,
	})
	return t, nil
}

// RestoreTask rebuilds a persisted task and attaches its comments.
func RestoreTask(t BoardTask, comments []*Comment) *BoardTask {
	task := &t
	task.events = nil
	task.column = nil
	task.activities = nil
	task.comments = append([]*Comment(nil), comments...)
	return task
}

// Comments returns the task's comments, including soft-deleted ones.
func (t *BoardTask) Comments() []*Comment {
	out := make([]*Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

// Comment returns the comment with the given id.
func (t *BoardTask) Comment(commentID uint64) (*Comment, bool) {
	for _, c := range t.comments {
		if c.ID == commentID {
			return c, true
		}
	}
	return nil, false
}

// Column returns the loaded owning column, or nil.
func (t *BoardTask) Column() *Column {
	return t.column
}

// Activities returns the in-memory activity records appended via AddActivity.
func (t *BoardTask) Activities() []Activity {
	out := make([]Activity, len(t.activities))
	copy(out, t.activities)
	return out
}

// UpdateTaskDetails holds the replacement values for UpdateDetails.
type UpdateTaskDetails struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     *time.Time
}

// UpdateDetails replaces title, description, priority and due date. Raises a
// single TaskUpdatedEvent covering exactly the fields that changed.
func (t *BoardTask) UpdateDetails(input UpdateTaskDetails, modifierID uint64) error {
	if err := requireID("modifierUserId", modifierID); err != nil {
		return err
	}
	title, err := validateTaskTitle(input.Title)
	if err != nil {
		return err
	}
	if !input.Priority.IsValid() {
		return invalidArgument("priority", "Task priority is not recognized.")
	}
	// An untouched due date stays valid even after it has passed.
	dueChanged := !sameTime(t.DueDate, input.DueDate)
	if dueChanged {
		if err := validateDueDate(input.DueDate); err != nil {
			return err
		}
	}

	d := newDiff()
	d.record(FieldTitle, StringValue(t.Title), StringValue(title))
	d.record(FieldDescription, StringValue(t.Description), StringValue(input.Description))
	d.record(FieldPriority, StringValue(string(t.Priority)), StringValue(string(input.Priority)))
	if dueChanged {
		d.record(FieldDueDate, OptionalTimeValue(t.DueDate), OptionalTimeValue(input.DueDate))
	}
	if d.empty() {
		return nil
	}

	t.Title = title
	t.Description = input.Description
	t.Priority = input.Priority
	t.DueDate = cloneTime(input.DueDate)
	t.touch(modifierID)
	t.raiseUpdated(modifierID, d)
	return nil
}

// MoveToColumn reassigns the task's column id.
func (t *BoardTask) MoveToColumn(newColumnID, performingUserID uint64) error {
	if err := requireID("newColumnId", newColumnID); err != nil {
		return err
	}
	if err := requireID("performingUserId", performingUserID); err != nil {
		return err
	}
	if t.ColumnID == newColumnID {
		return nil
	}
	original := t.ColumnID
	t.ColumnID = newColumnID
	t.touch(performingUserID)
	t.raise(TaskMovedEvent{
		DomainEvent:      newDomainEvent(performingUserID),
		TaskID:           t.ID,
		OriginalColumnID: original,
		NewColumnID:      newColumnID,
	})
	return nil
}

// AssignToUser sets or clears the assignee.
func (t *BoardTask) AssignToUser(newAssigneeID *uint64, performingUserID uint64) error {
	if newAssigneeID != nil {
		if err := requireID("newAssigneeId", *newAssigneeID); err != nil {
			return err
		}
	}
	if err := requireID("performingUserId", performingUserID); err != nil {
		return err
	}
	if sameID(t.AssigneeID, newAssigneeID) {
		return nil
	}
	old := t.AssigneeID
	t.AssigneeID = cloneID(newAssigneeID)
	t.touch(performingUserID)
	t.raise(TaskAssignedEvent{
		DomainEvent:   newDomainEvent(performingUserID),
		TaskID:        t.ID,
		OldAssigneeID: old,
		NewAssigneeID: cloneID(newAssigneeID),
	})
	return nil
}

// SetPosition changes the task's position within its column.
func (t *BoardTask) SetPosition(newPosition int, modifierID uint64) error {
	if newPosition < 0 {
		return ruleViolation("Task position cannot be negative.")
	}
	if err := requireID("modifierUserId", modifierID); err != nil {
		return err
	}
	if t.Position == newPosition {
		return nil
	}
	d := newDiff()
	d.record(FieldPosition, IntValue(int64(t.Position)), IntValue(int64(newPosition)))
	t.Position = newPosition
	t.touch(modifierID)
	t.raiseUpdated(modifierID, d)
	return nil
}

// Archive hides the task. No role check is applied.
func (t *BoardTask) Archive(modifierID uint64) error {
	return t.setArchived(true, modifierID)
}

// Restore un-archives the task. No role check is applied.
func (t *BoardTask) Restore(modifierID uint64) error {
	return t.setArchived(false, modifierID)
}

func (t *BoardTask) setArchived(archived bool, modifierID uint64) error {
	if err := requireID("modifierUserId", modifierID); err != nil {
		return err
	}
	if t.IsArchived == archived {
		return nil
	}
	d := newDiff()
	d.record(FieldIsArchived, BoolValue(t.IsArchived), BoolValue(archived))
	t.IsArchived = archived
	t.touch(modifierID)
	t.raiseUpdated(modifierID, d)
	return nil
}

// AddComment creates a comment on the task. The owning column must be loaded
// so the event can carry the board id.
func (t *BoardTask) AddComment(content string, userID uint64) (*Comment, error) {
	if t.column == nil {
		return nil, ruleViolation("Task column must be loaded before adding a comment.")
	}
	c, err := CreateComment(t.ID, content, userID)
	if err != nil {
		return nil, err
	}
	t.comments = append(t.comments, c)
	t.raise(TaskCommentedEvent{
		DomainEvent: newDomainEvent(userID),
		TaskID:      t.ID,
		BoardID:     t.column.BoardID,
		Content:     c.Content,
	})
	return c, nil
}

// AddActivity appends an in-memory activity record. These are not persisted.
func (t *BoardTask) AddActivity(activity *Activity) error {
	if activity == nil {
		return nullArgument("activity")
	}
	t.activities = append(t.activities, *activity)
	return nil
}

func (t *BoardTask) raiseUpdated(actorID uint64, d *diff) {
	t.raise(TaskUpdatedEvent{
		DomainEvent: newDomainEvent(actorID),
		TaskID:      t.ID,
		OldValues:   d.old,
		NewValues:   d.new,
	})
}

func validateTaskTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ruleViolation("Task title cannot be empty.")
	}
	if utf8.RuneCountInString(title) > MaxTaskTitleLength {
		return "", ruleViolation("Task title cannot be longer than %d characters.", MaxTaskTitleLength)
	}
	return title, nil
}

// validateDueDate rejects dates before the start of the current UTC day.
func validateDueDate(due *time.Time) error {
	if due == nil {
		return nil
	}
	if due.Before(startOfDay(now())) {
		return ruleViolation("Due date cannot be in the past.")
	}
	return nil
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func sameID(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func cloneID(id *uint64) *uint64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
