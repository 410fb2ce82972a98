package domain

import "strings"

// DefaultColumnNames are seeded, in order, on every new board.
var DefaultColumnNames = []string{"To Do", "In Progress", "Done"}

// Board groups columns of tasks within a project.
type Board struct {
	AuditableEntity
	Name        string
	Description string
	ProjectID   uint64
	IsArchived  bool

	columns []*Column
	members []BoardMember
}

// CreateBoard builds a board with the default columns. The creator becomes
// the board's first Admin.
func CreateBoard(name, description string, projectID, creatorID uint64) (*Board, error) {
	name, err := validateBoardName(name)
	if err != nil {
		return nil, err
	}
	if projectID == 0 {
		return nil, nullArgument("projectId")
	}
	if err := requireID("creatorUserId", creatorID); err != nil {
		return nil, err
	}

	b := &Board{Name: name, Description: description, ProjectID: projectID}
	b.stampCreated(creatorID)
	for i, columnName := range DefaultColumnNames {
		c, err := newColumn(columnName, i+1, b.ID, creatorID)
		if err != nil {
			return nil, err
		}
		b.columns = append(b.columns, c)
	}
	b.members = append(b.members, BoardMember{
		UserID:   creatorID,
		Role:     BoardRoleAdmin,
		JoinedAt: b.CreatedAt,
	})
	b.raise(BoardCreatedEvent{
		DomainEvent: newDomainEvent(creatorID),
		BoardID:     b.ID,
		ProjectID:   projectID,
		Name:        name,
	})
	return b, nil
}

// RestoreBoard rebuilds a persisted board from its columns and members.
func RestoreBoard(b Board, columns []*Column, members []BoardMember) *Board {
	board := &b
	board.events = nil
	board.columns = append([]*Column(nil), columns...)
	board.members = append([]BoardMember(nil), members...)
	return board
}

// Columns returns the board's columns.
func (b *Board) Columns() []*Column {
	out := make([]*Column, len(b.columns))
	copy(out, b.columns)
	return out
}

// Members returns a copy of the board's memberships.
func (b *Board) Members() []BoardMember {
	out := make([]BoardMember, len(b.members))
	copy(out, b.members)
	return out
}

// Column looks up a column by id.
func (b *Board) Column(columnID uint64) (*Column, error) {
	for _, c := range b.columns {
		if c.ID == columnID {
			return c, nil
		}
	}
	return nil, notFound("Column %d was not found on this board.", columnID)
}

// Task looks up a task across all columns.
func (b *Board) Task(taskID uint64) (*BoardTask, error) {
	for _, c := range b.columns {
		if t, ok := c.Task(taskID); ok {
			return t, nil
		}
	}
	return nil, notFound("Task %d was not found on this board.", taskID)
}

// IsMember reports whether userID belongs to the board.
func (b *Board) IsMember(userID uint64) bool {
	_, ok := b.MemberRole(userID)
	return ok
}

// MemberRole returns the user's board role.
func (b *Board) MemberRole(userID uint64) (BoardRole, bool) {
	for _, m := range b.members {
		if m.UserID == userID {
			return m.Role, true
		}
	}
	return "", false
}

// UpdateDetails renames the board and replaces its description.
func (b *Board) UpdateDetails(newName, newDescription string, modifierID uint64) error {
	name, err := validateBoardName(newName)
	if err != nil {
		return err
	}
	if err := requireID("modifierUserId", modifierID); err != nil {
		return err
	}
	d := newDiff()
	d.record(FieldName, StringValue(b.Name), StringValue(name))
	d.record(FieldDescription, StringValue(b.Description), StringValue(newDescription))
	if d.empty() {
		return nil
	}
	b.Name = name
	b.Description = newDescription
	b.touch(modifierID)
	b.raise(BoardUpdatedEvent{
		DomainEvent: newDomainEvent(modifierID),
		BoardID:     b.ID,
		OldValues:   d.old,
		NewValues:   d.new,
	})
	return nil
}

// Archive hides the board. Requires a board Admin.
func (b *Board) Archive(modifierID uint64) error {
	if err := b.requireAdmin(modifierID, "Only board admins can archive the board."); err != nil {
		return err
	}
	if b.IsArchived {
		return nil
	}
	b.IsArchived = true
	b.touch(modifierID)
	b.raise(BoardArchivedEvent{DomainEvent: newDomainEvent(modifierID), BoardID: b.ID})
	return nil
}

// Restore un-archives the board. Requires a board Admin.
func (b *Board) Restore(modifierID uint64) error {
	if err := b.requireAdmin(modifierID, "Only board admins can restore the board."); err != nil {
		return err
	}
	if !b.IsArchived {
		return nil
	}
	b.IsArchived = false
	b.touch(modifierID)
	b.raise(BoardRestoredEvent{DomainEvent: newDomainEvent(modifierID), BoardID: b.ID})
	return nil
}

// AddColumn appends a column. Names are unique per board, ignoring case.
func (b *Board) AddColumn(columnName string, order int, creatorID uint64) (*Column, error) {
	if err := requireID("creatorUserId", creatorID); err != nil {
		return nil, err
	}
	c, err := newColumn(columnName, order, b.ID, creatorID)
	if err != nil {
		return nil, err
	}
	for _, existing := range b.columns {
		if strings.EqualFold(existing.Name, c.Name) {
			return nil, ruleViolation("A column named '%s' already exists on this board.", c.Name)
		}
	}
	b.columns = append(b.columns, c)
	b.touch(creatorID)
	b.raise(ColumnAddedEvent{
		DomainEvent: newDomainEvent(creatorID),
		BoardID:     b.ID,
		ColumnName:  c.Name,
		Order:       c.Order,
	})
	return c, nil
}

// AddMember grants user a role on the board.
func (b *Board) AddMember(user *User, role BoardRole, inviterID uint64) error {
	if user == nil {
		return nullArgument("user")
	}
	if err := requireID("userId", user.ID); err != nil {
		return err
	}
	if !role.IsValid() {
		return invalidArgument("role", "Board role is not recognized.")
	}
	if err := requireID("inviterUserId", inviterID); err != nil {
		return err
	}
	if b.IsMember(user.ID) {
		return ruleViolation("User %d is already a member of this board.", user.ID)
	}
	b.members = append(b.members, BoardMember{
		BoardID:  b.ID,
		UserID:   user.ID,
		Role:     role,
		JoinedAt: now(),
	})
	b.touch(inviterID)
	b.raise(BoardMemberAddedEvent{
		DomainEvent: newDomainEvent(inviterID),
		BoardID:     b.ID,
		UserID:      user.ID,
		Role:        role,
	})
	return nil
}

// RemoveMember revokes a membership. A missing member is an error.
func (b *Board) RemoveMember(userID, removerID uint64) error {
	if err := requireID("removerUserId", removerID); err != nil {
		return err
	}
	for i, m := range b.members {
		if m.UserID != userID {
			continue
		}
		b.members = append(b.members[:i:i], b.members[i+1:]...)
		b.touch(removerID)
		b.raise(BoardMemberRemovedEvent{
			DomainEvent: newDomainEvent(removerID),
			BoardID:     b.ID,
			UserID:      userID,
		})
		return nil
	}
	return notFound("User %d is not a member of this board.", userID)
}

// AddTask places a new task in the given column, enforcing its WIP limit.
func (b *Board) AddTask(columnID uint64, task *BoardTask) error {
	c, err := b.Column(columnID)
	if err != nil {
		return err
	}
	return c.AddTask(task)
}

// MoveTask moves a task between columns of this board. The target's WIP limit
// is checked before the task leaves its current column.
func (b *Board) MoveTask(taskID, toColumnID, performingUserID uint64) error {
	if err := requireID("performingUserId", performingUserID); err != nil {
		return err
	}
	target, err := b.Column(toColumnID)
	if err != nil {
		return err
	}
	var source *Column
	for _, c := range b.columns {
		if c.HasTask(taskID) {
			source = c
			break
		}
	}
	if source == nil {
		return notFound("Task %d was not found on this board.", taskID)
	}
	if source == target {
		return nil
	}
	if target.IsWipLimitReached() {
		return ruleViolation("WIP limit for column '%s' has been reached.", target.Name)
	}
	task, _ := source.Task(taskID)
	if err := task.MoveToColumn(target.ID, performingUserID); err != nil {
		return err
	}
	if _, err := source.RemoveTask(taskID); err != nil {
		return err
	}
	return target.AddTask(task)
}

func (b *Board) requireAdmin(userID uint64, message string) error {
	if role, ok := b.MemberRole(userID); ok && role == BoardRoleAdmin {
		return nil
	}
	return forbidden(message)
}

func validateBoardName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalidArgument("name", "Board name cannot be empty.")
	}
	return name, nil
}
