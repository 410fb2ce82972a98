package domain

import "strings"

// Column is an ordered container of tasks on a board with an optional WIP limit.
type Column struct {
	AuditableEntity
	Name    string
	Order   int
	BoardID uint64

	// WipLimit caps the number of tasks; nil means unbounded.
	WipLimit *int

	tasks []*BoardTask
}

func newColumn(name string, order int, boardID, creatorID uint64) (*Column, error) {
	name, err := validateColumnName(name)
	if err != nil {
		return nil, err
	}
	if err := validateColumnOrder(order); err != nil {
		return nil, err
	}
	c := &Column{Name: name, Order: order, BoardID: boardID}
	c.stampCreated(creatorID)
	return c, nil
}

// RestoreColumn rebuilds a persisted column and attaches its tasks.
func RestoreColumn(c Column, tasks []*BoardTask) *Column {
	col := &c
	col.events = nil
	col.tasks = make([]*BoardTask, 0, len(tasks))
	for _, t := range tasks {
		t.column = col
		col.tasks = append(col.tasks, t)
	}
	return col
}

// Tasks returns the column's tasks in insertion order.
func (c *Column) Tasks() []*BoardTask {
	out := make([]*BoardTask, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// TaskCount returns the number of tasks in the column.
func (c *Column) TaskCount() int {
	return len(c.tasks)
}

// ChangeName renames the column.
func (c *Column) ChangeName(name string) error {
	name, err := validateColumnName(name)
	if err != nil {
		return err
	}
	c.Name = name
	return nil
}

// ChangeOrder moves the column to a new position on its board.
func (c *Column) ChangeOrder(order int) error {
	if err := validateColumnOrder(order); err != nil {
		return err
	}
	c.Order = order
	return nil
}

// SetWipLimit sets the limit, or clears it when limit is nil.
func (c *Column) SetWipLimit(limit *int) error {
	if limit == nil {
		c.WipLimit = nil
		return nil
	}
	if *limit <= 0 {
		return ruleViolation("WIP limit must be a positive number.")
	}
	v := *limit
	c.WipLimit = &v
	return nil
}

// IsWipLimitReached reports whether one more task would exceed the limit.
func (c *Column) IsWipLimitReached() bool {
	return c.WipLimit != nil && len(c.tasks) >= *c.WipLimit
}

// AddTask appends task, enforcing the WIP limit.
func (c *Column) AddTask(task *BoardTask) error {
	if task == nil {
		return nullArgument("task")
	}
	if c.IsWipLimitReached() {
		return ruleViolation("WIP limit for column '%s' has been reached.", c.Name)
	}
	task.column = c
	c.tasks = append(c.tasks, task)
	return nil
}

// RemoveTask detaches and returns the task with the given id.
func (c *Column) RemoveTask(taskID uint64) (*BoardTask, error) {
	for i, t := range c.tasks {
		if t.ID == taskID {
			c.tasks = append(c.tasks[:i:i], c.tasks[i+1:]...)
			t.column = nil
			return t, nil
		}
	}
	return nil, notFound("Task %d was not found in column '%s'.", taskID, c.Name)
}

// HasTask reports whether a task with the given id is in the column.
func (c *Column) HasTask(taskID uint64) bool {
	for _, t := range c.tasks {
		if t.ID == taskID {
			return true
		}
	}
	return false
}

// Task returns the task with the given id.
func (c *Column) Task(taskID uint64) (*BoardTask, bool) {
	for _, t := range c.tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return nil, false
}

func validateColumnName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ruleViolation("Column name cannot be empty.")
	}
	return name, nil
}

func validateColumnOrder(order int) error {
	if order <= 0 {
		return ruleViolation("Column order must be a positive number.")
	}
	return nil
}
