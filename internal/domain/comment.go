package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCommentLength is the longest accepted comment, in characters.
const MaxCommentLength = 300

// Comment is a note left on a task. Deletion is soft.
type Comment struct {
	AuditableEntity
	Content   string
	TaskID    uint64
	UserID    uint64
	IsDeleted bool
	IsEdited  bool
	EditedAt  *time.Time
}

// CreateComment validates and builds a comment authored by userID.
func CreateComment(taskID uint64, content string, userID uint64) (*Comment, error) {
	content, err := validateCommentContent(content)
	if err != nil {
		return nil, err
	}
	if err := requireID("taskId", taskID); err != nil {
		return nil, err
	}
	if err := requireID("userId", userID); err != nil {
		return nil, err
	}
	c := &Comment{Content: content, TaskID: taskID, UserID: userID}
	c.stampCreated(userID)
	return c, nil
}

// UpdateContent edits the comment text and marks it edited.
func (c *Comment) UpdateContent(newContent string, modifierID uint64) error {
	content, err := validateCommentContent(newContent)
	if err != nil {
		return err
	}
	if err := requireID("modifyingUserId", modifierID); err != nil {
		return err
	}
	if c.IsDeleted {
		return ruleViolation("Cannot edit a deleted comment.")
	}
	if c.Content == content {
		return nil
	}
	old := c.Content
	at := now()
	c.Content = content
	c.IsEdited = true
	c.EditedAt = &at
	c.touch(modifierID)
	c.raise(CommentUpdatedEvent{
		DomainEvent: newDomainEvent(modifierID),
		CommentID:   c.ID,
		TaskID:      c.TaskID,
		OldContent:  old,
		NewContent:  content,
	})
	return nil
}

// Delete soft-deletes the comment. Deleting twice is a no-op.
func (c *Comment) Delete(modifierID uint64) error {
	if err := requireID("modifierUserId", modifierID); err != nil {
		return err
	}
	if c.IsDeleted {
		return nil
	}
	c.IsDeleted = true
	c.touch(modifierID)
	c.raise(CommentDeletedEvent{
		DomainEvent: newDomainEvent(modifierID),
		CommentID:   c.ID,
		TaskID:      c.TaskID,
	})
	return nil
}

// Restore undoes a soft delete. Restoring a live comment is a no-op.
func (c *Comment) Restore(modifierID uint64) error {
	if err := requireID("modifierUserId", modifierID); err != nil {
		return err
	}
	if !c.IsDeleted {
		return nil
	}
	c.IsDeleted = false
	c.touch(modifierID)
	c.raise(CommentRestoredEvent{
		DomainEvent: newDomainEvent(modifierID),
		CommentID:   c.ID,
		TaskID:      c.TaskID,
	})
	return nil
}

func validateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ruleViolation("Comment content cannot be empty.")
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return "", ruleViolation("Comment content cannot be longer than %d characters.", MaxCommentLength)
	}
	return content, nil
}
