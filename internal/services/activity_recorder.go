package services

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/repository"
)

// Scope supplies container ids for events raised before the container was
// first persisted.
type Scope map[domain.TargetKind]uint64

// ActivityRecorder turns drained domain events into audit trail entries.
type ActivityRecorder struct {
	logger *log.Entry
}

// NewActivityRecorder creates a new ActivityRecorder.
func NewActivityRecorder() *ActivityRecorder {
	return &ActivityRecorder{
		logger: log.WithField("component", "activity"),
	}
}

// Record writes one ActivityLog per event through store. Call it inside the
// same transaction that persisted the entities.
func (r *ActivityRecorder) Record(store repository.Store, events []domain.Event, scope Scope) error {
	for _, event := range events {
		target := event.Target()
		if target.ID == 0 {
			target.ID = scope[target.Kind]
		}

		activity, err := event.Activity()
		if err != nil {
			return fmt.Errorf("failed to build activity: %w", err)
		}
		entry, err := domain.CreateActivityLog(activity, target)
		if err != nil {
			return fmt.Errorf("failed to build activity log: %w", err)
		}
		if err := store.Activities().Create(entry); err != nil {
			return err
		}

		r.logger.WithFields(log.Fields{
			"type":      activity.Type(),
			"target":    target.Kind,
			"target_id": target.ID,
			"actor":     event.Actor(),
			"event_id":  event.EventID(),
		}).Debug("activity recorded")
	}
	return nil
}

// boardEvents drains the board and everything it owns.
func boardEvents(board *domain.Board) []domain.Event {
	events := board.DrainEvents()
	for _, column := range board.Columns() {
		events = append(events, column.DrainEvents()...)
		for _, task := range column.Tasks() {
			events = append(events, taskEvents(task)...)
		}
	}
	return events
}

// taskEvents drains the task and its comments.
func taskEvents(task *domain.BoardTask) []domain.Event {
	events := task.DrainEvents()
	for _, comment := range task.Comments() {
		events = append(events, comment.DrainEvents()...)
	}
	return events
}
