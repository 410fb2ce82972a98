package domain

import "time"

// AuditableEntity carries identity, audit stamps and the pending event buffer
// shared by every entity.
type AuditableEntity struct {
	ID             uint64
	CreatedAt      time.Time
	CreatedBy      uint64
	LastModifiedAt *time.Time
	LastModifiedBy *uint64

	events []Event
}

// Events returns a copy of the pending domain events.
func (a *AuditableEntity) Events() []Event {
	if len(a.events) == 0 {
		return nil
	}
	out := make([]Event, len(a.events))
	copy(out, a.events)
	return out
}

// ClearDomainEvents discards the pending events. Call it after the events
// have been persisted and dispatched.
func (a *AuditableEntity) ClearDomainEvents() {
	a.events = nil
}

// DrainEvents returns the pending events and empties the buffer.
func (a *AuditableEntity) DrainEvents() []Event {
	out := a.events
	a.events = nil
	return out
}

func (a *AuditableEntity) raise(e Event) {
	a.events = append(a.events, e)
}

func (a *AuditableEntity) stampCreated(by uint64) {
	a.CreatedAt = now()
	a.CreatedBy = by
}

func (a *AuditableEntity) touch(by uint64) {
	at := now()
	a.LastModifiedAt = &at
	a.LastModifiedBy = &by
}
