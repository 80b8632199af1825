package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Change events published after a transaction commits.
// Read models subscribe to them to refresh their snapshot.
const (
	// Teacher events
	EventTeacherUpdated EventType = "teacher.updated"

	// Roster events
	EventCourseAdded    EventType = "course.added"
	EventCourseUpdated  EventType = "course.updated"
	EventCourseDeleted  EventType = "course.deleted"
	EventClassAdded     EventType = "class.added"
	EventClassUpdated   EventType = "class.updated"
	EventClassDeleted   EventType = "class.deleted"
	EventStudentAdded   EventType = "student.added"
	EventStudentUpdated EventType = "student.updated"
	EventStudentDeleted EventType = "student.deleted"

	// Schedule events
	EventScheduleEntryAdded   EventType = "schedule.entry_added"
	EventScheduleEntryRemoved EventType = "schedule.entry_removed"

	// Attendance events
	EventAttendanceSaved EventType = "attendance.saved"
	EventDayFinished     EventType = "attendance.day_finished"

	// Data events
	EventDataImported EventType = "data.imported"
	EventDataReset    EventType = "data.reset"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
	Version     int       `json:"version"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// ChangeEvent is emitted once per committed transaction and names the
// tables the transaction wrote to.
type ChangeEvent struct {
	BaseEvent
	Tables []string `json:"tables"`
}

// Payload implements Event interface.
func (e ChangeEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"aggregate_id": e.AggregateId,
		"tables":       e.Tables,
	}
}

// NewChangeEvent creates a ChangeEvent.
func NewChangeEvent(eventType EventType, aggregateID string, tables ...string) ChangeEvent {
	return ChangeEvent{
		BaseEvent: NewBaseEvent(eventType, aggregateID),
		Tables:    tables,
	}
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for a specific event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber

	// Close stops accepting events and subscriptions.
	Close() error
}
