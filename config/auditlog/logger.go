package auditlog

import (
	"time"

	"github.com/google/uuid"
)

// QueryFilter specifies criteria for querying audit events.
type QueryFilter struct {
	Server   string
	ActionID string
	Kinds    []EventKind
	Limit    int
	Before   time.Time
	After    time.Time
}

// Logger is the interface for emitting and querying audit events.
type Logger interface {
	Emit(event Event)
	Query(filter QueryFilter) ([]Event, error)
	Close() error
}

// NewActionID returns a fresh id for grouping the events of one action.
func NewActionID() string {
	return uuid.NewString()
}

// EventOption is a functional option for configuring optional Event fields.
type EventOption func(*Event)

// WithAction sets the ActionID field on the event.
func WithAction(actionID string) EventOption {
	return func(e *Event) { e.ActionID = actionID }
}

// WithSessions sets the SessionIDs the event refers to.
func WithSessions(ids ...string) EventOption {
	return func(e *Event) { e.SessionIDs = append([]string(nil), ids...) }
}

// WithDetail sets the Detail field on the event (JSON-encoded extra data).
func WithDetail(detail string) EventOption {
	return func(e *Event) { e.Detail = detail }
}

// WithLevel sets the Level field on the event (info, warn, error).
func WithLevel(level string) EventOption {
	return func(e *Event) { e.Level = level }
}

// NewEvent builds an event of kind with message and applies opts.
func NewEvent(kind EventKind, message string, opts ...EventOption) Event {
	e := Event{Kind: kind, Message: message}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// nopLogger is a no-op Logger used when auditing is off.
type nopLogger struct{}

// NopLogger returns a Logger that discards all events.
func NopLogger() Logger {
	return &nopLogger{}
}

func (n *nopLogger) Emit(_ Event) {}

func (n *nopLogger) Query(_ QueryFilter) ([]Event, error) {
	return nil, nil
}

func (n *nopLogger) Close() error {
	return nil
}
