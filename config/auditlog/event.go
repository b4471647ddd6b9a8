package auditlog

import "time"

// EventKind identifies the type of audit event.
type EventKind string

// String returns the string representation of the EventKind.
func (k EventKind) String() string {
	return string(k)
}

// Operator actions.
const (
	EventSessionsDeleted EventKind = "sessions_deleted"
	EventMessageSent     EventKind = "message_sent"
	EventIDCopied        EventKind = "id_copied"
)

// Connection events.
const (
	EventAuthenticated EventKind = "authenticated"
	EventTokenRenewed  EventKind = "token_renewed"
	EventError         EventKind = "error"
)

// Kinds lists every known event kind, in display order.
func Kinds() []EventKind {
	return []EventKind{
		EventSessionsDeleted,
		EventMessageSent,
		EventIDCopied,
		EventAuthenticated,
		EventTokenRenewed,
		EventError,
	}
}

// Event is a single audit log entry.
type Event struct {
	ID int64
	// ActionID ties together the events produced by one operator action,
	// e.g. a delete and the failure it ended in.
	ActionID    string
	Kind        EventKind
	Timestamp   time.Time
	Server      string
	Environment string
	SessionIDs  []string
	Message     string
	Detail      string // JSON-encoded extra data
	Level       string // info, warn, error
}
