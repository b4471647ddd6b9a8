package auditlog_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kastheco/webmon/config/auditlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemLogger(t *testing.T) *auditlog.SQLiteLogger {
	t.Helper()
	logger, err := auditlog.NewSQLiteLogger(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })
	return logger
}

func TestSQLiteLogger_EmitAndQuery(t *testing.T) {
	logger := newMemLogger(t)
	logger.SetOrigin("10.0.0.5:8080", "prod")

	logger.Emit(auditlog.NewEvent(auditlog.EventSessionsDeleted, "deleted 2 sessions",
		auditlog.WithSessions("S1", "S2"),
		auditlog.WithAction("act-1"),
	))

	events, err := logger.Query(auditlog.QueryFilter{Server: "10.0.0.5:8080", Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, auditlog.EventSessionsDeleted, e.Kind)
	assert.Equal(t, []string{"S1", "S2"}, e.SessionIDs)
	assert.Equal(t, "prod", e.Environment)
	assert.Equal(t, "act-1", e.ActionID)
	assert.Equal(t, "info", e.Level, "level defaults to info")
	assert.False(t, e.Timestamp.IsZero())
}

func TestSQLiteLogger_QueryFilterByKind(t *testing.T) {
	logger := newMemLogger(t)

	logger.Emit(auditlog.Event{Kind: auditlog.EventMessageSent})
	logger.Emit(auditlog.Event{Kind: auditlog.EventError, Level: "error"})
	logger.Emit(auditlog.Event{Kind: auditlog.EventTokenRenewed})

	events, err := logger.Query(auditlog.QueryFilter{
		Kinds: []auditlog.EventKind{auditlog.EventError, auditlog.EventTokenRenewed},
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Len(t, events, 2)
	for _, e := range events {
		assert.NotEqual(t, auditlog.EventMessageSent, e.Kind)
	}
}

func TestSQLiteLogger_QueryFilterByAction(t *testing.T) {
	logger := newMemLogger(t)
	logger.Emit(auditlog.Event{Kind: auditlog.EventSessionsDeleted, ActionID: "a"})
	logger.Emit(auditlog.Event{Kind: auditlog.EventError, ActionID: "a"})
	logger.Emit(auditlog.Event{Kind: auditlog.EventMessageSent, ActionID: "b"})

	events, err := logger.Query(auditlog.QueryFilter{ActionID: "a"})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestSQLiteLogger_QueryOrderDesc(t *testing.T) {
	logger := newMemLogger(t)

	logger.Emit(auditlog.Event{Kind: auditlog.EventMessageSent, Message: "first"})
	time.Sleep(time.Millisecond)
	logger.Emit(auditlog.Event{Kind: auditlog.EventMessageSent, Message: "second"})

	events, err := logger.Query(auditlog.QueryFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "second", events[0].Message) // newest first
}

func TestSQLiteLogger_QueryTimeWindow(t *testing.T) {
	logger := newMemLogger(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		logger.Emit(auditlog.Event{Kind: auditlog.EventTokenRenewed, Timestamp: base.Add(time.Duration(i) * time.Hour)})
	}

	events, err := logger.Query(auditlog.QueryFilter{After: base, Before: base.Add(2 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].Timestamp.Equal(base.Add(time.Hour)))
}

func TestSQLiteLogger_Limit(t *testing.T) {
	logger := newMemLogger(t)
	for i := 0; i < 5; i++ {
		logger.Emit(auditlog.Event{Kind: auditlog.EventMessageSent})
	}
	events, err := logger.Query(auditlog.QueryFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestSQLiteLogger_PersistsToFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")

	logger, err := auditlog.NewSQLiteLogger(dbPath)
	require.NoError(t, err)
	logger.Emit(auditlog.Event{Kind: auditlog.EventAuthenticated, Message: "test"})
	require.NoError(t, logger.Close())

	reopened, err := auditlog.NewSQLiteLogger(dbPath)
	require.NoError(t, err)
	defer reopened.Close()
	events, err := reopened.Query(auditlog.QueryFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "test", events[0].Message)
}
