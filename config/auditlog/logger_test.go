package auditlog_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kastheco/webmon/config/auditlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "sessions_deleted", auditlog.EventSessionsDeleted.String())
	assert.Equal(t, "token_renewed", auditlog.EventTokenRenewed.String())
}

func TestNopLogger_DoesNotPanic(t *testing.T) {
	l := auditlog.NopLogger()
	assert.NotPanics(t, func() {
		l.Emit(auditlog.Event{Kind: auditlog.EventMessageSent})
	})
	events, err := l.Query(auditlog.QueryFilter{})
	assert.NoError(t, err)
	assert.Empty(t, events)
	assert.NoError(t, l.Close())
}

func TestNewEvent_AppliesOptions(t *testing.T) {
	ids := []string{"S1", "S2"}
	e := auditlog.NewEvent(auditlog.EventSessionsDeleted, "deleted 2 sessions",
		auditlog.WithAction("act-1"),
		auditlog.WithSessions(ids...),
		auditlog.WithLevel("warn"),
		auditlog.WithDetail(`{"page":3}`),
	)
	ids[0] = "mutated"

	assert.Equal(t, auditlog.EventSessionsDeleted, e.Kind)
	assert.Equal(t, "act-1", e.ActionID)
	assert.Equal(t, []string{"S1", "S2"}, e.SessionIDs, "session ids are copied")
	assert.Equal(t, "warn", e.Level)
	assert.Equal(t, `{"page":3}`, e.Detail)
}

func TestNewActionID_IsUUID(t *testing.T) {
	a := auditlog.NewActionID()
	b := auditlog.NewActionID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
}
