package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/kastheco/webmon/config"
	"github.com/kastheco/webmon/config/auditlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(auditDB string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Login = "admin"
	cfg.Password = "pw"
	cfg.Environment = "prod"
	cfg.Host = "10.0.0.5"
	cfg.Port = "8080"
	cfg.AuditDB = auditDB
	return cfg
}

func TestParseKinds(t *testing.T) {
	kinds, err := parseKinds("sessions_deleted, error")
	require.NoError(t, err)
	assert.Equal(t, []auditlog.EventKind{auditlog.EventSessionsDeleted, auditlog.EventError}, kinds)

	kinds, err = parseKinds("")
	require.NoError(t, err)
	assert.Nil(t, kinds)

	_, err = parseKinds("sessions_deleted,bogus")
	assert.ErrorContains(t, err, `"bogus"`)
}

func TestOpenAuditLog_Off(t *testing.T) {
	l, err := OpenAuditLog(testConfig(config.AuditOff), "/unused/config.toml")
	require.NoError(t, err)
	out, err := executeAuditList(l, auditlog.QueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, "no audit events\n", out)
}

func TestExecuteAuditList(t *testing.T) {
	dir := t.TempDir()
	l, err := OpenAuditLog(testConfig(""), filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	defer l.Close()

	l.Emit(auditlog.NewEvent(auditlog.EventSessionsDeleted, "deleted S1", auditlog.WithSessions("S1")))
	l.Emit(auditlog.NewEvent(auditlog.EventError, "list: transport failure"))

	out, err := executeAuditList(l, auditlog.QueryFilter{Kinds: []auditlog.EventKind{auditlog.EventSessionsDeleted}})
	require.NoError(t, err)
	assert.Contains(t, out, "sessions_deleted")
	assert.Contains(t, out, "10.0.0.5:8080", "the origin is stamped on every event")
	assert.Contains(t, out, "S1")
	assert.NotContains(t, out, "transport failure")

	assert.FileExists(t, filepath.Join(dir, config.AuditFileName))
}

func TestAuditCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, config.Save(testConfig(""), path))

	l, err := OpenAuditLog(testConfig(""), path)
	require.NoError(t, err)
	l.Emit(auditlog.NewEvent(auditlog.EventMessageSent, "sent to S9", auditlog.WithSessions("S9")))
	require.NoError(t, l.Close())

	c := NewAuditCmd(func() (string, error) { return path, nil })
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetArgs([]string{"--kind", "message_sent", "-n", "5"})
	require.NoError(t, c.Execute())
	assert.Contains(t, buf.String(), "sent to S9")

	c = NewAuditCmd(func() (string, error) { return path, nil })
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	c.SetArgs([]string{"--kind", "nope"})
	assert.Error(t, c.Execute())
}
