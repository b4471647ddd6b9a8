package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/kastheco/webmon/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	for _, name := range []string{"version", "debug", "audit", "keys"} {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, c.Name())
	}
}

func TestConfigPath(t *testing.T) {
	t.Cleanup(func() { configFlag = "" })

	configFlag = "/tmp/custom.toml"
	p, err := configPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.toml", p)

	configFlag = ""
	home := t.TempDir()
	t.Setenv("HOME", home)
	p, err = configPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "webmon", config.ConfigFileName), p)
}

func TestDebugCommand_RedactsPassword(t *testing.T) {
	t.Cleanup(func() { configFlag = "" })

	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	cfg := config.DefaultConfig()
	cfg.Login = "admin"
	cfg.Password = "s3cret"
	cfg.Environment = "prod"
	cfg.Host = "10.0.0.5"
	cfg.Port = "8080"
	cfg.AuditDB = config.AuditOff
	require.NoError(t, config.Save(cfg, path))

	configFlag = path
	var buf bytes.Buffer
	debugCmd.SetOut(&buf)
	t.Cleanup(func() { debugCmd.SetOut(nil) })
	require.NoError(t, debugCmd.RunE(debugCmd, nil))

	out := buf.String()
	assert.Contains(t, out, path)
	assert.Contains(t, out, "Audit: off")
	assert.Contains(t, out, "10.0.0.5")
	assert.NotContains(t, out, "s3cret")
}
