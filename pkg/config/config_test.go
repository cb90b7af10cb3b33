package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{
		"INVMANG_BIND_ADDRESS", "INVMANG_PORT", "PORT", "INVMANG_READ_TIMEOUT",
		"INVMANG_WRITE_TIMEOUT", "INVMANG_SHUTDOWN_TIMEOUT", "INVMANG_AUDIT_ENABLED",
		"INVMANG_LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("INVMANG_CONFIG_PATH", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:18080", cfg.Addr())
	assert.True(t, cfg.IsAuditEnabled())
	assert.Equal(t, "default", cfg.Source("port"))
	assert.NoError(t, cfg.Validate())
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("INVMANG_CONFIG_PATH", dir)

	yml := "port: 9000\nread_timeout: 30\naudit_enabled: false\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yml), 0600))
	t.Setenv("INVMANG_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "environment", cfg.Source("port"))
	assert.Equal(t, 30, cfg.ReadTimeout)
	assert.Equal(t, "file", cfg.Source("read_timeout"))
	assert.False(t, cfg.IsAuditEnabled())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "default", cfg.Source("write_timeout"))
	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.ConfigFilePath())
}

func TestLoadBadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("INVMANG_CONFIG_PATH", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("port: [nope"), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *InventoryConfig)
		wantErr string
	}{
		{name: "port out of range", mutate: func(c *InventoryConfig) { c.Port = 70000 }, wantErr: "invalid port: 70000"},
		{name: "zero read timeout", mutate: func(c *InventoryConfig) { c.ReadTimeout = 0 }, wantErr: "invalid read_timeout: 0"},
		{name: "negative shutdown", mutate: func(c *InventoryConfig) { c.ShutdownTimeout = -1 }, wantErr: "invalid shutdown_timeout: -1"},
		{name: "unknown log level", mutate: func(c *InventoryConfig) { c.LogLevel = "loud" }, wantErr: "invalid log_level: loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefault()
			tt.mutate(cfg)
			assert.EqualError(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestFormatJSON(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	out, err := cfg.FormatJSON()
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "bind_address"`)
	assert.Contains(t, cfg.FormatText(), "audit_enabled")
}
