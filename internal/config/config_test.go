package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "{}\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "credentials.json", cfg.Files.ClientConfig)
	assert.Equal(t, "token.json", cfg.Files.Credential)
	assert.Equal(t, "templates.json", cfg.Files.Templates)
	assert.Equal(t, "localhost", cfg.Auth.CallbackHost)
	assert.Equal(t, 0, cfg.Auth.CallbackPort)
	assert.Equal(t, 5*time.Minute, cfg.Auth.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Auth.ExchangeTimeout)
	assert.True(t, cfg.Auth.OpenBrowser)
	assert.Equal(t, "me", cfg.Gmail.UserID)
	assert.Equal(t, 30*time.Second, cfg.Gmail.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
files:
  templates: /tmp/hr/templates.json
auth:
  callback_port: 8765
  timeout: 2m
sender:
  name: Recrutamento
  address: rh@example.com
`)
	t.Setenv("HRMAIL_GMAIL_TIMEOUT", "10s")
	t.Setenv("HRMAIL_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/hr/templates.json", cfg.Files.Templates)
	assert.Equal(t, 8765, cfg.Auth.CallbackPort)
	assert.Equal(t, 2*time.Minute, cfg.Auth.Timeout)
	assert.Equal(t, "Recrutamento", cfg.Sender.Name)
	assert.Equal(t, "rh@example.com", cfg.Sender.Address)
	assert.Equal(t, 10*time.Second, cfg.Gmail.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid port", func(t *testing.T) {
		path := writeConfig(t, "auth:\n  callback_port: 70000\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "callback_port")
	})

	t.Run("zero timeout", func(t *testing.T) {
		path := writeConfig(t, "gmail:\n  timeout: 0s\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gmail.timeout")
	})
}
