package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "imap.gmail.com", cfg.IMAP.Host)
	assert.Equal(t, "993", cfg.IMAP.Port)
	assert.Equal(t, "gpt-4.1-mini", cfg.AI.Model)
	assert.InDelta(t, 0.35, cfg.AI.Temperature, 0.001)
	assert.Equal(t, DefaultFetchLimit, cfg.Fetch.Limit)
	assert.True(t, cfg.Fetch.UnreadOnly)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
imap:
  host: mail.example.com
  port: "1993"
ai:
  model: gpt-4o
fetch:
  limit: 25
  unread_only: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mail.example.com", cfg.IMAP.Host)
	assert.Equal(t, "1993", cfg.IMAP.Port)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, 25, cfg.Fetch.Limit)
	assert.False(t, cfg.Fetch.UnreadOnly)

	// Keys absent from the file keep their defaults.
	assert.InDelta(t, 0.35, cfg.AI.Temperature, 0.001)
	assert.Equal(t, 1024, cfg.AI.MaxTokens)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := defaultAppConfig()
	cfg.IMAP.Host = "imap.fastmail.com"
	cfg.Fetch.Limit = 7

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "imap.fastmail.com", loaded.IMAP.Host)
	assert.Equal(t, 7, loaded.Fetch.Limit)
}
