package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Empty(t, cfg.GitHub.Token)
	assert.Equal(t, filepath.Join(dir, "stargazer.db"), cfg.Cache.Path)
	assert.Equal(t, time.Hour, cfg.Cache.TTL())
	assert.True(t, cfg.Behavior.AutoCategorize)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.NotEmpty(t, cfg.Folders.Defaults)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	content := `
github:
  token: file-token
cache:
  path: /tmp/custom.db
  ttl_seconds: 120
behavior:
  auto_categorize: false
log_level: debug
folders:
  defaults:
    - name: Go
      auto_tags: [go, golang]
    - name: Reading List
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.GitHub.Token)
	assert.Equal(t, "/tmp/custom.db", cfg.Cache.Path)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL())
	assert.False(t, cfg.Behavior.AutoCategorize)
	assert.Equal(t, "debug", cfg.LogLevel)

	require.Len(t, cfg.Folders.Defaults, 2)
	assert.Equal(t, []string{"go", "golang"}, cfg.Folders.Defaults[0].AutoTags)
	assert.Empty(t, cfg.Folders.Defaults[1].AutoTags)
}

func TestLoadFromEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()

	content := `
github:
  token: file-token
log_level: info
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	t.Setenv("STARGAZER_GITHUB_TOKEN", "env-token")
	t.Setenv("STARGAZER_LOG_LEVEL", "error")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.GitHub.Token)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadFromValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "non-positive ttl",
			content: "cache:\n  ttl_seconds: 0\n",
			errText: "ttl_seconds",
		},
		{
			name:    "bad log level",
			content: "log_level: verbose\n",
			errText: "log_level",
		},
		{
			name:    "unnamed default folder",
			content: "folders:\n  defaults:\n    - auto_tags: [go]\n",
			errText: "need a name",
		},
		{
			name:    "duplicate default folder",
			content: "folders:\n  defaults:\n    - name: Go\n    - name: Go\n",
			errText: "twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.content), 0o600))

			_, err := LoadFrom(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}
