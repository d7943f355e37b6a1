package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkeller/chatvault/internal/models"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CHATVAULT_LOG_FILE", "")
	t.Setenv("CHATVAULT_LOG_LEVEL", "")
	t.Setenv("CHATVAULT_SIDE_POLICY", "")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	// A nonexistent default-location file must not be an error, so point
	// the user config dir somewhere empty.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, models.FirstSenderIsPeer, cfg.SidePolicy)
	assert.Equal(t, 50, cfg.NameLimit)
	assert.NotEmpty(t, cfg.LogFile)
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
log_file: /tmp/custom.log
log_level: debug
side_policy: first-sender-is-self
name_limit: 80
media_extensions:
  webp: image
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.log", cfg.LogFile)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, models.FirstSenderIsSelf, cfg.SidePolicy)
	assert.Equal(t, 80, cfg.NameLimit)
	assert.Equal(t, map[string]string{"webp": "image"}, cfg.MediaExtensions)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHATVAULT_LOG_LEVEL", "error")
	t.Setenv("CHATVAULT_SIDE_POLICY", "first-sender-is-self")

	path := writeConfig(t, "log_level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelError, cfg.LogLevel)
	assert.Equal(t, models.FirstSenderIsSelf, cfg.SidePolicy)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, "log_level: [broken\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogLevel(tt.in), "input %q", tt.in)
	}
}
