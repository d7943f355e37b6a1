package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerWithWriters_FansOutToBothSinks(t *testing.T) {
	var stderr, file bytes.Buffer

	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)
	logger.Info("archive ingested", "messages", 3)

	assert.Contains(t, stderr.String(), "archive ingested")

	var record map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &record))
	assert.Equal(t, "archive ingested", record["msg"])
	assert.EqualValues(t, 3, record["messages"])
}

func TestSetupLoggerWithWriters_RespectsLevel(t *testing.T) {
	var stderr, file bytes.Buffer

	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelWarn)
	logger.Info("quiet")
	logger.Warn("loud")

	assert.NotContains(t, stderr.String(), "quiet")
	assert.Contains(t, stderr.String(), "loud")
	assert.Contains(t, file.String(), "loud")
}
