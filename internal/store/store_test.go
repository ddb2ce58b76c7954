package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempFile(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func TestLoadJSON_MissingFileReturnsDefault(t *testing.T) {
	got := LoadJSON(tempFile(t, "nope.json"), PipelineData{})
	assert.Empty(t, got.Applications)
}

func TestLoadJSON_MalformedReturnsDefault(t *testing.T) {
	path := tempFile(t, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	got := LoadJSON(path, PipelineData{LastUpdated: "fallback"})
	assert.Equal(t, "fallback", got.LastUpdated)
}

func TestSaveJSON_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "data.json")
	require.NoError(t, SaveJSON(path, map[string]string{"k": "v"}))

	got := LoadJSON(path, map[string]string{})
	assert.Equal(t, "v", got["k"])
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2026, 8, 24, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysSince("2026-08-24", now))
	assert.Equal(t, 7, DaysSince("2026-08-17", now))
	// Timestamps work too, only the date prefix matters
	assert.Equal(t, 3, DaysSince("2026-08-21 09:15", now))
	// Unparseable dates sort as oldest
	assert.Equal(t, 999, DaysSince("soon", now))
	assert.Equal(t, 999, DaysSince("", now))
}
