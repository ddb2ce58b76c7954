package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCheckin_ClampsEnergy(t *testing.T) {
	now := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	entry, _ := BuildCheckin("stable", 15, "", false, now)
	assert.Equal(t, 10, entry.Energy)

	entry, _ = BuildCheckin("stable", -3, "", false, now)
	assert.Equal(t, 1, entry.Energy)

	assert.Equal(t, "2026-08-24", entry.Date)
}

func TestBuildCheckin_Guidance(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		mood   string
		energy int
		want   string
	}{
		{"low energy", "stable", 2, "Small wins count"},
		{"depressed mood", "depressed", 6, "Small wins count"},
		{"low mood", "low", 6, "Small wins count"},
		{"hyperfocus", "hyperfocus", 5, "deep work"},
		{"high energy", "good", 9, "deep work"},
		{"neutral", "stable", 5, "doing the work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, guidance := BuildCheckin(tt.mood, tt.energy, "", false, now)
			assert.Contains(t, guidance, tt.want)
		})
	}
}

func TestHealthLog_CheckinDates(t *testing.T) {
	l := NewHealthLog(tempFile(t, "health.json"))
	now := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	assert.False(t, l.HasCheckinOn("2026-08-24"))
	assert.Empty(t, l.LastDate())

	_, _, err := l.Add("good", 7, "", true, now.AddDate(0, 0, -2))
	require.NoError(t, err)
	_, guidance, err := l.Add("stable", 5, "slow day", false, now)
	require.NoError(t, err)
	assert.NotEmpty(t, guidance)

	assert.True(t, l.HasCheckinOn("2026-08-24"))
	assert.False(t, l.HasCheckinOn("2026-08-23"))
	assert.Equal(t, "2026-08-24", l.LastDate())
}

func TestHealthLog_Recent(t *testing.T) {
	l := NewHealthLog(tempFile(t, "health.json"))
	now := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	_, _, err := l.Add("good", 8, "", true, now.AddDate(0, 0, -20))
	require.NoError(t, err)
	_, _, err = l.Add("stable", 5, "", false, now.AddDate(0, 0, -5))
	require.NoError(t, err)
	_, _, err = l.Add("anxious", 4, "", false, now)
	require.NoError(t, err)

	recent := l.Recent(14, now)
	require.Len(t, recent, 2)
	assert.InDelta(t, 4.5, AverageEnergy(recent), 0.001)

	assert.Equal(t, 0.0, AverageEnergy(nil))
}
