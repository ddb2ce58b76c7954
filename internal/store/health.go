package store

import (
	"time"
)

// Checkin is one mental health log entry.
type Checkin struct {
	Timestamp  string `json:"timestamp"`
	Date       string `json:"date"`
	Mood       string `json:"mood"`
	Energy     int    `json:"energy"`
	Productive bool   `json:"productive"`
	Notes      string `json:"notes"`
}

type healthData struct {
	Entries []Checkin `json:"entries"`
}

// HealthLog is the check-in history backed by mental_health_log.json.
type HealthLog struct {
	Path string
}

func NewHealthLog(path string) *HealthLog {
	return &HealthLog{Path: path}
}

func (l *HealthLog) Entries() []Checkin {
	return LoadJSON(l.Path, healthData{}).Entries
}

// BuildCheckin clamps energy to 1..10 and picks guidance for the entry.
func BuildCheckin(mood string, energy int, notes string, productive bool, now time.Time) (Checkin, string) {
	if energy < 1 {
		energy = 1
	}
	if energy > 10 {
		energy = 10
	}

	entry := Checkin{
		Timestamp:  now.Format(time.RFC3339),
		Date:       now.Format(DateLayout),
		Mood:       mood,
		Energy:     energy,
		Productive: productive,
		Notes:      notes,
	}

	var guidance string
	switch {
	case energy <= 3 || mood == "depressed" || mood == "low":
		guidance = "Low energy logged. Small wins count — " +
			"even one LeetCode problem or one email sent is real progress. " +
			"You're still moving, even on hard days."
	case mood == "hyperfocus" || energy >= 8:
		guidance = "High energy logged. Good time for deep work. " +
			"Just remember to eat, hydrate, and step away before burnout hits."
	default:
		guidance = "Logged. You're doing the work, even when it's hard."
	}
	return entry, guidance
}

// Add logs a check-in and returns the saved entry and its guidance line.
func (l *HealthLog) Add(mood string, energy int, notes string, productive bool, now time.Time) (Checkin, string, error) {
	data := LoadJSON(l.Path, healthData{})

	entry, guidance := BuildCheckin(mood, energy, notes, productive, now)
	data.Entries = append(data.Entries, entry)

	if err := SaveJSON(l.Path, data); err != nil {
		return Checkin{}, "", err
	}
	return entry, guidance, nil
}

// HasCheckinOn reports whether any entry carries the given ISO date.
func (l *HealthLog) HasCheckinOn(date string) bool {
	for _, e := range l.Entries() {
		if e.Date == date {
			return true
		}
	}
	return false
}

// LastDate returns the most recent check-in date, or "" when empty.
func (l *HealthLog) LastDate() string {
	last := ""
	for _, e := range l.Entries() {
		if e.Date > last {
			last = e.Date
		}
	}
	return last
}

// Recent returns entries dated within the past N days of now, oldest first.
func (l *HealthLog) Recent(days int, now time.Time) []Checkin {
	cutoff := now.AddDate(0, 0, -days).Format(DateLayout)
	var out []Checkin
	for _, e := range l.Entries() {
		if e.Date >= cutoff {
			out = append(out, e)
		}
	}
	return out
}

// AverageEnergy computes the mean energy over entries, 0 when empty.
func AverageEnergy(entries []Checkin) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Energy
	}
	return float64(sum) / float64(len(entries))
}
