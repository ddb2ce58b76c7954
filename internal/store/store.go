// Package store holds the JSON-file data layer: the application pipeline,
// rejection log, contacts, personal stories, tone samples, check-ins, and
// LinkedIn posts. Every file is a small whole-document JSON store; a missing
// or unreadable file always loads as its empty default so first runs and
// partial workspaces never fail.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// TimestampLayout is the human-readable stamp written to records.
	TimestampLayout = "2006-01-02 15:04"
	// DateLayout is the ISO day format used for date comparisons.
	DateLayout = "2006-01-02"
)

// Now returns the current timestamp in the record format.
func Now() string {
	return time.Now().Format(TimestampLayout)
}

// Today returns today's ISO date.
func Today() string {
	return time.Now().Format(DateLayout)
}

// LoadJSON reads a JSON document from path into a value of type T.
// Any error (missing file, bad JSON) yields the provided default.
func LoadJSON[T any](path string, def T) T {
	raw, err := os.ReadFile(path)
	if err != nil {
		return def
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def
	}
	return v
}

// SaveJSON writes v as indented JSON to path, creating parent directories
// as needed. The whole document is rewritten on every save.
func SaveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// DaysSince returns calendar days between an ISO date (or timestamp whose
// first 10 bytes are an ISO date) and now. Returns 999 when unparseable so
// malformed records sort as oldest.
func DaysSince(isoDate string, now time.Time) int {
	if len(isoDate) < 10 {
		return 999
	}
	d, err := time.ParseInLocation(DateLayout, isoDate[:10], now.Location())
	if err != nil {
		return 999
	}
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(nowDay.Sub(d).Hours() / 24)
}
