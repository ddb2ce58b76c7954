package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobcontext/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerHealthTools() {
	s.mcpServer.AddTool(mcp.NewTool("log_mental_health_checkin",
		mcp.WithDescription("Log a mental health check-in with mood label (e.g. 'good', 'anxious', 'hyperfocus', 'depressed'), energy level 1-10, optional notes, and whether the day felt productive. Returns a saved confirmation with personalized guidance based on the entry."),
		mcp.WithString("mood", mcp.Required(), mcp.Description("Mood label, e.g. 'good', 'anxious', 'hyperfocus', 'depressed'")),
		mcp.WithNumber("energy", mcp.Required(), mcp.Description("Energy level 1-10")),
		mcp.WithString("notes", mcp.Description("Optional notes about the day")),
		mcp.WithBoolean("productive", mcp.Description("Whether the day felt productive")),
	), s.handleLogCheckin)

	s.mcpServer.AddTool(mcp.NewTool("get_mental_health_log",
		mcp.WithDescription("Return recent mental health check-in history. Defaults to the last 14 days. Useful for tracking mood/energy trends during the job search."),
		mcp.WithNumber("days", mcp.Description("How many days back to include (default 14)")),
	), s.handleGetHealthLog)
}

// checkinNudge returns a reminder line when no check-in exists for today,
// or an empty string when one does.
func (s *Server) checkinNudge() string {
	today := store.Today()
	if s.health.HasCheckinOn(today) {
		return ""
	}

	const call = "Quick check-in: log_mental_health_checkin(mood='stable', energy=5)"
	last := s.health.LastDate()
	if last == "" {
		if len(s.health.Entries()) == 0 {
			return "⚠ No check-in logged yet today. " + call
		}
		last = "unknown"
	}
	return fmt.Sprintf("⚠ No check-in logged yet today (last check-in: %s). %s", last, call)
}

func (s *Server) handleLogCheckin(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mood, err := req.RequireString("mood")
	if err != nil {
		return errResult("%v", err)
	}
	energy, err := req.RequireInt("energy")
	if err != nil {
		return errResult("%v", err)
	}

	entry, guidance, err := s.health.Add(mood, energy,
		req.GetString("notes", ""),
		req.GetBool("productive", false),
		time.Now())
	if err != nil {
		return errResult("failed to save check-in: %v", err)
	}
	return textResult(fmt.Sprintf("Check-in saved (%s, energy %d/10, mood: %s).\n%s",
		entry.Date, entry.Energy, mood, guidance))
}

func (s *Server) handleGetHealthLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", 14)
	recent := s.health.Recent(days, time.Now())

	if len(recent) == 0 {
		return textResult(fmt.Sprintf("No check-ins logged in the past %d days.", days))
	}

	lines := []string{fmt.Sprintf("═══ MENTAL HEALTH LOG (last %d days) ═══", days), ""}
	for i := len(recent) - 1; i >= 0; i-- {
		e := recent[i]
		bar := "🟩"
		if e.Energy <= 3 {
			bar = "🟥"
		} else if e.Energy <= 6 {
			bar = "🟨"
		}
		prod := "–"
		if e.Productive {
			prod = "✓"
		}
		lines = append(lines, fmt.Sprintf("%s  %s  mood: %-12s  energy: %d/10  productive: %s",
			e.Date, bar, e.Mood, e.Energy, prod))
		if e.Notes != "" {
			lines = append(lines, "          ↳ "+e.Notes)
		}
	}

	avg := store.AverageEnergy(recent)
	lines = append(lines, "", fmt.Sprintf("Average energy over %d days: %.1f/10", days, avg))
	if avg <= 4 {
		lines = append(lines, "⚠  Trend: extended low-energy period. Consider reaching out for support.")
	} else if avg >= 7 {
		lines = append(lines, "✓  Trend: strong energy. Keep the momentum going.")
	}

	return textResult(strings.Join(lines, "\n"))
}
