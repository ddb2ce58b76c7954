package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"jobcontext/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerRejectionTools() {
	s.mcpServer.AddTool(mcp.NewTool("log_rejection",
		mcp.WithDescription("Log a rejection from a job application. Records the company, role, interview stage reached, optional stated reason, and any additional notes for pattern analysis."),
		mcp.WithString("company", mcp.Required(), mcp.Description("Company name")),
		mcp.WithString("role", mcp.Required(), mcp.Description("Role title as applied")),
		mcp.WithString("stage", mcp.Required(), mcp.Description("Stage reached before rejection: 'applied', 'phone screen', 'technical screen', 'take-home', 'onsite', 'final round', 'unknown'")),
		mcp.WithString("reason", mcp.Description("Stated or inferred reason if known, e.g. 'overqualified', 'ghosted'")),
		mcp.WithString("notes", mcp.Description("Any additional context worth remembering")),
		mcp.WithString("date", mcp.Description("ISO date (YYYY-MM-DD), defaults to today")),
	), s.handleLogRejection)

	s.mcpServer.AddTool(mcp.NewTool("get_rejections",
		mcp.WithDescription("Retrieve logged rejections with optional filters and pattern analysis: stage histogram, repeat companies, top reasons, furthest stage reached, and an early-funnel warning."),
		mcp.WithString("company", mcp.Description("Filter by company name, partial match")),
		mcp.WithString("stage", mcp.Description("Filter by stage reached")),
		mcp.WithString("since", mcp.Description("ISO date — only show rejections on or after this date")),
		mcp.WithBoolean("include_pattern_analysis", mcp.Description("Append a brief pattern summary (default true)")),
	), s.handleGetRejections)
}

func (s *Server) handleLogRejection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	company, err := req.RequireString("company")
	if err != nil {
		return errResult("%v", err)
	}
	role, err := req.RequireString("role")
	if err != nil {
		return errResult("%v", err)
	}
	stage, err := req.RequireString("stage")
	if err != nil {
		return errResult("%v", err)
	}

	entry, err := s.rejects.Add(company, role, stage,
		req.GetString("reason", ""),
		req.GetString("notes", ""),
		req.GetString("date", ""))
	if err != nil {
		return errResult("failed to save rejection: %v", err)
	}

	stageLabel := stage
	if stageLabel == "" {
		stageLabel = "unknown stage"
	}
	return textResult(fmt.Sprintf("✓ Rejection logged: %s — %s (stage: %s, id: %d)",
		company, role, stageLabel, entry.ID))
}

func (s *Server) handleGetRejections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all := s.rejects.All()
	if len(all) == 0 {
		return textResult("No rejections logged yet.")
	}

	filtered := store.FilterRejections(all,
		req.GetString("company", ""),
		req.GetString("stage", ""),
		req.GetString("since", ""))
	if len(filtered) == 0 {
		return textResult("No rejections match the specified filters.")
	}

	sorted := append([]store.Rejection{}, filtered...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })

	lines := []string{fmt.Sprintf("═══ REJECTIONS (%d total) ═══", len(sorted)), ""}
	for _, r := range sorted {
		lines = append(lines, fmt.Sprintf("■ %s — %s", r.Company, r.Role))
		date := r.Date
		if date == "" {
			date = "—"
		}
		stage := r.Stage
		if stage == "" {
			stage = "—"
		}
		lines = append(lines, "  Date:   "+date)
		lines = append(lines, "  Stage:  "+stage)
		if r.Reason != "" {
			lines = append(lines, "  Reason: "+r.Reason)
		}
		if r.Notes != "" {
			lines = append(lines, "  Notes:  "+r.Notes)
		}
		lines = append(lines, "")
	}

	if req.GetBool("include_pattern_analysis", true) && len(filtered) >= 2 {
		lines = append(lines, patternSummary(filtered)...)
	}

	return textResult(strings.Join(lines, "\n"))
}

func patternSummary(rejections []store.Rejection) []string {
	p := store.AnalyzeRejections(rejections)

	lines := []string{"── PATTERN ANALYSIS ──", ""}

	lines = append(lines, "Rejections by stage:")
	for _, sc := range p.StageCounts {
		bar := strings.Repeat("▓", sc.Count)
		lines = append(lines, fmt.Sprintf("  %-20s %s (%d)", sc.Stage, bar, sc.Count))
	}
	lines = append(lines, "")

	if len(p.RepeatCompanies) > 0 {
		lines = append(lines, "Companies with multiple rejections:")
		for _, c := range p.RepeatCompanies {
			lines = append(lines, fmt.Sprintf("  %s: %d rejections", c.Stage, c.Count))
		}
		lines = append(lines, "")
	}

	if len(p.TopReasons) > 0 {
		lines = append(lines, "Stated/inferred reasons:")
		for _, r := range p.TopReasons {
			lines = append(lines, fmt.Sprintf("  '%s' — %dx", r.Stage, r.Count))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "Furthest stage reached: "+p.FurthestStage)
	if p.EarlyFunnel {
		lines = append(lines, "⚠  >60% rejections before technical screen — resume/ATS filtering may be the bottleneck.")
	}
	return lines
}
