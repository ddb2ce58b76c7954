package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPipelineTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_job_hunt_status",
		mcp.WithDescription("Return the current job application pipeline: all tracked companies, roles, statuses, next steps, and contacts. Also nudges a daily mental health check-in if none has been logged today."),
	), s.handleGetJobHuntStatus)

	s.mcpServer.AddTool(mcp.NewTool("update_application",
		mcp.WithDescription("Add or update a job application in the pipeline tracker. Pass company, role, and current status (e.g. 'applied', 'phone screen', 'offer'). Optionally include next_steps, contact name, and free-form notes."),
		mcp.WithString("company", mcp.Required(), mcp.Description("Company name")),
		mcp.WithString("role", mcp.Required(), mcp.Description("Role title")),
		mcp.WithString("status", mcp.Required(), mcp.Description("Current status, e.g. 'applied', 'phone screen', 'offer'")),
		mcp.WithString("next_steps", mcp.Description("What happens next, e.g. 'follow up 2026-09-01'")),
		mcp.WithString("contact", mcp.Description("Contact name at the company")),
		mcp.WithString("notes", mcp.Description("Free-form notes")),
	), s.handleUpdateApplication)
}

func (s *Server) jobHuntStatusText() string {
	data := s.pipeline.Load()
	nudge := s.checkinNudge()

	if len(data.Applications) == 0 {
		base := "No applications tracked yet. Use update_application() to add one."
		if nudge != "" {
			return base + "\n\n" + nudge
		}
		return base
	}

	lastUpdated := data.LastUpdated
	if lastUpdated == "" {
		lastUpdated = "unknown"
	}
	lines := []string{
		"═══ JOB HUNT STATUS ═══",
		"Last updated: " + lastUpdated,
		"",
	}
	for _, app := range data.Applications {
		lines = append(lines, fmt.Sprintf("■ %s — %s", app.Company, app.Role))
		lines = append(lines, "  Status:       "+app.Status)
		updated := app.LastUpdated
		if updated == "" {
			updated = "—"
		}
		lines = append(lines, "  Last update:  "+updated)
		if app.NextSteps != "" {
			lines = append(lines, "  Next steps:   "+app.NextSteps)
		}
		if app.Contact != "" {
			lines = append(lines, "  Contact:      "+app.Contact)
		}
		if app.Notes != "" {
			lines = append(lines, "  Notes:        "+app.Notes)
		}
		lines = append(lines, "")
	}

	if nudge != "" {
		lines = append(lines, "", nudge)
	}
	return strings.Join(lines, "\n")
}

func (s *Server) handleGetJobHuntStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(s.jobHuntStatusText())
}

func (s *Server) handleUpdateApplication(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	company, err := req.RequireString("company")
	if err != nil {
		return errResult("%v", err)
	}
	role, err := req.RequireString("role")
	if err != nil {
		return errResult("%v", err)
	}
	status, err := req.RequireString("status")
	if err != nil {
		return errResult("%v", err)
	}

	action, err := s.pipeline.Upsert(company, role, status,
		req.GetString("next_steps", ""),
		req.GetString("contact", ""),
		req.GetString("notes", ""))
	if err != nil {
		return errResult("failed to save application: %v", err)
	}
	return textResult(fmt.Sprintf("✓ %s: %s — %s (%s)", action, company, role, status))
}
