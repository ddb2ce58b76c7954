package mcp

import (
	"context"
	"fmt"
	"strings"

	"jobcontext/internal/projects"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerProjectTools() {
	s.mcpServer.AddTool(mcp.NewTool("scan_project_for_skills",
		mcp.WithDescription("Pull and scan configured side-project folders for technologies, diff them against the master resume, and suggest ready-to-paste resume bullets for anything not yet represented."),
	), s.handleScanProjectForSkills)
}

func (s *Server) handleScanProjectForSkills(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scanner := projects.NewScanner(s.cfg, s.logger)
	report, err := scanner.Scan(ctx, s.ws.ReadMasterResume())
	if err != nil {
		return errResult("%v", err)
	}

	lines := []string{"═══ SIDE PROJECT SKILL SCAN ═══", ""}

	for _, p := range report.Projects {
		lines = append(lines, fmt.Sprintf("── %s (%d files, git pull: %s) ──", p.Name, p.FileCount, p.PullStatus))
		for _, t := range p.Tech {
			marker := "  ★ NEW"
			if report.AlreadyOnResume[t] {
				marker = "  ✓"
			}
			lines = append(lines, fmt.Sprintf("%s  %s", marker, t))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "── New Skills Not Yet on Master Resume (across all projects) ──")
	if len(report.NewSkills) == 0 {
		lines = append(lines, "  (none — master resume is up to date)")
	} else {
		for _, skill := range report.NewSkills {
			lines = append(lines, "  • "+skill)
		}
	}

	lines = append(lines, "", "── Suggested Resume Bullets ──")
	for _, b := range report.Bullets {
		lines = append(lines, "  • "+b)
	}

	return textResult(strings.Join(lines, "\n"))
}
