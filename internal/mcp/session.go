package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerSessionTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_session_context",
		mcp.WithDescription("SESSION STARTUP — call this first, before anything else, every single session. Returns the complete context in one shot: master resume with all metrics and notes, tone profile, personal stories, and the live job hunt pipeline. This exists so the user never has to recontextualize."),
	), s.handleGetSessionContext)
}

func (s *Server) handleGetSessionContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rule := strings.Repeat("═", 60)
	sections := []string{
		rule,
		"SESSION CONTEXT — " + s.cfg.Contact.Name,
		rule,
		"",
		"── 1. MASTER RESUME ──────────────────────────────────────",
		"",
		s.ws.ReadMasterResume(),
		"",
		"── 2. TONE PROFILE ───────────────────────────────────────",
		"",
		s.toneProfileText(),
		"",
		"── 3. PERSONAL CONTEXT ───────────────────────────────────",
		"",
		s.personalContextText("", ""),
		"",
		"── 4. JOB HUNT STATUS ────────────────────────────────────",
		"",
		s.jobHuntStatusText(),
		"",
		rule,
		"You are now fully contextualized. Proceed.",
		rule,
	}
	return textResult(strings.Join(sections, "\n"))
}
