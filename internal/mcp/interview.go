package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"jobcontext/internal/workspace"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerInterviewTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_interview_quick_reference",
		mcp.WithDescription("Return the full interview day quick reference: algorithm pattern cheat sheets, system design 5-step framework, testing talking points, and pre-interview checklist."),
	), s.handleGetInterviewQuickReference)

	s.mcpServer.AddTool(mcp.NewTool("get_leetcode_cheatsheet",
		mcp.WithDescription("Return the LeetCode algorithm cheatsheet. Pass a section name (e.g. 'trees', 'graphs', 'dynamic programming') to get just that section, or leave blank for the full reference."),
		mcp.WithString("section", mcp.Description("Section name, partial match against markdown headers")),
	), s.handleGetLeetcodeCheatsheet)

	s.mcpServer.AddTool(mcp.NewTool("generate_interview_prep_context",
		mcp.WithDescription("Bundle the master resume and quick reference into a structured context prompt for interview prep. Specify company, role, stage (phone_screen, technical, behavioral, system_design), and optional job description. Returns a prompt instructing the AI to generate top talking points, STAR responses, technical topics, smart questions, and confidence anchors."),
		mcp.WithString("company", mcp.Required(), mcp.Description("Company name")),
		mcp.WithString("role", mcp.Required(), mcp.Description("Role title")),
		mcp.WithString("stage", mcp.Description("Interview stage: phone_screen (default), technical, behavioral, system_design")),
		mcp.WithString("job_description", mcp.Description("Job description text, if available")),
	), s.handleGenerateInterviewPrepContext)

	s.mcpServer.AddTool(mcp.NewTool("get_existing_prep_file",
		mcp.WithDescription("Find and return all existing interview prep files for a given company — searches the material folders for files containing the company name and prep/interview/call/assessment keywords."),
		mcp.WithString("company", mcp.Required(), mcp.Description("Company name to search for")),
	), s.handleGetExistingPrepFile)

	s.mcpServer.AddTool(mcp.NewTool("save_interview_prep",
		mcp.WithDescription("Save interview prep notes for a company into the assessments folder as <Company>_Interview_Prep.md so get_existing_prep_file() finds them later."),
		mcp.WithString("company", mcp.Required(), mcp.Description("Company name")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Full prep notes, markdown")),
	), s.handleSaveInterviewPrep)
}

func (s *Server) handleGetInterviewQuickReference(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(s.ws.ReadFile(s.cfg.QuickReference()))
}

func (s *Server) handleGetLeetcodeCheatsheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content := s.ws.ReadFile(s.cfg.LeetcodeCheatsheet())
	section := req.GetString("section", "")
	if section == "" {
		return textResult(content)
	}

	extracted := workspace.ExtractMarkdownSection(content, section)
	if strings.TrimSpace(extracted) == "" {
		return textResult(fmt.Sprintf("Section '%s' not found. Returning full cheatsheet.\n\n%s", section, content))
	}
	return textResult(extracted)
}

func (s *Server) handleGenerateInterviewPrepContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	company, err := req.RequireString("company")
	if err != nil {
		return errResult("%v", err)
	}
	role, err := req.RequireString("role")
	if err != nil {
		return errResult("%v", err)
	}
	stage := req.GetString("stage", "phone_screen")

	descBlock := ""
	if jd := req.GetString("job_description", ""); jd != "" {
		descBlock = "\n──── JOB DESCRIPTION ────\n" + jd
	}

	return textResult(fmt.Sprintf(
		"═══ INTERVIEW PREP CONTEXT ═══\n"+
			"Company: %s\n"+
			"Role:    %s\n"+
			"Stage:   %s\n"+
			"%s\n\n"+
			"──── MASTER RESUME ────\n%s\n\n"+
			"──── QUICK REFERENCE / STAR STORIES ────\n%s\n\n"+
			"Use the above to produce:\n"+
			"  1. Top 5 things to communicate for THIS role/stage\n"+
			"  2. Anticipated questions + suggested STAR responses\n"+
			"  3. Technical topics to review (if applicable)\n"+
			"  4. Smart questions to ask the interviewer\n"+
			"  5. Any gaps to proactively address\n"+
			"  6. Confidence anchors — the strongest achievements relevant here\n",
		company, role, stage, descBlock,
		s.ws.ReadMasterResume(),
		s.ws.ReadFile(s.cfg.QuickReference())))
}

func (s *Server) handleGetExistingPrepFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	company, err := req.RequireString("company")
	if err != nil {
		return errResult("%v", err)
	}

	matches := s.ws.FindPrepFiles(company)
	if len(matches) == 0 {
		return textResult(fmt.Sprintf("No existing prep files found for '%s'.", company))
	}

	lines := []string{fmt.Sprintf("Found %d prep file(s) for '%s':\n", len(matches), company)}
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf("──── %s ────", filepath.Base(m)))
		lines = append(lines, s.ws.ReadFile(m))
		lines = append(lines, "")
	}
	return textResult(strings.Join(lines, "\n"))
}

func (s *Server) handleSaveInterviewPrep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	company, err := req.RequireString("company")
	if err != nil {
		return errResult("%v", err)
	}
	content, err := req.RequireString("content")
	if err != nil {
		return errResult("%v", err)
	}
	path, err := s.ws.SaveInterviewPrep(company, content)
	if err != nil {
		return errResult("✗ %v", err)
	}
	return textResult("✓ Saved: " + path)
}
