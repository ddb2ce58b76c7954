package mcp

import (
	"context"
	"fmt"
	"strings"

	"jobcontext/internal/config"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerMaterialTools() {
	s.mcpServer.AddTool(mcp.NewTool("read_master_resume",
		mcp.WithDescription("Read the master source resume. This is the single source of truth for work history, metrics, and skills — every generated resume derives from it."),
	), s.handleReadMasterResume)

	s.mcpServer.AddTool(mcp.NewTool("list_existing_materials",
		mcp.WithDescription("List existing optimized resumes and cover letters, optionally filtered by a company name substring."),
		mcp.WithString("company", mcp.Description("Only list files whose name contains this company")),
	), s.handleListExistingMaterials)

	s.mcpServer.AddTool(mcp.NewTool("read_existing_resume",
		mcp.WithDescription("Read a specific resume from the optimized resumes folder by filename."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Resume filename, e.g. 'Resume - FanDuel.txt'")),
	), s.handleReadExistingResume)

	s.mcpServer.AddTool(mcp.NewTool("read_reference_file",
		mcp.WithDescription("Read a file from the reference materials folder — formatting guides, ATS notes, skill matrices."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Reference filename")),
	), s.handleReadReferenceFile)

	s.mcpServer.AddTool(mcp.NewTool("save_resume_txt",
		mcp.WithDescription("Save resume text into the optimized resumes folder. Use after drafting a customized resume so export_resume_pdf() can pick it up."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Target filename, e.g. 'Resume - FanDuel.txt'")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Full resume text")),
	), s.handleSaveResumeTxt)

	s.mcpServer.AddTool(mcp.NewTool("save_cover_letter_txt",
		mcp.WithDescription("Save cover letter text into the cover letters folder. Use after drafting so export_cover_letter_pdf() can pick it up."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Target filename, e.g. 'Cover Letter - FanDuel.txt'")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Full cover letter text")),
	), s.handleSaveCoverLetterTxt)
}

func (s *Server) handleReadMasterResume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(s.ws.ReadMasterResume())
}

func (s *Server) handleListExistingMaterials(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	company := req.GetString("company", "")
	resumes, letters, resumesOK, lettersOK := s.ws.ListMaterials(company)

	var lines []string
	section := func(title string, names []string, ok bool, subdir string) {
		lines = append(lines, fmt.Sprintf("\n══ %s (%d) ══", title, len(names)))
		switch {
		case !ok:
			lines = append(lines, fmt.Sprintf("  (folder not found: %s)", subdir))
		case len(names) == 0:
			lines = append(lines, "  (none found)")
		default:
			for _, name := range names {
				lines = append(lines, "  "+name)
			}
		}
	}
	section("RESUMES", resumes, resumesOK, config.ResumesSubdir)
	section("COVER LETTERS", letters, lettersOK, config.CoverLettersSubdir)

	return textResult(strings.Join(lines, "\n"))
}

func (s *Server) handleReadExistingResume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return errResult("%v", err)
	}
	content, err := s.ws.ReadResume(filename)
	if err != nil {
		return textResult(fmt.Sprintf("Not found: %s\nUse list_existing_materials() to see available resumes.", filename))
	}
	return textResult(content)
}

func (s *Server) handleReadReferenceFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return errResult("%v", err)
	}
	content, available, err := s.ws.ReadReference(filename)
	if err != nil {
		return textResult(fmt.Sprintf("Not found: %s\nAvailable: %s", filename, strings.Join(available, ", ")))
	}
	return textResult(content)
}

func (s *Server) handleSaveResumeTxt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return errResult("%v", err)
	}
	content, err := req.RequireString("content")
	if err != nil {
		return errResult("%v", err)
	}
	path, err := s.ws.SaveResumeText(filename, content)
	if err != nil {
		return errResult("✗ %v", err)
	}
	return textResult("✓ Saved: " + path)
}

func (s *Server) handleSaveCoverLetterTxt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return errResult("%v", err)
	}
	content, err := req.RequireString("content")
	if err != nil {
		return errResult("%v", err)
	}
	path, err := s.ws.SaveCoverLetterText(filename, content)
	if err != nil {
		return errResult("✗ %v", err)
	}
	return textResult("✓ Saved: " + path)
}
