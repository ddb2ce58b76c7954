package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"jobcontext/internal/render"
	"jobcontext/internal/workspace"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerExportTools() {
	s.mcpServer.AddTool(mcp.NewTool("export_resume_pdf",
		mcp.WithDescription("Export a .txt resume from the optimized resumes folder to a styled one-page PDF. Filename matching is fuzzy, with or without .txt. The footer tag is auto-detected from the filename when omitted."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Resume filename, with or without .txt")),
		mcp.WithString("footer_tag", mcp.Description("Text for the </TAG> footer, auto-detected when omitted")),
		mcp.WithString("output_filename", mcp.Description("Output PDF filename, defaults to the same stem + .pdf")),
	), s.handleExportResumePDF)

	s.mcpServer.AddTool(mcp.NewTool("export_cover_letter_pdf",
		mcp.WithDescription("Export a .txt cover letter from the cover letters folder to a styled two-column PDF."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Cover letter filename, with or without .txt")),
		mcp.WithString("output_filename", mcp.Description("Output PDF filename, defaults to the same stem + .pdf")),
	), s.handleExportCoverLetterPDF)
}

// exportResumePDF is the pipeline behind the tool; generate_resume reuses it.
func (s *Server) exportResumePDF(ctx context.Context, filename, footerTag, outputFilename string) string {
	source, err := workspace.ResolveMaterial(s.cfg.ResumesDir(), filename)
	if err != nil {
		return fmt.Sprintf("Error: file not found — %s", filename)
	}

	text, err := workspace.ReadTextFile(source)
	if err != nil {
		return fmt.Sprintf("Error reading %s: %v", filepath.Base(source), err)
	}

	resume := render.ParseResume(text, s.cfg.Contact)
	if footerTag != "" {
		resume.FooterTag = strings.ToUpper(footerTag)
	} else {
		resume.FooterTag = render.DeriveFooterTag(filepath.Base(source))
	}

	html, err := render.RenderResumeHTML(resume)
	if err != nil {
		return fmt.Sprintf("Error rendering template: %v", err)
	}

	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	outName := outputFilename
	if outName == "" {
		outName = stem
	}
	path, err := render.NewPDFRenderer(s.logger).WritePDF(ctx, html, s.cfg.PDFDir(), outName)
	if err != nil {
		return fmt.Sprintf("Error writing PDF: %v", err)
	}

	result := "✓ PDF exported: " + path
	if warning := render.CheckPageCount(path); warning != "" {
		result += "\n" + warning
	}
	return result
}

func (s *Server) exportCoverLetterPDF(ctx context.Context, filename, outputFilename string) string {
	source, err := workspace.ResolveMaterial(s.cfg.CoverLettersDir(), filename)
	if err != nil {
		return fmt.Sprintf("Error: file not found — %s", filename)
	}

	text, err := workspace.ReadTextFile(source)
	if err != nil {
		return fmt.Sprintf("Error reading %s: %v", filepath.Base(source), err)
	}

	letter := render.ParseCoverLetter(text, s.cfg.Contact)
	letter.FooterTag = "SOFTWARE ENGINEER"

	html, err := render.RenderCoverLetterHTML(letter)
	if err != nil {
		return fmt.Sprintf("Error rendering template: %v", err)
	}

	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	outName := outputFilename
	if outName == "" {
		outName = stem
	}
	path, err := render.NewPDFRenderer(s.logger).WritePDF(ctx, html, s.cfg.PDFDir(), outName)
	if err != nil {
		return fmt.Sprintf("Error writing PDF: %v", err)
	}
	return "✓ PDF exported: " + path
}

func (s *Server) handleExportResumePDF(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return errResult("%v", err)
	}
	return textResult(s.exportResumePDF(ctx, filename,
		req.GetString("footer_tag", ""),
		req.GetString("output_filename", "")))
}

func (s *Server) handleExportCoverLetterPDF(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return errResult("%v", err)
	}
	return textResult(s.exportCoverLetterPDF(ctx, filename, req.GetString("output_filename", "")))
}
