package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"jobcontext/internal/store"
	"jobcontext/internal/workspace"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerToneTools() {
	s.mcpServer.AddTool(mcp.NewTool("log_tone_sample",
		mcp.WithDescription("Ingest a writing sample to build the user's tone/voice profile. Pass the text, a source label (e.g. 'cover_letter_fanduel'), and optional context describing the situation. Used to calibrate the AI before drafting new materials."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The writing sample text")),
		mcp.WithString("source", mcp.Required(), mcp.Description("Source label, e.g. 'cover_letter_fanduel'")),
		mcp.WithString("context", mcp.Description("What the sample is from / the situation it was written in")),
	), s.handleLogToneSample)

	s.mcpServer.AddTool(mcp.NewTool("get_tone_profile",
		mcp.WithDescription("Return all logged tone samples so the AI can calibrate the user's writing voice before drafting cover letters, outreach messages, or other materials."),
	), s.handleGetToneProfile)

	s.mcpServer.AddTool(mcp.NewTool("scan_materials_for_tone",
		mcp.WithDescription("Auto-scan resume materials and ingest new files as tone samples. category can be 'cover_letters', 'resumes', 'misc', or 'all'. Skips already-indexed files unless force is true. Optionally filter by company name."),
		mcp.WithString("category", mcp.Description("Material category: 'cover_letters' (default), 'resumes', 'misc', or 'all'")),
		mcp.WithNumber("limit", mcp.Description("Max files to return per call (default 3)")),
		mcp.WithString("company", mcp.Description("Only include files whose name contains this company")),
		mcp.WithBoolean("force", mcp.Description("Re-scan files that were already indexed")),
	), s.handleScanMaterialsForTone)
}

func (s *Server) handleLogToneSample(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return errResult("%v", err)
	}
	source, err := req.RequireString("source")
	if err != nil {
		return errResult("%v", err)
	}

	entry, err := s.tone.Add(text, source, req.GetString("context", ""))
	if err != nil {
		return errResult("failed to save tone sample: %v", err)
	}
	return textResult(fmt.Sprintf("✓ Tone sample logged (#%d, %d words from '%s')",
		entry.ID, entry.WordCount, source))
}

func (s *Server) toneProfileText() string {
	samples := s.tone.Samples()
	if len(samples) == 0 {
		return "No tone samples logged yet.\n" +
			"Use log_tone_sample() to ingest writing samples — cover letters, " +
			"messages, anything the user actually wrote."
	}

	lines := []string{
		fmt.Sprintf("═══ TONE PROFILE (%d samples, %d total words) ═══",
			len(samples), store.TotalWords(samples)),
		"Use these samples to calibrate the user's voice before writing anything.",
		"",
	}
	for _, sample := range samples {
		lines = append(lines, fmt.Sprintf("── Sample #%d | %s ──", sample.ID, sample.Source))
		if sample.Context != "" {
			lines = append(lines, "Context: "+sample.Context)
		}
		lines = append(lines, sample.Text, "")
	}
	return strings.Join(lines, "\n")
}

func (s *Server) handleGetToneProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(s.toneProfileText())
}

func (s *Server) handleScanMaterialsForTone(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "cover_letters")
	limit := req.GetInt("limit", 3)
	company := req.GetString("company", "")
	force := req.GetBool("force", false)

	candidates := s.ws.ToneScanCandidates(category, company)

	if !force {
		scanned := s.scanIndex.Scanned()
		var kept []workspace.ScanCandidate
		for _, c := range candidates {
			if _, ok := scanned[c.Rel]; !ok {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	totalRemaining := len(candidates)
	batch := candidates
	if len(batch) > limit {
		batch = batch[:limit]
	}

	if len(batch) == 0 {
		filterNote := ""
		if company != "" {
			filterNote = fmt.Sprintf(" (company filter: '%s')", company)
		}
		return textResult(fmt.Sprintf("All %s files have been scanned%s.\n"+
			"Use force=True to re-scan, change category, or add new files.", category, filterNote))
	}

	rule := strings.Repeat("─", 60)
	lines := []string{
		fmt.Sprintf("═══ MATERIAL SCAN — %s ═══", strings.ToUpper(category)),
		fmt.Sprintf("Returning %d of %d unscanned files.", len(batch), totalRemaining),
		"",
	}

	rels := make([]string, 0, len(batch))
	for _, c := range batch {
		lines = append(lines,
			rule,
			"FILE: "+filepath.Base(c.Path),
			rule,
			s.ws.ReadFile(c.Path),
			"")
		rels = append(rels, c.Rel)
	}
	if err := s.scanIndex.MarkScanned(rels...); err != nil {
		return errResult("failed to update scan index: %v", err)
	}

	lines = append(lines,
		"═══ EXTRACTION INSTRUCTIONS ═══",
		"",
		"For each file above, extract:",
		"  1. TONE SAMPLES  — paragraphs that sound distinctly like the user's voice.",
		"     Best candidates: opening paragraph, closing paragraph, any personal framing.",
		"     Call: log_tone_sample(text='...', source='Cover Letter <Company>')",
		"",
		"  2. PERSONAL STORIES — any specific anecdote, motivation, or non-resume detail.",
		"     Call: log_personal_story(story='...', tags=[...], title='...')",
		"",
		fmt.Sprintf("  %d file(s) remaining in this category.", totalRemaining-len(batch)),
		"  Call scan_materials_for_tone() again to continue.")

	return textResult(strings.Join(lines, "\n"))
}
