package mcp

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"jobcontext/internal/ai"
	"jobcontext/internal/rag"

	"github.com/mark3labs/mcp-go/mcp"
)

const resumeFormatSpec = `
## RESUME .TXT FORMAT SPECIFICATION
The PDF parser is strict. Deviations cause rendering failures. Follow exactly.

### File skeleton
` + "```" + `
<FULL NAME ALL CAPS>
FULL NAME ALL CAPS

phone: +1.555.000.0000
email: you@email.com
linkedin: www.linkedin.com/in/yourhandle

ROLE TITLE | Tech • Stack • Here

One-paragraph summary (2-4 sentences, no bullets, no label).

──────────────────────────────────────────────────────────

CORE TECHNICAL SKILLS

Label 1: value, value, value
Label 2: value, value, value

──────────────────────────────────────────────────────────

PROFESSIONAL EXPERIENCE

Job Title | Company Name, Location | Month YYYY - Month YYYY
• Bullet starting with the Unicode bullet character •
• Second bullet

Next Title | Company | Month YYYY - Month YYYY
• Bullet

──────────────────────────────────────────────────────────

EDUCATION

Degree | School Name | YYYY
Details line (GPA, honors, relevant coursework)

──────────────────────────────────────────────────────────

LEADERSHIP & COMMUNITY

Role/label: description
Role/label: description
` + "```" + `

### Critical rules
1. Name MUST appear as its own full line immediately after the <NAME> opening tag.
2. Section headers: ALL CAPS exactly — PROFESSIONAL EXPERIENCE, CORE TECHNICAL SKILLS,
   EDUCATION, LEADERSHIP & COMMUNITY.
3. Job header: Title | Company, Location | Month YYYY - Month YYYY (3 pipe-delimited parts).
4. Bullets MUST start with • (Unicode U+2022). Do NOT use - or *.
5. Contact block: labeled fields with lowercase label and colon — phone:, email:, linkedin:.
6. Separator lines: ────────────────────────────────────────────────────────── (Unicode box-
   drawing characters, same length every time).
7. Skills format: Label: value, value, value — colon after label, comma-separated values.
8. No hard line wrapping — let lines be as long as they need to be; the renderer wraps text.

### Target length
- Aim for 650–800 words total (one tight page in Courier New 9.2pt).
- 4–6 bullets per job, each 1–2 rendered lines.
- Skills section: 6–8 labeled rows.
`

const coverLetterFormatSpec = `
## COVER LETTER .TXT FORMAT SPECIFICATION
Rules are ABSOLUTE. The PDF template has exact dimensions — overflow is invisible.

### File skeleton
` + "```" + `
<FULL NAME ALL CAPS>
FULL NAME ALL CAPS

phone: +1.555.000.0000
email: you@email.com
linkedin: www.linkedin.com/in/yourhandle
address: 123 Street Name
city_state: City, ST 00000

Dear Hiring Manager,

[Paragraph 1]

[Paragraph 2]

[Paragraph 3]

[Paragraph 4]

Sincerely,
FULL NAME
` + "```" + `

### Critical rules — NON-NEGOTIABLE
1. MAX 400 WORDS in the letter body (everything from "Dear..." through the sign-off name).
   Count your words. If over, cut.
2. Exactly 4 body paragraphs — no more, no less:
   • Para 1 (60–80 words): Hook + role name + why this specific company.
     Open with a specific claim, insight, or framing — NOT "I am excited/eager to apply".
     Lead with what you bring or why this role specifically, then name the role.
   • Para 2 (100–130 words): Most relevant technical achievement with a real metric.
   • Para 3 (90–115 words): Second differentiator — leadership, AI innovation, domain fit,
     OR a highly relevant side project / personal initiative. If the candidate has built
     something independently that directly relates to the role, use it here.
   • Para 4 (25–40 words): Short closer — reaffirm interest, invite next step.
3. NO date, NO company address, NO "Re:" line, NO address block in the body.
4. Start with the salutation: Dear Hiring Manager,
5. NO bold, NO bullet points, NO headers inside the letter body — prose only.
6. No hard line wrapping — let lines be as long as needed.
`

const resumeSystem = `You are an expert technical resume writer. Your job is to produce a tailored,
metrics-driven software engineering resume for the candidate described below.

Output ONLY the raw resume text in the exact format specified — no preamble,
no markdown fences, no commentary. The output will be saved directly to a .txt
file and fed to a strict PDF parser.

Write in the candidate's voice as defined by their tone profile. Emphasize the
skills and stories most relevant to the target role and company. All metrics,
achievements, and company names must come verbatim from the master resume —
do not invent or embellish anything.
`

const coverLetterSystem = `You are an expert cover letter writer. Produce a tailored one-page cover letter
for the candidate described below.

Output ONLY the raw cover letter text in the exact format specified — no
preamble, no markdown fences, no commentary. The output will be saved directly
to a .txt file and fed to a strict PDF parser.

Write in the candidate's voice as defined by their tone profile. Be specific,
metric-driven, and direct. Never be generic or sycophantic.

FORBIDDEN openers — never start the letter with any of these:
- "I am excited to apply"
- "I am eager to apply"
- "I am writing to apply"
- "I am thrilled"
- "I am pleased"
- "I have always admired"
The first sentence must hook with a specific claim, achievement, or framing — not
an announcement that you're applying. The reader already knows that.

You will receive a PERSONAL STORIES & CONTEXT block. This is the most important
input. Para 2 and Para 3 MUST draw from specific moments, names, projects, or
outcomes described there — not from generic resume language. If a story mentions
a real person, a specific project name, or a concrete outcome, use it.
`

func (s *Server) registerGenerateTools() {
	s.mcpServer.AddTool(mcp.NewTool("generate_resume",
		mcp.WithDescription("Generate a tailored resume for a specific company and role. With an OpenAI API key configured this calls the API directly, saves the .txt, exports a PDF, and returns the finished path. Without a key it returns a fully-structured context package with master resume, tone profile, customization strategy, and exact .txt format instructions so the orchestrating AI can write the content and call save_resume_txt + export_resume_pdf."),
		mcp.WithString("company", mcp.Required(), mcp.Description("Target company")),
		mcp.WithString("role", mcp.Required(), mcp.Description("Target role title")),
		mcp.WithString("job_description", mcp.Required(), mcp.Description("Full job description text")),
		mcp.WithString("output_filename", mcp.Description("Output .txt filename, auto-generated when omitted")),
	), s.handleGenerateResume)

	s.mcpServer.AddTool(mcp.NewTool("generate_cover_letter",
		mcp.WithDescription("Generate a tailored cover letter for a specific company and role. With an OpenAI API key configured this calls the API directly, saves the .txt, exports a PDF, and returns the finished path. Without a key it returns a context package for the orchestrating AI to write the content. Hard constraints: max 400 words, exactly 4 paragraphs, prose only, salutation 'Dear Hiring Manager,'."),
		mcp.WithString("company", mcp.Required(), mcp.Description("Target company")),
		mcp.WithString("role", mcp.Required(), mcp.Description("Target role title")),
		mcp.WithString("job_description", mcp.Required(), mcp.Description("Full job description text")),
		mcp.WithString("output_filename", mcp.Description("Output .txt filename, auto-generated when omitted")),
	), s.handleGenerateCoverLetter)
}

// ragContext pulls the top-n chunks per category for a query, empty when
// the index or key is unavailable.
func (s *Server) ragContext(ctx context.Context, client *ai.Client, query string, categories []string, nPerCategory int) string {
	if client == nil {
		return ""
	}
	ix := rag.New(s.cfg, client, s.logger)

	var sections []string
	for _, cat := range categories {
		hits, err := ix.Search(ctx, query, cat, nPerCategory)
		if err != nil || len(hits) == 0 {
			continue
		}
		label := titleWords(strings.ReplaceAll(cat, "_", " "))
		var snippets []string
		for _, h := range hits {
			snippets = append(snippets, h.Text)
		}
		sections = append(sections, fmt.Sprintf("[%s]\n%s", label, strings.Join(snippets, "\n\n---\n\n")))
	}
	return strings.Join(sections, "\n\n")
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

var unsafeFilenameRe = regexp.MustCompile(`[^A-Za-z0-9 ]`)
var multiSpaceRe = regexp.MustCompile(`\s+`)

// safeFilename builds the default output filename for generated materials.
func (s *Server) safeFilename(company, role, suffix string) string {
	slug := unsafeFilenameRe.ReplaceAllString(fmt.Sprintf("%s %s %s", company, role, suffix), "")
	slug = strings.TrimSpace(multiSpaceRe.ReplaceAllString(slug, " "))
	prefix := s.cfg.Contact.Name
	if prefix == "" {
		prefix = "Resume"
	}
	if suffix == "Resume" {
		return fmt.Sprintf("%s Resume - %s.txt", prefix, slug)
	}
	return fmt.Sprintf("%s Cover Letter - %s.txt", prefix, slug)
}

func (s *Server) buildResumeUserMessage(ctx context.Context, client *ai.Client, company, role, jd string) string {
	strategy, _ := customizationStrategy(inferRoleType(role))
	ragBlock := s.ragContext(ctx, client,
		fmt.Sprintf("%s %s software engineer achievements metrics", role, company),
		[]string{rag.CategoryResume, rag.CategoryReference}, 3)

	parts := []string{
		"TARGET COMPANY: " + company,
		"TARGET ROLE: " + role,
		"JOB DESCRIPTION:\n" + jd,
		"CUSTOMIZATION STRATEGY:\n" + strategy,
		"MASTER RESUME (source of truth — use real metrics only):\n" + s.ws.ReadMasterResume(),
		"PERSONAL STORIES & CONTEXT (use these specific examples — they are richer than the master resume):\n" + s.personalContextText("", ""),
	}
	if ragBlock != "" {
		parts = append(parts, "REFERENCE EXAMPLES FROM PAST RESUMES (mirror strong bullet phrasing and metrics structure from these):\n"+ragBlock)
	}
	parts = append(parts,
		"HBDI COGNITIVE PROFILE (use this for bullet framing — lead with concrete outcome, then the insight or method that drove it):\n"+s.hbdiProfileText(),
		"TONE PROFILE (write in this voice):\n"+s.toneProfileText(),
		resumeFormatSpec,
		"Now write the resume. Output the raw .txt content only.")
	return strings.Join(parts, "\n\n")
}

func (s *Server) buildCoverLetterUserMessage(ctx context.Context, client *ai.Client, company, role, jd string) string {
	ragBlock := s.ragContext(ctx, client,
		fmt.Sprintf("%s %s cover letter", role, company),
		[]string{rag.CategoryCoverLetters, rag.CategoryAssessments}, 2)

	parts := []string{
		"TARGET COMPANY: " + company,
		"TARGET ROLE: " + role,
		"JOB DESCRIPTION:\n" + jd,
		"MASTER RESUME (source of truth — use real metrics only):\n" + s.ws.ReadMasterResume(),
		"PERSONAL STORIES & CONTEXT (prioritise these over generic resume bullets — use specific details, names, and moments from here in Para 2 and Para 3):\n" + s.personalContextText("", ""),
	}
	if ragBlock != "" {
		parts = append(parts, "REFERENCE EXAMPLES FROM PAST COVER LETTERS & ASSESSMENTS (use the phrasing style and fitment signals from these — do NOT copy verbatim):\n"+ragBlock)
	}
	parts = append(parts,
		"HBDI COGNITIVE PROFILE (use this to shape HOW the story is told — anchor openers in a concrete outcome first; framing advice for this specific reader type is included):\n"+s.hbdiProfileText(),
		"TONE PROFILE (write in this voice):\n"+s.toneProfileText(),
		coverLetterFormatSpec,
		"Now write the cover letter. Output the raw .txt content only. Count words before finishing.")
	return strings.Join(parts, "\n\n")
}

// contextFallback packages system and user prompts for the orchestrating
// AI to handle when no API key is configured.
func contextFallback(system, user, toolName string) string {
	return strings.Join([]string{
		fmt.Sprintf("═══ %s — CONTEXT PACKAGE ═══", strings.ToUpper(toolName)),
		"No OpenAI API key found.",
		"Use the context below to write the output, then call save_resume_txt / save_cover_letter_txt," +
			" then call export_resume_pdf / export_cover_letter_pdf.",
		"",
		"── SYSTEM INSTRUCTIONS ──",
		system,
		"",
		"── USER CONTEXT ──",
		user,
	}, "\n")
}

func (s *Server) handleGenerateResume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	company, err := req.RequireString("company")
	if err != nil {
		return errResult("%v", err)
	}
	role, err := req.RequireString("role")
	if err != nil {
		return errResult("%v", err)
	}
	jd, err := req.RequireString("job_description")
	if err != nil {
		return errResult("%v", err)
	}

	client := s.openAIClient()
	userMsg := s.buildResumeUserMessage(ctx, client, company, role, jd)
	if client == nil {
		return textResult(contextFallback(resumeSystem, userMsg, "generate_resume"))
	}

	filename := req.GetString("output_filename", "")
	if filename == "" {
		filename = s.safeFilename(company, role, "Resume")
	}

	content, usage, err := client.Chat(ctx, resumeSystem, userMsg, ai.ChatOptions{
		Temperature: 0.3,
		MaxTokens:   2000,
	})
	if err != nil {
		return textResult(fmt.Sprintf("✗ OpenAI API error: %v\n\nFalling back to context package:\n\n%s",
			err, contextFallback(resumeSystem, userMsg, "generate_resume")))
	}

	saveResult := ""
	if path, err := s.ws.SaveResumeText(filename, content); err != nil {
		saveResult = fmt.Sprintf("✗ save failed: %v", err)
	} else {
		saveResult = "✓ Saved: " + path
	}
	pdfResult := s.exportResumePDF(ctx, filename, "", "")

	costNote := ""
	if note := usage.CostNote(); note != "" {
		costNote = "\n  " + note
	}
	return textResult(strings.Join([]string{
		fmt.Sprintf("✓ Resume generated for %s @ %s", role, company),
		fmt.Sprintf("  model:  %s%s", client.Model(), costNote),
		"  " + saveResult,
		"  " + pdfResult,
	}, "\n"))
}

func (s *Server) handleGenerateCoverLetter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	company, err := req.RequireString("company")
	if err != nil {
		return errResult("%v", err)
	}
	role, err := req.RequireString("role")
	if err != nil {
		return errResult("%v", err)
	}
	jd, err := req.RequireString("job_description")
	if err != nil {
		return errResult("%v", err)
	}

	client := s.openAIClient()
	userMsg := s.buildCoverLetterUserMessage(ctx, client, company, role, jd)
	if client == nil {
		return textResult(contextFallback(coverLetterSystem, userMsg, "generate_cover_letter"))
	}

	filename := req.GetString("output_filename", "")
	if filename == "" {
		filename = s.safeFilename(company, role, "Cover Letter")
	}

	content, usage, err := client.Chat(ctx, coverLetterSystem, userMsg, ai.ChatOptions{
		Temperature: 0.4,
		MaxTokens:   800,
	})
	if err != nil {
		return textResult(fmt.Sprintf("✗ OpenAI API error: %v\n\nFalling back to context package:\n\n%s",
			err, contextFallback(coverLetterSystem, userMsg, "generate_cover_letter")))
	}

	saveResult := ""
	if path, err := s.ws.SaveCoverLetterText(filename, content); err != nil {
		saveResult = fmt.Sprintf("✗ save failed: %v", err)
	} else {
		saveResult = "✓ Saved: " + path
	}
	pdfResult := s.exportCoverLetterPDF(ctx, filename, "")

	costNote := ""
	if note := usage.CostNote(); note != "" {
		costNote = "\n  " + note
	}
	return textResult(strings.Join([]string{
		fmt.Sprintf("✓ Cover letter generated for %s @ %s", role, company),
		fmt.Sprintf("  model:  %s%s", client.Model(), costNote),
		"  " + saveResult,
		"  " + pdfResult,
	}, "\n"))
}
