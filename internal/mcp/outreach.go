package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var messageTypeInstructions = map[string]string{
	"linkedin_followup": "Write a short LinkedIn follow-up message (3–5 sentences max). " +
		"The tone should be warm and direct — not sycophantic, not stiff. " +
		"Reference what happened (screen, application, referral) without restating everything. " +
		"End with a clear, low-pressure next step. " +
		"Do NOT start with 'I hope this message finds you well' or any variation of that.",
	"thank_you": "Write a brief thank-you note (4–6 sentences). " +
		"Be specific about one thing from the conversation that was genuinely interesting or useful. " +
		"Do not be effusive — one genuine, specific observation beats three generic compliments. " +
		"Reaffirm interest without desperation. " +
		"If this is for a referral contact (not interviewer), acknowledge what they did for you specifically.",
	"referral_ask": "Write a referral request message. Be direct about what you're asking — " +
		"don't bury the ask. Lead with the connection, then the ask, then give them " +
		"a one-sentence reason why the role/company is a fit. " +
		"Keep it short enough that they can respond in 30 seconds. " +
		"Make it easy for them to say yes by being specific about what you need from them.",
	"recruiter_nudge": "Write a polite follow-up nudge to a recruiter or contact who hasn't responded. " +
		"Keep it to 2–3 sentences. Don't apologize for following up. " +
		"Restate your interest briefly and ask directly if there's an update. " +
		"Tone: confident and easy, not anxious.",
	"cold_outreach": "Write a cold outreach message to a hiring manager or engineer at the company. " +
		"Lead with the most relevant credential or project that's directly applicable to their work. " +
		"Do not summarize your entire resume — pick one thing that earns the read. " +
		"Be specific about why you're reaching out to them specifically, not just the company. " +
		"End with a concrete but low-commitment ask (a 15-minute call, or just asking if they're hiring).",
}

const defaultInstruction = "Write a professional, personable outreach message appropriate for the described context. " +
	"Keep it concise. Avoid AI-sounding openers. Write in the user's voice as defined by the tone profile."

const formattingRules = "- Keep it short. If it can be 3 sentences, don't write 5.\n" +
	"- No emoji.\n" +
	"- No AI-sounding openers (no 'I hope this finds you well', 'I wanted to reach out', " +
	"'I am excited to', 'I trust this email finds you', etc.)\n" +
	"- Write like a person, not a cover letter generator.\n" +
	"- If email format: provide Subject line + body. If LinkedIn/text: body only."

// detectMessageType guesses the message type from the situation description.
func detectMessageType(contextText string) string {
	cl := strings.ToLower(contextText)
	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(cl, w) {
				return true
			}
		}
		return false
	}
	switch {
	case containsAny("thank", "grateful", "appreciate"):
		return "thank_you"
	case containsAny("refer", "referral", "pass along", "put in a word"):
		return "referral_ask"
	case containsAny("no response", "follow up", "following up", "nudge", "haven't heard"):
		return "recruiter_nudge"
	case containsAny("cold", "don't know", "never met", "reached out to"):
		return "cold_outreach"
	default:
		return "linkedin_followup"
	}
}

// companyStatus pulls the tracked application state for one company.
func (s *Server) companyStatus(company string) string {
	d := s.pipeline.Load()
	cl := strings.ToLower(company)
	for _, a := range d.Applications {
		if strings.ToLower(a.Company) != cl {
			continue
		}
		lines := []string{
			"Company: " + a.Company,
			"Role:    " + a.Role,
			"Status:  " + a.Status,
		}
		if a.Contact != "" {
			lines = append(lines, "Contact: "+a.Contact)
		}
		if a.NextSteps != "" {
			lines = append(lines, "Next steps: "+a.NextSteps)
		}
		if a.Notes != "" {
			lines = append(lines, "Notes: "+a.Notes)
		}
		return strings.Join(lines, "\n")
	}
	return fmt.Sprintf("No active application tracked for %s.", company)
}

func (s *Server) registerOutreachTools() {
	s.mcpServer.AddTool(mcp.NewTool("draft_outreach_message",
		mcp.WithDescription("Package everything needed to draft an outreach message in the user's voice: tone profile, personal stories, application status for the company, known contact info, and message-type-specific writing instructions. message_type is one of linkedin_followup, thank_you, referral_ask, recruiter_nudge, cold_outreach — auto-detected from context when omitted."),
		mcp.WithString("contact", mcp.Required(), mcp.Description("Name of the person being messaged")),
		mcp.WithString("company", mcp.Required(), mcp.Description("Company context, used to pull application status")),
		mcp.WithString("context", mcp.Required(), mcp.Description("Free-text description of the situation, e.g. 'just completed phone screen with Maya, want to send thank-you'")),
		mcp.WithString("message_type", mcp.Description("linkedin_followup, thank_you, referral_ask, recruiter_nudge, or cold_outreach")),
	), s.handleDraftOutreachMessage)

	s.mcpServer.AddTool(mcp.NewTool("review_message",
		mcp.WithDescription("Review an outreach message draft for tone, sentiment, and length issues: corporate stiffness, desperation signals, hedging language, weak openers, and missing calls to action."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The message text to review")),
	), s.handleReviewMessage)
}

func (s *Server) handleDraftOutreachMessage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contact, err := req.RequireString("contact")
	if err != nil {
		return errResult("%v", err)
	}
	company, err := req.RequireString("company")
	if err != nil {
		return errResult("%v", err)
	}
	situation, err := req.RequireString("context")
	if err != nil {
		return errResult("%v", err)
	}

	resolvedType := strings.ToLower(strings.TrimSpace(req.GetString("message_type", "")))
	if resolvedType == "" {
		resolvedType = detectMessageType(situation)
	}
	instructions, ok := messageTypeInstructions[resolvedType]
	if !ok {
		instructions = defaultInstruction
	}

	sections := []string{
		"═══ OUTREACH MESSAGE CONTEXT ═══",
		fmt.Sprintf("To:           %s\nCompany:      %s\nMessage type: %s\nSituation:    %s",
			contact, company, resolvedType, situation),
	}

	if personCtx := s.lookupPersonContext(contact); personCtx != "" {
		sections = append(sections, "──── KNOWN CONTACT INFO ────", personCtx)
	}

	sections = append(sections,
		"──── WRITING INSTRUCTIONS ────",
		instructions,
		"──── FORMATTING RULES ────",
		formattingRules,
		"──── APPLICATION STATUS ────",
		s.companyStatus(company),
		"──── VOICE (tone profile) ────",
		s.toneProfileText(),
		"──── PERSONAL CONTEXT (for relevant stories if applicable) ────",
		s.personalContextText("", ""),
		"──── TASK ────",
		fmt.Sprintf("Using everything above, draft a %s message to %s at %s. "+
			"Write it ready to send — no placeholders, no [INSERT NAME], "+
			"no notes about what to change. Just the message.",
			strings.ReplaceAll(resolvedType, "_", " "), contact, company))

	return textResult(strings.Join(sections, "\n\n"))
}

var corporatePhrases = []string{
	"i hope this message finds you",
	"i wanted to reach out",
	"i am excited to",
	"i am passionate about",
	"i trust this email finds",
	"please do not hesitate",
	"as per my previous",
	"i am reaching out because",
	"synergy",
	"leverage",
	"circle back",
	"touch base",
	"moving forward",
	"at the end of the day",
	"going forward",
	"per our conversation",
}

var desperationSignals = []string{
	"really need",
	"desperately",
	"any opportunity",
	"would love any",
	"even if it's",
	"willing to do anything",
	"i'll take whatever",
	"please consider",
	"i beg",
	"i just want a chance",
	"just give me",
}

var hedgingWords = []string{
	"sort of",
	"kind of",
	"maybe",
	"i think possibly",
	"i guess",
	"hopefully",
	"if that's okay",
	"i'm sorry to bother",
	"sorry for",
	"apologies for reaching",
}

func (s *Server) handleReviewMessage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return errResult("%v", err)
	}

	lower := strings.ToLower(text)
	wordCount := len(strings.Fields(text))

	opener := ""
	for _, sentence := range strings.Split(strings.ReplaceAll(text, "\n", " "), ".") {
		if s := strings.TrimSpace(sentence); s != "" {
			opener = s
			break
		}
	}

	var flags, warnings []string

	for _, p := range corporatePhrases {
		if strings.Contains(lower, p) {
			flags = append(flags, fmt.Sprintf("🔴  Corporate phrase: '%s' — cut or rewrite naturally", p))
		}
	}
	for _, p := range desperationSignals {
		if strings.Contains(lower, p) {
			flags = append(flags, fmt.Sprintf("🔴  Desperation signal: '%s' — this weakens your position", p))
		}
	}
	for _, p := range hedgingWords {
		if strings.Contains(lower, p) {
			flags = append(flags, fmt.Sprintf("🟡  Hedging language: '%s' — consider cutting", p))
		}
	}

	switch {
	case wordCount > 200:
		warnings = append(warnings, fmt.Sprintf("🟡  Length: %d words — email should be under 200; LinkedIn under 100", wordCount))
	case wordCount > 100:
		warnings = append(warnings, fmt.Sprintf("ℹ   Length: %d words — acceptable for email, long for LinkedIn", wordCount))
	default:
		warnings = append(warnings, fmt.Sprintf("✓   Length: %d words — good", wordCount))
	}

	openerLower := strings.ToLower(opener)
	badOpeners := []string{
		"i hope", "my name is", "i am writing", "i wanted", "i am reaching",
		"i trust", "i'm excited", "i am excited",
	}
	for _, b := range badOpeners {
		if strings.HasPrefix(openerLower, b) {
			flags = append(flags, fmt.Sprintf("🔴  Weak opener: '%s' — start with something specific or valuable",
				truncate(opener, 80)))
			break
		}
	}

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "I ") {
		strongVerbs := []string{"built", "led", "shipped", "drove", "created", "launched", "spoke"}
		strong := false
		for _, w := range strongVerbs {
			if strings.HasPrefix(trimmed, "I "+w) {
				strong = true
				break
			}
		}
		if !strong {
			warnings = append(warnings, "🟡  First word is 'I' — consider restructuring to lead with value or context")
		}
	}

	hasCTA := false
	for _, w := range []string{"?", "call", "chat", "connect", "open", "available", "thoughts"} {
		if strings.Contains(lower, w) {
			hasCTA = true
			break
		}
	}
	if !hasCTA {
		warnings = append(warnings, "🟡  No clear call to action or question — add one")
	}

	lines := []string{
		"═══ MESSAGE REVIEW ═══",
		fmt.Sprintf("Word count: %d", wordCount),
		"",
	}

	nonClean := false
	for _, w := range warnings {
		if !strings.HasPrefix(w, "✓") {
			nonClean = true
			break
		}
	}
	if len(flags) == 0 && !nonClean {
		lines = append(lines, "✅  No major issues found. Message looks clean.")
	} else {
		if len(flags) > 0 {
			lines = append(lines, "ISSUES (fix before sending):")
			lines = append(lines, flags...)
			lines = append(lines, "")
		}
		if len(warnings) > 0 {
			lines = append(lines, "NOTES:")
			lines = append(lines, warnings...)
			lines = append(lines, "")
		}
	}

	lines = append(lines, "──── ORIGINAL TEXT ────", text)
	return textResult(strings.Join(lines, "\n"))
}
