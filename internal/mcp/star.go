package mcp

import (
	"context"
	"fmt"
	"strings"

	"jobcontext/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
)

// starMetrics are resume-backed numbers to weave into STAR answers,
// keyed by the same tags the story library uses.
var starMetrics = map[string][]string{
	"testing": {
		"80%+ code coverage across JUnit, Mockito, Jest, and Selenium",
		"Sole developer — no QA team, so quality was self-enforced from the first commit",
		"TDD across full stack: Postgres → Spring Boot → Angular",
		"Zero production regressions attributed to test gaps during 4-year GM tenure",
	},
	"quality": {
		"98% SLA compliance on production forecasting app used by senior GM leadership",
		"Self-enforced standards as the only dev — nowhere else to point if it broke",
		"Legacy codebase modernization (500K+ lines) with no service interruptions",
	},
	"craftsmanship": {
		"Built-in quality, not bolted-on: TDD, clean migration paths, no shortcuts",
		"Java 8→21 + Spring Boot 2.2→3.5.4 while keeping prod healthy throughout",
		"Zero-downtime Oracle→PostgreSQL migration under live traffic",
	},
	"solo-developer": {
		"Sole developer across 500K+ line codebase for 4 years",
		"Owned backend (Java/Spring Boot), frontend (Angular), database (PostgreSQL), and CI/CD",
		"No QA buffer — testing rigor was personal, not procedural",
		"98% SLA maintained throughout two major migrations and a modernization",
	},
	"cloud": {
		"Led PCF → OCF → Azure Container Apps migration with zero downtime",
		"Oracle → PostgreSQL migration under live production traffic",
		"Terraform IaC for Azure provisioning",
		"98% SLA maintained throughout cloud transition period",
	},
	"ai": {
		"Drove 35%+ GitHub Copilot/Claude adoption in engineering org (3.5x the target)",
		"Built AI-augmented workflows and coached peers on prompt engineering",
		"AI adoption recognized by leadership as exceptional contribution",
	},
	"leadership": {
		"ERG JumpStart President — led without formal authority",
		"Angular Developer Group Admin — drove cross-team knowledge sharing",
		"3.5x AI adoption target through grassroots coaching, not mandate",
	},
	"modernization": {
		"Java 8→21, Spring Boot 2.2→3.5.4 across 500K+ lines — no feature freeze",
		"Angular 6→18 migration with no regressions to business analysts",
		"Zero-downtime database migration: Oracle → PostgreSQL",
		"98% SLA held throughout all modernization phases",
	},
	"ford": {
		"Grandfather spent 50 years at Ford — service manager at 19 during the Depression",
		"Grandfather story: 1934 Ford Fire Truck brass threads, machined to tolerances that looked stripped decades later",
		"Quality as inherited value, not process compliance — built in from the start",
	},
}

var starRelated = map[string][]string{
	"testing":        {"quality", "craftsmanship", "solo-developer"},
	"quality":        {"testing", "craftsmanship", "solo-developer"},
	"craftsmanship":  {"quality", "testing", "ford"},
	"cloud":          {"solo-developer", "modernization"},
	"ai":             {"leadership"},
	"solo-developer": {"testing", "quality", "modernization"},
	"leadership":     {"ai"},
	"modernization":  {"cloud", "solo-developer"},
	"ford":           {"craftsmanship", "quality"},
	"grandfather":    {"ford", "craftsmanship", "quality"},
}

type framingHint struct {
	Key, Value string
}

var companyFraming = map[string][]framingHint{
	"ford": {
		{"connection", "Grandfather's 50-year Ford career + 1934 Ford Fire Truck precision story"},
		{"values", "Craftsmanship, durability, legacy, precision under constraint"},
		{"angle", "Quality as an inherited value — built in from the Depression era forward"},
	},
	"fanduel": {
		{"values", "Scale, speed, uptime — real-time odds, millions of concurrent users"},
		{"angle", "Testing rigor is what lets you ship fast without destroying trust"},
	},
	"mercedes": {
		{"values", "Zero defect, German engineering precision, no tolerance for corner-cutting"},
		{"angle", "Self-enforced quality under resource constraint parallels the MB engineering ethos"},
	},
	"airbnb": {
		{"values", "Trust platform — guests and hosts depend on reliability"},
		{"angle", "Solo ownership of uptime, because someone is always depending on it"},
	},
	"reddit": {
		{"values", "Scale, distributed systems, real-time feeds, developer culture"},
		{"angle", "Ownership mentality — built like you're the one on-call when it pages"},
	},
	"microsoft": {
		{"values", "Engineering excellence, AI-first thinking, developer empowerment"},
		{"angle", "AI adoption story (3.5x target) maps directly to Microsoft's Copilot ecosystem"},
	},
	"google": {
		{"values", "Scale, reliability, SRE culture, code quality"},
		{"angle", "SLA obsession and testing rigor as cultural fit, not resume line item"},
	},
}

func (s *Server) registerStarTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_star_story_context",
		mcp.WithDescription("Assemble STAR interview answer context for a theme tag: matching personal stories, related-tag stories, resume metrics to weave in, and company framing hints when the company is recognized."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Theme tag, e.g. 'testing', 'cloud', 'leadership'")),
		mcp.WithString("company", mcp.Description("Target company, for framing hints")),
		mcp.WithString("role_type", mcp.Description("Role type, informational only")),
	), s.handleGetStarStoryContext)
}

func (s *Server) handleGetStarStoryContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag, err := req.RequireString("tag")
	if err != nil {
		return errResult("%v", err)
	}
	company := req.GetString("company", "")
	roleType := req.GetString("role_type", "")

	tagLower := strings.ToLower(strings.TrimSpace(tag))
	related := starRelated[tagLower]
	searchTags := map[string]bool{tagLower: true}
	for _, r := range related {
		searchTags[r] = true
	}

	var primary, relatedStories []store.Story
	seen := map[int]bool{}
	for _, st := range s.stories.Stories() {
		if seen[st.ID] {
			continue
		}
		direct, anyMatch := false, false
		for _, t := range st.Tags {
			if t == tagLower {
				direct = true
			}
			if searchTags[t] {
				anyMatch = true
			}
		}
		switch {
		case direct:
			primary = append(primary, st)
			seen[st.ID] = true
		case anyMatch:
			relatedStories = append(relatedStories, st)
			seen[st.ID] = true
		}
	}

	var metrics []string
	seenMetric := map[string]bool{}
	for _, t := range append([]string{tagLower}, related...) {
		for _, m := range starMetrics[t] {
			if !seenMetric[m] {
				metrics = append(metrics, m)
				seenMetric[m] = true
			}
		}
	}

	var framing []framingHint
	companyLower := strings.ToLower(strings.TrimSpace(company))
	for key, hints := range companyFraming {
		if companyLower != "" && strings.Contains(companyLower, key) {
			framing = hints
			break
		}
	}

	header := fmt.Sprintf("tag='%s'", tag)
	if company != "" {
		header += fmt.Sprintf(" | company='%s'", company)
	}
	if roleType != "" {
		header += fmt.Sprintf(" | role='%s'", roleType)
	}
	lines := []string{fmt.Sprintf("═══ STAR STORY CONTEXT: %s ═══", header), ""}

	appendStories := func(title string, stories []store.Story) {
		lines = append(lines, title)
		for _, st := range stories {
			lines = append(lines,
				fmt.Sprintf("\n▪ #%d — %s", st.ID, st.Title),
				"  Tags: "+strings.Join(st.Tags, ", "),
				"  "+st.Story,
				"")
		}
	}
	if len(primary) > 0 {
		appendStories(fmt.Sprintf("── PRIMARY STORIES (%d direct match) ──", len(primary)), primary)
	}
	if len(relatedStories) > 0 {
		appendStories(fmt.Sprintf("── RELATED STORIES (%d via related tags) ──", len(relatedStories)), relatedStories)
	}
	if len(primary) == 0 && len(relatedStories) == 0 {
		lines = append(lines,
			"No personal stories found for this tag or related tags.",
			"Log stories with log_personal_story() to enrich future STAR answers.",
			"")
	}

	if len(metrics) > 0 {
		lines = append(lines, "── RESUME METRICS TO WEAVE IN ──")
		for _, m := range metrics {
			lines = append(lines, "  • "+m)
		}
		lines = append(lines, "")
	}

	if framing != nil {
		lines = append(lines, fmt.Sprintf("── %s FRAMING HINTS ──", strings.ToUpper(company)))
		for _, h := range framing {
			lines = append(lines, fmt.Sprintf("  %s: %s", h.Key, h.Value))
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		"── STAR STRUCTURE ──",
		"  Situation: Set the scene — team size, stack, constraints, stakes",
		"  Task:      What you owned and why it mattered",
		"  Action:    Specific decisions — what you built, how you tested, trade-offs made",
		"  Result:    Metrics first, then narrative payoff",
		"",
		"Use the personal stories for humanity. Use the metrics for credibility.",
		"The story is what makes it memorable. The numbers are what makes it land.")

	return textResult(strings.Join(lines, "\n"))
}
