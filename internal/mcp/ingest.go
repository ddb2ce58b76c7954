package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const toneSampleMinWords = 40

// starTags are the story tags that surface in get_star_story_context()
// queries, directly or via the related-tag map.
var starTags = map[string]bool{
	"testing": true, "quality": true, "craftsmanship": true,
	"solo-developer": true, "cloud": true, "ai": true, "leadership": true,
	"modernization": true, "ford": true, "grandfather": true,
	"cloud_migration": true, "azure": true, "ai_adoption": true,
	"cross_team": true, "speak_up": true, "innovation": true,
	"product_idea": true, "iot": true, "cameras": true,
	"diagonal_slice": true, "testing_automation": true, "tdd": true,
	"ci_cd": true, "sla": true, "migration": true,
}

func (s *Server) registerIngestTools() {
	s.mcpServer.AddTool(mcp.NewTool("ingest_anecdote",
		mcp.WithDescription("Log a personal story, work anecdote, or STAR narrative in one call. Always saves to the personal context library. If tone_sample is true (default) and the story is at least 40 words, also ingests it as a tone/voice sample. Reports which STAR interview tags were detected so you know the story will surface in get_star_story_context() queries."),
		mcp.WithString("story", mcp.Required(), mcp.Description("The narrative — raw, first-person, as much detail as useful")),
		mcp.WithArray("tags", mcp.Required(), mcp.Description("Relevant themes, e.g. ['leadership', 'azure', 'cloud_migration']")),
		mcp.WithString("title", mcp.Description("Short label for the story, auto-generated if omitted")),
		mcp.WithArray("people", mcp.Description("Names of people involved")),
		mcp.WithBoolean("tone_sample", mcp.Description("Whether to also ingest the story text as a voice/tone sample (default true)")),
	), s.handleIngestAnecdote)
}

func (s *Server) handleIngestAnecdote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	story, err := req.RequireString("story")
	if err != nil {
		return errResult("%v", err)
	}
	tags, err := req.RequireStringSlice("tags")
	if err != nil {
		return errResult("%v", err)
	}
	wantTone := req.GetBool("tone_sample", true)

	entry, err := s.stories.AddStory(story, tags,
		req.GetStringSlice("people", nil),
		req.GetString("title", ""))
	if err != nil {
		return errResult("failed to save story: %v", err)
	}
	logged := []string{fmt.Sprintf("personal context (#%d): %s", entry.ID, entry.Title)}

	wordCount := len(strings.Fields(story))
	switch {
	case wantTone && wordCount >= toneSampleMinWords:
		tagLabel := "story"
		if len(tags) > 0 {
			tagLabel = tags[0]
		}
		source := fmt.Sprintf("anecdote_%d_%s", entry.ID, tagLabel)
		sampleCtx := fmt.Sprintf("Story #%d: %s", entry.ID, entry.Title)
		sample, err := s.tone.Add(story, source, sampleCtx)
		if err != nil {
			return errResult("failed to save tone sample: %v", err)
		}
		logged = append(logged, fmt.Sprintf("tone profile (#%d, %d words)", sample.ID, wordCount))
	case wantTone:
		logged = append(logged, fmt.Sprintf("tone profile skipped (only %d words, min %d)", wordCount, toneSampleMinWords))
	}

	var matched []string
	for _, t := range tags {
		if starTags[strings.ToLower(t)] {
			matched = append(matched, strings.ToLower(t))
		}
	}
	sort.Strings(matched)
	matched = dedupe(matched)

	lines := []string{fmt.Sprintf("✓ Anecdote ingested — %d destination(s):", len(logged))}
	for _, item := range logged {
		lines = append(lines, "  • "+item)
	}

	if len(matched) > 0 {
		lines = append(lines, "\nSTAR tags detected: "+strings.Join(matched, ", "))
		lines = append(lines, "→ Will surface in get_star_story_context() for these tags.")
	} else {
		lines = append(lines, "\nNo STAR interview tags matched.")
		lines = append(lines, "→ Add tags like 'leadership', 'cloud_migration', 'testing' to make it retrievable during interview prep.")
	}

	if !wantTone {
		lines = append(lines, "\nTip: set tone_sample=True to also calibrate the voice profile from this story.")
	}

	return textResult(strings.Join(lines, "\n"))
}

func dedupe(sorted []string) []string {
	var out []string
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
