package mcp

import (
	"context"
	"fmt"
	"strings"

	"jobcontext/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerStoryTools() {
	s.mcpServer.AddTool(mcp.NewTool("log_personal_story",
		mcp.WithDescription("Save a personal STAR story to the context library. Tag it with relevant skills or themes (e.g. ['cloud_migration', 'leadership']). Optionally include people involved and a short title. Retrieved later via get_star_story_context()."),
		mcp.WithString("story", mcp.Required(), mcp.Description("The story text")),
		mcp.WithArray("tags", mcp.Required(), mcp.Description("Relevant skill or theme tags")),
		mcp.WithArray("people", mcp.Description("Names of people involved")),
		mcp.WithString("title", mcp.Description("Short title, auto-generated from the story if omitted")),
	), s.handleLogPersonalStory)

	s.mcpServer.AddTool(mcp.NewTool("get_personal_context",
		mcp.WithDescription("Retrieve stored personal stories, optionally filtered by tag or person's name. Returns all stories if no filters provided."),
		mcp.WithString("tag", mcp.Description("Filter by tag, exact match")),
		mcp.WithString("person", mcp.Description("Filter by person name, partial match")),
	), s.handleGetPersonalContext)
}

func (s *Server) handleLogPersonalStory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	story, err := req.RequireString("story")
	if err != nil {
		return errResult("%v", err)
	}
	tags, err := req.RequireStringSlice("tags")
	if err != nil {
		return errResult("%v", err)
	}

	entry, err := s.stories.AddStory(story, tags,
		req.GetStringSlice("people", nil),
		req.GetString("title", ""))
	if err != nil {
		return errResult("failed to save story: %v", err)
	}
	return textResult(fmt.Sprintf("✓ Story logged (#%d): %s", entry.ID, entry.Title))
}

// personalContextText formats the (optionally filtered) story library.
func (s *Server) personalContextText(tag, person string) string {
	stories := store.FilterStories(s.stories.Stories(), tag, person)

	if len(stories) == 0 {
		qualifier := ""
		if tag != "" {
			qualifier = fmt.Sprintf(" for tag '%s'", tag)
		}
		if person != "" {
			qualifier += fmt.Sprintf(" for person '%s'", person)
		}
		return fmt.Sprintf("No personal stories found%s.", qualifier)
	}

	lines := []string{fmt.Sprintf("═══ PERSONAL CONTEXT (%d stories) ═══", len(stories)), ""}
	for _, st := range stories {
		lines = append(lines, fmt.Sprintf("▪ #%d — %s", st.ID, st.Title))
		lines = append(lines, "  Tags:   "+strings.Join(st.Tags, ", "))
		if len(st.People) > 0 {
			lines = append(lines, "  People: "+strings.Join(st.People, ", "))
		}
		lines = append(lines, "  "+st.Story)
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (s *Server) handleGetPersonalContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(s.personalContextText(req.GetString("tag", ""), req.GetString("person", "")))
}
