package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"jobcontext/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPostTools() {
	s.mcpServer.AddTool(mcp.NewTool("log_linkedin_post",
		mcp.WithDescription("Add or update a LinkedIn post in the post database. Stores the full post text, metadata, and a blank metrics block ready for update_post_metrics(). Optionally ingests the post as a tone sample (default true) so the public voice calibrates future outreach drafts."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Full post text")),
		mcp.WithString("source", mcp.Required(), mcp.Description("Unique slug label, e.g. 'linkedin_post_mcp_v4'")),
		mcp.WithString("context", mcp.Description("What the post is about / why it matters")),
		mcp.WithString("posted_date", mcp.Description("ISO date (YYYY-MM-DD), defaults to today")),
		mcp.WithString("url", mcp.Description("LinkedIn post URL or short link")),
		mcp.WithArray("hashtags", mcp.Description("Hashtags used, without #")),
		mcp.WithArray("links", mcp.Description("External URLs included in the post")),
		mcp.WithString("title", mcp.Description("Short human-readable title for the post")),
		mcp.WithBoolean("auto_log_tone", mcp.Description("Also ingest the post text as a tone sample (default true)")),
	), s.handleLogLinkedInPost)

	s.mcpServer.AddTool(mcp.NewTool("update_post_metrics",
		mcp.WithDescription("Update engagement metrics on an existing LinkedIn post. Identify the post by post_id or source slug. Only provided fields are updated."),
		mcp.WithNumber("post_id", mcp.Description("Numeric ID of the post")),
		mcp.WithString("source", mcp.Description("Source slug, alternative to post_id")),
		mcp.WithNumber("impressions", mcp.Description("Total impressions")),
		mcp.WithNumber("members_reached", mcp.Description("Unique members reached")),
		mcp.WithNumber("reactions", mcp.Description("Total reactions (likes, celebrates, etc.)")),
		mcp.WithNumber("comments", mcp.Description("Comment count")),
		mcp.WithNumber("reposts", mcp.Description("Repost count")),
		mcp.WithNumber("saves", mcp.Description("Save count")),
		mcp.WithNumber("link_clicks", mcp.Description("Clicks on links in the post")),
		mcp.WithNumber("profile_views_from_post", mcp.Description("Profile views attributed to this post")),
		mcp.WithNumber("followers_gained", mcp.Description("New followers from this post")),
		mcp.WithObject("audience_highlights", mcp.Description("Map with top_job_title, top_location, top_industry, top_company, top_seniority")),
	), s.handleUpdatePostMetrics)

	s.mcpServer.AddTool(mcp.NewTool("get_linkedin_posts",
		mcp.WithDescription("Retrieve LinkedIn posts with a metrics summary, optionally filtered by source slug, hashtag, or minimum reactions."),
		mcp.WithString("source", mcp.Description("Filter by source slug, partial match")),
		mcp.WithString("hashtag", mcp.Description("Filter by hashtag, e.g. 'IoT'")),
		mcp.WithNumber("min_reactions", mcp.Description("Only return posts with at least this many reactions")),
		mcp.WithBoolean("include_text", mcp.Description("Include full post text in output")),
	), s.handleGetLinkedInPosts)
}

func (s *Server) handleLogLinkedInPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return errResult("%v", err)
	}
	source, err := req.RequireString("source")
	if err != nil {
		return errResult("%v", err)
	}
	postCtx := req.GetString("context", "")
	title := req.GetString("title", "")

	post, updated, err := s.posts.Upsert(store.PostInput{
		Text:       text,
		Source:     source,
		Context:    postCtx,
		PostedDate: req.GetString("posted_date", ""),
		URL:        req.GetString("url", ""),
		Hashtags:   req.GetStringSlice("hashtags", nil),
		Links:      req.GetStringSlice("links", nil),
		Title:      title,
	})
	if err != nil {
		return errResult("failed to save post: %v", err)
	}

	toneNote := ""
	if req.GetBool("auto_log_tone", true) && strings.TrimSpace(text) != "" {
		if _, err := s.tone.Add(strings.TrimSpace(text), source, postCtx); err != nil {
			s.logger.Warn("Failed to log tone sample", "error", err)
		} else if updated {
			toneNote = " Tone sample updated."
		} else {
			toneNote = " Tone sample auto-logged."
		}
	}

	if updated {
		return textResult(fmt.Sprintf("✓ Updated existing post #%d: %s%s", post.ID, post.Label(), toneNote))
	}
	label := title
	if label == "" {
		label = source
	}
	return textResult(fmt.Sprintf("✓ LinkedIn post logged #%d: %s%s", post.ID, label, toneNote))
}

// metricFields gives the stable presentation order for post metrics.
func metricFields(m *store.PostMetrics) []struct {
	Name  string
	Value *int
} {
	return []struct {
		Name  string
		Value *int
	}{
		{"impressions", m.Impressions},
		{"members_reached", m.MembersReached},
		{"reactions", m.Reactions},
		{"comments", m.Comments},
		{"reposts", m.Reposts},
		{"saves", m.Saves},
		{"link_clicks", m.LinkClicks},
		{"profile_views_from_post", m.ProfileViewsFromPost},
		{"followers_gained", m.FollowersGained},
	}
}

func (s *Server) handleUpdatePostMetrics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	postID := req.GetInt("post_id", 0)
	source := req.GetString("source", "")
	if postID == 0 && source == "" {
		return textResult("✗ Provide either post_id or source to identify the post.")
	}

	update := store.MetricsUpdate{
		Impressions:          optInt(req, "impressions"),
		MembersReached:       optInt(req, "members_reached"),
		Reactions:            optInt(req, "reactions"),
		Comments:             optInt(req, "comments"),
		Reposts:              optInt(req, "reposts"),
		Saves:                optInt(req, "saves"),
		LinkClicks:           optInt(req, "link_clicks"),
		ProfileViewsFromPost: optInt(req, "profile_views_from_post"),
		FollowersGained:      optInt(req, "followers_gained"),
		AudienceHighlights:   optStringMap(req, "audience_highlights"),
	}

	post, err := s.posts.UpdateMetrics(postID, source, update)
	if err != nil {
		return textResult(fmt.Sprintf("✗ %v", err))
	}

	var parts []string
	for _, f := range metricFields(&post.Metrics) {
		if f.Value != nil {
			parts = append(parts, fmt.Sprintf("%s=%d", f.Name, *f.Value))
		}
	}
	return textResult(fmt.Sprintf("✓ Metrics updated for post #%d (%s): %s",
		post.ID, post.Label(), strings.Join(parts, ", ")))
}

func (s *Server) handleGetLinkedInPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all := s.posts.All()
	if len(all) == 0 {
		return textResult("No LinkedIn posts logged yet. Use log_linkedin_post() to add posts.")
	}

	filtered := store.FilterPosts(all,
		req.GetString("source", ""),
		req.GetString("hashtag", ""),
		req.GetInt("min_reactions", 0))
	if len(filtered) == 0 {
		return textResult("No posts match the given filters.")
	}

	totals := store.TotalPostMetrics(filtered)
	lines := []string{
		fmt.Sprintf("═══ LINKEDIN POSTS (%d posts) ═══", len(filtered)),
		fmt.Sprintf("Aggregate: %d reactions | %d reposts | %d comments | %d impressions",
			totals.Reactions, totals.Reposts, totals.Comments, totals.Impressions),
		"",
	}

	includeText := req.GetBool("include_text", false)
	for _, p := range filtered {
		date := p.PostedDate
		if date == "" {
			date = "unknown date"
		}
		lines = append(lines, fmt.Sprintf("── #%d | %s | %s ──", p.ID, date, p.Label()))
		if p.URL != "" {
			lines = append(lines, "URL: "+p.URL)
		}
		if p.Context != "" {
			lines = append(lines, "Context: "+p.Context)
		}

		var parts []string
		for _, f := range metricFields(&p.Metrics) {
			if f.Value != nil {
				parts = append(parts, fmt.Sprintf("%s=%d", strings.ReplaceAll(f.Name, "_", " "), *f.Value))
			}
		}
		if len(parts) > 0 {
			lines = append(lines, "Metrics: "+strings.Join(parts, " | "))
		}
		if p.Metrics.LastChecked != "" {
			lines = append(lines, "Last checked: "+p.Metrics.LastChecked)
		}
		if len(p.AudienceHighlights) > 0 {
			keys := make([]string, 0, len(p.AudienceHighlights))
			for k := range p.AudienceHighlights {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			var pairs []string
			for _, k := range keys {
				pairs = append(pairs, fmt.Sprintf("%s=%s", k, p.AudienceHighlights[k]))
			}
			lines = append(lines, "Audience: "+strings.Join(pairs, ", "))
		}
		if len(p.Hashtags) > 0 {
			lines = append(lines, "Tags: #"+strings.Join(p.Hashtags, " #"))
		}
		if includeText && p.Text != "" {
			lines = append(lines, "\n"+p.Text)
		}
		lines = append(lines, "")
	}

	return textResult(strings.Join(lines, "\n"))
}

// optInt reads an optional integer argument, nil when absent.
func optInt(req mcp.CallToolRequest, key string) *int {
	v, ok := req.GetArguments()[key]
	if !ok || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case int:
		i := n
		return &i
	}
	return nil
}

// optStringMap reads an optional object argument as a string map.
func optStringMap(req mcp.CallToolRequest, key string) map[string]string {
	v, ok := req.GetArguments()[key]
	if !ok || v == nil {
		return nil
	}
	raw, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, val := range raw {
		if s, ok := val.(string); ok {
			out[k] = s
		}
	}
	return out
}
