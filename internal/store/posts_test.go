package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestPostLog_UpsertBySourceSlug(t *testing.T) {
	l := NewPostLog(tempFile(t, "posts.json"))

	p, updated, err := l.Upsert(PostInput{
		Text:     "Shipped an MCP server for my job search.",
		Source:   "linkedin_post_mcp",
		Title:    "MCP launch",
		Hashtags: []string{"MCP", "Go"},
	})
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, Today(), p.PostedDate)
	// Fresh metrics block starts unchecked
	assert.Nil(t, p.Metrics.Reactions)

	p2, updated, err := l.Upsert(PostInput{
		Source:   "linkedin_post_mcp",
		URL:      "https://linkedin.com/posts/abc",
		Hashtags: []string{"Go", "AI"},
	})
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, 1, p2.ID)
	assert.Equal(t, "Shipped an MCP server for my job search.", p2.Text) // kept
	assert.Equal(t, []string{"MCP", "Go", "AI"}, p2.Hashtags)            // unioned

	assert.Len(t, l.All(), 1)
}

func TestPostLog_UpdateMetricsPartial(t *testing.T) {
	l := NewPostLog(tempFile(t, "posts.json"))
	_, _, err := l.Upsert(PostInput{Text: "post", Source: "slug_a"})
	require.NoError(t, err)

	p, err := l.UpdateMetrics(0, "slug_a", MetricsUpdate{
		Impressions: intp(1200),
		Reactions:   intp(45),
	})
	require.NoError(t, err)
	assert.Equal(t, 1200, *p.Metrics.Impressions)
	assert.Equal(t, 45, *p.Metrics.Reactions)
	assert.Nil(t, p.Metrics.Comments)
	assert.Equal(t, Today(), p.Metrics.LastChecked)

	// Second partial update leaves earlier values alone
	p, err = l.UpdateMetrics(1, "", MetricsUpdate{Comments: intp(7)})
	require.NoError(t, err)
	assert.Equal(t, 1200, *p.Metrics.Impressions)
	assert.Equal(t, 7, *p.Metrics.Comments)
}

func TestPostLog_UpdateMetricsMissingPost(t *testing.T) {
	l := NewPostLog(tempFile(t, "posts.json"))

	_, err := l.UpdateMetrics(99, "", MetricsUpdate{})
	assert.Error(t, err)

	_, err = l.UpdateMetrics(0, "nope", MetricsUpdate{})
	assert.Error(t, err)
}

func TestFilterPosts(t *testing.T) {
	posts := []*Post{
		{ID: 1, Source: "mcp_launch", PostedDate: "2026-08-01", Hashtags: []string{"Go"}, Metrics: PostMetrics{Reactions: intp(50)}},
		{ID: 2, Source: "iot_camera", PostedDate: "2026-08-10", Hashtags: []string{"IoT"}, Metrics: PostMetrics{Reactions: intp(5)}},
		{ID: 3, Source: "mcp_followup", PostedDate: "2026-08-20", Hashtags: []string{"Go", "MCP"}},
	}

	bySource := FilterPosts(posts, "mcp", "", 0)
	require.Len(t, bySource, 2)
	// Newest first
	assert.Equal(t, 3, bySource[0].ID)

	byTag := FilterPosts(posts, "", "#go", 0)
	assert.Len(t, byTag, 2)

	byReactions := FilterPosts(posts, "", "", 10)
	require.Len(t, byReactions, 1)
	assert.Equal(t, 1, byReactions[0].ID)
}

func TestTotalPostMetrics(t *testing.T) {
	posts := []*Post{
		{Metrics: PostMetrics{Reactions: intp(10), Impressions: intp(500)}},
		{Metrics: PostMetrics{Reactions: intp(5), Comments: intp(3)}},
		{}, // unchecked metrics count as zero
	}

	totals := TotalPostMetrics(posts)
	assert.Equal(t, 15, totals.Reactions)
	assert.Equal(t, 500, totals.Impressions)
	assert.Equal(t, 3, totals.Comments)
	assert.Equal(t, 0, totals.Reposts)
}
