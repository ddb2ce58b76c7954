package store

import (
	"fmt"
	"sort"
	"strings"
)

// PostMetrics holds engagement numbers for one LinkedIn post. Pointers
// distinguish "not yet checked" (null on disk) from a true zero.
type PostMetrics struct {
	Impressions          *int   `json:"impressions"`
	MembersReached       *int   `json:"members_reached"`
	Reactions            *int   `json:"reactions"`
	Comments             *int   `json:"comments"`
	Reposts              *int   `json:"reposts"`
	Saves                *int   `json:"saves"`
	LinkClicks           *int   `json:"link_clicks"`
	ProfileViewsFromPost *int   `json:"profile_views_from_post"`
	FollowersGained      *int   `json:"followers_gained"`
	LastChecked          string `json:"last_checked,omitempty"`
}

// Post is one tracked LinkedIn post.
type Post struct {
	ID                 int               `json:"id"`
	Timestamp          string            `json:"timestamp"`
	PostedDate         string            `json:"posted_date"`
	Source             string            `json:"source"`
	Title              string            `json:"title"`
	Text               string            `json:"text"`
	URL                string            `json:"url"`
	Hashtags           []string          `json:"hashtags"`
	Links              []string          `json:"links"`
	Context            string            `json:"context"`
	Metrics            PostMetrics       `json:"metrics"`
	AudienceHighlights map[string]string `json:"audience_highlights"`
	LastUpdated        string            `json:"last_updated,omitempty"`
}

// Label returns the post's display name: title when set, source otherwise.
func (p *Post) Label() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Source
}

type postData struct {
	Posts []*Post `json:"posts"`
}

// PostLog is the LinkedIn post tracker backed by linkedin_posts.json.
type PostLog struct {
	Path string
}

func NewPostLog(path string) *PostLog {
	return &PostLog{Path: path}
}

func (l *PostLog) All() []*Post {
	return LoadJSON(l.Path, postData{}).Posts
}

func findPost(posts []*Post, id int, source string) *Post {
	if id > 0 {
		for _, p := range posts {
			if p.ID == id {
				return p
			}
		}
		return nil
	}
	if source != "" {
		sl := strings.ToLower(strings.TrimSpace(source))
		for _, p := range posts {
			if strings.ToLower(p.Source) == sl {
				return p
			}
		}
	}
	return nil
}

// PostInput carries the fields for Upsert.
type PostInput struct {
	Text       string
	Source     string
	Context    string
	PostedDate string
	URL        string
	Hashtags   []string
	Links      []string
	Title      string
}

// Upsert adds a post or updates the one matching the source slug. New
// posts get a blank metrics block ready for UpdateMetrics. The second
// return is true when an existing post was updated.
func (l *PostLog) Upsert(in PostInput) (*Post, bool, error) {
	data := LoadJSON(l.Path, postData{})

	if existing := findPost(data.Posts, 0, in.Source); existing != nil {
		if in.Text != "" {
			existing.Text = in.Text
		}
		if in.Context != "" {
			existing.Context = in.Context
		}
		if in.PostedDate != "" {
			existing.PostedDate = in.PostedDate
		}
		if in.URL != "" {
			existing.URL = in.URL
		}
		if len(in.Hashtags) > 0 {
			existing.Hashtags = mergeUnique(existing.Hashtags, in.Hashtags)
		}
		if len(in.Links) > 0 {
			existing.Links = mergeUnique(existing.Links, in.Links)
		}
		if in.Title != "" {
			existing.Title = in.Title
		}
		existing.LastUpdated = Now()

		if err := SaveJSON(l.Path, data); err != nil {
			return nil, false, err
		}
		return existing, true, nil
	}

	maxID := 0
	for _, p := range data.Posts {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	postedDate := in.PostedDate
	if postedDate == "" {
		postedDate = Today()
	}
	hashtags := in.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	links := in.Links
	if links == nil {
		links = []string{}
	}
	entry := &Post{
		ID:                 maxID + 1,
		Timestamp:          Now(),
		PostedDate:         postedDate,
		Source:             strings.TrimSpace(in.Source),
		Title:              strings.TrimSpace(in.Title),
		Text:               strings.TrimSpace(in.Text),
		URL:                strings.TrimSpace(in.URL),
		Hashtags:           hashtags,
		Links:              links,
		Context:            strings.TrimSpace(in.Context),
		AudienceHighlights: map[string]string{},
	}
	data.Posts = append(data.Posts, entry)

	if err := SaveJSON(l.Path, data); err != nil {
		return nil, false, err
	}
	return entry, false, nil
}

// MetricsUpdate carries partial metric updates; nil fields are left alone.
type MetricsUpdate struct {
	Impressions          *int
	MembersReached       *int
	Reactions            *int
	Comments             *int
	Reposts              *int
	Saves                *int
	LinkClicks           *int
	ProfileViewsFromPost *int
	FollowersGained      *int
	AudienceHighlights   map[string]string
}

// UpdateMetrics applies a partial metrics update to the post identified by
// id or source slug, stamping last_checked.
func (l *PostLog) UpdateMetrics(id int, source string, u MetricsUpdate) (*Post, error) {
	data := LoadJSON(l.Path, postData{})

	post := findPost(data.Posts, id, source)
	if post == nil {
		if id > 0 {
			return nil, fmt.Errorf("no post found with id=%d", id)
		}
		return nil, fmt.Errorf("no post found with source=%q", source)
	}

	m := &post.Metrics
	apply := func(dst **int, src *int) {
		if src != nil {
			*dst = src
		}
	}
	apply(&m.Impressions, u.Impressions)
	apply(&m.MembersReached, u.MembersReached)
	apply(&m.Reactions, u.Reactions)
	apply(&m.Comments, u.Comments)
	apply(&m.Reposts, u.Reposts)
	apply(&m.Saves, u.Saves)
	apply(&m.LinkClicks, u.LinkClicks)
	apply(&m.ProfileViewsFromPost, u.ProfileViewsFromPost)
	apply(&m.FollowersGained, u.FollowersGained)
	m.LastChecked = Today()

	if len(u.AudienceHighlights) > 0 {
		if post.AudienceHighlights == nil {
			post.AudienceHighlights = map[string]string{}
		}
		for k, v := range u.AudienceHighlights {
			post.AudienceHighlights[k] = v
		}
	}

	if err := SaveJSON(l.Path, data); err != nil {
		return nil, err
	}
	return post, nil
}

// FilterPosts applies source substring, hashtag, and minimum reaction
// filters, returning posts newest first.
func FilterPosts(posts []*Post, source, hashtag string, minReactions int) []*Post {
	out := posts
	if source != "" {
		sl := strings.ToLower(source)
		out = filterPosts(out, func(p *Post) bool {
			return strings.Contains(strings.ToLower(p.Source), sl)
		})
	}
	if hashtag != "" {
		hl := strings.ToLower(strings.TrimPrefix(hashtag, "#"))
		out = filterPosts(out, func(p *Post) bool {
			for _, h := range p.Hashtags {
				if strings.ToLower(h) == hl {
					return true
				}
			}
			return false
		})
	}
	if minReactions > 0 {
		out = filterPosts(out, func(p *Post) bool {
			return intOrZero(p.Metrics.Reactions) >= minReactions
		})
	}

	sorted := append([]*Post{}, out...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PostedDate > sorted[j].PostedDate
	})
	return sorted
}

func filterPosts(posts []*Post, keep func(*Post) bool) []*Post {
	var out []*Post
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// PostTotals aggregates engagement across a set of posts.
type PostTotals struct {
	Reactions   int
	Impressions int
	Reposts     int
	Comments    int
}

func TotalPostMetrics(posts []*Post) PostTotals {
	var t PostTotals
	for _, p := range posts {
		t.Reactions += intOrZero(p.Metrics.Reactions)
		t.Impressions += intOrZero(p.Metrics.Impressions)
		t.Reposts += intOrZero(p.Metrics.Reposts)
		t.Comments += intOrZero(p.Metrics.Comments)
	}
	return t
}
