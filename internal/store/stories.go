package store

import (
	"strings"
	"time"
)

// Story is one personal STAR story in the context library.
type Story struct {
	ID        int      `json:"id"`
	Timestamp string   `json:"timestamp"`
	Title     string   `json:"title"`
	Story     string   `json:"story"`
	Tags      []string `json:"tags"`
	People    []string `json:"people"`
}

// HBDIProfile is the stored cognitive style assessment.
type HBDIProfile struct {
	AssessedAt string            `json:"assessed_at"`
	Scores     map[string]int    `json:"scores"`
	Primary    string            `json:"primary"`
	Responses  map[string]string `json:"responses"`
	Notes      string            `json:"notes"`
}

// ContextData is the on-disk shape of personal_context.json.
type ContextData struct {
	Stories []Story      `json:"stories"`
	HBDI    *HBDIProfile `json:"hbdi_profile,omitempty"`
}

// ContextStore is the story library backed by personal_context.json.
type ContextStore struct {
	Path string
}

func NewContextStore(path string) *ContextStore {
	return &ContextStore{Path: path}
}

func (s *ContextStore) Load() ContextData {
	return LoadJSON(s.Path, ContextData{})
}

func (s *ContextStore) Stories() []Story {
	return s.Load().Stories
}

// AddStory appends a story with a sequential id. An empty title defaults
// to the first 60 characters of the story.
func (s *ContextStore) AddStory(story string, tags, people []string, title string) (Story, error) {
	data := s.Load()

	if title == "" {
		title = story
		if len(title) > 60 {
			title = title[:60] + "..."
		}
	}
	lowered := make([]string, 0, len(tags))
	for _, t := range tags {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(t)))
	}
	if people == nil {
		people = []string{}
	}

	entry := Story{
		ID:        len(data.Stories) + 1,
		Timestamp: time.Now().Format(time.RFC3339),
		Title:     title,
		Story:     story,
		Tags:      lowered,
		People:    people,
	}
	data.Stories = append(data.Stories, entry)

	if err := SaveJSON(s.Path, data); err != nil {
		return Story{}, err
	}
	return entry, nil
}

// FilterStories narrows stories by tag (exact, lower-cased) and person
// (substring, case-insensitive).
func FilterStories(stories []Story, tag, person string) []Story {
	out := stories
	if tag != "" {
		tl := strings.ToLower(tag)
		var kept []Story
		for _, s := range out {
			for _, t := range s.Tags {
				if t == tl {
					kept = append(kept, s)
					break
				}
			}
		}
		out = kept
	}
	if person != "" {
		pl := strings.ToLower(person)
		var kept []Story
		for _, s := range out {
			for _, p := range s.People {
				if strings.Contains(strings.ToLower(p), pl) {
					kept = append(kept, s)
					break
				}
			}
		}
		out = kept
	}
	return out
}

// SetHBDI stores the assessment profile alongside the stories.
func (s *ContextStore) SetHBDI(p HBDIProfile) error {
	data := s.Load()
	data.HBDI = &p
	if data.Stories == nil {
		data.Stories = []Story{}
	}
	return SaveJSON(s.Path, data)
}

// HBDI returns the stored profile, or nil when no assessment has run.
func (s *ContextStore) HBDI() *HBDIProfile {
	return s.Load().HBDI
}
