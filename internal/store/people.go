package store

import (
	"fmt"
	"strings"
)

// ValidOutreachStatuses are the allowed states for a contact's outreach.
var ValidOutreachStatuses = []string{"none", "drafted", "sent", "responded"}

// Person is one contact in the people database.
type Person struct {
	ID             int      `json:"id"`
	Timestamp      string   `json:"timestamp"`
	Name           string   `json:"name"`
	Relationship   string   `json:"relationship"`
	Company        string   `json:"company"`
	Context        string   `json:"context"`
	Tags           []string `json:"tags"`
	ContactInfo    string   `json:"contact_info"`
	OutreachStatus string   `json:"outreach_status"`
	Notes          string   `json:"notes"`
	LastUpdated    string   `json:"last_updated,omitempty"`
}

type peopleData struct {
	People []*Person `json:"people"`
}

// PeopleBook is the contacts database backed by people.json.
type PeopleBook struct {
	Path string
}

func NewPeopleBook(path string) *PeopleBook {
	return &PeopleBook{Path: path}
}

func (b *PeopleBook) All() []*Person {
	return LoadJSON(b.Path, peopleData{}).People
}

// Find matches a person by name, case-insensitive exact match.
func findPerson(people []*Person, name string) *Person {
	nl := strings.ToLower(strings.TrimSpace(name))
	for _, p := range people {
		if strings.ToLower(p.Name) == nl {
			return p
		}
	}
	return nil
}

func (b *PeopleBook) Find(name string) *Person {
	return findPerson(b.All(), name)
}

// PersonInput carries the fields for Upsert.
type PersonInput struct {
	Name           string
	Relationship   string
	Company        string
	Context        string
	Tags           []string
	ContactInfo    string
	OutreachStatus string
	Notes          string
}

// ValidOutreachStatus reports whether s is an allowed outreach status.
func ValidOutreachStatus(s string) bool {
	for _, v := range ValidOutreachStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Upsert adds a new person or merge-updates an existing one by name.
// Merge semantics: blank inputs keep existing values, tags are unioned,
// notes are appended, outreach status only moves off "none" explicitly.
// The second return is true when an existing person was updated.
func (b *PeopleBook) Upsert(in PersonInput) (*Person, bool, error) {
	if in.OutreachStatus == "" {
		in.OutreachStatus = "none"
	}
	if !ValidOutreachStatus(in.OutreachStatus) {
		return nil, false, fmt.Errorf("invalid outreach_status %q, must be one of: %s",
			in.OutreachStatus, strings.Join(ValidOutreachStatuses, ", "))
	}

	data := LoadJSON(b.Path, peopleData{})

	if existing := findPerson(data.People, in.Name); existing != nil {
		if in.Relationship != "" {
			existing.Relationship = in.Relationship
		}
		if in.Company != "" {
			existing.Company = in.Company
		}
		if in.Context != "" {
			existing.Context = in.Context
		}
		if len(in.Tags) > 0 {
			existing.Tags = mergeUnique(existing.Tags, in.Tags)
		}
		if in.ContactInfo != "" {
			existing.ContactInfo = in.ContactInfo
		}
		if in.OutreachStatus != "none" {
			existing.OutreachStatus = in.OutreachStatus
		}
		if in.Notes != "" {
			existing.Notes = strings.TrimSpace(existing.Notes + "\n" + in.Notes)
		}
		existing.LastUpdated = Now()

		if err := SaveJSON(b.Path, data); err != nil {
			return nil, false, err
		}
		return existing, true, nil
	}

	maxID := 0
	for _, p := range data.People {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	entry := &Person{
		ID:             maxID + 1,
		Timestamp:      Now(),
		Name:           strings.TrimSpace(in.Name),
		Relationship:   strings.TrimSpace(in.Relationship),
		Company:        strings.TrimSpace(in.Company),
		Context:        strings.TrimSpace(in.Context),
		Tags:           tags,
		ContactInfo:    strings.TrimSpace(in.ContactInfo),
		OutreachStatus: in.OutreachStatus,
		Notes:          strings.TrimSpace(in.Notes),
	}
	data.People = append(data.People, entry)

	if err := SaveJSON(b.Path, data); err != nil {
		return nil, false, err
	}
	return entry, false, nil
}

// FilterPeople applies name/company substring, tag exact, and outreach
// status exact filters.
func FilterPeople(people []*Person, name, company, tag, outreachStatus string) []*Person {
	out := people
	if name != "" {
		nl := strings.ToLower(name)
		out = filterPeople(out, func(p *Person) bool {
			return strings.Contains(strings.ToLower(p.Name), nl)
		})
	}
	if company != "" {
		cl := strings.ToLower(company)
		out = filterPeople(out, func(p *Person) bool {
			return strings.Contains(strings.ToLower(p.Company), cl)
		})
	}
	if tag != "" {
		tl := strings.ToLower(tag)
		out = filterPeople(out, func(p *Person) bool {
			for _, t := range p.Tags {
				if strings.ToLower(t) == tl {
					return true
				}
			}
			return false
		})
	}
	if outreachStatus != "" {
		sl := strings.ToLower(outreachStatus)
		out = filterPeople(out, func(p *Person) bool {
			return strings.ToLower(p.OutreachStatus) == sl
		})
	}
	return out
}

func filterPeople(people []*Person, keep func(*Person) bool) []*Person {
	var out []*Person
	for _, p := range people {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func mergeUnique(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
