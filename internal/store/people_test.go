package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeopleUpsert_AddNew(t *testing.T) {
	b := NewPeopleBook(tempFile(t, "people.json"))

	p, updated, err := b.Upsert(PersonInput{
		Name:         "Sam Rivera",
		Relationship: "recruiter",
		Company:      "FanDuel",
		Context:      "Reached out about senior role",
		Tags:         []string{"recruiter", "fanduel"},
	})
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "none", p.OutreachStatus)
}

func TestPeopleUpsert_MergeSemantics(t *testing.T) {
	b := NewPeopleBook(tempFile(t, "people.json"))

	_, _, err := b.Upsert(PersonInput{
		Name:         "Alex Chen",
		Relationship: "former coworker",
		Company:      "GM",
		Context:      "Worked together on cloud migration",
		Tags:         []string{"gm", "cloud"},
		Notes:        "good reference",
	})
	require.NoError(t, err)

	// Update with partial data: blank fields keep existing values,
	// tags union, notes append
	p, updated, err := b.Upsert(PersonInput{
		Name:           "alex chen",
		Company:        "Rivian",
		Tags:           []string{"cloud", "ev"},
		OutreachStatus: "sent",
		Notes:          "moved to Rivian",
	})
	require.NoError(t, err)
	assert.True(t, updated)

	assert.Equal(t, "Alex Chen", p.Name)
	assert.Equal(t, "former coworker", p.Relationship) // kept
	assert.Equal(t, "Rivian", p.Company)               // replaced
	assert.Equal(t, []string{"gm", "cloud", "ev"}, p.Tags)
	assert.Equal(t, "sent", p.OutreachStatus)
	assert.Equal(t, "good reference\nmoved to Rivian", p.Notes)
	assert.NotEmpty(t, p.LastUpdated)

	assert.Len(t, b.All(), 1)
}

func TestPeopleUpsert_NoneStatusDoesNotDowngrade(t *testing.T) {
	b := NewPeopleBook(tempFile(t, "people.json"))

	_, _, err := b.Upsert(PersonInput{Name: "Pat", Relationship: "friend", Company: "X", Context: "c", OutreachStatus: "responded"})
	require.NoError(t, err)

	p, _, err := b.Upsert(PersonInput{Name: "Pat", Notes: "follow up later"})
	require.NoError(t, err)
	assert.Equal(t, "responded", p.OutreachStatus)
}

func TestPeopleUpsert_InvalidStatus(t *testing.T) {
	b := NewPeopleBook(tempFile(t, "people.json"))

	_, _, err := b.Upsert(PersonInput{Name: "Pat", OutreachStatus: "emailed"})
	assert.Error(t, err)
}

func TestFilterPeople(t *testing.T) {
	people := []*Person{
		{Name: "Sam Rivera", Company: "FanDuel", Tags: []string{"recruiter"}, OutreachStatus: "drafted"},
		{Name: "Alex Chen", Company: "Rivian", Tags: []string{"cloud"}, OutreachStatus: "sent"},
		{Name: "Sam Smith", Company: "Reddit", Tags: []string{"recruiter"}, OutreachStatus: "none"},
	}

	assert.Len(t, FilterPeople(people, "sam", "", "", ""), 2)
	assert.Len(t, FilterPeople(people, "", "rivian", "", ""), 1)
	assert.Len(t, FilterPeople(people, "", "", "Recruiter", ""), 2)
	assert.Len(t, FilterPeople(people, "", "", "", "drafted"), 1)
	assert.Len(t, FilterPeople(people, "sam", "", "recruiter", "none"), 1)
}

func TestStories_AddAndFilter(t *testing.T) {
	s := NewContextStore(tempFile(t, "personal_context.json"))

	story1, err := s.AddStory("Led the cloud migration at GM, cutting deploy time 60%",
		[]string{"Cloud_Migration", "leadership"}, []string{"Alex Chen"}, "")
	require.NoError(t, err)
	_, err = s.AddStory("Debugged a production outage overnight",
		[]string{"debugging"}, nil, "The outage story")
	require.NoError(t, err)

	assert.Equal(t, 1, story1.ID)
	// Tags are lower-cased, default title truncates the story
	assert.Equal(t, []string{"cloud_migration", "leadership"}, story1.Tags)
	assert.Contains(t, story1.Title, "Led the cloud migration")

	stories := s.Stories()
	require.Len(t, stories, 2)

	byTag := FilterStories(stories, "cloud_migration", "")
	require.Len(t, byTag, 1)
	assert.Equal(t, 1, byTag[0].ID)

	byPerson := FilterStories(stories, "", "alex")
	require.Len(t, byPerson, 1)

	assert.Empty(t, FilterStories(stories, "nonexistent", ""))
}

func TestHBDIProfile_RoundTrip(t *testing.T) {
	s := NewContextStore(tempFile(t, "personal_context.json"))

	assert.Nil(t, s.HBDI())

	_, err := s.AddStory("a story", []string{"x"}, nil, "")
	require.NoError(t, err)

	profile := HBDIProfile{
		AssessedAt: Now(),
		Scores:     map[string]int{"A": 3, "B": 1, "C": 2, "D": 4},
		Primary:    "D",
		Responses:  map[string]string{"q1_no_spec_project": "sketch the whole system first"},
	}
	require.NoError(t, s.SetHBDI(profile))

	got := s.HBDI()
	require.NotNil(t, got)
	assert.Equal(t, "D", got.Primary)
	assert.Equal(t, 4, got.Scores["D"])

	// Stories survive the profile write
	assert.Len(t, s.Stories(), 1)
}
