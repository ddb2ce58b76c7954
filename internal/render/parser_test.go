package render

import (
	"testing"

	"jobcontext/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testContact = config.Contact{
	Name:      "Alex Morgan Rivera Jr",
	Phone:     "555-010-2000",
	Email:     "alex@example.com",
	LinkedIn:  "www.linkedin.com/in/alexrivera",
	Location:  "Atlanta, GA",
	Address:   "12 Peach St",
	CityState: "Marietta, GA 30066",
}

const sampleResume = "```plaintext\n" +
	`ALEX MORGAN RIVERA JR
alex.rivera@mail.dev | 404-555-0199 | linkedin.com/in/alexrivera

Backend Engineer | Go • Distributed Systems • Kubernetes

Engineer with eight years building payment and streaming
  infrastructure at scale.

TECHNICAL SKILLS
Languages: Go, Python, SQL
Cloud & Infrastructure: AWS, Kubernetes, Terraform

PROFESSIONAL EXPERIENCE

Senior Software Engineer | Acme Payments | Jan 2021 - Present
• Cut settlement latency 40% by moving batch jobs to streaming
• Led a team of four through a zero-downtime Postgres migration

Software Engineer
Initech, Atlanta
June 2017 - Dec 2020
Built the internal billing reconciliation service
• Shipped idempotent webhook processing

EDUCATION
B.S. Computer Science | Georgia Tech | 2017

PERSONAL PROJECTS (Post-2025)
homelab-operator
• Kubernetes operator managing a 3-node home cluster

LEADERSHIP & ADDITIONAL
Mentorship: Ran the new-hire onboarding guild
` + "```"

func TestParseResume_FullDocument(t *testing.T) {
	r := ParseResume(sampleResume, testContact)

	assert.Equal(t, "ALEX MORGAN RIVERA JR", r.Name)
	assert.Equal(t, "Backend Engineer | Go • Distributed Systems • Kubernetes", r.Tagline)
	assert.Contains(t, r.Synopsis, "payment and streaming infrastructure at scale")

	// Contact pulled from the text, not the defaults
	assert.Equal(t, "alex.rivera@mail.dev", r.Contact.Email)
	assert.Equal(t, "404-555-0199", r.Contact.Phone)
	assert.Equal(t, "linkedin.com/in/alexrivera", r.Contact.LinkedIn)
	assert.Equal(t, "Atlanta, GA", r.Contact.Location)

	require.Len(t, r.Sections, 5)
	assert.Equal(t, KindSkills, r.Sections[0].Kind)
	assert.Equal(t, KindExperience, r.Sections[1].Kind)
	assert.Equal(t, KindEducation, r.Sections[2].Kind)
	assert.Equal(t, KindProjects, r.Sections[3].Kind)
	assert.Equal(t, KindLeadership, r.Sections[4].Kind)
}

func TestParseResume_Skills(t *testing.T) {
	r := ParseResume(sampleResume, testContact)

	skills := r.Sections[0]
	require.Len(t, skills.Items, 2)
	assert.Equal(t, "Languages", skills.Items[0].Label)
	assert.Equal(t, "Go, Python, SQL", skills.Items[0].Value)
	assert.Equal(t, "Cloud & Infrastructure", skills.Items[1].Label)
}

func TestParseResume_Experience(t *testing.T) {
	r := ParseResume(sampleResume, testContact)

	jobs := r.Sections[1].Jobs
	require.Len(t, jobs, 2)

	// Single pipe-separated header line
	assert.Equal(t, "Senior Software Engineer", jobs[0].Title)
	assert.Equal(t, "Acme Payments", jobs[0].Company)
	assert.Equal(t, "Jan 2021 - Present", jobs[0].Dates)
	require.Len(t, jobs[0].Bullets, 2)

	// Multi-line header with an implicit bullet
	assert.Equal(t, "Software Engineer", jobs[1].Title)
	assert.Equal(t, "Initech, Atlanta", jobs[1].Company)
	assert.Equal(t, "June 2017 - Dec 2020", jobs[1].Dates)
	require.Len(t, jobs[1].Bullets, 2)
	assert.Equal(t, "Built the internal billing reconciliation service", jobs[1].Bullets[0])
}

func TestParseResume_EducationProjectsLeadership(t *testing.T) {
	r := ParseResume(sampleResume, testContact)

	edu := r.Sections[2]
	assert.Equal(t, "B.S. Computer Science", edu.Degree)
	assert.Equal(t, "Georgia Tech | 2017", edu.School)

	projects := r.Sections[3].Projects
	require.Len(t, projects, 1)
	assert.Equal(t, "homelab-operator", projects[0].Name)
	require.Len(t, projects[0].Bullets, 1)

	lead := r.Sections[4].Items
	require.Len(t, lead, 1)
	assert.Equal(t, "Mentorship", lead[0].Label)
}

func TestParseResume_JobTitleNotSectionHeader(t *testing.T) {
	text := `ALEX RIVERA

PROFESSIONAL EXPERIENCE

TECHNICAL SPECIALIST
MegaCorp | March 2015 - May 2017
• Supported field deployments
`
	r := ParseResume(text, testContact)

	require.Len(t, r.Sections, 1)
	jobs := r.Sections[0].Jobs
	require.Len(t, jobs, 1)
	assert.Equal(t, "TECHNICAL SPECIALIST", jobs[0].Title)
	assert.Equal(t, "MegaCorp", jobs[0].Company)
	assert.Equal(t, "March 2015 - May 2017", jobs[0].Dates)
}

func TestParseResume_GroupedBullets(t *testing.T) {
	text := `ALEX RIVERA

EXPERIENCE

Platform Engineer | HostCo | 2019 - 2021
Cloud & Infrastructure:
• Ran the EKS fleet
• Wrote the cost dashboards
Data Pipelines:
• Moved ETL to Airflow
`
	r := ParseResume(text, testContact)

	jobs := r.Sections[0].Jobs
	require.Len(t, jobs, 1)
	require.Len(t, jobs[0].Groups, 2)
	assert.Equal(t, "Cloud & Infrastructure", jobs[0].Groups[0].Label)
	assert.Len(t, jobs[0].Groups[0].Bullets, 2)
	assert.Equal(t, "Data Pipelines", jobs[0].Groups[1].Label)
}

func TestParseResume_MetadataBlockStripped(t *testing.T) {
	text := `--------------------
APPLICATION MATERIALS - Acme - 2026-08-01
Keywords: go, kubernetes
--------------------
ALEX RIVERA

SUMMARY
Engineer who ships.
`
	r := ParseResume(text, testContact)

	assert.Equal(t, "ALEX RIVERA", r.Name)
	assert.Equal(t, "Engineer who ships.", r.Synopsis)
	assert.Empty(t, r.Sections)
}

func TestParseResume_DefaultsWhenSparse(t *testing.T) {
	r := ParseResume("alex@nowhere.dev\n", testContact)

	// No name line in the text, so the configured name fills in
	assert.Equal(t, "ALEX MORGAN RIVERA JR", r.Name)
	assert.Equal(t, "alex@nowhere.dev", r.Contact.Email)
	assert.Equal(t, "555-010-2000", r.Contact.Phone)
}

func TestDeriveFooterTag(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Resume_Acme_Backend.txt", "BACKEND ENGINEER"},
		{"resume_swe_fanduel.txt", "SOFTWARE ENGINEER"},
		{"Full-Stack_Resume.txt", "FULL STACK ENGINEER"},
		{"devops_platform.txt", "DEVOPS ENGINEER"},
		{"Resume_Acme.txt", "SOFTWARE ENGINEER"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveFooterTag(tt.filename), tt.filename)
	}
}

func TestParseNameParts(t *testing.T) {
	p := ParseNameParts("Alex Morgan Rivera III")
	assert.Equal(t, NameParts{Line1: "ALEX", Line2: "MORGAN", Last: "RIVERA", Suffix: "III"}, p)

	p = ParseNameParts("<ALEX RIVERA>")
	assert.Equal(t, NameParts{Line1: "ALEX", Last: "RIVERA"}, p)

	p = ParseNameParts("Madonna")
	assert.Equal(t, NameParts{Line1: "MADONNA"}, p)
}

func TestParseCoverLetter(t *testing.T) {
	text := `Alex Morgan Rivera Jr
alex.rivera@mail.dev
404-555-0199
www.linkedin.com/in/alexrivera

Acme Payments
Senior Software Engineer

Dear Hiring Team,

I build payment infrastructure that stays up on Black Friday, and Acme's
  move into real-time settlement is exactly the problem space I want.

At Initech I cut reconciliation lag from hours to seconds.

Sincerely,

Alex Rivera
`
	cl := ParseCoverLetter(text, testContact)

	assert.Equal(t, "ALEX", cl.Name.Line1)
	assert.Equal(t, "RIVERA", cl.Name.Last)
	assert.Equal(t, "JR", cl.Name.Suffix)
	assert.Equal(t, "alex.rivera@mail.dev", cl.Contact.Email)

	require.Len(t, cl.Paragraphs, 5)
	assert.Equal(t, "Dear Hiring Team,", cl.Paragraphs[0])
	assert.Contains(t, cl.Paragraphs[1], "Black Friday")
	assert.Equal(t, "Sincerely,", cl.Paragraphs[3])
	// Short signature expanded to the configured full name
	assert.Equal(t, "Alex Morgan Rivera Jr", cl.Paragraphs[4])
}

func TestParseCoverLetter_BodyStartsAtLongLine(t *testing.T) {
	text := `Alex Rivera
alex@example.com

HostCo

This letter has no salutation but this opening sentence is comfortably long enough to start the body.

Thanks for reading.
`
	cl := ParseCoverLetter(text, testContact)

	require.Len(t, cl.Paragraphs, 2)
	assert.Contains(t, cl.Paragraphs[0], "no salutation")
	assert.Equal(t, "Thanks for reading.", cl.Paragraphs[1])
}

func TestRenderResumeHTML(t *testing.T) {
	r := ParseResume(sampleResume, testContact)
	r.FooterTag = "BACKEND ENGINEER"

	html, err := RenderResumeHTML(r)
	require.NoError(t, err)
	assert.Contains(t, html, "ALEX MORGAN RIVERA JR")
	assert.Contains(t, html, "Acme Payments")
	assert.Contains(t, html, "BACKEND_ENGINEER")
	assert.Contains(t, html, "Georgia Tech")
}

func TestRenderCoverLetterHTML(t *testing.T) {
	cl := &CoverLetter{
		Name:       NameParts{Line1: "ALEX", Last: "RIVERA"},
		Contact:    ContactInfo{Email: "alex@example.com"},
		Paragraphs: []string{"Dear Team,", "I want this job."},
		FooterTag:  "SOFTWARE ENGINEER",
	}

	html, err := RenderCoverLetterHTML(cl)
	require.NoError(t, err)
	assert.Contains(t, html, "ALEX")
	assert.Contains(t, html, "I want this job.")
	assert.Contains(t, html, "SOFTWARE_ENGINEER")
}
