// Package render turns plain-text resumes and cover letters into
// structured documents, renders them through HTML templates, and prints
// them to PDF with headless Chrome.
package render

// SectionKind classifies a resume section by its header title.
type SectionKind string

const (
	KindSkills     SectionKind = "skills"
	KindExperience SectionKind = "experience"
	KindEducation  SectionKind = "education"
	KindProjects   SectionKind = "projects"
	KindLeadership SectionKind = "leadership"
	KindSynopsis   SectionKind = "synopsis"
	KindText       SectionKind = "text"
)

// ContactInfo is the contact block rendered in the document header or
// sidebar. Values missing from the source text fall back to the
// configured defaults.
type ContactInfo struct {
	Phone     string
	Email     string
	LinkedIn  string
	Location  string
	Address   string
	CityState string
}

// SkillItem is one "Label: value" line in a skills or leadership section.
// Label may be empty for unlabeled lines.
type SkillItem struct {
	Label string
	Value string
}

// BulletGroup is a labeled cluster of bullets under a job, such as
// "Cloud & Infrastructure:". An empty label means ungrouped bullets.
type BulletGroup struct {
	Label   string
	Bullets []string
}

// Job is one position in an experience section.
type Job struct {
	Title   string
	Company string
	Dates   string
	Groups  []BulletGroup
	Bullets []string
}

// Project is one entry in a projects section.
type Project struct {
	Name    string
	Bullets []string
}

// Section is a parsed resume section. Only the fields matching Kind are
// populated.
type Section struct {
	Title    string
	Kind     SectionKind
	Items    []SkillItem
	Jobs     []Job
	Degree   string
	School   string
	Details  []string
	Projects []Project
	Lines    []string
}

// Resume is the fully parsed resume document.
type Resume struct {
	Name      string
	Contact   ContactInfo
	Tagline   string
	Synopsis  string
	Sections  []Section
	FooterTag string
}

// NameParts splits a full name for the cover letter sidebar, where each
// part renders on its own line.
type NameParts struct {
	Line1  string
	Line2  string
	Last   string
	Suffix string
}

// CoverLetter is the fully parsed cover letter document.
type CoverLetter struct {
	Name       NameParts
	FullName   string
	Contact    ContactInfo
	Paragraphs []string
	FooterTag  string
}
