package render

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"jobcontext/internal/config"
)

var (
	yearRe     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	dateWordRe = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\b`)
	phoneRe    = regexp.MustCompile(`\+?\d[\d\s\-.()]{8,}`)
	emailRe    = regexp.MustCompile(`[\w.+\-]+@[\w.\-]+\.\w+`)
	linkedinRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[\w\-]+`)

	sectionHeaderRe = regexp.MustCompile(`^[A-Z][A-Z0-9 &/()\-]{3,}$`)
	trailingParenRe = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	separatorRe     = regexp.MustCompile(`^[-─*=]{3,}\s*$`)
	dashBlockRe     = regexp.MustCompile(`^-{5,}`)
	labelLineRe     = regexp.MustCompile(`^[A-Z][a-z]+:`)
	skillItemRe     = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 &/()_\-]+?):\s+(.+)$`)
	leaderItemRe    = regexp.MustCompile(`^([A-Z][A-Za-z0-9 ()&]+?):\s+(.+)$`)
	nonDigitRe      = regexp.MustCompile(`\D`)
	schemeRe        = regexp.MustCompile(`^https?://`)
)

// ParseResume parses a plain-text resume into a structured document.
// Contact fields missing from the text fall back to the configured
// defaults.
func ParseResume(text string, defaults config.Contact) *Resume {
	lines := strings.Split(stripFence(text), "\n")
	lines = stripMetadataBlocks(lines)
	lines = joinContinuations(lines)
	lines = stripSeparators(lines)

	contact := extractContact(lines, defaults)
	pre, rawSections := splitSections(lines)
	name, tagline, synopsis := parseHeader(pre)

	var sections []Section
	for _, raw := range rawSections {
		kind := classifySection(raw.title)

		if kind == KindSynopsis {
			// Fold into the header synopsis when the header had none
			if synopsis == "" {
				var parts []string
				for _, l := range raw.lines {
					if s := strings.TrimSpace(l); s != "" {
						parts = append(parts, s)
					}
				}
				synopsis = strings.Join(parts, " ")
			}
			continue
		}

		var sec Section
		switch kind {
		case KindSkills:
			sec = parseSkillsSection(raw.lines)
		case KindExperience:
			sec = parseExperienceSection(raw.lines)
		case KindEducation:
			sec = parseEducationSection(raw.lines)
		case KindProjects:
			sec = parseProjectsSection(raw.lines)
		case KindLeadership:
			sec = parseLeadershipSection(raw.lines)
		default:
			sec = Section{Kind: KindText}
			for _, l := range raw.lines {
				if s := strings.TrimSpace(l); s != "" {
					sec.Lines = append(sec.Lines, s)
				}
			}
		}
		sec.Title = raw.title
		sections = append(sections, sec)
	}

	if name == "" {
		name = strings.ToUpper(defaults.Name)
	}

	return &Resume{
		Name:     name,
		Contact:  contact,
		Tagline:  tagline,
		Synopsis: synopsis,
		Sections: sections,
	}
}

// stripFence removes a ```plaintext ... ``` wrapper when the whole text
// is fenced.
func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		return strings.Join(lines[1:len(lines)-1], "\n")
	}
	return strings.Join(lines[1:], "\n")
}

func isBullet(line string) bool {
	if line == "" {
		return false
	}
	r := []rune(line)[0]
	return r == '•' || r == '-' || r == '*'
}

func cleanBullet(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "•-*")
	return strings.TrimSpace(s)
}

// isUpperLine reports whether the line contains letters and none of them
// are lowercase.
func isUpperLine(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

func isSectionHeader(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" || isBullet(s) {
		return false
	}
	// Drop a trailing parenthetical note before matching, so headers like
	// "PERSONAL PROJECTS (2026)" still qualify
	test := strings.TrimSpace(trailingParenRe.ReplaceAllString(s, ""))
	if !sectionHeaderRe.MatchString(test) {
		return false
	}
	// All-caps names and job titles ("SOFTWARE ENGINEER") must not split
	// the document, so only known section types count as headers
	return classifySection(test) != KindText
}

func isDateLine(line string) bool {
	return yearRe.MatchString(line) && len(line) < 85
}

func isGroupLabel(line string) bool {
	s := strings.TrimSpace(line)
	return !isBullet(s) &&
		strings.HasSuffix(s, ":") &&
		len(s) > 3 && len(s) < 55 &&
		!yearRe.MatchString(s)
}

// joinContinuations reattaches word-wrapped lines (starting with a space)
// to the last non-blank line above them.
func joinContinuations(lines []string) []string {
	var result []string
	for _, line := range lines {
		if line != "" && line[0] == ' ' && len(result) > 0 {
			joined := false
			for i := len(result) - 1; i >= 0; i-- {
				if strings.TrimSpace(result[i]) != "" {
					result[i] = strings.TrimRight(result[i], " \t") + " " + strings.TrimSpace(line)
					joined = true
					break
				}
			}
			if !joined {
				result = append(result, line)
			}
		} else {
			result = append(result, line)
		}
	}
	return result
}

func stripSeparators(lines []string) []string {
	var out []string
	for _, l := range lines {
		if !separatorRe.MatchString(strings.TrimSpace(l)) {
			out = append(out, l)
		}
	}
	return out
}

// stripMetadataBlocks removes dashed-off blocks containing
// "APPLICATION MATERIALS", which generated .txt files sometimes carry as
// a header comment.
func stripMetadataBlocks(lines []string) []string {
	var result []string
	inBlock := false

	for _, line := range lines {
		switch {
		case dashBlockRe.MatchString(strings.TrimSpace(line)):
			inBlock = !inBlock
		case inBlock:
			// block content is dropped until the closing dashes
		default:
			result = append(result, line)
		}
	}
	return result
}

func extractContact(lines []string, defaults config.Contact) ContactInfo {
	contact := ContactInfo{
		Phone:     defaults.Phone,
		Email:     defaults.Email,
		LinkedIn:  defaults.LinkedIn,
		Location:  defaults.Location,
		Address:   defaults.Address,
		CityState: defaults.CityState,
	}

	phoneFound := false
	for _, line := range lines {
		if m := phoneRe.FindString(line); m != "" && !phoneFound {
			digits := nonDigitRe.ReplaceAllString(m, "")
			if len(digits) >= 10 {
				contact.Phone = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(m), "+"))
				phoneFound = true
			}
		}
		if m := emailRe.FindString(line); m != "" {
			contact.Email = strings.TrimSpace(m)
		}
		if m := linkedinRe.FindString(line); m != "" {
			contact.LinkedIn = schemeRe.ReplaceAllString(m, "")
		}
	}
	return contact
}

type rawSection struct {
	title string
	lines []string
}

// splitSections separates the header block (everything before the first
// section header) from the titled sections.
func splitSections(lines []string) (pre []string, sections []rawSection) {
	var currentTitle string
	var currentLines []string
	haveSection := false

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if isSectionHeader(stripped) {
			if haveSection {
				sections = append(sections, rawSection{currentTitle, currentLines})
			} else {
				pre = append(pre, currentLines...)
			}
			currentTitle = stripped
			currentLines = nil
			haveSection = true
		} else if !haveSection {
			pre = append(pre, line)
		} else {
			currentLines = append(currentLines, line)
		}
	}

	if haveSection {
		sections = append(sections, rawSection{currentTitle, currentLines})
	}
	return pre, sections
}

var allCapsRe = regexp.MustCompile(`^[A-Z ]+$`)

// parseHeader pulls the name, tagline, and synopsis out of the header
// block. The name is the leading all-caps line(s); the tagline is a
// pipe-separated keyword line; everything else becomes the synopsis.
func parseHeader(preLines []string) (name, tagline, synopsis string) {
	var nameLines, synopsisLines []string
	inSynopsis := false

	for _, line := range preLines {
		s := strings.TrimSpace(line)
		if s == "" {
			if len(nameLines) > 0 && !inSynopsis {
				inSynopsis = true
			}
			continue
		}
		if emailRe.MatchString(s) || phoneRe.MatchString(s) || linkedinRe.MatchString(s) ||
			strings.HasPrefix(s, "---") || labelLineRe.MatchString(s) {
			continue
		}
		switch {
		case inSynopsis:
			if tagline == "" && strings.Contains(s, "|") && len(strings.Fields(s)) <= 20 {
				tagline = s
			} else {
				synopsisLines = append(synopsisLines, s)
			}
		case len(nameLines) == 0 || (len(s) > 6 && isUpperLine(s) && !strings.Contains(s, ",") && !strings.Contains(s, "@")):
			// A second long all-caps line is usually a subtitle like
			// "SOFTWARE ENGINEER", not more of the name
			if len(nameLines) > 0 && allCapsRe.MatchString(s) && len(s) > 10 {
				continue
			}
			nameLines = append(nameLines, s)
		default:
			synopsisLines = append(synopsisLines, s)
		}
	}

	name = strings.ToUpper(strings.TrimSpace(strings.Join(nameLines, " ")))
	synopsis = strings.TrimSpace(strings.Join(synopsisLines, " "))
	return name, tagline, synopsis
}

func parseSkillsSection(lines []string) Section {
	sec := Section{Kind: KindSkills}
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		if isBullet(s) {
			s = cleanBullet(s)
		}
		if m := skillItemRe.FindStringSubmatch(s); m != nil {
			sec.Items = append(sec.Items, SkillItem{Label: strings.TrimSpace(m[1]), Value: strings.TrimSpace(m[2])})
		} else {
			sec.Items = append(sec.Items, SkillItem{Value: s})
		}
	}
	return sec
}

// isDatePart reports whether s looks like a date range, regardless of
// line length.
func isDatePart(s string) bool {
	return yearRe.MatchString(s) &&
		(dateWordRe.MatchString(s) || strings.ContainsAny(s, "–—-"))
}

type jobBuilder struct {
	job    Job
	hlines []string
	done   bool
}

// finalize resolves accumulated header lines into title/company/dates.
func (b *jobBuilder) finalize() {
	if b.done {
		return
	}
	b.done = true
	hlines := b.hlines
	b.hlines = nil
	if len(hlines) == 0 {
		return
	}

	// Single pipe-separated line
	if len(hlines) == 1 && strings.Contains(hlines[0], " | ") {
		parts := splitPipe(hlines[0])
		last := parts[len(parts)-1]
		lastIsDate := isDatePart(last)
		if len(parts) >= 3 && lastIsDate {
			b.job.Title = parts[0]
			b.job.Company = strings.Join(parts[1:len(parts)-1], " | ")
			b.job.Dates = last
			return
		}
		if len(parts) == 2 && lastIsDate {
			if b.job.Company == "" {
				b.job.Company = parts[0]
			}
			if b.job.Dates == "" {
				b.job.Dates = last
			}
			return
		}
		if len(parts) == 2 {
			if b.job.Title == "" {
				b.job.Title = hlines[0]
			} else {
				b.job.Company = parts[1]
			}
			return
		}
	}

	// Multi-line header
	for _, h := range hlines {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		// "Company, Location | Date Range" on one line
		if strings.Contains(h, " | ") && b.job.Company == "" {
			pipeParts := strings.SplitN(h, " | ", 2)
			if len(pipeParts) == 2 && isDateLine(strings.TrimSpace(pipeParts[1])) {
				b.job.Company = strings.TrimSpace(pipeParts[0])
				if b.job.Dates == "" {
					b.job.Dates = strings.TrimSpace(pipeParts[1])
				}
				continue
			}
		}
		switch {
		case isDateLine(h) && (dateWordRe.MatchString(h) || strings.ContainsAny(h, "–-")) && b.job.Dates == "":
			b.job.Dates = h
		case b.job.Title == "":
			b.job.Title = h
		case b.job.Company == "":
			b.job.Company = h
		default:
			b.job.Company += " " + h
		}
	}
}

func splitPipe(s string) []string {
	parts := strings.Split(s, " | ")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseExperienceSection(lines []string) Section {
	var jobs []*jobBuilder
	var cur *jobBuilder
	var curGroup *BulletGroup
	afterBlank := false

	flushGroup := func() {
		if curGroup != nil && cur != nil {
			if curGroup.Label != "" {
				cur.job.Groups = append(cur.job.Groups, *curGroup)
			} else {
				cur.job.Bullets = append(cur.job.Bullets, curGroup.Bullets...)
			}
		}
		curGroup = nil
	}

	newJob := func(firstLine string) {
		flushGroup()
		if cur != nil {
			cur.finalize()
		}
		b := &jobBuilder{hlines: []string{firstLine}}
		if strings.Contains(firstLine, " | ") {
			parts := splitPipe(firstLine)
			last := parts[len(parts)-1]
			switch {
			case len(parts) >= 3 && isDatePart(last):
				b.job.Title = parts[0]
				b.job.Company = strings.Join(parts[1:len(parts)-1], " | ")
				b.job.Dates = last
				b.hlines = nil
				b.done = true
			case len(parts) == 2 && isDatePart(last):
				b.job.Company = parts[0]
				b.job.Dates = last
				b.hlines = nil
				b.done = true
			default:
				// "Title | Level", company and dates follow on later lines
				b.job.Title = firstLine
				b.hlines = nil
			}
		}
		cur = b
		afterBlank = false
		jobs = append(jobs, cur)
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if line == "" {
			if cur != nil {
				afterBlank = true
			}
			continue
		}

		switch {
		case isBullet(line):
			afterBlank = false
			if cur == nil {
				continue
			}
			if !cur.done {
				cur.finalize()
			}
			if curGroup == nil {
				curGroup = &BulletGroup{}
			}
			curGroup.Bullets = append(curGroup.Bullets, cleanBullet(line))

		case isGroupLabel(line):
			afterBlank = false
			if cur == nil {
				continue
			}
			if !cur.done {
				cur.finalize()
			}
			flushGroup()
			curGroup = &BulletGroup{Label: strings.TrimSuffix(line, ":")}

		case cur == nil || afterBlank:
			// A blank line after content means the next text starts a job
			newJob(line)

		default:
			afterBlank = false
			if !cur.done {
				cur.hlines = append(cur.hlines, line)
				// Finalize once the last pipe segment looks like a date range
				segs := strings.Split(line, " | ")
				if isDatePart(strings.TrimSpace(segs[len(segs)-1])) {
					cur.finalize()
				}
			} else {
				// Plain text after a finished header is an implicit bullet
				if curGroup == nil {
					curGroup = &BulletGroup{}
				}
				curGroup.Bullets = append(curGroup.Bullets, line)
			}
		}
	}

	flushGroup()
	if cur != nil {
		cur.finalize()
	}

	sec := Section{Kind: KindExperience}
	for _, b := range jobs {
		sec.Jobs = append(sec.Jobs, b.job)
	}
	return sec
}

func parseEducationSection(lines []string) Section {
	var degree, school, year string
	var details []string

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		// Compact pipe format: "Degree | School | Year"
		if strings.Contains(line, " | ") && degree == "" {
			parts := splitPipe(line)
			degree = parts[0]
			if len(parts) >= 3 {
				school = parts[1]
				year = parts[2]
			} else if len(parts) == 2 {
				if yearRe.MatchString(parts[1]) {
					year = parts[1]
				} else {
					school = parts[1]
				}
			}
			continue
		}
		switch {
		case degree == "":
			degree = line
		case school == "":
			school = line
		case year == "" && yearRe.MatchString(line) && len(line) < 60:
			year = line
		default:
			details = append(details, line)
		}
	}

	if year != "" && school != "" && !strings.Contains(school, year) {
		school = school + " | " + year
	} else if year != "" && school == "" {
		school = year
	}
	return Section{Kind: KindEducation, Degree: degree, School: school, Details: details}
}

func parseProjectsSection(lines []string) Section {
	sec := Section{Kind: KindProjects}
	var cur *Project

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if isBullet(line) {
			if cur == nil {
				sec.Projects = append(sec.Projects, Project{Name: "Project"})
				cur = &sec.Projects[len(sec.Projects)-1]
			}
			cur.Bullets = append(cur.Bullets, cleanBullet(line))
		} else if cur != nil && len(cur.Bullets) == 0 {
			// Heading wrapped across lines
			cur.Name += " " + line
		} else {
			sec.Projects = append(sec.Projects, Project{Name: line})
			cur = &sec.Projects[len(sec.Projects)-1]
		}
	}
	return sec
}

func parseLeadershipSection(lines []string) Section {
	sec := Section{Kind: KindLeadership}
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if isBullet(line) {
			line = cleanBullet(line)
		}
		if m := leaderItemRe.FindStringSubmatch(line); m != nil {
			sec.Items = append(sec.Items, SkillItem{Label: strings.TrimSpace(m[1]), Value: strings.TrimSpace(m[2])})
		} else {
			sec.Items = append(sec.Items, SkillItem{Value: line})
		}
	}
	return sec
}

func classifySection(title string) SectionKind {
	t := strings.ToUpper(title)
	// "TECHNICAL" alone stays out of the skills triggers: a job title like
	// "TECHNICAL SPECIALIST" must not read as a skills header
	switch {
	case containsAny(t, "SKILL", "PROFICIEN", "TECH STACK"):
		return KindSkills
	case containsAny(t, "EXPERIENCE", "EMPLOYMENT"):
		return KindExperience
	case strings.Contains(t, "EDUCATION"):
		return KindEducation
	case strings.Contains(t, "PROJECT"):
		return KindProjects
	case containsAny(t, "LEADERSHIP", "ADDITIONAL", "ACHIEVEMENT", "CERTIFICATION"):
		return KindLeadership
	case containsAny(t, "SYNOPSIS", "SUMMARY", "OBJECTIVE"):
		return KindSynopsis
	}
	return KindText
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// DeriveFooterTag guesses the role-type footer from the source filename.
func DeriveFooterTag(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	lower := strings.ToLower(stem)
	switch {
	case strings.Contains(lower, "software engineer") || strings.Contains(lower, "swe"):
		return "SOFTWARE ENGINEER"
	case strings.Contains(lower, "full stack") || strings.Contains(lower, "full-stack"):
		return "FULL STACK ENGINEER"
	case strings.Contains(lower, "backend"):
		return "BACKEND ENGINEER"
	case strings.Contains(lower, "frontend") || strings.Contains(lower, "front-end"):
		return "FRONTEND ENGINEER"
	case strings.Contains(lower, "data engineer"):
		return "DATA ENGINEER"
	case strings.Contains(lower, "devops") || strings.Contains(lower, "sre"):
		return "DEVOPS ENGINEER"
	}
	return "SOFTWARE ENGINEER"
}

var nameSuffixes = map[string]bool{
	"III": true, "II": true, "IV": true,
	"JR": true, "JR.": true, "SR": true, "SR.": true,
}

// ParseNameParts splits a full name into the sidebar components used by
// the cover letter template.
func ParseNameParts(name string) NameParts {
	name = strings.ToUpper(strings.TrimSpace(strings.NewReplacer("<", "", ">", "").Replace(name)))
	parts := strings.Fields(name)

	var suffix string
	if len(parts) > 0 && nameSuffixes[parts[len(parts)-1]] {
		suffix = parts[len(parts)-1]
		parts = parts[:len(parts)-1]
	}

	switch len(parts) {
	case 0:
		return NameParts{Suffix: suffix}
	case 1:
		return NameParts{Line1: parts[0], Suffix: suffix}
	case 2:
		return NameParts{Line1: parts[0], Last: parts[1], Suffix: suffix}
	default:
		return NameParts{
			Line1:  parts[0],
			Line2:  strings.Join(parts[1:len(parts)-1], " "),
			Last:   parts[len(parts)-1],
			Suffix: suffix,
		}
	}
}
