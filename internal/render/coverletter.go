package render

import (
	"regexp"
	"strings"

	"jobcontext/internal/config"
)

var contactLabelRe = regexp.MustCompile(`(?i)^(Phone|Email|LinkedIn|Address|Location):`)
var numericHeaderRe = regexp.MustCompile(`^(\+1|\d{3}|www\.|linkedin)`)

// ParseCoverLetter parses a plain-text cover letter into sidebar name
// parts plus body paragraphs. The name comes from the first non-contact
// line; the body starts at the "Dear ..." salutation or the first long
// paragraph.
func ParseCoverLetter(text string, defaults config.Contact) *CoverLetter {
	lines := strings.Split(stripFence(text), "\n")
	lines = stripMetadataBlocks(lines)
	lines = joinContinuations(lines)
	lines = stripSeparators(lines)

	contact := extractContact(lines, defaults)

	derivedName := defaults.Name
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s != "" && !strings.Contains(s, "@") && !phoneRe.MatchString(s) && !linkedinRe.MatchString(s) {
			derivedName = s
			break
		}
	}

	firstName := ""
	if fields := strings.Fields(derivedName); len(fields) > 0 {
		firstName = fields[0]
	}

	isHeaderLine := func(s string) bool {
		if numericHeaderRe.MatchString(strings.ToLower(s)) || contactLabelRe.MatchString(s) {
			return true
		}
		return firstName != "" && strings.HasPrefix(strings.ToLower(s), strings.ToLower(firstName))
	}

	// Header lines are short after continuation joining; real paragraphs
	// come out long. Short non-contact lines before the body are the
	// company name and job title, which the template does not use.
	var bodyLines []string
	inBody := false
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if !inBody {
			if s == "" || emailRe.MatchString(s) || phoneRe.MatchString(s) ||
				linkedinRe.MatchString(s) || isHeaderLine(s) {
				continue
			}
			if strings.HasPrefix(strings.ToLower(s), "dear") {
				inBody = true
				bodyLines = append(bodyLines, line)
				continue
			}
			if len(s) > 60 {
				inBody = true
				bodyLines = append(bodyLines, line)
			}
		} else {
			bodyLines = append(bodyLines, line)
		}
	}

	var paragraphs []string
	var current []string
	for _, line := range bodyLines {
		s := strings.TrimSpace(line)
		if s != "" {
			current = append(current, s)
		} else if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, " "))
	}

	fixSignature(paragraphs, derivedName, defaults.Name)

	return &CoverLetter{
		Name:       ParseNameParts(derivedName),
		FullName:   derivedName,
		Contact:    contact,
		Paragraphs: paragraphs,
		FooterTag:  "SOFTWARE ENGINEER",
	}
}

// fixSignature replaces a shortened closing signature ("Frank MacBride")
// in the last few paragraphs with the full configured name.
func fixSignature(paragraphs []string, derivedName, fullName string) {
	if fullName == "" {
		fullName = derivedName
	}
	fields := strings.Fields(fullName)
	if len(fields) < 2 {
		return
	}
	firstName := strings.ToLower(fields[0])

	stop := len(paragraphs) - 5
	if stop < -1 {
		stop = -1
	}
	for i := len(paragraphs) - 1; i > stop; i-- {
		p := strings.TrimSpace(paragraphs[i])
		words := strings.Fields(p)
		if len(words) == 0 || len(words) > 4 {
			continue
		}
		if strings.ToLower(words[0]) == firstName && !strings.EqualFold(p, fullName) {
			paragraphs[i] = fullName
			return
		}
	}
}
