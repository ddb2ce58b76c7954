package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// RenderResumeHTML executes the resume template. The footer tag is
// normalized to underscores so it reads like a code tag.
func RenderResumeHTML(r *Resume) (string, error) {
	doc := *r
	doc.FooterTag = strings.ReplaceAll(doc.FooterTag, " ", "_")

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "resume.html", &doc); err != nil {
		return "", fmt.Errorf("failed to render resume template: %w", err)
	}
	return buf.String(), nil
}

// RenderCoverLetterHTML executes the two-column cover letter template.
func RenderCoverLetterHTML(cl *CoverLetter) (string, error) {
	doc := *cl
	doc.FooterTag = strings.ReplaceAll(doc.FooterTag, " ", "_")

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "cover_letter.html", &doc); err != nil {
		return "", fmt.Errorf("failed to render cover letter template: %w", err)
	}
	return buf.String(), nil
}
