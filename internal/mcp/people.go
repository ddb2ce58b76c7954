package mcp

import (
	"context"
	"fmt"
	"strings"

	"jobcontext/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPeopleTools() {
	s.mcpServer.AddTool(mcp.NewTool("log_person",
		mcp.WithDescription("Add or update a person in the contacts database. Call this any time a new person is mentioned with background info — former coworkers, recruiters, hiring managers, referrals, or anyone worth remembering. When sent_message is provided it is automatically ingested as a tone sample."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Full name of the person")),
		mcp.WithString("relationship", mcp.Required(), mcp.Description("How the user knows them, e.g. 'former coworker', 'recruiter', 'hiring manager', 'referral contact', 'friend'")),
		mcp.WithString("company", mcp.Required(), mcp.Description("Current or last known company")),
		mcp.WithString("context", mcp.Required(), mcp.Description("Background info — who they are and anything relevant about them")),
		mcp.WithArray("tags", mcp.Description("Searchable tags, e.g. ['ai', 'java', 'recruiter']")),
		mcp.WithString("contact_info", mcp.Description("LinkedIn URL, email, phone, etc.")),
		mcp.WithString("outreach_status", mcp.Description("One of: 'none', 'drafted', 'sent', 'responded'. Default 'none'")),
		mcp.WithString("notes", mcp.Description("Running notes about the relationship or interactions")),
		mcp.WithString("sent_message", mcp.Description("The actual text of a message already sent to this person; ingested as a tone sample")),
	), s.handleLogPerson)

	s.mcpServer.AddTool(mcp.NewTool("get_people",
		mcp.WithDescription("Retrieve people from the contacts database, optionally filtered by name, company, tag, or outreach status. Returns all people if no filters given."),
		mcp.WithString("name", mcp.Description("Filter by name, partial match")),
		mcp.WithString("company", mcp.Description("Filter by company, partial match")),
		mcp.WithString("tag", mcp.Description("Filter by tag, exact match")),
		mcp.WithString("outreach_status", mcp.Description("Filter by outreach status")),
	), s.handleGetPeople)
}

func (s *Server) handleLogPerson(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return errResult("%v", err)
	}
	relationship, err := req.RequireString("relationship")
	if err != nil {
		return errResult("%v", err)
	}
	company, err := req.RequireString("company")
	if err != nil {
		return errResult("%v", err)
	}
	background, err := req.RequireString("context")
	if err != nil {
		return errResult("%v", err)
	}

	person, updated, err := s.people.Upsert(store.PersonInput{
		Name:           name,
		Relationship:   relationship,
		Company:        company,
		Context:        background,
		Tags:           req.GetStringSlice("tags", nil),
		ContactInfo:    req.GetString("contact_info", ""),
		OutreachStatus: req.GetString("outreach_status", "none"),
		Notes:          req.GetString("notes", ""),
	})
	if err != nil {
		return errResult("✗ %v", err)
	}

	toneNote := ""
	if msg := strings.TrimSpace(req.GetString("sent_message", "")); msg != "" {
		source := "outreach_" + strings.ReplaceAll(strings.ToLower(name), " ", "_")
		sampleCtx := fmt.Sprintf("Message sent to %s (%s at %s).", name, relationship, company)
		if _, err := s.tone.Add(msg, source, sampleCtx); err != nil {
			s.logger.Warn("Failed to log tone sample", "error", err)
		} else {
			toneNote = " Tone sample auto-logged."
		}
	}

	if updated {
		return textResult(fmt.Sprintf("✓ Updated existing person #%d: %s (%s)%s",
			person.ID, person.Name, person.Company, toneNote))
	}
	return textResult(fmt.Sprintf("✓ Person logged (#%d): %s — %s at %s%s",
		person.ID, person.Name, person.Relationship, person.Company, toneNote))
}

func (s *Server) handleGetPeople(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	people := store.FilterPeople(s.people.All(),
		req.GetString("name", ""),
		req.GetString("company", ""),
		req.GetString("tag", ""),
		req.GetString("outreach_status", ""))

	if len(people) == 0 {
		return textResult("No people found matching those filters.")
	}

	plural := "s"
	if len(people) == 1 {
		plural = ""
	}
	lines := []string{fmt.Sprintf("═══ PEOPLE DATABASE (%d result%s) ═══", len(people), plural), ""}
	for _, p := range people {
		lines = append(lines, fmt.Sprintf("#%d — %s", p.ID, p.Name))
		lines = append(lines, "   Relationship:    "+orDash(p.Relationship))
		lines = append(lines, "   Company:         "+orDash(p.Company))
		status := p.OutreachStatus
		if status == "" {
			status = "none"
		}
		lines = append(lines, "   Outreach status: "+status)
		lines = append(lines, "   Tags:            "+orDash(strings.Join(p.Tags, ", ")))
		lines = append(lines, "   Context:         "+orDash(p.Context))
		if p.ContactInfo != "" {
			lines = append(lines, "   Contact info:    "+p.ContactInfo)
		}
		if p.Notes != "" {
			lines = append(lines, "   Notes:           "+p.Notes)
		}
		lines = append(lines, "   Added:           "+orDash(p.Timestamp))
		if p.LastUpdated != "" {
			lines = append(lines, "   Last updated:    "+p.LastUpdated)
		}
		lines = append(lines, "")
	}

	return textResult(strings.TrimRight(strings.Join(lines, "\n"), "\n"))
}

// lookupPersonContext returns a compact person summary for injection into
// outreach drafting context, empty when the person is unknown.
func (s *Server) lookupPersonContext(name string) string {
	p := s.people.Find(name)
	if p == nil {
		return ""
	}
	rel := p.Relationship
	if rel == "" {
		rel = "?"
	}
	company := p.Company
	if company == "" {
		company = "?"
	}
	parts := []string{
		fmt.Sprintf("Known contact: %s (%s at %s)", p.Name, rel, company),
		"Background: " + p.Context,
	}
	if p.Notes != "" {
		parts = append(parts, "Notes: "+p.Notes)
	}
	if p.OutreachStatus != "" && p.OutreachStatus != "none" {
		parts = append(parts, "Prior outreach: "+p.OutreachStatus)
	}
	return strings.Join(parts, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
