package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"jobcontext/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerDigestTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_daily_digest",
		mcp.WithDescription("Morning briefing: overdue follow-ups, stale applications, recent rejections, drafted-but-unsent outreach, pending next steps, and a short prioritized focus list for today."),
	), s.handleGetDailyDigest)

	s.mcpServer.AddTool(mcp.NewTool("weekly_summary",
		mcp.WithDescription("Week-in-review: new and updated applications, rejections by stage, contacts added, mental health check-in trends, and a pipeline status snapshot."),
	), s.handleWeeklySummary)
}

func digestHeader(title string) []string {
	return []string{
		"╔══════════════════════════════════════╗",
		"║  " + title,
		"╚══════════════════════════════════════╝",
		"",
	}
}

func (s *Server) handleGetDailyDigest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := time.Now()
	data := s.pipeline.Load()
	active := data.Active()

	lines := digestHeader(fmt.Sprintf("DAILY DIGEST  —  %s", now.Format("Monday, January 02, 2006")))

	plural := "s"
	if len(active) == 1 {
		plural = ""
	}
	lines = append(lines,
		fmt.Sprintf("📋  PIPELINE: %d active application%s / %d total", len(active), plural, len(data.Applications)),
		"")

	overdue := store.DueFollowups(data.Applications, now)
	if len(overdue) > 0 {
		lines = append(lines, "⚠  FOLLOW-UPS DUE:")
		for _, f := range overdue {
			lines = append(lines, "  "+f.Label(now))
		}
		lines = append(lines, "")
	}

	type staleApp struct {
		app  *store.Application
		days int
	}
	var stale []staleApp
	for _, a := range active {
		if d := store.DaysSince(a.LastUpdated, now); d >= 7 {
			stale = append(stale, staleApp{app: a, days: d})
		}
	}
	sort.SliceStable(stale, func(i, j int) bool { return stale[i].days > stale[j].days })
	if len(stale) > 0 {
		lines = append(lines, "🕐  STALE APPLICATIONS (7+ days since update):")
		for _, sa := range stale {
			lines = append(lines, fmt.Sprintf("  %s — %s (%d days)", sa.app.Company, sa.app.Role, sa.days))
		}
		lines = append(lines, "")
	}

	weekAgo := now.AddDate(0, 0, -7).Format(store.DateLayout)
	var recentRejections []store.Rejection
	for _, r := range s.rejects.All() {
		if r.Date >= weekAgo {
			recentRejections = append(recentRejections, r)
		}
	}
	if len(recentRejections) > 0 {
		lines = append(lines, fmt.Sprintf("❌  REJECTIONS THIS WEEK (%d):", len(recentRejections)))
		for _, r := range recentRejections {
			stage := r.Stage
			if stage == "" {
				stage = "?"
			}
			lines = append(lines, fmt.Sprintf("  %s — %s (stage: %s)", r.Company, r.Role, stage))
		}
		lines = append(lines, "")
	}

	var drafted []*store.Person
	for _, p := range s.people.All() {
		if p.OutreachStatus == "drafted" {
			drafted = append(drafted, p)
		}
	}
	if len(drafted) > 0 {
		lines = append(lines, "📝  DRAFTED BUT NOT SENT:")
		for _, p := range drafted {
			company := p.Company
			if company == "" {
				company = "?"
			}
			lines = append(lines, fmt.Sprintf("  %s (%s)", p.Name, company))
		}
		lines = append(lines, "")
	}

	var pending []*store.Application
	for _, a := range active {
		if a.NextSteps == "" {
			continue
		}
		isStale := false
		for _, sa := range stale {
			if sa.app == a {
				isStale = true
				break
			}
		}
		if !isStale {
			pending = append(pending, a)
		}
	}
	if len(pending) > 0 {
		lines = append(lines, "📌  PENDING NEXT STEPS:")
		for i, a := range pending {
			if i >= 5 {
				break
			}
			lines = append(lines, fmt.Sprintf("  %s — %.100s", a.Company, a.NextSteps))
		}
		lines = append(lines, "")
	}

	rejPlural := "s"
	if len(s.rejects.All()) == 1 {
		rejPlural = ""
	}
	lines = append(lines,
		fmt.Sprintf("📊  TOTALS: %d apps tracked · %d rejection%s logged",
			len(data.Applications), len(s.rejects.All()), rejPlural),
		"")

	var priorities []string
	for _, f := range overdue {
		priorities = append(priorities, "Follow up on "+f.App.Company)
	}
	for _, sa := range stale {
		priorities = append(priorities, fmt.Sprintf("Nudge %s — %s", sa.app.Company, sa.app.Role))
	}
	for _, p := range drafted {
		priorities = append(priorities, "Send drafted message to "+p.Name)
	}
	if len(priorities) == 0 {
		if len(active) > 0 {
			priorities = append(priorities, "Review active pipeline for any needed follow-ups")
		}
		priorities = append(priorities,
			"Apply to 2-3 new roles",
			"Log a check-in after the session")
	}

	lines = append(lines, "🎯  TODAY'S FOCUS:")
	for i, p := range priorities {
		if i >= 3 {
			break
		}
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, p))
	}
	lines = append(lines, "")

	if nudge := s.checkinNudge(); nudge != "" {
		lines = append(lines, nudge)
	}

	return textResult(strings.Join(lines, "\n"))
}

func (s *Server) handleWeeklySummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := time.Now()
	weekAgoDate := now.AddDate(0, 0, -7)
	weekAgo := weekAgoDate.Format(store.DateLayout)
	data := s.pipeline.Load()

	lines := digestHeader(fmt.Sprintf("WEEKLY SUMMARY  —  week of %s", weekAgoDate.Format("Jan 02")))

	dayOf := func(stamp string) string {
		if len(stamp) >= 10 {
			return stamp[:10]
		}
		return stamp
	}

	var newApps, updatedApps []*store.Application
	for _, a := range data.Applications {
		applied := dayOf(a.AppliedDate)
		if applied == "" {
			applied = dayOf(a.LastUpdated)
		}
		switch {
		case applied >= weekAgo:
			newApps = append(newApps, a)
		case dayOf(a.LastUpdated) >= weekAgo:
			updatedApps = append(updatedApps, a)
		}
	}
	lines = append(lines,
		"📋  APPLICATIONS",
		fmt.Sprintf("  New this week:     %d", len(newApps)),
		fmt.Sprintf("  Updated this week: %d", len(updatedApps)))
	for _, a := range newApps {
		lines = append(lines, fmt.Sprintf("    + %s — %s (%s)", a.Company, a.Role, a.Status))
	}
	lines = append(lines, "")

	var weekRejections []store.Rejection
	for _, r := range s.rejects.All() {
		if r.Date >= weekAgo {
			weekRejections = append(weekRejections, r)
		}
	}
	lines = append(lines, fmt.Sprintf("❌  REJECTIONS THIS WEEK: %d", len(weekRejections)))
	stageCounts := map[string]int{}
	for _, r := range weekRejections {
		stage := r.Stage
		if stage == "" {
			stage = "unknown"
		}
		stageCounts[stage]++
	}
	for _, c := range countsDescending(stageCounts) {
		lines = append(lines, fmt.Sprintf("  %s: %d", c.name, c.count))
	}
	lines = append(lines, "")

	var newPeople []*store.Person
	for _, p := range s.people.All() {
		if dayOf(p.Timestamp) >= weekAgo {
			newPeople = append(newPeople, p)
		}
	}
	lines = append(lines, fmt.Sprintf("👥  CONTACTS ADDED: %d", len(newPeople)))
	for _, p := range newPeople {
		company := p.Company
		if company == "" {
			company = "?"
		}
		rel := p.Relationship
		if rel == "" {
			rel = "?"
		}
		lines = append(lines, fmt.Sprintf("  + %s (%s, %s)", p.Name, company, rel))
	}
	lines = append(lines, "")

	checkins := s.health.Recent(7, now)
	if len(checkins) > 0 {
		ciPlural := "s"
		if len(checkins) == 1 {
			ciPlural = ""
		}
		lines = append(lines, fmt.Sprintf("🧠  MENTAL HEALTH (%d check-in%s this week)", len(checkins), ciPlural))

		avg := store.AverageEnergy(checkins)
		productive := 0
		moodCounts := map[string]int{}
		for _, c := range checkins {
			if c.Productive {
				productive++
			}
			moodCounts[c.Mood]++
		}
		lines = append(lines,
			fmt.Sprintf("  Avg energy: %.1f/10", avg),
			fmt.Sprintf("  Productive days: %d/%d", productive, len(checkins)))

		moods := countsDescending(moodCounts)
		if len(moods) > 3 {
			moods = moods[:3]
		}
		var moodParts []string
		for _, m := range moods {
			moodParts = append(moodParts, fmt.Sprintf("%s (%dx)", m.name, m.count))
		}
		lines = append(lines, "  Mood distribution: "+strings.Join(moodParts, ", "))

		switch {
		case avg <= 4:
			lines = append(lines, "  ⚠  Low-energy week. Be gentle with yourself.")
		case avg >= 7:
			lines = append(lines, "  ✓  High-energy week. Ride the momentum.")
		}
	} else {
		lines = append(lines, "🧠  MENTAL HEALTH", "  No check-ins logged this week.")
	}
	lines = append(lines, "")

	active := data.Active()
	lines = append(lines, fmt.Sprintf("📊  PIPELINE SNAPSHOT (%d active)", len(active)))
	statusCounts := map[string]int{}
	for _, a := range active {
		statusCounts[a.Status]++
	}
	for _, c := range countsDescending(statusCounts) {
		lines = append(lines, fmt.Sprintf("  %s: %d", c.name, c.count))
	}
	lines = append(lines, "")

	return textResult(strings.Join(lines, "\n"))
}

type nameCount struct {
	name  string
	count int
}

func countsDescending(m map[string]int) []nameCount {
	out := make([]nameCount, 0, len(m))
	for k, v := range m {
		out = append(out, nameCount{name: k, count: v})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}
