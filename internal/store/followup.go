package store

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Follow-up dates are fished out of free-form next_steps text, e.g.
// "follow up 2026-09-01", "ping recruiter 9/1", "check back Sep 1".
var (
	isoDateRe     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	slashDateRe   = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}))?\b`)
	monthNameRe   = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?\b`)
	monthOrdinals = map[string]time.Month{
		"jan": time.January, "feb": time.February, "mar": time.March,
		"apr": time.April, "may": time.May, "jun": time.June,
		"jul": time.July, "aug": time.August, "sep": time.September,
		"oct": time.October, "nov": time.November, "dec": time.December,
	}
)

// ExtractFollowupDate finds the first date-like pattern in next_steps text.
// Dates without an explicit year take the current year; if that puts them
// more than 60 days in the past, they roll to next year (a "Jan 5" written
// in December means the coming January).
func ExtractFollowupDate(text string, now time.Time) (time.Time, bool) {
	if strings.TrimSpace(text) == "" {
		return time.Time{}, false
	}

	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if d, ok := makeDate(year, time.Month(month), day, now); ok {
			return d, true
		}
	}

	if m := slashDateRe.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year := 0
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		if d, ok := makeDate(year, time.Month(month), day, now); ok {
			return d, true
		}
	}

	if m := monthNameRe.FindStringSubmatch(text); m != nil {
		month, ok := monthOrdinals[strings.ToLower(m[1][:3])]
		if ok {
			day, _ := strconv.Atoi(m[2])
			year := 0
			if m[3] != "" {
				year, _ = strconv.Atoi(m[3])
			}
			if d, ok := makeDate(year, month, day, now); ok {
				return d, true
			}
		}
	}

	return time.Time{}, false
}

func makeDate(year int, month time.Month, day int, now time.Time) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	inferredYear := year == 0
	if inferredYear {
		year = now.Year()
	}

	d := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false // e.g. Feb 30 normalized away
	}

	// Year rollover: an inferred year that lands well in the past means the
	// writer meant the next occurrence of that date.
	if inferredYear && now.Sub(d) > 60*24*time.Hour {
		d = d.AddDate(1, 0, 0)
	}
	return d, true
}

// Followup pairs an application with its parsed follow-up date.
type Followup struct {
	App *Application
	Due time.Time
}

// Overdue reports whether the follow-up is due today or earlier.
func (f Followup) Overdue(now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !f.Due.After(today)
}

// DueFollowups returns active applications whose next_steps mention a date
// that is due today or overdue, most overdue first.
func DueFollowups(apps []*Application, now time.Time) []Followup {
	var due []Followup
	for _, a := range apps {
		if !a.Active() {
			continue
		}
		d, ok := ExtractFollowupDate(a.NextSteps, now)
		if !ok {
			continue
		}
		f := Followup{App: a, Due: d}
		if f.Overdue(now) {
			due = append(due, f)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Due.Before(due[j].Due)
	})
	return due
}

// Label renders a follow-up as a digest line, e.g.
// "[2026-08-20] FanDuel — Senior SWE: follow up with recruiter 8/20 (4 days overdue)".
func (f Followup) Label(now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(today.Sub(f.Due).Hours() / 24)

	when := "due today"
	if days == 1 {
		when = "1 day overdue"
	} else if days > 1 {
		when = fmt.Sprintf("%d days overdue", days)
	}
	return fmt.Sprintf("[%s] %s — %s: %s (%s)",
		f.Due.Format(DateLayout), f.App.Company, f.App.Role, f.App.NextSteps, when)
}
