package store

import (
	"sort"
	"strings"
)

// StageOrder ranks interview stages from earliest to furthest.
var StageOrder = []string{
	"applied",
	"phone screen",
	"technical screen",
	"take-home",
	"onsite",
	"final round",
	"offer",
	"unknown",
}

// Rejection is one logged rejection.
type Rejection struct {
	ID       int    `json:"id"`
	Company  string `json:"company"`
	Role     string `json:"role"`
	Stage    string `json:"stage"`
	Reason   string `json:"reason"`
	Notes    string `json:"notes"`
	Date     string `json:"date"`
	LoggedAt string `json:"logged_at"`
}

type rejectionData struct {
	Rejections []Rejection `json:"rejections"`
}

// RejectionLog is the rejection tracker backed by rejections.json.
type RejectionLog struct {
	Path string
}

func NewRejectionLog(path string) *RejectionLog {
	return &RejectionLog{Path: path}
}

func (l *RejectionLog) All() []Rejection {
	return LoadJSON(l.Path, rejectionData{}).Rejections
}

func nextRejectionID(rs []Rejection) int {
	max := 0
	for _, r := range rs {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

// Add appends a rejection with an auto-incremented id. Date defaults to today.
func (l *RejectionLog) Add(company, role, stage, reason, notes, date string) (Rejection, error) {
	data := LoadJSON(l.Path, rejectionData{})

	if strings.TrimSpace(date) == "" {
		date = Today()
	}
	entry := Rejection{
		ID:       nextRejectionID(data.Rejections),
		Company:  strings.TrimSpace(company),
		Role:     strings.TrimSpace(role),
		Stage:    strings.ToLower(strings.TrimSpace(stage)),
		Reason:   strings.TrimSpace(reason),
		Notes:    strings.TrimSpace(notes),
		Date:     strings.TrimSpace(date),
		LoggedAt: Now(),
	}
	data.Rejections = append(data.Rejections, entry)

	if err := SaveJSON(l.Path, data); err != nil {
		return Rejection{}, err
	}
	return entry, nil
}

// FilterRejections applies company (substring), stage (exact) and since
// (ISO date, inclusive) filters.
func FilterRejections(rs []Rejection, company, stage, since string) []Rejection {
	out := rs
	if company != "" {
		cl := strings.ToLower(strings.TrimSpace(company))
		out = filterRej(out, func(r Rejection) bool {
			return strings.Contains(strings.ToLower(r.Company), cl)
		})
	}
	if stage != "" {
		sl := strings.ToLower(strings.TrimSpace(stage))
		out = filterRej(out, func(r Rejection) bool { return r.Stage == sl })
	}
	if since != "" {
		out = filterRej(out, func(r Rejection) bool { return r.Date >= since })
	}
	return out
}

func filterRej(rs []Rejection, keep func(Rejection) bool) []Rejection {
	var out []Rejection
	for _, r := range rs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// StageCount is one histogram bucket in the pattern analysis.
type StageCount struct {
	Stage string
	Count int
}

// RejectionPatterns summarizes what the rejection log is saying.
type RejectionPatterns struct {
	StageCounts     []StageCount // descending by count
	RepeatCompanies []StageCount // companies rejected more than once, Stage holds the name
	TopReasons      []StageCount // up to 5, Stage holds the reason text
	FurthestStage   string
	EarlyFunnel     bool // >60% of rejections before the technical screen
}

// AnalyzeRejections builds the pattern summary over a set of rejections.
func AnalyzeRejections(rs []Rejection) RejectionPatterns {
	var p RejectionPatterns
	if len(rs) == 0 {
		return p
	}

	stageCounts := map[string]int{}
	companyCounts := map[string]int{}
	reasonCounts := map[string]int{}
	for _, r := range rs {
		stage := r.Stage
		if stage == "" {
			stage = "unknown"
		}
		stageCounts[stage]++
		companyCounts[r.Company]++
		if r.Reason != "" {
			reasonCounts[r.Reason]++
		}
	}

	p.StageCounts = sortedCounts(stageCounts, 0)
	for _, c := range sortedCounts(companyCounts, 0) {
		if c.Count > 1 {
			p.RepeatCompanies = append(p.RepeatCompanies, c)
		}
	}
	p.TopReasons = sortedCounts(reasonCounts, 5)

	stageIndex := map[string]int{}
	for i, s := range StageOrder {
		stageIndex[s] = i
	}
	furthest := -1
	for _, r := range rs {
		if idx := stageIndex[r.Stage]; idx > furthest {
			furthest = idx
			p.FurthestStage = r.Stage
		}
	}
	if p.FurthestStage == "" {
		p.FurthestStage = "unknown"
	}

	early := 0
	for _, r := range rs {
		switch r.Stage {
		case "applied", "phone screen", "unknown", "":
			early++
		}
	}
	p.EarlyFunnel = float64(early)/float64(len(rs)) > 0.6

	return p
}

func sortedCounts(m map[string]int, limit int) []StageCount {
	out := make([]StageCount, 0, len(m))
	for k, v := range m {
		out = append(out, StageCount{Stage: k, Count: v})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Stage < out[j].Stage
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
