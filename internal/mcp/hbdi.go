package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"jobcontext/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
)

// Herrmann Whole Brain Model quadrants.
var hbdiQuadrants = map[string]string{
	"A": "Analytical / Logical",
	"B": "Organized / Sequential",
	"C": "Interpersonal / Feeling",
	"D": "Imaginative / Holistic",
}

var hbdiScoreLabels = map[int]string{
	4: "Primary",
	3: "Strong secondary",
	2: "Present (not dominant)",
	1: "Weak",
}

var hbdiFramingAdvice = map[string][]string{
	"D": {
		"You lead with vision and synthesis — you see the shape of a solution before anyone has named it.",
		"For A-dominant interviewers (metrics-first): consciously flip your opening. Lead data → then vision, not vision → then data.",
		"On 'tell me about yourself': anchor the narrative in a concrete outcome first, then explain the insight that drove it.",
		"On innovation/design questions: this is your home court. Let the D run.",
		"On 'weakness' questions: name the B gap honestly (process, sequencing) and show your tooling strategy — 'I weaponize AI for the B work.'",
		"Under pressure (whiteboard, panel): you run internal analysis before speaking. This reads as calm confidence — it is an asset, not a tell.",
	},
	"A": {
		"You lead with data, logic, and precision — this lands well with technical interviewers and metrics-driven orgs.",
		"For C-dominant interviewers (relationship-first): open with the human impact before the numbers.",
		"On system design: walk through trade-offs explicitly — you naturally do this, so let it show.",
		"On 'tell me about a time you failed': give the data on what went wrong before the lesson — it signals intellectual honesty.",
		"On 'weakness' questions: the risk is appearing cold or over-optimizing. Counter with a story where stake-holder empathy changed the outcome.",
	},
	"C": {
		"You lead with relationships, team dynamics, and human outcomes.",
		"For A-dominant interviewers: anchor every story in a before/after metric, even if the metric was secondarily important to you.",
		"On cross-functional and collaboration questions: this is your strongest signal — use it fully.",
		"On conflict questions: your tendency to preserve relationship capital while holding conviction quietly is a premium answer — articulate it explicitly.",
		"On 'tell me about yourself': structure the narrative around people who shaped key outcomes, not just individual technical wins.",
	},
	"B": {
		"You lead with structure, process, and reliability — strong fit for ops, infra, and regulated environments.",
		"For D-dominant interviewers: open with the problem and why the existing process was failing before describing your solution.",
		"On 'walk me through your process' questions: this is home court — be specific, not generic.",
		"On innovation questions: frame your process improvements as unlocking speed or scale, not just compliance.",
		"On 'strength/weakness': name the D gap (you may under-sell big-picture vision) and show a story where stepping back to see the whole system changed the outcome.",
	},
}

var hbdiSecondaryAdvice = map[string]string{
	"A": "Back vision claims with data. Build the alternative implementation — not to win, to know.",
	"B": "Capable of thorough finish work. Use tools to compensate for the intrinsic B gap — document output is real even if B-motivation isn't.",
	"C": "Deploy empathy analytically: understand the other person's frame before reacting. Relationship capital is a strategic asset.",
	"D": "Hold the long view even when deferring short-term. The conviction doesn't die — it parks.",
}

type quadrantScore struct {
	Quadrant string
	Score    int
}

// rankQuadrants sorts descending by score, A..D order breaking ties.
func rankQuadrants(scores map[string]int) []quadrantScore {
	ranked := []quadrantScore{
		{"A", scores["A"]}, {"B", scores["B"]}, {"C", scores["C"]}, {"D", scores["D"]},
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func buildProfileReport(scores map[string]int, q1, q2, q3, q4, notes string) string {
	ranked := rankQuadrants(scores)
	primary := ranked[0].Quadrant
	lines := []string{"═══ HBDI COGNITIVE PROFILE ═══", ""}

	lines = append(lines, "── Quadrant Scores ──")
	for _, qs := range ranked {
		label := hbdiScoreLabels[qs.Score]
		if label == "" {
			label = "Unknown"
		}
		lines = append(lines, fmt.Sprintf("  %s (%s): %d/4 — %s",
			qs.Quadrant, hbdiQuadrants[qs.Quadrant], qs.Score, label))
	}
	lines = append(lines, "")

	questions := []struct {
		Label, Prompt, Answer string
	}{
		{"Q1", "No-spec project — first hour approach", q1},
		{"Q2", "Critical feedback on proud work", q2},
		{"Q3", "Six-week project — tedious finish phase", q3},
		{"Q4", "Disagree with senior engineer — what you actually do", q4},
	}
	lines = append(lines, "── Assessment Responses ──")
	for _, q := range questions {
		lines = append(lines,
			fmt.Sprintf("  %s: %s", q.Label, q.Prompt),
			"  → "+strings.TrimSpace(q.Answer),
			"")
	}

	if notes != "" {
		lines = append(lines, "Notes: "+notes, "")
	}

	lines = append(lines, "── Synthesis ──")
	lines = append(lines, fmt.Sprintf("  Primary quadrant: %s (%s)", primary, hbdiQuadrants[primary]))

	var secondaries []quadrantScore
	for _, qs := range ranked[1:] {
		if qs.Score >= 3 {
			secondaries = append(secondaries, qs)
		}
	}
	if len(secondaries) > 0 {
		var parts []string
		for _, qs := range secondaries {
			parts = append(parts, fmt.Sprintf("%s (%s)", qs.Quadrant, hbdiQuadrants[qs.Quadrant]))
		}
		lines = append(lines, "  Strong secondaries: "+strings.Join(parts, ", "))
	}

	var weaponized []string
	for _, qs := range ranked {
		if qs.Score == 2 {
			weaponized = append(weaponized, qs.Quadrant)
		}
	}
	if len(weaponized) > 0 {
		lines = append(lines, "  Present but not dominant (weaponize via tools/strategy): "+strings.Join(weaponized, ", "))
	}
	lines = append(lines, "")

	if len(secondaries) > 0 {
		lines = append(lines, "── Secondary Quadrant Patterns ──")
		for _, qs := range secondaries {
			lines = append(lines, fmt.Sprintf("  %s: %s", qs.Quadrant, hbdiSecondaryAdvice[qs.Quadrant]))
		}
		lines = append(lines, "")
	}

	lines = append(lines, fmt.Sprintf("── Interview Framing Advice (Primary: %s) ──", primary))
	for _, tip := range hbdiFramingAdvice[primary] {
		lines = append(lines, "  • "+tip)
	}
	lines = append(lines, "")

	lines = append(lines,
		"── Signature Answers (derived from your responses) ──",
		"  On disagreement: use your Q4 answer verbatim — it shows collaboration,",
		"    conviction, and empirical mindset in one sentence.",
		"  On weakness: be specific about your lowest quadrant and name your",
		"    concrete tooling/strategy that compensates — not a generic 'I'm a perfectionist.'",
		"  On 'how do you handle being wrong': use your Q2 answer — no self-loathing,",
		"    no theater. Clean.")

	return strings.Join(lines, "\n")
}

func (s *Server) registerHBDITools() {
	s.mcpServer.AddTool(mcp.NewTool("run_hbdi_assessment",
		mcp.WithDescription("Run an HBDI (Herrmann Whole Brain Model) cognitive style assessment and log the resulting profile to personal context. Answer the four guided questions honestly, then score each quadrant 1-4: A (Analytical/Logical), B (Organized/Sequential), C (Interpersonal/Feeling), D (Imaginative/Holistic). Scores: 1=weak, 2=present (not dominant), 3=strong secondary, 4=primary. Returns a full profile report with interview framing advice calibrated to the dominant quadrant."),
		mcp.WithString("q1_no_spec_project", mcp.Required(), mcp.Description("How do you approach a project with no spec in the first hour?")),
		mcp.WithString("q2_critical_feedback", mcp.Required(), mcp.Description("You receive critical feedback on work you were proud of. What do you actually do?")),
		mcp.WithString("q3_tedious_finish", mcp.Required(), mcp.Description("Six weeks in, exciting work done, now the tedious finish phase. How do you handle it?")),
		mcp.WithString("q4_senior_disagreement", mcp.Required(), mcp.Description("You disagree with a senior engineer on the right approach. What do you actually do?")),
		mcp.WithNumber("score_a", mcp.Required(), mcp.Description("Analytical/Logical score, 1-4")),
		mcp.WithNumber("score_b", mcp.Required(), mcp.Description("Organized/Sequential score, 1-4")),
		mcp.WithNumber("score_c", mcp.Required(), mcp.Description("Interpersonal/Feeling score, 1-4")),
		mcp.WithNumber("score_d", mcp.Required(), mcp.Description("Imaginative/Holistic score, 1-4")),
		mcp.WithString("notes", mcp.Description("Anything else observed during the assessment")),
	), s.handleRunHBDIAssessment)

	s.mcpServer.AddTool(mcp.NewTool("get_hbdi_profile",
		mcp.WithDescription("Return the stored HBDI cognitive profile, or instructions to run run_hbdi_assessment() if no assessment has been done yet."),
	), s.handleGetHBDIProfile)
}

func (s *Server) handleRunHBDIAssessment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q1, err := req.RequireString("q1_no_spec_project")
	if err != nil {
		return errResult("%v", err)
	}
	q2, err := req.RequireString("q2_critical_feedback")
	if err != nil {
		return errResult("%v", err)
	}
	q3, err := req.RequireString("q3_tedious_finish")
	if err != nil {
		return errResult("%v", err)
	}
	q4, err := req.RequireString("q4_senior_disagreement")
	if err != nil {
		return errResult("%v", err)
	}
	notes := req.GetString("notes", "")

	scoreArgs := []struct {
		Name string
		Key  string
	}{
		{"score_a", "A"}, {"score_b", "B"}, {"score_c", "C"}, {"score_d", "D"},
	}
	scores := map[string]int{}
	for _, arg := range scoreArgs {
		val, err := req.RequireInt(arg.Name)
		if err != nil {
			return errResult("%v", err)
		}
		if val < 1 || val > 4 {
			return textResult(fmt.Sprintf("✗ %s must be an integer between 1 and 4 (got %d).", arg.Name, val))
		}
		scores[arg.Key] = val
	}

	primary := rankQuadrants(scores)[0].Quadrant
	profile := store.HBDIProfile{
		AssessedAt: store.Now(),
		Scores:     scores,
		Primary:    primary,
		Responses: map[string]string{
			"q1_no_spec_project":     q1,
			"q2_critical_feedback":   q2,
			"q3_tedious_finish":      q3,
			"q4_senior_disagreement": q4,
		},
		Notes: notes,
	}
	if err := s.stories.SetHBDI(profile); err != nil {
		return errResult("failed to save profile: %v", err)
	}

	report := buildProfileReport(scores, q1, q2, q3, q4, notes)
	return textResult(report + fmt.Sprintf("\n✓ Profile saved to personal context (%s).", profile.AssessedAt))
}

// hbdiProfileText formats the stored profile, or instructions to run the
// assessment when none exists.
func (s *Server) hbdiProfileText() string {
	profile := s.stories.HBDI()
	if profile == nil {
		return "No HBDI profile found. Run run_hbdi_assessment() with:\n" +
			"  q1_no_spec_project, q2_critical_feedback, q3_tedious_finish, q4_senior_disagreement\n" +
			"  score_a, score_b, score_c, score_d  (each 1–4)\n\n" +
			"Scores: 1=weak  2=present  3=strong secondary  4=primary\n" +
			"Quadrants: A=Analytical  B=Organized  C=Interpersonal  D=Imaginative"
	}

	assessed := profile.AssessedAt
	if assessed == "" {
		assessed = "unknown"
	}
	report := buildProfileReport(profile.Scores,
		profile.Responses["q1_no_spec_project"],
		profile.Responses["q2_critical_feedback"],
		profile.Responses["q3_tedious_finish"],
		profile.Responses["q4_senior_disagreement"],
		profile.Notes)
	return report + fmt.Sprintf("\n(Assessed: %s)", assessed)
}

func (s *Server) handleGetHBDIProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(s.hbdiProfileText())
}
