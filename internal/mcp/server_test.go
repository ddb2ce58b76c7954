package mcp

import (
	"context"
	"testing"
	"time"

	"jobcontext/internal/config"
	"jobcontext/internal/logging"
	"jobcontext/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		DataDir:     t.TempDir(),
		ResumeDir:   t.TempDir(),
		LeetcodeDir: t.TempDir(),
		Contact:     config.Contact{Name: "Jordan Avery"},
	}
	return NewServer(cfg, logging.NewAppLogger())
}

func resultText(t *testing.T, res *mcp.CallToolResult, err error) string {
	t.Helper()
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestCompanyStatus(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, "No active application tracked for FanDuel.", s.companyStatus("FanDuel"))

	_, err := s.pipeline.Upsert("FanDuel", "Senior SWE", "phone screen", "follow up Friday", "Sam R", "")
	require.NoError(t, err)

	status := s.companyStatus("fanduel")
	assert.Contains(t, status, "Company: FanDuel")
	assert.Contains(t, status, "Status:  phone screen")
	assert.Contains(t, status, "Contact: Sam R")
	assert.Contains(t, status, "Next steps: follow up Friday")
}

func TestCheckinNudge(t *testing.T) {
	s := newTestServer(t)

	nudge := s.checkinNudge()
	assert.Contains(t, nudge, "No check-in logged yet today")

	_, _, err := s.health.Add("stable", 5, "", true, time.Now())
	require.NoError(t, err)
	assert.Empty(t, s.checkinNudge())
}

func TestJobHuntStatusText_Empty(t *testing.T) {
	s := newTestServer(t)
	text := s.jobHuntStatusText()
	assert.Contains(t, text, "No applications tracked yet.")
	assert.Contains(t, text, "No check-in logged yet today")
}

func TestToneProfileText(t *testing.T) {
	s := newTestServer(t)

	assert.Contains(t, s.toneProfileText(), "No tone samples logged yet.")

	_, err := s.tone.Add("keeping it short and direct", "email", "recruiter reply")
	require.NoError(t, err)

	text := s.toneProfileText()
	assert.Contains(t, text, "═══ TONE PROFILE (1 samples, 5 total words) ═══")
	assert.Contains(t, text, "── Sample #1 | email ──")
	assert.Contains(t, text, "keeping it short and direct")
}

func TestHBDIProfileText(t *testing.T) {
	s := newTestServer(t)

	assert.Contains(t, s.hbdiProfileText(), "No HBDI profile found.")

	require.NoError(t, s.stories.SetHBDI(store.HBDIProfile{
		AssessedAt: "2026-08-24 10:00",
		Scores:     map[string]int{"A": 4, "B": 2, "C": 3, "D": 1},
		Primary:    "A",
		Responses:  map[string]string{"q1_no_spec_project": "sketch the data model first"},
	}))

	text := s.hbdiProfileText()
	assert.Contains(t, text, "═══ HBDI COGNITIVE PROFILE ═══")
	assert.Contains(t, text, "Primary: A")
	assert.Contains(t, text, "sketch the data model first")
	assert.Contains(t, text, "(Assessed: 2026-08-24 10:00)")
}

func TestSafeFilename(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, "Jordan Avery Resume - FanDuel Senior SWE Resume.txt",
		s.safeFilename("FanDuel", "Senior SWE", "Resume"))
	assert.Equal(t, "Jordan Avery Cover Letter - Reddit Backend Engineer Cover Letter.txt",
		s.safeFilename("Reddit", "Backend / Engineer!", "Cover Letter"))

	s.cfg.Contact.Name = ""
	assert.Equal(t, "Resume Resume - FanDuel SWE Resume.txt",
		s.safeFilename("FanDuel", "SWE", "Resume"))
}

func TestDailyDigest_EmptyState(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleGetDailyDigest(context.Background(), mcp.CallToolRequest{})
	text := resultText(t, res, err)
	assert.Contains(t, text, "DAILY DIGEST")
	assert.Contains(t, text, "📋  PIPELINE: 0 active applications / 0 total")
	assert.Contains(t, text, "🎯  TODAY'S FOCUS:")
	assert.Contains(t, text, "1. Apply to 2-3 new roles")
	assert.Contains(t, text, "No check-in logged yet today")
}

func TestDailyDigest_DraftedOutreach(t *testing.T) {
	s := newTestServer(t)

	_, _, err := s.people.Upsert(store.PersonInput{
		Name: "Maya Lin", Company: "Reddit", OutreachStatus: "drafted",
	})
	require.NoError(t, err)

	res, err := s.handleGetDailyDigest(context.Background(), mcp.CallToolRequest{})
	text := resultText(t, res, err)
	assert.Contains(t, text, "📝  DRAFTED BUT NOT SENT:")
	assert.Contains(t, text, "  Maya Lin (Reddit)")
	assert.Contains(t, text, "Send drafted message to Maya Lin")
}

func TestWeeklySummary_NewApplication(t *testing.T) {
	s := newTestServer(t)

	_, err := s.pipeline.Upsert("FanDuel", "Senior SWE", "applied", "", "", "")
	require.NoError(t, err)
	_, err = s.rejects.Add("Reddit", "Backend Engineer", "onsite", "", "", "")
	require.NoError(t, err)

	res, err := s.handleWeeklySummary(context.Background(), mcp.CallToolRequest{})
	text := resultText(t, res, err)
	assert.Contains(t, text, "WEEKLY SUMMARY")
	assert.Contains(t, text, "  New this week:     1")
	assert.Contains(t, text, "    + FanDuel — Senior SWE (applied)")
	assert.Contains(t, text, "❌  REJECTIONS THIS WEEK: 1")
	assert.Contains(t, text, "  onsite: 1")
	assert.Contains(t, text, "  No check-ins logged this week.")
	assert.Contains(t, text, "📊  PIPELINE SNAPSHOT (1 active)")
	assert.Contains(t, text, "  applied: 1")
}
