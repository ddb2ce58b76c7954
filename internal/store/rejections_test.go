package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectionLog_AddAssignsSequentialIDs(t *testing.T) {
	l := NewRejectionLog(tempFile(t, "rejections.json"))

	r1, err := l.Add("FanDuel", "Senior SWE", "Phone Screen", "", "", "")
	require.NoError(t, err)
	r2, err := l.Add("Reddit", "Backend", "applied", "ghosted", "", "2026-08-01")
	require.NoError(t, err)

	assert.Equal(t, 1, r1.ID)
	assert.Equal(t, 2, r2.ID)
	// Stage is normalized to lowercase, date defaults to today
	assert.Equal(t, "phone screen", r1.Stage)
	assert.Equal(t, Today(), r1.Date)
	assert.Equal(t, "2026-08-01", r2.Date)

	assert.Len(t, l.All(), 2)
}

func TestFilterRejections(t *testing.T) {
	rs := []Rejection{
		{ID: 1, Company: "FanDuel", Stage: "onsite", Date: "2026-08-01"},
		{ID: 2, Company: "Fanatics", Stage: "applied", Date: "2026-08-10"},
		{ID: 3, Company: "Reddit", Stage: "applied", Date: "2026-07-01"},
	}

	byCompany := FilterRejections(rs, "fan", "", "")
	assert.Len(t, byCompany, 2)

	byStage := FilterRejections(rs, "", "applied", "")
	assert.Len(t, byStage, 2)

	bySince := FilterRejections(rs, "", "", "2026-08-01")
	assert.Len(t, bySince, 2)

	combined := FilterRejections(rs, "fan", "applied", "2026-08-01")
	require.Len(t, combined, 1)
	assert.Equal(t, 2, combined[0].ID)
}

func TestAnalyzeRejections_Patterns(t *testing.T) {
	rs := []Rejection{
		{Company: "A", Stage: "applied"},
		{Company: "A", Stage: "applied", Reason: "ghosted"},
		{Company: "B", Stage: "phone screen", Reason: "ghosted"},
		{Company: "C", Stage: "onsite", Reason: "not enough cloud experience"},
	}

	p := AnalyzeRejections(rs)

	require.NotEmpty(t, p.StageCounts)
	assert.Equal(t, "applied", p.StageCounts[0].Stage)
	assert.Equal(t, 2, p.StageCounts[0].Count)

	require.Len(t, p.RepeatCompanies, 1)
	assert.Equal(t, "A", p.RepeatCompanies[0].Stage)

	require.NotEmpty(t, p.TopReasons)
	assert.Equal(t, "ghosted", p.TopReasons[0].Stage)

	assert.Equal(t, "onsite", p.FurthestStage)
	// 3 of 4 rejections at applied/phone screen stage
	assert.True(t, p.EarlyFunnel)
}

func TestAnalyzeRejections_NoEarlyFunnelFlag(t *testing.T) {
	rs := []Rejection{
		{Company: "A", Stage: "onsite"},
		{Company: "B", Stage: "final round"},
		{Company: "C", Stage: "applied"},
	}

	p := AnalyzeRejections(rs)
	assert.False(t, p.EarlyFunnel)
	assert.Equal(t, "final round", p.FurthestStage)
}

func TestAnalyzeRejections_Empty(t *testing.T) {
	p := AnalyzeRejections(nil)
	assert.Empty(t, p.StageCounts)
	assert.False(t, p.EarlyFunnel)
}
