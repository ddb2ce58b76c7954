package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommafy(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1000, "1,000"},
		{185000, "185,000"},
		{1234567, "1,234,567"},
		{-42000, "-42,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, commafy(tt.n), "commafy(%d)", tt.n)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactlyten", truncate("exactlyten", 10))
	assert.Equal(t, "toolongfor", truncate("toolongforthis", 10))
}

func TestDollarAndPctOrDash(t *testing.T) {
	assert.Equal(t, "—", dollarOrDash(0))
	assert.Equal(t, "$185,000", dollarOrDash(185000))
	assert.Equal(t, "—", pctOrDash(0))
	assert.Equal(t, "12.5%", pctOrDash(12.5))
	assert.Equal(t, "15%", pctOrDash(15))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dedupe([]string{"a", "a", "b", "c", "c"}))
	assert.Nil(t, dedupe(nil))
}

func TestCountsDescending(t *testing.T) {
	got := countsDescending(map[string]int{"applied": 2, "onsite": 5, "offer": 2})
	assert.Equal(t, []nameCount{
		{"onsite", 5},
		{"applied", 2},
		{"offer", 2},
	}, got)
}

func TestTitleWords(t *testing.T) {
	assert.Equal(t, "Cover Letters", titleWords("cover letters"))
	assert.Equal(t, "Interview Prep", titleWords("interview prep"))
}

func TestRankQuadrants(t *testing.T) {
	ranked := rankQuadrants(map[string]int{"A": 2, "B": 4, "C": 3, "D": 2})
	assert.Equal(t, "B", ranked[0].Quadrant)
	assert.Equal(t, "C", ranked[1].Quadrant)
	// Ties keep the fixed A,B,C,D order
	assert.Equal(t, "A", ranked[2].Quadrant)
	assert.Equal(t, "D", ranked[3].Quadrant)
}

func TestInferRoleType(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"SDET", "testing"},
		{"QA Automation Engineer", "testing"},
		{"Senior Cloud Engineer", "cloud"},
		{"Site Reliability Engineer", "cloud"},
		{"Data Pipeline Engineer", "data_engineering"},
		{"Full Stack Developer", "fullstack"},
		{"Machine Learning Engineer", "ai_innovation"},
		{"Embedded Firmware Engineer", "iot"},
		{"Senior Software Engineer", "backend"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inferRoleType(tt.role), "role %q", tt.role)
	}
}

func TestCustomizationStrategy(t *testing.T) {
	for _, key := range strategyOrder {
		text, ok := customizationStrategy(key)
		assert.True(t, ok, "strategy %q", key)
		assert.NotEmpty(t, text)
	}
	_, ok := customizationStrategy("astronaut")
	assert.False(t, ok)
}

func TestDetectMessageType(t *testing.T) {
	tests := []struct {
		context string
		want    string
	}{
		{"want to thank Maya for the phone screen", "thank_you"},
		{"hoping Sam can refer me internally", "referral_ask"},
		{"haven't heard back in two weeks", "recruiter_nudge"},
		{"never met this person, found them on LinkedIn", "cold_outreach"},
		{"met at the conference last month", "linkedin_followup"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, detectMessageType(tt.context), "context %q", tt.context)
	}
}
