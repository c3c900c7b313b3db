package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAnalysisRecordFullyPopulated(t *testing.T) {
	record := DefaultAnalysisRecord()

	assert.Equal(t, PlaceholderSummary, record.Summary)
	assert.NotNil(t, record.Actions)
	assert.Empty(t, record.Actions)
	assert.Equal(t, ToneNeutral, record.Tone)
	assert.Equal(t, PriorityNormal, record.Priority)
	assert.Equal(t, CategoryInfo, record.Category)
}

func TestPrioritySymbol(t *testing.T) {
	assert.Equal(t, "🔴", PriorityCritical.Symbol())
	assert.Equal(t, "🟠", PriorityImportant.Symbol())
	assert.Equal(t, "🟢", PriorityNormal.Symbol())

	// Unknown values render as Normal rather than blowing up.
	assert.Equal(t, "🟢", Priority("whatever").Symbol())
}

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"Critical", PriorityCritical},
		{"critical", PriorityCritical},
		{"  CRITICAL  ", PriorityCritical},
		{"important", PriorityImportant},
		{"Normal", PriorityNormal},
		{"", PriorityNormal},
		{"p1", PriorityNormal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePriority(tt.in), "input %q", tt.in)
	}
}

func TestPlaceholderMessageNonEmpty(t *testing.T) {
	msg := PlaceholderMessage()

	assert.NotEmpty(t, msg.Sender)
	assert.NotEmpty(t, msg.Subject)
	assert.NotEmpty(t, msg.Date)
	assert.NotEmpty(t, msg.Body)
}

func TestFetchCriteriaNormalize(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero becomes default", 0, DefaultFetchLimit},
		{"negative becomes default", -5, DefaultFetchLimit},
		{"in range unchanged", 10, 10},
		{"max unchanged", MaxFetchLimit, MaxFetchLimit},
		{"above max capped", MaxFetchLimit + 1, MaxFetchLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FetchCriteria{Limit: tt.limit}.Normalize()
			assert.Equal(t, tt.want, got.Limit)
		})
	}
}

func TestFetchCriteriaNormalizeKeepsFilters(t *testing.T) {
	criteria := FetchCriteria{Limit: 5, UnreadOnly: true}.Normalize()

	assert.True(t, criteria.UnreadOnly)
	assert.Equal(t, 5, criteria.Limit)
}
