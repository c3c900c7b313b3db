package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/email-insights/internal/model"
)

func TestMergeResponseFullPayload(t *testing.T) {
	output := `{
		"summary": "Bob needs the report.",
		"actions": ["Send report", "Schedule review"],
		"tone": "Formal",
		"priority": "critical",
		"category": "ACTION_REQUIRED"
	}`

	record := mergeResponse(model.DefaultAnalysisRecord(), output)

	assert.Equal(t, "Bob needs the report.", record.Summary)
	assert.Equal(t, []string{"Send report", "Schedule review"}, record.Actions)
	assert.Equal(t, model.ToneFormal, record.Tone)
	assert.Equal(t, model.PriorityCritical, record.Priority)
	assert.Equal(t, model.CategoryActionRequired, record.Category)
}

func TestMergeResponseMissingFieldsKeepDefaults(t *testing.T) {
	output := `{"summary": "Short note.", "tone": "informal", "priority": "Important"}`

	record := mergeResponse(model.DefaultAnalysisRecord(), output)

	assert.Equal(t, "Short note.", record.Summary)
	assert.Equal(t, model.ToneInformal, record.Tone)
	assert.Equal(t, model.PriorityImportant, record.Priority)
	// Absent keys equal the defaults.
	assert.Empty(t, record.Actions)
	assert.Equal(t, model.CategoryInfo, record.Category)
}

func TestMergeResponseNotJSONBecomesSummary(t *testing.T) {
	output := "The sender is asking about the Q3 budget."

	record := mergeResponse(model.DefaultAnalysisRecord(), output)

	assert.Equal(t, output, record.Summary)
	assert.Empty(t, record.Actions)
	assert.Equal(t, model.ToneNeutral, record.Tone)
	assert.Equal(t, model.PriorityNormal, record.Priority)
	assert.Equal(t, model.CategoryInfo, record.Category)
}

func TestMergeResponseJSONScalarBecomesSummary(t *testing.T) {
	// Valid JSON, but not an object.
	record := mergeResponse(model.DefaultAnalysisRecord(), `"just a string"`)
	assert.Equal(t, `"just a string"`, record.Summary)
}

func TestMergeResponseUnknownKeysIgnored(t *testing.T) {
	output := `{"summary": "ok", "confidence": 0.9, "language": "en"}`

	record := mergeResponse(model.DefaultAnalysisRecord(), output)

	assert.Equal(t, "ok", record.Summary)
	assert.Equal(t, model.ToneNeutral, record.Tone)
}

func TestMergeResponseScalarActionWrapped(t *testing.T) {
	output := `{"actions": "Reply to Bob"}`

	record := mergeResponse(model.DefaultAnalysisRecord(), output)

	assert.Equal(t, []string{"Reply to Bob"}, record.Actions)
}

func TestMergeResponseMixedActionsStringified(t *testing.T) {
	output := `{"actions": ["Reply", 2, true]}`

	record := mergeResponse(model.DefaultAnalysisRecord(), output)

	assert.Equal(t, []string{"Reply", "2", "true"}, record.Actions)
}

func TestMergeResponseFencedJSON(t *testing.T) {
	output := "```json\n{\"summary\": \"fenced\"}\n```"

	record := mergeResponse(model.DefaultAnalysisRecord(), output)

	assert.Equal(t, "fenced", record.Summary)
}

func TestMergeResponseWrongFieldTypesKeepDefaults(t *testing.T) {
	output := `{"summary": 42, "tone": ["urgent"]}`

	record := mergeResponse(model.DefaultAnalysisRecord(), output)

	assert.Equal(t, model.PlaceholderSummary, record.Summary)
	assert.Equal(t, model.ToneNeutral, record.Tone)
}
