package model

import "strings"

// Placeholder values substituted when real data is absent or undecodable.
// Downstream consumers can rely on every field being a non-empty string.
const (
	PlaceholderSubject = "(No Subject)"
	PlaceholderSender  = "(Unknown Sender)"
	PlaceholderDate    = "(Unknown Date)"
	PlaceholderBody    = "(No content found)"
	PlaceholderSummary = "(No summary available)"
)

// Tone classifies the overall register of a message. Stored lowercase.
type Tone string

const (
	ToneFormal   Tone = "formal"
	ToneInformal Tone = "informal"
	ToneNeutral  Tone = "neutral"
	ToneUrgent   Tone = "urgent"
)

// Priority is the urgency level assigned to a message by analysis.
type Priority string

const (
	PriorityCritical  Priority = "Critical"
	PriorityImportant Priority = "Important"
	PriorityNormal    Priority = "Normal"
)

// Symbol returns the fixed indicator rendered for each priority level.
func (p Priority) Symbol() string {
	switch p {
	case PriorityCritical:
		return "🔴"
	case PriorityImportant:
		return "🟠"
	default:
		return "🟢"
	}
}

// NormalizePriority maps a free-form priority string onto one of the
// three known levels, defaulting to Normal.
func NormalizePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return PriorityCritical
	case "important":
		return PriorityImportant
	default:
		return PriorityNormal
	}
}

// Category classifies what kind of email a message is.
type Category string

const (
	CategoryActionRequired Category = "action_required"
	CategoryInfo           Category = "info"
	CategoryEvent          Category = "event"
	CategorySpam           Category = "spam"
	CategoryNewsletter     Category = "newsletter"
)

// Categories lists the known categories in display order.
var Categories = []Category{
	CategoryActionRequired,
	CategoryInfo,
	CategoryEvent,
	CategorySpam,
	CategoryNewsletter,
}

// ParsedMessage holds the decoded headers and normalized body of one
// fetched message. All fields are guaranteed non-empty; absent or
// undecodable values are replaced with placeholders.
type ParsedMessage struct {
	Sender  string
	Subject string
	Date    string
	Body    string
}

// PlaceholderMessage returns a ParsedMessage with every field set to
// its placeholder, used when a message could not be retrieved at all.
func PlaceholderMessage() ParsedMessage {
	return ParsedMessage{
		Sender:  PlaceholderSender,
		Subject: PlaceholderSubject,
		Date:    PlaceholderDate,
		Body:    PlaceholderBody,
	}
}

// AnalysisRecord is the five-field structured output of the analysis
// step for one message. Every field is always populated; when analysis
// fails or returns a partial payload the missing fields carry the
// defaults from DefaultAnalysisRecord.
type AnalysisRecord struct {
	Summary  string   `json:"summary"`
	Actions  []string `json:"actions"`
	Tone     Tone     `json:"tone"`
	Priority Priority `json:"priority"`
	Category Category `json:"category"`
}

// DefaultAnalysisRecord returns the safe baseline record that partial
// or failed analysis results are merged onto.
func DefaultAnalysisRecord() AnalysisRecord {
	return AnalysisRecord{
		Summary:  PlaceholderSummary,
		Actions:  []string{},
		Tone:     ToneNeutral,
		Priority: PriorityNormal,
		Category: CategoryInfo,
	}
}

// EmailInsight is the unit handed to the presentation layer: one
// fetched message together with its analysis. Created once per message
// during a pipeline run and immutable thereafter.
type EmailInsight struct {
	// ID uniquely identifies the insight within the process. UIDs are
	// only unique within one mailbox session, so the pipeline assigns
	// its own identifier.
	ID string

	// UID is the server-assigned message identifier for the session
	// the insight was fetched in. Not stable across reconnects.
	UID uint32

	Message  ParsedMessage
	Analysis AnalysisRecord
}
