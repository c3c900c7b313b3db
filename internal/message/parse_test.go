package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/email-insights/internal/model"
)

func buildMessage(headers []string, body string) []byte {
	return []byte(strings.Join(append(headers, "", body), "\r\n"))
}

func TestParseFullMessage(t *testing.T) {
	raw := buildMessage([]string{
		"From: Alice Smith <alice@example.com>",
		"Subject: Quarterly report",
		"Date: Tue, 10 Jun 2025 08:30:00 +0000",
		"Content-Type: text/plain; charset=utf-8",
	}, "Please review the attached numbers.")

	parsed := Parse(raw)

	assert.Equal(t, "Alice Smith", parsed.Sender)
	assert.Equal(t, "Quarterly report", parsed.Subject)
	assert.Equal(t, "Tue, 10 Jun 2025 08:30", parsed.Date)
	assert.Equal(t, "Please review the attached numbers.", parsed.Body)
}

func TestParseBareAddressSender(t *testing.T) {
	raw := buildMessage([]string{
		"From: bob@example.com",
		"Subject: hi",
		"Content-Type: text/plain",
	}, "hello")

	parsed := Parse(raw)
	assert.Equal(t, "bob@example.com", parsed.Sender)
}

func TestParseEncodedSubject(t *testing.T) {
	raw := buildMessage([]string{
		"From: a@b.example",
		"Subject: =?utf-8?q?Caf=C3=A9_news?=",
		"Content-Type: text/plain",
	}, "body")

	parsed := Parse(raw)
	assert.Equal(t, "Café news", parsed.Subject)
}

func TestParseMissingHeadersUsePlaceholders(t *testing.T) {
	raw := buildMessage([]string{
		"Content-Type: text/plain",
	}, "just a body")

	parsed := Parse(raw)

	assert.Equal(t, model.PlaceholderSender, parsed.Sender)
	assert.Equal(t, model.PlaceholderSubject, parsed.Subject)
	assert.Equal(t, model.PlaceholderDate, parsed.Date)
	assert.Equal(t, "just a body", parsed.Body)
}

func TestParseNeverReturnsEmptyFields(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty input", []byte("")},
		{"garbage input", []byte("not a message at all")},
		{"headers only", buildMessage([]string{"From: a@b.example"}, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := Parse(tt.raw)
			assert.NotEmpty(t, parsed.Sender)
			assert.NotEmpty(t, parsed.Subject)
			assert.NotEmpty(t, parsed.Date)
			assert.NotEmpty(t, parsed.Body)
		})
	}
}

func TestParseUnparseableDateFallsBackToRaw(t *testing.T) {
	raw := buildMessage([]string{
		"From: a@b.example",
		"Subject: s",
		"Date: sometime last week",
		"Content-Type: text/plain",
	}, "body")

	parsed := Parse(raw)
	assert.Equal(t, "sometime last week", parsed.Date)
}
