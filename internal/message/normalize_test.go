package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/email-insights/internal/model"
)

// plainMessage builds a minimal single-part message with the given body.
func plainMessage(body string) []byte {
	return []byte(strings.Join([]string{
		"From: sender@example.com",
		"Subject: test",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n"))
}

func TestNormalizePlainText(t *testing.T) {
	got := Normalize(plainMessage("Hello   world"))
	assert.Equal(t, "Hello world", got)
}

func TestNormalizeCollapsesNewlines(t *testing.T) {
	got := Normalize(plainMessage("line one\r\n\r\nline   two\r\nline three"))
	assert.Equal(t, "line one line two line three", got)
}

func TestNormalizeIdempotentOnCleanText(t *testing.T) {
	once := Normalize(plainMessage("Quarterly results are in."))
	twice := Normalize(plainMessage(once))
	assert.Equal(t, once, twice)
}

func TestNormalizeNeverReturnsEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty body", plainMessage("")},
		{"whitespace body", plainMessage("   \r\n\t  ")},
		{"empty input", []byte("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, model.PlaceholderBody, Normalize(tt.raw))
		})
	}
}

func TestNormalizePrefersPlainOverHTML(t *testing.T) {
	raw := []byte(strings.Join([]string{
		"From: sender@example.com",
		"MIME-Version: 1.0",
		`Content-Type: multipart/alternative; boundary="BOUNDARY"`,
		"",
		"--BOUNDARY",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"plain wins",
		"--BOUNDARY",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<p>html loses</p>",
		"--BOUNDARY--",
		"",
	}, "\r\n"))

	assert.Equal(t, "plain wins", Normalize(raw))
}

func TestNormalizeConcatenatesPlainParts(t *testing.T) {
	raw := []byte(strings.Join([]string{
		"From: sender@example.com",
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="BOUNDARY"`,
		"",
		"--BOUNDARY",
		"Content-Type: text/plain",
		"",
		"first part",
		"--BOUNDARY",
		"Content-Type: text/plain",
		"",
		"second part",
		"--BOUNDARY--",
		"",
	}, "\r\n"))

	assert.Equal(t, "first part second part", Normalize(raw))
}

func TestNormalizeFallsBackToHTML(t *testing.T) {
	raw := []byte(strings.Join([]string{
		"From: sender@example.com",
		"MIME-Version: 1.0",
		`Content-Type: multipart/alternative; boundary="BOUNDARY"`,
		"",
		"--BOUNDARY",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<div><p>Hello <b>world</b></p><p>Second&nbsp;paragraph &amp; more</p></div>",
		"--BOUNDARY--",
		"",
	}, "\r\n"))

	assert.Equal(t, "Hello world Second paragraph & more", Normalize(raw))
}

func TestNormalizeHTMLOnlySinglePart(t *testing.T) {
	raw := []byte(strings.Join([]string{
		"From: sender@example.com",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<html><body>Visible <i>text</i> only<script>alert(1)</script></body></html>",
	}, "\r\n"))

	got := Normalize(raw)
	assert.Contains(t, got, "Visible text only")
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "<")
}

func TestNormalizeSkipsAttachments(t *testing.T) {
	raw := []byte(strings.Join([]string{
		"From: sender@example.com",
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="BOUNDARY"`,
		"",
		"--BOUNDARY",
		"Content-Type: text/plain",
		"",
		"visible body",
		"--BOUNDARY",
		"Content-Type: text/plain",
		`Content-Disposition: attachment; filename="notes.txt"`,
		"",
		"attachment contents",
		"--BOUNDARY--",
		"",
	}, "\r\n"))

	got := Normalize(raw)
	assert.Equal(t, "visible body", got)
	assert.NotContains(t, got, "attachment contents")
}

func TestNormalizeUnparseableMessage(t *testing.T) {
	// No valid header block at all: payload after the blank line is
	// still salvaged.
	raw := []byte("complete garbage\r\nnot a header\r\n\r\nsalvaged text")

	got := Normalize(raw)
	assert.NotEmpty(t, got)
}
