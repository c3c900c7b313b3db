package message

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/email-insights/internal/model"
)

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain ascii passes through",
			raw:  "Weekly status update",
			want: "Weekly status update",
		},
		{
			name: "q-encoded utf-8",
			raw:  "=?utf-8?q?Caf=C3=A9_meeting?=",
			want: "Café meeting",
		},
		{
			name: "b-encoded utf-8",
			raw:  "=?UTF-8?B?SGVsbG8gV29ybGQ=?=",
			want: "Hello World",
		},
		{
			name: "legacy latin-1 charset",
			raw:  "=?iso-8859-1?q?caf=E9?=",
			want: "café",
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  hello  ",
			want: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeHeader(tt.raw, "(fallback)"))
		})
	}
}

func TestDecodeHeaderAbsentUsesPlaceholder(t *testing.T) {
	assert.Equal(t, model.PlaceholderSubject, DecodeHeader("", model.PlaceholderSubject))
	assert.Equal(t, model.PlaceholderSubject, DecodeHeader("   ", model.PlaceholderSubject))
}

func TestDecodeHeaderUndecodableFallsBackToRaw(t *testing.T) {
	// Invalid encoding letter: the decoder errors out, the raw value
	// must come back rather than an empty string.
	raw := "=?utf-8?X?bogus?="
	assert.Equal(t, raw, DecodeHeader(raw, "(fallback)"))
}
