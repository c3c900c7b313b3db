// Package message turns raw RFC 5322 message bytes into the decoded
// headers and normalized body the rest of the pipeline works with.
package message

import (
	"mime"
	"strings"

	"github.com/emersion/go-message/charset"
)

// wordDecoder unwraps RFC 2047 encoded-words using go-message's charset
// table, which covers the legacy encodings (windows-125x, iso-8859-*,
// koi8-r, ...) still common in the wild.
var wordDecoder = mime.WordDecoder{CharsetReader: charset.Reader}

// DecodeHeader decodes a possibly RFC 2047 encoded header value into
// plain text. An absent value yields the placeholder; a value that
// cannot be decoded is returned verbatim rather than failing the
// pipeline.
func DecodeHeader(raw, placeholder string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return placeholder
	}

	decoded, err := wordDecoder.DecodeHeader(raw)
	if err != nil || strings.TrimSpace(decoded) == "" {
		return raw
	}

	return decoded
}
