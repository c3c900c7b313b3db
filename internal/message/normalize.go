package message

import (
	"bytes"
	"html"
	"io"
	"strings"

	"github.com/emersion/go-message/mail"
	"github.com/microcosm-cc/bluemonday"

	"github.com/nhle/email-insights/internal/model"

	// Register charset decoders for non-UTF-8 part bodies.
	_ "github.com/emersion/go-message/charset"
)

// stripPolicy removes every HTML element, leaving only text nodes.
var stripPolicy = bluemonday.StrictPolicy()

// Normalize extracts a single clean text string from raw message bytes.
// Plain-text parts are preferred and concatenated; if none exist the
// first HTML part is stripped to its visible text. Attachments are
// skipped and per-part decode failures contribute empty text. The
// result is never empty: a message with no extractable text yields the
// fixed placeholder.
func Normalize(raw []byte) string {
	var plain, htmlPart string

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		// Unparseable MIME: treat the payload after the header block
		// as plain text.
		plain = rawPayload(raw)
	} else {
		defer mr.Close()
		plain, htmlPart = collectParts(mr)
	}

	body := plain
	if strings.TrimSpace(body) == "" && htmlPart != "" {
		body = stripHTML(htmlPart)
	}

	body = collapseWhitespace(body)
	if body == "" {
		return model.PlaceholderBody
	}
	return body
}

// collectParts walks the message parts in order, gathering text/plain
// content and the first text/html part while skipping attachments.
func collectParts(mr *mail.Reader) (plain, htmlPart string) {
	var plainParts []string

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed part must not abort normalization.
			break
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			// Attachment part.
			continue
		}

		contentType, _, _ := header.ContentType()
		body, readErr := io.ReadAll(part.Body)
		if readErr != nil {
			continue
		}

		switch {
		case strings.HasPrefix(contentType, "text/plain"):
			plainParts = append(plainParts, string(body))
		case strings.HasPrefix(contentType, "text/html"):
			if htmlPart == "" {
				htmlPart = string(body)
			}
		}
	}

	return strings.Join(plainParts, " "), htmlPart
}

// stripHTML collapses markup to its visible text. Tags are padded with
// a leading space first so words on either side of a removed tag do
// not fuse together.
func stripHTML(s string) string {
	spaced := strings.ReplaceAll(s, "<", " <")
	stripped := stripPolicy.Sanitize(spaced)
	return html.UnescapeString(stripped)
}

// collapseWhitespace reduces every internal whitespace run, including
// newlines, to a single space and trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// rawPayload returns everything after the header block of a message
// that could not be parsed as MIME.
func rawPayload(raw []byte) string {
	for _, sep := range []string{"\r\n\r\n", "\n\n"} {
		if _, body, found := strings.Cut(string(raw), sep); found {
			return body
		}
	}
	return string(raw)
}
