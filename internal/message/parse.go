package message

import (
	"bytes"

	"github.com/emersion/go-message/mail"

	"github.com/nhle/email-insights/internal/model"
)

// dateLayout is how message dates are rendered for display.
const dateLayout = "Mon, 02 Jan 2006 15:04"

// Parse derives a fully-populated ParsedMessage from raw message
// bytes. It never fails: undecodable headers fall back to their raw
// values and absent ones to placeholders, so consumers never have to
// branch on missing fields.
func Parse(raw []byte) model.ParsedMessage {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		parsed := model.PlaceholderMessage()
		parsed.Body = Normalize(raw)
		return parsed
	}
	defer mr.Close()

	return model.ParsedMessage{
		Sender:  senderOf(&mr.Header),
		Subject: DecodeHeader(mr.Header.Get("Subject"), model.PlaceholderSubject),
		Date:    dateOf(&mr.Header),
		Body:    Normalize(raw),
	}
}

// senderOf renders the From header, preferring the display name over
// the bare address.
func senderOf(header *mail.Header) string {
	addrs, err := header.AddressList("From")
	if err == nil && len(addrs) > 0 {
		if addrs[0].Name != "" {
			return addrs[0].Name
		}
		if addrs[0].Address != "" {
			return addrs[0].Address
		}
	}

	return DecodeHeader(header.Get("From"), model.PlaceholderSender)
}

// dateOf renders the Date header, falling back to the raw value when
// it cannot be parsed as a date.
func dateOf(header *mail.Header) string {
	if t, err := header.Date(); err == nil && !t.IsZero() {
		return t.Format(dateLayout)
	}

	return DecodeHeader(header.Get("Date"), model.PlaceholderDate)
}
