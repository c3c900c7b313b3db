package model

import "time"

// MailboxCredentials identify one IMAP account for a single connection
// attempt. The core never stores them; the caller supplies fresh values
// for every run.
type MailboxCredentials struct {
	Address string
	Secret  string
}

// Fetch limit bounds. The default mirrors the number of messages a
// quick triage session looks at; the maximum keeps one run bounded.
const (
	DefaultFetchLimit = 3
	MaxFetchLimit     = 100
)

// FetchCriteria constrains which and how many messages a run retrieves.
type FetchCriteria struct {
	// Limit is the maximum number of messages to process, newest first.
	Limit int

	// UnreadOnly restricts the search to unseen messages.
	UnreadOnly bool

	// Since and Before bound the message date range when non-zero.
	// Both are applied server-side via the IMAP search predicate.
	Since  time.Time
	Before time.Time
}

// Normalize clamps the criteria into valid bounds and returns the
// result. A non-positive limit becomes DefaultFetchLimit; limits above
// MaxFetchLimit are capped.
func (c FetchCriteria) Normalize() FetchCriteria {
	if c.Limit <= 0 {
		c.Limit = DefaultFetchLimit
	}
	if c.Limit > MaxFetchLimit {
		c.Limit = MaxFetchLimit
	}
	return c
}
