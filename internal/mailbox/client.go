// Package mailbox implements the IMAP side of the pipeline: connecting
// to a mail server, searching the inbox, and fetching raw messages.
package mailbox

import (
	"context"
	"fmt"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/nhle/email-insights/internal/model"
)

// Client holds the IMAP server endpoint. Credentials are supplied per
// connection attempt and never retained.
type Client struct {
	host string
	port string
}

// NewClient creates a new IMAP client configuration.
func NewClient(host, port string) *Client {
	return &Client{
		host: host,
		port: port,
	}
}

// Connect opens a TLS connection to the IMAP server and authenticates.
// A rejected login is reported as an *AuthError; the caller must Close
// the returned session once the batch is done.
func (c *Client) Connect(
	_ context.Context,
	creds model.MailboxCredentials,
) (*Session, error) {
	addr := c.host + ":" + c.port

	client, err := imapclient.DialTLS(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	if err := client.Login(creds.Address, creds.Secret).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, &AuthError{
			Address: creds.Address,
			Message: fmt.Sprintf("login failed: %v", err),
		}
	}

	return &Session{client: client}, nil
}

// Session is one authenticated mailbox session, scoped to a single
// batch of operations and closed afterwards.
type Session struct {
	client   *imapclient.Client
	selected bool
}

// selectInbox selects INBOX once per session.
func (s *Session) selectInbox() error {
	if s.selected {
		return nil
	}
	if _, err := s.client.Select("INBOX", nil).Wait(); err != nil {
		return fmt.Errorf("selecting INBOX: %w", err)
	}
	s.selected = true
	return nil
}

// ListMessageIDs searches INBOX with the given criteria and returns the
// matching UIDs in the server's order, oldest to newest. The caller is
// responsible for taking the most recent slice per its limit.
func (s *Session) ListMessageIDs(
	_ context.Context,
	criteria model.FetchCriteria,
) ([]imap.UID, error) {
	if err := s.selectInbox(); err != nil {
		return nil, err
	}

	search := &imap.SearchCriteria{}
	if criteria.UnreadOnly {
		search.NotFlag = []imap.Flag{imap.FlagSeen}
	}
	if !criteria.Since.IsZero() {
		search.Since = criteria.Since
	}
	if !criteria.Before.IsZero() {
		search.Before = criteria.Before
	}

	searchData, err := s.client.UIDSearch(search, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("searching messages: %w", err)
	}

	return searchData.AllUIDs(), nil
}

// FetchRaw retrieves the full raw message for one UID using a peeking
// body fetch so the message stays unread. A missing or unreadable
// message is reported as a *FetchError.
func (s *Session) FetchRaw(
	_ context.Context,
	uid imap.UID,
) ([]byte, error) {
	if err := s.selectInbox(); err != nil {
		return nil, err
	}

	bodySection := &imap.FetchItemBodySection{
		Peek: true,
	}

	fetchOpts := &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	fetchCmd := s.client.Fetch(imap.UIDSetNum(uid), fetchOpts)
	defer fetchCmd.Close()

	msg := fetchCmd.Next()
	if msg == nil {
		return nil, &FetchError{
			UID: uint32(uid),
			Err: fmt.Errorf("message not found"),
		}
	}

	buf, err := msg.Collect()
	if err != nil {
		return nil, &FetchError{UID: uint32(uid), Err: err}
	}

	raw := buf.FindBodySection(bodySection)
	if raw == nil {
		return nil, &FetchError{
			UID: uint32(uid),
			Err: fmt.Errorf("empty body section"),
		}
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, &FetchError{UID: uint32(uid), Err: err}
	}

	return raw, nil
}

// Close releases the server-side session. Always invoked once the
// batch completes, success or failure.
func (s *Session) Close() error {
	if err := s.client.Logout().Wait(); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	return nil
}

// Validate verifies credentials by connecting, authenticating, and
// selecting INBOX, then immediately logging out.
func (c *Client) Validate(
	ctx context.Context,
	creds model.MailboxCredentials,
) error {
	sess, err := c.Connect(ctx, creds)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	if err := sess.selectInbox(); err != nil {
		return fmt.Errorf("validating connection: %w", err)
	}
	return nil
}
