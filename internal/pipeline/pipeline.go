// Package pipeline sequences the mailbox, message, and analysis steps
// across one bounded batch of messages.
package pipeline

import (
	"context"
	"fmt"

	"github.com/emersion/go-imap/v2"
	"github.com/google/uuid"

	"github.com/nhle/email-insights/internal/mailbox"
	"github.com/nhle/email-insights/internal/message"
	"github.com/nhle/email-insights/internal/model"
)

// Mailbox opens authenticated mailbox sessions.
type Mailbox interface {
	Connect(ctx context.Context, creds model.MailboxCredentials) (Session, error)
}

// Session is one authenticated mailbox session. The pipeline owns the
// session for the duration of a run and always closes it.
type Session interface {
	ListMessageIDs(ctx context.Context, criteria model.FetchCriteria) ([]imap.UID, error)
	FetchRaw(ctx context.Context, uid imap.UID) ([]byte, error)
	Close() error
}

// Analyzer produces a fully-populated analysis record for one message
// body. Implementations absorb their own failures.
type Analyzer interface {
	Analyze(ctx context.Context, text string) model.AnalysisRecord
}

// Pipeline runs the fetch-decode-analyze sequence for one batch.
type Pipeline struct {
	mailbox  Mailbox
	analyzer Analyzer
}

// New creates a pipeline over the given mailbox and analyzer.
func New(m Mailbox, a Analyzer) *Pipeline {
	return &Pipeline{
		mailbox:  m,
		analyzer: a,
	}
}

// NewIMAP wraps a concrete mailbox client in the Mailbox interface.
func NewIMAP(client *mailbox.Client) Mailbox {
	return imapMailbox{client: client}
}

type imapMailbox struct {
	client *mailbox.Client
}

func (m imapMailbox) Connect(
	ctx context.Context,
	creds model.MailboxCredentials,
) (Session, error) {
	sess, err := m.client.Connect(ctx, creds)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Run fetches up to criteria.Limit messages, newest first, and returns
// one EmailInsight per message. Authentication failures and batch-level
// server failures propagate to the caller; a failure to fetch or
// decode a single message yields a placeholder insight and the run
// continues. The session is released on every exit path.
func (p *Pipeline) Run(
	ctx context.Context,
	creds model.MailboxCredentials,
	criteria model.FetchCriteria,
) ([]model.EmailInsight, error) {
	criteria = criteria.Normalize()

	sess, err := p.mailbox.Connect(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer func() { _ = sess.Close() }()

	ids, err := sess.ListMessageIDs(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	// The server reports oldest to newest; take the most recent Limit
	// and process newest first.
	if len(ids) > criteria.Limit {
		ids = ids[len(ids)-criteria.Limit:]
	}
	reverse(ids)

	insights := make([]model.EmailInsight, 0, len(ids))
	for _, id := range ids {
		insight, err := p.processMessage(ctx, sess, id)
		if err != nil {
			// The connection itself failed; abort the remaining
			// fetches rather than hammering a dead session.
			return insights, err
		}
		insights = append(insights, insight)
	}

	return insights, nil
}

// processMessage fetches, decodes, and analyzes one message. A
// per-message fetch failure is absorbed into a placeholder insight;
// only batch-level errors are returned.
func (p *Pipeline) processMessage(
	ctx context.Context,
	sess Session,
	id imap.UID,
) (model.EmailInsight, error) {
	insight := model.EmailInsight{
		ID:  uuid.NewString(),
		UID: uint32(id),
	}

	raw, err := sess.FetchRaw(ctx, id)
	if err != nil {
		if !mailbox.IsFetchError(err) {
			return model.EmailInsight{}, err
		}

		insight.Message = model.PlaceholderMessage()
		record := model.DefaultAnalysisRecord()
		record.Summary = fmt.Sprintf("(Could not retrieve message: %v)", err)
		insight.Analysis = record
		return insight, nil
	}

	insight.Message = message.Parse(raw)
	insight.Analysis = p.analyzer.Analyze(ctx, insight.Message.Body)
	return insight, nil
}

// reverse flips the UID slice in place.
func reverse(ids []imap.UID) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}
