// Package runner executes pipeline runs as Bubble Tea commands so the
// UI stays responsive while the mailbox and the model are in flight.
package runner

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/nhle/email-insights/internal/mailbox"
	"github.com/nhle/email-insights/internal/model"
	"github.com/nhle/email-insights/internal/pipeline"
)

// runTimeout bounds one full batch, including every analysis call.
const runTimeout = 5 * time.Minute

// RunResultMsg is a tea.Msg sent when a pipeline run completes.
type RunResultMsg struct {
	RunID    string
	Insights []model.EmailInsight
	Err      error
	Duration time.Duration
}

// AuthErrorMsg is a tea.Msg sent when the mailbox rejects the login.
type AuthErrorMsg struct {
	RunID   string
	Message string
}

// ValidateResultMsg carries the result of a credential validation attempt.
type ValidateResultMsg struct {
	Address string
	Err     error
}

// Runner starts pipeline runs and reports their results to the UI.
type Runner struct {
	pipeline *pipeline.Pipeline
	client   *mailbox.Client
}

// New creates a runner over the given pipeline and mailbox client.
func New(p *pipeline.Pipeline, c *mailbox.Client) *Runner {
	return &Runner{
		pipeline: p,
		client:   c,
	}
}

// Run returns a command that executes one pipeline run. The run ID
// lets the UI discard results from a superseded run.
func (r *Runner) Run(
	creds model.MailboxCredentials,
	criteria model.FetchCriteria,
) (string, tea.Cmd) {
	runID := uuid.NewString()

	cmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		start := time.Now()
		insights, err := r.pipeline.Run(ctx, creds, criteria)

		if mailbox.IsAuthError(err) {
			return AuthErrorMsg{
				RunID:   runID,
				Message: err.Error(),
			}
		}

		return RunResultMsg{
			RunID:    runID,
			Insights: insights,
			Err:      err,
			Duration: time.Since(start),
		}
	}

	return runID, cmd
}

// Validate returns a command that checks the credentials against the
// mail server without fetching anything.
func (r *Runner) Validate(creds model.MailboxCredentials) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := r.client.Validate(ctx, creds)
		return ValidateResultMsg{
			Address: creds.Address,
			Err:     err,
		}
	}
}
