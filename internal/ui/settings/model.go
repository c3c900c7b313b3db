// Package settings implements the fetch-filter form: how many
// messages to pull, unread-only, and an optional date range.
package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/email-insights/internal/model"
	"github.com/nhle/email-insights/internal/theme"
)

// dateLayout is the accepted input format for the optional date bounds.
const dateLayout = "2006-01-02"

// DoneMsg carries the chosen criteria back to the parent. Cancelled is
// set when the user backed out without applying changes.
type DoneMsg struct {
	Criteria  model.FetchCriteria
	Cancelled bool
}

// Model is the Bubble Tea model for the fetch settings form.
type Model struct {
	form     *huh.Form
	criteria model.FetchCriteria

	formLimit      string
	formUnreadOnly bool
	formSince      string
	formBefore     string

	width, height int
}

// New creates a settings form seeded with the current criteria.
func New(criteria model.FetchCriteria, width, height int) Model {
	m := Model{
		criteria:       criteria,
		formLimit:      strconv.Itoa(criteria.Normalize().Limit),
		formUnreadOnly: criteria.UnreadOnly,
		width:          width,
		height:         height,
	}

	if !criteria.Since.IsZero() {
		m.formSince = criteria.Since.Format(dateLayout)
	}
	if !criteria.Before.IsZero() {
		// Before holds the exclusive bound; show the inclusive day.
		m.formBefore = criteria.Before.AddDate(0, 0, -1).Format(dateLayout)
	}

	m.form = m.newForm()
	return m
}

// newForm builds the fetch settings form.
func (m *Model) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Number of emails").
				Description(fmt.Sprintf("1-%d", model.MaxFetchLimit)).
				Value(&m.formLimit).
				Validate(validateLimit),
			huh.NewConfirm().
				Title("Unread only?").
				Value(&m.formUnreadOnly),
			huh.NewInput().
				Title("Start date").
				Description("YYYY-MM-DD, empty for no bound").
				Value(&m.formSince).
				Validate(validateDate),
			huh.NewInput().
				Title("End date").
				Description("YYYY-MM-DD, empty for no bound").
				Value(&m.formBefore).
				Validate(validateDate),
		),
	).WithShowHelp(false)
}

// validateLimit checks the limit field parses into bounds.
func validateLimit(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if n < 1 || n > model.MaxFetchLimit {
		return fmt.Errorf("must be between 1 and %d", model.MaxFetchLimit)
	}
	return nil
}

// validateDate checks an optional date field.
func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the settings view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m, func() tea.Msg {
			return DoneMsg{Criteria: m.criteria, Cancelled: true}
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		criteria := m.collect()
		return m, func() tea.Msg {
			return DoneMsg{Criteria: criteria}
		}
	}

	return m, cmd
}

// collect assembles criteria from the validated form values.
func (m Model) collect() model.FetchCriteria {
	criteria := model.FetchCriteria{
		UnreadOnly: m.formUnreadOnly,
	}

	if n, err := strconv.Atoi(strings.TrimSpace(m.formLimit)); err == nil {
		criteria.Limit = n
	}
	if t, err := time.Parse(dateLayout, strings.TrimSpace(m.formSince)); err == nil {
		criteria.Since = t
	}
	if t, err := time.Parse(dateLayout, strings.TrimSpace(m.formBefore)); err == nil {
		// Before is exclusive in IMAP search; include the chosen day.
		criteria.Before = t.AddDate(0, 0, 1)
	}

	return criteria.Normalize()
}

// View renders the settings view.
func (m Model) View() string {
	title := theme.HeaderStyle.Render("Fetch Settings")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		m.form.View(),
		"",
		theme.HelpStyle.Render("enter apply · esc cancel"),
	)
}
