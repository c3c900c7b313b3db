// Package connect implements the credential entry view: an account
// form plus a connection check against the mail server.
package connect

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/email-insights/internal/credential"
	"github.com/nhle/email-insights/internal/model"
	"github.com/nhle/email-insights/internal/runner"
	"github.com/nhle/email-insights/internal/theme"
)

// Mode represents the current state of the connect view.
type Mode int

const (
	ModeForm       Mode = iota // Credential entry
	ModeValidating             // Checking the connection
	ModeFailed                 // Showing the failure, form re-armed
)

// ConnectedMsg signals that credentials were accepted by the server.
type ConnectedMsg struct {
	Credentials model.MailboxCredentials
}

// Model is the Bubble Tea model for the credential entry view.
type Model struct {
	mode    Mode
	form    *huh.Form
	runner  *runner.Runner
	spinner spinner.Model

	formAddress  string
	formPassword string
	remember     bool

	failure string

	width, height int
}

// New creates a new connect view model, pre-filling the address and
// app password from the keyring when they were previously remembered.
func New(r *runner.Runner, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	m := Model{
		mode:    ModeForm,
		runner:  r,
		spinner: sp,
		width:   width,
		height:  height,
	}

	if addr, err := credential.Get(credential.KeyMailboxAddress); err == nil {
		m.formAddress = addr
		m.remember = true
	}
	if secret, err := credential.Get(credential.KeyMailboxSecret); err == nil {
		m.formPassword = secret
	}

	m.form = m.newForm()
	return m
}

// newForm builds the credential entry form.
func (m *Model) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email Address").
				Placeholder("you@gmail.com").
				Value(&m.formAddress),
			huh.NewInput().
				Title("App Password").
				Placeholder("16-character app password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword),
			huh.NewConfirm().
				Title("Remember on this machine?").
				Value(&m.remember),
		),
	).WithShowHelp(false)
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the connect view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case runner.ValidateResultMsg:
		if msg.Err != nil {
			m.mode = ModeFailed
			m.failure = msg.Err.Error()
			m.form = m.newForm()
			return m, m.form.Init()
		}

		creds := m.credentials()
		m.persist(creds)
		return m, func() tea.Msg {
			return ConnectedMsg{Credentials: creds}
		}
	}

	if m.mode == ModeValidating {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if m.formAddress == "" || m.formPassword == "" {
			m.mode = ModeFailed
			m.failure = "Both the address and the app password are required."
			m.form = m.newForm()
			return m, m.form.Init()
		}

		m.mode = ModeValidating
		m.failure = ""
		return m, tea.Batch(
			m.spinner.Tick,
			m.runner.Validate(m.credentials()),
		)
	}

	return m, cmd
}

// credentials builds the credentials from the current form values.
func (m Model) credentials() model.MailboxCredentials {
	return model.MailboxCredentials{
		Address: m.formAddress,
		Secret:  m.formPassword,
	}
}

// persist stores or clears the remembered credentials. Persistence is
// strictly a convenience of this view; the pipeline always receives
// credentials as explicit parameters.
func (m Model) persist(creds model.MailboxCredentials) {
	if m.remember {
		_ = credential.Set(credential.KeyMailboxAddress, creds.Address)
		_ = credential.Set(credential.KeyMailboxSecret, creds.Secret)
		return
	}
	_ = credential.Delete(credential.KeyMailboxAddress)
	_ = credential.Delete(credential.KeyMailboxSecret)
}

// View renders the connect view.
func (m Model) View() string {
	title := theme.HeaderStyle.Render("Connect Mailbox")

	var body string
	switch m.mode {
	case ModeValidating:
		body = fmt.Sprintf("%s Connecting to the mail server...", m.spinner.View())
	default:
		body = m.form.View()
		if m.failure != "" {
			body = theme.ErrorStyle.Render("✗ "+m.failure) + "\n\n" + body
		}
	}

	hint := theme.HelpStyle.Render(
		"Use an app-specific password, not your account password.",
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		body,
		"",
		hint,
	)
}
