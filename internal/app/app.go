// Package app wires the views together into the root Bubble Tea model.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/email-insights/internal/keys"
	"github.com/nhle/email-insights/internal/model"
	"github.com/nhle/email-insights/internal/runner"
	"github.com/nhle/email-insights/internal/theme"
	"github.com/nhle/email-insights/internal/ui"
	"github.com/nhle/email-insights/internal/ui/connect"
	"github.com/nhle/email-insights/internal/ui/detail"
	"github.com/nhle/email-insights/internal/ui/insightlist"
	"github.com/nhle/email-insights/internal/ui/settings"
)

// runDurationUnit is the rounding applied to reported run durations.
const runDurationUnit = 100 * time.Millisecond

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewConnect ViewState = iota
	ViewList
	ViewSettings
	ViewDetail
)

// Model is the root Bubble Tea model that manages view routing, the
// active credentials and criteria, and the in-flight run.
type Model struct {
	currentView ViewState
	layout      ui.Layout
	keys        *keys.KeyMap
	runner      *runner.Runner

	connectView  connect.Model
	listView     insightlist.Model
	settingsView settings.Model
	detailView   detail.Model

	// Credentials live only for the UI session and are handed to the
	// pipeline per run; the core never retains them.
	creds    model.MailboxCredentials
	criteria model.FetchCriteria

	fetching   bool
	activeRun  string
	spinner    spinner.Model
	statusLine string
	ready      bool
}

// New creates the root application model.
func New(r *runner.Runner, defaults model.FetchCriteria) Model {
	k := keys.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model{
		currentView: ViewConnect,
		keys:        k,
		runner:      r,
		connectView: connect.New(r, 80, 24),
		listView:    insightlist.New(k, 80, 24),
		detailView:  detail.New(k, 80, 24),
		criteria:    defaults.Normalize(),
		spinner:     sp,
	}
}

// Init starts the credential form.
func (m Model) Init() tea.Cmd {
	return m.connectView.Init()
}

// Update routes messages to the active view and handles run results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.listView.SetSize(msg.Width, m.layout.ContentHeight())
		m.detailView.SetSize(msg.Width, m.layout.ContentHeight())
		m.ready = true

	case tea.KeyMsg:
		if next, cmd, handled := m.handleGlobalKey(msg); handled {
			return next, cmd
		}

	case spinner.TickMsg:
		if m.fetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case connect.ConnectedMsg:
		m.creds = msg.Credentials
		m.currentView = ViewList
		m.statusLine = "Connected as " + m.creds.Address
		return m, nil

	case settings.DoneMsg:
		if !msg.Cancelled {
			m.criteria = msg.Criteria
		}
		m.currentView = ViewList
		return m, nil

	case insightlist.SelectedMsg:
		m.detailView.SetInsight(msg.Insight)
		m.currentView = ViewDetail
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case runner.AuthErrorMsg:
		if msg.RunID != m.activeRun {
			return m, nil
		}
		// Login stopped working mid-session: back to the form.
		m.fetching = false
		m.currentView = ViewConnect
		m.connectView = connect.New(m.runner, m.layout.Width, m.layout.Height)
		m.statusLine = msg.Message
		return m, m.connectView.Init()

	case runner.RunResultMsg:
		if msg.RunID != m.activeRun {
			// A superseded run finished late; drop it.
			return m, nil
		}
		m.fetching = false
		if msg.Err != nil {
			m.statusLine = theme.ErrorStyle.Render(
				fmt.Sprintf("Fetch failed: %v", msg.Err),
			)
			return m, nil
		}
		m.listView.SetInsights(msg.Insights)
		m.statusLine = fmt.Sprintf(
			"Summarized %d email(s) in %s",
			len(msg.Insights), msg.Duration.Round(runDurationUnit),
		)
		return m, nil
	}

	return m.routeToView(msg)
}

// handleGlobalKey processes keys that apply regardless of the view.
// Returns handled=false when the active view should see the key.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	// Never steal keys from text inputs on the form views.
	formActive := m.currentView == ViewConnect || m.currentView == ViewSettings

	switch {
	case key.Matches(msg, m.keys.Quit) && !formActive:
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Fetch) && m.currentView == ViewList:
		return m.startRun()

	case key.Matches(msg, m.keys.Settings) && m.currentView == ViewList:
		m.settingsView = settings.New(m.criteria, m.layout.Width, m.layout.Height)
		m.currentView = ViewSettings
		return m, m.settingsView.Init(), true

	case key.Matches(msg, m.keys.Connect) && m.currentView == ViewList:
		m.connectView = connect.New(m.runner, m.layout.Width, m.layout.Height)
		m.currentView = ViewConnect
		return m, m.connectView.Init(), true
	}

	return m, nil, false
}

// startRun kicks off a pipeline run unless one is already in flight.
func (m Model) startRun() (tea.Model, tea.Cmd, bool) {
	if m.fetching {
		return m, nil, true
	}

	runID, cmd := m.runner.Run(m.creds, m.criteria)
	m.activeRun = runID
	m.fetching = true
	m.statusLine = "Fetching & summarizing..."
	return m, tea.Batch(m.spinner.Tick, cmd), true
}

// routeToView forwards a message to the currently active view.
func (m Model) routeToView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewConnect:
		m.connectView, cmd = m.connectView.Update(msg)
	case ViewList:
		m.listView, cmd = m.listView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	}

	return m, cmd
}

// View renders the active view inside the shared frame.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	status := m.statusLine
	if m.fetching {
		status = m.spinner.View() + " " + status
	}

	header := m.layout.RenderHeader("📧 Email Insights", status)
	statusBar := m.layout.RenderStatusBar(m.hints())

	var content string
	switch m.currentView {
	case ViewConnect:
		content = m.connectView.View()
	case ViewList:
		content = m.listView.View()
	case ViewSettings:
		content = m.settingsView.View()
	case ViewDetail:
		content = m.detailView.View()
	}

	content = lipgloss.NewStyle().
		Height(m.layout.ContentHeight()).
		Render(content)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// hints returns the status bar hint line for the active view.
func (m Model) hints() string {
	switch m.currentView {
	case ViewConnect:
		return "enter connect · ctrl+c quit"
	case ViewSettings:
		return "enter apply · esc cancel"
	case ViewDetail:
		return "j/k scroll · esc back · q quit"
	default:
		return "f fetch · s settings · c category · p priority · x clear · C account · q quit"
	}
}
