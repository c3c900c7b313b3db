// Package detail shows one analyzed email in full: the decoded
// headers, the analysis record, and the normalized body.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/email-insights/internal/keys"
	"github.com/nhle/email-insights/internal/model"
	"github.com/nhle/email-insights/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// Model is the insight detail view component.
type Model struct {
	insight  *model.EmailInsight
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new detail view model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetInsight loads an insight into the view.
func (m *Model) SetInsight(insight model.EmailInsight) {
	m.insight = &insight
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, m.keys.Back) {
			return m, func() tea.Msg {
				return BackMsg{}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// renderContent formats the insight for the viewport.
func (m Model) renderContent() string {
	if m.insight == nil {
		return ""
	}

	insight := m.insight
	var sb strings.Builder

	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	label := func(s string) string { return labelStyle.Render(s) }

	sb.WriteString(theme.HeaderStyle.Render(insight.Message.Subject))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("%s %s\n", label("From:"), insight.Message.Sender))
	sb.WriteString(fmt.Sprintf("%s %s\n", label("Date:"), insight.Message.Date))

	pri := insight.Analysis.Priority
	sb.WriteString(fmt.Sprintf(
		"%s %s %s   %s %s   %s %s\n\n",
		label("Priority:"), pri.Symbol(), pri,
		label("Tone:"), theme.ToneStyle(insight.Analysis.Tone).Render(string(insight.Analysis.Tone)),
		label("Category:"), theme.CategoryStyle(insight.Analysis.Category).Render(string(insight.Analysis.Category)),
	))

	sb.WriteString(label("Summary") + "\n")
	sb.WriteString(insight.Analysis.Summary)
	sb.WriteString("\n\n")

	if len(insight.Analysis.Actions) > 0 {
		sb.WriteString(label("Action Items") + "\n")
		for _, action := range insight.Analysis.Actions {
			sb.WriteString("  • " + action + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(label("Message") + "\n")
	sb.WriteString(theme.DimmedStyle.Render(insight.Message.Body))
	sb.WriteString("\n")

	return theme.DetailPanelStyle.Width(m.width - 4).Render(sb.String())
}

// View renders the detail view.
func (m Model) View() string {
	if m.insight == nil {
		return theme.HelpStyle.Render("\n  Nothing selected.")
	}
	return m.viewport.View()
}
