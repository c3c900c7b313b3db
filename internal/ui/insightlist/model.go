// Package insightlist is the main browse view: the batch of analyzed
// emails with category and priority filters.
package insightlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/email-insights/internal/keys"
	"github.com/nhle/email-insights/internal/model"
	"github.com/nhle/email-insights/internal/theme"
)

// SelectedMsg is sent when the user opens an insight's detail view.
type SelectedMsg struct {
	Insight model.EmailInsight
}

// priorityCycle is the order the priority filter steps through;
// the empty value means no filter.
var priorityCycle = []model.Priority{
	"", model.PriorityCritical, model.PriorityImportant, model.PriorityNormal,
}

// Model is the insight list view component.
type Model struct {
	list     list.Model
	keys     *keys.KeyMap
	insights []model.EmailInsight

	// Filters; zero values mean unfiltered.
	categoryIdx int // index into model.Categories, -1 = all
	priorityIdx int // index into priorityCycle

	width  int
	height int
}

// New creates a new insight list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Email Insights"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:        l,
		keys:        k,
		categoryIdx: -1,
		width:       width,
		height:      height,
	}
}

// Init returns the initial command for the list view.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetInsights replaces the displayed batch. Called once per completed
// pipeline run; the previous run's results are discarded.
func (m *Model) SetInsights(insights []model.EmailInsight) {
	m.insights = insights
	m.categoryIdx = -1
	m.priorityIdx = 0
	m.applyFilters()
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

// Update handles messages for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Select):
			if item, ok := m.list.SelectedItem().(InsightItem); ok {
				return m, func() tea.Msg {
					return SelectedMsg{Insight: item.Insight}
				}
			}

		case key.Matches(keyMsg, m.keys.CycleCategory):
			m.categoryIdx++
			if m.categoryIdx >= len(model.Categories) {
				m.categoryIdx = -1
			}
			m.applyFilters()
			return m, nil

		case key.Matches(keyMsg, m.keys.CyclePriority):
			m.priorityIdx = (m.priorityIdx + 1) % len(priorityCycle)
			m.applyFilters()
			return m, nil

		case key.Matches(keyMsg, m.keys.ClearFilters):
			m.categoryIdx = -1
			m.priorityIdx = 0
			m.applyFilters()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// applyFilters rebuilds the visible items from the full batch,
// preserving the run's newest-first order.
func (m *Model) applyFilters() {
	category, priority := m.activeFilters()

	items := make([]list.Item, 0, len(m.insights))
	for _, insight := range m.insights {
		if category != "" && insight.Analysis.Category != category {
			continue
		}
		if priority != "" && insight.Analysis.Priority != priority {
			continue
		}
		items = append(items, InsightItem{Insight: insight})
	}

	m.list.SetItems(items)
	m.list.Title = m.title(category, priority)
}

// activeFilters resolves the current filter selections.
func (m Model) activeFilters() (model.Category, model.Priority) {
	var category model.Category
	if m.categoryIdx >= 0 {
		category = model.Categories[m.categoryIdx]
	}
	return category, priorityCycle[m.priorityIdx]
}

// title renders the list title with any active filters.
func (m Model) title(category model.Category, priority model.Priority) string {
	title := "Email Insights"
	if category != "" {
		title += fmt.Sprintf(" · %s", categoryLabel(category))
	}
	if priority != "" {
		title += fmt.Sprintf(" · %s %s", priority.Symbol(), priority)
	}
	return title
}

// Empty reports whether the current run produced no insights.
func (m Model) Empty() bool {
	return len(m.insights) == 0
}

// View renders the list view.
func (m Model) View() string {
	if len(m.insights) == 0 {
		return theme.HelpStyle.Render(
			"\n  No emails yet. Press 'f' to fetch & summarize.",
		)
	}
	return m.list.View()
}
