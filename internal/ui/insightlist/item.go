package insightlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/email-insights/internal/model"
	"github.com/nhle/email-insights/internal/theme"
)

// InsightItem wraps a model.EmailInsight so it can be used in a bubbles/list.
type InsightItem struct {
	Insight model.EmailInsight
}

// FilterValue returns the string used for fuzzy filtering.
func (i InsightItem) FilterValue() string {
	return i.Insight.Message.Subject + " " + i.Insight.Message.Sender
}

// Title returns the subject line for the list.
func (i InsightItem) Title() string { return i.Insight.Message.Subject }

// Description returns a short summary line for the list.
func (i InsightItem) Description() string {
	parts := []string{
		i.Insight.Message.Sender,
		string(i.Insight.Analysis.Category),
		i.Insight.Message.Date,
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering insight rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single insight as a two-line row: the priority
// symbol, subject, and tone on the first line, sender, category badge,
// and date on the second.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	wrapper, ok := item.(InsightItem)
	if !ok {
		return
	}

	insight := wrapper.Insight
	isSelected := index == m.Index()

	pri := insight.Analysis.Priority
	priBadge := theme.PriorityStyle(pri).Render(pri.Symbol())

	toneBadge := ""
	if insight.Analysis.Tone == model.ToneUrgent {
		toneBadge = theme.ToneStyle(insight.Analysis.Tone).Render(" URGENT")
	}

	catBadge := theme.CategoryStyle(insight.Analysis.Category).
		Render(categoryLabel(insight.Analysis.Category))

	actionsBadge := ""
	if n := len(insight.Analysis.Actions); n > 0 {
		actionsBadge = theme.DimmedStyle.Render(
			fmt.Sprintf(" · %d action(s)", n),
		)
	}

	first := fmt.Sprintf("%s %s%s", priBadge, insight.Message.Subject, toneBadge)
	second := fmt.Sprintf(
		"   %s · %s%s · %s",
		insight.Message.Sender, catBadge, actionsBadge, insight.Message.Date,
	)
	second = theme.DimmedStyle.Render(second)

	line := lipgloss.JoinVertical(lipgloss.Left, first, second)
	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// categoryLabel renders a category as an uppercase badge.
func categoryLabel(c model.Category) string {
	return strings.ToUpper(strings.ReplaceAll(string(c), "_", " "))
}
