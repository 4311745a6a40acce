// Package components provides the shared widgets of the billkeep dashboard.
package components

import (
	"billkeep/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Metric is a headline figure shown at the top of a tab, such as "Bills
// due" or "Remaining". Note is an optional second line under the value
// ("4 bills", "income − bills").
type Metric struct {
	Label string
	Value string
	Note  string
}

// MetricRow renders metrics as bordered cards side by side. The cards sum
// to exactly totalWidth; leftmost cards absorb the division remainder.
func MetricRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}
	base := totalWidth / len(metrics)
	rem := totalWidth % len(metrics)

	rendered := make([]string, len(metrics))
	for i, m := range metrics {
		w := base
		if i < rem {
			w++
		}
		rendered[i] = metricCard(m, w)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func metricCard(m Metric, outerWidth int) string {
	t := theme.Active

	body := lipgloss.NewStyle().Foreground(t.TextMuted).Render(m.Label) + "\n" +
		lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render(m.Value)
	if m.Note != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render(m.Note)
	}
	return cardFrame(outerWidth).Render(body)
}

// ContentCard renders a bordered card with an optional bold title line.
// outerWidth is the total rendered width including the border.
func ContentCard(title, body string, outerWidth int) string {
	if title != "" {
		titleStyle := lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Bold(true)
		body = titleStyle.Render(title) + "\n" + body
	}
	return cardFrame(outerWidth).Render(body)
}

func cardFrame(outerWidth int) lipgloss.Style {
	inner := outerWidth - 2
	if inner < 10 {
		inner = 10
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(inner).
		Padding(0, 1)
}

// CardInnerWidth is the usable text width inside a card: the outer width
// minus border and horizontal padding.
func CardInnerWidth(outerWidth int) int {
	w := outerWidth - 4
	if w < 10 {
		w = 10
	}
	return w
}
