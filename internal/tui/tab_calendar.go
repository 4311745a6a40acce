package tui

import (
	"fmt"
	"strings"

	"billkeep/internal/cli"
	"billkeep/internal/report"
	"billkeep/internal/schedule"
	"billkeep/internal/tui/components"
	"billkeep/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderCalendarTab(cw int) string {
	t := theme.Active

	grid := cli.RenderCalendar(a.calYear, a.calMonth, a.occs, a.today)

	start, end := report.MonthRange(a.calYear, a.calMonth)
	monthOccs := schedule.FilterRange(a.occs, start, end)

	var list string
	if len(monthOccs) == 0 {
		list = lipgloss.NewStyle().Foreground(t.TextDim).Render("Nothing due this month.")
	} else {
		list = a.renderOccurrenceList(monthOccs, cw)
	}

	hint := lipgloss.NewStyle().Foreground(t.TextDim).
		Render("[ prev month   ] next month   t today")

	var b strings.Builder
	b.WriteString(components.ContentCard("", grid, cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Due in %s %d", a.calMonth, a.calYear), list, cw))
	b.WriteString("\n ")
	b.WriteString(hint)
	return b.String()
}
