package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"billkeep/internal/date"
	"billkeep/internal/model"
	"billkeep/internal/schedule"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	paidStyle     = lipgloss.NewStyle().Foreground(ColorGreen)
	overdueStyle  = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	dueSoonStyle  = lipgloss.NewStyle().Foreground(ColorOrange)
	upcomingStyle = lipgloss.NewStyle().Foreground(ColorBlue)
)

// UrgencyStyle returns the lipgloss style for an urgency class.
func UrgencyStyle(u model.Urgency) lipgloss.Style {
	switch u {
	case model.UrgencyPaid:
		return paidStyle
	case model.UrgencyOverdue:
		return overdueStyle
	case model.UrgencyDueSoon:
		return dueSoonStyle
	default:
		return upcomingStyle
	}
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			if len(h) > widths[i] {
				widths[i] = len(h)
			}
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols && len(cell) > widths[i] {
					widths[i] = len(cell)
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	writeRule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	writeRule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			padded := fmt.Sprintf(" %-*s ", widths[i], h)
			b.WriteString(headerStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		writeRule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			writeRule("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			// Right-align numeric columns (all except first)
			var padded string
			if i == 0 {
				padded = fmt.Sprintf(" %-*s ", widths[i], cell)
			} else {
				padded = fmt.Sprintf(" %*s ", widths[i], cell)
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	writeRule("╰", "┴", "╯")
	return b.String()
}

// RenderBudgetBar renders a category budget utilization bar. The bar turns
// orange past 80% and red past 100%.
func RenderBudgetBar(usedPercent float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct := usedPercent / 100
	if pct < 0 {
		pct = 0
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}

	style := paidStyle
	switch {
	case usedPercent > 100:
		style = overdueStyle
	case usedPercent >= 80:
		style = dueSoonStyle
	}

	bar := style.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("[%s] %s", bar, FormatPercent(usedPercent))
}

// RenderCalendar renders a month grid with occurrence markers. Days with
// occurrences show the count colored by the most urgent class present.
func RenderCalendar(year int, month time.Month, occs []model.Occurrence, today date.Date) string {
	var b strings.Builder

	heading := fmt.Sprintf("%s %d", month, year)
	b.WriteString("  ")
	b.WriteString(headerStyle.Render(heading))
	b.WriteString("\n\n  ")
	for _, wd := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%-7s", wd)))
	}
	b.WriteString("\n")

	// Index occurrences by day with their dominant urgency.
	type dayMark struct {
		count   int
		urgency model.Urgency
	}
	marks := make(map[int]dayMark)
	for _, o := range occs {
		if o.DueDate.Year != year || o.DueDate.Month != month {
			continue
		}
		u := schedule.Classify(o, today)
		m := marks[o.DueDate.Day]
		m.count++
		if m.count == 1 || urgencyRank(u) > urgencyRank(m.urgency) {
			m.urgency = u
		}
		marks[o.DueDate.Day] = m
	}

	first := date.New(year, month, 1)
	daysTotal := date.DaysInMonth(year, month)
	weekday := int(first.Time().Weekday())

	b.WriteString("  ")
	b.WriteString(strings.Repeat("       ", weekday))
	for day := 1; day <= daysTotal; day++ {
		cell := fmt.Sprintf("%2d", day)
		if date.New(year, month, day) == today {
			cell = headerStyle.Render(cell)
		} else {
			cell = valueStyle.Render(cell)
		}
		if m, ok := marks[day]; ok {
			cell += UrgencyStyle(m.urgency).Render(fmt.Sprintf("·%d", m.count))
			if pad := 7 - 2 - 1 - len(fmt.Sprint(m.count)); pad > 0 {
				cell += strings.Repeat(" ", pad)
			}
		} else {
			cell += strings.Repeat(" ", 5)
		}
		b.WriteString(cell)

		weekday++
		if weekday == 7 {
			weekday = 0
			b.WriteString("\n  ")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func urgencyRank(u model.Urgency) int {
	switch u {
	case model.UrgencyOverdue:
		return 3
	case model.UrgencyDueSoon:
		return 2
	case model.UrgencyUpcoming:
		return 1
	default:
		return 0
	}
}
