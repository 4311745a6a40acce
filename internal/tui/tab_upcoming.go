package tui

import (
	"fmt"
	"strings"

	"billkeep/internal/cli"
	"billkeep/internal/model"
	"billkeep/internal/report"
	"billkeep/internal/schedule"
	"billkeep/internal/tui/components"
	"billkeep/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	upcomingRowLimit = 18
	dueLoadDays      = 14
)

func urgencyColor(u model.Urgency) lipgloss.Color {
	t := theme.Active
	switch u {
	case model.UrgencyPaid:
		return t.Green
	case model.UrgencyOverdue:
		return t.Red
	case model.UrgencyDueSoon:
		return t.Orange
	default:
		return t.TextPrimary
	}
}

func (a App) renderUpcomingTab(cw int) string {
	sum := report.SummarizeMonth(a.occs, a.expenses, a.today.Year, a.today.Month)

	cards := []components.Metric{
		{Label: "Bills due", Value: cli.FormatAmount(sum.BillsDue), Note: fmt.Sprintf("%d bills", sum.BillCount)},
		{Label: "Paid", Value: cli.FormatAmount(sum.BillsPaid)},
		{Label: "Income", Value: cli.FormatAmount(sum.Income)},
		{Label: "Net planned", Value: cli.FormatAmount(sum.NetPlanned), Note: "income − bills"},
	}

	var b strings.Builder
	b.WriteString(components.MetricRow(cards, cw))
	b.WriteString("\n")

	if load := a.renderDueLoad(dueLoadDays); load != "" {
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Due load · next %d days", dueLoadDays), load, cw))
		b.WriteString("\n")
	}

	window := schedule.FilterRange(a.occs, a.today.AddDays(-7), a.today.AddMonths(a.billMonths, a.today.Day))
	b.WriteString(components.ContentCard("Upcoming", a.renderOccurrenceList(window, cw), cw))

	return b.String()
}

// renderDueLoad draws unpaid bill totals per day for the coming days as a
// sparkline, with the window total alongside. Empty when nothing is due.
func (a App) renderDueLoad(days int) string {
	values := make([]float64, days)
	var total decimal.Decimal
	for _, o := range a.occs {
		if o.Kind != model.KindBill || o.IsPaid {
			continue
		}
		offset := o.DueDate.DaysUntil(a.today)
		if offset < 0 || offset >= days {
			continue
		}
		amt, _ := o.Amount.Float64()
		values[offset] += amt
		total = total.Add(o.Amount)
	}
	if total.IsZero() {
		return ""
	}
	t := theme.Active
	return components.Sparkline(values, t.Orange) + "  " +
		lipgloss.NewStyle().Foreground(t.TextMuted).Render(cli.FormatAmount(total)+" due")
}

// renderOccurrenceList renders occurrences as aligned rows, urgency colored.
func (a App) renderOccurrenceList(occs []model.Occurrence, cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	if len(occs) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("Nothing scheduled in this window.")
	}

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	nameW := inner - 44
	if nameW < 12 {
		nameW = 12
	}

	var b strings.Builder
	shown := occs
	if len(shown) > upcomingRowLimit {
		shown = shown[:upcomingRowLimit]
	}
	for _, o := range shown {
		urgency := schedule.Classify(o, a.today)
		nameStyle := lipgloss.NewStyle().Foreground(urgencyColor(urgency))

		marker := " "
		if o.IsVirtual {
			marker = "·"
		}

		fmt.Fprintf(&b, "%s %s %s %s %s\n",
			dimStyle.Render(marker),
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(o.Name, nameW))),
			mutedStyle.Render(fmt.Sprintf("%12s", cli.FormatAmount(o.Amount))),
			mutedStyle.Render(fmt.Sprintf("%-13s", cli.FormatDate(o.DueDate))),
			dimStyle.Render(cli.FormatRelativeDays(o.DueDate, a.today)),
		)
	}
	if len(occs) > upcomingRowLimit {
		fmt.Fprintf(&b, "%s", dimStyle.Render(fmt.Sprintf("… and %d more", len(occs)-upcomingRowLimit)))
	}

	return strings.TrimRight(b.String(), "\n")
}
