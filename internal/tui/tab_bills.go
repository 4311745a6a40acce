package tui

import (
	"fmt"
	"strings"

	"billkeep/internal/cli"
	"billkeep/internal/model"
	"billkeep/internal/schedule"
	"billkeep/internal/tui/components"
	"billkeep/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBillsTab(cw, contentH int) string {
	t := theme.Active
	bills := a.bills()

	if len(bills) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextDim).
			Render("No bills yet. Press [a] to add one.")
		return components.ContentCard("Bills", empty, cw)
	}

	inner := components.CardInnerWidth(cw)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	selStyle := lipgloss.NewStyle().Background(t.SurfaceHover)

	nameW := inner - 50
	if nameW < 12 {
		nameW = 12
	}

	// Keep the cursor visible when the list outgrows the card.
	maxRows := contentH - 4
	if maxRows < 3 {
		maxRows = 3
	}
	offset := 0
	if a.billCursor >= maxRows {
		offset = a.billCursor - maxRows + 1
	}

	var b strings.Builder
	for i := offset; i < len(bills) && i < offset+maxRows; i++ {
		bill := bills[i]
		occ := model.Occurrence{
			SourceID: bill.ID, Kind: bill.Kind, Name: bill.Name,
			Amount: bill.Amount, DueDate: bill.AnchorDate, IsPaid: bill.IsPaid,
		}
		urgency := schedule.Classify(occ, a.today)
		nameStyle := lipgloss.NewStyle().Foreground(urgencyColor(urgency))

		sched := "one-time"
		if bill.IsRecurring {
			sched = cli.FormatFrequency(bill.Frequency, bill.CustomIntervalDays)
		}

		cursor := "  "
		if i == a.billCursor {
			cursor = "▸ "
		}

		row := fmt.Sprintf("%s%s %s %s %s %s",
			cursor,
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(bill.Name, nameW))),
			mutedStyle.Render(fmt.Sprintf("%12s", cli.FormatAmount(bill.Amount))),
			mutedStyle.Render(fmt.Sprintf("%-13s", cli.FormatDate(bill.AnchorDate))),
			dimStyle.Render(fmt.Sprintf("%-10s", sched)),
			nameStyle.Render(cli.UrgencyLabel(urgency)),
		)
		if i == a.billCursor {
			row = selStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	if len(bills) > offset+maxRows {
		b.WriteString(dimStyle.Render(fmt.Sprintf("… %d more below", len(bills)-offset-maxRows)))
	}

	title := fmt.Sprintf("Bills (%d)", len(bills))
	return components.ContentCard(title, strings.TrimRight(b.String(), "\n"), cw)
}
