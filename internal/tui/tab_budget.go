package tui

import (
	"fmt"
	"strings"

	"billkeep/internal/cli"
	"billkeep/internal/date"
	"billkeep/internal/report"
	"billkeep/internal/tui/components"
	"billkeep/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active

	if len(a.categories) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextDim).
			Render("No categories yet. Create one with: billkeep categories add")
		return components.ContentCard("Budget", empty, cw)
	}

	var totalBudget, totalSpent decimal.Decimal
	for _, c := range a.categories {
		totalBudget = totalBudget.Add(c.Budget)
		totalSpent = totalSpent.Add(c.Spent)
	}

	cards := []components.Metric{
		{Label: "Budget", Value: cli.FormatAmount(totalBudget), Note: fmt.Sprintf("%d categories", len(a.categories))},
		{Label: "Spent", Value: cli.FormatAmount(totalSpent), Note: fmt.Sprintf("%s %d", a.today.Month, a.today.Year)},
		{Label: "Remaining", Value: cli.FormatAmount(totalBudget.Sub(totalSpent))},
	}

	var b strings.Builder
	b.WriteString(components.MetricRow(cards, cw))
	b.WriteString("\n")

	// Per-category utilization bars, most consumed first.
	inner := components.CardInnerWidth(cw)
	labelW := 0
	for _, c := range a.categories {
		if len(c.Name) > labelW {
			labelW = len(c.Name)
		}
	}
	if labelW > 18 {
		labelW = 18
	}
	barW := inner - labelW - 32
	if barW < 10 {
		barW = 10
	}

	var bars strings.Builder
	for _, u := range report.RankCategories(a.categories) {
		amounts := fmt.Sprintf("%s of %s",
			cli.FormatAmount(u.Category.Spent), cli.FormatAmount(u.Category.Budget))
		bars.WriteString(components.BudgetBar(
			truncStr(u.Category.Name, labelW), u.UsedPercent/100, amounts, labelW, barW))
		bars.WriteString("\n")
	}
	b.WriteString(components.ContentCard("Categories", strings.TrimRight(bars.String(), "\n"), cw))
	b.WriteString("\n")

	// Daily spend chart for the current month.
	if chart := a.renderSpendChart(inner); chart != "" {
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Daily spend · %s", a.today.Month), chart, cw))
	}

	return b.String()
}

// renderSpendChart builds a bar chart of this month's expenses by day.
func (a App) renderSpendChart(width int) string {
	if len(a.expenses) == 0 {
		return ""
	}

	days := date.DaysInMonth(a.today.Year, a.today.Month)
	values := make([]float64, days)
	for _, e := range a.expenses {
		if e.Date.Year != a.today.Year || e.Date.Month != a.today.Month {
			continue
		}
		amt, _ := e.Amount.Float64()
		values[e.Date.Day-1] += amt
	}

	return components.SpendChart(values, theme.Active.Blue, width, 8)
}
