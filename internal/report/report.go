// Package report aggregates expanded occurrences and expenses into the
// summary numbers the list and calendar views display.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"billkeep/internal/date"
	"billkeep/internal/model"
)

// MonthSummary holds the totals for one calendar month.
type MonthSummary struct {
	Year  int
	Month time.Month

	BillsDue   decimal.Decimal
	BillsPaid  decimal.Decimal
	BillCount  int
	Income     decimal.Decimal
	Spent      decimal.Decimal
	NetPlanned decimal.Decimal // income minus bills due
}

// MonthRange returns the [first of month, first of next month) window.
func MonthRange(year int, month time.Month) (start, end date.Date) {
	start = date.New(year, month, 1)
	end = start.AddMonths(1, 1)
	return start, end
}

// SummarizeMonth totals the occurrences and expenses falling inside the
// given month. Occurrences must already be expanded.
func SummarizeMonth(occs []model.Occurrence, expenses []model.Expense, year int, month time.Month) MonthSummary {
	start, end := MonthRange(year, month)
	sum := MonthSummary{Year: year, Month: month}

	for _, o := range occs {
		if o.DueDate.Before(start) || !o.DueDate.Before(end) {
			continue
		}
		switch o.Kind {
		case model.KindBill:
			sum.BillCount++
			sum.BillsDue = sum.BillsDue.Add(o.Amount)
			if o.IsPaid {
				sum.BillsPaid = sum.BillsPaid.Add(o.Amount)
			}
		case model.KindIncome:
			sum.Income = sum.Income.Add(o.Amount)
		}
	}

	for _, e := range expenses {
		if e.Date.Before(start) || !e.Date.Before(end) {
			continue
		}
		sum.Spent = sum.Spent.Add(e.Amount)
	}

	sum.NetPlanned = sum.Income.Sub(sum.BillsDue)
	return sum
}

// CategoryUsage holds one category's budget position.
type CategoryUsage struct {
	Category    model.Category
	UsedPercent float64
	OverBudget  bool
}

// RankCategories returns categories ordered by budget utilization, most
// consumed first.
func RankCategories(cats []model.Category) []CategoryUsage {
	usage := make([]CategoryUsage, 0, len(cats))
	for _, c := range cats {
		u := CategoryUsage{Category: c}
		if c.Budget.IsPositive() {
			pct, _ := c.Spent.Div(c.Budget).Mul(decimal.NewFromInt(100)).Float64()
			u.UsedPercent = pct
		}
		u.OverBudget = c.Spent.GreaterThan(c.Budget)
		usage = append(usage, u)
	}
	sort.Slice(usage, func(i, j int) bool {
		return usage[i].UsedPercent > usage[j].UsedPercent
	})
	return usage
}
