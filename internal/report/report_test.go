package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"billkeep/internal/date"
	"billkeep/internal/model"
)

func d(t *testing.T, s string) date.Date {
	t.Helper()
	out, err := date.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return out
}

func TestSummarizeMonth(t *testing.T) {
	occs := []model.Occurrence{
		{Kind: model.KindBill, Amount: decimal.NewFromInt(1200), DueDate: d(t, "2024-04-01"), IsPaid: true},
		{Kind: model.KindBill, Amount: decimal.NewFromInt(80), DueDate: d(t, "2024-04-15")},
		{Kind: model.KindBill, Amount: decimal.NewFromInt(60), DueDate: d(t, "2024-05-01")}, // next month
		{Kind: model.KindIncome, Amount: decimal.NewFromInt(2500), DueDate: d(t, "2024-04-05")},
	}
	expenses := []model.Expense{
		{Amount: decimal.NewFromInt(200), Date: d(t, "2024-04-10")},
		{Amount: decimal.NewFromInt(999), Date: d(t, "2024-03-31")}, // previous month
	}

	sum := SummarizeMonth(occs, expenses, 2024, time.April)
	if sum.BillCount != 2 {
		t.Fatalf("BillCount = %d, want 2", sum.BillCount)
	}
	if !sum.BillsDue.Equal(decimal.NewFromInt(1280)) {
		t.Fatalf("BillsDue = %s, want 1280", sum.BillsDue)
	}
	if !sum.BillsPaid.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("BillsPaid = %s, want 1200", sum.BillsPaid)
	}
	if !sum.Income.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("Income = %s, want 2500", sum.Income)
	}
	if !sum.Spent.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("Spent = %s, want 200", sum.Spent)
	}
	if !sum.NetPlanned.Equal(decimal.NewFromInt(1220)) {
		t.Fatalf("NetPlanned = %s, want 1220", sum.NetPlanned)
	}
}

func TestMonthRangeDecember(t *testing.T) {
	start, end := MonthRange(2024, time.December)
	if start != date.New(2024, time.December, 1) {
		t.Fatalf("start = %v", start)
	}
	if end != date.New(2025, time.January, 1) {
		t.Fatalf("end = %v, want 2025-01-01", end)
	}
}

func TestRankCategories(t *testing.T) {
	cats := []model.Category{
		{Name: "Dining", Budget: decimal.NewFromInt(100), Spent: decimal.NewFromInt(50)},
		{Name: "Housing", Budget: decimal.NewFromInt(1000), Spent: decimal.NewFromInt(1100)},
		{Name: "Unbudgeted", Budget: decimal.Zero, Spent: decimal.NewFromInt(20)},
	}
	ranked := RankCategories(cats)
	if ranked[0].Category.Name != "Housing" || !ranked[0].OverBudget {
		t.Fatalf("most consumed first: got %+v", ranked[0])
	}
	if ranked[1].Category.Name != "Dining" || ranked[1].UsedPercent != 50 {
		t.Fatalf("Dining usage wrong: %+v", ranked[1])
	}
	if ranked[2].UsedPercent != 0 {
		t.Fatalf("zero-budget category should report 0%%: %+v", ranked[2])
	}
}
