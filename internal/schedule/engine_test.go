package schedule

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"billkeep/internal/date"
	"billkeep/internal/model"
)

func mustDate(t *testing.T, s string) date.Date {
	t.Helper()
	d, err := date.Parse(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func dates(t *testing.T, occs []model.Occurrence) []string {
	t.Helper()
	out := make([]string, len(occs))
	for i, o := range occs {
		out[i] = o.DueDate.String()
	}
	return out
}

func TestStepMonotonic(t *testing.T) {
	start := mustDate(t, "2024-01-31")
	cases := []struct {
		freq       model.Frequency
		customDays int
	}{
		{model.Daily, 0},
		{model.Weekly, 0},
		{model.Biweekly, 0},
		{model.Monthly, 0},
		{model.Quarterly, 0},
		{model.Semiannual, 0},
		{model.Annual, 0},
		{model.Custom, 1},
		{model.Custom, 90},
	}
	for _, tc := range cases {
		cur := start
		for i := 0; i < 48; i++ {
			next, err := Step(cur, start.Day, tc.freq, tc.customDays)
			if err != nil {
				t.Fatalf("%s: Step: %v", tc.freq, err)
			}
			if !next.After(cur) {
				t.Fatalf("%s: Step(%v) = %v, not strictly after", tc.freq, cur, next)
			}
			cur = next
		}
	}
}

func TestStepMonthlyClampPreservesAnchorDay(t *testing.T) {
	anchor := mustDate(t, "2024-01-31")

	feb, err := Step(anchor, anchor.Day, model.Monthly, 0)
	if err != nil {
		t.Fatal(err)
	}
	if feb != mustDate(t, "2024-02-29") {
		t.Fatalf("Jan 31 + monthly = %v, want 2024-02-29", feb)
	}

	// Stepping again must return to the 31st, not stay clamped at the
	// previous step's day.
	mar, err := Step(feb, anchor.Day, model.Monthly, 0)
	if err != nil {
		t.Fatal(err)
	}
	if mar != mustDate(t, "2024-03-31") {
		t.Fatalf("Feb 29 + monthly (anchor 31) = %v, want 2024-03-31", mar)
	}
}

func TestStepAnnualLeapClamp(t *testing.T) {
	anchor := mustDate(t, "2024-02-29")
	got, err := Step(anchor, anchor.Day, model.Annual, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != mustDate(t, "2025-02-28") {
		t.Fatalf("Feb 29 + annual = %v, want 2025-02-28", got)
	}
}

func TestStepCustomRejectsBadInterval(t *testing.T) {
	d := mustDate(t, "2024-03-01")
	for _, days := range []int{0, -5} {
		if _, err := Step(d, d.Day, model.Custom, days); !errors.Is(err, ErrInvalidFrequencyConfig) {
			t.Errorf("custom interval %d: err = %v, want ErrInvalidFrequencyConfig", days, err)
		}
	}
}

func TestStepUnknownFrequency(t *testing.T) {
	d := mustDate(t, "2024-03-01")
	if _, err := Step(d, d.Day, model.Frequency("fortnightly"), 0); !errors.Is(err, ErrInvalidFrequencyConfig) {
		t.Fatalf("err = %v, want ErrInvalidFrequencyConfig", err)
	}
}

func monthlyBill(t *testing.T, anchor string) model.Item {
	t.Helper()
	return model.Item{
		ID:          "bill-1",
		Kind:        model.KindBill,
		Name:        "Rent",
		Amount:      decimal.NewFromInt(1200),
		AnchorDate:  mustDate(t, anchor),
		IsRecurring: true,
		Frequency:   model.Monthly,
	}
}

func TestExpandMonthlyMidProjection(t *testing.T) {
	item := monthlyBill(t, "2024-01-31")
	today := mustDate(t, "2024-01-15")

	occs, err := Expand(item, today, 4)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"}
	got := dates(t, occs)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("occurrence %d = %s, want %s (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestExpandSingleRealOccurrence(t *testing.T) {
	item := monthlyBill(t, "2024-01-31")
	today := mustDate(t, "2024-01-15")

	occs, err := Expand(item, today, 12)
	if err != nil {
		t.Fatal(err)
	}

	real := 0
	for _, o := range occs {
		if !o.IsVirtual {
			real++
			if o.DueDate != item.AnchorDate {
				t.Fatalf("real occurrence at %v, want anchor %v", o.DueDate, item.AnchorDate)
			}
		} else if o.IsPaid {
			t.Fatal("virtual occurrence marked paid")
		}
	}
	if real != 1 {
		t.Fatalf("expansion has %d real occurrences, want exactly 1", real)
	}
}

func TestExpandHorizonBounded(t *testing.T) {
	today := mustDate(t, "2024-01-15")
	for _, months := range []int{1, 3, 12} {
		end := today.AddMonths(months, today.Day)
		occs, err := Expand(monthlyBill(t, "2024-01-20"), today, months)
		if err != nil {
			t.Fatal(err)
		}
		for _, o := range occs {
			if !o.DueDate.Before(end) {
				t.Fatalf("horizon %d months: occurrence %v >= end %v", months, o.DueDate, end)
			}
		}
	}
}

func TestExpandStrictlyIncreasing(t *testing.T) {
	item := model.Item{
		ID:                 "bill-2",
		Kind:               model.KindBill,
		Name:               "Gym",
		AnchorDate:         mustDate(t, "2023-06-10"),
		IsRecurring:        true,
		Frequency:          model.Custom,
		CustomIntervalDays: 10,
	}
	occs, err := Expand(item, mustDate(t, "2024-01-15"), 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(occs); i++ {
		if !occs[i].DueDate.After(occs[i-1].DueDate) {
			t.Fatalf("sequence not strictly increasing at %d: %v then %v",
				i, occs[i-1].DueDate, occs[i].DueDate)
		}
	}
}

func TestExpandCustomInterval(t *testing.T) {
	item := model.Item{
		ID:                 "income-1",
		Kind:               model.KindIncome,
		Name:               "Freelance",
		AnchorDate:         mustDate(t, "2024-03-01"),
		IsRecurring:        true,
		Frequency:          model.Custom,
		CustomIntervalDays: 10,
	}
	today := mustDate(t, "2024-03-01")

	occs, err := Expand(item, today, 1)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"2024-03-01", "2024-03-11", "2024-03-21", "2024-03-31"}
	got := dates(t, occs)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("occurrence %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestExpandNonRecurring(t *testing.T) {
	item := model.Item{
		ID:         "bill-3",
		Kind:       model.KindBill,
		Name:       "Car registration",
		AnchorDate: mustDate(t, "2024-05-20"),
	}
	occs, err := Expand(item, mustDate(t, "2024-01-01"), 24)
	if err != nil {
		t.Fatal(err)
	}
	if len(occs) != 1 || occs[0].IsVirtual || occs[0].DueDate != item.AnchorDate {
		t.Fatalf("non-recurring expansion = %+v, want single real occurrence at anchor", occs)
	}
}

func TestExpandInvalidCustomConfig(t *testing.T) {
	item := model.Item{
		ID:          "bill-4",
		Kind:        model.KindBill,
		Name:        "Broken",
		AnchorDate:  mustDate(t, "2024-03-01"),
		IsRecurring: true,
		Frequency:   model.Custom,
		// CustomIntervalDays left unset.
	}
	occs, err := Expand(item, mustDate(t, "2024-03-01"), 3)
	if !errors.Is(err, ErrInvalidFrequencyConfig) {
		t.Fatalf("err = %v, want ErrInvalidFrequencyConfig", err)
	}
	if occs != nil {
		t.Fatalf("got %d occurrences alongside error, want none", len(occs))
	}
}

func TestExpandInvalidAnchor(t *testing.T) {
	item := model.Item{
		ID:          "bill-5",
		Kind:        model.KindBill,
		Name:        "Corrupt",
		AnchorDate:  date.New(2023, 2, 29),
		IsRecurring: true,
		Frequency:   model.Monthly,
	}
	if _, err := Expand(item, mustDate(t, "2024-01-01"), 3); !errors.Is(err, ErrInvalidAnchorDate) {
		t.Fatalf("err = %v, want ErrInvalidAnchorDate", err)
	}
}

func TestExpandIgnoresLastPaid(t *testing.T) {
	lastPaid := mustDate(t, "2024-02-03")
	item := monthlyBill(t, "2024-01-31")
	item.IsPaid = true
	item.LastPaid = &lastPaid

	occs, err := Expand(item, mustDate(t, "2024-01-15"), 4)
	if err != nil {
		t.Fatal(err)
	}
	// Schedule anchored at the due date, not the payment date.
	if occs[1].DueDate != mustDate(t, "2024-02-29") {
		t.Fatalf("second occurrence %v, want 2024-02-29 (payment state must not shift the calendar)", occs[1].DueDate)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	today := mustDate(t, "2024-06-10")
	cases := []struct {
		name   string
		due    string
		isPaid bool
		want   model.Urgency
	}{
		{"paid wins", "2024-05-01", true, model.UrgencyPaid},
		{"yesterday overdue", "2024-06-09", false, model.UrgencyOverdue},
		{"today dueSoon", "2024-06-10", false, model.UrgencyDueSoon},
		{"plus six dueSoon", "2024-06-16", false, model.UrgencyDueSoon},
		{"plus seven upcoming", "2024-06-17", false, model.UrgencyUpcoming},
		{"far future upcoming", "2024-09-01", false, model.UrgencyUpcoming},
	}
	for _, tc := range cases {
		o := model.Occurrence{DueDate: mustDate(t, tc.due), IsPaid: tc.isPaid}
		if got := Classify(o, today); got != tc.want {
			t.Errorf("%s: Classify = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestFilterRangeHalfOpen(t *testing.T) {
	occs := []model.Occurrence{
		{DueDate: mustDate(t, "2024-03-31")},
		{DueDate: mustDate(t, "2024-04-01")},
		{DueDate: mustDate(t, "2024-04-15")},
		{DueDate: mustDate(t, "2024-04-30")},
		{DueDate: mustDate(t, "2024-05-01")},
	}
	got := FilterRange(occs, mustDate(t, "2024-04-01"), mustDate(t, "2024-05-01"))
	want := []string{"2024-04-01", "2024-04-15", "2024-04-30"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", dates(t, got), want)
	}
	for i := range want {
		if got[i].DueDate.String() != want[i] {
			t.Fatalf("got %v, want %v", dates(t, got), want)
		}
	}
}

func TestExpandAllMergesAndSorts(t *testing.T) {
	today := mustDate(t, "2024-01-15")
	items := []model.Item{
		monthlyBill(t, "2024-01-31"),
		{
			ID:          "income-2",
			Kind:        model.KindIncome,
			Name:        "Salary",
			AnchorDate:  mustDate(t, "2024-01-25"),
			IsRecurring: true,
			Frequency:   model.Biweekly,
		},
	}
	all, err := ExpandAll(items, today, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) == 0 {
		t.Fatal("no occurrences")
	}
	for i := 1; i < len(all); i++ {
		if all[i].DueDate.Before(all[i-1].DueDate) {
			t.Fatalf("merged sequence out of order at %d", i)
		}
	}
	// Income horizon is shorter than the bill horizon.
	incomeEnd := today.AddMonths(3, today.Day)
	for _, o := range all {
		if o.Kind == model.KindIncome && !o.DueDate.Before(incomeEnd) {
			t.Fatalf("income occurrence %v beyond its 3-month horizon", o.DueDate)
		}
	}
}

func TestExpandAllSkipsBrokenItems(t *testing.T) {
	today := mustDate(t, "2024-01-15")
	items := []model.Item{
		monthlyBill(t, "2024-01-31"),
		{
			ID:          "bad",
			Kind:        model.KindBill,
			Name:        "Broken",
			AnchorDate:  mustDate(t, "2024-01-10"),
			IsRecurring: true,
			Frequency:   model.Custom,
		},
	}
	all, err := ExpandAll(items, today, 2, 2)
	if !errors.Is(err, ErrInvalidFrequencyConfig) {
		t.Fatalf("err = %v, want ErrInvalidFrequencyConfig", err)
	}
	if len(all) == 0 {
		t.Fatal("healthy item's occurrences dropped along with the broken one")
	}
	for _, o := range all {
		if o.SourceID == "bad" {
			t.Fatal("broken item leaked occurrences")
		}
	}
}

func TestNeedsAttention(t *testing.T) {
	today := mustDate(t, "2024-06-10")
	occs := []model.Occurrence{
		{SourceID: "a", DueDate: mustDate(t, "2024-06-01")},               // overdue
		{SourceID: "b", DueDate: mustDate(t, "2024-06-12")},               // dueSoon
		{SourceID: "c", DueDate: mustDate(t, "2024-07-01")},               // upcoming
		{SourceID: "d", DueDate: mustDate(t, "2024-06-05"), IsPaid: true}, // paid
	}
	got := NeedsAttention(occs, today)
	if len(got) != 2 {
		t.Fatalf("got %d occurrences, want 2", len(got))
	}
	if got[0].SourceID != "a" || got[1].SourceID != "b" {
		t.Fatalf("wrong occurrences flagged: %v %v", got[0].SourceID, got[1].SourceID)
	}
}
