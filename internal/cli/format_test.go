package cli

import (
	"testing"

	"github.com/shopspring/decimal"

	"billkeep/internal/date"
	"billkeep/internal/model"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1200", "$1200.00"},
		{"42.5", "$42.50"},
		{"-13.337", "-$13.34"},
	}
	for _, tc := range cases {
		if got := FormatAmount(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	d := date.New(2024, 3, 31)
	if got := FormatDate(d); got != "Mar 31, 2024" {
		t.Fatalf("FormatDate = %q", got)
	}
}

func TestFormatRelativeDays(t *testing.T) {
	today := date.New(2024, 6, 10)
	cases := []struct {
		d    date.Date
		want string
	}{
		{date.New(2024, 6, 10), "today"},
		{date.New(2024, 6, 11), "tomorrow"},
		{date.New(2024, 6, 9), "yesterday"},
		{date.New(2024, 6, 17), "in 7 days"},
		{date.New(2024, 6, 1), "9 days ago"},
	}
	for _, tc := range cases {
		if got := FormatRelativeDays(tc.d, today); got != tc.want {
			t.Errorf("FormatRelativeDays(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestFormatFrequency(t *testing.T) {
	if got := FormatFrequency(model.Monthly, 0); got != "monthly" {
		t.Fatalf("got %q", got)
	}
	if got := FormatFrequency(model.Custom, 10); got != "every 10 days" {
		t.Fatalf("got %q", got)
	}
	if got := FormatFrequency(model.Custom, 1); got != "every day" {
		t.Fatalf("got %q", got)
	}
}

func TestUrgencyLabel(t *testing.T) {
	if UrgencyLabel(model.UrgencyOverdue) != "overdue" {
		t.Fatal("overdue label wrong")
	}
	if UrgencyLabel(model.UrgencyDueSoon) != "due soon" {
		t.Fatal("due soon label wrong")
	}
}
