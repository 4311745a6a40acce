package date

import (
	"testing"
	"time"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []Date{
		New(2024, time.January, 1),
		New(2024, time.February, 29), // leap day
		New(2023, time.December, 31),
		New(2025, time.June, 15),
		New(1999, time.January, 1),
	}
	for _, d := range cases {
		got, err := Parse(d.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", d.String(), err)
		}
		if got != d {
			t.Fatalf("round trip %v -> %q -> %v", d, d.String(), got)
		}
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	bad := []string{
		"",
		"not-a-date",
		"2023-02-29", // no leap day in 2023
		"2024-13-01",
		"2024-04-31",
		"2024-1-1", // must be zero-padded canonical form
	}
	for _, s := range bad {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", s)
		}
	}
}

func TestStringIsSortable(t *testing.T) {
	a := New(2024, time.September, 9).String()
	b := New(2024, time.October, 1).String()
	if !(a < b) {
		t.Fatalf("expected %q < %q lexicographically", a, b)
	}
}

func TestAddMonthsClampsToAnchorDay(t *testing.T) {
	cases := []struct {
		name      string
		start     Date
		months    int
		anchorDay int
		want      Date
	}{
		{"jan31 to feb leap", New(2024, time.January, 31), 1, 31, New(2024, time.February, 29)},
		{"jan31 to feb nonleap", New(2023, time.January, 31), 1, 31, New(2023, time.February, 28)},
		{"feb29 returns to mar31", New(2024, time.February, 29), 1, 31, New(2024, time.March, 31)},
		{"quarterly step", New(2024, time.January, 31), 3, 31, New(2024, time.April, 30)},
		{"year boundary", New(2024, time.November, 15), 2, 15, New(2025, time.January, 15)},
		{"backward step", New(2024, time.January, 15), -1, 15, New(2023, time.December, 15)},
	}
	for _, tc := range cases {
		got := tc.start.AddMonths(tc.months, tc.anchorDay)
		if got != tc.want {
			t.Errorf("%s: AddMonths(%d, %d) = %v, want %v", tc.name, tc.months, tc.anchorDay, got, tc.want)
		}
	}
}

func TestAddYearsLeapClamp(t *testing.T) {
	got := New(2024, time.February, 29).AddYears(1, 29)
	want := New(2025, time.February, 28)
	if got != want {
		t.Fatalf("AddYears = %v, want %v", got, want)
	}

	// A later leap year picks the 29th back up.
	got = New(2025, time.February, 28).AddYears(3, 29)
	want = New(2028, time.February, 29)
	if got != want {
		t.Fatalf("AddYears = %v, want %v", got, want)
	}
}

func TestDaysUntil(t *testing.T) {
	today := New(2024, time.March, 10)
	cases := []struct {
		d    Date
		want int
	}{
		{New(2024, time.March, 10), 0},
		{New(2024, time.March, 17), 7},
		{New(2024, time.March, 3), -7},
		{New(2025, time.March, 10), 365},
		{New(2024, time.February, 29), -10},
	}
	for _, tc := range cases {
		if got := tc.d.DaysUntil(today); got != tc.want {
			t.Errorf("DaysUntil(%v, %v) = %d, want %d", tc.d, today, got, tc.want)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(2024, time.February); got != 29 {
		t.Errorf("Feb 2024 = %d days, want 29", got)
	}
	if got := DaysInMonth(2023, time.February); got != 28 {
		t.Errorf("Feb 2023 = %d days, want 28", got)
	}
	if got := DaysInMonth(2024, time.April); got != 30 {
		t.Errorf("Apr 2024 = %d days, want 30", got)
	}
}

func TestCompare(t *testing.T) {
	a := New(2024, time.May, 1)
	b := New(2024, time.May, 2)
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Fatal("ordering broken for adjacent days")
	}
	if a.Compare(a) != 0 {
		t.Fatal("Compare not reflexive")
	}
}

func TestValid(t *testing.T) {
	if !New(2024, time.February, 29).Valid() {
		t.Error("2024-02-29 should be valid")
	}
	if New(2023, time.February, 29).Valid() {
		t.Error("2023-02-29 should be invalid")
	}
	if New(2024, time.April, 31).Valid() {
		t.Error("2024-04-31 should be invalid")
	}
}
