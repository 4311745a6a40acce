// Package date provides a calendar-day value type free of timezone semantics.
//
// Dates are stored and compared as plain (year, month, day) triples. The one
// canonical serialized form is "YYYY-MM-DD"; it is deterministic, sortable,
// and never passes through a local-timezone interpretation.
package date

import (
	"fmt"
	"time"
)

// Layout is the canonical storage form for a calendar date.
const Layout = "2006-01-02"

// Date is a calendar day with no time-of-day or timezone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// FromTime truncates a wall-clock time to its calendar day, read in the
// time's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar day in local time. Callers inside pure
// code paths should take a Date parameter instead of calling this.
func Today() Date {
	return FromTime(time.Now())
}

// Parse converts the canonical "YYYY-MM-DD" form back into a Date. It is the
// exact inverse of String and rejects both malformed input and dates that do
// not exist on the calendar (e.g. 2023-02-29).
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// String renders the canonical storage form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Valid reports whether d names an actual calendar day.
func (d Date) Valid() bool {
	if d.Month < time.January || d.Month > time.December {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Year, d.Month)
}

// Time returns the date at midnight UTC. Used only for arithmetic; the
// canonical persisted form remains the string layout.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// Compare returns -1, 0, or +1 ordering d against other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmp(d.Year, other.Year)
	case d.Month != other.Month:
		return cmp(int(d.Month), int(other.Month))
	default:
		return cmp(d.Day, other.Day)
	}
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// AddMonths adds n calendar months, landing on anchorDay or the last day of
// the target month when anchorDay exceeds it. The clamp target is always the
// original anchor day, so a January 31 series visits Feb 28 and then returns
// to Mar 31 instead of drifting to the 28th forever.
func (d Date) AddMonths(n, anchorDay int) Date {
	total := int(d.Month) - 1 + n
	year := d.Year + total/12
	month := time.Month(total%12 + 1)
	if total < 0 {
		// Go's % truncates toward zero; normalize for backward steps.
		year = d.Year + (total-11)/12
		month = time.Month((total%12+12)%12 + 1)
	}
	day := anchorDay
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return Date{Year: year, Month: month, Day: day}
}

// AddYears adds n calendar years, clamping Feb 29 anchors to Feb 28 in
// non-leap years.
func (d Date) AddYears(n, anchorDay int) Date {
	year := d.Year + n
	day := anchorDay
	if last := DaysInMonth(year, d.Month); day > last {
		day = last
	}
	return Date{Year: year, Month: d.Month, Day: day}
}

// DaysUntil returns the number of calendar days from the reference day to d
// (positive when d is in the future). The subtraction runs over UTC
// midnights, so daylight-saving transitions cannot shift the result.
func (d Date) DaysUntil(from Date) int {
	return int(d.Time().Sub(from.Time()).Hours() / 24)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLeapYear reports whether the year has a Feb 29.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
