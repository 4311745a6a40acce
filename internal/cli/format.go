// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"

	"github.com/shopspring/decimal"

	"billkeep/internal/date"
	"billkeep/internal/model"
)

// FormatAmount formats a monetary amount as dollars with two decimals.
func FormatAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// FormatDate renders a calendar date for display, e.g. "Mar 31, 2024".
func FormatDate(d date.Date) string {
	return fmt.Sprintf("%s %d, %d", d.Month.String()[:3], d.Day, d.Year)
}

// FormatRelativeDays describes how far a due date is from today.
func FormatRelativeDays(d date.Date, today date.Date) string {
	days := d.DaysUntil(today)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// FormatPercent formats a percentage value, e.g. 87.5 -> "87.5%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// UrgencyLabel returns the display label for an urgency class.
func UrgencyLabel(u model.Urgency) string {
	switch u {
	case model.UrgencyPaid:
		return "paid"
	case model.UrgencyOverdue:
		return "overdue"
	case model.UrgencyDueSoon:
		return "due soon"
	default:
		return "upcoming"
	}
}

// KindLabel returns the display label for an item kind.
func KindLabel(k model.ItemKind) string {
	if k == model.KindIncome {
		return "income"
	}
	return "bill"
}

// FormatFrequency renders a frequency in human terms, expanding the custom
// interval when present.
func FormatFrequency(f model.Frequency, customDays int) string {
	if f == model.Custom {
		if customDays == 1 {
			return "every day"
		}
		return fmt.Sprintf("every %d days", customDays)
	}
	return string(f)
}
