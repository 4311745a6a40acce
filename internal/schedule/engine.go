// Package schedule projects recurring bills and income into future
// occurrences and classifies them by urgency.
//
// Every function here is pure: no clock reads, no I/O, no logging. "Today"
// is always an explicit parameter so callers and tests control it. Failures
// are typed errors returned to the caller.
package schedule

import (
	"errors"
	"fmt"
	"sort"

	"billkeep/internal/date"
	"billkeep/internal/model"
)

var (
	// ErrInvalidFrequencyConfig means the frequency is unrecognized, or
	// frequency is custom without a positive interval. The expansion fails
	// outright; there is no silent fallback to "no recurrence".
	ErrInvalidFrequencyConfig = errors.New("invalid frequency configuration")

	// ErrInvalidAnchorDate means the item's anchor is not a real calendar
	// day. The storage layer should reject these before they get here, but
	// the engine fails closed rather than crashing.
	ErrInvalidAnchorDate = errors.New("invalid anchor date")
)

// DueSoonWindowDays is the half-open lookahead window for the dueSoon
// urgency class: today <= due < today+7.
const DueSoonWindowDays = 7

// Step returns the next date in a series after current. anchorDay is the
// day-of-month of the original anchor; month-based frequencies clamp to it,
// not to current's day, so a Jan 31 series that clamped to Feb 28 returns to
// the 31st in months that have one.
func Step(current date.Date, anchorDay int, f model.Frequency, customDays int) (date.Date, error) {
	switch f {
	case model.Daily:
		return current.AddDays(1), nil
	case model.Weekly:
		return current.AddDays(7), nil
	case model.Biweekly:
		return current.AddDays(14), nil
	case model.Monthly:
		return current.AddMonths(1, anchorDay), nil
	case model.Quarterly:
		return current.AddMonths(3, anchorDay), nil
	case model.Semiannual:
		return current.AddMonths(6, anchorDay), nil
	case model.Annual:
		return current.AddYears(1, anchorDay), nil
	case model.Custom:
		if customDays < 1 {
			return date.Date{}, fmt.Errorf("custom interval must be at least 1 day, got %d: %w",
				customDays, ErrInvalidFrequencyConfig)
		}
		return current.AddDays(customDays), nil
	default:
		return date.Date{}, fmt.Errorf("unknown frequency %q: %w", f, ErrInvalidFrequencyConfig)
	}
}

// Expand projects an item into its ordered occurrence sequence within a
// sliding horizon of horizonMonths from today.
//
// The first occurrence is the stored item itself at its anchor date; it is
// the only non-virtual one. Virtual occurrences follow by repeatedly
// stepping from the most recently computed date, regardless of payment
// state, until the stepped date reaches today+horizonMonths. Payment status
// never alters the projected calendar.
func Expand(it model.Item, today date.Date, horizonMonths int) ([]model.Occurrence, error) {
	if !it.AnchorDate.Valid() {
		return nil, fmt.Errorf("item %s: %w", it.ID, ErrInvalidAnchorDate)
	}

	first := model.Occurrence{
		SourceID:  it.ID,
		Kind:      it.Kind,
		Name:      it.Name,
		Amount:    it.Amount,
		DueDate:   it.AnchorDate,
		IsPaid:    it.IsBill() && it.IsPaid,
		IsVirtual: false,
	}
	if !it.IsRecurring {
		return []model.Occurrence{first}, nil
	}

	// Validate the rule before looping so a bad config is an error, not an
	// empty or runaway expansion.
	if _, err := Step(it.AnchorDate, it.AnchorDate.Day, it.Frequency, it.CustomIntervalDays); err != nil {
		return nil, fmt.Errorf("item %s: %w", it.ID, err)
	}

	end := today.AddMonths(horizonMonths, today.Day)
	occs := []model.Occurrence{first}
	cur := it.AnchorDate
	for {
		next, err := Step(cur, it.AnchorDate.Day, it.Frequency, it.CustomIntervalDays)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", it.ID, err)
		}
		if !next.Before(end) {
			break
		}
		occs = append(occs, model.Occurrence{
			SourceID:  it.ID,
			Kind:      it.Kind,
			Name:      it.Name,
			Amount:    it.Amount,
			DueDate:   next,
			IsPaid:    false,
			IsVirtual: true,
		})
		cur = next
	}
	return occs, nil
}

// ExpandAll expands every item with the horizon for its kind and returns the
// merged sequence sorted by due date. Items with broken schedules are
// skipped and reported together so one bad bill cannot blank the calendar.
func ExpandAll(items []model.Item, today date.Date, billMonths, incomeMonths int) ([]model.Occurrence, error) {
	var all []model.Occurrence
	var errs []error
	for _, it := range items {
		months := billMonths
		if it.Kind == model.KindIncome {
			months = incomeMonths
		}
		occs, err := Expand(it, today, months)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		all = append(all, occs...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if c := all[i].DueDate.Compare(all[j].DueDate); c != 0 {
			return c < 0
		}
		return all[i].Name < all[j].Name
	})
	return all, errors.Join(errs...)
}

// Classify returns the urgency class of an occurrence relative to today.
func Classify(o model.Occurrence, today date.Date) model.Urgency {
	if o.IsPaid {
		return model.UrgencyPaid
	}
	days := o.DueDate.DaysUntil(today)
	switch {
	case days < 0:
		return model.UrgencyOverdue
	case days < DueSoonWindowDays:
		return model.UrgencyDueSoon
	default:
		return model.UrgencyUpcoming
	}
}

// FilterRange returns the occurrences whose due date falls in [start, end).
// It operates on an expanded sequence so recurring items appear once per
// matching occurrence within the window.
func FilterRange(occs []model.Occurrence, start, end date.Date) []model.Occurrence {
	var out []model.Occurrence
	for _, o := range occs {
		if !o.DueDate.Before(start) && o.DueDate.Before(end) {
			out = append(out, o)
		}
	}
	return out
}

// NeedsAttention returns the unpaid occurrences that are overdue or due
// within the next week.
func NeedsAttention(occs []model.Occurrence, today date.Date) []model.Occurrence {
	var out []model.Occurrence
	for _, o := range occs {
		switch Classify(o, today) {
		case model.UrgencyOverdue, model.UrgencyDueSoon:
			out = append(out, o)
		}
	}
	return out
}
