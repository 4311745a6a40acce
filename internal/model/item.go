// Package model defines domain types for billkeep items, occurrences, and budgets.
package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"billkeep/internal/date"
)

// Frequency is how often a recurring item repeats.
type Frequency string

const (
	Daily      Frequency = "daily"
	Weekly     Frequency = "weekly"
	Biweekly   Frequency = "biweekly"
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	Semiannual Frequency = "semiannual"
	Annual     Frequency = "annual"
	Custom     Frequency = "custom"
)

// Frequencies lists every recognized frequency, in increasing period order.
var Frequencies = []Frequency{Daily, Weekly, Biweekly, Monthly, Quarterly, Semiannual, Annual, Custom}

// Valid reports whether f is a recognized frequency value.
func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Biweekly, Monthly, Quarterly, Semiannual, Annual, Custom:
		return true
	}
	return false
}

// ItemKind discriminates the two recurring item variants.
type ItemKind string

const (
	KindBill   ItemKind = "bill"
	KindIncome ItemKind = "income"
)

// Item is a stored bill or income entry. Kind selects the variant; the
// paid-state fields and CategoryID are meaningful only for bills.
type Item struct {
	ID     string
	Kind   ItemKind
	Name   string // bill title or income source
	Amount decimal.Decimal

	// AnchorDate is the stored due/receive date of the original,
	// non-virtual occurrence.
	AnchorDate         date.Date
	IsRecurring        bool
	Frequency          Frequency
	CustomIntervalDays int

	// Bill-only fields.
	IsPaid     bool
	LastPaid   *date.Date
	CategoryID string

	Notes string
}

// IsBill reports whether the item is the bill variant.
func (it Item) IsBill() bool { return it.Kind == KindBill }

// Occurrence is one scheduled instance of an item on a specific calendar
// day. It is derived on demand and never persisted: the first occurrence of
// an expansion is the stored item itself (IsVirtual false), every later one
// is virtual and always unpaid.
type Occurrence struct {
	SourceID  string
	Kind      ItemKind
	Name      string
	Amount    decimal.Decimal
	DueDate   date.Date
	IsPaid    bool
	IsVirtual bool
}

// Key returns a stable display key composed from the source item and the
// occurrence day. It exists for UI keying only; consumers needing the item
// read SourceID rather than re-parsing the key.
func (o Occurrence) Key() string {
	return fmt.Sprintf("%s_%s", o.SourceID, o.DueDate)
}

// Urgency classifies an occurrence's attention priority relative to today.
type Urgency string

const (
	UrgencyPaid     Urgency = "paid"
	UrgencyOverdue  Urgency = "overdue"
	UrgencyDueSoon  Urgency = "dueSoon"
	UrgencyUpcoming Urgency = "upcoming"
)
