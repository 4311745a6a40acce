package model

import (
	"github.com/shopspring/decimal"

	"billkeep/internal/date"
)

// Category is a spending category with a monthly budget and a running
// spent total maintained by the store.
type Category struct {
	ID     string
	Name   string
	Budget decimal.Decimal
	Spent  decimal.Decimal
}

// Remaining returns the budget left in the category. May be negative.
func (c Category) Remaining() decimal.Decimal {
	return c.Budget.Sub(c.Spent)
}

// Expense is one recorded spend against a category. BillID links back to
// the bill whose payment created it, when there is one.
type Expense struct {
	ID          string
	CategoryID  string
	Amount      decimal.Decimal
	Description string
	Date        date.Date
	BillID      string
}
