// Package store persists billkeep documents in a SQLite database.
//
// The store owns identity assignment and the paid-state transitions of
// bills. Marking a bill paid, incrementing its category's spent total, and
// appending the linked expense record happen in a single transaction so the
// "spent" aggregate can never drift from the expense ledger.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver

	"billkeep/internal/date"
	"billkeep/internal/model"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// Store provides SQLite-backed persistence for budget documents.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad stored amount %q: %w", raw, err)
	}
	return d, nil
}

// --- Categories ---

// CreateCategory inserts a category with a zero spent total and assigns its ID.
func (s *Store) CreateCategory(name string, budget decimal.Decimal) (model.Category, error) {
	c := model.Category{
		ID:     uuid.NewString(),
		Name:   name,
		Budget: budget,
		Spent:  decimal.Zero,
	}
	_, err := s.db.Exec(`INSERT INTO categories (id, name, budget, spent, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Budget.String(), c.Spent.String(), nowStamp())
	if err != nil {
		return model.Category{}, fmt.Errorf("inserting category: %w", err)
	}
	return c, nil
}

// GetCategory fetches one category by ID.
func (s *Store) GetCategory(id string) (model.Category, error) {
	row := s.db.QueryRow(`SELECT id, name, budget, spent FROM categories WHERE id = ?`, id)
	return scanCategory(row)
}

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories() ([]model.Category, error) {
	rows, err := s.db.Query(`SELECT id, name, budget, spent FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cats []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (model.Category, error) {
	var c model.Category
	var budget, spent string
	if err := row.Scan(&c.ID, &c.Name, &budget, &spent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Category{}, ErrNotFound
		}
		return model.Category{}, err
	}
	var err error
	if c.Budget, err = parseAmount(budget); err != nil {
		return model.Category{}, err
	}
	if c.Spent, err = parseAmount(spent); err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// --- Bills ---

// CreateBill inserts a bill, assigning its ID. The item's Kind must be bill.
func (s *Store) CreateBill(it model.Item) (model.Item, error) {
	if it.Kind != model.KindBill {
		return model.Item{}, fmt.Errorf("CreateBill called with kind %q", it.Kind)
	}
	it.ID = uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO bills
		(id, title, amount, due_date, is_paid, last_paid, is_recurring,
		 frequency, custom_interval_days, category_id, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Name, it.Amount.String(), it.AnchorDate.String(),
		boolToInt(it.IsPaid), datePtr(it.LastPaid), boolToInt(it.IsRecurring),
		nullString(string(it.Frequency)), nullInt(it.CustomIntervalDays),
		nullString(it.CategoryID), nullString(it.Notes), nowStamp())
	if err != nil {
		return model.Item{}, fmt.Errorf("inserting bill: %w", err)
	}
	return it, nil
}

// GetBill fetches one bill by ID.
func (s *Store) GetBill(id string) (model.Item, error) {
	row := s.db.QueryRow(billSelect+` WHERE id = ?`, id)
	return scanBill(row)
}

// ListBills returns all bills ordered by due date.
func (s *Store) ListBills() ([]model.Item, error) {
	rows, err := s.db.Query(billSelect + ` ORDER BY due_date, title`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var bills []model.Item
	for rows.Next() {
		it, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, it)
	}
	return bills, rows.Err()
}

// UpdateBill overwrites a bill's editable fields.
func (s *Store) UpdateBill(it model.Item) error {
	res, err := s.db.Exec(`UPDATE bills SET
		title = ?, amount = ?, due_date = ?, is_recurring = ?,
		frequency = ?, custom_interval_days = ?, category_id = ?, notes = ?
		WHERE id = ?`,
		it.Name, it.Amount.String(), it.AnchorDate.String(), boolToInt(it.IsRecurring),
		nullString(string(it.Frequency)), nullInt(it.CustomIntervalDays),
		nullString(it.CategoryID), nullString(it.Notes), it.ID)
	if err != nil {
		return fmt.Errorf("updating bill: %w", err)
	}
	return requireRow(res)
}

// DeleteBill removes a bill.
func (s *Store) DeleteBill(id string) error {
	res, err := s.db.Exec(`DELETE FROM bills WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

const billSelect = `SELECT id, title, amount, due_date, is_paid, last_paid,
	is_recurring, frequency, custom_interval_days, category_id, notes FROM bills`

func scanBill(row rowScanner) (model.Item, error) {
	var it model.Item
	var amount, due string
	var isPaid, isRecurring int
	var lastPaid, freq, categoryID, notes sql.NullString
	var customDays sql.NullInt64

	err := row.Scan(&it.ID, &it.Name, &amount, &due, &isPaid, &lastPaid,
		&isRecurring, &freq, &customDays, &categoryID, &notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, ErrNotFound
		}
		return model.Item{}, err
	}

	it.Kind = model.KindBill
	it.IsPaid = isPaid != 0
	it.IsRecurring = isRecurring != 0
	if it.Amount, err = parseAmount(amount); err != nil {
		return model.Item{}, err
	}
	if it.AnchorDate, err = date.Parse(due); err != nil {
		return model.Item{}, fmt.Errorf("bill %s: %w", it.ID, err)
	}
	if lastPaid.Valid && lastPaid.String != "" {
		d, err := date.Parse(lastPaid.String)
		if err != nil {
			return model.Item{}, fmt.Errorf("bill %s last_paid: %w", it.ID, err)
		}
		it.LastPaid = &d
	}
	if freq.Valid {
		it.Frequency = model.Frequency(freq.String)
	}
	if customDays.Valid {
		it.CustomIntervalDays = int(customDays.Int64)
	}
	if categoryID.Valid {
		it.CategoryID = categoryID.String
	}
	if notes.Valid {
		it.Notes = notes.String
	}
	return it, nil
}

// --- Income ---

// CreateIncome inserts an income entry, assigning its ID.
func (s *Store) CreateIncome(it model.Item) (model.Item, error) {
	if it.Kind != model.KindIncome {
		return model.Item{}, fmt.Errorf("CreateIncome called with kind %q", it.Kind)
	}
	it.ID = uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO incomes
		(id, source, amount, receive_date, is_recurring, frequency,
		 custom_interval_days, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Name, it.Amount.String(), it.AnchorDate.String(),
		boolToInt(it.IsRecurring), nullString(string(it.Frequency)),
		nullInt(it.CustomIntervalDays), nullString(it.Notes), nowStamp())
	if err != nil {
		return model.Item{}, fmt.Errorf("inserting income: %w", err)
	}
	return it, nil
}

// ListIncome returns all income entries ordered by receive date.
func (s *Store) ListIncome() ([]model.Item, error) {
	rows, err := s.db.Query(`SELECT id, source, amount, receive_date, is_recurring,
		frequency, custom_interval_days, notes FROM incomes ORDER BY receive_date, source`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.Item
	for rows.Next() {
		var it model.Item
		var amount, recv string
		var isRecurring int
		var freq, notes sql.NullString
		var customDays sql.NullInt64

		err := rows.Scan(&it.ID, &it.Name, &amount, &recv, &isRecurring,
			&freq, &customDays, &notes)
		if err != nil {
			return nil, err
		}
		it.Kind = model.KindIncome
		it.IsRecurring = isRecurring != 0
		if it.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		if it.AnchorDate, err = date.Parse(recv); err != nil {
			return nil, fmt.Errorf("income %s: %w", it.ID, err)
		}
		if freq.Valid {
			it.Frequency = model.Frequency(freq.String)
		}
		if customDays.Valid {
			it.CustomIntervalDays = int(customDays.Int64)
		}
		if notes.Valid {
			it.Notes = notes.String
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// DeleteIncome removes an income entry.
func (s *Store) DeleteIncome(id string) error {
	res, err := s.db.Exec(`DELETE FROM incomes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ListItems returns every bill and income entry as one slice, for expansion.
func (s *Store) ListItems() ([]model.Item, error) {
	bills, err := s.ListBills()
	if err != nil {
		return nil, err
	}
	income, err := s.ListIncome()
	if err != nil {
		return nil, err
	}
	return append(bills, income...), nil
}

// --- Expenses ---

// AddExpense records a spend and increments its category's spent total in
// one transaction. Returns the stored expense and the category's remaining
// budget after the spend.
func (s *Store) AddExpense(e model.Expense) (model.Expense, decimal.Decimal, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return model.Expense{}, decimal.Zero, err
	}
	defer func() { _ = tx.Rollback() }()

	e.ID = uuid.NewString()
	remaining, err := addExpenseTx(tx, e)
	if err != nil {
		return model.Expense{}, decimal.Zero, err
	}
	if err := tx.Commit(); err != nil {
		return model.Expense{}, decimal.Zero, err
	}
	return e, remaining, nil
}

func addExpenseTx(tx *sql.Tx, e model.Expense) (decimal.Decimal, error) {
	var budget, spent string
	err := tx.QueryRow(`SELECT budget, spent FROM categories WHERE id = ?`, e.CategoryID).
		Scan(&budget, &spent)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("category %s: %w", e.CategoryID, ErrNotFound)
	}
	if err != nil {
		return decimal.Zero, err
	}

	budgetD, err := parseAmount(budget)
	if err != nil {
		return decimal.Zero, err
	}
	spentD, err := parseAmount(spent)
	if err != nil {
		return decimal.Zero, err
	}
	newSpent := spentD.Add(e.Amount)

	_, err = tx.Exec(`INSERT INTO expenses (id, category_id, amount, description, date, bill_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CategoryID, e.Amount.String(), nullString(e.Description),
		e.Date.String(), nullString(e.BillID), nowStamp())
	if err != nil {
		return decimal.Zero, fmt.Errorf("inserting expense: %w", err)
	}
	_, err = tx.Exec(`UPDATE categories SET spent = ? WHERE id = ?`, newSpent.String(), e.CategoryID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("updating category spent: %w", err)
	}
	return budgetD.Sub(newSpent), nil
}

// ListExpenses returns expenses with dates in [from, to), newest first.
// Zero bounds disable that side of the filter.
func (s *Store) ListExpenses(from, to date.Date) ([]model.Expense, error) {
	q := `SELECT id, category_id, amount, description, date, bill_id FROM expenses`
	var args []any
	switch {
	case !from.IsZero() && !to.IsZero():
		q += ` WHERE date >= ? AND date < ?`
		args = append(args, from.String(), to.String())
	case !from.IsZero():
		q += ` WHERE date >= ?`
		args = append(args, from.String())
	case !to.IsZero():
		q += ` WHERE date < ?`
		args = append(args, to.String())
	}
	q += ` ORDER BY date DESC, created_at DESC`

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		var amount, day string
		var desc, billID sql.NullString
		if err := rows.Scan(&e.ID, &e.CategoryID, &amount, &desc, &day, &billID); err != nil {
			return nil, err
		}
		if e.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		if e.Date, err = date.Parse(day); err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		if desc.Valid {
			e.Description = desc.String
		}
		if billID.Valid {
			e.BillID = billID.String
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// DeleteExpense removes an expense and decrements its category's spent
// total, clamped at zero, in one transaction.
func (s *Store) DeleteExpense(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteExpenseTx(tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteExpenseTx(tx *sql.Tx, id string) error {
	var categoryID, amount string
	err := tx.QueryRow(`SELECT category_id, amount FROM expenses WHERE id = ?`, id).
		Scan(&categoryID, &amount)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	amountD, err := parseAmount(amount)
	if err != nil {
		return err
	}
	var spent string
	if err := tx.QueryRow(`SELECT spent FROM categories WHERE id = ?`, categoryID).Scan(&spent); err != nil {
		return err
	}
	spentD, err := parseAmount(spent)
	if err != nil {
		return err
	}
	newSpent := spentD.Sub(amountD)
	if newSpent.IsNegative() {
		newSpent = decimal.Zero
	}

	if _, err := tx.Exec(`DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return err
	}
	_, err = tx.Exec(`UPDATE categories SET spent = ? WHERE id = ?`, newSpent.String(), categoryID)
	return err
}

// --- Paid-state transitions ---

// PayBill toggles a bill's paid state as of today.
//
// Marking paid sets last_paid and, when the bill has a category, increments
// that category's spent total and appends an expense referencing the bill —
// all in one transaction. Marking unpaid clears last_paid and reverses the
// linked expense the same way. Returns the updated bill.
func (s *Store) PayBill(id string, today date.Date) (model.Item, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return model.Item{}, err
	}
	defer func() { _ = tx.Rollback() }()

	bill, err := scanBill(tx.QueryRow(billSelect+` WHERE id = ?`, id))
	if err != nil {
		return model.Item{}, err
	}

	if !bill.IsPaid {
		bill.IsPaid = true
		bill.LastPaid = &today
		if bill.CategoryID != "" {
			e := model.Expense{
				ID:          uuid.NewString(),
				CategoryID:  bill.CategoryID,
				Amount:      bill.Amount,
				Description: "Bill payment: " + bill.Name,
				Date:        today,
				BillID:      bill.ID,
			}
			if _, err := addExpenseTx(tx, e); err != nil {
				return model.Item{}, err
			}
		}
	} else {
		paidOn := bill.LastPaid
		bill.IsPaid = false
		bill.LastPaid = nil
		if bill.CategoryID != "" {
			// The payment expense is identified by bill and payment date, so
			// manually recorded expenses against the same bill survive.
			q := `SELECT id FROM expenses WHERE bill_id = ?
				ORDER BY created_at DESC LIMIT 1`
			args := []any{bill.ID}
			if paidOn != nil {
				q = `SELECT id FROM expenses WHERE bill_id = ? AND date = ?
					ORDER BY created_at DESC LIMIT 1`
				args = append(args, paidOn.String())
			}
			var expenseID string
			err := tx.QueryRow(q, args...).Scan(&expenseID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return model.Item{}, err
			}
			if err == nil {
				if err := deleteExpenseTx(tx, expenseID); err != nil {
					return model.Item{}, err
				}
			}
		}
	}

	_, err = tx.Exec(`UPDATE bills SET is_paid = ?, last_paid = ? WHERE id = ?`,
		boolToInt(bill.IsPaid), datePtr(bill.LastPaid), bill.ID)
	if err != nil {
		return model.Item{}, fmt.Errorf("updating bill paid state: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Item{}, err
	}
	return bill, nil
}

// --- helpers ---

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func datePtr(d *date.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
