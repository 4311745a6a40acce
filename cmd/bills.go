package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"billkeep/internal/cli"
	"billkeep/internal/date"
	"billkeep/internal/model"
	"billkeep/internal/schedule"
	"billkeep/internal/store"
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "List bills with their urgency",
	RunE:  runBillsList,
}

var billsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a bill",
	RunE:  runBillsAdd,
}

var billsPayCmd = &cobra.Command{
	Use:   "pay <bill>",
	Short: "Mark a bill paid",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillsPay,
}

var billsUnpayCmd = &cobra.Command{
	Use:   "unpay <bill>",
	Short: "Mark a bill unpaid and reverse its expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillsUnpay,
}

var billsRmCmd = &cobra.Command{
	Use:   "rm <bill>",
	Short: "Delete a bill",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillsRm,
}

var (
	billTitle       string
	billAmount      string
	billDue         string
	billRecurring   bool
	billFrequency   string
	billCustomDays  int
	billCategory    string
	billNotes       string
	billInteractive bool
)

func init() {
	billsAddCmd.Flags().StringVar(&billTitle, "title", "", "Bill title")
	billsAddCmd.Flags().StringVar(&billAmount, "amount", "", "Amount due, e.g. 1200 or 59.99")
	billsAddCmd.Flags().StringVar(&billDue, "due", "", "Due date (YYYY-MM-DD)")
	billsAddCmd.Flags().BoolVar(&billRecurring, "recurring", false, "Bill repeats on a schedule")
	billsAddCmd.Flags().StringVar(&billFrequency, "frequency", "", "daily|weekly|biweekly|monthly|quarterly|semiannual|annual|custom")
	billsAddCmd.Flags().IntVar(&billCustomDays, "custom-days", 0, "Interval in days for custom frequency")
	billsAddCmd.Flags().StringVar(&billCategory, "category", "", "Spending category name")
	billsAddCmd.Flags().StringVar(&billNotes, "notes", "", "Free-form notes")
	billsAddCmd.Flags().BoolVarP(&billInteractive, "interactive", "i", false, "Fill the bill in with a form")

	billsCmd.AddCommand(billsAddCmd, billsPayCmd, billsUnpayCmd, billsRmCmd)
	rootCmd.AddCommand(billsCmd)
}

func runBillsList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	today, err := effectiveToday()
	if err != nil {
		return err
	}

	bills, err := st.ListBills()
	if err != nil {
		return err
	}
	if len(bills) == 0 {
		fmt.Println("\n  No bills yet. Add one with: billkeep bills add")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BILLS  (%d)", len(bills))))
	fmt.Println()

	rows := make([][]string, 0, len(bills))
	for _, b := range bills {
		occ := model.Occurrence{
			SourceID: b.ID, Kind: b.Kind, Name: b.Name,
			Amount: b.Amount, DueDate: b.AnchorDate, IsPaid: b.IsPaid,
		}
		urgency := schedule.Classify(occ, today)
		sched := "one-time"
		if b.IsRecurring {
			sched = cli.FormatFrequency(b.Frequency, b.CustomIntervalDays)
		}
		rows = append(rows, []string{
			b.Name,
			cli.FormatAmount(b.Amount),
			cli.FormatDate(b.AnchorDate),
			cli.FormatRelativeDays(b.AnchorDate, today),
			sched,
			cli.UrgencyStyle(urgency).Render(cli.UrgencyLabel(urgency)),
			shortID(b.ID),
		})
	}

	fmt.Println(cli.RenderTable(cli.Table{
		Headers: []string{"Bill", "Amount", "Due", "", "Schedule", "Status", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runBillsAdd(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if billInteractive {
		if err := promptBill(st); err != nil {
			return err
		}
	}

	item, err := buildBill(st)
	if err != nil {
		return err
	}

	created, err := st.CreateBill(item)
	if err != nil {
		return err
	}
	fmt.Printf("  Added bill %q (%s) due %s\n", created.Name,
		cli.FormatAmount(created.Amount), cli.FormatDate(created.AnchorDate))
	return nil
}

// buildBill validates the add flags into an item. Validation mirrors what
// the engine will enforce so bad schedules are rejected at entry.
func buildBill(st *store.Store) (model.Item, error) {
	if billTitle == "" || billAmount == "" || billDue == "" {
		return model.Item{}, errors.New("title, amount, and due date are required (or use --interactive)")
	}
	amount, err := decimal.NewFromString(billAmount)
	if err != nil || amount.IsNegative() {
		return model.Item{}, fmt.Errorf("invalid amount %q", billAmount)
	}
	due, err := date.Parse(billDue)
	if err != nil {
		return model.Item{}, err
	}

	item := model.Item{
		Kind:        model.KindBill,
		Name:        billTitle,
		Amount:      amount,
		AnchorDate:  due,
		IsRecurring: billRecurring,
		Notes:       billNotes,
	}
	if billRecurring {
		item.Frequency = model.Frequency(billFrequency)
		item.CustomIntervalDays = billCustomDays
		if _, err := schedule.Step(due, due.Day, item.Frequency, item.CustomIntervalDays); err != nil {
			return model.Item{}, err
		}
	}
	if billCategory != "" {
		cat, err := findCategory(st, billCategory)
		if err != nil {
			return model.Item{}, err
		}
		item.CategoryID = cat.ID
	}
	return item, nil
}

// promptBill fills the add flags from an interactive form.
func promptBill(st *store.Store) error {
	freqOptions := make([]huh.Option[string], 0, len(model.Frequencies))
	for _, f := range model.Frequencies {
		freqOptions = append(freqOptions, huh.NewOption(string(f), string(f)))
	}

	categories, err := st.ListCategories()
	if err != nil {
		return err
	}
	catOptions := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, c := range categories {
		catOptions = append(catOptions, huh.NewOption(c.Name, c.Name))
	}

	customDaysStr := ""
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&billTitle),
			huh.NewInput().Title("Amount").Placeholder("59.99").Value(&billAmount),
			huh.NewInput().Title("Due date").Placeholder("YYYY-MM-DD").Value(&billDue),
			huh.NewConfirm().Title("Recurring?").Value(&billRecurring),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Frequency").Options(freqOptions...).Value(&billFrequency),
			huh.NewInput().Title("Interval days (custom only)").Value(&customDaysStr),
		).WithHideFunc(func() bool { return !billRecurring }),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(&billCategory),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if customDaysStr != "" {
		n, err := strconv.Atoi(customDaysStr)
		if err != nil {
			return fmt.Errorf("invalid interval days %q", customDaysStr)
		}
		billCustomDays = n
	}
	return nil
}

func runBillsPay(_ *cobra.Command, args []string) error {
	return setBillPaid(args[0], true)
}

func runBillsUnpay(_ *cobra.Command, args []string) error {
	return setBillPaid(args[0], false)
}

// setBillPaid drives the store's paid toggle toward the wanted state. The
// toggle itself is a single transaction; this only refuses a no-op.
func setBillPaid(ref string, wantPaid bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	today, err := effectiveToday()
	if err != nil {
		return err
	}

	bill, err := findBill(st, ref)
	if err != nil {
		return err
	}
	if bill.IsPaid == wantPaid {
		if wantPaid {
			fmt.Printf("  %q is already marked paid\n", bill.Name)
		} else {
			fmt.Printf("  %q is not marked paid\n", bill.Name)
		}
		return nil
	}

	updated, err := st.PayBill(bill.ID, today)
	if err != nil {
		return err
	}

	if updated.IsPaid {
		fmt.Printf("  Marked %q paid (%s)\n", updated.Name, cli.FormatAmount(updated.Amount))
	} else {
		fmt.Printf("  Marked %q unpaid\n", updated.Name)
	}

	if updated.CategoryID != "" {
		cat, err := st.GetCategory(updated.CategoryID)
		if err == nil {
			fmt.Printf("  %s: %s spent, %s remaining\n",
				cat.Name, cli.FormatAmount(cat.Spent), cli.FormatAmount(cat.Remaining()))
			if updated.IsPaid {
				maybeNotifyBudget(cfg, cat)
			}
		}
	}
	return nil
}

func runBillsRm(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	bill, err := findBill(st, args[0])
	if err != nil {
		return err
	}
	if err := st.DeleteBill(bill.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted bill %q\n", bill.Name)
	return nil
}

// findBill resolves a user-supplied reference to a bill by ID prefix or
// exact (case-insensitive) title.
func findBill(st *store.Store, ref string) (model.Item, error) {
	bills, err := st.ListBills()
	if err != nil {
		return model.Item{}, err
	}
	var matches []model.Item
	for _, b := range bills {
		if strings.HasPrefix(b.ID, ref) || strings.EqualFold(b.Name, ref) {
			matches = append(matches, b)
		}
	}
	switch len(matches) {
	case 0:
		return model.Item{}, fmt.Errorf("no bill matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Item{}, fmt.Errorf("%q is ambiguous (%d matches); use the ID", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
