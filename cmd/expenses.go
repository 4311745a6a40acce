package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"billkeep/internal/cli"
	"billkeep/internal/date"
	"billkeep/internal/model"
	"billkeep/internal/report"
)

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "List recorded expenses",
	RunE:  runExpensesList,
}

var expensesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense against a category",
	RunE:  runExpensesAdd,
}

var expensesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an expense and restore its category budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesRm,
}

var (
	expenseMonth       string
	expenseCategory    string
	expenseAmount      string
	expenseDescription string
	expenseDate        string
)

func init() {
	expensesCmd.Flags().StringVar(&expenseMonth, "month", "", "Filter to a month (YYYY-MM)")
	expensesAddCmd.Flags().StringVar(&expenseCategory, "category", "", "Category name or ID")
	expensesAddCmd.Flags().StringVar(&expenseAmount, "amount", "", "Amount spent")
	expensesAddCmd.Flags().StringVar(&expenseDescription, "description", "", "What the money went to")
	expensesAddCmd.Flags().StringVar(&expenseDate, "date", "", "Spend date (YYYY-MM-DD, default today)")

	expensesCmd.AddCommand(expensesAddCmd, expensesRmCmd)
	rootCmd.AddCommand(expensesCmd)
}

func runExpensesList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var from, to date.Date
	title := "EXPENSES"
	if expenseMonth != "" {
		var year int
		var month time.Month
		if _, err := fmt.Sscanf(expenseMonth, "%d-%d", &year, &month); err != nil {
			return fmt.Errorf("invalid month %q, want YYYY-MM", expenseMonth)
		}
		from, to = report.MonthRange(year, month)
		title = fmt.Sprintf("EXPENSES  %s %d", month, year)
	}

	expenses, err := st.ListExpenses(from, to)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		fmt.Println("\n  No expenses recorded.")
		return nil
	}

	cats, err := st.ListCategories()
	if err != nil {
		return err
	}
	catNames := make(map[string]string, len(cats))
	for _, c := range cats {
		catNames[c.ID] = c.Name
	}

	total := decimal.Zero
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		desc := e.Description
		if desc == "" {
			desc = "—"
		}
		rows = append(rows, []string{
			cli.FormatDate(e.Date),
			catNames[e.CategoryID],
			desc,
			cli.FormatAmount(e.Amount),
			shortID(e.ID),
		})
		total = total.Add(e.Amount)
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", "", "", cli.FormatAmount(total), ""})

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()
	fmt.Println(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Category", "Description", "Amount", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runExpensesAdd(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if expenseCategory == "" || expenseAmount == "" {
		return errors.New("category and amount are required")
	}
	amount, err := decimal.NewFromString(expenseAmount)
	if err != nil || !amount.IsPositive() {
		return fmt.Errorf("invalid amount %q", expenseAmount)
	}

	day, err := effectiveToday()
	if err != nil {
		return err
	}
	if expenseDate != "" {
		if day, err = date.Parse(expenseDate); err != nil {
			return err
		}
	}

	cat, err := findCategory(st, expenseCategory)
	if err != nil {
		return err
	}

	_, remaining, err := st.AddExpense(model.Expense{
		CategoryID:  cat.ID,
		Amount:      amount,
		Description: expenseDescription,
		Date:        day,
	})
	if err != nil {
		return err
	}

	fmt.Printf("  Recorded %s against %s (%s remaining)\n",
		cli.FormatAmount(amount), cat.Name, cli.FormatAmount(remaining))

	updated, err := st.GetCategory(cat.ID)
	if err == nil {
		maybeNotifyBudget(cfg, updated)
	}
	return nil
}

func runExpensesRm(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	expenses, err := st.ListExpenses(date.Date{}, date.Date{})
	if err != nil {
		return err
	}
	for _, e := range expenses {
		if e.ID == args[0] || shortID(e.ID) == args[0] {
			if err := st.DeleteExpense(e.ID); err != nil {
				return err
			}
			fmt.Printf("  Deleted expense %s\n", cli.FormatAmount(e.Amount))
			return nil
		}
	}
	return fmt.Errorf("no expense matches %q", args[0])
}
