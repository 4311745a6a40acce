package cmd

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"billkeep/internal/cli"
	"billkeep/internal/date"
	"billkeep/internal/model"
	"billkeep/internal/schedule"
)

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "List income entries",
	RunE:  runIncomeList,
}

var incomeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an income entry",
	RunE:  runIncomeAdd,
}

var incomeRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an income entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncomeRm,
}

var (
	incomeSource     string
	incomeAmount     string
	incomeDate       string
	incomeRecurring  bool
	incomeFrequency  string
	incomeCustomDays int
	incomeNotes      string
)

func init() {
	incomeAddCmd.Flags().StringVar(&incomeSource, "source", "", "Income source, e.g. Salary")
	incomeAddCmd.Flags().StringVar(&incomeAmount, "amount", "", "Amount received")
	incomeAddCmd.Flags().StringVar(&incomeDate, "date", "", "Receive date (YYYY-MM-DD)")
	incomeAddCmd.Flags().BoolVar(&incomeRecurring, "recurring", false, "Income repeats on a schedule")
	incomeAddCmd.Flags().StringVar(&incomeFrequency, "frequency", "", "daily|weekly|biweekly|monthly|quarterly|semiannual|annual|custom")
	incomeAddCmd.Flags().IntVar(&incomeCustomDays, "custom-days", 0, "Interval in days for custom frequency")
	incomeAddCmd.Flags().StringVar(&incomeNotes, "notes", "", "Free-form notes")

	incomeCmd.AddCommand(incomeAddCmd, incomeRmCmd)
	rootCmd.AddCommand(incomeCmd)
}

func runIncomeList(_ *cobra.Command, _ []string) error {
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

	items, err := st.ListIncome()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("\n  No income entries yet. Add one with: billkeep income add")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("INCOME  (%d)", len(items))))
	fmt.Println()

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		sched := "one-time"
		if it.IsRecurring {
			sched = cli.FormatFrequency(it.Frequency, it.CustomIntervalDays)
		}
		rows = append(rows, []string{
			it.Name,
			cli.FormatAmount(it.Amount),
			cli.FormatDate(it.AnchorDate),
			cli.FormatRelativeDays(it.AnchorDate, today),
			sched,
			shortID(it.ID),
		})
	}

	fmt.Println(cli.RenderTable(cli.Table{
		Headers: []string{"Source", "Amount", "Receive", "", "Schedule", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runIncomeAdd(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if incomeSource == "" || incomeAmount == "" || incomeDate == "" {
		return errors.New("source, amount, and date are required")
	}
	amount, err := decimal.NewFromString(incomeAmount)
	if err != nil || amount.IsNegative() {
		return fmt.Errorf("invalid amount %q", incomeAmount)
	}
	recv, err := date.Parse(incomeDate)
	if err != nil {
		return err
	}

	item := model.Item{
		Kind:        model.KindIncome,
		Name:        incomeSource,
		Amount:      amount,
		AnchorDate:  recv,
		IsRecurring: incomeRecurring,
		Notes:       incomeNotes,
	}
	if incomeRecurring {
		item.Frequency = model.Frequency(incomeFrequency)
		item.CustomIntervalDays = incomeCustomDays
		if _, err := schedule.Step(recv, recv.Day, item.Frequency, item.CustomIntervalDays); err != nil {
			return err
		}
	}

	created, err := st.CreateIncome(item)
	if err != nil {
		return err
	}
	fmt.Printf("  Added income %q (%s) on %s\n", created.Name,
		cli.FormatAmount(created.Amount), cli.FormatDate(created.AnchorDate))
	return nil
}

func runIncomeRm(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	items, err := st.ListIncome()
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ID == args[0] || shortID(it.ID) == args[0] {
			if err := st.DeleteIncome(it.ID); err != nil {
				return err
			}
			fmt.Printf("  Deleted income %q\n", it.Name)
			return nil
		}
	}
	return fmt.Errorf("no income entry matches %q", args[0])
}
