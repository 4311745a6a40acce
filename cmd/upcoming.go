package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"billkeep/internal/cli"
	"billkeep/internal/logger"
	"billkeep/internal/model"
	"billkeep/internal/report"
	"billkeep/internal/schedule"
)

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Show upcoming bill and income occurrences",
	RunE:  runUpcoming,
}

var upcomingDays int

func init() {
	upcomingCmd.Flags().IntVarP(&upcomingDays, "days", "n", 30, "Lookahead window in days")
	rootCmd.AddCommand(upcomingCmd)
}

func runUpcoming(_ *cobra.Command, _ []string) error {
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

	items, err := st.ListItems()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("\n  Nothing tracked yet. Start with: billkeep bills add")
		return nil
	}

	occs, err := schedule.ExpandAll(items, today,
		cfg.Horizons.BillMonths, cfg.Horizons.IncomeMonths)
	if err != nil {
		// Broken schedules are skipped, not fatal; tell the user which.
		log := logger.WithComponent("upcoming")
		log.Warn().Err(err).Msg("some items have invalid schedules")
	}

	days := upcomingDays
	if days < 1 {
		days = 30
	}
	window := schedule.FilterRange(occs, today.AddDays(-7), today.AddDays(days))
	if len(window) == 0 {
		fmt.Printf("\n  Nothing due in the next %d days.\n", days)
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("UPCOMING  next %d days", days)))
	fmt.Println()

	rows := make([][]string, 0, len(window))
	for _, o := range window {
		urgency := schedule.Classify(o, today)
		rows = append(rows, []string{
			cli.FormatDate(o.DueDate),
			cli.KindLabel(o.Kind),
			o.Name,
			cli.FormatAmount(o.Amount),
			cli.FormatRelativeDays(o.DueDate, today),
			cli.UrgencyStyle(urgency).Render(cli.UrgencyLabel(urgency)),
		})
	}
	fmt.Println(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Kind", "Name", "Amount", "", "Status"},
		Rows:    rows,
	}))

	// Month summary footer for the current month.
	expenses, err := st.ListExpenses(report.MonthRange(today.Year, today.Month))
	if err != nil {
		return err
	}
	sum := report.SummarizeMonth(occs, expenses, today.Year, today.Month)
	fmt.Printf("  %s %d: %s in bills due (%s paid), %s income expected, %s spent\n\n",
		today.Month, today.Year,
		cli.FormatAmount(sum.BillsDue),
		cli.FormatAmount(sum.BillsPaid),
		cli.FormatAmount(sum.Income),
		cli.FormatAmount(sum.Spent),
	)

	attention := schedule.NeedsAttention(window, today)
	if n := countUnpaidBills(attention); n > 0 {
		fmt.Printf("  %d bill(s) need attention. Send reminders with: billkeep remind\n\n", n)
	}
	return nil
}

func countUnpaidBills(occs []model.Occurrence) int {
	n := 0
	for _, o := range occs {
		if o.Kind == model.KindBill {
			n++
		}
	}
	return n
}
