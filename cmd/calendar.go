package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"billkeep/internal/cli"
	"billkeep/internal/logger"
	"billkeep/internal/report"
	"billkeep/internal/schedule"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar [YYYY-MM]",
	Short: "Month grid with bill and income markers",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(_ *cobra.Command, args []string) error {
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

	year, month := today.Year, today.Month
	if len(args) == 1 {
		if _, err := fmt.Sscanf(args[0], "%d-%d", &year, &month); err != nil ||
			month < time.January || month > time.December {
			return fmt.Errorf("invalid month %q, want YYYY-MM", args[0])
		}
	}

	items, err := st.ListItems()
	if err != nil {
		return err
	}

	occs, err := schedule.ExpandAll(items, today,
		cfg.Horizons.BillMonths, cfg.Horizons.IncomeMonths)
	if err != nil {
		log := logger.WithComponent("calendar")
		log.Warn().Err(err).Msg("some items have invalid schedules")
	}

	start, end := report.MonthRange(year, month)
	inMonth := schedule.FilterRange(occs, start, end)

	fmt.Println()
	fmt.Println(cli.RenderCalendar(year, month, inMonth, today))

	if len(inMonth) == 0 {
		fmt.Println("  Nothing scheduled this month.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(inMonth))
	for _, o := range inMonth {
		urgency := schedule.Classify(o, today)
		rows = append(rows, []string{
			cli.FormatDate(o.DueDate),
			cli.KindLabel(o.Kind),
			o.Name,
			cli.FormatAmount(o.Amount),
			cli.UrgencyStyle(urgency).Render(cli.UrgencyLabel(urgency)),
		})
	}
	fmt.Println(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Kind", "Name", "Amount", "Status"},
		Rows:    rows,
	}))
	return nil
}
