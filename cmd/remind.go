package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"billkeep/internal/cli"
	"billkeep/internal/config"
	"billkeep/internal/logger"
	"billkeep/internal/model"
	"billkeep/internal/notify"
	"billkeep/internal/schedule"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send SMS reminders for bills that need attention",
	Long: "Sends an SMS for every unpaid bill that is overdue or due within " +
		"7 days, plus a budget alert for any over-budget category. Requires " +
		"a phone number in the config and Twilio credentials in the config " +
		"or environment.",
	RunE: runRemind,
}

var remindDryRun bool

func init() {
	remindCmd.Flags().BoolVar(&remindDryRun, "dry-run", false, "Print reminders without sending")
	rootCmd.AddCommand(remindCmd)
}

func runRemind(_ *cobra.Command, _ []string) error {
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

	if cfg.Notify.PhoneNumber == "" {
		return errors.New("no phone number configured; set notify.phone_number in " + config.ConfigPath())
	}

	items, err := st.ListItems()
	if err != nil {
		return err
	}
	occs, err := schedule.ExpandAll(items, today,
		cfg.Horizons.BillMonths, cfg.Horizons.IncomeMonths)
	if err != nil {
		log := logger.WithComponent("remind")
		log.Warn().Err(err).Msg("some items have invalid schedules")
	}

	var due []model.Occurrence
	for _, o := range schedule.NeedsAttention(occs, today) {
		if o.Kind == model.KindBill && !o.IsVirtual {
			due = append(due, o)
		}
	}

	cats, err := st.ListCategories()
	if err != nil {
		return err
	}
	var over []model.Category
	for _, c := range cats {
		if c.Budget.IsPositive() && c.Spent.GreaterThan(c.Budget) {
			over = append(over, c)
		}
	}

	if len(due) == 0 && len(over) == 0 {
		fmt.Println("\n  Nothing needs a reminder.")
		return nil
	}

	if remindDryRun {
		for _, o := range due {
			fmt.Printf("  would send: %s (%s) due %s\n",
				o.Name, cli.FormatAmount(o.Amount), cli.FormatDate(o.DueDate))
		}
		for _, c := range over {
			fmt.Printf("  would send: %s over budget (%s of %s)\n",
				c.Name, cli.FormatAmount(c.Spent), cli.FormatAmount(c.Budget))
		}
		return nil
	}

	client := twilioClient(cfg)
	if client == nil {
		return errors.New("twilio credentials missing; set TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, and TWILIO_FROM_NUMBER")
	}

	log := logger.WithComponent("remind")
	ctx := context.Background()
	sent := 0

	for _, o := range due {
		sid, err := client.SendBillReminder(ctx, cfg.Notify.PhoneNumber,
			o.Name, o.Amount, cli.FormatDate(o.DueDate))
		if err != nil {
			log.Error().Err(err).Str("bill", o.Name).Msg("reminder failed")
			continue
		}
		log.Info().Str("bill", o.Name).Str("sid", sid).Msg("reminder sent")
		sent++
	}
	for _, c := range over {
		sid, err := client.SendBudgetAlert(ctx, notify.BudgetAlert{
			Destination:  cfg.Notify.PhoneNumber,
			CategoryName: c.Name,
			Spent:        c.Spent,
			Remaining:    c.Remaining(),
		})
		if err != nil {
			log.Error().Err(err).Str("category", c.Name).Msg("budget alert failed")
			continue
		}
		log.Info().Str("category", c.Name).Str("sid", sid).Msg("budget alert sent")
		sent++
	}

	fmt.Printf("  Sent %d reminder(s) to %s\n", sent, cfg.Notify.PhoneNumber)
	return nil
}

func twilioClient(cfg config.Config) *notify.Client {
	sid, token, from := config.TwilioCredentials(cfg)
	return notify.NewClient(sid, token, from)
}

// maybeNotifyBudget sends a budget alert when a mutation pushed the
// category over budget. Best-effort: missing credentials or a failed send
// never fail the command that triggered it.
func maybeNotifyBudget(cfg config.Config, cat model.Category) {
	if cfg.Notify.PhoneNumber == "" || !cat.Budget.IsPositive() || !cat.Spent.GreaterThan(cat.Budget) {
		return
	}
	client := twilioClient(cfg)
	if client == nil {
		return
	}
	_, err := client.SendBudgetAlert(context.Background(), notify.BudgetAlert{
		Destination:  cfg.Notify.PhoneNumber,
		CategoryName: cat.Name,
		Spent:        cat.Spent,
		Remaining:    cat.Remaining(),
	})
	if err != nil {
		log := logger.WithComponent("notify")
		log.Warn().Err(err).Str("category", cat.Name).Msg("budget alert failed")
	}
}
