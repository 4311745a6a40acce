package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"billkeep/internal/config"
	"billkeep/internal/date"
	"billkeep/internal/logger"
	"billkeep/internal/store"
)

var (
	flagDataDir string
	flagToday   string
)

var rootCmd = &cobra.Command{
	Use:   "billkeep",
	Short: "Personal budgeting CLI",
	Long:  "Track spending categories, expenses, bills, and income against monthly budgets.",
	RunE:  runUpcoming,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "Override today's date (YYYY-MM-DD, for scripting)")

	cobra.OnInitialize(func() {
		// .env keeps Twilio credentials out of the config file.
		_ = godotenv.Load()

		cfg, _ := config.Load()
		level := cfg.General.LogLevel
		if env := os.Getenv("BILLKEEP_LOG_LEVEL"); env != "" {
			level = env
		}
		logger.Setup(level)
	})
}

// loadConfig returns the config with CLI flag overrides applied.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	return cfg, nil
}

// openStore opens the database for the configured data dir.
func openStore(cfg config.Config) (*store.Store, error) {
	return store.Open(config.DBPath(cfg))
}

// effectiveToday resolves --today, falling back to the wall clock.
func effectiveToday() (date.Date, error) {
	if flagToday == "" {
		return date.Today(), nil
	}
	return date.Parse(flagToday)
}
