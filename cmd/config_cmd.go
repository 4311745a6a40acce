// Package cmd implements the billkeep CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"billkeep/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", config.DataDir(cfg))
	fmt.Printf("    Database:       %s\n", config.DBPath(cfg))
	fmt.Printf("    Log level:      %s\n", cfg.General.LogLevel)
	fmt.Println()

	fmt.Println("  [Horizons]")
	fmt.Printf("    Bill projection:   %d months\n", cfg.Horizons.BillMonths)
	fmt.Printf("    Income projection: %d months\n", cfg.Horizons.IncomeMonths)
	fmt.Println()

	fmt.Println("  [Notify]")
	if cfg.Notify.PhoneNumber != "" {
		fmt.Printf("    Phone number: %s\n", cfg.Notify.PhoneNumber)
	} else {
		fmt.Println("    Phone number: not configured")
	}
	sid, token, from := config.TwilioCredentials(cfg)
	if sid != "" && token != "" && from != "" {
		fmt.Printf("    Twilio: configured (account %s)\n", maskSecret(sid))
	} else {
		fmt.Println("    Twilio: not configured")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Edit the file above, or run `billkeep config init` to create it.")
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if config.Exists() {
		return fmt.Errorf("config already exists at %s", config.ConfigPath())
	}
	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s\n", config.ConfigPath())
	return nil
}

func maskSecret(s string) string {
	if len(s) <= 6 {
		return "******"
	}
	return s[:4] + "..." + s[len(s)-2:]
}
