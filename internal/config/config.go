package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all billkeep configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Horizons   HorizonConfig    `toml:"horizons"`
	Notify     NotifyConfig     `toml:"notify"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir  string `toml:"data_dir,omitempty"`
	LogLevel string `toml:"log_level,omitempty"`
}

// HorizonConfig holds the projection windows, in months, used when
// expanding recurring items. Bills get a longer planning lookahead than
// income.
type HorizonConfig struct {
	BillMonths   int `toml:"bill_months"`
	IncomeMonths int `toml:"income_months"`
}

// NotifyConfig holds SMS reminder settings. Twilio credentials may live
// here or in the environment; the environment wins.
type NotifyConfig struct {
	PhoneNumber string `toml:"phone_number,omitempty"`
	AccountSID  string `toml:"twilio_account_sid,omitempty"`
	AuthToken   string `toml:"twilio_auth_token,omitempty"`
	FromNumber  string `toml:"twilio_from_number,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			LogLevel: "warn",
		},
		Horizons: HorizonConfig{
			BillMonths:   12,
			IncomeMonths: 3,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "billkeep")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "billkeep")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the configured data directory, defaulting to an
// XDG-style data dir.
func DataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "billkeep")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "billkeep")
}

// DBPath returns the path to the SQLite database.
func DBPath(cfg Config) string {
	return filepath.Join(DataDir(cfg), "billkeep.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Horizons.BillMonths < 1 {
		cfg.Horizons.BillMonths = DefaultConfig().Horizons.BillMonths
	}
	if cfg.Horizons.IncomeMonths < 1 {
		cfg.Horizons.IncomeMonths = DefaultConfig().Horizons.IncomeMonths
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// TwilioCredentials returns the Twilio account SID, auth token, and sending
// number, reading env vars first and falling back to the config file.
func TwilioCredentials(cfg Config) (sid, token, from string) {
	sid = envOr("TWILIO_ACCOUNT_SID", cfg.Notify.AccountSID)
	token = envOr("TWILIO_AUTH_TOKEN", cfg.Notify.AuthToken)
	from = envOr("TWILIO_FROM_NUMBER", cfg.Notify.FromNumber)
	return sid, token, from
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
