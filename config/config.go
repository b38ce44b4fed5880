/*
Package config loads and validates all runtime configuration.

PURPOSE:
  One struct, loaded once at process start, passed down explicitly. The
  engine and clients never read environment variables themselves.

PARSING RULES:
  Numeric tunables are kept as strings in the environment and parsed here
  with documented defaults. A typo in MISSING_HOURS_THRESHOLD must not crash
  an unattended batch run (a crash means zero notifications), so malformed
  values silently fall back to their defaults. Missing credentials, by
  contrast, make every run useless and fail validation loudly.
*/
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/warp/hours-sentinel/shortfall"
)

// Defaults for the numeric tunables.
var (
	DefaultBaseHoursPerDay    = decimal.RequireFromString("7.5")
	DefaultDailyCapacityFloor = decimal.Zero
)

// ErrMissingCredentials is returned by Validate when a required credential
// is absent from the environment.
var ErrMissingCredentials = errors.New("missing credentials")

// Config holds the application configuration loaded from the environment.
type Config struct {
	HarvestAccountID string `envconfig:"HARVEST_ACCOUNT_ID"`
	HarvestToken     string `envconfig:"HARVEST_TOKEN"`

	SlackToken   string `envconfig:"SLACK_TOKEN"`
	SlackChannel string `envconfig:"SLACK_CHANNEL" default:"#missing-hours"`

	// ExcludedEmails is a comma-separated list of roster emails that never
	// receive notifications (contractors, service accounts).
	ExcludedEmails string `envconfig:"EXCLUDED_EMAILS"`

	// MissingHoursThreshold is the base expected hours per working day.
	MissingHoursThreshold string `envconfig:"MISSING_HOURS_THRESHOLD" default:"7.5"`

	// DailyCapacityThreshold is the weekly-capacity floor, in hours, below
	// which users are spared daily checks.
	DailyCapacityThreshold string `envconfig:"DAILY_CAPACITY_THRESHOLD" default:"0"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the credentials both external services require are
// present. Numeric tunables are not validated; they have safe defaults.
func (c Config) Validate() error {
	var missing []string
	if c.HarvestAccountID == "" {
		missing = append(missing, "HARVEST_ACCOUNT_ID")
	}
	if c.HarvestToken == "" {
		missing = append(missing, "HARVEST_TOKEN")
	}
	if c.SlackToken == "" {
		missing = append(missing, "SLACK_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// BaseHours returns the parsed base hours per day, falling back to the
// default on malformed or negative values.
func (c Config) BaseHours() decimal.Decimal {
	return parseOrDefault(c.MissingHoursThreshold, DefaultBaseHoursPerDay)
}

// DailyFloor returns the parsed daily capacity floor in hours.
func (c Config) DailyFloor() decimal.Decimal {
	return parseOrDefault(c.DailyCapacityThreshold, DefaultDailyCapacityFloor)
}

// Engine builds the engine-facing tunables from this configuration.
func (c Config) Engine() shortfall.Config {
	return shortfall.Config{
		BaseHoursPerDay:    c.BaseHours(),
		DailyCapacityFloor: c.DailyFloor(),
	}
}

// Excluded returns the excluded-email list, trimmed and lowercased, empty
// entries dropped.
func (c Config) Excluded() []string {
	if strings.TrimSpace(c.ExcludedEmails) == "" {
		return nil
	}
	var out []string
	for _, e := range strings.Split(c.ExcludedEmails, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

func parseOrDefault(s string, def decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return def
	}
	return d
}
