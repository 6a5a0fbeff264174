// Package config loads run configuration from a YAML file, with
// environment variables overriding store credentials.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"bnpl-risk-lab/internal/dataset"
)

// Duration unmarshals YAML values like "1h30m" into a time.Duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	v, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the standard library form.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds everything a feature build or the serve loop needs.
type Config struct {
	// Dataset locates the flat-file silver tables.
	Dataset dataset.Paths `yaml:"dataset"`

	// OutputDir receives feature CSVs, the data contract and run reports.
	OutputDir string `yaml:"output_dir"`

	// PostgresDSN connects to the silver event tables. Empty means
	// flat files only.
	PostgresDSN string `yaml:"postgres_dsn"`

	// ClickHouseDSN connects to the gold feature_rows table. Empty
	// disables feature row persistence.
	ClickHouseDSN string `yaml:"clickhouse_dsn"`

	// MetricsAddr is the HTTP listen address for /metrics and /healthz.
	MetricsAddr string `yaml:"metrics_addr"`

	// ScoringInterval is how often the serve loop rebuilds the live cohort.
	ScoringInterval Duration `yaml:"scoring_interval"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Dataset: dataset.Paths{
			Users:          "data/raw/users.csv",
			Merchants:      "data/raw/merchants.csv",
			Orders:         "data/raw/orders.csv",
			Installments:   "data/raw/installments.csv",
			Payments:       "data/raw/payments.csv",
			Disputes:       "data/raw/disputes.csv",
			Refunds:        "data/raw/refunds.csv",
			CheckoutEvents: "data/raw/checkout_events.csv",
		},
		OutputDir:       "output",
		MetricsAddr:     ":9090",
		ScoringInterval: Duration(24 * time.Hour),
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged. POSTGRES_DSN and CLICKHOUSE_DSN environment
// variables override the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		cfg.PostgresDSN = dsn
	}
	if dsn := os.Getenv("CLICKHOUSE_DSN"); dsn != "" {
		cfg.ClickHouseDSN = dsn
	}

	if cfg.ScoringInterval <= 0 {
		cfg.ScoringInterval = Duration(24 * time.Hour)
	}

	return cfg, nil
}
