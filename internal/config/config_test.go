package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OutputDir != "output" {
		t.Errorf("Expected default output dir, got %s", cfg.OutputDir)
	}
	if cfg.Dataset.Installments != "data/raw/installments.csv" {
		t.Errorf("Unexpected default installments path: %s", cfg.Dataset.Installments)
	}
	if cfg.ScoringInterval.Std() != 24*time.Hour {
		t.Errorf("Expected 24h scoring interval, got %v", cfg.ScoringInterval.Std())
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
output_dir: /tmp/features
metrics_addr: ":8080"
scoring_interval: 1h
dataset:
  installments: /data/installments.csv
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OutputDir != "/tmp/features" {
		t.Errorf("Expected /tmp/features, got %s", cfg.OutputDir)
	}
	if cfg.MetricsAddr != ":8080" {
		t.Errorf("Expected :8080, got %s", cfg.MetricsAddr)
	}
	if cfg.ScoringInterval.Std() != time.Hour {
		t.Errorf("Expected 1h, got %v", cfg.ScoringInterval.Std())
	}
	if cfg.Dataset.Installments != "/data/installments.csv" {
		t.Errorf("File should override installments path, got %s", cfg.Dataset.Installments)
	}
	// Unset keys keep defaults
	if cfg.Dataset.Users != "data/raw/users.csv" {
		t.Errorf("Unset keys should keep defaults, got %s", cfg.Dataset.Users)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://env-wins")
	t.Setenv("CLICKHOUSE_DSN", "clickhouse://env-wins")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("postgres_dsn: postgres://from-file\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.PostgresDSN != "postgres://env-wins" {
		t.Errorf("Env should override file, got %s", cfg.PostgresDSN)
	}
	if cfg.ClickHouseDSN != "clickhouse://env-wins" {
		t.Errorf("Env should set clickhouse dsn, got %s", cfg.ClickHouseDSN)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}
