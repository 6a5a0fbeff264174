package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bnpl-risk-lab/internal/domain"
)

// RunReport summarizes one feature build for operators.
type RunReport struct {
	RunID       string               `json:"run_id"`
	Cohort      domain.Cohort        `json:"cohort"`
	StartedAt   time.Time            `json:"started_at"`
	Duration    string               `json:"duration"`
	Rows        int                  `json:"rows"`
	Missingness []FeatureMissingness `json:"missingness_top"`
}

// NewRunReport builds a report for a completed build.
func NewRunReport(runID string, cohort domain.Cohort, startedAt time.Time, duration time.Duration, rows []*domain.FeatureRow) RunReport {
	return RunReport{
		RunID:       runID,
		Cohort:      cohort,
		StartedAt:   startedAt,
		Duration:    duration.String(),
		Rows:        len(rows),
		Missingness: MissingnessTop(rows, 10),
	}
}

// WriteRunReport writes the run report as indented JSON.
func WriteRunReport(path string, r RunReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}

	return nil
}
