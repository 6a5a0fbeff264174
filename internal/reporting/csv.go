// Package reporting writes the gold-layer outputs: feature CSVs, the data
// contract and the run report. Column order is fixed by domain.IDColumns
// and domain.FeatureColumns; training and scoring files differ only by the
// trailing target column.
package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"bnpl-risk-lab/internal/domain"
)

// TrainingHeader returns the training CSV header: ids, features, target.
func TrainingHeader() []string {
	header := ScoringHeader()
	return append(header, domain.TargetColumn)
}

// ScoringHeader returns the scoring CSV header: ids, features.
func ScoringHeader() []string {
	header := make([]string, 0, len(domain.IDColumns)+len(domain.FeatureColumns))
	header = append(header, domain.IDColumns...)
	header = append(header, domain.FeatureColumns...)
	return header
}

// WriteTrainingCSV writes labeled feature rows. Missing feature values
// render as empty cells.
func WriteTrainingCSV(path string, rows []*domain.FeatureRow) error {
	return writeCSV(path, TrainingHeader(), rows, true)
}

// WriteScoringCSV writes unlabeled feature rows with the same feature
// columns as the training file.
func WriteScoringCSV(path string, rows []*domain.FeatureRow) error {
	return writeCSV(path, ScoringHeader(), rows, false)
}

func writeCSV(path string, header []string, rows []*domain.FeatureRow, withTarget bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create feature csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range rows {
		record := append(r.IDValues(), r.FeatureValues()...)
		if withTarget {
			if r.IsLate == nil {
				return fmt.Errorf("row %s: training output requires a label", r.RowID)
			}
			record = append(record, strconv.Itoa(*r.IsLate))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", r.RowID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush feature csv: %w", err)
	}

	return nil
}
