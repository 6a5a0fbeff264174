package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"bnpl-risk-lab/internal/domain"
)

// FeatureMissingness is the missing-value ratio of one feature column.
type FeatureMissingness struct {
	Feature      string  `json:"feature"`
	MissingRatio float64 `json:"missing_ratio"`
}

// MissingnessTop computes the n feature columns with the highest share of
// missing values across rows. A value counts as missing when it renders as
// an empty cell. Ties break by column name for stable output.
func MissingnessTop(rows []*domain.FeatureRow, n int) []FeatureMissingness {
	if len(rows) == 0 || n <= 0 {
		return nil
	}

	missing := make([]int, len(domain.FeatureColumns))
	for _, r := range rows {
		for i, v := range r.FeatureValues() {
			if v == "" {
				missing[i]++
			}
		}
	}

	result := make([]FeatureMissingness, len(domain.FeatureColumns))
	for i, col := range domain.FeatureColumns {
		result[i] = FeatureMissingness{
			Feature:      col,
			MissingRatio: float64(missing[i]) / float64(len(rows)),
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].MissingRatio != result[j].MissingRatio {
			return result[i].MissingRatio > result[j].MissingRatio
		}
		return result[i].Feature < result[j].Feature
	})

	if n > len(result) {
		n = len(result)
	}
	return result[:n]
}

// WriteMissingness writes the missingness report as indented JSON.
func WriteMissingness(path string, report []FeatureMissingness) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal missingness report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write missingness report: %w", err)
	}

	return nil
}
