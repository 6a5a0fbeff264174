package cohort

import (
	"fmt"

	"bnpl-risk-lab/internal/domain"
)

// ValidateTraining checks the historical feature table against the output
// contract: at least one row, no null anchor dates, and a binary target on
// every row. Violations are fatal and must be raised before any output is
// persisted.
func ValidateTraining(rows []*domain.FeatureRow) error {
	if err := validateCommon(domain.CohortHistorical, rows); err != nil {
		return err
	}
	for _, r := range rows {
		if r.IsLate == nil {
			return &ContractError{
				Cohort: domain.CohortHistorical,
				Reason: fmt.Sprintf("row %s has no %s value", r.InstallmentID, domain.TargetColumn),
			}
		}
		if v := *r.IsLate; v != 0 && v != 1 {
			return &ContractError{
				Cohort: domain.CohortHistorical,
				Reason: fmt.Sprintf("%s is not binary: found %d on row %s", domain.TargetColumn, v, r.InstallmentID),
			}
		}
	}
	return nil
}

// ValidateScoring checks the live feature table: at least one row, no null
// anchor dates, and no target column leaking into scoring output.
func ValidateScoring(rows []*domain.FeatureRow) error {
	if err := validateCommon(domain.CohortLive, rows); err != nil {
		return err
	}
	for _, r := range rows {
		if r.IsLate != nil {
			return &ContractError{
				Cohort: domain.CohortLive,
				Reason: fmt.Sprintf("row %s carries a %s value", r.InstallmentID, domain.TargetColumn),
			}
		}
	}
	return nil
}

func validateCommon(c domain.Cohort, rows []*domain.FeatureRow) error {
	if len(rows) == 0 {
		return &ContractError{Cohort: c, Reason: "output has 0 rows"}
	}
	for _, r := range rows {
		if r.AnchorDate.IsZero() {
			return &ContractError{
				Cohort: c,
				Reason: fmt.Sprintf("anchor_date is null on row %s", r.InstallmentID),
			}
		}
	}
	return nil
}
