package features

import (
	"sort"
	"time"

	"bnpl-risk-lab/internal/cohort"
	"bnpl-risk-lab/internal/dataset"
	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/idhash"
)

// assemble runs the six domain assemblers in their fixed order. Both
// cohort builders call this and nothing else, which is what makes
// train/serve parity structural rather than merely tested.
func assemble(rows []*domain.FeatureRow, snap *dataset.Snapshot) {
	AddUserFeatures(rows, snap.Users)
	AddRepaymentFeatures(rows, snap.Installments)
	AddOrderFeatures(rows, snap.Orders)
	AddFrictionFeatures(rows, snap.Disputes, snap.Refunds)
	AddCheckoutFeatures(rows, snap.CheckoutEvents)
	AddMerchantFeatures(rows, snap.Merchants, snap.Disputes, snap.Refunds, snap.Orders)
}

// BuildTraining builds the historical labeled feature table: resolved
// installments anchored at their own due dates, with the binary target
// attached. The output is validated against the contract before being
// returned.
func BuildTraining(snap *dataset.Snapshot) ([]*domain.FeatureRow, error) {
	members, err := cohort.ResolveHistorical(snap.Installments)
	if err != nil {
		return nil, err
	}

	rows := newRows(members, domain.CohortHistorical)
	assemble(rows, snap)

	if err := cohort.ValidateTraining(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// BuildScoring builds the live feature table: unresolved installments not
// yet due, all anchored at the caller-supplied scoring date. Same
// assembler sequence as training, no target.
func BuildScoring(snap *dataset.Snapshot, scoringDate time.Time) ([]*domain.FeatureRow, error) {
	members, err := cohort.ResolveLive(snap.Installments, scoringDate)
	if err != nil {
		return nil, err
	}

	rows := newRows(members, domain.CohortLive)
	assemble(rows, snap)

	if err := cohort.ValidateScoring(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// newRows seeds one feature row per cohort member with identifiers, anchor
// and (historical only) target. Rows are sorted by installment id so the
// same snapshot always produces the same output byte for byte.
func newRows(members []*cohort.Member, c domain.Cohort) []*domain.FeatureRow {
	sorted := make([]*cohort.Member, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Installment.InstallmentID < sorted[j].Installment.InstallmentID
	})

	rows := make([]*domain.FeatureRow, len(sorted))
	for i, m := range sorted {
		inst := m.Installment
		rows[i] = &domain.FeatureRow{
			RowID:             idhash.ComputeRowID(inst.InstallmentID, string(c), m.AnchorDate),
			Cohort:            c,
			InstallmentID:     inst.InstallmentID,
			OrderID:           inst.OrderID,
			UserID:            inst.UserID,
			MerchantID:        inst.MerchantID,
			InstallmentNumber: inst.InstallmentNumber,
			AnchorDate:        m.AnchorDate,
			IsLate:            m.IsLate,
		}
	}
	return rows
}
