package features

import (
	"testing"
	"time"

	"bnpl-risk-lab/internal/domain"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func intPtr(v int) *int { return &v }

func row(userID string, anchor time.Time) *domain.FeatureRow {
	return &domain.FeatureRow{InstallmentID: "row-inst", UserID: userID, AnchorDate: anchor}
}

// Worked scenario: one resolved-late installment in the window and one
// still-open obligation at the anchor.
func TestRepaymentWorkedExample(t *testing.T) {
	anchor := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	installments := []*domain.Installment{
		{InstallmentID: "i1", UserID: "u1", DueDate: datePtr(2024, 1, 10), PaidDate: datePtr(2024, 1, 15), Status: "late", LateDays: intPtr(5)},
		{InstallmentID: "i2", UserID: "u1", DueDate: datePtr(2024, 2, 10), Status: "due"},
	}

	r := row("u1", anchor)
	AddRepaymentFeatures([]*domain.FeatureRow{r}, installments)

	if r.LatePaymentRate90d == nil || *r.LatePaymentRate90d != 1.0 {
		t.Errorf("late_payment_rate_90d = %v, want 1.0", r.LatePaymentRate90d)
	}
	if r.AvgLateDays90d == nil || *r.AvgLateDays90d != 5.0 {
		t.Errorf("avg_late_days_90d = %v, want 5.0", r.AvgLateDays90d)
	}
	if r.MaxLateDays90d == nil || *r.MaxLateDays90d != 5.0 {
		t.Errorf("max_late_days_90d = %v, want 5.0", r.MaxLateDays90d)
	}
	if r.OnTimePaymentRate90d == nil || *r.OnTimePaymentRate90d != 0.0 {
		t.Errorf("on_time_payment_rate_90d = %v, want 0.0", r.OnTimePaymentRate90d)
	}
	// The Feb obligation itself is still open at the anchor.
	if r.NumActivePlans != 1 {
		t.Errorf("num_active_plans = %d, want 1", r.NumActivePlans)
	}
}

// No obligations in the window must yield missing rates, not 0; one
// on-time obligation must yield 0, not missing.
func TestRepaymentMissingVsZero(t *testing.T) {
	anchor := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	empty := row("u-nohistory", anchor)
	AddRepaymentFeatures([]*domain.FeatureRow{empty}, nil)
	if empty.LatePaymentRate90d != nil {
		t.Errorf("no history: late_payment_rate_90d = %v, want missing", *empty.LatePaymentRate90d)
	}
	if empty.AvgLateDays90d != nil || empty.MaxLateDays90d != nil || empty.OnTimePaymentRate90d != nil {
		t.Error("no history: all windowed repayment columns should be missing")
	}

	onTime := row("u1", anchor)
	installments := []*domain.Installment{
		{InstallmentID: "i1", UserID: "u1", DueDate: datePtr(2024, 1, 10), PaidDate: datePtr(2024, 1, 10), Status: "paid"},
	}
	AddRepaymentFeatures([]*domain.FeatureRow{onTime}, installments)
	if onTime.LatePaymentRate90d == nil || *onTime.LatePaymentRate90d != 0.0 {
		t.Errorf("one on-time obligation: late_payment_rate_90d = %v, want 0.0", onTime.LatePaymentRate90d)
	}
	if onTime.AvgLateDays90d == nil || *onTime.AvgLateDays90d != 0.0 {
		t.Errorf("one on-time obligation: avg_late_days_90d = %v, want 0.0", onTime.AvgLateDays90d)
	}
}

// Exposure follows the currently-outstanding rule, not the lookback
// window: an old unpaid obligation far outside 90 days still counts.
func TestExposureExemptFromLookback(t *testing.T) {
	anchor := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	installments := []*domain.Installment{
		// Due over a year before the anchor, never paid.
		{InstallmentID: "old", UserID: "u1", DueDate: datePtr(2023, 2, 1), Status: "due"},
	}

	r := row("u1", anchor)
	AddRepaymentFeatures([]*domain.FeatureRow{r}, installments)

	if r.NumActivePlans != 1 {
		t.Errorf("num_active_plans = %d, want 1 (outstanding rule has no lookback bound)", r.NumActivePlans)
	}
	// But it contributes nothing to the 90d window.
	if r.LatePaymentRate90d != nil {
		t.Errorf("late_payment_rate_90d = %v, want missing", *r.LatePaymentRate90d)
	}
}

// An obligation paid after the anchor is still outstanding at the anchor.
func TestExposurePaidAfterAnchor(t *testing.T) {
	anchor := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	installments := []*domain.Installment{
		{InstallmentID: "i1", UserID: "u1", DueDate: datePtr(2024, 2, 5), PaidDate: datePtr(2024, 2, 20), Status: "paid"},
	}

	r := row("u1", anchor)
	AddRepaymentFeatures([]*domain.FeatureRow{r}, installments)

	if r.NumActivePlans != 1 {
		t.Errorf("num_active_plans = %d, want 1 (paid after anchor is still open at anchor)", r.NumActivePlans)
	}
}

func TestRepaymentSeverityScore(t *testing.T) {
	anchor := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	installments := []*domain.Installment{
		{InstallmentID: "i1", UserID: "u1", DueDate: datePtr(2024, 1, 10), PaidDate: datePtr(2024, 1, 15), Status: "late", LateDays: intPtr(5)},
	}

	r := row("u1", anchor)
	AddRepaymentFeatures([]*domain.FeatureRow{r}, installments)

	// 1.5*1.0 + 0.5*log1p(5) + 0.2*log1p(5) + 0.8*(1-0)
	want := 1.5 + 0.7*log1p(5) + 0.8
	if diff := r.RepaymentSeverityScore - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("repayment_severity_score = %v, want %v", r.RepaymentSeverityScore, want)
	}
}
