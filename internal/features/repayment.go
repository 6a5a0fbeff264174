package features

import (
	"time"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/window"
)

// repaymentRecord is one installment prepared for history aggregation:
// lateness resolved once, clipped at zero (early payment is not negative
// lateness).
type repaymentRecord struct {
	userID  string
	dueDate *time.Time
	latePos float64
}

// AddRepaymentFeatures appends repayment-history columns over a 90-day
// due-date window, plus the unwindowed exposure count. The full
// installments table is used, including unresolved obligations: they carry
// no lateness signal yet (counted as on-time in the window) but they are
// exactly what exposure must see.
func AddRepaymentFeatures(rows []*domain.FeatureRow, installments []*domain.Installment) {
	records := make([]repaymentRecord, 0, len(installments))
	for _, inst := range installments {
		if inst.DueDate == nil {
			continue
		}
		latePos := 0.0
		if lateDays, ok := inst.LateDaysFinal(); ok && lateDays > 0 {
			latePos = float64(lateDays)
		}
		records = append(records, repaymentRecord{userID: inst.UserID, dueDate: inst.DueDate, latePos: latePos})
	}

	for _, r := range rows {
		iv := window.Interval{Anchor: r.AnchorDate, Days: RepaymentWindowDays}
		hist := window.Collect(records, r.UserID, iv,
			func(rec repaymentRecord) string { return rec.userID },
			func(rec repaymentRecord) *time.Time { return rec.dueDate },
		)

		if len(hist) > 0 {
			lateCount := 0
			latePos := make([]float64, len(hist))
			var lateOnly []float64
			for i, rec := range hist {
				latePos[i] = rec.latePos
				if rec.latePos > 0 {
					lateCount++
					lateOnly = append(lateOnly, rec.latePos)
				}
			}

			r.LatePaymentRate90d = window.Rate(lateCount, len(hist))
			r.OnTimePaymentRate90d = window.Rate(len(hist)-lateCount, len(hist))
			r.MaxLateDays90d = window.Max(latePos)
			if lateCount > 0 {
				r.AvgLateDays90d = window.Mean(lateOnly)
			} else {
				zero := 0.0
				r.AvgLateDays90d = &zero
			}
		}
		// Empty window: all four stay nil. No repayment history is a
		// different signal from a clean one.

		// Exposure: obligations still open at the anchor, no lookback bound.
		active := 0
		for _, inst := range installments {
			if inst.UserID == r.UserID && inst.OutstandingAt(r.AnchorDate) {
				active++
			}
		}
		r.NumActivePlans = active

		r.RepaymentSeverityScore = 1.5*orZero(r.LatePaymentRate90d) +
			0.5*log1p(orZero(r.AvgLateDays90d)) +
			0.2*log1p(orZero(r.MaxLateDays90d)) +
			0.8*(1-orZero(r.OnTimePaymentRate90d))
		r.LoadPressureScore = log1p(float64(r.NumActivePlans))
	}
}
