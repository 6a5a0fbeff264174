package domain

import "time"

// Installment is the obligation under prediction: one scheduled repayment
// of an order. Corresponds to the installments table in the silver layer.
type Installment struct {
	InstallmentID     string
	OrderID           string
	UserID            string
	MerchantID        string
	InstallmentNumber int
	DueDate           *time.Time // nullable
	PaidDate          *time.Time // nullable, nil while unpaid
	Status            string     // due | paid | late
	LateDays          *int       // authoritative when present, else derived from paid_date - due_date
}

// Installment status values. "unpaid" is accepted as an upstream spelling
// of "due" (both mean unresolved).
const (
	InstallmentStatusDue    = "due"
	InstallmentStatusUnpaid = "unpaid"
	InstallmentStatusPaid   = "paid"
	InstallmentStatusLate   = "late"
)

// LateDaysFinal returns the authoritative lateness in days: the upstream
// late_days column when present, otherwise paid_date - due_date. The second
// return value is false when neither source is available.
func (i *Installment) LateDaysFinal() (int, bool) {
	if i.LateDays != nil {
		return *i.LateDays, true
	}
	if i.PaidDate != nil && i.DueDate != nil {
		return int(i.PaidDate.Sub(*i.DueDate).Hours() / 24), true
	}
	return 0, false
}

// OutstandingAt reports whether the obligation is still open at the given
// moment: not yet paid, or paid only after it. This is the live-exposure
// rule and deliberately has no lookback bound.
func (i *Installment) OutstandingAt(at time.Time) bool {
	if i.DueDate == nil {
		return false
	}
	return i.PaidDate == nil || i.PaidDate.After(at)
}
