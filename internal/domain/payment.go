package domain

import "time"

// Payment records money received against an installment.
// Corresponds to the payments table in the silver layer. Payments are a
// history-only input: no assembler derives feature columns from them.
type Payment struct {
	PaymentID     string
	InstallmentID string
	UserID        string
	Amount        float64
	PaymentDate   *time.Time // nullable
}
