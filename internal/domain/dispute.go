package domain

import "time"

// Dispute represents a payment dispute opened by a user against a merchant.
// Corresponds to the disputes table in the silver layer.
type Dispute struct {
	DisputeID   string
	UserID      string
	MerchantID  string
	OrderID     string
	Amount      float64
	DisputeDate *time.Time // nullable
}
