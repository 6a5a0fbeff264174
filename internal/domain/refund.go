package domain

import "time"

// Refund represents money returned to a user by a merchant.
// Corresponds to the refunds table in the silver layer.
type Refund struct {
	RefundID   string
	UserID     string
	MerchantID string
	OrderID    string
	Amount     float64
	RefundDate *time.Time // nullable
}
