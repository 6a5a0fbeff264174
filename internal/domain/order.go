package domain

import "time"

// Order represents a purchase placed through the platform.
// Corresponds to the orders table in the silver layer.
type Order struct {
	OrderID    string
	UserID     string
	MerchantID string
	Amount     float64
	Currency   string
	OrderDate  *time.Time // nullable
	Status     string
}
