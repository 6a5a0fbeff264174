package domain

import "time"

// CheckoutEvent represents one step of the checkout funnel.
// Corresponds to the checkout_events table in the silver layer.
type CheckoutEvent struct {
	EventID   string
	UserID    string
	OrderID   string
	EventType string // checkout_start | checkout_success | checkout_abandon
	EventDate *time.Time // nullable
}

// Checkout event types.
const (
	CheckoutStart   = "checkout_start"
	CheckoutSuccess = "checkout_success"
	CheckoutAbandon = "checkout_abandon"
)
