// Package dataset loads the raw silver-layer event tables into an
// immutable in-memory snapshot. A snapshot is read once per run and never
// refreshed while the run is in flight; recomputing features against a
// moving snapshot would break the point-in-time guarantee.
package dataset

import "bnpl-risk-lab/internal/domain"

// Raw table names as they appear in the silver layer.
const (
	TableUsers          = "users"
	TableMerchants      = "merchants"
	TableOrders         = "orders"
	TableInstallments   = "installments"
	TablePayments       = "payments"
	TableDisputes       = "disputes"
	TableRefunds        = "refunds"
	TableCheckoutEvents = "checkout_events"
)

// Snapshot holds every raw event table for one feature build. Assemblers
// treat all slices as read-only.
type Snapshot struct {
	Users          []*domain.User
	Merchants      []*domain.Merchant
	Orders         []*domain.Order
	Installments   []*domain.Installment
	Payments       []*domain.Payment
	Disputes       []*domain.Dispute
	Refunds        []*domain.Refund
	CheckoutEvents []*domain.CheckoutEvent
}
