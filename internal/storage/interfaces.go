// Package storage defines the store interfaces for the silver event tables
// and the gold feature rows. Memory, Postgres and ClickHouse
// implementations live in sibling packages.
package storage

import (
	"context"

	"bnpl-risk-lab/internal/domain"
)

// UserStore provides access to the users table.
type UserStore interface {
	// InsertBulk adds multiple users. Returns ErrDuplicateKey if a user_id exists.
	InsertBulk(ctx context.Context, users []*domain.User) error

	// GetByID retrieves a user. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, userID string) (*domain.User, error)

	// GetAll retrieves all users, ordered by user_id ASC.
	GetAll(ctx context.Context) ([]*domain.User, error)
}

// MerchantStore provides access to the merchants table.
type MerchantStore interface {
	InsertBulk(ctx context.Context, merchants []*domain.Merchant) error
	GetByID(ctx context.Context, merchantID string) (*domain.Merchant, error)
	GetAll(ctx context.Context) ([]*domain.Merchant, error)
}

// OrderStore provides access to the orders table.
type OrderStore interface {
	InsertBulk(ctx context.Context, orders []*domain.Order) error

	// GetByUserID retrieves all orders for a user, ordered by order_id ASC.
	GetByUserID(ctx context.Context, userID string) ([]*domain.Order, error)

	GetAll(ctx context.Context) ([]*domain.Order, error)
}

// InstallmentStore provides access to the installments table.
type InstallmentStore interface {
	InsertBulk(ctx context.Context, installments []*domain.Installment) error

	// GetByUserID retrieves all installments for a user, ordered by installment_id ASC.
	GetByUserID(ctx context.Context, userID string) ([]*domain.Installment, error)

	GetAll(ctx context.Context) ([]*domain.Installment, error)
}

// PaymentStore provides access to the payments table.
type PaymentStore interface {
	InsertBulk(ctx context.Context, payments []*domain.Payment) error
	GetAll(ctx context.Context) ([]*domain.Payment, error)
}

// DisputeStore provides access to the disputes table.
type DisputeStore interface {
	InsertBulk(ctx context.Context, disputes []*domain.Dispute) error
	GetAll(ctx context.Context) ([]*domain.Dispute, error)
}

// RefundStore provides access to the refunds table.
type RefundStore interface {
	InsertBulk(ctx context.Context, refunds []*domain.Refund) error
	GetAll(ctx context.Context) ([]*domain.Refund, error)
}

// CheckoutEventStore provides access to the checkout_events table.
type CheckoutEventStore interface {
	InsertBulk(ctx context.Context, events []*domain.CheckoutEvent) error
	GetAll(ctx context.Context) ([]*domain.CheckoutEvent, error)
}

// FeatureRowStore provides access to the gold feature_rows table.
type FeatureRowStore interface {
	// InsertBulk adds multiple rows. Fails entire batch on duplicate row_id.
	InsertBulk(ctx context.Context, rows []*domain.FeatureRow) error

	// GetByRunID retrieves all rows produced by one build, ordered by
	// installment_id ASC.
	GetByRunID(ctx context.Context, runID string) ([]*domain.FeatureRow, error)

	// GetByCohort retrieves all rows of one cohort, ordered by
	// installment_id ASC.
	GetByCohort(ctx context.Context, c domain.Cohort) ([]*domain.FeatureRow, error)
}
