package dataset

import (
	"context"
	"fmt"

	"bnpl-risk-lab/internal/storage"
)

// Stores bundles the silver-layer stores a snapshot is read from.
type Stores struct {
	Users          storage.UserStore
	Merchants      storage.MerchantStore
	Orders         storage.OrderStore
	Installments   storage.InstallmentStore
	Payments       storage.PaymentStore
	Disputes       storage.DisputeStore
	Refunds        storage.RefundStore
	CheckoutEvents storage.CheckoutEventStore
}

// FromStores reads every raw table from the silver stores into one snapshot.
func FromStores(ctx context.Context, s Stores) (*Snapshot, error) {
	snap := &Snapshot{}
	var err error

	if snap.Users, err = s.Users.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load %s: %w", TableUsers, err)
	}
	if snap.Merchants, err = s.Merchants.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load %s: %w", TableMerchants, err)
	}
	if snap.Orders, err = s.Orders.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load %s: %w", TableOrders, err)
	}
	if snap.Installments, err = s.Installments.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load %s: %w", TableInstallments, err)
	}
	if snap.Payments, err = s.Payments.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load %s: %w", TablePayments, err)
	}
	if snap.Disputes, err = s.Disputes.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load %s: %w", TableDisputes, err)
	}
	if snap.Refunds, err = s.Refunds.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load %s: %w", TableRefunds, err)
	}
	if snap.CheckoutEvents, err = s.CheckoutEvents.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load %s: %w", TableCheckoutEvents, err)
	}

	return snap, nil
}
