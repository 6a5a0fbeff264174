package postgres

import (
	"context"
	"fmt"
	"time"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// RefundStore implements storage.RefundStore using PostgreSQL.
type RefundStore struct {
	pool *Pool
}

// NewRefundStore creates a new RefundStore.
func NewRefundStore(pool *Pool) *RefundStore {
	return &RefundStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RefundStore = (*RefundStore)(nil)

// InsertBulk adds multiple refunds atomically. Fails entire batch on any duplicate.
func (s *RefundStore) InsertBulk(ctx context.Context, refunds []*domain.Refund) (err error) {
	defer observeQuery("refunds.insert_bulk", time.Now(), &err)

	if len(refunds) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO refunds (
			refund_id, user_id, merchant_id, order_id, amount, refund_date
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, r := range refunds {
		if r == nil || r.RefundID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query,
			r.RefundID,
			r.UserID,
			r.MerchantID,
			r.OrderID,
			r.Amount,
			r.RefundDate,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert refund in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetAll retrieves all refunds, ordered by refund_id ASC.
func (s *RefundStore) GetAll(ctx context.Context) (_ []*domain.Refund, err error) {
	defer observeQuery("refunds.get_all", time.Now(), &err)

	query := `
		SELECT refund_id, user_id, merchant_id, order_id, amount, refund_date
		FROM refunds
		ORDER BY refund_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all refunds: %w", err)
	}
	defer rows.Close()

	var refunds []*domain.Refund
	for rows.Next() {
		var r domain.Refund
		err := rows.Scan(
			&r.RefundID,
			&r.UserID,
			&r.MerchantID,
			&r.OrderID,
			&r.Amount,
			&r.RefundDate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan refund row: %w", err)
		}
		refunds = append(refunds, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate refund rows: %w", err)
	}

	return refunds, nil
}
