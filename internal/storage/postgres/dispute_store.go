package postgres

import (
	"context"
	"fmt"
	"time"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// DisputeStore implements storage.DisputeStore using PostgreSQL.
type DisputeStore struct {
	pool *Pool
}

// NewDisputeStore creates a new DisputeStore.
func NewDisputeStore(pool *Pool) *DisputeStore {
	return &DisputeStore{pool: pool}
}

// Compile-time interface check.
var _ storage.DisputeStore = (*DisputeStore)(nil)

// InsertBulk adds multiple disputes atomically. Fails entire batch on any duplicate.
func (s *DisputeStore) InsertBulk(ctx context.Context, disputes []*domain.Dispute) (err error) {
	defer observeQuery("disputes.insert_bulk", time.Now(), &err)

	if len(disputes) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO disputes (
			dispute_id, user_id, merchant_id, order_id, amount, dispute_date
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, d := range disputes {
		if d == nil || d.DisputeID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query,
			d.DisputeID,
			d.UserID,
			d.MerchantID,
			d.OrderID,
			d.Amount,
			d.DisputeDate,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert dispute in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetAll retrieves all disputes, ordered by dispute_id ASC.
func (s *DisputeStore) GetAll(ctx context.Context) (_ []*domain.Dispute, err error) {
	defer observeQuery("disputes.get_all", time.Now(), &err)

	query := `
		SELECT dispute_id, user_id, merchant_id, order_id, amount, dispute_date
		FROM disputes
		ORDER BY dispute_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all disputes: %w", err)
	}
	defer rows.Close()

	var disputes []*domain.Dispute
	for rows.Next() {
		var d domain.Dispute
		err := rows.Scan(
			&d.DisputeID,
			&d.UserID,
			&d.MerchantID,
			&d.OrderID,
			&d.Amount,
			&d.DisputeDate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan dispute row: %w", err)
		}
		disputes = append(disputes, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dispute rows: %w", err)
	}

	return disputes, nil
}
