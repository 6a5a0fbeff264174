package postgres

import (
	"context"
	"fmt"
	"time"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// PaymentStore implements storage.PaymentStore using PostgreSQL.
type PaymentStore struct {
	pool *Pool
}

// NewPaymentStore creates a new PaymentStore.
func NewPaymentStore(pool *Pool) *PaymentStore {
	return &PaymentStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PaymentStore = (*PaymentStore)(nil)

// InsertBulk adds multiple payments atomically. Fails entire batch on any duplicate.
func (s *PaymentStore) InsertBulk(ctx context.Context, payments []*domain.Payment) (err error) {
	defer observeQuery("payments.insert_bulk", time.Now(), &err)

	if len(payments) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO payments (
			payment_id, installment_id, user_id, amount, payment_date
		) VALUES ($1, $2, $3, $4, $5)
	`

	for _, p := range payments {
		if p == nil || p.PaymentID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query,
			p.PaymentID,
			p.InstallmentID,
			p.UserID,
			p.Amount,
			p.PaymentDate,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert payment in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetAll retrieves all payments, ordered by payment_id ASC.
func (s *PaymentStore) GetAll(ctx context.Context) (_ []*domain.Payment, err error) {
	defer observeQuery("payments.get_all", time.Now(), &err)

	query := `
		SELECT payment_id, installment_id, user_id, amount, payment_date
		FROM payments
		ORDER BY payment_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all payments: %w", err)
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(
			&p.PaymentID,
			&p.InstallmentID,
			&p.UserID,
			&p.Amount,
			&p.PaymentDate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}

	return payments, nil
}
