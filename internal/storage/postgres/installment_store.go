package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// InstallmentStore implements storage.InstallmentStore using PostgreSQL.
type InstallmentStore struct {
	pool *Pool
}

// NewInstallmentStore creates a new InstallmentStore.
func NewInstallmentStore(pool *Pool) *InstallmentStore {
	return &InstallmentStore{pool: pool}
}

// Compile-time interface check.
var _ storage.InstallmentStore = (*InstallmentStore)(nil)

// InsertBulk adds multiple installments atomically. Fails entire batch on any duplicate.
func (s *InstallmentStore) InsertBulk(ctx context.Context, installments []*domain.Installment) (err error) {
	defer observeQuery("installments.insert_bulk", time.Now(), &err)

	if len(installments) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO installments (
			installment_id, order_id, user_id, merchant_id, installment_number,
			due_date, paid_date, status, late_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, inst := range installments {
		if inst == nil || inst.InstallmentID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query,
			inst.InstallmentID,
			inst.OrderID,
			inst.UserID,
			inst.MerchantID,
			inst.InstallmentNumber,
			inst.DueDate,
			inst.PaidDate,
			inst.Status,
			inst.LateDays,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert installment in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByUserID retrieves all installments for a user, ordered by installment_id ASC.
func (s *InstallmentStore) GetByUserID(ctx context.Context, userID string) (_ []*domain.Installment, err error) {
	defer observeQuery("installments.get_by_user", time.Now(), &err)

	query := `
		SELECT installment_id, order_id, user_id, merchant_id, installment_number,
		       due_date, paid_date, status, late_days
		FROM installments
		WHERE user_id = $1
		ORDER BY installment_id ASC
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get installments by user id: %w", err)
	}
	defer rows.Close()

	return scanInstallments(rows)
}

// GetAll retrieves all installments, ordered by installment_id ASC.
func (s *InstallmentStore) GetAll(ctx context.Context) (_ []*domain.Installment, err error) {
	defer observeQuery("installments.get_all", time.Now(), &err)

	query := `
		SELECT installment_id, order_id, user_id, merchant_id, installment_number,
		       due_date, paid_date, status, late_days
		FROM installments
		ORDER BY installment_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all installments: %w", err)
	}
	defer rows.Close()

	return scanInstallments(rows)
}

// scanInstallments scans multiple rows into a slice of Installment.
func scanInstallments(rows pgx.Rows) ([]*domain.Installment, error) {
	var installments []*domain.Installment

	for rows.Next() {
		var inst domain.Installment

		err := rows.Scan(
			&inst.InstallmentID,
			&inst.OrderID,
			&inst.UserID,
			&inst.MerchantID,
			&inst.InstallmentNumber,
			&inst.DueDate,
			&inst.PaidDate,
			&inst.Status,
			&inst.LateDays,
		)
		if err != nil {
			return nil, fmt.Errorf("scan installment row: %w", err)
		}

		installments = append(installments, &inst)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate installment rows: %w", err)
	}

	return installments, nil
}
