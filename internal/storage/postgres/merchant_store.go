package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// MerchantStore implements storage.MerchantStore using PostgreSQL.
type MerchantStore struct {
	pool *Pool
}

// NewMerchantStore creates a new MerchantStore.
func NewMerchantStore(pool *Pool) *MerchantStore {
	return &MerchantStore{pool: pool}
}

// Compile-time interface check.
var _ storage.MerchantStore = (*MerchantStore)(nil)

// InsertBulk adds multiple merchants atomically. Fails entire batch on any duplicate.
func (s *MerchantStore) InsertBulk(ctx context.Context, merchants []*domain.Merchant) (err error) {
	defer observeQuery("merchants.insert_bulk", time.Now(), &err)

	if len(merchants) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO merchants (
			merchant_id, merchant_name, category, city, status
		) VALUES ($1, $2, $3, $4, $5)
	`

	for _, m := range merchants {
		if m == nil || m.MerchantID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query,
			m.MerchantID,
			m.MerchantName,
			m.Category,
			m.City,
			m.Status,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert merchant in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByID retrieves a merchant. Returns ErrNotFound if not exists.
func (s *MerchantStore) GetByID(ctx context.Context, merchantID string) (_ *domain.Merchant, err error) {
	defer observeQuery("merchants.get_by_id", time.Now(), &err)

	query := `
		SELECT merchant_id, merchant_name, category, city, status
		FROM merchants
		WHERE merchant_id = $1
	`

	var m domain.Merchant
	err = s.pool.QueryRow(ctx, query, merchantID).Scan(
		&m.MerchantID,
		&m.MerchantName,
		&m.Category,
		&m.City,
		&m.Status,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get merchant by id: %w", err)
	}

	return &m, nil
}

// GetAll retrieves all merchants, ordered by merchant_id ASC.
func (s *MerchantStore) GetAll(ctx context.Context) (_ []*domain.Merchant, err error) {
	defer observeQuery("merchants.get_all", time.Now(), &err)

	query := `
		SELECT merchant_id, merchant_name, category, city, status
		FROM merchants
		ORDER BY merchant_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all merchants: %w", err)
	}
	defer rows.Close()

	return scanMerchants(rows)
}

// scanMerchants scans multiple rows into a slice of Merchant.
func scanMerchants(rows pgx.Rows) ([]*domain.Merchant, error) {
	var merchants []*domain.Merchant

	for rows.Next() {
		var m domain.Merchant

		err := rows.Scan(
			&m.MerchantID,
			&m.MerchantName,
			&m.Category,
			&m.City,
			&m.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan merchant row: %w", err)
		}

		merchants = append(merchants, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merchant rows: %w", err)
	}

	return merchants, nil
}
