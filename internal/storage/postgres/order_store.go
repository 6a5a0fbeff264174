package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// OrderStore implements storage.OrderStore using PostgreSQL.
type OrderStore struct {
	pool *Pool
}

// NewOrderStore creates a new OrderStore.
func NewOrderStore(pool *Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

// Compile-time interface check.
var _ storage.OrderStore = (*OrderStore)(nil)

// InsertBulk adds multiple orders atomically. Fails entire batch on any duplicate.
func (s *OrderStore) InsertBulk(ctx context.Context, orders []*domain.Order) (err error) {
	defer observeQuery("orders.insert_bulk", time.Now(), &err)

	if len(orders) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (
			order_id, user_id, merchant_id, amount, currency, order_date, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, o := range orders {
		if o == nil || o.OrderID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query,
			o.OrderID,
			o.UserID,
			o.MerchantID,
			o.Amount,
			o.Currency,
			o.OrderDate,
			o.Status,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert order in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByUserID retrieves all orders for a user, ordered by order_id ASC.
func (s *OrderStore) GetByUserID(ctx context.Context, userID string) (_ []*domain.Order, err error) {
	defer observeQuery("orders.get_by_user", time.Now(), &err)

	query := `
		SELECT order_id, user_id, merchant_id, amount, currency, order_date, status
		FROM orders
		WHERE user_id = $1
		ORDER BY order_id ASC
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get orders by user id: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// GetAll retrieves all orders, ordered by order_id ASC.
func (s *OrderStore) GetAll(ctx context.Context) (_ []*domain.Order, err error) {
	defer observeQuery("orders.get_all", time.Now(), &err)

	query := `
		SELECT order_id, user_id, merchant_id, amount, currency, order_date, status
		FROM orders
		ORDER BY order_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// scanOrders scans multiple rows into a slice of Order.
func scanOrders(rows pgx.Rows) ([]*domain.Order, error) {
	var orders []*domain.Order

	for rows.Next() {
		var o domain.Order

		err := rows.Scan(
			&o.OrderID,
			&o.UserID,
			&o.MerchantID,
			&o.Amount,
			&o.Currency,
			&o.OrderDate,
			&o.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}
