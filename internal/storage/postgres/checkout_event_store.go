package postgres

import (
	"context"
	"fmt"
	"time"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// CheckoutEventStore implements storage.CheckoutEventStore using PostgreSQL.
type CheckoutEventStore struct {
	pool *Pool
}

// NewCheckoutEventStore creates a new CheckoutEventStore.
func NewCheckoutEventStore(pool *Pool) *CheckoutEventStore {
	return &CheckoutEventStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CheckoutEventStore = (*CheckoutEventStore)(nil)

// InsertBulk adds multiple checkout events atomically. Fails entire batch on any duplicate.
func (s *CheckoutEventStore) InsertBulk(ctx context.Context, events []*domain.CheckoutEvent) (err error) {
	defer observeQuery("checkout_events.insert_bulk", time.Now(), &err)

	if len(events) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO checkout_events (
			event_id, user_id, order_id, event_type, event_date
		) VALUES ($1, $2, $3, $4, $5)
	`

	for _, e := range events {
		if e == nil || e.EventID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query,
			e.EventID,
			e.UserID,
			e.OrderID,
			e.EventType,
			e.EventDate,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert checkout event in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetAll retrieves all checkout events, ordered by event_id ASC.
func (s *CheckoutEventStore) GetAll(ctx context.Context) (_ []*domain.CheckoutEvent, err error) {
	defer observeQuery("checkout_events.get_all", time.Now(), &err)

	query := `
		SELECT event_id, user_id, order_id, event_type, event_date
		FROM checkout_events
		ORDER BY event_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all checkout events: %w", err)
	}
	defer rows.Close()

	var events []*domain.CheckoutEvent
	for rows.Next() {
		var e domain.CheckoutEvent
		err := rows.Scan(
			&e.EventID,
			&e.UserID,
			&e.OrderID,
			&e.EventType,
			&e.EventDate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan checkout event row: %w", err)
		}
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checkout event rows: %w", err)
	}

	return events, nil
}
