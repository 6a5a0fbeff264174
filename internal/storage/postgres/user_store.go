package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// UserStore implements storage.UserStore using PostgreSQL.
type UserStore struct {
	pool *Pool
}

// NewUserStore creates a new UserStore.
func NewUserStore(pool *Pool) *UserStore {
	return &UserStore{pool: pool}
}

// Compile-time interface check.
var _ storage.UserStore = (*UserStore)(nil)

// InsertBulk adds multiple users atomically. Fails entire batch on any duplicate.
func (s *UserStore) InsertBulk(ctx context.Context, users []*domain.User) (err error) {
	defer observeQuery("users.insert_bulk", time.Now(), &err)

	if len(users) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO users (
			user_id, signup_date, kyc_level, city, account_status
		) VALUES ($1, $2, $3, $4, $5)
	`

	for _, u := range users {
		if u == nil || u.UserID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query,
			u.UserID,
			u.SignupDate,
			u.KYCLevel,
			u.City,
			u.AccountStatus,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert user in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByID retrieves a user. Returns ErrNotFound if not exists.
func (s *UserStore) GetByID(ctx context.Context, userID string) (_ *domain.User, err error) {
	defer observeQuery("users.get_by_id", time.Now(), &err)

	query := `
		SELECT user_id, signup_date, kyc_level, city, account_status
		FROM users
		WHERE user_id = $1
	`

	var u domain.User
	err = s.pool.QueryRow(ctx, query, userID).Scan(
		&u.UserID,
		&u.SignupDate,
		&u.KYCLevel,
		&u.City,
		&u.AccountStatus,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &u, nil
}

// GetAll retrieves all users, ordered by user_id ASC.
func (s *UserStore) GetAll(ctx context.Context) (_ []*domain.User, err error) {
	defer observeQuery("users.get_all", time.Now(), &err)

	query := `
		SELECT user_id, signup_date, kyc_level, city, account_status
		FROM users
		ORDER BY user_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// scanUsers scans multiple rows into a slice of User.
func scanUsers(rows pgx.Rows) ([]*domain.User, error) {
	var users []*domain.User

	for rows.Next() {
		var u domain.User

		err := rows.Scan(
			&u.UserID,
			&u.SignupDate,
			&u.KYCLevel,
			&u.City,
			&u.AccountStatus,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}

		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}
