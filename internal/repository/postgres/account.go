package postgres

import (
	"context"
	"fmt"

	"auth-gateway/internal/domain/account"
	apperrors "auth-gateway/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	errAccountNotFound = "account not found"

	accountColumns = `
		a.id, a.name, a.email, a.password_hash, a.created_at, a.updated_at,
		COALESCE(array_agg(r.role) FILTER (WHERE r.role IS NOT NULL), '{}')
	`
	accountFrom = `
		FROM accounts a
		LEFT JOIN account_roles r ON r.account_id = a.id
	`
)

// AccountRepository is the pgx-backed user directory adapter. Roles live in
// a separate account_roles table and are aggregated per read, so every
// lookup sees the current role set.
type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	query := `SELECT` + accountColumns + accountFrom + `WHERE a.email = $1 GROUP BY a.id`
	return r.getOne(ctx, query, email)
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT` + accountColumns + accountFrom + `WHERE a.id = $1 GROUP BY a.id`
	return r.getOne(ctx, query, id)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg any) (*account.Account, error) {
	a := &account.Account{}
	var roles []string

	err := r.db.Pool.QueryRow(ctx, query, arg).Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.PasswordHash,
		&a.CreatedAt,
		&a.UpdatedAt,
		&roles,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errAccountNotFound)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	a.Roles = make([]account.Role, 0, len(roles))
	for _, role := range roles {
		a.Roles = append(a.Roles, account.Role(role))
	}

	return a, nil
}

// UpdatePasswordHash overwrites the stored credential hash. The single
// UPDATE is the atomic read-modify-write the reset flow relies on.
func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	query := `
		UPDATE accounts
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Pool.Exec(ctx, query, id, hash)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errAccountNotFound)
	}

	return nil
}
