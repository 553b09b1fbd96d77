package repository

import (
	"context"

	"auth-gateway/internal/domain/account"

	"github.com/google/uuid"
)

// AccountRepository is the narrow view of the user directory this gateway
// needs: credential and role reads, plus the single write performed by the
// password-reset flow. Atomicity of that write is the directory's concern.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*account.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}
