package auth

import (
	"context"
	"strings"

	"auth-gateway/internal/domain/account"
	"auth-gateway/internal/repository"

	"github.com/google/uuid"
)

// Principal is the resolved identity for one request: who the caller is and
// which roles they hold right now. It is built fresh per request and never
// persisted.
type Principal struct {
	ID    uuid.UUID
	Email string
	Roles []account.Role
}

func (p *Principal) HasRole(role account.Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p *Principal) IsAdmin() bool {
	return p.HasRole(account.RoleAdmin)
}

// PrincipalResolver turns a verified token subject back into a Principal.
// Roles are always read from the directory rather than trusted from token
// claims, so a role revoked after mint takes effect on the next request.
type PrincipalResolver struct {
	accounts repository.AccountRepository
}

func NewPrincipalResolver(accounts repository.AccountRepository) *PrincipalResolver {
	return &PrincipalResolver{accounts: accounts}
}

func (r *PrincipalResolver) Resolve(ctx context.Context, email string) (*Principal, error) {
	acct, err := r.accounts.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	roles := make([]account.Role, len(acct.Roles))
	copy(roles, acct.Roles)

	return &Principal{
		ID:    acct.ID,
		Email: acct.Email,
		Roles: roles,
	}, nil
}
