package account

import (
	"time"

	"github.com/google/uuid"
)

// Role is a coarse-grained privilege tag attached to an account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// Account is a stored identity as held by the user directory. The gateway
// reads it to verify credentials and resolve roles; the only field it ever
// writes back is PasswordHash (password reset).
type Account struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole tests role-set membership.
func (a *Account) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
