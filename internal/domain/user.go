package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is a user's permission tier. Immutable for authorization purposes
// within a session.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleStoreAdmin Role = "store_admin"
	RoleUser       Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleSuperAdmin || r == RoleStoreAdmin || r == RoleUser
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is a server-side record of an opaque bearer token. Only the
// SHA-256 fingerprint of the token is stored.
type Session struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Fingerprint []byte
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Revoked     bool
}

func (s *Session) Expired(now time.Time) bool {
	return s.Revoked || now.After(s.ExpiresAt)
}
