package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleMasterAdmin Role = "MASTER_ADMIN"
	RoleEmployer    Role = "EMPLOYER"
	RoleCandidate   Role = "CANDIDATE"
)

// User is the authenticated principal. Token issuance lives outside this
// service; the auth middleware verifies the token and loads this row for the
// fresh role, organization and active state.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	Phone          string     `json:"phone"`
	Role           Role       `json:"role"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
