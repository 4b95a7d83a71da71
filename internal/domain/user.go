package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserID = uuid.UUID

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// User is the account record held by the directory. PasswordHash never
// leaves the store layer in any externally visible projection.
type User struct {
	ID           UserID
	Email        string
	PasswordHash string
	Role         Role
	IsVerified   bool
	// ExpiresAt is the account ttl. Nil until the email is verified;
	// access is denied once the current time passes it.
	ExpiresAt *time.Time
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the account ttl has passed. An account without a
// ttl (unverified) is not considered expired; the verified check handles it.
func (u *User) Expired(now time.Time) bool {
	return u.ExpiresAt != nil && now.After(*u.ExpiresAt)
}

// UserStats are the aggregate counts served on the admin dashboard.
type UserStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	VerifiedUsers    int64 `json:"verifiedUsers"`
	AdminUsers       int64 `json:"adminUsers"`
	ActiveUsers      int64 `json:"activeUsers"`
	NewUsersThisWeek int64 `json:"newUsersThisWeek"`
}
