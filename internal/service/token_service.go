package service

import (
	"time"

	"fooddelivery/internal/domain"
	"fooddelivery/internal/token"
)

// TokenCodec produces and consumes the signed credentials minted for
// sessions, email verification and password resets.
type TokenCodec interface {
	Issue(userID string, role domain.Role, purpose string, ttl time.Duration) (string, error)
	Decode(tokenStr string) (*token.Claims, error)
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}
