// Package token issues and verifies the signed, time-limited credentials
// used for sessions, email verification and password resets.
package token

import (
	"errors"
	"time"

	"fooddelivery/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// PurposePasswordReset marks a token as valid only for the reset-password
// completion step. Tokens carrying any purpose are rejected everywhere else.
const PurposePasswordReset = "password-reset"

type Config struct {
	Issuer     string
	SigningKey []byte // HS256 secret
}

type Claims struct {
	UserID  string `json:"userId"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// Codec is a pure function of its inputs and the signing secret; it holds no
// mutable state and is safe for concurrent use.
type Codec struct {
	cfg Config
}

func NewCodec(cfg Config) *Codec {
	return &Codec{cfg: cfg}
}

// Issue signs a token expiring at issue-time + ttl. Role and purpose are
// optional and omitted from the payload when empty.
func (c *Codec) Issue(userID string, role domain.Role, purpose string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:  userID,
		Role:    string(role),
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.cfg.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.cfg.SigningKey)
}

// Decode verifies the signature and expiry. Malformed input, a bad signature
// and a wrong issuer all surface as ErrTokenInvalid; an otherwise valid but
// expired token surfaces as ErrTokenExpired. Decode never panics on garbage.
func (c *Codec) Decode(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	tok, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return c.cfg.SigningKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !tok.Valid || claims.UserID == "" {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Issuer != c.cfg.Issuer {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
