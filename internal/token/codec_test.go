package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"fooddelivery/internal/domain"
)

func newTestCodec() *Codec {
	return NewCodec(Config{
		Issuer:     "fooddelivery-test",
		SigningKey: []byte("test-signing-key"),
	})
}

func TestIssueAndDecode(t *testing.T) {
	c := newTestCodec()

	tok, err := c.Issue("user-1", domain.RoleAdmin, "", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := c.Decode(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected subject user-1, got %q", claims.UserID)
	}
	if claims.Role != string(domain.RoleAdmin) {
		t.Fatalf("expected role Admin, got %q", claims.Role)
	}
	if claims.Purpose != "" {
		t.Fatalf("expected no purpose, got %q", claims.Purpose)
	}
}

func TestDecodePreservesPurpose(t *testing.T) {
	c := newTestCodec()

	tok, err := c.Issue("user-1", "", PurposePasswordReset, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := c.Decode(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.Purpose != PurposePasswordReset {
		t.Fatalf("expected purpose %q, got %q", PurposePasswordReset, claims.Purpose)
	}
	if claims.Role != "" {
		t.Fatalf("expected empty role, got %q", claims.Role)
	}
}

func TestDecodeExpired(t *testing.T) {
	c := newTestCodec()

	tok, err := c.Issue("user-1", domain.RoleUser, "", -2*time.Second)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := c.Decode(tok); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestDecodeExpiryBoundary(t *testing.T) {
	c := newTestCodec()

	// Still inside the window: must decode.
	tok, err := c.Issue("user-1", domain.RoleUser, "", 5*time.Second)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := c.Decode(tok); err != nil {
		t.Fatalf("token inside window rejected: %v", err)
	}
}

func TestDecodeTampered(t *testing.T) {
	c := newTestCodec()

	tok, err := c.Issue("user-1", domain.RoleUser, "", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip a character in the payload segment; the signature no longer matches.
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := c.Decode(tampered); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	c := newTestCodec()

	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c", "...."} {
		if _, err := c.Decode(tok); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("input %q: expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}

func TestDecodeWrongKey(t *testing.T) {
	c := newTestCodec()
	other := NewCodec(Config{Issuer: "fooddelivery-test", SigningKey: []byte("different-key")})

	tok, err := other.Issue("user-1", domain.RoleUser, "", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := c.Decode(tok); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestDecodeWrongIssuer(t *testing.T) {
	c := newTestCodec()
	other := NewCodec(Config{Issuer: "someone-else", SigningKey: []byte("test-signing-key")})

	tok, err := other.Issue("user-1", domain.RoleUser, "", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := c.Decode(tok); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
