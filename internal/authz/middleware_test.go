package authz

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fooddelivery/internal/domain"
	"fooddelivery/internal/store"
	"fooddelivery/internal/token"

	"github.com/google/uuid"
)

func newTestMiddleware(t *testing.T) (*Middleware, *store.MemoryUserStore, *token.Codec) {
	t.Helper()
	users := store.NewMemoryStore().Users()
	codec := token.NewCodec(token.Config{Issuer: "test", SigningKey: []byte("secret")})
	return NewMiddleware(codec, users), users, codec
}

func seedUser(t *testing.T, users *store.MemoryUserStore, verified bool, expiresAt *time.Time) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:         uuid.New(),
		Email:      "a@x.com",
		Role:       domain.RoleUser,
		IsVerified: verified,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now().UTC(),
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// probe records whether the inner handler ran and what principal it saw.
type probe struct {
	called    bool
	principal Principal
	hadOne    bool
}

func (p *probe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.principal, p.hadOne = PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func doAuth(m *Middleware, p *probe, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	m.Authenticate(p.handler()).ServeHTTP(rec, req)
	return rec
}

func TestAuthenticateNoToken(t *testing.T) {
	m, _, _ := newTestMiddleware(t)
	p := &probe{}
	rec := doAuth(m, p, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if p.called {
		t.Fatal("handler ran without a token")
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not json: %v", err)
	}
	if body.Message != "No token provided" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	m, _, _ := newTestMiddleware(t)
	p := &probe{}
	rec := doAuth(m, p, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer not-a-token")
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if p.called {
		t.Fatal("handler ran with a garbage token")
	}
}

func TestAuthenticateRejectsPurposeTokens(t *testing.T) {
	m, users, codec := newTestMiddleware(t)
	exp := time.Now().UTC().Add(time.Hour)
	u := seedUser(t, users, true, &exp)
	resetTok, _ := codec.Issue(u.ID.String(), "", token.PurposePasswordReset, time.Hour)

	p := &probe{}
	rec := doAuth(m, p, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+resetTok)
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("reset token must not open a session: got %d", rec.Code)
	}
	if p.called {
		t.Fatal("handler ran with a reset-purpose token")
	}
}

func TestAuthenticateAttachesPrincipal(t *testing.T) {
	m, users, codec := newTestMiddleware(t)
	exp := time.Now().UTC().Add(time.Hour)
	u := seedUser(t, users, true, &exp)
	tok, _ := codec.Issue(u.ID.String(), domain.RoleUser, "", time.Hour)

	p := &probe{}
	rec := doAuth(m, p, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !p.called || !p.hadOne {
		t.Fatal("principal not attached")
	}
	if p.principal.UserID != u.ID || p.principal.Role != domain.RoleUser {
		t.Fatalf("unexpected principal: %+v", p.principal)
	}
}

func TestAuthenticateCookieFallback(t *testing.T) {
	m, users, codec := newTestMiddleware(t)
	exp := time.Now().UTC().Add(time.Hour)
	u := seedUser(t, users, true, &exp)
	tok, _ := codec.Issue(u.ID.String(), domain.RoleUser, "", time.Hour)

	p := &probe{}
	rec := doAuth(m, p, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "token", Value: tok})
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("cookie credential rejected: %d", rec.Code)
	}
}

func TestAuthenticateHeaderWinsOverCookie(t *testing.T) {
	m, users, codec := newTestMiddleware(t)
	exp := time.Now().UTC().Add(time.Hour)
	u := seedUser(t, users, true, &exp)
	tok, _ := codec.Issue(u.ID.String(), domain.RoleUser, "", time.Hour)

	p := &probe{}
	rec := doAuth(m, p, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
		r.AddCookie(&http.Cookie{Name: "token", Value: "stale-garbage"})
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("header credential should win over the cookie: %d", rec.Code)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	m, _, codec := newTestMiddleware(t)
	tok, _ := codec.Issue(uuid.NewString(), domain.RoleUser, "", time.Hour)

	p := &probe{}
	rec := doAuth(m, p, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a deleted account, got %d", rec.Code)
	}
}

func TestAuthenticateUnverifiedUser(t *testing.T) {
	m, users, codec := newTestMiddleware(t)
	u := seedUser(t, users, false, nil)
	tok, _ := codec.Issue(u.ID.String(), domain.RoleUser, "", time.Hour)

	p := &probe{}
	rec := doAuth(m, p, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for an unverified account, got %d", rec.Code)
	}
	if p.called {
		t.Fatal("handler ran for an unverified account")
	}
}

func TestAuthenticateExpiredAccount(t *testing.T) {
	m, users, codec := newTestMiddleware(t)
	exp := time.Now().UTC().Add(-time.Minute)
	u := seedUser(t, users, true, &exp)
	tok, _ := codec.Issue(u.ID.String(), domain.RoleUser, "", time.Hour)

	p := &probe{}
	rec := doAuth(m, p, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for an expired account, got %d", rec.Code)
	}
	if p.called {
		t.Fatal("handler ran for an expired account")
	}
}

func TestRequireRoleWrongRole(t *testing.T) {
	m, users, codec := newTestMiddleware(t)
	exp := time.Now().UTC().Add(time.Hour)
	u := seedUser(t, users, true, &exp)
	tok, _ := codec.Issue(u.ID.String(), domain.RoleUser, "", time.Hour)

	p := &probe{}
	chain := m.Authenticate(RequireRole(domain.RoleAdmin)(p.handler()))
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	// Authenticated but not authorized: 403, not 401.
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if p.called {
		t.Fatal("handler ran past the role gate")
	}
}

func TestRequireRoleAdmin(t *testing.T) {
	m, users, codec := newTestMiddleware(t)
	exp := time.Now().UTC().Add(time.Hour)
	u := seedUser(t, users, true, &exp)
	tok, _ := codec.Issue(u.ID.String(), domain.RoleAdmin, "", time.Hour)

	p := &probe{}
	chain := m.Authenticate(RequireRole(domain.RoleAdmin)(p.handler()))
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !p.called {
		t.Fatal("handler never ran")
	}
}

func TestRequireRoleWithoutAuthenticate(t *testing.T) {
	p := &probe{}
	gate := RequireRole(domain.RoleAdmin)(p.handler())
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a principal, got %d", rec.Code)
	}
}
