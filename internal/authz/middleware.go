// Package authz holds the request-time authentication pipeline and the role
// gate layered on top of it.
package authz

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fooddelivery/internal/domain"
	"fooddelivery/internal/observability/metrics"
	obsmw "fooddelivery/internal/observability/middleware"
	"fooddelivery/internal/service"

	"github.com/google/uuid"
)

// Principal is the authenticated identity attached to the request context.
// Role is the snapshot carried by the token; a promotion or demotion does not
// revoke tokens already in flight.
type Principal struct {
	UserID domain.UserID
	Role   domain.Role
}

type principalKey struct{}

func contextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the identity attached by the Authenticate middleware.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// UserSource is the directory lookup the pipeline needs.
type UserSource interface {
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
}

type Middleware struct {
	tokens service.TokenCodec
	users  UserSource
}

func NewMiddleware(tokens service.TokenCodec, users UserSource) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// tokenFromRequest extracts the credential from the Authorization header or,
// for browser navigation, from the token cookie. Header wins if both present.
func tokenFromRequest(r *http.Request) string {
	raw := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[len("Bearer "):])
	}
	if c, err := r.Cookie("token"); err == nil {
		return c.Value
	}
	return ""
}

// Authenticate validates the presented token against the directory and
// attaches a Principal, or rejects the request. It is read-only and safe to
// run on every request.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := "success"
		defer func() {
			metrics.AuthAttemptsTotal.WithLabelValues(result).Inc()
		}()
		reqID := obsmw.RequestIDFromContext(r.Context())

		tokenStr := tokenFromRequest(r)
		if tokenStr == "" {
			result = "failure"
			writeMessage(w, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := m.tokens.Decode(tokenStr)
		if err != nil {
			result = "failure"
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			slog.Warn("auth invalid token", "error", err, "request_id", reqID)
			return
		}
		// Purpose-tagged tokens are single-use credentials, not sessions.
		if claims.Purpose != "" {
			result = "failure"
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			result = "failure"
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		u, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			result = "failure"
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if !u.IsVerified {
			result = "failure"
			writeMessage(w, http.StatusForbidden, "Email not verified")
			return
		}
		if u.Expired(time.Now().UTC()) {
			result = "failure"
			writeMessage(w, http.StatusForbidden, "Account expired")
			return
		}

		p := Principal{UserID: userID, Role: domain.Role(claims.Role)}
		next.ServeHTTP(w, r.WithContext(contextWithPrincipal(r.Context(), p)))
	})
}

// RequireRole allows the request only when the principal attached by
// Authenticate carries the required role. It never runs the pipeline itself;
// mount it strictly after Authenticate.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if p.Role != role {
				writeMessage(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Message string `json:"message"`
	}{msg})
}
