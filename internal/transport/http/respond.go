package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fooddelivery/internal/domain"
	"fooddelivery/internal/service/impl"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeAuthError maps lifecycle errors onto the response taxonomy. Unknown
// failures become a 500 with a generic body; nothing is propagated raw.
func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, impl.ErrMissingEmailOrPassword),
		errors.Is(err, impl.ErrPasswordTooShort),
		errors.Is(err, impl.ErrMissingEmail),
		errors.Is(err, impl.ErrMissingTokenOrPassword),
		errors.Is(err, impl.ErrMissingFields):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeMessage(w, http.StatusConflict, "User exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenExpired):
		writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, domain.ErrEmailNotVerified):
		writeMessage(w, http.StatusForbidden, "Email not verified")
	case errors.Is(err, domain.ErrAccountExpired):
		writeMessage(w, http.StatusForbidden, "Account expired")
	case errors.Is(err, domain.ErrSelfDemotion):
		writeMessage(w, http.StatusForbidden, "You cannot demote yourself")
	case errors.Is(err, domain.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	default:
		slog.Error("internal error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, impl.ErrMissingFields), errors.Is(err, domain.ErrInvalidStatus):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateCategory):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrFoodNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("internal error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
