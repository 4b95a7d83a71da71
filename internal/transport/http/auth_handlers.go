package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"fooddelivery/internal/authz"
	"fooddelivery/internal/domain"
	"fooddelivery/internal/dto"
	"fooddelivery/internal/service"

	"github.com/go-chi/chi/v5"
)

type authHandler struct {
	auth     service.AuthService
	frontend string // base URL the verification endpoints redirect to
}

func (h *authHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Bad request")
		return
	}
	if err := h.auth.Signup(r.Context(), req); err != nil {
		writeAuthError(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Success")
}

func (h *authHandler) verifyUser(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if err := h.auth.VerifyUser(r.Context(), token); err != nil {
		writeAuthError(w, err)
		return
	}
	http.Redirect(w, r, h.frontend+"/sign-in", http.StatusFound)
}

func (h *authHandler) signin(w http.ResponseWriter, r *http.Request) {
	var req dto.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Bad request")
		return
	}
	resp, err := h.auth.Signin(r.Context(), req)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *authHandler) refresh(w http.ResponseWriter, r *http.Request) {
	raw := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		writeMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}
	token := strings.TrimSpace(raw[len("Bearer "):])

	newToken, err := h.auth.Refresh(r.Context(), token)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.RefreshResponse{
		Message: "Token refreshed successfully",
		Token:   newToken,
	})
}

// resetPasswordRequest responds identically whether or not the account
// exists so the endpoint cannot be used to enumerate emails.
func (h *authHandler) resetPasswordRequest(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Bad request")
		return
	}
	if err := h.auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeAuthError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "If the email exists, a reset link has been sent")
}

// verifyResetRequest lands the link from the reset mail and forwards the
// browser to the frontend reset page, carrying either the still-valid token
// or an error code.
func (h *authHandler) verifyResetRequest(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	err := h.auth.VerifyResetRequest(r.Context(), token)

	target := h.frontend + "/reset-password"
	switch {
	case err == nil:
		target += "?token=" + url.QueryEscape(token)
	case errors.Is(err, domain.ErrTokenExpired):
		target += "?error=expired-token"
	case errors.Is(err, domain.ErrUserNotFound):
		target += "?error=user-not-found"
	default:
		target += "?error=invalid-token"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *authHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPassword
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Bad request")
		return
	}
	if err := h.auth.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		// A bad or wrong-purpose token here is a 400, not a 401: the
		// token arrived in the body, not as a credential.
		if errors.Is(err, domain.ErrTokenInvalid) || errors.Is(err, domain.ErrTokenExpired) {
			writeMessage(w, http.StatusBadRequest, "Invalid token")
			return
		}
		writeAuthError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Password reset successfully")
}

func (h *authHandler) promoteToAdmin(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	user, err := h.auth.PromoteToAdmin(r.Context(), userID)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Message string          `json:"message"`
		User    dto.UserSummary `json:"user"`
	}{"User promoted to admin successfully", *user})
}

func (h *authHandler) demoteToUser(w http.ResponseWriter, r *http.Request) {
	p, _ := authz.PrincipalFrom(r.Context())
	userID := chi.URLParam(r, "userId")
	user, err := h.auth.DemoteToUser(r.Context(), p.UserID.String(), userID)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Message string          `json:"message"`
		User    dto.UserSummary `json:"user"`
	}{"User demoted to regular user successfully", *user})
}

func (h *authHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.auth.ListUsers(r.Context())
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *authHandler) stats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.auth.Stats(r.Context())
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
