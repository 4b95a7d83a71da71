package impl

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"fooddelivery/internal/domain"
	"fooddelivery/internal/dto"
	"fooddelivery/internal/observability/metrics"
	"fooddelivery/internal/service"
	"fooddelivery/internal/token"

	"github.com/google/uuid"
)

const minPasswordLength = 8

type AuthConfig struct {
	SessionTTL     time.Duration // session token lifetime
	VerifyTokenTTL time.Duration // verification link lifetime
	ResetTokenTTL  time.Duration // reset link lifetime
	AccountTTL     time.Duration // account active window after verification

	// BackendURL is the base for links embedded in outgoing mail; the two
	// verification endpoints live on the backend and redirect to the frontend.
	BackendURL string
}

type AuthServiceImpl struct {
	Users  service.UserDirectory
	Hasher service.PasswordHasher
	Tokens service.TokenCodec
	Mail   service.Mailer

	cfg AuthConfig
}

func NewAuthServiceImpl(users service.UserDirectory, hasher service.PasswordHasher, tokens service.TokenCodec, mail service.Mailer, cfg AuthConfig) *AuthServiceImpl {
	return &AuthServiceImpl{
		Users:  users,
		Hasher: hasher,
		Tokens: tokens,
		Mail:   mail,
		cfg:    cfg,
	}
}

// Signup creates an unverified account and mails a verification link. The
// email-uniqueness invariant is enforced by the directory at write time, so
// two concurrent signups for the same address yield exactly one success.
func (a *AuthServiceImpl) Signup(ctx context.Context, r dto.SignupRequest) error {
	result := "success"
	defer func() {
		metrics.SignupsTotal.WithLabelValues(result).Inc()
	}()

	if r.Email == "" || r.Password == "" {
		result = "failure"
		return ErrMissingEmailOrPassword
	}
	if len(r.Password) < minPasswordLength {
		result = "failure"
		return ErrPasswordTooShort
	}

	hash, err := a.Hasher.Hash(r.Password)
	if err != nil {
		result = "failure"
		return err
	}

	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.New(),
		Email:        r.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsVerified:   false, // stays false until VerifyUser succeeds
		Phone:        r.Phone,
		Address:      r.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.Users.Create(ctx, u); err != nil {
		result = "failure"
		return err
	}

	verifyToken, err := a.Tokens.Issue(u.ID.String(), "", "", a.cfg.VerifyTokenTTL)
	if err != nil {
		result = "failure"
		return err
	}
	a.sendAsync(ctx, u.ID, "verification", func(ctx context.Context) error {
		link := a.cfg.BackendURL + "/auth/verify-user?token=" + verifyToken
		return a.Mail.SendVerificationLink(ctx, u.Email, link)
	})

	slog.Info("account created", "user_id", u.ID)
	return nil
}

// VerifyUser activates the account named by a verification token and starts
// the account ttl window.
func (a *AuthServiceImpl) VerifyUser(ctx context.Context, tokenStr string) error {
	claims, err := a.Tokens.Decode(tokenStr)
	if err != nil {
		return err
	}
	if claims.Purpose != "" {
		return domain.ErrTokenInvalid
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	if _, err := a.Users.GetByID(ctx, userID); err != nil {
		return err
	}

	expiresAt := time.Now().UTC().Add(a.cfg.AccountTTL)
	if err := a.Users.SetVerified(ctx, userID, expiresAt); err != nil {
		return err
	}
	slog.Info("account verified", "user_id", userID)
	return nil
}

// Signin checks the account state and the password, then issues a session
// token carrying the role. Unknown email and wrong password return the same
// error so responses cannot be used to enumerate accounts.
func (a *AuthServiceImpl) Signin(ctx context.Context, r dto.SigninRequest) (*dto.SigninResponse, error) {
	result := "success"
	defer func() {
		metrics.SigninsTotal.WithLabelValues(result).Inc()
	}()

	if r.Email == "" || r.Password == "" {
		result = "failure"
		return nil, ErrMissingEmailOrPassword
	}

	u, err := a.Users.GetByEmail(ctx, r.Email)
	if err != nil {
		result = "failure"
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsVerified {
		result = "failure"
		return nil, domain.ErrEmailNotVerified
	}
	if u.Expired(time.Now().UTC()) {
		result = "failure"
		return nil, domain.ErrAccountExpired
	}
	if !a.Hasher.Verify(r.Password, u.PasswordHash) {
		result = "failure"
		return nil, domain.ErrInvalidCredentials
	}

	sessionToken, err := a.Tokens.Issue(u.ID.String(), u.Role, "", a.cfg.SessionTTL)
	if err != nil {
		result = "failure"
		return nil, err
	}
	metrics.TokensIssuedTotal.WithLabelValues("signin", "success").Inc()
	slog.Info("signin", "user_id", u.ID, "role", u.Role)

	return &dto.SigninResponse{
		Message: "Login successful",
		Token:   sessionToken,
		User: dto.UserSummary{
			ID:    u.ID.String(),
			Email: u.Email,
			Role:  string(u.Role),
		},
	}, nil
}

// Refresh re-validates the account behind a currently-valid session token
// and issues a fresh token with the account's current role.
func (a *AuthServiceImpl) Refresh(ctx context.Context, tokenStr string) (string, error) {
	result := "success"
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues("refresh", result).Inc()
	}()

	claims, err := a.Tokens.Decode(tokenStr)
	if err != nil {
		result = "failure"
		return "", err
	}
	if claims.Purpose != "" {
		result = "failure"
		return "", domain.ErrTokenInvalid
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		result = "failure"
		return "", domain.ErrTokenInvalid
	}

	u, err := a.Users.GetByID(ctx, userID)
	if err != nil {
		result = "failure"
		return "", err
	}
	if !u.IsVerified {
		result = "failure"
		return "", domain.ErrEmailNotVerified
	}
	if u.Expired(time.Now().UTC()) {
		result = "failure"
		return "", domain.ErrAccountExpired
	}

	newToken, err := a.Tokens.Issue(u.ID.String(), u.Role, "", a.cfg.SessionTTL)
	if err != nil {
		result = "failure"
		return "", err
	}
	return newToken, nil
}

// RequestPasswordReset mails a reset link when the account exists. It
// returns nil either way; the caller's response must not reveal whether the
// email is registered.
func (a *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return ErrMissingEmail
	}

	u, err := a.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	resetToken, err := a.Tokens.Issue(u.ID.String(), "", token.PurposePasswordReset, a.cfg.ResetTokenTTL)
	if err != nil {
		return err
	}
	a.sendAsync(ctx, u.ID, "password-reset", func(ctx context.Context) error {
		link := a.cfg.BackendURL + "/auth/verify-reset-password-request?token=" + resetToken
		return a.Mail.SendPasswordResetLink(ctx, u.Email, link)
	})
	return nil
}

// VerifyResetRequest checks that a reset token is usable, without consuming
// it. The caller distinguishes expired from otherwise-invalid tokens when
// building its redirect.
func (a *AuthServiceImpl) VerifyResetRequest(ctx context.Context, tokenStr string) error {
	claims, err := a.Tokens.Decode(tokenStr)
	if err != nil {
		return err
	}
	if claims.Purpose != token.PurposePasswordReset {
		return domain.ErrTokenInvalid
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	_, err = a.Users.GetByID(ctx, userID)
	return err
}

// ResetPassword replaces the credential named by a reset-purpose token.
// Tokens minted for any other use are rejected before anything is hashed.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	if tokenStr == "" || newPassword == "" {
		return ErrMissingTokenOrPassword
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	claims, err := a.Tokens.Decode(tokenStr)
	if err != nil {
		return err
	}
	if claims.Purpose != token.PurposePasswordReset {
		return domain.ErrTokenInvalid
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	if _, err := a.Users.GetByID(ctx, userID); err != nil {
		return err
	}

	hash, err := a.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := a.Users.SetPassword(ctx, userID, hash); err != nil {
		return err
	}
	slog.Info("password reset", "user_id", userID)
	return nil
}

func (a *AuthServiceImpl) PromoteToAdmin(ctx context.Context, userID string) (*dto.UserSummary, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	u, err := a.Users.SetRole(ctx, id, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	slog.Info("user promoted", "user_id", u.ID)
	return &dto.UserSummary{ID: u.ID.String(), Email: u.Email, Role: string(u.Role)}, nil
}

// DemoteToUser flips the target back to the User role. The not-found check
// runs before the self-demotion check, matching the promotion path.
func (a *AuthServiceImpl) DemoteToUser(ctx context.Context, callerID, userID string) (*dto.UserSummary, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if _, err := a.Users.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if callerID == userID {
		return nil, domain.ErrSelfDemotion
	}
	u, err := a.Users.SetRole(ctx, id, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	slog.Info("user demoted", "user_id", u.ID)
	return &dto.UserSummary{ID: u.ID.String(), Email: u.Email, Role: string(u.Role)}, nil
}

func (a *AuthServiceImpl) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := a.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]dto.UserListEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, dto.UserListEntry{
			ID:         u.ID.String(),
			Email:      u.Email,
			Role:       string(u.Role),
			IsVerified: u.IsVerified,
			Phone:      u.Phone,
			Address:    u.Address,
			CreatedAt:  u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return &dto.UserListResponse{Users: entries, Total: len(entries)}, nil
}

func (a *AuthServiceImpl) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	stats, err := a.Users.Stats(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	resp := &dto.StatsResponse{UserStats: *stats}
	if stats.TotalUsers > 0 {
		resp.VerificationRate = int(math.Round(float64(stats.VerifiedUsers) / float64(stats.TotalUsers) * 100))
		resp.AdminRate = int(math.Round(float64(stats.AdminUsers) / float64(stats.TotalUsers) * 100))
	}
	return resp, nil
}

// sendAsync delivers mail without holding up the request. The send outlives
// the request context and a failure is only logged.
func (a *AuthServiceImpl) sendAsync(ctx context.Context, userID domain.UserID, kind string, send func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		if err := send(ctx); err != nil {
			slog.Error("send mail", "kind", kind, "user_id", userID, "error", err)
		}
	}()
}
