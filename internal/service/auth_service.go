package service

import (
	"context"

	"fooddelivery/internal/dto"
)

type AuthService interface {
	Signup(ctx context.Context, r dto.SignupRequest) error
	VerifyUser(ctx context.Context, token string) error
	Signin(ctx context.Context, r dto.SigninRequest) (*dto.SigninResponse, error)
	Refresh(ctx context.Context, token string) (string, error)

	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetRequest(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, newPassword string) error

	PromoteToAdmin(ctx context.Context, userID string) (*dto.UserSummary, error)
	DemoteToUser(ctx context.Context, callerID, userID string) (*dto.UserSummary, error)

	ListUsers(ctx context.Context) (*dto.UserListResponse, error)
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}
