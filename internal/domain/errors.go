package domain

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrAccountExpired     = errors.New("account expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfDemotion       = errors.New("cannot demote yourself")

	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrNoToken      = errors.New("no token provided")

	ErrFoodNotFound      = errors.New("food not found")
	ErrCategoryNotFound  = errors.New("food category not found")
	ErrDuplicateCategory = errors.New("food category already exists")
	ErrOrderNotFound     = errors.New("food order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
)
