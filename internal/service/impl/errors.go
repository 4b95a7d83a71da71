package impl

import "errors"

var (
	ErrMissingEmailOrPassword = errors.New("email and password are required")
	ErrPasswordTooShort       = errors.New("password too short")
	ErrMissingEmail           = errors.New("email is required")
	ErrMissingTokenOrPassword = errors.New("token and new password are required")
	ErrMissingFields          = errors.New("missing required fields")
)
