package auth

import "errors"

var (
	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUnknownFlag is returned when a permission flag name is not one of the four known flags.
	ErrUnknownFlag = errors.New("unknown permission flag")
)
