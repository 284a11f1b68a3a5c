package session

import "errors"

var (
	ErrUserExists = errors.New("user with this email already exists")
	// ErrInvalidCredentials deliberately covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownHasher      = errors.New("unknown password hasher")
)
