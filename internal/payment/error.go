package payment

import "errors"

var (
	ErrInvalidCard         = errors.New("invalid card details")
	ErrProviderUnavailable = errors.New("payment provider not configured")
	ErrTokenFailed         = errors.New("failed to create payment token")
)
