package cart

import "errors"

var (
	ErrInvalidQuantity = errors.New("invalid cart quantity")
)
