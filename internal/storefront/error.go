package storefront

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product not available")
	ErrOutOfStock         = errors.New("product out of stock")
)
