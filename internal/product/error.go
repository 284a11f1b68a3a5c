package product

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrUnexpectedStatus  = errors.New("unexpected catalog response status")
	ErrMalformedResponse = errors.New("malformed catalog response")
	ErrInvalidProductID  = errors.New("invalid product id")
)
