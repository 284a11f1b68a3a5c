package storage

import (
	"context"
	"errors"
)

// Fixed keys of the persisted client state.
const (
	KeyCart        = "cart"
	KeyCurrentUser = "userEmail"
	KeyUsers       = "users"
	KeyOrders      = "orders"
	KeyLastOrder   = "lastOrder"
)

var (
	ErrEmptyKey     = errors.New("storage key is empty")
	ErrEncodeFailed = errors.New("failed to encode value")
	ErrDecodeFailed = errors.New("failed to decode value")
)

// Store persists whole-object JSON snapshots under string keys.
//
// Load reports false (and leaves dest untouched) when nothing is stored
// under key. Save replaces any previous value.
type Store interface {
	Load(ctx context.Context, key string, dest any) (bool, error)
	Save(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// Get loads key into a fresh T.
func Get[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var v T
	ok, err := s.Load(ctx, key, &v)
	if err != nil || !ok {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}
