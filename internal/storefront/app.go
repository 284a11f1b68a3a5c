package storefront

import (
	"context"
	"fmt"

	"shopelite/internal/cart"
	"shopelite/internal/config"
	"shopelite/internal/order"
	"shopelite/internal/payment"
	"shopelite/internal/product"
	"shopelite/internal/session"
	"shopelite/internal/storage"
)

// App is the app-session context: built once at startup and handed to
// whatever needs the catalog, cart, session or orders.
type App struct {
	Catalog  product.Service
	Cart     cart.Service
	Session  session.Service
	Orders   order.Service
	Payments payment.TokenProvider

	closeStore func() error
}

// Deps lets callers (and tests) supply collaborators directly.
type Deps struct {
	Store    storage.Store
	Catalog  product.Service
	Hasher   session.PasswordHasher
	Payments payment.TokenProvider
}

// New wires an App from explicit dependencies.
func New(ctx context.Context, d Deps) *App {
	sessions := session.NewService(ctx, d.Store, d.Hasher)

	payments := d.Payments
	if payments == nil {
		payments = payment.NewStripeProvider("")
	}

	return &App{
		Catalog:    d.Catalog,
		Cart:       cart.NewService(ctx, d.Store),
		Session:    sessions,
		Orders:     order.NewService(ctx, d.Store, sessions),
		Payments:   payments,
		closeStore: func() error { return nil },
	}
}

// Open builds an App from configuration: storage backend, HTTP catalog,
// password hasher and payment provider.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	store, closeStore, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	hasher, err := session.NewHasher(cfg.PasswordHasher)
	if err != nil {
		closeStore()
		return nil, err
	}

	catalog := product.NewService(
		product.NewRepository(cfg.CatalogBaseURL, cfg.CatalogRateLimit),
		cfg.RubPerUSD,
		cfg.CatalogCacheSize,
	)

	app := New(ctx, Deps{
		Store:    store,
		Catalog:  catalog,
		Hasher:   hasher,
		Payments: payment.NewStripeProvider(cfg.StripeSecretKey),
	})
	app.closeStore = closeStore
	return app, nil
}

func (a *App) Close() error {
	return a.closeStore()
}
