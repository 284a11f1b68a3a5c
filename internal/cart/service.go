package cart

import (
	"context"
	"sync"

	"shopelite/internal/logger"
	"shopelite/internal/product"
	"shopelite/internal/storage"

	"go.uber.org/zap"
)

// Service is the cart of one app session. Every mutation replaces the
// in-memory state and then writes the whole state to the store. A failed
// write is logged and otherwise ignored: memory is the source of truth.
type Service interface {
	AddItem(ctx context.Context, p product.Product, quantity int) (State, error)
	RemoveItem(ctx context.Context, productID int) State
	UpdateQuantity(ctx context.Context, productID, quantity int) State
	Clear(ctx context.Context) State
	Snapshot() State
}

type service struct {
	mu    sync.Mutex
	state State
	store storage.Store
}

// NewService restores the persisted cart, or starts empty when nothing is
// stored or the stored snapshot cannot be read.
func NewService(ctx context.Context, store storage.Store) Service {
	return &service{state: restore(ctx, store), store: store}
}

func restore(ctx context.Context, store storage.Store) State {
	log := logger.FromCtx(ctx)

	saved, ok, err := storage.Get[State](ctx, store, storage.KeyCart)
	if err != nil {
		log.Warn("failed to restore cart, starting empty", zap.Error(err))
		return Empty()
	}
	if !ok {
		return Empty()
	}

	state := Rebuild(saved)
	log.Debug("cart restored",
		zap.Int("lines", len(state.Items)),
		zap.Int("total_items", state.TotalItems),
	)
	return state
}

func (s *service) AddItem(ctx context.Context, p product.Product, quantity int) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := AddItem(s.state, p, quantity)
	if err != nil {
		logger.FromCtx(ctx).Info("rejected cart add",
			zap.Int("product_id", p.ID),
			zap.Int("quantity", quantity),
		)
		return s.state.Clone(), err
	}
	return s.commit(ctx, "add_item", next), nil
}

func (s *service) RemoveItem(ctx context.Context, productID int) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, "remove_item", RemoveItem(s.state, productID))
}

func (s *service) UpdateQuantity(ctx context.Context, productID, quantity int) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, "update_quantity", UpdateQuantity(s.state, productID, quantity))
}

func (s *service) Clear(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, "clear", Clear())
}

func (s *service) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

// commit must be called with s.mu held.
func (s *service) commit(ctx context.Context, op string, next State) State {
	s.state = next

	if err := s.store.Save(ctx, storage.KeyCart, next); err != nil {
		logger.FromCtx(ctx).Warn("failed to persist cart",
			zap.String("op", op),
			zap.Error(err),
		)
	}

	return next.Clone()
}
