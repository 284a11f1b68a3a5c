package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"shopelite/internal/cart"
	"shopelite/internal/logger"
	"shopelite/internal/storage"
	"shopelite/internal/utils"

	"go.uber.org/zap"
)

// createdAtLayout matches JavaScript's Date.toISOString output.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// UserProvider reports the logged-in user, if any.
type UserProvider interface {
	CurrentUser() (string, bool)
}

type Service interface {
	CreateOrder(ctx context.Context, snapshot cart.State, address ShippingAddress, paymentMethod string) Order
	ListOrders(ctx context.Context, email string) []Order
	LastOrder(ctx context.Context) (Order, bool)
}

type service struct {
	mu    sync.Mutex
	store storage.Store
	users UserProvider
	now   func() time.Time
	log   map[string][]Order
	last  *Order

	// logSynced is false while the persisted log is unknown. Writing the
	// in-memory log then would overwrite history saved by earlier runs.
	logSynced bool
}

func NewService(ctx context.Context, store storage.Store, users UserProvider) Service {
	return newService(ctx, store, users, time.Now)
}

func newService(ctx context.Context, store storage.Store, users UserProvider, now func() time.Time) *service {
	s := &service{store: store, users: users, now: now, log: make(map[string][]Order)}

	orders, _, err := storage.Get[map[string][]Order](ctx, store, storage.KeyOrders)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to restore order log", zap.Error(err))
	} else {
		s.logSynced = true
		if orders != nil {
			s.log = orders
		}
	}

	last, ok, err := storage.Get[Order](ctx, store, storage.KeyLastOrder)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to restore last order", zap.Error(err))
	}
	if ok {
		s.last = &last
	}
	return s
}

// CreateOrder snapshots the cart into a pending order. The order is
// appended to the current user's log; with nobody logged in it is returned
// (and kept as the last order) but recorded in no log. The cart is left
// alone: clearing it is the caller's next step.
func (s *service) CreateOrder(
	ctx context.Context,
	snapshot cart.State,
	address ShippingAddress,
	paymentMethod string,
) Order {
	now := s.now().UTC()
	o := Order{
		ID:              utils.GenerateOrderID(now),
		Items:           snapshot.Clone().Items,
		Total:           snapshot.TotalPrice,
		Status:          StatusPending,
		CreatedAt:       now.Format(createdAtLayout),
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
	}

	log := logger.FromCtx(ctx).With(
		zap.String("order_id", o.ID),
		zap.Int64("total", o.Total),
		zap.Int("lines", len(o.Items)),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	if email, ok := s.users.CurrentUser(); ok {
		s.log[email] = append(s.log[email], cloneOrder(o))
		s.persistLog(ctx)
		log = log.With(zap.String("user", email))
	} else {
		log.Warn("order created without a logged-in user; not recorded in any order log")
	}

	last := cloneOrder(o)
	s.last = &last
	s.persist(ctx, storage.KeyLastOrder, last)

	log.Info("order created")
	return o
}

// ListOrders returns the user's orders, newest first.
func (s *service) ListOrders(ctx context.Context, email string) []Order {
	s.mu.Lock()
	if !s.logSynced && s.syncLog(ctx) {
		// store the orders built while the log was unreadable
		s.persist(ctx, storage.KeyOrders, s.log)
	}
	orders := make([]Order, 0, len(s.log[email]))
	for _, o := range s.log[email] {
		orders = append(orders, cloneOrder(o))
	}
	s.mu.Unlock()

	sort.SliceStable(orders, func(i, j int) bool {
		return createdAt(orders[i]).After(createdAt(orders[j]))
	})
	return orders
}

// LastOrder is the most recent order built on this device, for the
// confirmation page.
func (s *service) LastOrder(ctx context.Context) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return Order{}, false
	}
	return cloneOrder(*s.last), true
}

// syncLog re-reads the stored log after a failed restore and merges the
// orders built since into it. Must be called with s.mu held.
func (s *service) syncLog(ctx context.Context) bool {
	if s.logSynced {
		return true
	}
	stored, _, err := storage.Get[map[string][]Order](ctx, s.store, storage.KeyOrders)
	if err != nil {
		logger.FromCtx(ctx).Warn("order log still unreadable", zap.Error(err))
		return false
	}
	s.log = mergeLogs(stored, s.log)
	s.logSynced = true
	return true
}

// persistLog writes the order log, unless the stored log could not be read:
// then the new orders stay in memory only rather than overwrite it.
// Must be called with s.mu held.
func (s *service) persistLog(ctx context.Context) {
	if !s.syncLog(ctx) {
		return
	}
	s.persist(ctx, storage.KeyOrders, s.log)
}

func (s *service) persist(ctx context.Context, key string, value any) {
	if err := s.store.Save(ctx, key, value); err != nil {
		logger.FromCtx(ctx).Warn("failed to persist orders",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func createdAt(o Order) time.Time {
	t, err := time.Parse(time.RFC3339, o.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// mergeLogs appends the orders in recent to stored, skipping ids stored
// already has.
func mergeLogs(stored, recent map[string][]Order) map[string][]Order {
	if stored == nil {
		stored = make(map[string][]Order)
	}
	for email, orders := range recent {
		seen := make(map[string]bool, len(stored[email]))
		for _, o := range stored[email] {
			seen[o.ID] = true
		}
		for _, o := range orders {
			if !seen[o.ID] {
				stored[email] = append(stored[email], o)
			}
		}
	}
	return stored
}

// cloneOrder copies Items so callers never share a backing array with the log.
func cloneOrder(o Order) Order {
	if o.Items == nil {
		return o
	}
	items := make([]cart.CartItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = cart.CartItem{Product: item.Product.Clone(), Quantity: item.Quantity}
	}
	o.Items = items
	return o
}
