package session

import (
	"context"
	"sync"

	"shopelite/internal/logger"
	"shopelite/internal/storage"

	"go.uber.org/zap"
)

// Service is the credential-less session of one app: a user list plus the
// currently logged-in email. In-memory state is authoritative; writes to
// the store are best-effort.
type Service interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context)
	CurrentUser() (string, bool)
}

type service struct {
	mu      sync.Mutex
	store   storage.Store
	hasher  PasswordHasher
	users   []UserRecord
	current string

	// usersSynced is false while the stored user list is unknown; writing
	// the in-memory list then would drop every stored account.
	usersSynced bool
}

// NewService restores the user list and the logged-in user from store.
func NewService(ctx context.Context, store storage.Store, hasher PasswordHasher) Service {
	if hasher == nil {
		hasher = PlainHasher{}
	}
	log := logger.FromCtx(ctx)

	s := &service{store: store, hasher: hasher}

	users, _, err := storage.Get[[]UserRecord](ctx, store, storage.KeyUsers)
	if err != nil {
		log.Warn("failed to restore users", zap.Error(err))
	} else {
		s.users = users
		s.usersSynced = true
	}

	current, ok, err := storage.Get[string](ctx, store, storage.KeyCurrentUser)
	if err != nil {
		log.Warn("failed to restore session", zap.Error(err))
	}
	if ok {
		s.current = current
	}

	return s
}

// Register adds a user and logs them in.
func (s *service) Register(ctx context.Context, email, password string) error {
	log := logger.FromCtx(ctx).With(zap.String("email", email))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.syncUsers(ctx)
	if s.find(email) >= 0 {
		log.Info("register rejected: email taken")
		return ErrUserExists
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return err
	}

	s.users = append(s.users, UserRecord{Email: email, Password: hashed})
	if s.usersSynced {
		s.persist(ctx, storage.KeyUsers, s.users)
	} else {
		log.Warn("user list unreadable; new account kept in memory only")
	}
	s.setCurrent(ctx, email)

	log.Info("user registered")
	return nil
}

func (s *service) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.syncUsers(ctx)
	i := s.find(email)
	if i < 0 || !s.hasher.Matches(s.users[i].Password, password) {
		logger.FromCtx(ctx).Info("login rejected", zap.String("email", email))
		return ErrInvalidCredentials
	}

	s.setCurrent(ctx, email)
	return nil
}

func (s *service) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = ""
	if err := s.store.Delete(ctx, storage.KeyCurrentUser); err != nil {
		logger.FromCtx(ctx).Warn("failed to clear persisted session", zap.Error(err))
	}
}

func (s *service) CurrentUser() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current, s.current != ""
}

// syncUsers re-reads the stored user list after a failed restore. Accounts
// registered meanwhile are appended unless the stored list already has the
// email; the merged list is written back. Must be called with s.mu held.
func (s *service) syncUsers(ctx context.Context) {
	if s.usersSynced {
		return
	}
	stored, _, err := storage.Get[[]UserRecord](ctx, s.store, storage.KeyUsers)
	if err != nil {
		logger.FromCtx(ctx).Warn("user list still unreadable", zap.Error(err))
		return
	}

	pending := s.users
	s.users = stored
	for _, u := range pending {
		if s.find(u.Email) < 0 {
			s.users = append(s.users, u)
		}
	}
	s.usersSynced = true

	if len(pending) > 0 {
		s.persist(ctx, storage.KeyUsers, s.users)
	}
}

// find matches emails exactly, case included.
func (s *service) find(email string) int {
	for i, u := range s.users {
		if u.Email == email {
			return i
		}
	}
	return -1
}

func (s *service) setCurrent(ctx context.Context, email string) {
	s.current = email
	s.persist(ctx, storage.KeyCurrentUser, email)
}

func (s *service) persist(ctx context.Context, key string, value any) {
	if err := s.store.Save(ctx, key, value); err != nil {
		logger.FromCtx(ctx).Warn("failed to persist session state",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
