package storage

import (
	"fmt"

	"shopelite/internal/config"
	"shopelite/internal/db"

	"github.com/go-redis/redis/v8"
)

// Open builds the Store selected by cfg.StorageBackend. The returned close
// func releases backend connections and is never nil.
func Open(cfg *config.Config) (Store, func() error, error) {
	noop := func() error { return nil }

	if err := cfg.Validate(); err != nil {
		return nil, noop, err
	}

	switch cfg.StorageBackend {
	case config.BackendMemory:
		return NewMemoryStore(), noop, nil
	case config.BackendFile:
		fs, err := NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	case config.BackendPostgres:
		database, err := db.NewDatabase(cfg)
		if err != nil {
			return nil, noop, err
		}
		return NewPostgresStore(database), database.Close, nil
	case config.BackendRedis:
		rs := NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}), cfg.RedisPrefix)
		return rs, rs.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %s", config.ErrUnknownBackend, cfg.StorageBackend)
	}
}
