package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopelite/internal/logger"

	"go.uber.org/zap"
)

// PostgresStore keeps snapshots in the kv_store table (see cmd/migrate).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Load(ctx context.Context, key string, dest any) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	var data []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT value FROM kv_store WHERE key = $1`, key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to load key", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("failed to load %q: %w", key, err)
	}

	if err := decode(key, data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (p *PostgresStore) Save(ctx context.Context, key string, value any) error {
	data, err := encode(key, value)
	if err != nil {
		return err
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`, key, string(data))
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to save key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to save %q: %w", key, err)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if _, err := p.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
