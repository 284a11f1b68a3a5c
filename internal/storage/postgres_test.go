package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"items":["a"],"total":5}`))
		mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1`).
			WithArgs(KeyCart).
			WillReturnRows(rows)

		got, ok, err := Get[snapshot](ctx, store, KeyCart)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, snapshot{Items: []string{"a"}, Total: 5}, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT value FROM kv_store`).
			WithArgs(KeyCart).
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		_, ok, err := Get[snapshot](ctx, store, KeyCart)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT value FROM kv_store`).
			WithArgs(KeyCart).
			WillReturnError(errors.New("db down"))

		_, ok, err := Get[snapshot](ctx, store, KeyCart)
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("CorruptValue", func(t *testing.T) {
		mock.ExpectQuery(`SELECT value FROM kv_store`).
			WithArgs(KeyCart).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`nope`)))

		_, _, err := Get[snapshot](ctx, store, KeyCart)
		assert.ErrorIs(t, err, ErrDecodeFailed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO kv_store .* ON CONFLICT \(key\) DO UPDATE`).
			WithArgs(KeyCurrentUser, `"a@x.com"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.Save(ctx, KeyCurrentUser, "a@x.com"))
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO kv_store`).
			WillReturnError(errors.New("disk full"))

		err := store.Save(ctx, KeyCurrentUser, "a@x.com")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)

	mock.ExpectExec(`DELETE FROM kv_store WHERE key = \$1`).
		WithArgs(KeyCurrentUser).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Delete(context.Background(), KeyCurrentUser))
	assert.NoError(t, mock.ExpectationsWereMet())
}
