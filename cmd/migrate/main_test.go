package main

import (
	"os"
	"path/filepath"
	"testing"

	"shopelite/internal/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractMigrationPart(t *testing.T) {
	content := `
-- +migrate Up
CREATE TABLE kv_store (key text);
CREATE INDEX kv_store_updated ON kv_store (updated_at);

-- +migrate Down
DROP TABLE kv_store;
`
	t.Run("Extract Up", func(t *testing.T) {
		up := extractMigrationPart(content, "Up")
		assert.Contains(t, up, "CREATE TABLE kv_store")
		assert.Contains(t, up, "CREATE INDEX")
		assert.NotContains(t, up, "DROP TABLE")
		assert.NotContains(t, up, "-- +migrate Up")
	})

	t.Run("Extract Down", func(t *testing.T) {
		down := extractMigrationPart(content, "Down")
		assert.Contains(t, down, "DROP TABLE kv_store")
		assert.NotContains(t, down, "CREATE TABLE")
	})

	t.Run("Missing section", func(t *testing.T) {
		assert.Empty(t, extractMigrationPart("-- +migrate Up\nSELECT 1;", "Down"))
	})
}

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"20250301_c.sql", "20250101_a.sql", "20250201_b.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- +migrate Up\n"), 0644))
	}

	files, err := migrationFiles(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{"20250101_a.sql", "20250201_b.sql", "20250301_c.sql"}, names)
}

func writeMigration(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunMigrationsUp(t *testing.T) {
	defer logger.Replace(zap.NewNop())()

	t.Run("AppliesPending", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		fileName := "20250101000000_create_kv_store.sql"
		path := writeMigration(t, t.TempDir(), fileName, "-- +migrate Up\nCREATE TABLE kv_store (key text);\n-- +migrate Down\nDROP TABLE kv_store;")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs(fileName).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE kv_store").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs(fileName).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, runMigrationsUp(db, []string{path}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SkipsApplied", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		path := writeMigration(t, t.TempDir(), "20250101_a.sql", "-- +migrate Up\nSELECT 1;")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("20250101_a.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, runMigrationsUp(db, []string{path}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyUpSection", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		path := writeMigration(t, t.TempDir(), "20250101_a.sql", "-- +migrate Down\nSELECT 1;")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("20250101_a.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err = runMigrationsUp(db, []string{path})
		assert.ErrorContains(t, err, "no Up section")
	})
}

func TestRunMigrationsDown(t *testing.T) {
	defer logger.Replace(zap.NewNop())()

	t.Run("RollsBackLatest", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		path := writeMigration(t, t.TempDir(), "20250101_a.sql", "-- +migrate Up\nCREATE TABLE kv_store (key text);\n-- +migrate Down\nDROP TABLE kv_store;")

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("20250101_a.sql"))
		mock.ExpectExec("DROP TABLE kv_store").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM schema_migrations").
			WithArgs("20250101_a.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, runMigrationsDown(db, []string{path}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NothingApplied", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		assert.NoError(t, runMigrationsDown(db, nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingFile", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("20250101_gone.sql"))

		err = runMigrationsDown(db, nil)
		assert.ErrorContains(t, err, "migration file not found")
	})
}

func TestRun_UnknownMode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = run(db, "sideways", t.TempDir())
	assert.ErrorContains(t, err, "unknown mode")
}
