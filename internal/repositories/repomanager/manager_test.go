package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/polyglot/internal/repositories/results"
	"github.com/dmitrijs2005/polyglot/internal/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestNew_Drivers(t *testing.T) {
	m, err := New(DriverSQLite)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteRepositoryManager{}, m)

	m, err = New(DriverPostgres)
	require.NoError(t, err)
	assert.IsType(t, &PostgresRepositoryManager{}, m)

	_, err = New("mssql")
	require.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), "oracle", "x")
	require.Error(t, err)
}

func TestOpen_SQLite_RunMigrationsCreatesTables(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "polyglot.db")

	db, m, err := Open(ctx, DriverSQLite, dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, m.RunMigrations(ctx, db))
	require.NoError(t, m.RunMigrations(ctx, db), "migrations must be idempotent")

	for _, table := range []string{"users", "lesson_results", "lesson_answers", "goose_db_version"} {
		assert.True(t, tableExists(t, db, table), table)
	}
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sm := &SQLiteRepositoryManager{}
	assert.IsType(t, &users.SQLiteRepository{}, sm.Users(db))
	assert.IsType(t, &results.SQLiteRepository{}, sm.Results(db))

	pm := &PostgresRepositoryManager{}
	assert.IsType(t, &users.PostgresRepository{}, pm.Users(db))
	assert.IsType(t, &results.PostgresRepository{}, pm.Results(db))
}

func TestRunMigrations_Postgres_UsesPostgresDir(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	require.NoError(t, m.RunMigrations(context.Background(), db))
	assert.Equal(t, "postgres", gotDir)
}

func TestRunMigrations_Error(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	boom := errors.New("boom")
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return boom
	}
	defer func() { gooseUpContext = orig }()

	m := &SQLiteRepositoryManager{}
	require.ErrorIs(t, m.RunMigrations(context.Background(), db), boom)
}
