package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/migrations"
	"github.com/dmitrijs2005/polyglot/internal/repositories/results"
	"github.com/dmitrijs2005/polyglot/internal/repositories/users"

	_ "modernc.org/sqlite"
)

var migrationsFS = migrations.FS

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Results(db dbx.DBTX) results.Repository {
	return results.NewSQLiteRepository(db)
}

// RunMigrations creates the users and lesson tables when they are missing.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, "sqlite3", migrations.DirSQLite)
}
