package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/models"
	"github.com/dmitrijs2005/polyglot/internal/repositories/repomanager"
	"github.com/dmitrijs2005/polyglot/internal/repositories/results"
	"github.com/dmitrijs2005/polyglot/internal/repositories/users"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupStore(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	ctx := context.Background()
	db, rm, err := repomanager.Open(ctx, repomanager.DriverSQLite, filepath.Join(t.TempDir(), "polyglot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, rm.RunMigrations(ctx, db))
	return db, rm
}

// ---- fakes ----

type fakeUsers struct {
	createCalls int
	getCalls    int
	createErr   error
	getRet      *models.Credential
	getErr      error
}

func (f *fakeUsers) Create(_ context.Context, c *models.Credential) (*models.Credential, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return c, nil
}

func (f *fakeUsers) GetByUsername(context.Context, string) (*models.Credential, error) {
	f.getCalls++
	return f.getRet, f.getErr
}

type fakeResults struct {
	results.Repository
	listErr error
}

func (f *fakeResults) ListByUsername(context.Context, string, int) ([]models.LessonResult, error) {
	return nil, f.listErr
}

type fakeManager struct {
	users         *fakeUsers
	results       results.Repository
	migrateErr    error
	migrateCalled bool
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrateCalled = true
	return m.migrateErr
}

func (m *fakeManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *fakeManager) Results(dbx.DBTX) results.Repository { return m.results }
