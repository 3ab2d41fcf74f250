package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSQLiteCredentialService(t *testing.T) (CredentialService, users.Repository) {
	t.Helper()
	db, rm := setupStore(t)
	return NewCredentialService(db, rm, bcrypt.MinCost, logging.Nop()), rm.Users(db)
}

func TestCredentialService_RegisterAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSQLiteCredentialService(t)

	require.NoError(t, svc.Register(ctx, "ana", []byte("pw123")))

	ok, err := svc.Authenticate(ctx, "ana", []byte("pw123"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Authenticate(ctx, "ana", []byte("pw124"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Authenticate(ctx, "bob", []byte("pw123"))
	require.NoError(t, err)
	assert.False(t, ok, "unknown user")

	ok, err = svc.Authenticate(ctx, "Ana", []byte("pw123"))
	require.NoError(t, err)
	assert.False(t, ok, "usernames are case-sensitive")
}

func TestCredentialService_TrimsInput(t *testing.T) {
	ctx := context.Background()
	svc, repo := newSQLiteCredentialService(t)

	require.NoError(t, svc.Register(ctx, "  ana ", []byte(" pw123\n")))

	c, err := repo.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "ana", c.Username)

	ok, err := svc.Authenticate(ctx, "ana", []byte("pw123"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCredentialService_DuplicateKeepsFirstHash(t *testing.T) {
	ctx := context.Background()
	svc, repo := newSQLiteCredentialService(t)

	require.NoError(t, svc.Register(ctx, "ana", []byte("first")))
	before, err := repo.GetByUsername(ctx, "ana")
	require.NoError(t, err)

	err = svc.Register(ctx, "ana", []byte("second"))
	require.ErrorIs(t, err, common.ErrDuplicateUsername)

	after, err := repo.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	ok, err := svc.Authenticate(ctx, "ana", []byte("second"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialService_HashesAreSaltedAndNotPlaintext(t *testing.T) {
	ctx := context.Background()
	svc, repo := newSQLiteCredentialService(t)

	require.NoError(t, svc.Register(ctx, "ana", []byte("pw123")))
	require.NoError(t, svc.Register(ctx, "bob", []byte("pw123")))

	a, err := repo.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	b, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)

	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
	assert.NotContains(t, a.PasswordHash, "pw123")
	assert.True(t, strings.HasPrefix(a.PasswordHash, "$2"))

	for _, u := range []string{"ana", "bob"} {
		ok, err := svc.Authenticate(ctx, u, []byte("pw123"))
		require.NoError(t, err)
		assert.True(t, ok, u)
	}
}

func TestCredentialService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password []byte
		msg      string
	}{
		{"empty username", "", []byte("pw"), "username must not be empty"},
		{"blank username", "   ", []byte("pw"), "username must not be empty"},
		{"empty password", "ana", []byte(""), "password must not be empty"},
		{"nil password", "ana", nil, "password must not be empty"},
		{"blank password", "ana", []byte("  \t"), "password must not be empty"},
		{"long username", strings.Repeat("a", 51), []byte("pw"), "at most 50 characters"},
		{"long password", "ana", []byte(strings.Repeat("p", 73)), "at most 72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fu := &fakeUsers{}
			svc := NewCredentialService(nil, &fakeManager{users: fu}, bcrypt.MinCost, logging.Nop())

			err := svc.Register(context.Background(), tt.username, tt.password)
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Zero(t, fu.createCalls, "storage must not be touched")
		})
	}
}

func TestCredentialService_RegisterBoundaries(t *testing.T) {
	fu := &fakeUsers{}
	svc := NewCredentialService(nil, &fakeManager{users: fu}, bcrypt.MinCost, logging.Nop())

	require.NoError(t, svc.Register(context.Background(), strings.Repeat("ñ", 50), []byte(strings.Repeat("p", 72))))
	assert.Equal(t, 1, fu.createCalls)
}

func TestCredentialService_AuthenticateRejectsLongerPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSQLiteCredentialService(t)

	pw := strings.Repeat("a", 72)
	require.NoError(t, svc.Register(ctx, "ana", []byte(pw)))

	ok, err := svc.Authenticate(ctx, "ana", []byte(pw))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Authenticate(ctx, "ana", []byte(pw+"DIFFERENT"))
	require.NoError(t, err)
	assert.False(t, ok, "bytes past 72 must not be ignored")

	ok, err = svc.Authenticate(ctx, "bob", []byte(pw+"x"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialService_StoreErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk I/O error")

	fu := &fakeUsers{createErr: boom, getErr: boom}
	svc := NewCredentialService(nil, &fakeManager{users: fu}, bcrypt.MinCost, logging.Nop())

	err := svc.Register(ctx, "ana", []byte("pw123"))
	require.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, common.ErrDuplicateUsername)

	ok, err := svc.Authenticate(ctx, "ana", []byte("pw123"))
	require.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.False(t, ok)
}

func TestCredentialService_AuthenticateEmptyInput(t *testing.T) {
	fu := &fakeUsers{}
	svc := NewCredentialService(nil, &fakeManager{users: fu}, bcrypt.MinCost, logging.Nop())

	ok, err := svc.Authenticate(context.Background(), "", []byte("pw"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Authenticate(context.Background(), "ana", nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, fu.getCalls)
}

func TestCredentialService_Init(t *testing.T) {
	fm := &fakeManager{users: &fakeUsers{}}
	svc := NewCredentialService(nil, fm, 0, logging.Nop())
	require.NoError(t, svc.Init(context.Background()))
	assert.True(t, fm.migrateCalled)

	fm.migrateErr = errors.New("locked")
	require.ErrorIs(t, svc.Init(context.Background()), common.ErrStoreUnavailable)
}

func TestNewCredentialService_CostFallback(t *testing.T) {
	svc := NewCredentialService(nil, &fakeManager{}, 99, logging.Nop()).(*credentialService)
	assert.Equal(t, bcrypt.DefaultCost, svc.cost)

	svc = NewCredentialService(nil, &fakeManager{}, 12, logging.Nop()).(*credentialService)
	assert.Equal(t, 12, svc.cost)
}
