// File: internal/services/user_services/identity_service_test.go
package user_services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avelar/draftmail/internal/domain"
	"github.com/avelar/draftmail/internal/repository/user"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}

func newIdentityService(t *testing.T) *IdentityService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	return NewIdentityService(user.NewUserRepository(db), nopLogger{})
}

func TestResolveIdentityEmptyCredential(t *testing.T) {
	svc := newIdentityService(t)

	_, err := svc.ResolveIdentity(context.Background(), "")
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}

func TestResolveIdentityUnknownCredential(t *testing.T) {
	svc := newIdentityService(t)

	userID, err := svc.ResolveIdentity(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Zero(t, userID)
}

func TestResolveOrCreateUserIdempotent(t *testing.T) {
	svc := newIdentityService(t)
	ctx := context.Background()

	first, err := svc.ResolveOrCreateUser(ctx, "cred-a")
	require.NoError(t, err)
	require.NotZero(t, first)

	second, err := svc.ResolveOrCreateUser(ctx, "cred-a")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := svc.ResolveOrCreateUser(ctx, "cred-b")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	// Reads see the created user afterwards.
	resolved, err := svc.ResolveIdentity(ctx, "cred-a")
	require.NoError(t, err)
	assert.Equal(t, first, resolved)
}

func TestResolveOrCreateUserEmptyCredential(t *testing.T) {
	svc := newIdentityService(t)

	_, err := svc.ResolveOrCreateUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}
