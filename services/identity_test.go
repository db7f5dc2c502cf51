package services_test

import (
	"context"
	"io"
	"testing"

	"foodexpress/apperr"
	"foodexpress/models"
	"foodexpress/repository"
	"foodexpress/services"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newIdentityService() (*services.IdentityService, *repository.MemoryUserRepository) {
	users := repository.NewMemoryUserRepository()
	return services.NewIdentityService(users, newTestLogger()), users
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	svc, users := newIdentityService()
	ctx := context.Background()

	user, err := svc.Register(ctx, models.RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "secret",
	})
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())

	stored, err := users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newIdentityService()
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "secret"})
	require.NoError(t, err)

	// Any username with the same email must conflict.
	_, err = svc.Register(ctx, models.RegisterRequest{Username: "bob", Email: "alice@x.com", Password: "other"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	svc, _ := newIdentityService()
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, models.RegisterRequest{Username: "alice", Email: "alice2@x.com", Password: "other"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newIdentityService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"missing username", models.RegisterRequest{Email: "a@x.com", Password: "secret"}},
		{"missing email", models.RegisterRequest{Username: "a", Password: "secret"}},
		{"missing password", models.RegisterRequest{Username: "a", Email: "a@x.com"}},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := svc.Register(ctx, testCase.req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newIdentityService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, models.RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "secret",
		Phone: "555-0100", Address: "1 Main St",
	})
	require.NoError(t, err)

	summary, err := svc.Authenticate(ctx, "alice@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, summary.ID)
	assert.Equal(t, "alice", summary.Username)
	assert.Equal(t, "555-0100", summary.Phone)
	assert.Equal(t, "1 Main St", summary.Address)

	// A near-miss secret must fail just like any other.
	for _, wrong := range []string{"Secret", "secret ", "secre", "secrets", "wrong", ""} {
		_, err = svc.Authenticate(ctx, "alice@x.com", wrong)
		assert.ErrorIs(t, err, apperr.ErrInvalidCredentials, "secret %q", wrong)
	}

	// Unknown email fails with the same error, not a not-found.
	_, err = svc.Authenticate(ctx, "nobody@x.com", "secret")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
}
