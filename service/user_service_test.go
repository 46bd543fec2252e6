package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/votann/ask-search-be/types"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_StoresHashedPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user, err := svc.Register(context.Background(), "freire", "freire@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "freire", user.Username)
	assert.Equal(t, "freire@example.com", user.Email)
	assert.NotEqual(t, "s3cret", user.PasswordHash, "password must never be stored in the clear")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))

	stored, err := repo.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, stored.Username)
}

func TestRegister_RejectsDuplicates(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), "freire", "freire@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "freire", "other@example.com", "s3cret")
	assert.ErrorIs(t, err, types.ErrUsernameTaken)

	_, err = svc.Register(context.Background(), "hooks", "freire@example.com", "s3cret")
	assert.ErrorIs(t, err, types.ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	registered, err := svc.Register(context.Background(), "freire", "freire@example.com", "s3cret")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "freire", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "freire", "wrong")
		assert.ErrorIs(t, err, types.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		// Indistinguishable from a wrong password on purpose.
		_, err := svc.Authenticate(context.Background(), "nobody", "s3cret")
		assert.ErrorIs(t, err, types.ErrInvalidCredentials)
	})
}
