package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/repository"
)

func TestAuthService(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	auth := NewAuthService(repository.NewUserRepository(env.db))

	_, err := auth.Signup(SignupInput{Username: "  ", Password: "supersecret"})
	require.ErrorIs(t, err, ErrUsernameRequired)

	_, err = auth.Signup(SignupInput{Username: "ada", Password: "short"})
	require.ErrorIs(t, err, ErrPasswordTooShort)

	user, err := auth.Signup(SignupInput{Username: " ada ", Password: "supersecret", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, "ada", user.DisplayName)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	_, err = auth.Signup(SignupInput{Username: "ada", Password: "anothersecret"})
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = auth.Login(LoginInput{Username: "ada", Password: "wrongpassword"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(LoginInput{Username: "nobody", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	loggedIn, err := auth.Login(LoginInput{Username: "ada", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	found, err := auth.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", found.ToDomain().Email)

	_, err = auth.GetUser(user.ID + 100)
	require.ErrorIs(t, err, ErrUserNotFound)
}
