package services

import (
	"context"
	"net/http"
	"testing"

	"freelancehub/exceptions"
	"freelancehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user, err := env.svc.Auth.Register(ctx, RegisterInput{
		Username: " alice ",
		Email:    "Alice@Example.com",
		Password: "secret1",
		Role:     models.RoleBuyer,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.RoleBuyer, user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestRegisterDefaultsToSolver(t *testing.T) {
	env := setupEnv(t)

	user, err := env.svc.Auth.Register(context.Background(), RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSolver, user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	in := RegisterInput{Username: "carol", Email: "carol@example.com", Password: "secret1"}
	_, err := env.svc.Auth.Register(ctx, in)
	require.NoError(t, err)

	in.Email = "CAROL@example.com"
	_, err = env.svc.Auth.Register(ctx, in)
	assert.ErrorIs(t, err, exceptions.ErrUserExists)
	assert.Equal(t, http.StatusBadRequest, exceptions.StatusCode(err))
}

func TestRegisterValidation(t *testing.T) {
	env := setupEnv(t)

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"missing username", RegisterInput{Email: "a@example.com", Password: "secret1"}},
		{"bad email", RegisterInput{Username: "a", Email: "not-an-email", Password: "secret1"}},
		{"short password", RegisterInput{Username: "a", Email: "a@example.com", Password: "123"}},
		{"admin role", RegisterInput{Username: "a", Email: "a@example.com", Password: "secret1", Role: models.RoleAdmin}},
		{"unknown role", RegisterInput{Username: "a", Email: "a@example.com", Password: "secret1", Role: "manager"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Auth.Register(context.Background(), tt.in)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, exceptions.StatusCode(err))
		})
	}
}

func TestLogin(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	env.user(t, "dave", models.RoleSolver)

	user, err := env.svc.Auth.Login(ctx, "DAVE@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, "dave", user.Username)

	_, err = env.svc.Auth.Login(ctx, "dave@example.com", "wrong")
	assert.ErrorIs(t, err, exceptions.ErrInvalidCredentials)

	_, err = env.svc.Auth.Login(ctx, "nobody@example.com", "password")
	assert.ErrorIs(t, err, exceptions.ErrInvalidCredentials)
}

func TestUpdateRole(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	user := env.user(t, "erin", models.RoleSolver)

	updated, err := env.svc.Users.UpdateRole(ctx, user.ID, models.RoleBuyer)
	require.NoError(t, err)
	assert.Equal(t, models.RoleBuyer, updated.Role)

	var stored models.User
	env.reload(t, &stored, user.ID)
	assert.Equal(t, models.RoleBuyer, stored.Role)

	_, err = env.svc.Users.UpdateRole(ctx, user.ID, "superuser")
	assert.ErrorIs(t, err, exceptions.ErrInvalidRole)

	_, err = env.svc.Users.UpdateRole(ctx, "missing", models.RoleAdmin)
	assert.ErrorIs(t, err, exceptions.ErrUserNotFound)

	users, err := env.svc.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
