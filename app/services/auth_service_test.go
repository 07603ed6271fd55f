package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/models"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/repositories"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/services"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/auth"
)

func registerInput() services.RegisterInput {
	return services.RegisterInput{
		Name:     "Tania Akter",
		Email:    "tania@example.com",
		Password: "secret123",
		Phone:    "01711111111",
		Address:  "Rajshahi",
		Answer:   "mango",
	}
}

func newAuth(t *testing.T) (*services.AuthService, *repositories.UserRepository) {
	t.Helper()
	users := repositories.NewUserRepository(newTestDB(t))
	return services.NewAuthService(users), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")

	got, token, err := svc.Login(ctx, "tania@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput())
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "tania@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredential)

	_, _, err = svc.Login(ctx, "ghost@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrInvalidCredential)
}

func TestResetPassword(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	// Wrong recovery answer is rejected.
	err = svc.ResetPassword(ctx, "tania@example.com", "banana", "newsecret")
	assert.ErrorIs(t, err, services.ErrInvalidCredential)

	require.NoError(t, svc.ResetPassword(ctx, "tania@example.com", "mango", "newsecret"))

	_, _, err = svc.Login(ctx, "tania@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrInvalidCredential)
	_, _, err = svc.Login(ctx, "tania@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, services.ProfileInput{Phone: "01899999999"})
	require.NoError(t, err)
	assert.Equal(t, "01899999999", updated.Phone)
	assert.Equal(t, user.Name, updated.Name)

	_, err = svc.UpdateProfile(ctx, user.ID, services.ProfileInput{Password: "short"})
	var ve *services.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "password")
}

func TestRoleResolver(t *testing.T) {
	svc, users := newAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	role, err := users.RoleByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)

	_, err = users.RoleByID(ctx, 4242)
	assert.Error(t, err)
}
