package services

import (
	"context"
	"testing"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/repositories/memory"
	"kumbhsetu/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key"

func newUserService(t *testing.T) (*UserService, interfaces.UserRepository) {
	t.Helper()
	repo := memory.NewUserRepository()
	svc := NewUserService(repo, NewAccessControl(), testJWTSecret, newTestLogger(t))
	return svc, repo
}

func signup(t *testing.T, svc *UserService, email string) *AuthResult {
	t.Helper()
	result, err := svc.Signup(context.Background(), &SignupInput{
		Name:     "Asha Patil",
		Email:    email,
		Phone:    "9876543210",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	return result
}

func TestSignupForcesPilgrimRole(t *testing.T) {
	svc, _ := newUserService(t)

	result := signup(t, svc, "Asha@Example.com")

	assert.Equal(t, models.RolePilgrim, result.User.Role)
	assert.Equal(t, "asha@example.com", result.User.Email)
	assert.True(t, result.User.IsActive)
	assert.NotEmpty(t, result.Token)
	assert.NotEqual(t, "s3cret-pass", result.User.Password)

	claims, err := utils.ValidateToken(result.Token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.Hex(), claims.UserID)
	assert.Equal(t, string(models.RolePilgrim), claims.Role)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)

	signup(t, svc, "asha@example.com")

	_, err := svc.Signup(context.Background(), &SignupInput{
		Name:     "Another",
		Email:    "ASHA@example.com",
		Phone:    "9876543211",
		Password: "different-pass",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestSignupShortPassword(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Signup(context.Background(), &SignupInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Password: "abc",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	svc, _ := newUserService(t)
	signup(t, svc, "asha@example.com")

	result, err := svc.Login(context.Background(), &LoginInput{
		Email:    "asha@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "asha@example.com",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, repo := newUserService(t)
	result := signup(t, svc, "asha@example.com")

	_, err := repo.SetActive(context.Background(), result.User.ID, false)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "asha@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestResolveActorReflectsStoredState(t *testing.T) {
	svc, repo := newUserService(t)
	result := signup(t, svc, "asha@example.com")

	actor, err := svc.ResolveActor(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.True(t, actor.Active)
	assert.Equal(t, models.RolePilgrim, actor.Role)

	// Deactivation shows up on the next resolve, token or not.
	_, err = repo.SetActive(context.Background(), result.User.ID, false)
	require.NoError(t, err)

	actor, err = svc.ResolveActor(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.False(t, actor.Active)
}

func TestSetActiveAdminOnly(t *testing.T) {
	svc, _ := newUserService(t)
	result := signup(t, svc, "asha@example.com")

	admin := newActor(models.RoleAdmin)
	deactivated, err := svc.SetActive(context.Background(), admin, result.User.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	reactivated, err := svc.SetActive(context.Background(), admin, result.User.ID, true)
	require.NoError(t, err)
	assert.True(t, reactivated.IsActive)

	_, err = svc.SetActive(context.Background(), newActor(models.RoleVolunteer), result.User.ID, false)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestSetRole(t *testing.T) {
	svc, _ := newUserService(t)
	result := signup(t, svc, "asha@example.com")
	admin := newActor(models.RoleAdmin)

	promoted, err := svc.SetRole(context.Background(), admin, result.User.ID, models.RoleVolunteer)
	require.NoError(t, err)
	assert.Equal(t, models.RoleVolunteer, promoted.Role)

	_, err = svc.SetRole(context.Background(), admin, result.User.ID, "superuser")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.SetRole(context.Background(), newActor(models.RoleMedical), result.User.ID, models.RoleAdmin)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}
