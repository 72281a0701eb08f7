package services

import (
	"testing"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/testutil"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.AuthService.Register(f.ctx, f.db, &dto.RegisterRequest{
		Email:           "  New@Test.com ",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FirstName:       "Ada",
		LastName:        "Lovelace",
	}, "127.0.0.1", "go-test")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "new@test.com", resp.User.Email)
	assert.Equal(t, []string{"user"}, resp.User.Roles)
	assert.Equal(t, "Ada Lovelace", resp.User.FullName)

	claims, err := auth.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	var profile models.UserProfile
	require.NoError(t, f.db.First(&profile, "user_id = ?", resp.User.ID).Error)
	assert.Equal(t, "Ada", profile.FirstName)

	_, err = f.svc.AuthService.Register(f.ctx, f.db, &dto.RegisterRequest{
		Email: "new@test.com", Password: "secret123", ConfirmPassword: "secret123",
	}, "", "")
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	login, err := f.svc.AuthService.Login(f.ctx, f.db, &dto.LoginRequest{Email: "new@test.com", Password: "secret123"}, "10.0.0.1", "go-test")
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)

	_, err = f.svc.AuthService.Login(f.ctx, f.db, &dto.LoginRequest{Email: "new@test.com", Password: "wrong-pass"}, "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	activities := f.activities(t, resp.User.ID)
	require.Len(t, activities, 2)
	actions := []models.ActivityAction{activities[0].Action, activities[1].Action}
	assert.ElementsMatch(t, []models.ActivityAction{models.ActivityRegister, models.ActivityLogin}, actions)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AuthService.Register(f.ctx, f.db, &dto.RegisterRequest{
		Email: "a@test.com", Password: "secret123", ConfirmPassword: "secret124",
	}, "", "")
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)

	_, err = f.svc.AuthService.Register(f.ctx, f.db, &dto.RegisterRequest{
		Email: "a@test.com", Password: "abc", ConfirmPassword: "abc",
	}, "", "")
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

func TestAuthService_InactiveUserCannotLogin(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "blocked@test.com")
	require.NoError(t, f.db.Model(user).Update("is_active", false).Error)

	_, err := f.svc.AuthService.Login(f.ctx, f.db, &dto.LoginRequest{Email: "blocked@test.com", Password: testutil.DefaultPassword}, "", "")
	assert.ErrorIs(t, err, apperrors.ErrUserInactive)
}

func TestAuthService_EnsureAdminIsIdempotent(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.AuthService.EnsureAdmin(f.ctx, f.db, "root@test.com", "rootpass"))
	require.NoError(t, f.svc.AuthService.EnsureAdmin(f.ctx, f.db, "root@test.com", "otherpass"))

	var users []models.User
	require.NoError(t, f.db.Preload("Profile").Find(&users).Error)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsAdmin())
	assert.True(t, users[0].IsActive)
	require.NotNil(t, users[0].Profile)
	assert.Equal(t, "Admin", users[0].Profile.FirstName)
	assert.True(t, auth.CheckPasswordHash("rootpass", users[0].PasswordHash))
}
