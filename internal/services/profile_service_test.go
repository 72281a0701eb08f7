package services

import (
	"strings"
	"testing"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/testutil"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetCreatesMissingProfile(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "bare@test.com")
	require.NoError(t, f.db.Where("user_id = ?", user.ID).Delete(&models.UserProfile{}).Error)

	resp, err := f.svc.ProfileService.GetProfile(f.ctx, f.db, testutil.ActorFor(user))
	require.NoError(t, err)
	assert.Equal(t, "bare@test.com", resp.Email)
	assert.False(t, resp.HasCV)

	var count int64
	require.NoError(t, f.db.Model(&models.UserProfile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	activities := f.activities(t, user.ID)
	require.Len(t, activities, 1)
	assert.Equal(t, models.ActivityProfileView, activities[0].Action)
}

func TestProfileService_UpdateOnlyGivenFields(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "edit@test.com")

	resp, err := f.svc.ProfileService.UpdateProfile(f.ctx, f.db, testutil.ActorFor(user), &dto.UpdateProfileRequest{
		City: strPtr("Almaty"),
		Bio:  strPtr("Gopher"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Almaty", resp.City)
	assert.Equal(t, "Gopher", resp.Bio)
	assert.Equal(t, "Test", resp.FirstName)
}

func TestProfileService_UploadCVReplacesOldFile(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "cv@test.com")
	actor := testutil.ActorFor(user)

	first, err := f.svc.ProfileService.UploadCV(f.ctx, f.db, actor, pdfUpload("first.pdf"))
	require.NoError(t, err)
	require.True(t, first.HasCV)
	assert.True(t, strings.HasPrefix(*first.CVFilename, "first_"))

	var profile models.UserProfile
	require.NoError(t, f.db.First(&profile, "user_id = ?", user.ID).Error)
	oldPath := *profile.CVFilename

	second, err := f.svc.ProfileService.UploadCV(f.ctx, f.db, actor, pdfUpload("second.pdf"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(*second.CVFilename, "second_"))

	exists, err := f.store.Exists(f.ctx, oldPath)
	require.NoError(t, err)
	assert.False(t, exists, "старое резюме должно быть удалено")

	_, err = f.svc.ProfileService.UploadCV(f.ctx, f.db, actor, upload("notes.txt", "text/plain", []byte("plain text")))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)

	var uploads []models.UserActivity
	require.NoError(t, f.db.Where("user_id = ? AND action = ?", user.ID, models.ActivityCVUpload).Find(&uploads).Error)
	assert.Len(t, uploads, 2)
}

func TestProfileService_ChangePassword(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "pw@test.com")
	actor := testutil.ActorFor(user)

	err := f.svc.ProfileService.ChangePassword(f.ctx, f.db, actor, &dto.ChangePasswordRequest{
		CurrentPassword: "not-my-password", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	assert.ErrorIs(t, err, apperrors.ErrWrongCurrentPassword)

	err = f.svc.ProfileService.ChangePassword(f.ctx, f.db, actor, &dto.ChangePasswordRequest{
		CurrentPassword: testutil.DefaultPassword, NewPassword: "newpass1", ConfirmPassword: "newpass2",
	})
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)

	require.NoError(t, f.svc.ProfileService.ChangePassword(f.ctx, f.db, actor, &dto.ChangePasswordRequest{
		CurrentPassword: testutil.DefaultPassword, NewPassword: "newpass1", ConfirmPassword: "newpass1",
	}))

	var stored models.User
	require.NoError(t, f.db.First(&stored, "id = ?", user.ID).Error)
	assert.True(t, auth.CheckPasswordHash("newpass1", stored.PasswordHash))
}
