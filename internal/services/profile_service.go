package services

import (
	"context"
	"errors"
	"path"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(ctx context.Context, db *gorm.DB, actor auth.Actor) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UploadCV(ctx context.Context, db *gorm.DB, actor auth.Actor, upload *dto.FileUpload) (*dto.ProfileResponse, error)
	ChangePassword(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.ChangePasswordRequest) error
	GetActivities(db *gorm.DB, userID string, page dto.PageRequest) (*dto.ActivityListResponse, error)
}

type profileService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	cvService   CVService
	activities  ActivityService
}

func NewProfileService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	cvService CVService,
	activities ActivityService,
) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		cvService:   cvService,
		activities:  activities,
	}
}

// loadProfile возвращает пользователя и его профиль, создавая пустой профиль при первом обращении
func (s *profileService) loadProfile(db *gorm.DB, userID string) (*models.User, *models.UserProfile, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, nil, mapRepoError(err)
	}
	if user.Profile != nil {
		return user, user.Profile, nil
	}

	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err == nil {
		return user, profile, nil
	}
	if !errors.Is(err, repositories.ErrProfileNotFound) {
		return nil, nil, mapRepoError(err)
	}

	profile = &models.UserProfile{UserID: userID}
	if err := s.profileRepo.Create(db, profile); err != nil {
		return nil, nil, mapRepoError(err)
	}
	return user, profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, db *gorm.DB, actor auth.Actor) (*dto.ProfileResponse, error) {
	user, profile, err := s.loadProfile(db, actor.UserID)
	if err != nil {
		return nil, err
	}
	s.activities.Log(ctx, db, actorEntry(actor, models.ActivityProfileView, "User viewed their profile"))
	return buildProfileResponse(user, profile), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, profile, err := s.loadProfile(db, actor.UserID)
	if err != nil {
		return nil, err
	}

	applyString(&profile.FirstName, req.FirstName)
	applyString(&profile.LastName, req.LastName)
	applyString(&profile.Phone, req.Phone)
	applyString(&profile.Address, req.Address)
	applyString(&profile.City, req.City)
	applyString(&profile.PostalCode, req.PostalCode)
	applyString(&profile.Bio, req.Bio)

	if err := s.profileRepo.Update(db, profile); err != nil {
		return nil, mapRepoError(err)
	}

	s.activities.Log(ctx, db, actorEntry(actor, models.ActivityProfileUpdate, "User updated their profile information"))
	return buildProfileResponse(user, profile), nil
}

// UploadCV заменяет резюме профиля. Старый файл удаляется после успешной записи в БД.
func (s *profileService) UploadCV(ctx context.Context, db *gorm.DB, actor auth.Actor, upload *dto.FileUpload) (*dto.ProfileResponse, error) {
	user, profile, err := s.loadProfile(db, actor.UserID)
	if err != nil {
		return nil, err
	}

	newPath, err := s.cvService.StoreProfileCV(ctx, upload)
	if err != nil {
		return nil, err
	}

	oldPath := derefString(profile.CVFilename)
	if err := s.profileRepo.SetCVFilename(db, actor.UserID, &newPath); err != nil {
		s.cvService.Discard(ctx, newPath)
		return nil, mapRepoError(err)
	}
	profile.CVFilename = &newPath

	if oldPath != "" && oldPath != newPath {
		s.cvService.Discard(ctx, oldPath)
	}

	s.activities.Log(ctx, db, actorEntry(actor, models.ActivityCVUpload, "User uploaded CV: "+upload.Filename))
	logger.CtxInfo(ctx, "profile CV uploaded", "path", newPath)
	return buildProfileResponse(user, profile), nil
}

func (s *profileService) ChangePassword(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}
	if !auth.IsPasswordStrongEnough(req.NewPassword) {
		return apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.FindByID(db, actor.UserID)
	if err != nil {
		return mapRepoError(err)
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrWrongCurrentPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, user.ID, hash); err != nil {
		return mapRepoError(err)
	}

	s.activities.Log(ctx, db, actorEntry(actor, models.ActivityPasswordChange, "User changed their password"))
	return nil
}

func (s *profileService) GetActivities(db *gorm.DB, userID string, page dto.PageRequest) (*dto.ActivityListResponse, error) {
	return s.activities.ListForUser(db, userID, page)
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func buildProfileResponse(user *models.User, profile *models.UserProfile) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		UserID:     user.ID,
		Email:      user.Email,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		Phone:      profile.Phone,
		Address:    profile.Address,
		City:       profile.City,
		PostalCode: profile.PostalCode,
		Bio:        profile.Bio,
		UpdatedAt:  profile.UpdatedAt,
	}
	if profile.CVFilename != nil && *profile.CVFilename != "" {
		name := path.Base(*profile.CVFilename)
		resp.HasCV = true
		resp.CVFilename = &name
	}
	return resp
}
