package services

import (
	"context"
	"errors"
	"strings"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.AuthResponse, error)
	// Logout только пишет журнал: токены не хранятся на сервере
	Logout(ctx context.Context, db *gorm.DB, actor auth.Actor)
	// EnsureAdmin создает первого администратора, если такого email еще нет
	EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) error
}

type authService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	activities  ActivityService
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	activities ActivityService,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		activities:  activities,
	}
}

func (s *authService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}
	if !auth.IsPasswordStrongEnough(req.Password) {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		IsActive:     true,
	}
	user.SetRoles(models.UserRoleUser)

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		profile := &models.UserProfile{
			UserID:    user.ID,
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
		}
		if err := s.profileRepo.Create(tx, profile); err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.activities.Log(ctx, db, ActivityEntry{
		UserID:      user.ID,
		Action:      models.ActivityRegister,
		Description: "User registered",
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
	})
	logger.CtxInfo(ctx, "user registered", "user_id", user.ID)

	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "failed login attempt", "user_id", user.ID, "ip", ipAddress)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	s.activities.Log(ctx, db, ActivityEntry{
		UserID:      user.ID,
		Action:      models.ActivityLogin,
		Description: "User logged in",
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
	})

	return s.issueToken(user)
}

func (s *authService) Logout(ctx context.Context, db *gorm.DB, actor auth.Actor) {
	s.activities.Log(ctx, db, actorEntry(actor, models.ActivityLogout, "User logged out"))
}

func (s *authService) EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.userRepo.FindByEmail(db, email); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.User{Email: email, PasswordHash: hash, IsActive: true}
	admin.SetRoles(models.UserRoleAdmin)

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, admin); err != nil {
			return err
		}
		return s.profileRepo.Create(tx, &models.UserProfile{UserID: admin.ID, FirstName: "Admin"})
	})
	if err != nil {
		return err
	}
	logger.CtxInfo(ctx, "first admin created", "user_id", admin.ID, "email", admin.Email)
	return nil
}

func (s *authService) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := auth.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        buildUserResponse(user),
	}, nil
}
