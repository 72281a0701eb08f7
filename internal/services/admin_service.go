package services

import (
	"context"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// AdminService - операции панели администратора над заявками, пользователями и журналом
type AdminService interface {
	ReviewApplication(ctx context.Context, db *gorm.DB, actor auth.Actor, applicationID string, req *dto.ReviewApplicationRequest) (*dto.ApplicationResponse, error)

	ListUsers(db *gorm.DB, req dto.AdminUserListRequest, page dto.PageRequest) (*dto.UserListResponse, error)
	GetUser(db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, db *gorm.DB, actor auth.Actor, userID string, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, db *gorm.DB, actor auth.Actor, userID string) error

	ListActivities(db *gorm.DB, page dto.PageRequest) (*dto.ActivityListResponse, error)
	ListUserActivities(db *gorm.DB, userID string, page dto.PageRequest) (*dto.ActivityListResponse, error)
}

type adminService struct {
	applications    ApplicationService
	activities      ActivityService
	userRepo        repositories.UserRepository
	applicationRepo repositories.ApplicationRepository
	cvService       CVService
}

func NewAdminService(
	applications ApplicationService,
	activities ActivityService,
	userRepo repositories.UserRepository,
	applicationRepo repositories.ApplicationRepository,
	cvService CVService,
) AdminService {
	return &adminService{
		applications:    applications,
		activities:      activities,
		userRepo:        userRepo,
		applicationRepo: applicationRepo,
		cvService:       cvService,
	}
}

// ReviewApplication проверяет статус и передает решение в жизненный цикл заявки
func (s *adminService) ReviewApplication(ctx context.Context, db *gorm.DB, actor auth.Actor, applicationID string, req *dto.ReviewApplicationRequest) (*dto.ApplicationResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrInsufficientPermissions
	}
	status := models.ApplicationStatus(req.Status)
	if !status.IsReviewOutcome() {
		return nil, apperrors.ErrInvalidReviewStatus
	}

	resp, err := s.applications.Review(ctx, db, actor, applicationID, status, req.AdminNotes)
	if err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "application reviewed", "application_id", applicationID, "status", status)
	return resp, nil
}

// ==========================
// Users
// ==========================

func (s *adminService) ListUsers(db *gorm.DB, req dto.AdminUserListRequest, page dto.PageRequest) (*dto.UserListResponse, error) {
	p := toPagination(page)
	users, total, err := s.userRepo.FindWithFilter(db, repositories.UserFilter{
		Search:     req.Search,
		IsActive:   req.IsActive,
		Pagination: p,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	items := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, buildUserResponse(&users[i]))
	}
	return &dto.UserListResponse{
		Users:      items,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: calculateTotalPages(total, p.PageSize),
	}, nil
}

func (s *adminService) GetUser(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return buildUserResponse(user), nil
}

// UpdateUser меняет роли и активность. Администратор не может снять с себя
// роль admin или деактивировать свою учетную запись.
func (s *adminService) UpdateUser(ctx context.Context, db *gorm.DB, actor auth.Actor, userID string, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	self := user.ID == actor.UserID
	fields := map[string]interface{}{}

	if req.Roles != nil {
		roles := make([]models.UserRole, 0, len(req.Roles))
		for _, r := range req.Roles {
			role := models.UserRole(r)
			if !role.IsValid() {
				return nil, apperrors.ErrInvalidOperation("user", "unknown role: "+r)
			}
			roles = append(roles, role)
		}
		user.SetRoles(roles...)
		if self && !user.IsAdmin() {
			return nil, apperrors.ErrCannotModifySelf
		}
		fields["roles"] = user.Roles
	}
	if req.IsActive != nil {
		if self && !*req.IsActive {
			return nil, apperrors.ErrCannotModifySelf
		}
		user.IsActive = *req.IsActive
		fields["is_active"] = user.IsActive
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(db, user.ID, fields); err != nil {
			return nil, mapRepoError(err)
		}
		logger.CtxInfo(ctx, "user updated by admin", "target_user_id", user.ID, "fields", len(fields))
	}
	return buildUserResponse(user), nil
}

// DeleteUser удаляет пользователя со всеми зависимыми данными и файлами резюме профиля
func (s *adminService) DeleteUser(ctx context.Context, db *gorm.DB, actor auth.Actor, userID string) error {
	if userID == actor.UserID {
		return apperrors.ErrCannotModifySelf
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return mapRepoError(err)
	}

	var cvPaths []string
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		paths, err := s.applicationRepo.FindCVPathsByUser(tx, user.ID)
		if err != nil {
			return err
		}
		cvPaths = paths
		return s.userRepo.DeleteWithDependents(tx, user.ID)
	})
	if err != nil {
		return mapRepoError(err)
	}

	if user.Profile != nil && user.Profile.CVFilename != nil {
		cvPaths = append(cvPaths, *user.Profile.CVFilename)
	}
	for _, p := range cvPaths {
		s.cvService.Discard(ctx, p)
	}
	logger.CtxInfo(ctx, "user deleted by admin", "target_user_id", user.ID, "removed_cv_files", len(cvPaths))
	return nil
}

// ==========================
// Activities
// ==========================

func (s *adminService) ListActivities(db *gorm.DB, page dto.PageRequest) (*dto.ActivityListResponse, error) {
	return s.activities.ListAll(db, page)
}

func (s *adminService) ListUserActivities(db *gorm.DB, userID string, page dto.PageRequest) (*dto.ActivityListResponse, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		return nil, mapRepoError(err)
	}
	return s.activities.ListForUser(db, userID, page)
}
