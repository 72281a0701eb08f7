package services

import (
	"errors"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"
)

// Clock возвращает текущее время. В тестах подменяется фиксированным.
type Clock func() time.Time

func defaultClock() time.Time {
	return time.Now().UTC()
}

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func toPagination(page dto.PageRequest) repositories.Pagination {
	p := repositories.Pagination{Page: page.Page, PageSize: page.PageSize}
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// mapRepoError переводит sentinel-ошибки репозиториев в AppError
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.NewNotFoundError(err, "user", "User not found")
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.NewNotFoundError(err, "profile", "Profile not found")
	case errors.Is(err, repositories.ErrJobNotFound):
		return apperrors.NewNotFoundError(err, "job", "Job not found")
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return apperrors.NewNotFoundError(err, "category", "Category not found")
	case errors.Is(err, repositories.ErrApplicationNotFound):
		return apperrors.NewNotFoundError(err, "application", "Application not found")
	case errors.Is(err, repositories.ErrNotificationNotFound):
		return apperrors.NewNotFoundError(err, "notification", "Notification not found")
	case errors.Is(err, repositories.ErrApplicationAlreadyWithdrawn):
		return apperrors.ErrApplicationWithdrawn
	case errors.Is(err, repositories.ErrActiveApplicationExists):
		return apperrors.ErrAlreadyApplied
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrEmailAlreadyExists
	case errors.Is(err, repositories.ErrCategoryAlreadyExists):
		return apperrors.ErrCategoryNameTaken
	case errors.Is(err, repositories.ErrInvalidNotificationData):
		return apperrors.ErrInvalidOperation("notification", err.Error())
	}
	return apperrors.InternalError(err)
}

// ---------------- response builders ----------------

func buildUserSummary(user *models.User) *dto.UserSummary {
	if user == nil {
		return nil
	}
	summary := &dto.UserSummary{ID: user.ID, Email: user.Email}
	if user.Profile != nil {
		summary.FullName = user.Profile.FullName()
	}
	return summary
}

func buildUserResponse(user *models.User) *dto.UserResponse {
	roles := make([]string, 0, len(user.GetRoles()))
	for _, r := range user.GetRoles() {
		roles = append(roles, string(r))
	}
	resp := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Roles:     roles,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.Profile != nil {
		resp.FullName = user.Profile.FullName()
	}
	return resp
}

func buildCategoryResponse(category *models.Category) *dto.CategoryResponse {
	if category == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}
}

func buildJobResponse(job *models.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Company:     job.Company,
		Location:    job.Location,
		Salary:      job.Salary,
		JobType:     job.JobType,
		IsActive:    job.IsActive,
		Category:    buildCategoryResponse(job.Category),
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}

func buildApplicationResponse(app *models.JobApplication) *dto.ApplicationResponse {
	resp := &dto.ApplicationResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		Status:      string(app.Status),
		CoverLetter: app.CoverLetter,
		HasCV:       app.CVFilename != nil && *app.CVFilename != "",
		AppliedAt:   app.AppliedAt,
		ReviewedAt:  app.ReviewedAt,
		AdminNotes:  app.AdminNotes,
		Applicant:   buildUserSummary(app.User),
		UpdatedAt:   app.UpdatedAt,
	}
	if app.Job != nil {
		resp.JobTitle = app.Job.Title
		resp.Company = app.Job.Company
	}
	return resp
}

func buildNotificationResponse(n *models.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:              n.ID,
		Type:            string(n.Type),
		Title:           n.Title,
		Message:         n.Message,
		RelatedLink:     n.RelatedLink,
		RelatedEntityID: n.RelatedEntityID,
		IsRead:          n.IsRead,
		ReadAt:          n.ReadAt,
		CreatedAt:       n.CreatedAt,
	}
}

func buildActivityResponse(a *models.UserActivity) *dto.ActivityResponse {
	return &dto.ActivityResponse{
		ID:                a.ID,
		Action:            string(a.Action),
		Description:       a.Description,
		IPAddress:         a.IPAddress,
		UserAgent:         a.UserAgent,
		RelatedEntityType: a.RelatedEntityType,
		RelatedEntityID:   a.RelatedEntityID,
		User:              buildUserSummary(a.User),
		CreatedAt:         a.CreatedAt,
	}
}

// actorEntry - заготовка записи журнала с IP и User-Agent запроса
func actorEntry(actor auth.Actor, action models.ActivityAction, description string) ActivityEntry {
	return ActivityEntry{
		UserID:      actor.UserID,
		Action:      action,
		Description: description,
		IPAddress:   actor.IPAddress,
		UserAgent:   actor.UserAgent,
	}
}
