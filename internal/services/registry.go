package services

import (
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	JobService          JobService
	ApplicationService  ApplicationService
	CVService           CVService
	NotificationService NotificationService
	ActivityService     ActivityService
	AdminService        AdminService
}

// Dependencies - внешние зависимости сервисов
type Dependencies struct {
	Storage   storage.Storage
	Mailer    email.Mailer
	MaxCVSize int64
	Clock     Clock
}

// NewServiceContainer собирает репозитории и сервисы
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	categoryRepo := repositories.NewCategoryRepository()
	jobRepo := repositories.NewJobRepository()
	applicationRepo := repositories.NewApplicationRepository()
	notificationRepo := repositories.NewNotificationRepository()
	activityRepo := repositories.NewActivityRepository()

	activityService := NewActivityService(activityRepo, deps.Clock)
	notificationService := NewNotificationService(notificationRepo, deps.Clock)
	cvService := NewCVService(deps.Storage, profileRepo, deps.MaxCVSize)
	applicationService := NewApplicationService(
		applicationRepo,
		jobRepo,
		cvService,
		notificationService,
		activityService,
		deps.Mailer,
		deps.Clock,
	)

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, profileRepo, activityService),
		ProfileService:      NewProfileService(userRepo, profileRepo, cvService, activityService),
		JobService:          NewJobService(jobRepo, categoryRepo, applicationRepo, cvService),
		ApplicationService:  applicationService,
		CVService:           cvService,
		NotificationService: notificationService,
		ActivityService:     activityService,
		AdminService:        NewAdminService(applicationService, activityService, userRepo, applicationRepo, cvService),
	}
}
