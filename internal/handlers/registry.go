package handlers

import (
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	JobHandler          *JobHandler
	ApplicationHandler  *ApplicationHandler
	ProfileHandler      *ProfileHandler
	NotificationHandler *NotificationHandler
	AdminHandler        *AdminHandler
}

func NewAppHandlers(svc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, svc.AuthService),
		JobHandler:          NewJobHandler(base, svc.JobService),
		ApplicationHandler:  NewApplicationHandler(base, svc.ApplicationService),
		ProfileHandler:      NewProfileHandler(base, svc.ProfileService),
		NotificationHandler: NewNotificationHandler(base, svc.NotificationService),
		AdminHandler:        NewAdminHandler(base, svc.AdminService, svc.JobService, svc.ApplicationService),
	}
}
