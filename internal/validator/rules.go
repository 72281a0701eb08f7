package validator

import (
	"log"

	"jobboard_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// ошибка времени запуска, дальше работать нельзя
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-application-status", validateApplicationStatus)
	// 'is-review-status': только исходы рассмотрения (accepted, rejected)
	mustRegister("is-review-status", validateReviewStatus)
	mustRegister("is-notification-type", validateNotificationType)
	mustRegister("is-job-type", validateJobType)
}

// Пустые значения пропускаем, для этого есть 'required'

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.UserRole(value).IsValid()
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ApplicationStatus(value).IsValid()
}

func validateReviewStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ApplicationStatus(value).IsReviewOutcome()
}

func validateNotificationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.NotificationType(value).IsValid()
}

func validateJobType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "full-time", "part-time", "contract", "internship", "remote", "temporary":
		return true
	default:
		return false
	}
}
