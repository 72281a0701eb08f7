package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для ошибок бизнес-логики.
Предопределенные переменные сравниваются через errors.Is (код, домен, сообщение),
WithDetails/WithError возвращают копию.
*/

// =========================================================================
// Фабричные ФУНКЦИИ
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// NewNotFoundError - "не найдено" с доменом и сообщением
func NewNotFoundError(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrStorage - ошибка файлового хранилища (500)
func ErrStorage(err error, message string) *AppError {
	return Wrap(err, CodeStorageError, "storage", message, http.StatusInternalServerError)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ
// =========================================================================

// --- Applications ---

// ErrAlreadyApplied - у пользователя уже есть активная заявка на вакансию.
var ErrAlreadyApplied = New(
	CodeAlreadyApplied,
	"application",
	"You have already applied for this job!",
	http.StatusConflict, // 409
)

// ErrAlreadyWithdrawn - заявка уже отозвана. Мягкая ошибка: хендлер отвечает 200 с warning.
var ErrAlreadyWithdrawn = New(
	CodeAlreadyWithdrawn,
	"application",
	"This application has already been withdrawn.",
	http.StatusConflict,
)

// ErrApplicationForbidden - попытка изменить чужую заявку.
var ErrApplicationForbidden = New(
	CodeForbidden,
	"application",
	"You cannot withdraw this application!",
	http.StatusForbidden, // 403
)

// ErrApplicationAccessDenied - попытка прочитать чужую заявку.
var ErrApplicationAccessDenied = New(
	CodeForbidden,
	"application",
	"You do not have access to this application",
	http.StatusForbidden,
)

// ErrInvalidReviewStatus - администратор передал статус вне {accepted, rejected}.
var ErrInvalidReviewStatus = New(
	CodeInvalidStatus,
	"application",
	"Invalid status. Allowed values: accepted, rejected",
	http.StatusBadRequest, // 400
)

// ErrApplicationWithdrawn - отозванную заявку нельзя рассматривать.
var ErrApplicationWithdrawn = New(
	CodeInvalidStatus,
	"application",
	"A withdrawn application cannot be reviewed",
	http.StatusBadRequest,
)

// ErrJobNotActive - на неактивную вакансию нельзя откликнуться.
var ErrJobNotActive = New(
	CodeInvalidOperation,
	"job",
	"This job is no longer accepting applications",
	http.StatusBadRequest,
)

// ErrNoCVAttached - к заявке не приложено резюме.
var ErrNoCVAttached = New(
	CodeNotFound,
	"application",
	"No CV attached to this application",
	http.StatusNotFound,
)

// --- Uploads & Files ---

// ErrFileTooLarge - файл превышает максимальный размер.
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge, // 413
)

// ErrInvalidFileType - загружен не PDF.
var ErrInvalidFileType = New(
	CodeInvalidFileType,
	"validation",
	"Please upload a valid PDF file",
	http.StatusUnsupportedMediaType, // 415
)

// --- Categories ---

// ErrCategoryNotEmpty - в категории остались вакансии.
var ErrCategoryNotEmpty = New(
	CodeConflict,
	"category",
	"Category still has jobs and cannot be deleted",
	http.StatusConflict,
)

// ErrCategoryNameTaken - категория с таким именем уже есть.
var ErrCategoryNameTaken = New(
	CodeAlreadyExists,
	"category",
	"Category with this name already exists",
	http.StatusConflict,
)

// --- Auth & Users ---

// ErrCannotModifySelf - администратор пытается удалить или деактивировать себя.
var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrWeakPassword - пароль слишком короткий.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

// ErrPasswordMismatch - новый пароль и подтверждение не совпадают.
var ErrPasswordMismatch = New(
	CodeValidationFailed,
	"validation",
	"New password and confirmation do not match",
	http.StatusBadRequest,
)

// ErrEmailAlreadyExists - email уже используется.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"There is already an account with this email",
	http.StatusConflict,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный JWT.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrUserInactive - аккаунт деактивирован администратором.
var ErrUserInactive = New(
	CodeForbidden,
	"auth",
	"Your account is disabled",
	http.StatusForbidden,
)

// ErrWrongCurrentPassword - при смене пароля указан неверный текущий пароль.
var ErrWrongCurrentPassword = New(
	CodeValidationFailed,
	"auth",
	"Current password is incorrect",
	http.StatusBadRequest,
)
