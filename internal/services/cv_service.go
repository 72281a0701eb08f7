package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/storage"
	"jobboard_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	pdfMimeType        = "application/pdf"
	applicationsPrefix = "applications"
	profileCVPrefix    = "cv"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// CVResolution - результат выбора резюме для заявки
type CVResolution struct {
	// Path - путь в storage, nil если резюме нет
	Path *string
	// Warning - непустой, если не удалось скопировать резюме из профиля
	Warning string
}

type CVService interface {
	// ResolveForApplication выбирает резюме для новой заявки: загруженный файл,
	// иначе копия резюме из профиля, иначе ничего. Невалидная загрузка - ошибка.
	ResolveForApplication(ctx context.Context, db *gorm.DB, userID, jobID string, upload *dto.FileUpload) (*CVResolution, error)

	// StoreProfileCV сохраняет новое резюме профиля и возвращает путь
	StoreProfileCV(ctx context.Context, upload *dto.FileUpload) (string, error)

	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Discard удаляет файл без возврата ошибки (файлы не участвуют в транзакциях БД)
	Discard(ctx context.Context, path string)
}

type cvService struct {
	storage     storage.Storage
	profileRepo repositories.ProfileRepository
	maxSize     int64
}

func NewCVService(store storage.Storage, profileRepo repositories.ProfileRepository, maxSize int64) CVService {
	return &cvService{
		storage:     store,
		profileRepo: profileRepo,
		maxSize:     maxSize,
	}
}

func (s *cvService) ResolveForApplication(ctx context.Context, db *gorm.DB, userID, jobID string, upload *dto.FileUpload) (*CVResolution, error) {
	if upload != nil {
		data, err := s.readPDF(upload)
		if err != nil {
			return nil, err
		}
		path := applicationCVPath(userID, jobID)
		if err := s.storage.Save(ctx, path, bytes.NewReader(data), pdfMimeType); err != nil {
			return nil, apperrors.ErrStorage(err, "Failed to store CV")
		}
		return &CVResolution{Path: &path}, nil
	}

	return s.copyProfileCV(ctx, db, userID, jobID), nil
}

// copyProfileCV - любая ошибка превращается в предупреждение, заявка подается без резюме
func (s *cvService) copyProfileCV(ctx context.Context, db *gorm.DB, userID, jobID string) *CVResolution {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrProfileNotFound) {
			logger.CtxWithError(ctx, "profile lookup failed during CV resolution", err, "user_id", userID)
			return &CVResolution{Warning: "Could not attach your profile CV"}
		}
		return &CVResolution{}
	}
	if profile.CVFilename == nil || *profile.CVFilename == "" {
		return &CVResolution{}
	}

	src := *profile.CVFilename
	exists, err := s.storage.Exists(ctx, src)
	if err != nil {
		logger.CtxWithError(ctx, "profile CV existence check failed", err, "user_id", userID, "path", src)
		return &CVResolution{Warning: "Could not attach your profile CV"}
	}
	if !exists {
		logger.CtxWarn(ctx, "profile CV missing in storage", "user_id", userID, "path", src)
		return &CVResolution{}
	}

	dst := applicationCVPath(userID, jobID)
	if err := storage.Copy(ctx, s.storage, src, dst, pdfMimeType); err != nil {
		logger.CtxWithError(ctx, "failed to copy profile CV", err, "user_id", userID, "path", src)
		return &CVResolution{Warning: "Could not attach your profile CV"}
	}
	return &CVResolution{Path: &dst}
}

func (s *cvService) StoreProfileCV(ctx context.Context, upload *dto.FileUpload) (string, error) {
	if upload == nil {
		return "", apperrors.NewBadRequestError("CV file is required")
	}
	data, err := s.readPDF(upload)
	if err != nil {
		return "", err
	}
	path := profileCVPath(upload.Filename)
	if err := s.storage.Save(ctx, path, bytes.NewReader(data), pdfMimeType); err != nil {
		return "", apperrors.ErrStorage(err, "Failed to store CV")
	}
	return path, nil
}

func (s *cvService) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	reader, err := s.storage.Get(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(err, "application", "CV file not found")
		}
		return nil, apperrors.ErrStorage(err, "Failed to read CV")
	}
	return reader, nil
}

func (s *cvService) Discard(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.storage.Delete(ctx, path); err != nil {
		logger.CtxWithError(ctx, "failed to delete stored CV", err, "path", path)
	}
}

// readPDF читает загрузку целиком (не больше maxSize) и проверяет, что это PDF
func (s *cvService) readPDF(upload *dto.FileUpload) ([]byte, error) {
	if s.maxSize > 0 && upload.Size > s.maxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	reader := upload.Content
	if s.maxSize > 0 {
		reader = io.LimitReader(upload.Content, s.maxSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Failed to read uploaded file")
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	if !IsPDF(data, upload.ContentType, upload.Filename) {
		return nil, apperrors.ErrInvalidFileType
	}
	return data, nil
}

// IsPDF - MIME определяется по содержимому, а если сниффер ничего не распознал,
// берется Content-Type клиента. Принимается MIME application/pdf или расширение .pdf.
func IsPDF(data []byte, declaredType, filename string) bool {
	mimeType := sniffMimeType(data, declaredType)
	if mimeType == pdfMimeType {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

func sniffMimeType(data []byte, declaredType string) string {
	if len(data) > 0 {
		detected := mimetype.Detect(data)
		if detected != nil && !detected.Is("application/octet-stream") {
			base, _, _ := mime.ParseMediaType(detected.String())
			return base
		}
	}
	if declaredType == "" {
		return ""
	}
	base, _, err := mime.ParseMediaType(declaredType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(declaredType))
	}
	return base
}

func newFileToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
}

func applicationCVPath(userID, jobID string) string {
	return fmt.Sprintf("%s/app_%s_%s_%s.pdf", applicationsPrefix, userID, jobID, newFileToken())
}

func profileCVPath(originalName string) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	base = strings.Trim(unsafeFilenameChars.ReplaceAllString(base, "_"), "_")
	if base == "" {
		base = "cv"
	}
	if len(base) > 50 {
		base = base[:50]
	}
	return fmt.Sprintf("%s/%s_%s.pdf", profileCVPrefix, base, newFileToken())
}

// hasCV - у заявки есть путь к резюме
func hasCV(app *models.JobApplication) bool {
	return app.CVFilename != nil && *app.CVFilename != ""
}
