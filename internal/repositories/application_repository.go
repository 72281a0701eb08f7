package repositories

import (
	"errors"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	// ErrActiveApplicationExists - сработал уникальный индекс active_key
	ErrActiveApplicationExists = errors.New("active application already exists for user and job")
	// ErrApplicationAlreadyWithdrawn - заявку успели отозвать, переход не выполнен
	ErrApplicationAlreadyWithdrawn = errors.New("application is already withdrawn")
)

type ApplicationRepository interface {
	Create(db *gorm.DB, application *models.JobApplication) error
	FindByID(db *gorm.DB, id string) (*models.JobApplication, error)
	FindActiveByUserAndJob(db *gorm.DB, userID, jobID string) (*models.JobApplication, error)
	FindByUser(db *gorm.DB, userID string, page Pagination) ([]models.JobApplication, int64, error)
	FindWithFilter(db *gorm.DB, filter ApplicationFilter) ([]models.JobApplication, int64, error)
	UpdateStatus(db *gorm.DB, application *models.JobApplication) error
	MarkWithdrawn(db *gorm.DB, application *models.JobApplication) error
	ApplyReview(db *gorm.DB, application *models.JobApplication, status models.ApplicationStatus, notes *string, reviewedAt time.Time) error
	FindCVPathsByJob(db *gorm.DB, jobID string) ([]string, error)
	FindCVPathsByUser(db *gorm.DB, userID string) ([]string, error)
}

type ApplicationFilter struct {
	Status models.ApplicationStatus
	JobID  string
	UserID string
	Pagination
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, application *models.JobApplication) error {
	// Omit связей: Job и User уже существуют
	if err := db.Omit("Job", "User").Create(application).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrActiveApplicationExists
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.JobApplication, error) {
	var application models.JobApplication
	err := db.Preload("Job").Preload("Job.Category").Preload("User").Preload("User.Profile").
		First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindActiveByUserAndJob(db *gorm.DB, userID, jobID string) (*models.JobApplication, error) {
	var application models.JobApplication
	err := db.Where("user_id = ? AND job_id = ? AND status <> ?", userID, jobID, models.ApplicationStatusWithdrawn).
		Order("applied_at DESC").
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByUser(db *gorm.DB, userID string, page Pagination) ([]models.JobApplication, int64, error) {
	return r.FindWithFilter(db, ApplicationFilter{UserID: userID, Pagination: page})
}

func (r *ApplicationRepositoryImpl) FindWithFilter(db *gorm.DB, filter ApplicationFilter) ([]models.JobApplication, int64, error) {
	var applications []models.JobApplication
	query := db.Model(&models.JobApplication{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.JobID != "" {
		query = query.Where("job_id = ?", filter.JobID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Job").Preload("User").
		Order("applied_at DESC").
		Limit(filter.Limit()).Offset(filter.Offset()).
		Find(&applications).Error
	return applications, total, err
}

// UpdateStatus записывает статус и все поля, зависящие от него (active_key, reviewed_at, admin_notes)
func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, application *models.JobApplication) error {
	return r.writeStatus(db.Where("id = ?", application.ID), application)
}

// transition обновляет только не отозванную заявку. Условие на статус проверяется в самом UPDATE,
// поэтому параллельный withdraw, закоммиченный после чтения, не будет перезаписан.
func (r *ApplicationRepositoryImpl) transition(db *gorm.DB, application *models.JobApplication) error {
	err := r.writeStatus(
		db.Where("id = ? AND status <> ?", application.ID, models.ApplicationStatusWithdrawn),
		application,
	)
	if !errors.Is(err, ErrApplicationNotFound) {
		return err
	}

	var count int64
	if err := db.Model(&models.JobApplication{}).Where("id = ?", application.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrApplicationAlreadyWithdrawn
	}
	return ErrApplicationNotFound
}

func (r *ApplicationRepositoryImpl) writeStatus(scope *gorm.DB, application *models.JobApplication) error {
	updates := map[string]interface{}{
		"status":      application.Status,
		"active_key":  models.ApplicationActiveKey(application.UserID, application.JobID, application.Status),
		"reviewed_at": application.ReviewedAt,
		"admin_notes": application.AdminNotes,
	}

	result := scope.Model(&models.JobApplication{}).Updates(updates)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrActiveApplicationExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	application.ActiveKey = models.ApplicationActiveKey(application.UserID, application.JobID, application.Status)
	return nil
}

func (r *ApplicationRepositoryImpl) MarkWithdrawn(db *gorm.DB, application *models.JobApplication) error {
	application.Status = models.ApplicationStatusWithdrawn
	return r.transition(db, application)
}

func (r *ApplicationRepositoryImpl) ApplyReview(db *gorm.DB, application *models.JobApplication, status models.ApplicationStatus, notes *string, reviewedAt time.Time) error {
	application.Status = status
	application.AdminNotes = notes
	application.ReviewedAt = &reviewedAt
	return r.transition(db, application)
}

// FindCVPathsByJob - пути резюме всех заявок на вакансию (для очистки storage)
func (r *ApplicationRepositoryImpl) FindCVPathsByJob(db *gorm.DB, jobID string) ([]string, error) {
	return r.pluckCVPaths(db.Where("job_id = ?", jobID))
}

func (r *ApplicationRepositoryImpl) FindCVPathsByUser(db *gorm.DB, userID string) ([]string, error) {
	return r.pluckCVPaths(db.Where("user_id = ?", userID))
}

func (r *ApplicationRepositoryImpl) pluckCVPaths(query *gorm.DB) ([]string, error) {
	var paths []string
	err := query.Model(&models.JobApplication{}).
		Where("cv_filename IS NOT NULL AND cv_filename <> ''").
		Pluck("cv_filename", &paths).Error
	return paths, err
}
