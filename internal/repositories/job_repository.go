package repositories

import (
	"errors"
	"strings"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	FindWithFilter(db *gorm.DB, filter JobFilter) ([]models.Job, int64, error)
	Update(db *gorm.DB, job *models.Job) error
	// DeleteWithApplications удаляет вакансию и все заявки на неё. Вызывать внутри транзакции.
	DeleteWithApplications(db *gorm.DB, id string) error
}

// JobFilter - фильтр списка вакансий. ActiveOnly используется публичным каталогом.
type JobFilter struct {
	Search     string
	CategoryID string
	ActiveOnly bool
	Pagination
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	if err := db.Preload("Category").First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindWithFilter(db *gorm.DB, filter JobFilter) ([]models.Job, int64, error) {
	var jobs []models.Job
	query := db.Model(&models.Job{})

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(company) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Category").
		Order("created_at DESC").
		Limit(filter.Limit()).Offset(filter.Offset()).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.Job) error {
	// Omit связи, чтобы Save не пытался upsert'ить категорию
	return db.Omit("Category").Save(job).Error
}

func (r *JobRepositoryImpl) DeleteWithApplications(db *gorm.DB, id string) error {
	if err := db.Where("job_id = ?", id).Delete(&models.JobApplication{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}
