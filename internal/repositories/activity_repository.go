package repositories

import (
	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

// ActivityRepository - журнал действий только на запись и чтение, без update/delete
type ActivityRepository interface {
	Create(db *gorm.DB, activity *models.UserActivity) error
	FindByUser(db *gorm.DB, userID string, page Pagination) ([]models.UserActivity, int64, error)
	FindAll(db *gorm.DB, page Pagination) ([]models.UserActivity, int64, error)
}

type ActivityRepositoryImpl struct{}

func NewActivityRepository() ActivityRepository {
	return &ActivityRepositoryImpl{}
}

func (r *ActivityRepositoryImpl) Create(db *gorm.DB, activity *models.UserActivity) error {
	return db.Omit("User").Create(activity).Error
}

func (r *ActivityRepositoryImpl) FindByUser(db *gorm.DB, userID string, page Pagination) ([]models.UserActivity, int64, error) {
	return r.find(db.Where("user_id = ?", userID), page)
}

func (r *ActivityRepositoryImpl) FindAll(db *gorm.DB, page Pagination) ([]models.UserActivity, int64, error) {
	return r.find(db, page)
}

func (r *ActivityRepositoryImpl) find(query *gorm.DB, page Pagination) ([]models.UserActivity, int64, error) {
	var activities []models.UserActivity
	query = query.Model(&models.UserActivity{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("created_at DESC").
		Limit(page.Limit()).Offset(page.Offset()).
		Find(&activities).Error
	return activities, total, err
}
