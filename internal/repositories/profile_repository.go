package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.UserProfile) error
	FindByUserID(db *gorm.DB, userID string) (*models.UserProfile, error)
	Update(db *gorm.DB, profile *models.UserProfile) error
	SetCVFilename(db *gorm.DB, userID string, filename *string) error
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.UserProfile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Update(db *gorm.DB, profile *models.UserProfile) error {
	return db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) SetCVFilename(db *gorm.DB, userID string, filename *string) error {
	result := db.Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Update("cv_filename", filename)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
