package repositories

import (
	"errors"
	"fmt"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationData = errors.New("invalid notification data")
)

type NotificationRepository interface {
	CreateNotification(db *gorm.DB, notification *models.Notification) error
	FindNotificationByID(db *gorm.DB, id string) (*models.Notification, error)
	FindUserNotifications(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	// MarkAsRead ставит read_at только если он ещё пуст
	MarkAsRead(db *gorm.DB, notificationID string, readAt time.Time) error
	MarkAllAsRead(db *gorm.DB, userID string, readAt time.Time) (int64, error)
	DeleteNotification(db *gorm.DB, id string) error
	GetUnreadCount(db *gorm.DB, userID string) (int64, error)
}

// Search criteria for notifications
type NotificationCriteria struct {
	UnreadOnly bool
	Type       models.NotificationType
	Pagination
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) CreateNotification(db *gorm.DB, notification *models.Notification) error {
	if err := r.validateNotification(notification); err != nil {
		return err
	}
	return db.Omit("User").Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindNotificationByID(db *gorm.DB, id string) (*models.Notification, error) {
	var notification models.Notification
	err := db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindUserNotifications(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	query := db.Model(&models.Notification{}).Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Limit(criteria.Limit()).Offset(criteria.Offset()).
		Find(&notifications).Error
	return notifications, total, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, notificationID string, readAt time.Time) error {
	// Повторная отметка не трогает read_at
	err := db.Model(&models.Notification{}).
		Where("id = ? AND read_at IS NULL", notificationID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
		}).Error
	return err
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(db *gorm.DB, userID string, readAt time.Time) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
		})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) DeleteNotification(db *gorm.DB, id string) error {
	result := db.Delete(&models.Notification{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) GetUnreadCount(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) validateNotification(notification *models.Notification) error {
	if notification.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidNotificationData)
	}
	if notification.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidNotificationData)
	}
	if !notification.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidNotificationData, notification.Type)
	}
	return nil
}
