package services

import (
	"context"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// NotificationInput - данные нового уведомления
type NotificationInput struct {
	UserID          string
	Type            models.NotificationType
	Title           string
	Message         string
	Link            string
	RelatedEntityID string
}

type NotificationService interface {
	// Emit сохраняет непрочитанное уведомление. Вызывается внутри транзакции операции.
	Emit(ctx context.Context, db *gorm.DB, input NotificationInput) (*models.Notification, error)

	// Feed
	List(db *gorm.DB, userID string, page dto.PageRequest) (*dto.NotificationListResponse, error)
	ListUnread(db *gorm.DB, userID string, page dto.PageRequest) (*dto.NotificationListResponse, error)
	UnreadCount(db *gorm.DB, userID string) (int64, error)
	MarkRead(db *gorm.DB, userID, notificationID string) (*dto.NotificationResponse, error)
	MarkAllRead(db *gorm.DB, userID string) (int64, error)
	Delete(db *gorm.DB, userID, notificationID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	clock            Clock
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, clock Clock) NotificationService {
	if clock == nil {
		clock = defaultClock
	}
	return &notificationService{notificationRepo: notificationRepo, clock: clock}
}

func (s *notificationService) Emit(ctx context.Context, db *gorm.DB, input NotificationInput) (*models.Notification, error) {
	if !input.Type.IsValid() {
		return nil, apperrors.ErrInvalidOperation("notification", "unknown notification type: "+string(input.Type))
	}

	notification := &models.Notification{
		UserID:          input.UserID,
		Type:            input.Type,
		Title:           input.Title,
		Message:         input.Message,
		RelatedLink:     optionalString(input.Link),
		RelatedEntityID: optionalString(input.RelatedEntityID),
		IsRead:          false,
	}

	if err := s.notificationRepo.CreateNotification(db.WithContext(ctx), notification); err != nil {
		return nil, mapRepoError(err)
	}
	return notification, nil
}

func (s *notificationService) List(db *gorm.DB, userID string, page dto.PageRequest) (*dto.NotificationListResponse, error) {
	return s.list(db, userID, repositories.NotificationCriteria{Pagination: toPagination(page)})
}

func (s *notificationService) ListUnread(db *gorm.DB, userID string, page dto.PageRequest) (*dto.NotificationListResponse, error) {
	return s.list(db, userID, repositories.NotificationCriteria{UnreadOnly: true, Pagination: toPagination(page)})
}

func (s *notificationService) list(db *gorm.DB, userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notificationRepo.FindUserNotifications(db, userID, criteria)
	if err != nil {
		return nil, mapRepoError(err)
	}

	items := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, buildNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: items,
		Total:         total,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
		TotalPages:    calculateTotalPages(total, criteria.PageSize),
	}, nil
}

func (s *notificationService) UnreadCount(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.GetUnreadCount(db, userID)
	if err != nil {
		return 0, mapRepoError(err)
	}
	return count, nil
}

// findOwned - чужое уведомление выглядит как несуществующее
func (s *notificationService) findOwned(db *gorm.DB, userID, notificationID string) (*models.Notification, error) {
	notification, err := s.notificationRepo.FindNotificationByID(db, notificationID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if notification.UserID != userID {
		return nil, mapRepoError(repositories.ErrNotificationNotFound)
	}
	return notification, nil
}

func (s *notificationService) MarkRead(db *gorm.DB, userID, notificationID string) (*dto.NotificationResponse, error) {
	notification, err := s.findOwned(db, userID, notificationID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	if notification.MarkRead(now) {
		if err := s.notificationRepo.MarkAsRead(db, notification.ID, now); err != nil {
			return nil, mapRepoError(err)
		}
	}
	return buildNotificationResponse(notification), nil
}

func (s *notificationService) MarkAllRead(db *gorm.DB, userID string) (int64, error) {
	updated, err := s.notificationRepo.MarkAllAsRead(db, userID, s.clock())
	if err != nil {
		return 0, mapRepoError(err)
	}
	return updated, nil
}

func (s *notificationService) Delete(db *gorm.DB, userID, notificationID string) error {
	if _, err := s.findOwned(db, userID, notificationID); err != nil {
		return err
	}
	if err := s.notificationRepo.DeleteNotification(db, notificationID); err != nil {
		return mapRepoError(err)
	}
	return nil
}
