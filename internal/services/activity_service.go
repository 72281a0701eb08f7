package services

import (
	"context"
	"unicode/utf8"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"

	"gorm.io/gorm"
)

// ActivityEntry - одна запись журнала действий. Пустые строки сохраняются как NULL.
type ActivityEntry struct {
	UserID            string
	Action            models.ActivityAction
	Description       string
	IPAddress         string
	UserAgent         string
	RelatedEntityType string
	RelatedEntityID   string
}

func (e ActivityEntry) Related(entityType, entityID string) ActivityEntry {
	e.RelatedEntityType = entityType
	e.RelatedEntityID = entityID
	return e
}

type ActivityService interface {
	// Log пишет запись журнала. Ошибки логируются и не возвращаются:
	// сбой журнала не должен ломать основную операцию.
	Log(ctx context.Context, db *gorm.DB, entry ActivityEntry)

	ListForUser(db *gorm.DB, userID string, page dto.PageRequest) (*dto.ActivityListResponse, error)
	ListAll(db *gorm.DB, page dto.PageRequest) (*dto.ActivityListResponse, error)
}

type activityService struct {
	activityRepo repositories.ActivityRepository
	clock        Clock
}

func NewActivityService(activityRepo repositories.ActivityRepository, clock Clock) ActivityService {
	if clock == nil {
		clock = defaultClock
	}
	return &activityService{activityRepo: activityRepo, clock: clock}
}

func (s *activityService) Log(ctx context.Context, db *gorm.DB, entry ActivityEntry) {
	if entry.UserID == "" || !entry.Action.IsValid() {
		logger.CtxWarn(ctx, "activity entry skipped", "user_id", entry.UserID, "action", entry.Action)
		return
	}

	activity := &models.UserActivity{
		UserID:            entry.UserID,
		Action:            entry.Action,
		Description:       optionalString(entry.Description),
		IPAddress:         optionalString(truncate(entry.IPAddress, 45)),
		UserAgent:         optionalString(truncate(entry.UserAgent, 255)),
		RelatedEntityType: optionalString(entry.RelatedEntityType),
		RelatedEntityID:   optionalString(entry.RelatedEntityID),
		CreatedAt:         s.clock(),
	}

	if err := s.activityRepo.Create(db.WithContext(ctx), activity); err != nil {
		logger.CtxWithError(ctx, "failed to record user activity", err,
			"user_id", entry.UserID,
			"action", entry.Action,
		)
	}
}

func (s *activityService) ListForUser(db *gorm.DB, userID string, page dto.PageRequest) (*dto.ActivityListResponse, error) {
	p := toPagination(page)
	activities, total, err := s.activityRepo.FindByUser(db, userID, p)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return buildActivityList(activities, total, p), nil
}

func (s *activityService) ListAll(db *gorm.DB, page dto.PageRequest) (*dto.ActivityListResponse, error) {
	p := toPagination(page)
	activities, total, err := s.activityRepo.FindAll(db, p)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return buildActivityList(activities, total, p), nil
}

func buildActivityList(activities []models.UserActivity, total int64, p repositories.Pagination) *dto.ActivityListResponse {
	items := make([]*dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		items = append(items, buildActivityResponse(&activities[i]))
	}
	return &dto.ActivityListResponse{
		Activities: items,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: calculateTotalPages(total, p.PageSize),
	}
}

// truncate обрезает до max байт, не разрывая UTF-8 символ
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
