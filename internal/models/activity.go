package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserActivity - неизменяемая запись журнала действий пользователя.
// Записи только добавляются.
type UserActivity struct {
	ID                string         `gorm:"type:varchar(36);primaryKey"`
	UserID            string         `gorm:"type:varchar(36);not null;index"`
	Action            ActivityAction `gorm:"type:varchar(50);not null;index"`
	Description       *string        `gorm:"type:text"`
	IPAddress         *string        `gorm:"size:45"`
	UserAgent         *string        `gorm:"size:255"`
	RelatedEntityType *string        `gorm:"size:50"`
	RelatedEntityID   *string        `gorm:"size:36"`
	CreatedAt         time.Time      `gorm:"not null;index"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (a *UserActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
