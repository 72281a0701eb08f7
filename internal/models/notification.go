package models

import "time"

type Notification struct {
	BaseModel
	UserID          string           `gorm:"type:varchar(36);not null;index"`
	Type            NotificationType `gorm:"type:varchar(30);not null"`
	Title           string           `gorm:"size:255;not null"`
	Message         string           `gorm:"type:text;not null"`
	RelatedLink     *string          `gorm:"size:255"`
	RelatedEntityID *string          `gorm:"size:36"`
	IsRead          bool             `gorm:"not null;index"`
	ReadAt          *time.Time

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// MarkRead помечает уведомление прочитанным. ReadAt ставится только при первом переходе.
// Возвращает true, если состояние изменилось.
func (n *Notification) MarkRead(now time.Time) bool {
	if n.ReadAt != nil {
		n.IsRead = true
		return false
	}
	n.IsRead = true
	n.ReadAt = &now
	return true
}
