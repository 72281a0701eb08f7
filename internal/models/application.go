package models

import (
	"time"

	"gorm.io/gorm"
)

type JobApplication struct {
	BaseModel
	UserID      string            `gorm:"type:varchar(36);not null;index"`
	JobID       string            `gorm:"type:varchar(36);not null;index"`
	Status      ApplicationStatus `gorm:"type:varchar(20);not null;index"`
	CoverLetter string            `gorm:"type:text"`
	CVFilename  *string           `gorm:"size:255"`
	AppliedAt   time.Time         `gorm:"not null;index"`
	ReviewedAt  *time.Time
	AdminNotes  *string `gorm:"type:text"`

	// "<user_id>:<job_id>" пока заявка не отозвана, NULL после отзыва.
	// Уникальный индекс по этой колонке гарантирует одну активную заявку на пару.
	ActiveKey *string `gorm:"size:80;uniqueIndex:idx_job_applications_active_key"`

	// Relations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Job  *Job  `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
}

func (a *JobApplication) BeforeCreate(tx *gorm.DB) error {
	a.ActiveKey = ApplicationActiveKey(a.UserID, a.JobID, a.Status)
	return a.BaseModel.BeforeCreate(tx)
}

func (a *JobApplication) IsOwnedBy(userID string) bool {
	return a.UserID == userID
}

func (a *JobApplication) IsWithdrawn() bool {
	return a.Status == ApplicationStatusWithdrawn
}

// ApplicationActiveKey возвращает значение active_key для заданного статуса
func ApplicationActiveKey(userID, jobID string, status ApplicationStatus) *string {
	if status == ApplicationStatusWithdrawn {
		return nil
	}
	key := userID + ":" + jobID
	return &key
}
