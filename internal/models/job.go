package models

type Category struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

type Job struct {
	BaseModel
	Title       string   `gorm:"size:200;not null"`
	Description string   `gorm:"type:text;not null"`
	Company     string   `gorm:"size:100;not null"`
	Location    *string  `gorm:"size:100"`
	Salary      *float64 `gorm:"type:decimal(10,2)"`
	JobType     string   `gorm:"size:50;not null"`
	IsActive    bool     `gorm:"not null;index"`
	CategoryID  string   `gorm:"type:varchar(36);not null;index"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID"`
}
