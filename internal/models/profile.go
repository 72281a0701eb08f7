package models

type UserProfile struct {
	BaseModel
	UserID     string `gorm:"type:varchar(36);uniqueIndex;not null"`
	FirstName  string `gorm:"size:100"`
	LastName   string `gorm:"size:100"`
	Phone      string `gorm:"size:20"`
	Address    string `gorm:"size:255"`
	City       string `gorm:"size:100"`
	PostalCode string `gorm:"size:20"`
	Bio        string `gorm:"type:text"`
	CVFilename *string `gorm:"size:255"` // путь в storage, cv/...
}

func (p *UserProfile) FullName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		return p.LastName
	}
}
