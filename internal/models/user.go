package models

import "gorm.io/datatypes"

type User struct {
	BaseModel
	Email        string                      `gorm:"size:180;uniqueIndex;not null"`
	PasswordHash string                      `gorm:"not null"`
	Roles        datatypes.JSONSlice[string] `gorm:"not null"`
	IsActive     bool                        `gorm:"not null"`

	// Relations
	Profile *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// GetRoles - пустой набор ролей читается как базовая роль user
func (u *User) GetRoles() []UserRole {
	if len(u.Roles) == 0 {
		return []UserRole{UserRoleUser}
	}
	roles := make([]UserRole, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, UserRole(r))
	}
	return roles
}

func (u *User) HasRole(role UserRole) bool {
	for _, r := range u.GetRoles() {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole(UserRoleAdmin)
}

// SetRoles заменяет набор ролей, базовая роль присутствует всегда
func (u *User) SetRoles(roles ...UserRole) {
	set := datatypes.JSONSlice[string]{string(UserRoleUser)}
	for _, r := range roles {
		if r != UserRoleUser {
			set = append(set, string(r))
		}
	}
	u.Roles = set
}
