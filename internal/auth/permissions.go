package auth

import "jobboard_backend/internal/models"

// Actor - аутентифицированный пользователь и метаданные запроса.
// Передается в каждую операцию жизненного цикла заявки явно.
type Actor struct {
	UserID    string
	Roles     []models.UserRole
	IPAddress string
	UserAgent string
}

func (a Actor) HasRole(role models.UserRole) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a Actor) IsAdmin() bool {
	return a.HasRole(models.UserRoleAdmin)
}

// CanAccess - владелец ресурса или администратор
func (a Actor) CanAccess(ownerID string) bool {
	return a.UserID == ownerID || a.IsAdmin()
}
