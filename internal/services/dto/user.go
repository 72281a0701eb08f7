package dto

import "time"

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	IsActive  bool      `json:"is_active"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserSummary - краткая информация о пользователе внутри других ответов
type UserSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// ---------------- Admin ----------------

type AdminUserListRequest struct {
	Search   string `form:"search" json:"search" validate:"omitempty,max=100"`
	IsActive *bool  `form:"is_active" json:"is_active"`
}

type AdminUpdateUserRequest struct {
	Roles    []string `json:"roles,omitempty" validate:"omitempty,min=1,dive,is-user-role"`
	IsActive *bool    `json:"is_active,omitempty"`
}

type UserListResponse struct {
	Users      []*UserResponse `json:"users"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}
