package dto

import "time"

type ActivityResponse struct {
	ID                string       `json:"id"`
	Action            string       `json:"action"`
	Description       *string      `json:"description,omitempty"`
	IPAddress         *string      `json:"ip_address,omitempty"`
	UserAgent         *string      `json:"user_agent,omitempty"`
	RelatedEntityType *string      `json:"related_entity_type,omitempty"`
	RelatedEntityID   *string      `json:"related_entity_id,omitempty"`
	User              *UserSummary `json:"user,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
}

type ActivityListResponse struct {
	Activities []*ActivityResponse `json:"activities"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}
