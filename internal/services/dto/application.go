package dto

import "time"

// SubmitApplicationRequest - текстовая часть multipart формы отклика
type SubmitApplicationRequest struct {
	CoverLetter string `form:"cover_letter" json:"cover_letter" validate:"omitempty,max=10000"`
}

type ReviewApplicationRequest struct {
	Status     string  `json:"status" validate:"required,is-review-status"`
	AdminNotes *string `json:"admin_notes,omitempty" validate:"omitempty,max=5000"`
}

type ApplicationListRequest struct {
	Status string `form:"status" json:"status" validate:"omitempty,is-application-status"`
	JobID  string `form:"job_id" json:"job_id" validate:"omitempty,max=36"`
	UserID string `form:"user_id" json:"user_id" validate:"omitempty,max=36"`
}

type ApplicationResponse struct {
	ID          string       `json:"id"`
	JobID       string       `json:"job_id"`
	JobTitle    string       `json:"job_title,omitempty"`
	Company     string       `json:"company,omitempty"`
	Status      string       `json:"status"`
	CoverLetter string       `json:"cover_letter"`
	HasCV       bool         `json:"has_cv"`
	AppliedAt   time.Time    `json:"applied_at"`
	ReviewedAt  *time.Time   `json:"reviewed_at,omitempty"`
	AdminNotes  *string      `json:"admin_notes,omitempty"`
	Applicant   *UserSummary `json:"applicant,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type SubmitApplicationResponse struct {
	Message     string               `json:"message"`
	Application *ApplicationResponse `json:"application"`
	Warning     string               `json:"warning,omitempty"`
}

type ApplicationListResponse struct {
	Applications []*ApplicationResponse `json:"applications"`
	Total        int64                  `json:"total"`
	Page         int                    `json:"page"`
	PageSize     int                    `json:"page_size"`
	TotalPages   int                    `json:"total_pages"`
}
