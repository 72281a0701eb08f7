package dto

import "time"

type JobListRequest struct {
	Search     string `form:"search" json:"search" validate:"omitempty,max=100"`
	CategoryID string `form:"category" json:"category" validate:"omitempty,max=36"`
}

type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"required"`
	Company     string   `json:"company" validate:"required,max=255"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,max=255"`
	Salary      *float64 `json:"salary,omitempty" validate:"omitempty,gte=0"`
	JobType     string   `json:"job_type" validate:"required,is-job-type"`
	CategoryID  string   `json:"category_id" validate:"required"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type UpdateJobRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Description *string  `json:"description,omitempty"`
	Company     *string  `json:"company,omitempty" validate:"omitempty,max=255"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,max=255"`
	Salary      *float64 `json:"salary,omitempty" validate:"omitempty,gte=0"`
	JobType     *string  `json:"job_type,omitempty" validate:"omitempty,is-job-type"`
	CategoryID  *string  `json:"category_id,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type JobResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Company     string            `json:"company"`
	Location    *string           `json:"location,omitempty"`
	Salary      *float64          `json:"salary,omitempty"`
	JobType     string            `json:"job_type"`
	IsActive    bool              `json:"is_active"`
	Category    *CategoryResponse `json:"category,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type JobListResponse struct {
	Jobs       []*JobResponse `json:"jobs"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// ---------------- Categories ----------------

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryDetailResponse struct {
	Category *CategoryResponse `json:"category"`
	Jobs     []*JobResponse    `json:"jobs"`
}
