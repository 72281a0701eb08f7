package services

import (
	"context"
	"strings"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type JobService interface {
	// Public
	ListActiveJobs(db *gorm.DB, req dto.JobListRequest, page dto.PageRequest) (*dto.JobListResponse, error)
	GetActiveJob(db *gorm.DB, jobID string) (*dto.JobResponse, error)
	ListCategories(db *gorm.DB) ([]*dto.CategoryResponse, error)
	GetCategoryWithJobs(db *gorm.DB, categoryID string) (*dto.CategoryDetailResponse, error)

	// Admin
	ListAllJobs(db *gorm.DB, req dto.JobListRequest, page dto.PageRequest) (*dto.JobListResponse, error)
	GetJob(db *gorm.DB, jobID string) (*dto.JobResponse, error)
	CreateJob(ctx context.Context, db *gorm.DB, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	UpdateJob(ctx context.Context, db *gorm.DB, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	DeleteJob(ctx context.Context, db *gorm.DB, jobID string) error

	CreateCategory(ctx context.Context, db *gorm.DB, req *dto.CategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, db *gorm.DB, categoryID string, req *dto.CategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, db *gorm.DB, categoryID string) error
}

type jobService struct {
	jobRepo         repositories.JobRepository
	categoryRepo    repositories.CategoryRepository
	applicationRepo repositories.ApplicationRepository
	cvService       CVService
}

func NewJobService(
	jobRepo repositories.JobRepository,
	categoryRepo repositories.CategoryRepository,
	applicationRepo repositories.ApplicationRepository,
	cvService CVService,
) JobService {
	return &jobService{
		jobRepo:         jobRepo,
		categoryRepo:    categoryRepo,
		applicationRepo: applicationRepo,
		cvService:       cvService,
	}
}

// ==========================
// Public
// ==========================

func (s *jobService) ListActiveJobs(db *gorm.DB, req dto.JobListRequest, page dto.PageRequest) (*dto.JobListResponse, error) {
	return s.listJobs(db, req, page, true)
}

func (s *jobService) ListAllJobs(db *gorm.DB, req dto.JobListRequest, page dto.PageRequest) (*dto.JobListResponse, error) {
	return s.listJobs(db, req, page, false)
}

func (s *jobService) listJobs(db *gorm.DB, req dto.JobListRequest, page dto.PageRequest, activeOnly bool) (*dto.JobListResponse, error) {
	p := toPagination(page)
	jobs, total, err := s.jobRepo.FindWithFilter(db, repositories.JobFilter{
		Search:     req.Search,
		CategoryID: req.CategoryID,
		ActiveOnly: activeOnly,
		Pagination: p,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	items := make([]*dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, buildJobResponse(&jobs[i]))
	}
	return &dto.JobListResponse{
		Jobs:       items,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: calculateTotalPages(total, p.PageSize),
	}, nil
}

// GetActiveJob - неактивная вакансия для публичного API не существует
func (s *jobService) GetActiveJob(db *gorm.DB, jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !job.IsActive {
		return nil, mapRepoError(repositories.ErrJobNotFound)
	}
	return buildJobResponse(job), nil
}

func (s *jobService) GetJob(db *gorm.DB, jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return buildJobResponse(job), nil
}

func (s *jobService) ListCategories(db *gorm.DB) ([]*dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(db)
	if err != nil {
		return nil, mapRepoError(err)
	}
	items := make([]*dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, buildCategoryResponse(&categories[i]))
	}
	return items, nil
}

func (s *jobService) GetCategoryWithJobs(db *gorm.DB, categoryID string) (*dto.CategoryDetailResponse, error) {
	category, err := s.categoryRepo.FindByID(db, categoryID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	jobs, err := s.ListActiveJobs(db, dto.JobListRequest{CategoryID: category.ID}, dto.PageRequest{Page: 1, PageSize: maxPageSize})
	if err != nil {
		return nil, err
	}
	return &dto.CategoryDetailResponse{
		Category: buildCategoryResponse(category),
		Jobs:     jobs.Jobs,
	}, nil
}

// ==========================
// Admin: jobs
// ==========================

func (s *jobService) CreateJob(ctx context.Context, db *gorm.DB, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	category, err := s.categoryRepo.FindByID(db, req.CategoryID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	job := &models.Job{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Company:     strings.TrimSpace(req.Company),
		Location:    req.Location,
		Salary:      req.Salary,
		JobType:     req.JobType,
		IsActive:    true,
		CategoryID:  category.ID,
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}

	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, mapRepoError(err)
	}
	job.Category = category

	logger.CtxInfo(ctx, "job created", "job_id", job.ID, "title", job.Title)
	return buildJobResponse(job), nil
}

func (s *jobService) UpdateJob(ctx context.Context, db *gorm.DB, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.Title != nil {
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Company != nil {
		job.Company = strings.TrimSpace(*req.Company)
	}
	if req.Location != nil {
		job.Location = optionalString(strings.TrimSpace(*req.Location))
	}
	if req.Salary != nil {
		job.Salary = req.Salary
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}
	if req.CategoryID != nil && *req.CategoryID != job.CategoryID {
		category, err := s.categoryRepo.FindByID(db, *req.CategoryID)
		if err != nil {
			return nil, mapRepoError(err)
		}
		job.CategoryID = category.ID
		job.Category = category
	}

	if err := s.jobRepo.Update(db, job); err != nil {
		return nil, mapRepoError(err)
	}

	logger.CtxInfo(ctx, "job updated", "job_id", job.ID)
	return buildJobResponse(job), nil
}

// DeleteJob удаляет вакансию вместе с заявками, затем файлы их резюме
func (s *jobService) DeleteJob(ctx context.Context, db *gorm.DB, jobID string) error {
	var cvPaths []string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		paths, err := s.applicationRepo.FindCVPathsByJob(tx, jobID)
		if err != nil {
			return err
		}
		cvPaths = paths
		return s.jobRepo.DeleteWithApplications(tx, jobID)
	})
	if err != nil {
		return mapRepoError(err)
	}

	for _, p := range cvPaths {
		s.cvService.Discard(ctx, p)
	}
	logger.CtxInfo(ctx, "job deleted", "job_id", jobID, "removed_cv_files", len(cvPaths))
	return nil
}

// ==========================
// Admin: categories
// ==========================

func (s *jobService) CreateCategory(ctx context.Context, db *gorm.DB, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(db, category); err != nil {
		return nil, mapRepoError(err)
	}
	logger.CtxInfo(ctx, "category created", "category_id", category.ID, "name", category.Name)
	return buildCategoryResponse(category), nil
}

func (s *jobService) UpdateCategory(ctx context.Context, db *gorm.DB, categoryID string, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(db, categoryID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	category.Name = strings.TrimSpace(req.Name)
	category.Description = req.Description

	if err := s.categoryRepo.Update(db, category); err != nil {
		return nil, mapRepoError(err)
	}
	logger.CtxInfo(ctx, "category updated", "category_id", category.ID)
	return buildCategoryResponse(category), nil
}

// DeleteCategory - категорию с вакансиями удалить нельзя
func (s *jobService) DeleteCategory(ctx context.Context, db *gorm.DB, categoryID string) error {
	count, err := s.categoryRepo.CountJobs(db, categoryID)
	if err != nil {
		return mapRepoError(err)
	}
	if count > 0 {
		return apperrors.ErrCategoryNotEmpty
	}
	if err := s.categoryRepo.Delete(db, categoryID); err != nil {
		return mapRepoError(err)
	}
	logger.CtxInfo(ctx, "category deleted", "category_id", categoryID)
	return nil
}
