package services

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	relatedEntityJob         = "Job"
	relatedEntityApplication = "JobApplication"
)

type ApplicationService interface {
	Submit(ctx context.Context, db *gorm.DB, actor auth.Actor, jobID, coverLetter string, cv *dto.FileUpload) (*dto.SubmitApplicationResponse, error)
	// Withdraw для уже отозванной заявки возвращает заявку и ErrAlreadyWithdrawn
	Withdraw(ctx context.Context, db *gorm.DB, actor auth.Actor, applicationID string) (*dto.ApplicationResponse, error)
	Review(ctx context.Context, db *gorm.DB, actor auth.Actor, applicationID string, status models.ApplicationStatus, notes *string) (*dto.ApplicationResponse, error)

	GetMyApplications(db *gorm.DB, userID string, page dto.PageRequest) (*dto.ApplicationListResponse, error)
	GetApplication(db *gorm.DB, actor auth.Actor, applicationID string) (*dto.ApplicationResponse, error)
	ListApplications(db *gorm.DB, filter dto.ApplicationListRequest, page dto.PageRequest) (*dto.ApplicationListResponse, error)
	// OpenCV возвращает поток резюме и имя файла для Content-Disposition
	OpenCV(ctx context.Context, db *gorm.DB, actor auth.Actor, applicationID string) (io.ReadCloser, string, error)
}

type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	cvService       CVService
	notifications   NotificationService
	activities      ActivityService
	mailer          email.Mailer
	clock           Clock
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	cvService CVService,
	notifications NotificationService,
	activities ActivityService,
	mailer email.Mailer,
	clock Clock,
) ApplicationService {
	if clock == nil {
		clock = defaultClock
	}
	if mailer == nil {
		mailer = email.NoopMailer{}
	}
	return &applicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		cvService:       cvService,
		notifications:   notifications,
		activities:      activities,
		mailer:          mailer,
		clock:           clock,
	}
}

// ==========================
// Submit
// ==========================

func (s *applicationService) Submit(ctx context.Context, db *gorm.DB, actor auth.Actor, jobID, coverLetter string, cv *dto.FileUpload) (*dto.SubmitApplicationResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !job.IsActive {
		return nil, apperrors.ErrJobNotActive
	}

	if _, err := s.applicationRepo.FindActiveByUserAndJob(db, actor.UserID, job.ID); err == nil {
		return nil, apperrors.ErrAlreadyApplied
	} else if !errors.Is(err, repositories.ErrApplicationNotFound) {
		return nil, apperrors.InternalError(err)
	}

	application := &models.JobApplication{
		UserID:      actor.UserID,
		JobID:       job.ID,
		Status:      models.ApplicationStatusPending,
		CoverLetter: coverLetter,
		AppliedAt:   s.clock(),
	}

	resolution, err := s.cvService.ResolveForApplication(ctx, db, actor.UserID, job.ID, cv)
	if err != nil {
		return nil, err
	}
	application.CVFilename = resolution.Path

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.applicationRepo.Create(tx, application); err != nil {
			return err
		}
		_, err := s.notifications.Emit(ctx, tx, NotificationInput{
			UserID:          actor.UserID,
			Type:            models.NotificationTypeApplication,
			Title:           "Application Submitted",
			Message:         "Your application for " + job.Title + " at " + job.Company + " has been submitted",
			Link:            "/jobs/" + job.ID,
			RelatedEntityID: application.ID,
		})
		return err
	})
	if err != nil {
		if resolution.Path != nil {
			s.cvService.Discard(ctx, *resolution.Path)
		}
		if errors.Is(err, repositories.ErrActiveApplicationExists) {
			logger.CtxInfo(ctx, "concurrent duplicate application rejected", "user_id", actor.UserID, "job_id", job.ID)
		}
		return nil, mapRepoError(err)
	}

	s.activities.Log(ctx, db, actorEntry(actor, models.ActivityJobApplication, "Applied for job: "+job.Title).
		Related(relatedEntityJob, job.ID))

	application.Job = job
	logger.CtxInfo(ctx, "application submitted",
		"application_id", application.ID,
		"job_id", job.ID,
		"has_cv", resolution.Path != nil,
	)

	return &dto.SubmitApplicationResponse{
		Message:     "Application submitted successfully!",
		Application: buildApplicationResponse(application),
		Warning:     resolution.Warning,
	}, nil
}

// ==========================
// Withdraw
// ==========================

func (s *applicationService) Withdraw(ctx context.Context, db *gorm.DB, actor auth.Actor, applicationID string) (*dto.ApplicationResponse, error) {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !application.IsOwnedBy(actor.UserID) {
		return nil, apperrors.ErrApplicationForbidden
	}
	if application.IsWithdrawn() {
		return buildApplicationResponse(application), apperrors.ErrAlreadyWithdrawn
	}

	jobTitle := applicationJobTitle(application)
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.applicationRepo.MarkWithdrawn(tx, application); err != nil {
			return err
		}
		_, err := s.notifications.Emit(ctx, tx, NotificationInput{
			UserID:          application.UserID,
			Type:            models.NotificationTypeApplication,
			Title:           "Application Withdrawn",
			Message:         "Your application for " + jobTitle + " has been withdrawn",
			RelatedEntityID: application.ID,
		})
		return err
	})
	if errors.Is(err, repositories.ErrApplicationAlreadyWithdrawn) {
		// отозвана параллельным запросом между чтением и UPDATE
		return buildApplicationResponse(application), apperrors.ErrAlreadyWithdrawn
	}
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.activities.Log(ctx, db, actorEntry(actor, models.ActivityWithdrawApplication, "Withdrew application for: "+jobTitle).
		Related(relatedEntityApplication, application.ID))

	return buildApplicationResponse(application), nil
}

// ==========================
// Review
// ==========================

func (s *applicationService) Review(ctx context.Context, db *gorm.DB, actor auth.Actor, applicationID string, status models.ApplicationStatus, notes *string) (*dto.ApplicationResponse, error) {
	if !status.IsReviewOutcome() {
		return nil, apperrors.ErrInvalidReviewStatus
	}

	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if application.IsWithdrawn() {
		return nil, apperrors.ErrApplicationWithdrawn
	}

	if notes != nil {
		trimmed := strings.TrimSpace(*notes)
		notes = optionalString(trimmed)
	}

	jobTitle := applicationJobTitle(application)
	title, message := reviewNotificationText(jobTitle, status)
	reviewedAt := s.clock()

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.applicationRepo.ApplyReview(tx, application, status, notes, reviewedAt); err != nil {
			return err
		}
		_, err := s.notifications.Emit(ctx, tx, NotificationInput{
			UserID:          application.UserID,
			Type:            models.NotificationTypeApplicationStatus,
			Title:           title,
			Message:         message,
			Link:            "/applications/" + application.ID,
			RelatedEntityID: application.ID,
		})
		return err
	})
	if errors.Is(err, repositories.ErrApplicationAlreadyWithdrawn) {
		return nil, apperrors.ErrApplicationWithdrawn
	}
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.activities.Log(ctx, db, actorEntry(actor, models.ActivityJobApplication,
		"Reviewed application for: "+jobTitle+" ("+string(status)+")").
		Related(relatedEntityApplication, application.ID))

	s.sendReviewEmail(ctx, application, status)

	return buildApplicationResponse(application), nil
}

func reviewNotificationText(jobTitle string, status models.ApplicationStatus) (string, string) {
	if status == models.ApplicationStatusAccepted {
		return "Application Accepted", "Great news! Your application for " + jobTitle + " has been accepted!"
	}
	return "Application Rejected", "Your application for " + jobTitle + " has been reviewed and rejected."
}

// sendReviewEmail - письмо заявителю, ошибки только логируются
func (s *applicationService) sendReviewEmail(ctx context.Context, application *models.JobApplication, status models.ApplicationStatus) {
	if application.User == nil || application.User.Email == "" {
		return
	}
	data := email.ApplicationStatusData{
		JobTitle: applicationJobTitle(application),
		Status:   string(status),
		Link:     "/applications/" + application.ID,
	}
	if application.Job != nil {
		data.Company = application.Job.Company
	}
	if application.User.Profile != nil {
		data.RecipientName = application.User.Profile.FullName()
	}
	if data.RecipientName == "" {
		data.RecipientName = application.User.Email
	}

	if err := s.mailer.SendApplicationStatus(ctx, application.User.Email, data); err != nil {
		logger.CtxWithError(ctx, "failed to send review email", err, "application_id", application.ID)
	}
}

// ==========================
// Read models
// ==========================

func (s *applicationService) GetMyApplications(db *gorm.DB, userID string, page dto.PageRequest) (*dto.ApplicationListResponse, error) {
	p := toPagination(page)
	applications, total, err := s.applicationRepo.FindByUser(db, userID, p)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return buildApplicationList(applications, total, p), nil
}

func (s *applicationService) GetApplication(db *gorm.DB, actor auth.Actor, applicationID string) (*dto.ApplicationResponse, error) {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !actor.CanAccess(application.UserID) {
		return nil, apperrors.ErrApplicationAccessDenied
	}
	return buildApplicationResponse(application), nil
}

func (s *applicationService) ListApplications(db *gorm.DB, filter dto.ApplicationListRequest, page dto.PageRequest) (*dto.ApplicationListResponse, error) {
	p := toPagination(page)
	applications, total, err := s.applicationRepo.FindWithFilter(db, repositories.ApplicationFilter{
		Status:     models.ApplicationStatus(filter.Status),
		JobID:      filter.JobID,
		UserID:     filter.UserID,
		Pagination: p,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}
	return buildApplicationList(applications, total, p), nil
}

func (s *applicationService) OpenCV(ctx context.Context, db *gorm.DB, actor auth.Actor, applicationID string) (io.ReadCloser, string, error) {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, "", mapRepoError(err)
	}
	if !actor.CanAccess(application.UserID) {
		return nil, "", apperrors.ErrApplicationAccessDenied
	}
	if !hasCV(application) {
		return nil, "", apperrors.ErrNoCVAttached
	}

	reader, err := s.cvService.Open(ctx, *application.CVFilename)
	if err != nil {
		return nil, "", err
	}
	return reader, path.Base(*application.CVFilename), nil
}

func buildApplicationList(applications []models.JobApplication, total int64, p repositories.Pagination) *dto.ApplicationListResponse {
	items := make([]*dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		items = append(items, buildApplicationResponse(&applications[i]))
	}
	return &dto.ApplicationListResponse{
		Applications: items,
		Total:        total,
		Page:         p.Page,
		PageSize:     p.PageSize,
		TotalPages:   calculateTotalPages(total, p.PageSize),
	}
}

func applicationJobTitle(application *models.JobApplication) string {
	if application.Job != nil {
		return application.Job.Title
	}
	return ""
}
