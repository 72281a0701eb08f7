package services

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/testutil"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_RecordsApplicationNotificationAndActivity(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)

	resp, err := f.svc.ApplicationService.Submit(f.ctx, f.db, testutil.ActorFor(user), job.ID, "Hire me", nil)
	require.NoError(t, err)

	assert.Equal(t, "Application submitted successfully!", resp.Message)
	assert.Empty(t, resp.Warning)
	assert.Equal(t, string(models.ApplicationStatusPending), resp.Application.Status)
	assert.Equal(t, "Go Developer", resp.Application.JobTitle)
	assert.False(t, resp.Application.HasCV)

	stored := f.application(t, resp.Application.ID)
	assert.Equal(t, "Hire me", stored.CoverLetter)
	assert.Nil(t, stored.CVFilename)
	assert.Nil(t, stored.ReviewedAt)
	assert.WithinDuration(t, testutil.FixedTime, stored.AppliedAt, time.Second)
	require.NotNil(t, stored.ActiveKey)

	notifications := f.notifications(t, user.ID)
	require.Len(t, notifications, 1)
	n := notifications[0]
	assert.Equal(t, models.NotificationTypeApplication, n.Type)
	assert.Equal(t, "Application Submitted", n.Title)
	assert.Equal(t, "Your application for Go Developer at Acme has been submitted", n.Message)
	require.NotNil(t, n.RelatedLink)
	assert.Equal(t, "/jobs/"+job.ID, *n.RelatedLink)
	require.NotNil(t, n.RelatedEntityID)
	assert.Equal(t, resp.Application.ID, *n.RelatedEntityID)
	assert.False(t, n.IsRead)

	activities := f.activities(t, user.ID)
	require.Len(t, activities, 1)
	a := activities[0]
	assert.Equal(t, models.ActivityJobApplication, a.Action)
	assert.Equal(t, "Applied for job: Go Developer", *a.Description)
	assert.Equal(t, "Job", *a.RelatedEntityType)
	assert.Equal(t, job.ID, *a.RelatedEntityID)
}

func TestSubmit_DuplicateIsRejected(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)
	actor := testutil.ActorFor(user)

	_, err := f.svc.ApplicationService.Submit(f.ctx, f.db, actor, job.ID, "", nil)
	require.NoError(t, err)

	_, err = f.svc.ApplicationService.Submit(f.ctx, f.db, actor, job.ID, "again", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)

	assert.Equal(t, int64(1), f.countApplications(t))
	assert.Len(t, f.notifications(t, user.ID), 1)
	assert.Len(t, f.activities(t, user.ID), 1)
}

func TestSubmit_ReapplyAfterWithdraw(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)
	actor := testutil.ActorFor(user)

	first, err := f.svc.ApplicationService.Submit(f.ctx, f.db, actor, job.ID, "", nil)
	require.NoError(t, err)
	_, err = f.svc.ApplicationService.Withdraw(f.ctx, f.db, actor, first.Application.ID)
	require.NoError(t, err)

	second, err := f.svc.ApplicationService.Submit(f.ctx, f.db, actor, job.ID, "second try", nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.Application.ID, second.Application.ID)
	assert.Equal(t, int64(2), f.countApplications(t))

	withdrawn := f.application(t, first.Application.ID)
	assert.Equal(t, models.ApplicationStatusWithdrawn, withdrawn.Status)
	assert.Nil(t, withdrawn.ActiveKey)
}

func TestSubmit_JobMustExistAndBeActive(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	inactive := testutil.CreateJob(t, f.db, "Closed", "Acme", false)
	actor := testutil.ActorFor(user)

	_, err := f.svc.ApplicationService.Submit(f.ctx, f.db, actor, inactive.ID, "", nil)
	assert.ErrorIs(t, err, apperrors.ErrJobNotActive)

	_, err = f.svc.ApplicationService.Submit(f.ctx, f.db, actor, "missing-job", "", nil)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)

	assert.Zero(t, f.countApplications(t))
	assert.Empty(t, f.notifications(t, user.ID))
}

func TestSubmit_NonPDFUploadRejectedWithoutWrites(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)

	cv := upload("resume.txt", "text/plain", []byte("just some plain text, not a pdf"))
	_, err := f.svc.ApplicationService.Submit(f.ctx, f.db, testutil.ActorFor(user), job.ID, "", cv)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)

	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, http.StatusUnsupportedMediaType, appErr.HTTPCode)

	assert.Zero(t, f.countApplications(t))
	assert.Empty(t, f.notifications(t, user.ID))
	assert.Empty(t, f.activities(t, user.ID))

	files, _ := filepath.Glob(filepath.Join(f.baseDir, "applications", "*"))
	assert.Empty(t, files)
}

func TestSubmit_ConcurrentDuplicateHitsUniqueIndex(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)
	actor := testutil.ActorFor(user)

	// вторая отправка проходит предварительную проверку до того, как первая закоммичена
	var competing *dto.SubmitApplicationResponse
	f.afterApplicationRead(t, func() {
		var err error
		competing, err = f.svc.ApplicationService.Submit(f.ctx, f.db, actor, job.ID, "first", nil)
		require.NoError(t, err)
	})

	_, err := f.svc.ApplicationService.Submit(f.ctx, f.db, actor, job.ID, "second", pdfUpload("cv.pdf"))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
	assertHTTPStatus(t, err, http.StatusConflict)

	require.NotNil(t, competing)
	assert.Equal(t, int64(1), f.countApplications(t))
	stored := f.application(t, competing.Application.ID)
	assert.Equal(t, "first", stored.CoverLetter)
	assert.Len(t, f.notifications(t, user.ID), 1)

	// загруженное резюме проигравшей отправки удалено
	files, _ := filepath.Glob(filepath.Join(f.baseDir, "applications", "*"))
	assert.Empty(t, files)
}

func TestSubmit_UploadedCVWinsOverProfileCV(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)

	profilePath, err := f.svc.CVService.StoreProfileCV(f.ctx, pdfUpload("profile.pdf"))
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&models.UserProfile{}).Where("user_id = ?", user.ID).
		Update("cv_filename", profilePath).Error)

	uploaded := append(testutil.PDF(), []byte("% uploaded copy\n")...)
	resp, err := f.svc.ApplicationService.Submit(f.ctx, f.db, testutil.ActorFor(user), job.ID, "",
		upload("fresh.pdf", "application/pdf", uploaded))
	require.NoError(t, err)
	assert.True(t, resp.Application.HasCV)
	assert.Empty(t, resp.Warning)

	stored := f.application(t, resp.Application.ID)
	require.NotNil(t, stored.CVFilename)
	assert.True(t, strings.HasPrefix(*stored.CVFilename, "applications/app_"+user.ID+"_"+job.ID+"_"))
	assert.True(t, strings.HasSuffix(*stored.CVFilename, ".pdf"))
	assert.Equal(t, uploaded, f.readFile(t, *stored.CVFilename))
}

func TestSubmit_CopiesProfileCV(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)

	profilePath, err := f.svc.CVService.StoreProfileCV(f.ctx, pdfUpload("My Resume.pdf"))
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&models.UserProfile{}).Where("user_id = ?", user.ID).
		Update("cv_filename", profilePath).Error)

	resp, err := f.svc.ApplicationService.Submit(f.ctx, f.db, testutil.ActorFor(user), job.ID, "", nil)
	require.NoError(t, err)
	assert.True(t, resp.Application.HasCV)
	assert.Empty(t, resp.Warning)

	stored := f.application(t, resp.Application.ID)
	require.NotNil(t, stored.CVFilename)
	assert.NotEqual(t, profilePath, *stored.CVFilename)
	assert.True(t, strings.HasPrefix(*stored.CVFilename, "applications/"))
	assert.Equal(t, testutil.PDF(), f.readFile(t, *stored.CVFilename))

	// профильный файл остается на месте
	exists, err := f.store.Exists(f.ctx, profilePath)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSubmit_MissingProfileCVFileSubmitsWithoutCV(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)

	require.NoError(t, f.db.Model(&models.UserProfile{}).Where("user_id = ?", user.ID).
		Update("cv_filename", "cv/gone_1234567890abc.pdf").Error)

	resp, err := f.svc.ApplicationService.Submit(f.ctx, f.db, testutil.ActorFor(user), job.ID, "", nil)
	require.NoError(t, err)
	assert.False(t, resp.Application.HasCV)
	assert.Empty(t, resp.Warning)
	assert.Nil(t, f.application(t, resp.Application.ID).CVFilename)
}

func TestSubmit_ActivityFailureDoesNotFailSubmit(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)

	require.NoError(t, f.db.Migrator().DropTable(&models.UserActivity{}))

	resp, err := f.svc.ApplicationService.Submit(f.ctx, f.db, testutil.ActorFor(user), job.ID, "", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Application.ID)
	assert.Equal(t, int64(1), f.countApplications(t))
	assert.Len(t, f.notifications(t, user.ID), 1)
}

func TestWithdraw_OnlyOwner(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner@test.com")
	other := testutil.CreateUser(t, f.db, "other@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)

	resp, err := f.svc.ApplicationService.Submit(f.ctx, f.db, testutil.ActorFor(owner), job.ID, "", nil)
	require.NoError(t, err)

	_, err = f.svc.ApplicationService.Withdraw(f.ctx, f.db, testutil.ActorFor(other), resp.Application.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrApplicationForbidden)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)
	assert.Equal(t, "You cannot withdraw this application!", appErr.Message)

	assert.Equal(t, models.ApplicationStatusPending, f.application(t, resp.Application.ID).Status)
	assert.Empty(t, f.notifications(t, other.ID))
	assert.Empty(t, f.activities(t, other.ID))
}

func TestWithdraw_SecondCallIsSoftNoop(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)
	actor := testutil.ActorFor(user)

	submitted, err := f.svc.ApplicationService.Submit(f.ctx, f.db, actor, job.ID, "", nil)
	require.NoError(t, err)
	appID := submitted.Application.ID

	resp, err := f.svc.ApplicationService.Withdraw(f.ctx, f.db, actor, appID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ApplicationStatusWithdrawn), resp.Status)

	again, err := f.svc.ApplicationService.Withdraw(f.ctx, f.db, actor, appID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyWithdrawn)
	require.NotNil(t, again)
	assert.Equal(t, string(models.ApplicationStatusWithdrawn), again.Status)

	// submit + один withdraw
	notifications := f.notifications(t, user.ID)
	require.Len(t, notifications, 2)
	withdrawn := notifications[1]
	assert.Equal(t, "Application Withdrawn", withdrawn.Title)
	assert.Equal(t, "Your application for Go Developer has been withdrawn", withdrawn.Message)
	assert.Nil(t, withdrawn.RelatedLink)
	require.NotNil(t, withdrawn.RelatedEntityID)
	assert.Equal(t, appID, *withdrawn.RelatedEntityID)

	var withdrawActivities []models.UserActivity
	require.NoError(t, f.db.Where("user_id = ? AND action = ?", user.ID, models.ActivityWithdrawApplication).
		Find(&withdrawActivities).Error)
	require.Len(t, withdrawActivities, 1)
	assert.Equal(t, "JobApplication", *withdrawActivities[0].RelatedEntityType)
	assert.Equal(t, appID, *withdrawActivities[0].RelatedEntityID)
}

func TestWithdraw_ConcurrentWithdrawReportsAlreadyWithdrawn(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)
	actor := testutil.ActorFor(user)

	submitted, err := f.svc.ApplicationService.Submit(f.ctx, f.db, actor, job.ID, "", nil)
	require.NoError(t, err)
	appID := submitted.Application.ID

	f.afterApplicationRead(t, func() {
		_, err := f.svc.ApplicationService.Withdraw(f.ctx, f.db, actor, appID)
		require.NoError(t, err)
	})

	resp, err := f.svc.ApplicationService.Withdraw(f.ctx, f.db, actor, appID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyWithdrawn)
	require.NotNil(t, resp)
	assert.Equal(t, string(models.ApplicationStatusWithdrawn), resp.Status)

	assert.Len(t, f.notifications(t, user.ID), 2)
	var withdrawActivities int64
	require.NoError(t, f.db.Model(&models.UserActivity{}).
		Where("user_id = ? AND action = ?", user.ID, models.ActivityWithdrawApplication).
		Count(&withdrawActivities).Error)
	assert.Equal(t, int64(1), withdrawActivities)
}

func TestReview_ApplicationWithdrawnAfterReadStaysWithdrawn(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	admin := testutil.CreateAdmin(t, f.db, "admin@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)
	actor := testutil.ActorFor(user)

	submitted, err := f.svc.ApplicationService.Submit(f.ctx, f.db, actor, job.ID, "", nil)
	require.NoError(t, err)
	appID := submitted.Application.ID

	f.afterApplicationRead(t, func() {
		_, err := f.svc.ApplicationService.Withdraw(f.ctx, f.db, actor, appID)
		require.NoError(t, err)
	})

	_, err = f.svc.ApplicationService.Review(f.ctx, f.db, testutil.ActorFor(admin), appID, models.ApplicationStatusAccepted, nil)
	assert.ErrorIs(t, err, apperrors.ErrApplicationWithdrawn)

	stored := f.application(t, appID)
	assert.Equal(t, models.ApplicationStatusWithdrawn, stored.Status)
	assert.Nil(t, stored.ActiveKey)
	assert.Nil(t, stored.ReviewedAt)
	// submit + withdraw, уведомления о решении нет
	assert.Len(t, f.notifications(t, user.ID), 2)
	assert.Empty(t, f.activities(t, admin.ID))
	assert.Empty(t, f.mailer.sent)
}

func TestReview_InvalidStatusChangesNothing(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	admin := testutil.CreateAdmin(t, f.db, "admin@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)

	submitted, err := f.svc.ApplicationService.Submit(f.ctx, f.db, testutil.ActorFor(user), job.ID, "", nil)
	require.NoError(t, err)

	for _, status := range []models.ApplicationStatus{"pending", "withdrawn", "maybe", ""} {
		_, err := f.svc.ApplicationService.Review(f.ctx, f.db, testutil.ActorFor(admin), submitted.Application.ID, status, nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidReviewStatus, "status %q", status)
	}

	stored := f.application(t, submitted.Application.ID)
	assert.Equal(t, models.ApplicationStatusPending, stored.Status)
	assert.Nil(t, stored.ReviewedAt)
	assert.Len(t, f.notifications(t, user.ID), 1)
	assert.Empty(t, f.activities(t, admin.ID))
	assert.Empty(t, f.mailer.sent)
}

func TestReview_AcceptNotifiesApplicant(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	admin := testutil.CreateAdmin(t, f.db, "admin@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)

	submitted, err := f.svc.ApplicationService.Submit(f.ctx, f.db, testutil.ActorFor(user), job.ID, "", nil)
	require.NoError(t, err)
	appID := submitted.Application.ID

	resp, err := f.svc.ApplicationService.Review(f.ctx, f.db, testutil.ActorFor(admin), appID,
		models.ApplicationStatusAccepted, strPtr("  Great fit  "))
	require.NoError(t, err)
	assert.Equal(t, string(models.ApplicationStatusAccepted), resp.Status)
	require.NotNil(t, resp.AdminNotes)
	assert.Equal(t, "Great fit", *resp.AdminNotes)

	stored := f.application(t, appID)
	assert.Equal(t, models.ApplicationStatusAccepted, stored.Status)
	require.NotNil(t, stored.ReviewedAt)
	assert.WithinDuration(t, testutil.FixedTime, *stored.ReviewedAt, time.Second)
	require.NotNil(t, stored.ActiveKey, "рассмотренная заявка остается активной")

	notifications := f.notifications(t, user.ID)
	require.Len(t, notifications, 2)
	n := notifications[1]
	assert.Equal(t, models.NotificationTypeApplicationStatus, n.Type)
	assert.Equal(t, "Application Accepted", n.Title)
	assert.Equal(t, "Great news! Your application for Go Developer has been accepted!", n.Message)
	assert.Equal(t, "/applications/"+appID, *n.RelatedLink)

	adminActivities := f.activities(t, admin.ID)
	require.Len(t, adminActivities, 1)
	assert.Equal(t, models.ActivityJobApplication, adminActivities[0].Action)
	assert.Equal(t, "Reviewed application for: Go Developer (accepted)", *adminActivities[0].Description)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "applicant@test.com", f.mailer.sent[0].To)
	assert.Equal(t, "accepted", f.mailer.sent[0].Data.Status)
	assert.Equal(t, "Acme", f.mailer.sent[0].Data.Company)
	assert.Equal(t, "Test User", f.mailer.sent[0].Data.RecipientName)
}

func TestReview_RejectWithBlankNotes(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	admin := testutil.CreateAdmin(t, f.db, "admin@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)

	submitted, err := f.svc.ApplicationService.Submit(f.ctx, f.db, testutil.ActorFor(user), job.ID, "", nil)
	require.NoError(t, err)

	_, err = f.svc.ApplicationService.Review(f.ctx, f.db, testutil.ActorFor(admin), submitted.Application.ID,
		models.ApplicationStatusRejected, strPtr("   "))
	require.NoError(t, err)

	stored := f.application(t, submitted.Application.ID)
	assert.Equal(t, models.ApplicationStatusRejected, stored.Status)
	assert.Nil(t, stored.AdminNotes)

	notifications := f.notifications(t, user.ID)
	require.Len(t, notifications, 2)
	assert.Equal(t, "Application Rejected", notifications[1].Title)
	assert.Equal(t, "Your application for Go Developer has been reviewed and rejected.", notifications[1].Message)
}

func TestReview_WithdrawnApplicationRefused(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	admin := testutil.CreateAdmin(t, f.db, "admin@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)
	actor := testutil.ActorFor(user)

	submitted, err := f.svc.ApplicationService.Submit(f.ctx, f.db, actor, job.ID, "", nil)
	require.NoError(t, err)
	_, err = f.svc.ApplicationService.Withdraw(f.ctx, f.db, actor, submitted.Application.ID)
	require.NoError(t, err)

	_, err = f.svc.ApplicationService.Review(f.ctx, f.db, testutil.ActorFor(admin), submitted.Application.ID,
		models.ApplicationStatusAccepted, nil)
	assert.ErrorIs(t, err, apperrors.ErrApplicationWithdrawn)
	assert.Equal(t, models.ApplicationStatusWithdrawn, f.application(t, submitted.Application.ID).Status)
}

func TestGetApplication_AccessRules(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner@test.com")
	other := testutil.CreateUser(t, f.db, "other@test.com")
	admin := testutil.CreateAdmin(t, f.db, "admin@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)

	submitted, err := f.svc.ApplicationService.Submit(f.ctx, f.db, testutil.ActorFor(owner), job.ID, "", pdfUpload("cv.pdf"))
	require.NoError(t, err)
	appID := submitted.Application.ID

	_, err = f.svc.ApplicationService.GetApplication(f.db, testutil.ActorFor(other), appID)
	assert.ErrorIs(t, err, apperrors.ErrApplicationAccessDenied)

	resp, err := f.svc.ApplicationService.GetApplication(f.db, testutil.ActorFor(admin), appID)
	require.NoError(t, err)
	require.NotNil(t, resp.Applicant)
	assert.Equal(t, "owner@test.com", resp.Applicant.Email)

	reader, name, err := f.svc.ApplicationService.OpenCV(f.ctx, f.db, testutil.ActorFor(owner), appID)
	require.NoError(t, err)
	reader.Close()
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	list, err := f.svc.ApplicationService.GetMyApplications(f.db, owner.ID, dtoPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	assert.Len(t, list.Applications, 1)
}

func TestDeleteJob_RemovesApplicationCVFiles(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "applicant@test.com")
	job := testutil.CreateJob(t, f.db, "Go Developer", "Acme", true)

	submitted, err := f.svc.ApplicationService.Submit(f.ctx, f.db, testutil.ActorFor(user), job.ID, "", pdfUpload("cv.pdf"))
	require.NoError(t, err)
	cvPath := *f.application(t, submitted.Application.ID).CVFilename

	require.NoError(t, f.svc.JobService.DeleteJob(f.ctx, f.db, job.ID))

	assert.Zero(t, f.countApplications(t))
	_, statErr := os.Stat(filepath.Join(f.baseDir, filepath.FromSlash(cvPath)))
	assert.True(t, os.IsNotExist(statErr))
}
