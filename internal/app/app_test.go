package app_test

import (
	"net/http"
	"testing"

	"jobboard_backend/internal/app"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/storage"
	"jobboard_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type submitResponse struct {
	Message     string `json:"message"`
	Warning     string `json:"warning"`
	Application struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		HasCV  bool   `json:"has_cv"`
	} `json:"application"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) (*testutil.TestServer, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutil.ConfigureAuth()

	db := testutil.NewTestDB(t)
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	container := services.NewServiceContainer(services.Dependencies{
		Storage:   store,
		MaxCVSize: 1024 * 1024,
		Clock:     testutil.FixedClock,
	})
	return testutil.NewTestServer(t, app.SetupRouter(db, container, nil)), db
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	res, _ := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}

func TestApplicationLifecycleOverHTTP(t *testing.T) {
	ts, db := newTestServer(t)
	user := testutil.CreateUser(t, db, "applicant@test.com")
	admin := testutil.CreateAdmin(t, db, "admin@test.com")
	job := testutil.CreateJob(t, db, "Go Developer", "Acme", true)
	userToken := testutil.Token(t, user)
	adminToken := testutil.Token(t, admin)

	// без токена
	res, _ := ts.SendMultipart(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// не PDF
	res, body := ts.SendMultipart(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", userToken,
		map[string]string{"cover_letter": "Hello"},
		testutil.MultipartFile{Field: "cv", Filename: "cv.txt", Content: []byte("plain text resume")})
	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode, body)

	// отклик с PDF
	res, body = ts.SendMultipart(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", userToken,
		map[string]string{"cover_letter": "Hello"},
		testutil.MultipartFile{Field: "cv", Filename: "cv.pdf", Content: testutil.PDF()})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var submitted submitResponse
	testutil.DecodeJSON(t, body, &submitted)
	assert.Equal(t, "pending", submitted.Application.Status)
	assert.True(t, submitted.Application.HasCV)
	appID := submitted.Application.ID

	// повторный отклик
	res, body = ts.SendMultipart(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", userToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
	var conflict errorResponse
	testutil.DecodeJSON(t, body, &conflict)
	assert.Equal(t, "You have already applied for this job!", conflict.Error.Message)

	// резюме скачивается
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/applications/"+appID+"/cv", userToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/pdf", res.Header.Get("Content-Type"))
	assert.Equal(t, string(testutil.PDF()), body)

	// обычный пользователь не может рассматривать заявки
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/admin/applications/"+appID+"/review", userToken,
		map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// недопустимый статус отсекается валидацией
	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/admin/applications/"+appID+"/review", adminToken,
		map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/admin/applications/"+appID+"/review", adminToken,
		map[string]string{"status": "rejected", "admin_notes": "Not this time"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var stored models.JobApplication
	require.NoError(t, db.First(&stored, "id = ?", appID).Error)
	assert.Equal(t, models.ApplicationStatusRejected, stored.Status)

	// отзыв и повторный отзыв
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/applications/"+appID+"/withdraw", userToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/applications/"+appID+"/withdraw", userToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var again struct {
		Warning     string `json:"warning"`
		Application struct {
			Status string `json:"status"`
		} `json:"application"`
	}
	testutil.DecodeJSON(t, body, &again)
	assert.Equal(t, "This application has already been withdrawn!", again.Warning)
	assert.Equal(t, "withdrawn", again.Application.Status)

	// уведомления: submit, review, withdraw
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", userToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var count struct {
		Count int64 `json:"count"`
	}
	testutil.DecodeJSON(t, body, &count)
	assert.Equal(t, int64(3), count.Count)
}

func TestWithdrawForeignApplication(t *testing.T) {
	ts, db := newTestServer(t)
	owner := testutil.CreateUser(t, db, "owner@test.com")
	other := testutil.CreateUser(t, db, "other@test.com")
	job := testutil.CreateJob(t, db, "Go Developer", "Acme", true)

	res, body := ts.SendMultipart(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", testutil.Token(t, owner), nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var submitted submitResponse
	testutil.DecodeJSON(t, body, &submitted)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/applications/"+submitted.Application.ID+"/withdraw", testutil.Token(t, other), nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	var forbidden errorResponse
	testutil.DecodeJSON(t, body, &forbidden)
	assert.Equal(t, "You cannot withdraw this application!", forbidden.Error.Message)
}

// Токен действует только пока аккаунт существует, активен и сохраняет роли.
func TestIssuedTokensFollowAccountChanges(t *testing.T) {
	ts, db := newTestServer(t)
	job := testutil.CreateJob(t, db, "Go Developer", "Acme", true)
	applyPath := "/api/v1/jobs/" + job.ID + "/apply"

	t.Run("deactivated user", func(t *testing.T) {
		user := testutil.CreateUser(t, db, "disabled@test.com")
		token := testutil.Token(t, user)
		require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

		res, body := ts.SendMultipart(t, http.MethodPost, applyPath, token, nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

		var count int64
		require.NoError(t, db.Model(&models.JobApplication{}).Where("user_id = ?", user.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("demoted admin", func(t *testing.T) {
		applicant := testutil.CreateUser(t, db, "applicant@test.com")
		res, body := ts.SendMultipart(t, http.MethodPost, applyPath, testutil.Token(t, applicant), nil)
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
		var submitted submitResponse
		testutil.DecodeJSON(t, body, &submitted)

		admin := testutil.CreateAdmin(t, db, "former-admin@test.com")
		token := testutil.Token(t, admin)
		admin.SetRoles(models.UserRoleUser)
		require.NoError(t, db.Model(&models.User{}).Where("id = ?", admin.ID).Update("roles", admin.Roles).Error)

		res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/admin/applications/"+submitted.Application.ID+"/review", token,
			map[string]string{"status": "accepted"})
		assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

		var stored models.JobApplication
		require.NoError(t, db.First(&stored, "id = ?", submitted.Application.ID).Error)
		assert.Equal(t, models.ApplicationStatusPending, stored.Status)
		assert.Nil(t, stored.ReviewedAt)
	})

	t.Run("deleted user", func(t *testing.T) {
		user := testutil.CreateUser(t, db, "deleted@test.com")
		token := testutil.Token(t, user)
		require.NoError(t, repositories.NewUserRepository().DeleteWithDependents(db, user.ID))

		res, body := ts.SendMultipart(t, http.MethodPost, applyPath, token, nil)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)

		var orphans int64
		require.NoError(t, db.Model(&models.JobApplication{}).Where("user_id = ?", user.ID).Count(&orphans).Error)
		assert.Zero(t, orphans)
	})
}

func TestRegisterLoginAndPublicJobs(t *testing.T) {
	ts, db := newTestServer(t)
	testutil.CreateJob(t, db, "Visible", "Acme", true)
	testutil.CreateJob(t, db, "Hidden", "Acme", false)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":            "new@test.com",
		"password":         "secret123",
		"confirm_password": "secret123",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "new@test.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	testutil.DecodeJSON(t, body, &login)
	assert.NotEmpty(t, login.AccessToken)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var jobs struct {
		Jobs []struct {
			Title string `json:"title"`
		} `json:"jobs"`
		Total int64 `json:"total"`
	}
	testutil.DecodeJSON(t, body, &jobs)
	assert.Equal(t, int64(1), jobs.Total)
	require.Len(t, jobs.Jobs, 1)
	assert.Equal(t, "Visible", jobs.Jobs[0].Title)
}
