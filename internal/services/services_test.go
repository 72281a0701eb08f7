package services

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"jobboard_backend/internal/email"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/storage"
	"jobboard_backend/internal/testutil"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentStatusEmail struct {
	To   string
	Data email.ApplicationStatusData
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentStatusEmail
}

func (m *recordingMailer) Send(ctx context.Context, e *email.Email) error { return nil }

func (m *recordingMailer) SendApplicationStatus(ctx context.Context, to string, data email.ApplicationStatusData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentStatusEmail{To: to, Data: data})
	return nil
}

type fixture struct {
	ctx     context.Context
	db      *gorm.DB
	store   *storage.LocalStorage
	baseDir string
	mailer  *recordingMailer
	svc     *ServiceContainer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	testutil.ConfigureAuth()

	db := testutil.NewTestDB(t)
	baseDir := t.TempDir()
	store, err := storage.NewLocalStorage(storage.Config{BasePath: baseDir})
	require.NoError(t, err)

	mailer := &recordingMailer{}
	svc := NewServiceContainer(Dependencies{
		Storage:   store,
		Mailer:    mailer,
		MaxCVSize: 1024 * 1024,
		Clock:     testutil.FixedClock,
	})
	return &fixture{ctx: context.Background(), db: db, store: store, baseDir: baseDir, mailer: mailer, svc: svc}
}

func upload(filename, contentType string, data []byte) *dto.FileUpload {
	return &dto.FileUpload{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Content:     bytes.NewReader(data),
	}
}

func pdfUpload(filename string) *dto.FileUpload {
	return upload(filename, "application/pdf", testutil.PDF())
}

func (f *fixture) readFile(t *testing.T, path string) []byte {
	t.Helper()
	r, err := f.store.Get(f.ctx, path)
	require.NoError(t, err)
	defer r.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.Bytes()
}

func (f *fixture) notifications(t *testing.T, userID string) []models.Notification {
	t.Helper()
	var items []models.Notification
	require.NoError(t, f.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error)
	return items
}

func (f *fixture) activities(t *testing.T, userID string) []models.UserActivity {
	t.Helper()
	var items []models.UserActivity
	require.NoError(t, f.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error)
	return items
}

func (f *fixture) application(t *testing.T, id string) *models.JobApplication {
	t.Helper()
	var app models.JobApplication
	require.NoError(t, f.db.First(&app, "id = ?", id).Error)
	return &app
}

func (f *fixture) countApplications(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.JobApplication{}).Count(&n).Error)
	return n
}

// afterApplicationRead вызывает fn один раз, сразу после первого SELECT из job_applications.
// Так параллельный запрос успевает закоммитить изменения между чтением и записью сервиса.
func (f *fixture) afterApplicationRead(t *testing.T, fn func()) {
	t.Helper()
	fired := false
	err := f.db.Callback().Query().After("gorm:query").Register("test:after_application_read", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "job_applications" {
			return
		}
		fired = true
		fn()
	})
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }

func dtoPage(page, size int) dto.PageRequest {
	return dto.PageRequest{Page: page, PageSize: size}
}

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "ожидалась AppError, получено %v", err)
	assert.Equal(t, status, appErr.HTTPCode)
}
