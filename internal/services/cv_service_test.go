package services

import (
	"regexp"
	"strings"
	"testing"

	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/storage"
	"jobboard_backend/internal/testutil"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPDF(t *testing.T) {
	pdf := testutil.PDF()
	text := []byte("hello, this is a plain text resume")

	tests := []struct {
		name         string
		data         []byte
		declaredType string
		filename     string
		want         bool
	}{
		{"pdf content", pdf, "", "upload.bin", true},
		{"pdf content with wrong declared type", pdf, "text/plain", "cv", true},
		{"text with pdf extension", text, "text/plain", "resume.PDF", true},
		{"text with declared pdf type", text, "application/pdf", "resume.txt", false},
		{"empty data falls back to declared type", nil, "application/pdf; charset=binary", "cv", true},
		{"empty data with other type", nil, "text/plain", "cv.doc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPDF(tt.data, tt.declaredType, tt.filename))
		})
	}
}

func TestProfileCVPath_Sanitized(t *testing.T) {
	path := profileCVPath("My Resume (final).pdf")
	assert.Regexp(t, regexp.MustCompile(`^cv/My_Resume_final_[0-9a-f]{13}\.pdf$`), path)

	long := profileCVPath(strings.Repeat("a", 80) + ".pdf")
	assert.Regexp(t, regexp.MustCompile(`^cv/a{50}_[0-9a-f]{13}\.pdf$`), long)

	assert.Regexp(t, regexp.MustCompile(`^cv/cv_[0-9a-f]{13}\.pdf$`), profileCVPath("(((.pdf"))
}

func TestApplicationCVPath(t *testing.T) {
	path := applicationCVPath("user-1", "job-2")
	assert.Regexp(t, regexp.MustCompile(`^applications/app_user-1_job-2_[0-9a-f]{13}\.pdf$`), path)
	assert.NotEqual(t, path, applicationCVPath("user-1", "job-2"))
}

func TestStoreProfileCV_Limits(t *testing.T) {
	f := newFixture(t)
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	small := NewCVService(store, repositories.NewProfileRepository(), 16)

	_, err = small.StoreProfileCV(f.ctx, pdfUpload("big.pdf"))
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

	// Size не заполнен, лимит проверяется по фактически прочитанным байтам
	unsized := pdfUpload("big.pdf")
	unsized.Size = 0
	_, err = small.StoreProfileCV(f.ctx, unsized)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

	_, err = f.svc.CVService.StoreProfileCV(f.ctx, nil)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestResolveForApplication_NoProfile(t *testing.T) {
	f := newFixture(t)

	resolution, err := f.svc.CVService.ResolveForApplication(f.ctx, f.db, "no-such-user", "job", nil)
	require.NoError(t, err)
	assert.Nil(t, resolution.Path)
	assert.Empty(t, resolution.Warning)
}
