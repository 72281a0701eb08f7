package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "/files/"})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t)

	require.NoError(t, s.Save(ctx, "cv/resume.pdf", strings.NewReader("%PDF-1.4"), "application/pdf"))

	exists, err := s.Exists(ctx, "cv/resume.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	r, err := s.Get(ctx, "cv/resume.pdf")
	require.NoError(t, err)
	body, _ := io.ReadAll(r)
	r.Close()
	assert.Equal(t, "%PDF-1.4", string(body))

	url, err := s.GetURL(ctx, "cv/resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/files/cv/resume.pdf", url)

	require.NoError(t, s.Delete(ctx, "cv/resume.pdf"))
	require.NoError(t, s.Delete(ctx, "cv/resume.pdf"), "повторное удаление не ошибка")

	_, err = s.Get(ctx, "cv/resume.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_Copy(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t)

	require.NoError(t, s.Save(ctx, "cv/resume.pdf", strings.NewReader("cv-bytes"), "application/pdf"))
	require.NoError(t, Copy(ctx, s, "cv/resume.pdf", "applications/app_1.pdf", "application/pdf"))

	exists, err := s.Exists(ctx, "applications/app_1.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	err = Copy(ctx, s, "cv/missing.pdf", "applications/app_2.pdf", "application/pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_PathsStayInsideRoot(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t)

	require.NoError(t, s.Save(ctx, "../../escape.txt", strings.NewReader("x"), "text/plain"))
	exists, err := s.Exists(ctx, "escape.txt")
	require.NoError(t, err)
	assert.True(t, exists, "../ должен схлопываться внутрь корня хранилища")
}
