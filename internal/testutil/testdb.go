// Package testutil - общие помощники для тестов: in-memory БД, фикстуры, HTTP сервер.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/database"
	"jobboard_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	DefaultPassword = "password123"
	TestJWTSecret   = "my_super_secret_key_for_tests_12345"
)

var dbCounter int64

// FixedTime - "сейчас" для тестов с подменой часов
var FixedTime = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func FixedClock() time.Time { return FixedTime }

// NewTestDB открывает отдельную in-memory sqlite базу с мигрированной схемой.
// Одно соединение: все запросы теста идут последовательно.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, atomic.AddInt64(&dbCounter, 1))

	db, err := database.Open("sqlite", dsn, "test")
	require.NoError(t, err, "не удалось открыть тестовую БД")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// ConfigureAuth выставляет секрет JWT для тестов
func ConfigureAuth() {
	auth.Configure(TestJWTSecret, time.Hour)
}

// CreateUser создает активного пользователя с профилем. Пароль - DefaultPassword.
func CreateUser(t *testing.T, db *gorm.DB, email string, roles ...models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	user := &models.User{Email: email, PasswordHash: hash, IsActive: true}
	user.SetRoles(roles...)
	require.NoError(t, db.Create(user).Error, "не удалось создать пользователя %s", email)

	profile := &models.UserProfile{UserID: user.ID, FirstName: "Test", LastName: "User"}
	require.NoError(t, db.Create(profile).Error)
	user.Profile = profile
	return user
}

// CreateAdmin создает администратора
func CreateAdmin(t *testing.T, db *gorm.DB, email string) *models.User {
	return CreateUser(t, db, email, models.UserRoleAdmin)
}

// Token выдает access token пользователю
func Token(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := auth.GenerateToken(user)
	require.NoError(t, err)
	return token
}

// ActorFor - auth.Actor для пользователя
func ActorFor(user *models.User) auth.Actor {
	return auth.Actor{UserID: user.ID, Roles: user.GetRoles()}
}

func CreateCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Description: name + " jobs"}
	require.NoError(t, db.Create(category).Error)
	return category
}

// CreateJob создает вакансию в новой категории
func CreateJob(t *testing.T, db *gorm.DB, title, company string, active bool) *models.Job {
	t.Helper()
	category := CreateCategory(t, db, fmt.Sprintf("%s category %d", title, atomic.AddInt64(&dbCounter, 1)))
	job := &models.Job{
		Title:       title,
		Description: "Description of " + title,
		Company:     company,
		JobType:     "full-time",
		IsActive:    active,
		CategoryID:  category.ID,
	}
	require.NoError(t, db.Create(job).Error)
	job.Category = category
	return job
}

// PDF - минимальный валидный PDF документ
func PDF() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
}
