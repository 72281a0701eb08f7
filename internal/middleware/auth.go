package middleware

import (
	"errors"
	"strings"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/pkg/apperrors"
	"jobboard_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ContextUserIDKey = "userID"
	ContextRolesKey  = "roles"
)

// AuthMiddleware - middleware проверки JWT.
// Пользователь перечитывается из БД на каждый запрос: роли и is_active берутся оттуда, а не из claims.
// Требует DBMiddleware выше по цепочке.
func AuthMiddleware() gin.HandlerFunc {
	userRepo := repositories.NewUserRepository()

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			logger.CtxDebug(c.Request.Context(), "token rejected", "error", err)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		db, ok := requestDB(c)
		if !ok {
			logger.CtxError(c.Request.Context(), "auth middleware: no database in context")
			apperrors.HandleError(c, apperrors.InternalError(errors.New("database is not configured for request")))
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(db.WithContext(c.Request.Context()), claims.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				logger.CtxInfo(c.Request.Context(), "token of deleted user rejected", "user_id", claims.UserID)
				apperrors.HandleError(c, apperrors.ErrInvalidToken)
			} else {
				apperrors.HandleError(c, apperrors.DatabaseError(err))
			}
			c.Abort()
			return
		}
		if !user.IsActive {
			apperrors.HandleError(c, apperrors.ErrUserInactive)
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextRolesKey, user.GetRoles())
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

func requestDB(c *gin.Context) (*gorm.DB, bool) {
	val, exists := c.Get(string(contextkeys.DBContextKey))
	if !exists {
		return nil, false
	}
	db, ok := val.(*gorm.DB)
	return db, ok && db != nil
}

// RoleMiddleware - доступ только при наличии хотя бы одной из ролей
func RoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles := GetRoles(c)
		if len(userRoles) == 0 {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: no role"))
			c.Abort()
			return
		}

		for _, required := range roles {
			for _, r := range userRoles {
				if r == required {
					c.Next()
					return
				}
			}
		}

		apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
		c.Abort()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(ContextUserIDKey)
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}

// GetRoles извлекает роли пользователя из контекста
func GetRoles(c *gin.Context) []models.UserRole {
	val, exists := c.Get(ContextRolesKey)
	if !exists {
		return nil
	}
	roles, _ := val.([]models.UserRole)
	return roles
}

// GetActor собирает Actor из контекста запроса
func GetActor(c *gin.Context) (auth.Actor, bool) {
	userID := GetUserID(c)
	if userID == "" {
		return auth.Actor{}, false
	}
	return auth.Actor{
		UserID:    userID,
		Roles:     GetRoles(c),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}, true
}
