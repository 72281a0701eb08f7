package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"jobboard_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("jwt secret is not configured")
)

// Claims - полезная нагрузка access токена
type Claims struct {
	UserID string   `json:"uid"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

func (c *Claims) UserRoles() []models.UserRole {
	roles := make([]models.UserRole, 0, len(c.Roles))
	for _, r := range c.Roles {
		roles = append(roles, models.UserRole(r))
	}
	return roles
}

var (
	mu       sync.RWMutex
	secret   []byte
	tokenTTL = time.Hour
)

// Configure задает секрет и время жизни токенов. Вызывается один раз при старте.
func Configure(jwtSecret string, ttl time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	secret = []byte(jwtSecret)
	if ttl > 0 {
		tokenTTL = ttl
	}
}

func currentSettings() ([]byte, time.Duration) {
	mu.RLock()
	defer mu.RUnlock()
	return secret, tokenTTL
}

// GenerateToken выпускает подписанный HS256 токен для пользователя
func GenerateToken(user *models.User) (string, time.Time, error) {
	key, ttl := currentSettings()
	if len(key) == 0 {
		return "", time.Time{}, ErrMissingSecret
	}

	now := time.Now()
	expiresAt := now.Add(ttl)

	roles := make([]string, 0)
	for _, r := range user.GetRoles() {
		roles = append(roles, string(r))
	}

	claims := &Claims{
		UserID: user.ID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken проверяет подпись и срок действия токена
func ParseToken(tokenString string) (*Claims, error) {
	key, _ := currentSettings()
	if len(key) == 0 {
		return nil, ErrMissingSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
