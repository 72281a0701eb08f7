package auth

import (
	"testing"
	"time"

	"jobboard_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	Configure("test-secret", time.Hour)

	user := &models.User{}
	user.ID = "user-1"
	user.SetRoles(models.UserRoleAdmin)

	token, expiresAt, err := GenerateToken(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.ElementsMatch(t, []models.UserRole{models.UserRoleUser, models.UserRoleAdmin}, claims.UserRoles())
}

func TestParseToken_RejectsForeignSignature(t *testing.T) {
	Configure("test-secret", time.Hour)

	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = ParseToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	Configure("test-secret", time.Hour)

	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHelpers(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
	assert.False(t, IsPasswordStrongEnough("12345"))
	assert.True(t, IsPasswordStrongEnough("123456"))
}

func TestActor_CanAccess(t *testing.T) {
	owner := Actor{UserID: "u1", Roles: []models.UserRole{models.UserRoleUser}}
	stranger := Actor{UserID: "u2", Roles: []models.UserRole{models.UserRoleUser}}
	admin := Actor{UserID: "a1", Roles: []models.UserRole{models.UserRoleUser, models.UserRoleAdmin}}

	assert.True(t, owner.CanAccess("u1"))
	assert.False(t, stranger.CanAccess("u1"))
	assert.True(t, admin.CanAccess("u1"))
}
