package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nepbet-backend/internal/models"
	"nepbet-backend/internal/services"
)

func TestTokenRoundtrip(t *testing.T) {
	svc := services.NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateToken(&models.User{ID: 1001, IsAdmin: false})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), claims.UserID)
	assert.False(t, claims.IsAdmin)
	assert.NotEmpty(t, claims.SessionID)
}

func TestTokenAdminClaim(t *testing.T) {
	svc := services.NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateToken(&models.User{ID: 0, IsAdmin: true})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := services.NewJWTService("secret-a", time.Hour)
	verifier := services.NewJWTService("secret-b", time.Hour)

	token, err := issuer.GenerateToken(&models.User{ID: 1001})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	svc := services.NewJWTService("test-secret", -time.Minute)

	token, err := svc.GenerateToken(&models.User{ID: 1001})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	svc := services.NewJWTService("test-secret", time.Hour)
	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
