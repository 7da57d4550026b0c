package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/opencampus/doctrack/internal/auth"
	"github.com/opencampus/doctrack/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-with-at-least-32-bytes!!"

func TestNewTokenManagerRejectsShortSecret(t *testing.T) {
	_, err := auth.NewTokenManager("too-short", time.Hour)
	assert.Error(t, err)
}

func TestIssueAndValidate(t *testing.T) {
	manager, err := auth.NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	token, expiresAt, err := manager.Issue("user-1", "DEAN", "des-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "DEAN", claims.Role)
	assert.Equal(t, "des-1", claims.DesignationID)

	actor := claims.Actor()
	assert.Equal(t, workflow.Actor{ID: "user-1", Role: workflow.RoleDean, DesignationID: "des-1"}, actor)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	manager, err := auth.NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	token, _, err := manager.Issue("user-1", "DEAN", "")
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "aaaa"
	_, err = manager.Validate(tampered)
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer, err := auth.NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)
	verifier, err := auth.NewTokenManager(strings.Repeat("z", 32), time.Hour)
	require.NoError(t, err)

	token, _, err := issuer.Issue("user-1", "DEAN", "")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager, err := auth.NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	claims := auth.Claims{
		UserID: "user-1",
		Role:   "DEAN",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "doctrack",
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = manager.Validate(signed)
	assert.Error(t, err)
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	manager, err := auth.NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, auth.Claims{
		UserID:           "user-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.Error(t, err, "alg=none tokens must be refused")
}
