package services_test

import (
	"testing"
	"time"

	"fastzero/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret"

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokens := services.NewTokenService(testSecret, 30*time.Minute)

	token, err := tokens.Issue("alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims["sub"])
	assert.Contains(t, claims, "exp")
}

func TestTokenService_Expired(t *testing.T) {
	tokens := services.NewTokenService(testSecret, 30*time.Minute)
	token, err := tokens.Issue("alice@example.com")
	require.NoError(t, err)

	later := tokens.WithClock(func() time.Time { return time.Now().Add(31 * time.Minute) })
	_, err = later.Verify(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestTokenService_RejectsUniformly(t *testing.T) {
	tokens := services.NewTokenService(testSecret, time.Hour)

	forged, err := services.NewTokenService("another_secret", time.Hour).Issue("alice@example.com")
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "alice@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice@example.com",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"forged":     forged,
		"none alg":   noneAlg,
		"no expiry":  noExpiry,
		"no subject": noSubject,
		"malformed":  "invalid.token.string",
		"empty":      "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Verify(token)
			assert.Equal(t, services.ErrInvalidToken, err)
		})
	}
}
