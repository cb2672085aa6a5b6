package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"))

	token, err := svc.Issue("student@example.com", "Test Student")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "student@example.com", claims.Email)
	assert.Equal(t, "Test Student", claims.Name)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_Verify_MissingToken(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"))

	_, err := svc.Verify("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenService([]byte("one-secret")).Issue("a@b.com", "")
	require.NoError(t, err)

	_, err = NewTokenService([]byte("other-secret")).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	expired := Claims{
		Email: "late@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenService(secret).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_WrongAlgorithm(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	claims := Claims{
		Email: "alg@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService(secret).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_EmptyEmailClaim(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"))
	token, err := svc.Issue("", "")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
