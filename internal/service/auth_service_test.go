package service

import (
	"context"
	"testing"
	"time"

	"github.com/rexdotsh/praxis/internal/config"
	"github.com/rexdotsh/praxis/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func signTestToken(t *testing.T, secret string, claims *dto.AuthClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateJWT(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(config.AuthConfig{JWTSecret: testJWTSecret})

	t.Run("ValidToken", func(t *testing.T) {
		tokenString := signTestToken(t, testJWTSecret, &dto.AuthClaims{
			Metadata: dto.AuthMetadata{Subjects: []string{"Mathematics", "Physics"}},
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user_abc123",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		claims, err := svc.ValidateJWT(ctx, tokenString)

		require.NoError(t, err)
		assert.Equal(t, "user_abc123", claims.Subject)
		assert.Equal(t, []string{"Mathematics", "Physics"}, claims.Metadata.Subjects)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		tokenString := signTestToken(t, testJWTSecret, &dto.AuthClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user_abc123",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})

		_, err := svc.ValidateJWT(ctx, tokenString)

		assert.ErrorIs(t, err, ErrExpiredJWTToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		tokenString := signTestToken(t, "other-secret", &dto.AuthClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user_abc123",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		_, err := svc.ValidateJWT(ctx, tokenString)

		assert.ErrorIs(t, err, ErrInvalidJWTToken)
	})

	t.Run("MissingSubject", func(t *testing.T) {
		tokenString := signTestToken(t, testJWTSecret, &dto.AuthClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		_, err := svc.ValidateJWT(ctx, tokenString)

		assert.ErrorIs(t, err, ErrInvalidJWTToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ValidateJWT(ctx, "not-a-token")

		assert.ErrorIs(t, err, ErrInvalidJWTToken)
	})
}
