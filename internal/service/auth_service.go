package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rexdotsh/praxis/internal/config"
	"github.com/rexdotsh/praxis/internal/dto"
	"github.com/rexdotsh/praxis/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrExpiredJWTToken = errors.New("expired jwt token")
)

// AuthService validates provider-issued bearer tokens. Token issuance is the
// provider's job; this service only verifies and extracts claims.
type AuthService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	secret []byte
}

func NewAuthService(cfg config.AuthConfig) AuthService {
	return &authServiceImpl{secret: []byte(cfg.JWTSecret)}
}

// ValidateJWT parses and verifies an HS256 token and returns its claims.
func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredJWTToken
		}
		logger.Get().Debug("JWT validation failed", zap.Error(err))
		return nil, ErrInvalidJWTToken
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}
