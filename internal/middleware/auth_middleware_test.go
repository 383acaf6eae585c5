package middleware_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/rexdotsh/praxis/internal/dto"
	"github.com/rexdotsh/praxis/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Manual MockAuthService for testing the middleware.
type ManualMockAuthService struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name             string
		authHeader       string
		setupMock        func(mockSvc *ManualMockAuthService)
		expectedStatus   int
		expectedSubject  string
		expectedSubjects []string
	}{
		{
			name:           "No Auth Header",
			authHeader:     "",
			setupMock:      func(mockSvc *ManualMockAuthService) {},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "Wrong Scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMock:      func(mockSvc *ManualMockAuthService) {},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "Empty Token",
			authHeader:     "Bearer ",
			setupMock:      func(mockSvc *ManualMockAuthService) {},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "Invalid Token",
			authHeader: "Bearer bad-token",
			setupMock: func(mockSvc *ManualMockAuthService) {
				mockSvc.ValidateJWTFunc = func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
					return nil, errors.New("invalid jwt token")
				}
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "Valid Token",
			authHeader: "Bearer good-token",
			setupMock: func(mockSvc *ManualMockAuthService) {
				mockSvc.ValidateJWTFunc = func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
					assert.Equal(t, "good-token", tokenString)
					return &dto.AuthClaims{
						Metadata:         dto.AuthMetadata{Subjects: []string{"Mathematics"}},
						RegisteredClaims: jwt.RegisteredClaims{Subject: "user_abc123"},
					}, nil
				}
			},
			expectedStatus:   fiber.StatusOK,
			expectedSubject:  "user_abc123",
			expectedSubjects: []string{"Mathematics"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuthSvc := &ManualMockAuthService{}
			tt.setupMock(mockAuthSvc)

			var gotSubject string
			var gotSubjects []string
			app := fiber.New()
			app.Get("/protected", middleware.Protected(mockAuthSvc), func(c *fiber.Ctx) error {
				gotSubject = middleware.Subject(c)
				gotSubjects = middleware.SubjectList(c)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set(middleware.AuthorizationHeader, tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == fiber.StatusOK {
				assert.Equal(t, tt.expectedSubject, gotSubject)
				assert.Equal(t, tt.expectedSubjects, gotSubjects)
			}
		})
	}
}
