package middleware

import (
	"strings"

	"github.com/rexdotsh/praxis/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	// SubjectKey is the fiber.Ctx locals key for the token subject.
	SubjectKey = "authSubject"
	// SubjectsKey is the locals key for the student's subject list claim.
	SubjectsKey = "authSubjects"
)

// Protected requires a valid bearer token. On success the token subject and
// the subject-list metadata claim are stored in the request locals.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(SubjectKey, claims.Subject)
		c.Locals(SubjectsKey, claims.Metadata.Subjects)

		return c.Next()
	}
}

// Subject returns the authenticated token subject, or "" when the request
// did not pass through Protected.
func Subject(c *fiber.Ctx) string {
	if subject, ok := c.Locals(SubjectKey).(string); ok {
		return subject
	}
	return ""
}

// SubjectList returns the student's subject-list claim, possibly nil.
func SubjectList(c *fiber.Ctx) []string {
	if subjects, ok := c.Locals(SubjectsKey).([]string); ok {
		return subjects
	}
	return nil
}
