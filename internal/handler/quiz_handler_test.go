package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/dto"
	"github.com/rexdotsh/praxis/internal/handler"
	"github.com/rexdotsh/praxis/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockQuizService
type MockQuizService struct {
	GenerateFunc     func(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	NextQuestionFunc func(ctx context.Context, userID string, req *dto.NextQuestionRequest) (*dto.QuestionView, error)
	SubmitAnswerFunc func(ctx context.Context, userID string, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	FinishFunc       func(ctx context.Context, userID string, req *dto.FinishSessionRequest) (*dto.QuizResultsResponse, error)
	SessionStateFunc func(ctx context.Context, userID string, sessionID string) (*dto.SessionStateResponse, error)
}

func (m *MockQuizService) Generate(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, userID, req)
	}
	panic("MockQuizService.GenerateFunc not implemented")
}
func (m *MockQuizService) NextQuestion(ctx context.Context, userID string, req *dto.NextQuestionRequest) (*dto.QuestionView, error) {
	if m.NextQuestionFunc != nil {
		return m.NextQuestionFunc(ctx, userID, req)
	}
	panic("MockQuizService.NextQuestionFunc not implemented")
}
func (m *MockQuizService) SubmitAnswer(ctx context.Context, userID string, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	if m.SubmitAnswerFunc != nil {
		return m.SubmitAnswerFunc(ctx, userID, req)
	}
	panic("MockQuizService.SubmitAnswerFunc not implemented")
}
func (m *MockQuizService) Finish(ctx context.Context, userID string, req *dto.FinishSessionRequest) (*dto.QuizResultsResponse, error) {
	if m.FinishFunc != nil {
		return m.FinishFunc(ctx, userID, req)
	}
	panic("MockQuizService.FinishFunc not implemented")
}
func (m *MockQuizService) SessionState(ctx context.Context, userID string, sessionID string) (*dto.SessionStateResponse, error) {
	if m.SessionStateFunc != nil {
		return m.SessionStateFunc(ctx, userID, sessionID)
	}
	panic("MockQuizService.SessionStateFunc not implemented")
}

// MockUserService
type MockUserService struct {
	ResolveSubjectFunc func(ctx context.Context, subject string) (*domain.User, error)
}

func (m *MockUserService) ResolveSubject(ctx context.Context, subject string) (*domain.User, error) {
	if m.ResolveSubjectFunc != nil {
		return m.ResolveSubjectFunc(ctx, subject)
	}
	panic("MockUserService.ResolveSubjectFunc not implemented")
}

func resolveTestUser(ctx context.Context, subject string) (*domain.User, error) {
	if subject == "" {
		return nil, domain.NewUnauthorizedError("no identity subject resolved")
	}
	return &domain.User{ID: "user-1", Subject: subject}, nil
}

func newQuizTestApp(quizSvc *MockQuizService) *fiber.App {
	userSvc := &MockUserService{ResolveSubjectFunc: resolveTestUser}
	quizHandler := handler.NewQuizHandler(quizSvc, userSvc)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	authed := func(c *fiber.Ctx) error {
		c.Locals(middleware.SubjectKey, "subject-abc")
		return c.Next()
	}
	app.Post("/api/quiz/generate", authed, quizHandler.Generate)
	app.Post("/api/quiz/next", authed, quizHandler.NextQuestion)
	app.Post("/api/quiz/answer", authed, quizHandler.SubmitAnswer)
	app.Post("/api/quiz/finish", authed, quizHandler.Finish)
	app.Get("/api/quiz/session", authed, quizHandler.SessionState)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, []byte) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestQuizHandler_Generate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		quizSvc := &MockQuizService{
			GenerateFunc: func(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
				assert.Equal(t, "user-1", userID)
				assert.Equal(t, "dQw4w9WgXcQ", req.YoutubeID)
				return &dto.GenerateQuizResponse{QuizID: "quiz-1", SessionID: "session-1", Total: 5}, nil
			},
		}
		app := newQuizTestApp(quizSvc)

		status, body := postJSON(t, app, "/api/quiz/generate", dto.GenerateQuizRequest{
			YoutubeID:         "dQw4w9WgXcQ",
			TranscriptContext: "vectors",
			ContextSpec:       dto.ContextSpec{Type: "minutes", Value: 10},
		})

		assert.Equal(t, fiber.StatusOK, status)
		var resp dto.GenerateQuizResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "quiz-1", resp.QuizID)
		assert.Equal(t, 5, resp.Total)
	})

	t.Run("ValidationErrorsMapTo400", func(t *testing.T) {
		quizSvc := &MockQuizService{
			GenerateFunc: func(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
				return nil, domain.ValidationErrors{domain.NewMissingFieldError("youtubeId")}
			},
		}
		app := newQuizTestApp(quizSvc)

		status, body := postJSON(t, app, "/api/quiz/generate", dto.GenerateQuizRequest{})

		assert.Equal(t, fiber.StatusBadRequest, status)
		var errResp middleware.ValidationErrorResponse
		require.NoError(t, json.Unmarshal(body, &errResp))
		assert.Equal(t, string(domain.CodeValidation), errResp.Code)
		require.Len(t, errResp.Errors, 1)
		assert.Equal(t, "youtubeId", errResp.Errors[0].Field)
	})

	t.Run("LLMFailureMapsTo503", func(t *testing.T) {
		quizSvc := &MockQuizService{
			GenerateFunc: func(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
				return nil, domain.NewLLMServiceError(assert.AnError)
			},
		}
		app := newQuizTestApp(quizSvc)

		status, _ := postJSON(t, app, "/api/quiz/generate", dto.GenerateQuizRequest{
			YoutubeID:         "dQw4w9WgXcQ",
			TranscriptContext: "vectors",
		})

		assert.Equal(t, fiber.StatusServiceUnavailable, status)
	})
}

func TestQuizHandler_NextQuestion(t *testing.T) {
	t.Run("ReturnsQuestion", func(t *testing.T) {
		quizSvc := &MockQuizService{
			NextQuestionFunc: func(ctx context.Context, userID string, req *dto.NextQuestionRequest) (*dto.QuestionView, error) {
				return &dto.QuestionView{ID: "q1", Prompt: "Pick one", Options: []string{"a", "b", "c", "d"}, Index: 0, Total: 5}, nil
			},
		}
		app := newQuizTestApp(quizSvc)

		status, body := postJSON(t, app, "/api/quiz/next", dto.NextQuestionRequest{SessionID: "session-1", QuizID: "quiz-1"})

		assert.Equal(t, fiber.StatusOK, status)
		var view map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &view))
		assert.Equal(t, "q1", view["_id"])
	})

	t.Run("JSONNullWhenExhausted", func(t *testing.T) {
		quizSvc := &MockQuizService{
			NextQuestionFunc: func(ctx context.Context, userID string, req *dto.NextQuestionRequest) (*dto.QuestionView, error) {
				return nil, nil
			},
		}
		app := newQuizTestApp(quizSvc)

		status, body := postJSON(t, app, "/api/quiz/next", dto.NextQuestionRequest{SessionID: "session-1", QuizID: "quiz-1"})

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "null", string(body))
	})

	t.Run("ForeignSessionStaysGeneric500", func(t *testing.T) {
		quizSvc := &MockQuizService{
			NextQuestionFunc: func(ctx context.Context, userID string, req *dto.NextQuestionRequest) (*dto.QuestionView, error) {
				return nil, domain.NewInternalError("invalid session", nil)
			},
		}
		app := newQuizTestApp(quizSvc)

		status, _ := postJSON(t, app, "/api/quiz/next", dto.NextQuestionRequest{SessionID: "stolen", QuizID: "quiz-1"})

		assert.Equal(t, fiber.StatusInternalServerError, status)
	})
}

func TestQuizHandler_SessionState(t *testing.T) {
	t.Run("RequiresSessionID", func(t *testing.T) {
		app := newQuizTestApp(&MockQuizService{})

		req := httptest.NewRequest("GET", "/api/quiz/session", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("SanitizedState", func(t *testing.T) {
		quizSvc := &MockQuizService{
			SessionStateFunc: func(ctx context.Context, userID string, sessionID string) (*dto.SessionStateResponse, error) {
				assert.Equal(t, "session-1", sessionID)
				return &dto.SessionStateResponse{
					Questions: []dto.SessionQuestion{
						{QuestionID: "q1", Prompt: "Pick one", Options: []string{"a", "b", "c", "d"}, SelectedIndex: 2},
						{QuestionID: "q2", Prompt: "Pick two", Options: []string{"a", "b", "c", "d"}, SelectedIndex: -1},
					},
					Answered: 1,
					Total:    2,
				}, nil
			},
		}
		app := newQuizTestApp(quizSvc)

		req := httptest.NewRequest("GET", "/api/quiz/session?sessionId=session-1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "correctIndex")
	})
}
