package handler

import (
	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/dto"
	"github.com/rexdotsh/praxis/internal/logger"
	"github.com/rexdotsh/praxis/internal/middleware"
	"github.com/rexdotsh/praxis/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles the quiz lifecycle HTTP requests
type QuizHandler struct {
	quizService service.QuizService
	userService service.UserService
}

func NewQuizHandler(quizService service.QuizService, userService service.UserService) *QuizHandler {
	return &QuizHandler{quizService: quizService, userService: userService}
}

func (h *QuizHandler) resolveUser(c *fiber.Ctx) (*domain.User, error) {
	return h.userService.ResolveSubject(c.Context(), middleware.Subject(c))
}

// Generate handles POST /api/quiz/generate
func (h *QuizHandler) Generate(c *fiber.Ctx) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.quizService.Generate(c.Context(), user.ID, &req)
	if err != nil {
		logger.Get().Error("Quiz generation failed", zap.String("youtubeId", req.YoutubeID), zap.Error(err))
		return err
	}
	return c.JSON(resp)
}

// NextQuestion handles POST /api/quiz/next. The body is JSON null once
// every question has been answered.
func (h *QuizHandler) NextQuestion(c *fiber.Ctx) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	var req dto.NextQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	view, err := h.quizService.NextQuestion(c.Context(), user.ID, &req)
	if err != nil {
		return err
	}
	if view == nil {
		return c.JSON(nil)
	}
	return c.JSON(view)
}

// SubmitAnswer handles POST /api/quiz/answer
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.quizService.SubmitAnswer(c.Context(), user.ID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Finish handles POST /api/quiz/finish
func (h *QuizHandler) Finish(c *fiber.Ctx) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	var req dto.FinishSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.quizService.Finish(c.Context(), user.ID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SessionState handles GET /api/quiz/session
func (h *QuizHandler) SessionState(c *fiber.Ctx) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	sessionID := c.Query("sessionId")
	if sessionID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("sessionId")}
	}

	resp, err := h.quizService.SessionState(c.Context(), user.ID, sessionID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
