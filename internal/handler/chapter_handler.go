package handler

import (
	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/dto"
	"github.com/rexdotsh/praxis/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ChapterHandler handles chapter generation requests
type ChapterHandler struct {
	service service.ChapterService
}

func NewChapterHandler(service service.ChapterService) *ChapterHandler {
	return &ChapterHandler{service: service}
}

// GenerateChapters handles POST /api/chapters
func (h *ChapterHandler) GenerateChapters(c *fiber.Ctx) error {
	var req dto.ChaptersRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if len(req.Transcript) == 0 && req.Description == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("transcript")}
	}

	resp, err := h.service.GenerateChapters(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
