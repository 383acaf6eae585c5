package handler

import (
	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/dto"
	"github.com/rexdotsh/praxis/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SuggestionHandler handles chat-suggestion requests
type SuggestionHandler struct {
	service service.SuggestionService
}

func NewSuggestionHandler(service service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

// GetSuggestions handles POST /api/suggestions
func (h *SuggestionHandler) GetSuggestions(c *fiber.Ctx) error {
	var req dto.SuggestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.YoutubeID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("youtubeId")}
	}

	resp, err := h.service.GetSuggestions(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
