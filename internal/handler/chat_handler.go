package handler

import (
	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/dto"
	"github.com/rexdotsh/praxis/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler handles grounded chat requests
type ChatHandler struct {
	service service.ChatService
}

func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.service.Chat(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
