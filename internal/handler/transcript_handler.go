package handler

import (
	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/dto"
	"github.com/rexdotsh/praxis/internal/service"

	"github.com/gofiber/fiber/v2"
)

// TranscriptHandler handles transcript HTTP requests
type TranscriptHandler struct {
	service service.TranscriptService
}

func NewTranscriptHandler(service service.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{service: service}
}

// GetTranscript handles GET /api/videos/:id/transcript
func (h *TranscriptHandler) GetTranscript(c *fiber.Ctx) error {
	videoID := c.Params("id")
	if videoID == "" {
		return domain.NewInvalidInputError("video id is required")
	}
	lang := c.Query("lang")

	items, fromCache, err := h.service.GetTranscript(c.Context(), videoID, lang)
	if err != nil {
		return err
	}

	source := "fetch"
	if fromCache {
		source = "cache"
	}

	wireItems := make([]dto.TranscriptItem, 0, len(items))
	for _, it := range items {
		wireItems = append(wireItems, dto.TranscriptItem{
			Text:       it.Text,
			StartMs:    it.StartMs,
			DurationMs: it.DurationMs,
			Lang:       it.Lang,
		})
	}

	return c.JSON(dto.TranscriptResponse{
		VideoID: videoID,
		Items:   wireItems,
		Source:  source,
	})
}

// GetWindow handles GET /api/videos/:id/transcript/window
func (h *TranscriptHandler) GetWindow(c *fiber.Ctx) error {
	videoID := c.Params("id")
	if videoID == "" {
		return domain.NewInvalidInputError("video id is required")
	}

	currentTimeMs := int64(c.QueryInt("currentTimeMs", 0))
	minutes := c.QueryFloat("minutes", 10)
	maxChars := c.QueryInt("maxChars", 0)

	window, err := h.service.GetWindow(c.Context(), videoID, c.Query("lang"), currentTimeMs, minutes, maxChars)
	if err != nil {
		return err
	}

	return c.JSON(dto.TranscriptWindowResponse{
		VideoID: videoID,
		Text:    window.Text,
		StartMs: window.StartMs,
		EndMs:   window.EndMs,
	})
}
