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

// SearchHandler handles curated video search requests
type SearchHandler struct {
	searchService service.SearchService
	userService   service.UserService
}

func NewSearchHandler(searchService service.SearchService, userService service.UserService) *SearchHandler {
	return &SearchHandler{searchService: searchService, userService: userService}
}

// Search handles POST /api/search
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	user, err := h.userService.ResolveSubject(c.Context(), middleware.Subject(c))
	if err != nil {
		return err
	}

	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.searchService.Search(c.Context(), user.ID, req.Query)
	if err != nil {
		logger.Get().Error("Search failed", zap.String("query", req.Query), zap.Error(err))
		return err
	}
	return c.JSON(resp)
}
