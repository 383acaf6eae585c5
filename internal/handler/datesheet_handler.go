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

// DatesheetHandler handles datesheet parse/store/list requests
type DatesheetHandler struct {
	datesheetService service.DatesheetService
	userService      service.UserService
}

func NewDatesheetHandler(datesheetService service.DatesheetService, userService service.UserService) *DatesheetHandler {
	return &DatesheetHandler{datesheetService: datesheetService, userService: userService}
}

// Parse handles POST /api/datesheets/parse. The allowed-subject list comes
// from the caller's token metadata, not the request body.
func (h *DatesheetHandler) Parse(c *fiber.Ctx) error {
	var req dto.ParseDatesheetRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.datesheetService.Parse(c.Context(), &req, middleware.SubjectList(c))
	if err != nil {
		logger.Get().Error("Datesheet parse failed", zap.Error(err))
		return err
	}
	return c.JSON(resp)
}

// Create handles POST /api/datesheets
func (h *DatesheetHandler) Create(c *fiber.Ctx) error {
	user, err := h.userService.ResolveSubject(c.Context(), middleware.Subject(c))
	if err != nil {
		return err
	}

	var req dto.CreateDatesheetRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.datesheetService.Create(c.Context(), user.ID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List handles GET /api/datesheets
func (h *DatesheetHandler) List(c *fiber.Ctx) error {
	user, err := h.userService.ResolveSubject(c.Context(), middleware.Subject(c))
	if err != nil {
		return err
	}

	resp, err := h.datesheetService.List(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
