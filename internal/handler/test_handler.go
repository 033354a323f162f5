package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/dto"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/service"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/utils"
)

// TestHandler exposes admin endpoints for test lifecycle management.
type TestHandler struct {
	service   service.TestService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTestHandler constructs the handler.
func NewTestHandler(service service.TestService, validator *validator.Validate, logger zerolog.Logger) *TestHandler {
	return &TestHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "test_handler").Logger(),
	}
}

// Register wires the handler endpoints into the router group.
func (h *TestHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Delete("/:id", h.delete)
}

func (h *TestHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateTestRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "test created", response)
}

func (h *TestHandler) list(c *fiber.Ctx) error {
	response, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "tests retrieved", response)
}

func (h *TestHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "test retrieved", response)
}

func (h *TestHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "test deleted", nil)
}

func (h *TestHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrTestNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("test operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
