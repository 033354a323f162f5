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

// QuestionHandler exposes the admin authoring endpoints for MCQ and coding
// questions.
type QuestionHandler struct {
	service   service.AuthoringService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewQuestionHandler constructs the handler.
func NewQuestionHandler(service service.AuthoringService, validator *validator.Validate, logger zerolog.Logger) *QuestionHandler {
	return &QuestionHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "question_handler").Logger(),
	}
}

// Register wires the handler endpoints into the tests router group.
func (h *QuestionHandler) Register(router fiber.Router) {
	router.Post("/:id/mcq-questions", h.createMCQ)
	router.Post("/:id/coding-questions", h.createCoding)
}

func (h *QuestionHandler) createMCQ(c *fiber.Ctx) error {
	testID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CreateMCQQuestionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.CreateMCQQuestion(c.Context(), testID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "mcq question added", response)
}

func (h *QuestionHandler) createCoding(c *fiber.Ctx) error {
	testID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CreateCodingQuestionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.CreateCodingQuestion(c.Context(), testID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "coding question added", response)
}

func (h *QuestionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrTestNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidSelection),
		errors.Is(err, service.ErrMissingExpectedOutput),
		errors.Is(err, service.ErrOptionCountOutOfRange),
		errors.Is(err, service.ErrTestCaseCountOutOfRange),
		errors.Is(err, service.ErrInvalidDifficulty):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("authoring operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
