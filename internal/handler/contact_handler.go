package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tabibito/portfolio-api/internal/dto"
	"github.com/tabibito/portfolio-api/internal/service"
	"github.com/tabibito/portfolio-api/internal/utils"
)

// User-facing strings for the contact endpoint. These are part of the wire
// contract the frontend matches on, so they never change casually.
const (
	msgSubmitted       = "Contact form submitted successfully"
	errMissingFields   = "Missing required fields"
	errInvalidEmail    = "Invalid email format"
	errMessageTooShort = "Message must be at least 10 characters long"
	errProcessFailed   = "Failed to process contact form"
)

// ContactHandler handles public contact form submissions.
type ContactHandler struct {
	service service.ContactService
	logger  zerolog.Logger
}

// NewContactHandler constructs a contact handler.
func NewContactHandler(service service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger.With().Str("component", "contact_handler").Logger(),
	}
}

// Register wires contact routes.
func (h *ContactHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *ContactHandler) submit(c *fiber.Ctx) error {
	var payload dto.ContactRequest
	if err := c.BodyParser(&payload); err != nil {
		// An unreadable body carries no usable fields.
		return utils.SendError(c, fiber.StatusBadRequest, errMissingFields)
	}

	err := h.service.Submit(c.Context(), payload)
	switch {
	case err == nil:
		return utils.SendMessage(c, msgSubmitted)
	case errors.Is(err, service.ErrMissingFields):
		return utils.SendError(c, fiber.StatusBadRequest, errMissingFields)
	case errors.Is(err, service.ErrInvalidEmail):
		return utils.SendError(c, fiber.StatusBadRequest, errInvalidEmail)
	case errors.Is(err, service.ErrMessageTooShort):
		return utils.SendError(c, fiber.StatusBadRequest, errMessageTooShort)
	case errors.Is(err, service.ErrDuplicateSubmission):
		return utils.SendError(c, fiber.StatusTooManyRequests, "Duplicate submission")
	default:
		h.logger.Error().Err(err).Msg("failed to process contact submission")
		return utils.SendError(c, fiber.StatusInternalServerError, errProcessFailed)
	}
}
