package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tabibito/portfolio-api/internal/dto"
	"github.com/tabibito/portfolio-api/internal/service"
	"github.com/tabibito/portfolio-api/internal/utils"
)

// AdminMessageHandler exposes the moderation RPC calls over stored messages.
// The surface is deliberately RPC-shaped rather than REST: each operation is
// one POST with a small JSON body, mirroring how the admin frontend calls it.
type AdminMessageHandler struct {
	service  service.AdminMessageService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAdminMessageHandler constructs the handler.
func NewAdminMessageHandler(service service.AdminMessageService, validate *validator.Validate, logger zerolog.Logger) *AdminMessageHandler {
	return &AdminMessageHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "admin_message_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminMessageHandler) Register(router fiber.Router) {
	router.Post("/list", h.list)
	router.Post("/markAsRead", h.markAsRead)
	router.Post("/delete", h.remove)
}

func (h *AdminMessageHandler) list(c *fiber.Ctx) error {
	// An empty body means defaults: first page, default size.
	var payload dto.MessageListRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}
	if err := h.validate.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.List(c.Context(), actorFromContext(c), payload.Limit, payload.Offset)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return utils.SendError(c, fiber.StatusForbidden, "forbidden")
		}
		h.logger.Error().Err(err).Msg("failed to list messages")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list messages")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminMessageHandler) markAsRead(c *fiber.Ctx) error {
	payload, ok := h.parseAction(c)
	if !ok {
		return nil
	}

	if err := h.service.MarkAsRead(c.Context(), actorFromContext(c), payload.ID); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return utils.SendError(c, fiber.StatusForbidden, "forbidden")
		}
		h.logger.Error().Err(err).Uint("message_id", payload.ID).Msg("failed to mark message as read")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to mark message as read")
	}

	return utils.SendAck(c)
}

func (h *AdminMessageHandler) remove(c *fiber.Ctx) error {
	payload, ok := h.parseAction(c)
	if !ok {
		return nil
	}

	if err := h.service.Delete(c.Context(), actorFromContext(c), payload.ID); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return utils.SendError(c, fiber.StatusForbidden, "forbidden")
		}
		h.logger.Error().Err(err).Uint("message_id", payload.ID).Msg("failed to delete message")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete message")
	}

	return utils.SendAck(c)
}

// parseAction decodes and validates an id-carrying RPC body. When it returns
// false the error response has already been written.
func (h *AdminMessageHandler) parseAction(c *fiber.Ctx) (dto.MessageActionRequest, bool) {
	var payload dto.MessageActionRequest
	if err := c.BodyParser(&payload); err != nil {
		_ = utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		return payload, false
	}
	if err := h.validate.Struct(payload); err != nil {
		_ = utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		return payload, false
	}
	return payload, true
}
