package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tabibito/portfolio-api/internal/dto"
	"github.com/tabibito/portfolio-api/internal/models"
	"github.com/tabibito/portfolio-api/internal/repository"
	"github.com/tabibito/portfolio-api/internal/utils"
)

// AuthHandler bridges the external identity collaborator and local user
// records. It never issues sessions itself; it only syncs profile data for a
// verified session token and answers "who am I" for the admin frontend.
type AuthHandler struct {
	users    repository.UserRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		validate: validate,
		logger:   logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterSync wires the profile sync route (token-only authentication).
func (h *AuthHandler) RegisterSync(router fiber.Router) {
	router.Post("/sync", h.sync)
}

// RegisterMe wires the profile lookup route (full user resolution).
func (h *AuthHandler) RegisterMe(router fiber.Router) {
	router.Get("/me", h.me)
}

func (h *AuthHandler) sync(c *fiber.Ctx) error {
	openID := openIDFromContext(c)
	if openID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.SyncUserRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}
	if err := h.validate.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user := models.User{
		OpenID:      openID,
		Name:        payload.Name,
		Email:       payload.Email,
		LoginMethod: payload.LoginMethod,
	}
	if err := h.users.UpsertByOpenID(c.Context(), &user); err != nil {
		h.logger.Error().Err(err).Str("open_id", openID).Msg("failed to sync user")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to sync user")
	}

	return utils.SendAck(c)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	openID := openIDFromContext(c)
	user, err := h.users.GetByOpenID(c.Context(), openID)
	if err != nil {
		h.logger.Error().Err(err).Str("open_id", openID).Msg("failed to load user")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load user")
	}
	if user == nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid session")
	}

	return c.Status(fiber.StatusOK).JSON(dto.UserResponse{
		OpenID:       user.OpenID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		LastSignedIn: user.LastSignedIn,
	})
}
