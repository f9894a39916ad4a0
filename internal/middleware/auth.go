package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/tabibito/portfolio-api/internal/repository"
	"github.com/tabibito/portfolio-api/internal/utils"
)

// SessionCookie is the cookie name the identity collaborator uses for the
// session token. A bearer header takes precedence when both are present.
const SessionCookie = "session"

// VerifySession validates the session token and stores the caller's openId in
// request locals. It does not consult storage; pair it with LoadUser on routes
// that need the stored role.
func VerifySession(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid session")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid session")
		}

		openID := openIDFromClaims(claims)
		if openID == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid session")
		}

		c.Locals("open_id", openID)
		return c.Next()
	}
}

// LoadUser resolves the authenticated user record and stores its role in
// request locals. Sessions for users that storage does not know are rejected.
func LoadUser(users repository.UserRepository, logger zerolog.Logger) fiber.Handler {
	authLogger := logger.With().Str("component", "auth_middleware").Logger()

	return func(c *fiber.Ctx) error {
		openID, _ := c.Locals("open_id").(string)
		if openID == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		user, err := users.GetByOpenID(c.Context(), openID)
		if err != nil {
			authLogger.Error().Err(err).Str("open_id", openID).Msg("failed to resolve session user")
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid session")
		}
		if user == nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid session")
		}

		c.Locals("user_role", user.Role)
		return c.Next()
	}
}

func tokenFromRequest(c *fiber.Ctx) string {
	authorization := c.Get("Authorization")
	const bearer = "bearer "
	if len(authorization) > len(bearer) && strings.EqualFold(authorization[:len(bearer)], bearer) {
		return strings.TrimSpace(authorization[len(bearer):])
	}
	return strings.TrimSpace(c.Cookies(SessionCookie))
}

func openIDFromClaims(claims jwt.MapClaims) string {
	for _, key := range []string{"sub", "open_id", "openId"} {
		if value, ok := claims[key]; ok {
			if id, ok := value.(string); ok && strings.TrimSpace(id) != "" {
				return strings.TrimSpace(id)
			}
		}
	}
	return ""
}
