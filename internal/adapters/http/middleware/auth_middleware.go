package middleware

import (
	"strings"

	"kgtk-simpanse/internal/config"
	"kgtk-simpanse/internal/core/domain"
	"kgtk-simpanse/internal/pkg/jwt"
	"kgtk-simpanse/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware for staff routes
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := tokenFromRequest(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		role := domain.Role(claims.Role)
		if !role.IsStaff() {
			return response.Forbidden(c, "Staff account required")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", role)

		return c.Next()
	}
}

// RequireCapability authorizes the request via the role capability table.
// Must run after AuthMiddleware.
func RequireCapability(cap domain.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !role.Can(cap) {
			return response.Forbidden(c, "You don't have permission to perform this action")
		}
		return c.Next()
	}
}

// OptionalAuth sets the caller's role when a valid token is present,
// defaulting to the anonymous Borrower role otherwise.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("role", domain.RoleBorrower)

		if accessToken := tokenFromRequest(c); accessToken != "" {
			claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
			if err == nil {
				c.Locals("userID", claims.UserID)
				c.Locals("username", claims.Username)
				c.Locals("role", domain.Role(claims.Role))
			}
		}

		return c.Next()
	}
}

func tokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
