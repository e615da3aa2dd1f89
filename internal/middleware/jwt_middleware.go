package middleware

import (
	"errors"
	"log"
	"strings"

	"fastzero/internal/models"
	"fastzero/internal/services"

	"github.com/gofiber/fiber/v2"
)

const currentUserKey = "current_user"

// AuthRequired is a Fiber middleware that resolves the bearer token to a user.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Not authenticated")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return unauthorized(c, "Not authenticated")
		}

		user, err := authService.CurrentUser(c.UserContext(), parts[1])
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				return unauthorized(c, "Could not validate credentials")
			}
			log.Printf("Error resolving current user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not resolve current user",
			})
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}

func unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": message,
	})
}
