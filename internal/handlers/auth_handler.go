package handlers

import (
	"errors"

	"fastzero/internal/models"
	"fastzero/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validate,
	}
}

// RegisterRoutes registers the token endpoint under /token and /auth/token.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/token", h.HandleLogin)
	router.Group("/auth").Post("/token", h.HandleLogin)
}

// HandleLogin exchanges an email and password for a bearer token. The body may be an
// OAuth2 password form or JSON.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if err := h.validate.Struct(req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return fiber.NewError(fiber.StatusUnauthorized, "Incorrect email or password")
		}
		return err
	}

	return c.JSON(token)
}
