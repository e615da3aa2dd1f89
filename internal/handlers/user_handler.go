package handlers

import (
	"fastzero/internal/middleware"
	"fastzero/internal/models"
	"fastzero/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the user routes. Reads and creation are public, update and
// delete go through authRequired.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Put("/:id", authRequired, h.HandleUpdateUser)
	userRoutes.Delete("/:id", authRequired, h.HandleDeleteUser)
}

// HandleCreateUser creates a new user.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	in, err := h.parseUserCreate(c)
	if err != nil {
		return err
	}

	user, err := h.service.CreateUser(c.UserContext(), *in)
	if err != nil {
		return userError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(user.Public())
}

// HandleListUsers returns a page of users selected by offset (or skip) and limit.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	page := models.NewFilterPage()
	if err := c.QueryParser(&page); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid pagination parameters")
	}
	if c.Query("offset") == "" && c.Query("skip") != "" {
		page.Offset = c.QueryInt("skip", -1)
	}
	if err := h.validate.Struct(page); err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.UserContext(), page)
	if err != nil {
		return userError(err)
	}
	return c.JSON(models.PublicUsers(users))
}

// HandleGetUser retrieves a single user by ID.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetUser(c.UserContext(), id)
	if err != nil {
		return userError(err)
	}
	return c.JSON(user.Public())
}

// HandleUpdateUser replaces the caller's own username, email and password.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	in, err := h.parseUserCreate(c)
	if err != nil {
		return err
	}

	user, err := h.service.UpdateUser(c.UserContext(), middleware.CurrentUser(c), id, *in)
	if err != nil {
		return userError(err)
	}
	return c.JSON(user.Public())
}

// HandleDeleteUser deletes the caller's own account.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.UserContext(), middleware.CurrentUser(c), id); err != nil {
		return userError(err)
	}
	return c.JSON(models.Message{Message: "User deleted"})
}

func (h *UserHandler) parseUserCreate(c *fiber.Ctx) (*models.UserCreate, error) {
	var in models.UserCreate
	if err := c.BodyParser(&in); err != nil {
		return nil, invalidBody(err)
	}
	if err := h.validate.Struct(in); err != nil {
		return nil, err
	}
	return &in, nil
}

// userID parses the :id path parameter as a positive integer.
func userID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "User ID must be a positive integer")
	}
	return uint(id), nil
}
