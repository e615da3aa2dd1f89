package handlers

import (
	"errors"
	"fmt"
	"log"

	"fastzero/internal/repositories"
	"fastzero/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders errors returned by handlers as {"message": ...} bodies.
// Validation errors additionally list every failed field.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"message": fiberErr.Message,
		})
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}

// userError maps service and repository errors to HTTP errors. Anything unknown is passed
// through and ends up as a 500.
func userError(err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, "Not allowed")
	case errors.Is(err, repositories.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	case errors.Is(err, repositories.ErrUsernameTaken):
		return fiber.NewError(fiber.StatusConflict, "Username already exists")
	case errors.Is(err, repositories.ErrEmailTaken):
		return fiber.NewError(fiber.StatusConflict, "Email already exists")
	case errors.Is(err, repositories.ErrDuplicateUser):
		return fiber.NewError(fiber.StatusConflict, "Username or email already exists")
	}
	return err
}

func invalidBody(err error) error {
	log.Printf("Error parsing request body: %v", err)
	return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
}
