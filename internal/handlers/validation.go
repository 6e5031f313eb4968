package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"rewear/internal/models"
	"rewear/internal/repositories"
	"rewear/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// catalogTags are the custom validation tags backed by the item catalog.
var catalogTags = map[string]validator.Func{
	"category": func(fl validator.FieldLevel) bool {
		return models.IsValidCategory(fl.Field().String())
	},
	// Per-category size rules are enforced by the item service.
	"size": func(fl validator.FieldLevel) bool {
		return models.IsValidSize("Footwear", fl.Field().String())
	},
	"condition": func(fl validator.FieldLevel) bool {
		return models.IsValidCondition(fl.Field().String())
	},
}

// NewValidator returns a validator that reports JSON field names and knows
// the catalog tags category, size and condition.
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	var errs []error
	for tag, fn := range catalogTags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			errs = append(errs, fmt.Errorf("register %q validation: %w", tag, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return v, nil
}

func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// validationFailed reports every failed field of a validator error.
func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return badBody(c, err)
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// respondError maps a service error to its HTTP status.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status, message := fiber.StatusInternalServerError, "Internal server error"
	switch {
	case errors.Is(err, services.ErrValidation):
		status, message = fiber.StatusBadRequest, "Validation failed"
	case errors.Is(err, services.ErrInvalidCredentials):
		status, message = fiber.StatusUnauthorized, "Authentication failed"
	case errors.Is(err, services.ErrForbidden):
		status, message = fiber.StatusForbidden, "Forbidden"
	case errors.Is(err, repositories.ErrNotFound):
		status, message = fiber.StatusNotFound, "Not found"
	case errors.Is(err, repositories.ErrInsufficientPoints):
		status, message = fiber.StatusConflict, "Insufficient points"
	case errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, repositories.ErrStatusMismatch),
		errors.Is(err, repositories.ErrDuplicate):
		status, message = fiber.StatusConflict, "Conflict"
	default:
		logger.Error("request failed", zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
