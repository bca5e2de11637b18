package middlewares

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// BindAndValidate parses the request body into a controller DTO and runs its
// validate tags (oneof guards on document types, reminder channels, and the
// like). Parse errors become 400; validator.ValidationErrors pass through to
// the global handler, which renders them as 422.
func BindAndValidate(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	// NOTE: For batch bodies (product create takes a slice), call
	// ValidateStruct per-element in the controller instead.
	return validate.Struct(dst)
}

// ValidateStruct validates one struct value with the shared validator.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
