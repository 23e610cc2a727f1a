package sandbox

import "github.com/gofiber/fiber/v2"

func Success(c *fiber.Ctx, status int, data interface{}, message string) error {
	body := fiber.Map{
		"status": "success",
		"data":   data,
	}
	if message != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// FieldError reports a validation failure on one request field.
func FieldError(c *fiber.Ctx, field, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"field":   field,
		"errors":  fiber.Map{field: message},
	})
}
