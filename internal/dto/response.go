package dto

import "github.com/gofiber/fiber/v2"

// Every portal response is an envelope of Message, ResultCode and one
// payload key; HTTP status carries the error category.
const (
	ResultSuccess = 1
	ResultFailure = 0
)

// Success writes the envelope with a single named payload key.
func Success(c *fiber.Ctx, status int, message, payloadKey string, payload interface{}) error {
	body := fiber.Map{
		"Message":    message,
		"ResultCode": ResultSuccess,
	}
	if payloadKey != "" {
		body[payloadKey] = payload
	}
	return c.Status(status).JSON(body)
}

// SuccessMap writes the envelope with multiple payload keys (list
// endpoints carry both rows and paging totals).
func SuccessMap(c *fiber.Ctx, status int, message string, payload fiber.Map) error {
	body := fiber.Map{
		"Message":    message,
		"ResultCode": ResultSuccess,
	}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// Failure writes the error envelope.
func Failure(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"Message":    message,
		"ResultCode": ResultFailure,
	})
}
