package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MessageResponse acknowledges a successful operation with a human-readable message.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AckResponse acknowledges a successful operation with no further payload.
type AckResponse struct {
	Success bool `json:"success"`
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   message,
	})
}

// SendMessage sends a 200 response carrying a confirmation message.
func SendMessage(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "success"
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Success: true,
		Message: message,
	})
}

// SendAck sends a bare 200 success acknowledgement.
func SendAck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(AckResponse{Success: true})
}
