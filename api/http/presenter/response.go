package presenter

import "github.com/gofiber/fiber/v2"

// Response is the envelope of every JSON answer of the API.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Success(c *fiber.Ctx, status int, message, token string) error {
	return JSON(c, status, Response{Success: true, Message: message, Token: token})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Success: false, Message: message})
}
