package utils

import "github.com/gofiber/fiber/v2"

// Business status codes carried inside the envelope. The transport status
// stays 200 except at the token gate (see FailAuthGate).
const (
	CodeSuccess       = 200
	CodeBadRequest    = 400
	CodeUnauthorized  = 401
	CodeForbidden     = 403
	CodeNotFound      = 404
	CodeConflict      = 409
	CodeInternalError = 500
)

type Envelope struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

func Ok(ctx *fiber.Ctx, data interface{}, msg string) error {
	return ctx.Status(fiber.StatusOK).JSON(Envelope{
		Success: true,
		Code:    CodeSuccess,
		Data:    data,
		Message: msg,
	})
}

func Fail(ctx *fiber.Ctx, code int, msg string) error {
	return ctx.Status(fiber.StatusOK).JSON(Envelope{
		Success: false,
		Code:    code,
		Message: msg,
	})
}

// FailAuthGate is the one place a business failure rides the transport
// status: token signature/expiry rejections answer with HTTP 401.
func FailAuthGate(ctx *fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(Envelope{
		Success: false,
		Code:    CodeUnauthorized,
		Message: msg,
	})
}
