package httpx

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/rep-messaging/internal/apperr"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func requestID(c *fiber.Ctx) string {
	if v := c.Locals("requestid"); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func Error(c *fiber.Ctx, status int, code string, message string) error {
	if message == "" {
		message = "Request failed"
	}
	return c.Status(status).JSON(ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestID(c),
	})
}

func Unauthorized(c *fiber.Ctx, code string, message string) error {
	return Error(c, fiber.StatusUnauthorized, code, message)
}

func Forbidden(c *fiber.Ctx, code string, message string) error {
	return Error(c, fiber.StatusForbidden, code, message)
}

func Internal(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusInternalServerError, code, "Internal server error")
}

func LocalUint(c *fiber.Ctx, key string) (uint, error) {
	v := c.Locals(key)
	if v == nil {
		return 0, fmt.Errorf("missing local %s", key)
	}
	u, ok := v.(uint)
	if !ok {
		return 0, fmt.Errorf("invalid local %s", key)
	}
	return u, nil
}

// ParamUint parses a positive route parameter.
func ParamUint(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid param %s", name)
	}
	return uint(v), nil
}

// QueryUint parses an optional query value; missing means 0.
func QueryUint(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid query %s", name)
	}
	return uint(v), nil
}

// StatusOf maps an application error code to its HTTP status.
func StatusOf(code apperr.Code) int {
	switch code {
	case apperr.CodeAuth:
		return fiber.StatusUnauthorized
	case apperr.CodeValidation:
		return fiber.StatusBadRequest
	case apperr.CodePermission, apperr.CodeBlocked:
		return fiber.StatusForbidden
	case apperr.CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// FromError writes the response for a service error. Internal causes are
// logged and never echoed to the client.
func FromError(c *fiber.Ctx, err error) error {
	code := apperr.CodeOf(err)
	status := StatusOf(code)
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "request_id", requestID(c), "error", err)
		return Internal(c, "internal_error")
	}
	return Error(c, status, string(code), apperr.MessageOf(err))
}
