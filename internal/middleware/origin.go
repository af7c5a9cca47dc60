package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/rep-messaging/internal/httpx"
	"github.com/samber/lo"
)

// OriginAllowed rejects browser requests from origins outside the
// comma-separated allow list. Requests without an Origin (mobile clients)
// and an empty list pass through.
func OriginAllowed(allowList string) fiber.Handler {
	allowedOrigins := splitCSV(strings.TrimSpace(allowList))
	return func(c *fiber.Ctx) error {
		origin := strings.TrimSpace(c.Get("Origin"))
		if origin == "" || len(allowedOrigins) == 0 {
			return c.Next()
		}
		if !lo.Contains(allowedOrigins, origin) {
			return httpx.Forbidden(c, "forbidden_origin", "Origin not allowed")
		}
		return c.Next()
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
