package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/rep-messaging/internal/auth"
	"github.com/noteduco342/rep-messaging/internal/httpx"
)

// AuthRequired verifies the bearer token and stores the member id under
// the "userID" local. Nothing downstream reads identity from the body.
func AuthRequired(authenticator *auth.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return httpx.Unauthorized(c, "missing_access_token", "Missing access token")
		}

		identity, err := authenticator.Verify(token)
		if err != nil {
			return httpx.Unauthorized(c, "invalid_access_token", "Invalid or expired token")
		}

		c.Locals("userID", identity.MemberID)
		return c.Next()
	}
}

// SocketAuth runs before the websocket upgrade. A token in the query or the
// Authorization header is verified here and a bad one is refused outright.
// Without either carrier the upgrade proceeds and the socket must present
// the token in its first frame.
func SocketAuth(authenticator *auth.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := auth.TokenFromCarriers(c.Query("token"), c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Next()
		}

		identity, err := authenticator.Verify(token)
		if err != nil {
			return httpx.Unauthorized(c, "invalid_access_token", "Invalid or expired token")
		}
		c.Locals("userID", identity.MemberID)
		return c.Next()
	}
}
