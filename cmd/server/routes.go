package main

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/websocket/v2"
	"github.com/noteduco342/rep-messaging/internal/auth"
	"github.com/noteduco342/rep-messaging/internal/cache"
	"github.com/noteduco342/rep-messaging/internal/handlers"
	"github.com/noteduco342/rep-messaging/internal/handlers/ws"
	"github.com/noteduco342/rep-messaging/internal/httpx"
	"github.com/noteduco342/rep-messaging/internal/middleware"
)

type routes struct {
	allowedOrigins string
	authenticator  *auth.Authenticator
	messages       *handlers.MessageHandler
	groups         *handlers.GroupHandler
	invites        *handlers.InviteHandler
	users          *handlers.UserHandler
	socket         *handlers.WebSocketHandler
	registry       *ws.Registry
	presence       *cache.PresenceCache
}

// perMember keys a rate limit by the authenticated member instead of the IP.
func perMember(prefix string, max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if uid, err := httpx.LocalUint(c, "userID"); err == nil {
				return prefix + ":" + strconv.FormatUint(uint64(uid), 10)
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return httpx.Error(c, fiber.StatusTooManyRequests, "rate_limited", "Too many requests")
		},
	})
}

func registerRoutes(app *fiber.App, r routes) {
	api := app.Group("/api",
		middleware.OriginAllowed(r.allowedOrigins),
		middleware.AuthRequired(r.authenticator),
	)

	sendLimit := perMember("send", 120, time.Minute)

	// Direct messages
	api.Post("/messages", sendLimit, r.messages.SendMessage)
	api.Get("/messages", r.messages.GetMessages)
	api.Post("/messages/read", r.messages.MarkRead)
	api.Delete("/messages/:id", r.messages.DeleteMessage)
	api.Delete("/conversations/:peer_id", r.messages.DeleteConversation)

	// Group conversations
	api.Post("/groups", r.groups.CreateGroup)
	api.Patch("/groups/:id", r.groups.UpdateGroup)
	api.Delete("/groups/:id", r.groups.DeleteGroup)
	api.Get("/groups/:id/members", r.groups.GetMembers)
	api.Post("/groups/:id/members", r.groups.AddMembers)
	api.Get("/groups/:id/messages", r.groups.GetMessages)
	api.Post("/groups/:id/messages", sendLimit, r.groups.SendMessage)
	api.Post("/groups/:id/read", r.groups.MarkRead)

	// Blocks
	api.Post("/blocks/:id", r.users.Block)
	api.Delete("/blocks/:id", r.users.Unblock)

	// Goal team invites
	api.Get("/goals/:goal_id/team", r.invites.GetTeam)
	api.Post("/goals/:goal_id/team", r.invites.Invite)
	api.Patch("/goals/:goal_id/team", r.invites.Respond)
	api.Delete("/goals/:goal_id/team/:user_id", r.invites.Remove)
	api.Get("/pending_invites", r.invites.PendingInvites)
	api.Post("/pending_invites/mark_read", r.invites.MarkAllRead)

	// Member settings
	api.Put("/users/me/device-token", r.users.SetDeviceToken)
	api.Get("/users/me/notification-settings", r.users.GetNotificationSettings)
	api.Put("/users/me/notification-settings", r.users.UpdateNotificationSettings)
	api.Get("/presence/:id", r.socket.Presence)

	app.Use("/ws",
		middleware.OriginAllowed(r.allowedOrigins),
		middleware.SocketAuth(r.authenticator),
		handlers.UpgradeRequired,
	)
	app.Get("/ws", websocket.New(r.socket.HandleWebSocket))

	app.Get("/health", func(c *fiber.Ctx) error {
		online, err := r.presence.OnlineCount(c.UserContext())
		if err != nil {
			online = -1
		}
		return c.JSON(fiber.Map{
			"status":         "ok",
			"connections":    r.registry.Count(),
			"members_online": online,
		})
	})
}

// errorHandler renders errors that escaped a handler, such as fiber's own
// routing errors, in the shared error body.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return httpx.Error(c, fe.Code, "http_error", fe.Message)
	}
	return httpx.FromError(c, err)
}
