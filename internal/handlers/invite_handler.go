package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/rep-messaging/internal/httpx"
	"github.com/noteduco342/rep-messaging/internal/service"
)

type InviteHandler struct {
	invites *service.InviteService
}

func NewInviteHandler(invites *service.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

type inviteRequest struct {
	Users []uint `json:"users" validate:"required,min=1,max=200"`
}

type respondRequest struct {
	Action string `json:"action" validate:"required,oneof=accept decline mark_as_read"`
	Users  []uint `json:"users" validate:"required,min=1,max=200"`
}

func (h *InviteHandler) GetTeam(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return httpx.FromError(c, err)
	}
	goalID, err := param(c, "goal_id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	team, err := h.invites.Team(c.UserContext(), goalID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"team": team})
}

func (h *InviteHandler) Invite(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	goalID, err := param(c, "goal_id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	var req inviteRequest
	if err := bind(c, &req); err != nil {
		return httpx.FromError(c, err)
	}
	results, team, err := h.invites.Invite(c.UserContext(), userID, goalID, req.Users)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"result": results, "team": team})
}

func (h *InviteHandler) Respond(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	goalID, err := param(c, "goal_id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	var req respondRequest
	if err := bind(c, &req); err != nil {
		return httpx.FromError(c, err)
	}
	results, team, err := h.invites.Respond(c.UserContext(), userID, goalID, req.Action, req.Users)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"result": results, "team": team})
}

func (h *InviteHandler) Remove(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	goalID, err := param(c, "goal_id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	inviteeID, err := param(c, "user_id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	team, err := h.invites.Remove(c.UserContext(), userID, goalID, inviteeID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"result": "removed", "team": team})
}

// PendingInvites is polled by clients; it is served through the invite cache.
func (h *InviteHandler) PendingInvites(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	invites, err := h.invites.PendingInvites(c.UserContext(), userID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"invites": invites})
}

func (h *InviteHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	result, err := h.invites.MarkAllRead(c.UserContext(), userID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(result)
}
