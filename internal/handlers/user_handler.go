package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/rep-messaging/internal/httpx"
	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/noteduco342/rep-messaging/internal/service"
)

type UserHandler struct {
	userService  *service.UserService
	blockService *service.BlockService
}

func NewUserHandler(userService *service.UserService, blockService *service.BlockService) *UserHandler {
	return &UserHandler{userService: userService, blockService: blockService}
}

type deviceTokenRequest struct {
	DeviceToken string `json:"device_token" validate:"max=512"`
}

// SetDeviceToken registers the push target; an empty token unregisters it.
func (h *UserHandler) SetDeviceToken(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	var req deviceTokenRequest
	if err := bind(c, &req); err != nil {
		return httpx.FromError(c, err)
	}
	if err := h.userService.SetDeviceToken(c.UserContext(), userID, req.DeviceToken); err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"result": "ok"})
}

func (h *UserHandler) GetNotificationSettings(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	prefs, err := h.userService.NotificationSettings(c.UserContext(), userID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(prefs)
}

// UpdateNotificationSettings applies only the keys present in the body.
func (h *UserHandler) UpdateNotificationSettings(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	var patch models.NotificationSettings
	if err := bind(c, &patch); err != nil {
		return httpx.FromError(c, err)
	}
	prefs, err := h.userService.UpdateNotificationSettings(c.UserContext(), userID, patch)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(prefs)
}

func (h *UserHandler) Block(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	targetID, err := param(c, "id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	created, err := h.blockService.Block(c.UserContext(), userID, targetID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"result": "blocked"})
}

func (h *UserHandler) Unblock(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	targetID, err := param(c, "id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	removed, err := h.blockService.Unblock(c.UserContext(), userID, targetID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"result": "unblocked", "removed": removed})
}
