package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/rep-messaging/internal/httpx"
	"github.com/noteduco342/rep-messaging/internal/service"
)

type MessageHandler struct {
	messageService *service.MessageService
	readService    *service.ReadService
}

func NewMessageHandler(messageService *service.MessageService, readService *service.ReadService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		readService:    readService,
	}
}

type sendDirectRequest struct {
	RecipientID uint   `json:"users_id" validate:"required"`
	Message     string `json:"message" validate:"required"`
}

type markReadRequest struct {
	MessageIDs []uint `json:"message_ids" validate:"required,min=1,max=1000"`
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	var req sendDirectRequest
	if err := bind(c, &req); err != nil {
		return httpx.FromError(c, err)
	}

	message, err := h.messageService.SendDirect(c.UserContext(), userID, req.RecipientID, req.Message)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetMessages serves one page of the thread with ?users_id. Pages go back
// in time through ?before_id.
func (h *MessageHandler) GetMessages(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	peerID, err := query(c, "users_id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	beforeID, err := query(c, "before_id")
	if err != nil {
		return httpx.FromError(c, err)
	}

	messages, err := h.messageService.ListDirect(c.UserContext(), userID, peerID, service.DirectListOptions{
		BeforeID:   beforeID,
		Limit:      c.QueryInt("limit"),
		Order:      c.Query("order"),
		MarkAsRead: c.Query("mark_as_read") == "1",
	})
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{
		"messages": messages,
		"count":    len(messages),
	})
}

func (h *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	messageID, err := param(c, "id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	if err := h.messageService.DeleteDirect(c.UserContext(), userID, messageID); err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"result": "deleted"})
}

// DeleteConversation removes the whole direct thread with :peer_id.
func (h *MessageHandler) DeleteConversation(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	peerID, err := param(c, "peer_id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	removed, err := h.messageService.DeleteDirectByPeer(c.UserContext(), userID, peerID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"result": "deleted", "removed": removed})
}

func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	var req markReadRequest
	if err := bind(c, &req); err != nil {
		return httpx.FromError(c, err)
	}
	summary, err := h.readService.MarkDirectRead(c.UserContext(), userID, req.MessageIDs)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(summary)
}
