package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/rep-messaging/internal/httpx"
	"github.com/noteduco342/rep-messaging/internal/service"
)

type GroupHandler struct {
	conversations *service.ConversationService
	messages      *service.MessageService
	reads         *service.ReadService
}

func NewGroupHandler(conversations *service.ConversationService, messages *service.MessageService, reads *service.ReadService) *GroupHandler {
	return &GroupHandler{
		conversations: conversations,
		messages:      messages,
		reads:         reads,
	}
}

type createGroupRequest struct {
	DisplayName string `json:"display_name" validate:"max=255"`
	MemberIDs   []uint `json:"member_ids" validate:"max=500"`
}

// updateGroupRequest mirrors the manage-chat form: an optional new name plus
// ids to add and remove, applied in that order.
type updateGroupRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=255"`
	AddIDs      []uint  `json:"add_ids" validate:"max=500"`
	RemoveIDs   []uint  `json:"remove_ids" validate:"max=500"`
}

type membersRequest struct {
	MemberIDs []uint `json:"member_ids" validate:"required,min=1,max=500"`
}

type sendGroupRequest struct {
	Message string `json:"message" validate:"required"`
}

type groupReadRequest struct {
	MessageID uint `json:"message_id" validate:"required"`
}

func (h *GroupHandler) CreateGroup(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	var req createGroupRequest
	if err := bind(c, &req); err != nil {
		return httpx.FromError(c, err)
	}
	view, err := h.conversations.Create(c.UserContext(), userID, req.DisplayName, req.MemberIDs)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *GroupHandler) UpdateGroup(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	chatID, err := param(c, "id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	var req updateGroupRequest
	if err := bind(c, &req); err != nil {
		return httpx.FromError(c, err)
	}

	ctx := c.UserContext()
	resp := fiber.Map{}
	if req.DisplayName != nil {
		view, err := h.conversations.Rename(ctx, userID, chatID, *req.DisplayName)
		if err != nil {
			return httpx.FromError(c, err)
		}
		resp["chat"] = view
	}
	if len(req.AddIDs) > 0 {
		added, err := h.conversations.AddMembers(ctx, userID, chatID, req.AddIDs)
		if err != nil {
			return httpx.FromError(c, err)
		}
		resp["added"] = added
	}
	if len(req.RemoveIDs) > 0 {
		removed, err := h.conversations.RemoveMembers(ctx, userID, chatID, req.RemoveIDs)
		if err != nil {
			return httpx.FromError(c, err)
		}
		resp["removed"] = removed
	}
	return c.JSON(resp)
}

func (h *GroupHandler) DeleteGroup(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	chatID, err := param(c, "id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	if err := h.conversations.Delete(c.UserContext(), userID, chatID); err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"result": "deleted"})
}

func (h *GroupHandler) GetMembers(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	chatID, err := param(c, "id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	members, err := h.conversations.Members(c.UserContext(), userID, chatID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"members": members})
}

func (h *GroupHandler) AddMembers(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	chatID, err := param(c, "id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	var req membersRequest
	if err := bind(c, &req); err != nil {
		return httpx.FromError(c, err)
	}
	added, err := h.conversations.AddMembers(c.UserContext(), userID, chatID, req.MemberIDs)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"added": added})
}

func (h *GroupHandler) GetMessages(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	chatID, err := param(c, "id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	beforeID, err := query(c, "before_id")
	if err != nil {
		return httpx.FromError(c, err)
	}

	messages, err := h.messages.ListGroup(c.UserContext(), userID, chatID, service.GroupListOptions{
		BeforeID:   beforeID,
		Limit:      c.QueryInt("limit"),
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

func (h *GroupHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	chatID, err := param(c, "id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	var req sendGroupRequest
	if err := bind(c, &req); err != nil {
		return httpx.FromError(c, err)
	}
	message, err := h.messages.SendGroup(c.UserContext(), userID, chatID, req.Message)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

func (h *GroupHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	chatID, err := param(c, "id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	var req groupReadRequest
	if err := bind(c, &req); err != nil {
		return httpx.FromError(c, err)
	}
	membership, err := h.reads.MarkGroupRead(c.UserContext(), userID, chatID, req.MessageID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(membership)
}
