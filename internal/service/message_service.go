package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/noteduco342/rep-messaging/internal/apperr"
	"github.com/noteduco342/rep-messaging/internal/cache"
	"github.com/noteduco342/rep-messaging/internal/handlers/ws"
	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/noteduco342/rep-messaging/internal/notify"
	"github.com/noteduco342/rep-messaging/internal/repository"
	"github.com/noteduco342/rep-messaging/internal/validation"
	"github.com/samber/lo"
)

const (
	DirectPageDefault = 1000
	DirectPageMax     = 1000
	GroupPageDefault  = 50
	GroupPageMax      = 200
)

type MessageServiceDeps struct {
	Users         repository.UserRepositoryInterface
	Direct        repository.DirectMessageRepositoryInterface
	Conversations repository.ConversationRepositoryInterface
	GroupMessages repository.GroupMessageRepositoryInterface
	Reads         *ReadService
	History       *cache.GroupHistoryCache
	Notifier      Notifier
	Locks         *StreamLocks
	Logger        *slog.Logger
	MaxLength     int
}

// MessageService persists direct and group messages and hands every
// committed message to the notifier.
type MessageService struct {
	users         repository.UserRepositoryInterface
	direct        repository.DirectMessageRepositoryInterface
	conversations repository.ConversationRepositoryInterface
	groupMessages repository.GroupMessageRepositoryInterface
	reads         *ReadService
	history       *cache.GroupHistoryCache
	notifier      Notifier
	locks         *StreamLocks
	logger        *slog.Logger
	maxLength     int
}

func NewMessageService(deps MessageServiceDeps) *MessageService {
	if deps.Locks == nil {
		deps.Locks = NewStreamLocks()
	}
	return &MessageService{
		users:         deps.Users,
		direct:        deps.Direct,
		conversations: deps.Conversations,
		groupMessages: deps.GroupMessages,
		reads:         deps.Reads,
		history:       deps.History,
		notifier:      deps.Notifier,
		locks:         deps.Locks,
		logger:        deps.Logger,
		maxLength:     deps.MaxLength,
	}
}

// DirectMessageEvent is emitted to the recipient's personal room.
type DirectMessageEvent struct {
	Type        string `json:"type"`
	ID          uint   `json:"id"`
	MessageID   uint   `json:"message_id"`
	SenderID    uint   `json:"sender_id"`
	SenderName  string `json:"sender_name"`
	RecipientID uint   `json:"recipient_id"`
	Text        string `json:"text"`
	Timestamp   string `json:"timestamp"`
	Read        string `json:"read"`
}

// GroupMessageEvent is broadcast to the conversation room.
type GroupMessageEvent struct {
	ChatID     uint   `json:"chat_id"`
	ID         uint   `json:"id"`
	SenderID   uint   `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Text       string `json:"text"`
	Timestamp  string `json:"timestamp"`
}

// GroupNotificationEvent goes to each other member's personal room.
type GroupNotificationEvent struct {
	Type      string `json:"type"`
	ChatID    uint   `json:"chat_id"`
	MessageID uint   `json:"message_id"`
	SenderID  uint   `json:"sender_id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

func (s *MessageService) body(raw string) (string, error) {
	body := validation.TrimAndLimit(raw, s.maxLength)
	if body == "" {
		return "", apperr.Validation("message is required")
	}
	return body, nil
}

func (s *MessageService) displayName(ctx context.Context, memberID uint) string {
	user, err := s.users.FindByID(ctx, memberID)
	if err != nil {
		return (&models.User{}).DisplayName()
	}
	return user.DisplayName()
}

// SendDirect stores a message from sender to recipient. The block check and
// the insert share a transaction and run under the pair lock, so a block
// committed before the send is always honoured.
func (s *MessageService) SendDirect(ctx context.Context, senderID, recipientID uint, text string) (*models.DirectMessageResponse, error) {
	if recipientID == 0 {
		return nil, apperr.Validation("recipient is required")
	}
	if recipientID == senderID {
		return nil, apperr.Validation("cannot send a message to yourself")
	}
	body, err := s.body(text)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, recipientID); err != nil {
		return nil, storageErr(err, "recipient not found")
	}

	message := &models.DirectMessage{SenderID: senderID, RecipientID: recipientID, Body: body}
	unlock := s.locks.Pair(senderID, recipientID)
	err = s.direct.CreateUnlessBlocked(ctx, message)
	unlock()
	if errors.Is(err, repository.ErrBlocked) {
		return nil, apperr.Blocked("the recipient has blocked you")
	}
	if err != nil {
		return nil, apperr.Internal("failed to save message", err)
	}

	senderName := s.displayName(ctx, senderID)
	timestamp := models.FormatTimestamp(message.CreatedAt)
	s.notifier.Notify(notify.Notification{
		Category:   notify.CategoryDirectMessage,
		Stream:     notify.PairStream(senderID, recipientID),
		Recipients: []uint{recipientID},
		Event:      EventDirectMessage,
		Payload: DirectMessageEvent{
			Type:        "direct_message",
			ID:          message.ID,
			MessageID:   message.ID,
			SenderID:    senderID,
			SenderName:  senderName,
			RecipientID: recipientID,
			Text:        body,
			Timestamp:   timestamp,
			Read:        models.ReadFlagUnread,
		},
		Title: "New message from " + senderName,
		Body:  body,
		Data: map[string]string{
			"type":       "direct_message",
			"sender_id":  strconv.FormatUint(uint64(senderID), 10),
			"message_id": strconv.FormatUint(uint64(message.ID), 10),
		},
	})

	resp := message.ToResponse(models.ReadFlagRead)
	return &resp, nil
}

// SendGroup stores a message in a conversation. Membership is verified in
// the same transaction as the insert.
func (s *MessageService) SendGroup(ctx context.Context, senderID, conversationID uint, text string) (*models.GroupMessageResponse, error) {
	if conversationID == 0 {
		return nil, apperr.Validation("chat_id is required")
	}
	body, err := s.body(text)
	if err != nil {
		return nil, err
	}
	conversation, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, storageErr(err, "conversation not found")
	}

	message := &models.GroupMessage{ConversationID: conversationID, SenderID: senderID, Body: body}
	unlock := s.locks.Conversation(conversationID)
	err = s.groupMessages.CreateForMember(ctx, message)
	unlock()
	if errors.Is(err, repository.ErrNotMember) {
		return nil, apperr.Permission("you are not a member of this conversation")
	}
	if err != nil {
		return nil, apperr.Internal("failed to save message", err)
	}

	if err := s.history.Invalidate(ctx, conversationID); err != nil {
		s.logger.Warn("group history invalidation failed, serving history from storage", "conversation_id", conversationID, "error", err)
	}

	members, err := s.conversations.MemberIDs(ctx, conversationID)
	if err != nil {
		s.logger.Warn("member lookup for fan-out failed", "conversation_id", conversationID, "error", err)
	}
	recipients := lo.Without(members, senderID)

	senderName := s.displayName(ctx, senderID)
	timestamp := models.FormatTimestamp(message.CreatedAt)
	s.notifier.Notify(notify.Notification{
		Category:   notify.CategoryGroupMessage,
		Recipients: recipients,
		Event:      EventGroupNotification,
		Payload: GroupNotificationEvent{
			Type:      "group_message",
			ChatID:    conversationID,
			MessageID: message.ID,
			SenderID:  senderID,
			Text:      body,
			Timestamp: timestamp,
		},
		Title: senderName + " in " + conversation.DisplayName,
		Body:  body,
		Data: map[string]string{
			"type":       "group_message",
			"chat_id":    strconv.FormatUint(uint64(conversationID), 10),
			"message_id": strconv.FormatUint(uint64(message.ID), 10),
			"sender_id":  strconv.FormatUint(uint64(senderID), 10),
		},
		Room:      ws.ConversationRoom(conversationID),
		RoomEvent: EventGroupMessage,
		RoomPayload: GroupMessageEvent{
			ChatID:     conversationID,
			ID:         message.ID,
			SenderID:   senderID,
			SenderName: senderName,
			Text:       body,
			Timestamp:  timestamp,
		},
	})

	resp := message.ToResponse(models.ReadFlagRead)
	return &resp, nil
}

// DeleteDirect removes a message the requester sent or received.
func (s *MessageService) DeleteDirect(ctx context.Context, requesterID, messageID uint) error {
	if messageID == 0 {
		return apperr.Validation("message id is required")
	}
	deleted, err := s.direct.DeleteForParticipant(ctx, requesterID, messageID)
	if err != nil {
		return apperr.Internal("failed to delete message", err)
	}
	if !deleted {
		return apperr.NotFound("message not found")
	}
	return nil
}

// DeleteDirectByPeer removes the whole thread between requester and peer.
func (s *MessageService) DeleteDirectByPeer(ctx context.Context, requesterID, peerID uint) (int64, error) {
	if peerID == 0 || peerID == requesterID {
		return 0, apperr.Validation("a valid peer is required")
	}
	removed, err := s.direct.DeleteThread(ctx, requesterID, peerID)
	if err != nil {
		return 0, apperr.Internal("failed to delete conversation", err)
	}
	return removed, nil
}

type DirectListOptions struct {
	BeforeID   uint
	Limit      int
	Order      string
	MarkAsRead bool
}

// ListDirect returns a page of the thread with peer. Rows are selected
// newest first and returned oldest first unless Order is DESC.
func (s *MessageService) ListDirect(ctx context.Context, memberID, peerID uint, opts DirectListOptions) ([]models.DirectMessageResponse, error) {
	if peerID == 0 {
		return nil, apperr.Validation("users_id is required")
	}
	limit := clampLimit(opts.Limit, DirectPageDefault, DirectPageMax)

	rows, err := s.direct.FindThread(ctx, memberID, peerID, opts.BeforeID, limit)
	if err != nil {
		return nil, apperr.Internal("failed to load messages", err)
	}

	if opts.MarkAsRead {
		inbound := lo.FilterMap(rows, func(m models.DirectMessage, _ int) (uint, bool) {
			return m.ID, m.RecipientID == memberID
		})
		if len(inbound) > 0 {
			if _, err := s.reads.MarkDirectRead(ctx, memberID, inbound); err != nil {
				return nil, err
			}
		}
	}

	states, err := s.reads.DirectReadStates(ctx, memberID, rows)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(opts.Order, "DESC") {
		slices.Reverse(rows)
	}
	out := make([]models.DirectMessageResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToResponse(states[rows[i].ID]))
	}
	return out, nil
}

type GroupListOptions struct {
	BeforeID   uint
	Limit      int
	MarkAsRead bool
}

// ListGroup returns a page of a conversation, oldest first, with read flags
// derived from the caller's cursor. The newest page is served from the
// history cache when one is configured.
func (s *MessageService) ListGroup(ctx context.Context, memberID, conversationID uint, opts GroupListOptions) ([]models.GroupMessageResponse, error) {
	if _, err := s.conversations.FindByID(ctx, conversationID); err != nil {
		return nil, storageErr(err, "conversation not found")
	}
	membership, err := s.reads.requireMembership(ctx, conversationID, memberID)
	if err != nil {
		return nil, err
	}
	limit := clampLimit(opts.Limit, GroupPageDefault, GroupPageMax)

	rows, err := s.groupPage(ctx, conversationID, opts.BeforeID, limit)
	if err != nil {
		return nil, err
	}

	if opts.MarkAsRead && len(rows) > 0 {
		newest := rows[0].ID
		if _, err := s.conversations.AdvanceReadCursor(ctx, conversationID, memberID, newest); err != nil {
			return nil, apperr.Internal("failed to update read cursor", err)
		}
		if !membership.HasRead(newest) {
			membership.LastReadMessageID = &newest
		}
	}

	states := GroupReadStates(membership, rows)
	out := make([]models.GroupMessageResponse, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, rows[i].ToResponse(states[rows[i].ID]))
	}
	return out, nil
}

// groupPage returns rows newest first.
func (s *MessageService) groupPage(ctx context.Context, conversationID, beforeID uint, limit int) ([]models.GroupMessage, error) {
	generation := int64(-1)
	if beforeID == 0 {
		generation = s.history.Generation(ctx, conversationID)
		if cached, ok := s.history.GetLatest(ctx, conversationID, generation, limit); ok {
			return cached, nil
		}
	}

	rows, err := s.groupMessages.FindPage(ctx, conversationID, beforeID, limit)
	if err != nil {
		return nil, apperr.Internal("failed to load messages", err)
	}
	if beforeID == 0 {
		if err := s.history.SetLatest(ctx, conversationID, generation, limit, rows); err != nil {
			s.logger.Debug("group history cache write failed", "conversation_id", conversationID, "error", err)
		}
	}
	return rows, nil
}
