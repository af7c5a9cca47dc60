package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/noteduco342/rep-messaging/internal/apperr"
	"github.com/noteduco342/rep-messaging/internal/cache"
	"github.com/noteduco342/rep-messaging/internal/handlers/ws"
	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/noteduco342/rep-messaging/internal/repository"
	"github.com/samber/lo"
)

// Per-member outcomes of AddMembers and RemoveMembers.
const (
	MemberOK         = "ok"
	MemberAlreadyIn  = "already in the chat"
	MemberNotIn      = "not in the chat"
	MemberUnknown    = "unknown member"
	maxDisplayLength = 255
)

type ConversationService struct {
	conversations repository.ConversationRepositoryInterface
	users         repository.UserRepositoryInterface
	history       *cache.GroupHistoryCache
	rooms         RoomController
	logger        *slog.Logger
}

func NewConversationService(
	conversations repository.ConversationRepositoryInterface,
	users repository.UserRepositoryInterface,
	history *cache.GroupHistoryCache,
	rooms RoomController,
	logger *slog.Logger,
) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		users:         users,
		history:       history,
		rooms:         rooms,
		logger:        logger,
	}
}

type ConversationView struct {
	*models.GroupConversation
	MemberIDs []uint `json:"member_ids"`
}

func displayName(name string) string {
	name = strings.TrimSpace(name)
	if len(name) > maxDisplayLength {
		name = name[:maxDisplayLength]
	}
	return name
}

// Create starts a conversation owned by creator. Unknown member ids are
// dropped; the creator is always a member.
func (s *ConversationService) Create(ctx context.Context, creatorID uint, name string, memberIDs []uint) (*ConversationView, error) {
	name = displayName(name)
	if name == "" {
		name = models.DefaultConversationName
	}

	existing, err := s.users.ExistingIDs(ctx, lo.Uniq(lo.Without(memberIDs, 0, creatorID)))
	if err != nil {
		return nil, apperr.Internal("storage failure", err)
	}

	conversation := &models.GroupConversation{DisplayName: name, CreatorID: creatorID}
	if err := s.conversations.Create(ctx, conversation, existing); err != nil {
		return nil, apperr.Internal("failed to create conversation", err)
	}
	return s.view(ctx, conversation)
}

func (s *ConversationService) Rename(ctx context.Context, requesterID, conversationID uint, name string) (*ConversationView, error) {
	name = displayName(name)
	if name == "" {
		return nil, apperr.Validation("display_name is required")
	}
	conversation, err := s.requireMember(ctx, conversationID, requesterID)
	if err != nil {
		return nil, err
	}
	if err := s.conversations.Rename(ctx, conversationID, name); err != nil {
		return nil, apperr.Internal("failed to rename conversation", err)
	}
	conversation.DisplayName = name
	return s.view(ctx, conversation)
}

// AddMembers adds the known ids in one transaction and reports what
// happened to each id.
func (s *ConversationService) AddMembers(ctx context.Context, requesterID, conversationID uint, memberIDs []uint) (map[uint]string, error) {
	if _, err := s.requireMember(ctx, conversationID, requesterID); err != nil {
		return nil, err
	}
	memberIDs = lo.Uniq(lo.Without(memberIDs, 0))
	existing, err := s.users.ExistingIDs(ctx, memberIDs)
	if err != nil {
		return nil, apperr.Internal("storage failure", err)
	}

	results := make(map[uint]string, len(memberIDs))
	known := lo.Filter(memberIDs, func(id uint, _ int) bool { return lo.Contains(existing, id) })
	for _, id := range lo.Without(memberIDs, known...) {
		results[id] = MemberUnknown
	}
	if len(known) == 0 {
		return results, nil
	}
	added, err := s.conversations.AddMembers(ctx, conversationID, known)
	if err != nil {
		return nil, apperr.Internal("failed to add members", err)
	}
	for _, id := range known {
		results[id] = lo.Ternary(lo.Contains(added, id), MemberOK, MemberAlreadyIn)
	}
	return results, nil
}

// RemoveMembers removes the ids in one transaction, then evicts its live connections from the
// conversation room so it stops receiving the conversation stream.
func (s *ConversationService) RemoveMembers(ctx context.Context, requesterID, conversationID uint, memberIDs []uint) (map[uint]string, error) {
	if _, err := s.requireMember(ctx, conversationID, requesterID); err != nil {
		return nil, err
	}
	memberIDs = lo.Uniq(lo.Without(memberIDs, 0))
	if len(memberIDs) == 0 {
		return map[uint]string{}, nil
	}

	removed, err := s.conversations.RemoveMembers(ctx, conversationID, memberIDs)
	if err != nil {
		return nil, apperr.Internal("failed to remove members", err)
	}

	results := make(map[uint]string, len(memberIDs))
	room := ws.ConversationRoom(conversationID)
	for _, id := range memberIDs {
		if !lo.Contains(removed, id) {
			results[id] = MemberNotIn
			continue
		}
		results[id] = MemberOK
		if s.rooms != nil {
			s.rooms.EvictMember(room, id)
		}
	}
	return results, nil
}

// Delete removes the conversation with its memberships and messages. Only
// the creator may delete.
func (s *ConversationService) Delete(ctx context.Context, requesterID, conversationID uint) error {
	conversation, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return storageErr(err, "conversation not found")
	}
	if conversation.CreatorID != requesterID {
		return apperr.Permission("only the creator can delete this conversation")
	}
	if err := s.conversations.Delete(ctx, conversationID); err != nil {
		return apperr.Internal("failed to delete conversation", err)
	}

	if err := s.history.Invalidate(ctx, conversationID); err != nil {
		s.logger.Warn("group history invalidation failed, serving history from storage", "conversation_id", conversationID, "error", err)
	}
	if s.rooms != nil {
		s.rooms.CloseRoom(ws.ConversationRoom(conversationID))
	}
	return nil
}

// Members lists memberships with their read cursors. Only members may ask.
func (s *ConversationService) Members(ctx context.Context, requesterID, conversationID uint) ([]models.ConversationMembership, error) {
	if _, err := s.requireMember(ctx, conversationID, requesterID); err != nil {
		return nil, err
	}
	memberships, err := s.conversations.ListMemberships(ctx, conversationID)
	if err != nil {
		return nil, apperr.Internal("storage failure", err)
	}
	return memberships, nil
}

func (s *ConversationService) requireMember(ctx context.Context, conversationID, memberID uint) (*models.GroupConversation, error) {
	conversation, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, storageErr(err, "conversation not found")
	}
	ok, err := s.conversations.IsMember(ctx, conversationID, memberID)
	if err != nil {
		return nil, apperr.Internal("storage failure", err)
	}
	if !ok {
		return nil, apperr.Permission("you are not a member of this conversation")
	}
	return conversation, nil
}

func (s *ConversationService) view(ctx context.Context, conversation *models.GroupConversation) (*ConversationView, error) {
	ids, err := s.conversations.MemberIDs(ctx, conversation.ID)
	if err != nil {
		return nil, apperr.Internal("storage failure", err)
	}
	return &ConversationView{GroupConversation: conversation, MemberIDs: ids}, nil
}
