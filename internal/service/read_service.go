package service

import (
	"context"

	"github.com/noteduco342/rep-messaging/internal/apperr"
	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/noteduco342/rep-messaging/internal/repository"
	"github.com/samber/lo"
)

// ReadService tracks what members have seen: marker rows for direct
// messages and a forward-only cursor per conversation membership.
type ReadService struct {
	direct        repository.DirectMessageRepositoryInterface
	markers       repository.ReadMarkerRepositoryInterface
	conversations repository.ConversationRepositoryInterface
	groupMessages repository.GroupMessageRepositoryInterface
}

func NewReadService(
	direct repository.DirectMessageRepositoryInterface,
	markers repository.ReadMarkerRepositoryInterface,
	conversations repository.ConversationRepositoryInterface,
	groupMessages repository.GroupMessageRepositoryInterface,
) *ReadService {
	return &ReadService{
		direct:        direct,
		markers:       markers,
		conversations: conversations,
		groupMessages: groupMessages,
	}
}

type DirectReadSummary struct {
	// ReadIDs are the requested messages the member received, all of
	// which are now read.
	ReadIDs []uint `json:"read_ids"`
	// Marked counts markers created by this call.
	Marked int64 `json:"marked"`
}

// MarkDirectRead marks the given messages read for their recipient. Ids the
// member sent, or is not a party to, are skipped without error. Repeating
// the call changes nothing.
func (s *ReadService) MarkDirectRead(ctx context.Context, memberID uint, messageIDs []uint) (*DirectReadSummary, error) {
	messageIDs = lo.Uniq(lo.Without(messageIDs, 0))
	if len(messageIDs) == 0 {
		return nil, apperr.Validation("message_ids is required")
	}

	messages, err := s.direct.FindByIDs(ctx, messageIDs)
	if err != nil {
		return nil, storageErr(err, "message not found")
	}

	inbound := lo.FilterMap(messages, func(m models.DirectMessage, _ int) (uint, bool) {
		return m.ID, m.RecipientID == memberID
	})
	summary := &DirectReadSummary{ReadIDs: inbound}
	if len(inbound) == 0 {
		summary.ReadIDs = []uint{}
		return summary, nil
	}

	marked, err := s.markers.InsertIgnore(ctx, memberID, inbound)
	if err != nil {
		return nil, storageErr(err, "message not found")
	}
	summary.Marked = marked
	return summary, nil
}

// DirectReadStates returns the read flag of each message as seen by
// memberID, using one marker query for the whole batch.
func (s *ReadService) DirectReadStates(ctx context.Context, memberID uint, messages []models.DirectMessage) (map[uint]string, error) {
	states := make(map[uint]string, len(messages))
	var inbound []uint
	for _, m := range messages {
		if m.SenderID == memberID {
			states[m.ID] = models.ReadFlagRead
			continue
		}
		states[m.ID] = models.ReadFlagUnread
		inbound = append(inbound, m.ID)
	}
	if len(inbound) == 0 {
		return states, nil
	}

	marked, err := s.markers.MarkedAmong(ctx, memberID, inbound)
	if err != nil {
		return nil, apperr.Internal("storage failure", err)
	}
	for _, id := range marked {
		states[id] = models.ReadFlagRead
	}
	return states, nil
}

// MarkGroupRead moves the member's cursor in a conversation up to
// messageID. A lower id leaves the cursor where it is. The resulting
// membership is returned either way.
func (s *ReadService) MarkGroupRead(ctx context.Context, memberID, conversationID, messageID uint) (*models.ConversationMembership, error) {
	if messageID == 0 {
		return nil, apperr.Validation("message_id is required")
	}
	if _, err := s.requireMembership(ctx, conversationID, memberID); err != nil {
		return nil, err
	}

	message, err := s.groupMessages.FindByID(ctx, messageID)
	if err != nil {
		return nil, storageErr(err, "message not found")
	}
	if message.ConversationID != conversationID {
		return nil, apperr.NotFound("message not found")
	}

	if _, err := s.conversations.AdvanceReadCursor(ctx, conversationID, memberID, messageID); err != nil {
		return nil, apperr.Internal("storage failure", err)
	}
	return s.requireMembership(ctx, conversationID, memberID)
}

// GroupReadStates reports read flags for messages of one conversation as
// seen through membership.
func GroupReadStates(membership *models.ConversationMembership, messages []models.GroupMessage) map[uint]string {
	states := make(map[uint]string, len(messages))
	for _, m := range messages {
		states[m.ID] = models.ReadFlag(m.SenderID == membership.MemberID || membership.HasRead(m.ID))
	}
	return states
}

func (s *ReadService) requireMembership(ctx context.Context, conversationID, memberID uint) (*models.ConversationMembership, error) {
	membership, err := s.conversations.FindMembership(ctx, conversationID, memberID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.Permission("you are not a member of this conversation")
		}
		return nil, apperr.Internal("storage failure", err)
	}
	return membership, nil
}
