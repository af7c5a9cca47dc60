//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=../mocks/mock_repositories.go -package=mocks
package repository

import (
	"context"

	"github.com/noteduco342/rep-messaging/internal/models"
)

// UserRepositoryInterface defines the contract for member projection operations
type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	ExistingIDs(ctx context.Context, ids []uint) ([]uint, error)
	UpdateDeviceToken(ctx context.Context, id uint, token *string) error
	UpdateNotificationSettings(ctx context.Context, id uint, settings models.NotificationSettings) error
}

// DirectMessageRepositoryInterface defines the contract for direct message storage
type DirectMessageRepositoryInterface interface {
	CreateUnlessBlocked(ctx context.Context, message *models.DirectMessage) error
	FindByID(ctx context.Context, id uint) (*models.DirectMessage, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.DirectMessage, error)
	FindThread(ctx context.Context, memberID, peerID, beforeID uint, limit int) ([]models.DirectMessage, error)
	DeleteForParticipant(ctx context.Context, memberID, id uint) (bool, error)
	DeleteThread(ctx context.Context, memberID, peerID uint) (int64, error)
}

// ReadMarkerRepositoryInterface defines the contract for direct message read markers
type ReadMarkerRepositoryInterface interface {
	InsertIgnore(ctx context.Context, memberID uint, messageIDs []uint) (int64, error)
	MarkedAmong(ctx context.Context, memberID uint, messageIDs []uint) ([]uint, error)
}

// ConversationRepositoryInterface defines the contract for group conversations and memberships
type ConversationRepositoryInterface interface {
	Create(ctx context.Context, conversation *models.GroupConversation, memberIDs []uint) error
	FindByID(ctx context.Context, id uint) (*models.GroupConversation, error)
	Rename(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
	AddMembers(ctx context.Context, conversationID uint, memberIDs []uint) ([]uint, error)
	RemoveMembers(ctx context.Context, conversationID uint, memberIDs []uint) ([]uint, error)
	FindMembership(ctx context.Context, conversationID, memberID uint) (*models.ConversationMembership, error)
	IsMember(ctx context.Context, conversationID, memberID uint) (bool, error)
	ListMemberships(ctx context.Context, conversationID uint) ([]models.ConversationMembership, error)
	MemberIDs(ctx context.Context, conversationID uint) ([]uint, error)
	AdvanceReadCursor(ctx context.Context, conversationID, memberID, messageID uint) (bool, error)
}

// GroupMessageRepositoryInterface defines the contract for group message storage
type GroupMessageRepositoryInterface interface {
	CreateForMember(ctx context.Context, message *models.GroupMessage) error
	FindByID(ctx context.Context, id uint) (*models.GroupMessage, error)
	FindPage(ctx context.Context, conversationID, beforeID uint, limit int) ([]models.GroupMessage, error)
}

// BlockRepositoryInterface defines the contract for block list operations
type BlockRepositoryInterface interface {
	Create(ctx context.Context, blockerID, blockedID uint) (bool, error)
	Delete(ctx context.Context, blockerID, blockedID uint) (bool, error)
	IsBlocked(ctx context.Context, blockerID, blockedID uint) (bool, error)
}

// TeamInviteRepositoryInterface defines the contract for goal team invites
type TeamInviteRepositoryInterface interface {
	FindGoal(ctx context.Context, goalID uint) (*models.Goal, error)
	CreateMany(ctx context.Context, invites []models.TeamInvite) ([]uint, error)
	Find(ctx context.Context, goalID, inviteeID uint) (*models.TeamInvite, error)
	ListByGoal(ctx context.Context, goalID uint) ([]models.TeamInvite, error)
	Apply(ctx context.Context, changes []models.InviteChange) error
	Delete(ctx context.Context, id uint) error
	ListPending(ctx context.Context, inviteeID uint) ([]models.PendingInvite, error)
	MarkAllReadForInvitee(ctx context.Context, inviteeID uint) ([]uint, error)
}
