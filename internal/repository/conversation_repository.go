package repository

import (
	"context"

	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Create inserts the conversation and a membership for the creator and every
// id in memberIDs.
func (r *ConversationRepository) Create(ctx context.Context, conversation *models.GroupConversation, memberIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(conversation).Error; err != nil {
			return err
		}
		ids := lo.Uniq(append([]uint{conversation.CreatorID}, memberIDs...))
		memberships := lo.Map(ids, func(id uint, _ int) models.ConversationMembership {
			return models.ConversationMembership{ConversationID: conversation.ID, MemberID: id}
		})
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&memberships).Error
	})
}

func (r *ConversationRepository) FindByID(ctx context.Context, id uint) (*models.GroupConversation, error) {
	var conversation models.GroupConversation
	if err := r.db.WithContext(ctx).First(&conversation, id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *ConversationRepository) Rename(ctx context.Context, id uint, name string) error {
	return r.db.WithContext(ctx).Model(&models.GroupConversation{}).
		Where("id = ?", id).
		Update("display_name", name).Error
}

// Delete removes the conversation with its memberships and messages.
func (r *ConversationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&models.GroupMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", id).Delete(&models.ConversationMembership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.GroupConversation{}, id).Error
	})
}

// AddMembers inserts a membership for each id in one transaction and returns
// the ids that were not members before. Nothing is written if any insert fails.
func (r *ConversationRepository) AddMembers(ctx context.Context, conversationID uint, memberIDs []uint) ([]uint, error) {
	var added []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		added = nil
		for _, id := range memberIDs {
			membership := models.ConversationMembership{ConversationID: conversationID, MemberID: id}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&membership)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				added = append(added, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// RemoveMembers deletes the memberships of memberIDs in one transaction and
// returns the ids that had one.
func (r *ConversationRepository) RemoveMembers(ctx context.Context, conversationID uint, memberIDs []uint) ([]uint, error) {
	var removed []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed = nil
		for _, id := range memberIDs {
			res := tx.Where("conversation_id = ? AND member_id = ?", conversationID, id).
				Delete(&models.ConversationMembership{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				removed = append(removed, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *ConversationRepository) FindMembership(ctx context.Context, conversationID, memberID uint) (*models.ConversationMembership, error) {
	var membership models.ConversationMembership
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND member_id = ?", conversationID, memberID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *ConversationRepository) IsMember(ctx context.Context, conversationID, memberID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ConversationMembership{}).
		Where("conversation_id = ? AND member_id = ?", conversationID, memberID).
		Count(&count).Error
	return count > 0, err
}

func (r *ConversationRepository) ListMemberships(ctx context.Context, conversationID uint) ([]models.ConversationMembership, error) {
	var memberships []models.ConversationMembership
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("member_id ASC").
		Find(&memberships).Error
	return memberships, err
}

func (r *ConversationRepository) MemberIDs(ctx context.Context, conversationID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.ConversationMembership{}).
		Where("conversation_id = ?", conversationID).
		Order("member_id ASC").
		Pluck("member_id", &ids).Error
	return ids, err
}

// AdvanceReadCursor moves the member's cursor to messageID only when that is
// strictly greater than the stored value. The comparison happens inside the
// UPDATE, so concurrent advances cannot move the cursor backwards.
func (r *ConversationRepository) AdvanceReadCursor(ctx context.Context, conversationID, memberID, messageID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.ConversationMembership{}).
		Where("conversation_id = ? AND member_id = ?", conversationID, memberID).
		Where("last_read_message_id IS NULL OR last_read_message_id < ?", messageID).
		Update("last_read_message_id", messageID)
	return res.RowsAffected > 0, res.Error
}
