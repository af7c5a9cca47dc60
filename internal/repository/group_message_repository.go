package repository

import (
	"context"

	"github.com/noteduco342/rep-messaging/internal/models"
	"gorm.io/gorm"
)

type GroupMessageRepository struct {
	db *gorm.DB
}

func NewGroupMessageRepository(db *gorm.DB) *GroupMessageRepository {
	return &GroupMessageRepository{db: db}
}

// CreateForMember inserts the message only if the sender is a member at
// commit time, so a concurrent removal either precedes or follows the write.
func (r *GroupMessageRepository) CreateForMember(ctx context.Context, message *models.GroupMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ConversationMembership{}).
			Where("conversation_id = ? AND member_id = ?", message.ConversationID, message.SenderID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotMember
		}
		return tx.Create(message).Error
	})
}

func (r *GroupMessageRepository) FindByID(ctx context.Context, id uint) (*models.GroupMessage, error) {
	var message models.GroupMessage
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// FindPage returns up to limit messages of the conversation, newest first.
func (r *GroupMessageRepository) FindPage(ctx context.Context, conversationID, beforeID uint, limit int) ([]models.GroupMessage, error) {
	q := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID)
	if beforeID > 0 {
		q = q.Where("id < ?", beforeID)
	}
	var messages []models.GroupMessage
	err := q.Order("id DESC").Limit(limit).Find(&messages).Error
	return messages, err
}
