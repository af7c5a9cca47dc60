package repository

import (
	"context"

	"github.com/noteduco342/rep-messaging/internal/models"
	"gorm.io/gorm"
)

const pairCondition = "((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?))"

type DirectMessageRepository struct {
	db *gorm.DB
}

func NewDirectMessageRepository(db *gorm.DB) *DirectMessageRepository {
	return &DirectMessageRepository{db: db}
}

// CreateUnlessBlocked checks the block list and inserts in one transaction.
func (r *DirectMessageRepository) CreateUnlessBlocked(ctx context.Context, message *models.DirectMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blocked int64
		if err := tx.Model(&models.Block{}).
			Where("blocker_id = ? AND blocked_id = ?", message.RecipientID, message.SenderID).
			Count(&blocked).Error; err != nil {
			return err
		}
		if blocked > 0 {
			return ErrBlocked
		}
		return tx.Create(message).Error
	})
}

func (r *DirectMessageRepository) FindByID(ctx context.Context, id uint) (*models.DirectMessage, error) {
	var message models.DirectMessage
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *DirectMessageRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.DirectMessage, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var messages []models.DirectMessage
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&messages).Error
	return messages, err
}

// FindThread returns up to limit messages exchanged by the two members,
// newest first. beforeID > 0 restricts the page to older messages.
func (r *DirectMessageRepository) FindThread(ctx context.Context, memberID, peerID, beforeID uint, limit int) ([]models.DirectMessage, error) {
	q := r.db.WithContext(ctx).
		Where(pairCondition, memberID, peerID, peerID, memberID)
	if beforeID > 0 {
		q = q.Where("id < ?", beforeID)
	}

	var messages []models.DirectMessage
	err := q.Order("id DESC").Limit(limit).Find(&messages).Error
	return messages, err
}

// DeleteForParticipant removes the message only when memberID took part in
// it. It reports whether a row was removed.
func (r *DirectMessageRepository) DeleteForParticipant(ctx context.Context, memberID, id uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND (sender_id = ? OR recipient_id = ?)", id, memberID, memberID).
			Delete(&models.DirectMessage{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("message_id = ?", id).Delete(&models.ReadMarker{}).Error
	})
	return deleted, err
}

// DeleteThread removes every message between the two members and their read
// markers, returning the number of messages removed.
func (r *DirectMessageRepository) DeleteThread(ctx context.Context, memberID, peerID uint) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.DirectMessage{}).
			Where(pairCondition, memberID, peerID, peerID, memberID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("message_id IN ?", ids).Delete(&models.ReadMarker{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.DirectMessage{})
		removed = res.RowsAffected
		return res.Error
	})
	return removed, err
}
