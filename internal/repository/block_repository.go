package repository

import (
	"context"

	"github.com/noteduco342/rep-messaging/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// Create reports false when the block already existed.
func (r *BlockRepository) Create(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	block := models.Block{BlockerID: blockerID, BlockedID: blockedID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&block)
	return res.RowsAffected > 0, res.Error
}

func (r *BlockRepository) Delete(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{})
	return res.RowsAffected > 0, res.Error
}

func (r *BlockRepository) IsBlocked(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	return count > 0, err
}
